package alias

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// retryAfter is how long the store stays marked unavailable after a
// failed query before it is probed again.
const retryAfter = 30 * time.Second

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger

	// downUntil holds a unix-nano deadline while the store is considered
	// unreachable; zero means healthy.
	downUntil atomic.Int64
}

// NewPostgres returns a Repository backed by the pg_trgm-indexed aliases
// table.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Available() bool {
	until := r.downUntil.Load()
	return until == 0 || time.Now().UnixNano() >= until
}

func (r *postgresRepo) markDown() {
	r.downUntil.Store(time.Now().Add(retryAfter).UnixNano())
}

func (r *postgresRepo) markUp() {
	r.downUntil.Store(0)
}

func (r *postgresRepo) FindExact(ctx context.Context, tenantID, term string) (*domain.Match, error) {
	const q = `
SELECT product_name, term, language
FROM aliases
WHERE tenant_id = $1 AND lower(term) = lower($2)
LIMIT 1
`
	return r.findOne(ctx, q, tenantID, term)
}

func (r *postgresRepo) FindSubstring(ctx context.Context, tenantID, term string) (*domain.Match, error) {
	const q = `
SELECT product_name, term, language
FROM aliases
WHERE tenant_id = $1
  AND (position(lower(term) IN lower($2)) > 0 OR (length($2) >= 3 AND position(lower($2) IN lower(term)) > 0))
LIMIT 1
`
	return r.findOne(ctx, q, tenantID, term)
}

func (r *postgresRepo) FindSimilar(ctx context.Context, tenantID, term string, threshold float64) (*domain.Match, error) {
	const q = `
SELECT product_name, term, language, similarity(lower(term), lower($2)) AS sim
FROM aliases
WHERE tenant_id = $1 AND similarity(lower(term), lower($2)) > $3
ORDER BY sim DESC
LIMIT 1
`
	var m domain.Match
	err := r.pool.QueryRow(ctx, q, tenantID, term, threshold).Scan(&m.Name, &m.AliasMatched, &m.Language, &m.Confidence)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.markUp()
			return nil, nil
		}
		r.logger.Printf("alias repo: similar tenant_id=%s term=%q error=%v", tenantID, term, err)
		r.markDown()
		return nil, err
	}
	r.markUp()
	m.TypoDetected = true
	return &m, nil
}

func (r *postgresRepo) findOne(ctx context.Context, q, tenantID, term string) (*domain.Match, error) {
	var m domain.Match
	err := r.pool.QueryRow(ctx, q, tenantID, term).Scan(&m.Name, &m.AliasMatched, &m.Language)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.markUp()
			return nil, nil
		}
		r.logger.Printf("alias repo: lookup tenant_id=%s term=%q error=%v", tenantID, term, err)
		r.markDown()
		return nil, err
	}
	r.markUp()
	return &m, nil
}
