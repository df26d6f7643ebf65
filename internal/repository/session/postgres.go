package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Store backed by Postgres. The session body is
// stored as one JSONB blob per (tenant, phone) key.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresStore{pool: pool, logger: logger}
}

func (r *postgresStore) Get(ctx context.Context, tenantID, phone string) (*domain.Session, error) {
	const q = `
SELECT data
FROM sessions
WHERE session_key = $1
`
	var raw []byte
	err := r.pool.QueryRow(ctx, q, Key(tenantID, phone)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Printf("session repo: get key=%s error=%v", Key(tenantID, phone), err)
		return nil, err
	}

	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		r.logger.Printf("session repo: decode key=%s error=%v", Key(tenantID, phone), err)
		return nil, err
	}
	return &s, nil
}

func (r *postgresStore) Put(ctx context.Context, tenantID, phone string, s *domain.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO sessions (session_key, tenant_id, phone, data, updated_at)
VALUES ($1, NULLIF($2, ''), $3, $4, now())
ON CONFLICT (session_key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, Key(tenantID, phone), tenantID, phone, raw); err != nil {
		r.logger.Printf("session repo: put key=%s error=%v", Key(tenantID, phone), err)
		return err
	}
	return nil
}

func (r *postgresStore) Delete(ctx context.Context, tenantID, phone string) error {
	const q = `DELETE FROM sessions WHERE session_key = $1`
	if _, err := r.pool.Exec(ctx, q, Key(tenantID, phone)); err != nil {
		r.logger.Printf("session repo: delete key=%s error=%v", Key(tenantID, phone), err)
		return err
	}
	return nil
}
