package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListActive(ctx context.Context, tenantID string) ([]domain.Product, error) {
	const q = `
SELECT id::text, tenant_id::text, name, COALESCE(category, ''), price_cents, currency, active, created_at
FROM products
WHERE tenant_id = $1 AND active
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q, tenantID)
	if err != nil {
		r.logger.Printf("product repo: list tenant_id=%s error=%v", tenantID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.Category, &p.PriceCents, &p.Currency, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows tenant_id=%s error=%v", tenantID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByName(ctx context.Context, tenantID, name string) (*domain.Product, error) {
	const q = `
SELECT id::text, tenant_id::text, name, COALESCE(category, ''), price_cents, currency, active, created_at
FROM products
WHERE tenant_id = $1 AND lower(name) = lower($2) AND active
LIMIT 1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, tenantID, name).Scan(&p.ID, &p.TenantID, &p.Name, &p.Category, &p.PriceCents, &p.Currency, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get tenant_id=%s name=%s error=%v", tenantID, name, err)
		return nil, err
	}
	return &p, nil
}
