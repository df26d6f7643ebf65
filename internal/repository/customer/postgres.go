package customer

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

func (r *postgresRepo) GetByPhone(ctx context.Context, tenantID, phone string) (*domain.Customer, error) {
	const q = `
SELECT id::text, tenant_id::text, phone, COALESCE(name, ''), COALESCE(address, ''), COALESCE(postcode, ''), completed_orders, created_at
FROM customers
WHERE tenant_id = $1 AND phone = $2
LIMIT 1
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, tenantID, phone).Scan(&c.ID, &c.TenantID, &c.Phone, &c.Name, &c.Address, &c.Postcode, &c.CompletedOrders, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get tenant_id=%s phone=%s error=%v", tenantID, phone, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) UpsertFromConversation(ctx context.Context, tenantID, phone, name string) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (tenant_id, phone, name)
VALUES ($1, $2, NULLIF($3, ''))
ON CONFLICT (tenant_id, phone) DO UPDATE SET name = COALESCE(NULLIF(EXCLUDED.name, ''), customers.name)
RETURNING id::text, tenant_id::text, phone, COALESCE(name, ''), COALESCE(address, ''), COALESCE(postcode, ''), completed_orders, created_at
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, tenantID, phone, name).Scan(&c.ID, &c.TenantID, &c.Phone, &c.Name, &c.Address, &c.Postcode, &c.CompletedOrders, &c.CreatedAt)
	if err != nil {
		r.logger.Printf("customer repo: upsert tenant_id=%s phone=%s error=%v", tenantID, phone, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) CompletedOrderCount(ctx context.Context, tenantID, phone string) (int, error) {
	const q = `
SELECT count(*)
FROM orders
WHERE tenant_id = $1 AND phone = $2 AND status IN ('confirmed', 'paid')
`
	var n int
	if err := r.pool.QueryRow(ctx, q, tenantID, phone).Scan(&n); err != nil {
		r.logger.Printf("customer repo: order count tenant_id=%s phone=%s error=%v", tenantID, phone, err)
		return 0, err
	}
	return n, nil
}
