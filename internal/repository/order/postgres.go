package order

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

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres. Line items travel
// as a JSONB column; the order row keeps the priced totals.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO orders (
    tenant_id, customer_id, phone, items, subtotal_cents, delivery_fee_cents, total_cents,
    address, postcode, zone, status
) VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11)
RETURNING id::text, created_at
`
	res := o
	err = r.pool.QueryRow(ctx, q,
		o.TenantID,
		o.CustomerID,
		o.Phone,
		itemsJSON,
		o.SubtotalCents,
		o.DeliveryFeeCents,
		o.TotalCents,
		o.Address,
		o.Postcode,
		o.Zone,
		o.Status,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("order repo: create tenant_id=%s phone=%s error=%v", o.TenantID, o.Phone, err)
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s tenant_id=%s total=%d", res.ID, o.TenantID, o.TotalCents)

	// Confirmed orders count toward the customer's trust score.
	if o.Status == domain.OrderStatusConfirmed && o.CustomerID != "" {
		const bump = `UPDATE customers SET completed_orders = completed_orders + 1 WHERE id = $1::uuid`
		if _, err := r.pool.Exec(ctx, bump, o.CustomerID); err != nil {
			r.logger.Printf("order repo: bump completed_orders customer_id=%s error=%v", o.CustomerID, err)
		}
	}
	return &res, nil
}

func (r *postgresRepo) UpdatePayment(ctx context.Context, tenantID, orderID, method, status string) error {
	const q = `
UPDATE orders
SET payment_method = $3, payment_status = $4
WHERE tenant_id = $1 AND id = $2::uuid
`
	tag, err := r.pool.Exec(ctx, q, tenantID, orderID, method, status)
	if err != nil {
		r.logger.Printf("order repo: update payment id=%s error=%v", orderID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetLastByPhone(ctx context.Context, tenantID, phone string) (*domain.Order, error) {
	const q = `
SELECT id::text, tenant_id::text, COALESCE(customer_id::text, ''), phone, items,
       subtotal_cents, delivery_fee_cents, total_cents,
       COALESCE(address, ''), COALESCE(postcode, ''), COALESCE(zone, ''),
       status, COALESCE(payment_method, ''), COALESCE(payment_status, ''), created_at
FROM orders
WHERE tenant_id = $1 AND phone = $2
ORDER BY created_at DESC
LIMIT 1
`
	var (
		o        domain.Order
		itemsRaw []byte
	)
	err := r.pool.QueryRow(ctx, q, tenantID, phone).Scan(
		&o.ID, &o.TenantID, &o.CustomerID, &o.Phone, &itemsRaw,
		&o.SubtotalCents, &o.DeliveryFeeCents, &o.TotalCents,
		&o.Address, &o.Postcode, &o.Zone,
		&o.Status, &o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: last tenant_id=%s phone=%s error=%v", tenantID, phone, err)
		return nil, err
	}
	if err := json.Unmarshal(itemsRaw, &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}
