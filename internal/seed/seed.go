package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name       string
	Category   string
	PriceCents int64
}

type aliasSeed struct {
	ProductName string
	Term        string
	Language    string
}

// Apply inserts a demo tenant with the grocery catalog and its
// English/Yoruba aliases. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	tenantID, err := ensureTenant(ctx, pool, "Apinlero Demo Grocery", "+447700900000")
	if err != nil {
		return "", fmt.Errorf("ensure tenant: %w", err)
	}

	products := []productSeed{
		{Name: "Palm Oil", Category: "oils", PriceCents: 1299},
		{Name: "Egusi", Category: "soup", PriceCents: 899},
		{Name: "Garri", Category: "staples", PriceCents: 650},
		{Name: "Yam", Category: "staples", PriceCents: 1100},
		{Name: "Rice", Category: "staples", PriceCents: 1450},
		{Name: "Beans", Category: "staples", PriceCents: 780},
		{Name: "Plantain", Category: "fresh", PriceCents: 320},
		{Name: "Stockfish", Category: "protein", PriceCents: 2100},
		{Name: "Scotch Bonnet", Category: "fresh", PriceCents: 250},
		{Name: "Ogbono", Category: "soup", PriceCents: 950},
		{Name: "Ewedu", Category: "soup", PriceCents: 400},
		{Name: "Bitter Leaf", Category: "soup", PriceCents: 450},
		{Name: "Crayfish", Category: "protein", PriceCents: 600},
		{Name: "Pounded Yam Flour", Category: "staples", PriceCents: 1250},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, tenantID, p); err != nil {
			return "", fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	aliases := []aliasSeed{
		{"Palm Oil", "palm oil", "en"},
		{"Palm Oil", "epo pupa", "yo"},
		{"Palm Oil", "epo", "yo"},
		{"Palm Oil", "red oil", "en"},
		{"Egusi", "egusi", "yo"},
		{"Egusi", "melon seeds", "en"},
		{"Garri", "garri", "yo"},
		{"Garri", "gari", "yo"},
		{"Garri", "cassava flakes", "en"},
		{"Yam", "yam", "en"},
		{"Yam", "isu", "yo"},
		{"Rice", "rice", "en"},
		{"Rice", "iresi", "yo"},
		{"Beans", "beans", "en"},
		{"Beans", "ewa", "yo"},
		{"Plantain", "plantain", "en"},
		{"Plantain", "ogede", "yo"},
		{"Plantain", "dodo", "yo"},
		{"Stockfish", "stockfish", "en"},
		{"Stockfish", "panla", "yo"},
		{"Stockfish", "okporoko", "yo"},
		{"Scotch Bonnet", "scotch bonnet", "en"},
		{"Scotch Bonnet", "ata rodo", "yo"},
		{"Ogbono", "ogbono", "yo"},
		{"Ogbono", "apon", "yo"},
		{"Ogbono", "wild mango seed", "en"},
		{"Ewedu", "ewedu", "yo"},
		{"Ewedu", "jute leaves", "en"},
		{"Bitter Leaf", "bitter leaf", "en"},
		{"Bitter Leaf", "ewuro", "yo"},
		{"Crayfish", "crayfish", "en"},
		{"Crayfish", "ground crayfish", "en"},
		{"Pounded Yam Flour", "pounded yam", "en"},
		{"Pounded Yam Flour", "poundo", "yo"},
		{"Pounded Yam Flour", "iyan", "yo"},
	}
	for _, a := range aliases {
		if err := upsertAlias(ctx, pool, tenantID, a); err != nil {
			return "", fmt.Errorf("upsert alias %s: %w", a.Term, err)
		}
	}

	return tenantID, nil
}

func ensureTenant(ctx context.Context, pool *pgxpool.Pool, name, whatsappNumber string) (string, error) {
	// Tenants have no natural key; reuse the row with the same name so
	// repeated seeds stay idempotent.
	const find = `SELECT id::text FROM tenants WHERE name = $1 LIMIT 1`
	var id string
	err := pool.QueryRow(ctx, find, name).Scan(&id)
	if err == nil {
		return id, nil
	}

	const insert = `
INSERT INTO tenants (name, whatsapp_number)
VALUES ($1, $2)
RETURNING id::text
`
	if err := pool.QueryRow(ctx, insert, name, whatsappNumber).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, tenantID string, p productSeed) error {
	const q = `
INSERT INTO products (tenant_id, name, category, price_cents, currency, active)
VALUES ($1, $2, $3, $4, 'GBP', TRUE)
ON CONFLICT (tenant_id, name) DO UPDATE
SET category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    active = TRUE
`
	_, err := pool.Exec(ctx, q, tenantID, p.Name, p.Category, p.PriceCents)
	return err
}

func upsertAlias(ctx context.Context, pool *pgxpool.Pool, tenantID string, a aliasSeed) error {
	const q = `
INSERT INTO aliases (tenant_id, product_name, term, language)
VALUES ($1, $2, $3, $4)
ON CONFLICT (tenant_id, term) DO UPDATE
SET product_name = EXCLUDED.product_name,
    language = EXCLUDED.language
`
	_, err := pool.Exec(ctx, q, tenantID, a.ProductName, a.Term, a.Language)
	return err
}
