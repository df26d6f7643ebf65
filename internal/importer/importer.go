// Package importer loads a merchant's catalog from CSV: one product per
// row with its aliases inline, the format merchants maintain in a
// spreadsheet.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// CatalogWriter persists imported products and aliases.
type CatalogWriter interface {
	UpsertProduct(ctx context.Context, p domain.Product) error
	UpsertAlias(ctx context.Context, a domain.Alias) error
}

// CSVImporter reads catalog CSV exports and inserts/updates products with
// their aliases.
type CSVImporter struct {
	reader   *csv.Reader
	writer   CatalogWriter
	tenantID string
}

func NewCSVImporter(r io.Reader, writer CatalogWriter, tenantID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		writer:   writer,
		tenantID: tenantID,
	}
}

type csvRow struct {
	Name       string
	Category   string
	PriceCents int64
	Currency   string
	AliasesEN  []string
	AliasesYO  []string
}

// Run parses CSV rows and upserts each product with its aliases. The
// canonical product name is always registered as an English alias so exact
// lookups hit without a separate row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	err := i.writer.UpsertProduct(ctx, domain.Product{
		TenantID:   i.tenantID,
		Name:       row.Name,
		Category:   row.Category,
		PriceCents: row.PriceCents,
		Currency:   row.Currency,
		Active:     true,
	})
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Name, err)
	}

	aliases := map[string]string{strings.ToLower(row.Name): "en"}
	for _, term := range row.AliasesEN {
		aliases[strings.ToLower(term)] = "en"
	}
	for _, term := range row.AliasesYO {
		aliases[strings.ToLower(term)] = "yo"
	}
	for term, lang := range aliases {
		err := i.writer.UpsertAlias(ctx, domain.Alias{
			TenantID:    i.tenantID,
			ProductName: row.Name,
			Term:        term,
			Language:    lang,
		})
		if err != nil {
			return fmt.Errorf("upsert alias %q: %w", term, err)
		}
	}
	return nil
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	name := pick(record, index, "name")
	if name == "" {
		return nil, nil
	}

	priceStr := pick(record, index, "price")
	cents, err := parsePriceCents(priceStr)
	if err != nil {
		return nil, fmt.Errorf("product %q: bad price %q", name, priceStr)
	}
	if cents <= 0 {
		return nil, fmt.Errorf("product %q: price must be positive", name)
	}

	currency := pick(record, index, "currency")
	if currency == "" {
		currency = "GBP"
	}

	return &csvRow{
		Name:       name,
		Category:   pick(record, index, "category"),
		PriceCents: cents,
		Currency:   currency,
		AliasesEN:  splitAliases(pick(record, index, "aliases_en")),
		AliasesYO:  splitAliases(pick(record, index, "aliases_yo")),
	}, nil
}

// parsePriceCents accepts decimal pounds ("12.99") or whole pence ("1299p").
func parsePriceCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "£"))
	if s == "" {
		return 0, errors.New("empty price")
	}
	if p, ok := strings.CutSuffix(s, "p"); ok {
		return strconv.ParseInt(p, 10, 64)
	}
	pounds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(pounds*100 + 0.5), nil
}

func splitAliases(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, "|") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

// PGWriter is the Postgres-backed CatalogWriter used by the importer CLI.
type PGWriter struct {
	pool *pgxpool.Pool
}

func NewPGWriter(pool *pgxpool.Pool) *PGWriter {
	return &PGWriter{pool: pool}
}

func (w *PGWriter) UpsertProduct(ctx context.Context, p domain.Product) error {
	const q = `
INSERT INTO products (tenant_id, name, category, price_cents, currency, active)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
ON CONFLICT (tenant_id, name) DO UPDATE
SET category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    active = EXCLUDED.active
`
	_, err := w.pool.Exec(ctx, q, p.TenantID, p.Name, p.Category, p.PriceCents, p.Currency, p.Active)
	return err
}

func (w *PGWriter) UpsertAlias(ctx context.Context, a domain.Alias) error {
	const q = `
INSERT INTO aliases (tenant_id, product_name, term, language)
VALUES ($1, $2, $3, $4)
ON CONFLICT (tenant_id, term) DO UPDATE
SET product_name = EXCLUDED.product_name,
    language = EXCLUDED.language
`
	_, err := w.pool.Exec(ctx, q, a.TenantID, a.ProductName, a.Term, a.Language)
	return err
}
