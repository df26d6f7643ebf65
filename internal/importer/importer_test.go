package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

type stubWriter struct {
	products []domain.Product
	aliases  []domain.Alias
}

func (s *stubWriter) UpsertProduct(_ context.Context, p domain.Product) error {
	s.products = append(s.products, p)
	return nil
}

func (s *stubWriter) UpsertAlias(_ context.Context, a domain.Alias) error {
	s.aliases = append(s.aliases, a)
	return nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,category,price,currency,aliases_en,aliases_yo
Palm Oil,oils,12.99,GBP,red oil,epo pupa|epo
Garri,staples,650p,,cassava flakes,gari`

	w := &stubWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), w, "tenant-1")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}

	if len(w.products) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(w.products))
	}
	if w.products[0].Name != "Palm Oil" || w.products[0].PriceCents != 1299 || w.products[0].Currency != "GBP" {
		t.Fatalf("unexpected product data: %+v", w.products[0])
	}
	if w.products[1].PriceCents != 650 || w.products[1].Currency != "GBP" {
		t.Fatalf("pence price or default currency wrong: %+v", w.products[1])
	}

	// Palm Oil: canonical name + red oil + epo pupa + epo.
	var palmAliases []domain.Alias
	for _, a := range w.aliases {
		if a.ProductName == "Palm Oil" {
			palmAliases = append(palmAliases, a)
		}
	}
	if len(palmAliases) != 4 {
		t.Fatalf("expected 4 palm oil aliases, got %+v", palmAliases)
	}
	langs := map[string]string{}
	for _, a := range palmAliases {
		langs[a.Term] = a.Language
	}
	if langs["epo pupa"] != "yo" || langs["red oil"] != "en" || langs["palm oil"] != "en" {
		t.Fatalf("alias languages wrong: %v", langs)
	}
}

func TestCSVImporter_SkipsBlankRows(t *testing.T) {
	csvData := `name,category,price,currency,aliases_en,aliases_yo
Palm Oil,oils,12.99,GBP,,
,,,,,`

	w := &stubWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), w, "tenant-1")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 product imported, got %d", count)
	}
}

func TestCSVImporter_RejectsBadPrice(t *testing.T) {
	csvData := `name,category,price,currency,aliases_en,aliases_yo
Palm Oil,oils,free,GBP,,`

	w := &stubWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), w, "tenant-1")

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected price error")
	}
	if len(w.products) != 0 {
		t.Fatalf("invalid row was saved")
	}
}
