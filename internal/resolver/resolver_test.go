package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

type stubGraph struct {
	available    bool
	exact        *domain.Match
	exactErr     error
	substring    *domain.Match
	substringErr error
	similar      *domain.Match
	similarErr   error
	exactCalls   int
	similarCalls int
}

func (g *stubGraph) FindExact(_ context.Context, _, _ string) (*domain.Match, error) {
	g.exactCalls++
	return g.exact, g.exactErr
}

func (g *stubGraph) FindSubstring(_ context.Context, _, _ string) (*domain.Match, error) {
	return g.substring, g.substringErr
}

func (g *stubGraph) FindSimilar(_ context.Context, _, _ string, _ float64) (*domain.Match, error) {
	g.similarCalls++
	return g.similar, g.similarErr
}

func (g *stubGraph) Available() bool { return g.available }

type stubCatalog struct {
	products []domain.Product
	err      error
}

func (c *stubCatalog) ListActive(_ context.Context, _ string) ([]domain.Product, error) {
	return c.products, c.err
}

func groceryCatalog() *stubCatalog {
	return &stubCatalog{products: []domain.Product{
		{ID: "p1", Name: "Palm Oil", PriceCents: 1299, Currency: "GBP", Active: true},
		{ID: "p2", Name: "Egusi", PriceCents: 899, Currency: "GBP", Active: true},
		{ID: "p3", Name: "Garri", PriceCents: 650, Currency: "GBP", Active: true},
	}}
}

func TestResolveGraphExactWins(t *testing.T) {
	graph := &stubGraph{available: true, exact: &domain.Match{Name: "Palm Oil", AliasMatched: "epo pupa", Language: "yo"}}
	r := New(graph, groceryCatalog(), nil, nil)
	got := r.Resolve(context.Background(), "t1", "Epo  Pupa")
	if got == nil || got.Name != "Palm Oil" {
		t.Fatalf("unexpected match %+v", got)
	}
	if got.Confidence != 1.0 || got.Source != domain.MatchSourceGraphExact {
		t.Fatalf("unexpected provenance %+v", got)
	}
}

func TestResolveGraphSubstringConfidence(t *testing.T) {
	graph := &stubGraph{available: true, substring: &domain.Match{Name: "Garri", AliasMatched: "gari"}}
	r := New(graph, groceryCatalog(), nil, nil)
	got := r.Resolve(context.Background(), "t1", "bag of gari please")
	if got == nil || got.Confidence != 0.8 || got.Source != domain.MatchSourceGraphContains {
		t.Fatalf("unexpected match %+v", got)
	}
}

func TestResolveGraphSimilarScalesConfidence(t *testing.T) {
	graph := &stubGraph{available: true, similar: &domain.Match{Name: "Palm Oil", Confidence: 0.6}}
	r := New(graph, groceryCatalog(), nil, nil)
	got := r.Resolve(context.Background(), "t1", "pam oil")
	if got == nil || got.Source != domain.MatchSourceGraphSimilar {
		t.Fatalf("unexpected match %+v", got)
	}
	if got.Confidence < 0.41 || got.Confidence > 0.43 {
		t.Fatalf("expected similarity*0.7, got %f", got.Confidence)
	}
}

func TestResolveCatalogNameSubstring(t *testing.T) {
	graph := &stubGraph{available: true}
	r := New(graph, groceryCatalog(), nil, nil)
	got := r.Resolve(context.Background(), "t1", "some palm oil here")
	if got == nil || got.Name != "Palm Oil" {
		t.Fatalf("unexpected match %+v", got)
	}
	if got.Confidence != 0.9 || got.Source != domain.MatchSourceCatalogName || got.Language != "en" {
		t.Fatalf("unexpected provenance %+v", got)
	}
}

func TestResolveFuzzyOnlyWhenGraphUnavailable(t *testing.T) {
	// With the graph up, a typo goes through the graph's approximate index
	// and the local tiers are never consulted.
	graph := &stubGraph{available: true, similar: &domain.Match{Name: "Palm Oil", Confidence: 0.8}}
	r := New(graph, groceryCatalog(), nil, nil)
	got := r.Resolve(context.Background(), "t1", "pam oil")
	if got == nil || got.Source != domain.MatchSourceGraphSimilar {
		t.Fatalf("expected graph similar match, got %+v", got)
	}
	if graph.similarCalls != 1 {
		t.Fatalf("expected one similar call, got %d", graph.similarCalls)
	}

	// Graph down: the same typo resolves through the local fuzzy tier.
	graph = &stubGraph{available: false}
	r = New(graph, groceryCatalog(), nil, nil)
	got = r.Resolve(context.Background(), "t1", "pam oil")
	if got == nil || got.Name != "Palm Oil" {
		t.Fatalf("unexpected match %+v", got)
	}
	if got.Source != domain.MatchSourceFuzzyName || !got.TypoDetected {
		t.Fatalf("unexpected provenance %+v", got)
	}
	if graph.exactCalls != 0 {
		t.Fatalf("graph consulted while unavailable")
	}
}

func TestResolveGraphErrorDowngradesToTable(t *testing.T) {
	graph := &stubGraph{available: true, exactErr: errors.New("neo4j timeout")}
	r := New(graph, groceryCatalog(), nil, nil)
	got := r.Resolve(context.Background(), "t1", "epo pupa")
	if got == nil || got.Name != "Palm Oil" {
		t.Fatalf("unexpected match %+v", got)
	}
	if got.Source != domain.MatchSourceFallbackTable || got.Confidence != 0.9 {
		t.Fatalf("unexpected provenance %+v", got)
	}
}

func TestResolveTableRoundTripAcrossLanguages(t *testing.T) {
	r := New(&stubGraph{}, groceryCatalog(), nil, nil)
	for _, text := range []string{"palm oil", "Epo Pupa", "RED OIL", "  epo   pupa  "} {
		got := r.Resolve(context.Background(), "t1", text)
		if got == nil || got.Name != "Palm Oil" {
			t.Fatalf("text %q: unexpected match %+v", text, got)
		}
	}
}

func TestResolveFuzzyAliasStricterDistance(t *testing.T) {
	r := New(&stubGraph{}, &stubCatalog{}, nil, nil)
	// One edit away from the "egusi" alias.
	got := r.Resolve(context.Background(), "t1", "egusu")
	if got == nil || got.Name != "Egusi" || got.Source != domain.MatchSourceFuzzyAlias {
		t.Fatalf("unexpected match %+v", got)
	}
	// Two edits away must not alias-match.
	if got := r.Resolve(context.Background(), "t1", "egusuu"); got != nil && got.Source == domain.MatchSourceFuzzyAlias {
		t.Fatalf("alias fuzzy accepted distance 2: %+v", got)
	}
}

func TestResolveShortInputNeverFuzzyMatches(t *testing.T) {
	r := New(&stubGraph{}, groceryCatalog(), nil, nil)
	if got := r.Resolve(context.Background(), "t1", "ok"); got != nil {
		t.Fatalf("short input matched: %+v", got)
	}
	if got := r.Resolve(context.Background(), "t1", ""); got != nil {
		t.Fatalf("empty input matched: %+v", got)
	}
}

func TestResolveNoMatch(t *testing.T) {
	r := New(&stubGraph{}, groceryCatalog(), nil, nil)
	if got := r.Resolve(context.Background(), "t1", "lawnmower"); got != nil {
		t.Fatalf("unexpected match %+v", got)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"palm oil", "palm oil", 0},
		{"pam oil", "palm oil", 1},
		{"garri", "gari", 1},
		{"egusi", "garri", 5},
		{"", "abc", 3},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Fatalf("levenshtein(%q,%q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
