// Package resolver maps free-text product mentions to catalog entries.
// Resolution runs an ordered strategy chain: the graph-backed alias store
// first, then a static local alias table, then edit-distance fuzzy
// matching. The first strategy that produces a match wins; graph failures
// downgrade silently to the local tiers.
package resolver

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

const (
	// minResolveLen guards the fuzzy tiers against false positives on
	// short tokens.
	minResolveLen = 3

	// similarityThreshold is passed to the graph's approximate index.
	similarityThreshold = 0.30

	// fuzzyFloor rejects low-confidence fuzzy matches outright.
	fuzzyFloor = 0.70
)

// Graph is the alias-store collaborator. Implementations report their own
// availability so the resolver can decide whether the local fallback table
// applies.
type Graph interface {
	FindExact(ctx context.Context, tenantID, term string) (*domain.Match, error)
	FindSubstring(ctx context.Context, tenantID, term string) (*domain.Match, error)
	FindSimilar(ctx context.Context, tenantID, term string, threshold float64) (*domain.Match, error)
	Available() bool
}

// Catalog supplies the active products whose canonical names the local
// tiers match against.
type Catalog interface {
	ListActive(ctx context.Context, tenantID string) ([]domain.Product, error)
}

type Resolver struct {
	graph   Graph
	catalog Catalog
	table   AliasTable
	logger  *log.Logger
}

// New builds a Resolver. A nil table falls back to the built-in grocery
// alias table; a nil logger discards.
func New(graph Graph, catalog Catalog, table AliasTable, logger *log.Logger) *Resolver {
	if table == nil {
		table = DefaultAliasTable()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Resolver{graph: graph, catalog: catalog, table: table, logger: logger}
}

// Resolve maps one product mention to a catalog entry, or nil when nothing
// matches. It never returns an error: collaborator failures are logged and
// downgrade to the local tiers.
func (r *Resolver) Resolve(ctx context.Context, tenantID, text string) *domain.Match {
	term := Normalize(text)
	if term == "" {
		return nil
	}

	if r.graph != nil && r.graph.Available() {
		match, err := r.resolveGraph(ctx, tenantID, term)
		if err == nil {
			// Graph answered (possibly with no match); the local
			// typo tiers only apply when the graph is out.
			return match
		}
		r.logger.Printf("resolver: graph lookup failed term=%q error=%v, using fallback", term, err)
	}

	if match := r.resolveTable(term); match != nil {
		return match
	}
	return r.resolveFuzzy(ctx, tenantID, term)
}

// resolveGraph runs the graph tiers in order: exact alias, substring
// alias, approximate index, then a direct catalog-name substring match.
func (r *Resolver) resolveGraph(ctx context.Context, tenantID, term string) (*domain.Match, error) {
	match, err := r.graph.FindExact(ctx, tenantID, term)
	if err != nil {
		return nil, err
	}
	if match != nil {
		match.Confidence = 1.0
		match.Source = domain.MatchSourceGraphExact
		return match, nil
	}

	match, err = r.graph.FindSubstring(ctx, tenantID, term)
	if err != nil {
		return nil, err
	}
	if match != nil {
		match.Confidence = 0.8
		match.Source = domain.MatchSourceGraphContains
		return match, nil
	}

	match, err = r.graph.FindSimilar(ctx, tenantID, term, similarityThreshold)
	if err != nil {
		return nil, err
	}
	if match != nil {
		match.Confidence = match.Confidence * 0.7
		match.Source = domain.MatchSourceGraphSimilar
		return match, nil
	}

	products, err := r.catalogProducts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		name := Normalize(p.Name)
		if strings.Contains(term, name) || (len(term) >= minResolveLen && strings.Contains(name, term)) {
			return &domain.Match{
				Name:       p.Name,
				Language:   "en",
				Confidence: 0.9,
				Source:     domain.MatchSourceCatalogName,
			}, nil
		}
	}
	return nil, nil
}

// resolveTable matches against the static alias table: exact terms first,
// then substring containment.
func (r *Resolver) resolveTable(term string) *domain.Match {
	for name, aliases := range r.table {
		for _, a := range aliases {
			if Normalize(a.Term) == term {
				return &domain.Match{
					Name:         name,
					AliasMatched: a.Term,
					Language:     a.Language,
					Confidence:   0.9,
					Source:       domain.MatchSourceFallbackTable,
				}
			}
		}
	}
	for name, aliases := range r.table {
		for _, a := range aliases {
			at := Normalize(a.Term)
			if strings.Contains(term, at) || (len(term) >= minResolveLen && strings.Contains(at, term)) {
				return &domain.Match{
					Name:         name,
					AliasMatched: a.Term,
					Language:     a.Language,
					Confidence:   0.85,
					Source:       domain.MatchSourceFallbackTable,
				}
			}
		}
	}
	return nil
}

// resolveFuzzy is the last resort for typos: edit distance against
// canonical names (distance <=2) and aliases (<=1, stricter because
// aliases are short). Inputs under three characters never fuzzy-match.
func (r *Resolver) resolveFuzzy(ctx context.Context, tenantID, term string) *domain.Match {
	if len(term) < minResolveLen {
		return nil
	}

	products, err := r.catalogProducts(ctx, tenantID)
	if err != nil {
		r.logger.Printf("resolver: catalog unavailable for fuzzy match term=%q error=%v", term, err)
		products = nil
	}
	for _, p := range products {
		name := Normalize(p.Name)
		dist := levenshtein(term, name)
		if dist > 2 {
			continue
		}
		conf := fuzzyConfidence(term, name, dist)
		if conf < fuzzyFloor {
			continue
		}
		return &domain.Match{
			Name:         p.Name,
			Language:     "en",
			Confidence:   conf,
			Source:       domain.MatchSourceFuzzyName,
			TypoDetected: dist > 0,
		}
	}

	for name, aliases := range r.table {
		for _, a := range aliases {
			at := Normalize(a.Term)
			dist := levenshtein(term, at)
			if dist > 1 {
				continue
			}
			conf := fuzzyConfidence(term, at, dist)
			if conf < fuzzyFloor {
				continue
			}
			return &domain.Match{
				Name:         name,
				AliasMatched: a.Term,
				Language:     a.Language,
				Confidence:   conf,
				Source:       domain.MatchSourceFuzzyAlias,
				TypoDetected: dist > 0,
			}
		}
	}
	return nil
}

func (r *Resolver) catalogProducts(ctx context.Context, tenantID string) ([]domain.Product, error) {
	if r.catalog == nil {
		return nil, nil
	}
	return r.catalog.ListActive(ctx, tenantID)
}

func fuzzyConfidence(a, b string, dist int) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(dist)/float64(longest)
}

// Normalize lowercases, trims and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
