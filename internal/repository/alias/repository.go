package alias

import (
	"context"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// Repository is the graph-backed alias store the resolver consults first.
// FindSimilar returns the raw similarity score in Match.Confidence; the
// resolver applies its own scaling. Available reports whether the store is
// currently reachable so callers can pick their fallback path without
// waiting on a timeout.
type Repository interface {
	FindExact(ctx context.Context, tenantID, term string) (*domain.Match, error)
	FindSubstring(ctx context.Context, tenantID, term string) (*domain.Match, error)
	FindSimilar(ctx context.Context, tenantID, term string, threshold float64) (*domain.Match, error)
	Available() bool
}
