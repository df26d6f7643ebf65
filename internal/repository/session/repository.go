package session

import (
	"context"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// Store persists conversation sessions keyed by (tenant, phone). Get
// returns (nil, nil) when no session exists. Implementations must hand out
// copies: callers mutate and re-Put, they never share references.
type Store interface {
	Get(ctx context.Context, tenantID, phone string) (*domain.Session, error)
	Put(ctx context.Context, tenantID, phone string, s *domain.Session) error
	Delete(ctx context.Context, tenantID, phone string) error
}

// anonymousTenantKey stands in for an absent tenant id. It can never
// collide with a real tenant id (those are UUIDs), so single-tenant
// deployments stay isolated from every real tenant.
const anonymousTenantKey = "-"

// Key builds the canonical session key for a (tenant, phone) pair.
func Key(tenantID, phone string) string {
	if tenantID == "" {
		tenantID = anonymousTenantKey
	}
	return tenantID + "|" + phone
}
