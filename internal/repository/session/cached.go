package session

import (
	"context"
	"sync"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// cachedStore fronts a backing Store with an in-process map to skip a
// round trip on hot conversations. The backing store stays the source of
// truth: a cache entry is only written after the backing write succeeds,
// and a successful Delete always evicts.
type cachedStore struct {
	backing Store

	mu    sync.RWMutex
	cache map[string]*domain.Session
}

// NewCached wraps a backing Store with an in-process cache.
func NewCached(backing Store) Store {
	return &cachedStore{backing: backing, cache: map[string]*domain.Session{}}
}

func (c *cachedStore) Get(ctx context.Context, tenantID, phone string) (*domain.Session, error) {
	key := Key(tenantID, phone)
	c.mu.RLock()
	hit := c.cache[key]
	c.mu.RUnlock()
	if hit != nil {
		return hit.Clone(), nil
	}

	s, err := c.backing.Get(ctx, tenantID, phone)
	if err != nil || s == nil {
		return s, err
	}
	c.mu.Lock()
	c.cache[key] = s.Clone()
	c.mu.Unlock()
	return s, nil
}

func (c *cachedStore) Put(ctx context.Context, tenantID, phone string, s *domain.Session) error {
	if err := c.backing.Put(ctx, tenantID, phone, s); err != nil {
		return err
	}
	c.mu.Lock()
	c.cache[Key(tenantID, phone)] = s.Clone()
	c.mu.Unlock()
	return nil
}

func (c *cachedStore) Delete(ctx context.Context, tenantID, phone string) error {
	if err := c.backing.Delete(ctx, tenantID, phone); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.cache, Key(tenantID, phone))
	c.mu.Unlock()
	return nil
}
