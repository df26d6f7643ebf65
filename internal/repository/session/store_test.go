package session

import (
	"context"
	"errors"
	"testing"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

func TestKey(t *testing.T) {
	if got := Key("t1", "+447700900123"); got != "t1|+447700900123" {
		t.Fatalf("got %q", got)
	}
	if got := Key("", "+447700900123"); got != "-|+447700900123" {
		t.Fatalf("anonymous key: got %q", got)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	got, err := store.Get(ctx, "t1", "p1")
	if err != nil || got != nil {
		t.Fatalf("missing session: got %v, %v", got, err)
	}

	s := domain.NewSession()
	s.State = domain.StateAwaitingConfirmation
	s.PendingOrder = &domain.PendingOrder{TotalCents: 3098}
	if err := store.Put(ctx, "t1", "p1", s); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err = store.Get(ctx, "t1", "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != domain.StateAwaitingConfirmation || got.PendingOrder.TotalCents != 3098 {
		t.Fatalf("round trip lost data: %+v", got)
	}

	if err := store.Delete(ctx, "t1", "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ = store.Get(ctx, "t1", "p1"); got != nil {
		t.Fatalf("delete did not remove session")
	}
}

func TestMemoryHandsOutCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	s := domain.NewSession()
	s.PendingOrder = &domain.PendingOrder{TotalCents: 100}
	store.Put(ctx, "t1", "p1", s)

	// Mutating what was put, or what was got, must not leak into the store.
	s.PendingOrder.TotalCents = 999
	first, _ := store.Get(ctx, "t1", "p1")
	first.PendingOrder.TotalCents = 555
	first.Context["k"] = "v"

	second, _ := store.Get(ctx, "t1", "p1")
	if second.PendingOrder.TotalCents != 100 {
		t.Fatalf("aliasing: got %d", second.PendingOrder.TotalCents)
	}
	if _, ok := second.Context["k"]; ok {
		t.Fatalf("context map shared between callers")
	}
}

func TestMemoryTenantIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	a := domain.NewSession()
	a.State = domain.StateAwaitingPayment
	store.Put(ctx, "t1", "p1", a)

	if got, _ := store.Get(ctx, "t2", "p1"); got != nil {
		t.Fatalf("session leaked across tenants: %+v", got)
	}
}

// flakyStore wraps a Store and fails selected operations.
type flakyStore struct {
	Store
	putErr    error
	deleteErr error
	gets      int
}

func (f *flakyStore) Get(ctx context.Context, tenantID, phone string) (*domain.Session, error) {
	f.gets++
	return f.Store.Get(ctx, tenantID, phone)
}

func (f *flakyStore) Put(ctx context.Context, tenantID, phone string, s *domain.Session) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.Store.Put(ctx, tenantID, phone, s)
}

func (f *flakyStore) Delete(ctx context.Context, tenantID, phone string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Store.Delete(ctx, tenantID, phone)
}

func TestCachedSkipsBackingOnHit(t *testing.T) {
	ctx := context.Background()
	backing := &flakyStore{Store: NewMemory()}
	store := NewCached(backing)

	store.Put(ctx, "t1", "p1", domain.NewSession())
	store.Get(ctx, "t1", "p1")
	store.Get(ctx, "t1", "p1")
	if backing.gets != 0 {
		t.Fatalf("cache hit still reached backing %d times", backing.gets)
	}
}

func TestCachedNotPopulatedOnPutFailure(t *testing.T) {
	ctx := context.Background()
	backing := &flakyStore{Store: NewMemory(), putErr: errors.New("db down")}
	store := NewCached(backing)

	s := domain.NewSession()
	s.State = domain.StateAwaitingPayment
	if err := store.Put(ctx, "t1", "p1", s); err == nil {
		t.Fatalf("expected put error")
	}

	// The failed write must not be served from cache.
	if got, _ := store.Get(ctx, "t1", "p1"); got != nil {
		t.Fatalf("cache served a write the backing store rejected: %+v", got)
	}
}

func TestCachedDeleteEvicts(t *testing.T) {
	ctx := context.Background()
	backing := &flakyStore{Store: NewMemory()}
	store := NewCached(backing)

	store.Put(ctx, "t1", "p1", domain.NewSession())
	if err := store.Delete(ctx, "t1", "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := store.Get(ctx, "t1", "p1"); got != nil {
		t.Fatalf("deleted session still served: %+v", got)
	}
}

func TestCachedDeleteFailureKeepsEntry(t *testing.T) {
	ctx := context.Background()
	backing := &flakyStore{Store: NewMemory()}
	store := NewCached(backing)

	store.Put(ctx, "t1", "p1", domain.NewSession())
	backing.deleteErr = errors.New("db down")
	if err := store.Delete(ctx, "t1", "p1"); err == nil {
		t.Fatalf("expected delete error")
	}
	// The backing row survived, so the cache must keep serving it.
	if got, _ := store.Get(ctx, "t1", "p1"); got == nil {
		t.Fatalf("cache dropped a session the backing store still has")
	}
}

func TestCachedMissFallsThrough(t *testing.T) {
	ctx := context.Background()
	backing := &flakyStore{Store: NewMemory()}
	backing.Store.Put(ctx, "t1", "p1", domain.NewSession())
	store := NewCached(backing)

	got, err := store.Get(ctx, "t1", "p1")
	if err != nil || got == nil {
		t.Fatalf("miss did not fall through: %v, %v", got, err)
	}
	if backing.gets != 1 {
		t.Fatalf("expected one backing read, got %d", backing.gets)
	}

	// Second read comes from cache.
	store.Get(ctx, "t1", "p1")
	if backing.gets != 1 {
		t.Fatalf("second read reached backing")
	}
}
