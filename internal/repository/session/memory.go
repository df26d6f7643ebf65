package session

import (
	"context"
	"sync"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// memoryStore keeps sessions in-process. Used by tests, the replay CLI and
// deployments that can afford to lose sessions on restart.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemory returns an empty in-memory Store.
func NewMemory() Store {
	return &memoryStore{sessions: map[string]*domain.Session{}}
}

func (m *memoryStore) Get(_ context.Context, tenantID, phone string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[Key(tenantID, phone)].Clone(), nil
}

func (m *memoryStore) Put(_ context.Context, tenantID, phone string, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[Key(tenantID, phone)] = s.Clone()
	return nil
}

func (m *memoryStore) Delete(_ context.Context, tenantID, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, Key(tenantID, phone))
	return nil
}
