package product

import (
	"context"
	"strings"
	"sync"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// memoryRepo serves a fixed catalog from memory. Used by the replay CLI
// and tests.
type memoryRepo struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewMemory returns a Repository preloaded with the given catalog.
func NewMemory(products []domain.Product) Repository {
	return &memoryRepo{products: products}
}

func (m *memoryRepo) ListActive(_ context.Context, tenantID string) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.Active && (p.TenantID == tenantID || p.TenantID == "") {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryRepo) GetByName(_ context.Context, tenantID, name string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.Active && (p.TenantID == tenantID || p.TenantID == "") && strings.EqualFold(p.Name, name) {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}
