package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

type memoryRepo struct {
	mu     sync.Mutex
	orders []domain.Order
	nextID int
}

// NewMemory returns an empty in-memory Repository.
func NewMemory() Repository {
	return &memoryRepo{nextID: 1}
}

func (m *memoryRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = fmt.Sprintf("order-%d", m.nextID)
	m.nextID++
	o.CreatedAt = time.Now().UTC()
	m.orders = append(m.orders, o)
	cp := o
	return &cp, nil
}

func (m *memoryRepo) UpdatePayment(_ context.Context, tenantID, orderID, method, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].TenantID == tenantID && m.orders[i].ID == orderID {
			m.orders[i].PaymentMethod = method
			m.orders[i].PaymentStatus = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memoryRepo) GetLastByPhone(_ context.Context, tenantID, phone string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].TenantID == tenantID && m.orders[i].Phone == phone {
			cp := m.orders[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}
