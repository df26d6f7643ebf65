package customer

import (
	"context"
	"fmt"
	"sync"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

type memoryRepo struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
	nextID    int
}

// NewMemory returns a Repository holding the given customers, keyed by
// (tenant, phone).
func NewMemory(customers []domain.Customer) Repository {
	m := &memoryRepo{customers: map[string]*domain.Customer{}, nextID: 1}
	for i := range customers {
		c := customers[i]
		m.customers[c.TenantID+"|"+c.Phone] = &c
	}
	return m
}

func (m *memoryRepo) GetByPhone(_ context.Context, tenantID, phone string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[tenantID+"|"+phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memoryRepo) UpsertFromConversation(_ context.Context, tenantID, phone, name string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tenantID + "|" + phone
	if c, ok := m.customers[key]; ok {
		if name != "" {
			c.Name = name
		}
		cp := *c
		return &cp, nil
	}
	c := &domain.Customer{
		ID:       fmt.Sprintf("cust-%d", m.nextID),
		TenantID: tenantID,
		Phone:    phone,
		Name:     name,
	}
	m.nextID++
	m.customers[key] = c
	cp := *c
	return &cp, nil
}

func (m *memoryRepo) CompletedOrderCount(_ context.Context, tenantID, phone string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.customers[tenantID+"|"+phone]; ok {
		return c.CompletedOrders, nil
	}
	return 0, nil
}
