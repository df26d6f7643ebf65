package order

import (
	"context"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	UpdatePayment(ctx context.Context, tenantID, orderID, method, status string) error
	// GetLastByPhone returns the customer's most recent order, for reorder
	// rehydration and status replies.
	GetLastByPhone(ctx context.Context, tenantID, phone string) (*domain.Order, error)
}
