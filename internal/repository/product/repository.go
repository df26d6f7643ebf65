package product

import (
	"context"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

type Repository interface {
	ListActive(ctx context.Context, tenantID string) ([]domain.Product, error)
	GetByName(ctx context.Context, tenantID, name string) (*domain.Product, error)
}
