package customer

import (
	"context"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

type Repository interface {
	GetByPhone(ctx context.Context, tenantID, phone string) (*domain.Customer, error)
	// UpsertFromConversation creates or refreshes the customer record the
	// first time a phone number shows up in a conversation.
	UpsertFromConversation(ctx context.Context, tenantID, phone, name string) (*domain.Customer, error)
	CompletedOrderCount(ctx context.Context, tenantID, phone string) (int, error)
}
