package domain

import "time"

type Product struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"-"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	PriceCents int64     `json:"priceCents"`
	Currency   string    `json:"currency"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Alias is a language-tagged synonym that resolves to a canonical product name.
type Alias struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"-"`
	ProductName string    `json:"productName"`
	Term        string    `json:"term"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"createdAt"`
}
