package domain

import "time"

// Payment methods a customer can pick after an order is created.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Order statuses as stored.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPaid      = "paid"
)

type Order struct {
	ID               string      `json:"id"`
	TenantID         string      `json:"-"`
	CustomerID       string      `json:"customerId,omitempty"`
	Phone            string      `json:"phone"`
	Items            []OrderItem `json:"items"`
	SubtotalCents    int64       `json:"subtotalCents"`
	DeliveryFeeCents int64       `json:"deliveryFeeCents"`
	TotalCents       int64       `json:"totalCents"`
	Address          string      `json:"address,omitempty"`
	Postcode         string      `json:"postcode,omitempty"`
	Zone             string      `json:"zone,omitempty"`
	Status           string      `json:"status"`
	PaymentMethod    string      `json:"paymentMethod,omitempty"`
	PaymentStatus    string      `json:"paymentStatus,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// OrderItem is a resolved product mention with quantity and pricing.
// Resolution metadata records how the free-text mention was matched.
type OrderItem struct {
	ProductID      string  `json:"productId,omitempty"`
	ProductName    string  `json:"productName"`
	Quantity       int     `json:"quantity"`
	Unit           string  `json:"unit,omitempty"`
	UnitPriceCents int64   `json:"unitPriceCents"`
	TotalCents     int64   `json:"totalCents"`
	Language       string  `json:"language,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	Source         string  `json:"source,omitempty"`
	TypoDetected   bool    `json:"typoDetected,omitempty"`
}
