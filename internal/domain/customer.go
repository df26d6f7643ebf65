package domain

import "time"

// Customer represents a known buyer tied to a tenant, keyed by phone number.
type Customer struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"-"`
	Phone           string    `json:"phone"`
	Name            string    `json:"name,omitempty"`
	Address         string    `json:"address,omitempty"`
	Postcode        string    `json:"postcode,omitempty"`
	CompletedOrders int       `json:"completedOrders"`
	CreatedAt       time.Time `json:"createdAt"`
}
