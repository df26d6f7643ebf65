package domain

import "time"

// State is the conversation position for one (tenant, phone) pair.
type State string

const (
	StateInitial              State = "INITIAL"
	StateGreeted              State = "GREETED"
	StateAwaitingAddress      State = "AWAITING_ADDRESS"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateEditingOrder         State = "EDITING_ORDER"
	StateAwaitingPayment      State = "AWAITING_PAYMENT"
	StateOrderCompleted       State = "ORDER_COMPLETED"
)

// Session holds everything remembered between two messages from the same
// customer. PendingOrder is non-nil only while an order is being assembled
// (AWAITING_ADDRESS, AWAITING_CONFIRMATION, EDITING_ORDER).
type Session struct {
	State        State             `json:"state"`
	PendingOrder *PendingOrder     `json:"pendingOrder,omitempty"`
	Context      map[string]string `json:"context,omitempty"`
	CustomerID   string            `json:"customerId,omitempty"`
	CustomerName string            `json:"customerName,omitempty"`
	LastOrderID  string            `json:"lastOrderId,omitempty"`
	LastActivity time.Time         `json:"lastActivity"`
}

// NewSession returns a session at the start of a conversation.
func NewSession() *Session {
	return &Session{
		State:        StateInitial,
		Context:      map[string]string{},
		LastActivity: time.Now().UTC(),
	}
}

// Reset returns the session to INITIAL and drops any order in progress.
func (s *Session) Reset() {
	s.State = StateInitial
	s.PendingOrder = nil
	s.Context = map[string]string{}
}

// AllowsPendingOrder reports whether the state may carry a pending order.
func (s State) AllowsPendingOrder() bool {
	switch s {
	case StateAwaitingAddress, StateAwaitingConfirmation, StateEditingOrder:
		return true
	}
	return false
}

// Clone returns a deep copy so stores can hand out sessions without
// sharing mutable state across turns.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.Context != nil {
		out.Context = make(map[string]string, len(s.Context))
		for k, v := range s.Context {
			out.Context[k] = v
		}
	}
	if s.PendingOrder != nil {
		po := *s.PendingOrder
		po.Items = append([]OrderItem(nil), s.PendingOrder.Items...)
		po.NotFoundProducts = append([]string(nil), s.PendingOrder.NotFoundProducts...)
		out.PendingOrder = &po
	}
	return &out
}

// PendingOrder is an order assembled from conversation but not yet persisted.
type PendingOrder struct {
	Items            []OrderItem `json:"items"`
	SubtotalCents    int64       `json:"subtotalCents"`
	DeliveryFeeCents int64       `json:"deliveryFeeCents"`
	TotalCents       int64       `json:"totalCents"`
	Address          string      `json:"address,omitempty"`
	Postcode         string      `json:"postcode,omitempty"`
	Zone             string      `json:"zone,omitempty"`
	NotFoundProducts []string    `json:"notFoundProducts,omitempty"`
}

// Reprice recomputes subtotal and total from line items and the given
// delivery fee. Call it whenever items or the zone change.
func (p *PendingOrder) Reprice(deliveryFeeCents int64) {
	var subtotal int64
	for i := range p.Items {
		p.Items[i].TotalCents = p.Items[i].UnitPriceCents * int64(p.Items[i].Quantity)
		subtotal += p.Items[i].TotalCents
	}
	p.SubtotalCents = subtotal
	p.DeliveryFeeCents = deliveryFeeCents
	p.TotalCents = subtotal + deliveryFeeCents
}
