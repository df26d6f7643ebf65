// Package engine drives the per-customer conversation state machine: it
// takes one parsed inbound message, decides the transition, assembles and
// prices pending orders, applies the auto-confirm policy and emits a
// provider-agnostic reply.
package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/repository/session"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/zones"
)

type utteranceParser interface {
	Parse(ctx context.Context, tenantID, text string, state domain.State) domain.ParsedMessage
}

type zoneCalculator interface {
	ZoneFor(postcode string) zones.Result
}

type productRepo interface {
	ListActive(ctx context.Context, tenantID string) ([]domain.Product, error)
	GetByName(ctx context.Context, tenantID, name string) (*domain.Product, error)
}

type customerRepo interface {
	GetByPhone(ctx context.Context, tenantID, phone string) (*domain.Customer, error)
	UpsertFromConversation(ctx context.Context, tenantID, phone, name string) (*domain.Customer, error)
	CompletedOrderCount(ctx context.Context, tenantID, phone string) (int, error)
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	UpdatePayment(ctx context.Context, tenantID, orderID, method, status string) error
	GetLastByPhone(ctx context.Context, tenantID, phone string) (*domain.Order, error)
}

// Config carries the engine's policy knobs.
type Config struct {
	// Auto-confirm fires only for customers with at least MinOrders prior
	// completed orders and totals strictly under MaxTotalCents.
	AutoConfirmMinOrders int
	AutoConfirmMaxCents  int64

	// Lazy session expiry windows.
	AnonymousTTL time.Duration
	TenantTTL    time.Duration

	// Production degrades invariant violations to a session reset instead
	// of surfacing them.
	Production bool
}

type Engine struct {
	sessions  session.Store
	products  productRepo
	customers customerRepo
	orders    orderRepo
	parser    utteranceParser
	zones     zoneCalculator
	cfg       Config
	logger    *log.Logger
	locks     *keyedMutex
}

// New wires an Engine. A nil logger discards.
func New(sessions session.Store, products productRepo, customers customerRepo, orders orderRepo, parser utteranceParser, zc zoneCalculator, cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		sessions:  sessions,
		products:  products,
		customers: customers,
		orders:    orders,
		parser:    parser,
		zones:     zc,
		cfg:       cfg,
		logger:    logger,
		locks:     newKeyedMutex(),
	}
}

// HandleTurn processes one inbound message and returns the reply
// directive. Turns for the same (tenant, phone) are serialized; the
// session is re-persisted before the reply is returned.
func (e *Engine) HandleTurn(ctx context.Context, tenantID, phone, customerName, text string) (domain.Reply, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.TrimSpace(text) == "" {
		return domain.Reply{}, domain.ErrInvalidTurn
	}

	unlock := e.locks.Lock(session.Key(tenantID, phone))
	defer unlock()

	sess, err := e.loadSession(ctx, tenantID, phone)
	if err != nil {
		return domain.Reply{}, err
	}

	if sess.PendingOrder != nil && !sess.State.AllowsPendingOrder() {
		e.logger.Printf("engine: invariant violation state=%s with pending order, tenant=%s phone=%s", sess.State, tenantID, phone)
		if !e.cfg.Production {
			return domain.Reply{}, domain.ErrInvariantViolation
		}
		sess.Reset()
	}

	e.identifyCustomer(ctx, tenantID, phone, customerName, sess)

	parsed := e.parser.Parse(ctx, tenantID, text, sess.State)
	reply, orderCreated := e.dispatch(ctx, tenantID, phone, text, parsed, sess)

	sess.LastActivity = time.Now().UTC()
	if err := e.sessions.Put(ctx, tenantID, phone, sess); err != nil {
		e.logger.Printf("engine: session write failed tenant=%s phone=%s error=%v", tenantID, phone, err)
		if !orderCreated {
			return persistenceApologyReply(), nil
		}
		// The order exists; losing it would be worse than a stale session.
	}
	return reply, nil
}

// loadSession fetches the session, applying lazy TTL expiry.
func (e *Engine) loadSession(ctx context.Context, tenantID, phone string) (*domain.Session, error) {
	sess, err := e.sessions.Get(ctx, tenantID, phone)
	if err != nil {
		e.logger.Printf("engine: session read failed tenant=%s phone=%s error=%v", tenantID, phone, err)
		return nil, err
	}
	if sess == nil {
		return domain.NewSession(), nil
	}

	ttl := e.cfg.TenantTTL
	if tenantID == "" {
		ttl = e.cfg.AnonymousTTL
	}
	if ttl > 0 && time.Since(sess.LastActivity) > ttl {
		e.logger.Printf("engine: session expired tenant=%s phone=%s idle=%s", tenantID, phone, time.Since(sess.LastActivity))
		return domain.NewSession(), nil
	}
	if sess.Context == nil {
		sess.Context = map[string]string{}
	}
	return sess, nil
}

// identifyCustomer links the session to the customer record, creating one
// on first contact. Failures leave the turn anonymous.
func (e *Engine) identifyCustomer(ctx context.Context, tenantID, phone, name string, sess *domain.Session) {
	if sess.CustomerID != "" {
		if name != "" && sess.CustomerName == "" {
			sess.CustomerName = name
		}
		return
	}
	cust, err := e.customers.UpsertFromConversation(ctx, tenantID, phone, name)
	if err != nil {
		e.logger.Printf("engine: customer upsert failed tenant=%s phone=%s error=%v", tenantID, phone, err)
		return
	}
	sess.CustomerID = cust.ID
	if sess.CustomerName == "" {
		sess.CustomerName = cust.Name
	}
}

// dispatch routes one parsed message through the transition table. The
// second return reports whether an order row was created this turn.
func (e *Engine) dispatch(ctx context.Context, tenantID, phone, text string, parsed domain.ParsedMessage, sess *domain.Session) (domain.Reply, bool) {
	switch parsed.Intent {
	case domain.IntentGreeting:
		if sess.State == domain.StateInitial {
			sess.State = domain.StateGreeted
		}
		return greetingReply(sess.CustomerName), false

	case domain.IntentNewOrder:
		return e.handleNewOrder(ctx, tenantID, phone, parsed, sess)

	case domain.IntentConfirm:
		return e.handleConfirm(ctx, tenantID, phone, sess)

	case domain.IntentDecline:
		return e.handleDecline(sess), false

	case domain.IntentCancel:
		return e.handleCancel(ctx, tenantID, phone, sess), false

	case domain.IntentReorder:
		return e.handleReorder(ctx, tenantID, phone, sess), false

	case domain.IntentPaymentCash, domain.IntentPaymentCard, domain.IntentPaymentTransfer:
		return e.handlePayment(ctx, tenantID, parsed.Intent, sess), false

	case domain.IntentGeneralInquiry:
		if sess.State == domain.StateAwaitingAddress {
			return e.handleAddressTurn(ctx, tenantID, text, parsed, sess), false
		}
		return helpReply(), false

	default:
		// Informational intents: stateless replies, no transition.
		return e.handleInformational(ctx, tenantID, phone, parsed), false
	}
}

// handleNewOrder implements the NEW_ORDER column of the transition table.
func (e *Engine) handleNewOrder(ctx context.Context, tenantID, phone string, parsed domain.ParsedMessage, sess *domain.Session) (domain.Reply, bool) {
	items, notFound := e.priceItems(ctx, tenantID, parsed.Items)
	notFound = append(notFound, parsed.NotFound...)
	if len(items) == 0 {
		return unclearOrderReply(notFound), false
	}

	po := &domain.PendingOrder{
		Items:            items,
		Address:          parsed.Address,
		Postcode:         parsed.Postcode,
		NotFoundProducts: notFound,
	}

	// Fall back to the address on file for returning customers.
	if po.Postcode == "" {
		if cust, err := e.customers.GetByPhone(ctx, tenantID, phone); err == nil && cust.Postcode != "" {
			po.Postcode = cust.Postcode
			if po.Address == "" {
				po.Address = cust.Address
			}
		}
	}

	if po.Postcode == "" {
		po.Reprice(0)
		sess.State = domain.StateAwaitingAddress
		sess.PendingOrder = po
		return addressRequestReply(po), false
	}

	zone := e.zones.ZoneFor(po.Postcode)
	po.Zone = zone.Zone
	po.Reprice(zone.FeeCents)
	sess.Context["postcode"] = po.Postcode

	if parsed.IsCompleteOrder && e.qualifiesForAutoConfirm(ctx, tenantID, phone, po) {
		if reply, ok := e.createOrder(ctx, tenantID, phone, po, sess); ok {
			return reply, true
		}
		// Creation failed: fall back to the explicit confirmation turn
		// rather than losing the order.
	}

	sess.State = domain.StateAwaitingConfirmation
	sess.PendingOrder = po
	return confirmationReply(po), false
}

// qualifiesForAutoConfirm applies the trust policy: enough prior completed
// orders and a total under the threshold.
func (e *Engine) qualifiesForAutoConfirm(ctx context.Context, tenantID, phone string, po *domain.PendingOrder) bool {
	if e.cfg.AutoConfirmMinOrders <= 0 {
		return false
	}
	if po.TotalCents >= e.cfg.AutoConfirmMaxCents {
		return false
	}
	prior, err := e.customers.CompletedOrderCount(ctx, tenantID, phone)
	if err != nil {
		e.logger.Printf("engine: order count failed tenant=%s phone=%s error=%v", tenantID, phone, err)
		return false
	}
	return prior >= e.cfg.AutoConfirmMinOrders
}

// createOrder persists the pending order and advances to AWAITING_PAYMENT.
// On failure the session is left untouched so the customer can retry.
func (e *Engine) createOrder(ctx context.Context, tenantID, phone string, po *domain.PendingOrder, sess *domain.Session) (domain.Reply, bool) {
	created, err := e.orders.Create(ctx, domain.Order{
		TenantID:         tenantID,
		CustomerID:       sess.CustomerID,
		Phone:            phone,
		Items:            po.Items,
		SubtotalCents:    po.SubtotalCents,
		DeliveryFeeCents: po.DeliveryFeeCents,
		TotalCents:       po.TotalCents,
		Address:          po.Address,
		Postcode:         po.Postcode,
		Zone:             po.Zone,
		Status:           domain.OrderStatusConfirmed,
	})
	if err != nil {
		e.logger.Printf("engine: order create failed tenant=%s phone=%s error=%v", tenantID, phone, err)
		return domain.Reply{}, false
	}
	sess.LastOrderID = created.ID
	sess.PendingOrder = nil
	sess.State = domain.StateAwaitingPayment
	return orderPlacedReply(po), true
}

func (e *Engine) handleConfirm(ctx context.Context, tenantID, phone string, sess *domain.Session) (domain.Reply, bool) {
	switch sess.State {
	case domain.StateAwaitingConfirmation:
		po := sess.PendingOrder
		if po == nil {
			sess.Reset()
			return helpReply(), false
		}
		reply, ok := e.createOrder(ctx, tenantID, phone, po, sess)
		if !ok {
			// State and pending order stay put; "yes" again retries.
			return persistenceApologyReply(), false
		}
		return reply, true

	case domain.StateAwaitingAddress:
		return domain.Reply{Text: "Almost there — I still need your delivery address and postcode before I can place the order."}, false

	default:
		return domain.Reply{Text: "There's no order waiting for confirmation. Text me what you'd like to order!"}, false
	}
}

func (e *Engine) handleDecline(sess *domain.Session) domain.Reply {
	if sess.State == domain.StateAwaitingConfirmation {
		sess.State = domain.StateEditingOrder
		return domain.Reply{
			Text:         "No problem. Tell me what to change — you can resend the full order, or say cancel to start over.",
			QuickReplies: []string{"Cancel"},
		}
	}
	sess.Reset()
	return domain.Reply{Text: "Okay, I've cleared that. What would you like instead?", QuickReplies: openerQuickReplies}
}

func (e *Engine) handleCancel(ctx context.Context, tenantID, phone string, sess *domain.Session) domain.Reply {
	sess.Reset()
	if err := e.sessions.Delete(ctx, tenantID, phone); err != nil {
		e.logger.Printf("engine: session delete failed tenant=%s phone=%s error=%v", tenantID, phone, err)
	}
	return domain.Reply{Text: "Your order has been cancelled. Text me whenever you're ready to order again!", QuickReplies: openerQuickReplies}
}

func (e *Engine) handleReorder(ctx context.Context, tenantID, phone string, sess *domain.Session) domain.Reply {
	last, err := e.orders.GetLastByPhone(ctx, tenantID, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reply{Text: "I couldn't find a previous order for you. Text me what you'd like and I'll set it up!", QuickReplies: []string{"Menu"}}
		}
		e.logger.Printf("engine: reorder lookup failed tenant=%s phone=%s error=%v", tenantID, phone, err)
		return persistenceApologyReply()
	}

	po := &domain.PendingOrder{
		Items:            append([]domain.OrderItem(nil), last.Items...),
		SubtotalCents:    last.SubtotalCents,
		DeliveryFeeCents: last.DeliveryFeeCents,
		TotalCents:       last.TotalCents,
		Address:          last.Address,
		Postcode:         last.Postcode,
		Zone:             last.Zone,
	}
	sess.PendingOrder = po
	sess.State = domain.StateAwaitingConfirmation
	return confirmationReply(po)
}

func (e *Engine) handlePayment(ctx context.Context, tenantID string, intent domain.Intent, sess *domain.Session) domain.Reply {
	if sess.LastOrderID == "" {
		return domain.Reply{Text: "There's no order pending payment. Text me what you'd like to order!", QuickReplies: openerQuickReplies}
	}

	method := domain.PaymentCash
	switch intent {
	case domain.IntentPaymentCard:
		method = domain.PaymentCard
	case domain.IntentPaymentTransfer:
		method = domain.PaymentTransfer
	}

	if err := e.orders.UpdatePayment(ctx, tenantID, sess.LastOrderID, method, "pending"); err != nil {
		e.logger.Printf("engine: payment update failed tenant=%s order=%s error=%v", tenantID, sess.LastOrderID, err)
		return persistenceApologyReply()
	}
	sess.State = domain.StateOrderCompleted
	return paymentRecordedReply(method)
}

// handleAddressTurn reinterprets a free-form message as the missing
// delivery address while AWAITING_ADDRESS.
func (e *Engine) handleAddressTurn(ctx context.Context, tenantID, text string, parsed domain.ParsedMessage, sess *domain.Session) domain.Reply {
	po := sess.PendingOrder
	if po == nil {
		sess.Reset()
		return helpReply()
	}

	address, postcode := parsed.Address, parsed.Postcode
	if address == "" && postcode == "" {
		// The whole message might just be a street address without a
		// keyword or postcode; accept it if it looks address-like.
		trimmed := strings.TrimSpace(text)
		if len(trimmed) >= 8 && strings.ContainsAny(trimmed, "0123456789") {
			address = trimmed
		}
	}
	if address == "" && postcode == "" {
		return domain.Reply{Text: "I still need your delivery address — please include your postcode (e.g. SE15 4AA)."}
	}

	po.Address = address
	po.Postcode = postcode
	zone := e.zones.ZoneFor(postcode)
	po.Zone = zone.Zone
	po.Reprice(zone.FeeCents)
	if postcode != "" {
		sess.Context["postcode"] = postcode
	}
	sess.State = domain.StateAwaitingConfirmation
	return confirmationReply(po)
}

// priceItems looks up each resolved item's catalog entry and prices the
// line. Items whose product vanished from the catalog are dropped into
// notFound.
func (e *Engine) priceItems(ctx context.Context, tenantID string, items []domain.OrderItem) ([]domain.OrderItem, []string) {
	var (
		priced   []domain.OrderItem
		notFound []string
	)
	for _, it := range items {
		p, err := e.products.GetByName(ctx, tenantID, it.ProductName)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				e.logger.Printf("engine: price lookup failed tenant=%s product=%q error=%v", tenantID, it.ProductName, err)
			}
			notFound = append(notFound, it.ProductName)
			continue
		}
		it.ProductID = p.ID
		it.UnitPriceCents = p.PriceCents
		it.TotalCents = p.PriceCents * int64(it.Quantity)
		priced = append(priced, it)
	}
	return priced, notFound
}
