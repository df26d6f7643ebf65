package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// Informational intents: stateless replies, never a transition.
func (e *Engine) handleInformational(ctx context.Context, tenantID, phone string, parsed domain.ParsedMessage) domain.Reply {
	switch parsed.Intent {
	case domain.IntentBrowseCatalog:
		return e.catalogReply(ctx, tenantID)
	case domain.IntentPriceCheck:
		return e.priceCheckReply(ctx, tenantID, parsed)
	case domain.IntentAvailability:
		return e.availabilityReply(ctx, tenantID, parsed)
	case domain.IntentDeliveryInquiry:
		return e.deliveryReply(parsed)
	case domain.IntentBusinessHours:
		return domain.Reply{Text: "We're open Monday to Saturday, 9am-7pm, and Sunday 11am-4pm. Orders by text are taken any time!"}
	case domain.IntentOrderStatus:
		return e.orderStatusReply(ctx, tenantID, phone)
	case domain.IntentThanks:
		return domain.Reply{Text: "You're welcome! Ẹ ṣeun — text me any time you need a top-up. 🛒"}
	default:
		return helpReply()
	}
}

func (e *Engine) catalogReply(ctx context.Context, tenantID string) domain.Reply {
	products, err := e.products.ListActive(ctx, tenantID)
	if err != nil {
		e.logger.Printf("engine: catalog list failed tenant=%s error=%v", tenantID, err)
		return domain.Reply{Text: "Sorry, I can't reach the catalog right now. Please try again in a moment."}
	}
	if len(products) == 0 {
		return domain.Reply{Text: "The catalog is being restocked — please check back soon!"}
	}

	var b strings.Builder
	b.WriteString("Here's what we have today:\n")
	const maxListed = 10
	for i, p := range products {
		if i == maxListed {
			fmt.Fprintf(&b, "…and %d more. Ask me about any product!", len(products)-maxListed)
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", p.Name, formatCents(p.PriceCents))
	}
	return domain.Reply{Text: strings.TrimRight(b.String(), "\n"), QuickReplies: []string{"Order"}}
}

func (e *Engine) priceCheckReply(ctx context.Context, tenantID string, parsed domain.ParsedMessage) domain.Reply {
	if len(parsed.Items) == 0 {
		return domain.Reply{Text: "Which product would you like the price for?", QuickReplies: []string{"Menu"}}
	}
	it := parsed.Items[0]
	p, err := e.products.GetByName(ctx, tenantID, it.ProductName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reply{Text: fmt.Sprintf("Sorry, we don't currently stock %s.", it.ProductName), QuickReplies: []string{"Menu"}}
		}
		e.logger.Printf("engine: price check failed tenant=%s product=%q error=%v", tenantID, it.ProductName, err)
		return domain.Reply{Text: "Sorry, I can't check prices right now. Please try again shortly."}
	}
	return domain.Reply{
		Text:         fmt.Sprintf("%s is %s. Want me to add it to an order?", p.Name, formatCents(p.PriceCents)),
		QuickReplies: []string{"Order", "Menu"},
	}
}

func (e *Engine) availabilityReply(ctx context.Context, tenantID string, parsed domain.ParsedMessage) domain.Reply {
	if len(parsed.Items) == 0 {
		return domain.Reply{Text: "Which product are you after? I'll check for you.", QuickReplies: []string{"Menu"}}
	}
	it := parsed.Items[0]
	p, err := e.products.GetByName(ctx, tenantID, it.ProductName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reply{Text: fmt.Sprintf("Sorry, %s is out of stock at the moment.", it.ProductName), QuickReplies: []string{"Menu"}}
		}
		e.logger.Printf("engine: availability check failed tenant=%s product=%q error=%v", tenantID, it.ProductName, err)
		return domain.Reply{Text: "Sorry, I can't check stock right now. Please try again shortly."}
	}
	return domain.Reply{
		Text:         fmt.Sprintf("Yes! We have %s in stock at %s.", p.Name, formatCents(p.PriceCents)),
		QuickReplies: []string{"Order"},
	}
}

func (e *Engine) deliveryReply(parsed domain.ParsedMessage) domain.Reply {
	if parsed.Postcode != "" {
		zone := e.zones.ZoneFor(parsed.Postcode)
		return domain.Reply{
			Text: fmt.Sprintf("Delivery to %s is %s, usually %s.", parsed.Postcode, formatCents(zone.FeeCents), zone.EstimatedDelivery),
		}
	}
	return domain.Reply{Text: "We deliver across London and the South East. Send me your postcode and I'll quote the exact fee and timing."}
}

func (e *Engine) orderStatusReply(ctx context.Context, tenantID, phone string) domain.Reply {
	last, err := e.orders.GetLastByPhone(ctx, tenantID, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reply{Text: "I couldn't find any orders for this number yet. Ready to place your first one?", QuickReplies: []string{"Order", "Menu"}}
		}
		e.logger.Printf("engine: order status failed tenant=%s phone=%s error=%v", tenantID, phone, err)
		return domain.Reply{Text: "Sorry, I can't look that up right now. Please try again shortly."}
	}
	return domain.Reply{
		Text: fmt.Sprintf("Your last order (%s, total %s) is %s.", last.CreatedAt.Format("2 Jan"), formatCents(last.TotalCents), last.Status),
	}
}
