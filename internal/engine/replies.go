package engine

import (
	"fmt"
	"strings"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// Reply templates. Customer-facing failures are always an apology plus a
// safe next step, never an error code.

var (
	orderQuickReplies   = []string{"Yes", "No", "Cancel"}
	paymentQuickReplies = []string{"Cash", "Card", "Transfer"}
	openerQuickReplies  = []string{"Order", "Menu", "Delivery info"}
)

func formatCents(cents int64) string {
	return fmt.Sprintf("£%d.%02d", cents/100, cents%100)
}

func greetingReply(name string) domain.Reply {
	who := ""
	if name != "" {
		who = " " + name
	}
	return domain.Reply{
		Text:         fmt.Sprintf("Hello%s! Welcome to Àpínlẹ̀rọ̀. Text me your order (e.g. \"2x palm oil\") or ask for the menu.", who),
		QuickReplies: openerQuickReplies,
	}
}

func unclearOrderReply(notFound []string) domain.Reply {
	if len(notFound) > 0 {
		return domain.Reply{
			Text:         fmt.Sprintf("Sorry, I couldn't find %s in our catalog. Could you try a different name, or ask for the menu?", strings.Join(notFound, ", ")),
			QuickReplies: []string{"Menu"},
		}
	}
	return domain.Reply{
		Text:         "Sorry, I couldn't work out what you'd like to order. Try something like \"2x palm oil\" or \"1 bag of garri\".",
		QuickReplies: []string{"Menu"},
	}
}

func summarizeOrder(po *domain.PendingOrder) string {
	var b strings.Builder
	b.WriteString("Your order:\n")
	for _, it := range po.Items {
		unit := ""
		if it.Unit != "" {
			unit = " " + it.Unit
		}
		fmt.Fprintf(&b, "- %d%s %s (%s)\n", it.Quantity, unit, it.ProductName, formatCents(it.TotalCents))
	}
	if len(po.NotFoundProducts) > 0 {
		fmt.Fprintf(&b, "(couldn't find: %s)\n", strings.Join(po.NotFoundProducts, ", "))
	}
	fmt.Fprintf(&b, "Subtotal: %s\n", formatCents(po.SubtotalCents))
	if po.Postcode != "" {
		fmt.Fprintf(&b, "Delivery to %s: %s\n", po.Postcode, formatCents(po.DeliveryFeeCents))
	}
	fmt.Fprintf(&b, "Total: %s", formatCents(po.TotalCents))
	return b.String()
}

func confirmationReply(po *domain.PendingOrder) domain.Reply {
	return domain.Reply{
		Text:         summarizeOrder(po) + "\n\nShall I place this order? (yes/no)",
		QuickReplies: orderQuickReplies,
	}
}

func addressRequestReply(po *domain.PendingOrder) domain.Reply {
	return domain.Reply{
		Text: summarizeOrder(po) + "\n\nWhere should we deliver? Please send your address with postcode.",
	}
}

func orderPlacedReply(po *domain.PendingOrder) domain.Reply {
	return domain.Reply{
		Text:         fmt.Sprintf("Order placed! Total %s. How would you like to pay?", formatCents(po.TotalCents)),
		QuickReplies: paymentQuickReplies,
	}
}

func persistenceApologyReply() domain.Reply {
	return domain.Reply{
		Text:         "Sorry, something went wrong saving your order. Nothing has been lost — please try again in a moment.",
		QuickReplies: []string{"Yes", "Cancel"},
	}
}

func paymentRecordedReply(method string) domain.Reply {
	return domain.Reply{
		Text: fmt.Sprintf("Perfect, we've noted %s payment. Your order is on its way — thank you for shopping with us! 🙏", method),
	}
}

func helpReply() domain.Reply {
	return domain.Reply{
		Text:         "I can take your order, check prices, or tell you about delivery. Try \"2x palm oil to SE15 4AA\", or ask for the menu.",
		QuickReplies: openerQuickReplies,
	}
}
