// Package parser turns one raw inbound message into a structured
// ParsedMessage: a classified intent, extracted order items, and a
// delivery address with its priced zone.
package parser

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/zones"
)

type productResolver interface {
	Resolve(ctx context.Context, tenantID, text string) *domain.Match
}

type zoneCalculator interface {
	ZoneFor(postcode string) zones.Result
}

type Parser struct {
	resolver productResolver
	zones    zoneCalculator
	logger   *log.Logger
}

// New builds a Parser. A nil logger discards.
func New(resolver productResolver, zones zoneCalculator, logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Parser{resolver: resolver, zones: zones, logger: logger}
}

// Parse extracts intent, items and address from one message. state is the
// customer's current conversation state and only loosens confirm/decline
// matching; Parse never mutates anything.
func (p *Parser) Parse(ctx context.Context, tenantID, text string, state domain.State) domain.ParsedMessage {
	pm := domain.ParsedMessage{Intent: domain.IntentGeneralInquiry}
	if strings.TrimSpace(text) == "" {
		return pm
	}

	pm.Address, pm.Postcode = extractAddress(text)
	if pm.Postcode != "" && p.zones != nil {
		pm.DeliveryZone = p.zones.ZoneFor(pm.Postcode).Zone
	}

	pm.Items, pm.NotFound = p.extractItems(ctx, tenantID, itemText(text, pm.Address, pm.Postcode))
	// Unresolved quantity mentions still signal order phrasing; the engine
	// answers those with a "couldn't find" reply rather than generic help.
	pm.Intent = classifyIntent(text, state, len(pm.Items) > 0 || len(pm.NotFound) > 0)
	pm.IsCompleteOrder = len(pm.Items) > 0 && pm.Postcode != ""

	p.logger.Printf("parser: intent=%s items=%d postcode=%q complete=%t", pm.Intent, len(pm.Items), pm.Postcode, pm.IsCompleteOrder)
	return pm
}

// itemText strips the address portion of the message so street names do
// not get resolved as products.
func itemText(text, address, postcode string) string {
	lower := strings.ToLower(text)
	cut := len(text)
	for _, kw := range addressKeywords {
		if idx := strings.Index(lower, kw); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	if loc := postcodeRe.FindStringIndex(text); loc != nil && loc[0] < cut {
		cut = loc[0]
	}
	// An address reclaimed from before the postcode starts earlier than
	// the postcode itself; cut there so street names stay out too.
	if head := strings.TrimSpace(strings.TrimSuffix(address, postcode)); head != "" {
		if idx := strings.Index(lower, strings.ToLower(head)); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	out := strings.TrimSpace(text[:cut])
	// Drop a dangling connective left over from "... to SE15 4AA".
	for _, n := range trailingAddressNoise {
		if strings.HasSuffix(strings.ToLower(out), " "+n) {
			out = strings.TrimSpace(out[:len(out)-len(n)-1])
			break
		}
	}
	return out
}
