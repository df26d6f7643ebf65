package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/zones"
)

// stubResolver resolves a fixed mention table, recording every lookup.
type stubResolver struct {
	table   map[string]*domain.Match
	lookups []string
}

func (s *stubResolver) Resolve(_ context.Context, _ string, text string) *domain.Match {
	term := strings.ToLower(strings.TrimSpace(text))
	s.lookups = append(s.lookups, term)
	if m, ok := s.table[term]; ok {
		cp := *m
		return &cp
	}
	return nil
}

func newTestParser() (*Parser, *stubResolver) {
	res := &stubResolver{table: map[string]*domain.Match{
		"palm oil": {Name: "Palm Oil", Language: "en", Confidence: 1.0, Source: domain.MatchSourceGraphExact},
		"epo pupa": {Name: "Palm Oil", AliasMatched: "epo pupa", Language: "yo", Confidence: 0.9, Source: domain.MatchSourceFallbackTable},
		"garri":    {Name: "Garri", Language: "en", Confidence: 1.0, Source: domain.MatchSourceGraphExact},
		"egusi":    {Name: "Egusi", Language: "yo", Confidence: 0.9, Source: domain.MatchSourceFallbackTable},
		"rice":     {Name: "Rice", Language: "en", Confidence: 1.0, Source: domain.MatchSourceGraphExact},
	}}
	return New(res, zones.NewDefault(), nil), res
}

func parse(t *testing.T, text string) domain.ParsedMessage {
	t.Helper()
	p, _ := newTestParser()
	return p.Parse(context.Background(), "t1", text, domain.StateInitial)
}

func TestIntentClassification(t *testing.T) {
	cases := []struct {
		text string
		want domain.Intent
	}{
		{"hello", domain.IntentGreeting},
		{"Good morning!", domain.IntentGreeting},
		{"bawo ni", domain.IntentGreeting},
		{"yes", domain.IntentConfirm},
		{"Sounds good", domain.IntentConfirm},
		{"beeni", domain.IntentConfirm},
		{"no", domain.IntentDecline},
		{"no thanks", domain.IntentDecline},
		{"show me your menu", domain.IntentBrowseCatalog},
		{"what do you sell", domain.IntentBrowseCatalog},
		{"how much is garri", domain.IntentPriceCheck},
		{"elo ni epo pupa", domain.IntentPriceCheck},
		{"do you have egusi", domain.IntentAvailability},
		{"do you deliver to croydon", domain.IntentDeliveryInquiry},
		{"what are your opening hours", domain.IntentBusinessHours},
		{"where is my order", domain.IntentOrderStatus},
		{"cancel", domain.IntentCancel},
		{"never mind", domain.IntentCancel},
		{"same as last time", domain.IntentReorder},
		{"my usual order please", domain.IntentReorder},
		{"I'll pay by card", domain.IntentPaymentCard},
		{"bank transfer", domain.IntentPaymentTransfer},
		{"cash on delivery", domain.IntentPaymentCash},
		{"thanks", domain.IntentThanks},
		{"e se", domain.IntentThanks},
		{"2x palm oil", domain.IntentNewOrder},
		{"i want garri", domain.IntentNewOrder},
		{"i'm making soup, send me egusi", domain.IntentNewOrder},
		{"epo pupa", domain.IntentNewOrder},
		{"what is the meaning of life", domain.IntentGeneralInquiry},
	}
	for _, c := range cases {
		if got := parse(t, c.text).Intent; got != c.want {
			t.Errorf("%q: got %s, want %s", c.text, got, c.want)
		}
	}
}

func TestWordBoundariesPreventFalseIntents(t *testing.T) {
	cases := []struct {
		text  string
		avoid domain.Intent
	}{
		{"I know what I want, give me rice", domain.IntentDecline},       // "no" inside "know"
		{"my address is 5 Cardinal Way", domain.IntentPaymentCard},       // "card" inside "Cardinal"
		{"these look great", domain.IntentThanks},                        // "ese" inside "these"
		{"the cancellation policy question", domain.IntentCancel},        // "cancel" inside "cancellation"
		{"deliver to my address please: 1 Mill Lane", domain.IntentNewOrder}, // "add" inside "address"
	}
	for _, c := range cases {
		if got := parse(t, c.text).Intent; got == c.avoid {
			t.Errorf("%q: misclassified as %s", c.text, got)
		}
	}
}

func TestConfirmationLeniency(t *testing.T) {
	p, _ := newTestParser()

	got := p.Parse(context.Background(), "t1", "yes please go ahead", domain.StateAwaitingConfirmation)
	if got.Intent != domain.IntentConfirm {
		t.Fatalf("lenient confirm: got %s", got.Intent)
	}
	got = p.Parse(context.Background(), "t1", "hmm no not that one", domain.StateAwaitingConfirmation)
	if got.Intent != domain.IntentDecline {
		t.Fatalf("lenient decline: got %s", got.Intent)
	}
	// "cancel" counts as a decline only while a confirmation is pending.
	got = p.Parse(context.Background(), "t1", "cancel that", domain.StateAwaitingConfirmation)
	if got.Intent != domain.IntentDecline {
		t.Fatalf("lenient cancel: got %s", got.Intent)
	}

	// Outside the confirmation turn the same words need to stand alone.
	got = p.Parse(context.Background(), "t1", "yes please go ahead", domain.StateInitial)
	if got.Intent == domain.IntentConfirm {
		t.Fatalf("embedded confirm fired outside AWAITING_CONFIRMATION")
	}
}

func TestQuantityXPattern(t *testing.T) {
	pm := parse(t, "2x palm oil and 1x garri")
	if len(pm.Items) != 2 {
		t.Fatalf("expected 2 items, got %+v", pm.Items)
	}
	if pm.Items[0].ProductName != "Palm Oil" || pm.Items[0].Quantity != 2 {
		t.Fatalf("unexpected first item %+v", pm.Items[0])
	}
	if pm.Items[1].ProductName != "Garri" || pm.Items[1].Quantity != 1 {
		t.Fatalf("unexpected second item %+v", pm.Items[1])
	}
}

func TestQuantityUnitPattern(t *testing.T) {
	pm := parse(t, "please send 3 bottles of palm oil")
	if len(pm.Items) != 1 {
		t.Fatalf("expected 1 item, got %+v", pm.Items)
	}
	it := pm.Items[0]
	if it.ProductName != "Palm Oil" || it.Quantity != 3 || it.Unit != "bottle" {
		t.Fatalf("unexpected item %+v", it)
	}
}

func TestDashQuantityPattern(t *testing.T) {
	pm := parse(t, "garri - 2 bags")
	if len(pm.Items) != 1 {
		t.Fatalf("expected 1 item, got %+v", pm.Items)
	}
	it := pm.Items[0]
	if it.ProductName != "Garri" || it.Quantity != 2 || it.Unit != "bag" {
		t.Fatalf("unexpected item %+v", it)
	}
}

func TestWindowFallbackPattern(t *testing.T) {
	pm := parse(t, "abeg i need epo pupa")
	if len(pm.Items) != 1 {
		t.Fatalf("expected 1 item, got %+v", pm.Items)
	}
	it := pm.Items[0]
	if it.ProductName != "Palm Oil" || it.Quantity != 1 || it.Language != "yo" {
		t.Fatalf("unexpected item %+v", it)
	}
}

func TestWindowFallbackRejectsLowConfidence(t *testing.T) {
	p, res := newTestParser()
	res.table["sorta rice"] = &domain.Match{Name: "Rice", Confidence: 0.5, Source: domain.MatchSourceFuzzyName}

	pm := p.Parse(context.Background(), "t1", "sorta rice", domain.StateInitial)
	for _, it := range pm.Items {
		if it.Confidence < 0.8 {
			t.Fatalf("low-confidence window match accepted: %+v", it)
		}
	}
}

func TestFirstYieldingPatternWins(t *testing.T) {
	// Both the NxP and the dash pattern could read this message; only the
	// first should run and the item must not duplicate.
	pm := parse(t, "2x garri")
	if len(pm.Items) != 1 || pm.Items[0].Quantity != 2 {
		t.Fatalf("expected single qty-2 item, got %+v", pm.Items)
	}
}

func TestUnresolvedMentionsAreReported(t *testing.T) {
	pm := parse(t, "2x palm oil and 1x dragon fruit")
	if len(pm.Items) != 1 {
		t.Fatalf("expected 1 resolved item, got %+v", pm.Items)
	}
	if len(pm.NotFound) != 1 || pm.NotFound[0] != "dragon fruit" {
		t.Fatalf("expected dragon fruit in notFound, got %v", pm.NotFound)
	}
	if pm.Intent != domain.IntentNewOrder {
		t.Fatalf("order with unknown item lost its intent: %s", pm.Intent)
	}
}

func TestAddressExtraction(t *testing.T) {
	cases := []struct {
		text         string
		wantAddress  string
		wantPostcode string
	}{
		{"2x garri deliver to 12 Mill Lane SE15 4AA", "12 Mill Lane SE15 4AA", "SE15 4AA"},
		{"send it to flat 3, 9 Acre Road, CR0 2AB", "flat 3, 9 Acre Road, CR0 2AB", "CR0 2AB"},
		{"my address is 44 High Street E1 6AN", "44 High Street E1 6AN", "E1 6AN"},
		{"2x rice SE154AA", "", "SE15 4AA"},
		{"no address here at all", "", ""},
	}
	for _, c := range cases {
		pm := parse(t, c.text)
		if pm.Postcode != c.wantPostcode {
			t.Errorf("%q: postcode %q, want %q", c.text, pm.Postcode, c.wantPostcode)
		}
		if c.wantAddress != "" && !strings.Contains(pm.Address, c.wantPostcode) {
			t.Errorf("%q: address %q missing postcode", c.text, pm.Address)
		}
	}
}

func TestPostcodeNormalization(t *testing.T) {
	for _, raw := range []string{"se15 4aa", "SE154AA", "Se15  4Aa"} {
		pm := parse(t, "2x garri to "+raw)
		if pm.Postcode != "SE15 4AA" {
			t.Errorf("%q: got %q", raw, pm.Postcode)
		}
	}
}

func TestAddressTextNotResolvedAsProducts(t *testing.T) {
	p, res := newTestParser()
	p.Parse(context.Background(), "t1", "2x palm oil to 7 Rice Terrace SE15 4AA", domain.StateInitial)
	for _, l := range res.lookups {
		if strings.Contains(l, "terrace") {
			t.Fatalf("address text reached the resolver: %q", l)
		}
	}
}

func TestIsCompleteOrder(t *testing.T) {
	if pm := parse(t, "2x palm oil to SE15 4AA"); !pm.IsCompleteOrder {
		t.Fatalf("items+postcode should be complete: %+v", pm)
	}
	if pm := parse(t, "2x palm oil"); pm.IsCompleteOrder {
		t.Fatalf("missing postcode must not be complete")
	}
	if pm := parse(t, "deliver to SE15 4AA"); pm.IsCompleteOrder {
		t.Fatalf("postcode without items must not be complete")
	}
}

func TestDeliveryZoneAttached(t *testing.T) {
	pm := parse(t, "2x garri to SE15 4AA")
	if pm.DeliveryZone == "" {
		t.Fatalf("expected a delivery zone for SE15")
	}
}

func TestEmptyMessage(t *testing.T) {
	pm := parse(t, "   ")
	if pm.Intent != domain.IntentGeneralInquiry || len(pm.Items) != 0 {
		t.Fatalf("unexpected parse of blank text: %+v", pm)
	}
}
