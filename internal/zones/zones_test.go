package zones

import "testing"

func TestZoneForInnerLondon(t *testing.T) {
	calc := NewDefault()
	got := calc.ZoneFor("SE15 4AA")
	if got.Zone != "inner-london" || got.FeeCents != 350 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestZoneForLongerPrefixWins(t *testing.T) {
	calc := NewDefault()
	// NW must resolve as NW, not be shadowed by the single-letter N tier.
	got := calc.ZoneFor("NW1 8QL")
	if got.Zone != "inner-london" {
		t.Fatalf("unexpected zone %q", got.Zone)
	}
	got = calc.ZoneFor("WD17 1AA")
	if got.Zone != "outer-london" {
		t.Fatalf("expected WD in outer-london, got %q", got.Zone)
	}
}

func TestZoneForUnknownPrefixFallsBack(t *testing.T) {
	calc := NewDefault()
	got := calc.ZoneFor("EH1 2NG")
	if got.Zone != "national" || got.FeeCents != 1200 {
		t.Fatalf("unexpected fallback %+v", got)
	}
}

func TestZoneForEmptyPostcodeFallsBack(t *testing.T) {
	calc := NewDefault()
	got := calc.ZoneFor("")
	if got.Zone != "national" || got.FeeCents != 1200 {
		t.Fatalf("unexpected fallback %+v", got)
	}
	if got.EstimatedDelivery != "3-5 days" {
		t.Fatalf("unexpected ETA %q", got.EstimatedDelivery)
	}
}

func TestZoneForLowercaseAndWhitespace(t *testing.T) {
	calc := NewDefault()
	got := calc.ZoneFor("  se15 4aa ")
	if got.Zone != "inner-london" {
		t.Fatalf("unexpected zone %q", got.Zone)
	}
}

func TestZoneForCustomTable(t *testing.T) {
	calc := New(
		[]Tier{{Zone: "se-only", Prefixes: []string{"SE"}, FeeCents: 500, EstimatedDelivery: "next day"}},
		Tier{Zone: "rest", FeeCents: 900, EstimatedDelivery: "3 days"},
	)
	if got := calc.ZoneFor("SE1 1AA"); got.FeeCents != 500 {
		t.Fatalf("unexpected fee %d", got.FeeCents)
	}
	if got := calc.ZoneFor("SW1 1AA"); got.Zone != "rest" {
		t.Fatalf("unexpected zone %q", got.Zone)
	}
}
