// Package zones maps UK postcodes to delivery pricing tiers. The tier
// table is injectable per deployment; the default covers Greater London
// and the home counties.
package zones

import "strings"

// Tier is one delivery pricing band.
type Tier struct {
	Zone              string
	Prefixes          []string
	FeeCents          int64
	EstimatedDelivery string
}

// Result is the priced outcome for one postcode.
type Result struct {
	Zone              string
	FeeCents          int64
	EstimatedDelivery string
}

// Calculator resolves a postcode's area prefix against an ordered tier
// table. Unknown prefixes and empty postcodes both land on the fallback
// tier: treat "unknown" as "far away", never as free or fast.
type Calculator struct {
	tiers    []Tier
	fallback Tier
}

// New builds a Calculator from a tier table and a fallback tier.
func New(tiers []Tier, fallback Tier) *Calculator {
	return &Calculator{tiers: tiers, fallback: fallback}
}

// NewDefault builds a Calculator with the built-in London-centred table.
func NewDefault() *Calculator {
	return New(DefaultTiers(), DefaultFallback())
}

// DefaultTiers returns the built-in tier table.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Zone:              "inner-london",
			Prefixes:          []string{"EC", "WC", "E", "N", "NW", "SE", "SW", "W"},
			FeeCents:          350,
			EstimatedDelivery: "same day",
		},
		{
			Zone:              "outer-london",
			Prefixes:          []string{"BR", "CR", "DA", "EN", "HA", "IG", "KT", "RM", "SM", "TW", "UB", "WD"},
			FeeCents:          500,
			EstimatedDelivery: "next day",
		},
		{
			Zone:              "home-counties",
			Prefixes:          []string{"AL", "CM", "GU", "LU", "ME", "MK", "OX", "RG", "RH", "SL", "SS"},
			FeeCents:          800,
			EstimatedDelivery: "2-3 days",
		},
	}
}

// DefaultFallback returns the built-in catch-all tier.
func DefaultFallback() Tier {
	return Tier{
		Zone:              "national",
		Prefixes:          nil,
		FeeCents:          1200,
		EstimatedDelivery: "3-5 days",
	}
}

// ZoneFor resolves a postcode to its tier. Longer prefixes win over
// shorter ones so "NW" is never shadowed by "N".
func (c *Calculator) ZoneFor(postcode string) Result {
	area := areaPrefix(postcode)
	if area == "" {
		return asResult(c.fallback)
	}

	best := Tier{}
	bestLen := 0
	for _, tier := range c.tiers {
		for _, prefix := range tier.Prefixes {
			if prefix == area && len(prefix) > bestLen {
				best = tier
				bestLen = len(prefix)
			}
		}
	}
	if bestLen == 0 {
		return asResult(c.fallback)
	}
	return asResult(best)
}

func asResult(t Tier) Result {
	return Result{Zone: t.Zone, FeeCents: t.FeeCents, EstimatedDelivery: t.EstimatedDelivery}
}

// areaPrefix extracts the leading alphabetic area code, e.g. "SE15 4AA"
// yields "SE".
func areaPrefix(postcode string) string {
	s := strings.ToUpper(strings.TrimSpace(postcode))
	end := 0
	for end < len(s) && s[end] >= 'A' && s[end] <= 'Z' {
		end++
	}
	return s[:end]
}
