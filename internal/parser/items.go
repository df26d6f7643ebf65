package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// The four extraction patterns run in order and the first one that yields
// at least one resolved item wins. Unresolved mentions are dropped here
// (recorded, not errored); the engine decides how to react to them.

var (
	unitAlternatives = `bottles?|bags?|tins?|packs?|kg|kilos?|litres?|liters?|tubers?|pieces?|bunches?|crates?|paints?|congos?`

	qtyXRe     = regexp.MustCompile(`(?i)\b(\d+)\s*x\s*([^\d,\n]+)`)
	qtyUnitRe  = regexp.MustCompile(`(?i)\b(\d+)\s+(` + unitAlternatives + `)\s+(?:of\s+)?([^\d,\n]+)`)
	dashQtyRe  = regexp.MustCompile(`(?i)([^\d,\n-]+?)\s*-\s*(\d+)\s*(` + unitAlternatives + `)?\b`)
	fillerWord = map[string]bool{"please": true, "some": true, "the": true, "a": true, "an": true, "abeg": true, "and": true, "of": true, "to": true}

	// windowMinConfidence gates the no-quantity fallback scan.
	windowMinConfidence = 0.8
)

// extractItems pulls order items out of the message. notFound carries the
// free-text mentions that looked like products but resolved to nothing.
func (p *Parser) extractItems(ctx context.Context, tenantID, text string) (items []domain.OrderItem, notFound []string) {
	type candidate struct {
		mention  string
		quantity int
		unit     string
	}

	patterns := []func(string) []candidate{
		func(t string) []candidate {
			var out []candidate
			for _, m := range qtyXRe.FindAllStringSubmatch(t, -1) {
				out = append(out, candidate{mention: m[2], quantity: atoiSafe(m[1])})
			}
			return out
		},
		func(t string) []candidate {
			var out []candidate
			for _, m := range qtyUnitRe.FindAllStringSubmatch(t, -1) {
				out = append(out, candidate{mention: m[3], quantity: atoiSafe(m[1]), unit: singularUnit(m[2])})
			}
			return out
		},
		func(t string) []candidate {
			var out []candidate
			for _, m := range dashQtyRe.FindAllStringSubmatch(t, -1) {
				out = append(out, candidate{mention: m[1], quantity: atoiSafe(m[2]), unit: singularUnit(m[3])})
			}
			return out
		},
	}

	seen := map[string]bool{}
	add := func(match *domain.Match, quantity int, unit string) {
		key := match.Name + "|" + unit
		if seen[key] {
			return
		}
		seen[key] = true
		items = append(items, domain.OrderItem{
			ProductName:  match.Name,
			Quantity:     quantity,
			Unit:         unit,
			Language:     match.Language,
			Confidence:   match.Confidence,
			Source:       match.Source,
			TypoDetected: match.TypoDetected,
		})
	}

	for _, pattern := range patterns {
		candidates := pattern(text)
		for _, c := range candidates {
			if c.quantity <= 0 {
				continue
			}
			mention := cleanMention(c.mention)
			if mention == "" {
				continue
			}
			match := p.resolver.Resolve(ctx, tenantID, mention)
			if match == nil {
				notFound = append(notFound, mention)
				continue
			}
			add(match, c.quantity, c.unit)
		}
		if len(items) > 0 {
			return items, notFound
		}
	}

	// No-quantity fallback: slide 1-3 word windows over the message and
	// accept confident resolver matches with quantity 1.
	words := strings.Fields(cleanMention(text))
	used := make([]bool, len(words))
	for size := 3; size >= 1; size-- {
		for start := 0; start+size <= len(words); start++ {
			if anyUsed(used, start, size) {
				continue
			}
			window := strings.Join(words[start:start+size], " ")
			match := p.resolver.Resolve(ctx, tenantID, window)
			if match == nil || match.Confidence < windowMinConfidence {
				continue
			}
			add(match, 1, "")
			for i := start; i < start+size; i++ {
				used[i] = true
			}
		}
	}
	return items, notFound
}

func anyUsed(used []bool, start, size int) bool {
	for i := start; i < start+size; i++ {
		if used[i] {
			return true
		}
	}
	return false
}

// cleanMention strips filler words and punctuation from a product mention.
func cleanMention(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, ".,!?:;-")
	var kept []string
	for _, w := range strings.Fields(s) {
		if fillerWord[w] {
			continue
		}
		kept = append(kept, strings.Trim(w, ".,!?:;"))
	}
	return strings.Join(kept, " ")
}

func singularUnit(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	if u == "" {
		return ""
	}
	if u == "bunches" {
		return "bunch"
	}
	if u != "kg" {
		u = strings.TrimSuffix(u, "s")
	}
	return u
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
