package parser

import (
	"regexp"
	"strings"
)

var (
	postcodeRe      = regexp.MustCompile(`(?i)\b([A-Z]{1,2}[0-9][A-Z0-9]?)\s*([0-9][A-Z]{2})\b`)
	addressKeywords = []string{
		"deliver to", "delivery to", "address:", "address is", "my address",
		"send to", "send it to", "bring it to", "drop off at",
	}
	trailingAddressNoise = []string{"to", "at", "in", "for", "deliver", "send", "is"}
)

// extractAddress finds a delivery address and a UK postcode in the message.
// A keyworded address wins; failing that, a bare postcode is promoted to an
// address by reclaiming the text just before it on the same line.
func extractAddress(text string) (address, postcode string) {
	postcode = extractPostcode(text)

	lower := strings.ToLower(text)
	for _, kw := range addressKeywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		tail := text[idx+len(kw):]
		if nl := strings.IndexAny(tail, "\n"); nl >= 0 {
			tail = tail[:nl]
		}
		address = strings.Trim(strings.TrimSpace(tail), ".,:;")
		if address != "" {
			return address, postcode
		}
	}

	if postcode == "" {
		return "", ""
	}

	// No keyword: rebuild a short address from the text immediately in
	// front of the postcode.
	loc := postcodeRe.FindStringIndex(text)
	before := text[:loc[0]]
	if nl := strings.LastIndexAny(before, "\n"); nl >= 0 {
		before = before[nl+1:]
	}
	if c := strings.LastIndexAny(before, ",."); c >= 0 {
		before = before[c+1:]
	}
	address = trimAddressNoise(before)
	if address == "" {
		address = postcode
	} else {
		address = address + " " + postcode
	}
	return address, postcode
}

// extractPostcode returns the first UK-format postcode, normalized to a
// single space between outward and inward parts.
func extractPostcode(text string) string {
	m := postcodeRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1]) + " " + strings.ToUpper(m[2])
}

// trimAddressNoise drops leading order text and trailing connective words
// so "2x palm oil to" does not become part of the address.
func trimAddressNoise(s string) string {
	words := strings.Fields(strings.Trim(strings.TrimSpace(s), ".,:;"))
	for len(words) > 0 {
		last := strings.ToLower(words[len(words)-1])
		noise := false
		for _, n := range trailingAddressNoise {
			if last == n {
				noise = true
				break
			}
		}
		if !noise {
			break
		}
		words = words[:len(words)-1]
	}
	// Anything that still has digits followed by x or units is order text,
	// not an address.
	if len(words) > 0 && (qtyXRe.MatchString(strings.Join(words, " ")) || qtyUnitRe.MatchString(strings.Join(words, " "))) {
		return ""
	}
	return strings.Join(words, " ")
}
