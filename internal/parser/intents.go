package parser

import (
	"regexp"
	"strings"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
)

// Intent detection is deliberately an ordered list of pattern checks, not
// a statistical classifier. Checks run in a fixed priority order and the
// first hit wins.

var (
	confirmPhrases = []string{
		"yes", "yeah", "yep", "yup", "ok", "okay", "sure", "confirm",
		"confirmed", "correct", "sounds good", "go ahead", "that's right",
		"thats right", "beeni", "bẹẹni", "oya", "do it",
	}
	declinePhrases = []string{
		"no", "nope", "not yet", "wrong", "change it", "no thanks",
		"not right", "rara", "rárá",
	}
	greetingPhrases = []string{
		"hi", "hello", "hey", "good morning", "good afternoon",
		"good evening", "bawo", "bawo ni", "e kaaro", "ẹ kaaro",
		"e kaasan", "e ku irole", "hiya", "howdy",
	}
	reorderPatterns = []string{
		"reorder", "same as last time", "same as before", "my usual",
		"usual order", "repeat my order", "repeat order", "order again",
		"what i had last time",
	}
	cookingPatterns = []string{
		"cooking", "i'm making", "im making", "making soup", "run out of",
		"ran out of", "running low", "finished my", "mo fe se", "i dey cook",
	}
	orderVerbs = []string{
		"i want", "i need", "buy", "order", "get me", "send me", "add",
		"gimme", "give me", "mo fe ra", "i'd like",
	}

	quantityUnitRe = regexp.MustCompile(`(?i)\b\d+\s*(x\b|bottles?\b|bags?\b|tins?\b|packs?\b|kg\b|kilos?\b|litres?\b|liters?\b|tubers?\b|pieces?\b|bunches?\b|crates?\b|paints?\b|congos?\b)`)
	bareQtyRe      = regexp.MustCompile(`(?i)\b\d+\s*x\s*\S`)
)

type intentRule struct {
	intent   domain.Intent
	patterns []string
}

// namedIntentRules are the fixed, order-sensitive informational intents.
var namedIntentRules = []intentRule{
	{domain.IntentBrowseCatalog, []string{
		"menu", "catalog", "catalogue", "price list", "what do you sell",
		"what do you have", "show me your", "kini e ni",
	}},
	{domain.IntentNewOrder, []string{
		"i want to order", "i'd like to order", "can i order",
		"place an order", "make an order", "new order", "mo fe ra oja",
	}},
	{domain.IntentPriceCheck, []string{
		"how much", "price of", "what's the price", "whats the price",
		"cost of", "elo ni",
	}},
	{domain.IntentAvailability, []string{
		"do you have", "do you stock", "is there any", "se o ni",
		"in stock", "available",
	}},
	{domain.IntentDeliveryInquiry, []string{
		"do you deliver", "delivery fee", "delivery cost", "how long does delivery",
		"when will my delivery", "deliver to my area", "shipping",
	}},
	{domain.IntentBusinessHours, []string{
		"opening hours", "what time do you open", "what time do you close",
		"are you open", "business hours", "open today",
	}},
	{domain.IntentOrderStatus, []string{
		"where is my order", "order status", "track my order",
		"has my order", "status of my order",
	}},
	{domain.IntentCancel, []string{
		"cancel", "forget it", "start over", "start again", "never mind",
		"nevermind", "fi sile",
	}},
	{domain.IntentThanks, []string{
		"thank you", "thanks", "thank u", "e se", "ese", "o se", "cheers",
		"appreciated",
	}},
}

// classifyIntent runs the priority-ordered checks. hasItems reports whether
// item extraction found product mentions in the text, resolved or not.
func classifyIntent(text string, state domain.State, hasItems bool) domain.Intent {
	t := normalizeText(text)
	if t == "" {
		return domain.IntentGeneralInquiry
	}

	// Awaiting-confirmation leniency: a pending confirmation turn matches
	// confirm/decline words anywhere in the message before anything else.
	if state == domain.StateAwaitingConfirmation {
		if containsAnyWord(t, confirmPhrases) {
			return domain.IntentConfirm
		}
		if containsAnyWord(t, declinePhrases) || containsAnyWord(t, []string{"cancel"}) {
			return domain.IntentDecline
		}
	}

	if matchesPhrase(t, confirmPhrases) {
		return domain.IntentConfirm
	}
	if matchesPhrase(t, declinePhrases) {
		return domain.IntentDecline
	}

	if containsAnyWord(t, reorderPatterns) {
		return domain.IntentReorder
	}

	if intent, ok := paymentIntent(t); ok {
		return intent
	}

	if matchesPhrase(t, greetingPhrases) {
		return domain.IntentGreeting
	}

	for _, rule := range namedIntentRules {
		if containsAnyWord(t, rule.patterns) {
			return rule.intent
		}
	}

	// Order heuristic (a): cooking or running-low phrasing plus a
	// recognized product.
	if hasItems && containsAnyWord(t, cookingPatterns) {
		return domain.IntentNewOrder
	}
	// Order heuristic (b): a quantity pattern or an order verb plus a
	// recognized product.
	if hasItems && (quantityUnitRe.MatchString(t) || bareQtyRe.MatchString(t) || containsAnyWord(t, orderVerbs)) {
		return domain.IntentNewOrder
	}
	// A message that is nothing but recognized products ("epo pupa") is
	// an order opener too.
	if hasItems {
		return domain.IntentNewOrder
	}

	return domain.IntentGeneralInquiry
}

func paymentIntent(t string) (domain.Intent, bool) {
	switch {
	case containsAnyWord(t, []string{"bank transfer", "transfer", "pay by transfer"}):
		return domain.IntentPaymentTransfer, true
	case containsAnyWord(t, []string{"card", "pay by card", "debit", "credit"}):
		return domain.IntentPaymentCard, true
	case containsAnyWord(t, []string{"cash", "cash on delivery", "pay cash"}):
		return domain.IntentPaymentCash, true
	}
	return "", false
}

// matchesPhrase reports whether the whole message is one of the phrases,
// allowing trailing punctuation already stripped by normalizeText.
func matchesPhrase(t string, phrases []string) bool {
	for _, p := range phrases {
		if t == p {
			return true
		}
	}
	return false
}

// containsAnyWord matches patterns on word boundaries so "no" does not
// fire inside "know".
func containsAnyWord(t string, phrases []string) bool {
	padded := " " + t + " "
	for _, p := range phrases {
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

// normalizeText lowercases, strips punctuation that carries no meaning for
// classification, and collapses whitespace. Hyphens and colons survive
// because the item and address patterns need them.
func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("!", "", "?", "", ".", "", ",", " ", " ", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
