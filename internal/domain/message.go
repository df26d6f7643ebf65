package domain

// Intent is the classified purpose of one inbound message.
type Intent string

const (
	IntentGreeting        Intent = "GREETING"
	IntentNewOrder        Intent = "NEW_ORDER"
	IntentConfirm         Intent = "CONFIRM"
	IntentDecline         Intent = "DECLINE"
	IntentCancel          Intent = "CANCEL"
	IntentReorder         Intent = "REORDER"
	IntentBrowseCatalog   Intent = "BROWSE_CATALOG"
	IntentPriceCheck      Intent = "PRICE_CHECK"
	IntentAvailability    Intent = "AVAILABILITY"
	IntentDeliveryInquiry Intent = "DELIVERY_INQUIRY"
	IntentBusinessHours   Intent = "BUSINESS_HOURS"
	IntentOrderStatus     Intent = "ORDER_STATUS"
	IntentPaymentCash     Intent = "PAYMENT_CASH"
	IntentPaymentCard     Intent = "PAYMENT_CARD"
	IntentPaymentTransfer Intent = "PAYMENT_TRANSFER"
	IntentThanks          Intent = "THANKS"
	IntentGeneralInquiry  Intent = "GENERAL_INQUIRY"
)

// Match provenance, best tier first.
const (
	MatchSourceGraphExact     = "graph_exact"
	MatchSourceGraphContains  = "graph_contains"
	MatchSourceGraphSimilar   = "graph_similar"
	MatchSourceCatalogName    = "catalog_name"
	MatchSourceFallbackTable  = "fallback_table"
	MatchSourceFuzzyName      = "fuzzy_name"
	MatchSourceFuzzyAlias     = "fuzzy_alias"
)

// Match is the outcome of resolving one free-text product mention.
type Match struct {
	Name         string  `json:"name"`
	AliasMatched string  `json:"aliasMatched,omitempty"`
	Language     string  `json:"language,omitempty"`
	Confidence   float64 `json:"confidence"`
	Source       string  `json:"source"`
	TypoDetected bool    `json:"typoDetected,omitempty"`
}

// ParsedMessage is what the parser extracted from one inbound text.
// IsCompleteOrder is true only when items and a postcode arrived together
// in the same message.
type ParsedMessage struct {
	Intent          Intent      `json:"intent"`
	Items           []OrderItem `json:"items,omitempty"`
	Address         string      `json:"address,omitempty"`
	Postcode        string      `json:"postcode,omitempty"`
	DeliveryZone    string      `json:"deliveryZone,omitempty"`
	IsCompleteOrder bool        `json:"isCompleteOrder"`
	NotFound        []string    `json:"notFound,omitempty"`
}

// Reply is the provider-agnostic response directive returned to the
// transport layer.
type Reply struct {
	Text         string   `json:"text"`
	QuickReplies []string `json:"quickReplies,omitempty"`
}
