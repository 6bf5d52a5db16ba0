package domain

// Intent is the classified purpose of a customer query.
type Intent string

const (
	IntentPriceQuery       Intent = "price_query"
	IntentPriceQueryOnline Intent = "price_query_online"
	IntentChat             Intent = "chat"
	IntentOther            Intent = "other"
)

// Intents lists every valid intent value.
var Intents = []Intent{IntentPriceQuery, IntentPriceQueryOnline, IntentChat, IntentOther}

// Valid reports whether the intent is one of the four known values.
func (i Intent) Valid() bool {
	switch i {
	case IntentPriceQuery, IntentPriceQueryOnline, IntentChat, IntentOther:
		return true
	}
	return false
}

// IntentDecision is produced once per request by the intent classifier.
type IntentDecision struct {
	Intent  Intent `json:"intent"`
	Hint    string `json:"hint"`
	Message string `json:"message,omitempty"`
	// Fallback is set when the decision came from the deterministic fallback.
	Fallback bool `json:"-"`
}

// Message is one conversation turn supplied by the caller.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AgentRequest is the caller-facing request.
type AgentRequest struct {
	Query   string    `json:"query"`
	History []Message `json:"history,omitempty"`
}

// AgentReply is returned once per request.
type AgentReply struct {
	Message   string `json:"message"`
	Intent    Intent `json:"intent"`
	Matched   bool   `json:"matched"`
	Product   string `json:"product,omitempty"`
	Price     *Price `json:"price,omitempty"`
	Reference string `json:"reference,omitempty"`
	Link      string `json:"link,omitempty"`
	Online    bool   `json:"online,omitempty"`
}
