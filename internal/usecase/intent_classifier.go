package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pricelens/backend/internal/domain"
)

const classifierInstruction = `You are the intent classifier of a luxury goods price assistant. Reply with a single JSON object and nothing else.
Fields:
- intent: one of "price_query_online", "price_query", "chat", "other"
- hint: the product name or reference extracted from the query, or "" when there is none
- message: a short reply for the customer when the intent is not a price query
Rules:
- price_query_online: the customer explicitly asks to search online ("online", "search the web", "在线查询", "上网查", "搜索") and names a product
- price_query: the customer wants a price without asking for an online search
- chat: greetings or small talk without product information
- other: anything else
Never invent products or prices.`

const intentSchema = `{
	"type": "object",
	"required": ["intent"],
	"properties": {
		"intent": {"enum": ["price_query", "price_query_online", "chat", "other"]},
		"hint": {"type": "string"},
		"message": {"type": "string"}
	}
}`

var compiledIntentSchema = jsonschema.MustCompileString("intent.json", intentSchema)

// ClassifierConfig holds configuration for the intent classifier
type ClassifierConfig struct {
	IntroKeywords []string
	IntroMessage  string
	Timeout       time.Duration
}

// IntentClassifier turns a normalized query into an IntentDecision. It never
// fails: every problem with the completion service yields the price_query
// fallback.
type IntentClassifier struct {
	completion    domain.CompletionService
	introKeywords []string
	introMessage  string
	timeout       time.Duration
	log           zerolog.Logger
}

// NewIntentClassifier creates a classifier. completion may be nil when no
// completion service is configured.
func NewIntentClassifier(completion domain.CompletionService, config ClassifierConfig, log zerolog.Logger) *IntentClassifier {
	keywords := make([]string, 0, len(config.IntroKeywords))
	for _, kw := range config.IntroKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return &IntentClassifier{
		completion:    completion,
		introKeywords: keywords,
		introMessage:  config.IntroMessage,
		timeout:       config.Timeout,
		log:           log,
	}
}

// Classify returns the decision for query, using recent history as context.
func (c *IntentClassifier) Classify(ctx context.Context, query string, history []domain.Message) domain.IntentDecision {
	if decision, ok := c.ruleDecision(query); ok {
		c.log.Debug().Str("query", query).Msg("intro keyword matched")
		return decision
	}

	if c.completion == nil {
		return fallbackDecision(query)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := c.completion.Complete(ctx, domain.CompletionRequest{
		SystemInstruction: classifierInstruction,
		UserContent:       query,
		History:           history,
		Temperature:       0,
		ForceJSON:         true,
	})
	if err != nil {
		c.log.Warn().Err(err).Str("query", query).Msg("intent classification failed, using fallback")
		return fallbackDecision(query)
	}

	decision, err := parseDecision(text)
	if err != nil {
		c.log.Warn().Err(err).Str("reply", text).Msg("invalid classifier reply, using fallback")
		return fallbackDecision(query)
	}
	if strings.TrimSpace(decision.Hint) == "" {
		decision.Hint = query
	}

	c.log.Info().
		Str("intent", string(decision.Intent)).
		Str("hint", decision.Hint).
		Msg("intent classified")
	return decision
}

func (c *IntentClassifier) ruleDecision(query string) (domain.IntentDecision, bool) {
	if c.introMessage == "" {
		return domain.IntentDecision{}, false
	}
	lower := strings.ToLower(query)
	for _, kw := range c.introKeywords {
		if strings.Contains(lower, kw) {
			return domain.IntentDecision{Intent: domain.IntentChat, Message: c.introMessage}, true
		}
	}
	return domain.IntentDecision{}, false
}

// parseDecision validates a completion reply against the intent schema.
func parseDecision(text string) (domain.IntentDecision, error) {
	text = stripCodeFence(text)

	var raw interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return domain.IntentDecision{}, err
	}
	if err := compiledIntentSchema.Validate(raw); err != nil {
		return domain.IntentDecision{}, err
	}

	var decision domain.IntentDecision
	if err := json.Unmarshal([]byte(text), &decision); err != nil {
		return domain.IntentDecision{}, err
	}
	decision.Hint = strings.TrimSpace(decision.Hint)
	decision.Message = strings.TrimSpace(decision.Message)
	return decision, nil
}

func fallbackDecision(query string) domain.IntentDecision {
	return domain.IntentDecision{
		Intent:   domain.IntentPriceQuery,
		Hint:     query,
		Fallback: true,
	}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
