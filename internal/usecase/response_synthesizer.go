package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pricelens/backend/internal/domain"
)

const (
	synthesisTemperature = 0.4
	maxOnlineContextLen  = 6000
)

const assistantInstruction = `You are the concierge of a luxury goods boutique: a senior personal-shopper assistant. Sound like a boutique advisor: restrained, professional, natural.
Answer only from the catalog candidates and online results supplied as context. Never invent products, prices, links or stock.
Keep sentences short. Ask at most one question, preferably a quick either/or choice.
When a catalog candidate matches: give name, reference, price and link directly.
When nothing in the catalog matches: say so plainly, then summarize what the online results confirm.
Only output a price when the context states it explicitly with a currency and a source. Never give estimates or ranges.
Only give links that appear in the context. The default currency is euro.`

const noEvidenceInstruction = `Hard rule: priceEvidence is empty, so you must not output any price figure, range or estimate. Point the customer to the official website or offer to keep searching online.`

// SynthesizerConfig holds configuration for the response synthesizer
type SynthesizerConfig struct {
	Timeout time.Duration
}

// SynthesisInput is what the synthesizer needs to phrase a price reply.
// Search is nil in local mode.
type SynthesisInput struct {
	Query   string
	History []domain.Message
	Intent  domain.Intent
	Match   domain.MatchResult
	Search  *domain.SearchOutcome
}

// Online reports whether the input is for the online-results mode.
func (in SynthesisInput) Online() bool {
	return in.Search != nil
}

// ResponseSynthesizer phrases the customer reply, falling back to fixed
// templates whenever the completion service cannot produce one.
type ResponseSynthesizer struct {
	completion domain.CompletionService
	timeout    time.Duration
	log        zerolog.Logger
}

// NewResponseSynthesizer creates a synthesizer. completion may be nil.
func NewResponseSynthesizer(completion domain.CompletionService, config SynthesizerConfig, log zerolog.Logger) *ResponseSynthesizer {
	return &ResponseSynthesizer{
		completion: completion,
		timeout:    config.Timeout,
		log:        log,
	}
}

type candidateBrief struct {
	Reference   string `json:"reference"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Price       string `json:"price"`
	Link        string `json:"link,omitempty"`
	Description string `json:"description,omitempty"`
	MatchedBy   string `json:"matchedBy"`
}

type synthesisContext struct {
	Intent        domain.Intent    `json:"intent"`
	Query         string           `json:"query"`
	Candidates    []candidateBrief `json:"candidates"`
	OnlineResults string           `json:"onlineResults"`
	PriceEvidence []string         `json:"priceEvidence"`
}

// Synthesize returns a non-empty reply and whether it came from a template.
func (s *ResponseSynthesizer) Synthesize(ctx context.Context, in SynthesisInput) (string, bool) {
	if s.completion != nil {
		if reply, err := s.complete(ctx, in); err != nil {
			s.log.Warn().Err(err).Bool("online", in.Online()).Msg("synthesis failed, using template")
		} else if reply != "" {
			return reply, false
		} else {
			s.log.Warn().Bool("online", in.Online()).Msg("empty synthesis, using template")
		}
	}
	return FallbackReply(in), true
}

func (s *ResponseSynthesizer) complete(ctx context.Context, in SynthesisInput) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	payload := synthesisContext{
		Intent:        in.Intent,
		Query:         in.Query,
		Candidates:    []candidateBrief{},
		PriceEvidence: []string{},
	}
	if in.Match.Found() {
		payload.Candidates = append(payload.Candidates, briefOf(in.Match))
	}

	instruction := assistantInstruction
	if in.Online() {
		text := in.Search.Text()
		payload.OnlineResults = truncateRunes(text, maxOnlineContextLen)
		if in.Search.OK() {
			if evidence := ExtractPriceEvidence(text); len(evidence) > 0 {
				payload.PriceEvidence = evidence
			}
		}
		if len(payload.PriceEvidence) == 0 {
			instruction += "\n" + noEvidenceInstruction
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode synthesis context: %w", err)
	}
	instruction += "\nReference information (not said by the customer):\n" + string(data)

	reply, err := s.completion.Complete(ctx, domain.CompletionRequest{
		SystemInstruction: instruction,
		UserContent:       in.Query,
		History:           in.History,
		Temperature:       synthesisTemperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func briefOf(m domain.MatchResult) candidateBrief {
	item := m.Item
	return candidateBrief{
		Reference:   item.Reference,
		Name:        item.DisplayName(),
		Brand:       item.Brand,
		Price:       displayPrice(item.Price),
		Link:        item.Link,
		Description: truncateRunes(item.Description, 300),
		MatchedBy:   string(m.MatchedBy),
	}
}

// FallbackReply renders the deterministic template for the input's mode.
func FallbackReply(in SynthesisInput) string {
	local := ""
	if in.Match.Found() {
		local = LocalMatchLine(in.Match.Item)
	}

	if !in.Online() {
		if local != "" {
			return local
		}
		return notFoundReply
	}

	var b strings.Builder
	if local != "" {
		b.WriteString(local)
		b.WriteString("\n\n")
	}

	if !in.Search.OK() {
		fmt.Fprintf(&b, "Sorry, I could not retrieve online results right now (%s). Please try again later or visit the brand's official website.",
			firstNonEmpty(in.Search.Diagnostic, DiagnosticNoResults))
		return b.String()
	}

	b.WriteString("Here is what I found online:")
	for i, r := range in.Search.Results {
		fmt.Fprintf(&b, "\n%d. %s", i+1, firstNonEmpty(r.Title, r.URL))
		if r.URL != "" && r.Title != "" {
			b.WriteString(" - " + r.URL)
		}
	}
	return b.String()
}

const notFoundReply = `Sorry, I could not find this item in our catalog. Try a more specific product name or reference, or say "search online for <brand> <product>" and I will check the brand's official website.`

// LocalMatchLine renders a matched catalog item as a single line.
func LocalMatchLine(item *domain.CatalogItem) string {
	line := fmt.Sprintf("%s: price %s, reference %s", item.DisplayName(), displayPrice(item.Price), item.Reference)
	if item.Link != "" {
		line += ", link " + item.Link
	}
	return line
}

func displayPrice(p domain.Price) string {
	if p.OnRequest {
		return p.String()
	}
	return p.String() + " €"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
