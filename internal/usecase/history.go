package usecase

import (
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// NormalizeHistory keeps user and assistant turns with non-empty content,
// trimmed, and returns at most the last limit of them.
func NormalizeHistory(history []domain.Message, limit int) []domain.Message {
	out := make([]domain.Message, 0, len(history))
	for _, m := range history {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		out = append(out, domain.Message{Role: m.Role, Content: content})
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// ResolveQuery returns the trimmed query, or the last user turn of history
// when the query is empty.
func ResolveQuery(req domain.AgentRequest) string {
	if q := strings.TrimSpace(req.Query); q != "" {
		return q
	}
	for i := len(req.History) - 1; i >= 0; i-- {
		if req.History[i].Role == "user" {
			return strings.TrimSpace(req.History[i].Content)
		}
	}
	return ""
}

// TrimEchoedTurn drops the last turn of history when it is the user turn
// being answered, so the completion request carries it once.
func TrimEchoedTurn(history []domain.Message, query string) []domain.Message {
	if n := len(history); n > 0 && history[n-1].Role == "user" && history[n-1].Content == strings.TrimSpace(query) {
		return history[:n-1]
	}
	return history
}
