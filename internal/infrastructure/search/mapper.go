package search

import (
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// searchResponse is the part of the Custom Search response we read.
type searchResponse struct {
	Items []item `json:"items"`
}

type item struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// mapResults converts API items to domain results, dropping items without a
// link and keeping at most limit of them.
func mapResults(items []item, limit int) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(items))
	for _, it := range items {
		link := strings.TrimSpace(it.Link)
		if link == "" {
			continue
		}
		results = append(results, domain.SearchResult{
			Title:   collapseSpace(it.Title),
			Snippet: collapseSpace(it.Snippet),
			URL:     link,
		})
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results
}

// collapseSpace removes the line breaks the API puts inside snippets.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
