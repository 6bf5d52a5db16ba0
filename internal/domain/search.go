package domain

import "strings"

// MaxSearchResults bounds the results handed to the synthesizer.
const MaxSearchResults = 5

// SearchResult is a single web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// SearchOutcome is what the augmenter hands to the synthesizer: either up to
// MaxSearchResults results or a diagnostic string explaining why there are none.
type SearchOutcome struct {
	Query      string         `json:"query"`
	Results    []SearchResult `json:"results,omitempty"`
	Diagnostic string         `json:"diagnostic,omitempty"`
	Cached     bool           `json:"cached,omitempty"`
}

// OK reports whether the outcome carries real results.
func (o SearchOutcome) OK() bool {
	return o.Diagnostic == "" && len(o.Results) > 0
}

// Text renders the outcome as the plain-text block fed to the completion service.
func (o SearchOutcome) Text() string {
	if !o.OK() {
		return o.Diagnostic
	}
	blocks := make([]string, 0, len(o.Results))
	for _, r := range o.Results {
		blocks = append(blocks, "Title: "+r.Title+"\nSnippet: "+r.Snippet+"\nLink: "+r.URL)
	}
	return strings.Join(blocks, "\n\n")
}
