package usecase

import (
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/width"

	"github.com/pricelens/backend/internal/lexicon"
)

// applied before width folding, which would turn 。、「」 into their halfwidth forms
var punctuationReplacer = strings.NewReplacer(
	"。", ".", "｡", ".",
	"、", ",", "､", ",",
	"｢", `"`, "｣", `"`,
	"「", `"`, "」", `"`,
	"『", `"`, "』", `"`,
	"【", `"`, "】", `"`,
	"“", `"`, "”", `"`,
	"‘", `"`, "’", `"`,
	"«", `"`, "»", `"`,
)

const maxBrandPasses = 4

// QueryNormalizer canonicalizes punctuation, resolves brand aliases and adds
// one product-type expansion term to customer queries.
type QueryNormalizer struct {
	lexicon *lexicon.Lexicon
	log     zerolog.Logger
}

// NewQueryNormalizer creates a normalizer over an immutable lexicon.
func NewQueryNormalizer(lex *lexicon.Lexicon, log zerolog.Logger) *QueryNormalizer {
	return &QueryNormalizer{lexicon: lex, log: log}
}

// Normalize is total and idempotent: Normalize(Normalize(s)) == Normalize(s).
// The output is lower-cased.
func (n *QueryNormalizer) Normalize(query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}

	// Step 1: punctuation and whitespace
	cleaned := CleanPunctuation(query)

	// Step 2: brand aliases to canonical keys, until a fixed point. A key
	// written next to existing words can complete a longer alias, as in
	// "giorgio 阿玛尼" -> "giorgio armani" -> "armani".
	var brands []string
	for pass := 0; pass < maxBrandPasses; pass++ {
		var replaced string
		replaced, brands = n.lexicon.ReplaceBrands(cleaned)
		if replaced == cleaned {
			break
		}
		cleaned = replaced
	}

	// Step 3: at most one product-type expansion term
	enriched := n.EnrichProductType(cleaned)

	n.log.Debug().
		Str("input", query).
		Str("output", enriched).
		Strs("brands", brands).
		Msg("normalized query")

	return enriched
}

// EnrichProductType appends the first expansion term of the first lexicon
// keyword found in s, unless the term is already present.
func (n *QueryNormalizer) EnrichProductType(s string) string {
	for _, pt := range n.lexicon.ProductTypes() {
		if !strings.Contains(s, pt.Keyword) {
			continue
		}
		term := pt.Terms[0]
		if strings.Contains(s, term) {
			return s
		}
		if s == "" {
			return term
		}
		return s + " " + term
	}
	return s
}

// CleanPunctuation trims, folds full-width forms to half-width, maps
// ideographic punctuation and quotes to ASCII and collapses whitespace runs.
func CleanPunctuation(s string) string {
	s = punctuationReplacer.Replace(s)
	s = width.Narrow.String(s)
	return strings.Join(strings.Fields(s), " ")
}
