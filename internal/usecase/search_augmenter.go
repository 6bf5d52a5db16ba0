package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/lexicon"
)

// Diagnostics handed to the synthesizer when there are no search results.
const (
	DiagnosticNotConfigured = "online search is not configured"
	DiagnosticNoResults     = "no matching products were found online"
	diagnosticAPIError      = "search API error: %v"
	diagnosticFailure       = "online search failed: %v"
)

const (
	defaultSearchResultCount = 10
	searchCachePrefix        = "search:"
)

// AugmenterConfig holds configuration for the online search augmenter
type AugmenterConfig struct {
	ResultCount int
	CacheTTL    time.Duration
	Timeout     time.Duration
	// Now is the clock used for season hints; time.Now when nil.
	Now func() time.Time
}

// SearchAugmenter builds a scoped web query from a hint, runs it and ranks the
// results. Failures become diagnostics, never errors.
type SearchAugmenter struct {
	search      domain.SearchService
	cache       domain.CacheRepository
	normalizer  *QueryNormalizer
	lexicon     *lexicon.Lexicon
	metrics     domain.PipelineMetrics
	resultCount int
	cacheTTL    time.Duration
	timeout     time.Duration
	now         func() time.Time
	log         zerolog.Logger
}

// NewSearchAugmenter creates an augmenter. search, cache and metrics may be nil.
func NewSearchAugmenter(
	search domain.SearchService,
	cache domain.CacheRepository,
	lex *lexicon.Lexicon,
	metrics domain.PipelineMetrics,
	config AugmenterConfig,
	log zerolog.Logger,
) *SearchAugmenter {
	count := config.ResultCount
	if count <= 0 || count > defaultSearchResultCount {
		count = defaultSearchResultCount
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &SearchAugmenter{
		search:      search,
		cache:       cache,
		normalizer:  NewQueryNormalizer(lex, log),
		lexicon:     lex,
		metrics:     metrics,
		resultCount: count,
		cacheTTL:    config.CacheTTL,
		timeout:     config.Timeout,
		now:         now,
		log:         log,
	}
}

// BuildQuery turns a hint into the final web query: brand aliases resolved,
// one product-type term added, "latest collection" hints expanded and the
// query restricted to the brand's site.
func (a *SearchAugmenter) BuildQuery(hint string) string {
	query := a.normalizer.Normalize(hint)
	query = a.expandLatest(query)

	if brand, ok := a.lexicon.DetectBrand(query); ok {
		if domainName, ok := a.lexicon.Domain(brand); ok && !strings.Contains(strings.ToLower(query), "site:") {
			query += " site:" + domainName
		}
	}
	return strings.TrimSpace(query)
}

func (a *SearchAugmenter) expandLatest(query string) string {
	lower := strings.ToLower(query)
	latest := false
	for _, kw := range a.lexicon.LatestKeywords() {
		if strings.Contains(lower, kw) {
			latest = true
			break
		}
	}
	if !latest {
		return query
	}

	if !strings.Contains(lower, "new") && !strings.Contains(lower, "最新") {
		query = "new " + query
	}
	if !strings.Contains(lower, "collection") {
		query += " collection"
	}
	season, year := Season(a.now())
	if !strings.Contains(lower, strconv.Itoa(year)) && !strings.Contains(lower, strings.ToLower(season)) {
		query += fmt.Sprintf(" %s %d", season, year)
	}
	return query
}

// Season returns the collection season of t: Jan-Mar Spring, Apr-Jun Summer,
// Jul-Sep Fall, Oct-Dec Winter.
func Season(t time.Time) (string, int) {
	switch m := t.Month(); {
	case m <= time.March:
		return "Spring", t.Year()
	case m <= time.June:
		return "Summer", t.Year()
	case m <= time.September:
		return "Fall", t.Year()
	default:
		return "Winter", t.Year()
	}
}

// Augment runs the online search for hint.
func (a *SearchAugmenter) Augment(ctx context.Context, hint string) domain.SearchOutcome {
	query := a.BuildQuery(hint)
	outcome := domain.SearchOutcome{Query: query}

	if a.search == nil {
		outcome.Diagnostic = DiagnosticNotConfigured
		return outcome
	}

	results, cached := a.cached(ctx, query)
	if !cached {
		var err error
		results, err = a.fetch(ctx, query)
		if err != nil {
			outcome.Diagnostic = diagnose(err)
			a.log.Warn().Err(err).Str("query", query).Msg("online search failed")
			return outcome
		}
		a.store(ctx, query, results)
	}

	results = a.rankByLocale(query, results)
	if len(results) > domain.MaxSearchResults {
		results = results[:domain.MaxSearchResults]
	}

	outcome.Results = results
	outcome.Cached = cached
	a.log.Info().
		Str("query", query).
		Int("results", len(results)).
		Bool("cached", cached).
		Msg("online search done")
	return outcome
}

func (a *SearchAugmenter) fetch(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	results, err := a.search.Search(ctx, query, a.resultCount)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, domain.ErrNoSearchResults
	}
	return results, nil
}

func (a *SearchAugmenter) cached(ctx context.Context, query string) ([]domain.SearchResult, bool) {
	if a.cache == nil {
		return nil, false
	}

	data, err := a.cache.Get(ctx, searchCachePrefix+query)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			a.log.Warn().Err(err).Msg("search cache read failed")
		}
		a.metrics.IncSearchCache(false)
		return nil, false
	}

	var results []domain.SearchResult
	if err := json.Unmarshal(data, &results); err != nil || len(results) == 0 {
		a.metrics.IncSearchCache(false)
		return nil, false
	}
	a.metrics.IncSearchCache(true)
	return results, true
}

func (a *SearchAugmenter) store(ctx context.Context, query string, results []domain.SearchResult) {
	if a.cache == nil || a.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, searchCachePrefix+query, data, a.cacheTTL); err != nil {
		a.log.Warn().Err(err).Msg("search cache write failed")
	}
}

// rankByLocale moves results carrying a preferred locale marker of the
// query's brand domain ahead of the others, keeping relative order.
func (a *SearchAugmenter) rankByLocale(query string, results []domain.SearchResult) []domain.SearchResult {
	brand, ok := a.lexicon.DetectBrand(query)
	if !ok {
		return results
	}
	domainName, ok := a.lexicon.Domain(brand)
	if !ok {
		return results
	}

	var markers []string
	for _, lp := range a.lexicon.LocalePreferences() {
		if lp.Domain == strings.ToLower(domainName) {
			markers = append(markers, lp.Marker)
		}
	}
	if len(markers) == 0 {
		return results
	}

	preferred := make([]domain.SearchResult, 0, len(results))
	rest := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if hasAnyMarker(strings.ToLower(r.URL), markers) {
			preferred = append(preferred, r)
		} else {
			rest = append(rest, r)
		}
	}
	return append(preferred, rest...)
}

func hasAnyMarker(url string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(url, m) {
			return true
		}
	}
	return false
}

func diagnose(err error) string {
	switch {
	case errors.Is(err, domain.ErrSearchNotConfigured):
		return DiagnosticNotConfigured
	case errors.Is(err, domain.ErrNoSearchResults):
		return DiagnosticNoResults
	case errors.Is(err, domain.ErrSearchUnavailable):
		return fmt.Sprintf(diagnosticAPIError, err)
	default:
		return fmt.Sprintf(diagnosticFailure, err)
	}
}
