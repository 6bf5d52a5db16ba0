package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pricelens/backend/internal/domain"
)

const (
	// DefaultBaseURL is the Google Custom Search JSON API endpoint.
	DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"

	// the API rejects num above 10
	maxResultsPerRequest = 10
	maxErrorBodyBytes    = 4 << 10
)

// Config holds configuration for the search client
type Config struct {
	APIKey   string
	EngineID string
	BaseURL  string
	Timeout  time.Duration
	// RatePerSecond bounds outgoing requests; zero disables limiting.
	RatePerSecond float64
}

// Client implements domain.SearchService on the Google Custom Search JSON API.
// Requests are never retried.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	engineID    string
	baseURL     string
	rateLimiter *rate.Limiter
	log         zerolog.Logger
}

// NewClient creates a new search client
func NewClient(cfg Config, log zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 5)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      strings.TrimSpace(cfg.APIKey),
		engineID:    strings.TrimSpace(cfg.EngineID),
		baseURL:     baseURL,
		rateLimiter: limiter,
		log:         log,
	}
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.engineID != ""
}

// Search runs one query and returns at most count results in engine order.
func (c *Client) Search(ctx context.Context, query string, count int) ([]domain.SearchResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: api key or engine id missing", domain.ErrSearchNotConfigured)
	}
	if count <= 0 || count > maxResultsPerRequest {
		count = maxResultsPerRequest
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrSearchUnavailable, err)
		}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(count))
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PriceLens/1.0")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		msg := apiErrorMessage(body)
		c.log.Warn().Int("status", resp.StatusCode).Str("message", msg).Msg("search API error")
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrSearchUnavailable, resp.StatusCode, msg)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrSearchUnavailable, err)
	}

	results := mapResults(payload.Items, count)
	c.log.Debug().
		Str("query", query).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("search done")

	if len(results) == 0 {
		return nil, domain.ErrNoSearchResults
	}
	return results, nil
}

// apiErrorMessage extracts error.message from an error body, falling back to
// the raw body.
func apiErrorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return strings.TrimSpace(string(body))
}
