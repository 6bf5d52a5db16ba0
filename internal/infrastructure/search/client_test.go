package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricelens/backend/internal/domain"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{APIKey: "test-api-key", EngineID: "test-cx", BaseURL: baseURL, Timeout: 2 * time.Second}, zerolog.Nop())
}

func TestNewClient(t *testing.T) {
	client := NewClient(Config{APIKey: " k ", EngineID: "cx"}, zerolog.Nop())

	assert.Equal(t, "k", client.apiKey)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Nil(t, client.rateLimiter)
	assert.True(t, client.Configured())

	limited := NewClient(Config{RatePerSecond: 1}, zerolog.Nop())
	assert.NotNil(t, limited.rateLimiter)
	assert.False(t, limited.Configured())
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "dior bag site:dior.com", q.Get("q"))
		assert.Equal(t, "test-api-key", q.Get("key"))
		assert.Equal(t, "test-cx", q.Get("cx"))
		assert.Equal(t, "10", q.Get("num"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]string{
				{"title": "Lady Dior", "snippet": "€5 900", "link": "https://www.dior.com/lady"},
				{"title": "Saddle", "snippet": "€3 900", "link": "https://www.dior.com/saddle"},
			},
		})
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "dior bag site:dior.com", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, domain.SearchResult{Title: "Lady Dior", Snippet: "€5 900", URL: "https://www.dior.com/lady"}, results[0])
}

func TestSearch_CountClamped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("num"))
		w.Write([]byte(`{"items":[{"title":"a","link":"https://a"}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "q", 50)
	require.NoError(t, err)
}

func TestSearch_NotConfigured(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL}, zerolog.Nop())
	_, err := client.Search(context.Background(), "q", 10)
	assert.ErrorIs(t, err, domain.ErrSearchNotConfigured)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestSearch_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"searchInformation":{"totalResults":"0"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "q", 10)
	assert.ErrorIs(t, err, domain.ErrNoSearchResults)
}

func TestSearch_APIError_NoRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "q", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "API key not valid")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearch_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "q", 10)
	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
}

func TestSearch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).Search(ctx, "q", 10)
	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
}
