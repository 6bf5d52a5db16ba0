package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// fakeCompletion replays canned replies. reply is called with each request;
// block makes every call wait for ctx to finish.
type fakeCompletion struct {
	mu       sync.Mutex
	reply    func(req domain.CompletionRequest) (string, error)
	block    bool
	requests []domain.CompletionRequest
}

func (f *fakeCompletion) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", fmt.Errorf("%w: %v", domain.ErrCompletionUnavailable, ctx.Err())
	}
	if f.reply == nil {
		return "", domain.ErrCompletionUnavailable
	}
	return f.reply(req)
}

func (f *fakeCompletion) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// jsonThenText answers classifier calls with classification and synthesis calls with text.
func jsonThenText(classification, text string) func(domain.CompletionRequest) (string, error) {
	return func(req domain.CompletionRequest) (string, error) {
		if req.ForceJSON {
			return classification, nil
		}
		return text, nil
	}
}

type fakeSearch struct {
	mu      sync.Mutex
	results []domain.SearchResult
	err     error
	queries []string
	counts  []int
}

func (f *fakeSearch) Search(ctx context.Context, query string, count int) ([]domain.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	f.counts = append(f.counts, count)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeSearch) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string][]byte
	getError error
	setError error
	setCalls int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	fallbacks map[string]int
	cacheHits int
	cacheMiss int
	requests  []domain.Intent
	stages    []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{fallbacks: make(map[string]int)}
}

func (m *fakeMetrics) ObserveRequest(intent domain.Intent, matched, online bool, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, intent)
}

func (m *fakeMetrics) ObserveStage(stage string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stages = append(m.stages, stage)
}

func (m *fakeMetrics) IncFallback(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks[stage]++
}

func (m *fakeMetrics) IncSearchCache(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.cacheHits++
	} else {
		m.cacheMiss++
	}
}
