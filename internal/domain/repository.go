package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogStore is the read side of the external catalog.
// GetAllItems returns items in storage order; callers must not mutate the slice.
type CatalogStore interface {
	GetAllItems(ctx context.Context) ([]CatalogItem, error)
	GetByReference(ctx context.Context, reference string) (*CatalogItem, error)
}

// CompletionRequest is a single call to the language-completion service.
type CompletionRequest struct {
	SystemInstruction string
	UserContent       string
	History           []Message
	Temperature       float32
	ForceJSON         bool
}

// CompletionService produces text from an instruction and user content.
// Every failure is reported as an error wrapping ErrCompletionUnavailable.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// SearchService queries an external web search engine.
type SearchService interface {
	Search(ctx context.Context, query string, count int) ([]SearchResult, error)
}

// PipelineMetrics receives pipeline counters. Implementations must be safe for concurrent use.
type PipelineMetrics interface {
	ObserveRequest(intent Intent, matched, online bool, duration time.Duration)
	ObserveStage(stage string, duration time.Duration)
	IncFallback(stage string)
	IncSearchCache(hit bool)
}
