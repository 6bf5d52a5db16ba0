package domain

import "errors"

var (
	// ErrQueryRequired is returned when a request carries no query text
	ErrQueryRequired = errors.New("query_required")

	// ErrQueryTooLong is returned when the query exceeds the configured maximum length
	ErrQueryTooLong = errors.New("query_too_long")

	// ErrItemNotFound is returned when a catalog reference does not exist
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrCatalogUnavailable is returned when the catalog store cannot produce a snapshot
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrCompletionUnavailable covers every completion service failure
	// (timeout, auth, rate limit, malformed response)
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrSearchNotConfigured is returned when the search service has no credentials
	ErrSearchNotConfigured = errors.New("search service not configured")

	// ErrSearchUnavailable is returned when the search service fails or answers non-2xx
	ErrSearchUnavailable = errors.New("search service unavailable")

	// ErrNoSearchResults is returned when the search service answers with zero results
	ErrNoSearchResults = errors.New("no search results")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)

// IsInputError reports whether err is a caller-visible request validation error.
func IsInputError(err error) bool {
	return errors.Is(err, ErrQueryRequired) || errors.Is(err, ErrQueryTooLong)
}
