package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/pricelens/backend/internal/domain"
)

// JSONFileStore serves the catalog from a JSON array file held in memory.
type JSONFileStore struct {
	path    string
	current atomic.Pointer[snapshot]
	log     zerolog.Logger
}

// NewJSONFileStore loads path once. The store keeps serving that snapshot
// until Reload succeeds.
func NewJSONFileStore(path string, log zerolog.Logger) (*JSONFileStore, error) {
	s := &JSONFileStore{path: path, log: log}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload reads the file again and swaps the snapshot. On error the previous
// snapshot stays in place.
func (s *JSONFileStore) Reload(ctx context.Context) error {
	start := time.Now()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: invalid catalog file %s: %v", domain.ErrCatalogUnavailable, s.path, err)
	}

	items := make([]domain.CatalogItem, len(records))
	for i, r := range records {
		items[i] = r.toItem()
	}

	s.current.Store(newSnapshot(items))
	s.log.Info().
		Str("path", s.path).
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("catalog loaded")
	return nil
}

// GetAllItems returns the current snapshot in file order.
func (s *JSONFileStore) GetAllItems(ctx context.Context) ([]domain.CatalogItem, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	return snap.items, nil
}

// GetByReference returns the first item whose reference equals reference,
// ignoring case and surrounding spaces.
func (s *JSONFileStore) GetByReference(ctx context.Context, reference string) (*domain.CatalogItem, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	return snap.get(reference)
}
