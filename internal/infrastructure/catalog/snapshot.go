// Package catalog provides read-only adapters for the product catalog.
package catalog

import (
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// snapshot is an immutable view of the catalog in storage order. A reload
// swaps in a new snapshot; slices already handed out are never mutated.
type snapshot struct {
	items []domain.CatalogItem
	byRef map[string]int
}

func newSnapshot(items []domain.CatalogItem) *snapshot {
	s := &snapshot{
		items: items,
		byRef: make(map[string]int, len(items)),
	}
	for i, item := range items {
		key := referenceKey(item.Reference)
		if key == "" {
			continue
		}
		// first occurrence wins, as in a linear scan
		if _, ok := s.byRef[key]; !ok {
			s.byRef[key] = i
		}
	}
	return s
}

func (s *snapshot) get(reference string) (*domain.CatalogItem, error) {
	i, ok := s.byRef[referenceKey(reference)]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	item := s.items[i]
	return &item, nil
}

func referenceKey(reference string) string {
	return strings.ToLower(strings.TrimSpace(reference))
}
