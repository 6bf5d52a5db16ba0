package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pricelens/backend/internal/domain"
)

// minNameHintRunes guards name hits against very short hints.
const minNameHintRunes = 3

// MatcherConfig holds configuration for the catalog matcher
type MatcherConfig struct {
	// DisableIndex forces the linear scan on every lookup.
	DisableIndex bool
}

// CatalogMatcher resolves a hint to the first catalog item, in storage order,
// whose reference or name satisfies the match predicates.
type CatalogMatcher struct {
	store        domain.CatalogStore
	disableIndex bool
	log          zerolog.Logger

	index atomic.Pointer[snapshotIndex]
}

type snapshotIndex struct {
	first *domain.CatalogItem
	n     int
	idx   *CatalogIndex
}

// NewCatalogMatcher creates a matcher over a read-only catalog store.
func NewCatalogMatcher(store domain.CatalogStore, config MatcherConfig, log zerolog.Logger) *CatalogMatcher {
	return &CatalogMatcher{
		store:        store,
		disableIndex: config.DisableIndex,
		log:          log,
	}
}

// Match takes a snapshot of the catalog and looks hint up in it. An error is
// returned only when the snapshot cannot be read.
func (m *CatalogMatcher) Match(ctx context.Context, hint string) (domain.MatchResult, error) {
	if foldHint(hint) == "" {
		return noMatch(), nil
	}

	items, err := m.store.GetAllItems(ctx)
	if err != nil {
		return noMatch(), fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	var result domain.MatchResult
	if m.disableIndex {
		result = MatchLinear(items, hint)
	} else {
		result = m.indexFor(items).Lookup(hint)
	}

	if result.Found() {
		m.log.Debug().
			Str("hint", hint).
			Str("reference", result.Item.Reference).
			Str("matched_by", string(result.MatchedBy)).
			Msg("catalog match")
	} else {
		m.log.Debug().Str("hint", hint).Int("catalog_size", len(items)).Msg("no catalog match")
	}
	return result, nil
}

// indexFor returns the index of the given snapshot, building it when the
// store handed out a different slice than last time.
func (m *CatalogMatcher) indexFor(items []domain.CatalogItem) *CatalogIndex {
	var first *domain.CatalogItem
	if len(items) > 0 {
		first = &items[0]
	}

	if cur := m.index.Load(); cur != nil && cur.first == first && cur.n == len(items) {
		return cur.idx
	}

	idx := NewCatalogIndex(items)
	m.index.Store(&snapshotIndex{first: first, n: len(items), idx: idx})
	m.log.Info().Int("items", idx.Len()).Msg("catalog index rebuilt")
	return idx
}

// MatchLinear scans items in storage order. The first item whose reference
// equals, contains or is contained in the hint, or whose name contains a hint
// of at least three runes, wins.
func MatchLinear(items []domain.CatalogItem, hint string) domain.MatchResult {
	hint = foldHint(hint)
	if hint == "" {
		return noMatch()
	}
	nameAllowed := utf8.RuneCountInString(hint) >= minNameHintRunes

	for i := range items {
		ref, name := matchKeys(&items[i])
		if referenceHit(ref, hint) || (nameAllowed && strings.Contains(name, hint)) {
			return resultFor(&items[i], ref, hint)
		}
	}
	return noMatch()
}

func referenceHit(ref, hint string) bool {
	if ref == "" {
		return false
	}
	return hint == ref || strings.Contains(hint, ref) || strings.Contains(ref, hint)
}

func resultFor(item *domain.CatalogItem, ref, hint string) domain.MatchResult {
	by := domain.MatchedByName
	if referenceHit(ref, hint) {
		by = domain.MatchedByReference
	}
	return domain.MatchResult{Item: item, MatchedBy: by}
}

// matchKeys returns the case-folded reference and name of an item.
func matchKeys(item *domain.CatalogItem) (ref, name string) {
	ref = strings.ToLower(strings.TrimSpace(item.Reference))
	for _, v := range []string{item.ProductName, item.DescriptiveName} {
		if strings.TrimSpace(v) != "" {
			name = strings.ToLower(v)
			break
		}
	}
	return ref, name
}

func foldHint(hint string) string {
	return strings.ToLower(strings.TrimSpace(hint))
}

func noMatch() domain.MatchResult {
	return domain.MatchResult{MatchedBy: domain.MatchedByNone}
}
