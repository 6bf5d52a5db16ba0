package usecase

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pricelens/backend/internal/domain"
)

// CatalogIndex answers the same question as MatchLinear without scanning the
// whole snapshot. Every lookup returns exactly what MatchLinear returns on the
// snapshot the index was built from.
type CatalogIndex struct {
	items []domain.CatalogItem
	refs  []string
	names []string

	// normalized reference -> item positions, ascending
	exact map[string][]int32
	// distinct byte lengths of non-empty references, ascending
	refLengths []int

	refTrigrams  map[string][]int32
	nameTrigrams map[string][]int32
	refRunes     map[rune][]int32
}

// NewCatalogIndex builds the index for one snapshot. The slice must not be
// modified afterwards.
func NewCatalogIndex(items []domain.CatalogItem) *CatalogIndex {
	idx := &CatalogIndex{
		items:        items,
		refs:         make([]string, len(items)),
		names:        make([]string, len(items)),
		exact:        make(map[string][]int32),
		refTrigrams:  make(map[string][]int32),
		nameTrigrams: make(map[string][]int32),
		refRunes:     make(map[rune][]int32),
	}

	lengths := make(map[int]bool)
	for i := range items {
		id := int32(i)
		ref, name := matchKeys(&items[i])
		idx.refs[i], idx.names[i] = ref, name

		if ref != "" {
			idx.exact[ref] = append(idx.exact[ref], id)
			lengths[len(ref)] = true
			for _, r := range ref {
				idx.refRunes[r] = addPosting(idx.refRunes[r], id)
			}
			forEachTrigram(ref, func(g string) {
				idx.refTrigrams[g] = addPosting(idx.refTrigrams[g], id)
			})
		}
		forEachTrigram(name, func(g string) {
			idx.nameTrigrams[g] = addPosting(idx.nameTrigrams[g], id)
		})
	}

	for l := range lengths {
		idx.refLengths = append(idx.refLengths, l)
	}
	sort.Ints(idx.refLengths)
	return idx
}

// Len returns the number of items in the indexed snapshot.
func (idx *CatalogIndex) Len() int {
	return len(idx.items)
}

// Lookup returns the first item in storage order matching hint.
func (idx *CatalogIndex) Lookup(hint string) domain.MatchResult {
	hint = foldHint(hint)
	if hint == "" {
		return noMatch()
	}

	best := -1
	consider := func(pos int) {
		if pos >= 0 && (best < 0 || pos < best) {
			best = pos
		}
	}

	consider(idx.firstRefInHint(hint))
	consider(idx.firstRefContaining(hint))
	if utf8.RuneCountInString(hint) >= minNameHintRunes {
		consider(idx.firstByTrigrams(idx.nameTrigrams, idx.names, hint))
	}

	if best < 0 {
		return noMatch()
	}
	return resultFor(&idx.items[best], idx.refs[best], hint)
}

// firstRefInHint finds the earliest item whose reference equals or is contained in hint.
func (idx *CatalogIndex) firstRefInHint(hint string) int {
	best := -1
	for _, l := range idx.refLengths {
		if l > len(hint) {
			break
		}
		for start := 0; start+l <= len(hint); start++ {
			ids, ok := idx.exact[hint[start:start+l]]
			if ok && (best < 0 || int(ids[0]) < best) {
				best = int(ids[0])
			}
		}
	}
	return best
}

// firstRefContaining finds the earliest item whose reference contains hint.
func (idx *CatalogIndex) firstRefContaining(hint string) int {
	if utf8.RuneCountInString(hint) >= 3 {
		return idx.firstByTrigrams(idx.refTrigrams, idx.refs, hint)
	}

	var candidates []int32
	for i, r := range hint {
		list := idx.refRunes[r]
		if i == 0 || len(list) < len(candidates) {
			candidates = list
		}
	}
	return firstVerified(candidates, idx.refs, hint)
}

// firstByTrigrams verifies the smallest posting list among the trigrams of hint.
// Any field containing hint contains all of its trigrams, so the smallest list
// is a superset of the answers.
func (idx *CatalogIndex) firstByTrigrams(postings map[string][]int32, fields []string, hint string) int {
	var (
		candidates []int32
		seen       bool
		missing    bool
	)
	forEachTrigram(hint, func(g string) {
		list, ok := postings[g]
		if !ok {
			missing = true
			return
		}
		if !seen || len(list) < len(candidates) {
			candidates, seen = list, true
		}
	})
	if missing || !seen {
		return -1
	}
	return firstVerified(candidates, fields, hint)
}

func firstVerified(candidates []int32, fields []string, hint string) int {
	for _, id := range candidates {
		if strings.Contains(fields[id], hint) {
			return int(id)
		}
	}
	return -1
}

func forEachTrigram(s string, fn func(string)) {
	var offsets [4]int
	n := 0
	for i := range s {
		if n < 3 {
			offsets[n] = i
			n++
			continue
		}
		fn(s[offsets[0]:i])
		offsets[0], offsets[1], offsets[2] = offsets[1], offsets[2], i
	}
	if n == 3 {
		fn(s[offsets[0]:])
	}
}

func addPosting(list []int32, id int32) []int32 {
	if n := len(list); n > 0 && list[n-1] == id {
		return list
	}
	return append(list, id)
}
