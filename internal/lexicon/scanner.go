package lexicon

import (
	"strings"
	"unicode/utf8"
)

// ReplaceBrands case-folds s and substitutes every brand alias with its
// canonical key in a single left-to-right pass, longest alias first at each
// position. Aliases starting or ending with an ASCII letter or digit only
// match on that side of an ASCII word boundary. The canonical brand keys met
// are returned in order of appearance.
func (l *Lexicon) ReplaceBrands(s string) (string, []string) {
	s = strings.ToLower(s)

	var (
		b      strings.Builder
		brands []string
	)
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		a, ok := l.aliasAt(s, i, r)
		if !ok {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}

		end := i + len(a.text)
		// keep substituted keys separated from neighbouring words
		if out := b.String(); out != "" && isWordByte(out[len(out)-1]) && isWordByte(a.canonical[0]) {
			b.WriteByte(' ')
		}
		b.WriteString(a.canonical)
		if end < len(s) && isWordByte(s[end]) && isWordByte(a.canonical[len(a.canonical)-1]) {
			b.WriteByte(' ')
		}
		brands = append(brands, a.canonical)
		i = end
	}

	return b.String(), brands
}

// DetectBrand returns the first canonical brand mentioned in s.
func (l *Lexicon) DetectBrand(s string) (string, bool) {
	_, brands := l.ReplaceBrands(s)
	if len(brands) == 0 {
		return "", false
	}
	return brands[0], true
}

func (l *Lexicon) aliasAt(s string, i int, r rune) (alias, bool) {
	for _, a := range l.aliases[r] {
		if !strings.HasPrefix(s[i:], a.text) {
			continue
		}
		end := i + len(a.text)
		if isWordByte(a.text[0]) && i > 0 && isWordByte(s[i-1]) {
			continue
		}
		if isWordByte(a.text[len(a.text)-1]) && end < len(s) && isWordByte(s[end]) {
			continue
		}
		return a, true
	}
	return alias{}, false
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
