// Package lexicon holds the brand alias table, the product-type lexicon and
// the search hints used to normalize and enrich customer queries.
//
// A Lexicon is immutable once built and safe for concurrent use.
package lexicon

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Brand maps a canonical brand key to its web domain and the aliases that resolve to it.
type Brand struct {
	Key     string   `yaml:"key"`
	Domain  string   `yaml:"domain"`
	Aliases []string `yaml:"aliases"`
}

// ProductType maps a product-type keyword to ordered expansion terms.
type ProductType struct {
	Keyword string   `yaml:"keyword"`
	Terms   []string `yaml:"terms"`
}

// LocalePreference moves results from Domain whose URL contains Marker ahead of the rest.
type LocalePreference struct {
	Domain string `yaml:"domain"`
	Marker string `yaml:"marker"`
}

// Config is the serialized form of a Lexicon.
type Config struct {
	Brands            []Brand            `yaml:"brands"`
	ProductTypes      []ProductType      `yaml:"product_types"`
	LatestKeywords    []string           `yaml:"latest_keywords"`
	LocalePreferences []LocalePreference `yaml:"locale_preferences"`
}

type alias struct {
	text      string
	canonical string
	identity  bool
}

// Lexicon is the compiled, read-only form of a Config.
type Lexicon struct {
	aliases      map[rune][]alias
	domains      map[string]string
	productTypes []ProductType
	latest       []string
	locales      []LocalePreference
}

// Default returns the lexicon built from DefaultConfig.
func Default() *Lexicon {
	lex, err := New(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("lexicon: invalid built-in tables: %v", err))
	}
	return lex
}

// Load reads a YAML lexicon file. An empty path returns the built-in defaults.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}
	return New(cfg)
}

// New compiles a Config. Keys, aliases and keywords are case-folded; an alias
// listed under two brands resolves to the first one.
func New(cfg Config) (*Lexicon, error) {
	lex := &Lexicon{
		aliases: make(map[rune][]alias),
		domains: make(map[string]string, len(cfg.Brands)),
	}

	seen := make(map[string]bool)
	add := func(a alias) {
		if a.text == "" || seen[a.text] {
			return
		}
		seen[a.text] = true
		first, _ := utf8.DecodeRuneInString(a.text)
		lex.aliases[first] = append(lex.aliases[first], a)
	}

	for _, b := range cfg.Brands {
		key := fold(b.Key)
		if key == "" {
			return nil, errors.New("lexicon: brand with empty key")
		}
		if _, dup := lex.domains[key]; dup {
			return nil, fmt.Errorf("lexicon: duplicate brand key %q", key)
		}
		lex.domains[key] = strings.TrimSpace(b.Domain)
		for _, a := range b.Aliases {
			add(alias{text: fold(a), canonical: key})
		}
	}
	// identity aliases last so an explicit alias with the same text keeps priority
	for _, b := range cfg.Brands {
		key := fold(b.Key)
		add(alias{text: key, canonical: key, identity: true})
	}
	for r := range lex.aliases {
		list := lex.aliases[r]
		sort.SliceStable(list, func(i, j int) bool { return len(list[i].text) > len(list[j].text) })
	}

	for _, pt := range cfg.ProductTypes {
		kw := fold(pt.Keyword)
		terms := make([]string, 0, len(pt.Terms))
		for _, t := range pt.Terms {
			if t = fold(t); t != "" {
				terms = append(terms, t)
			}
		}
		if kw == "" || len(terms) == 0 {
			return nil, fmt.Errorf("lexicon: product type %q needs a keyword and at least one term", pt.Keyword)
		}
		lex.productTypes = append(lex.productTypes, ProductType{Keyword: kw, Terms: terms})
	}

	for _, kw := range cfg.LatestKeywords {
		if kw = fold(kw); kw != "" {
			lex.latest = append(lex.latest, kw)
		}
	}

	for _, lp := range cfg.LocalePreferences {
		if lp.Domain == "" || lp.Marker == "" {
			return nil, errors.New("lexicon: locale preference needs a domain and a marker")
		}
		lex.locales = append(lex.locales, LocalePreference{Domain: strings.ToLower(lp.Domain), Marker: strings.ToLower(lp.Marker)})
	}

	return lex, nil
}

// Domain returns the web domain of a canonical brand key.
func (l *Lexicon) Domain(brand string) (string, bool) {
	d, ok := l.domains[brand]
	return d, ok && d != ""
}

// ProductTypes returns the compiled product-type lexicon in order.
func (l *Lexicon) ProductTypes() []ProductType {
	return l.productTypes
}

// LatestKeywords returns the case-folded "latest collection" keywords.
func (l *Lexicon) LatestKeywords() []string {
	return l.latest
}

// LocalePreferences returns the configured locale re-ranking rules.
func (l *Lexicon) LocalePreferences() []LocalePreference {
	return l.locales
}

func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
