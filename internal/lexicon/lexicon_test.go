package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceBrands(t *testing.T) {
	lex := Default()

	testCases := []struct {
		name       string
		input      string
		want       string
		wantBrands []string
	}{
		{
			name:       "chinese alias",
			input:      "迪奥包",
			want:       "dior包",
			wantBrands: []string{"dior"},
		},
		{
			name:       "case insensitive latin alias",
			input:      "Louboutin pumps",
			want:       "christian louboutin pumps",
			wantBrands: []string{"christian louboutin"},
		},
		{
			name:       "longer alias wins over contained alias",
			input:      "亚历山大麦昆 sneakers",
			want:       "alexander mcqueen sneakers",
			wantBrands: []string{"alexander mcqueen"},
		},
		{
			name:       "multi word alias",
			input:      "yves saint laurent bag",
			want:       "saint laurent bag",
			wantBrands: []string{"saint laurent"},
		},
		{
			name:       "alias inside a latin word is ignored",
			input:      "clutch",
			want:       "clutch",
			wantBrands: nil,
		},
		{
			name:       "canonical key kept as is",
			input:      "christian louboutin",
			want:       "christian louboutin",
			wantBrands: []string{"christian louboutin"},
		},
		{
			name:       "substituted key separated from adjacent latin word",
			input:      "迪奥lady dior",
			want:       "dior lady dior",
			wantBrands: []string{"dior", "dior"},
		},
		{
			name:       "no brand",
			input:      "abc123",
			want:       "abc123",
			wantBrands: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, brands := lex.ReplaceBrands(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantBrands, brands)
		})
	}
}

func TestReplaceBrands_Stable(t *testing.T) {
	lex := Default()
	inputs := []string{
		"louboutin",
		"abc麦昆 mcqueen",
		"tiffany co ring",
		"tods loafers",
		"max mara coat",
		"cl 红底鞋",
		"miu miu 缪缪",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once, _ := lex.ReplaceBrands(in)
			twice, _ := lex.ReplaceBrands(once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestDetectBrand(t *testing.T) {
	lex := Default()

	brand, ok := lex.DetectBrand("new 古驰 bag collection")
	require.True(t, ok)
	assert.Equal(t, "gucci", brand)

	domain, ok := lex.Domain(brand)
	require.True(t, ok)
	assert.Equal(t, "gucci.com", domain)

	_, ok = lex.DetectBrand("plain canvas tote")
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	t.Run("empty brand key", func(t *testing.T) {
		_, err := New(Config{Brands: []Brand{{Domain: "x.com"}}})
		assert.Error(t, err)
	})

	t.Run("duplicate brand key", func(t *testing.T) {
		_, err := New(Config{Brands: []Brand{{Key: "Dior"}, {Key: "dior"}}})
		assert.Error(t, err)
	})

	t.Run("product type without terms", func(t *testing.T) {
		_, err := New(Config{ProductTypes: []ProductType{{Keyword: "包"}}})
		assert.Error(t, err)
	})

	t.Run("product type with blank terms only", func(t *testing.T) {
		_, err := New(Config{ProductTypes: []ProductType{{Keyword: "包", Terms: []string{" ", ""}}}})
		assert.Error(t, err)
	})

	t.Run("locale preference without marker", func(t *testing.T) {
		_, err := New(Config{LocalePreferences: []LocalePreference{{Domain: "dior.com"}}})
		assert.Error(t, err)
	})

	t.Run("explicit alias beats another brand's key", func(t *testing.T) {
		lex, err := New(Config{Brands: []Brand{
			{Key: "saint laurent", Aliases: []string{"ysl"}},
			{Key: "ysl"},
		}})
		require.NoError(t, err)
		got, _ := lex.ReplaceBrands("ysl")
		assert.Equal(t, "saint laurent", got)
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		lex, err := Load("")
		require.NoError(t, err)
		assert.NotEmpty(t, lex.ProductTypes())
		assert.Equal(t, []LocalePreference{{Domain: "dior.com", Marker: "/fr_fr/"}}, lex.LocalePreferences())
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lexicon.yaml")
		content := `
brands:
  - key: Acme
    domain: acme.test
    aliases: [ACM, 阿克米]
product_types:
  - keyword: 包
    terms: [Bag, sac]
latest_keywords: [New]
locale_preferences:
  - domain: acme.test
    marker: /EN_GB/
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		lex, err := Load(path)
		require.NoError(t, err)

		got, brands := lex.ReplaceBrands("阿克米 包")
		assert.Equal(t, "acme 包", got)
		assert.Equal(t, []string{"acme"}, brands)
		assert.Equal(t, []ProductType{{Keyword: "包", Terms: []string{"bag", "sac"}}}, lex.ProductTypes())
		assert.Equal(t, []string{"new"}, lex.LatestKeywords())
		assert.Equal(t, []LocalePreference{{Domain: "acme.test", Marker: "/en_gb/"}}, lex.LocalePreferences())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("brands: [unclosed"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
