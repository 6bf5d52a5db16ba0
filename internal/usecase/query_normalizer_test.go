package usecase

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pricelens/backend/internal/lexicon"
)

func newTestNormalizer() *QueryNormalizer {
	return NewQueryNormalizer(lexicon.Default(), zerolog.Nop())
}

func TestCleanPunctuation(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims and collapses whitespace", input: "  lady   dior \t bag ", want: "lady dior bag"},
		{name: "full width letters and digits", input: "ＡＢＣ１２３", want: "ABC123"},
		{name: "ideographic space", input: "迪奥　包", want: "迪奥 包"},
		{name: "ideographic full stop and comma", input: "迪奥包。价格、多少", want: "迪奥包.价格,多少"},
		{name: "full width question mark", input: "多少钱？", want: "多少钱?"},
		{name: "corner brackets become quotes", input: "「Lady Dior」", want: `"Lady Dior"`},
		{name: "curly quotes unified", input: "“Saddle” ‘bag’", want: `"Saddle" "bag"`},
		{name: "lenticular brackets", input: "【新款】", want: `"新款"`},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanPunctuation(tc.input)
			if got != tc.want {
				t.Errorf("CleanPunctuation(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "reference is lower cased", input: "ABC123", want: "abc123"},
		{name: "chinese alias and product type", input: "迪奥 包", want: "dior 包 bag"},
		{name: "alias glued to product keyword", input: "古驰裙子", want: "gucci裙子 skirt"},
		{name: "longer alias wins", input: "亚历山大麦昆 运动鞋", want: "alexander mcqueen 运动鞋 sneakers"},
		{name: "expansion term already present", input: "Dior 包 bag", want: "dior 包 bag"},
		{name: "only first product type applies", input: "香奈儿 包 鞋", want: "chanel 包 鞋 bag"},
		{name: "latin alias not matched inside words", input: "clutch", want: "clutch"},
		{name: "full width input", input: "ＬＶ　手袋", want: "louis vuitton 手袋 handbag"},
		{name: "key completes a longer latin alias", input: "giorgio 阿玛尼 包", want: "armani 包 bag"},
		{name: "key completes christian dior", input: "christian 迪奥", want: "dior"},
		{name: "key completes maison margiela", input: "maison 马吉拉", want: "margiela"},
		{name: "blank", input: "   ", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.input)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newTestNormalizer()

	inputs := []string{
		"ABC123",
		"迪奥 包",
		"在线查询 迪奥 最新 包",
		"Louboutin 高跟鞋",
		"louboutin",
		"christian louboutin 红底鞋",
		"tiffany co 项链",
		"abc麦昆 mcqueen",
		"「Lady Dior」 包包。",
		"ＬＶ　手袋",
		"miu miu 缪缪 裙",
		"ysl 口红 rouge",
		"T恤 gucci",
		"giorgio 阿玛尼 包",
		"christian 迪奥",
		"maison 马吉拉",
		"salvatore 菲拉格慕 鞋",
		"",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := n.Normalize(in)
			twice := n.Normalize(once)
			if once != twice {
				t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
			}
		})
	}
}

func TestNormalize_FixtureLexicon(t *testing.T) {
	lex, err := lexicon.New(lexicon.Config{
		Brands: []lexicon.Brand{
			{Key: "acme", Domain: "acme.test", Aliases: []string{"ac", "acme corp"}},
		},
		ProductTypes: []lexicon.ProductType{
			{Keyword: "widget", Terms: []string{"gadget", "thing"}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := NewQueryNormalizer(lex, zerolog.Nop())

	got := n.Normalize("ACME CORP widget")
	if got != "acme widget gadget" {
		t.Errorf("Normalize() = %q, want %q", got, "acme widget gadget")
	}
	if strings.Contains(n.Normalize("acre"), "acme") {
		t.Error("alias must not match inside a word")
	}
}
