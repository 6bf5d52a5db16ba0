package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricelens/backend/internal/domain"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"ABC123"`, "ABC123"},
		{`12345`, "12345"},
		{`4900.0`, "4900"},
		{`3200.5`, "3200.5"},
		{`null`, ""},
		{`true`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f flexString
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.want, string(f))
		})
	}
}

func TestRecordToItem(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.CatalogItem
	}{
		{
			name: "full row",
			raw:  `{"produit":"M0446","designation":"Lady Dior Medium","descriptif":"Lady Dior Medium Bag","Marque":"Dior","Prix_Vente":"5 900,00","Lien_Externe":"https://dior.com/lady","Couleur":"Black","Matiere":"Lambskin"}`,
			want: domain.CatalogItem{
				Reference:       "M0446",
				ProductName:     "Lady Dior Medium",
				DescriptiveName: "Lady Dior Medium Bag",
				Brand:           "Dior",
				Price:           domain.NewPrice(5900),
				Link:            "https://dior.com/lady",
				Description:     "colour: Black; material: Lambskin",
			},
		},
		{
			name: "numeric reference and purchase price fallback",
			raw:  `{"produit":12345,"designation":"GG Marmont","Marque":"Gucci","prix_achat":2100}`,
			want: domain.CatalogItem{Reference: "12345", ProductName: "GG Marmont", Brand: "Gucci", Price: domain.NewPrice(2100)},
		},
		{
			name: "no price",
			raw:  `{"produit":"X1","designation":"Triomphe","Prix_Vente":"sur demande"}`,
			want: domain.CatalogItem{Reference: "X1", ProductName: "Triomphe", Price: domain.PriceOnRequest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r record
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &r))
			assert.Equal(t, tt.want, r.toItem())
		})
	}
}
