package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// record is one catalog row as exported by the back office. Column names
// follow the export, not our domain names.
type record struct {
	Produit     flexString `json:"produit"`
	Designation flexString `json:"designation"`
	Descriptif  flexString `json:"descriptif"`
	Marque      flexString `json:"Marque"`
	PrixVente   flexString `json:"Prix_Vente"`
	PrixAchat   flexString `json:"prix_achat"`
	LienExterne flexString `json:"Lien_Externe"`
	Couleur     flexString `json:"Couleur"`
	Matiere     flexString `json:"Matiere"`
	Taille      flexString `json:"Taille"`
	Dimension   flexString `json:"Dimension"`
}

func (r record) toItem() domain.CatalogItem {
	price := string(r.PrixVente)
	if strings.TrimSpace(price) == "" {
		price = string(r.PrixAchat)
	}

	return domain.CatalogItem{
		Reference:       string(r.Produit),
		ProductName:     strings.TrimSpace(string(r.Designation)),
		DescriptiveName: strings.TrimSpace(string(r.Descriptif)),
		Brand:           strings.TrimSpace(string(r.Marque)),
		Price:           domain.ParsePrice(price),
		Link:            strings.TrimSpace(string(r.LienExterne)),
		Description:     describe(r),
	}
}

// describe joins the attribute columns into a short description.
func describe(r record) string {
	var parts []string
	for _, kv := range []struct{ label, value string }{
		{"colour", string(r.Couleur)},
		{"material", string(r.Matiere)},
		{"size", string(r.Taille)},
		{"dimensions", string(r.Dimension)},
	} {
		if v := strings.TrimSpace(kv.value); v != "" {
			parts = append(parts, kv.label+": "+v)
		}
	}
	return strings.Join(parts, "; ")
}

// flexString accepts JSON strings, numbers and null. Exports carry
// references and prices as either.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			// booleans and objects carry no usable text
			*f = ""
			return nil
		}
		if v, err := strconv.ParseFloat(n.String(), 64); err == nil && v == float64(int64(v)) {
			*f = flexString(strconv.FormatInt(int64(v), 10))
			return nil
		}
		*f = flexString(n.String())
	}
	return nil
}
