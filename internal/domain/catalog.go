package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Price is either a numeric amount or the "price on request" sentinel.
type Price struct {
	Amount    float64
	OnRequest bool
}

// PriceOnRequest is the sentinel used when the catalog carries no numeric price.
var PriceOnRequest = Price{OnRequest: true}

// NewPrice returns a numeric price.
func NewPrice(amount float64) Price {
	return Price{Amount: amount}
}

// String renders the price for replies. Whole amounts carry no decimals.
func (p Price) String() string {
	if p.OnRequest {
		return "on request"
	}
	return strconv.FormatFloat(p.Amount, 'f', -1, 64)
}

// MarshalJSON encodes a numeric price as a number and the sentinel as a string.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.OnRequest {
		return json.Marshal("on request")
	}
	return json.Marshal(p.Amount)
}

// UnmarshalJSON accepts numbers, numeric strings ("3200", "3 200,50") and
// anything else as "price on request".
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = PriceOnRequest
		return nil
	}

	var amount float64
	if err := json.Unmarshal(data, &amount); err == nil {
		*p = NewPrice(amount)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = PriceOnRequest
		return nil
	}
	*p = ParsePrice(raw)
	return nil
}

// ParsePrice parses a free-form catalog price cell.
func ParsePrice(raw string) Price {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimPrefix(s, "€")
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	lastComma, lastDot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case lastComma > lastDot && (lastDot >= 0 || len(s)-lastComma-1 != 3):
		// "4.900,00" or "12,5": comma is the decimal separator
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	default:
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" {
		return PriceOnRequest
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount <= 0 {
		return PriceOnRequest
	}
	return NewPrice(amount)
}

// CatalogItem is a read-only view of one catalog row.
type CatalogItem struct {
	Reference       string `json:"reference"`
	ProductName     string `json:"productName"`
	DescriptiveName string `json:"descriptiveName,omitempty"`
	Brand           string `json:"brand"`
	Price           Price  `json:"price"`
	Link            string `json:"link,omitempty"`
	Description     string `json:"description,omitempty"`
}

// DisplayName returns the first non-empty of product name, descriptive name and reference.
func (i CatalogItem) DisplayName() string {
	for _, v := range []string{i.ProductName, i.DescriptiveName, i.Reference} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// MatchedBy records which predicate selected a catalog item.
type MatchedBy string

const (
	MatchedByReference MatchedBy = "reference"
	MatchedByName      MatchedBy = "name"
	MatchedByNone      MatchedBy = "none"
)

// MatchResult is the outcome of a catalog lookup.
type MatchResult struct {
	Item      *CatalogItem `json:"item,omitempty"`
	MatchedBy MatchedBy    `json:"matchedBy"`
}

// Found reports whether an item was matched.
func (m MatchResult) Found() bool {
	return m.Item != nil
}
