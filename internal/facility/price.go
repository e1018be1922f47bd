package facility

import (
	"math"
	"regexp"
	"strconv"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/scout-cli/internal/model"
)

// PriceCategory is a monthly price band selected in the sidebar.
type PriceCategory string

const (
	PriceAny    PriceCategory = ""
	Price1To3K  PriceCategory = "1-3k"
	Price3To5K  PriceCategory = "3-5k"
	Price5To7K  PriceCategory = "5-7k"
	PriceOver7K PriceCategory = "7k+"
)

const priceBandUnit = 1000.0

// PriceOption is a selectable price band with its display label.
type PriceOption struct {
	Label string        `json:"label"`
	Value PriceCategory `json:"value"`
}

// PriceCategories lists the bands in sidebar order.
var PriceCategories = []PriceOption{
	{Label: "1k - 3k", Value: Price1To3K},
	{Label: "3k - 5k", Value: Price3To5K},
	{Label: "5k - 7k", Value: Price5To7K},
	{Label: "7k and above", Value: PriceOver7K},
}

// ParsePriceCategory validates a band value. The empty string selects any price.
func ParsePriceCategory(s string) (PriceCategory, error) {
	if s == "" {
		return PriceAny, nil
	}
	for _, opt := range PriceCategories {
		if string(opt.Value) == s {
			return opt.Value, nil
		}
	}
	return PriceAny, eris.Errorf("facility: unknown price category %q", s)
}

// Contains reports whether price falls in the band. The lowest band is
// closed on both ends; the others are open below and closed above.
func (c PriceCategory) Contains(price float64) bool {
	switch c {
	case Price1To3K:
		return price >= 1*priceBandUnit && price <= 3*priceBandUnit
	case Price3To5K:
		return price > 3*priceBandUnit && price <= 5*priceBandUnit
	case Price5To7K:
		return price > 5*priceBandUnit && price <= 7*priceBandUnit
	case PriceOver7K:
		return price > 7*priceBandUnit
	default:
		return true
	}
}

var (
	nonNumeric    = regexp.MustCompile(`[^0-9.\-]+`)
	leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// ParsePrice extracts a monthly price from currency text such as "$3,450".
// Everything but digits, '.' and '-' is dropped and the leading number is
// parsed. Non-numeric, zero, and negative values are not valid prices.
func ParsePrice(raw string) (float64, bool) {
	m := leadingNumber.FindString(nonNumeric.ReplaceAllString(raw, ""))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || v <= 0 {
		return 0, false
	}
	return v, true
}

// MinPrice returns the lowest valid room price of f. ok is false when no
// slot holds a valid price.
func MinPrice(f model.Facility) (minPrice float64, ok bool) {
	for _, raw := range f.RoomPrices() {
		v, valid := ParsePrice(raw)
		if !valid {
			continue
		}
		if !ok || v < minPrice {
			minPrice = v
			ok = true
		}
	}
	return minPrice, ok
}

// FormatPrice renders a price for display with thousands separators
// ("$1,200"). Absent or unparseable prices render as "N/A".
func FormatPrice(raw string) string {
	if !model.Present(raw) {
		return model.NotAvailable
	}
	v, ok := ParsePrice(raw)
	if !ok {
		return model.NotAvailable
	}
	p := message.NewPrinter(language.English)
	if v == math.Trunc(v) {
		return p.Sprintf("$%d", int64(v))
	}
	return p.Sprintf("$%.2f", v)
}
