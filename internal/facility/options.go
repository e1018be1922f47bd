package facility

// States are the state codes offered by the sidebar filter.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// CareTypeLabels are the care types offered by the sidebar filter.
var CareTypeLabels = []string{
	"Independent Living",
	"Memory Care",
	"Assisted Living",
	"Nursing Home",
	"Home Care",
	"Senior Apartment",
}

// Options is the full sidebar option set.
type Options struct {
	States    []string      `json:"states"`
	CareTypes []string      `json:"care_types"`
	Prices    []PriceOption `json:"prices"`
}

// FilterOptions returns the sidebar option lists.
func FilterOptions() Options {
	return Options{States: States, CareTypes: CareTypeLabels, Prices: PriceCategories}
}
