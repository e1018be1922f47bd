// Package facility implements the search, facet filtering, and default
// ordering of the facility directory.
package facility

import (
	"slices"
	"strings"

	"github.com/sells-group/scout-cli/internal/model"
)

// Facets is the sidebar filter selection. Zero values mean "no filter".
type Facets struct {
	States    []string      `json:"states,omitempty"`
	CareTypes []string      `json:"care_types,omitempty"`
	Price     PriceCategory `json:"price,omitempty"`
}

// IsZero reports whether no facet is active.
func (f Facets) IsZero() bool {
	return len(f.States) == 0 && len(f.CareTypes) == 0 && f.Price == PriceAny
}

// Clone returns a copy that shares no slices with f.
func (f Facets) Clone() Facets {
	return Facets{
		States:    slices.Clone(f.States),
		CareTypes: slices.Clone(f.CareTypes),
		Price:     f.Price,
	}
}

// SortByCompleteness returns a copy of fs with complete records first. The
// partition is stable, so applying it again changes nothing.
func SortByCompleteness(fs []model.Facility) []model.Facility {
	if fs == nil {
		return nil
	}
	out := make([]model.Facility, 0, len(fs))
	var rest []model.Facility
	for _, f := range fs {
		if f.IsComplete() {
			out = append(out, f)
		} else {
			rest = append(rest, f)
		}
	}
	return append(out, rest...)
}

// Match reports whether f passes every active facet: its state is
// selected, ANY of its care types is selected, and its lowest valid room
// price falls in the selected band.
func (f Facets) Match(fac model.Facility) bool {
	if len(f.States) > 0 && !slices.Contains(f.States, fac.State) {
		return false
	}
	if len(f.CareTypes) > 0 && !slices.ContainsFunc(fac.CareTypes(), func(ct string) bool {
		return slices.Contains(f.CareTypes, ct)
	}) {
		return false
	}
	if f.Price != PriceAny {
		minPrice, ok := MinPrice(fac)
		if !ok || !f.Price.Contains(minPrice) {
			return false
		}
	}
	return true
}

// FilterByFacets returns the facilities in fs that match facets, in order.
func FilterByFacets(fs []model.Facility, facets Facets) []model.Facility {
	return keep(fs, facets.Match)
}

// FilterBySearchTerm keeps facilities whose name, city, state, zip code, or
// ownership group contains term, ignoring case. An empty term keeps all.
func FilterBySearchTerm(fs []model.Facility, term string) []model.Facility {
	if term == "" {
		return slices.Clone(fs)
	}
	term = strings.ToLower(term)
	return keep(fs, func(f model.Facility) bool {
		for _, field := range []string{f.FacilityName, f.City, f.State, f.ZipCode.String(), f.OwnershipGroup} {
			if field != "" && strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
}

// Query applies facets and a search term together.
func Query(fs []model.Facility, facets Facets, term string) []model.Facility {
	return FilterBySearchTerm(FilterByFacets(fs, facets), term)
}

func keep(fs []model.Facility, pred func(model.Facility) bool) []model.Facility {
	var out []model.Facility
	for _, f := range fs {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}
