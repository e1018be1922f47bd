// Package browser holds the navigation state of a directory session: the
// search box, the sidebar facets, the view mode, and the current page.
package browser

import (
	"slices"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scout-cli/internal/facility"
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/paginate"
)

// ViewMode selects how results are laid out, which sets the page size.
type ViewMode string

const (
	ViewCard  ViewMode = "card"
	ViewTable ViewMode = "table"
)

// ParseViewMode validates a view mode. The empty string selects ViewCard.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case "", ViewCard:
		return ViewCard, nil
	case ViewTable:
		return ViewTable, nil
	default:
		return "", eris.Errorf("browser: unknown view mode %q", s)
	}
}

// PageSizes are the items per page of each list.
type PageSizes struct {
	Card      int
	Table     int
	Residents int
}

// DefaultPageSizes returns 6 cards, 10 table rows and 9 residents per page.
func DefaultPageSizes() PageSizes {
	return PageSizes{Card: 6, Table: 10, Residents: 9}
}

// PerPage returns the page size of mode.
func (p PageSizes) PerPage(mode ViewMode) int {
	if mode == ViewTable {
		return p.Table
	}
	return p.Card
}

// Session is the dashboard state over a fixed facility catalog. Any change
// to the search term, a facet, or the view mode returns to page 1.
// A Session is not safe for concurrent use.
type Session struct {
	catalog []model.Facility
	sizes   PageSizes

	term   string
	facets facility.Facets
	view   ViewMode
	page   int
}

// NewSession starts a session on page 1 in card view with no filters.
func NewSession(catalog []model.Facility, sizes PageSizes) *Session {
	return &Session{
		catalog: facility.SortByCompleteness(catalog),
		sizes:   sizes,
		view:    ViewCard,
		page:    1,
	}
}

// Term returns the search term.
func (s *Session) Term() string { return s.term }

// Facets returns a copy of the active facets.
func (s *Session) Facets() facility.Facets { return s.facets.Clone() }

// View returns the layout.
func (s *Session) View() ViewMode { return s.view }

// Page returns the current 1-based page.
func (s *Session) Page() int { return s.page }

// PerPage returns the page size of the current layout.
func (s *Session) PerPage() int { return s.sizes.PerPage(s.view) }

// SetSearchTerm replaces the search term.
func (s *Session) SetSearchTerm(term string) {
	s.term = term
	s.page = 1
}

// SetStates replaces the state facet.
func (s *Session) SetStates(states ...string) {
	s.facets.States = slices.Clone(states)
	s.page = 1
}

// ToggleState adds or removes one state from the facet.
func (s *Session) ToggleState(state string) {
	s.facets.States = toggle(s.facets.States, state)
	s.page = 1
}

// SetCareTypes replaces the care-type facet.
func (s *Session) SetCareTypes(types ...string) {
	s.facets.CareTypes = slices.Clone(types)
	s.page = 1
}

// ToggleCareType adds or removes one care type from the facet.
func (s *Session) ToggleCareType(careType string) {
	s.facets.CareTypes = toggle(s.facets.CareTypes, careType)
	s.page = 1
}

// SetPrice selects a price band; PriceAny clears it.
func (s *Session) SetPrice(c facility.PriceCategory) {
	s.facets.Price = c
	s.page = 1
}

// SetView switches the layout.
func (s *Session) SetView(mode ViewMode) {
	s.view = mode
	s.page = 1
}

// ClearFilters empties every facet.
func (s *Session) ClearFilters() {
	s.facets = facility.Facets{}
	s.page = 1
}

// SetPage moves to page n, never below 1.
func (s *Session) SetPage(n int) {
	s.page = max(n, 1)
}

// Filtered returns the completeness-ordered facilities passing the facets
// and the search term.
func (s *Session) Filtered() []model.Facility {
	return facility.Query(s.catalog, s.facets, s.term)
}

// Count returns the number of facilities in the filtered set.
func (s *Session) Count() int {
	return len(s.Filtered())
}

// Results returns the current page of the filtered set.
func (s *Session) Results() paginate.Page[model.Facility] {
	return paginate.Window(s.Filtered(), s.page, s.PerPage())
}

// Nav returns the pager for the current page.
func (s *Session) Nav() paginate.Nav {
	return paginate.NavOf(s.Results())
}

// Selection returns the facet state to carry into the next view.
func (s *Session) Selection() facility.Facets {
	return s.facets.Clone()
}

// WithSelection restores facet state carried over from another view.
func (s *Session) WithSelection(f facility.Facets) *Session {
	s.facets = f.Clone()
	s.page = 1
	return s
}

func toggle(values []string, v string) []string {
	if i := slices.Index(values, v); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), v)
}
