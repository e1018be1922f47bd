package browser

import (
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/paginate"
	"github.com/sells-group/scout-cli/internal/resident"
)

// ResidentList is the paged, searchable resident tab of a profile.
type ResidentList struct {
	views   []model.ResidentView
	perPage int
	term    string
	page    int
}

// NewResidentList wraps already resolved views.
func NewResidentList(views []model.ResidentView, perPage int) *ResidentList {
	return &ResidentList{views: views, perPage: perPage, page: 1}
}

// Term returns the name search.
func (l *ResidentList) Term() string { return l.term }

// Page returns the current 1-based page.
func (l *ResidentList) Page() int { return l.page }

// SetSearchTerm replaces the name search and returns to page 1.
func (l *ResidentList) SetSearchTerm(term string) {
	l.term = term
	l.page = 1
}

// SetPage moves to page n, never below 1.
func (l *ResidentList) SetPage(n int) {
	l.page = max(n, 1)
}

// Filtered returns the views matching the name search.
func (l *ResidentList) Filtered() []model.ResidentView {
	return resident.FilterByName(l.views, l.term)
}

// Results returns the current page of matching residents.
func (l *ResidentList) Results() paginate.Page[model.ResidentView] {
	return paginate.Window(l.Filtered(), l.page, l.perPage)
}
