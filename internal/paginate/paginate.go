// Package paginate windows an ordered collection into fixed-size pages and
// computes the page numbers a pager shows.
package paginate

// NumberWindow is how many page numbers the pager shows at once.
const NumberWindow = 5

// Page is one window of a collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	// Start and End bound Items in the full collection, [Start, End).
	Start int `json:"start"`
	End   int `json:"end"`
}

// Window returns page of items with perPage entries per page. Pages are
// 1-based; page < 1 is treated as 1 and perPage < 1 as 1. A page past the
// end yields no items but keeps the totals.
func Window[T any](items []T, page, perPage int) Page[T] {
	page = max(page, 1)
	perPage = max(perPage, 1)
	total := len(items)

	// Compare page counts before multiplying so huge pages cannot overflow.
	start, end := total, total
	if page-1 < TotalPages(total, perPage) {
		start = (page - 1) * perPage
		end = start + min(perPage, total-start)
	}

	window := items[start:end:end]
	if window == nil {
		window = []T{}
	}
	return Page[T]{
		Items:      window,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: TotalPages(total, perPage),
		Start:      start,
		End:        end,
	}
}

// TotalPages returns ceil(total/perPage), 0 for an empty collection.
func TotalPages(total, perPage int) int {
	if total <= 0 {
		return 0
	}
	perPage = max(perPage, 1)
	return (total-1)/perPage + 1
}

// Numbers returns the page numbers shown around current: a run of up to
// NumberWindow pages starting two before current, clamped to [1, totalPages].
func Numbers(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}
	start := max(1, current-2)
	if start > totalPages {
		return nil
	}
	end := start + min(NumberWindow-1, totalPages-start)
	out := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, n)
	}
	return out
}

// Nav is the state of a First/Prev/Next/Last pager.
type Nav struct {
	Current    int   `json:"current"`
	TotalPages int   `json:"total_pages"`
	Numbers    []int `json:"numbers"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// NewNav builds the pager for current of totalPages.
func NewNav(current, totalPages int) Nav {
	current = max(current, 1)
	return Nav{
		Current:    current,
		TotalPages: totalPages,
		Numbers:    Numbers(current, totalPages),
		HasPrev:    current > 1,
		HasNext:    current < totalPages,
	}
}

// NavOf builds the pager for p.
func NavOf[T any](p Page[T]) Nav {
	return NewNav(p.Page, p.TotalPages)
}

// Prev returns the previous page, never below 1.
func (n Nav) Prev() int { return max(n.Current-1, 1) }

// Next returns the next page, never past the last page.
func (n Nav) Next() int {
	if n.TotalPages < 1 {
		return 1
	}
	if n.Current >= n.TotalPages {
		return n.TotalPages
	}
	return n.Current + 1
}

// Last returns the last page, or 1 when there are no pages.
func (n Nav) Last() int { return max(n.TotalPages, 1) }
