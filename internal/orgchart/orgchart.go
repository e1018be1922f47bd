// Package orgchart links a facility to the contacts of its operating
// organization and groups them into the staff directory and org chart.
package orgchart

import (
	"strings"

	"github.com/sells-group/scout-cli/internal/contact"
	"github.com/sells-group/scout-cli/internal/jobtitle"
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/ownership"
)

// Member is a linked contact with its classified category.
type Member struct {
	model.Contact
	Category jobtitle.Category `json:"category"`
}

// Group is one level of the org chart.
type Group struct {
	Category jobtitle.Category `json:"category"`
	Members  []Member          `json:"members"`
}

// Directory is the staff directory of one facility.
type Directory struct {
	// Members are the linked, deduplicated contacts in dataset order.
	Members []Member                  `json:"members"`
	Counts  map[jobtitle.Category]int `json:"counts"`
	// Groups follow jobtitle.DisplayOrder and include empty levels.
	Groups []Group `json:"groups"`
}

// KPI is one role counter on the facility overview.
type KPI struct {
	Category jobtitle.Category `json:"category"`
	Count    int               `json:"count"`
}

// KPIs returns the role counters in jobtitle.KPIOrder.
func (d Directory) KPIs() []KPI {
	out := make([]KPI, 0, len(jobtitle.KPIOrder))
	for _, c := range jobtitle.KPIOrder {
		out = append(out, KPI{Category: c, Count: d.Counts[c]})
	}
	return out
}

// Group returns the members of category c.
func (d Directory) Group(c jobtitle.Category) []Member {
	for _, g := range d.Groups {
		if g.Category == c {
			return g.Members
		}
	}
	return nil
}

// Linker matches contacts to facilities by company name.
type Linker struct {
	owners *ownership.Normalizer
	titles *jobtitle.Classifier
}

// NewLinker creates a Linker. Nil arguments select the built-in rule tables.
func NewLinker(owners *ownership.Normalizer, titles *jobtitle.Classifier) *Linker {
	if owners == nil {
		owners = ownership.NewDefault()
	}
	if titles == nil {
		titles = jobtitle.NewDefault()
	}
	return &Linker{owners: owners, titles: titles}
}

// Match reports whether c belongs to the organization of f: its company
// name contains the normalized ownership group or the facility name.
// Blank needles never match.
func (l *Linker) Match(f model.Facility, c model.Contact) bool {
	return l.matcher(f)(c)
}

func (l *Linker) matcher(f model.Facility) func(model.Contact) bool {
	owner := strings.ToLower(l.owners.Normalize(f.OwnershipGroup))
	name := strings.ToLower(strings.TrimSpace(f.FacilityName))
	return func(c model.Contact) bool {
		company := strings.ToLower(c.CompanyName)
		return contains(company, owner) || contains(company, name)
	}
}

// Link selects, deduplicates and classifies the contacts of f.
func (l *Linker) Link(f model.Facility, contacts []model.Contact) Directory {
	match := l.matcher(f)
	var linked []model.Contact
	for _, c := range contacts {
		if match(c) {
			linked = append(linked, c)
		}
	}
	linked = contact.Dedupe(linked)

	d := Directory{
		Members: make([]Member, 0, len(linked)),
		Counts:  make(map[jobtitle.Category]int, len(jobtitle.DisplayOrder)),
	}
	byCategory := make(map[jobtitle.Category][]Member, len(jobtitle.DisplayOrder))
	for _, c := range linked {
		m := Member{Contact: c, Category: l.titles.Classify(c.JobTitle)}
		d.Members = append(d.Members, m)
		d.Counts[m.Category]++
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}

	d.Groups = make([]Group, 0, len(jobtitle.DisplayOrder))
	for _, c := range jobtitle.DisplayOrder {
		members := byCategory[c]
		if members == nil {
			members = []Member{}
		}
		d.Groups = append(d.Groups, Group{Category: c, Members: members})
	}
	return d
}

func contains(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}
