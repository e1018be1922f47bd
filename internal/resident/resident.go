// Package resident matches resident records to a facility and derives
// whether each person lives there or is a lead.
package resident

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/textmatch"
)

// DefaultMinAge is the youngest age listed.
const DefaultMinAge = 70

// Resolver derives resident views for a facility.
type Resolver struct {
	MinAge int
}

// NewResolver returns a Resolver with DefaultMinAge.
func NewResolver() *Resolver {
	return &Resolver{MinAge: DefaultMinAge}
}

// Resolve keeps residents linked to apfmID whose age parses and is at least
// MinAge, and marks each as StatusResident when their current address is
// phonetically equal to f's full address, otherwise StatusLead. Input order
// is preserved.
func (r *Resolver) Resolve(residents []model.Resident, f model.Facility, apfmID model.FlexString) []model.ResidentView {
	target := textmatch.PhoneticCode(f.FullAddress())
	var out []model.ResidentView
	for _, res := range residents {
		if !res.ApfmID.Equal(apfmID) {
			continue
		}
		age, ok := ParseAge(res.Age.String())
		if !ok || age < r.MinAge {
			continue
		}
		status := model.StatusLead
		if textmatch.PhoneticCode(res.CurrentAddress) == target {
			status = model.StatusResident
		}
		out = append(out, model.ResidentView{Resident: res, AgeYears: age, Status: status})
	}
	return out
}

// ForFacility resolves the residents linked through f's own ApfmID.
func (r *Resolver) ForFacility(residents []model.Resident, f model.Facility) []model.ResidentView {
	return r.Resolve(residents, f, f.ApfmID)
}

// FilterByName keeps views whose "first last" name contains term, ignoring
// case. An empty term keeps all.
func FilterByName(views []model.ResidentView, term string) []model.ResidentView {
	if term == "" {
		return views
	}
	var out []model.ResidentView
	for _, v := range views {
		if textmatch.ContainsIgnoreCase(v.FirstName+" "+v.LastName, term) {
			out = append(out, v)
		}
	}
	return out
}

// ParseAge reads the leading integer of raw ("72 yrs" is 72). Leading
// whitespace and a sign are allowed.
func ParseAge(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	age, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return age, true
}

// Count tallies views by status.
func Count(views []model.ResidentView) map[model.ResidentStatus]int {
	out := map[model.ResidentStatus]int{model.StatusResident: 0, model.StatusLead: 0}
	for _, v := range views {
		out[v.Status]++
	}
	return out
}
