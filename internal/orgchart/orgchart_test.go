package orgchart

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scout-cli/internal/jobtitle"
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/ownership"
)

func sampleContacts() []model.Contact {
	return []model.Contact{
		{FirstName: "Ann", LastName: "Lee", Email: "ann@atria.com", CompanyName: "Atria Senior Living", JobTitle: "Executive Director"},
		{FirstName: "Bo", LastName: "Park", Email: "bo@maple.com", CompanyName: "Maple Grove LLC", JobTitle: "Director of Nursing"},
		{FirstName: "Ann", LastName: "Lee", Email: "ann@atria.com", CompanyName: "Atria Senior Living", JobTitle: "Sales Director"},
		{FirstName: "Cy", LastName: "Ruiz", Email: "cy@brookdale.com", CompanyName: "Random Care Partners LLC", JobTitle: "VP Sales"},
		{FirstName: "Di", LastName: "Shah", Email: "di@atria.com", CompanyName: "ATRIA SENIOR LIVING INC", JobTitle: "CEO"},
		{FirstName: "Ed", LastName: "Moss", Email: "ed@atria.com", CompanyName: "Atria", JobTitle: "Regional Director"},
	}
}

func TestLink(t *testing.T) {
	t.Parallel()

	f := model.Facility{ID: 1, FacilityName: "Maple Grove", OwnershipGroup: "Holiday Retirement"}
	d := NewLinker(nil, nil).Link(f, sampleContacts())

	require.Len(t, d.Members, 3)
	assert.Equal(t, "Ann", d.Members[0].FirstName)
	assert.Equal(t, "Executive Director", d.Members[0].JobTitle, "first duplicate wins")
	assert.Equal(t, jobtitle.ExecutiveDirector, d.Members[0].Category)
	assert.Equal(t, jobtitle.Other, d.Members[1].Category)
	assert.Equal(t, jobtitle.CLevel, d.Members[2].Category)

	assert.Equal(t, map[jobtitle.Category]int{
		jobtitle.ExecutiveDirector: 1,
		jobtitle.Other:             1,
		jobtitle.CLevel:            1,
	}, d.Counts)
}

func TestLink_GroupsInDisplayOrder(t *testing.T) {
	t.Parallel()

	f := model.Facility{FacilityName: "Maple Grove", OwnershipGroup: "Holiday Retirement"}
	d := NewLinker(nil, nil).Link(f, sampleContacts())

	require.Len(t, d.Groups, len(jobtitle.DisplayOrder))
	for i, g := range d.Groups {
		assert.Equal(t, jobtitle.DisplayOrder[i], g.Category)
		assert.NotNil(t, g.Members)
	}
	assert.Len(t, d.Group(jobtitle.CLevel), 1)
	assert.Empty(t, d.Group(jobtitle.VicePresident))
	assert.Equal(t, "Bo", d.Group(jobtitle.Other)[0].FirstName)
}

func TestLink_KPIs(t *testing.T) {
	t.Parallel()

	f := model.Facility{FacilityName: "Maple Grove", OwnershipGroup: "Holiday Retirement"}
	kpis := NewLinker(nil, nil).Link(f, sampleContacts()).KPIs()

	require.Len(t, kpis, len(jobtitle.KPIOrder))
	assert.Equal(t, KPI{Category: jobtitle.ExecutiveDirector, Count: 1}, kpis[0])
	assert.Equal(t, KPI{Category: jobtitle.Other, Count: 1}, kpis[1])
	assert.Equal(t, KPI{Category: jobtitle.CommunitySales, Count: 0}, kpis[2])
	assert.Equal(t, KPI{Category: jobtitle.CLevel, Count: 1}, kpis[5])
}

func TestLink_UnmatchedOwnershipUsedVerbatim(t *testing.T) {
	t.Parallel()

	f := model.Facility{FacilityName: "Oak Terrace", OwnershipGroup: "Random Care Partners"}
	d := NewLinker(nil, nil).Link(f, sampleContacts())

	require.Len(t, d.Members, 1)
	assert.Equal(t, "Cy", d.Members[0].FirstName)
	assert.Equal(t, jobtitle.VicePresident, d.Members[0].Category)
}

func TestLink_BlankNeedlesMatchNothing(t *testing.T) {
	t.Parallel()

	d := NewLinker(nil, nil).Link(model.Facility{FacilityName: "  "}, sampleContacts())
	assert.Empty(t, d.Members)
	assert.Len(t, d.Groups, len(jobtitle.DisplayOrder))
	for _, k := range d.KPIs() {
		assert.Zero(t, k.Count)
	}
}

func TestLink_CustomRules(t *testing.T) {
	t.Parallel()

	owners := ownership.New([]ownership.Rule{
		{Pattern: regexp.MustCompile(`(?i)holiday`), Name: "Random Care"},
	})
	titles := jobtitle.New([]jobtitle.Rule{
		{Category: jobtitle.CommunitySales, Pattern: regexp.MustCompile(`(?i)vp`)},
	})
	f := model.Facility{FacilityName: "Nowhere", OwnershipGroup: "Holiday Retirement"}
	d := NewLinker(owners, titles).Link(f, sampleContacts())

	require.Len(t, d.Members, 1)
	assert.Equal(t, jobtitle.CommunitySales, d.Members[0].Category)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	l := NewLinker(nil, nil)
	f := model.Facility{FacilityName: "Maple Grove", OwnershipGroup: "sunrise of ohio"}

	assert.True(t, l.Match(f, model.Contact{CompanyName: "Sunrise Senior Living LLC"}))
	assert.True(t, l.Match(f, model.Contact{CompanyName: "The MAPLE GROVE Group"}))
	assert.False(t, l.Match(f, model.Contact{CompanyName: "Atria"}))
}
