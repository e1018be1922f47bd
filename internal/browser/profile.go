package browser

import (
	"github.com/sells-group/scout-cli/internal/facility"
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/orgchart"
)

// Profile is everything the facility profile page shows.
type Profile struct {
	Facility       model.Facility      `json:"facility"`
	Location       string              `json:"location"`
	OwnershipGroup string              `json:"ownership_group"`
	RoomRates      []facility.RoomRate `json:"room_rates"`
	KPIs           []orgchart.KPI      `json:"kpis"`
	Bio            string              `json:"bio,omitempty"`
	ProfileURL     string              `json:"profile_url,omitempty"`
	ReviewScore    string              `json:"review_score"`
	Amenities      [][]string          `json:"amenities"`
	Directory      orgchart.Directory  `json:"directory"`
}

// BuildProfile resolves the facility to show, by name when term is set and
// by id otherwise, and assembles its profile. ok is false when no facility
// matches.
func BuildProfile(facilities []model.Facility, contacts []model.Contact, linker *orgchart.Linker, id int, term string) (Profile, bool) {
	f, ok := facility.Resolve(facilities, id, term)
	if !ok {
		return Profile{}, false
	}
	dir := linker.Link(f, contacts)
	amenities := facility.Columns(facility.Amenities(f, facility.MaxAmenities), facility.AmenitiesPerColumn)
	if amenities == nil {
		amenities = [][]string{}
	}
	return Profile{
		Facility:       f,
		Location:       f.Location(),
		OwnershipGroup: f.OwnershipGroup,
		RoomRates:      facility.RoomRates(f),
		KPIs:           dir.KPIs(),
		Bio:            f.FacilityBio,
		ProfileURL:     f.FacilityProfileURL,
		ReviewScore:    facility.ReviewScore(f),
		Amenities:      amenities,
		Directory:      dir,
	}, true
}
