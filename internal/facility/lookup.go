package facility

import (
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/textmatch"
)

// FindByID returns the facility with the given id.
func FindByID(fs []model.Facility, id int) (model.Facility, bool) {
	for _, f := range fs {
		if f.ID == id {
			return f, true
		}
	}
	return model.Facility{}, false
}

// FindByName returns the first facility whose name contains term, ignoring
// case. It backs the search box on the profile page.
func FindByName(fs []model.Facility, term string) (model.Facility, bool) {
	for _, f := range fs {
		if textmatch.ContainsIgnoreCase(f.FacilityName, term) {
			return f, true
		}
	}
	return model.Facility{}, false
}

// Resolve picks the facility a profile shows: the first name match when a
// search term is given, else the facility with id.
func Resolve(fs []model.Facility, id int, term string) (model.Facility, bool) {
	if term != "" {
		return FindByName(fs, term)
	}
	return FindByID(fs, id)
}
