package dataset

import (
	"strconv"
	"strings"

	"github.com/sells-group/scout-cli/internal/model"
)

// Row is one tabular record keyed by lower-cased header name.
type Row map[string]string

// Get returns the value of column name, ignoring case.
func (r Row) Get(name string) string {
	return r[strings.ToLower(name)]
}

func newRow(header, cells []string) Row {
	r := make(Row, len(header))
	for i, h := range header {
		if h == "" || i >= len(cells) {
			continue
		}
		r[h] = cells[i]
	}
	return r
}

func normalizeHeader(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))
	}
	return out
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// FacilityFromRow maps a row with the dataset's camelCase column names.
// A non-numeric id becomes 0 and a non-numeric review score is absent.
func FacilityFromRow(r Row) model.Facility {
	id, _ := strconv.Atoi(r.Get("id"))
	f := model.Facility{
		ID:                 id,
		ApfmID:             model.FlexString(r.Get("apfmID")),
		FacilityName:       r.Get("facilityName"),
		StreetAddress:      r.Get("streetAddress"),
		City:               r.Get("city"),
		State:              r.Get("state"),
		ZipCode:            model.FlexString(r.Get("zipCode")),
		FacilityProfileURL: r.Get("facilityProfileURL"),
		FacilityBio:        r.Get("facilityBio"),
		FacAmenities:       r.Get("facAmenities"),
		TelephoneNum1:      r.Get("telephoneNum1"),
		TelephoneNum2:      r.Get("telephoneNum2"),
		OwnershipGroup:     r.Get("ownershipGroup"),
		CareType1:          r.Get("careType1"),
		CareType2:          r.Get("careType2"),
		CareType3:          r.Get("careType3"),
		RoomType1:          r.Get("roomType1"),
		RoomType1Price:     r.Get("roomType1Price"),
		RoomType2:          r.Get("roomType2"),
		RoomType2Price:     r.Get("roomType2Price"),
		RoomType3:          r.Get("roomType3"),
		RoomType3Price:     r.Get("roomType3Price"),
		UploadDate:         r.Get("uploadDate"),
	}
	if v, err := strconv.ParseFloat(r.Get("averageReviewScore"), 64); err == nil {
		f.AverageReviewScore = &v
	}
	return f
}

// ContactFromRow maps a contact row.
func ContactFromRow(r Row) model.Contact {
	return model.Contact{
		FirstName:          r.Get("firstName"),
		LastName:           r.Get("lastName"),
		Email:              r.Get("email"),
		CompanyName:        r.Get("companyName"),
		JobTitle:           r.Get("jobTitle"),
		PhoneNumber1:       r.Get("phoneNumber1"),
		PhoneNumber2:       r.Get("phoneNumber2"),
		PhoneNumber3:       r.Get("phoneNumber3"),
		LinkedInProfileURL: r.Get("linkedInProfileURL"),
	}
}

// ResidentFromRow maps a resident row. Age is kept as text.
func ResidentFromRow(r Row) model.Resident {
	return model.Resident{
		FirstName:      r.Get("firstName"),
		LastName:       r.Get("lastName"),
		Age:            model.FlexString(r.Get("age")),
		CurrentAddress: r.Get("currentAddress"),
		PastAddress1:   r.Get("pastAddress1"),
		PhoneNumber1:   r.Get("phoneNumber1"),
		PhoneNumber2:   r.Get("phoneNumber2"),
		ApfmID:         model.FlexString(r.Get("apfmID")),
	}
}
