// Package model defines the facility, contact, and resident records of the directory dataset.
package model

import "strings"

// NotAvailable is the dataset's marker for an absent optional value.
const NotAvailable = "N/A"

// Facility is a senior-care location record.
type Facility struct {
	ID                 int        `json:"id" db:"id"`
	ApfmID             FlexString `json:"apfmID,omitempty" db:"apfm_id"`
	FacilityName       string     `json:"facilityName" db:"facility_name"`
	StreetAddress      string     `json:"streetAddress" db:"street_address"`
	City               string     `json:"city" db:"city"`
	State              string     `json:"state" db:"state"`
	ZipCode            FlexString `json:"zipCode" db:"zip_code"`
	FacilityProfileURL string     `json:"facilityProfileURL,omitempty" db:"facility_profile_url"`
	AverageReviewScore *float64   `json:"averageReviewScore" db:"average_review_score"`
	FacilityBio        string     `json:"facilityBio,omitempty" db:"facility_bio"`
	FacAmenities       string     `json:"facAmenities,omitempty" db:"fac_amenities"`
	TelephoneNum1      string     `json:"telephoneNum1,omitempty" db:"telephone_num1"`
	TelephoneNum2      string     `json:"telephoneNum2,omitempty" db:"telephone_num2"`
	OwnershipGroup     string     `json:"ownershipGroup,omitempty" db:"ownership_group"`

	CareType1 string `json:"careType1,omitempty" db:"care_type1"`
	CareType2 string `json:"careType2,omitempty" db:"care_type2"`
	CareType3 string `json:"careType3,omitempty" db:"care_type3"`

	RoomType1      string `json:"roomType1,omitempty" db:"room_type1"`
	RoomType1Price string `json:"roomType1Price,omitempty" db:"room_type1_price"`
	RoomType2      string `json:"roomType2,omitempty" db:"room_type2"`
	RoomType2Price string `json:"roomType2Price,omitempty" db:"room_type2_price"`
	RoomType3      string `json:"roomType3,omitempty" db:"room_type3"`
	RoomType3Price string `json:"roomType3Price,omitempty" db:"room_type3_price"`

	UploadDate string `json:"uploadDate,omitempty" db:"upload_date"`
}

// Present reports whether an optional dataset value is populated.
// Empty strings and the "N/A" marker both count as absent.
func Present(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, NotAvailable)
}

// IsComplete reports whether the primary room type, its price, and the
// primary care type are all populated. Complete records sort first.
func (f Facility) IsComplete() bool {
	return Present(f.RoomType1) && Present(f.RoomType1Price) && Present(f.CareType1)
}

// CareTypes returns the populated care-type labels in slot order.
func (f Facility) CareTypes() []string {
	var out []string
	for _, ct := range []string{f.CareType1, f.CareType2, f.CareType3} {
		if Present(ct) {
			out = append(out, ct)
		}
	}
	return out
}

// RoomSlot is one room-type/price pair as stored on the record.
type RoomSlot struct {
	Type  string
	Price string
}

// RoomSlots returns the three room-type/price slots, populated or not.
func (f Facility) RoomSlots() [3]RoomSlot {
	return [3]RoomSlot{
		{Type: f.RoomType1, Price: f.RoomType1Price},
		{Type: f.RoomType2, Price: f.RoomType2Price},
		{Type: f.RoomType3, Price: f.RoomType3Price},
	}
}

// RoomPrices returns the raw price text of each room slot.
func (f Facility) RoomPrices() []string {
	return []string{f.RoomType1Price, f.RoomType2Price, f.RoomType3Price}
}

// FullAddress joins street, city, state, and zip with single spaces. This is
// the form residents' addresses are compared against.
func (f Facility) FullAddress() string {
	return strings.Join([]string{f.StreetAddress, f.City, f.State, f.ZipCode.String()}, " ")
}

// Location is the comma-separated address shown on the profile overview.
func (f Facility) Location() string {
	return strings.Join([]string{f.StreetAddress, f.City, f.State, f.ZipCode.String()}, ", ")
}
