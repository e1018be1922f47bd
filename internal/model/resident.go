package model

import "strings"

// ResidentStatus is derived from address comparison and never stored.
type ResidentStatus string

const (
	StatusResident ResidentStatus = "Resident"
	StatusLead     ResidentStatus = "Lead"
)

// Resident is a person associated with a facility through ApfmID.
type Resident struct {
	FirstName      string     `json:"firstName" db:"first_name"`
	LastName       string     `json:"lastName" db:"last_name"`
	Age            FlexString `json:"age" db:"age"`
	CurrentAddress string     `json:"currentAddress,omitempty" db:"current_address"`
	PastAddress1   string     `json:"pastAddress1,omitempty" db:"past_address1"`
	PhoneNumber1   string     `json:"phoneNumber1,omitempty" db:"phone_number1"`
	PhoneNumber2   string     `json:"phoneNumber2,omitempty" db:"phone_number2"`
	ApfmID         FlexString `json:"apfmID" db:"apfm_id"`
}

// FullName returns "first last".
func (r Resident) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// ResidentView is a resident annotated with its derived status.
type ResidentView struct {
	Resident
	AgeYears int            `json:"ageYears"`
	Status   ResidentStatus `json:"status"`
}
