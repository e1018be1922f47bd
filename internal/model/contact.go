package model

import "strings"

// Contact is a staff member of a facility's operating organization.
type Contact struct {
	FirstName          string `json:"firstName" db:"first_name"`
	LastName           string `json:"lastName" db:"last_name"`
	Email              string `json:"email,omitempty" db:"email"`
	CompanyName        string `json:"companyName" db:"company_name"`
	JobTitle           string `json:"jobTitle" db:"job_title"`
	PhoneNumber1       string `json:"phoneNumber1,omitempty" db:"phone_number1"`
	PhoneNumber2       string `json:"phoneNumber2,omitempty" db:"phone_number2"`
	PhoneNumber3       string `json:"phoneNumber3,omitempty" db:"phone_number3"`
	LinkedInProfileURL string `json:"linkedInProfileURL,omitempty" db:"linkedin_profile_url"`
}

// ContactKey is the identity tuple used to collapse duplicate contacts.
type ContactKey struct {
	FirstName string
	LastName  string
	Email     string
}

// Key returns the contact's identity tuple.
func (c Contact) Key() ContactKey {
	return ContactKey{FirstName: c.FirstName, LastName: c.LastName, Email: c.Email}
}

// FullName returns "first last".
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Phones returns the non-empty phone numbers in slot order.
func (c Contact) Phones() []string {
	var out []string
	for _, p := range []string{c.PhoneNumber1, c.PhoneNumber2, c.PhoneNumber3} {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
