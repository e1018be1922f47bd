package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

const facilitiesJSON = `[
  {"id": 1, "apfmID": 501, "facilityName": "Oak Grove Assisted Living", "streetAddress": "12 Oak St",
   "city": "Austin", "state": "TX", "zipCode": 78701, "ownershipGroup": "Holiday Retirement",
   "averageReviewScore": 4.6, "facAmenities": "<ul><li>Pool</li><li>Library</li></ul>",
   "careType1": "Assisted Living", "careType2": "Memory Care",
   "roomType1": "Studio", "roomType1Price": "$2,500", "roomType2": "One Bedroom", "roomType2Price": "$3,400"},
  {"id": 2, "apfmID": "502", "facilityName": "Maple Court", "streetAddress": "9 Maple Ave",
   "city": "Denver", "state": "CO", "zipCode": "80202", "ownershipGroup": "Capital Senior Living",
   "careType1": "Independent Living", "roomType1": "Suite", "roomType1Price": "$6,100"},
  {"id": 3, "facilityName": "Pine Ridge", "streetAddress": "3 Pine Rd", "city": "Austin",
   "state": "TX", "zipCode": "78702", "roomType1Price": "N/A"}
]`

const contactsJSON = `[
  {"firstName": "Ann", "lastName": "Lee", "email": "ann@atria.com", "companyName": "Atria Senior Living Inc", "jobTitle": "Executive Director"},
  {"firstName": "Ann", "lastName": "Lee", "email": "ann@atria.com", "companyName": "Atria Senior Living Inc", "jobTitle": "Executive Director"},
  {"firstName": "Bo", "lastName": "Kim", "email": "bo@atria.com", "companyName": "Atria Senior Living", "jobTitle": "Director of Sales"},
  {"firstName": "Cy", "lastName": "Ng", "email": "cy@sonida.com", "companyName": "Sonida Senior Living", "jobTitle": "CEO"}
]`

const residentsJSON = `[
  {"firstName": "Edna", "lastName": "Moss", "age": "84", "currentAddress": "12 Oak St Austin TX 78701", "apfmID": "501"},
  {"firstName": "Walt", "lastName": "Reyes", "age": 77, "currentAddress": "400 Elm Blvd Houston TX 77002", "apfmID": 501},
  {"firstName": "Tim", "lastName": "Young", "age": "45", "currentAddress": "12 Oak St Austin TX 78701", "apfmID": "501"},
  {"firstName": "Rosa", "lastName": "Diaz", "age": "90", "currentAddress": "9 Maple Ave Denver CO 80202", "apfmID": "502"}
]`

// setupWorkspace writes the fixture dataset and a config.yaml into a temp
// dir and changes into it. extra is appended to the config file.
func setupWorkspace(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("facilities.json", facilitiesJSON)
	write("contacts.json", contactsJSON)
	write("residents.json", residentsJSON)
	write("config.yaml", `
dataset:
  facilities: facilities.json
  contacts: contacts.json
  residents: residents.json
log:
  level: error
`+extra)

	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores flag variables that persist between Execute calls.
func resetFlags() {
	searchQuery, searchPrice, searchView = "", "", "card"
	searchStates, searchCareTypes = nil, nil
	searchPage, searchJSON = 1, false
	profileQuery, profileJSON = "", false
	residentsQuery, residentsPage, residentsJSON = "", 1, false
	importFacilities, importContacts, importResidents = "", "", ""
	servePort = 0
}
