// Package store persists dataset catalogs in SQLite or Postgres so that a
// server can start from an imported snapshot instead of raw files.
package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scout-cli/internal/dataset"
	"github.com/sells-group/scout-cli/internal/model"
)

// Store saves and restores whole catalogs. Snapshots are immutable, so a
// replace swaps every table at once and there are no partial updates.
type Store interface {
	Migrate(ctx context.Context) error
	ReplaceCatalog(ctx context.Context, cat *dataset.Catalog) error
	LoadCatalog(ctx context.Context) (*dataset.Catalog, error)
	Close() error
}

// Open connects to the store for driver ("sqlite" or "postgres"). poolCfg
// only applies to postgres and may be nil.
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

// ErrNoCatalog is returned by LoadCatalog before the first import.
var ErrNoCatalog = eris.New("store: no catalog imported")

// Column order is shared by both drivers; position keeps dataset order.
var (
	facilityColumns = []string{
		"id", "apfm_id", "facility_name", "street_address", "city", "state", "zip_code",
		"facility_profile_url", "average_review_score", "facility_bio", "fac_amenities",
		"telephone_num1", "telephone_num2", "ownership_group",
		"care_type1", "care_type2", "care_type3",
		"room_type1", "room_type1_price", "room_type2", "room_type2_price", "room_type3", "room_type3_price",
		"upload_date", "position",
	}
	contactColumns = []string{
		"first_name", "last_name", "email", "company_name", "job_title",
		"phone_number1", "phone_number2", "phone_number3", "linkedin_profile_url", "position",
	}
	residentColumns = []string{
		"first_name", "last_name", "age", "current_address", "past_address1",
		"phone_number1", "phone_number2", "apfm_id", "position",
	}
)

// selectList returns the columns without the trailing position.
func selectList(cols []string) string {
	return strings.Join(cols[:len(cols)-1], ", ")
}

func facilityValues(pos int, f model.Facility) []any {
	var score any
	if f.AverageReviewScore != nil {
		score = *f.AverageReviewScore
	}
	return []any{
		f.ID, f.ApfmID.String(), f.FacilityName, f.StreetAddress, f.City, f.State, f.ZipCode.String(),
		f.FacilityProfileURL, score, f.FacilityBio, f.FacAmenities,
		f.TelephoneNum1, f.TelephoneNum2, f.OwnershipGroup,
		f.CareType1, f.CareType2, f.CareType3,
		f.RoomType1, f.RoomType1Price, f.RoomType2, f.RoomType2Price, f.RoomType3, f.RoomType3Price,
		f.UploadDate, pos,
	}
}

func contactValues(pos int, c model.Contact) []any {
	return []any{
		c.FirstName, c.LastName, c.Email, c.CompanyName, c.JobTitle,
		c.PhoneNumber1, c.PhoneNumber2, c.PhoneNumber3, c.LinkedInProfileURL, pos,
	}
}

func residentValues(pos int, r model.Resident) []any {
	return []any{
		r.FirstName, r.LastName, r.Age.String(), r.CurrentAddress, r.PastAddress1,
		r.PhoneNumber1, r.PhoneNumber2, r.ApfmID.String(), pos,
	}
}

type scannable interface {
	Scan(dest ...any) error
}

func scanFacility(row scannable) (model.Facility, error) {
	var (
		f           model.Facility
		apfmID, zip string
		score       sql.NullFloat64
	)
	err := row.Scan(
		&f.ID, &apfmID, &f.FacilityName, &f.StreetAddress, &f.City, &f.State, &zip,
		&f.FacilityProfileURL, &score, &f.FacilityBio, &f.FacAmenities,
		&f.TelephoneNum1, &f.TelephoneNum2, &f.OwnershipGroup,
		&f.CareType1, &f.CareType2, &f.CareType3,
		&f.RoomType1, &f.RoomType1Price, &f.RoomType2, &f.RoomType2Price, &f.RoomType3, &f.RoomType3Price,
		&f.UploadDate,
	)
	if err != nil {
		return f, eris.Wrap(err, "store: scan facility")
	}
	f.ApfmID = model.FlexString(apfmID)
	f.ZipCode = model.FlexString(zip)
	if score.Valid {
		v := score.Float64
		f.AverageReviewScore = &v
	}
	return f, nil
}

func scanContact(row scannable) (model.Contact, error) {
	var c model.Contact
	err := row.Scan(
		&c.FirstName, &c.LastName, &c.Email, &c.CompanyName, &c.JobTitle,
		&c.PhoneNumber1, &c.PhoneNumber2, &c.PhoneNumber3, &c.LinkedInProfileURL,
	)
	return c, eris.Wrap(err, "store: scan contact")
}

func scanResident(row scannable) (model.Resident, error) {
	var (
		r           model.Resident
		age, apfmID string
	)
	err := row.Scan(
		&r.FirstName, &r.LastName, &age, &r.CurrentAddress, &r.PastAddress1,
		&r.PhoneNumber1, &r.PhoneNumber2, &apfmID,
	)
	if err != nil {
		return r, eris.Wrap(err, "store: scan resident")
	}
	r.Age = model.FlexString(age)
	r.ApfmID = model.FlexString(apfmID)
	return r, nil
}
