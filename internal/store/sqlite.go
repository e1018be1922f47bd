package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/scout-cli/internal/dataset"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS facilities (
	id                   INTEGER NOT NULL,
	apfm_id              TEXT NOT NULL DEFAULT '',
	facility_name        TEXT NOT NULL DEFAULT '',
	street_address       TEXT NOT NULL DEFAULT '',
	city                 TEXT NOT NULL DEFAULT '',
	state                TEXT NOT NULL DEFAULT '',
	zip_code             TEXT NOT NULL DEFAULT '',
	facility_profile_url TEXT NOT NULL DEFAULT '',
	average_review_score REAL,
	facility_bio         TEXT NOT NULL DEFAULT '',
	fac_amenities        TEXT NOT NULL DEFAULT '',
	telephone_num1       TEXT NOT NULL DEFAULT '',
	telephone_num2       TEXT NOT NULL DEFAULT '',
	ownership_group      TEXT NOT NULL DEFAULT '',
	care_type1           TEXT NOT NULL DEFAULT '',
	care_type2           TEXT NOT NULL DEFAULT '',
	care_type3           TEXT NOT NULL DEFAULT '',
	room_type1           TEXT NOT NULL DEFAULT '',
	room_type1_price     TEXT NOT NULL DEFAULT '',
	room_type2           TEXT NOT NULL DEFAULT '',
	room_type2_price     TEXT NOT NULL DEFAULT '',
	room_type3           TEXT NOT NULL DEFAULT '',
	room_type3_price     TEXT NOT NULL DEFAULT '',
	upload_date          TEXT NOT NULL DEFAULT '',
	position             INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contacts (
	first_name           TEXT NOT NULL DEFAULT '',
	last_name            TEXT NOT NULL DEFAULT '',
	email                TEXT NOT NULL DEFAULT '',
	company_name         TEXT NOT NULL DEFAULT '',
	job_title            TEXT NOT NULL DEFAULT '',
	phone_number1        TEXT NOT NULL DEFAULT '',
	phone_number2        TEXT NOT NULL DEFAULT '',
	phone_number3        TEXT NOT NULL DEFAULT '',
	linkedin_profile_url TEXT NOT NULL DEFAULT '',
	position             INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS residents (
	first_name      TEXT NOT NULL DEFAULT '',
	last_name       TEXT NOT NULL DEFAULT '',
	age             TEXT NOT NULL DEFAULT '',
	current_address TEXT NOT NULL DEFAULT '',
	past_address1   TEXT NOT NULL DEFAULT '',
	phone_number1   TEXT NOT NULL DEFAULT '',
	phone_number2   TEXT NOT NULL DEFAULT '',
	apfm_id         TEXT NOT NULL DEFAULT '',
	position        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS catalog_meta (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	version   TEXT NOT NULL,
	loaded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_facilities_position ON facilities(position);
CREATE INDEX IF NOT EXISTS idx_contacts_position ON contacts(position);
CREATE INDEX IF NOT EXISTS idx_residents_apfm_id ON residents(apfm_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ReplaceCatalog(ctx context.Context, cat *dataset.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin replace")
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"facilities", "contacts", "residents", "catalog_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return eris.Wrapf(err, "sqlite: clear %s", table)
		}
	}

	facilityRows := make([][]any, len(cat.Facilities))
	for i, f := range cat.Facilities {
		facilityRows[i] = facilityValues(i, f)
	}
	if err := insertRows(ctx, tx, "facilities", facilityColumns, facilityRows); err != nil {
		return err
	}

	contactRows := make([][]any, len(cat.Contacts))
	for i, c := range cat.Contacts {
		contactRows[i] = contactValues(i, c)
	}
	if err := insertRows(ctx, tx, "contacts", contactColumns, contactRows); err != nil {
		return err
	}

	residentRows := make([][]any, len(cat.Residents))
	for i, r := range cat.Residents {
		residentRows[i] = residentValues(i, r)
	}
	if err := insertRows(ctx, tx, "residents", residentColumns, residentRows); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (id, version, loaded_at) VALUES (1, ?, ?)`,
		cat.Version.String(), cat.LoadedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return eris.Wrap(err, "sqlite: insert catalog meta")
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit replace")
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders,
	))
	if err != nil {
		return eris.Wrapf(err, "sqlite: prepare insert %s", table)
	}
	defer stmt.Close() //nolint:errcheck

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return eris.Wrapf(err, "sqlite: insert %s row %d", table, i)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadCatalog(ctx context.Context) (*dataset.Catalog, error) {
	var version, loadedAt string
	err := s.db.QueryRowContext(ctx, `SELECT version, loaded_at FROM catalog_meta WHERE id = 1`).Scan(&version, &loadedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoCatalog
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load catalog meta")
	}

	cat := &dataset.Catalog{}
	if cat.Version, err = uuid.Parse(version); err != nil {
		return nil, eris.Wrap(err, "sqlite: parse catalog version")
	}
	if cat.LoadedAt, err = time.Parse(time.RFC3339Nano, loadedAt); err != nil {
		return nil, eris.Wrap(err, "sqlite: parse catalog loaded_at")
	}

	if cat.Facilities, err = queryAll(ctx, s.db, "facilities", facilityColumns, scanFacility); err != nil {
		return nil, err
	}
	if cat.Contacts, err = queryAll(ctx, s.db, "contacts", contactColumns, scanContact); err != nil {
		return nil, err
	}
	if cat.Residents, err = queryAll(ctx, s.db, "residents", residentColumns, scanResident); err != nil {
		return nil, err
	}
	return cat, nil
}

func queryAll[T any](ctx context.Context, db *sql.DB, table string, columns []string, scan func(scannable) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY position", selectList(columns), table))
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query %s", table)
	}
	defer rows.Close() //nolint:errcheck

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, eris.Wrapf(rows.Err(), "sqlite: iterate %s", table)
}

var _ Store = (*SQLiteStore)(nil)
