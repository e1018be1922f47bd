package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/scout-cli/internal/dataset"
	"github.com/sells-group/scout-cli/internal/db"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS facilities (
	id                   INTEGER NOT NULL,
	apfm_id              TEXT NOT NULL DEFAULT '',
	facility_name        TEXT NOT NULL DEFAULT '',
	street_address       TEXT NOT NULL DEFAULT '',
	city                 TEXT NOT NULL DEFAULT '',
	state                TEXT NOT NULL DEFAULT '',
	zip_code             TEXT NOT NULL DEFAULT '',
	facility_profile_url TEXT NOT NULL DEFAULT '',
	average_review_score DOUBLE PRECISION,
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
	version   UUID NOT NULL,
	loaded_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_facilities_position ON facilities(position);
CREATE INDEX IF NOT EXISTS idx_contacts_position ON contacts(position);
CREATE INDEX IF NOT EXISTS idx_residents_apfm_id ON residents(apfm_id);
`

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// ReplaceCatalog truncates the catalog tables and bulk-copies cat inside
// one transaction.
func (s *PostgresStore) ReplaceCatalog(ctx context.Context, cat *dataset.Catalog) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin replace")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE facilities, contacts, residents, catalog_meta`); err != nil {
		return eris.Wrap(err, "postgres: truncate catalog")
	}

	facilityRows := make([][]any, len(cat.Facilities))
	for i, f := range cat.Facilities {
		facilityRows[i] = facilityValues(i, f)
	}
	if _, err := db.CopyFrom(ctx, tx, "facilities", facilityColumns, facilityRows); err != nil {
		return eris.Wrap(err, "postgres: copy facilities")
	}

	contactRows := make([][]any, len(cat.Contacts))
	for i, c := range cat.Contacts {
		contactRows[i] = contactValues(i, c)
	}
	if _, err := db.CopyFrom(ctx, tx, "contacts", contactColumns, contactRows); err != nil {
		return eris.Wrap(err, "postgres: copy contacts")
	}

	residentRows := make([][]any, len(cat.Residents))
	for i, r := range cat.Residents {
		residentRows[i] = residentValues(i, r)
	}
	if _, err := db.CopyFrom(ctx, tx, "residents", residentColumns, residentRows); err != nil {
		return eris.Wrap(err, "postgres: copy residents")
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO catalog_meta (id, version, loaded_at) VALUES (1, $1, $2)`,
		cat.Version.String(), cat.LoadedAt.UTC(),
	); err != nil {
		return eris.Wrap(err, "postgres: insert catalog meta")
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit replace")
}

func (s *PostgresStore) LoadCatalog(ctx context.Context) (*dataset.Catalog, error) {
	var (
		version  string
		loadedAt time.Time
	)
	err := s.pool.QueryRow(ctx, `SELECT version::text, loaded_at FROM catalog_meta WHERE id = 1`).Scan(&version, &loadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoCatalog
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load catalog meta")
	}

	cat := &dataset.Catalog{LoadedAt: loadedAt}
	if cat.Version, err = uuid.Parse(version); err != nil {
		return nil, eris.Wrap(err, "postgres: parse catalog version")
	}

	if cat.Facilities, err = pgQueryAll(ctx, s.pool, "facilities", facilityColumns, scanFacility); err != nil {
		return nil, err
	}
	if cat.Contacts, err = pgQueryAll(ctx, s.pool, "contacts", contactColumns, scanContact); err != nil {
		return nil, err
	}
	if cat.Residents, err = pgQueryAll(ctx, s.pool, "residents", residentColumns, scanResident); err != nil {
		return nil, err
	}
	return cat, nil
}

func pgQueryAll[T any](ctx context.Context, pool db.Pool, table string, columns []string, scan func(scannable) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY position", selectList(columns), table))
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query %s", table)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, eris.Wrapf(rows.Err(), "postgres: iterate %s", table)
}

var _ Store = (*PostgresStore)(nil)
