package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scout-cli/internal/dataset"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS facilities`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceCatalog(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	cat := testCatalog()

	mock.ExpectBegin()
	mock.ExpectExec(`TRUNCATE facilities, contacts, residents, catalog_meta`).
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"facilities"}, facilityColumns).WillReturnResult(2)
	mock.ExpectCopyFrom(pgx.Identifier{"contacts"}, contactColumns).WillReturnResult(1)
	mock.ExpectCopyFrom(pgx.Identifier{"residents"}, residentColumns).WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO catalog_meta`).
		WithArgs(cat.Version.String(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, s.ReplaceCatalog(context.Background(), cat))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceCatalog_SkipsEmptyTables(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	cat := dataset.NewCatalog(nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`TRUNCATE`).WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectExec(`INSERT INTO catalog_meta`).
		WithArgs(cat.Version.String(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, s.ReplaceCatalog(context.Background(), cat))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceCatalog_CopyErrorRollsBack(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`TRUNCATE`).WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"facilities"}, facilityColumns).WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	err := s.ReplaceCatalog(context.Background(), testCatalog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy facilities")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadCatalog_NotImported(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT version::text, loaded_at FROM catalog_meta`).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, ErrNoCatalog)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadCatalog(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	version := uuid.New()
	loadedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT version::text, loaded_at FROM catalog_meta`).
		WillReturnRows(pgxmock.NewRows([]string{"version", "loaded_at"}).AddRow(version.String(), loadedAt))

	facilityRows := pgxmock.NewRows(facilityColumns[:len(facilityColumns)-1]).
		AddRow(2, "502", "Maple Grove", "1200 Maple Avenue", "Springfield", "IL", "62701",
			"", 4.5, "", "", "", "", "", "Assisted Living", "", "",
			"Studio", "$3,100", "", "", "", "", "").
		AddRow(1, "", "Oak Terrace", "", "", "IL", "61602",
			"", nil, "", "", "", "", "", "", "", "",
			"", "", "", "", "", "", "")
	mock.ExpectQuery(`SELECT id, apfm_id, .* FROM facilities ORDER BY position`).WillReturnRows(facilityRows)

	mock.ExpectQuery(`FROM contacts ORDER BY position`).
		WillReturnRows(pgxmock.NewRows(contactColumns[:len(contactColumns)-1]).
			AddRow("Ann", "Lee", "ann@x.com", "Atria", "Executive Director", "", "", "", ""))
	mock.ExpectQuery(`FROM residents ORDER BY position`).
		WillReturnRows(pgxmock.NewRows(residentColumns[:len(residentColumns)-1]))

	cat, err := s.LoadCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, version, cat.Version)
	assert.Equal(t, loadedAt, cat.LoadedAt)
	require.Len(t, cat.Facilities, 2)
	assert.Equal(t, "62701", cat.Facilities[0].ZipCode.String())
	require.NotNil(t, cat.Facilities[0].AverageReviewScore)
	assert.InDelta(t, 4.5, *cat.Facilities[0].AverageReviewScore, 0.001)
	assert.Nil(t, cat.Facilities[1].AverageReviewScore)
	require.Len(t, cat.Contacts, 1)
	assert.Empty(t, cat.Residents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadCatalog_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM catalog_meta`).
		WillReturnRows(pgxmock.NewRows([]string{"version", "loaded_at"}).AddRow(uuid.NewString(), time.Now()))
	mock.ExpectQuery(`FROM facilities`).WillReturnError(fmt.Errorf("connection reset"))

	_, err := s.LoadCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query facilities")
	assert.NoError(t, mock.ExpectationsWereMet())
}
