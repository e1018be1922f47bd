// Package dataset loads the facility, contact, and resident collections
// from JSON, CSV, or XLSX files into an immutable Catalog.
package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/scout-cli/internal/facility"
	"github.com/sells-group/scout-cli/internal/model"
)

// Format is a dataset file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("dataset: unsupported file type %q", path)
	}
}

// Sources names the files of one dataset. Contacts and Residents are optional.
type Sources struct {
	Facilities string
	Contacts   string
	Residents  string
}

// Catalog is a loaded dataset. It is read-only once built and may be shared
// by concurrent readers.
type Catalog struct {
	// Facilities are stored completeness-sorted.
	Facilities []model.Facility
	Contacts   []model.Contact
	Residents  []model.Resident
	Version    uuid.UUID
	LoadedAt   time.Time
}

// NewCatalog builds a Catalog with a fresh version id.
func NewCatalog(facilities []model.Facility, contacts []model.Contact, residents []model.Resident) *Catalog {
	return &Catalog{
		Facilities: facility.SortByCompleteness(facilities),
		Contacts:   contacts,
		Residents:  residents,
		Version:    uuid.New(),
		LoadedAt:   time.Now().UTC(),
	}
}

// Load reads all sources concurrently.
func Load(ctx context.Context, src Sources) (*Catalog, error) {
	if src.Facilities == "" {
		return nil, eris.New("dataset: facilities source is required")
	}

	var (
		facilities []model.Facility
		contacts   []model.Contact
		residents  []model.Resident
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		facilities, err = LoadFile(gctx, src.Facilities, FacilityFromRow)
		return eris.Wrap(err, "dataset: load facilities")
	})
	if src.Contacts != "" {
		g.Go(func() error {
			var err error
			contacts, err = LoadFile(gctx, src.Contacts, ContactFromRow)
			return eris.Wrap(err, "dataset: load contacts")
		})
	}
	if src.Residents != "" {
		g.Go(func() error {
			var err error
			residents, err = LoadFile(gctx, src.Residents, ResidentFromRow)
			return eris.Wrap(err, "dataset: load residents")
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat := NewCatalog(facilities, contacts, residents)
	zap.L().Info("dataset loaded",
		zap.String("version", cat.Version.String()),
		zap.Int("facilities", len(cat.Facilities)),
		zap.Int("contacts", len(cat.Contacts)),
		zap.Int("residents", len(cat.Residents)),
	)
	return cat, nil
}

// LoadFile decodes every record of path. JSON files decode directly into
// T; tabular files map each row through fromRow by header name.
func LoadFile[T any](ctx context.Context, path string, fromRow func(Row) T) ([]T, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return collect(DecodeJSONArray[T](ctx, f))
	case FormatCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		rows, errs := StreamCSV(ctx, f)
		return mapRows(rows, errs, fromRow)
	default:
		rows, errs := StreamXLSX(ctx, path, 0)
		return mapRows(rows, errs, fromRow)
	}
}

func collect[T any](items <-chan T, errs <-chan error) ([]T, error) {
	out := []T{}
	for item := range items {
		out = append(out, item)
	}
	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// mapRows treats the first row as the header and maps the rest.
func mapRows[T any](rows <-chan []string, errs <-chan error, fromRow func(Row) T) ([]T, error) {
	out := []T{}
	var header []string
	for cells := range rows {
		if header == nil {
			header = normalizeHeader(cells)
			continue
		}
		if blankRow(cells) {
			continue
		}
		out = append(out, fromRow(newRow(header, cells)))
	}
	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
