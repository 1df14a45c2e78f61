package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// CSVRepository reads the arrivals table from a local delimited file.
type CSVRepository struct {
	path    string
	columns types.Columns
}

// NewCSVRepository creates a repository for the file at path.
func NewCSVRepository(path string, columns types.Columns) repository.DatasetRepository {
	return &CSVRepository{path: path, columns: columns}
}

// Source returns the file path.
func (r *CSVRepository) Source() string {
	return r.path
}

// LoadArrivals opens and parses the file.
func (r *CSVRepository) LoadArrivals(ctx context.Context) ([]entity.Arrival, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrDatasetNotFound, r.path)
		}
		return nil, fmt.Errorf("error opening dataset: %w", err)
	}
	defer file.Close()

	return ReadCSV(ctx, file, r.columns)
}

// ReadCSV parses a delimited table with a header row. Every column is read as
// text and typed here, so a malformed cell is reported with its row.
func ReadCSV(ctx context.Context, reader io.Reader, cols types.Columns) ([]entity.Arrival, error) {
	df := dataframe.ReadCSV(reader,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// State e Country são texto livre; "NA" não é valor ausente
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", df.Err)
	}

	if err := requireColumns(df.Names(), cols); err != nil {
		return nil, err
	}

	dates := df.Col(cols.Date).Records()
	states := df.Col(cols.State).Records()
	countries := df.Col(cols.Country).Records()
	totals := df.Col(cols.Arrivals).Records()
	males := df.Col(cols.Male).Records()
	females := df.Col(cols.Female).Records()

	records := make([]entity.Arrival, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		a, err := toArrival(rawRow{
			Date:     dates[i],
			State:    states[i],
			Country:  countries[i],
			Arrivals: totals[i],
			Male:     males[i],
			Female:   females[i],
		}, i+1, cols)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, nil
}

func requireColumns(names []string, cols types.Columns) error {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, want := range []string{cols.Date, cols.State, cols.Country, cols.Arrivals, cols.Male, cols.Female} {
		if !present[want] {
			return fmt.Errorf("%w: %q", types.ErrMissingColumn, want)
		}
	}
	return nil
}
