package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// sqlArrivalRow is the shape the configured query must return.
type sqlArrivalRow struct {
	Date     string          `db:"date"`
	State    string          `db:"migration_state"`
	Country  string          `db:"country"`
	Arrivals sql.NullFloat64 `db:"arrivals"`
	Male     sql.NullFloat64 `db:"arrivals_male"`
	Female   sql.NullFloat64 `db:"arrivals_female"`
}

// SQLRepository selects the arrivals table from MySQL or PostgreSQL.
type SQLRepository struct {
	driver string
	dsn    string
	query  string
}

// NewSQLRepository creates a repository from a mysql:// or postgres:// URL.
func NewSQLRepository(location, query string) (repository.DatasetRepository, error) {
	driver, dsn, err := splitSQLLocation(location)
	if err != nil {
		return nil, err
	}
	return &SQLRepository{driver: driver, dsn: dsn, query: query}, nil
}

// Source names the driver without credentials.
func (r *SQLRepository) Source() string {
	return r.driver + " query"
}

// LoadArrivals runs the query and types every row.
func (r *SQLRepository) LoadArrivals(ctx context.Context) ([]entity.Arrival, error) {
	db, err := sqlx.ConnectContext(ctx, r.driver, r.dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", r.driver, err)
	}
	defer db.Close()

	var rows []sqlArrivalRow
	if err := db.SelectContext(ctx, &rows, r.query); err != nil {
		return nil, fmt.Errorf("error querying arrivals: %w", err)
	}

	return sqlRowsToArrivals(rows)
}

var sqlColumns = types.Columns{
	Date:     "date",
	State:    "migration_state",
	Country:  "country",
	Arrivals: "arrivals",
	Male:     "arrivals_male",
	Female:   "arrivals_female",
}

func sqlRowsToArrivals(rows []sqlArrivalRow) ([]entity.Arrival, error) {
	records := make([]entity.Arrival, 0, len(rows))
	for i, row := range rows {
		a, err := toArrival(rawRow{
			Date:     row.Date,
			State:    row.State,
			Country:  row.Country,
			Arrivals: nullFloatText(row.Arrivals),
			Male:     nullFloatText(row.Male),
			Female:   nullFloatText(row.Female),
		}, i+1, sqlColumns)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, nil
}

func nullFloatText(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

// splitSQLLocation maps the URL scheme to a registered driver. MySQL DSNs are
// passed without the scheme; lib/pq accepts the URL as is.
func splitSQLLocation(location string) (string, string, error) {
	switch {
	case strings.HasPrefix(location, "mysql://"):
		return "mysql", strings.TrimPrefix(location, "mysql://"), nil
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return "postgres", location, nil
	}
	return "", "", fmt.Errorf("%w: %q", types.ErrUnsupportedSource, location)
}
