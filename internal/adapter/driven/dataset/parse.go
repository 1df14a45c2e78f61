package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

// dayFirstLayouts are tried in order. Slash, dash and dot forms put the day
// first; ISO and RFC 3339 are unambiguous and come from SQL sources.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// ParseDate parses a date under the fixed day-first convention.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", types.ErrInvalidDate, value)
}

// parseCount parses a numeric cell. Empty and NaN cells count as zero, the way
// a column sum skips missing values.
func parseCount(value string) (float64, error) {
	v := strings.TrimSpace(value)
	if v == "" || v == "NaN" || v == "NA" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidNumber, value)
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	return f, nil
}

// rawRow is one record before typing, in column order date, state, country,
// arrivals, male, female.
type rawRow struct {
	Date     string
	State    string
	Country  string
	Arrivals string
	Male     string
	Female   string
}

// toArrival types a raw row. line is the 1-based data row number used in errors.
func toArrival(row rawRow, line int, cols types.Columns) (entity.Arrival, error) {
	date, err := ParseDate(row.Date)
	if err != nil {
		return entity.Arrival{}, fmt.Errorf("row %d, column %q: %w", line, cols.Date, err)
	}

	arrivals, err := parseCount(row.Arrivals)
	if err != nil {
		return entity.Arrival{}, fmt.Errorf("row %d, column %q: %w", line, cols.Arrivals, err)
	}
	male, err := parseCount(row.Male)
	if err != nil {
		return entity.Arrival{}, fmt.Errorf("row %d, column %q: %w", line, cols.Male, err)
	}
	female, err := parseCount(row.Female)
	if err != nil {
		return entity.Arrival{}, fmt.Errorf("row %d, column %q: %w", line, cols.Female, err)
	}

	return entity.NewArrival(date, row.State, row.Country, arrivals, male, female), nil
}
