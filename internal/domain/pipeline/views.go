package pipeline

import (
	"sort"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
)

// TopCountriesLimit is how many countries the top-countries view keeps.
const TopCountriesLimit = 5

// BuildDashboard filters the records and computes all seven views from the
// filtered rows. Nothing is shared between views.
func BuildDashboard(records []entity.Arrival, sel entity.Selection) entity.Dashboard {
	filtered := Filter(records, sel)
	gender := sel.Gender
	if gender == "" {
		gender = entity.GenderMale
	}

	return entity.Dashboard{
		Selection:          sel,
		FilteredRows:       len(filtered),
		GenderByYear:       GenderByYear(filtered, gender),
		GenderChangeByYear: GenderChangeByYear(filtered, gender),
		TotalByYear:        TotalByYear(filtered),
		CombinedByYear:     CombinedByYear(filtered),
		StateShare:         StateShare(filtered),
		TopCountries:       TopCountries(filtered, TopCountriesLimit),
		StateTotals:        StateTotals(filtered),
	}
}

// GenderByYear sums the gender-specific arrivals per year, ascending by year.
func GenderByYear(records []entity.Arrival, g entity.Gender) []entity.YearValue {
	return sumByYear(records, func(r entity.Arrival) float64 { return r.GenderCount(g) })
}

// GenderChangeByYear is the year-over-year percentage change of GenderByYear.
// The first year has no change, and neither does a year following a zero.
func GenderChangeByYear(records []entity.Arrival, g entity.Gender) []entity.YearChange {
	return PercentChange(GenderByYear(records, g))
}

// PercentChange computes (current - previous) / previous * 100 over an
// ordered per-year series.
func PercentChange(series []entity.YearValue) []entity.YearChange {
	out := make([]entity.YearChange, 0, len(series))
	for i, yv := range series {
		yc := entity.YearChange{Year: yv.Year, Value: yv.Value}
		if i > 0 {
			prev := series[i-1].Value
			if prev != 0 {
				change := (yv.Value - prev) / prev * 100
				yc.Change = &change
			}
		}
		out = append(out, yc)
	}
	return out
}

// TotalByYear sums total arrivals per year.
func TotalByYear(records []entity.Arrival) []entity.YearValue {
	return sumByYear(records, func(r entity.Arrival) float64 { return r.Arrivals })
}

// CombinedByYear sums the male and female columns per year and adds them.
func CombinedByYear(records []entity.Arrival) []entity.YearGenderTotal {
	male := GenderByYear(records, entity.GenderMale)
	female := GenderByYear(records, entity.GenderFemale)

	out := make([]entity.YearGenderTotal, len(male))
	for i := range male {
		out[i] = entity.YearGenderTotal{
			Year:   male[i].Year,
			Male:   male[i].Value,
			Female: female[i].Value,
			Total:  male[i].Value + female[i].Value,
		}
	}
	return out
}

// StateShare sums arrivals per state for the pie view. Values are raw sums;
// the chart normalizes them.
func StateShare(records []entity.Arrival) []entity.LabelValue {
	return sumByLabel(records, func(r entity.Arrival) string { return r.State })
}

// StateTotals sums arrivals per state, full list.
func StateTotals(records []entity.Arrival) []entity.LabelValue {
	return sumByLabel(records, func(r entity.Arrival) string { return r.State })
}

// TopCountries sums arrivals per country and keeps the n largest. Countries
// with equal sums keep their alphabetical order.
func TopCountries(records []entity.Arrival, n int) []entity.LabelValue {
	groups := sumByLabel(records, func(r entity.Arrival) string { return r.Country })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	if n >= 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// Shares converts label values into percentages of their total. A zero total
// yields zero shares.
func Shares(values []entity.LabelValue) []float64 {
	var total float64
	for _, v := range values {
		total += v.Value
	}
	out := make([]float64, len(values))
	if total == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v.Value / total * 100
	}
	return out
}
