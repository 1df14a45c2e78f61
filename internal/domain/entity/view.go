package entity

// YearValue is one per-year aggregate.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// YearChange is the year-over-year percentage change of a per-year aggregate.
// Change is nil for the first year and whenever the previous value is zero.
type YearChange struct {
	Year   int      `json:"year"`
	Value  float64  `json:"value"`
	Change *float64 `json:"percentage_change"`
}

// YearGenderTotal carries both gender sums for a year and their sum.
type YearGenderTotal struct {
	Year   int     `json:"year"`
	Male   float64 `json:"male"`
	Female float64 `json:"female"`
	Total  float64 `json:"total"`
}

// LabelValue is a per-key aggregate (state or country).
type LabelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ViewID identifies one of the seven dashboard views.
type ViewID string

const (
	ViewGenderByYear       ViewID = "gender-by-year"
	ViewGenderChangeByYear ViewID = "gender-change-by-year"
	ViewTotalByYear        ViewID = "total-by-year"
	ViewCombinedByYear     ViewID = "combined-by-year"
	ViewStateShare         ViewID = "state-share"
	ViewTopCountries       ViewID = "top-countries"
	ViewStateTotals        ViewID = "state-totals"
)

// ViewOrder is the display order of the dashboard.
var ViewOrder = []ViewID{
	ViewGenderByYear,
	ViewGenderChangeByYear,
	ViewTotalByYear,
	ViewCombinedByYear,
	ViewStateShare,
	ViewTopCountries,
	ViewStateTotals,
}

// ViewTitles maps each view to its heading.
var ViewTitles = map[ViewID]string{
	ViewGenderByYear:       "Total Foreign Entries by Gender and Year",
	ViewGenderChangeByYear: "Percentage Change of Foreign Entries by Gender and Year",
	ViewTotalByYear:        "Total Foreign Nationals Entering Malaysia by Year",
	ViewCombinedByYear:     "Total Foreign Nationals Entering Malaysia (Male + Female) by Year",
	ViewStateShare:         "Percentage of Foreign Entries by State",
	ViewTopCountries:       "Top 5 Countries by Foreign Entries",
	ViewStateTotals:        "Total Foreign Entries to Each State",
}

// ParseViewID returns the view with the given id.
func ParseViewID(s string) (ViewID, bool) {
	for _, id := range ViewOrder {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Dashboard holds the seven views computed for one selection.
type Dashboard struct {
	Selection          Selection         `json:"selection"`
	FilteredRows       int               `json:"filtered_rows"`
	GenderByYear       []YearValue       `json:"gender_by_year"`
	GenderChangeByYear []YearChange      `json:"gender_change_by_year"`
	TotalByYear        []YearValue       `json:"total_by_year"`
	CombinedByYear     []YearGenderTotal `json:"combined_by_year"`
	StateShare         []LabelValue      `json:"state_share"`
	TopCountries       []LabelValue      `json:"top_countries"`
	StateTotals        []LabelValue      `json:"state_totals"`
}
