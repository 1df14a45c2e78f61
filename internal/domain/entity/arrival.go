package entity

import (
	"math"
	"time"
)

// Arrival is one observed entry event loaded from the dataset.
type Arrival struct {
	Date     time.Time `json:"date"`
	Year     int       `json:"year"`
	Month    string    `json:"month"`
	State    string    `json:"migration_state"`
	Country  string    `json:"country"`
	Arrivals float64   `json:"arrivals"`
	Male     float64   `json:"arrivals_male"`
	Female   float64   `json:"arrivals_female"`
}

// NewArrival derives Year and Month from the date.
func NewArrival(date time.Time, state, country string, arrivals, male, female float64) Arrival {
	return Arrival{
		Date:     date,
		Year:     date.Year(),
		Month:    date.Month().String(),
		State:    state,
		Country:  country,
		Arrivals: arrivals,
		Male:     male,
		Female:   female,
	}
}

// GenderSplitConsistent reports whether Male+Female equals Arrivals.
func (a Arrival) GenderSplitConsistent() bool {
	return math.Abs(a.Male+a.Female-a.Arrivals) < 1e-9
}

// GenderCount returns the arrivals attributed to g.
func (a Arrival) GenderCount(g Gender) float64 {
	if g == GenderFemale {
		return a.Female
	}
	return a.Male
}
