package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
)

func arrival(day string, state, country string, male, female float64) entity.Arrival {
	date, err := time.Parse("02/01/2006", day)
	if err != nil {
		panic(err)
	}
	return entity.NewArrival(date, state, country, male+female, male, female)
}

func fixture() []entity.Arrival {
	return []entity.Arrival{
		arrival("01/01/2019", "Selangor", "China", 10, 5),
		arrival("01/02/2019", "Johor", "Singapore", 40, 30),
		arrival("01/01/2020", "Selangor", "China", 20, 10),
		arrival("01/03/2020", "Penang", "India", 7, 3),
		arrival("01/02/2021", "Johor", "Indonesia", 15, 15),
		arrival("01/03/2021", "Selangor", "Thailand", 4, 4),
		arrival("01/01/2021", "Penang", "Japan", 1, 1),
		arrival("01/02/2021", "Sabah", "Philippines", 9, 3),
	}
}

func allSelection(records []entity.Arrival) entity.Selection {
	return DefaultSelection(records)
}

func TestFilter(t *testing.T) {
	records := fixture()

	t.Run("should keep rows matching every dimension", func(t *testing.T) {
		sel := entity.Selection{
			Years:  []int{2019, 2021},
			Months: []string{"January", "February"},
			States: []string{"Selangor", "Johor"},
			Gender: entity.GenderMale,
		}

		got := Filter(records, sel)

		expected := 0
		for _, r := range records {
			if (r.Year == 2019 || r.Year == 2021) &&
				(r.Month == "January" || r.Month == "February") &&
				(r.State == "Selangor" || r.State == "Johor") {
				expected++
			}
		}
		assert.Len(t, got, expected)
		assert.Equal(t, 3, expected)
		for _, r := range got {
			assert.Contains(t, sel.Years, r.Year)
			assert.Contains(t, sel.Months, r.Month)
			assert.Contains(t, sel.States, r.State)
		}
	})

	t.Run("should return nothing when a dimension is empty", func(t *testing.T) {
		sel := allSelection(records)
		sel.States = nil

		got := Filter(records, sel)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("should match states exactly", func(t *testing.T) {
		sel := allSelection(records)
		sel.States = []string{"selangor"}

		assert.Empty(t, Filter(records, sel))
	})

	t.Run("should not modify the input", func(t *testing.T) {
		before := append([]entity.Arrival(nil), records...)
		sel := allSelection(records)
		sel.Years = []int{2020}

		_ = Filter(records, sel)

		assert.Equal(t, before, records)
	})
}

func TestOptions(t *testing.T) {
	records := fixture()

	opts := Options(records)

	assert.Equal(t, []int{2019, 2020, 2021}, opts.Years)
	assert.Equal(t, []string{"January", "February", "March"}, opts.Months)
	assert.Equal(t, []string{"Selangor", "Johor", "Penang", "Sabah"}, opts.States)
	assert.Equal(t, []entity.Gender{entity.GenderMale, entity.GenderFemale}, opts.Genders)
	assert.Equal(t, entity.GenderMale, opts.Default.Gender)
	assert.Equal(t, opts.Years, opts.Default.Years)
	assert.Len(t, Filter(records, opts.Default), len(records))
}

func TestBuildDashboard_Example(t *testing.T) {
	records := []entity.Arrival{
		arrival("15/06/2019", "Selangor", "China", 10, 5),
		arrival("15/06/2020", "Selangor", "China", 20, 10),
	}
	sel := entity.Selection{
		Years:  []int{2019, 2020},
		Months: []string{"June"},
		States: []string{"Selangor"},
		Gender: entity.GenderMale,
	}

	d := BuildDashboard(records, sel)

	assert.Equal(t, 2, d.FilteredRows)
	assert.Equal(t, []entity.YearValue{{Year: 2019, Value: 10}, {Year: 2020, Value: 20}}, d.GenderByYear)

	require.Len(t, d.GenderChangeByYear, 2)
	assert.Nil(t, d.GenderChangeByYear[0].Change)
	require.NotNil(t, d.GenderChangeByYear[1].Change)
	assert.InDelta(t, 100.0, *d.GenderChangeByYear[1].Change, 1e-9)

	assert.Equal(t, []entity.YearValue{{Year: 2019, Value: 15}, {Year: 2020, Value: 30}}, d.TotalByYear)
}

func TestGenderByYear_SumMatchesFilteredColumn(t *testing.T) {
	records := fixture()
	sel := allSelection(records)
	sel.Months = []string{"January", "March"}

	for _, g := range entity.Genders {
		filtered := Filter(records, sel)
		var want float64
		for _, r := range filtered {
			want += r.GenderCount(g)
		}

		var got float64
		for _, yv := range GenderByYear(filtered, g) {
			got += yv.Value
		}
		assert.InDelta(t, want, got, 1e-9, "gender %s", g)
	}
}

func TestGenderByYear_OneRowPerYearAscending(t *testing.T) {
	got := GenderByYear(fixture(), entity.GenderFemale)

	require.Len(t, got, 3)
	assert.Equal(t, 2019, got[0].Year)
	assert.Equal(t, 2020, got[1].Year)
	assert.Equal(t, 2021, got[2].Year)
	assert.Equal(t, 35.0, got[0].Value)
}

func TestCombinedByYear_MatchesTotalWhenSplitIsConsistent(t *testing.T) {
	records := fixture()

	combined := CombinedByYear(records)
	totals := TotalByYear(records)

	require.Len(t, combined, len(totals))
	for i := range totals {
		assert.Equal(t, totals[i].Year, combined[i].Year)
		assert.InDelta(t, totals[i].Value, combined[i].Total, 1e-9)
		assert.InDelta(t, combined[i].Male+combined[i].Female, combined[i].Total, 1e-9)
	}
}

func TestCombinedByYear_ShowsInconsistentSplit(t *testing.T) {
	date := time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC)
	records := []entity.Arrival{entity.NewArrival(date, "Kedah", "Brunei", 100, 30, 20)}

	assert.Equal(t, 50.0, CombinedByYear(records)[0].Total)
	assert.Equal(t, 100.0, TotalByYear(records)[0].Value)
}

func TestPercentChange(t *testing.T) {
	t.Run("should leave exactly the first year undefined", func(t *testing.T) {
		series := []entity.YearValue{{Year: 2018, Value: 50}, {Year: 2019, Value: 75}, {Year: 2020, Value: 30}, {Year: 2021, Value: 60}}

		got := PercentChange(series)

		require.Len(t, got, 4)
		defined := 0
		for _, c := range got {
			if c.Change != nil {
				defined++
			}
		}
		assert.Equal(t, len(series)-1, defined)
		assert.Nil(t, got[0].Change)
		assert.InDelta(t, 50.0, *got[1].Change, 1e-9)
		assert.InDelta(t, -60.0, *got[2].Change, 1e-9)
		assert.InDelta(t, 100.0, *got[3].Change, 1e-9)
	})

	t.Run("should treat a zero previous value as undefined", func(t *testing.T) {
		got := PercentChange([]entity.YearValue{{Year: 2019, Value: 0}, {Year: 2020, Value: 10}, {Year: 2021, Value: 0}})

		assert.Nil(t, got[1].Change)
		require.NotNil(t, got[2].Change)
		assert.InDelta(t, -100.0, *got[2].Change, 1e-9)
	})

	t.Run("should handle empty input", func(t *testing.T) {
		assert.Empty(t, PercentChange(nil))
	})
}

func TestTopCountries(t *testing.T) {
	records := fixture()

	got := TopCountries(records, TopCountriesLimit)

	require.LessOrEqual(t, len(got), TopCountriesLimit)
	all := sumByLabel(records, func(r entity.Arrival) string { return r.Country })
	kept := map[string]bool{}
	for _, g := range got {
		kept[g.Label] = true
	}
	minKept := got[len(got)-1].Value
	for _, g := range all {
		if !kept[g.Label] {
			assert.LessOrEqual(t, g.Value, minKept, "excluded %s", g.Label)
		}
	}
	assert.Equal(t, "Singapore", got[0].Label)
	assert.Equal(t, 70.0, got[0].Value)
	assert.Equal(t, "China", got[1].Label)
	assert.Equal(t, 45.0, got[1].Value)
}

func TestTopCountries_TiesKeepAlphabeticalOrder(t *testing.T) {
	records := []entity.Arrival{
		arrival("01/01/2020", "Johor", "Vietnam", 5, 5),
		arrival("01/01/2020", "Johor", "Australia", 5, 5),
		arrival("01/01/2020", "Johor", "Korea", 5, 5),
	}

	got := TopCountries(records, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "Australia", got[0].Label)
	assert.Equal(t, "Korea", got[1].Label)
}

func TestStateViews(t *testing.T) {
	records := fixture()

	share := StateShare(records)
	totals := StateTotals(records)

	assert.Equal(t, share, totals)
	assert.Equal(t, []entity.LabelValue{
		{Label: "Johor", Value: 100},
		{Label: "Penang", Value: 12},
		{Label: "Sabah", Value: 12},
		{Label: "Selangor", Value: 53},
	}, totals)

	shares := Shares(share)
	var sum float64
	for _, s := range shares {
		sum += s
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestBuildDashboard_EmptySelection(t *testing.T) {
	records := fixture()
	sel := allSelection(records)
	sel.Years = []int{}

	d := BuildDashboard(records, sel)

	assert.Zero(t, d.FilteredRows)
	assert.Empty(t, d.GenderByYear)
	assert.Empty(t, d.GenderChangeByYear)
	assert.Empty(t, d.TotalByYear)
	assert.Empty(t, d.CombinedByYear)
	assert.Empty(t, d.StateShare)
	assert.Empty(t, d.TopCountries)
	assert.Empty(t, d.StateTotals)
	assert.Empty(t, Shares(d.StateShare))
}

func TestGroupSum(t *testing.T) {
	t.Run("should sum per key", func(t *testing.T) {
		got := groupSum([]string{"b", "a", "b"}, []float64{1, 2, 3})
		assert.Equal(t, map[string]float64{"a": 2, "b": 4}, got)
	})

	t.Run("should keep labels gota treats as missing", func(t *testing.T) {
		got := groupSum([]string{"NA", "NaN", "<nil>", "", "NA"}, []float64{1, 2, 3, 4, 5})
		assert.Equal(t, map[string]float64{"NA": 6, "NaN": 2, "<nil>": 3, "": 4}, got)
	})

	t.Run("should return nothing for no keys", func(t *testing.T) {
		assert.Empty(t, groupSum(nil, nil))
	})
}

func TestStateTotals_KeepsNAState(t *testing.T) {
	records := []entity.Arrival{
		arrival("01/01/2019", "NA", "NA", 10, 5),
		arrival("01/02/2019", "Johor", "China", 3, 2),
		arrival("01/03/2019", "NA", "China", 1, 1),
	}

	got := StateTotals(records)

	require.Len(t, got, 2)
	assert.Equal(t, entity.LabelValue{Label: "Johor", Value: 5}, got[0])
	assert.Equal(t, entity.LabelValue{Label: "NA", Value: 17}, got[1])
}
