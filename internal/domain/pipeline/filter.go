// Package pipeline filters the arrivals table and computes the dashboard views.
//
// Every function takes the records by value-slice and returns new slices; the
// input table is never modified.
package pipeline

import (
	"sort"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
)

// Filter returns the rows whose year, month and state each belong to the
// selection. An empty set for any dimension yields no rows.
func Filter(records []entity.Arrival, sel entity.Selection) []entity.Arrival {
	if len(sel.Years) == 0 || len(sel.Months) == 0 || len(sel.States) == 0 {
		return []entity.Arrival{}
	}

	years := make(map[int]struct{}, len(sel.Years))
	for _, y := range sel.Years {
		years[y] = struct{}{}
	}
	months := toSet(sel.Months)
	states := toSet(sel.States)

	out := make([]entity.Arrival, 0, len(records))
	for _, r := range records {
		if _, ok := years[r.Year]; !ok {
			continue
		}
		if _, ok := months[r.Month]; !ok {
			continue
		}
		if _, ok := states[r.State]; !ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Options lists the values offered by the filter controls: years ascending,
// months and states in order of first appearance.
func Options(records []entity.Arrival) entity.FilterOptions {
	seenYear := make(map[int]bool)
	seenMonth := make(map[string]bool)
	seenState := make(map[string]bool)

	opts := entity.FilterOptions{
		Years:   []int{},
		Months:  []string{},
		States:  []string{},
		Genders: append([]entity.Gender(nil), entity.Genders...),
	}
	for _, r := range records {
		if !seenYear[r.Year] {
			seenYear[r.Year] = true
			opts.Years = append(opts.Years, r.Year)
		}
		if !seenMonth[r.Month] {
			seenMonth[r.Month] = true
			opts.Months = append(opts.Months, r.Month)
		}
		if !seenState[r.State] {
			seenState[r.State] = true
			opts.States = append(opts.States, r.State)
		}
	}
	sort.Ints(opts.Years)

	opts.Default = entity.Selection{
		Years:  append([]int(nil), opts.Years...),
		Months: append([]string(nil), opts.Months...),
		States: append([]string(nil), opts.States...),
		Gender: entity.GenderMale,
	}
	return opts
}

// DefaultSelection selects every year, month and state with gender Male.
func DefaultSelection(records []entity.Arrival) entity.Selection {
	return Options(records).Default
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
