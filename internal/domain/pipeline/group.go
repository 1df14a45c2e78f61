package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
)

// gota converts "NA", "NaN" and "<nil>" cells to NaN when it rebuilds groups,
// so every key carries a prefix that no free-form label can collide with.
const groupKeyPrefix = "k:"

const (
	groupKeyCol   = "key"
	groupValueCol = "value"
)

// groupSum sums values per key with a gota group-by. The result order is
// unspecified; callers sort it.
func groupSum(keys []string, values []float64) map[string]float64 {
	out := make(map[string]float64)
	if len(keys) == 0 {
		return out
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = groupKeyPrefix + k
	}

	df := dataframe.New(
		series.New(prefixed, series.String, groupKeyCol),
		series.New(values, series.Float, groupValueCol),
	)
	groups := df.GroupBy(groupKeyCol)
	if groups.Err != nil {
		panic(fmt.Sprintf("pipeline: group by: %v", groups.Err))
	}
	agg := groups.Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_SUM},
		[]string{groupValueCol},
	)
	if agg.Err != nil {
		panic(fmt.Sprintf("pipeline: aggregation: %v", agg.Err))
	}

	labels := agg.Col(groupKeyCol).Records()
	sums := agg.Col(groupValueCol + "_" + dataframe.Aggregation_SUM.String()).Float()
	for i, label := range labels {
		out[strings.TrimPrefix(label, groupKeyPrefix)] = sums[i]
	}
	return out
}

func sumByYear(records []entity.Arrival, measure func(entity.Arrival) float64) []entity.YearValue {
	keys := make([]string, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		keys[i] = strconv.Itoa(r.Year)
		values[i] = measure(r)
	}

	sums := groupSum(keys, values)
	out := make([]entity.YearValue, 0, len(sums))
	for k, v := range sums {
		year, err := strconv.Atoi(k)
		if err != nil {
			panic(fmt.Sprintf("pipeline: year key %q: %v", k, err))
		}
		out = append(out, entity.YearValue{Year: year, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// sumByLabel groups by key and returns the groups sorted by key, the order a
// group-by produces before any ranking.
func sumByLabel(records []entity.Arrival, key func(entity.Arrival) string) []entity.LabelValue {
	keys := make([]string, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		keys[i] = key(r)
		values[i] = r.Arrivals
	}

	sums := groupSum(keys, values)
	out := make([]entity.LabelValue, 0, len(sums))
	for label, v := range sums {
		out = append(out, entity.LabelValue{Label: label, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
