package chart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

func ptr(f float64) *float64 { return &f }

func sampleDashboard() entity.Dashboard {
	return entity.Dashboard{
		Selection:          entity.Selection{Gender: entity.GenderFemale},
		FilteredRows:       4,
		GenderByYear:       []entity.YearValue{{Year: 2020, Value: 40}, {Year: 2021, Value: 60}},
		GenderChangeByYear: []entity.YearChange{{Year: 2020, Value: 40}, {Year: 2021, Value: 60, Change: ptr(50)}},
		TotalByYear:        []entity.YearValue{{Year: 2020, Value: 100}, {Year: 2021, Value: 130}},
		CombinedByYear: []entity.YearGenderTotal{
			{Year: 2020, Male: 60, Female: 40, Total: 100},
			{Year: 2021, Male: 70, Female: 60, Total: 130},
		},
		StateShare:   []entity.LabelValue{{Label: "Johor", Value: 150}, {Label: "Sabah", Value: 0}, {Label: "Selangor", Value: 80}},
		TopCountries: []entity.LabelValue{{Label: "SGP", Value: 120}, {Label: "IDN", Value: 110}},
		StateTotals:  []entity.LabelValue{{Label: "Johor", Value: 150}, {Label: "Selangor", Value: 80}},
	}
}

func TestBuildSpec(t *testing.T) {
	d := sampleDashboard()

	t.Run("should describe every view", func(t *testing.T) {
		for _, view := range entity.ViewOrder {
			spec, err := BuildSpec(d, view)
			require.NoError(t, err, view)
			assert.Equal(t, entity.ViewTitles[view], spec.Title)
			if spec.Kind == KindLine {
				assert.Len(t, spec.Colors, 1, view)
			} else {
				assert.Len(t, spec.Colors, len(spec.Points), view)
			}
			assert.True(t, spec.HasData(), view)
		}
	})

	t.Run("should use the selected gender as axis label", func(t *testing.T) {
		spec, err := BuildSpec(d, entity.ViewGenderByYear)
		require.NoError(t, err)
		assert.Equal(t, KindBar, spec.Kind)
		assert.Equal(t, "Arrivals: Gender Female", spec.YName)
	})

	t.Run("should leave the first year of the change line undefined", func(t *testing.T) {
		spec, err := BuildSpec(d, entity.ViewGenderChangeByYear)
		require.NoError(t, err)
		require.Len(t, spec.Points, 2)
		assert.False(t, spec.Points[0].Defined)
		assert.True(t, spec.Points[1].Defined)
		assert.InDelta(t, 50.0, spec.Points[1].Value, 1e-9)
	})

	t.Run("should label pie slices with their share", func(t *testing.T) {
		spec, err := BuildSpec(d, entity.ViewStateShare)
		require.NoError(t, err)
		assert.Equal(t, KindPie, spec.Kind)
		assert.Equal(t, "Johor 65.2%", spec.Points[0].Label)
		assert.Equal(t, "Sabah 0.0%", spec.Points[1].Label)
	})

	t.Run("should colour state totals from low to high", func(t *testing.T) {
		spec, err := BuildSpec(d, entity.ViewStateTotals)
		require.NoError(t, err)
		assert.Equal(t, scaleHigh, spec.Colors[0])
		assert.NotEqual(t, scaleHigh, spec.Colors[1])
	})

	t.Run("should reject unknown views", func(t *testing.T) {
		_, err := BuildSpec(d, entity.ViewID("heatmap"))
		assert.Error(t, err)
	})
}

func TestHasData(t *testing.T) {
	assert.False(t, Spec{Kind: KindBar}.HasData())
	assert.False(t, Spec{Kind: KindBar, Points: []Point{{Value: 0, Defined: true}}}.HasData())
	assert.False(t, Spec{Kind: KindLine, Points: []Point{{Label: "2020"}}}.HasData())
	assert.True(t, Spec{Kind: KindLine, Points: []Point{{Value: 0, Defined: true}}}.HasData())
}

func TestRenderView(t *testing.T) {
	repo := NewChartRepository(0, 0)
	d := sampleDashboard()

	t.Run("should render every view as svg", func(t *testing.T) {
		for _, view := range entity.ViewOrder {
			out, err := repo.RenderView(d, view, repository.ChartSVG)
			require.NoError(t, err, view)
			assert.Contains(t, string(out), "<svg", view)
		}
	})

	t.Run("should render png", func(t *testing.T) {
		out, err := repo.RenderView(d, entity.ViewTopCountries, repository.ChartPNG)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG")))
	})

	t.Run("should report no data for an empty dashboard", func(t *testing.T) {
		for _, view := range entity.ViewOrder {
			_, err := repo.RenderView(entity.Dashboard{}, view, repository.ChartSVG)
			assert.True(t, errors.Is(err, types.ErrNoData), view)
		}
	})

	t.Run("should report no data when only the first year is selected", func(t *testing.T) {
		single := entity.Dashboard{GenderChangeByYear: []entity.YearChange{{Year: 2020, Value: 10}}}
		_, err := repo.RenderView(single, entity.ViewGenderChangeByYear, repository.ChartSVG)
		assert.ErrorIs(t, err, types.ErrNoData)
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		_, err := repo.RenderView(d, entity.ViewTotalByYear, repository.ChartFormat("gif"))
		assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
	})
}

func requireWellFormedXML(t *testing.T, out []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestRenderView_EscapesLabels(t *testing.T) {
	repo := NewChartRepository(0, 0)
	labels := []entity.LabelValue{
		{Label: "Trinidad & Tobago", Value: 90},
		{Label: "<script>alert(1)</script>", Value: 60},
	}
	d := entity.Dashboard{TopCountries: labels, StateTotals: labels, StateShare: labels}

	t.Run("should produce well formed svg", func(t *testing.T) {
		for _, view := range []entity.ViewID{entity.ViewTopCountries, entity.ViewStateTotals, entity.ViewStateShare} {
			out, err := repo.RenderView(d, view, repository.ChartSVG)
			require.NoError(t, err, view)
			requireWellFormedXML(t, out)
			assert.NotContains(t, string(out), "<script>", view)
		}
	})

	t.Run("should keep png labels unescaped", func(t *testing.T) {
		out, err := repo.RenderView(d, entity.ViewTopCountries, repository.ChartPNG)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG")))
	})

	t.Run("should not touch the spec labels", func(t *testing.T) {
		_, err := repo.RenderView(d, entity.ViewTopCountries, repository.ChartSVG)
		require.NoError(t, err)
		assert.Equal(t, "Trinidad & Tobago", d.TopCountries[0].Label)
	})
}

func TestSVGTextEscaper(t *testing.T) {
	r, err := escapedSVG(200, 100)
	require.NoError(t, err)
	r.SetFontSize(10)
	r.Text("A & B <i>", 10, 10)

	var buf bytes.Buffer
	require.NoError(t, r.Save(&buf))
	assert.Contains(t, buf.String(), "A &amp; B &lt;i&gt;")
	requireWellFormedXML(t, buf.Bytes())
}

func TestPaddedRange(t *testing.T) {
	lo, hi := paddedRange([]float64{10})
	assert.Less(t, lo, 10.0)
	assert.Greater(t, hi, 10.0)

	lo, hi = paddedRange([]float64{-20, 30})
	assert.InDelta(t, -25.0, lo, 1e-9)
	assert.InDelta(t, 35.0, hi, 1e-9)
}
