package chart

import (
	"bytes"
	"fmt"
	"html"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/repository"
	"github.com/diillson/arrivals-dashboard-go/internal/shared/types"
)

const (
	defaultWidth  = 1024
	defaultHeight = 420
	minBarSlot    = 56
)

// ChartRepositoryImpl renders dashboard views with go-chart.
type ChartRepositoryImpl struct {
	width  int
	height int
}

// NewChartRepository creates a renderer producing width x height images.
// Zero values fall back to 1024x420.
func NewChartRepository(width, height int) repository.ChartRepository {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &ChartRepositoryImpl{width: width, height: height}
}

// RenderView draws one view of the dashboard.
func (r *ChartRepositoryImpl) RenderView(d entity.Dashboard, view entity.ViewID, format repository.ChartFormat) ([]byte, error) {
	provider, err := rendererFor(format)
	if err != nil {
		return nil, err
	}

	spec, err := BuildSpec(d, view)
	if err != nil {
		return nil, err
	}
	if !spec.HasData() {
		return nil, fmt.Errorf("%s: %w", spec.Title, types.ErrNoData)
	}

	var buf bytes.Buffer
	switch spec.Kind {
	case KindBar:
		err = r.renderBar(spec, provider, &buf)
	case KindLine:
		err = r.renderLine(spec, provider, &buf)
	case KindPie:
		err = r.renderPie(spec, provider, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("error rendering %s: %w", view, err)
	}
	return buf.Bytes(), nil
}

func rendererFor(format repository.ChartFormat) (gochart.RendererProvider, error) {
	switch format {
	case repository.ChartSVG:
		return escapedSVG, nil
	case repository.ChartPNG:
		return gochart.PNG, nil
	}
	return nil, fmt.Errorf("%w: chart %q", types.ErrUnsupportedFormat, format)
}

// escapedSVG is the go-chart SVG provider with text bodies escaped. go-chart
// writes <text> contents verbatim, and labels come straight from the dataset.
func escapedSVG(width, height int) (gochart.Renderer, error) {
	r, err := gochart.SVG(width, height)
	if err != nil {
		return nil, err
	}
	return svgTextEscaper{Renderer: r}, nil
}

// svgTextEscaper escapes only when writing, so text is measured and wrapped
// unescaped and an entity is never split across lines.
type svgTextEscaper struct {
	gochart.Renderer
}

func (e svgTextEscaper) Text(body string, x, y int) {
	e.Renderer.Text(html.EscapeString(body), x, y)
}

func (r *ChartRepositoryImpl) renderBar(spec Spec, provider gochart.RendererProvider, buf *bytes.Buffer) error {
	var top float64
	bars := make([]gochart.Value, 0, len(spec.Points))
	for i, p := range spec.Points {
		if p.Value > top {
			top = p.Value
		}
		bars = append(bars, gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   spec.Colors[i],
				StrokeColor: spec.Colors[i],
				StrokeWidth: 1,
			},
		})
	}

	width := r.width
	if need := len(bars)*minBarSlot + 120; need > width {
		width = need
	}
	barWidth := (width - 120) / (len(bars) + 1) / 2
	if barWidth < 12 {
		barWidth = 12
	}

	bc := gochart.BarChart{
		Title:      spec.Title,
		Background: gochart.Style{Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		Width:      width,
		Height:     r.height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Bars:       bars,
		YAxis: gochart.YAxis{
			Name:           spec.YName,
			Range:          &gochart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: countFormatter,
		},
	}
	return bc.Render(provider, buf)
}

func (r *ChartRepositoryImpl) renderLine(spec Spec, provider gochart.RendererProvider, buf *bytes.Buffer) error {
	var xs, ys []float64
	ticks := make([]gochart.Tick, 0, len(spec.Points))
	for _, p := range spec.Points {
		ticks = append(ticks, gochart.Tick{Value: p.X, Label: p.Label})
		if !p.Defined {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Value)
	}

	xMin, xMax := spec.Points[0].X-0.5, spec.Points[len(spec.Points)-1].X+0.5
	yMin, yMax := paddedRange(ys)
	color := spec.Colors[0]

	c := gochart.Chart{
		Title:      spec.Title,
		Background: gochart.Style{Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		Width:      r.width,
		Height:     r.height,
		XAxis: gochart.XAxis{
			Name:  spec.XName,
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:           spec.YName,
			Range:          &gochart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: percentFormatter,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.YName,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					DotColor:    color,
					DotWidth:    5,
				},
			},
		},
	}
	return c.Render(provider, buf)
}

func (r *ChartRepositoryImpl) renderPie(spec Spec, provider gochart.RendererProvider, buf *bytes.Buffer) error {
	values := make([]gochart.Value, 0, len(spec.Points))
	for i, p := range spec.Points {
		if p.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{FillColor: spec.Colors[i], StrokeColor: gochart.ColorWhite, StrokeWidth: 1},
		})
	}

	pc := gochart.PieChart{
		Title:      spec.Title,
		Background: gochart.Style{Padding: gochart.Box{Top: 50, Left: 10, Right: 10, Bottom: 120}},
		Width:      r.width,
		Height:     r.height + 120,
		Values:     values,
	}
	return pc.Render(provider, buf)
}

// paddedRange returns a y range around values that is never empty.
func paddedRange(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}
	return lo - pad, hi + pad
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.1f%%", f)
	}
	return ""
}
