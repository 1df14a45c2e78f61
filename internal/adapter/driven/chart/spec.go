package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
	"github.com/diillson/arrivals-dashboard-go/internal/domain/pipeline"
)

// Kind is the chart type a view is drawn as.
type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
	KindPie  Kind = "pie"
)

// Point is one plotted value. X is the numeric position on continuous axes
// (the year on the line chart). Undefined points are not drawn.
type Point struct {
	Label   string
	X       float64
	Value   float64
	Defined bool
}

// Spec is the render-ready description of one view.
type Spec struct {
	View   entity.ViewID
	Title  string
	Kind   Kind
	XName  string
	YName  string
	Points []Point
	Colors []drawing.Color
}

var (
	colorBlue   = hexColor("#1f77b4")
	colorOrange = hexColor("#ff7f0e")
	colorGreen  = hexColor("#2ca02c")

	// qualitative palette for one-color-per-category views
	categoryPalette = []drawing.Color{
		hexColor("#636efa"), hexColor("#ef553b"), hexColor("#00cc96"), hexColor("#ab63fa"),
		hexColor("#ffa15a"), hexColor("#19d3f3"), hexColor("#ff6692"), hexColor("#b6e880"),
		hexColor("#ff97ff"), hexColor("#fecb52"),
	}

	// continuous scale for colour-by-value views, low to high
	scaleLow  = hexColor("#0d0887")
	scaleHigh = hexColor("#f0f921")
)

// BuildSpec maps a dashboard view to its chart description.
func BuildSpec(d entity.Dashboard, view entity.ViewID) (Spec, error) {
	title, ok := entity.ViewTitles[view]
	if !ok {
		return Spec{}, fmt.Errorf("unknown view %q", view)
	}
	spec := Spec{View: view, Title: title}
	gender := d.Selection.Gender
	if gender == "" {
		gender = entity.GenderMale
	}

	switch view {
	case entity.ViewGenderByYear:
		spec.Kind, spec.XName, spec.YName = KindBar, "Year", gender.ColumnLabel()
		spec.Points = yearPoints(d.GenderByYear)
		spec.Colors = solid(colorBlue, len(spec.Points))
	case entity.ViewGenderChangeByYear:
		spec.Kind, spec.XName, spec.YName = KindLine, "Year", "Percentage Change"
		for _, c := range d.GenderChangeByYear {
			p := Point{Label: strconv.Itoa(c.Year), X: float64(c.Year)}
			if c.Change != nil {
				p.Value, p.Defined = *c.Change, true
			}
			spec.Points = append(spec.Points, p)
		}
		spec.Colors = []drawing.Color{colorBlue}
	case entity.ViewTotalByYear:
		spec.Kind, spec.XName, spec.YName = KindBar, "Year", "Total_Arrivals"
		spec.Points = yearPoints(d.TotalByYear)
		spec.Colors = solid(colorOrange, len(spec.Points))
	case entity.ViewCombinedByYear:
		spec.Kind, spec.XName, spec.YName = KindBar, "Year", "Total_Arrivals"
		for _, t := range d.CombinedByYear {
			spec.Points = append(spec.Points, Point{Label: strconv.Itoa(t.Year), X: float64(t.Year), Value: t.Total, Defined: true})
		}
		spec.Colors = solid(colorGreen, len(spec.Points))
	case entity.ViewStateShare:
		spec.Kind, spec.XName, spec.YName = KindPie, "Migration State", "Arrivals"
		shares := pipeline.Shares(d.StateShare)
		for i, lv := range d.StateShare {
			spec.Points = append(spec.Points, Point{
				Label:   fmt.Sprintf("%s %.1f%%", lv.Label, shares[i]),
				Value:   lv.Value,
				Defined: true,
			})
		}
		spec.Colors = categorical(len(spec.Points))
	case entity.ViewTopCountries:
		spec.Kind, spec.XName, spec.YName = KindBar, "Country", "Arrivals"
		spec.Points = labelPoints(d.TopCountries)
		spec.Colors = categorical(len(spec.Points))
	case entity.ViewStateTotals:
		spec.Kind, spec.XName, spec.YName = KindBar, "Migration State", "Arrivals"
		spec.Points = labelPoints(d.StateTotals)
		spec.Colors = byValue(spec.Points)
	}
	return spec, nil
}

// HasData reports whether the spec has anything drawable: at least one
// defined point, and for bars and pies at least one non-zero value.
func (s Spec) HasData() bool {
	for _, p := range s.Points {
		if !p.Defined {
			continue
		}
		if s.Kind == KindLine || p.Value != 0 {
			return true
		}
	}
	return false
}

func yearPoints(values []entity.YearValue) []Point {
	points := make([]Point, 0, len(values))
	for _, yv := range values {
		points = append(points, Point{Label: strconv.Itoa(yv.Year), X: float64(yv.Year), Value: yv.Value, Defined: true})
	}
	return points
}

func labelPoints(values []entity.LabelValue) []Point {
	points := make([]Point, 0, len(values))
	for i, lv := range values {
		points = append(points, Point{Label: lv.Label, X: float64(i), Value: lv.Value, Defined: true})
	}
	return points
}

func solid(c drawing.Color, n int) []drawing.Color {
	colors := make([]drawing.Color, n)
	for i := range colors {
		colors[i] = c
	}
	return colors
}

func categorical(n int) []drawing.Color {
	colors := make([]drawing.Color, n)
	for i := range colors {
		colors[i] = categoryPalette[i%len(categoryPalette)]
	}
	return colors
}

// byValue interpolates each point's colour between the ends of the scale by
// its share of the largest value.
func byValue(points []Point) []drawing.Color {
	var top float64
	for _, p := range points {
		if p.Value > top {
			top = p.Value
		}
	}
	colors := make([]drawing.Color, len(points))
	for i, p := range points {
		t := 0.0
		if top > 0 {
			t = p.Value / top
		}
		colors[i] = lerp(scaleLow, scaleHigh, t)
	}
	return colors
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
