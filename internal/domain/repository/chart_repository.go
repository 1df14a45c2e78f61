package repository

import (
	"github.com/diillson/arrivals-dashboard-go/internal/domain/entity"
)

// ChartFormat is an output image format.
type ChartFormat string

const (
	ChartSVG ChartFormat = "svg"
	ChartPNG ChartFormat = "png"
)

// ChartRepository renders one dashboard view as an image.
type ChartRepository interface {
	// RenderView returns types.ErrNoData when the view has nothing to plot.
	RenderView(d entity.Dashboard, view entity.ViewID, format ChartFormat) ([]byte, error)
}
