package chart

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"github.com/zappabad/candleview/internal/viewport"
)

var validate = validator.New()

// Padding is a label offset relative to its anchor.
type Padding struct {
	Left float64 `yaml:"left"`
	Top  float64 `yaml:"top"`
}

// AxisOptions configures one axis.
type AxisOptions struct {
	// Offset is the space reserved for the axis labels along the chart edge.
	Offset       float64    `yaml:"offset" validate:"gte=0"`
	Label        LabelStyle `yaml:"label"`
	Line         LineStyle  `yaml:"line"`
	LabelPadding Padding    `yaml:"labelPadding"`
	// Precision is the number of decimals of value labels (y axis).
	Precision int `yaml:"precision" default:"5" validate:"gte=0,lte=12"`
	// Format is the time layout of date labels (x axis).
	Format string `yaml:"format" default:"2 Jan 15:04"`
}

// ElementSizeOptions is the base bar footprint at the minimum zoom level.
type ElementSizeOptions struct {
	Width   float64 `yaml:"width" default:"4" validate:"gt=0"`
	Spacing float64 `yaml:"spacing" default:"1" validate:"gte=0"`
}

// ColorOptions are the element colors for rising and falling bars.
type ColorOptions struct {
	Up   string `yaml:"up" default:"#10B981"`
	Down string `yaml:"down" default:"#EF4444"`
}

// Options configures a Chart. Every field is optional; DefaultOptions holds
// the documented defaults and a YAML document can be decoded over them.
type Options struct {
	ZoomScale         float64 `yaml:"zoomScale" default:"1" validate:"gt=0"`
	MinZoomLevel      float64 `yaml:"minZoomLevel" default:"1" validate:"gte=0"`
	MaxZoomLevel      float64 `yaml:"maxZoomLevel" default:"8" validate:"gtefield=MinZoomLevel"`
	ZoomLevel         float64 `yaml:"zoomLevel" default:"1"`
	ZoomGrowthPercent float64 `yaml:"zoomGrowthPercent" default:"15" validate:"gte=0"`

	CanvasPaddingLeft float64 `yaml:"canvasPaddingLeft" default:"10" validate:"gte=0"`
	CanvasPaddingTop  float64 `yaml:"canvasPaddingTop" default:"10" validate:"gte=0"`

	XAxis AxisOptions `yaml:"xAxis" default:"{\"Offset\":30,\"LabelPadding\":{\"Left\":28,\"Top\":20}}"`
	YAxis AxisOptions `yaml:"yAxis" default:"{\"Offset\":50,\"LabelPadding\":{\"Left\":3,\"Top\":4}}"`

	DataElementSize ElementSizeOptions `yaml:"dataElementSize"`
	Colors          ColorOptions       `yaml:"colors"`

	// TimeZone is the IANA zone date labels are rendered in.
	TimeZone string `yaml:"timeZone" default:"UTC"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	var o Options
	defaults.MustSet(&o)
	return o
}

// Validate checks option bounds. Zoom level itself is not validated; it is
// clamped into range by the viewport.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid chart options: %w", err)
	}
	return nil
}

// ViewportConfig derives the windowing engine configuration.
func (o Options) ViewportConfig() viewport.Config {
	return viewport.Config{
		ZoomScale:         o.ZoomScale,
		MinZoomLevel:      o.MinZoomLevel,
		MaxZoomLevel:      o.MaxZoomLevel,
		ZoomLevel:         o.ZoomLevel,
		ZoomGrowthPercent: o.ZoomGrowthPercent,
		PaddingLeft:       o.CanvasPaddingLeft,
		ElementSize: viewport.ElementSize{
			Width:   o.DataElementSize.Width,
			Spacing: o.DataElementSize.Spacing,
		},
	}
}
