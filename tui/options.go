package tui

import (
	"github.com/zappabad/candleview/internal/chart"
	"github.com/zappabad/candleview/tui/styles"
)

// TerminalOptions returns chart defaults sized for terminal cells. A YAML
// options file is decoded over these.
//
// ZoomGrowthPercent is raised from the 15% default to 300%: at one cell per
// bar a 15% growth never changes the rendered width, so zoom would have no
// visible effect. Set zoomGrowthPercent: 15 in the options file to restore
// the default curve.
func TerminalOptions() chart.Options {
	o := chart.DefaultOptions()

	o.CanvasPaddingLeft = 1
	o.CanvasPaddingTop = 1
	o.ZoomGrowthPercent = 300
	o.DataElementSize = chart.ElementSizeOptions{Width: 1, Spacing: 1}

	o.XAxis.Offset = 2
	o.XAxis.LabelPadding = chart.Padding{Left: 6, Top: 1}
	o.YAxis.Offset = 12
	o.YAxis.LabelPadding = chart.Padding{Left: 1, Top: 0}

	for _, ax := range []*chart.AxisOptions{&o.XAxis, &o.YAxis} {
		ax.Label.Color = string(styles.TextSecondaryColor)
		ax.Line.Color = string(styles.BorderColor)
		ax.Line.DashSize = []float64{1, 1}
	}

	o.Colors = chart.ColorOptions{Up: string(styles.UpColor), Down: string(styles.DownColor)}
	return o
}
