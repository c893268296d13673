package chart

import (
	"math"
	"strconv"
	"time"
)

const (
	xAxisSteps = 6
	yAxisSteps = 10
)

// drawXAxis labels xAxisSteps-1 interior ticks with the time of the bar
// under each tick.
func (b *base) drawXAxis(f Frame) {
	ax := b.opts.XAxis
	n := len(f.Bars)
	slot := (f.Width + f.Element.Spacing + f.Element.Width/2) / xAxisSteps

	for i := 1; i < xAxisSteps; i++ {
		index := i * (n - 1) / xAxisSteps
		x := slot * float64(i)

		label := time.Unix(f.Bars[index].Time, 0).In(b.loc).Format(ax.Format)
		b.surface.DrawText(label, Point{X: x - ax.LabelPadding.Left, Y: f.Height + ax.LabelPadding.Top}, ax.Label)
		b.surface.DrawDashedLine(Point{X: x, Y: 0}, Point{X: x, Y: f.Height}, ax.Line)
	}
}

// drawYAxis draws yAxisSteps+1 value grid lines from Min to Max.
func (b *base) drawYAxis(f Frame) {
	ax := b.opts.YAxis
	plot := f.Height - 2*f.PaddingTop
	span := f.Max - f.Min

	for i := 0; i <= yAxisSteps; i++ {
		value := f.Min + span*float64(i)/yAxisSteps
		y := plot - (value-f.Min)/span*plot + f.PaddingTop
		if math.IsNaN(y) {
			continue
		}

		label := strconv.FormatFloat(value, 'f', ax.Precision, 64)
		b.surface.DrawText(label, Point{X: f.Width + ax.LabelPadding.Left, Y: y + ax.LabelPadding.Top}, ax.Label)
		b.surface.DrawDashedLine(Point{X: 0, Y: y}, Point{X: f.Width, Y: y}, ax.Line)
	}
}
