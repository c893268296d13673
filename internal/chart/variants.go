package chart

import (
	"math"

	"github.com/zappabad/candleview/internal/dataset"
)

// CandlestickChart draws a high-low wick and an open-close body per bar.
type CandlestickChart struct {
	*base
}

func (c *CandlestickChart) DrawDataElement(index int, bar dataset.Bar, f Frame) {
	x := f.X(index)
	mid := x + f.Element.Width/2
	openY, closeY := f.Y(bar.Open), f.Y(bar.Close)

	c.surface.DrawLine(Point{X: mid, Y: f.Y(bar.High)}, Point{X: mid, Y: f.Y(bar.Low)}, c.elementLine(bar))
	c.surface.DrawRect(
		Point{X: x, Y: math.Min(openY, closeY)},
		Size{Width: f.Element.Width, Height: math.Abs(openY - closeY)},
		c.elementColor(bar),
	)
}

// BarsChart draws classic OHLC bars: a high-low line with the open tick on
// the left and the close tick on the right.
type BarsChart struct {
	*base
}

func (c *BarsChart) DrawDataElement(index int, bar dataset.Bar, f Frame) {
	x := f.X(index)
	mid := x + f.Element.Width/2
	style := c.elementLine(bar)

	c.surface.DrawLine(Point{X: mid, Y: f.Y(bar.High)}, Point{X: mid, Y: f.Y(bar.Low)}, style)
	c.surface.DrawLine(Point{X: x, Y: f.Y(bar.Open)}, Point{X: mid, Y: f.Y(bar.Open)}, style)
	c.surface.DrawLine(Point{X: mid, Y: f.Y(bar.Close)}, Point{X: x + f.Element.Width, Y: f.Y(bar.Close)}, style)
}

// LineChart connects consecutive closes. The segment takes the down color
// when the close fell.
type LineChart struct {
	*base
}

func (c *LineChart) DrawDataElement(index int, bar dataset.Bar, f Frame) {
	if index == 0 || index >= len(f.Bars) {
		return
	}
	prev := f.Bars[index-1]
	half := f.Element.Width / 2

	color := c.opts.Colors.Up
	if prev.Close > bar.Close {
		color = c.opts.Colors.Down
	}
	c.surface.DrawLine(
		Point{X: f.X(index-1) + half, Y: f.Y(prev.Close)},
		Point{X: f.X(index) + half, Y: f.Y(bar.Close)},
		LineStyle{Color: color, Thickness: 1},
	)
}
