// Package canvas adapts an ntcharts canvas to chart.Surface.
// One surface unit is one terminal cell.
package canvas

import (
	"math"
	"strings"

	ntcanvas "github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/candleview/internal/chart"
	"github.com/zappabad/candleview/tui/styles"
)

// Glyphs used for primitives.
const (
	GlyphEmpty      = ' '
	GlyphVertical   = '│'
	GlyphHorizontal = '─'
	GlyphDiagonal   = '•'
	GlyphDashV      = '┊'
	GlyphDashH      = '┈'
	GlyphBlock      = '█'
)

// Canvas is a fixed-size grid of styled runes.
type Canvas struct {
	m ntcanvas.Model
}

// New creates a blank canvas.
func New(width, height int) *Canvas {
	width, height = max(0, width), max(0, height)
	c := &Canvas{m: ntcanvas.New(width, height)}
	c.Clear()
	return c
}

// Resize changes the grid size and clears it.
func (c *Canvas) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	c.m.Resize(width, height)
	c.m.ViewWidth = width
	c.m.ViewHeight = height
	c.Clear()
}

func (c *Canvas) Width() float64 { return float64(c.m.Width()) }
func (c *Canvas) Height() float64 { return float64(c.m.Height()) }

func (c *Canvas) Clear() {
	c.m.Clear()
	blank := ntcanvas.NewCellWithStyle(GlyphEmpty, lipgloss.NewStyle())
	for y := 0; y < c.m.Height(); y++ {
		for x := 0; x < c.m.Width(); x++ {
			c.m.SetCell(ntcanvas.Point{X: x, Y: y}, blank)
		}
	}
}

// At returns the rune at column x, row y, or GlyphEmpty outside the grid.
func (c *Canvas) At(x, y int) rune {
	if !c.inside(x, y) {
		return GlyphEmpty
	}
	return c.m.Cell(ntcanvas.Point{X: x, Y: y}).Rune
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.m.Width() && y < c.m.Height()
}

func (c *Canvas) set(x, y int, r rune, color string) {
	if !c.inside(x, y) {
		return
	}
	c.m.SetCell(ntcanvas.Point{X: x, Y: y}, ntcanvas.NewCellWithStyle(r, styles.Foreground(color)))
}

func (c *Canvas) DrawLine(from, to chart.Point, style chart.LineStyle) {
	c.stroke(from, to, style.Color, nil)
}

func (c *Canvas) DrawDashedLine(from, to chart.Point, style chart.LineStyle) {
	c.stroke(from, to, style.Color, style.DashSize)
}

// stroke rasterizes the segment between two points. dash holds on/off run
// lengths in cells; nil draws a solid line.
func (c *Canvas) stroke(from, to chart.Point, color string, dash []float64) {
	// Endpoints are pinned just outside the grid so far off-screen
	// coordinates cannot blow up the walk.
	w, h := c.m.Width(), c.m.Height()
	p0 := ntcanvas.Point{X: clamp(cellOf(from.X), -1, w), Y: clamp(cellOf(from.Y), -1, h)}
	p1 := ntcanvas.Point{X: clamp(cellOf(to.X), -1, w), Y: clamp(cellOf(to.Y), -1, h)}

	glyph := GlyphDiagonal
	switch {
	case p0.X == p1.X:
		glyph = GlyphVertical
		if dash != nil {
			glyph = GlyphDashV
		}
	case p0.Y == p1.Y:
		glyph = GlyphHorizontal
		if dash != nil {
			glyph = GlyphDashH
		}
	}

	on, period := dashPattern(dash)
	for _, p := range graph.GetLinePoints(p0, p1) {
		// Dash phase is the distance from the start point.
		if i := max(abs(p.X-p0.X), abs(p.Y-p0.Y)); period > 0 && i%period >= on {
			continue
		}
		c.set(p.X, p.Y, glyph, color)
	}
}

func (c *Canvas) DrawText(text string, pos chart.Point, style chart.LabelStyle) {
	x, y := cellOf(pos.X), cellOf(pos.Y)
	for _, r := range text {
		c.set(x, y, r, style.Color)
		x++
	}
}

// DrawRect fills the cells covered by the rectangle. Thin rectangles still
// cover at least one cell in each direction.
func (c *Canvas) DrawRect(pos chart.Point, size chart.Size, color string) {
	w, h := c.m.Width(), c.m.Height()
	x0, y0 := cellOf(pos.X), cellOf(pos.Y)
	x1 := clamp(max(x0+1, cellOf(pos.X+size.Width)), 0, w)
	y1 := clamp(max(y0+1, cellOf(pos.Y+size.Height)), 0, h)
	x0, y0 = clamp(x0, 0, w), clamp(y0, 0, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, GlyphBlock, color)
		}
	}
}

// Lines returns the grid as plain text rows.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.m.Height())
	for y := range lines {
		var b strings.Builder
		for x := 0; x < c.m.Width(); x++ {
			b.WriteRune(c.At(x, y))
		}
		lines[y] = b.String()
	}
	return lines
}

// Render returns the styled grid.
func (c *Canvas) Render() string {
	if c.m.Width() == 0 || c.m.Height() == 0 {
		return ""
	}
	return strings.TrimSuffix(c.m.View(), "\n")
}

func dashPattern(dash []float64) (on, period int) {
	if len(dash) < 2 {
		return 0, 0
	}
	on = max(1, int(math.Round(dash[0])))
	off := max(0, int(math.Round(dash[1])))
	if off == 0 {
		return 0, 0
	}
	return on, on + off
}

func cellOf(v float64) int {
	switch {
	case math.IsNaN(v):
		return -1
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(v))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
