package chart

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/zappabad/candleview/internal/dataset"
	"github.com/zappabad/candleview/internal/viewport"
)

var (
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")
	ErrUnknownKind        = errors.New("unknown chart kind")
	ErrNoVisibleData      = viewport.ErrNoVisibleData
)

// Kind selects the chart variant.
type Kind string

const (
	KindBars        Kind = "bars"
	KindCandlestick Kind = "candlestick"
	KindLine        Kind = "line"
)

// ParseKind converts a config string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindBars, KindCandlestick, KindLine:
		return k, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
}

// Chart renders the visible window of a dataset onto a Surface.
type Chart interface {
	Kind() Kind
	// Initialize applies the configured zoom level and draws the first frame.
	Initialize() error
	// Render redraws the current window.
	Render() error
	// ZoomRender recomputes the window after a zoom change and redraws.
	ZoomRender() error
	// Resize picks up new surface dimensions and redraws.
	Resize() error
	// DrawDataElement draws one bar at its slot in the window.
	DrawDataElement(index int, bar dataset.Bar, f Frame)
	Engine() *viewport.Engine
}

// Frame is the value-to-pixel transform of one render pass.
type Frame struct {
	Bars []dataset.Bar

	Min   float64
	Max   float64
	Scale float64

	Element     viewport.ElementSize
	Width       float64 // chart area without the y axis
	Height      float64 // chart area without the x axis
	PaddingLeft float64
	PaddingTop  float64
}

// X returns the left edge of the element at index.
func (f Frame) X(index int) float64 {
	return float64(index)*f.Element.Step() + f.PaddingLeft
}

// Y maps a price to a vertical position.
func (f Frame) Y(v float64) float64 {
	return f.Height - f.PaddingTop - (v-f.Min)*f.Scale
}

// New builds a chart of the given kind. The surface is required.
func New(kind Kind, surface Surface, ds *dataset.Dataset, opts Options, logger *zap.Logger) (Chart, error) {
	if surface == nil {
		return nil, ErrSurfaceUnavailable
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(opts.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("chart time zone: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &base{
		kind:    kind,
		surface: surface,
		opts:    opts,
		loc:     loc,
		logger:  logger.With(zap.String("chart", string(kind))),
	}
	b.engine = viewport.NewEngine(ds, opts.ViewportConfig(), b.viewWidth(), b.logger)

	var c Chart
	switch kind {
	case KindBars:
		v := &BarsChart{base: b}
		b.drawElement = v.DrawDataElement
		c = v
	case KindCandlestick:
		v := &CandlestickChart{base: b}
		b.drawElement = v.DrawDataElement
		c = v
	case KindLine:
		v := &LineChart{base: b}
		b.drawElement = v.DrawDataElement
		c = v
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	return c, nil
}

// base carries everything the variants share; each variant supplies only
// its element drawing.
type base struct {
	kind    Kind
	surface Surface
	engine  *viewport.Engine
	opts    Options
	loc     *time.Location
	logger  *zap.Logger

	drawElement func(index int, bar dataset.Bar, f Frame)
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) Engine() *viewport.Engine {
	return b.engine
}

func (b *base) viewWidth() float64 {
	return b.surface.Width() - b.opts.YAxis.Offset
}

func (b *base) viewHeight() float64 {
	return b.surface.Height() - b.opts.XAxis.Offset
}

func (b *base) Initialize() error {
	b.engine.Resize(b.viewWidth())
	b.engine.SetZoomLevel(b.opts.ZoomLevel)
	return b.Render()
}

func (b *base) ZoomRender() error {
	s := b.engine.State()
	b.logger.Debug("zoom",
		zap.Float64("level", s.ZoomLevel),
		zap.Float64("element_width", s.ElementSize.Width),
		zap.Int("visible", s.VisibleCount))
	return b.Render()
}

func (b *base) Resize() error {
	b.engine.Resize(b.viewWidth())
	return b.Render()
}

func (b *base) Render() error {
	b.surface.Clear()

	bars, err := b.engine.VisibleBars()
	if err != nil {
		b.logger.Debug("nothing to render", zap.Error(err))
		return err
	}
	lo, hi, err := ValueRange(bars)
	if err != nil {
		return err
	}

	f := Frame{
		Bars:        bars,
		Min:         lo,
		Max:         hi,
		Element:     b.engine.State().ElementSize,
		Width:       b.viewWidth(),
		Height:      b.viewHeight(),
		PaddingLeft: b.opts.CanvasPaddingLeft,
		PaddingTop:  b.opts.CanvasPaddingTop,
	}
	f.Scale = Scale(f.Height-2*f.PaddingTop, lo, hi)

	b.drawXAxis(f)
	b.drawYAxis(f)
	for i, bar := range bars {
		b.drawElement(i, bar, f)
	}
	return nil
}

func (b *base) elementColor(bar dataset.Bar) string {
	if bar.Down() {
		return b.opts.Colors.Down
	}
	return b.opts.Colors.Up
}

func (b *base) elementLine(bar dataset.Bar) LineStyle {
	return LineStyle{Color: b.elementColor(bar), Thickness: 1}
}

// ValueRange returns min(Low) and max(High) over bars. A flat window is
// widened symmetrically so the derived scale stays finite.
func ValueRange(bars []dataset.Bar) (lo, hi float64, err error) {
	if len(bars) == 0 {
		return 0, 0, ErrNoVisibleData
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, b := range bars {
		lo = math.Min(lo, b.Low)
		hi = math.Max(hi, b.High)
	}
	lo, hi = widenFlatRange(lo, hi)
	return lo, hi, nil
}

func widenFlatRange(lo, hi float64) (float64, float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	if hi > lo {
		return lo, hi
	}
	pad := math.Abs(hi) * 0.005
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

// Scale maps a value range onto plotHeight pixels.
func Scale(plotHeight, lo, hi float64) float64 {
	if hi <= lo || plotHeight <= 0 {
		return 0
	}
	return plotHeight / (hi - lo)
}
