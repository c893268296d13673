package viewport

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/zappabad/candleview/internal/dataset"
)

// ErrNoVisibleData is returned when the current window holds no bars.
var ErrNoVisibleData = errors.New("no visible data")

// ViewState is the pan/zoom position of an Engine.
//
// ChunkIndex and ChunkItemOffset form the materialization cursor: the next
// bar not yet copied into the viewed buffer. ItemsOffset indexes the
// flattened series.
type ViewState struct {
	ChunkIndex      int
	ChunkItemOffset int
	ItemsOffset     int
	VisibleCount    int
	ElementSize     ElementSize
	ZoomLevel       float64

	viewed []dataset.Bar
}

// Viewed returns the number of bars materialized so far.
func (s ViewState) Viewed() int {
	return len(s.viewed)
}

// Engine maps pan/zoom state onto a lazily materialized window of a chunked
// dataset. It is not safe for concurrent use; all calls are expected from
// the host's single event loop.
type Engine struct {
	cfg    Config
	ds     *dataset.Dataset
	logger *zap.Logger

	state         ViewState
	viewportWidth float64
}

// NewEngine creates an Engine over ds for a viewport of the given width.
func NewEngine(ds *dataset.Dataset, cfg Config, viewportWidth float64, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		cfg:           cfg.normalized(),
		ds:            ds,
		logger:        logger,
		viewportWidth: viewportWidth,
	}
	e.state.ElementSize = e.cfg.ElementSize
	e.SetZoomLevel(e.cfg.ZoomLevel)
	return e
}

// State returns a snapshot of the view state.
func (e *Engine) State() ViewState {
	return e.state
}

// Total returns the number of bars in the dataset.
func (e *Engine) Total() int {
	return e.ds.Len()
}

// ViewportWidth returns the width last passed to Resize.
func (e *Engine) ViewportWidth() float64 {
	return e.viewportWidth
}

// VisibleBars returns the current window: VisibleCount bars starting at
// ItemsOffset, or the whole dataset if it is shorter than one viewport.
// Bars carry absolute timestamps. The returned slice must not be modified.
func (e *Engine) VisibleBars() ([]dataset.Bar, error) {
	e.clampOffset()

	total := e.ds.Len()
	start := e.state.ItemsOffset
	end := min(start+e.state.VisibleCount, total)

	if viewed := len(e.state.viewed); end > viewed {
		// Page forward at least one full viewport at a time.
		page := max(end-viewed, e.state.VisibleCount)
		e.materialize(min(page, total-viewed))
	}

	if end <= start {
		return nil, ErrNoVisibleData
	}
	return e.state.viewed[start:end:end], nil
}

// materialize appends the next n bars of the flattened series to the viewed
// buffer, crossing chunk boundaries as needed. Chunks are only walked forward.
func (e *Engine) materialize(n int) {
	if e.ds.NumChunks() == 0 {
		return
	}
	s := &e.state
	for n > 0 {
		c := e.ds.Chunk(s.ChunkIndex)
		if s.ChunkItemOffset >= c.Len() {
			if s.ChunkIndex+1 >= e.ds.NumChunks() {
				return
			}
			s.ChunkIndex++
			s.ChunkItemOffset = 0
			e.logger.Debug("crossed chunk boundary",
				zap.Int("chunk", s.ChunkIndex),
				zap.Int64("start_date", e.ds.Chunk(s.ChunkIndex).StartDate),
				zap.Int("viewed", len(s.viewed)))
			continue
		}

		take := min(n, c.Len()-s.ChunkItemOffset)
		s.viewed = append(s.viewed, c.Absolute(s.ChunkItemOffset, s.ChunkItemOffset+take)...)
		s.ChunkItemOffset += take
		n -= take
	}
}

// MoveBy pans by delta pixels; positive delta moves toward older bars.
// The move is ignored if it would push the window past the dataset end.
// It reports whether the offset changed.
func (e *Engine) MoveBy(delta float64) bool {
	step := e.state.ElementSize.Step()
	if step <= 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return false
	}
	shift := int(math.Round(delta / step))
	return e.MoveItems(-shift)
}

// MoveItems shifts the window by n bars, clamping at 0 and ignoring moves
// past the dataset end.
func (e *Engine) MoveItems(n int) bool {
	next := max(0, e.state.ItemsOffset+n)
	if next+e.state.VisibleCount > e.ds.Len() || next == e.state.ItemsOffset {
		return false
	}
	e.state.ItemsOffset = next
	return true
}

// SetZoomLevel clamps level to the configured range, snaps it to ZoomScale
// steps and recomputes element size and visible count. It reports whether
// the zoom level changed.
func (e *Engine) SetZoomLevel(level float64) bool {
	level = e.snapZoom(level)
	changed := level != e.state.ZoomLevel
	e.state.ZoomLevel = level
	e.state.ElementSize = e.cfg.ElementSize.Scale(1 + e.zoomGrowth(level))
	e.recalcVisibleCount()
	return changed
}

// ZoomIn raises the zoom level by one ZoomScale step.
func (e *Engine) ZoomIn() bool {
	return e.SetZoomLevel(e.state.ZoomLevel + e.cfg.ZoomScale)
}

// ZoomOut lowers the zoom level by one ZoomScale step.
func (e *Engine) ZoomOut() bool {
	return e.SetZoomLevel(e.state.ZoomLevel - e.cfg.ZoomScale)
}

// Resize recomputes the visible count for a new viewport width.
func (e *Engine) Resize(viewportWidth float64) {
	e.viewportWidth = viewportWidth
	e.recalcVisibleCount()
}

func (e *Engine) snapZoom(level float64) float64 {
	lo, hi := e.cfg.MinZoomLevel, e.cfg.MaxZoomLevel
	if math.IsNaN(level) {
		return lo
	}
	steps := math.Round((level - lo) / e.cfg.ZoomScale)
	level = lo + steps*e.cfg.ZoomScale
	return math.Max(lo, math.Min(hi, level))
}

// zoomGrowth is 0 at the minimum level and rises linearly with the level
// up to ZoomGrowthPercent at the maximum.
func (e *Engine) zoomGrowth(level float64) float64 {
	if level <= e.cfg.MinZoomLevel || e.cfg.MaxZoomLevel <= 0 {
		return 0
	}
	return level / e.cfg.MaxZoomLevel * e.cfg.ZoomGrowthPercent / 100
}

func (e *Engine) recalcVisibleCount() {
	step := e.state.ElementSize.Step()
	count := 0
	if step > 0 {
		count = int(math.Floor((e.viewportWidth - e.cfg.PaddingLeft) / step))
	}
	e.state.VisibleCount = max(0, count)
	e.clampOffset()
}

func (e *Engine) clampOffset() {
	total := e.ds.Len()
	switch {
	case e.state.VisibleCount >= total:
		e.state.ItemsOffset = 0
	case e.state.ItemsOffset+e.state.VisibleCount > total:
		e.state.ItemsOffset = total - e.state.VisibleCount
	}
}
