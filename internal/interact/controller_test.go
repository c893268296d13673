package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/candleview/internal/dataset"
	"github.com/zappabad/candleview/internal/viewport"
)

type fakeTarget struct {
	engine  *viewport.Engine
	renders int
	zooms   int
	resizes int
}

func (f *fakeTarget) Render() error { f.renders++; return nil }
func (f *fakeTarget) ZoomRender() error { f.zooms++; return nil }
func (f *fakeTarget) Resize() error { f.resizes++; return nil }
func (f *fakeTarget) Engine() *viewport.Engine { return f.engine }

type fakeScheduler struct {
	frames []func()
}

func (s *fakeScheduler) RequestFrame(fn func()) {
	s.frames = append(s.frames, fn)
}

func (s *fakeScheduler) flush() {
	frames := s.frames
	s.frames = nil
	for _, fn := range frames {
		fn()
	}
}

type fakeSource struct {
	h            *Handlers
	unsubscribed int
}

func (s *fakeSource) Subscribe(h Handlers) func() {
	s.h = &h
	return func() {
		s.h = nil
		s.unsubscribed++
	}
}

// newFixture builds 40 bars with 10 visible at a 5px step.
func newFixture(t *testing.T) (*Controller, *fakeTarget, *fakeScheduler) {
	t.Helper()
	flat := make([]dataset.Bar, 40)
	for i := range flat {
		flat[i] = dataset.Bar{Time: int64(1000 + i*60), Open: 1, High: 2, Low: 0, Close: 1}
	}
	d, err := dataset.FromBars(flat, 15)
	require.NoError(t, err)

	cfg := viewport.DefaultConfig()
	cfg.PaddingLeft = 0
	target := &fakeTarget{engine: viewport.NewEngine(d, cfg, 50, nil)}
	sched := &fakeScheduler{}
	return NewController(target, sched, nil), target, sched
}

func TestDragPansOnFrame(t *testing.T) {
	c, target, sched := newFixture(t)
	target.engine.MoveItems(20)

	c.PointerDown(PointerEvent{X: 100, Button: ButtonPrimary})
	require.True(t, c.Dragging())

	c.PointerMove(PointerEvent{X: 125})
	assert.True(t, c.FramePending())
	assert.Equal(t, 20, target.engine.State().ItemsOffset, "pan waits for the frame")

	sched.flush()
	assert.False(t, c.FramePending())
	assert.Equal(t, 15, target.engine.State().ItemsOffset)
	assert.Equal(t, 1, target.renders)
}

func TestMovesCoalesceWhileFramePending(t *testing.T) {
	c, target, sched := newFixture(t)
	target.engine.MoveItems(20)

	c.PointerDown(PointerEvent{X: 100, Button: ButtonPrimary})
	c.PointerMove(PointerEvent{X: 95})
	c.PointerMove(PointerEvent{X: 90})
	c.PointerMove(PointerEvent{X: 85})
	require.Len(t, sched.frames, 1)

	sched.flush()
	assert.Equal(t, 21, target.engine.State().ItemsOffset)
	assert.Equal(t, 1, target.renders)

	// the skipped motion is picked up by the next request
	c.PointerMove(PointerEvent{X: 80})
	require.Len(t, sched.frames, 1)
	sched.flush()
	assert.Equal(t, 24, target.engine.State().ItemsOffset)
}

func TestMoveWithoutDragIsIgnored(t *testing.T) {
	c, _, sched := newFixture(t)

	c.PointerMove(PointerEvent{X: 50})
	assert.Empty(t, sched.frames)

	c.PointerDown(PointerEvent{X: 50, Button: ButtonSecondary})
	c.PointerMove(PointerEvent{X: 10})
	assert.Empty(t, sched.frames)

	var unset PointerEvent
	c.PointerDown(unset)
	assert.False(t, c.Dragging(), "an event without a button does not start a drag")

	c.PointerDown(PointerEvent{X: 50, Button: ButtonPrimary})
	c.PointerLeave()
	c.PointerMove(PointerEvent{X: 10})
	assert.Empty(t, sched.frames)
	assert.False(t, c.Dragging())
}

func TestPanIntoBoundsOnly(t *testing.T) {
	c, target, sched := newFixture(t)

	c.PointerDown(PointerEvent{X: 0, Button: ButtonPrimary})
	for _, x := range []float64{-60, -300, -1000, 400, 1000, -40} {
		c.PointerMove(PointerEvent{X: x})
		sched.flush()
		s := target.engine.State()
		assert.GreaterOrEqual(t, s.ItemsOffset, 0)
		assert.LessOrEqual(t, s.ItemsOffset, target.engine.Total()-s.VisibleCount)
	}
	c.PointerUp(PointerEvent{})
	assert.False(t, c.Dragging())
}

func TestWheelZooms(t *testing.T) {
	c, target, _ := newFixture(t)
	require.Equal(t, 1.0, target.engine.State().ZoomLevel)

	c.Wheel(WheelEvent{DeltaY: 3})
	assert.Equal(t, 0, target.zooms, "already at min zoom")

	c.Wheel(WheelEvent{DeltaY: -3})
	assert.Equal(t, 2.0, target.engine.State().ZoomLevel)
	assert.Equal(t, 1, target.zooms)

	c.Wheel(WheelEvent{DeltaY: 0})
	assert.Equal(t, 1, target.zooms)

	c.Wheel(WheelEvent{DeltaY: 1})
	assert.Equal(t, 1.0, target.engine.State().ZoomLevel)
	assert.Equal(t, 2, target.zooms)
}

func TestAttachDetach(t *testing.T) {
	c, target, sched := newFixture(t)
	src := &fakeSource{}

	require.NoError(t, c.Attach(src))
	require.NotNil(t, src.h)
	assert.True(t, c.Attached())
	assert.ErrorIs(t, c.Attach(src), ErrAlreadyAttached)

	src.h.Resize()
	assert.Equal(t, 1, target.resizes)

	src.h.PointerDown(PointerEvent{X: 10, Button: ButtonPrimary})
	src.h.PointerMove(PointerEvent{X: -40})
	require.Len(t, sched.frames, 1)

	c.Detach()
	assert.Equal(t, 1, src.unsubscribed)
	assert.Nil(t, src.h)
	assert.False(t, c.Dragging())
	assert.False(t, c.FramePending())

	// the stale frame is dropped
	sched.flush()
	assert.Equal(t, 0, target.engine.State().ItemsOffset)
	assert.Equal(t, 0, target.renders)

	c.Detach()
	assert.Equal(t, 1, src.unsubscribed)

	require.NoError(t, c.Attach(src))
}

func TestPanBy(t *testing.T) {
	c, target, _ := newFixture(t)

	c.PanBy(3)
	assert.Equal(t, 3, target.engine.State().ItemsOffset)
	c.PanBy(-10)
	assert.Equal(t, 0, target.engine.State().ItemsOffset)
	c.PanBy(-1)
	assert.Equal(t, 2, target.renders)
}
