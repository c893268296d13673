package interact

import (
	"errors"

	"go.uber.org/zap"

	"github.com/zappabad/candleview/internal/viewport"
)

var ErrAlreadyAttached = errors.New("controller already attached to an input source")

// Target is the chart a Controller drives.
type Target interface {
	Render() error
	ZoomRender() error
	Resize() error
	Engine() *viewport.Engine
}

// frameRequest is the single in-flight pan. Its identity is the token: a
// frame callback only runs if its request is still the pending one.
type frameRequest struct {
	dx float64
}

// Controller turns drag and wheel input into pan and zoom operations. At
// most one pan is pending per frame; pointer moves that arrive while a pan
// is pending are folded into the next one.
type Controller struct {
	target    Target
	scheduler FrameScheduler
	logger    *zap.Logger

	dragging bool
	anchorX  float64
	pending  *frameRequest

	unsubscribe func()
}

// NewController creates a Controller for target using scheduler for frame deferral.
func NewController(target Target, scheduler FrameScheduler, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		target:    target,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Attach subscribes the controller to src.
func (c *Controller) Attach(src InputSource) error {
	if c.unsubscribe != nil {
		return ErrAlreadyAttached
	}
	c.unsubscribe = src.Subscribe(Handlers{
		PointerDown:  c.PointerDown,
		PointerMove:  c.PointerMove,
		PointerUp:    c.PointerUp,
		PointerLeave: c.PointerLeave,
		Wheel:        c.Wheel,
		Resize:       c.Resize,
	})
	return nil
}

// Detach removes the controller's handlers and drops drag and pending state.
// A frame callback already handed to the scheduler becomes a no-op.
func (c *Controller) Detach() {
	if c.unsubscribe == nil {
		return
	}
	c.unsubscribe()
	c.unsubscribe = nil
	c.dragging = false
	c.pending = nil
}

// Attached reports whether the controller is subscribed to a source.
func (c *Controller) Attached() bool {
	return c.unsubscribe != nil
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// FramePending reports whether a pan is waiting for its frame.
func (c *Controller) FramePending() bool {
	return c.pending != nil
}

func (c *Controller) PointerDown(e PointerEvent) {
	if e.Button != ButtonPrimary {
		return
	}
	c.dragging = true
	c.anchorX = e.X
}

func (c *Controller) PointerMove(e PointerEvent) {
	if !c.dragging || c.pending != nil {
		return
	}
	req := &frameRequest{dx: e.X - c.anchorX}
	c.anchorX = e.X
	c.pending = req
	c.scheduler.RequestFrame(func() { c.runFrame(req) })
}

func (c *Controller) PointerUp(PointerEvent) {
	c.dragging = false
}

func (c *Controller) PointerLeave() {
	c.dragging = false
}

func (c *Controller) Wheel(e WheelEvent) {
	switch {
	case e.DeltaY < 0:
		c.Zoom(true)
	case e.DeltaY > 0:
		c.Zoom(false)
	}
}

func (c *Controller) Resize() {
	c.report("resize", c.target.Resize())
}

// Zoom steps the zoom level in or out and redraws if it changed.
func (c *Controller) Zoom(in bool) {
	engine := c.target.Engine()
	var changed bool
	if in {
		changed = engine.ZoomIn()
	} else {
		changed = engine.ZoomOut()
	}
	if changed {
		c.report("zoom", c.target.ZoomRender())
	}
}

// PanBy shifts the window by n bars; positive n moves toward newer bars.
func (c *Controller) PanBy(n int) {
	if c.target.Engine().MoveItems(n) {
		c.report("pan", c.target.Render())
	}
}

func (c *Controller) runFrame(req *frameRequest) {
	if c.pending != req {
		return
	}
	c.pending = nil
	if c.target.Engine().MoveBy(req.dx) {
		c.report("pan", c.target.Render())
	}
}

func (c *Controller) report(op string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, viewport.ErrNoVisibleData):
		c.logger.Debug("render skipped", zap.String("op", op), zap.Error(err))
	default:
		c.logger.Warn("render failed", zap.String("op", op), zap.Error(err))
	}
}
