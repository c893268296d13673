package interact

// Button identifies a pointer button. The zero value is no button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent carries client coordinates of a pointer action.
type PointerEvent struct {
	X      float64
	Y      float64
	Button Button
}

// WheelEvent carries the vertical scroll delta. Negative is away from the user.
type WheelEvent struct {
	DeltaY float64
}

// Handlers is the set of callbacks an InputSource dispatches to. Nil
// handlers are skipped by the source.
type Handlers struct {
	PointerDown  func(PointerEvent)
	PointerMove  func(PointerEvent)
	PointerUp    func(PointerEvent)
	PointerLeave func()
	Wheel        func(WheelEvent)
	Resize       func()
}

// InputSource delivers host input events. Subscribe returns a function that
// removes every handler it registered.
type InputSource interface {
	Subscribe(h Handlers) (unsubscribe func())
}

// FrameScheduler defers work to the host's next display frame.
type FrameScheduler interface {
	RequestFrame(fn func())
}
