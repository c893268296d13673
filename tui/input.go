package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/candleview/internal/interact"
)

// Dispatcher adapts bubbletea messages to interact.Handlers. It is the
// InputSource the chart controller attaches to.
type Dispatcher struct {
	subs   map[int]interact.Handlers
	nextID int

	// originX and originY locate the chart canvas inside the terminal.
	originX int
	originY int
}

// NewDispatcher creates a Dispatcher whose canvas starts at the given cell.
func NewDispatcher(originX, originY int) *Dispatcher {
	return &Dispatcher{
		subs:    make(map[int]interact.Handlers),
		originX: originX,
		originY: originY,
	}
}

// Subscribe registers h and returns a function that removes it.
func (d *Dispatcher) Subscribe(h interact.Handlers) func() {
	id := d.nextID
	d.nextID++
	d.subs[id] = h
	return func() { delete(d.subs, id) }
}

// Subscribers returns the number of registered handler sets.
func (d *Dispatcher) Subscribers() int {
	return len(d.subs)
}

// Dispatch routes a mouse or focus message. It reports whether msg was an
// input event.
func (d *Dispatcher) Dispatch(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		d.mouse(msg)
	case tea.BlurMsg:
		for _, h := range d.subs {
			if h.PointerLeave != nil {
				h.PointerLeave()
			}
		}
	default:
		return false
	}
	return true
}

// Resize notifies subscribers that the canvas changed size.
func (d *Dispatcher) Resize() {
	for _, h := range d.subs {
		if h.Resize != nil {
			h.Resize()
		}
	}
}

func (d *Dispatcher) mouse(m tea.MouseMsg) {
	ev := interact.PointerEvent{
		X:      float64(m.X - d.originX),
		Y:      float64(m.Y - d.originY),
		Button: button(m.Button),
	}

	if m.Action == tea.MouseActionPress && (m.Button == tea.MouseButtonWheelUp || m.Button == tea.MouseButtonWheelDown) {
		delta := 1.0
		if m.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		for _, h := range d.subs {
			if h.Wheel != nil {
				h.Wheel(interact.WheelEvent{DeltaY: delta})
			}
		}
		return
	}

	for _, h := range d.subs {
		var fn func(interact.PointerEvent)
		switch m.Action {
		case tea.MouseActionPress:
			fn = h.PointerDown
		case tea.MouseActionRelease:
			fn = h.PointerUp
		case tea.MouseActionMotion:
			fn = h.PointerMove
		}
		if fn != nil {
			fn(ev)
		}
	}
}

func button(b tea.MouseButton) interact.Button {
	switch b {
	case tea.MouseButtonLeft:
		return interact.ButtonPrimary
	case tea.MouseButtonRight:
		return interact.ButtonSecondary
	case tea.MouseButtonMiddle:
		return interact.ButtonMiddle
	default:
		return interact.ButtonNone
	}
}
