package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/zappabad/candleview/internal/chart"
	"github.com/zappabad/candleview/internal/dataset"
	"github.com/zappabad/candleview/internal/interact"
	"github.com/zappabad/candleview/tui/canvas"
	"github.com/zappabad/candleview/tui/panels"
	"github.com/zappabad/candleview/tui/styles"
)

// Model is the main TUI application model.
type Model struct {
	chart      chart.Chart
	controller *interact.Controller
	canvas     *canvas.Canvas
	panel      *panels.ChartPanel
	dispatcher *Dispatcher
	frames     *FrameScheduler

	keys keyMap
	help help.Model

	logger *zap.Logger

	// Window dimensions
	width  int
	height int

	ready bool
}

// NewModel creates a chart model over ds. The chart is drawn once the
// first window size is known.
func NewModel(title string, kind chart.Kind, ds *dataset.Dataset, opts chart.Options, frameInterval time.Duration, logger *zap.Logger) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cv := canvas.New(0, 0)
	c, err := chart.New(kind, cv, ds, opts, logger)
	if err != nil {
		return nil, err
	}
	panel := panels.NewChartPanel(title, cv)

	frames := NewFrameScheduler(frameInterval)
	dispatcher := NewDispatcher(panel.Origin())
	controller := interact.NewController(c, frames, logger)
	if err := controller.Attach(dispatcher); err != nil {
		return nil, err
	}

	h := help.New()
	h.Styles.ShortKey = styles.StatusBarKeyStyle
	h.Styles.ShortDesc = styles.StatusBarDescStyle
	h.Styles.FullKey = styles.StatusBarKeyStyle
	h.Styles.FullDesc = styles.StatusBarDescStyle

	return &Model{
		chart:      c,
		controller: controller,
		canvas:     cv,
		panel:      panel,
		dispatcher: dispatcher,
		frames:     frames,
		keys:       defaultKeyMap(),
		help:       h,
		logger:     logger,
	}, nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.panel.Init(),
		tea.SetWindowTitle("candleview"),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.controller.Detach()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
		case key.Matches(msg, m.keys.Left):
			m.controller.PanBy(-m.panStep())
		case key.Matches(msg, m.keys.Right):
			m.controller.PanBy(m.panStep())
		case key.Matches(msg, m.keys.ZoomIn):
			m.controller.Zoom(true)
		case key.Matches(msg, m.keys.ZoomOut):
			m.controller.Zoom(false)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = max(msg.Width-2, 0)
		m.layout()

	case frameMsg:
		msg.run()

	default:
		m.panel, _ = m.panel.Update(msg)
		m.dispatcher.Dispatch(msg)
	}

	return m, tea.Batch(m.frames.Drain()...)
}

// layout gives the panel everything above the help line.
func (m *Model) layout() {
	if m.width == 0 && m.height == 0 {
		return
	}
	rows := m.height - lipgloss.Height(m.helpView())
	m.panel.SetSize(m.width, max(rows, 0))

	if !m.ready {
		m.ready = true
		m.report(m.chart.Initialize())
		return
	}
	m.dispatcher.Resize()
}

// panStep is the number of bars a key press pans by.
func (m *Model) panStep() int {
	return max(m.chart.Engine().State().VisibleCount/10, 1)
}

func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, chart.ErrNoVisibleData):
		m.logger.Debug("initial render empty", zap.Error(err))
	default:
		m.logger.Warn("initial render failed", zap.Error(err))
	}
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	total := m.chart.Engine().Total()
	m.panel.SetStatus(m.status(), m.controller.Dragging())
	m.panel.SetEmpty(total == 0)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.panel.View(),
		m.helpView(),
	)
}

// helpView renders the key help as the status bar.
func (m *Model) helpView() string {
	return styles.StatusBarStyle.Width(m.width).Render(m.help.View(m.keys))
}

func (m *Model) status() string {
	s := m.chart.Engine().State()
	total := m.chart.Engine().Total()

	window := "no data"
	if total > 0 {
		window = fmt.Sprintf("bars %d-%d of %d", s.ItemsOffset+1, min(s.ItemsOffset+s.VisibleCount, total), total)
	}
	return fmt.Sprintf("%s │ zoom %g │ %s", m.chart.Kind(), s.ZoomLevel, window)
}
