package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/candleview/tui/canvas"
	"github.com/zappabad/candleview/tui/styles"
)

// Cells taken by the border, the horizontal padding and the title row.
const (
	chromeWidth  = 4
	chromeHeight = 3
)

// ChartPanel frames the chart canvas with a title and status line.
type ChartPanel struct {
	canvas *canvas.Canvas

	title    string
	status   string
	dragging bool
	empty    bool

	focused bool
	width   int
	height  int
}

// NewChartPanel creates a panel that displays cv.
func NewChartPanel(title string, cv *canvas.Canvas) *ChartPanel {
	return &ChartPanel{
		canvas:  cv,
		title:   title,
		focused: true,
	}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update tracks terminal focus.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	switch msg.(type) {
	case tea.FocusMsg:
		p.focused = true
	case tea.BlurMsg:
		p.focused = false
	}
	return p, nil
}

// SetSize sets the outer panel size and resizes the canvas to fit inside.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.canvas.Resize(max(width-chromeWidth, 0), max(height-chromeHeight, 0))
}

// SetFocus sets the focus state.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// Focused reports whether the panel is focused.
func (p *ChartPanel) Focused() bool {
	return p.focused
}

// SetStatus sets the text shown after the title.
func (p *ChartPanel) SetStatus(status string, dragging bool) {
	p.status = status
	p.dragging = dragging
}

// SetEmpty replaces the canvas with a placeholder.
func (p *ChartPanel) SetEmpty(empty bool) {
	p.empty = empty
}

// Origin returns the terminal cell of the canvas' top-left corner,
// relative to the panel.
func (p *ChartPanel) Origin() (x, y int) {
	return 2, 2
}

// View renders the panel.
func (p *ChartPanel) View() string {
	if p.width < chromeWidth || p.height < chromeHeight {
		return ""
	}

	var header strings.Builder
	header.WriteString(styles.RenderTitle(p.title, p.focused))
	header.WriteString(styles.StatusBarDescStyle.Render(p.status))
	if p.dragging {
		header.WriteString(" ")
		header.WriteString(styles.DraggingStyle.Render("◆ dragging"))
	}
	title := lipgloss.NewStyle().MaxWidth(p.width - chromeWidth).Render(header.String())

	body := p.canvas.Render()
	if p.empty {
		body = lipgloss.Place(p.width-chromeWidth, p.height-chromeHeight,
			lipgloss.Center, lipgloss.Center,
			styles.PlaceholderStyle.Render("No bars to display"))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	panel := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}
