package panels

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/zappabad/candleview/internal/chart"
	"github.com/zappabad/candleview/tui/canvas"
)

func TestChartPanelSizesCanvas(t *testing.T) {
	cv := canvas.New(0, 0)
	p := NewChartPanel("EURUSD", cv)

	p.SetSize(40, 12)

	assert.Equal(t, 36.0, cv.Width())
	assert.Equal(t, 9.0, cv.Height())

	view := p.View()
	assert.Equal(t, 12, lipgloss.Height(view))
	assert.Equal(t, 40, lipgloss.Width(view))
}

func TestChartPanelShowsCanvasAndStatus(t *testing.T) {
	cv := canvas.New(0, 0)
	p := NewChartPanel("EURUSD", cv)
	p.SetSize(40, 8)
	cv.DrawText("hello", chart.Point{X: 0, Y: 0}, chart.LabelStyle{})
	p.SetStatus("zoom 1", true)

	view := p.View()
	assert.Contains(t, view, "EURUSD")
	assert.Contains(t, view, "zoom 1")
	assert.Contains(t, view, "dragging")
	assert.Contains(t, view, "hello")
}

func TestChartPanelEmptyPlaceholder(t *testing.T) {
	p := NewChartPanel("none", canvas.New(0, 0))
	p.SetSize(40, 8)
	p.SetEmpty(true)

	assert.Contains(t, p.View(), "No bars to display")
}

func TestChartPanelFocus(t *testing.T) {
	p := NewChartPanel("EURUSD", canvas.New(0, 0))
	assert.True(t, p.Focused())

	p, _ = p.Update(tea.BlurMsg{})
	assert.False(t, p.Focused())
	p, _ = p.Update(tea.FocusMsg{})
	assert.True(t, p.Focused())
}

func TestChartPanelTooSmall(t *testing.T) {
	p := NewChartPanel("EURUSD", canvas.New(0, 0))
	p.SetSize(3, 2)

	assert.Empty(t, p.View())
}
