package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Primary colors
	PrimaryColor = lipgloss.Color("#7C3AED") // Purple
	AccentColor  = lipgloss.Color("#F59E0B") // Amber

	// Candle colors
	UpColor   = lipgloss.Color("#10B981") // Green
	DownColor = lipgloss.Color("#EF4444") // Red

	// Background colors
	BackgroundColor  = lipgloss.Color("#1F2937")
	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#7C3AED")

	// Text colors
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	// Base panel style
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// Focused panel style
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	// Panel title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	// Muted placeholder text
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor)

	// Drag indicator shown in the title bar
	DraggingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// Helper function to render a title bar
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// Foreground returns a style for a color string coming from chart options.
// An empty color renders unstyled.
func Foreground(color string) lipgloss.Style {
	if color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
