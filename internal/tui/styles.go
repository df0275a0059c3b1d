// Package tui provides the bubbletea terminal shell of the debugger: the root
// model, the Coordinator that keeps layout orientation and search overlays in
// step with shared state, and the rendering glue around the panels.
package tui

import "github.com/charmbracelet/lipgloss"

// defaultAccentColor is the default accent color (indigo).
const defaultAccentColor = "#7D56F4"

var (
	colorWhite = lipgloss.Color("#FAFAFA")
	colorGray  = lipgloss.Color("#888888")
	colorDark  = lipgloss.Color("#444444")
)

var (
	splitterStyle = lipgloss.NewStyle().
			Foreground(colorDark)

	tooSmallStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// splitterGlyph returns the divider character. Vertical dividers separate
// columns.
func splitterGlyph(vertical bool) string {
	if vertical {
		return "│"
	}
	return "─"
}
