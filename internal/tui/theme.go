package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds accent-color-derived styles.
type Theme struct {
	accentStyle     lipgloss.Style // header background
	dragStyle       lipgloss.Style // splitter being dragged
	borderFocused   lipgloss.Style // focused panel border
	borderUnfocused lipgloss.Style // unfocused panel border
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#7D56F4").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		accentStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		dragStyle: lipgloss.NewStyle().
			Foreground(c).
			Bold(true),
		borderFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
		borderUnfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray),
	}
}

// AccentHeaderStyle returns the style for the header bar.
func (t Theme) AccentHeaderStyle() lipgloss.Style {
	return t.accentStyle
}

// SplitterStyle returns the style of a divider, highlighted while dragged.
func (t Theme) SplitterStyle(dragging bool) lipgloss.Style {
	if dragging {
		return t.dragStyle
	}
	return splitterStyle
}

// PanelBorderStyle returns the appropriate border style for a panel based on
// whether it currently holds keyboard focus.
func (t Theme) PanelBorderStyle(focused bool) lipgloss.Style {
	if focused {
		return t.borderFocused
	}
	return t.borderUnfocused
}
