// Package components provides reusable widgets for the debugger shell panels.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// tabActiveStyle renders the active tab with bold accent-colored text.
var tabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

// tabInactiveStyle renders inactive tabs in a dimmed style.
var tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// TabBar is a stateless tab strip. The active tab is highlighted with the
// accent color.
type TabBar struct {
	tabs   []string
	active int
	width  int
}

// NewTabBar creates a TabBar with the given tab titles. The first tab is active.
func NewTabBar(tabs []string) TabBar {
	return TabBar{tabs: tabs}
}

// SetTabs replaces the tab titles and selects active, clamped to the range.
func (t TabBar) SetTabs(tabs []string, active int) TabBar {
	t.tabs = tabs
	return t.SetActive(active)
}

// SetActive selects the tab at index i, clamped to the available tabs.
func (t TabBar) SetActive(i int) TabBar {
	switch {
	case len(t.tabs) == 0 || i < 0:
		i = 0
	case i >= len(t.tabs):
		i = len(t.tabs) - 1
	}
	t.active = i
	return t
}

// Active returns the index of the currently active tab.
func (t TabBar) Active() int {
	return t.active
}

// Len returns the number of tabs.
func (t TabBar) Len() int {
	return len(t.tabs)
}

// Next returns a TabBar with the next tab active (wraps around).
func (t TabBar) Next() TabBar {
	if len(t.tabs) == 0 {
		return t
	}
	t.active = (t.active + 1) % len(t.tabs)
	return t
}

// Prev returns a TabBar with the previous tab active (wraps around).
func (t TabBar) Prev() TabBar {
	if len(t.tabs) == 0 {
		return t
	}
	t.active = (t.active + len(t.tabs) - 1) % len(t.tabs)
	return t
}

// SetWidth returns a TabBar configured for the given render width.
func (t TabBar) SetWidth(w int) TabBar {
	t.width = w
	return t
}

// View renders the tab bar as a single line, truncated to the width.
func (t TabBar) View() string {
	if len(t.tabs) == 0 {
		return ""
	}

	parts := make([]string, len(t.tabs))
	for i, label := range t.tabs {
		if i == t.active {
			parts[i] = tabActiveStyle.Render(label)
		} else {
			parts[i] = tabInactiveStyle.Render(label)
		}
	}

	line := strings.Join(parts, "  │  ")
	if t.width > 0 {
		line = ansi.Truncate(line, t.width, "…")
	}
	return line
}
