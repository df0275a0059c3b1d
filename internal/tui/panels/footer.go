package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// FooterProps holds all data needed to render the footer bar.
type FooterProps struct {
	Focus    string // "sources", "editor", "secondary", or an overlay name
	Status   string
	Bindings []key.Binding
}

// RenderFooter renders the context-sensitive footer bar.
// Left side: status. Right side: panel hints and the global short help.
func RenderFooter(props FooterProps, width int) string {
	left := props.Status
	if left == "" {
		left = "—"
	}

	h := help.New()
	right := panelHints(props.Focus)
	if global := h.ShortHelpView(props.Bindings); global != "" {
		right += "  " + global
	}

	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 2 {
		gap = 2
	}
	line := left + strings.Repeat(" ", gap) + right
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	return footerStyle.Width(width).Render(line)
}

// panelHints returns the keybinding hints for a given focus.
func panelHints(focus string) string {
	switch focus {
	case "sources":
		return "j/k:navigate  /:filter  enter:open"
	case "editor":
		return "j/k:line  b:breakpoint  [/]:tab  x:close"
	case "secondary":
		return "[/]:tab  j/k:navigate  enter:go to"
	case "symbol":
		return "type to filter  ↑/↓:choose  enter:jump  esc:close"
	case "project":
		return "enter:search/open  ↑/↓:choose  esc:close"
	default:
		return ""
	}
}
