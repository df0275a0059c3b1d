// Package panels provides the panel components of the debugger shell: the
// source list, the editor with its welcome box and project search, the
// secondary panes, the symbol modal, and the header and footer bars.
package panels

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderProps holds all data needed to render the header bar.
// Orientation and overlay are plain strings so this package does not import
// the parent tui package.
type HeaderProps struct {
	ProjectName string
	WorkDir     string
	Source      string // selected source ID, "" when none
	Orientation string // "horizontal" or "vertical"
	Overlay     string // active search overlay, "" when none
	Hidden      bool   // terminal lost focus
}

// AbbreviatePath returns a display-friendly path, replacing the home directory
// with "~" and converting backslashes to forward slashes.
func AbbreviatePath(path string) string {
	if path == "" {
		return ""
	}
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(path, home) {
		path = "~" + path[len(home):]
	}
	return strings.ReplaceAll(path, "\\", "/")
}

// RenderHeader renders the header bar. accentStyle is applied to the full
// header width.
func RenderHeader(props HeaderProps, width int, accentStyle lipgloss.Style) string {
	name := "dbgsh"
	if props.ProjectName != "" {
		name = props.ProjectName
	}

	parts := []string{"◆ " + name}
	if props.WorkDir != "" {
		parts = append(parts, "dir: "+AbbreviatePath(props.WorkDir))
	}

	src := props.Source
	if src == "" {
		src = "—"
	}
	parts = append(parts, "source: "+src)

	if props.Orientation != "" {
		parts = append(parts, "layout: "+props.Orientation)
	}
	if props.Overlay != "" {
		parts = append(parts, "search: "+props.Overlay)
	}
	if props.Hidden {
		parts = append(parts, "paused")
	}

	content := strings.Join(parts, "  │  ")
	return accentStyle.Width(width).MaxHeight(1).Render(content)
}
