package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/tui/components"
)

// SecondaryTab identifies the active content tab in the secondary panel.
type SecondaryTab int

const (
	TabBreakpoints SecondaryTab = iota // breakpoints across all sources
	TabLayout                          // current layout geometry
)

var secondaryTabLabels = []string{"Breakpoints", "Layout"}

// BreakpointChosenMsg is emitted when the user opens a breakpoint.
type BreakpointChosenMsg struct {
	SourceID string
	Line     int
}

// BreakpointRow is one entry of the breakpoints tab.
type BreakpointRow struct {
	SourceID string
	Line     int
}

// LayoutInfo is what the layout tab reports.
type LayoutInfo struct {
	Orientation    string
	ViewportPx     int
	BreakpointPx   int
	Visible        bool
	StartPx        int // recorded start size, 0 when unset
	EndPx          int // recorded end size, 0 when unset
	StartCollapsed bool
	EndCollapsed   bool
	Splits         []string // one line per split
}

// SecondaryPanel hosts the breakpoints list and the layout report.
type SecondaryPanel struct {
	tabbar    components.TabBar
	list      components.LineView
	rows      []BreakpointRow
	info      LayoutInfo
	width     int
	height    int
	activeTab SecondaryTab
}

// NewSecondaryPanel creates a secondary panel.
func NewSecondaryPanel(w, h int) SecondaryPanel {
	p := SecondaryPanel{
		tabbar: components.NewTabBar(secondaryTabLabels),
		list:   components.NewLineView(w, 1).ShowCursor(true),
	}
	return p.SetSize(w, h)
}

// ActiveTab returns the tab shown.
func (p SecondaryPanel) ActiveTab() SecondaryTab { return p.activeTab }

// SetBreakpoints replaces the breakpoints list.
func (p SecondaryPanel) SetBreakpoints(rows []BreakpointRow) SecondaryPanel {
	p.rows = append([]BreakpointRow(nil), rows...)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("● %s:%d", r.SourceID, r.Line)
	}
	p.list = p.list.SetLines(lines)
	return p
}

// SetLayoutInfo replaces the layout report.
func (p SecondaryPanel) SetLayoutInfo(info LayoutInfo) SecondaryPanel {
	p.info = info
	return p
}

// SetSize resizes the panel.
func (p SecondaryPanel) SetSize(w, h int) SecondaryPanel {
	p.width = w
	p.height = h
	p.tabbar = p.tabbar.SetWidth(w)
	p.list = p.list.SetSize(w, max(h-1, 1))
	return p
}

// Update handles key messages for the secondary panel.
func (p SecondaryPanel) Update(msg tea.Msg) (SecondaryPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch keyMsg.String() {
	case "]":
		p.tabbar = p.tabbar.Next()
		p.activeTab = SecondaryTab(p.tabbar.Active())
		return p, nil
	case "[":
		p.tabbar = p.tabbar.Prev()
		p.activeTab = SecondaryTab(p.tabbar.Active())
		return p, nil
	}
	if p.activeTab != TabBreakpoints {
		return p, nil
	}
	if keyMsg.String() == "enter" {
		if i := p.list.Cursor() - 1; i >= 0 && i < len(p.rows) {
			r := p.rows[i]
			return p, func() tea.Msg { return BreakpointChosenMsg{SourceID: r.SourceID, Line: r.Line} }
		}
		return p, nil
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View renders the secondary panel: tab bar + active tab content.
func (p SecondaryPanel) View() string {
	contentH := max(p.height-1, 1)
	var content string
	switch p.activeTab {
	case TabBreakpoints:
		if len(p.rows) == 0 {
			content = lipgloss.NewStyle().
				Width(p.width).Height(contentH).
				Align(lipgloss.Center, lipgloss.Center).
				Foreground(lipgloss.Color("#888888")).
				Render("No breakpoints")
		} else {
			content = p.list.View()
		}
	case TabLayout:
		content = lipgloss.NewStyle().
			Width(p.width).Height(contentH).MaxHeight(contentH).
			Render(p.renderLayoutInfo())
	}
	return lipgloss.JoinVertical(lipgloss.Left, p.tabbar.View(), content)
}

func (p SecondaryPanel) renderLayoutInfo() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	i := p.info
	var sb strings.Builder
	row := func(label, value string) {
		sb.WriteString(dim.Render(fmt.Sprintf("%-12s", label)))
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	row("orientation", i.Orientation)
	row("viewport", fmt.Sprintf("%dpx (breakpoint %dpx)", i.ViewportPx, i.BreakpointPx))
	row("visible", fmt.Sprintf("%t", i.Visible))
	row("start size", sizeLabel(i.StartPx, i.StartCollapsed))
	row("end size", sizeLabel(i.EndPx, i.EndCollapsed))
	for _, s := range i.Splits {
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func sizeLabel(px int, collapsed bool) string {
	s := "initial"
	if px > 0 {
		s = fmt.Sprintf("%dpx", px)
	}
	if collapsed {
		s += " (collapsed)"
	}
	return s
}
