package panels

import (
	"path"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/tui/components"
)

// ToggleBreakpointMsg asks for a breakpoint to be toggled.
type ToggleBreakpointMsg struct {
	SourceID string
	Line     int
}

var (
	editorDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	editorErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	ruleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

// EditorPanel is the editor region. It always hosts the tab strip of opened
// sources and the project search container; below them it shows either the
// selected source or, when nothing is selected, the welcome box.
type EditorPanel struct {
	tabbar  components.TabBar
	view    components.LineView
	search  ProjectSearch
	welcome WelcomeProps

	opened  []string
	current string
	content string
	loaded  bool
	loadErr error
	marks   []int

	searchOpen bool
	width      int
	height     int
}

// NewEditorPanel creates an editor with no source selected.
func NewEditorPanel(search ProjectSearch, w, h int) EditorPanel {
	e := EditorPanel{
		tabbar: components.NewTabBar(nil),
		view:   components.NewLineView(w, h).ShowCursor(true),
		search: search,
	}
	return e.SetSize(w, h)
}

// Current returns the ID of the source shown, "" when none.
func (e EditorPanel) Current() string { return e.current }

// Opened returns the IDs of the opened tabs in order.
func (e EditorPanel) Opened() []string { return e.opened }

// ShowingWelcome reports whether the welcome box is rendered.
func (e EditorPanel) ShowingWelcome() bool { return e.current == "" }

// Cursor returns the 1-based cursor line of the shown source.
func (e EditorPanel) Cursor() int { return e.view.Cursor() }

// SetWelcome sets what the welcome box shows.
func (e EditorPanel) SetWelcome(props WelcomeProps) EditorPanel {
	e.welcome = props
	return e
}

// Open shows source id, adding a tab for it when needed. An empty id shows
// the welcome box and keeps the tabs.
func (e EditorPanel) Open(id string) EditorPanel {
	if id == e.current {
		return e
	}
	e.current = id
	e.content = ""
	e.loaded = false
	e.loadErr = nil
	e.marks = nil
	e.view = e.view.SetLines(nil)
	if id != "" && slices.Index(e.opened, id) < 0 {
		e.opened = append(e.opened, id)
	}
	return e.syncTabs()
}

// Retain drops tabs whose sources are no longer known.
func (e EditorPanel) Retain(known func(id string) bool) EditorPanel {
	kept := e.opened[:0:0]
	for _, id := range e.opened {
		if known(id) {
			kept = append(kept, id)
		}
	}
	e.opened = kept
	return e.syncTabs()
}

// ShowContent sets the text of source id. Content for any other source is
// ignored, so a slow load cannot overwrite a newer selection.
func (e EditorPanel) ShowContent(id, content string, err error) EditorPanel {
	if id != e.current {
		return e
	}
	e.content = content
	e.loadErr = err
	e.loaded = true
	return e.render()
}

// Loaded reports whether the current source's content has arrived.
func (e EditorPanel) Loaded() bool { return e.loaded }

// SetBreakpoints sets the marked lines of the current source.
func (e EditorPanel) SetBreakpoints(lines []int) EditorPanel {
	if slices.Equal(e.marks, lines) {
		return e
	}
	e.marks = append([]int(nil), lines...)
	return e.render()
}

// Goto moves the cursor to line n of the current source.
func (e EditorPanel) Goto(n int) EditorPanel {
	e.view = e.view.Goto(n)
	return e
}

// OpenSearch shows the project search container and focuses it.
func (e EditorPanel) OpenSearch() (EditorPanel, tea.Cmd) {
	var cmd tea.Cmd
	e.search, cmd = e.search.Open()
	e.searchOpen = true
	return e.SetSize(e.width, e.height), cmd
}

// CloseSearch hides the project search container.
func (e EditorPanel) CloseSearch() EditorPanel {
	e.search = e.search.Close()
	e.searchOpen = false
	return e.SetSize(e.width, e.height)
}

// SearchOpen reports whether the project search container is shown.
func (e EditorPanel) SearchOpen() bool { return e.searchOpen }

// Search returns the hosted project search.
func (e EditorPanel) Search() ProjectSearch { return e.search }

// UpdateSearch forwards msg to the project search.
func (e EditorPanel) UpdateSearch(msg tea.Msg, run func(query string) tea.Cmd) (EditorPanel, tea.Cmd) {
	var cmd tea.Cmd
	e.search, cmd = e.search.Update(msg, run)
	return e, cmd
}

// SetSearchResults hands finished search results to the project search.
func (e EditorPanel) SetSearchResults(msg SearchResultsMsg) EditorPanel {
	e.search = e.search.SetResults(msg)
	return e
}

func (e EditorPanel) searchHeight() int {
	if !e.searchOpen {
		return 0
	}
	return min(max(e.height/3, 3), 10)
}

func (e EditorPanel) contentHeight() int {
	h := e.height - 1 - e.searchHeight()
	if e.searchOpen {
		h-- // rule below the search
	}
	return max(h, 1)
}

// SetSize resizes the editor.
func (e EditorPanel) SetSize(w, h int) EditorPanel {
	e.width = w
	e.height = h
	e.tabbar = e.tabbar.SetWidth(w)
	e.search = e.search.SetSize(w, e.searchHeight())
	e.view = e.view.SetSize(w, e.contentHeight())
	return e
}

func (e EditorPanel) render() EditorPanel {
	marks := make(map[int]bool, len(e.marks))
	for _, l := range e.marks {
		marks[l] = true
	}
	e.view = e.view.SetLines(components.Gutter(e.content, marks))
	return e
}

func (e EditorPanel) syncTabs() EditorPanel {
	labels := make([]string, len(e.opened))
	for i, id := range e.opened {
		labels[i] = path.Base(id)
	}
	e.tabbar = e.tabbar.SetTabs(labels, slices.Index(e.opened, e.current))
	return e
}

// Update handles keys while the editor has focus and the search is closed.
func (e EditorPanel) Update(msg tea.Msg) (EditorPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || e.current == "" {
		return e, nil
	}
	switch keyMsg.String() {
	case "b", "enter":
		if line := e.view.Cursor(); line > 0 {
			req := ToggleBreakpointMsg{SourceID: e.current, Line: line}
			return e, func() tea.Msg { return req }
		}
		return e, nil
	case "]":
		return e, e.selectTab(1)
	case "[":
		return e, e.selectTab(-1)
	case "x":
		return e.closeTab()
	}
	var cmd tea.Cmd
	e.view, cmd = e.view.Update(msg)
	return e, cmd
}

func (e EditorPanel) selectTab(delta int) tea.Cmd {
	if len(e.opened) < 2 {
		return nil
	}
	i := slices.Index(e.opened, e.current)
	next := e.opened[(i+delta+len(e.opened))%len(e.opened)]
	return func() tea.Msg { return SourceSelectedMsg{ID: next} }
}

// closeTab removes the current tab and asks to select its neighbour, or
// nothing when it was the last one.
func (e EditorPanel) closeTab() (EditorPanel, tea.Cmd) {
	i := slices.Index(e.opened, e.current)
	if i < 0 {
		return e, nil
	}
	e.opened = append(e.opened[:i:i], e.opened[i+1:]...)
	next := ""
	if len(e.opened) > 0 {
		next = e.opened[min(i, len(e.opened)-1)]
	}
	e = e.syncTabs()
	return e, func() tea.Msg { return SourceSelectedMsg{ID: next} }
}

// View renders the editor.
func (e EditorPanel) View() string {
	tabs := e.tabbar.View()
	if tabs == "" {
		tabs = editorDimStyle.Render("no open sources")
	}
	parts := []string{tabs}
	if e.searchOpen {
		parts = append(parts, e.search.View(), ruleStyle.Render(strings.Repeat("─", max(e.width, 0))))
	}

	h := e.contentHeight()
	var body string
	switch {
	case e.current == "":
		body = RenderWelcome(e.welcome, e.width, h)
	case !e.loaded:
		body = editorDimStyle.Width(e.width).Height(h).Render("loading " + e.current + "…")
	case e.loadErr != nil:
		body = editorErrStyle.Width(e.width).Height(h).Render(e.loadErr.Error())
	case e.view.Lines() == 0:
		body = editorDimStyle.Width(e.width).Height(h).Render("(empty)")
	default:
		body = e.view.View()
	}
	parts = append(parts, body)
	return lipgloss.NewStyle().MaxWidth(e.width).MaxHeight(e.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
