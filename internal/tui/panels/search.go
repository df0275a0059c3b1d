package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/keys"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/store"
)

// SearchLimit caps the number of project search hits.
const SearchLimit = 200

// SearchResultsMsg carries the outcome of a project search.
type SearchResultsMsg struct {
	Query   string
	Matches []source.Match
	Err     error
}

// MatchChosenMsg is emitted when the user opens a project search hit.
type MatchChosenMsg struct {
	SourceID string
	Line     int
}

// SearchCmd runs a project search off the UI goroutine.
func SearchCmd(root string, files []source.File, query string) tea.Cmd {
	return func() tea.Msg {
		matches, err := source.Search(root, files, query, SearchLimit)
		return SearchResultsMsg{Query: query, Matches: matches, Err: err}
	}
}

// ProjectSearch is the project-wide search hosted at the top of the editor.
// It binds its own shortcut through the injected registry; the handler
// handle is shared by every copy of the value, so Bind and Release pair up
// across bubbletea's model copies.
type ProjectSearch struct {
	input   textinput.Model
	combo   string
	toggle  *keys.HandlerFunc
	query   string // query the current results belong to
	results []source.Match
	cursor  int
	running bool
	err     error
	width   int
	height  int
}

// NewProjectSearch creates a project search whose shortcut (combo) toggles
// the "project" overlay in st.
func NewProjectSearch(st *store.Store, combo string) ProjectSearch {
	ti := textinput.New()
	ti.Prompt = "search: "
	ti.Placeholder = "text in project"
	ti.CharLimit = 256

	toggle := keys.Func(func(_ string, ev *keys.Event) {
		ev.PreventDefault()
		ev.StopPropagation()
		if st.ActiveSearch() == store.SearchProject {
			st.Dispatch(store.CloseActiveSearch())
			return
		}
		st.Dispatch(store.SetActiveSearch(store.SearchProject))
	})
	return ProjectSearch{input: ti, combo: combo, toggle: toggle, width: 40, height: 8}
}

// Bind registers the search shortcut with reg.
func (s ProjectSearch) Bind(reg *keys.Registry) { reg.On(s.combo, s.toggle) }

// Release removes the search shortcut from reg.
func (s ProjectSearch) Release(reg *keys.Registry) { reg.Off(s.combo, s.toggle) }

// Open focuses the query input, keeping the last query and results.
func (s ProjectSearch) Open() (ProjectSearch, tea.Cmd) {
	cmd := s.input.Focus()
	return s, cmd
}

// Close blurs the query input.
func (s ProjectSearch) Close() ProjectSearch {
	s.input.Blur()
	return s
}

// Focused reports whether the query input has focus.
func (s ProjectSearch) Focused() bool { return s.input.Focused() }

// Query returns the text in the query input.
func (s ProjectSearch) Query() string { return s.input.Value() }

// Results returns the current hits.
func (s ProjectSearch) Results() []source.Match { return s.results }

// Running reports whether a search is in flight.
func (s ProjectSearch) Running() bool { return s.running }

// SetSize sets the area the search occupies.
func (s ProjectSearch) SetSize(w, h int) ProjectSearch {
	s.width = w
	s.height = h
	s.input.Width = max(w-len(s.input.Prompt)-1, 1)
	return s
}

// SetResults records msg when it belongs to the current query.
func (s ProjectSearch) SetResults(msg SearchResultsMsg) ProjectSearch {
	if strings.TrimSpace(msg.Query) != strings.TrimSpace(s.input.Value()) {
		return s
	}
	s.running = false
	s.query = msg.Query
	s.results = msg.Matches
	s.err = msg.Err
	s.cursor = 0
	return s
}

// Update handles keys while the search is open. Enter runs the query, or
// opens the highlighted hit when the results are for the current query.
// search builds the command that runs a query.
func (s ProjectSearch) Update(msg tea.Msg, search func(query string) tea.Cmd) (ProjectSearch, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up":
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil
		case "down":
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
			return s, nil
		case "enter":
			q := strings.TrimSpace(s.input.Value())
			if q == "" {
				return s, nil
			}
			if q == strings.TrimSpace(s.query) && len(s.results) > 0 {
				hit := s.results[s.cursor]
				chosen := MatchChosenMsg{SourceID: hit.File.ID, Line: hit.Line}
				return s, func() tea.Msg { return chosen }
			}
			s.running = true
			return s, search(s.input.Value())
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the query line and as many hits as fit.
func (s ProjectSearch) View() string {
	lines := []string{s.input.View()}
	rows := max(s.height-2, 1)

	switch {
	case s.running:
		lines = append(lines, modalDimStyle.Render("searching…"))
	case s.err != nil:
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render(s.err.Error()))
	case s.query != "" && len(s.results) == 0:
		lines = append(lines, modalDimStyle.Render("No matches"))
	case len(s.results) > 0:
		lines = append(lines, modalDimStyle.Render(fmt.Sprintf("%d matches", len(s.results))))
		start := 0
		if s.cursor >= rows-1 {
			start = s.cursor - rows + 2
		}
		for i := start; i < len(s.results) && i < start+rows-1; i++ {
			hit := s.results[i]
			row := fmt.Sprintf("%s:%d  %s", hit.File.ID, hit.Line, hit.Text)
			if i == s.cursor {
				row = modalPickStyle.Render("> " + row)
			} else {
				row = "  " + row
			}
			lines = append(lines, row)
		}
	}
	return lipgloss.NewStyle().
		Width(s.width).MaxWidth(s.width).MaxHeight(s.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
