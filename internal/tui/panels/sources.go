package panels

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
)

// SourceSelectedMsg is emitted when the user asks to open a source.
type SourceSelectedMsg struct{ ID string }

// sourceItem wraps a source.File as a list.Item.
type sourceItem struct {
	f      source.File
	opened bool
}

func (s sourceItem) Title() string {
	mark := " "
	if s.opened {
		mark = "●"
	}
	return fmt.Sprintf("%s %s", mark, s.f.ID)
}

func (s sourceItem) Description() string { return s.f.Path }

func (s sourceItem) FilterValue() string { return s.f.ID }

// sourceDelegate renders compact single-line items.
type sourceDelegate struct{}

func (d sourceDelegate) Height() int                             { return 1 }
func (d sourceDelegate) Spacing() int                            { return 0 }
func (d sourceDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d sourceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	si, ok := item.(sourceItem)
	if !ok {
		return
	}
	s := si.Title()
	if index == m.Index() {
		s = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Render("> " + s)
	} else {
		s = "  " + s
	}
	_, _ = fmt.Fprint(w, s)
}

// fileNames adapts a file slice to fuzzy.Source.
type fileNames []source.File

func (f fileNames) String(i int) string { return f[i].ID }
func (f fileNames) Len() int            { return len(f) }

// SourcesPanel is the primary navigation panel: the project's source files,
// with a fuzzy filter opened by "/".
type SourcesPanel struct {
	list      list.Model
	all       []source.File
	shown     []source.File
	selected  string
	width     int
	height    int
	filter    textinput.Model
	filtering bool
}

// NewSourcesPanel creates a sources panel listing files.
func NewSourcesPanel(files []source.File, w, h int) SourcesPanel {
	l := list.New(nil, sourceDelegate{}, w, h)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.CharLimit = 64
	if w > 2 {
		ti.Width = w - 2
	}

	p := SourcesPanel{
		list:   l,
		width:  w,
		height: h,
		filter: ti,
	}
	return p.SetSources(files)
}

// SetSources replaces the listed files, keeping the current filter.
func (p SourcesPanel) SetSources(files []source.File) SourcesPanel {
	p.all = append([]source.File(nil), files...)
	return p.refilter()
}

// SetSelected marks the source currently open in the editor.
func (p SourcesPanel) SetSelected(id string) SourcesPanel {
	if p.selected == id {
		return p
	}
	p.selected = id
	return p.refilter()
}

// Highlighted returns the file under the cursor, or nil.
func (p SourcesPanel) Highlighted() *source.File {
	if item, ok := p.list.SelectedItem().(sourceItem); ok {
		f := item.f
		return &f
	}
	return nil
}

// Shown returns the number of files that pass the filter.
func (p SourcesPanel) Shown() int { return len(p.shown) }

// Filtering reports whether the filter input holds the keyboard.
func (p SourcesPanel) Filtering() bool { return p.filtering }

// SetSize resizes the panel.
func (p SourcesPanel) SetSize(w, h int) SourcesPanel {
	p.width = w
	p.height = h
	p.list.SetSize(w, p.listHeight())
	if w > 2 {
		p.filter.Width = w - 2
	}
	return p
}

func (p SourcesPanel) listHeight() int {
	if p.filtering || p.filter.Value() != "" {
		return max(p.height-1, 1)
	}
	return p.height
}

func (p SourcesPanel) refilter() SourcesPanel {
	query := strings.TrimSpace(p.filter.Value())
	if query == "" {
		p.shown = p.all
	} else {
		matches := fuzzy.FindFrom(query, fileNames(p.all))
		p.shown = make([]source.File, len(matches))
		for i, m := range matches {
			p.shown[i] = p.all[m.Index]
		}
	}
	items := make([]list.Item, len(p.shown))
	for i, f := range p.shown {
		items[i] = sourceItem{f: f, opened: f.ID == p.selected}
	}
	p.list.SetItems(items)
	p.list.SetSize(p.width, p.listHeight())
	if p.list.Index() >= len(items) {
		p.list.Select(max(len(items)-1, 0))
	}
	return p
}

// Update handles key messages for the panel.
func (p SourcesPanel) Update(msg tea.Msg) (SourcesPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.list, cmd = p.list.Update(msg)
		return p, cmd
	}

	if p.filtering {
		switch keyMsg.String() {
		case "esc":
			p.filtering = false
			p.filter.Blur()
			p.filter.Reset()
			return p.refilter(), nil
		case "enter", "down", "up":
			p.filtering = false
			p.filter.Blur()
			return p, nil
		}
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		return p.refilter(), cmd
	}

	var cmd tea.Cmd
	switch keyMsg.String() {
	case "j", "down":
		p.list, cmd = p.list.Update(tea.KeyMsg{Type: tea.KeyDown})
	case "k", "up":
		p.list, cmd = p.list.Update(tea.KeyMsg{Type: tea.KeyUp})
	case "enter":
		if f := p.Highlighted(); f != nil {
			id := f.ID
			return p, func() tea.Msg { return SourceSelectedMsg{ID: id} }
		}
	case "/":
		p.filtering = true
		cmd = p.filter.Focus()
		return p.refilter(), cmd
	default:
		p.list, cmd = p.list.Update(msg)
	}
	return p, cmd
}

// View renders the panel.
func (p SourcesPanel) View() string {
	if len(p.all) == 0 {
		return lipgloss.NewStyle().
			Width(p.width).Height(p.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color("#888888")).
			Render("No sources")
	}
	body := p.list.View()
	if len(p.shown) == 0 {
		body = lipgloss.NewStyle().
			Width(p.width).Height(p.listHeight()).
			Foreground(lipgloss.Color("#888888")).
			Render("No matches")
	}
	if p.filtering || p.filter.Value() != "" {
		return lipgloss.JoinVertical(lipgloss.Left, p.filter.View(), body)
	}
	return body
}
