package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
)

// SymbolChosenMsg is emitted when the user picks a symbol in the modal.
type SymbolChosenMsg struct {
	SourceID string
	Symbol   source.Symbol
}

const symbolModalRows = 10

var (
	modalBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	modalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	modalDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	modalPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
)

// symbolNames adapts a symbol slice to fuzzy.Source.
type symbolNames []source.Symbol

func (s symbolNames) String(i int) string { return s[i].Name }
func (s symbolNames) Len() int            { return len(s) }

// SymbolModal is the go-to-symbol overlay of the selected source.
type SymbolModal struct {
	input    textinput.Model
	sourceID string
	symbols  []source.Symbol
	matches  []source.Symbol
	cursor   int
	width    int
}

// NewSymbolModal creates a closed, empty modal.
func NewSymbolModal() SymbolModal {
	ti := textinput.New()
	ti.Prompt = "@ "
	ti.Placeholder = "symbol"
	ti.CharLimit = 128
	return SymbolModal{input: ti, width: 60}
}

// Open resets the modal for the symbols of sourceID and focuses the input.
func (m SymbolModal) Open(sourceID string, symbols []source.Symbol) (SymbolModal, tea.Cmd) {
	m.sourceID = sourceID
	m.symbols = append([]source.Symbol(nil), symbols...)
	m.input.Reset()
	cmd := m.input.Focus()
	return m.refilter(), cmd
}

// SetSymbols replaces the symbol list of an open modal, keeping the query.
func (m SymbolModal) SetSymbols(symbols []source.Symbol) SymbolModal {
	m.symbols = append([]source.Symbol(nil), symbols...)
	return m.refilter()
}

// Close blurs the input.
func (m SymbolModal) Close() SymbolModal {
	m.input.Blur()
	return m
}

// SourceID returns the source the modal was opened for.
func (m SymbolModal) SourceID() string { return m.sourceID }

// Matches returns the symbols that pass the current query, best first.
func (m SymbolModal) Matches() []source.Symbol { return m.matches }

// SetWidth sets the outer width of the modal box.
func (m SymbolModal) SetWidth(w int) SymbolModal {
	m.width = w
	m.input.Width = max(w-8, 1)
	return m
}

func (m SymbolModal) refilter() SymbolModal {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.matches = m.symbols
	} else {
		found := fuzzy.FindFrom(query, symbolNames(m.symbols))
		m.matches = make([]source.Symbol, len(found))
		for i, f := range found {
			m.matches[i] = m.symbols[f.Index]
		}
	}
	m.cursor = 0
	return m
}

// Update handles keys while the modal is open. Escape is not handled here:
// closing goes through the shortcut registry.
func (m SymbolModal) Update(msg tea.Msg) (SymbolModal, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			chosen := SymbolChosenMsg{SourceID: m.sourceID, Symbol: m.matches[m.cursor]}
			return m, func() tea.Msg { return chosen }
		}
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m = m.refilter()
	}
	return m, cmd
}

// View renders the modal box.
func (m SymbolModal) View() string {
	inner := max(m.width-4, 10)
	lines := []string{
		modalTitleStyle.Render("Go to symbol"),
		m.input.View(),
	}
	if len(m.matches) == 0 {
		lines = append(lines, modalDimStyle.Render("No symbols"))
	}
	start := 0
	if m.cursor >= symbolModalRows {
		start = m.cursor - symbolModalRows + 1
	}
	for i := start; i < len(m.matches) && i < start+symbolModalRows; i++ {
		s := m.matches[i]
		row := fmt.Sprintf("%-6s %s", s.Kind, s.Name)
		num := fmt.Sprintf(":%d", s.Line)
		pad := inner - lipgloss.Width(row) - len(num) - 2
		if pad < 1 {
			pad = 1
		}
		row = row + strings.Repeat(" ", pad) + modalDimStyle.Render(num)
		if i == m.cursor {
			lines = append(lines, modalPickStyle.Render("> ")+row)
		} else {
			lines = append(lines, "  "+row)
		}
	}
	return modalBoxStyle.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
