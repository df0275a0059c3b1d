package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
)

// storeChangedMsg signals that the store's state changed.
type storeChangedMsg struct{}

// sourceLoadedMsg carries the content and symbols of a source.
type sourceLoadedMsg struct {
	ID      string
	Content string
	Symbols []source.Symbol
	Err     error
}

// waitForChange blocks until the store signals a change. It yields no
// message once the subscription is closed.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// loadSource reads f from disk and extracts its symbols.
func loadSource(root string, f source.File) tea.Cmd {
	return func() tea.Msg {
		content, err := source.Read(root, f)
		if err != nil {
			return sourceLoadedMsg{ID: f.ID, Err: err}
		}
		return sourceLoadedMsg{ID: f.ID, Content: content, Symbols: source.Symbols(content, f.Ext)}
	}
}
