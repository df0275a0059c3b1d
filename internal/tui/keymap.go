package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/keys"
)

// KeyMap holds the root model's own bindings, resolved from the shortcut
// table. Symbol search and escape belong to the Coordinator and project
// search to its panel; they appear here only for help rendering.
type KeyMap struct {
	NextPanel   key.Binding
	PrevPanel   key.Binding
	ToggleStart key.Binding
	ToggleEnd   key.Binding
	GrowStart   key.Binding
	ShrinkStart key.Binding
	GrowEnd     key.Binding
	ShrinkEnd   key.Binding
	Quit        key.Binding

	SymbolSearch  key.Binding
	ProjectSearch key.Binding
	Escape        key.Binding
}

// NewKeyMap builds the key map from t.
func NewKeyMap(t keys.Table) KeyMap {
	return KeyMap{
		NextPanel:     t.Binding(keys.NextPanel, "next panel"),
		PrevPanel:     t.Binding(keys.PrevPanel, "previous panel"),
		ToggleStart:   t.Binding(keys.ToggleStartPane, "toggle sources"),
		ToggleEnd:     t.Binding(keys.ToggleEndPane, "toggle secondary"),
		GrowStart:     t.Binding(keys.GrowStartPane, "grow outer"),
		ShrinkStart:   t.Binding(keys.ShrinkStartPane, "shrink outer"),
		GrowEnd:       t.Binding(keys.GrowEndPane, "grow inner"),
		ShrinkEnd:     t.Binding(keys.ShrinkEndPane, "shrink inner"),
		Quit:          t.Binding(keys.Quit, "quit"),
		SymbolSearch:  t.Binding(keys.SymbolSearch, "go to symbol"),
		ProjectSearch: t.Binding(keys.ProjectSearch, "search project"),
		Escape:        t.Binding(keys.Escape, "close"),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SymbolSearch, k.ProjectSearch, k.NextPanel, k.Quit}
}

// FullHelp returns the bindings listed in the welcome box.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SymbolSearch, k.ProjectSearch, k.Escape},
		{k.NextPanel, k.PrevPanel, k.ToggleStart, k.ToggleEnd},
		{k.GrowStart, k.ShrinkStart, k.GrowEnd, k.ShrinkEnd, k.Quit},
	}
}

// flatten joins help columns into one list.
func flatten(cols [][]key.Binding) []key.Binding {
	var out []key.Binding
	for _, c := range cols {
		out = append(out, c...)
	}
	return out
}
