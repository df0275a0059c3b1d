package keys

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/key"
)

// Shortcut names looked up in the localized-string table.
const (
	SymbolSearch    = "symbolSearch.search.key2"
	ProjectSearch   = "projectSearch.search.key"
	Escape          = "escape.key"
	ToggleStartPane = "toggleStartPane.key"
	ToggleEndPane   = "toggleEndPane.key"
	GrowStartPane   = "resize.start.grow.key"
	ShrinkStartPane = "resize.start.shrink.key"
	GrowEndPane     = "resize.end.grow.key"
	ShrinkEndPane   = "resize.end.shrink.key"
	NextPanel       = "focus.next.key"
	PrevPanel       = "focus.prev.key"
	Quit            = "quit.key"
)

// defaultTable holds the built-in combos for every known shortcut name.
var defaultTable = map[string]string{
	SymbolSearch:    "ctrl+o",
	ProjectSearch:   "ctrl+f",
	Escape:          "esc",
	ToggleStartPane: "ctrl+b",
	ToggleEndPane:   "ctrl+n",
	GrowStartPane:   "ctrl+right",
	ShrinkStartPane: "ctrl+left",
	GrowEndPane:     "ctrl+up",
	ShrinkEndPane:   "ctrl+down",
	NextPanel:       "tab",
	PrevPanel:       "shift+tab",
	Quit:            "ctrl+c",
}

// Table resolves shortcut names to combo strings. Combo strings are opaque
// to the registry's callers; overrides come from configuration.
type Table struct {
	overrides map[string]string
}

// NewTable creates a Table whose overrides take precedence over the
// built-in combos. Empty override values are ignored.
func NewTable(overrides map[string]string) Table {
	o := make(map[string]string, len(overrides))
	for name, combo := range overrides {
		if combo != "" {
			o[name] = combo
		}
	}
	return Table{overrides: o}
}

// Get returns the combo for name, or "" when the name is unknown.
func (t Table) Get(name string) string {
	if combo, ok := t.overrides[name]; ok {
		return combo
	}
	return defaultTable[name]
}

// Binding returns a help-enabled key binding for name.
func (t Table) Binding(name, help string) key.Binding {
	combo := Normalize(t.Get(name))
	return key.NewBinding(
		key.WithKeys(splitCombo(combo)...),
		key.WithHelp(combo, help),
	)
}

// Known reports whether name is a built-in shortcut name.
func Known(name string) bool {
	_, ok := defaultTable[name]
	return ok
}

// Names returns all built-in shortcut names, sorted.
func Names() []string {
	names := make([]string, 0, len(defaultTable))
	for name := range defaultTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the built-in name closest to an unknown name, for "did you
// mean" hints. It returns "" when nothing is close.
func Suggest(name string) string {
	best, bestDist := "", len(name)/3+1
	for _, known := range Names() {
		if d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(known)); d < bestDist {
			best, bestDist = known, d
		}
	}
	return best
}
