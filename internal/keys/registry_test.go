package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func ctrl(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestRegistry_DispatchFiresAllHandlersForCombo(t *testing.T) {
	r := NewRegistry()
	var a, b int
	ha := Func(func(string, *Event) { a++ })
	hb := Func(func(string, *Event) { b++ })
	r.On("ctrl+o", ha)
	r.On("ctrl+o", hb)

	ev := r.Dispatch(ctrl(tea.KeyCtrlO))
	if a != 1 || b != 1 {
		t.Errorf("handlers fired a=%d b=%d, want 1 and 1", a, b)
	}
	if ev.Handled() != 2 {
		t.Errorf("Handled() = %d, want 2", ev.Handled())
	}
}

func TestRegistry_DuplicateBindingIsIdempotent(t *testing.T) {
	r := NewRegistry()
	calls := 0
	h := Func(func(string, *Event) { calls++ })
	r.On("ctrl+o", h)
	r.On("ctrl+o", h)
	r.On("CTRL+O", h) // different spelling, different combo entry is allowed

	if got := r.Bindings("ctrl+o"); got != 1 {
		t.Errorf("Bindings(ctrl+o) = %d, want 1", got)
	}
	r.Dispatch(ctrl(tea.KeyCtrlO))
	if calls != 1 {
		t.Errorf("handler fired %d times for one key, want 1", calls)
	}
}

func TestRegistry_OffRemovesOnlyExactPair(t *testing.T) {
	r := NewRegistry()
	var a, b int
	ha := Func(func(string, *Event) { a++ })
	hb := Func(func(string, *Event) { b++ })
	r.On("ctrl+o", ha)
	r.On("ctrl+o", hb)
	r.On("esc", ha)

	r.Off("ctrl+o", ha)

	r.Dispatch(ctrl(tea.KeyCtrlO))
	r.Dispatch(ctrl(tea.KeyEsc))
	if a != 1 {
		t.Errorf("ha fired %d times, want 1 (esc only)", a)
	}
	if b != 1 {
		t.Errorf("hb fired %d times, want 1", b)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_OffUnknownIsHarmless(t *testing.T) {
	r := NewRegistry()
	h := Func(func(string, *Event) {})
	r.Off("ctrl+x", h)
	r.On("ctrl+x", h)
	r.Off("ctrl+x", h)
	r.Off("ctrl+x", h)
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_EscapeAliases(t *testing.T) {
	r := NewRegistry()
	calls := 0
	h := Func(func(string, *Event) { calls++ })
	r.On("Escape", h)
	r.On("esc", h)
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (aliases share an entry)", r.Len())
	}
	r.Dispatch(ctrl(tea.KeyEsc))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	r.Off("escape", h)
	if r.Len() != 0 {
		t.Errorf("Len() = %d after Off via alias, want 0", r.Len())
	}
}

func TestRegistry_NoMatchLeavesEventUntouched(t *testing.T) {
	r := NewRegistry()
	r.On("ctrl+o", Func(func(_ string, ev *Event) { ev.PreventDefault() }))
	ev := r.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if ev.Handled() != 0 || ev.Consumed() {
		t.Errorf("unmatched key: handled=%d consumed=%v", ev.Handled(), ev.Consumed())
	}
}

func TestRegistry_EventSuppression(t *testing.T) {
	r := NewRegistry()
	r.On("ctrl+o", Func(func(_ string, ev *Event) {
		ev.PreventDefault()
		ev.StopPropagation()
	}))
	ev := r.Dispatch(ctrl(tea.KeyCtrlO))
	if !ev.DefaultPrevented() || !ev.PropagationStopped() || !ev.Consumed() {
		t.Errorf("suppression flags not recorded: %+v", ev)
	}
}

func TestRegistry_HandlerMayUnbindItself(t *testing.T) {
	r := NewRegistry()
	var h *HandlerFunc
	calls := 0
	h = Func(func(combo string, _ *Event) {
		calls++
		r.Off(combo, h)
	})
	r.On("ctrl+o", h)
	r.Dispatch(ctrl(tea.KeyCtrlO))
	r.Dispatch(ctrl(tea.KeyCtrlO))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRegistry_AlternativeCombos(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.On("ctrl+o, ctrl+p", Func(func(string, *Event) { calls++ }))
	r.Dispatch(ctrl(tea.KeyCtrlO))
	r.Dispatch(ctrl(tea.KeyCtrlP))
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRegistry_NilAndEmptyIgnored(t *testing.T) {
	r := NewRegistry()
	r.On("ctrl+o", nil)
	r.On("", Func(func(string, *Event) {}))
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestTable_GetAndOverrides(t *testing.T) {
	tbl := NewTable(map[string]string{SymbolSearch: "ctrl+p", Escape: ""})
	if got := tbl.Get(SymbolSearch); got != "ctrl+p" {
		t.Errorf("override: got %q, want ctrl+p", got)
	}
	if got := tbl.Get(Escape); got != "esc" {
		t.Errorf("empty override should fall back: got %q", got)
	}
	if got := tbl.Get("nope"); got != "" {
		t.Errorf("unknown name: got %q, want empty", got)
	}
	b := tbl.Binding(SymbolSearch, "symbols")
	if b.Help().Key != "ctrl+p" || b.Help().Desc != "symbols" {
		t.Errorf("Binding help = %+v", b.Help())
	}
}

func TestNames_AllKnown(t *testing.T) {
	for _, n := range Names() {
		if !Known(n) {
			t.Errorf("Names() returned unknown %q", n)
		}
	}
	if Known("bogus") {
		t.Error("Known(bogus) = true")
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"symbolSearch.search.key", SymbolSearch},
		{"QUIT.KEY", Quit},
		{"focus.nxt.key", NextPanel},
		{"zzz", ""},
		{"nope.key", ""},
	}
	for _, tt := range tests {
		if got := Suggest(tt.name); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
