package panels

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/store"
)

func newTestEditor() EditorPanel {
	return NewEditorPanel(NewProjectSearch(store.New(), "ctrl+f"), 60, 20)
}

func TestEditor_WelcomeWithoutSelection(t *testing.T) {
	e := newTestEditor().SetWelcome(WelcomeProps{ProjectName: "webapp"})
	if !e.ShowingWelcome() {
		t.Fatal("new editor should show the welcome box")
	}
	view := e.View()
	if !strings.Contains(view, "webapp") || !strings.Contains(view, "no open sources") {
		t.Errorf("View() = %q", view)
	}

	e = e.Open("main.go")
	if e.ShowingWelcome() {
		t.Error("welcome box should go away once a source is selected")
	}
	e = e.Open("")
	if !e.ShowingWelcome() {
		t.Error("clearing the selection should bring the welcome box back")
	}
	if len(e.Opened()) != 1 {
		t.Errorf("tabs should survive clearing the selection, got %v", e.Opened())
	}
}

func TestEditor_OpenAddsTabsOnce(t *testing.T) {
	e := newTestEditor().Open("a.go").Open("pkg/b.go").Open("a.go")
	if got := e.Opened(); len(got) != 2 || got[0] != "a.go" || got[1] != "pkg/b.go" {
		t.Errorf("Opened() = %v", got)
	}
	if e.Current() != "a.go" {
		t.Errorf("Current() = %q", e.Current())
	}
	if !strings.Contains(e.View(), "b.go") {
		t.Error("tab strip should show the base name of each tab")
	}
}

func TestEditor_ShowContent(t *testing.T) {
	e := newTestEditor().Open("main.go")
	if !strings.Contains(e.View(), "loading main.go") {
		t.Errorf("pending load should be shown: %q", e.View())
	}

	e = e.ShowContent("other.go", "ignored", nil)
	if e.Loaded() {
		t.Fatal("content for another source must be ignored")
	}

	e = e.ShowContent("main.go", "package main\n\nfunc main() {}\n", nil)
	if !e.Loaded() || e.Cursor() != 1 {
		t.Fatalf("loaded=%v cursor=%d", e.Loaded(), e.Cursor())
	}
	if !strings.Contains(e.View(), "func main() {}") {
		t.Errorf("View() missing content: %q", e.View())
	}
}

func TestEditor_LoadError(t *testing.T) {
	e := newTestEditor().Open("gone.go").ShowContent("gone.go", "", errors.New("source: read gone.go: no such file"))
	if !strings.Contains(e.View(), "no such file") {
		t.Errorf("View() should show the load error: %q", e.View())
	}
}

func TestEditor_BreakpointRequest(t *testing.T) {
	e := newTestEditor().Open("main.go").ShowContent("main.go", "a\nb\nc\n", nil)
	e, _ = e.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if cmd == nil {
		t.Fatal("b should request a breakpoint")
	}
	req, ok := cmd().(ToggleBreakpointMsg)
	if !ok || req.SourceID != "main.go" || req.Line != 2 {
		t.Errorf("request = %#v", cmd())
	}

	e = e.SetBreakpoints([]int{2})
	if !strings.Contains(e.View(), "●") {
		t.Error("breakpoint marker missing")
	}
}

func TestEditor_TabNavigation(t *testing.T) {
	e := newTestEditor().Open("a.go").Open("b.go").Open("c.go")

	tests := []struct {
		key  string
		want string
	}{
		{"]", "a.go"},
		{"[", "b.go"},
	}
	for _, tt := range tests {
		_, cmd := e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})
		if cmd == nil {
			t.Fatalf("%s should select a tab", tt.key)
		}
		if msg := cmd().(SourceSelectedMsg); msg.ID != tt.want {
			t.Errorf("%s selected %q, want %q", tt.key, msg.ID, tt.want)
		}
	}
}

func TestEditor_CloseTab(t *testing.T) {
	e := newTestEditor().Open("a.go").Open("b.go")
	e, cmd := e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if got := e.Opened(); len(got) != 1 || got[0] != "a.go" {
		t.Fatalf("Opened() = %v", got)
	}
	if msg := cmd().(SourceSelectedMsg); msg.ID != "a.go" {
		t.Errorf("closing should select the neighbour, got %q", msg.ID)
	}

	e = e.Open("a.go")
	_, cmd = e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if msg := cmd().(SourceSelectedMsg); msg.ID != "" {
		t.Errorf("closing the last tab should clear the selection, got %q", msg.ID)
	}
}

func TestEditor_Retain(t *testing.T) {
	e := newTestEditor().Open("a.go").Open("b.go")
	e = e.Retain(func(id string) bool { return id == "b.go" })
	if got := e.Opened(); len(got) != 1 || got[0] != "b.go" {
		t.Errorf("Opened() = %v", got)
	}
}

func TestEditor_SearchContainer(t *testing.T) {
	e := newTestEditor().Open("main.go").ShowContent("main.go", "x\n", nil)
	e, _ = e.OpenSearch()
	if !e.SearchOpen() || !e.Search().Focused() {
		t.Fatal("OpenSearch should show and focus the search")
	}
	if !strings.Contains(e.View(), "search:") {
		t.Errorf("View() should include the search input: %q", e.View())
	}
	e = e.CloseSearch()
	if e.SearchOpen() || e.Search().Focused() {
		t.Error("CloseSearch should hide and blur the search")
	}
}
