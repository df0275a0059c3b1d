package panels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
)

func makeFiles(ids ...string) []source.File {
	files := make([]source.File, len(ids))
	for i, id := range ids {
		files[i] = source.File{ID: id, Path: "/proj/" + id, Name: id}
	}
	return files
}

func TestNewSourcesPanel_Empty(t *testing.T) {
	p := NewSourcesPanel(nil, 40, 10)
	if !strings.Contains(p.View(), "No sources") {
		t.Errorf("empty panel should show 'No sources'; got %q", p.View())
	}
	if p.Highlighted() != nil {
		t.Error("Highlighted() should be nil for an empty panel")
	}
}

func TestSourcesPanel_ListsFiles(t *testing.T) {
	p := NewSourcesPanel(makeFiles("cmd/main.go", "internal/server.go"), 40, 10)
	view := p.View()
	for _, want := range []string{"cmd/main.go", "internal/server.go"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q; got %q", want, view)
		}
	}
}

func TestSourcesPanel_EnterSelects(t *testing.T) {
	p := NewSourcesPanel(makeFiles("a.go", "b.go"), 40, 10)
	p, _ = p.Update(keyMsg("j"))
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a selection")
	}
	msg, ok := cmd().(SourceSelectedMsg)
	if !ok || msg.ID != "b.go" {
		t.Errorf("selection = %#v, want b.go", cmd())
	}
}

func TestSourcesPanel_NavigationDoesNotSelect(t *testing.T) {
	p := NewSourcesPanel(makeFiles("a.go", "b.go"), 40, 10)
	p, cmd := p.Update(keyMsg("j"))
	if cmd != nil {
		if _, ok := cmd().(SourceSelectedMsg); ok {
			t.Error("moving the cursor must not select a source")
		}
	}
	if f := p.Highlighted(); f == nil || f.ID != "b.go" {
		t.Errorf("Highlighted() = %v", f)
	}
}

func TestSourcesPanel_FuzzyFilter(t *testing.T) {
	p := NewSourcesPanel(makeFiles("cmd/main.go", "internal/server.go", "internal/store.go"), 40, 10)
	p, _ = p.Update(keyMsg("/"))
	if !p.Filtering() {
		t.Fatal("/ should start filtering")
	}
	for _, r := range "srv" {
		p, _ = p.Update(keyMsg(string(r)))
	}
	if p.Shown() != 1 {
		t.Fatalf("Shown() = %d, want 1", p.Shown())
	}
	if f := p.Highlighted(); f == nil || f.ID != "internal/server.go" {
		t.Errorf("Highlighted() = %v", f)
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Filtering() || p.Shown() != 1 {
		t.Errorf("enter should keep the filter but leave the input: filtering=%v shown=%d", p.Filtering(), p.Shown())
	}

	p, _ = p.Update(keyMsg("/"))
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Filtering() || p.Shown() != 3 {
		t.Errorf("esc should clear the filter: filtering=%v shown=%d", p.Filtering(), p.Shown())
	}
}

func TestSourcesPanel_SetSelectedMarksFile(t *testing.T) {
	p := NewSourcesPanel(makeFiles("a.go", "b.go"), 40, 10).SetSelected("b.go")
	if !strings.Contains(p.View(), "● b.go") {
		t.Errorf("selected file should be marked; got %q", p.View())
	}
}

func TestSourcesPanel_SetSize(t *testing.T) {
	p := NewSourcesPanel(nil, 40, 10).SetSize(60, 30)
	if p.width != 60 || p.height != 30 {
		t.Errorf("SetSize: got %dx%d, want 60x30", p.width, p.height)
	}
}
