package store_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/store"
)

// Compile-time check: *Journal implements Writer.
var _ store.Writer = (*store.Journal)(nil)

func TestNewJournal_CreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sub", "journal")
	j, err := store.NewJournal(dir)
	if err != nil {
		t.Fatalf("NewJournal: %v", err)
	}
	defer func() { _ = j.Close() }()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file in dir, got %d", len(entries))
	}
	if ext := filepath.Ext(entries[0].Name()); ext != ".jsonl" {
		t.Errorf("expected .jsonl extension, got %q", ext)
	}
	if filepath.Base(j.Path()) != j.SessionID()+".jsonl" {
		t.Errorf("path %q does not match session %q", j.Path(), j.SessionID())
	}
}

func TestNewJournal_DirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notadir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.NewJournal(file); err == nil {
		t.Fatal("expected error when dir argument is an existing file")
	}
}

func TestJournal_AppendAndRead(t *testing.T) {
	j, err := store.NewJournal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	actions := []store.Action{
		store.SetSources([]source.File{{ID: "a.go", Path: "a.go", Name: "a.go", Ext: ".go"}}),
		store.SelectSource("a.go"),
		store.SetActiveSearch(store.SearchSymbol),
		store.ToggleBreakpoint("a.go", 12),
	}
	for _, a := range actions {
		if err := j.Append(a); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := store.ReadJournal(j.Path())
	if err != nil {
		t.Fatalf("ReadJournal: %v", err)
	}
	if len(got) != len(actions) {
		t.Fatalf("expected %d entries, got %d", len(actions), len(got))
	}
	for i, e := range got {
		if e.Seq != i+1 {
			t.Errorf("entry %d: seq = %d", i, e.Seq)
		}
		if e.Action.Kind != actions[i].Kind {
			t.Errorf("entry %d: kind = %q, want %q", i, e.Action.Kind, actions[i].Kind)
		}
		if e.Time.IsZero() {
			t.Errorf("entry %d: zero time", i)
		}
	}
	if got[3].Action.Line != 12 || got[3].Action.SourceID != "a.go" {
		t.Errorf("breakpoint entry = %+v", got[3].Action)
	}
	if len(got[0].Action.Sources) != 1 || got[0].Action.Sources[0].Ext != ".go" {
		t.Errorf("sources entry = %+v", got[0].Action)
	}
}

func TestJournal_AppendAfterClose(t *testing.T) {
	j, err := store.NewJournal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}
	if err := j.Append(store.CloseActiveSearch()); err == nil {
		t.Fatal("expected error when appending to a closed journal")
	}
}

func TestReadJournal_MalformedLineSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "j.jsonl")
	content := `{"seq":1,"time":"2026-01-02T03:04:05Z","action":{"kind":"select_source","source_id":"a.go"}}
not json at all

{"seq":2,"time":"2026-01-02T03:04:06Z","action":{"kind":"close_active_search"}}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := store.ReadJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[1].Action.Kind != store.ActCloseActiveSearch {
		t.Errorf("second entry kind = %q", got[1].Action.Kind)
	}
}

func TestReadJournal_Missing(t *testing.T) {
	if _, err := store.ReadJournal(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Fatal("expected error for missing journal")
	}
}

func TestReplay(t *testing.T) {
	files := []source.File{{ID: "a.go"}, {ID: "b.go"}}
	entries := []store.Entry{
		{Action: store.SetSources(files)},
		{Action: store.SelectSource("b.go")},
		{Action: store.TogglePaneCollapse(store.SideEnd)},
		{Action: store.ToggleBreakpoint("b.go", 7)},
		{Action: store.ToggleBreakpoint("b.go", 3)},
	}
	st := store.Replay(entries)
	if st.SelectedSourceID != "b.go" || !st.EndPanelCollapsed {
		t.Errorf("replayed state = %+v", st)
	}
	if lines := st.Breakpoints["b.go"]; len(lines) != 2 || lines[0] != 3 || lines[1] != 7 {
		t.Errorf("breakpoints = %v, want [3 7]", lines)
	}
}

func TestEnforceRetention(t *testing.T) {
	createFiles := func(t *testing.T, n int) string {
		t.Helper()
		dir := t.TempDir()
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("%010d-%d.jsonl", i, i)
			if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		return dir
	}

	countFiles := func(t *testing.T, dir string) int {
		t.Helper()
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for _, e := range entries {
			if filepath.Ext(e.Name()) == ".jsonl" {
				count++
			}
		}
		return count
	}

	tests := []struct {
		name      string
		nFiles    int
		maxKeep   int
		wantFiles int
	}{
		{"zero files, keep 20", 0, 20, 0},
		{"fewer than limit", 5, 20, 5},
		{"one over limit", 21, 20, 20},
		{"keep 0 means unlimited", 50, 0, 50},
		{"keep 1 keeps newest", 5, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := createFiles(t, tt.nFiles)
			if err := store.EnforceRetention(dir, tt.maxKeep); err != nil {
				t.Fatalf("EnforceRetention: %v", err)
			}
			if got := countFiles(t, dir); got != tt.wantFiles {
				t.Errorf("want %d files remaining, got %d", tt.wantFiles, got)
			}
		})
	}

	t.Run("non-existent dir returns nil", func(t *testing.T) {
		if err := store.EnforceRetention(filepath.Join(t.TempDir(), "no-such-dir"), 5); err != nil {
			t.Errorf("expected nil for missing dir, got: %v", err)
		}
	})

	t.Run("oldest files are deleted", func(t *testing.T) {
		dir := createFiles(t, 5)
		if err := store.EnforceRetention(dir, 2); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			name := fmt.Sprintf("%010d-%d.jsonl", i, i)
			if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
				t.Errorf("expected file %s to be deleted", name)
			}
		}
	})
}
