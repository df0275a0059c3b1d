package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/store"
)

func TestFormatSourceList(t *testing.T) {
	tests := []struct {
		name     string
		files    []source.File
		contains []string
	}{
		{
			name:     "empty — no sources message",
			files:    nil,
			contains: []string{"No sources found in /proj"},
		},
		{
			name: "files with and without extension",
			files: []source.File{
				{ID: "cmd/main.go", Name: "main.go", Ext: ".go"},
				{ID: "Makefile", Name: "Makefile"},
			},
			contains: []string{"Sources (2)", ".go", "cmd/main.go", "-", "Makefile"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatSourceList("/proj", tt.files)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestFormatHistory(t *testing.T) {
	if got := formatHistory(nil); got != "Journal is empty\n" {
		t.Errorf("formatHistory(nil) = %q", got)
	}

	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	entries := []store.Entry{
		{Seq: 1, Time: at, Action: store.SetSources([]source.File{{ID: "a.go"}, {ID: "b.go"}})},
		{Seq: 2, Time: at, Action: store.SelectSource("a.go")},
		{Seq: 3, Time: at, Action: store.ToggleBreakpoint("a.go", 12)},
		{Seq: 4, Time: at, Action: store.TogglePaneCollapse(store.SideEnd)},
		{Seq: 5, Time: at, Action: store.SetActiveSearch(store.SearchSymbol)},
	}
	got := formatHistory(entries)
	for _, want := range []string{
		"09:30:00", "set_sources", "2 files",
		"select_source", "a.go:12", "end", "symbol",
		"sources:     2", "selected:    a.go", "breakpoints: 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDescribeAction(t *testing.T) {
	tests := []struct {
		action store.Action
		want   string
	}{
		{store.SelectSource(""), "(cleared)"},
		{store.SelectSource("x.go"), "x.go"},
		{store.CloseActiveSearch(), ""},
		{store.ToggleBreakpoint("x.go", 3), "x.go:3"},
	}
	for _, tt := range tests {
		if got := describeAction(tt.action); got != tt.want {
			t.Errorf("describeAction(%s) = %q, want %q", tt.action.Kind, got, tt.want)
		}
	}
}

func TestRootCmd(t *testing.T) {
	root := rootCmd()
	for _, name := range []string{"init", "sources", "history"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "log-file", "no-mouse"} {
		if root.Flags().Lookup(flag) == nil {
			t.Errorf("flag --%s missing", flag)
		}
	}
}

func TestHistoryCmd_MissingJournal(t *testing.T) {
	root := rootCmd()
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetArgs([]string{"history", filepath.Join(t.TempDir(), "nope.jsonl")})
	if err := root.Execute(); err == nil {
		t.Error("history of a missing journal should fail")
	}
}

func TestReadFlags(t *testing.T) {
	root := rootCmd()
	if err := root.ParseFlags([]string{"--config", "x.toml", "--no-mouse"}); err != nil {
		t.Fatal(err)
	}
	f, err := readFlags(root, []string{"proj"})
	if err != nil {
		t.Fatal(err)
	}
	if f.Dir != "proj" || f.ConfigPath != "x.toml" || !f.NoMouse || f.LogFile != "" {
		t.Errorf("flags = %+v", f)
	}
}
