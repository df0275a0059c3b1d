package panels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderHeader_BasicFields(t *testing.T) {
	props := HeaderProps{
		ProjectName: "MyProject",
		Source:      "cmd/main.go",
		Orientation: "horizontal",
		Overlay:     "symbol",
	}

	rendered := RenderHeader(props, 200, lipgloss.NewStyle())

	for _, want := range []string{"MyProject", "source: cmd/main.go", "layout: horizontal", "search: symbol"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("RenderHeader() missing %q; output: %q", want, rendered)
		}
	}
}

func TestRenderHeader_EmptyFieldFallbacks(t *testing.T) {
	rendered := RenderHeader(HeaderProps{}, 200, lipgloss.NewStyle())

	for _, want := range []string{"dbgsh", "source: —"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("RenderHeader() with empty props missing %q; got %q", want, rendered)
		}
	}
	for _, absent := range []string{"dir:", "search:", "paused"} {
		if strings.Contains(rendered, absent) {
			t.Errorf("RenderHeader() with empty props should omit %q; got %q", absent, rendered)
		}
	}
}

func TestRenderHeader_WorkDir(t *testing.T) {
	rendered := RenderHeader(HeaderProps{WorkDir: "/srv/project"}, 200, lipgloss.NewStyle())
	if !strings.Contains(rendered, "dir: /srv/project") {
		t.Errorf("RenderHeader() missing dir; got %q", rendered)
	}
}

func TestRenderHeader_Hidden(t *testing.T) {
	rendered := RenderHeader(HeaderProps{Hidden: true}, 200, lipgloss.NewStyle())
	if !strings.Contains(rendered, "paused") {
		t.Errorf("RenderHeader() should flag a hidden view; got %q", rendered)
	}
}

func TestAbbreviatePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{filepath.Join(home, "src", "app"), "~/src/app"},
		{"/opt/other", "/opt/other"},
		{`C:\work\app`, "C:/work/app"},
	}
	for _, tt := range tests {
		if got := AbbreviatePath(tt.in); got != tt.want {
			t.Errorf("AbbreviatePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
