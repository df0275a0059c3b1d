package panels

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func TestRenderWelcome(t *testing.T) {
	props := WelcomeProps{
		ProjectName: "webapp",
		Sources:     12,
		Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "go to symbol")),
			key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "search project")),
		},
	}
	out := RenderWelcome(props, 60, 20)
	for _, want := range []string{"webapp", "12 sources", "ctrl+o", "go to symbol", "ctrl+f", "search project"} {
		if !strings.Contains(out, want) {
			t.Errorf("welcome missing %q:\n%s", want, out)
		}
	}
	if got := lipgloss.Height(out); got != 20 {
		t.Errorf("height = %d, want 20", got)
	}
}

func TestRenderWelcome_DefaultName(t *testing.T) {
	if out := RenderWelcome(WelcomeProps{}, 40, 10); !strings.Contains(out, "dbgsh") {
		t.Errorf("welcome without a project name should show dbgsh:\n%s", out)
	}
}
