package panels

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderFooter_EachFocusTarget(t *testing.T) {
	tests := []struct {
		focus string
		hints []string
	}{
		{"sources", []string{"j/k:navigate", "/:filter", "enter:open"}},
		{"editor", []string{"b:breakpoint", "[/]:tab"}},
		{"secondary", []string{"[/]:tab", "enter:go to"}},
		{"symbol", []string{"enter:jump", "esc:close"}},
		{"project", []string{"enter:search/open"}},
	}

	for _, tt := range tests {
		t.Run(tt.focus, func(t *testing.T) {
			rendered := RenderFooter(FooterProps{Focus: tt.focus}, 200)
			for _, hint := range tt.hints {
				if !strings.Contains(rendered, hint) {
					t.Errorf("RenderFooter(focus=%q) missing hint %q; got %q", tt.focus, hint, rendered)
				}
			}
		})
	}
}

func TestRenderFooter_Bindings(t *testing.T) {
	props := FooterProps{
		Focus: "editor",
		Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "symbols")),
			key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		},
	}
	rendered := RenderFooter(props, 200)
	for _, want := range []string{"ctrl+o", "symbols", "ctrl+c", "quit"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("footer missing %q; got %q", want, rendered)
		}
	}
}

func TestRenderFooter_Status(t *testing.T) {
	rendered := RenderFooter(FooterProps{Status: "3 breakpoints"}, 200)
	if !strings.Contains(rendered, "3 breakpoints") {
		t.Errorf("footer missing status; got %q", rendered)
	}
	if !strings.Contains(RenderFooter(FooterProps{}, 200), "—") {
		t.Error("empty status should fall back to —")
	}
}

func TestRenderFooter_FitsWidth(t *testing.T) {
	rendered := RenderFooter(FooterProps{Focus: "editor", Status: strings.Repeat("x", 80)}, 40)
	if w := ansi.StringWidth(rendered); w > 40 {
		t.Errorf("footer width = %d, want <= 40", w)
	}
}
