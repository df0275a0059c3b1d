package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	welcomeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	welcomeKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD93D"))
	welcomeDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// WelcomeProps holds the data shown in the welcome box.
type WelcomeProps struct {
	ProjectName string
	Sources     int
	Bindings    []key.Binding
}

// RenderWelcome renders the placeholder shown in the editor while no source
// is selected, centred in a w×h area.
func RenderWelcome(props WelcomeProps, w, h int) string {
	name := props.ProjectName
	if name == "" {
		name = "dbgsh"
	}
	lines := []string{
		welcomeTitleStyle.Render(name),
		welcomeDimStyle.Render(fmt.Sprintf("%d sources", props.Sources)),
		"",
		"Pick a source from the list to start.",
		"",
	}

	width := 0
	for _, b := range props.Bindings {
		if n := len(b.Help().Key); n > width {
			width = n
		}
	}
	for _, b := range props.Bindings {
		hb := b.Help()
		if hb.Key == "" {
			continue
		}
		pad := strings.Repeat(" ", width-len(hb.Key))
		lines = append(lines, welcomeKeyStyle.Render(hb.Key)+pad+"  "+hb.Desc)
	}

	box := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
