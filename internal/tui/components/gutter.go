package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	gutterStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	breakpointStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// Gutter prefixes each line of content with its line number and a marker for
// lines in marks. Tabs are expanded to four spaces.
func Gutter(content string, marks map[int]bool) []string {
	if content == "" {
		return nil
	}
	raw := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	digits := len(strconv.Itoa(len(raw)))
	out := make([]string, len(raw))
	for i, line := range raw {
		n := i + 1
		mark := " "
		if marks[n] {
			mark = breakpointStyle.Render("●")
		}
		num := gutterStyle.Render(fmt.Sprintf("%*d │", digits, n))
		out[i] = mark + num + " " + strings.ReplaceAll(line, "\t", "    ")
	}
	return out
}
