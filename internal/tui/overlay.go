package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// canvas is a fixed-size grid of styled lines that blocks are painted onto.
type canvas struct {
	lines []string
	width int
}

func newCanvas(width, height int) *canvas {
	blank := strings.Repeat(" ", max(width, 0))
	lines := make([]string, max(height, 0))
	for i := range lines {
		lines[i] = blank
	}
	return &canvas{lines: lines, width: width}
}

// paint draws block with its top-left corner at cell (x, y). Parts outside
// the canvas are clipped.
func (c *canvas) paint(block string, x, y int) {
	if x >= c.width {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.lines[row] = overlayLine(c.lines[row], line, x, c.width)
	}
}

// center paints block centred on the canvas.
func (c *canvas) center(block string) {
	x := max((c.width-lipgloss.Width(block))/2, 0)
	y := max((len(c.lines)-lipgloss.Height(block))/2, 0)
	c.paint(block, x, y)
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// overlayLine replaces the cells of base starting at column x with line,
// keeping whatever lies to either side.
func overlayLine(base, line string, x, width int) string {
	if x < 0 {
		line = ansi.TruncateLeft(line, -x, "")
		x = 0
	}
	base = padRight(base, width)
	line = ansi.Truncate(line, width-x, "")
	left := ansi.Truncate(base, x, "")
	end := x + ansi.StringWidth(line)
	right := ansi.TruncateLeft(base, end, "")
	return left + line + right
}

// padRight pads or truncates s to exactly width cells.
func padRight(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
