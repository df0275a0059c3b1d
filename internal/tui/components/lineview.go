package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var cursorStyle = lipgloss.NewStyle().Reverse(true)

// LineView is a scrollable list of pre-rendered lines with a cursor. It wraps
// bubbles/viewport and keeps the cursor line in view.
type LineView struct {
	vp     viewport.Model
	lines  []string
	cursor int // 0-based; meaningful only when len(lines) > 0
	marked bool
	width  int
	height int
}

// NewLineView creates an empty LineView with the given dimensions.
func NewLineView(w, h int) LineView {
	return LineView{
		vp:     viewport.New(w, h),
		width:  w,
		height: h,
	}
}

// SetLines replaces the content. The cursor is kept when still in range.
func (v LineView) SetLines(lines []string) LineView {
	v.lines = append([]string(nil), lines...)
	if v.cursor >= len(v.lines) {
		v.cursor = max(len(v.lines)-1, 0)
	}
	return v.refresh()
}

// ShowCursor enables or disables highlighting of the cursor line.
func (v LineView) ShowCursor(on bool) LineView {
	v.marked = on
	return v.refresh()
}

// Lines returns the number of lines.
func (v LineView) Lines() int { return len(v.lines) }

// Cursor returns the 1-based cursor line, or 0 when empty.
func (v LineView) Cursor() int {
	if len(v.lines) == 0 {
		return 0
	}
	return v.cursor + 1
}

// Goto moves the cursor to the 1-based line n and scrolls it into view.
func (v LineView) Goto(n int) LineView {
	if len(v.lines) == 0 {
		return v
	}
	v.cursor = min(max(n-1, 0), len(v.lines)-1)
	v = v.refresh()
	top := v.cursor - v.height/2
	v.vp.SetYOffset(max(top, 0))
	return v
}

// SetSize resizes the view.
func (v LineView) SetSize(w, h int) LineView {
	v.width = w
	v.height = h
	v.vp.Width = w
	v.vp.Height = h
	return v.refresh()
}

// Update handles cursor and scroll keys.
func (v LineView) Update(msg tea.Msg) (LineView, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && len(v.lines) > 0 {
		switch km.String() {
		case "j", "down":
			return v.move(1), nil
		case "k", "up":
			return v.move(-1), nil
		case "g", "home":
			return v.Goto(1), nil
		case "G", "end":
			return v.Goto(len(v.lines)), nil
		}
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v LineView) move(delta int) LineView {
	v.cursor = min(max(v.cursor+delta, 0), len(v.lines)-1)
	v = v.refresh()
	switch {
	case v.cursor < v.vp.YOffset:
		v.vp.SetYOffset(v.cursor)
	case v.cursor >= v.vp.YOffset+v.height:
		v.vp.SetYOffset(v.cursor - v.height + 1)
	}
	return v
}

func (v LineView) refresh() LineView {
	if !v.marked || len(v.lines) == 0 {
		v.vp.SetContent(strings.Join(v.lines, "\n"))
		return v
	}
	out := make([]string, len(v.lines))
	copy(out, v.lines)
	out[v.cursor] = cursorStyle.Render(out[v.cursor])
	v.vp.SetContent(strings.Join(out, "\n"))
	return v
}

// View renders the visible lines.
func (v LineView) View() string {
	return v.vp.View()
}
