package tui

import (
	"fmt"
	"strings"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/layout"
)

// Minimum terminal size the shell renders at.
const (
	minWidth  = 40
	minHeight = 10
)

// tooSmall reports whether a width×height terminal is below the minimum.
func tooSmall(width, height int) bool {
	return width < minWidth || height < minHeight
}

// bodyRect is the area between the one-row header and footer.
func bodyRect(width, height int) layout.Rect {
	return layout.Rect{X: 0, Y: 1, Width: width, Height: max(height-2, 0)}
}

// innerDims returns the content dimensions for a panel rect accounting for
// the 1-character border on each side (2 total per dimension).
func innerDims(r layout.Rect) (w, h int) {
	w = r.Width - 2
	if w < 1 {
		w = 1
	}
	h = r.Height - 2
	if h < 1 {
		h = 1
	}
	return
}

// splitterBlock renders the divider filling sp.Rect.
func splitterBlock(sp layout.Splitter) string {
	if sp.Axis == layout.Columns {
		return strings.TrimSuffix(strings.Repeat(splitterGlyph(true)+"\n", sp.Rect.Height), "\n")
	}
	return strings.Repeat(splitterGlyph(false), sp.Rect.Width)
}

// describeSplit renders one line of the layout report.
func describeSplit(sp layout.Splitter, sc layout.Scale) string {
	axis := "columns"
	total := sp.Container.Width
	if sp.Axis == layout.Rows {
		axis = "rows"
		total = sp.Container.Height
	}
	return fmt.Sprintf("%s %s %dpx → %s",
		sp.ID, axis, sp.Split.EffectivePx(total, sc), sp.Split.Report)
}

// withLocal returns a copy of local with id set to px.
func withLocal(local map[layout.SplitID]int, id layout.SplitID, px int) map[layout.SplitID]int {
	out := make(map[layout.SplitID]int, len(local)+1)
	for k, v := range local {
		out[k] = v
	}
	out[id] = px
	return out
}
