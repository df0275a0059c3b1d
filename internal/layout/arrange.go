package layout

import "math"

// Rect is a rectangular region of the terminal in cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Scale converts between terminal cells and layout pixels.
type Scale struct {
	CellWidth  int // pixels per column
	CellHeight int // pixels per row
}

// DefaultScale is a typical monospace cell.
var DefaultScale = Scale{CellWidth: 8, CellHeight: 16}

func (sc Scale) per(a Axis) int {
	n := sc.CellWidth
	if a == Rows {
		n = sc.CellHeight
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ToCells converts a pixel length along axis a to whole cells.
func (sc Scale) ToCells(a Axis, px int) int {
	return int(math.Round(float64(px) / float64(sc.per(a))))
}

// ToPx converts a cell count along axis a to pixels.
func (sc Scale) ToPx(a Axis, cells int) int {
	return cells * sc.per(a)
}

func span(a Axis, r Rect) int {
	if a == Rows {
		return r.Height
	}
	return r.Width
}

// ClampPx clamps px to the split's bounds for a container of totalCells.
func (s *Split) ClampPx(px, totalCells int, sc Scale) int {
	totalPx := sc.ToPx(s.Axis, totalCells)
	if hi := s.Bounds.Max.Resolve(totalPx); px > hi {
		px = hi
	}
	if lo := s.Bounds.Min.Resolve(totalPx); px < lo {
		px = lo
	}
	return px
}

// EffectivePx is the recorded size, or the initial size when unset, clamped
// to the bounds.
func (s *Split) EffectivePx(totalCells int, sc Scale) int {
	px := s.Size
	if px <= 0 {
		px = s.Bounds.Initial.Resolve(sc.ToPx(s.Axis, totalCells))
	}
	return s.ClampPx(px, totalCells, sc)
}

// Divide splits totalCells between start and end panels. divider reports
// whether a one-cell splitter sits between them. A collapsed panel gets
// nothing and the other panel takes the whole container; the recorded size
// is left alone so expanding restores it.
func (s *Split) Divide(totalCells int, sc Scale) (start, end int, divider bool) {
	switch {
	case s.StartCollapsed:
		return 0, totalCells, false
	case s.EndCollapsed:
		return totalCells, 0, false
	case totalCells < 2:
		return totalCells, 0, false
	}
	avail := totalCells - 1
	cells := sc.ToCells(s.Axis, s.EffectivePx(totalCells, sc))
	if cells > avail {
		cells = avail
	}
	if cells < 0 {
		cells = 0
	}
	if s.EndPanelControl {
		return avail - cells, cells, true
	}
	return cells, avail - cells, true
}

// Splitter is a draggable divider produced by Arrange.
type Splitter struct {
	ID        SplitID
	Axis      Axis
	Rect      Rect // the one-cell divider itself
	Container Rect // the area the split divides
	Split     *Split
}

// Nudged returns the pixel size after moving the divider by delta cells in
// the direction that grows the controlled panel, clamped to the bounds.
func (sp Splitter) Nudged(sc Scale, delta int) int {
	total := span(sp.Axis, sp.Container)
	start, end, _ := sp.Split.Divide(total, sc)
	cells := start
	if sp.Split.EndPanelControl {
		cells = end
	}
	return sp.Split.ClampPx(sc.ToPx(sp.Axis, cells+delta), total, sc)
}

// Arrangement is the resolved geometry of a pane tree.
type Arrangement struct {
	Panes     map[Region]Rect
	Splitters []Splitter
}

// Visible reports whether region r has a pane in the arrangement.
func (a Arrangement) Visible(r Region) bool {
	_, ok := a.Panes[r]
	return ok
}

// SplitterAt returns the splitter covering cell (x, y).
func (a Arrangement) SplitterAt(x, y int) (Splitter, bool) {
	for _, sp := range a.Splitters {
		if sp.Rect.Contains(x, y) {
			return sp, true
		}
	}
	return Splitter{}, false
}

// Splitter returns the splitter of split id, if it is currently shown.
func (a Arrangement) Splitter(id SplitID) (Splitter, bool) {
	for _, sp := range a.Splitters {
		if sp.ID == id {
			return sp, true
		}
	}
	return Splitter{}, false
}

// Arrange resolves root into cell rectangles within r.
func Arrange(root *Node, r Rect, sc Scale) Arrangement {
	a := Arrangement{Panes: make(map[Region]Rect)}
	arrange(root, r, sc, &a)
	return a
}

func arrange(n *Node, r Rect, sc Scale, a *Arrangement) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		a.Panes[n.Region] = r
		return
	}
	s := n.Split
	start, end, divider := s.Divide(span(s.Axis, r), sc)

	var startRect, endRect, divRect Rect
	if s.Axis == Columns {
		startRect = Rect{X: r.X, Y: r.Y, Width: start, Height: r.Height}
		divRect = Rect{X: r.X + start, Y: r.Y, Width: 1, Height: r.Height}
		endRect = Rect{X: r.X + r.Width - end, Y: r.Y, Width: end, Height: r.Height}
	} else {
		startRect = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: start}
		divRect = Rect{X: r.X, Y: r.Y + start, Width: r.Width, Height: 1}
		endRect = Rect{X: r.X, Y: r.Y + r.Height - end, Width: r.Width, Height: end}
	}

	if !s.StartCollapsed {
		arrange(s.Start, startRect, sc, a)
	}
	if divider {
		a.Splitters = append(a.Splitters, Splitter{
			ID:        s.ID,
			Axis:      s.Axis,
			Rect:      divRect,
			Container: r,
			Split:     s,
		})
	}
	if !s.EndCollapsed {
		arrange(s.End, endRect, sc, a)
	}
}
