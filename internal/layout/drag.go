package layout

// Drag is an in-flight splitter drag. Motion only moves the preview; the
// layout State is touched once, when the drag ends.
type Drag struct {
	splitter Splitter
	scale    Scale
	preview  int
	moved    bool
}

// BeginDrag starts dragging sp. The preview starts at the split's current
// effective size.
func BeginDrag(sp Splitter, sc Scale) *Drag {
	return &Drag{
		splitter: sp,
		scale:    sc,
		preview:  sp.Split.EffectivePx(span(sp.Axis, sp.Container), sc),
	}
}

// Splitter returns the splitter being dragged.
func (d *Drag) Splitter() Splitter { return d.splitter }

// Preview returns the size, in pixels, the split would have if released now.
func (d *Drag) Preview() int { return d.preview }

// Moved reports whether the pointer moved since the drag began.
func (d *Drag) Moved() bool { return d.moved }

// Move updates the preview for a pointer at cell (x, y).
func (d *Drag) Move(x, y int) {
	sp := d.splitter
	c := sp.Container
	var cells int
	switch {
	case sp.Axis == Columns && sp.Split.EndPanelControl:
		cells = c.X + c.Width - 1 - x
	case sp.Axis == Columns:
		cells = x - c.X
	case sp.Split.EndPanelControl:
		cells = c.Y + c.Height - 1 - y
	default:
		cells = y - c.Y
	}
	if cells < 0 {
		cells = 0
	}
	total := span(sp.Axis, c)
	d.preview = sp.Split.ClampPx(d.scale.ToPx(sp.Axis, cells), total, d.scale)
	d.moved = true
}

// Apply writes the preview into the matching split of a freshly composed
// tree so the drag can be rendered without touching State.
func (d *Drag) Apply(root *Node) {
	if s := root.Find(d.splitter.ID); s != nil && s.Axis == d.splitter.Axis {
		s.Size = d.preview
	}
}

// Resize is a completed resize of one split.
type Resize struct {
	Split  SplitID
	Target Target
	Px     int
}

// End finishes the drag and returns the resize to record.
func (d *Drag) End() Resize {
	return Resize{
		Split:  d.splitter.ID,
		Target: d.splitter.Split.Report,
		Px:     d.preview,
	}
}
