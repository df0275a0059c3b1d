package layout

// Orientation is the overall panel arrangement.
type Orientation int

const (
	Horizontal Orientation = iota // wide viewport: navigation | editor | secondary side by side
	Vertical                      // narrow viewport: secondary stacked below
)

// OrientationFor maps the breakpoint's truth value to an orientation.
func OrientationFor(matches bool) Orientation {
	if matches {
		return Horizontal
	}
	return Vertical
}

// String returns the human-readable orientation name.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// PanelSizes are the recorded sizes in pixels. Zero means "unset": the split
// falls back to its configured initial size.
type PanelSizes struct {
	Start int
	End   int
}

// Target names which recorded size a split reports its resize-end into.
type Target int

const (
	TargetNone  Target = iota // split keeps its size to itself
	TargetStart               // reports into PanelSizes.Start
	TargetEnd                 // reports into PanelSizes.End
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case TargetStart:
		return "start"
	case TargetEnd:
		return "end"
	default:
		return "none"
	}
}

// State is the shell's layout state. It is owned by one shell instance and
// mutated only from the UI goroutine.
type State struct {
	orientation Orientation
	sizes       PanelSizes
}

// NewState creates a State with unset sizes.
func NewState(o Orientation) *State {
	return &State{orientation: o}
}

// Orientation returns the current orientation.
func (s *State) Orientation() Orientation {
	return s.orientation
}

// SetOrientation updates the orientation and reports whether it changed.
func (s *State) SetOrientation(o Orientation) bool {
	if s.orientation == o {
		return false
	}
	s.orientation = o
	return true
}

// Sizes returns the recorded panel sizes.
func (s *State) Sizes() PanelSizes {
	return s.sizes
}

// ResizeEnd records a completed resize. Negative sizes are clamped to zero;
// TargetNone is ignored. It reports whether the state changed.
func (s *State) ResizeEnd(t Target, px int) bool {
	if px < 0 {
		px = 0
	}
	switch t {
	case TargetStart:
		if s.sizes.Start == px {
			return false
		}
		s.sizes.Start = px
	case TargetEnd:
		if s.sizes.End == px {
			return false
		}
		s.sizes.End = px
	default:
		return false
	}
	return true
}
