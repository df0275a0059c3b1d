package layout

// Region identifies a leaf pane of the layout tree.
type Region int

const (
	RegionPrimary   Region = iota // primary navigation (sources)
	RegionEditor                  // editor: tabs, source view, welcome box, project search
	RegionSecondary               // secondary panes (breakpoints, layout info)
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionPrimary:
		return "primary"
	case RegionEditor:
		return "editor"
	case RegionSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// SplitID names a split within the tree. The same IDs are reused across
// orientations; a split's identity (and any local size) does not survive an
// orientation change.
type SplitID string

const (
	SplitOuter SplitID = "outer"
	SplitInner SplitID = "inner"
)

// Axis is the direction a split divides its container.
type Axis int

const (
	Columns Axis = iota // start | end side by side
	Rows                // start above end
)

// Bounds are a split's size constraints.
type Bounds struct {
	Initial Size
	Min     Size
	Max     Size
}

// Config holds the bounds of each split in each orientation.
type Config struct {
	HorizontalOuter Bounds
	HorizontalInner Bounds
	VerticalOuter   Bounds
	VerticalInner   Bounds
}

// DefaultConfig returns the reference bounds.
func DefaultConfig() Config {
	return Config{
		HorizontalOuter: Bounds{Initial: Px(250), Min: Px(10), Max: Percent(50)},
		HorizontalInner: Bounds{Initial: Px(300), Min: Px(10), Max: Percent(80)},
		VerticalOuter:   Bounds{Initial: Px(300), Min: Px(30), Max: Percent(99)},
		VerticalInner:   Bounds{Initial: Px(250), Min: Px(10), Max: Percent(40)},
	}
}

// Split is an interior node: a resizable two-region container.
type Split struct {
	ID     SplitID
	Axis   Axis
	Bounds Bounds

	// EndPanelControl applies the size to the end panel instead of the start.
	EndPanelControl bool
	// Report is where a completed resize is recorded.
	Report Target
	// Size is the recorded size in pixels; zero means use Bounds.Initial.
	Size int

	StartCollapsed bool
	EndCollapsed   bool

	Start *Node
	End   *Node
}

// Node is either a leaf region or a split.
type Node struct {
	Region Region
	Split  *Split
}

// IsLeaf reports whether n is a region leaf.
func (n *Node) IsLeaf() bool { return n.Split == nil }

// Find returns the split with the given id, or nil.
func (n *Node) Find(id SplitID) *Split {
	if n == nil || n.IsLeaf() {
		return nil
	}
	if n.Split.ID == id {
		return n.Split
	}
	if s := n.Split.Start.Find(id); s != nil {
		return s
	}
	return n.Split.End.Find(id)
}

// Regions returns the leaf regions in start-to-end order.
func (n *Node) Regions() []Region {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return []Region{n.Region}
	}
	return append(n.Split.Start.Regions(), n.Split.End.Regions()...)
}

// Inputs is everything the composer reads.
type Inputs struct {
	Orientation    Orientation
	Sizes          PanelSizes
	StartCollapsed bool
	EndCollapsed   bool
	// Local holds sizes of splits that do not report their resizes.
	Local map[SplitID]int
}

func leaf(r Region) *Node { return &Node{Region: r} }

// Compose builds the pane tree for in.
//
// Horizontal: outer[Primary | inner[Editor | Secondary]]. The outer split
// reports into Sizes.Start and honours StartCollapsed; the inner split sizes
// its end panel, reports into Sizes.End and honours EndCollapsed.
//
// Vertical: outer[inner[Primary | Editor] | Secondary], stacked. The outer
// split honours EndCollapsed, the inner one StartCollapsed. Neither reports
// its resizes; they keep local sizes until the next orientation change.
func Compose(in Inputs, cfg Config) *Node {
	if in.Orientation == Vertical {
		inner := &Split{
			ID:             SplitInner,
			Axis:           Columns,
			Bounds:         cfg.VerticalInner,
			Report:         TargetNone,
			Size:           in.Local[SplitInner],
			StartCollapsed: in.StartCollapsed,
			Start:          leaf(RegionPrimary),
			End:            leaf(RegionEditor),
		}
		outer := &Split{
			ID:           SplitOuter,
			Axis:         Rows,
			Bounds:       cfg.VerticalOuter,
			Report:       TargetNone,
			Size:         in.Local[SplitOuter],
			EndCollapsed: in.EndCollapsed,
			Start:        &Node{Split: inner},
			End:          leaf(RegionSecondary),
		}
		return &Node{Split: outer}
	}

	inner := &Split{
		ID:              SplitInner,
		Axis:            Columns,
		Bounds:          cfg.HorizontalInner,
		EndPanelControl: true,
		Report:          TargetEnd,
		Size:            in.Sizes.End,
		EndCollapsed:    in.EndCollapsed,
		Start:           leaf(RegionEditor),
		End:             leaf(RegionSecondary),
	}
	outer := &Split{
		ID:             SplitOuter,
		Axis:           Columns,
		Bounds:         cfg.HorizontalOuter,
		Report:         TargetStart,
		Size:           in.Sizes.Start,
		StartCollapsed: in.StartCollapsed,
		Start:          leaf(RegionPrimary),
		End:            &Node{Split: inner},
	}
	return &Node{Split: outer}
}
