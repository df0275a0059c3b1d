// Package layout holds the shell's layout state (orientation and recorded
// panel sizes) and composes the nested split-pane tree from it.
package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the unit a Size is expressed in.
type Unit int

const (
	UnitPx      Unit = iota // absolute pixels
	UnitPercent             // percentage of the container along the split axis
)

// Size is a split-pane bound such as "250px", "50%" or a bare pixel count.
type Size struct {
	Value float64
	Unit  Unit
}

// Px returns an absolute pixel size.
func Px(n int) Size { return Size{Value: float64(n), Unit: UnitPx} }

// Percent returns a size relative to the container.
func Percent(p float64) Size { return Size{Value: p, Unit: UnitPercent} }

// ParseSize parses "250px", "50%" or "10".
func ParseSize(s string) (Size, error) {
	raw := strings.TrimSpace(s)
	unit := UnitPx
	num := raw
	switch {
	case strings.HasSuffix(raw, "%"):
		unit = UnitPercent
		num = strings.TrimSuffix(raw, "%")
	case strings.HasSuffix(raw, "px"):
		num = strings.TrimSuffix(raw, "px")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || num == "" {
		return Size{}, fmt.Errorf("layout: invalid size %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Size{}, fmt.Errorf("layout: non-finite size %q", s)
	}
	if v < 0 {
		return Size{}, fmt.Errorf("layout: negative size %q", s)
	}
	return Size{Value: v, Unit: unit}, nil
}

// MustSize is ParseSize for compile-time constants; it panics on bad input.
func MustSize(s string) Size {
	sz, err := ParseSize(s)
	if err != nil {
		panic(err)
	}
	return sz
}

// String renders the size in the form ParseSize accepts.
func (s Size) String() string {
	v := strconv.FormatFloat(s.Value, 'f', -1, 64)
	if s.Unit == UnitPercent {
		return v + "%"
	}
	return v + "px"
}

// Resolve converts the size to pixels against a container of totalPx.
func (s Size) Resolve(totalPx int) int {
	if s.Unit == UnitPercent {
		return int(math.Round(float64(totalPx) * s.Value / 100))
	}
	return int(math.Round(s.Value))
}
