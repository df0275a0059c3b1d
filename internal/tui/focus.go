package tui

import "github.com/LISSConsulting/LISSTech.Debugshell/internal/layout"

// FocusTarget identifies which panel currently holds keyboard focus.
type FocusTarget int

const (
	FocusPrimary   FocusTarget = iota // source list
	FocusEditor                       // editor
	FocusSecondary                    // breakpoints and layout tabs
)

const focusTargets = 3

// Next returns the next focus target in forward tab order.
func (f FocusTarget) Next() FocusTarget {
	return (f + 1) % focusTargets
}

// Prev returns the previous focus target in reverse tab order.
func (f FocusTarget) Prev() FocusTarget {
	return (f + focusTargets - 1) % focusTargets
}

// String returns the human-readable name of the focus target.
func (f FocusTarget) String() string {
	switch f {
	case FocusPrimary:
		return "sources"
	case FocusEditor:
		return "editor"
	case FocusSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Region returns the layout region the target's panel lives in.
func (f FocusTarget) Region() layout.Region {
	switch f {
	case FocusPrimary:
		return layout.RegionPrimary
	case FocusSecondary:
		return layout.RegionSecondary
	default:
		return layout.RegionEditor
	}
}

// step moves focus by dir (+1 or -1), skipping targets whose panel is not
// visible. The editor is always visible, so the walk terminates.
func (f FocusTarget) step(dir int, visible func(FocusTarget) bool) FocusTarget {
	next := f
	for range focusTargets {
		if dir < 0 {
			next = next.Prev()
		} else {
			next = next.Next()
		}
		if visible(next) {
			return next
		}
	}
	return FocusEditor
}
