package store

import (
	"slices"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
)

// ActionKind identifies an action.
type ActionKind string

const (
	ActSelectSource       ActionKind = "select_source"
	ActSetActiveSearch    ActionKind = "set_active_search"
	ActCloseActiveSearch  ActionKind = "close_active_search"
	ActTogglePaneCollapse ActionKind = "toggle_pane_collapse"
	ActSetSources         ActionKind = "set_sources"
	ActToggleBreakpoint   ActionKind = "toggle_breakpoint"
)

// Action is a request to change the state. Only the fields relevant to Kind
// are set.
type Action struct {
	Kind     ActionKind    `json:"kind"`
	SourceID string        `json:"source_id,omitempty"`
	Search   string        `json:"search,omitempty"`
	Side     Side          `json:"side,omitempty"`
	Line     int           `json:"line,omitempty"`
	Sources  []source.File `json:"sources,omitempty"`
}

// SelectSource selects the source with the given ID. An unknown ID is
// ignored; an empty ID clears the selection.
func SelectSource(id string) Action {
	return Action{Kind: ActSelectSource, SourceID: id}
}

// SetActiveSearch makes name the active overlay, replacing any other.
func SetActiveSearch(name string) Action {
	return Action{Kind: ActSetActiveSearch, Search: name}
}

// CloseActiveSearch closes the active overlay.
func CloseActiveSearch() Action {
	return Action{Kind: ActCloseActiveSearch}
}

// TogglePaneCollapse flips the collapse flag of side.
func TogglePaneCollapse(side Side) Action {
	return Action{Kind: ActTogglePaneCollapse, Side: side}
}

// SetSources replaces the source list. A selection that no longer exists is
// cleared.
func SetSources(files []source.File) Action {
	return Action{Kind: ActSetSources, Sources: files}
}

// ToggleBreakpoint adds or removes a breakpoint on line of a source.
func ToggleBreakpoint(sourceID string, line int) Action {
	return Action{Kind: ActToggleBreakpoint, SourceID: sourceID, Line: line}
}

// apply mutates st and reports whether anything changed.
func (a Action) apply(st *State) bool {
	switch a.Kind {
	case ActSelectSource:
		if a.SourceID != "" {
			if _, ok := source.Find(st.Sources, a.SourceID); !ok {
				return false
			}
		}
		if st.SelectedSourceID == a.SourceID {
			return false
		}
		st.SelectedSourceID = a.SourceID
		return true

	case ActSetActiveSearch:
		if a.Search == "" || st.ActiveSearch == a.Search {
			return false
		}
		st.ActiveSearch = a.Search
		return true

	case ActCloseActiveSearch:
		if st.ActiveSearch == "" {
			return false
		}
		st.ActiveSearch = ""
		return true

	case ActTogglePaneCollapse:
		switch a.Side {
		case SideStart:
			st.StartPanelCollapsed = !st.StartPanelCollapsed
		case SideEnd:
			st.EndPanelCollapsed = !st.EndPanelCollapsed
		default:
			return false
		}
		return true

	case ActSetSources:
		st.Sources = append([]source.File(nil), a.Sources...)
		if st.SelectedSourceID != "" {
			if _, ok := source.Find(st.Sources, st.SelectedSourceID); !ok {
				st.SelectedSourceID = ""
			}
		}
		return true

	case ActToggleBreakpoint:
		if a.SourceID == "" || a.Line < 1 {
			return false
		}
		if st.Breakpoints == nil {
			st.Breakpoints = make(map[string][]int)
		}
		lines := st.Breakpoints[a.SourceID]
		if i := slices.Index(lines, a.Line); i >= 0 {
			lines = slices.Delete(lines, i, i+1)
		} else {
			lines = insertLine(lines, a.Line)
		}
		if len(lines) == 0 {
			delete(st.Breakpoints, a.SourceID)
		} else {
			st.Breakpoints[a.SourceID] = lines
		}
		return true
	}
	return false
}
