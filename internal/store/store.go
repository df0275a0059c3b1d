// Package store owns the shell's shared UI state: the discovered sources, the
// selected source, the active search overlay, panel collapse flags and
// breakpoints. Views read it through selectors and change it only by
// dispatching actions. Every applied action can be appended to a JSONL
// journal for later inspection with `dbgsh history`.
package store

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
)

// Side names one of the two collapsible panels.
type Side string

const (
	SideStart Side = "start" // primary navigation panel
	SideEnd   Side = "end"   // secondary panel
)

// SearchSymbol is the ActiveSearch value of the symbol-search modal.
const SearchSymbol = "symbol"

// SearchProject is the ActiveSearch value of the project-wide search.
const SearchProject = "project"

// State is a snapshot of the store.
type State struct {
	Sources             []source.File
	SelectedSourceID    string
	ActiveSearch        string // "" when no overlay is active
	StartPanelCollapsed bool
	EndPanelCollapsed   bool
	Breakpoints         map[string][]int // source ID → sorted 1-based lines
}

// SelectedSource returns the selected source, or nil.
func (st State) SelectedSource() *source.File {
	if st.SelectedSourceID == "" {
		return nil
	}
	f, ok := source.Find(st.Sources, st.SelectedSourceID)
	if !ok {
		return nil
	}
	return &f
}

// PaneCollapsed reports the collapse flag of side.
func (st State) PaneCollapsed(side Side) bool {
	if side == SideEnd {
		return st.EndPanelCollapsed
	}
	return st.StartPanelCollapsed
}

func (st State) clone() State {
	out := st
	out.Sources = append([]source.File(nil), st.Sources...)
	out.Breakpoints = make(map[string][]int, len(st.Breakpoints))
	for id, lines := range st.Breakpoints {
		out.Breakpoints[id] = append([]int(nil), lines...)
	}
	return out
}

// Writer persists dispatched actions.
type Writer interface {
	Append(a Action) error
	Close() error
}

// Store is the state owner. It is safe for concurrent use; subscribers are
// notified through channels so a bubbletea program can wait on them.
type Store struct {
	mu      sync.Mutex
	state   State
	subs    []chan struct{}
	journal Writer
	logger  *slog.Logger

	// journalMu is taken before mu is released so appends land in apply order.
	journalMu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithJournal appends every applied action to w.
func WithJournal(w Writer) Option {
	return func(s *Store) { s.journal = w }
}

// WithLogger sets the logger used for journal failures and dispatch tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		state:  State{Breakpoints: make(map[string][]int)},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// SelectedSource returns the selected source, or nil.
func (s *Store) SelectedSource() *source.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SelectedSource()
}

// ActiveSearch returns the active overlay name, "" when none is active.
func (s *Store) ActiveSearch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveSearch
}

// PaneCollapsed reports the collapse flag of side.
func (s *Store) PaneCollapsed(side Side) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PaneCollapsed(side)
}

// Breakpoints returns the breakpoint lines of a source.
func (s *Store) Breakpoints(sourceID string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.state.Breakpoints[sourceID]...)
}

// Dispatch applies a. It returns nothing: callers issue requests and observe
// the outcome through selectors or subscriptions.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	changed := a.apply(&s.state)
	if changed {
		for _, ch := range s.subs {
			// Notifications coalesce: one pending signal is enough for a
			// reader that re-reads the whole state.
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
	journal := s.journal
	record := changed && journal != nil
	if record {
		s.journalMu.Lock()
	}
	s.mu.Unlock()

	s.logger.Debug("dispatch", "action", a.Kind, "changed", changed)
	if record {
		defer s.journalMu.Unlock()
		if err := journal.Append(a); err != nil {
			s.logger.Warn("journal append failed", "action", a.Kind, "error", err)
		}
	}
}

// Subscribe returns a channel that receives a signal after each state change.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Unsubscribe stops notifications on ch and closes it.
func (s *Store) Unsubscribe(ch <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.subs {
		if c == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			close(c)
			return
		}
	}
}

func insertLine(lines []int, line int) []int {
	i := sort.SearchInts(lines, line)
	lines = append(lines, 0)
	copy(lines[i+1:], lines[i:])
	lines[i] = line
	return lines
}
