// Package media tracks the viewport width breakpoint that decides whether the
// shell lays its panels out side by side or stacked.
package media

import "sync"

// DefaultMinWidth is the reference breakpoint in pixels.
const DefaultMinWidth = 800

// Query is a width predicate: the viewport matches when it is at least
// MinWidth pixels wide.
type Query struct {
	MinWidth int
}

// Eval reports whether a viewport of the given width satisfies q.
func (q Query) Eval(width int) bool {
	return width >= q.MinWidth
}

// Listener receives the new truth value whenever the query flips.
type Listener interface {
	MediaChanged(matches bool)
}

// ListenerFunc adapts a function to Listener. Always use it through a pointer
// (see Listen) so that Subscribe and Unsubscribe can compare identities.
type ListenerFunc func(matches bool)

// MediaChanged calls f(matches).
func (f *ListenerFunc) MediaChanged(matches bool) { (*f)(matches) }

// Listen wraps fn in a comparable Listener handle.
func Listen(fn func(matches bool)) *ListenerFunc {
	f := ListenerFunc(fn)
	return &f
}

// Monitor wraps a Query and notifies subscribers on boundary crossings only.
// One Monitor exists per process; it is created in main and handed to every
// shell instance.
type Monitor struct {
	mu        sync.Mutex
	query     Query
	width     int
	matches   bool
	listeners []Listener
}

// NewMonitor creates a Monitor evaluated against the initial width.
func NewMonitor(q Query, width int) *Monitor {
	return &Monitor{
		query:   q,
		width:   width,
		matches: q.Eval(width),
	}
}

// Query returns the predicate the monitor evaluates.
func (m *Monitor) Query() Query {
	return m.query
}

// Matches reports the current truth value of the query.
func (m *Monitor) Matches() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matches
}

// Width returns the last width fed to the monitor.
func (m *Monitor) Width() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width
}

// Subscribe registers l. Subscribing the same listener twice is a no-op.
func (m *Monitor) Subscribe(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.listeners {
		if existing == l {
			return
		}
	}
	m.listeners = append(m.listeners, l)
}

// Unsubscribe removes l if present.
func (m *Monitor) Unsubscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.listeners {
		if existing == l {
			m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of registered listeners.
func (m *Monitor) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// Resize feeds a new viewport width. Listeners run synchronously, outside
// the lock, and only when the query's truth value changed.
func (m *Monitor) Resize(width int) {
	m.mu.Lock()
	m.width = width
	next := m.query.Eval(width)
	if next == m.matches {
		m.mu.Unlock()
		return
	}
	m.matches = next
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, l := range listeners {
		l.MediaChanged(next)
	}
}
