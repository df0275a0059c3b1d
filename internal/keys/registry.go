// Package keys provides the process-wide shortcut registry. Consumers bind
// named key combinations to handlers when they activate and unbind them when
// they deactivate; every handler bound to a combo fires when a matching key
// arrives.
package keys

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Event is passed to every handler that matches a key press. Handlers share
// the same Event, so a handler can suppress behaviour for the ones that
// follow and for the shell's default key routing.
type Event struct {
	Msg tea.KeyMsg

	defaultPrevented   bool
	propagationStopped bool
	handled            int
}

// PreventDefault stops the shell from applying the key's default behaviour
// (panel navigation, typing into the focused input).
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// StopPropagation stops dispatch to panels below the registry.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether a handler called StopPropagation.
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

// Handled reports how many handlers ran for the event.
func (e *Event) Handled() int { return e.handled }

// Consumed reports whether the key should not reach the focused panel.
func (e *Event) Consumed() bool {
	return e.defaultPrevented || e.propagationStopped
}

// Handler reacts to a matched shortcut.
type Handler interface {
	HandleShortcut(combo string, ev *Event)
}

// HandlerFunc adapts a function to Handler. Use it through a pointer (see
// Func) so that On and Off compare handler identities.
type HandlerFunc func(combo string, ev *Event)

// HandleShortcut calls f(combo, ev).
func (f *HandlerFunc) HandleShortcut(combo string, ev *Event) { (*f)(combo, ev) }

// Func wraps fn in a comparable Handler handle.
func Func(fn func(combo string, ev *Event)) *HandlerFunc {
	f := HandlerFunc(fn)
	return &f
}

type entry struct {
	binding  key.Binding
	handlers []Handler
}

// Registry maps key combos to handler sets. The zero value is not usable;
// call NewRegistry.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// On binds h to combo. Binding an identical (combo, handler) pair again does
// nothing, so the handler never fires twice for one key.
func (r *Registry) On(combo string, h Handler) {
	if h == nil {
		return
	}
	combo = Normalize(combo)
	if combo == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[combo]
	if !ok {
		e = &entry{binding: key.NewBinding(key.WithKeys(splitCombo(combo)...))}
		r.entries[combo] = e
		r.order = append(r.order, combo)
	}
	for _, existing := range e.handlers {
		if existing == h {
			return
		}
	}
	e.handlers = append(e.handlers, h)
}

// Off removes exactly the (combo, handler) pair. Other handlers on the same
// combo and the same handler on other combos stay bound.
func (r *Registry) Off(combo string, h Handler) {
	combo = Normalize(combo)
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[combo]
	if !ok {
		return
	}
	for i, existing := range e.handlers {
		if existing == h {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			break
		}
	}
	if len(e.handlers) == 0 {
		delete(r.entries, combo)
		for i, c := range r.order {
			if c == combo {
				r.order = append(r.order[:i:i], r.order[i+1:]...)
				break
			}
		}
	}
}

// Len returns the total number of bound (combo, handler) pairs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		n += len(e.handlers)
	}
	return n
}

// Bindings returns the number of handlers bound to combo.
func (r *Registry) Bindings(combo string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[Normalize(combo)]; ok {
		return len(e.handlers)
	}
	return 0
}

// Dispatch invokes every handler bound to a combo matching msg, in the order
// the combos and handlers were bound. Handlers run outside the registry lock
// so they may bind or unbind shortcuts themselves.
func (r *Registry) Dispatch(msg tea.KeyMsg) *Event {
	ev := &Event{Msg: msg}

	type call struct {
		combo string
		h     Handler
	}
	var calls []call
	r.mu.Lock()
	for _, combo := range r.order {
		e := r.entries[combo]
		if !key.Matches(msg, e.binding) {
			continue
		}
		for _, h := range e.handlers {
			calls = append(calls, call{combo: combo, h: h})
		}
	}
	r.mu.Unlock()

	for _, c := range calls {
		ev.handled++
		c.h.HandleShortcut(c.combo, ev)
	}
	return ev
}

// Normalize canonicalises a combo string so that equivalent spellings bind
// to the same entry.
func Normalize(combo string) string {
	parts := splitCombo(combo)
	for i, p := range parts {
		switch strings.ToLower(p) {
		case "escape", "esc":
			parts[i] = "esc"
		case "return", "enter":
			parts[i] = "enter"
		}
	}
	return strings.Join(parts, ",")
}

func splitCombo(combo string) []string {
	var out []string
	for _, p := range strings.Split(combo, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
