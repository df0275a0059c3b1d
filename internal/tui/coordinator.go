package tui

import (
	"log/slog"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/keys"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/layout"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/media"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/store"
)

// Deps are the collaborators a Coordinator is constructed with. Registry and
// Monitor are process-wide and shared; Layout belongs to this instance.
type Deps struct {
	Registry *keys.Registry
	Monitor  *media.Monitor
	Store    *store.Store
	Keys     keys.Table
	Layout   *layout.State
	Logger   *slog.Logger
}

// Coordinator keeps the layout orientation in step with the breakpoint and
// turns the symbol-search and escape shortcuts into store requests. It never
// holds overlay state of its own: every handler reads the store's current
// value before deciding which request to issue.
type Coordinator struct {
	deps Deps

	symbolCombo string
	escCombo    string

	onSymbol *keys.HandlerFunc
	onEscape *keys.HandlerFunc
	onMedia  *media.ListenerFunc

	active  bool
	visible bool
	pending bool // breakpoint changed while hidden
}

// NewCoordinator creates an inactive Coordinator. Nothing is bound until
// Activate.
func NewCoordinator(deps Deps) *Coordinator {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Layout == nil {
		deps.Layout = layout.NewState(layout.Horizontal)
	}
	c := &Coordinator{
		deps:        deps,
		symbolCombo: deps.Keys.Get(keys.SymbolSearch),
		escCombo:    deps.Keys.Get(keys.Escape),
		visible:     true,
	}
	c.onSymbol = keys.Func(c.toggleSymbolModal)
	c.onEscape = keys.Func(c.handleEscape)
	c.onMedia = media.Listen(c.onLayoutChange)
	return c
}

// Deps returns the collaborators the Coordinator was built with.
func (c *Coordinator) Deps() Deps { return c.deps }

// Active reports whether the Coordinator's bindings are registered.
func (c *Coordinator) Active() bool { return c.active }

// Visible reports whether the view is currently visible.
func (c *Coordinator) Visible() bool { return c.visible }

// Activate subscribes to the breakpoint monitor, binds the symbol-search and
// escape shortcuts and initialises the orientation from the monitor's
// current value. Calling it again while active does nothing.
func (c *Coordinator) Activate() {
	if c.active {
		return
	}
	c.active = true
	c.deps.Monitor.Subscribe(c.onMedia)
	c.deps.Registry.On(c.symbolCombo, c.onSymbol)
	c.deps.Registry.On(c.escCombo, c.onEscape)
	c.deps.Layout.SetOrientation(layout.OrientationFor(c.deps.Monitor.Matches()))
	c.deps.Logger.Debug("coordinator activated",
		"orientation", c.deps.Layout.Orientation().String(),
		"symbol_key", c.symbolCombo)
}

// Deactivate releases everything Activate acquired, synchronously. It is
// safe to call more than once.
func (c *Coordinator) Deactivate() {
	if !c.active {
		return
	}
	c.active = false
	c.pending = false
	c.deps.Monitor.Unsubscribe(c.onMedia)
	c.deps.Registry.Off(c.symbolCombo, c.onSymbol)
	c.deps.Registry.Off(c.escCombo, c.onEscape)
	c.deps.Logger.Debug("coordinator deactivated")
}

// Run activates the Coordinator, runs fn and deactivates on every exit path,
// including a panic in fn.
func (c *Coordinator) Run(fn func() error) error {
	c.Activate()
	defer c.Deactivate()
	return fn()
}

// SetVisible records whether the view is visible. Breakpoint changes that
// arrived while hidden are reconciled from the monitor's current value, not
// replayed.
func (c *Coordinator) SetVisible(v bool) {
	c.visible = v
	if !v || !c.pending {
		return
	}
	c.pending = false
	if !c.active {
		return
	}
	c.applyOrientation(c.deps.Monitor.Matches())
}

func (c *Coordinator) onLayoutChange(matches bool) {
	if !c.active {
		c.deps.Logger.Debug("breakpoint change after deactivate ignored")
		return
	}
	if !c.visible {
		c.pending = true
		return
	}
	c.applyOrientation(matches)
}

func (c *Coordinator) applyOrientation(matches bool) {
	o := layout.OrientationFor(matches)
	if c.deps.Layout.SetOrientation(o) {
		c.deps.Logger.Debug("orientation changed", "orientation", o.String())
	}
}

// toggleSymbolModal opens the symbol modal, or closes it when it is the
// active overlay. It always claims the key event.
func (c *Coordinator) toggleSymbolModal(_ string, ev *keys.Event) {
	if !c.active {
		c.deps.Logger.Debug("symbol shortcut after deactivate ignored")
		return
	}
	ev.PreventDefault()
	ev.StopPropagation()

	if c.deps.Store.SelectedSource() == nil {
		return
	}
	if c.deps.Store.ActiveSearch() == store.SearchSymbol {
		c.deps.Store.Dispatch(store.CloseActiveSearch())
		return
	}
	c.deps.Store.Dispatch(store.SetActiveSearch(store.SearchSymbol))
}

// handleEscape closes whatever overlay is active. With no overlay it leaves
// the event alone.
func (c *Coordinator) handleEscape(_ string, ev *keys.Event) {
	if !c.active {
		c.deps.Logger.Debug("escape after deactivate ignored")
		return
	}
	if c.deps.Store.ActiveSearch() == "" {
		return
	}
	ev.PreventDefault()
	c.deps.Store.Dispatch(store.CloseActiveSearch())
}
