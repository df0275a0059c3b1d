package tui

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Debugshell/internal/keys"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/layout"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/source"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/store"
	"github.com/LISSConsulting/LISSTech.Debugshell/internal/tui/panels"
)

// Options configure a Model.
type Options struct {
	ProjectName string
	Root        string // project root sources are read from
	AccentColor string
	Splits      layout.Config
	Scale       layout.Scale
	ResizeStep  int // cells per keyboard resize
}

// Model is the root bubbletea model of the debugger shell.
type Model struct {
	c       *Coordinator
	deps    Deps
	opts    Options
	keymap  KeyMap
	theme   Theme
	log     *slog.Logger
	changes <-chan struct{}

	// Sub-panels
	sources   panels.SourcesPanel
	editor    panels.EditorPanel
	secondary panels.SecondaryPanel
	symbols   panels.SymbolModal

	// Last store snapshot the panels were synced to
	state   store.State
	overlay string

	// Symbols of the loaded source
	symbolsOf string
	symbolSet []source.Symbol

	// Layout
	width       int
	height      int
	focus       FocusTarget
	orientation layout.Orientation
	local       map[layout.SplitID]int // sizes of splits that do not report
	drag        *layout.Drag
	arr         layout.Arrangement

	pendingLine int // line to jump to once the selected source loads
}

// New creates the root model for c. The Coordinator should be active before
// the model is run; New only reads from it.
func New(c *Coordinator, opts Options) Model {
	deps := c.Deps()
	if opts.Scale.CellWidth <= 0 || opts.Scale.CellHeight <= 0 {
		opts.Scale = layout.DefaultScale
	}
	if opts.ResizeStep <= 0 {
		opts.ResizeStep = 1
	}
	if opts.Splits == (layout.Config{}) {
		opts.Splits = layout.DefaultConfig()
	}

	km := NewKeyMap(deps.Keys)
	search := panels.NewProjectSearch(deps.Store, deps.Keys.Get(keys.ProjectSearch))
	m := Model{
		c:           c,
		deps:        deps,
		opts:        opts,
		keymap:      km,
		theme:       NewTheme(opts.AccentColor),
		log:         deps.Logger.With("component", "tui"),
		changes:     deps.Store.Subscribe(),
		sources:     panels.NewSourcesPanel(nil, 20, 10),
		editor:      panels.NewEditorPanel(search, 40, 10),
		secondary:   panels.NewSecondaryPanel(40, 10),
		symbols:     panels.NewSymbolModal(),
		width:       80,
		height:      24,
		focus:       FocusPrimary,
		orientation: deps.Layout.Orientation(),
	}
	m.editor = m.editor.SetWelcome(m.welcome(0))
	m, _ = m.sync()
	return m.relayout()
}

// Bind registers the shortcuts the model's panels own.
func (m Model) Bind() { m.editor.Search().Bind(m.deps.Registry) }

// Release undoes Bind.
func (m Model) Release() { m.editor.Search().Release(m.deps.Registry) }

// Close stops listening for store changes.
func (m Model) Close() { m.deps.Store.Unsubscribe(m.changes) }

// Run activates c, runs the shell until the user quits and releases
// everything it bound on the way out.
func Run(c *Coordinator, opts Options, progOpts ...tea.ProgramOption) error {
	return c.Run(func() error {
		m := New(c, opts)
		m.Bind()
		defer m.Release()
		defer m.Close()
		_, err := tea.NewProgram(m, progOpts...).Run()
		return err
	})
}

// Init waits for store changes and loads the initially selected source.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(m.changes)}
	if f := m.state.SelectedSource(); f != nil {
		cmds = append(cmds, loadSource(m.opts.Root, *f))
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming bubbletea messages. Every message is followed
// by a sync against the store, so requests dispatched while handling it are
// reflected before the next render.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m, syncCmd := m.sync()
	return m, tea.Batch(cmd, syncCmd)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.FocusMsg:
		m.c.SetVisible(true)
		return m.relayout(), nil
	case tea.BlurMsg:
		m.c.SetVisible(false)
		return m.relayout(), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case storeChangedMsg:
		return m, waitForChange(m.changes)
	case sourceLoadedMsg:
		return m.handleSourceLoaded(msg)
	case panels.SourceSelectedMsg:
		m.deps.Store.Dispatch(store.SelectSource(msg.ID))
		return m, nil
	case panels.ToggleBreakpointMsg:
		m.deps.Store.Dispatch(store.ToggleBreakpoint(msg.SourceID, msg.Line))
		return m, nil
	case panels.SymbolChosenMsg:
		m.deps.Store.Dispatch(store.CloseActiveSearch())
		m.editor = m.editor.Goto(msg.Symbol.Line)
		m.focus = FocusEditor
		return m, nil
	case panels.MatchChosenMsg:
		m.deps.Store.Dispatch(store.CloseActiveSearch())
		return m.jumpTo(msg.SourceID, msg.Line), nil
	case panels.BreakpointChosenMsg:
		return m.jumpTo(msg.SourceID, msg.Line), nil
	case panels.SearchResultsMsg:
		if msg.Err != nil {
			m.log.Warn("project search failed", "query", msg.Query, "error", msg.Err)
		}
		m.editor = m.editor.SetSearchResults(msg)
		return m, nil
	}
	return m.delegateToFocused(msg)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	// The monitor notifies the Coordinator synchronously when the
	// breakpoint is crossed, so the orientation is current below.
	m.deps.Monitor.Resize(msg.Width * m.opts.Scale.CellWidth)
	return m.relayout(), nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		return m, tea.Quit
	}

	ev := m.deps.Registry.Dispatch(msg)
	if ev.Consumed() {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.overlay {
	case store.SearchSymbol:
		m.symbols, cmd = m.symbols.Update(msg)
		return m, cmd
	case store.SearchProject:
		m.editor, cmd = m.editor.UpdateSearch(msg, m.runSearch)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.NextPanel):
		m.focus = m.focus.step(1, m.focusVisible)
	case key.Matches(msg, m.keymap.PrevPanel):
		m.focus = m.focus.step(-1, m.focusVisible)
	case key.Matches(msg, m.keymap.ToggleStart):
		m.deps.Store.Dispatch(store.TogglePaneCollapse(store.SideStart))
	case key.Matches(msg, m.keymap.ToggleEnd):
		m.deps.Store.Dispatch(store.TogglePaneCollapse(store.SideEnd))
	case key.Matches(msg, m.keymap.GrowStart):
		return m.nudge(layout.SplitOuter, m.opts.ResizeStep), nil
	case key.Matches(msg, m.keymap.ShrinkStart):
		return m.nudge(layout.SplitOuter, -m.opts.ResizeStep), nil
	case key.Matches(msg, m.keymap.GrowEnd):
		return m.nudge(layout.SplitInner, m.opts.ResizeStep), nil
	case key.Matches(msg, m.keymap.ShrinkEnd):
		return m.nudge(layout.SplitInner, -m.opts.ResizeStep), nil
	default:
		return m.delegateToFocused(msg)
	}
	return m, nil
}

func (m Model) delegateToFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusPrimary:
		m.sources, cmd = m.sources.Update(msg)
	case FocusEditor:
		m.editor, cmd = m.editor.Update(msg)
	case FocusSecondary:
		m.secondary, cmd = m.secondary.Update(msg)
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if sp, ok := m.arr.SplitterAt(msg.X, msg.Y); ok {
			m.drag = layout.BeginDrag(sp, m.opts.Scale)
			m.log.Debug("drag started", "split", sp.ID)
			return m, nil
		}
		for _, f := range []FocusTarget{FocusPrimary, FocusEditor, FocusSecondary} {
			if r, ok := m.arr.Panes[f.Region()]; ok && r.Contains(msg.X, msg.Y) {
				m.focus = f
			}
		}
	case msg.Action == tea.MouseActionMotion && m.drag != nil:
		m.drag.Move(msg.X, msg.Y)
		return m.relayout(), nil
	case msg.Action == tea.MouseActionRelease && m.drag != nil:
		d := m.drag
		m.drag = nil
		if !d.Moved() {
			return m.relayout(), nil
		}
		return m.commitResize(d.End()), nil
	}
	return m, nil
}

// nudge resizes split id by delta cells, as one complete resize.
func (m Model) nudge(id layout.SplitID, delta int) Model {
	sp, ok := m.arr.Splitter(id)
	if !ok {
		return m
	}
	return m.commitResize(layout.Resize{
		Split:  id,
		Target: sp.Split.Report,
		Px:     sp.Nudged(m.opts.Scale, delta),
	})
}

// commitResize records a finished resize: reporting splits go to the layout
// state, the others keep a local size until the orientation changes.
func (m Model) commitResize(r layout.Resize) Model {
	if r.Target == layout.TargetNone {
		m.local = withLocal(m.local, r.Split, r.Px)
	} else {
		m.deps.Layout.ResizeEnd(r.Target, r.Px)
	}
	m.log.Debug("resize end", "split", r.Split, "target", r.Target.String(), "px", r.Px)
	return m.relayout()
}

func (m Model) handleSourceLoaded(msg sourceLoadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("source load failed", "source", msg.ID, "error", msg.Err)
	}
	m.editor = m.editor.ShowContent(msg.ID, msg.Content, msg.Err)
	if msg.ID != m.editor.Current() {
		return m, nil
	}
	m.symbolsOf = msg.ID
	m.symbolSet = msg.Symbols
	if m.overlay == store.SearchSymbol && m.symbols.SourceID() == msg.ID {
		m.symbols = m.symbols.SetSymbols(msg.Symbols)
	}
	if m.pendingLine > 0 {
		m.editor = m.editor.Goto(m.pendingLine)
		m.pendingLine = 0
	}
	return m, nil
}

// jumpTo selects source id and moves to line once it is shown.
func (m Model) jumpTo(id string, line int) Model {
	m.focus = FocusEditor
	if id == m.editor.Current() && m.editor.Loaded() {
		m.editor = m.editor.Goto(line)
		return m
	}
	m.pendingLine = line
	m.deps.Store.Dispatch(store.SelectSource(id))
	return m
}

func (m Model) runSearch(query string) tea.Cmd {
	return panels.SearchCmd(m.opts.Root, m.state.Sources, query)
}

func (m Model) currentSymbols(id string) []source.Symbol {
	if id == m.symbolsOf {
		return m.symbolSet
	}
	return nil
}

// sync brings the panels in line with the store's current state.
func (m Model) sync() (Model, tea.Cmd) {
	prev := m.state
	st := m.deps.Store.State()
	m.state = st
	var cmds []tea.Cmd

	if !slices.Equal(prev.Sources, st.Sources) {
		m.sources = m.sources.SetSources(st.Sources)
		m.editor = m.editor.Retain(func(id string) bool {
			_, ok := source.Find(st.Sources, id)
			return ok
		}).SetWelcome(m.welcome(len(st.Sources)))
	}

	sel := st.SelectedSourceID
	m.sources = m.sources.SetSelected(sel)
	if sel != m.editor.Current() {
		m.editor = m.editor.Open(sel)
		if f := st.SelectedSource(); f != nil {
			cmds = append(cmds, loadSource(m.opts.Root, *f))
		} else {
			m.pendingLine = 0
		}
		m.log.Debug("source shown", "source", sel)
	}
	m.editor = m.editor.SetBreakpoints(st.Breakpoints[sel])
	m.secondary = m.secondary.SetBreakpoints(breakpointRows(st.Breakpoints))

	if st.ActiveSearch != m.overlay {
		switch m.overlay {
		case store.SearchSymbol:
			m.symbols = m.symbols.Close()
		case store.SearchProject:
			m.editor = m.editor.CloseSearch()
		}
		var cmd tea.Cmd
		switch st.ActiveSearch {
		case store.SearchSymbol:
			m.symbols, cmd = m.symbols.Open(sel, m.currentSymbols(sel))
		case store.SearchProject:
			m.editor, cmd = m.editor.OpenSearch()
		}
		cmds = append(cmds, cmd)
		m.overlay = st.ActiveSearch
	}

	if prev.StartPanelCollapsed != st.StartPanelCollapsed ||
		prev.EndPanelCollapsed != st.EndPanelCollapsed ||
		m.orientation != m.deps.Layout.Orientation() {
		m = m.relayout()
	}
	return m, tea.Batch(cmds...)
}

func breakpointRows(bps map[string][]int) []panels.BreakpointRow {
	ids := make([]string, 0, len(bps))
	for id := range bps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var rows []panels.BreakpointRow
	for _, id := range ids {
		for _, line := range bps[id] {
			rows = append(rows, panels.BreakpointRow{SourceID: id, Line: line})
		}
	}
	return rows
}

// compose builds the pane tree for the current state, with any in-flight
// drag applied as a preview.
func (m Model) compose() *layout.Node {
	root := layout.Compose(layout.Inputs{
		Orientation:    m.orientation,
		Sizes:          m.deps.Layout.Sizes(),
		StartCollapsed: m.state.StartPanelCollapsed,
		EndCollapsed:   m.state.EndPanelCollapsed,
		Local:          m.local,
	}, m.opts.Splits)
	if m.drag != nil {
		m.drag.Apply(root)
	}
	return root
}

// relayout recomposes the pane tree and resizes the panels. A new
// orientation discards local split sizes and any drag in progress.
func (m Model) relayout() Model {
	if o := m.deps.Layout.Orientation(); o != m.orientation {
		m.orientation = o
		m.local = nil
		m.drag = nil
		m.log.Debug("layout recomposed", "orientation", o.String())
	}
	m.arr = layout.Arrange(m.compose(), bodyRect(m.width, m.height), m.opts.Scale)

	if r, ok := m.arr.Panes[layout.RegionPrimary]; ok {
		m.sources = m.sources.SetSize(innerDims(r))
	}
	if r, ok := m.arr.Panes[layout.RegionEditor]; ok {
		m.editor = m.editor.SetSize(innerDims(r))
	}
	if r, ok := m.arr.Panes[layout.RegionSecondary]; ok {
		m.secondary = m.secondary.SetSize(innerDims(r))
	}
	m.symbols = m.symbols.SetWidth(min(60, max(m.width-4, 20)))
	if !m.focusVisible(m.focus) {
		m.focus = FocusEditor
	}
	m.secondary = m.secondary.SetLayoutInfo(m.layoutInfo())
	return m
}

func (m Model) welcome(sources int) panels.WelcomeProps {
	return panels.WelcomeProps{
		ProjectName: m.opts.ProjectName,
		Sources:     sources,
		Bindings:    flatten(m.keymap.FullHelp()),
	}
}

func (m Model) focusVisible(f FocusTarget) bool {
	return m.arr.Visible(f.Region())
}

func (m Model) layoutInfo() panels.LayoutInfo {
	sizes := m.deps.Layout.Sizes()
	info := panels.LayoutInfo{
		Orientation:    m.orientation.String(),
		ViewportPx:     m.deps.Monitor.Width(),
		BreakpointPx:   m.deps.Monitor.Query().MinWidth,
		Visible:        m.c.Visible(),
		StartPx:        sizes.Start,
		EndPx:          sizes.End,
		StartCollapsed: m.state.StartPanelCollapsed,
		EndCollapsed:   m.state.EndPanelCollapsed,
	}
	for _, sp := range m.arr.Splitters {
		info.Splits = append(info.Splits, describeSplit(sp, m.opts.Scale))
	}
	return info
}

// View renders the shell.
func (m Model) View() string {
	if tooSmall(m.width, m.height) {
		msg := fmt.Sprintf("Terminal too small (%dx%d).\nPlease resize to at least %dx%d.",
			m.width, m.height, minWidth, minHeight)
		return tooSmallStyle.
			Width(m.width).
			Align(lipgloss.Center).
			Render(msg)
	}

	header := panels.RenderHeader(panels.HeaderProps{
		ProjectName: m.opts.ProjectName,
		WorkDir:     m.opts.Root,
		Source:      m.state.SelectedSourceID,
		Orientation: m.orientation.String(),
		Overlay:     m.overlay,
		Hidden:      !m.c.Visible(),
	}, m.width, m.theme.AccentHeaderStyle())

	focus := m.focus.String()
	if m.overlay != "" {
		focus = m.overlay
	}
	footer := panels.RenderFooter(panels.FooterProps{
		Focus:    focus,
		Status:   m.status(),
		Bindings: m.keymap.ShortHelp(),
	}, m.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderBody(), footer)
}

func (m Model) status() string {
	n := 0
	for _, lines := range m.state.Breakpoints {
		n += len(lines)
	}
	return fmt.Sprintf("%d sources · %d breakpoints", len(m.state.Sources), n)
}

// renderBody paints every visible pane and divider at its arranged position
// and the symbol modal over them.
func (m Model) renderBody() string {
	body := bodyRect(m.width, m.height)
	c := newCanvas(body.Width, body.Height)

	for _, f := range []FocusTarget{FocusPrimary, FocusEditor, FocusSecondary} {
		r, ok := m.arr.Panes[f.Region()]
		if !ok || r.Width < 1 || r.Height < 1 {
			continue
		}
		w, h := innerDims(r)
		box := m.theme.PanelBorderStyle(f == m.focus && m.overlay != store.SearchSymbol).
			Width(w).Height(h).
			MaxWidth(r.Width).MaxHeight(r.Height).
			Render(m.panelView(f))
		c.paint(box, r.X-body.X, r.Y-body.Y)
	}

	for _, sp := range m.arr.Splitters {
		dragging := m.drag != nil && m.drag.Splitter().ID == sp.ID
		c.paint(m.theme.SplitterStyle(dragging).Render(splitterBlock(sp)), sp.Rect.X-body.X, sp.Rect.Y-body.Y)
	}

	if m.overlay == store.SearchSymbol {
		c.center(m.symbols.View())
	}
	return c.String()
}

func (m Model) panelView(f FocusTarget) string {
	switch f {
	case FocusPrimary:
		return m.sources.View()
	case FocusSecondary:
		return m.secondary.View()
	default:
		return m.editor.View()
	}
}
