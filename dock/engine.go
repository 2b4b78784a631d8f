// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/engine.go
// Summary: Implements the docking manager for the docking engine.
// Usage: Used as the single owner of layout state, windows and drag gestures.

package dock

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// State is the manager's gesture state. Exactly one state is active at a
// time; events that do not belong to the current state are ignored.
type State int

const (
	StateIdle State = iota
	StateDraggingWindow
	StateDraggingTab
	StateResizing
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateDraggingWindow:
		return "dragging-window"
	case StateDraggingTab:
		return "dragging-tab"
	case StateResizing:
		return "resizing"
	case StateRendering:
		return "rendering"
	default:
		return "idle"
	}
}

// WidgetResolver creates widgets from persistent identifiers during layout
// restoration. The registry package provides the standard implementation.
type WidgetResolver interface {
	Create(key string) (Widget, string, error)
}

// WidgetLifecycleManager governs how hosted widgets are started and
// stopped. The default implementation runs them locally; tests substitute
// tracking versions.
type WidgetLifecycleManager interface {
	StartWidget(p *Panel, refresh chan<- bool)
	StopWidget(p *Panel)
}

type localWidgetLifecycle struct{}

func (localWidgetLifecycle) StartWidget(p *Panel, refresh chan<- bool) { p.start(refresh) }
func (localWidgetLifecycle) StopWidget(p *Panel)                      { p.stop() }

// Options tunes a Manager. Zero values fall back to sensible defaults.
type Options struct {
	Theme                 *Theme
	Resolver              WidgetResolver
	Lifecycle             WidgetLifecycleManager
	MinWindowWidth        int
	MinWindowHeight       int
	DefaultFloatingWidth  int
	DefaultFloatingHeight int
	CascadeStep           int
}

func (o *Options) fillDefaults() {
	if o.Theme == nil {
		fg, bg := initDefaultColors()
		o.Theme = DefaultTheme(fg, bg)
	}
	if o.Lifecycle == nil {
		o.Lifecycle = localWidgetLifecycle{}
	}
	if o.MinWindowWidth <= 0 {
		o.MinWindowWidth = 16
	}
	if o.MinWindowHeight <= 0 {
		o.MinWindowHeight = 5
	}
	if o.DefaultFloatingWidth <= 0 {
		o.DefaultFloatingWidth = 48
	}
	if o.DefaultFloatingHeight <= 0 {
		o.DefaultFloatingHeight = 14
	}
	if o.CascadeStep <= 0 {
		o.CascadeStep = 2
	}
}

// overlayKey identifies the owner of one overlay: a tab group within a
// window, or the window itself when group is nil.
type overlayKey struct {
	window *Window
	group  *TabGroupNode
}

type overlaySpec struct {
	rect  Rect
	icons []DockLocation
	style overlayStyle
}

type dragState struct {
	window *Window // dragged window, or host window of the dragged tab
	panel  *Panel  // set for tab drags
	offset Point   // grab offset inside the title bar
	last   Point

	barGroup  *TabGroupNode // current tab-bar insertion target
	barWindow *Window
	barIndex  int
	barMark   Point // insertion marker cell on the bar row
}

type stateHandlers struct {
	provider func() (map[string]any, error)
	restorer func(map[string]any) error
}

// Manager owns the model, the window stack, gesture state and all
// rendering. All mutation happens on the event loop goroutine.
type Manager struct {
	driver     ScreenDriver
	model      *LayoutModel
	dispatcher *EventDispatcher
	renderer   *renderer
	hit        *HitTestCache
	opts       Options

	windows []*Window // bottom to top
	main    *Window

	state     State
	rendering bool
	drag      *dragState
	resize    *resizeState
	pending   *pendingTab

	overlays map[overlayKey]*dockOverlay

	activePanel *Panel

	stateHandlers map[string]stateHandlers

	screenRect  Rect
	cascade     int
	prevButtons tcell.ButtonMask

	refresh chan bool
	quit    chan struct{}
	stopped bool
}

// NewManager wires a manager over the given driver.
func NewManager(driver ScreenDriver, opts Options) *Manager {
	opts.fillDefaults()
	m := &Manager{
		driver:        driver,
		model:         NewLayoutModel(),
		dispatcher:    NewEventDispatcher(),
		renderer:      newRenderer(opts.Theme),
		opts:          opts,
		overlays:      make(map[overlayKey]*dockOverlay),
		stateHandlers: make(map[string]stateHandlers),
		refresh:       make(chan bool, 8),
		quit:          make(chan struct{}),
	}
	m.hit = newHitTestCache(m.collectRegions)
	return m
}

// Dispatcher exposes the event bus for listener registration.
func (m *Manager) Dispatcher() *EventDispatcher { return m.dispatcher }

// Model exposes the layout model, read-only by convention.
func (m *Manager) Model() *LayoutModel { return m.model }

// State reports the current gesture state. While a render pass is in
// flight it reports StateRendering regardless of the underlying gesture.
func (m *Manager) State() State {
	if m.rendering {
		return StateRendering
	}
	return m.state
}

// MainWindow returns the main window, or nil before CreateMainWindow.
func (m *Manager) MainWindow() *Window { return m.main }

// Windows returns the window stack, bottom to top.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, len(m.windows))
	copy(out, m.windows)
	return out
}

// collectRegions harvests drop regions from every window view, topmost
// window first.
func (m *Manager) collectRegions() []hitRegion {
	var out []hitRegion
	for i := len(m.windows) - 1; i >= 0; i-- {
		w := m.windows[i]
		if w.view == nil {
			continue
		}
		out = append(out, w.view.regions...)
	}
	return out
}

// Init prepares the driver and sizes the desktop. Call before Run or, in
// tests, before driving events manually.
func (m *Manager) Init() error {
	if err := m.driver.Init(); err != nil {
		return fmt.Errorf("driver init: %w", err)
	}
	m.driver.SetStyle(m.opts.Theme.Desktop)
	m.driver.HideCursor()
	cols, rows := m.driver.Size()
	m.screenRect = Rect{W: cols, H: rows}
	return nil
}

// Run drives the event loop until Stop is called. It assumes Init
// succeeded.
func (m *Manager) Run() error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := m.driver.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-m.quit:
				return
			}
		}
	}()

	m.RenderAll()
	for {
		select {
		case <-m.quit:
			return nil
		case <-m.refresh:
			m.RenderAll()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			m.handleEvent(ev)
		}
	}
}

// Stop tears the manager down: widgets stopped, driver finalized.
func (m *Manager) Stop() {
	if m.stopped {
		return
	}
	m.stopped = true
	for _, p := range m.model.AllPanels() {
		m.opts.Lifecycle.StopWidget(p)
	}
	close(m.quit)
	m.driver.Fini()
}

func (m *Manager) handleEvent(ev tcell.Event) {
	if m.rendering {
		return
	}
	switch t := ev.(type) {
	case *tcell.EventResize:
		cols, rows := t.Size()
		m.handleScreenResize(cols, rows)
	case *tcell.EventKey:
		m.handleKey(t)
	case *tcell.EventMouse:
		m.handleMouse(t)
	}
}

func (m *Manager) handleScreenResize(cols, rows int) {
	m.screenRect = Rect{W: cols, H: rows}
	for _, w := range m.windows {
		if w == m.main || w.Maximized {
			w.Frame = m.screenRect
			continue
		}
		// keep floating windows on screen
		w.Frame.X = clamp(w.Frame.X, 0, max(cols-w.Frame.W, 0))
		w.Frame.Y = clamp(w.Frame.Y, 0, max(rows-w.Frame.H, 0))
	}
	m.RenderAll()
}

func (m *Manager) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlQ {
		m.Stop()
		return
	}
	if m.activePanel != nil && m.activePanel.Widget != nil {
		m.activePanel.Widget.HandleKey(ev)
	}
}

// RenderAll rebuilds every window view and repaints the screen. Re-entrant
// events arriving while the pass runs are dropped.
func (m *Manager) RenderAll() {
	if m.rendering {
		return
	}
	m.rendering = true
	defer func() { m.rendering = false }()

	d := &drawCtx{drv: m.driver, clip: m.screenRect}
	d.fill(m.screenRect, ' ', m.opts.Theme.Desktop)

	top := m.topWindow()
	for _, w := range m.windows {
		root, _ := m.model.Root(w)
		m.renderer.layoutWindow(w, root)
		m.renderer.drawWindow(m.driver, w, w == top)
	}

	for _, o := range m.overlays {
		o.draw(d, m.opts.Theme)
	}
	if m.state == StateResizing && m.resize != nil {
		d.box(m.resize.preview, m.opts.Theme.BorderActive)
	}
	if m.drag != nil && m.drag.barGroup != nil {
		d.set(m.drag.barMark.X, m.drag.barMark.Y, '│', m.opts.Theme.OverlayHot)
	}
	if m.state == StateDraggingTab && m.drag != nil && m.drag.panel != nil {
		label := " " + m.drag.panel.DisplayTitle() + " "
		d.text(m.drag.last.X+1, m.drag.last.Y+1, m.screenRect.W, label, m.opts.Theme.TabActive)
	}

	m.driver.Show()
	m.hit.Invalidate()
}

func (m *Manager) topWindow() *Window {
	if len(m.windows) == 0 {
		return nil
	}
	return m.windows[len(m.windows)-1]
}

func (m *Manager) windowAt(p Point) *Window {
	for i := len(m.windows) - 1; i >= 0; i-- {
		if m.windows[i].Frame.Contains(p) {
			return m.windows[i]
		}
	}
	return nil
}

// BringToFront raises the window to the top of the stack.
func (m *Manager) BringToFront(w *Window) {
	for i, ww := range m.windows {
		if ww == w {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			m.windows = append(m.windows, w)
			m.hit.Invalidate()
			return
		}
	}
}

// CreateMainWindow installs the screen-filling main window with a
// persistent root.
func (m *Manager) CreateMainWindow(title string) *Window {
	w := newWindow(title, m.screenRect, WindowMain)
	m.model.Register(w, NewTabGroupNode())
	m.windows = append(m.windows, w)
	m.main = w
	return w
}

// CreatePinnedRoot creates a secondary persistent root: a floating window
// that survives emptying out.
func (m *Manager) CreatePinnedRoot(title string, frame Rect) *Window {
	if frame.Empty() {
		frame = m.nextCascadeFrame()
	}
	w := newWindow(title, frame, WindowPinnedRoot)
	m.model.Register(w, NewTabGroupNode())
	m.windows = append(m.windows, w)
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
	return w
}

// CreateFloating wraps the panels in a new floating window. A zero frame
// picks the next cascade position at the default size.
func (m *Manager) CreateFloating(frame Rect, panels ...*Panel) *Window {
	if frame.Empty() {
		frame = m.nextCascadeFrame()
	}
	title := "Untitled"
	if len(panels) > 0 {
		title = panels[0].DisplayTitle()
	}
	w := newWindow(title, frame, WindowFloating)
	g := NewTabGroupNode()
	for _, p := range panels {
		g.Children = append(g.Children, NewWidgetNode(p))
	}
	m.model.Register(w, g)
	m.windows = append(m.windows, w)
	for _, p := range panels {
		m.opts.Lifecycle.StartWidget(p, m.refresh)
	}
	if len(panels) > 0 {
		m.activePanel = panels[0]
	}
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
	return w
}

func (m *Manager) nextCascadeFrame() Rect {
	step := m.opts.CascadeStep
	off := 2 + m.cascade*step
	m.cascade = (m.cascade + 1) % 10
	f := Rect{X: off, Y: off, W: m.opts.DefaultFloatingWidth, H: m.opts.DefaultFloatingHeight}
	if !m.screenRect.Empty() {
		f.X = clamp(f.X, 0, max(m.screenRect.W-f.W, 0))
		f.Y = clamp(f.Y, 0, max(m.screenRect.H-f.H, 0))
	}
	return f
}

// FindPanelByID locates a hosted panel by its persistent identifier.
func (m *Manager) FindPanelByID(persistentID string) (*Panel, bool) {
	for _, p := range m.model.AllPanels() {
		if p.PersistentID == persistentID {
			return p, true
		}
	}
	return nil, false
}

// AllPanels returns every hosted panel in visual order.
func (m *Manager) AllPanels() []*Panel { return m.model.AllPanels() }

// FloatingPanels returns the panels hosted outside the main window.
func (m *Manager) FloatingPanels() []*Panel {
	var out []*Panel
	for _, w := range m.model.Windows() {
		if w == m.main {
			continue
		}
		root, _ := m.model.Root(w)
		out = append(out, PanelsUnder(root)...)
	}
	return out
}

// ActivatePanel makes the panel the visible tab of its group, focuses its
// window and routes keys to it.
func (m *Manager) ActivatePanel(p *Panel) error {
	host, ok := m.model.FindHost(p)
	if !ok {
		return fmt.Errorf("ActivatePanel %q: %w", p.PersistentID, ErrNotManaged)
	}
	host.Group.Active = host.Index
	m.activePanel = p
	m.BringToFront(host.Window)
	m.RenderAll()
	m.dispatcher.Broadcast(Event{Type: EventPanelActivated, Panel: p, PersistentID: p.PersistentID, Window: host.Window})
	return nil
}

// removePanelNode splices the panel out of its group and simplifies the
// source window, closing it when it empties out. The widget keeps running.
// detachPanelNode splices the panel out of its group without simplifying
// the tree, so the caller can still restore it with restoreDetached.
func (m *Manager) detachPanelNode(p *Panel) (HostInfo, bool) {
	host, ok := m.model.FindHost(p)
	if !ok {
		return HostInfo{}, false
	}
	g := host.Group
	g.Children = append(g.Children[:host.Index], g.Children[host.Index+1:]...)
	if g.Active >= len(g.Children) && g.Active > 0 {
		g.Active = len(g.Children) - 1
	}
	return host, true
}

// restoreDetached puts a detached node back where it came from.
func (m *Manager) restoreDetached(host HostInfo) {
	g := host.Group
	g.Children = append(g.Children, nil)
	copy(g.Children[host.Index+1:], g.Children[host.Index:])
	g.Children[host.Index] = host.Node
}

// settleDetached simplifies the tree the panel left behind, dropping the
// window when nothing remains.
func (m *Manager) settleDetached(p *Panel, host HostInfo) {
	if !simplifyTree(m.model, host.Window) {
		m.closeWindowShell(host.Window)
	}
	if m.activePanel == p {
		m.activePanel = nil
	}
}

func (m *Manager) removePanelNode(p *Panel) (HostInfo, error) {
	host, ok := m.detachPanelNode(p)
	if !ok {
		return HostInfo{}, fmt.Errorf("panel %q: %w", p.PersistentID, ErrNotManaged)
	}
	m.settleDetached(p, host)
	return host, nil
}

// closeWindowShell drops an emptied window without touching panels.
func (m *Manager) closeWindowShell(w *Window) {
	m.model.Unregister(w)
	for i, ww := range m.windows {
		if ww == w {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			break
		}
	}
	m.hit.Invalidate()
	m.dispatcher.Broadcast(Event{Type: EventWindowClosed, Window: w})
}

// firstGroup finds the first tab group in a window's tree, depth-first.
func (m *Manager) firstGroup(w *Window) *TabGroupNode {
	root, ok := m.model.Root(w)
	if !ok {
		return nil
	}
	var g *TabGroupNode
	walkGroups(root, func(t *TabGroupNode) {
		if g == nil {
			g = t
		}
	})
	return g
}

// DockPanel docks source next to (or onto) the group hosting target.
// Center stacks it as a new tab; directional locations split the target
// group. Both panels must already be managed.
func (m *Manager) DockPanel(source, target *Panel, loc DockLocation) error {
	if source == target {
		return fmt.Errorf("DockPanel: source and target are the same panel")
	}
	tHost, ok := m.model.FindHost(target)
	if !ok {
		return fmt.Errorf("DockPanel: target %q: %w", target.PersistentID, ErrNotManaged)
	}
	if _, ok := m.model.FindHost(source); !ok {
		return fmt.Errorf("DockPanel: source %q: %w", source.PersistentID, ErrNotManaged)
	}
	if loc == DockNone {
		return fmt.Errorf("DockPanel: location %v invalid", loc)
	}
	node := NewWidgetNode(source)
	if loc == DockCenter {
		if _, err := m.removePanelNode(source); err != nil {
			return err
		}
		m.insertIntoGroup(tHost.Group, node, len(tHost.Group.Children))
	} else {
		sHost, ok := m.detachPanelNode(source)
		if !ok {
			return fmt.Errorf("DockPanel: source %q: %w", source.PersistentID, ErrNotManaged)
		}
		if err := m.splitGroup(tHost.Window, tHost.Group, NewTabGroupNode(node), loc); err != nil {
			m.restoreDetached(sHost)
			return err
		}
		m.settleDetached(source, sHost)
	}
	m.RenderAll()
	m.dispatcher.Broadcast(Event{Type: EventPanelDocked, Panel: source, PersistentID: source.PersistentID, Window: tHost.Window, Location: loc})
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
	return nil
}

func (m *Manager) insertIntoGroup(g *TabGroupNode, node *WidgetNode, index int) {
	index = clamp(index, 0, len(g.Children))
	g.Children = append(g.Children, nil)
	copy(g.Children[index+1:], g.Children[index:])
	g.Children[index] = node
	g.Active = index
	m.activePanel = node.Panel
}

// splitGroup replaces the target group in its tree with a splitter holding
// the incoming subtree and the group. Top and left place the incoming
// subtree first.
func (m *Manager) splitGroup(w *Window, g *TabGroupNode, incoming Node, loc DockLocation) error {
	o := Horizontal
	if loc == DockTop || loc == DockBottom {
		o = Vertical
	}
	var sp *SplitterNode
	if loc == DockTop || loc == DockLeft {
		sp = NewSplitterNode(o, incoming, g)
	} else {
		sp = NewSplitterNode(o, g, incoming)
	}
	return m.model.ReplaceInParent(w, g, sp)
}

// splitRoot pushes the incoming subtree against a whole window: the old
// root and the subtree become children of a new root splitter.
func (m *Manager) splitRoot(w *Window, incoming Node, loc DockLocation) error {
	root, ok := m.model.Root(w)
	if !ok {
		return fmt.Errorf("splitRoot: window %q: %w", w.Title, ErrNotManaged)
	}
	o := Horizontal
	if loc == DockTop || loc == DockBottom {
		o = Vertical
	}
	var sp *SplitterNode
	if loc == DockTop || loc == DockLeft {
		sp = NewSplitterNode(o, incoming, root)
	} else {
		sp = NewSplitterNode(o, root, incoming)
	}
	return m.model.SetRoot(w, sp)
}

// UndockPanel tears the panel out into its own floating window. A panel
// already alone in an ordinary floating window stays put.
func (m *Manager) UndockPanel(p *Panel) (*Window, error) {
	host, ok := m.model.FindHost(p)
	if !ok {
		return nil, fmt.Errorf("UndockPanel %q: %w", p.PersistentID, ErrNotManaged)
	}
	root, _ := m.model.Root(host.Window)
	if !host.Window.PersistentRoot {
		if g, isGroup := root.(*TabGroupNode); isGroup && g == host.Group && len(g.Children) == 1 {
			return host.Window, nil
		}
	}
	if _, err := m.removePanelNode(p); err != nil {
		return nil, err
	}
	w := newWindow(p.DisplayTitle(), m.nextCascadeFrame(), WindowFloating)
	m.model.Register(w, NewTabGroupNode(NewWidgetNode(p)))
	m.windows = append(m.windows, w)
	m.activePanel = p
	m.RenderAll()
	m.dispatcher.Broadcast(Event{Type: EventPanelUndocked, Panel: p, PersistentID: p.PersistentID, Window: w})
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
	return w, nil
}

// UndockGroup tears a whole tab group out into one floating window,
// keeping tab order.
func (m *Manager) UndockGroup(w *Window, g *TabGroupNode) (*Window, error) {
	root, ok := m.model.Root(w)
	if !ok {
		return nil, fmt.Errorf("UndockGroup: window %q: %w", w.Title, ErrNotManaged)
	}
	if root == g && !w.PersistentRoot {
		return w, nil
	}
	panels := PanelsUnder(g)
	if len(panels) == 0 {
		return nil, fmt.Errorf("UndockGroup: group is empty")
	}
	if err := m.model.ReplaceInParent(w, g, NewTabGroupNode()); err != nil {
		return nil, err
	}
	if !simplifyTree(m.model, w) {
		m.closeWindowShell(w)
	}
	nw := newWindow(panels[0].DisplayTitle(), m.nextCascadeFrame(), WindowFloating)
	m.model.Register(nw, g)
	m.windows = append(m.windows, nw)
	m.RenderAll()
	for _, p := range panels {
		m.dispatcher.Broadcast(Event{Type: EventPanelUndocked, Panel: p, PersistentID: p.PersistentID, Window: nw})
	}
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
	return nw, nil
}

// RequestClosePanel closes a panel for good: listeners hear about it
// before the model changes so they can still resolve the panel's place.
func (m *Manager) RequestClosePanel(p *Panel) error {
	if _, ok := m.model.FindHost(p); !ok {
		return fmt.Errorf("RequestClosePanel %q: %w", p.PersistentID, ErrNotManaged)
	}
	m.dispatcher.Broadcast(Event{Type: EventPanelClosed, Panel: p, PersistentID: p.PersistentID})
	if _, err := m.removePanelNode(p); err != nil {
		return err
	}
	m.opts.Lifecycle.StopWidget(p)
	m.RenderAll()
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
	return nil
}

// RequestCloseWindow closes a window and every panel in it. Closing the
// main window shuts the manager down.
func (m *Manager) RequestCloseWindow(w *Window) error {
	root, ok := m.model.Root(w)
	if !ok {
		return fmt.Errorf("RequestCloseWindow %q: %w", w.Title, ErrNotManaged)
	}
	if w == m.main {
		m.Stop()
		return nil
	}
	panels := PanelsUnder(root)
	for _, p := range panels {
		m.dispatcher.Broadcast(Event{Type: EventPanelClosed, Panel: p, PersistentID: p.PersistentID})
	}
	for _, p := range panels {
		m.opts.Lifecycle.StopWidget(p)
		if m.activePanel == p {
			m.activePanel = nil
		}
	}
	m.closeWindowShell(w)
	m.RenderAll()
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
	return nil
}

// MoveToWindow docks the panel as a tab of the target window's first
// group. Moving a panel onto its own window is a successful no-op.
func (m *Manager) MoveToWindow(p *Panel, target *Window) error {
	host, ok := m.model.FindHost(p)
	if !ok {
		return fmt.Errorf("MoveToWindow %q: %w", p.PersistentID, ErrNotManaged)
	}
	if _, ok := m.model.Root(target); !ok {
		return fmt.Errorf("MoveToWindow: target window %q: %w", target.Title, ErrNotManaged)
	}
	if host.Window == target {
		return nil
	}
	if _, err := m.removePanelNode(p); err != nil {
		return err
	}
	g := m.firstGroup(target)
	if g == nil {
		g = NewTabGroupNode()
		m.model.Register(target, g)
	}
	m.insertIntoGroup(g, NewWidgetNode(p), len(g.Children))
	m.RenderAll()
	m.dispatcher.Broadcast(Event{Type: EventPanelDocked, Panel: p, PersistentID: p.PersistentID, Window: target, Location: DockCenter})
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
	return nil
}

// destroyOverlays tears down every live overlay.
func (m *Manager) destroyOverlays() {
	for k, o := range m.overlays {
		o.Destroy()
		delete(m.overlays, k)
	}
}

// simpleLayout reports whether the window holds a single tab group, in
// which case a window-level overlay would duplicate the group overlay.
func (m *Manager) simpleLayout(w *Window) bool {
	root, ok := m.model.Root(w)
	if !ok {
		return true
	}
	_, isGroup := root.(*TabGroupNode)
	return isGroup
}

// emptyRoot reports whether the window's tree holds no panels at all.
func (m *Manager) emptyRoot(w *Window) bool {
	root, ok := m.model.Root(w)
	if !ok {
		return true
	}
	return len(PanelsUnder(root)) == 0
}
