// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/input.go
// Summary: Implements mouse input handling for the docking engine.
// Usage: Used by the manager to turn pointer events into docking gestures.

package dock

import (
	"log"

	"github.com/gdamore/tcell/v2"
)

type edgeMask int

const (
	edgeLeft edgeMask = 1 << iota
	edgeRight
	edgeTop
	edgeBottom
)

type resizeState struct {
	window  *Window
	edges   edgeMask
	start   Rect
	anchor  Point
	preview Rect
}

// pendingTab tracks a pressed tab before the movement threshold turns it
// into a tear-off drag.
type pendingTab struct {
	panel *Panel
	at    Point
}

const tabTearThreshold = 2

func (m *Manager) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := Point{X: x, Y: y}
	btns := ev.Buttons()
	pressed := btns&tcell.Button1 != 0 && m.prevButtons&tcell.Button1 == 0
	released := btns&tcell.Button1 == 0 && m.prevButtons&tcell.Button1 != 0
	held := btns&tcell.Button1 != 0
	m.prevButtons = btns

	switch m.state {
	case StateIdle:
		if pressed {
			m.handlePress(p)
		} else if held && m.pending != nil {
			m.maybeStartTabDrag(p)
		} else if released {
			m.pending = nil
		}
	case StateDraggingWindow, StateDraggingTab:
		if released {
			m.finalizeDrop(p)
		} else {
			m.dragMove(p)
		}
	case StateResizing:
		if released {
			m.commitResize()
		} else {
			m.updateResize(p)
		}
	}
}

// edgeAt classifies a point on the window border. The title row counts
// only at its corner cells so the rest of it stays a move handle.
func edgeAt(w *Window, p Point) edgeMask {
	f := w.Frame
	if !f.Contains(p) {
		return 0
	}
	var e edgeMask
	if p.X == f.X {
		e |= edgeLeft
	}
	if p.X == f.Right()-1 {
		e |= edgeRight
	}
	if p.Y == f.Bottom()-1 {
		e |= edgeBottom
	}
	if p.Y == f.Y {
		if e&(edgeLeft|edgeRight) != 0 {
			e |= edgeTop
		} else {
			e = 0 // title bar interior
		}
	}
	return e
}

func (m *Manager) handlePress(p Point) {
	w := m.windowAt(p)
	if w == nil {
		return
	}
	m.BringToFront(w)

	if w.closeButtonRect().Contains(p) {
		if err := m.RequestCloseWindow(w); err != nil {
			log.Printf("close window: %v", err)
		}
		return
	}
	if w.maximizeButtonRect().Contains(p) {
		w.setMaximized(!w.Maximized, m.screenRect)
		m.RenderAll()
		return
	}

	if e := edgeAt(w, p); e != 0 && !w.Maximized && w != m.main {
		m.state = StateResizing
		m.resize = &resizeState{window: w, edges: e, start: w.Frame, anchor: p, preview: w.Frame}
		m.RenderAll()
		return
	}

	if w.TitleBarRect().Contains(p) {
		if w == m.main {
			m.RenderAll()
			return
		}
		m.beginWindowDrag(w, p)
		return
	}

	m.handleContentPress(w, p)
}

func (m *Manager) handleContentPress(w *Window, p Point) {
	if w.view == nil {
		m.RenderAll()
		return
	}
	for i := range w.view.regions {
		reg := &w.view.regions[i]
		if !reg.rect.Contains(p) {
			continue
		}
		switch reg.kind {
		case regionTabBar:
			m.handleTabBarPress(w, reg, p)
			return
		case regionPanelBody:
			if reg.panel != nil {
				if err := m.ActivatePanel(reg.panel); err != nil {
					log.Printf("activate: %v", err)
				}
			}
			return
		}
	}
	m.RenderAll()
}

func (m *Manager) handleTabBarPress(w *Window, reg *hitRegion, p Point) {
	g := reg.group
	// corner undock button
	if p.X == reg.rect.Right()-1 {
		if _, err := m.UndockGroup(w, g); err != nil {
			log.Printf("undock group: %v", err)
		}
		return
	}
	for i, tr := range reg.tabRects {
		if tr.Empty() || !tr.Contains(p) || i >= len(g.Children) {
			continue
		}
		panel := g.Children[i].Panel
		// the close glyph sits in the last two cells of the tab
		if p.X >= tr.Right()-2 {
			if err := m.RequestClosePanel(panel); err != nil {
				log.Printf("close panel: %v", err)
			}
			return
		}
		if err := m.ActivatePanel(panel); err != nil {
			log.Printf("activate: %v", err)
			return
		}
		m.pending = &pendingTab{panel: panel, at: p}
		return
	}
}

func (m *Manager) beginWindowDrag(w *Window, p Point) {
	m.state = StateDraggingWindow
	m.drag = &dragState{
		window: w,
		offset: Point{X: p.X - w.Frame.X, Y: p.Y - w.Frame.Y},
		last:   p,
	}
	m.hit.Invalidate()
	m.RenderAll()
}

func (m *Manager) maybeStartTabDrag(p Point) {
	pt := m.pending
	dx := p.X - pt.at.X
	dy := p.Y - pt.at.Y
	if dx*dx+dy*dy < tabTearThreshold*tabTearThreshold {
		return
	}
	m.pending = nil
	host, ok := m.model.FindHost(pt.panel)
	if !ok {
		return
	}
	m.state = StateDraggingTab
	m.drag = &dragState{window: host.Window, panel: pt.panel, last: p}
	m.hit.Invalidate()
	m.RenderAll()
}

// dragMove advances a live drag: the window follows the cursor, the
// tab-bar check short-circuits everything else, and overlay transitions
// are computed as a set difference against the previous tick.
func (m *Manager) dragMove(p Point) {
	d := m.drag
	if d == nil {
		return
	}
	d.last = p

	var exclude *Window
	if m.state == StateDraggingWindow {
		exclude = d.window
		d.window.Frame.X = p.X - d.offset.X
		d.window.Frame.Y = p.Y - d.offset.Y
		m.hit.Invalidate()
	}

	// Tab-bar insertion wins over everything else.
	if bar, idx := m.barTargetAt(p, exclude); bar != nil {
		d.barGroup = bar.group
		d.barWindow = bar.window
		d.barIndex = idx
		d.barMark = barInsertMark(bar, idx)
		m.destroyOverlays()
		m.RenderAll()
		return
	}
	d.barGroup = nil
	d.barWindow = nil

	target := m.hit.DropTargetAt(p, exclude)
	desired := m.desiredOverlays(target)

	for k, o := range m.overlays {
		if _, keep := desired[k]; !keep {
			o.Destroy()
			delete(m.overlays, k)
		}
	}
	for k, spec := range desired {
		if _, exists := m.overlays[k]; !exists {
			m.overlays[k] = newDockOverlay(spec.rect, spec.icons, spec.style)
		}
	}

	// Hot tracking: group overlays take precedence over window overlays.
	var hotKey overlayKey
	hotLoc := DockNone
	for k, o := range m.overlays {
		loc := o.LocationAt(p)
		if loc == DockNone {
			continue
		}
		if hotLoc == DockNone || (k.group != nil && hotKey.group == nil) {
			hotKey, hotLoc = k, loc
		}
	}
	for k, o := range m.overlays {
		if k == hotKey && hotLoc != DockNone {
			o.ShowPreview(hotLoc)
		} else {
			o.HidePreview()
		}
	}

	m.RenderAll()
}

// barInsertMark picks the cell where the insertion indicator sits: the
// left edge of the tab at idx, or the end of the last tab when appending.
func barInsertMark(bar *hitRegion, idx int) Point {
	x := bar.rect.X
	switch {
	case idx < len(bar.tabRects):
		x = bar.tabRects[idx].X
	case len(bar.tabRects) > 0:
		x = bar.tabRects[len(bar.tabRects)-1].Right()
	}
	x = clamp(x, bar.rect.X, bar.rect.Right()-1)
	return Point{X: x, Y: bar.rect.Y}
}

// barTargetAt finds a tab bar under the cursor that can accept the drag.
func (m *Manager) barTargetAt(p Point, exclude *Window) (*hitRegion, int) {
	reg, idx := m.hit.TabBarAt(p, exclude)
	if reg == nil {
		return nil, 0
	}
	return reg, idx
}

// desiredOverlays decides which overlays this tick of the drag wants:
// a group overlay over the hovered group, plus a window-level overlay
// unless the window's layout is a single group (the two would coincide).
// An empty persistent root gets a single center-only overlay instead.
func (m *Manager) desiredOverlays(target *hitRegion) map[overlayKey]overlaySpec {
	out := make(map[overlayKey]overlaySpec)
	if target == nil {
		return out
	}
	w := target.window

	if w.PersistentRoot && m.emptyRoot(w) {
		out[overlayKey{window: w}] = overlaySpec{
			rect:  w.ContentRect(),
			icons: []DockLocation{DockCenter},
			style: overlaySpread,
		}
		return out
	}

	if target.group != nil && target.kind == regionPanelBody {
		out[overlayKey{window: w, group: target.group}] = overlaySpec{
			rect:  target.rect,
			icons: []DockLocation{DockTop, DockLeft, DockBottom, DockRight, DockCenter},
			style: overlayCluster,
		}
		if !m.simpleLayout(w) {
			out[overlayKey{window: w}] = overlaySpec{
				rect:  w.ContentRect(),
				icons: []DockLocation{DockTop, DockLeft, DockBottom, DockRight},
				style: overlaySpread,
			}
		}
		return out
	}

	out[overlayKey{window: w}] = overlaySpec{
		rect:  w.ContentRect(),
		icons: []DockLocation{DockTop, DockLeft, DockBottom, DockRight},
		style: overlaySpread,
	}
	return out
}

// finalizeDrop completes a drag. Cleanup always runs, even when a dock
// operation fails partway.
func (m *Manager) finalizeDrop(p Point) {
	d := m.drag
	defer func() {
		m.destroyOverlays()
		m.drag = nil
		m.state = StateIdle
		m.hit.Invalidate()
		m.RenderAll()
	}()
	if d == nil {
		m.state = StateIdle
		return
	}

	tabDrag := m.state == StateDraggingTab

	if d.barGroup != nil {
		if tabDrag {
			m.dropPanelOnBar(d.panel, d.barWindow, d.barGroup, d.barIndex)
		} else {
			m.dropWindowOnBar(d.window, d.barWindow, d.barGroup, d.barIndex)
		}
		return
	}

	loc, key := m.hotOverlay(p)
	if loc == DockNone {
		// No target: a dragged window simply stays where it was released;
		// a dragged tab becomes a new floating window.
		if tabDrag {
			m.tearPanelToFloating(d.panel, p)
		}
		return
	}

	if tabDrag {
		m.dropPanelOnTarget(d.panel, key, loc)
	} else {
		m.dropWindowOnTarget(d.window, key, loc)
	}
}

func (m *Manager) hotOverlay(p Point) (DockLocation, overlayKey) {
	var hotKey overlayKey
	hotLoc := DockNone
	for k, o := range m.overlays {
		loc := o.LocationAt(p)
		if loc == DockNone {
			continue
		}
		if hotLoc == DockNone || (k.group != nil && hotKey.group == nil) {
			hotKey, hotLoc = k, loc
		}
	}
	return hotLoc, hotKey
}

// dropPanelOnBar inserts a dragged tab at a specific position on a bar.
func (m *Manager) dropPanelOnBar(p *Panel, w *Window, g *TabGroupNode, index int) {
	host, ok := m.model.FindHost(p)
	if !ok {
		log.Printf("dropPanelOnBar: panel %q vanished", p.PersistentID)
		return
	}
	if host.Group == g {
		// reorder within the same bar
		if index > host.Index {
			index--
		}
		g.Children = append(g.Children[:host.Index], g.Children[host.Index+1:]...)
		m.insertIntoGroup(g, NewWidgetNode(p), index)
	} else {
		if _, err := m.removePanelNode(p); err != nil {
			log.Printf("dropPanelOnBar: %v", err)
			return
		}
		m.insertIntoGroup(g, NewWidgetNode(p), index)
	}
	m.dispatcher.Broadcast(Event{Type: EventPanelDocked, Panel: p, PersistentID: p.PersistentID, Window: w, Location: DockCenter})
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
}

// dropWindowOnBar folds every panel of the dragged window into the bar's
// group, keeping their order, then retires the source window.
func (m *Manager) dropWindowOnBar(src, dst *Window, g *TabGroupNode, index int) {
	root, ok := m.model.Root(src)
	if !ok {
		return
	}
	panels := PanelsUnder(root)
	m.model.Unregister(src)
	for i, p := range panels {
		m.insertIntoGroup(g, NewWidgetNode(p), index+i)
	}
	m.finishWindowDock(src, dst, panels, DockCenter)
}

// dropPanelOnTarget docks a single dragged tab at the overlay location.
func (m *Manager) dropPanelOnTarget(p *Panel, key overlayKey, loc DockLocation) {
	if _, err := m.removePanelNode(p); err != nil {
		log.Printf("dropPanelOnTarget: %v", err)
		return
	}
	node := NewWidgetNode(p)
	if err := m.dockNode(NewTabGroupNode(node), key, loc); err != nil {
		log.Printf("dropPanelOnTarget: %v", err)
		m.tearPanelToFloating(p, Point{X: key.window.Frame.X, Y: key.window.Frame.Y})
		return
	}
	m.activePanel = p
	m.dispatcher.Broadcast(Event{Type: EventPanelDocked, Panel: p, PersistentID: p.PersistentID, Window: key.window, Location: loc})
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
}

// dropWindowOnTarget docks the whole content of the dragged window, then
// retires it: the destination is repainted before the source disappears
// so the hand-off never flickers through an empty frame.
func (m *Manager) dropWindowOnTarget(src *Window, key overlayKey, loc DockLocation) {
	root, ok := m.model.Root(src)
	if !ok {
		return
	}
	panels := PanelsUnder(root)
	if len(panels) == 0 {
		return
	}
	m.model.Unregister(src)

	if loc == DockCenter {
		g := key.group
		if g == nil {
			g = m.firstGroup(key.window)
		}
		if g == nil {
			g = NewTabGroupNode()
			m.model.Register(key.window, g)
		}
		for _, p := range panels {
			m.insertIntoGroup(g, NewWidgetNode(p), len(g.Children))
		}
	} else if err := m.dockNode(root, key, loc); err != nil {
		log.Printf("dropWindowOnTarget: %v", err)
		m.model.Register(src, root) // roll back
		return
	}
	m.finishWindowDock(src, key.window, panels, loc)
}

// dockNode attaches a subtree at the overlay location: against a group
// for group overlays, against the whole root for window overlays.
func (m *Manager) dockNode(incoming Node, key overlayKey, loc DockLocation) error {
	if key.window.PersistentRoot && m.emptyRoot(key.window) {
		return m.model.SetRoot(key.window, incoming)
	}
	if loc == DockCenter {
		g := key.group
		if g == nil {
			g = m.firstGroup(key.window)
		}
		if g == nil {
			return m.model.SetRoot(key.window, incoming)
		}
		for _, p := range PanelsUnder(incoming) {
			m.insertIntoGroup(g, NewWidgetNode(p), len(g.Children))
		}
		return nil
	}
	if key.group != nil {
		return m.splitGroup(key.window, key.group, incoming, loc)
	}
	return m.splitRoot(key.window, incoming, loc)
}

// finishWindowDock repaints the destination, forces the frame out, then
// closes the source shell and announces the docked panels.
func (m *Manager) finishWindowDock(src, dst *Window, panels []*Panel, loc DockLocation) {
	root, _ := m.model.Root(dst)
	m.renderer.layoutWindow(dst, root)
	m.renderer.drawWindow(m.driver, dst, true)
	m.driver.Show()

	for i, ww := range m.windows {
		if ww == src {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			break
		}
	}
	m.destroyOverlays()
	m.hit.Invalidate()
	for _, p := range panels {
		m.dispatcher.Broadcast(Event{Type: EventPanelDocked, Panel: p, PersistentID: p.PersistentID, Window: dst, Location: loc})
	}
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
}

// tearPanelToFloating puts a dragged tab that found no target into its
// own floating window at the drop point.
func (m *Manager) tearPanelToFloating(p *Panel, at Point) {
	if _, err := m.removePanelNode(p); err != nil {
		log.Printf("tearPanelToFloating: %v", err)
		return
	}
	frame := Rect{
		X: at.X - m.opts.DefaultFloatingWidth/2,
		Y: at.Y,
		W: m.opts.DefaultFloatingWidth,
		H: m.opts.DefaultFloatingHeight,
	}
	frame.X = clamp(frame.X, 0, max(m.screenRect.W-frame.W, 0))
	frame.Y = clamp(frame.Y, 0, max(m.screenRect.H-frame.H, 0))
	w := newWindow(p.DisplayTitle(), frame, WindowFloating)
	m.model.Register(w, NewTabGroupNode(NewWidgetNode(p)))
	m.windows = append(m.windows, w)
	m.activePanel = p
	m.dispatcher.Broadcast(Event{Type: EventPanelUndocked, Panel: p, PersistentID: p.PersistentID, Window: w})
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
}

// UndockByTear undocks a panel and immediately seeds a window drag on the
// new floating window, so a tear-off gesture continues without a second
// press.
func (m *Manager) UndockByTear(p *Panel, grab Point) (*Window, error) {
	w, err := m.UndockPanel(p)
	if err != nil {
		return nil, err
	}
	w.Frame.X = grab.X - w.Frame.W/2
	w.Frame.Y = grab.Y
	w.Frame.X = clamp(w.Frame.X, 0, max(m.screenRect.W-w.Frame.W, 0))
	w.Frame.Y = clamp(w.Frame.Y, 0, max(m.screenRect.H-w.Frame.H, 0))
	m.BringToFront(w)
	m.state = StateDraggingWindow
	m.drag = &dragState{
		window: w,
		offset: Point{X: grab.X - w.Frame.X, Y: 0},
		last:   grab,
	}
	m.hit.Invalidate()
	m.RenderAll()
	return w, nil
}

func (m *Manager) updateResize(p Point) {
	rs := m.resize
	if rs == nil {
		return
	}
	dx := p.X - rs.anchor.X
	dy := p.Y - rs.anchor.Y
	r := rs.start
	minW := m.opts.MinWindowWidth
	minH := m.opts.MinWindowHeight

	if rs.edges&edgeLeft != 0 {
		nx := clamp(rs.start.X+dx, 0, rs.start.Right()-minW)
		r.W = rs.start.Right() - nx
		r.X = nx
	}
	if rs.edges&edgeRight != 0 {
		r.W = max(rs.start.W+dx, minW)
	}
	if rs.edges&edgeTop != 0 {
		ny := clamp(rs.start.Y+dy, 0, rs.start.Bottom()-minH)
		r.H = rs.start.Bottom() - ny
		r.Y = ny
	}
	if rs.edges&edgeBottom != 0 {
		r.H = max(rs.start.H+dy, minH)
	}
	rs.preview = r
	m.RenderAll()
}

// commitResize applies the previewed geometry once, at release.
func (m *Manager) commitResize() {
	rs := m.resize
	m.resize = nil
	m.state = StateIdle
	if rs == nil {
		return
	}
	rs.window.Frame = rs.preview
	m.hit.Invalidate()
	m.RenderAll()
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
}
