// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/serializer.go
// Summary: Implements layout persistence for the docking engine.
// Usage: Used to capture the full layout as JSON and rebuild it later.

package dock

import (
	"encoding/json"
	"fmt"
	"log"
)

const layoutVersion = 1

type rectRecord struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func toRectRecord(r Rect) rectRecord  { return rectRecord{X: r.X, Y: r.Y, W: r.W, H: r.H} }
func fromRectRecord(r rectRecord) Rect { return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

type nodeRecord struct {
	Type         string         `json:"type"` // "splitter", "tabs" or "widget"
	Orientation  string         `json:"orientation,omitempty"`
	Sizes        []int          `json:"sizes,omitempty"`
	Children     []*nodeRecord  `json:"children,omitempty"`
	Active       int            `json:"active,omitempty"`
	PersistentID string         `json:"persistentId,omitempty"`
	Title        string         `json:"title,omitempty"`
	Margin       int            `json:"margin,omitempty"`
	State        map[string]any `json:"state,omitempty"`
}

type windowRecord struct {
	Kind             string      `json:"kind"`
	Title            string      `json:"title"`
	Geometry         rectRecord  `json:"geometry"`
	Maximized        bool        `json:"maximized"`
	NormalGeometry   rectRecord  `json:"normalGeometry,omitempty"`
	IsMainWindow     bool        `json:"isMainWindow"`
	IsPersistentRoot bool        `json:"isPersistentRoot"`
	Content          *nodeRecord `json:"content"`
}

type layoutFile struct {
	Version int            `json:"version"`
	Windows []windowRecord `json:"windows"`
}

// RegisterStateHandlers installs an external capture/restore pair for a
// persistent ID. Widgets that implement StateCapturer/StateRestorer
// themselves take precedence.
func (m *Manager) RegisterStateHandlers(persistentID string, provider func() (map[string]any, error), restorer func(map[string]any) error) {
	m.stateHandlers[persistentID] = stateHandlers{provider: provider, restorer: restorer}
}

// capturePanelState asks the widget, then any registered provider. User
// callbacks are contained: a panic or error costs that panel its state,
// never the whole save.
func (m *Manager) capturePanelState(p *Panel) (state map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("capturePanelState %q: panic: %v", p.PersistentID, r)
			state = nil
		}
	}()
	if c, ok := p.Widget.(StateCapturer); ok {
		s, err := c.CaptureState()
		if err != nil {
			log.Printf("capturePanelState %q: %v", p.PersistentID, err)
			return nil
		}
		return s
	}
	if h, ok := m.stateHandlers[p.PersistentID]; ok && h.provider != nil {
		s, err := h.provider()
		if err != nil {
			log.Printf("capturePanelState %q: %v", p.PersistentID, err)
			return nil
		}
		return s
	}
	return nil
}

func (m *Manager) restorePanelState(p *Panel, state map[string]any) {
	if state == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("restorePanelState %q: panic: %v", p.PersistentID, r)
		}
	}()
	if rst, ok := p.Widget.(StateRestorer); ok {
		if err := rst.RestoreState(state); err != nil {
			log.Printf("restorePanelState %q: %v", p.PersistentID, err)
		}
		return
	}
	if h, ok := m.stateHandlers[p.PersistentID]; ok && h.restorer != nil {
		if err := h.restorer(state); err != nil {
			log.Printf("restorePanelState %q: %v", p.PersistentID, err)
		}
	}
}

func (m *Manager) encodeNode(n Node) *nodeRecord {
	switch t := n.(type) {
	case nil:
		return nil
	case *SplitterNode:
		rec := &nodeRecord{Type: "splitter", Orientation: t.Orientation.String(), Sizes: t.Sizes}
		for _, c := range t.Children {
			if cr := m.encodeNode(c); cr != nil {
				rec.Children = append(rec.Children, cr)
			}
		}
		return rec
	case *TabGroupNode:
		rec := &nodeRecord{Type: "tabs", Active: t.Active}
		for _, wn := range t.Children {
			if cr := m.encodeNode(wn); cr != nil {
				rec.Children = append(rec.Children, cr)
			}
		}
		return rec
	case *WidgetNode:
		p := t.Panel
		return &nodeRecord{
			Type:         "widget",
			PersistentID: p.PersistentID,
			Title:        p.Title,
			Margin:       p.Margin,
			State:        m.capturePanelState(p),
		}
	default:
		log.Printf("encodeNode: unknown node type %T", n)
		return nil
	}
}

// SaveLayout captures every window and its tree as JSON, in stacking
// order so restoration reproduces z-order.
func (m *Manager) SaveLayout() ([]byte, error) {
	f := layoutFile{Version: layoutVersion}
	for _, w := range m.windows {
		if _, ok := m.model.Root(w); !ok {
			continue
		}
		root, _ := m.model.Root(w)
		rec := windowRecord{
			Kind:             w.Kind.String(),
			Title:            w.Title,
			Geometry:         toRectRecord(w.Frame),
			Maximized:        w.Maximized,
			IsMainWindow:     w.Kind == WindowMain,
			IsPersistentRoot: w.PersistentRoot,
			Content:          m.encodeNode(root),
		}
		if w.Maximized {
			rec.Geometry = toRectRecord(w.normalFrame)
			rec.NormalGeometry = toRectRecord(w.normalFrame)
		}
		f.Windows = append(f.Windows, rec)
	}
	return json.MarshalIndent(f, "", "  ")
}

// decodeNode rebuilds a subtree. Widgets that cannot be constructed are
// skipped with a diagnostic; the surrounding layout loads anyway. The
// cache guarantees a persistent ID is constructed at most once per load.
func (m *Manager) decodeNode(rec *nodeRecord, cache map[string]*Panel) Node {
	if rec == nil {
		return nil
	}
	switch rec.Type {
	case "splitter":
		o := Horizontal
		if rec.Orientation == "vertical" {
			o = Vertical
		}
		sp := NewSplitterNode(o)
		for _, cr := range rec.Children {
			if c := m.decodeNode(cr, cache); c != nil {
				sp.Children = append(sp.Children, c)
			}
		}
		if len(rec.Sizes) == len(sp.Children) {
			sp.Sizes = rec.Sizes
		}
		return sp
	case "tabs":
		g := NewTabGroupNode()
		for _, cr := range rec.Children {
			c := m.decodeNode(cr, cache)
			if wn, ok := c.(*WidgetNode); ok && wn != nil {
				g.Children = append(g.Children, wn)
			}
		}
		if len(g.Children) > 0 {
			g.Active = clamp(rec.Active, 0, len(g.Children)-1)
		}
		return g
	case "widget":
		p := m.materializePanel(rec, cache)
		if p == nil {
			return nil
		}
		return NewWidgetNode(p)
	default:
		log.Printf("decodeNode: unknown record type %q", rec.Type)
		return nil
	}
}

func (m *Manager) materializePanel(rec *nodeRecord, cache map[string]*Panel) *Panel {
	if p, ok := cache[rec.PersistentID]; ok {
		return p
	}
	if m.opts.Resolver == nil {
		log.Printf("materializePanel %q: no widget resolver installed", rec.PersistentID)
		return nil
	}
	w, title, err := m.opts.Resolver.Create(rec.PersistentID)
	if err != nil {
		log.Printf("materializePanel %q: %v", rec.PersistentID, err)
		return nil
	}
	p := NewPanel(rec.PersistentID, w)
	if rec.Title != "" {
		p.Title = rec.Title
	} else if title != "" {
		p.Title = title
	}
	p.Margin = rec.Margin
	m.restorePanelState(p, rec.State)
	cache[rec.PersistentID] = p
	return p
}

// takePinnedRoot claims the live pinned root matching the record title,
// removing it from the pool.
func takePinnedRoot(pool *[]*Window, title string) *Window {
	for i, w := range *pool {
		if w.Title == title {
			*pool = append((*pool)[:i], (*pool)[i+1:]...)
			return w
		}
	}
	return nil
}

// LoadLayout replaces the current layout with the serialized one. Current
// panels are stopped and discarded; persistent roots are reused rather
// than recreated. Individual windows or widgets that fail to decode are
// skipped, the rest of the layout still loads.
func (m *Manager) LoadLayout(data []byte) error {
	var f layoutFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("LoadLayout: parse: %w", err)
	}
	if f.Version != layoutVersion {
		return fmt.Errorf("LoadLayout: unsupported layout version %d", f.Version)
	}

	for _, p := range m.model.AllPanels() {
		m.opts.Lifecycle.StopWidget(p)
	}
	m.activePanel = nil
	var pinned []*Window
	for _, w := range m.model.Windows() {
		if w == m.main || w.PersistentRoot {
			// persistent roots are reset, never removed
			m.model.Register(w, NewTabGroupNode())
			if w != m.main {
				pinned = append(pinned, w)
			}
			continue
		}
		m.closeWindowShell(w)
	}

	cache := make(map[string]*Panel)
	for i := range f.Windows {
		rec := &f.Windows[i]
		root := m.decodeNode(rec.Content, cache)
		if root == nil {
			root = NewTabGroupNode()
		}

		var w *Window
		reused := false
		switch {
		case rec.IsMainWindow:
			if m.main == nil {
				log.Printf("LoadLayout: main window record but no main window, skipping")
				continue
			}
			w = m.main
			reused = true
		case rec.IsPersistentRoot:
			if pw := takePinnedRoot(&pinned, rec.Title); pw != nil {
				w = pw
				reused = true
			} else {
				w = newWindow(rec.Title, fromRectRecord(rec.Geometry), WindowPinnedRoot)
			}
		default:
			w = newWindow(rec.Title, fromRectRecord(rec.Geometry), WindowFloating)
		}
		if w != m.main {
			w.Frame = fromRectRecord(rec.Geometry)
			w.Maximized = false
			if !reused {
				m.windows = append(m.windows, w)
			}
			if rec.Maximized {
				w.setMaximized(true, m.screenRect)
			}
		}
		m.model.Register(w, root)
		if !simplifyTree(m.model, w) {
			m.closeWindowShell(w)
			continue
		}
		root, _ = m.model.Root(w)
		for _, p := range PanelsUnder(root) {
			m.opts.Lifecycle.StartWidget(p, m.refresh)
		}
	}

	m.hit.Invalidate()
	m.RenderAll()
	m.dispatcher.Broadcast(Event{Type: EventLayoutChanged})
	return nil
}
