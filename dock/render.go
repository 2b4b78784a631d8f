// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/render.go
// Summary: Implements layout rendering capabilities for the docking engine.
// Usage: Used by the manager to project layout trees into window views and cells.

package dock

import (
	"log"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
)

const (
	glyphClose    = '✕'
	glyphMaximize = '□'
	glyphRestore  = '▣'
	glyphUndock   = '⇱'
)

// drawCtx paints through the driver, clipped to one rectangle.
type drawCtx struct {
	drv  ScreenDriver
	clip Rect
}

func (d *drawCtx) set(x, y int, ch rune, st tcell.Style) {
	if !d.clip.Contains(Point{X: x, Y: y}) {
		return
	}
	d.drv.SetContent(x, y, ch, nil, st)
}

func (d *drawCtx) fill(r Rect, ch rune, st tcell.Style) {
	r = r.Intersect(d.clip)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			d.drv.SetContent(x, y, ch, nil, st)
		}
	}
}

// text draws s starting at x,y, truncated to maxW columns. Returns the
// number of columns consumed.
func (d *drawCtx) text(x, y, maxW int, s string, st tcell.Style) int {
	col := 0
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > maxW {
			break
		}
		d.set(x+col, y, ch, st)
		if w == 2 {
			d.set(x+col+1, y, ' ', st)
		}
		col += w
	}
	return col
}

func (d *drawCtx) box(r Rect, st tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	for x := r.X + 1; x < r.Right()-1; x++ {
		d.set(x, r.Y, '─', st)
		d.set(x, r.Bottom()-1, '─', st)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		d.set(r.X, y, '│', st)
		d.set(r.Right()-1, y, '│', st)
	}
	d.set(r.X, r.Y, '┌', st)
	d.set(r.Right()-1, r.Y, '┐', st)
	d.set(r.X, r.Bottom()-1, '└', st)
	d.set(r.Right()-1, r.Bottom()-1, '┘', st)
}

// windowView is the disposable projection of one window's layout tree. It
// is rebuilt wholesale on every render and doubles as the event routing
// table: regions are consulted for hit testing until the next render.
type windowView struct {
	win     *Window
	root    viewNode
	regions []hitRegion
}

type viewNode interface {
	draw(d *drawCtx, t *Theme)
}

type splitterView struct {
	rect     Rect
	node     *SplitterNode
	children []viewNode
	seps     []Rect
}

type tabGroupView struct {
	rect       Rect
	node       *TabGroupNode
	win        *Window
	showBar    bool
	barRect    Rect
	tabRects   []Rect
	undockRect Rect
	bodyRect   Rect
}

// renderer turns layout trees into window views and paints them.
type renderer struct {
	theme *Theme
}

func newRenderer(theme *Theme) *renderer {
	return &renderer{theme: theme}
}

// layoutWindow rebuilds the view tree for a window. The previous view is
// discarded; nothing from it is reused.
func (r *renderer) layoutWindow(w *Window, root Node) *windowView {
	v := &windowView{win: w}
	content := w.ContentRect()
	if root != nil && !content.Empty() {
		v.root = r.layoutNode(root, content, w, false, &v.regions)
	}
	// Window-level region, below every group region in precedence.
	v.regions = append(v.regions, hitRegion{
		rect:   content,
		kind:   regionContainerBody,
		window: w,
	})
	w.view = v
	return v
}

func (r *renderer) layoutNode(n Node, rect Rect, w *Window, insideSplitter bool, regions *[]hitRegion) viewNode {
	switch t := n.(type) {
	case *SplitterNode:
		return r.layoutSplitter(t, rect, w, regions)
	case *TabGroupNode:
		return r.layoutTabGroup(t, rect, w, insideSplitter, regions)
	case *WidgetNode:
		// Stray leaf outside a group; simplification normally wraps these.
		g := NewTabGroupNode(t)
		return r.layoutTabGroup(g, rect, w, insideSplitter, regions)
	default:
		log.Printf("layoutNode: unknown node type %T", n)
		return nil
	}
}

func (r *renderer) layoutSplitter(sp *SplitterNode, rect Rect, w *Window, regions *[]hitRegion) viewNode {
	v := &splitterView{rect: rect, node: sp}
	n := len(sp.Children)
	if n == 0 {
		return v
	}
	weights := sp.Sizes
	if len(weights) != n {
		weights = make([]int, n)
		for i := range weights {
			weights[i] = 1
		}
	}
	total := 0
	for _, wt := range weights {
		if wt < 1 {
			wt = 1
		}
		total += wt
	}
	span := rect.W
	if sp.Orientation == Vertical {
		span = rect.H
	}
	avail := span - (n - 1) // one separator cell between children
	if avail < n {
		avail = n
	}
	offset := 0
	for i, c := range sp.Children {
		size := avail * max(weights[i], 1) / total
		if i == n-1 {
			size = avail - offset
		}
		var childRect Rect
		if sp.Orientation == Horizontal {
			childRect = Rect{X: rect.X + offset + i, Y: rect.Y, W: size, H: rect.H}
			if i < n-1 {
				v.seps = append(v.seps, Rect{X: childRect.Right(), Y: rect.Y, W: 1, H: rect.H})
			}
		} else {
			childRect = Rect{X: rect.X, Y: rect.Y + offset + i, W: rect.W, H: size}
			if i < n-1 {
				v.seps = append(v.seps, Rect{X: rect.X, Y: childRect.Bottom(), W: rect.W, H: 1})
			}
		}
		v.children = append(v.children, r.layoutNode(c, childRect, w, true, regions))
		offset += size
	}
	return v
}

// Tab bar visibility: a group inside a splitter always shows its bar; a
// lone single-panel group at the root of an ordinary floating window hides
// it because the title bar already names the content; everything else
// shows it.
func showTabBar(g *TabGroupNode, w *Window, insideSplitter bool) bool {
	if insideSplitter {
		return true
	}
	if len(g.Children) == 1 && !w.PersistentRoot {
		return false
	}
	return true
}

func (r *renderer) layoutTabGroup(g *TabGroupNode, rect Rect, w *Window, insideSplitter bool, regions *[]hitRegion) viewNode {
	v := &tabGroupView{rect: rect, node: g, win: w}
	v.showBar = showTabBar(g, w, insideSplitter)
	body := rect
	if v.showBar && rect.H > 1 {
		v.barRect = Rect{X: rect.X, Y: rect.Y, W: rect.W, H: 1}
		body = Rect{X: rect.X, Y: rect.Y + 1, W: rect.W, H: rect.H - 1}
		v.undockRect = Rect{X: rect.Right() - 1, Y: rect.Y, W: 1, H: 1}
		x := rect.X
		limit := v.undockRect.X
		for _, wn := range g.Children {
			label := tabLabel(wn.Panel)
			tw := runewidth.StringWidth(label)
			if x+tw > limit {
				tw = limit - x
			}
			if tw <= 0 {
				v.tabRects = append(v.tabRects, Rect{X: limit, Y: rect.Y, W: 0, H: 1})
				continue
			}
			v.tabRects = append(v.tabRects, Rect{X: x, Y: rect.Y, W: tw, H: 1})
			x += tw
		}
		*regions = append(*regions, hitRegion{
			rect:     v.barRect,
			kind:     regionTabBar,
			window:   w,
			group:    g,
			tabRects: v.tabRects,
		})
	}
	v.bodyRect = body
	*regions = append(*regions, hitRegion{
		rect:   body,
		kind:   regionPanelBody,
		window: w,
		group:  g,
		panel:  g.ActivePanel(),
	})
	// Size every member so tab switches take effect immediately.
	inner := body
	for _, wn := range g.Children {
		p := wn.Panel
		pc := inner.Inset(p.Margin)
		if pc.Empty() {
			pc = Rect{X: inner.X, Y: inner.Y, W: max(inner.W, 1), H: max(inner.H, 1)}
		}
		if p.Widget != nil {
			p.Widget.Resize(pc.W, pc.H)
		}
	}
	return v
}

// tab label shown on the bar: padded title plus a close glyph.
func tabLabel(p *Panel) string {
	title := runewidth.Truncate(p.DisplayTitle(), 18, "…")
	return " " + title + " " + string(glyphClose) + " "
}

func (v *splitterView) draw(d *drawCtx, t *Theme) {
	for _, sep := range v.seps {
		ch := '│'
		if v.node.Orientation == Vertical {
			ch = '─'
		}
		d.fill(sep, ch, t.Border)
	}
	for _, c := range v.children {
		if c != nil {
			c.draw(d, t)
		}
	}
}

func (v *tabGroupView) draw(d *drawCtx, t *Theme) {
	if v.showBar {
		d.fill(v.barRect, ' ', t.TabInactive)
		for i, wn := range v.node.Children {
			if i >= len(v.tabRects) || v.tabRects[i].Empty() {
				continue
			}
			st := t.TabInactive
			if i == clamp(v.node.Active, 0, len(v.node.Children)-1) {
				st = t.TabActive
			}
			tr := v.tabRects[i]
			d.text(tr.X, tr.Y, tr.W, tabLabel(wn.Panel), st)
		}
		if !v.undockRect.Empty() {
			d.set(v.undockRect.X, v.undockRect.Y, glyphUndock, t.TabInactive)
		}
	}

	p := v.node.ActivePanel()
	if p == nil {
		d.fill(v.bodyRect, ' ', t.Desktop)
		hint := "Drop panels here"
		hw := runewidth.StringWidth(hint)
		c := v.bodyRect.Center()
		d.text(c.X-hw/2, c.Y, v.bodyRect.W, hint, t.TabInactive)
		return
	}

	body := v.bodyRect.Inset(p.Margin)
	d.fill(v.bodyRect, ' ', t.Desktop)
	if p.Widget == nil || body.Empty() {
		return
	}
	st := t.Desktop
	buf := p.Widget.Render()
	for ry, row := range buf {
		if ry >= body.H {
			break
		}
		for rx, cell := range row {
			if rx >= body.W {
				break
			}
			ch := cell.Ch
			if ch == 0 {
				ch = ' '
			}
			cs := cell.Style
			if cs == (tcell.Style{}) {
				cs = st
			}
			d.set(body.X+rx, body.Y+ry, ch, cs)
		}
	}
}

// drawWindow paints the chrome and the view tree of one window.
func (r *renderer) drawWindow(drv ScreenDriver, w *Window, focused bool) {
	if w.view == nil {
		return
	}
	d := &drawCtx{drv: drv, clip: w.Frame}
	t := r.theme

	border := t.Border
	bar := t.TitleBar
	if focused {
		border = t.BorderActive
		bar = t.TitleBarActive
	}

	d.fill(w.ContentRect(), ' ', t.Desktop)
	d.box(w.Frame, border)

	tb := w.TitleBarRect()
	d.fill(tb, ' ', bar)
	d.text(tb.X+2, tb.Y, tb.W-6, " "+w.Title+" ", bar)
	maxGlyph := glyphMaximize
	if w.Maximized {
		maxGlyph = glyphRestore
	}
	mb := w.maximizeButtonRect()
	cb := w.closeButtonRect()
	d.set(mb.X, mb.Y, maxGlyph, bar)
	d.set(cb.X, cb.Y, glyphClose, bar)

	if w.view.root != nil {
		w.view.root.draw(d, t)
	}
}

// simplifyNode rewrites a subtree to its reduced form: empty groups and
// splitters vanish, single-child splitters promote their child, stray
// leaves get wrapped in a group. Returns nil when the subtree is empty.
func simplifyNode(n Node) (Node, bool) {
	switch t := n.(type) {
	case nil:
		return nil, false
	case *WidgetNode:
		return NewTabGroupNode(t), true
	case *TabGroupNode:
		if len(t.Children) == 0 {
			return nil, true
		}
		if t.Active >= len(t.Children) {
			t.Active = len(t.Children) - 1
		}
		return t, false
	case *SplitterNode:
		changed := false
		var kept []Node
		var sizes []int
		hadSizes := len(t.Sizes) == len(t.Children)
		for i, c := range t.Children {
			sc, ch := simplifyNode(c)
			changed = changed || ch
			if sc == nil {
				changed = true
				continue
			}
			kept = append(kept, sc)
			if hadSizes {
				sizes = append(sizes, t.Sizes[i])
			}
		}
		switch len(kept) {
		case 0:
			return nil, true
		case 1:
			return kept[0], true
		}
		t.Children = kept
		if hadSizes {
			t.Sizes = sizes
		} else {
			t.Sizes = nil
		}
		return t, changed
	default:
		log.Printf("simplifyNode: unknown node type %T", n)
		return n, false
	}
}

// simplifyTree reduces a window's tree to a fixed point. The boolean
// reports whether the window still has content; persistent roots never
// empty out, they reset to a placeholder group instead.
func simplifyTree(m *LayoutModel, w *Window) bool {
	root, ok := m.Root(w)
	if !ok {
		return false
	}
	for {
		next, changed := simplifyNode(root)
		if next == nil {
			if w.PersistentRoot {
				m.Register(w, NewTabGroupNode())
				return true
			}
			return false
		}
		root = next
		if !changed {
			break
		}
	}
	m.Register(w, root)
	return true
}
