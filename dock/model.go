// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/model.go
// Summary: Implements the layout tree model for the docking engine.
// Usage: Used throughout the project as the single source of truth for layouts.

package dock

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// ErrNotManaged reports an operation on a panel or window the model does
// not know about. The model is left untouched.
var ErrNotManaged = errors.New("not managed by this layout model")

// ErrConsistency reports an internal contradiction between the model and a
// caller's expectation of it, such as replacing a node that is not present.
var ErrConsistency = errors.New("layout model inconsistency")

// Orientation selects the axis of a splitter. Horizontal lays children out
// left to right, Vertical top to bottom.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Node is the closed set of layout tree node kinds. Exactly three types
// implement it: *SplitterNode, *TabGroupNode and *WidgetNode.
type Node interface {
	ID() uuid.UUID
	isNode()
}

// SplitterNode divides its rect among two or more children along one axis.
type SplitterNode struct {
	id          uuid.UUID
	Orientation Orientation
	Children    []Node
	Sizes       []int // relative weights, parallel to Children; empty means even
}

// TabGroupNode stacks panels in a tabbed group; one child is visible at a time.
type TabGroupNode struct {
	id       uuid.UUID
	Children []*WidgetNode
	Active   int
}

// WidgetNode is a leaf hosting a single panel.
type WidgetNode struct {
	id    uuid.UUID
	Panel *Panel
}

func NewSplitterNode(o Orientation, children ...Node) *SplitterNode {
	return &SplitterNode{id: uuid.New(), Orientation: o, Children: children}
}

func NewTabGroupNode(children ...*WidgetNode) *TabGroupNode {
	return &TabGroupNode{id: uuid.New(), Children: children}
}

func NewWidgetNode(p *Panel) *WidgetNode {
	return &WidgetNode{id: uuid.New(), Panel: p}
}

func (n *SplitterNode) ID() uuid.UUID { return n.id }
func (n *TabGroupNode) ID() uuid.UUID { return n.id }
func (n *WidgetNode) ID() uuid.UUID   { return n.id }

func (n *SplitterNode) isNode() {}
func (n *TabGroupNode) isNode() {}
func (n *WidgetNode) isNode()   {}

// ActivePanel returns the panel of the visible tab, or nil when empty.
func (n *TabGroupNode) ActivePanel() *Panel {
	if len(n.Children) == 0 {
		return nil
	}
	idx := clamp(n.Active, 0, len(n.Children)-1)
	return n.Children[idx].Panel
}

// HostInfo locates a panel inside the model: the window whose tree holds
// it, the tab group, and the position within that group.
type HostInfo struct {
	Window *Window
	Group  *TabGroupNode
	Node   *WidgetNode
	Index  int
}

// LayoutModel maps every top-level window to the root of its layout tree.
// Window order is insertion order so traversal and persistence stay
// deterministic.
type LayoutModel struct {
	order []*Window
	roots map[*Window]Node
}

func NewLayoutModel() *LayoutModel {
	return &LayoutModel{roots: make(map[*Window]Node)}
}

// Register adds a window and its root tree to the model.
func (m *LayoutModel) Register(w *Window, root Node) {
	if _, ok := m.roots[w]; !ok {
		m.order = append(m.order, w)
	}
	m.roots[w] = root
}

// Unregister removes a window and its whole tree from the model.
func (m *LayoutModel) Unregister(w *Window) {
	if _, ok := m.roots[w]; !ok {
		return
	}
	delete(m.roots, w)
	for i, ww := range m.order {
		if ww == w {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Root returns the layout tree registered for the window.
func (m *LayoutModel) Root(w *Window) (Node, bool) {
	n, ok := m.roots[w]
	return n, ok
}

// SetRoot replaces the tree registered for an already known window.
func (m *LayoutModel) SetRoot(w *Window, root Node) error {
	if _, ok := m.roots[w]; !ok {
		return fmt.Errorf("SetRoot: window %q: %w", w.Title, ErrNotManaged)
	}
	m.roots[w] = root
	return nil
}

// Windows returns the registered windows in insertion order.
func (m *LayoutModel) Windows() []*Window {
	out := make([]*Window, len(m.order))
	copy(out, m.order)
	return out
}

// FindHost locates the tab group hosting the panel. The second return is
// false when no tree contains it.
func (m *LayoutModel) FindHost(p *Panel) (HostInfo, bool) {
	for _, w := range m.order {
		var found HostInfo
		ok := false
		walkGroups(m.roots[w], func(g *TabGroupNode) {
			if ok {
				return
			}
			for i, wn := range g.Children {
				if wn.Panel == p {
					found = HostInfo{Window: w, Group: g, Node: wn, Index: i}
					ok = true
					return
				}
			}
		})
		if ok {
			return found, true
		}
	}
	return HostInfo{}, false
}

// AllPanels returns every hosted panel in visual order: windows in
// insertion order, each tree depth-first.
func (m *LayoutModel) AllPanels() []*Panel {
	var out []*Panel
	for _, w := range m.order {
		out = append(out, PanelsUnder(m.roots[w])...)
	}
	return out
}

// PanelsUnder collects the panels beneath a subtree, depth-first.
func PanelsUnder(n Node) []*Panel {
	var out []*Panel
	switch t := n.(type) {
	case nil:
	case *SplitterNode:
		for _, c := range t.Children {
			out = append(out, PanelsUnder(c)...)
		}
	case *TabGroupNode:
		for _, wn := range t.Children {
			out = append(out, wn.Panel)
		}
	case *WidgetNode:
		out = append(out, t.Panel)
	default:
		log.Printf("PanelsUnder: unknown node type %T", n)
	}
	return out
}

// walkGroups visits every tab group in the subtree, depth-first.
func walkGroups(n Node, fn func(*TabGroupNode)) {
	switch t := n.(type) {
	case nil:
	case *SplitterNode:
		for _, c := range t.Children {
			walkGroups(c, fn)
		}
	case *TabGroupNode:
		fn(t)
	case *WidgetNode:
		// leaf outside a group, nothing to visit
	default:
		log.Printf("walkGroups: unknown node type %T", n)
	}
}

// findParent returns the splitter that directly holds target and the child
// index, or nil when target is the root or absent.
func findParent(root, target Node) (*SplitterNode, int) {
	sp, ok := root.(*SplitterNode)
	if !ok {
		return nil, -1
	}
	for i, c := range sp.Children {
		if c == target {
			return sp, i
		}
		if p, idx := findParent(c, target); p != nil {
			return p, idx
		}
	}
	return nil, -1
}

// ReplaceInParent swaps old for new inside the window's tree. When old is
// the root the root itself is replaced. Absence of old is a consistency
// error: the model is left unchanged and the error is both returned and
// logged.
func (m *LayoutModel) ReplaceInParent(w *Window, old, repl Node) error {
	root, ok := m.roots[w]
	if !ok {
		return fmt.Errorf("ReplaceInParent: window %q: %w", w.Title, ErrNotManaged)
	}
	if root == old {
		m.roots[w] = repl
		return nil
	}
	if sp, idx := findParent(root, old); sp != nil {
		sp.Children[idx] = repl
		return nil
	}
	err := fmt.Errorf("ReplaceInParent: node %s not in tree of %q: %w", old.ID(), w.Title, ErrConsistency)
	log.Printf("%v", err)
	return err
}
