// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/render_test.go
// Summary: Tests for tab bar visibility rules and tree simplification.

package dock

import "testing"

func TestShowTabBarRules(t *testing.T) {
	floating := newWindow("f", Rect{W: 40, H: 12}, WindowFloating)
	pinned := newWindow("p", Rect{W: 40, H: 12}, WindowPinnedRoot)
	single := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	double := NewTabGroupNode(NewWidgetNode(testPanel("a")), NewWidgetNode(testPanel("b")))

	if !showTabBar(single, floating, true) {
		t.Fatalf("a group inside a splitter always shows its bar")
	}
	if showTabBar(single, floating, false) {
		t.Fatalf("a lone tab at the root of a floating window hides its bar")
	}
	if !showTabBar(double, floating, false) {
		t.Fatalf("multiple tabs always show the bar")
	}
	if !showTabBar(single, pinned, false) {
		t.Fatalf("persistent roots keep the bar even with one tab")
	}
}

func TestSimplifyPromotesSoleChild(t *testing.T) {
	g := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	sp := NewSplitterNode(Horizontal, g, NewTabGroupNode())

	got, _ := simplifyNode(sp)
	if got != Node(g) {
		t.Fatalf("expected sole surviving child promoted, got %T", got)
	}
}

func TestSimplifyCollapsesNestedEmpties(t *testing.T) {
	g := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	tree := NewSplitterNode(Vertical,
		NewSplitterNode(Horizontal, NewTabGroupNode(), NewTabGroupNode()),
		NewSplitterNode(Horizontal, g),
	)
	got, _ := simplifyNode(tree)
	if got != Node(g) {
		t.Fatalf("expected deep collapse to the single group, got %T", got)
	}
}

func TestSimplifyKeepsBalancedSplitter(t *testing.T) {
	ga := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	gb := NewTabGroupNode(NewWidgetNode(testPanel("b")))
	sp := NewSplitterNode(Horizontal, ga, gb)
	sp.Sizes = []int{2, 1}

	got, changed := simplifyNode(sp)
	if changed {
		t.Fatalf("already reduced tree reported a change")
	}
	if got != Node(sp) {
		t.Fatalf("reduced splitter must survive")
	}
	if len(sp.Sizes) != 2 || sp.Sizes[0] != 2 {
		t.Fatalf("sizes must be preserved, got %v", sp.Sizes)
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	ga := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	gb := NewTabGroupNode(NewWidgetNode(testPanel("b")))
	tree := NewSplitterNode(Horizontal, NewSplitterNode(Vertical, ga), gb, NewTabGroupNode())

	first, _ := simplifyNode(tree)
	second, changed := simplifyNode(first)
	if changed {
		t.Fatalf("second pass must be a no-op")
	}
	if second != first {
		t.Fatalf("fixed point not reached")
	}
}

func TestSimplifyDropsSizeOfRemovedChild(t *testing.T) {
	ga := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	gb := NewTabGroupNode(NewWidgetNode(testPanel("b")))
	sp := NewSplitterNode(Horizontal, ga, NewTabGroupNode(), gb)
	sp.Sizes = []int{3, 1, 2}

	got, _ := simplifyNode(sp)
	out, ok := got.(*SplitterNode)
	if !ok {
		t.Fatalf("expected splitter, got %T", got)
	}
	if len(out.Sizes) != 2 || out.Sizes[0] != 3 || out.Sizes[1] != 2 {
		t.Fatalf("sizes not realigned with children: %v", out.Sizes)
	}
}

func TestSimplifyTreePersistentRootPlaceholder(t *testing.T) {
	m := NewLayoutModel()
	w := newWindow("main", Rect{W: 80, H: 24}, WindowMain)
	m.Register(w, NewSplitterNode(Horizontal, NewTabGroupNode(), NewTabGroupNode()))

	if !simplifyTree(m, w) {
		t.Fatalf("persistent root must survive emptying")
	}
	root, _ := m.Root(w)
	g, ok := root.(*TabGroupNode)
	if !ok || len(g.Children) != 0 {
		t.Fatalf("expected empty placeholder group, got %T", root)
	}
}

func TestSimplifyTreeEmptyFloatingWindowDies(t *testing.T) {
	m := NewLayoutModel()
	w := newWindow("f", Rect{W: 80, H: 24}, WindowFloating)
	m.Register(w, NewTabGroupNode())

	if simplifyTree(m, w) {
		t.Fatalf("an emptied floating window must report itself dead")
	}
}

func TestLayoutWindowBuildsRegions(t *testing.T) {
	theme := testTheme()
	r := newRenderer(theme)
	w := newWindow("w", Rect{X: 0, Y: 0, W: 60, H: 20}, WindowFloating)
	ga := NewTabGroupNode(NewWidgetNode(testPanel("a")), NewWidgetNode(testPanel("b")))
	gb := NewTabGroupNode(NewWidgetNode(testPanel("c")))
	root := NewSplitterNode(Horizontal, ga, gb)

	v := r.layoutWindow(w, root)
	var bars, bodies, containers int
	for _, reg := range v.regions {
		switch reg.kind {
		case regionTabBar:
			bars++
			if len(reg.tabRects) != len(reg.group.Children) {
				t.Fatalf("tab rects out of sync with tabs")
			}
		case regionPanelBody:
			bodies++
		case regionContainerBody:
			containers++
		}
	}
	// both groups sit inside a splitter, so both carry bars
	if bars != 2 || bodies != 2 || containers != 1 {
		t.Fatalf("unexpected region census: bars=%d bodies=%d containers=%d", bars, bodies, containers)
	}
	if w.view != v {
		t.Fatalf("window must hold its fresh view")
	}
}

func TestSplitterLayoutPartitionsSpan(t *testing.T) {
	r := newRenderer(testTheme())
	w := newWindow("w", Rect{X: 0, Y: 0, W: 61, H: 20}, WindowFloating)
	ga := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	gb := NewTabGroupNode(NewWidgetNode(testPanel("b")))
	root := NewSplitterNode(Horizontal, ga, gb)

	v := r.layoutWindow(w, root)
	sv, ok := v.root.(*splitterView)
	if !ok {
		t.Fatalf("expected splitter view, got %T", v.root)
	}
	if len(sv.children) != 2 || len(sv.seps) != 1 {
		t.Fatalf("unexpected splitter view shape")
	}
	left := sv.children[0].(*tabGroupView)
	right := sv.children[1].(*tabGroupView)
	content := w.ContentRect()
	if left.rect.W+right.rect.W+1 != content.W {
		t.Fatalf("splitter does not partition its span: %d + %d + 1 != %d",
			left.rect.W, right.rect.W, content.W)
	}
	if sv.seps[0].X != left.rect.Right() {
		t.Fatalf("separator misplaced")
	}
}
