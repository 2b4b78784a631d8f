// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/model_test.go
// Summary: Tests for the layout tree model.

package dock

import (
	"errors"
	"testing"
)

func testPanel(id string) *Panel {
	return NewPanel(id, newFakeWidget(id))
}

func TestFindHostLocatesPanel(t *testing.T) {
	m := NewLayoutModel()
	w := newWindow("w", Rect{W: 80, H: 24}, WindowFloating)
	pa, pb := testPanel("a"), testPanel("b")
	g := NewTabGroupNode(NewWidgetNode(pa), NewWidgetNode(pb))
	m.Register(w, g)

	host, ok := m.FindHost(pb)
	if !ok {
		t.Fatalf("panel b not found")
	}
	if host.Window != w || host.Group != g || host.Index != 1 {
		t.Fatalf("wrong host: %+v", host)
	}

	if _, ok := m.FindHost(testPanel("stray")); ok {
		t.Fatalf("stray panel must not be found")
	}
}

func TestAllPanelsVisualOrder(t *testing.T) {
	m := NewLayoutModel()
	w1 := newWindow("w1", Rect{W: 80, H: 24}, WindowFloating)
	w2 := newWindow("w2", Rect{W: 80, H: 24}, WindowFloating)
	pa, pb, pc, pd := testPanel("a"), testPanel("b"), testPanel("c"), testPanel("d")

	sp := NewSplitterNode(Horizontal,
		NewTabGroupNode(NewWidgetNode(pa)),
		NewSplitterNode(Vertical,
			NewTabGroupNode(NewWidgetNode(pb)),
			NewTabGroupNode(NewWidgetNode(pc)),
		),
	)
	m.Register(w1, sp)
	m.Register(w2, NewTabGroupNode(NewWidgetNode(pd)))

	got := names(m.AllPanels())
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestEachPanelHostedExactlyOnce(t *testing.T) {
	m := NewLayoutModel()
	w := newWindow("w", Rect{W: 80, H: 24}, WindowFloating)
	pa, pb := testPanel("a"), testPanel("b")
	m.Register(w, NewSplitterNode(Vertical,
		NewTabGroupNode(NewWidgetNode(pa)),
		NewTabGroupNode(NewWidgetNode(pb)),
	))

	seen := map[*Panel]int{}
	for _, p := range m.AllPanels() {
		seen[p]++
	}
	for p, n := range seen {
		if n != 1 {
			t.Fatalf("panel %q hosted %d times", p.PersistentID, n)
		}
	}
}

func TestReplaceInParentRoot(t *testing.T) {
	m := NewLayoutModel()
	w := newWindow("w", Rect{W: 80, H: 24}, WindowFloating)
	g := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	m.Register(w, g)

	repl := NewSplitterNode(Horizontal, g, NewTabGroupNode())
	if err := m.ReplaceInParent(w, g, repl); err != nil {
		t.Fatalf("replace root failed: %v", err)
	}
	root, _ := m.Root(w)
	if root != Node(repl) {
		t.Fatalf("root not replaced")
	}
}

func TestReplaceInParentNested(t *testing.T) {
	m := NewLayoutModel()
	w := newWindow("w", Rect{W: 80, H: 24}, WindowFloating)
	g1 := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	g2 := NewTabGroupNode(NewWidgetNode(testPanel("b")))
	sp := NewSplitterNode(Horizontal, g1, g2)
	m.Register(w, sp)

	repl := NewTabGroupNode(NewWidgetNode(testPanel("c")))
	if err := m.ReplaceInParent(w, g2, repl); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if sp.Children[1] != Node(repl) {
		t.Fatalf("child not swapped")
	}
}

func TestReplaceInParentConsistencyError(t *testing.T) {
	m := NewLayoutModel()
	w := newWindow("w", Rect{W: 80, H: 24}, WindowFloating)
	g := NewTabGroupNode(NewWidgetNode(testPanel("a")))
	m.Register(w, g)

	foreign := NewTabGroupNode()
	err := m.ReplaceInParent(w, foreign, NewTabGroupNode())
	if err == nil {
		t.Fatalf("expected consistency error")
	}
	if !errors.Is(err, ErrConsistency) {
		t.Fatalf("expected ErrConsistency, got %v", err)
	}
	root, _ := m.Root(w)
	if root != Node(g) {
		t.Fatalf("failed replace must leave the model untouched")
	}
}

func TestReplaceInParentUnknownWindow(t *testing.T) {
	m := NewLayoutModel()
	w := newWindow("w", Rect{W: 80, H: 24}, WindowFloating)
	err := m.ReplaceInParent(w, NewTabGroupNode(), NewTabGroupNode())
	if !errors.Is(err, ErrNotManaged) {
		t.Fatalf("expected ErrNotManaged, got %v", err)
	}
}

func TestUnregisterRemovesWindow(t *testing.T) {
	m := NewLayoutModel()
	w1 := newWindow("w1", Rect{W: 80, H: 24}, WindowFloating)
	w2 := newWindow("w2", Rect{W: 80, H: 24}, WindowFloating)
	m.Register(w1, NewTabGroupNode())
	m.Register(w2, NewTabGroupNode())

	m.Unregister(w1)
	ws := m.Windows()
	if len(ws) != 1 || ws[0] != w2 {
		t.Fatalf("unexpected windows after unregister: %v", ws)
	}
	if _, ok := m.Root(w1); ok {
		t.Fatalf("unregistered window still has a root")
	}
}
