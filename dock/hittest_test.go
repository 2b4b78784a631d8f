// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/hittest_test.go
// Summary: Tests for drop target resolution and tab insertion indices.

package dock

import "testing"

func buildHitManager(t *testing.T) (*Manager, *Window, *Window, *Panel, *Panel) {
	t.Helper()
	driver := &stubScreenDriver{}
	m := NewManager(driver, Options{Theme: testTheme(), Lifecycle: &trackingLifecycle{}})
	if err := m.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	pa := NewPanel("a", newFakeWidget("a"))
	pb := NewPanel("b", newFakeWidget("b"))
	wa := m.CreateFloating(Rect{X: 0, Y: 0, W: 40, H: 20}, pa)
	wb := m.CreateFloating(Rect{X: 20, Y: 5, W: 40, H: 20}, pb) // overlaps wa, stacked above
	m.RenderAll()
	return m, wa, wb, pa, pb
}

func TestDropTargetPrefersTopmostWindow(t *testing.T) {
	m, _, wb, _, pb := buildHitManager(t)

	// (30, 10) lies inside both windows; wb is on top
	reg := m.hit.DropTargetAt(Point{X: 30, Y: 10}, nil)
	if reg == nil {
		t.Fatalf("expected a drop target")
	}
	if reg.window != wb {
		t.Fatalf("topmost window must win, got %q", reg.window.Title)
	}
	if reg.kind != regionPanelBody || reg.panel != pb {
		t.Fatalf("expected b's panel body, got kind=%v", reg.kind)
	}
}

func TestDropTargetExcludesDraggedWindow(t *testing.T) {
	m, wa, wb, _, _ := buildHitManager(t)

	reg := m.hit.DropTargetAt(Point{X: 30, Y: 10}, wb)
	if reg == nil {
		t.Fatalf("expected fall-through to the lower window")
	}
	if reg.window != wa {
		t.Fatalf("excluding the top window must expose the lower one")
	}
}

func TestTopWindowShadowsLowerTargets(t *testing.T) {
	m, _, wb, _, _ := buildHitManager(t)

	// a point on wb's title bar hits no region, but wb still shadows wa
	reg := m.hit.DropTargetAt(Point{X: 30, Y: 5}, nil)
	if reg != nil && reg.window != wb {
		t.Fatalf("lower window must be shadowed by the window above it")
	}
}

func TestTabBarAtFindsBarAndIndex(t *testing.T) {
	m, _, _, pa, pb := buildHitManager(t)
	if err := m.DockPanel(pa, pb, DockCenter); err != nil {
		t.Fatalf("dock failed: %v", err)
	}
	m.RenderAll()

	host, _ := m.model.FindHost(pb)
	var bar *hitRegion
	for i := range host.Window.view.regions {
		if host.Window.view.regions[i].kind == regionTabBar {
			bar = &host.Window.view.regions[i]
			break
		}
	}
	if bar == nil {
		t.Fatalf("two tabs must produce a tab bar region")
	}

	reg, idx := m.hit.TabBarAt(Point{X: bar.rect.X, Y: bar.rect.Y}, nil)
	if reg == nil || reg.group != host.Group {
		t.Fatalf("bar not found at its own origin")
	}
	if idx != 0 {
		t.Fatalf("left edge of the first tab inserts at 0, got %d", idx)
	}

	_, idx = m.hit.TabBarAt(Point{X: bar.rect.Right() - 2, Y: bar.rect.Y}, nil)
	if idx != len(host.Group.Children) {
		t.Fatalf("right end of the bar appends, got %d", idx)
	}
}

func TestInsertIndexMidpoints(t *testing.T) {
	tabs := []Rect{
		{X: 0, Y: 0, W: 10, H: 1},
		{X: 10, Y: 0, W: 10, H: 1},
	}
	cases := []struct {
		x    int
		want int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{14, 1},
		{15, 2},
		{40, 2},
	}
	for _, tc := range cases {
		if got := insertIndexAt(tabs, tc.x); got != tc.want {
			t.Fatalf("x=%d: got %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestInvalidateForcesRebuild(t *testing.T) {
	m, wa, _, _, _ := buildHitManager(t)

	if reg := m.hit.DropTargetAt(Point{X: 5, Y: 2}, nil); reg == nil || reg.window != wa {
		t.Fatalf("expected wa's region at its own corner")
	}

	// move wa away and re-render; the cache must follow
	wa.Frame.X = 60
	wa.Frame.Y = 0
	m.RenderAll()
	reg := m.hit.DropTargetAt(Point{X: 5, Y: 2}, nil)
	if reg != nil && reg.window == wa {
		t.Fatalf("stale region survived invalidation")
	}
}
