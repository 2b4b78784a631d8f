// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/hittest.go
// Summary: Implements hit-test caching for the docking engine.
// Usage: Used during drags to resolve the drop target under the cursor.

package dock

type regionKind int

const (
	regionTabBar regionKind = iota
	regionPanelBody
	regionContainerBody
)

// hitRegion is one candidate rectangle a drag can land on. Regions are
// harvested from window views so they always match what is on screen.
type hitRegion struct {
	rect     Rect
	kind     regionKind
	window   *Window
	group    *TabGroupNode
	panel    *Panel
	tabRects []Rect
}

// HitTestCache holds the drop-candidate regions for the duration of a
// drag, ordered topmost window first and, within a window, tab bars
// before bodies. It is rebuilt lazily after invalidation.
type HitTestCache struct {
	valid   bool
	regions []hitRegion
	rebuild func() []hitRegion
}

func newHitTestCache(rebuild func() []hitRegion) *HitTestCache {
	return &HitTestCache{rebuild: rebuild}
}

// Invalidate drops the cached regions; the next query rebuilds them.
func (c *HitTestCache) Invalidate() {
	c.valid = false
	c.regions = nil
}

func (c *HitTestCache) ensure() {
	if c.valid {
		return
	}
	c.regions = c.rebuild()
	c.valid = true
}

// DropTargetAt returns the topmost region containing p, excluding any
// region belonging to the excluded window. Once a window contains the
// point, deeper windows are shadowed even when the hit lands on chrome.
func (c *HitTestCache) DropTargetAt(p Point, exclude *Window) *hitRegion {
	c.ensure()
	var shadow *Window
	for i := range c.regions {
		reg := &c.regions[i]
		if reg.window == exclude {
			continue
		}
		if shadow != nil && reg.window != shadow {
			continue
		}
		if !reg.rect.Contains(p) {
			if shadow == nil && reg.window.Frame.Contains(p) {
				shadow = reg.window
			}
			continue
		}
		return reg
	}
	return nil
}

// TabBarAt returns the tab-bar region containing p, if any, along with
// the insertion index derived from tab midpoints.
func (c *HitTestCache) TabBarAt(p Point, exclude *Window) (*hitRegion, int) {
	c.ensure()
	var shadow *Window
	for i := range c.regions {
		reg := &c.regions[i]
		if reg.window == exclude {
			continue
		}
		if shadow != nil && reg.window != shadow {
			continue
		}
		if reg.window.Frame.Contains(p) && shadow == nil {
			shadow = reg.window
		}
		if reg.kind != regionTabBar || !reg.rect.Contains(p) {
			continue
		}
		return reg, insertIndexAt(reg.tabRects, p.X)
	}
	return nil, 0
}

// insertIndexAt maps an x position on a tab bar to the index a dropped tab
// would take: before a tab when left of its midpoint, otherwise after.
func insertIndexAt(tabs []Rect, x int) int {
	for i, tr := range tabs {
		if tr.Empty() {
			continue
		}
		if x < tr.X+tr.W/2 {
			return i
		}
	}
	return len(tabs)
}
