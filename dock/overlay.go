// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/overlay.go
// Summary: Implements docking overlay capabilities for the docking engine.
// Usage: Used during drags to present dock affordances and drop previews.

package dock

// DockLocation names a drop position relative to a target.
type DockLocation int

const (
	DockNone DockLocation = iota
	DockTop
	DockLeft
	DockBottom
	DockRight
	DockCenter
)

func (l DockLocation) String() string {
	switch l {
	case DockTop:
		return "top"
	case DockLeft:
		return "left"
	case DockBottom:
		return "bottom"
	case DockRight:
		return "right"
	case DockCenter:
		return "center"
	default:
		return "none"
	}
}

type overlayStyle int

const (
	overlayCluster overlayStyle = iota // icons grouped around the target center
	overlaySpread                      // icons pushed to the target edges
)

var overlayGlyphs = map[DockLocation]rune{
	DockTop:    '▲',
	DockLeft:   '◀',
	DockBottom: '▼',
	DockRight:  '▶',
	DockCenter: '⧉',
}

// dockOverlay is a purely advisory affordance owned by exactly one drop
// target for the duration of a drag. It computes icon hit zones and the
// translucent preview rect; it never mutates the model. Destroy it at
// drag end, never merely hide it.
type dockOverlay struct {
	target    Rect
	icons     map[DockLocation]Rect
	hot       DockLocation
	preview   Rect
	showPrev  bool
	destroyed bool
}

// newDockOverlay positions the given icon set over the target rect.
func newDockOverlay(target Rect, locations []DockLocation, style overlayStyle) *dockOverlay {
	o := &dockOverlay{
		target: target,
		icons:  make(map[DockLocation]Rect, len(locations)),
	}
	c := target.Center()
	// 3x3-cell icon zones; cluster packs them around the center, spread
	// pins them to the edges.
	zone := func(x, y int) Rect {
		return Rect{
			X: clamp(x-1, target.X, max(target.Right()-3, target.X)),
			Y: clamp(y-1, target.Y, max(target.Bottom()-3, target.Y)),
			W: 3, H: 3,
		}
	}
	for _, loc := range locations {
		var r Rect
		switch style {
		case overlayCluster:
			switch loc {
			case DockTop:
				r = zone(c.X, c.Y-4)
			case DockBottom:
				r = zone(c.X, c.Y+4)
			case DockLeft:
				r = zone(c.X-8, c.Y)
			case DockRight:
				r = zone(c.X+8, c.Y)
			default:
				r = zone(c.X, c.Y)
			}
		default: // overlaySpread
			switch loc {
			case DockTop:
				r = zone(c.X, target.Y+1)
			case DockBottom:
				r = zone(c.X, target.Bottom()-2)
			case DockLeft:
				r = zone(target.X+2, c.Y)
			case DockRight:
				r = zone(target.Right()-3, c.Y)
			default:
				r = zone(c.X, c.Y)
			}
		}
		o.icons[loc] = r
	}
	return o
}

// LocationAt maps a cursor point to the icon under it, or DockNone.
func (o *dockOverlay) LocationAt(p Point) DockLocation {
	if o.destroyed {
		return DockNone
	}
	for loc, r := range o.icons {
		if r.Contains(p) {
			return loc
		}
	}
	return DockNone
}

// ShowPreview highlights the half (or whole, for center) of the target
// that a drop at loc would occupy.
func (o *dockOverlay) ShowPreview(loc DockLocation) {
	o.hot = loc
	t := o.target
	switch loc {
	case DockTop:
		o.preview = Rect{X: t.X, Y: t.Y, W: t.W, H: t.H / 2}
	case DockBottom:
		o.preview = Rect{X: t.X, Y: t.Y + t.H/2, W: t.W, H: t.H - t.H/2}
	case DockLeft:
		o.preview = Rect{X: t.X, Y: t.Y, W: t.W / 2, H: t.H}
	case DockRight:
		o.preview = Rect{X: t.X + t.W/2, Y: t.Y, W: t.W - t.W/2, H: t.H}
	case DockCenter:
		o.preview = t
	default:
		o.showPrev = false
		return
	}
	o.showPrev = true
}

// HidePreview clears the highlight but keeps the icons.
func (o *dockOverlay) HidePreview() {
	o.showPrev = false
	o.hot = DockNone
}

// draw paints the preview underlay and the icon zones.
func (o *dockOverlay) draw(d *drawCtx, t *Theme) {
	if o.destroyed {
		return
	}
	if o.showPrev {
		d.fill(o.preview, ' ', t.Preview)
	}
	for loc, r := range o.icons {
		st := t.OverlayIcon
		if loc == o.hot {
			st = t.OverlayHot
		}
		d.fill(r, ' ', st)
		c := r.Center()
		d.set(c.X, c.Y, overlayGlyphs[loc], st)
	}
}

// Destroy makes the overlay inert. Further calls are no-ops.
func (o *dockOverlay) Destroy() {
	o.destroyed = true
	o.showPrev = false
	o.icons = nil
}
