// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/theme.go
// Summary: Implements theme capabilities for the docking engine.
// Usage: Used by the renderer and overlays for consistent chrome styling.

package dock

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme bundles the styles used by window chrome, tab bars and overlays.
type Theme struct {
	Desktop        tcell.Style
	Border         tcell.Style
	BorderActive   tcell.Style
	TitleBar       tcell.Style
	TitleBarActive tcell.Style
	TabActive      tcell.Style
	TabInactive    tcell.Style
	OverlayIcon    tcell.Style
	OverlayHot     tcell.Style
	Preview        tcell.Style
}

// DefaultTheme derives a palette from the terminal's default colors.
func DefaultTheme(fg, bg tcell.Color) *Theme {
	base := tcell.StyleDefault.Foreground(fg).Background(bg)
	accent := tcell.NewRGBColor(97, 175, 239)
	chrome := blend(bg, fg, 0.18)
	chromeHot := blend(bg, accent, 0.45)
	return &Theme{
		Desktop:        base,
		Border:         base.Foreground(blend(bg, fg, 0.45)),
		BorderActive:   base.Foreground(accent),
		TitleBar:       tcell.StyleDefault.Foreground(fg).Background(chrome),
		TitleBarActive: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(chromeHot),
		TabActive:      tcell.StyleDefault.Foreground(fg).Background(blend(bg, accent, 0.30)),
		TabInactive:    tcell.StyleDefault.Foreground(blend(fg, bg, 0.35)).Background(chrome),
		OverlayIcon:    base.Foreground(accent).Bold(true),
		OverlayHot:     tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(accent).Bold(true),
		Preview:        tcell.StyleDefault.Background(blend(bg, accent, 0.35)),
	}
}

// blend mixes two tcell colors in Luv space, t=0 giving a and t=1 giving b.
func blend(a, b tcell.Color, t float64) tcell.Color {
	if !a.Valid() {
		a = tcell.ColorBlack
	}
	if !b.Valid() {
		b = tcell.ColorWhite
	}
	ar, ag, ab := a.TrueColor().RGB()
	br, bg2, bb := b.TrueColor().RGB()
	ca := colorful.Color{R: float64(ar) / 255, G: float64(ag) / 255, B: float64(ab) / 255}
	cb := colorful.Color{R: float64(br) / 255, G: float64(bg2) / 255, B: float64(bb) / 255}
	m := ca.BlendLuv(cb, t).Clamped()
	return tcell.NewRGBColor(int32(m.R*255), int32(m.G*255), int32(m.B*255))
}
