// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/window.go
// Summary: Implements floating window capabilities for the docking engine.
// Usage: Used throughout the project for top-level regions hosting layout trees.

package dock

import "github.com/google/uuid"

// WindowKind distinguishes the main window from ordinary floating windows
// and pinned secondary roots.
type WindowKind int

const (
	WindowFloating WindowKind = iota
	WindowMain
	WindowPinnedRoot
)

func (k WindowKind) String() string {
	switch k {
	case WindowMain:
		return "main"
	case WindowPinnedRoot:
		return "pinned"
	default:
		return "floating"
	}
}

// Window is a top-level rectangular region on the screen. Row 0 of the
// frame is the title bar; the remaining border cells double as resize
// handles. Its layout tree lives in the LayoutModel; the view field is a
// disposable projection rebuilt on every render.
type Window struct {
	ID    uuid.UUID
	Title string
	Frame Rect
	Kind  WindowKind

	// PersistentRoot windows are never destroyed by simplification; an
	// emptied tree is reset to a placeholder tab group instead.
	PersistentRoot bool

	Maximized   bool
	normalFrame Rect // frame to restore when un-maximizing

	view *windowView
}

func newWindow(title string, frame Rect, kind WindowKind) *Window {
	w := &Window{
		ID:    uuid.New(),
		Title: title,
		Frame: frame,
		Kind:  kind,
	}
	if kind != WindowFloating {
		w.PersistentRoot = true
	}
	return w
}

// TitleBarRect is the top row of the frame.
func (w *Window) TitleBarRect() Rect {
	return Rect{X: w.Frame.X, Y: w.Frame.Y, W: w.Frame.W, H: 1}
}

// ContentRect is the area available to the layout tree: inside the side
// and bottom border, below the title bar.
func (w *Window) ContentRect() Rect {
	return Rect{X: w.Frame.X + 1, Y: w.Frame.Y + 1, W: w.Frame.W - 2, H: w.Frame.H - 2}
}

// closeButtonRect is the rightmost title-bar cell.
func (w *Window) closeButtonRect() Rect {
	return Rect{X: w.Frame.Right() - 2, Y: w.Frame.Y, W: 1, H: 1}
}

// maximizeButtonRect sits left of the close button.
func (w *Window) maximizeButtonRect() Rect {
	return Rect{X: w.Frame.Right() - 4, Y: w.Frame.Y, W: 1, H: 1}
}

// setMaximized toggles between the full screen rect and the remembered
// normal geometry.
func (w *Window) setMaximized(on bool, screen Rect) {
	if on == w.Maximized {
		return
	}
	if on {
		w.normalFrame = w.Frame
		w.Frame = screen
	} else {
		w.Frame = w.normalFrame
	}
	w.Maximized = on
}
