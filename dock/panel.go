// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/panel.go
// Summary: Implements panel capabilities for the docking engine.
// Usage: Used throughout the project to host user widgets inside dockable leaves.

package dock

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

// Cell is a single rendered character cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Widget is the contract a hosted application fulfils. The manager drives
// sizing and rendering; the widget pushes repaint requests through the
// notifier channel it is handed.
type Widget interface {
	Run() error
	Stop()
	GetTitle() string
	Resize(cols, rows int)
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(ch chan<- bool)
}

// StateCapturer is implemented by widgets that can describe their own
// internal state for layout persistence.
type StateCapturer interface {
	CaptureState() (map[string]any, error)
}

// StateRestorer is implemented by widgets that can re-apply state captured
// by a previous CaptureState call.
type StateRestorer interface {
	RestoreState(state map[string]any) error
}

// Panel is a dockable unit of content: a widget plus the identity and
// chrome attributes the docking system needs. Panels move between tab
// groups and windows; the wrapped widget never observes those moves.
type Panel struct {
	ID           uuid.UUID
	PersistentID string
	Title        string // optional override; empty falls back to the widget title
	Margin       int    // content inset in cells
	Widget       Widget

	running bool
}

// NewPanel wraps a widget under a stable persistent identifier.
func NewPanel(persistentID string, w Widget) *Panel {
	return &Panel{
		ID:           uuid.New(),
		PersistentID: persistentID,
		Widget:       w,
	}
}

// DisplayTitle resolves the title shown on tabs and title bars.
func (p *Panel) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	if p.Widget != nil {
		return p.Widget.GetTitle()
	}
	return p.PersistentID
}

func (p *Panel) start(refresh chan<- bool) {
	if p.running || p.Widget == nil {
		return
	}
	p.Widget.SetRefreshNotifier(refresh)
	p.running = true
	go p.Widget.Run()
}

func (p *Panel) stop() {
	if !p.running || p.Widget == nil {
		return
	}
	p.Widget.Stop()
	p.running = false
}
