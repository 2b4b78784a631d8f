// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/dispatcher.go
// Summary: Implements event dispatch capabilities for the docking engine.
// Usage: Used throughout the project to notify listeners of docking changes.

package dock

import "sync"

// EventType defines the type of an event.
type EventType int

const (
	// Panel lifecycle events
	EventPanelDocked EventType = iota
	EventPanelUndocked
	EventPanelClosed
	EventPanelActivated
	// Window events
	EventWindowClosed
	// Global events
	EventLayoutChanged
)

// Event represents a message passed through the system.
// It has a type and carries the affected panel and window where relevant.
type Event struct {
	Type         EventType
	Panel        *Panel
	PersistentID string
	Window       *Window
	Location     DockLocation
}

// Listener is an interface that any component can implement to receive events.
type Listener interface {
	// OnEvent is the callback method for receiving events.
	OnEvent(event Event)
}

// EventDispatcher manages a list of listeners and broadcasts events to them.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		listeners: make([]Listener, 0),
	}
}

// Subscribe adds a new listener to receive events.
func (d *EventDispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Unsubscribe removes a listener.
func (d *EventDispatcher) Unsubscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l == listener {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
}

// Broadcast sends an event to all subscribed listeners.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, l := range d.listeners {
		l.OnEvent(event)
	}
}
