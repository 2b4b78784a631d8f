// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Implements the widget registry for layout restoration.
// Usage: The manager resolves persistent widget keys through a Registry instance.

package registry

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/JustiSoft/jcdock/dock"
)

// WidgetFactory creates a new widget instance for a registered key.
type WidgetFactory func() dock.Widget

// Entry is one registered widget kind.
type Entry struct {
	Key          string
	DefaultTitle string
	Factory      WidgetFactory
}

// Registry maps persistent widget keys to factories. It is an explicit
// instance: callers own it and hand it to whatever needs resolution,
// nothing lives in package state.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register installs a factory under a persistent key. Registering a key
// twice is an error; the first registration wins.
func (r *Registry) Register(key, defaultTitle string, factory WidgetFactory) error {
	if key == "" {
		return fmt.Errorf("registry: empty key")
	}
	if factory == nil {
		return fmt.Errorf("registry: nil factory for %q", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("registry: key %q already registered", key)
	}
	r.entries[key] = &Entry{Key: key, DefaultTitle: defaultTitle, Factory: factory}
	log.Printf("Registry: registered widget %q", key)
	return nil
}

// Create builds a widget for the key, returning the default title too.
// It satisfies the manager's resolver contract.
func (r *Registry) Create(key string) (dock.Widget, string, error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return nil, "", fmt.Errorf("registry: unknown widget key %q", key)
	}
	w := e.Factory()
	if w == nil {
		return nil, "", fmt.Errorf("registry: factory for %q returned nil", key)
	}
	return w, e.DefaultTitle, nil
}

// Keys lists the registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
