// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry_test.go
// Summary: Tests for widget factory registration and lookup.

package registry

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/JustiSoft/jcdock/dock"
)

type nullWidget struct{}

func (nullWidget) Run() error                        { return nil }
func (nullWidget) Stop()                             {}
func (nullWidget) GetTitle() string                  { return "null" }
func (nullWidget) Resize(cols, rows int)             {}
func (nullWidget) Render() [][]dock.Cell             { return nil }
func (nullWidget) HandleKey(ev *tcell.EventKey)      {}
func (nullWidget) SetRefreshNotifier(ch chan<- bool) {}

func newNull() dock.Widget { return nullWidget{} }

func TestRegisterAndCreate(t *testing.T) {
	r := New()
	if err := r.Register("demo.notes", "Notes", newNull); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	w, title, err := r.Create("demo.notes")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if w == nil || title != "Notes" {
		t.Fatalf("got widget %v title %q", w, title)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := New()
	if err := r.Register("demo.notes", "Notes", newNull); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register("demo.notes", "Other", newNull); err == nil {
		t.Fatalf("duplicate key must be rejected")
	}
}

func TestRegisterValidatesArguments(t *testing.T) {
	r := New()
	if err := r.Register("", "Notes", newNull); err == nil {
		t.Fatalf("empty key must be rejected")
	}
	if err := r.Register("demo.notes", "Notes", nil); err == nil {
		t.Fatalf("nil factory must be rejected")
	}
}

func TestCreateUnknownKey(t *testing.T) {
	r := New()
	if _, _, err := r.Create("nope"); err == nil {
		t.Fatalf("unknown key must error")
	}
}

func TestKeysSorted(t *testing.T) {
	r := New()
	for _, k := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(k, k, newNull); err != nil {
			t.Fatalf("register %q failed: %v", k, err)
		}
	}
	keys := r.Keys()
	want := []string{"alpha", "mid", "zeta"}
	if len(keys) != len(want) {
		t.Fatalf("got %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}
