// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types_test.go
// Summary: Tests for typed config access and default merging.

package config

import (
	"encoding/json"
	"testing"
)

func TestSectionLookup(t *testing.T) {
	cfg := Config{
		"windows": map[string]interface{}{"min_width": 16},
		"flat":    "value",
	}
	if s := cfg.Section("windows"); s == nil || s["min_width"] != 16 {
		t.Fatalf("plain map section not found: %#v", s)
	}
	if s := cfg.Section("missing"); s != nil {
		t.Fatalf("missing section must be nil")
	}
	if s := cfg.Section(""); s == nil || s["flat"] != "value" {
		t.Fatalf("empty name must return the root")
	}
	var nilCfg Config
	if s := nilCfg.Section("windows"); s != nil {
		t.Fatalf("nil config must yield nil section")
	}
}

func TestGetIntCoercions(t *testing.T) {
	cfg := Config{"windows": Section{
		"a": 16,
		"b": float64(14),
		"c": json.Number("48"),
		"d": "5",
		"e": "not a number",
	}}
	cases := []struct {
		key  string
		want int
	}{
		{"a", 16},
		{"b", 14},
		{"c", 48},
		{"d", 5},
		{"e", 99}, // falls back to the default
		{"missing", 99},
	}
	for _, tc := range cases {
		if got := cfg.GetInt("windows", tc.key, 99); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.key, got, tc.want)
		}
	}
}

func TestGetBoolCoercions(t *testing.T) {
	cfg := Config{"layout": Section{
		"a": true,
		"b": "false",
		"c": "neither",
	}}
	if !cfg.GetBool("layout", "a", false) {
		t.Fatalf("bool value lost")
	}
	if cfg.GetBool("layout", "b", true) {
		t.Fatalf("string false not parsed")
	}
	if !cfg.GetBool("layout", "c", true) {
		t.Fatalf("unparseable string must fall back to the default")
	}
	if cfg.GetBool("missing", "a", true) != true {
		t.Fatalf("missing section must fall back to the default")
	}
}

func TestGetString(t *testing.T) {
	cfg := Config{"layout": Section{"autosave_name": "last-session", "n": 3}}
	if got := cfg.GetString("layout", "autosave_name", ""); got != "last-session" {
		t.Fatalf("got %q", got)
	}
	if got := cfg.GetString("layout", "n", "fallback"); got != "fallback" {
		t.Fatalf("non-string value must fall back, got %q", got)
	}
}

func TestRegisterDefaultsKeepsUserValues(t *testing.T) {
	cfg := Config{"windows": Section{"min_width": 30}}
	applyDefaults(cfg)

	if got := cfg.GetInt("windows", "min_width", 0); got != 30 {
		t.Fatalf("user value overwritten: %d", got)
	}
	if got := cfg.GetInt("windows", "cascade_step", 0); got != 2 {
		t.Fatalf("default not filled in: %d", got)
	}
	if !cfg.GetBool("layout", "autosave", false) {
		t.Fatalf("missing section must be created with defaults")
	}
}

func TestCloneIsolatesSections(t *testing.T) {
	cfg := Config{"windows": Section{"min_width": 16}}
	dup := Clone(cfg)
	dup.Section("windows")["min_width"] = 99
	if got := cfg.GetInt("windows", "min_width", 0); got != 16 {
		t.Fatalf("clone shares section storage, got %d", got)
	}
	if Clone(nil) != nil {
		t.Fatalf("Clone(nil) must be nil")
	}
}
