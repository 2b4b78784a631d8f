// Copyright © 2025 JCDock contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Built-in defaults merged under user configuration.

package config

func applyDefaults(cfg Config) {
	cfg.RegisterDefaults("windows", Section{
		"default_floating_width":  48,
		"default_floating_height": 14,
		"min_width":               16,
		"min_height":              5,
		"cascade_step":            2,
		"title_bar_height":        1,
	})
	cfg.RegisterDefaults("layout", Section{
		"autosave":      true,
		"autosave_name": "last-session",
	})
}
