// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the texelvt configuration file.

package config

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("interpreter", Section{
		"cursor_count": "legacy",
	})
	cfg.RegisterDefaults("session", Section{
		"shell":   "/bin/sh",
		"columns": 80,
		"rows":    24,
		"term":    "xterm-256color",
	})
	cfg.RegisterDefaults("journal", Section{
		"enabled":      false,
		"path":         "",
		"include_info": false,
	})
	cfg.RegisterDefaults("log", Section{
		"verbose": false,
		"file":    "",
	})
}
