// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/settings.go
// Summary: Typed view of the texelvt configuration.

package config

import (
	"fmt"
	"log"

	"github.com/framegrace/texelvt/vt"
)

// Settings is the resolved configuration used by the command.
type Settings struct {
	CursorCount vt.CursorCount

	Shell string
	Term  string
	Size  vt.Dimensions

	JournalEnabled     bool
	JournalPath        string
	JournalIncludeInfo bool

	Verbose bool
	LogFile string
}

// Settings resolves c into typed settings. Invalid values fall back to
// their defaults and are logged.
func (c Config) Settings() (Settings, error) {
	s := Settings{
		Shell:              c.GetString("session", "shell", "/bin/sh"),
		Term:               c.GetString("session", "term", "xterm-256color"),
		JournalEnabled:     c.GetBool("journal", "enabled", false),
		JournalIncludeInfo: c.GetBool("journal", "include_info", false),
		Verbose:            c.GetBool("log", "verbose", false),
		Size: vt.Dimensions{
			Columns: c.GetInt("session", "columns", 80),
			Rows:    c.GetInt("session", "rows", 24),
		},
	}

	raw := c.GetString("interpreter", "cursor_count", "legacy")
	count, ok := vt.ParseCursorCount(raw)
	if !ok {
		log.Printf("Config: Unknown interpreter.cursor_count %q, using %s", raw, count)
	}
	s.CursorCount = count

	if s.Size.Columns < 1 || s.Size.Rows < 1 {
		return s, fmt.Errorf("invalid session size %dx%d", s.Size.Columns, s.Size.Rows)
	}

	var err error
	if s.JournalPath, err = c.JournalPath(); err != nil {
		return s, fmt.Errorf("resolve journal path: %w", err)
	}
	if s.LogFile, err = c.LogPath(); err != nil {
		return s, fmt.Errorf("resolve log path: %w", err)
	}
	return s, nil
}
