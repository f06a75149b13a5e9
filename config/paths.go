// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelvt configuration and data files.

package config

import (
	"os"
	"path/filepath"
)

const (
	systemConfigName = "texelvt.json"
	journalName      = "journal.db"
	logName          = "texelvt.log"
)

// Root returns the texelvt directory under the user config directory.
func Root() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelvt"), nil
}

// SystemPath returns the default config file path.
func SystemPath() (string, error) {
	return underRoot(systemConfigName)
}

// JournalPath returns the configured journal database path, falling back to
// journal.db under Root.
func (c Config) JournalPath() (string, error) {
	if p := c.GetString("journal", "path", ""); p != "" {
		return p, nil
	}
	return underRoot(journalName)
}

// LogPath returns the configured log file path, falling back to texelvt.log
// under Root.
func (c Config) LogPath() (string, error) {
	if p := c.GetString("log", "file", ""); p != "" {
		return p, nil
	}
	return underRoot(logName)
}

func underRoot(name string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}
