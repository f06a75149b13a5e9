// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration store for texelvt.
// Usage: System() for the default file, Load(path) for an explicit -config file.

package config

import (
	"errors"
	"log"
	"sync"
)

// ErrUnsupportedFormat is returned for config files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config stores configuration sections as JSON/YAML-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	loadErr error
)

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the configuration loaded from the default path
// (texelvt.json under the user config directory), with defaults applied.
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Reload refreshes the system config from disk.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadSystemLocked()
	return loadErr
}

// SaveSystem persists the current system config to disk.
func SaveSystem() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := SystemPath()
	if err != nil {
		return err
	}
	return writeConfig(path, system)
}

// SetSystem replaces the in-memory system config with the provided config.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	system = Clone(cfg)
	applyDefaults(system)
}

// Load reads the config at path. A missing file yields the defaults.
// The format follows the extension: .json, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg, exists, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		cfg = make(Config)
	} else {
		log.Printf("Config: Loaded config from %s", path)
	}
	if cfg == nil {
		cfg = make(Config)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Save writes cfg to path in the format named by its extension.
func Save(path string, cfg Config) error {
	return writeConfig(path, cfg)
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	loadErr = loadSystemLocked()
}
