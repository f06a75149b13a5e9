// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/session.go
// Summary: In-process session: a grid plus a recorded reply channel.
// Usage: Replay mode and tests; the PTY session embeds the same grid handling.

package session

import (
	"bytes"
	"errors"
	"sync"

	"github.com/framegrace/texelvt/screen"
	"github.com/framegrace/texelvt/vt"
)

// Sentinel errors for the session package.
var (
	// ErrClosed is returned when writing to or resizing a closed session.
	ErrClosed = errors.New("session is closed")

	// ErrInvalidSize is returned for non-positive dimensions.
	ErrInvalidSize = errors.New("invalid session size")
)

// Memory is a session without a child process. Replies are kept in memory.
type Memory struct {
	mu      sync.Mutex
	grid    *screen.Grid
	replies bytes.Buffer
	closed  bool
}

var _ vt.Session = (*Memory)(nil)

// NewMemory creates a session with a blank grid of the given size.
func NewMemory(d vt.Dimensions) *Memory {
	return &Memory{grid: screen.NewGrid(d.Columns, d.Rows)}
}

// Buffer returns the session grid.
func (m *Memory) Buffer() vt.ScreenBuffer { return m.grid }

// Grid returns the concrete grid for inspection and rendering.
func (m *Memory) Grid() *screen.Grid { return m.grid }

// Dimensions returns the grid size.
func (m *Memory) Dimensions() vt.Dimensions { return m.grid.Size() }

// SetDimensions resizes the grid.
func (m *Memory) SetDimensions(d vt.Dimensions) error {
	if d.Columns < 1 || d.Rows < 1 {
		return ErrInvalidSize
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.grid.Resize(d.Columns, d.Rows)
	return nil
}

// Write records a reply destined for the child process.
func (m *Memory) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	return m.replies.Write(p)
}

// Replies returns everything written so far.
func (m *Memory) Replies() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replies.String()
}

// Close makes further writes and resizes fail.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
