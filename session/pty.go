// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/pty.go
// Summary: PTY-backed session running a child process.
// Usage: Live mode; child output is read with Read, replies go back through Write.
// Notes: SetDimensions resizes both the pty window and the grid.

package session

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"

	"github.com/framegrace/texelvt/screen"
	"github.com/framegrace/texelvt/vt"
)

// Options configures a PTY session.
type Options struct {
	Command string
	Args    []string
	Term    string
	Size    vt.Dimensions
}

// PTY is a session attached to a child process through a pseudo terminal.
type PTY struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	ptmx   *os.File
	grid   *screen.Grid
	closed bool
}

var _ vt.Session = (*PTY)(nil)

// Start launches opts.Command on a new pty sized to opts.Size.
func Start(opts Options) (*PTY, error) {
	if opts.Size.Columns < 1 || opts.Size.Rows < 1 {
		return nil, ErrInvalidSize
	}
	term := opts.Term
	if term == "" {
		term = "xterm-256color"
	}

	cmd := exec.Command(opts.Command, opts.Args...)
	cmd.Env = append(os.Environ(), "TERM="+term)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(opts.Size.Rows),
		Cols: uint16(opts.Size.Columns),
	})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", opts.Command, err)
	}
	log.Printf("Session: started %s (pid %d) at %dx%d", opts.Command, cmd.Process.Pid, opts.Size.Columns, opts.Size.Rows)

	return &PTY{
		cmd:  cmd,
		ptmx: ptmx,
		grid: screen.NewGrid(opts.Size.Columns, opts.Size.Rows),
	}, nil
}

// Buffer returns the session grid.
func (p *PTY) Buffer() vt.ScreenBuffer { return p.grid }

// Grid returns the concrete grid for rendering.
func (p *PTY) Grid() *screen.Grid { return p.grid }

// Dimensions returns the current grid size.
func (p *PTY) Dimensions() vt.Dimensions { return p.grid.Size() }

// SetDimensions resizes the pty window and the grid.
func (p *PTY) SetDimensions(d vt.Dimensions) error {
	if d.Columns < 1 || d.Rows < 1 {
		return ErrInvalidSize
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if err := pty.Setsize(p.ptmx, &pty.Winsize{Rows: uint16(d.Rows), Cols: uint16(d.Columns)}); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	p.grid.Resize(d.Columns, d.Rows)
	return nil
}

// Write sends bytes to the child (replies and keyboard input).
func (p *PTY) Write(b []byte) (int, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return 0, ErrClosed
	}
	return p.ptmx.Write(b)
}

// Read reads child output.
func (p *PTY) Read(b []byte) (int, error) {
	return p.ptmx.Read(b)
}

// Wait blocks until the child exits.
func (p *PTY) Wait() error {
	return p.cmd.Wait()
}

// Close terminates the child and releases the pty.
func (p *PTY) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.cmd.Process != nil {
		p.cmd.Process.Signal(syscall.SIGTERM)
	}
	return p.ptmx.Close()
}
