// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/replay.go
// Summary: Replay runner - interprets recorded output and prints the final screen.
// Usage: cmd/texelvt -replay FILE; also handy for reproducing bug reports.

package devshell

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/framegrace/texelvt/session"
	"github.com/framegrace/texelvt/vt"
)

// ReplayOptions configures Replay.
type ReplayOptions struct {
	Size        vt.Dimensions
	CursorCount vt.CursorCount
	Diagnostics vt.Diagnostics
}

// Replay interprets everything read from r on an in-memory session and
// writes the resulting screen to w, one line per row.
func Replay(r io.Reader, w io.Writer, opts ReplayOptions) error {
	if opts.Size.Columns < 1 || opts.Size.Rows < 1 {
		return session.ErrInvalidSize
	}
	sess := session.NewMemory(opts.Size)
	defer sess.Close()

	interp := vt.New(sess,
		vt.WithDiagnostics(opts.Diagnostics),
		vt.WithCursorCount(opts.CursorCount),
	)
	if _, err := io.Copy(interp, r); err != nil {
		return fmt.Errorf("read recording: %w", err)
	}
	if _, err := fmt.Fprintln(w, sess.Grid().String()); err != nil {
		return fmt.Errorf("write screen: %w", err)
	}
	return nil
}

// ReplayFile is Replay over the file at path.
func ReplayFile(path string, w io.Writer, opts ReplayOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Replay(f, w, opts)
}

// TerminalSize returns the size of the terminal on fd, or fallback when fd
// is not a terminal.
func TerminalSize(fd int, fallback vt.Dimensions) vt.Dimensions {
	if !term.IsTerminal(fd) {
		return fallback
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols < 1 || rows < 1 {
		return fallback
	}
	return vt.Dimensions{Columns: cols, Rows: rows}
}
