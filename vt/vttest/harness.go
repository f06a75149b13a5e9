// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/vttest/harness.go
// Summary: Test harness wiring an interpreter to an in-memory session.
// Usage: Used by test files to send sequences and verify grid state.
// Notes: Lives outside package vt because the session and screen packages import vt.

package vttest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/framegrace/texelvt/screen"
	"github.com/framegrace/texelvt/session"
	"github.com/framegrace/texelvt/vt"
)

// Entry is one recorded diagnostic.
type Entry struct {
	Category vt.Category
	Error    bool
	Details  []any
}

func (e Entry) String() string {
	kind := "log"
	if e.Error {
		kind = "error"
	}
	return fmt.Sprintf("%s [%s] %s", kind, e.Category, vt.FormatDetails(e.Details...))
}

// Recorder is a Diagnostics sink that keeps every entry.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Log(c vt.Category, details ...any) {
	r.add(Entry{Category: c, Details: details})
}

func (r *Recorder) Error(c vt.Category, details ...any) {
	r.add(Entry{Category: c, Error: true, Details: details})
}

func (r *Recorder) add(e Entry) {
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
}

// Entries returns a copy of everything recorded.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Errors returns the error entries, optionally restricted to one category.
func (r *Recorder) Errors(c vt.Category) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Error && (c == "" || e.Category == c) {
			out = append(out, e)
		}
	}
	return out
}

// Logs returns the informational entries of category c.
func (r *Recorder) Logs(c vt.Category) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if !e.Error && e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets all entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}

// Harness drives an interpreter over a session.Memory.
type Harness struct {
	Session *session.Memory
	Interp  *vt.Interpreter
	Diag    *Recorder
}

// NewHarness creates a harness with a cols x rows grid.
func NewHarness(cols, rows int, opts ...vt.Option) *Harness {
	h := &Harness{
		Session: session.NewMemory(vt.Dimensions{Columns: cols, Rows: rows}),
		Diag:    &Recorder{},
	}
	opts = append([]vt.Option{vt.WithDiagnostics(h.Diag)}, opts...)
	h.Interp = vt.New(h.Session, opts...)
	return h
}

// Send feeds raw terminal output to the interpreter.
// Example: h.Send("\x1b[2;3H") moves the cursor to row 2, column 3.
func (h *Harness) Send(seq string) {
	h.Interp.Parse(seq)
}

// Grid returns the session grid.
func (h *Harness) Grid() *screen.Grid {
	return h.Session.Grid()
}

// Cursor returns the 1-based cursor position.
func (h *Harness) Cursor() vt.Position {
	return h.Grid().Cursor()
}

// Attr returns the current rendition.
func (h *Harness) Attr() vt.Attribute {
	return h.Grid().Attributes()
}

// AssertCursor verifies the cursor is at row, col (1-based).
func (h *Harness) AssertCursor(t *testing.T, row, col int) {
	t.Helper()
	want := vt.Position{Vertical: row, Horizontal: col}
	if got := h.Cursor(); got != want {
		t.Errorf("cursor at %+v, want %+v", got, want)
	}
}

// AssertLine verifies the trimmed text of a row (1-based).
func (h *Harness) AssertLine(t *testing.T, row int, want string) {
	t.Helper()
	if got := h.Grid().Line(row); got != want {
		t.Errorf("line %d = %q, want %q", row, got, want)
	}
}

// AssertAttr verifies the current rendition.
func (h *Harness) AssertAttr(t *testing.T, want vt.Attribute) {
	t.Helper()
	if got := h.Attr(); got != want {
		t.Errorf("attribute = %s, want %s", got, want)
	}
}

// AssertNoErrors fails if any error diagnostic was recorded.
func (h *Harness) AssertNoErrors(t *testing.T) {
	t.Helper()
	for _, e := range h.Diag.Errors("") {
		t.Errorf("unexpected diagnostic: %s", e)
	}
}

// AssertErrorCount verifies how many errors of category c were recorded.
func (h *Harness) AssertErrorCount(t *testing.T, c vt.Category, want int) {
	t.Helper()
	if got := len(h.Diag.Errors(c)); got != want {
		t.Errorf("%d %s errors, want %d: %v", got, c, want, h.Diag.Errors(""))
	}
}
