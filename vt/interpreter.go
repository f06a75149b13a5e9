// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/interpreter.go
// Summary: Interpreter - turns tokenized control sequences into screen mutations.
// Usage: Feed PTY output through Parse or Write; read results from the session buffer.
// Notes: Not safe for concurrent use. Holds no state beyond its collaborators.

package vt

import (
	"fmt"

	"github.com/framegrace/texelvt/tokenizer"
)

// Interpreter translates tokens into ScreenBuffer mutations and session replies.
type Interpreter struct {
	session Session
	buf     ScreenBuffer
	diag    Diagnostics
	count   CursorCount
	tok     *tokenizer.Tokenizer

	// privateMode runs validated DEC private mode requests.
	privateMode func(mode int, set bool) ModeResult
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithDiagnostics sets the diagnostics sink. A nil sink discards everything.
func WithDiagnostics(d Diagnostics) Option {
	return func(in *Interpreter) {
		if d == nil {
			d = Discard
		}
		in.diag = d
	}
}

// WithCursorCount selects the parameter read by relative cursor moves.
func WithCursorCount(c CursorCount) Option {
	return func(in *Interpreter) { in.count = c }
}

// New creates an interpreter bound to session and its buffer.
func New(session Session, opts ...Option) *Interpreter {
	in := &Interpreter{
		session: session,
		buf:     session.Buffer(),
		diag:    NewLogDiagnostics(nil, false),
		count:   CursorCountLegacy,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.privateMode = in.handlePrivateMode
	in.tok = tokenizer.New(in)
	return in
}

// Parse interprets a chunk of terminal output.
func (in *Interpreter) Parse(data string) {
	in.tok.Parse([]byte(data))
}

// Write implements io.Writer so PTY output can be copied straight in.
func (in *Interpreter) Write(p []byte) (int, error) {
	in.tok.Parse(p)
	return len(p), nil
}

// OnText writes a run of printable characters.
func (in *Interpreter) OnText(run string) {
	in.diag.Log(CategoryText, run)
	for _, r := range run {
		in.buf.Write(r)
	}
}

// OnControl passes a C0 control byte to the buffer, which owns line discipline.
func (in *Interpreter) OnControl(b byte) {
	in.diag.Log(CategoryControl, fmt.Sprintf("0x%02x", b))
	in.buf.Write(rune(b))
}

// OnOSC reports an operating system command; none are acted on.
func (in *Interpreter) OnOSC(payload string) {
	in.diag.Error(UnrecognizedOsc, payload)
}

func (in *Interpreter) reply(s string) {
	if _, err := in.session.Write([]byte(s)); err != nil {
		in.diag.Error(SessionFailure, fmt.Errorf("write reply %q: %w", s, err))
	}
}
