// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/doc.go
// Summary: Package documentation for the control sequence interpreter.

// Package vt interprets tokenized terminal output.
//
// An Interpreter owns a tokenizer and routes its tokens to four handlers:
//
//   - text and control bytes are written to the ScreenBuffer
//   - CSI sequences move the cursor, erase, set renditions (SGR), answer
//     device attribute queries and toggle DEC private modes
//   - ESC sequences perform single-step cursor moves
//   - OSC payloads are reported and otherwise ignored
//
// The interpreter keeps no screen state of its own. The current rendition
// lives in the buffer and is read back when SGR 7 swaps colors. Nothing a
// child process sends is fatal: malformed or unsupported input is reported
// to a Diagnostics sink and interpretation continues with the next token.
//
// Basic usage:
//
//	sess := session.NewMemory(vt.Dimensions{Columns: 80, Rows: 24})
//	in := vt.New(sess, vt.WithDiagnostics(vt.NewLogDiagnostics(nil, false)))
//	in.Parse("\x1b[1;31mhello\x1b[0m")
package vt
