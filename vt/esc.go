// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/esc.go
// Summary: ESC dispatcher - single-step cursor moves.

package vt

// OnEscape handles a bare ESC sequence. collected is the intermediate byte,
// 0 when absent. Sequences carrying an intermediate (charset designations
// such as ESC ( B) are never cursor moves.
func (in *Interpreter) OnEscape(collected, final byte) {
	in.diag.Log(CategoryESC, formatESC(collected, final))

	if collected != 0 {
		in.diag.Error(UnknownESC, formatESC(collected, final))
		return
	}
	switch final {
	case 'A':
		in.buf.MoveCursorRelative(Position{Vertical: -1})
	case 'B':
		in.buf.MoveCursorRelative(Position{Vertical: 1})
	case 'C':
		in.buf.MoveCursorRelative(Position{Horizontal: 1})
	case 'D':
		in.buf.MoveCursorRelative(Position{Horizontal: -1})
	default:
		in.diag.Error(UnknownESC, formatESC(collected, final))
	}
}

func formatESC(collected, final byte) string {
	if collected == 0 {
		return "ESC " + string(rune(final))
	}
	return "ESC " + string(rune(collected)) + " " + string(rune(final))
}
