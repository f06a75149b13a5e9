// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/csi.go
// Summary: CSI dispatcher - cursor movement, erase, SGR, device attributes, DEC modes.
// Usage: Invoked by the tokenizer for every complete CSI sequence.

package vt

import (
	"strconv"
	"strings"
)

// CSI final bytes handled by the dispatcher.
const (
	finalCUU = 'A' // Cursor Up
	finalCUD = 'B' // Cursor Down
	finalCUF = 'C' // Cursor Forward
	finalCUB = 'D' // Cursor Back
	finalCUP = 'H' // Cursor Position
	finalHVP = 'f' // Horizontal and Vertical Position
	finalED  = 'J' // Erase in Display
	finalEL  = 'K' // Erase in Line
	finalSGR = 'm' // Select Graphic Rendition
	finalDA  = 'c' // Device Attributes

	finalSet   = 'h'
	finalReset = 'l'

	decPrivateMode = '?'
)

// Erase selectors for ED and EL.
const (
	eraseToEnd       = 0
	eraseToBeginning = 1
	eraseEntire      = 2
)

// deviceAttributesReply is written back for CSI c.
const deviceAttributesReply = "\x1b>1;2;"

// CursorCount selects which CSI parameter holds the count for CUU/CUD/CUF/CUB.
type CursorCount int

const (
	// CursorCountLegacy reads the count from the second parameter. Shells
	// send a single parameter, so every relative move is by one cell.
	CursorCountLegacy CursorCount = iota
	// CursorCountStandard reads the count from the first parameter (ECMA-48).
	CursorCountStandard
)

func (c CursorCount) String() string {
	if c == CursorCountStandard {
		return "standard"
	}
	return "legacy"
}

// ParseCursorCount maps a config value to a CursorCount.
func ParseCursorCount(s string) (CursorCount, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return CursorCountLegacy, true
	case "standard":
		return CursorCountStandard, true
	}
	return CursorCountLegacy, false
}

// OnCSI interprets a parsed CSI sequence and calls the appropriate handler.
// collected is the private marker or intermediate byte, 0 when absent.
func (in *Interpreter) OnCSI(collected byte, params []int, final byte) {
	in.diag.Log(CategoryCSI, FormatCSI(collected, params, final))

	if collected == decPrivateMode {
		in.dispatchPrivateMode(params, final)
		return
	}

	switch final {
	case finalSGR:
		in.ApplySGR(params)
	case finalCUU:
		in.buf.MoveCursorRelative(Position{Vertical: -in.cursorCount(params)})
	case finalCUD:
		in.buf.MoveCursorRelative(Position{Vertical: in.cursorCount(params)})
	case finalCUF:
		in.buf.MoveCursorRelative(Position{Horizontal: in.cursorCount(params)})
	case finalCUB:
		in.buf.MoveCursorRelative(Position{Horizontal: -in.cursorCount(params)})
	case finalCUP, finalHVP:
		in.buf.MoveCursorAbsolute(Position{
			Vertical:   paramOr(params, 0, 1),
			Horizontal: paramOr(params, 1, 1),
		})
	case finalED:
		switch eraseSelector(params) {
		case eraseEntire:
			in.buf.Clear()
		case eraseToEnd:
			in.buf.ClearToEnd()
		case eraseToBeginning:
			in.buf.ClearToBeginning()
		}
	case finalEL:
		switch eraseSelector(params) {
		case eraseEntire:
			in.buf.ClearRow()
		case eraseToEnd:
			in.buf.ClearRowToEnd()
		case eraseToBeginning:
			in.buf.ClearRowToBeginning()
		}
	case finalDA:
		in.reply(deviceAttributesReply)
	default:
		in.diag.Error(UnknownCSI, FormatCSI(collected, params, final))
	}
}

func (in *Interpreter) dispatchPrivateMode(params []int, final byte) {
	if len(params) != 1 {
		in.diag.Error(MalformedPrivateMode, "expected 1 parameter", params, FormatCSI(decPrivateMode, params, final))
		return
	}
	if final != finalSet && final != finalReset {
		in.diag.Error(MalformedPrivateMode, "incorrect final", FormatCSI(decPrivateMode, params, final))
		return
	}

	mode := params[0]
	res := in.privateMode(mode, final == finalSet)
	seq := FormatCSI(decPrivateMode, params, final)
	if res.Status == ModeHandled {
		in.diag.Log(CategoryPrivateMode, seq, res.Description, res.URL)
	} else {
		in.diag.Error(UnhandledPrivateMode, seq, res.Description, res.URL)
	}
}

// cursorCount returns the repeat count for a relative cursor move.
func (in *Interpreter) cursorCount(params []int) int {
	idx := 1
	if in.count == CursorCountStandard {
		idx = 0
	}
	return paramOr(params, idx, 1)
}

// paramOr returns params[i], or def when it is absent or zero.
func paramOr(params []int, i, def int) int {
	if i < len(params) && params[i] > 0 {
		return params[i]
	}
	return def
}

// eraseSelector returns the ED/EL selector; an absent parameter erases to end.
func eraseSelector(params []int) int {
	if len(params) == 0 {
		return eraseToEnd
	}
	return params[0]
}

// FormatCSI renders a CSI token the way it appears on the wire, with
// spaces between the parts, e.g. "CSI ? 25 h".
func FormatCSI(collected byte, params []int, final byte) string {
	var b strings.Builder
	b.WriteString("CSI")
	if collected != 0 {
		b.WriteByte(' ')
		b.WriteByte(collected)
	}
	if len(params) > 0 {
		b.WriteByte(' ')
		for i, p := range params {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(strconv.Itoa(p))
		}
	}
	b.WriteByte(' ')
	b.WriteByte(final)
	return b.String()
}
