// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/decmode.go
// Summary: DEC private mode handling (CSI ? Pm h / CSI ? Pm l).
// Usage: Called by the CSI dispatcher once the token shape has been validated.
// Notes: Each mode is an independent table entry; modes never share effects.

package vt

import "fmt"

// ModeStatus reports whether a DEC private mode had a defined effect.
type ModeStatus int

const (
	ModeUnhandled ModeStatus = iota
	ModeHandled
)

func (s ModeStatus) String() string {
	if s == ModeHandled {
		return "handled"
	}
	return "unhandled"
}

// ModeResult describes the outcome of a DEC private mode request.
type ModeResult struct {
	Status      ModeStatus
	Description string
	URL         string
}

// DEC private mode ids.
const (
	ModeDECCOLM        = 3
	ModeCursorBlink    = 12
	ModeDECTCEM        = 25
	ModeAltScreen      = 1049
	ModeBracketedPaste = 2004
)

// modeEffect is one direction (set or reset) of a mode. A nil apply means
// the direction has no defined effect.
type modeEffect struct {
	description string
	apply       func(in *Interpreter)
}

type decMode struct {
	url   string
	set   modeEffect
	reset modeEffect
}

var decModes = map[int]decMode{
	ModeDECCOLM: {
		url: "http://www.vt100.net/docs/vt510-rm/DECCOLM",
		set: modeEffect{description: "132 Column Mode (DECCOLM)"},
		reset: modeEffect{
			description: "80 Column Mode (DECCOLM)",
			apply: func(in *Interpreter) {
				rows := in.session.Dimensions().Rows
				if err := in.session.SetDimensions(Dimensions{Columns: 80, Rows: rows}); err != nil {
					in.diag.Error(SessionFailure, fmt.Errorf("set dimensions: %w", err))
				}
			},
		},
	},
	ModeCursorBlink: {
		set: modeEffect{
			description: "Start Blinking Cursor (att610).",
			apply:       func(in *Interpreter) { in.buf.BlinkCursor(true) },
		},
		reset: modeEffect{
			description: "Stop Blinking Cursor (att610).",
			apply:       func(in *Interpreter) { in.buf.BlinkCursor(false) },
		},
	},
	ModeDECTCEM: {
		url: "http://www.vt100.net/docs/vt510-rm/DECTCEM",
		set: modeEffect{
			description: "Show Cursor (DECTCEM).",
			apply:       func(in *Interpreter) { in.buf.ShowCursor(true) },
		},
		reset: modeEffect{
			description: "Hide Cursor (DECTCEM).",
			apply:       func(in *Interpreter) { in.buf.ShowCursor(false) },
		},
	},
	ModeAltScreen: {
		set: modeEffect{
			description: "Use Alternate Screen Buffer.",
			apply: func(in *Interpreter) {
				in.buf.SetActiveBuffer(AlternateBuffer)
				in.diag.Error(NotImplemented, "CSI ? 1049 h", "cursor save and alternate screen clear")
			},
		},
		reset: modeEffect{
			description: "Use Normal Screen Buffer.",
			apply: func(in *Interpreter) {
				in.buf.SetActiveBuffer(PrimaryBuffer)
				in.diag.Error(NotImplemented, "CSI ? 1049 l", "cursor restore")
			},
		},
	},
	ModeBracketedPaste: {
		set: modeEffect{
			description: "Set bracketed paste mode.",
			apply: func(in *Interpreter) {
				in.diag.Error(NotImplemented, "CSI ? 2004 h", "paste boundaries are not injected")
			},
		},
		reset: modeEffect{
			description: "Reset bracketed paste mode.",
			apply: func(in *Interpreter) {
				in.diag.Error(NotImplemented, "CSI ? 2004 l", "paste boundaries are not injected")
			},
		},
	},
}

// handlePrivateMode runs the effect for mode in the requested direction.
func (in *Interpreter) handlePrivateMode(mode int, set bool) ModeResult {
	entry, ok := decModes[mode]
	if !ok {
		return ModeResult{Status: ModeUnhandled}
	}
	effect := entry.reset
	if set {
		effect = entry.set
	}
	res := ModeResult{Description: effect.description, URL: entry.url}
	if effect.apply == nil {
		res.Status = ModeUnhandled
		return res
	}
	effect.apply(in)
	res.Status = ModeHandled
	return res
}
