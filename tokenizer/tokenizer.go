// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tokenizer/tokenizer.go
// Summary: Byte stream tokenizer delivering typed VT tokens to a Handler.
// Usage: Owned by vt.Interpreter; can also drive any Handler directly.
// Notes: Sequence recognition is delegated to charmbracelet/x/ansi. This
//        package only reshapes its callbacks and batches printable runes.

package tokenizer

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// maxOSCPayload bounds the OSC/DCS data the parser collects.
const maxOSCPayload = 4096

// Handler receives tokens in encounter order.
type Handler interface {
	// OnText receives a run of printable characters.
	OnText(run string)
	// OnControl receives a single C0/C1 control byte.
	OnControl(b byte)
	// OnEscape receives ESC [intermediate] final. collected is 0 when absent.
	OnEscape(collected, final byte)
	// OnCSI receives a control sequence. collected is the private marker
	// ('?', '>', '<', '=') or the intermediate byte, 0 when absent. Missing
	// parameters are reported as 0.
	OnCSI(collected byte, params []int, final byte)
	// OnOSC receives an operating system command payload.
	OnOSC(payload string)
}

// Tokenizer splits raw terminal output into tokens.
type Tokenizer struct {
	parser  *ansi.Parser
	handler Handler
	text    strings.Builder
}

// New creates a tokenizer delivering to h.
func New(h Handler) *Tokenizer {
	t := &Tokenizer{handler: h}
	t.parser = ansi.NewParser()
	t.parser.SetDataSize(maxOSCPayload)
	t.parser.SetHandler(ansi.Handler{
		Print:     t.print,
		Execute:   t.execute,
		HandleCsi: t.csi,
		HandleEsc: t.esc,
		HandleOsc: t.osc,
	})
	return t
}

// Parse tokenizes data. Printable runes seen since the last token are
// delivered as one text run before returning; an incomplete escape sequence
// stays pending until the next call.
func (t *Tokenizer) Parse(data []byte) {
	t.parser.Parse(data)
	t.flush()
}

// Reset drops any partially collected sequence.
func (t *Tokenizer) Reset() {
	t.flush()
	t.parser.Reset()
}

func (t *Tokenizer) flush() {
	if t.text.Len() == 0 {
		return
	}
	run := t.text.String()
	t.text.Reset()
	t.handler.OnText(run)
}

func (t *Tokenizer) print(r rune) {
	t.text.WriteRune(r)
}

func (t *Tokenizer) execute(b byte) {
	t.flush()
	t.handler.OnControl(b)
}

func (t *Tokenizer) csi(cmd ansi.Cmd, params ansi.Params) {
	t.flush()
	collected := cmd.Prefix()
	if collected == 0 {
		collected = cmd.Intermediate()
	}
	t.handler.OnCSI(collected, toInts(params), cmd.Final())
}

func (t *Tokenizer) esc(cmd ansi.Cmd) {
	t.flush()
	t.handler.OnEscape(cmd.Intermediate(), cmd.Final())
}

func (t *Tokenizer) osc(_ int, data []byte) {
	t.flush()
	t.handler.OnOSC(string(data))
}

func toInts(params ansi.Params) []int {
	if len(params) == 0 {
		return nil
	}
	out := make([]int, len(params))
	for i, p := range params {
		out[i] = p.Param(0)
	}
	return out
}
