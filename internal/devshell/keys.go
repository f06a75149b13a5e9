// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/keys.go
// Summary: tcell key events to the bytes a child process expects.

package devshell

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

var keySequences = map[tcell.Key]string{
	tcell.KeyUp:     "\x1b[A",
	tcell.KeyDown:   "\x1b[B",
	tcell.KeyRight:  "\x1b[C",
	tcell.KeyLeft:   "\x1b[D",
	tcell.KeyHome:   "\x1b[H",
	tcell.KeyEnd:    "\x1b[F",
	tcell.KeyInsert: "\x1b[2~",
	tcell.KeyDelete: "\x1b[3~",
	tcell.KeyPgUp:   "\x1b[5~",
	tcell.KeyPgDn:   "\x1b[6~",
	tcell.KeyF1:     "\x1bOP",
	tcell.KeyF2:     "\x1bOQ",
	tcell.KeyF3:     "\x1bOR",
	tcell.KeyF4:     "\x1bOS",
	tcell.KeyEnter:  "\r",
	tcell.KeyTab:    "\t",
	tcell.KeyEsc:    "\x1b",

	tcell.KeyBackspace:  "\b",
	tcell.KeyBackspace2: "\x7f",
}

// EncodeKey returns the input bytes for ev, or nil for keys with no encoding.
func EncodeKey(ev *tcell.EventKey) []byte {
	key := ev.Key()
	if seq, ok := keySequences[key]; ok {
		return []byte(seq)
	}
	if key == tcell.KeyRune {
		r := ev.Rune()
		buf := make([]byte, utf8.RuneLen(r))
		utf8.EncodeRune(buf, r)
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return append([]byte{0x1b}, buf...)
		}
		return buf
	}
	// Remaining named keys below 0x20 are control characters (Ctrl-A ...).
	if key < 0x20 || key == 0x7f {
		return []byte{byte(key)}
	}
	return nil
}
