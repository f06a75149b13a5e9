// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/interpreter_test.go
// Summary: Tests for text, control and OSC handling.

package vt

import (
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestTextIsWrittenRuneByRune(t *testing.T) {
	in, s, d := newTestInterpreter()
	in.Parse("hé")
	want := []string{"Write 'h'", "Write 'é'"}
	if !reflect.DeepEqual(s.buf.calls, want) {
		t.Errorf("calls = %v, want %v", s.buf.calls, want)
	}
	if n := d.logs(CategoryText); n != 1 {
		t.Errorf("%d text log entries, want 1", n)
	}
}

func TestControlBytesReachBuffer(t *testing.T) {
	in, s, d := newTestInterpreter()
	in.Parse("a\r\nb\a")
	want := []string{"Write 'a'", `Write '\r'`, `Write '\n'`, "Write 'b'", `Write '\a'`}
	if !reflect.DeepEqual(s.buf.calls, want) {
		t.Errorf("calls = %v, want %v", s.buf.calls, want)
	}
	if n := d.logs(CategoryControl); n != 3 {
		t.Errorf("%d control log entries, want 3", n)
	}
}

func TestOSCIsReported(t *testing.T) {
	in, s, d := newTestInterpreter()
	in.Parse("\x1b]0;title\a")
	if len(s.buf.calls) != 0 {
		t.Errorf("unexpected calls %v", s.buf.calls)
	}
	if n := d.errors(UnrecognizedOsc); n != 1 {
		t.Errorf("%d UnrecognizedOsc errors, want 1", n)
	}
}

func TestSequenceSplitAcrossWrites(t *testing.T) {
	in, s, _ := newTestInterpreter()
	var w io.Writer = in
	for _, chunk := range []string{"\x1b", "[3", ";4", "H"} {
		if _, err := w.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if !reflect.DeepEqual(s.buf.calls, []string{"MoveCursorAbsolute 3,4"}) {
		t.Errorf("calls = %v", s.buf.calls)
	}
}

func TestNilDiagnosticsDiscards(t *testing.T) {
	s := newRecordingSession(80, 24)
	in := New(s, WithDiagnostics(nil))
	in.Parse("\x1b[5Z\x1b[?3;4h\x1b[38;2;1;2;3m")
	if len(s.buf.calls) != 0 {
		t.Errorf("unexpected calls %v", s.buf.calls)
	}
}

func TestErrorsNeverStopInterpretation(t *testing.T) {
	in, s, d := newTestInterpreter()
	in.Parse("\x1b[5Zx\x1bZy\x1b[?1;2hz")
	got := strings.Join(s.buf.calls, "|")
	if got != "Write 'x'|Write 'y'|Write 'z'" {
		t.Errorf("calls = %s", got)
	}
	if n := d.anyErrors(); n != 3 {
		t.Errorf("%d errors, want 3", n)
	}
}
