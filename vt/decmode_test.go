// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/decmode_test.go
// Summary: Tests for DEC private mode validation and handling.

package vt

import (
	"fmt"
	"reflect"
	"testing"
)

func TestPrivateModeCursorVisibility(t *testing.T) {
	in, s, d := newTestInterpreter()
	in.Parse("\x1b[?25l\x1b[?25h")
	want := []string{"ShowCursor false", "ShowCursor true"}
	if !reflect.DeepEqual(s.buf.calls, want) {
		t.Errorf("calls = %v, want %v", s.buf.calls, want)
	}
	if n := d.logs(CategoryPrivateMode); n != 2 {
		t.Errorf("%d handled entries, want 2", n)
	}
	if n := d.anyErrors(); n != 0 {
		t.Errorf("%d unexpected errors", n)
	}
}

func TestPrivateModeMalformed(t *testing.T) {
	tests := []struct {
		name string
		seq  string
	}{
		{"two params", "\x1b[?3;4h"},
		{"no params", "\x1b[?h"},
		{"wrong final", "\x1b[?25m"},
		{"two params reset", "\x1b[?25;12l"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, s, d := newTestInterpreter()
			calls := 0
			in.privateMode = func(int, bool) ModeResult {
				calls++
				return ModeResult{}
			}
			in.Parse(tt.seq)
			if calls != 0 {
				t.Errorf("mode handler called %d times", calls)
			}
			if n := d.errors(MalformedPrivateMode); n != 1 {
				t.Errorf("%d MalformedPrivateMode errors, want 1", n)
			}
			if len(s.buf.calls) != 0 || len(s.resizes) != 0 {
				t.Errorf("unexpected effects %v %v", s.buf.calls, s.resizes)
			}
		})
	}
}

func TestPrivateModes(t *testing.T) {
	tests := []struct {
		name      string
		seq       string
		calls     []string
		resizes   []Dimensions
		handled   bool
		notImpl   int
	}{
		{"132 columns", "\x1b[?3h", nil, nil, false, 0},
		{"80 columns", "\x1b[?3l", nil, []Dimensions{{Columns: 80, Rows: 24}}, true, 0},
		{"blink on", "\x1b[?12h", []string{"BlinkCursor true"}, nil, true, 0},
		{"blink off", "\x1b[?12l", []string{"BlinkCursor false"}, nil, true, 0},
		{"show cursor", "\x1b[?25h", []string{"ShowCursor true"}, nil, true, 0},
		{"hide cursor", "\x1b[?25l", []string{"ShowCursor false"}, nil, true, 0},
		{"alternate screen", "\x1b[?1049h", []string{fmt.Sprintf("SetActiveBuffer %d", AlternateBuffer)}, nil, true, 1},
		{"normal screen", "\x1b[?1049l", []string{fmt.Sprintf("SetActiveBuffer %d", PrimaryBuffer)}, nil, true, 1},
		{"bracketed paste on", "\x1b[?2004h", nil, nil, true, 1},
		{"bracketed paste off", "\x1b[?2004l", nil, nil, true, 1},
		{"unknown mode", "\x1b[?9999h", nil, nil, false, 0},
		{"mouse tracking", "\x1b[?1000l", nil, nil, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, s, d := newTestInterpreter()
			in.Parse(tt.seq)
			if !reflect.DeepEqual(s.buf.calls, tt.calls) {
				t.Errorf("calls = %v, want %v", s.buf.calls, tt.calls)
			}
			if !reflect.DeepEqual(s.resizes, tt.resizes) {
				t.Errorf("resizes = %v, want %v", s.resizes, tt.resizes)
			}
			handled, unhandled := d.logs(CategoryPrivateMode), d.errors(UnhandledPrivateMode)
			if tt.handled && (handled != 1 || unhandled != 0) {
				t.Errorf("expected handled, got %d handled %d unhandled", handled, unhandled)
			}
			if !tt.handled && (handled != 0 || unhandled != 1) {
				t.Errorf("expected unhandled, got %d handled %d unhandled", handled, unhandled)
			}
			if n := d.errors(NotImplemented); n != tt.notImpl {
				t.Errorf("%d NotImplemented errors, want %d", n, tt.notImpl)
			}
		})
	}
}

func TestHandlePrivateModeResult(t *testing.T) {
	in, _, _ := newTestInterpreter()

	res := in.handlePrivateMode(ModeDECCOLM, true)
	want := ModeResult{
		Status:      ModeUnhandled,
		Description: "132 Column Mode (DECCOLM)",
		URL:         "http://www.vt100.net/docs/vt510-rm/DECCOLM",
	}
	if res != want {
		t.Errorf("DECCOLM set = %+v, want %+v", res, want)
	}

	res = in.handlePrivateMode(ModeDECTCEM, false)
	if res.Status != ModeHandled || res.URL != "http://www.vt100.net/docs/vt510-rm/DECTCEM" {
		t.Errorf("DECTCEM reset = %+v", res)
	}

	res = in.handlePrivateMode(42, true)
	if res != (ModeResult{Status: ModeUnhandled}) {
		t.Errorf("unknown mode = %+v", res)
	}
}

func TestColumnModeResizeFailure(t *testing.T) {
	in, s, d := newTestInterpreter()
	s.fail = true
	in.Parse("\x1b[?3l")
	if n := d.errors(SessionFailure); n != 1 {
		t.Errorf("%d SessionFailure errors, want 1", n)
	}
	if n := d.logs(CategoryPrivateMode); n != 1 {
		t.Errorf("mode should still be reported handled, got %d entries", n)
	}
}
