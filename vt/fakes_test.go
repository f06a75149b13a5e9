package vt

import (
	"errors"
	"fmt"
)

// recordingBuffer keeps an attribute and logs every call made to it.
type recordingBuffer struct {
	attr  Attribute
	calls []string
}

func newRecordingBuffer() *recordingBuffer {
	return &recordingBuffer{attr: DefaultAttribute()}
}

func (b *recordingBuffer) record(format string, args ...any) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

func (b *recordingBuffer) Write(r rune) { b.record("Write %q", r) }

func (b *recordingBuffer) SetAttributes(p Patch) {
	b.record("SetAttributes %s", p)
	b.attr = p.Apply(b.attr)
}

func (b *recordingBuffer) Attributes() Attribute { return b.attr }

func (b *recordingBuffer) MoveCursorRelative(d Position) {
	b.record("MoveCursorRelative %d,%d", d.Vertical, d.Horizontal)
}

func (b *recordingBuffer) MoveCursorAbsolute(p Position) {
	b.record("MoveCursorAbsolute %d,%d", p.Vertical, p.Horizontal)
}

func (b *recordingBuffer) Clear()               { b.record("Clear") }
func (b *recordingBuffer) ClearToEnd()          { b.record("ClearToEnd") }
func (b *recordingBuffer) ClearToBeginning()    { b.record("ClearToBeginning") }
func (b *recordingBuffer) ClearRow()            { b.record("ClearRow") }
func (b *recordingBuffer) ClearRowToEnd()       { b.record("ClearRowToEnd") }
func (b *recordingBuffer) ClearRowToBeginning() { b.record("ClearRowToBeginning") }
func (b *recordingBuffer) ShowCursor(on bool)   { b.record("ShowCursor %t", on) }
func (b *recordingBuffer) BlinkCursor(on bool)  { b.record("BlinkCursor %t", on) }

func (b *recordingBuffer) SetActiveBuffer(id BufferID) {
	b.record("SetActiveBuffer %d", id)
}

var errSessionGone = errors.New("session gone")

type recordingSession struct {
	buf     *recordingBuffer
	dims    Dimensions
	resizes []Dimensions
	replies []string
	fail    bool
}

func newRecordingSession(cols, rows int) *recordingSession {
	return &recordingSession{buf: newRecordingBuffer(), dims: Dimensions{Columns: cols, Rows: rows}}
}

func (s *recordingSession) Buffer() ScreenBuffer   { return s.buf }
func (s *recordingSession) Dimensions() Dimensions { return s.dims }

func (s *recordingSession) SetDimensions(d Dimensions) error {
	if s.fail {
		return errSessionGone
	}
	s.resizes = append(s.resizes, d)
	s.dims = d
	return nil
}

func (s *recordingSession) Write(p []byte) (int, error) {
	if s.fail {
		return 0, errSessionGone
	}
	s.replies = append(s.replies, string(p))
	return len(p), nil
}

type diagEntry struct {
	category Category
	isError  bool
	details  []any
}

type recordingDiag struct {
	entries []diagEntry
}

func (d *recordingDiag) Log(c Category, details ...any) {
	d.entries = append(d.entries, diagEntry{category: c, details: details})
}

func (d *recordingDiag) Error(c Category, details ...any) {
	d.entries = append(d.entries, diagEntry{category: c, isError: true, details: details})
}

func (d *recordingDiag) errors(c Category) int {
	n := 0
	for _, e := range d.entries {
		if e.isError && e.category == c {
			n++
		}
	}
	return n
}

func (d *recordingDiag) anyErrors() int {
	n := 0
	for _, e := range d.entries {
		if e.isError {
			n++
		}
	}
	return n
}

func (d *recordingDiag) logs(c Category) int {
	n := 0
	for _, e := range d.entries {
		if !e.isError && e.category == c {
			n++
		}
	}
	return n
}

// newTestInterpreter returns an interpreter over recording collaborators.
func newTestInterpreter(opts ...Option) (*Interpreter, *recordingSession, *recordingDiag) {
	s := newRecordingSession(132, 24)
	d := &recordingDiag{}
	opts = append([]Option{WithDiagnostics(d)}, opts...)
	return New(s, opts...), s, d
}
