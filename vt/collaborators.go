// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/collaborators.go
// Summary: Interfaces the interpreter drives: screen buffer and session.
// Usage: Implemented by screen.Grid and the session package.

package vt

// Position is a 1-based cursor coordinate. For relative moves it is a delta.
type Position struct {
	Vertical   int
	Horizontal int
}

// Dimensions is a terminal size in character cells.
type Dimensions struct {
	Columns int
	Rows    int
}

// BufferID selects the primary or alternate screen.
type BufferID int

const (
	PrimaryBuffer BufferID = iota
	AlternateBuffer
)

func (b BufferID) String() string {
	if b == AlternateBuffer {
		return "alternate"
	}
	return "primary"
}

// ScreenBuffer is the screen model mutated by the interpreter. It owns the
// current attribute and the cursor.
type ScreenBuffer interface {
	Write(r rune)
	SetAttributes(p Patch)
	Attributes() Attribute

	MoveCursorRelative(delta Position)
	MoveCursorAbsolute(pos Position)

	Clear()
	ClearToEnd()
	ClearToBeginning()
	ClearRow()
	ClearRowToEnd()
	ClearRowToBeginning()

	ShowCursor(visible bool)
	BlinkCursor(blink bool)
	SetActiveBuffer(id BufferID)
}

// Session is the process-facing side of a terminal: its size, the raw
// reply channel back to the child, and its screen buffer.
type Session interface {
	Dimensions() Dimensions
	SetDimensions(d Dimensions) error
	Write(p []byte) (int, error)
	Buffer() ScreenBuffer
}
