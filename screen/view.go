// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/view.go
// Summary: Draws a Grid onto a tcell screen.
// Usage: Used by the live runner after every parsed chunk.

package screen

import (
	"github.com/gdamore/tcell/v2"
)

// View renders grids to a tcell.Screen.
type View struct {
	screen tcell.Screen
}

// NewView wraps an initialised tcell screen.
func NewView(s tcell.Screen) *View {
	return &View{screen: s}
}

// Draw copies the visible cells of g to the screen and shows it. Cells
// outside the screen are clipped.
func (v *View) Draw(g *Grid) {
	width, height := v.screen.Size()
	size := g.Size()
	for y := 0; y < size.Rows && y < height; y++ {
		for x := 0; x < size.Columns && x < width; x++ {
			cell := g.Cell(y+1, x+1)
			if cell.Continuation {
				continue
			}
			v.screen.SetContent(x, y, cell.Rune, cell.Combining, cell.Attr.Style())
		}
	}

	if g.CursorVisible() {
		cur := g.Cursor()
		v.screen.ShowCursor(cur.Horizontal-1, cur.Vertical-1)
		if g.CursorBlinking() {
			v.screen.SetCursorStyle(tcell.CursorStyleBlinkingBlock)
		} else {
			v.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
		}
	} else {
		v.screen.HideCursor()
	}
	v.screen.Show()
}
