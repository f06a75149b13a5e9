// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/grid.go
// Summary: In-memory cell grid implementing vt.ScreenBuffer.
// Usage: Backing store for sessions; rendered by View, inspected by tests.
// Notes: Cursor coordinates are 1-based at the API and 0-based internally.

package screen

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelvt/vt"
)

const tabWidth = 8

// Cell represents a single character cell on the screen.
type Cell struct {
	Rune      rune
	Combining []rune
	Attr      vt.Attribute
	// Continuation marks the right half of a wide character.
	Continuation bool
}

// Grid is a fixed-size screen with a primary and an alternate buffer.
type Grid struct {
	cols, rows       int
	primary          [][]Cell
	alternate        [][]Cell
	active           vt.BufferID
	cursorX, cursorY int
	wrapNext         bool
	attr             vt.Attribute
	cursorVisible    bool
	cursorBlink      bool
}

var _ vt.ScreenBuffer = (*Grid)(nil)

// NewGrid creates a blank grid with the default attribute.
func NewGrid(cols, rows int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := &Grid{
		cols:          cols,
		rows:          rows,
		attr:          vt.DefaultAttribute(),
		cursorVisible: true,
	}
	g.primary = g.blankLines(rows)
	g.alternate = g.blankLines(rows)
	return g
}

func (g *Grid) blankCell() Cell {
	return Cell{Rune: ' ', Attr: g.attr}
}

func (g *Grid) blankLine() []Cell {
	line := make([]Cell, g.cols)
	for x := range line {
		line[x] = g.blankCell()
	}
	return line
}

func (g *Grid) blankLines(n int) [][]Cell {
	lines := make([][]Cell, n)
	for y := range lines {
		lines[y] = g.blankLine()
	}
	return lines
}

func (g *Grid) lines() [][]Cell {
	if g.active == vt.AlternateBuffer {
		return g.alternate
	}
	return g.primary
}

// --- Writing ---

// Write places a printable rune at the cursor or applies a control byte.
func (g *Grid) Write(r rune) {
	switch r {
	case '\r':
		g.wrapNext = false
		g.cursorX = 0
		return
	case '\n', '\v', '\f':
		g.lineFeed()
		return
	case '\b':
		g.wrapNext = false
		if g.cursorX > 0 {
			g.cursorX--
		}
		return
	case '\t':
		g.wrapNext = false
		next := (g.cursorX/tabWidth + 1) * tabWidth
		if next > g.cols-1 {
			next = g.cols - 1
		}
		g.cursorX = next
		return
	}
	if r < ' ' || r == 0x7f {
		// BEL and other controls have no visible effect.
		return
	}
	g.placeRune(r)
}

func (g *Grid) placeRune(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		g.attachCombining(r)
		return
	}
	if w > g.cols {
		w = 1
	}
	if g.wrapNext || g.cursorX+w > g.cols {
		g.cursorX = 0
		g.lineFeed()
	}

	line := g.lines()[g.cursorY]
	line[g.cursorX] = Cell{Rune: r, Attr: g.attr}
	if w == 2 {
		line[g.cursorX+1] = Cell{Attr: g.attr, Continuation: true}
	}

	if g.cursorX+w >= g.cols {
		g.cursorX = g.cols - 1
		g.wrapNext = true
		return
	}
	g.cursorX += w
}

// attachCombining adds a zero-width rune to the previously written cell.
func (g *Grid) attachCombining(r rune) {
	x := g.cursorX - 1
	if g.wrapNext {
		x = g.cursorX
	}
	line := g.lines()[g.cursorY]
	for x > 0 && line[x].Continuation {
		x--
	}
	if x < 0 {
		return
	}
	line[x].Combining = append(line[x].Combining, r)
}

// lineFeed moves down one row, scrolling the active buffer at the bottom.
func (g *Grid) lineFeed() {
	g.wrapNext = false
	if g.cursorY < g.rows-1 {
		g.cursorY++
		return
	}
	lines := g.lines()
	copy(lines, lines[1:])
	lines[g.rows-1] = g.blankLine()
}

// --- Attributes ---

// SetAttributes merges p into the current attribute.
func (g *Grid) SetAttributes(p vt.Patch) {
	g.attr = p.Apply(g.attr)
}

// Attributes returns the current attribute.
func (g *Grid) Attributes() vt.Attribute {
	return g.attr
}

// --- Cursor ---

// MoveCursorRelative moves the cursor by delta, clamping to the grid.
func (g *Grid) MoveCursorRelative(delta vt.Position) {
	g.setCursor(g.cursorY+delta.Vertical, g.cursorX+delta.Horizontal)
}

// MoveCursorAbsolute moves the cursor to a 1-based position, clamping to the grid.
func (g *Grid) MoveCursorAbsolute(pos vt.Position) {
	g.setCursor(pos.Vertical-1, pos.Horizontal-1)
}

func (g *Grid) setCursor(y, x int) {
	if x < 0 {
		x = 0
	}
	if x >= g.cols {
		x = g.cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= g.rows {
		y = g.rows - 1
	}
	g.wrapNext = false
	g.cursorX, g.cursorY = x, y
}

// Cursor returns the 1-based cursor position.
func (g *Grid) Cursor() vt.Position {
	return vt.Position{Vertical: g.cursorY + 1, Horizontal: g.cursorX + 1}
}

// ShowCursor sets cursor visibility.
func (g *Grid) ShowCursor(visible bool) { g.cursorVisible = visible }

// CursorVisible reports whether the cursor is shown.
func (g *Grid) CursorVisible() bool { return g.cursorVisible }

// BlinkCursor sets cursor blinking.
func (g *Grid) BlinkCursor(blink bool) { g.cursorBlink = blink }

// CursorBlinking reports whether the cursor blinks.
func (g *Grid) CursorBlinking() bool { return g.cursorBlink }

// SetActiveBuffer switches between the primary and alternate buffers. The
// cursor and the contents of either buffer are left as they are.
func (g *Grid) SetActiveBuffer(id vt.BufferID) { g.active = id }

// ActiveBuffer returns the buffer currently displayed.
func (g *Grid) ActiveBuffer() vt.BufferID { return g.active }

// --- Erase ---

func (g *Grid) clearSpan(y, from, to int) {
	line := g.lines()[y]
	if from < 0 {
		from = 0
	}
	if to > g.cols {
		to = g.cols
	}
	for x := from; x < to; x++ {
		line[x] = g.blankCell()
	}
}

// Clear erases the whole active buffer.
func (g *Grid) Clear() {
	for y := 0; y < g.rows; y++ {
		g.clearSpan(y, 0, g.cols)
	}
}

// ClearToEnd erases from the cursor to the end of the screen.
func (g *Grid) ClearToEnd() {
	g.wrapNext = false
	g.clearSpan(g.cursorY, g.cursorX, g.cols)
	for y := g.cursorY + 1; y < g.rows; y++ {
		g.clearSpan(y, 0, g.cols)
	}
}

// ClearToBeginning erases from the start of the screen through the cursor.
func (g *Grid) ClearToBeginning() {
	for y := 0; y < g.cursorY; y++ {
		g.clearSpan(y, 0, g.cols)
	}
	g.clearSpan(g.cursorY, 0, g.cursorX+1)
}

// ClearRow erases the cursor row.
func (g *Grid) ClearRow() {
	g.clearSpan(g.cursorY, 0, g.cols)
}

// ClearRowToEnd erases from the cursor to the end of its row.
func (g *Grid) ClearRowToEnd() {
	g.wrapNext = false
	g.clearSpan(g.cursorY, g.cursorX, g.cols)
}

// ClearRowToBeginning erases from the start of the cursor row through the cursor.
func (g *Grid) ClearRowToBeginning() {
	g.clearSpan(g.cursorY, 0, g.cursorX+1)
}

// --- Geometry & inspection ---

// Size returns the grid dimensions.
func (g *Grid) Size() vt.Dimensions {
	return vt.Dimensions{Columns: g.cols, Rows: g.rows}
}

// Resize changes the grid dimensions, keeping the top-left content of
// both buffers and clamping the cursor.
func (g *Grid) Resize(cols, rows int) {
	if cols < 1 || rows < 1 || (cols == g.cols && rows == g.rows) {
		return
	}
	resize := func(old [][]Cell) [][]Cell {
		lines := make([][]Cell, rows)
		for y := range lines {
			lines[y] = make([]Cell, cols)
			for x := range lines[y] {
				if y < len(old) && x < len(old[y]) {
					lines[y][x] = old[y][x]
				} else {
					lines[y][x] = Cell{Rune: ' ', Attr: g.attr}
				}
			}
		}
		return lines
	}
	g.primary = resize(g.primary)
	g.alternate = resize(g.alternate)
	g.cols, g.rows = cols, rows
	g.setCursor(g.cursorY, g.cursorX)
}

// Cell returns the cell at a 1-based position in the active buffer.
func (g *Grid) Cell(row, col int) Cell {
	if row < 1 || row > g.rows || col < 1 || col > g.cols {
		return Cell{}
	}
	return g.lines()[row-1][col-1]
}

// Line returns the text of a 1-based row with trailing blanks removed.
func (g *Grid) Line(row int) string {
	if row < 1 || row > g.rows {
		return ""
	}
	var b strings.Builder
	for _, c := range g.lines()[row-1] {
		if c.Continuation {
			continue
		}
		b.WriteRune(c.Rune)
		for _, m := range c.Combining {
			b.WriteRune(m)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// String returns the active buffer as newline separated rows.
func (g *Grid) String() string {
	rows := make([]string, g.rows)
	for y := range rows {
		rows[y] = g.Line(y + 1)
	}
	return strings.Join(rows, "\n")
}
