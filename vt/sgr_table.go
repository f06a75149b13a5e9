// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/sgr_table.go
// Summary: Code table for SGR (Select Graphic Rendition) parameters.
// Usage: Consulted by the SGR engine for every parameter it consumes.

package vt

// Channel names the color an extended-color code targets.
type Channel int

const (
	Foreground Channel = iota
	Background
)

func (c Channel) String() string {
	if c == Background {
		return "background"
	}
	return "foreground"
}

// SGREntry is one of PatchEntry, ExtendedColorEntry or ReverseEntry.
type SGREntry interface {
	sgrEntry()
}

// PatchEntry merges a partial attribute into the current one.
type PatchEntry struct {
	Patch Patch
}

// ExtendedColorEntry consumes trailing parameters selecting a palette color.
type ExtendedColorEntry struct {
	Channel Channel
}

// ReverseEntry swaps the current foreground and background colors.
type ReverseEntry struct{}

func (PatchEntry) sgrEntry()         {}
func (ExtendedColorEntry) sgrEntry() {}
func (ReverseEntry) sgrEntry()       {}

const (
	sgrReset = 0
	// Extended color mode selecting a 256-color palette index.
	extendedColorIndexed = 5
)

var sgrTable = map[int]SGREntry{
	sgrReset: PatchEntry{ResetPatch()},
	1:        PatchEntry{WeightPatch(WeightBold)},
	2:        PatchEntry{WeightPatch(WeightFaint)},
	4:        PatchEntry{UnderlinePatch(true)},
	7:        ReverseEntry{},
	30:       PatchEntry{ColorPatch(ColorBlack)},
	31:       PatchEntry{ColorPatch(ColorRed)},
	32:       PatchEntry{ColorPatch(ColorGreen)},
	33:       PatchEntry{ColorPatch(ColorYellow)},
	34:       PatchEntry{ColorPatch(ColorBlue)},
	35:       PatchEntry{ColorPatch(ColorMagenta)},
	36:       PatchEntry{ColorPatch(ColorCyan)},
	37:       PatchEntry{ColorPatch(ColorWhite)},
	38:       ExtendedColorEntry{Foreground},
	40:       PatchEntry{BackgroundPatch(ColorBlack)},
	41:       PatchEntry{BackgroundPatch(ColorRed)},
	42:       PatchEntry{BackgroundPatch(ColorGreen)},
	43:       PatchEntry{BackgroundPatch(ColorYellow)},
	44:       PatchEntry{BackgroundPatch(ColorBlue)},
	45:       PatchEntry{BackgroundPatch(ColorMagenta)},
	46:       PatchEntry{BackgroundPatch(ColorCyan)},
	47:       PatchEntry{BackgroundPatch(ColorWhite)},
	48:       ExtendedColorEntry{Background},
}

// LookupSGR returns the table entry for an SGR code.
func LookupSGR(code int) (SGREntry, bool) {
	e, ok := sgrTable[code]
	return e, ok
}
