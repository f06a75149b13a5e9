// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/attr.go
// Summary: Graphic rendition state (colors, weight, underline) and partial patches.
// Usage: Stored by screen buffers, produced by the SGR engine.
// Notes: Colors map directly onto tcell colors so renderers need no translation.

package vt

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Color defines a text color. It maps directly to tcell colors.
type Color tcell.Color

const (
	// Basic 8 ANSI colors
	ColorBlack   = Color(tcell.ColorBlack)
	ColorRed     = Color(tcell.ColorMaroon)
	ColorGreen   = Color(tcell.ColorGreen)
	ColorYellow  = Color(tcell.ColorOlive)
	ColorBlue    = Color(tcell.ColorNavy)
	ColorMagenta = Color(tcell.ColorPurple)
	ColorCyan    = Color(tcell.ColorTeal)
	ColorWhite   = Color(tcell.ColorSilver)
)

var colorNames = map[Color]string{
	ColorBlack:   "black",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
}

// IndexedColor returns the 256-color palette entry for index.
func IndexedColor(index int) (Color, bool) {
	if index < 0 || index > 255 {
		return 0, false
	}
	return Color(tcell.PaletteColor(index)), true
}

// TCell returns the tcell color for c.
func (c Color) TCell() tcell.Color { return tcell.Color(c) }

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	tc := tcell.Color(c)
	if tc&tcell.ColorValid == 0 {
		return "default"
	}
	return fmt.Sprintf("color(%d)", int(tc-tcell.ColorValid))
}

// Weight is the stroke weight of rendered text.
type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
	WeightFaint
)

func (w Weight) String() string {
	switch w {
	case WeightBold:
		return "bold"
	case WeightFaint:
		return "faint"
	default:
		return "normal"
	}
}

// Attribute is the rendition applied to subsequently written characters.
type Attribute struct {
	Color      Color
	Background Color
	Weight     Weight
	Underline  bool
}

// DefaultAttribute returns the rendition selected by SGR 0.
func DefaultAttribute() Attribute {
	return Attribute{
		Color:      ColorWhite,
		Background: ColorBlack,
		Weight:     WeightNormal,
		Underline:  false,
	}
}

// Style converts the attribute to a tcell style.
func (a Attribute) Style() tcell.Style {
	return tcell.StyleDefault.
		Foreground(a.Color.TCell()).
		Background(a.Background.TCell()).
		Bold(a.Weight == WeightBold).
		Dim(a.Weight == WeightFaint).
		Underline(a.Underline)
}

func (a Attribute) String() string {
	s := fmt.Sprintf("%s on %s, %s", a.Color, a.Background, a.Weight)
	if a.Underline {
		s += ", underline"
	}
	return s
}

// Field selects attribute fields carried by a Patch.
type Field uint8

const (
	FieldColor Field = 1 << iota
	FieldBackground
	FieldWeight
	FieldUnderline

	FieldAll = FieldColor | FieldBackground | FieldWeight | FieldUnderline
)

// Patch is a partial Attribute: only the fields named in Fields are applied.
type Patch struct {
	Fields Field
	Attribute
}

// ResetPatch overwrites every field with the default attribute.
func ResetPatch() Patch {
	return Patch{Fields: FieldAll, Attribute: DefaultAttribute()}
}

// ColorPatch sets the foreground color.
func ColorPatch(c Color) Patch {
	return Patch{Fields: FieldColor, Attribute: Attribute{Color: c}}
}

// BackgroundPatch sets the background color.
func BackgroundPatch(c Color) Patch {
	return Patch{Fields: FieldBackground, Attribute: Attribute{Background: c}}
}

// WeightPatch sets the weight.
func WeightPatch(w Weight) Patch {
	return Patch{Fields: FieldWeight, Attribute: Attribute{Weight: w}}
}

// UnderlinePatch sets underline on or off.
func UnderlinePatch(on bool) Patch {
	return Patch{Fields: FieldUnderline, Attribute: Attribute{Underline: on}}
}

// Apply overwrites the fields of a named by p and returns the result.
func (p Patch) Apply(a Attribute) Attribute {
	if p.Fields&FieldColor != 0 {
		a.Color = p.Color
	}
	if p.Fields&FieldBackground != 0 {
		a.Background = p.Background
	}
	if p.Fields&FieldWeight != 0 {
		a.Weight = p.Weight
	}
	if p.Fields&FieldUnderline != 0 {
		a.Underline = p.Underline
	}
	return a
}

func (p Patch) String() string {
	var parts []string
	if p.Fields&FieldColor != 0 {
		parts = append(parts, "color="+p.Color.String())
	}
	if p.Fields&FieldBackground != 0 {
		parts = append(parts, "background="+p.Background.String())
	}
	if p.Fields&FieldWeight != 0 {
		parts = append(parts, "weight="+p.Weight.String())
	}
	if p.Fields&FieldUnderline != 0 {
		parts = append(parts, fmt.Sprintf("underline=%t", p.Underline))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}
