// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vt/sgr.go
// Summary: SGR engine - applies rendition parameter lists to the screen buffer.
// Usage: Called by the CSI dispatcher for final byte 'm'.

package vt

// paramReader walks a parameter list front to back without modifying it.
type paramReader struct {
	params []int
	pos    int
}

func (r *paramReader) next() (int, bool) {
	if r.pos >= len(r.params) {
		return 0, false
	}
	p := r.params[r.pos]
	r.pos++
	return p, true
}

// rest returns the parameters not consumed yet.
func (r *paramReader) rest() []int {
	return r.params[r.pos:]
}

// ApplySGR processes SGR parameters in order, setting attributes as it goes.
// An empty list resets the rendition to the default attribute.
func (in *Interpreter) ApplySGR(params []int) {
	if len(params) == 0 {
		in.buf.SetAttributes(ResetPatch())
		return
	}

	r := paramReader{params: params}
	for {
		code, ok := r.next()
		if !ok {
			return
		}
		entry, ok := LookupSGR(code)
		if !ok {
			in.diag.Error(UnknownSGRCode, code, r.rest())
			continue
		}
		switch e := entry.(type) {
		case PatchEntry:
			in.buf.SetAttributes(e.Patch)
		case ExtendedColorEntry:
			if !in.applyExtendedColor(code, e.Channel, &r) {
				// The remaining parameters can't be attributed reliably.
				return
			}
		case ReverseEntry:
			current := in.buf.Attributes()
			in.buf.SetAttributes(Patch{
				Fields: FieldColor | FieldBackground,
				Attribute: Attribute{
					Color:      current.Background,
					Background: current.Color,
				},
			})
		default:
			in.diag.Error(UnknownSGRCode, code, r.rest())
		}
	}
}

// applyExtendedColor consumes "5;<index>" after a 38/48 code. It reports
// false when the parameters were not understood.
func (in *Interpreter) applyExtendedColor(code int, ch Channel, r *paramReader) bool {
	mode, ok := r.next()
	if !ok || mode != extendedColorIndexed {
		if ok {
			in.diag.Error(UnsupportedColorMode, code, mode, r.rest())
		} else {
			in.diag.Error(UnsupportedColorMode, code, "missing mode")
		}
		return false
	}
	index, ok := r.next()
	if !ok {
		in.diag.Error(InvalidColorIndex, code, "missing index")
		return false
	}
	color, ok := IndexedColor(index)
	if !ok {
		in.diag.Error(InvalidColorIndex, code, index)
		return false
	}
	if ch == Background {
		in.buf.SetAttributes(BackgroundPatch(color))
	} else {
		in.buf.SetAttributes(ColorPatch(color))
	}
	return true
}
