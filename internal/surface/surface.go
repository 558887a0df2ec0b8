// Package surface provides the drawing targets owned by the animators.
//
//   - [Surface]: the operations an animator needs (overpaint, clear, glyphs, strokes)
//   - [Grid]: terminal cells with braille sub-pixels for strokes
//   - [Raster]: RGBA pixels for windows and exported recordings
//
// Coordinates are in surface units (pixels for a Raster, scaled cell units
// for a Grid). Glyph y coordinates are baselines, matching canvas fillText.
package surface

import "github.com/lucasb-eyer/go-colorful"

type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	// Fill overpaints the whole surface with c at the given opacity.
	Fill(c colorful.Color, alpha float64)
	// Clear makes the whole surface transparent.
	Clear()
	DrawGlyph(x, y int, r rune, c colorful.Color)
	StrokeLine(x0, y0, x1, y1, width float64, g Gradient)
	// Hash summarises the current content; equal content gives equal hashes.
	Hash() uint64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// over composites src at alpha sa onto dst at alpha da, straight alpha.
func over(src colorful.Color, sa float64, dst colorful.Color, da float64) (colorful.Color, float64) {
	oa := sa + da*(1-sa)
	if oa <= 0 {
		return colorful.Color{}, 0
	}
	k := da * (1 - sa)
	return colorful.Color{
		R: (src.R*sa + dst.R*k) / oa,
		G: (src.G*sa + dst.G*k) / oa,
		B: (src.B*sa + dst.B*k) / oa,
	}, oa
}
