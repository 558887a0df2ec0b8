package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/surface"
	"github.com/san-kum/cyberjinn/internal/theme"
)

// Braille dot-to-bit mapping
var brailleBits = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func isBraille(r rune) bool { return r >= 0x2800 && r <= 0x28ff }

// cellColor composites a cell over bg.
func cellColor(c surface.Cell, bg colorful.Color) colorful.Color {
	return bg.BlendRgb(c.Color, c.Alpha).Clamped()
}

// svgFill formats a cell color. Translucent cells keep their alpha so the
// background rect shows through.
func svgFill(c surface.Cell, bg colorful.Color) string {
	fill := theme.CSS(c.Color)
	if c.Alpha >= 1 {
		return fill
	}
	rgba, err := theme.WithAlpha(fill, math.Round(c.Alpha*100)/100)
	if err != nil {
		return theme.CSS(cellColor(c, bg))
	}
	return rgba
}

// GridToSVG converts a grid to SVG: braille cells become dots, other glyphs
// become text. Scale is the size of one braille sub-pixel.
func GridToSVG(g *surface.Grid, bg colorful.Color, scale float64) string {
	if g == nil {
		return ""
	}

	width := float64(g.Cols()) * scale * 2
	height := float64(g.Rows()) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g font-family="monospace" font-size="%.1f">
`, width, height, width, height, theme.CSS(bg), scale*3.5))

	dotRadius := scale * 0.4

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell := g.Cell(col, row)
			if cell.Alpha <= 0 || cell.Rune == 0 || cell.Rune == ' ' || cell.Rune == 0x2800 {
				continue
			}
			fill := svgFill(cell, bg)
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			if !isBraille(cell.Rune) {
				sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, baseX, baseY+scale*3.5, fill, html.EscapeString(string(cell.Rune))))
				continue
			}

			pattern := int(cell.Rune - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&brailleBits[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
