// Package export writes animation frames to SVG, PNG and GIF files.
package export

import (
	"image"
	"image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/surface"
	"golang.org/x/image/draw"
)

// GridImage rasterises a grid with charW x charH pixels per cell.
func GridImage(g *surface.Grid, bg colorful.Color, charW, charH int) *image.RGBA {
	r := surface.NewRaster(g.Cols()*charW, g.Rows()*charH)
	r.Fill(bg, 1)
	img := r.Image()
	dotW, dotH := charW/2, charH/4

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell := g.Cell(col, row)
			if cell.Alpha <= 0 || cell.Rune == 0 || cell.Rune == ' ' || cell.Rune == 0x2800 {
				continue
			}
			c := cellColor(cell, bg)
			baseX, baseY := col*charW, row*charH

			if !isBraille(cell.Rune) {
				r.DrawGlyph(baseX, baseY+charH-2, cell.Rune, c)
				continue
			}
			src := image.NewUniform(c)
			pattern := int(cell.Rune - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&brailleBits[dy][dx] == 0 {
						continue
					}
					x, y := baseX+dx*dotW, baseY+dy*dotH
					draw.Draw(img, image.Rect(x, y, x+dotW, y+dotH), src, image.Point{}, draw.Src)
				}
			}
		}
	}
	return img
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveSVG writes the SVG rendering of g to path.
func SaveSVG(path string, g *surface.Grid, bg colorful.Color, scale float64) error {
	return os.WriteFile(path, []byte(GridToSVG(g, bg, scale)), 0644)
}
