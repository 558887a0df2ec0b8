package surface

import (
	"hash/fnv"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster is an RGBA pixel Surface.
type Raster struct {
	img  *image.RGBA
	face *basicfont.Face
	// GlyphScale is the dot size used for glyphs the font cannot draw.
	GlyphScale int
}

func NewRaster(w, h int) *Raster {
	r := &Raster{face: basicfont.Face7x13, GlyphScale: 2}
	r.Resize(w, h)
	return r
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the pixel buffer for upload or encoding.
func (r *Raster) Image() *image.RGBA { return r.img }

// Resize reallocates the buffer when the size changes; content is discarded.
func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if r.img != nil {
		if b := r.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	cr, cg, cb := c.Clamped().RGB255()
	return color.NRGBA{R: cr, G: cg, B: cb, A: uint8(clamp01(alpha)*255 + 0.5)}
}

func (r *Raster) Fill(c colorful.Color, alpha float64) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(nrgba(c, alpha)), image.Point{}, draw.Over)
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// DrawGlyph draws r with its baseline at y. Runes missing from the font are
// drawn as a 5x7 dot pattern derived from the rune.
func (r *Raster) DrawGlyph(x, y int, ch rune, c colorful.Color) {
	src := image.NewUniform(nrgba(c, 1))
	if r.hasGlyph(ch) {
		d := font.Drawer{Dst: r.img, Src: src, Face: r.face, Dot: fixed.P(x, y)}
		d.DrawString(string(ch))
		return
	}
	s := r.GlyphScale
	if s < 1 {
		s = 1
	}
	top := y - 7*s
	bits := uint64(ch)*0x9e3779b97f4a7c15 | 1
	for row := 0; row < 7; row++ {
		for col := 0; col < 5; col++ {
			if bits>>(uint(row*5+col)%64)&1 == 0 {
				continue
			}
			rect := image.Rect(x+col*s, top+row*s, x+(col+1)*s, top+(row+1)*s)
			draw.Draw(r.img, rect, src, image.Point{}, draw.Over)
		}
	}
}

func (r *Raster) hasGlyph(ch rune) bool {
	for _, rng := range r.face.Ranges {
		if ch >= rng.Low && ch < rng.High {
			return true
		}
	}
	return false
}

type coverage struct {
	c colorful.Color
	a float64
}

// StrokeLine draws a line of the given width. Each pixel is blended once
// with the strongest gradient sample that touches it.
func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, grad Gradient) {
	length := math.Hypot(x1-x0, y1-y0)
	steps := int(math.Ceil(length * 2))
	if steps < 1 {
		steps = 1
	}
	half := width / 2
	if half < 0.5 {
		half = 0.5
	}
	bounds := r.img.Bounds()
	hits := make(map[image.Point]coverage, steps*int(math.Ceil(width)+1))

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c, a := grad.At(t)
		if a <= 0 {
			continue
		}
		px, py := x0+(x1-x0)*t, y0+(y1-y0)*t
		for yy := int(math.Floor(py - half)); yy <= int(math.Floor(py+half)); yy++ {
			for xx := int(math.Floor(px - half)); xx <= int(math.Floor(px+half)); xx++ {
				p := image.Pt(xx, yy)
				if !p.In(bounds) {
					continue
				}
				if prev, ok := hits[p]; !ok || a > prev.a {
					hits[p] = coverage{c, a}
				}
			}
		}
	}

	for p, cv := range hits {
		dst := r.img.RGBAAt(p.X, p.Y)
		da := float64(dst.A) / 255
		var dc colorful.Color
		if dst.A > 0 {
			dc = colorful.Color{
				R: float64(dst.R) / float64(dst.A),
				G: float64(dst.G) / float64(dst.A),
				B: float64(dst.B) / float64(dst.A),
			}
		}
		oc, oa := over(cv.c, cv.a, dc, da)
		cr, cg, cb := oc.Clamped().RGB255()
		r.img.Set(p.X, p.Y, color.NRGBA{R: cr, G: cg, B: cb, A: uint8(clamp01(oa)*255 + 0.5)})
	}
}

func (r *Raster) Hash() uint64 {
	h := fnv.New64a()
	h.Write(r.img.Pix)
	return h.Sum64()
}
