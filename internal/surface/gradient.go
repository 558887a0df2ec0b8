package surface

import "github.com/lucasb-eyer/go-colorful"

// Stop is one color stop of a linear gradient.
type Stop struct {
	Offset float64
	Color  colorful.Color
	Alpha  float64
}

// Gradient is a list of stops sorted by offset along a stroke (0 at the
// start point, 1 at the end point).
type Gradient []Stop

// Solid paints the whole stroke in c.
func Solid(c colorful.Color) Gradient {
	return Gradient{{0, c, 1}, {1, c, 1}}
}

// Fade is transparent at both ends and c at alpha mid in the middle.
func Fade(c colorful.Color, mid float64) Gradient {
	return Gradient{{0, c, 0}, {0.5, c, mid}, {1, c, 0}}
}

// At samples the gradient. Colors interpolate premultiplied so a transparent
// stop never darkens its neighbour.
func (g Gradient) At(t float64) (colorful.Color, float64) {
	if len(g) == 0 {
		return colorful.Color{}, 0
	}
	t = clamp01(t)
	if t <= g[0].Offset {
		return g[0].Color, g[0].Alpha
	}
	for i := 1; i < len(g); i++ {
		b := g[i]
		if t > b.Offset {
			continue
		}
		a := g[i-1]
		f := 0.0
		if span := b.Offset - a.Offset; span > 0 {
			f = (t - a.Offset) / span
		}
		wa, wb := a.Alpha*(1-f), b.Alpha*f
		alpha := wa + wb
		if alpha <= 0 {
			return b.Color, 0
		}
		return colorful.Color{
			R: (a.Color.R*wa + b.Color.R*wb) / alpha,
			G: (a.Color.G*wa + b.Color.G*wb) / alpha,
			B: (a.Color.B*wa + b.Color.B*wb) / alpha,
		}, alpha
	}
	last := g[len(g)-1]
	return last.Color, last.Alpha
}
