// Package sunburst implements the rotating ray animation.
package sunburst

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/surface"
)

const (
	DefaultRays      = 60
	DefaultIncrement = 0.002
	DefaultScale     = 0.6
	DefaultLineWidth = 2
	DefaultMidAlpha  = 0.1
)

// Env supplies the live primary color.
type Env interface {
	Primary() colorful.Color
}

type Config struct {
	Rays      int
	Increment float64 // radians per frame
	Scale     float64 // fraction of the smaller viewport side
	LineWidth float64
	MidAlpha  float64
	Rotation  float64 // initial angle
}

func DefaultConfig() Config {
	return Config{
		Rays:      DefaultRays,
		Increment: DefaultIncrement,
		Scale:     DefaultScale,
		LineWidth: DefaultLineWidth,
		MidAlpha:  DefaultMidAlpha,
	}
}

type Animator struct {
	cfg  Config
	env  Env
	surf surface.Surface

	rotation         float64
	size             float64
	centerX, centerY float64
	radius           float64
}

func New(surf surface.Surface, env Env, cfg Config) *Animator {
	if cfg.Rays <= 0 {
		cfg.Rays = DefaultRays
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}
	if cfg.LineWidth <= 0 {
		cfg.LineWidth = DefaultLineWidth
	}
	return &Animator{
		cfg:      cfg,
		env:      env,
		surf:     surf,
		rotation: cfg.Rotation,
	}
}

// Resize fits the square surface to the viewport and recomputes the center
// and radius from the same size.
func (a *Animator) Resize(viewportW, viewportH int) {
	size := math.Min(float64(viewportW), float64(viewportH)) * a.cfg.Scale
	if size < 0 {
		size = 0
	}
	a.surf.Resize(int(size), int(size))
	a.size = size
	a.centerX, a.centerY = size/2, size/2
	a.radius = size / 2
}

// Frame draws, then advances the rotation. The angle is never wrapped.
func (a *Animator) Frame(time.Time) {
	a.Draw()
	a.rotation += a.cfg.Increment
}

// Draw clears the surface and strokes every ray at the current rotation.
func (a *Animator) Draw() {
	a.surf.Clear()
	grad := surface.Fade(a.env.Primary(), a.cfg.MidAlpha)
	for i := 0; i < a.cfg.Rays; i++ {
		angle := a.RayAngle(i) + a.rotation
		x := a.centerX + math.Cos(angle)*a.radius
		y := a.centerY + math.Sin(angle)*a.radius
		a.surf.StrokeLine(a.centerX, a.centerY, x, y, a.cfg.LineWidth, grad)
	}
}

// RayAngle is the angle of ray i relative to the rotation offset.
func (a *Animator) RayAngle(i int) float64 {
	return math.Pi * 2 / float64(a.cfg.Rays) * float64(i)
}

func (a *Animator) Rotation() float64          { return a.rotation }
func (a *Animator) Radius() float64            { return a.radius }
func (a *Animator) Center() (float64, float64) { return a.centerX, a.centerY }
func (a *Animator) Rays() int                  { return a.cfg.Rays }
func (a *Animator) Surface() surface.Surface   { return a.surf }
