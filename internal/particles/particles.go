// Package particles implements the floating particle layer.
package particles

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/surface"
)

const (
	DefaultCount = 50
	CompactCount = 20
	// CompactWidth is the viewport width below which CompactCount is used.
	CompactWidth = 768

	// Rise is how far a particle climbs over one cycle, as a fraction of
	// the viewport height.
	Rise = 0.2
	// Sway is the horizontal drift amplitude, as a fraction of the width.
	Sway = 0.01
	// MaxOpacity is the opacity at the middle of a cycle.
	MaxOpacity = 0.8
)

// Env toggles the layer.
type Env interface {
	ParticlesEnabled() bool
	SetParticles(on bool)
}

// Particle is one floating dot. Left and Top are fractions of the viewport.
type Particle struct {
	Left, Top float64
	Delay     time.Duration
	Duration  time.Duration
}

// CountFor returns the particle count for a viewport width in pixels.
func CountFor(width int) int {
	if width < CompactWidth {
		return CompactCount
	}
	return DefaultCount
}

type System struct {
	env       Env
	rng       *rand.Rand
	count     int
	particles []Particle
}

func New(env Env, width int, rng *rand.Rand) *System {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	s := &System{env: env, rng: rng, count: CountFor(width)}
	s.Init()
	return s
}

// Init rebuilds the particle set, or empties it when the layer is off.
func (s *System) Init() {
	s.particles = s.particles[:0]
	if !s.env.ParticlesEnabled() {
		return
	}
	for i := 0; i < s.count; i++ {
		s.particles = append(s.particles, Particle{
			Left:     s.rng.Float64(),
			Top:      s.rng.Float64(),
			Delay:    time.Duration(s.rng.Float64() * float64(10*time.Second)),
			Duration: time.Duration((s.rng.Float64()*10 + 10) * float64(time.Second)),
		})
	}
}

func (s *System) Toggle(on bool) {
	s.env.SetParticles(on)
	if on {
		s.Init()
		return
	}
	s.particles = nil
}

// SetWidth switches between the full and compact count, rebuilding the set
// when the count changes.
func (s *System) SetWidth(width int) {
	n := CountFor(width)
	if n == s.count {
		return
	}
	s.count = n
	s.Init()
}

func (s *System) Count() int { return s.count }

func (s *System) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Sample returns the particle's position (fractions of the viewport) and
// opacity at elapsed time. A particle is invisible until its delay passes,
// then loops: rising by Rise and fading in and out along InOutQuad.
func Sample(p Particle, elapsed time.Duration) (x, y, opacity float64) {
	if elapsed < p.Delay || p.Duration <= 0 {
		return p.Left, p.Top, 0
	}
	cycle := (elapsed - p.Delay) % p.Duration
	t := float64(cycle) / float64(p.Duration)

	x = p.Left + Sway*math.Sin(2*math.Pi*t)
	y = p.Top - Rise*t

	gain := t * 2
	if gain > 1 {
		gain = 2 - gain
	}
	return x, y, ease.InOutQuad(gain) * MaxOpacity
}

// Draw paints every visible particle onto surf as a short dot.
func (s *System) Draw(surf surface.Surface, elapsed time.Duration, c colorful.Color) {
	w, h := surf.Size()
	for _, p := range s.particles {
		x, y, o := Sample(p, elapsed)
		if o <= 0 || x < 0 || y < 0 || x >= 1 || y >= 1 {
			continue
		}
		px, py := x*float64(w), y*float64(h)
		grad := surface.Gradient{{Offset: 0, Color: c, Alpha: o}, {Offset: 1, Color: c, Alpha: o}}
		surf.StrokeLine(px, py, px+1, py, 2, grad)
	}
}
