package particles

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/settings"
	"github.com/san-kum/cyberjinn/internal/surface"
)

func newSystem(width int, on bool) (*System, *settings.Settings) {
	env := settings.New(settings.Options{Particles: on})
	return New(env, width, rand.New(rand.NewPCG(7, 9))), env
}

func TestCountFor(t *testing.T) {
	tests := []struct {
		width, want int
	}{
		{1920, DefaultCount},
		{768, DefaultCount},
		{767, CompactCount},
		{320, CompactCount},
		{0, CompactCount},
	}
	for _, tt := range tests {
		if got := CountFor(tt.width); got != tt.want {
			t.Errorf("width %d: expected %d, got %d", tt.width, tt.want, got)
		}
	}
}

func TestInitRanges(t *testing.T) {
	s, _ := newSystem(1400, true)
	ps := s.Particles()
	if len(ps) != DefaultCount {
		t.Fatalf("expected %d particles, got %d", DefaultCount, len(ps))
	}
	for i, p := range ps {
		if p.Left < 0 || p.Left >= 1 || p.Top < 0 || p.Top >= 1 {
			t.Errorf("particle %d: position out of range %+v", i, p)
		}
		if p.Delay < 0 || p.Delay >= 10*time.Second {
			t.Errorf("particle %d: delay out of range %v", i, p.Delay)
		}
		if p.Duration < 10*time.Second || p.Duration >= 20*time.Second {
			t.Errorf("particle %d: duration out of range %v", i, p.Duration)
		}
	}
}

func TestToggle(t *testing.T) {
	s, env := newSystem(1400, true)

	s.Toggle(false)
	if env.ParticlesEnabled() {
		t.Error("toggle should update settings")
	}
	if len(s.Particles()) != 0 {
		t.Errorf("expected no particles when off, got %d", len(s.Particles()))
	}

	s.Toggle(true)
	if !env.ParticlesEnabled() || len(s.Particles()) != DefaultCount {
		t.Errorf("expected %d particles after re-enable, got %d", DefaultCount, len(s.Particles()))
	}
}

func TestDisabledAtStart(t *testing.T) {
	s, _ := newSystem(1400, false)
	if len(s.Particles()) != 0 {
		t.Errorf("expected empty set, got %d", len(s.Particles()))
	}
}

func TestSetWidth(t *testing.T) {
	s, _ := newSystem(1400, true)
	s.SetWidth(500)
	if s.Count() != CompactCount || len(s.Particles()) != CompactCount {
		t.Errorf("expected compact set, got %d", len(s.Particles()))
	}
	before := s.Particles()
	s.SetWidth(600)
	after := s.Particles()
	if before[0] != after[0] {
		t.Error("same count should keep the particles")
	}
}

func TestSample(t *testing.T) {
	p := Particle{Left: 0.5, Top: 0.5, Delay: 2 * time.Second, Duration: 10 * time.Second}

	if _, _, o := Sample(p, time.Second); o != 0 {
		t.Errorf("particle should be invisible before its delay, got %f", o)
	}

	_, y0, o0 := Sample(p, 2*time.Second)
	if o0 != 0 {
		t.Errorf("cycle should start transparent, got %f", o0)
	}
	if y0 != 0.5 {
		t.Errorf("cycle should start at top, got %f", y0)
	}

	_, yMid, oMid := Sample(p, 7*time.Second)
	if math.Abs(oMid-MaxOpacity) > 1e-9 {
		t.Errorf("expected peak opacity at mid cycle, got %f", oMid)
	}
	if math.Abs(yMid-(0.5-Rise/2)) > 1e-9 {
		t.Errorf("expected particle to have risen, got %f", yMid)
	}

	_, _, oq := Sample(p, 4500*time.Millisecond)
	if oq <= 0 || oq >= oMid {
		t.Errorf("quarter cycle should be partially visible, got %f", oq)
	}

	// loops
	_, y1, o1 := Sample(p, 17*time.Second)
	if math.Abs(y1-yMid) > 1e-9 || math.Abs(o1-oMid) > 1e-9 {
		t.Errorf("expected the second cycle to repeat the first, got y=%f o=%f", y1, o1)
	}
}

func TestDraw(t *testing.T) {
	s, _ := newSystem(1400, true)
	r := surface.NewRaster(200, 200)
	before := r.Hash()

	s.Draw(r, 25*time.Second, colorful.Color{G: 1})
	if r.Hash() == before {
		t.Error("expected particles to paint")
	}

	s.Toggle(false)
	r.Clear()
	before = r.Hash()
	s.Draw(r, 25*time.Second, colorful.Color{G: 1})
	if r.Hash() != before {
		t.Error("disabled layer should not paint")
	}
}
