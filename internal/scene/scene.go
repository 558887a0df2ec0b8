// Package scene wires the animators, the shared settings and one frame loop
// into a single unit that every host (terminal, window, headless render)
// drives the same way.
package scene

import (
	"math/rand/v2"
	"time"

	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/frame"
	"github.com/san-kum/cyberjinn/internal/particles"
	"github.com/san-kum/cyberjinn/internal/rain"
	"github.com/san-kum/cyberjinn/internal/settings"
	"github.com/san-kum/cyberjinn/internal/sunburst"
	"github.com/san-kum/cyberjinn/internal/surface"
)

type Scene struct {
	Settings  *settings.Settings
	Loop      *frame.Loop
	Rain      *rain.Animator
	Sunburst  *sunburst.Animator
	Particles *particles.System

	start   time.Time
	handles []frame.Handle
	width   int
	height  int
}

// New builds a scene painting rain onto rainSurf and the sunburst onto
// sunSurf, and registers both animators with a fresh loop.
func New(cfg *config.Config, rainSurf, sunSurf surface.Surface, w, h int) *Scene {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>32|1))

	st := settings.New(cfg.SettingsOptions())
	s := &Scene{
		Settings:  st,
		Loop:      frame.NewLoop(),
		Rain:      rain.New(rainSurf, st, cfg.RainConfig(), rng),
		Sunburst:  sunburst.New(sunSurf, st, cfg.SunburstConfig()),
		Particles: particles.New(st, w, rng),
	}
	s.Resize(w, h)
	s.handles = append(s.handles, s.Loop.Start(s.Rain.Frame), s.Loop.Start(s.Sunburst.Frame))
	return s
}

// Resize propagates a viewport change to every animator.
func (s *Scene) Resize(w, h int) {
	s.width, s.height = w, h
	s.Rain.Resize(w, h)
	s.Sunburst.Resize(w, h)
	s.Particles.SetWidth(w)
}

func (s *Scene) Size() (int, int) { return s.width, s.height }

// Tick dispatches one frame. The first tick starts the particle clock.
func (s *Scene) Tick(now time.Time) int {
	s.StartClock(now)
	return s.Loop.Dispatch(now)
}

// StartClock sets the particle clock origin if it is not set yet. Hosts
// that drive the loop themselves call it from a frame callback.
func (s *Scene) StartClock(now time.Time) {
	if s.start.IsZero() {
		s.start = now
	}
}

// Elapsed is the time since the first tick.
func (s *Scene) Elapsed(now time.Time) time.Duration {
	if s.start.IsZero() {
		return 0
	}
	return now.Sub(s.start)
}

// SetRain applies the rain toggle; switching off paints the rain surface
// opaque so no frozen trails remain.
func (s *Scene) SetRain(on bool) {
	s.Settings.SetRainToggle(on)
	if !on {
		s.Rain.Blank()
	}
}

// DrawParticles clears surf and paints the particle layer at now.
func (s *Scene) DrawParticles(surf surface.Surface, now time.Time) {
	surf.Clear()
	s.Particles.Draw(surf, s.Elapsed(now), s.Settings.Primary())
}

// Stop cancels the scene's frame callbacks.
func (s *Scene) Stop() {
	for _, h := range s.handles {
		s.Loop.Cancel(h)
	}
	s.handles = nil
}
