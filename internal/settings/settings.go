// Package settings holds the page-wide toggles the animators read every frame.
//
// A single [Settings] value is created by the host and injected into each
// animator, replacing ambient global state. Animators re-read it per tick, so
// a theme switch or toggle takes effect on the next frame without any
// notification.
package settings

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/theme"
)

type Settings struct {
	mu          sync.RWMutex
	theme       theme.Theme
	rainToggle  bool
	rainEnabled bool
	particles   bool
	hidden      bool
}

// Options seeds a Settings value.
type Options struct {
	Theme     string
	Rain      bool
	Particles bool
}

// New returns Settings for the given options. An unknown theme name falls back
// to the default theme.
func New(opts Options) *Settings {
	th, _ := theme.Get(opts.Theme)
	return &Settings{
		theme:       th,
		rainToggle:  opts.Rain,
		rainEnabled: opts.Rain,
		particles:   opts.Particles,
	}
}

// Theme returns the active theme.
func (s *Settings) Theme() theme.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Primary is the live primary color of the active theme.
func (s *Settings) Primary() colorful.Color {
	return s.Theme().PrimaryColor()
}

// Background is the live background color of the active theme.
func (s *Settings) Background() colorful.Color {
	return s.Theme().BackgroundColor()
}

// SetTheme switches the active theme. Unknown names leave the theme unchanged.
func (s *Settings) SetTheme(name string) error {
	th, err := theme.Get(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.theme = th
	s.mu.Unlock()
	return nil
}

// CycleTheme moves to the next registered theme and returns it.
func (s *Settings) CycleTheme() theme.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme.Next(s.theme.Name)
	return s.theme
}

// RainEnabled is the effective rain flag consulted on every frame.
func (s *Settings) RainEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rainEnabled
}

// RainToggle is the user's rain checkbox.
func (s *Settings) RainToggle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rainToggle
}

// SetRainToggle records the user's choice and applies it to the effective
// flag. While hidden the flag stays off; SetHidden(false) picks the choice up.
func (s *Settings) SetRainToggle(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rainToggle = on
	s.rainEnabled = on && !s.hidden
}

func (s *Settings) ParticlesEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.particles
}

func (s *Settings) SetParticles(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.particles = on
}

func (s *Settings) Hidden() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hidden
}

// SetHidden applies the backgrounding policy: hiding always suspends rain,
// showing resumes it only while the user's toggle is still on.
func (s *Settings) SetHidden(hidden bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden = hidden
	if hidden {
		s.rainEnabled = false
		return
	}
	if s.rainToggle {
		s.rainEnabled = true
	}
}
