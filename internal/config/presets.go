package config

import "sort"

// Presets are complete configurations selectable by name.
var Presets = map[string]*Config{
	"matrix": DefaultConfig(),
	"mobile": with(func(c *Config) {
		c.FPS = 30
		c.Window = WindowConfig{Width: 390, Height: 844}
		c.Sunburst.Rays = 30
	}),
	"calm": with(func(c *Config) {
		c.Theme = "purple"
		c.Rain.ResetChance = 0.01
		c.Rain.Fade = 0.03
		c.Sunburst.Increment = 0.001
		c.Particles.Enabled = false
		c.Music.Volume = 0.3
	}),
	"storm": with(func(c *Config) {
		c.Theme = "red"
		c.FPS = 90
		c.Rain.ResetChance = 0.08
		c.Rain.Fade = 0.1
		c.Sunburst.Rays = 90
		c.Sunburst.Increment = 0.006
		c.Sunburst.MidAlpha = 0.2
	}),
}

func with(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
