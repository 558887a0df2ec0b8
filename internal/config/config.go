package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/cyberjinn/internal/frame"
	"github.com/san-kum/cyberjinn/internal/page"
	"github.com/san-kum/cyberjinn/internal/rain"
	"github.com/san-kum/cyberjinn/internal/settings"
	"github.com/san-kum/cyberjinn/internal/sunburst"
	"github.com/san-kum/cyberjinn/internal/theme"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	MaxFPS        = 240
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Theme     string          `yaml:"theme"`
	FPS       int             `yaml:"fps"`
	Seed      uint64          `yaml:"seed"`
	Start     string          `yaml:"start"`
	Rain      RainConfig      `yaml:"rain"`
	Sunburst  SunburstConfig  `yaml:"sunburst"`
	Particles ParticlesConfig `yaml:"particles"`
	Music     MusicConfig     `yaml:"music"`
	Window    WindowConfig    `yaml:"window"`
	Render    RenderConfig    `yaml:"render"`
}

type RainConfig struct {
	Enabled     bool    `yaml:"enabled"`
	GlyphSize   int     `yaml:"glyph_size"`
	ResetChance float64 `yaml:"reset_chance"`
	Fade        float64 `yaml:"fade"`
	Alphabet    string  `yaml:"alphabet,omitempty"`
}

type SunburstConfig struct {
	Rays      int     `yaml:"rays"`
	Increment float64 `yaml:"increment"`
	Scale     float64 `yaml:"scale"`
	LineWidth float64 `yaml:"line_width"`
	MidAlpha  float64 `yaml:"mid_alpha"`
}

type ParticlesConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MusicConfig struct {
	File     string  `yaml:"file,omitempty"`
	Volume   float64 `yaml:"volume"`
	Autoplay bool    `yaml:"autoplay"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RenderConfig sizes headless renders. Char sizes are the pixels per
// terminal cell in rasterised output.
type RenderConfig struct {
	Frames     int    `yaml:"frames"`
	Cols       int    `yaml:"cols"`
	Rows       int    `yaml:"rows"`
	CharWidth  int    `yaml:"char_width"`
	CharHeight int    `yaml:"char_height"`
	Output     string `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: theme.Default.Name,
		FPS:   frame.DefaultFPS,
		Start: string(page.Home),
		Rain: RainConfig{
			Enabled:     true,
			GlyphSize:   rain.DefaultGlyphSize,
			ResetChance: rain.DefaultResetChance,
			Fade:        rain.DefaultFade,
		},
		Sunburst: SunburstConfig{
			Rays:      sunburst.DefaultRays,
			Increment: sunburst.DefaultIncrement,
			Scale:     sunburst.DefaultScale,
			LineWidth: sunburst.DefaultLineWidth,
			MidAlpha:  sunburst.DefaultMidAlpha,
		},
		Particles: ParticlesConfig{Enabled: true},
		Music: MusicConfig{
			Volume:   0.5,
			Autoplay: true,
		},
		Window: WindowConfig{Width: DefaultWidth, Height: DefaultHeight},
		Render: RenderConfig{
			Frames:     180,
			Cols:       100,
			Rows:       30,
			CharWidth:  8,
			CharHeight: 16,
			Output:     "cyberjinn.gif",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	if _, err := theme.Get(c.Theme); err != nil {
		return fmt.Errorf("%w: theme %q", ErrInvalid, c.Theme)
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		return fmt.Errorf("%w: fps %d not in [1,%d]", ErrInvalid, c.FPS, MaxFPS)
	}
	if _, err := page.ParseFragment(c.Start); err != nil {
		return fmt.Errorf("%w: start section %q", ErrInvalid, c.Start)
	}
	if c.Rain.GlyphSize < 1 {
		return fmt.Errorf("%w: rain glyph_size %d", ErrInvalid, c.Rain.GlyphSize)
	}
	if c.Rain.ResetChance < 0 || c.Rain.ResetChance > 1 {
		return fmt.Errorf("%w: rain reset_chance %g not in [0,1]", ErrInvalid, c.Rain.ResetChance)
	}
	if c.Rain.Fade <= 0 || c.Rain.Fade > 1 {
		return fmt.Errorf("%w: rain fade %g not in (0,1]", ErrInvalid, c.Rain.Fade)
	}
	if c.Sunburst.Rays < 1 {
		return fmt.Errorf("%w: sunburst rays %d", ErrInvalid, c.Sunburst.Rays)
	}
	if c.Sunburst.Scale <= 0 || c.Sunburst.Scale > 1 {
		return fmt.Errorf("%w: sunburst scale %g not in (0,1]", ErrInvalid, c.Sunburst.Scale)
	}
	if c.Sunburst.MidAlpha < 0 || c.Sunburst.MidAlpha > 1 {
		return fmt.Errorf("%w: sunburst mid_alpha %g not in [0,1]", ErrInvalid, c.Sunburst.MidAlpha)
	}
	if c.Music.Volume < 0 || c.Music.Volume > 1 {
		return fmt.Errorf("%w: music volume %g not in [0,1]", ErrInvalid, c.Music.Volume)
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	r := c.Render
	if r.Frames < 1 || r.Cols < 1 || r.Rows < 1 || r.CharWidth < 1 || r.CharHeight < 1 {
		return fmt.Errorf("%w: render %d frames at %dx%d cells of %dx%d px", ErrInvalid, r.Frames, r.Cols, r.Rows, r.CharWidth, r.CharHeight)
	}
	return nil
}

func (c *Config) RainConfig() rain.Config {
	return rain.Config{
		GlyphSize:   c.Rain.GlyphSize,
		ResetChance: c.Rain.ResetChance,
		Fade:        c.Rain.Fade,
		Alphabet:    c.Rain.Alphabet,
	}
}

func (c *Config) SunburstConfig() sunburst.Config {
	return sunburst.Config{
		Rays:      c.Sunburst.Rays,
		Increment: c.Sunburst.Increment,
		Scale:     c.Sunburst.Scale,
		LineWidth: c.Sunburst.LineWidth,
		MidAlpha:  c.Sunburst.MidAlpha,
	}
}

func (c *Config) SettingsOptions() settings.Options {
	return settings.Options{
		Theme:     c.Theme,
		Rain:      c.Rain.Enabled,
		Particles: c.Particles.Enabled,
	}
}
