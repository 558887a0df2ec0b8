// Package rain implements the falling-glyph animation.
//
// Every column keeps one drop position measured in glyph rows. Each frame the
// surface is overpainted with a faint background fill, producing trails, and
// one random glyph is painted at every drop before the drop moves down.
package rain

import (
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/surface"
)

const (
	DefaultGlyphSize   = 14
	DefaultResetChance = 0.025
	DefaultFade        = 0.05
	// InitialDrop is the row every drop starts from after a resize.
	InitialDrop = 1
)

// DefaultAlphabet mixes halfwidth katakana, Latin capitals, digits and
// symbols. Halfwidth forms keep one glyph per terminal cell.
const DefaultAlphabet = "ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜｦﾝ" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@#$%^&*()"

// Env is the live state the animator consults on every frame.
type Env interface {
	RainEnabled() bool
	Primary() colorful.Color
	Background() colorful.Color
}

type Config struct {
	GlyphSize   int
	ResetChance float64
	Fade        float64
	Alphabet    string
}

func DefaultConfig() Config {
	return Config{
		GlyphSize:   DefaultGlyphSize,
		ResetChance: DefaultResetChance,
		Fade:        DefaultFade,
		Alphabet:    DefaultAlphabet,
	}
}

type Animator struct {
	cfg    Config
	glyphs []rune
	env    Env
	surf   surface.Surface
	rng    *rand.Rand

	width, height int
	drops         []int
}

// New builds an animator painting onto surf, sized to the surface's current
// dimensions.
func New(surf surface.Surface, env Env, cfg Config, rng *rand.Rand) *Animator {
	def := DefaultConfig()
	if cfg.GlyphSize <= 0 {
		cfg.GlyphSize = def.GlyphSize
	}
	if cfg.Alphabet == "" {
		cfg.Alphabet = def.Alphabet
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	a := &Animator{
		cfg:    cfg,
		glyphs: []rune(cfg.Alphabet),
		env:    env,
		surf:   surf,
		rng:    rng,
	}
	w, h := surf.Size()
	a.reset(w, h)
	return a
}

// Resize re-derives the column count and rebuilds every drop at InitialDrop.
// Unchanged dimensions keep the current drops.
func (a *Animator) Resize(w, h int) {
	if w == a.width && h == a.height && a.drops != nil {
		return
	}
	a.reset(w, h)
}

func (a *Animator) reset(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	a.surf.Resize(w, h)
	a.width, a.height = w, h
	a.drops = make([]int, w/a.cfg.GlyphSize)
	for i := range a.drops {
		a.drops[i] = InitialDrop
	}
}

// Frame is the scheduler callback. Painting and advancing are one step, so a
// suspended animator neither paints nor moves its drops.
func (a *Animator) Frame(time.Time) {
	if a.env.RainEnabled() {
		a.Draw()
	}
}

// Draw paints one frame and advances every drop by one row.
func (a *Animator) Draw() {
	a.surf.Fill(a.env.Background(), a.cfg.Fade)
	color := a.env.Primary()
	g := a.cfg.GlyphSize

	for i := range a.drops {
		ch := a.glyphs[a.rng.IntN(len(a.glyphs))]
		x, y := i*g, a.drops[i]*g
		a.surf.DrawGlyph(x, y, ch, color)

		if y > a.height && a.rng.Float64() < a.cfg.ResetChance {
			a.drops[i] = 0
		}
		a.drops[i]++
	}
}

// Blank paints the background opaquely, used when rain is switched off.
func (a *Animator) Blank() {
	a.surf.Fill(a.env.Background(), 1)
}

func (a *Animator) Columns() int             { return len(a.drops) }
func (a *Animator) GlyphSize() int           { return a.cfg.GlyphSize }
func (a *Animator) Surface() surface.Surface { return a.surf }

// Drops returns a copy of the drop positions.
func (a *Animator) Drops() []int {
	out := make([]int, len(a.drops))
	copy(out, a.drops)
	return out
}
