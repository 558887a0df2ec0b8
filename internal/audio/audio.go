// Package audio plays the background music and reports its levels.
//
// A [Player] drives one [Output]: a decoded music file ([FileOutput]) or the
// built-in ambient pad ([PadOutput]). Playback failures are logged and never
// returned to the caller; the player simply stays paused.
package audio

import (
	"io"
	"log"
	"sync"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// DefaultVolume is applied when the player is created.
	DefaultVolume = 0.5
)

// Output is a sound sink the player can start, pause and level.
type Output interface {
	Play() error
	Pause()
	SetVolume(v float64)
	// Samples returns up to the last n samples played, oldest first.
	Samples(n int) [][2]float64
	Close() error
}

type Player struct {
	mu       sync.Mutex
	out      Output
	logger   *log.Logger
	analyzer *Analyzer
	playing  bool
	volume   float64
}

// NewPlayer wraps out and applies DefaultVolume. A nil logger discards.
func NewPlayer(out Output, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	p := &Player{
		out:      out,
		logger:   logger,
		analyzer: NewAnalyzer(),
		volume:   DefaultVolume,
	}
	out.SetVolume(DefaultVolume)
	return p
}

// Play starts or resumes playback. On failure the player stays paused and
// a single diagnostic line is logged.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.out.Play(); err != nil {
		p.logger.Printf("audio: play failed: %v", err)
		return
	}
	p.playing = true
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.Pause()
	p.playing = false
}

// Toggle pauses a playing player and plays a paused one.
func (p *Player) Toggle() {
	if p.Playing() {
		p.Pause()
		return
	}
	p.Play()
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// SetVolume clamps v to [0,1].
func (p *Player) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
	p.out.SetVolume(v)
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Levels analyses the most recent output. A paused player decays to zero.
func (p *Player) Levels() Levels {
	p.mu.Lock()
	defer p.mu.Unlock()
	var samples [][2]float64
	if p.playing {
		samples = p.out.Samples(BufferSize)
	}
	return p.analyzer.Update(samples)
}

func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	return p.out.Close()
}
