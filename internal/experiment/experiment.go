// Package experiment renders the terminal app headlessly for a fixed number
// of frames on a virtual clock, feeding every composed screen to metrics and
// observers.
package experiment

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/frame"
	"github.com/san-kum/cyberjinn/internal/metrics"
	"github.com/san-kum/cyberjinn/internal/storage"
	"github.com/san-kum/cyberjinn/internal/surface"
	"github.com/san-kum/cyberjinn/internal/viz"
)

var ErrNoFrames = errors.New("experiment: frame count must be positive")

type Config struct {
	Cols, Rows int
	Frames     int
}

// Observer sees each composed screen with its background color.
type Observer func(i int, screen *surface.Grid, bg colorful.Color)

type Result struct {
	Frames     []storage.Frame
	Final      *surface.Grid
	Background colorful.Color
	Metrics    map[string]float64
}

type Experiment struct {
	cfg       Config
	app       *config.Config
	metrics   []metrics.Metric
	observers []Observer
}

func New(app *config.Config, cfg Config) *Experiment {
	if cfg.Cols <= 0 {
		cfg.Cols = 80
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 24
	}
	return &Experiment{cfg: cfg, app: app}
}

func (e *Experiment) AddMetric(m metrics.Metric) { e.metrics = append(e.metrics, m) }
func (e *Experiment) AddObserver(o Observer)     { e.observers = append(e.observers, o) }

// Run steps the app Frames times at the configured fps. Frame timestamps are
// virtual so a seeded config renders identically on every run; draw times
// are measured on the wall clock.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.cfg.Frames <= 0 {
		return nil, ErrNoFrames
	}

	m := viz.NewModel(viz.Options{Config: e.app, NoSplash: true})
	defer m.Close()
	next, _ := m.Update(tea.WindowSizeMsg{Width: e.cfg.Cols, Height: e.cfg.Rows})
	m = next.(viz.Model)

	interval := frame.Interval(e.app.FPS)
	start := time.Unix(0, 0)
	res := &Result{Frames: make([]storage.Frame, 0, e.cfg.Frames)}

	for i := 0; i < e.cfg.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		at := time.Duration(i) * interval

		began := time.Now()
		next, _ := m.Update(viz.TickMsg(start.Add(at)))
		m = next.(viz.Model)
		screen := m.Screen()
		draw := time.Since(began)

		bg := m.Scene().Settings.Background()
		for _, mt := range e.metrics {
			mt.Observe(screen, draw)
		}
		for _, o := range e.observers {
			o(i, screen, bg)
		}
		res.Frames = append(res.Frames, storage.Frame{At: at, Duration: draw, Hash: screen.Hash()})
		res.Final, res.Background = screen, bg
	}

	res.Metrics = metrics.Collect(e.metrics)
	return res, nil
}
