// Package tui streams the scene to a plain terminal with ANSI escapes, for
// hosts where the interactive program cannot take over the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/frame"
	"github.com/san-kum/cyberjinn/internal/page"
	"github.com/san-kum/cyberjinn/internal/scene"
	"github.com/san-kum/cyberjinn/internal/surface"
)

const (
	clearScreen = "\033[2J\033[H"
	cursorHome  = "\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

type LiveRenderer struct {
	out    io.Writer
	scene  *scene.Scene
	cols   int
	rows   int
	plain  bool
	frames int
	limit  int

	rainGrid, sunGrid, fxGrid *surface.Grid
	cancel                    context.CancelFunc
	err                       error
}

// Options configures a LiveRenderer. Frames stops the stream after that
// many frames; zero streams until the context ends. Plain drops colors.
type Options struct {
	Cols, Rows int
	Frames     int
	Plain      bool
}

func NewLiveRenderer(out io.Writer, cfg *config.Config, opts Options) *LiveRenderer {
	g := cfg.Rain.GlyphSize
	if g < 1 {
		g = 1
	}
	r := &LiveRenderer{
		out:      out,
		cols:     opts.Cols,
		rows:     opts.Rows,
		plain:    opts.Plain,
		limit:    opts.Frames,
		rainGrid: surface.NewGrid(g, 2*g),
		sunGrid:  surface.NewGrid(g, 2*g),
		fxGrid:   surface.NewGrid(g, 2*g),
	}
	w, h := r.cols*g, r.rows*2*g
	r.scene = scene.New(cfg, r.rainGrid, r.sunGrid, w, h)
	r.fxGrid.Resize(w, h)
	return r
}

func (r *LiveRenderer) Scene() *scene.Scene { return r.scene }

// Frames reports how many frames have been written.
func (r *LiveRenderer) Frames() int { return r.frames }

// Run drives the scene at fps until ctx ends or the frame limit is hit.
func (r *LiveRenderer) Run(ctx context.Context, fps int) error {
	ctx, r.cancel = context.WithCancel(ctx)
	defer r.cancel()

	h := r.scene.Loop.Start(r.OnFrame)
	defer r.scene.Loop.Cancel(h)

	r.Start()
	defer r.Stop()

	err := r.scene.Loop.Run(ctx, frame.Interval(fps))
	if r.err != nil {
		return r.err
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// OnFrame is registered after the animators, so it sees their output for
// the same tick.
func (r *LiveRenderer) OnFrame(now time.Time) {
	r.scene.StartClock(now)
	r.scene.DrawParticles(r.fxGrid, now)
	if _, err := io.WriteString(r.out, cursorHome+r.Render()); err != nil {
		r.err = err
		r.stop()
		return
	}
	r.frames++
	if r.limit > 0 && r.frames >= r.limit {
		r.stop()
	}
}

func (r *LiveRenderer) stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

// Render composes one frame: rain, particles, the sunburst centered and a
// one-line status footer.
func (r *LiveRenderer) Render() string {
	screen := surface.NewGrid(1, 1)
	screen.Resize(r.cols, r.rows)
	screen.Blit(r.rainGrid, 0, 0)
	screen.Blit(r.fxGrid, 0, 0)
	screen.Blit(r.sunGrid, (r.cols-r.sunGrid.Cols())/2, (r.rows-r.sunGrid.Rows())/2)

	st := r.scene.Settings
	status := fmt.Sprintf(" CYBER JINN │ %s │ frame %d │ %s ", strings.ToUpper(st.Theme().Name), r.frames, page.Fragment(page.Home))
	screen.PutText(0, r.rows-1, status, st.Theme().TextColor())

	if r.plain {
		return screen.String()
	}
	return screen.Render(st.Background())
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor+clearScreen) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor+"\n") }
