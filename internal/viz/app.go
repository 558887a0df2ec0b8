package viz

import (
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cyberjinn/internal/audio"
	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/export"
	"github.com/san-kum/cyberjinn/internal/frame"
	"github.com/san-kum/cyberjinn/internal/page"
	"github.com/san-kum/cyberjinn/internal/scene"
	"github.com/san-kum/cyberjinn/internal/surface"
)

const (
	// SplashTimeout hides the loading splash when no key is pressed.
	SplashTimeout = 3 * time.Second
	autoplayDelay = 500 * time.Millisecond
	flashDuration = 500 * time.Millisecond
	alertDelay    = 300 * time.Millisecond
	volumeStep    = 0.1

	defaultCols = 80
	defaultRows = 24

	// pixels per cell when rasterising recordings
	charW, charH = 8, 16

	GIFPath = "cyberjinn.gif"
)

type (
	TickMsg       time.Time
	splashDoneMsg struct{}
	autoplayMsg   struct{}
	alertMsg      struct{}
)

// Options configures a Model. Player may be nil when audio is unavailable.
// NoSplash starts on the active section, for headless rendering.
type Options struct {
	Config   *config.Config
	Player   *audio.Player
	Logger   *log.Logger
	NoSplash bool
}

// Model is the Bubble Tea model. Subsystems are shared pointers, so copies
// made by Update see the same animation state.
type Model struct {
	cfg      *config.Config
	scene    *scene.Scene
	nav      *page.Navigator
	player   *audio.Player
	logger   *log.Logger
	recorder *export.Recorder
	clock    func() time.Time

	rainGrid, sunGrid, fxGrid *surface.Grid
	glyph                     int
	cols, rows                int

	splash     bool
	showHelp   bool
	recording  bool
	alert      bool
	tool       int
	transcript []string
	flashAt    time.Time
	levels     audio.Levels
	fps        float64
	frames     int
	lastTick   time.Time
	now        time.Time
}

// NewModel builds the app at a default 80x24 size; the first
// WindowSizeMsg resizes it.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	g := cfg.Rain.GlyphSize
	if g < 1 {
		g = 1
	}
	m := Model{
		cfg:        cfg,
		nav:        page.NewNavigator(),
		player:     opts.Player,
		logger:     logger,
		recorder:   export.NewRecorder(cfg.FPS),
		clock:      time.Now,
		rainGrid:   surface.NewGrid(g, 2*g),
		sunGrid:    surface.NewGrid(g, 2*g),
		fxGrid:     surface.NewGrid(g, 2*g),
		glyph:      g,
		splash:     !opts.NoSplash,
		transcript: page.RunTool(page.DefaultTool),
	}
	if err := m.nav.NavigateFragment(cfg.Start); err != nil {
		logger.Printf("viz: %v", err)
	}
	m.scene = scene.New(cfg, m.rainGrid, m.sunGrid, defaultCols*g, defaultRows*2*g)
	m.resize(defaultCols, defaultRows)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(frame.Interval(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.tick(),
		tea.Tick(SplashTimeout, func(time.Time) tea.Msg { return splashDoneMsg{} }),
	}
	if m.player != nil && m.cfg.Music.Autoplay {
		cmds = append(cmds, tea.Tick(autoplayDelay, func(time.Time) tea.Msg { return autoplayMsg{} }))
	}
	return tea.Batch(cmds...)
}

// Update handles input events and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.FocusMsg:
		m.scene.Settings.SetHidden(false)
	case tea.BlurMsg:
		m.scene.Settings.SetHidden(true)
	case splashDoneMsg:
		m.splash = false
	case autoplayMsg:
		m.player.Play()
	case alertMsg:
		m.alert = true
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	m.cols, m.rows = cols, rows
	w, h := cols*m.glyph, rows*2*m.glyph
	m.scene.Resize(w, h)
	m.fxGrid.Resize(w, h)
}

// step runs one frame: animators, particles, meters, recording.
func (m *Model) step(now time.Time) {
	if !m.lastTick.IsZero() {
		if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
			m.fps = m.fps*0.9 + (1/dt)*0.1
		}
	}
	m.lastTick, m.now = now, now
	m.frames++

	m.scene.Tick(now)
	m.scene.DrawParticles(m.fxGrid, now)
	if m.player != nil {
		m.levels = m.player.Levels()
	}
	if m.recording {
		m.recorder.Capture(export.GridImage(m.compose(), m.scene.Settings.Background(), charW, charH))
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.splash {
		m.splash = false
		return m, nil
	}
	if m.alert {
		m.alert = false
		return m, nil
	}

	// esc dismisses an open menu before it means home
	if key == "esc" && m.nav.MenuOpen() {
		m.nav.CloseMenu()
		return m, nil
	}

	st := m.scene.Settings
	switch key {
	case "q":
		return m, tea.Quit
	case "tab":
		m.nav.Next()
	case "o":
		m.nav.ToggleMenu()
	case "t":
		st.CycleTheme()
	case "r":
		m.scene.SetRain(!st.RainToggle())
	case "p":
		m.scene.Particles.Toggle(!st.ParticlesEnabled())
	case "m":
		if m.player != nil {
			m.player.Toggle()
		}
	case "+", "=":
		if m.player != nil {
			m.player.SetVolume(m.player.Volume() + volumeStep)
		}
	case "-", "_":
		if m.player != nil {
			m.player.SetVolume(m.player.Volume() - volumeStep)
		}
	case "left", "h":
		m.moveTool(-1)
	case "right", "l":
		m.moveTool(1)
	case "enter":
		if m.nav.IsActive(page.HackerLab) {
			m.transcript = page.RunTool(page.Tools()[m.tool].ID)
		}
	case "x":
		m.flashAt = m.clock()
		return m, tea.Tick(alertDelay, func(time.Time) tea.Msg { return alertMsg{} })
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	default:
		if id, ok := page.Shortcut(key); ok {
			if err := m.nav.NavigateTo(id); err != nil {
				m.logger.Printf("viz: %v", err)
			}
		}
	}
	return m, nil
}

func (m *Model) moveTool(dir int) {
	if !m.nav.IsActive(page.HackerLab) {
		return
	}
	n := len(page.Tools())
	m.tool = (m.tool + dir + n) % n
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recorder.Reset()
		m.recording = true
		return
	}
	m.recording = false
	if err := m.recorder.Save(GIFPath); err != nil {
		m.logger.Printf("viz: save recording: %v", err)
		return
	}
	m.logger.Printf("viz: recording saved to %s", GIFPath)
}

// flashOpacity is the execute flash strength at now: 0.5 fading to 0.
func (m Model) flashOpacity() float64 {
	if m.flashAt.IsZero() {
		return 0
	}
	d := m.now.Sub(m.flashAt)
	if d < 0 || d >= flashDuration {
		return 0
	}
	return 0.5 * (1 - float64(d)/float64(flashDuration))
}

// View renders the composited screen.
func (m Model) View() string {
	if m.cols == 0 || m.rows == 0 {
		return ""
	}
	return m.compose().Render(m.scene.Settings.Background())
}

// Screen composes the current frame without styling it.
func (m Model) Screen() *surface.Grid { return m.compose() }

// Scene exposes the animation state.
func (m Model) Scene() *scene.Scene { return m.scene }

// Navigator exposes the page state.
func (m Model) Navigator() *page.Navigator { return m.nav }

// Close saves a recording in progress.
func (m Model) Close() {
	if m.recording {
		m.toggleRecording()
	}
	m.scene.Stop()
}
