// Package gui hosts the scene in a native raylib window. The animators paint
// into CPU rasters that are uploaded as textures every frame; text overlays
// are drawn with raylib directly.
package gui

import (
	"io"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/cyberjinn/internal/audio"
	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/page"
	"github.com/san-kum/cyberjinn/internal/scene"
	"github.com/san-kum/cyberjinn/internal/surface"
)

const (
	splashTimeout = 3 * time.Second
	flashDuration = 500 * time.Millisecond
	alertDelay    = 300 * time.Millisecond
	volumeStep    = 0.1

	ScreenshotPath = "cyberjinn.png"
)

type App struct {
	Config *config.Config
	Scene  *scene.Scene
	Nav    *page.Navigator
	Player *audio.Player
	Font   rl.Font

	logger *log.Logger

	rainRaster, sunRaster, fxRaster *surface.Raster
	rainLayer, sunLayer, fxLayer    layer

	splash    bool
	showHelp  bool
	alert     bool
	alertAt   time.Time
	flashAt   time.Time
	tool      int
	lines     []string
	focused   bool
	autoplay  time.Time
	startedAt time.Time
}

// initWindow opens a resizable window at the configured size and disables
// the default exit key so Esc can navigate home.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "CYBER JINN")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when installed and falls back to raylib's
// built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the scene at the current window size. It must be called
// after the window is open.
func NewApp(cfg *config.Config, player *audio.Player, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	a := &App{
		Config:     cfg,
		Nav:        page.NewNavigator(),
		Player:     player,
		Font:       loadFont(),
		logger:     logger,
		rainRaster: surface.NewRaster(w, h),
		sunRaster:  surface.NewRaster(0, 0),
		fxRaster:   surface.NewRaster(w, h),
		splash:     true,
		lines:      page.RunTool(page.DefaultTool),
		focused:    true,
		startedAt:  time.Now(),
	}
	if err := a.Nav.NavigateFragment(cfg.Start); err != nil {
		logger.Printf("gui: %v", err)
	}
	a.Scene = scene.New(cfg, a.rainRaster, a.sunRaster, w, h)
	if player != nil && cfg.Music.Autoplay {
		a.autoplay = a.startedAt.Add(500 * time.Millisecond)
	}
	return a
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, player *audio.Player, logger *log.Logger) {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg, player, logger)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update(time.Now()) {
			return
		}
		a.Draw()
	}
}

// Update advances one frame. It returns false when the user quits.
func (a *App) Update(now time.Time) bool {
	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		a.Scene.Resize(w, h)
		a.fxRaster.Resize(w, h)
	}

	focused := rl.IsWindowFocused() && !rl.IsWindowMinimized()
	if focused != a.focused {
		a.focused = focused
		a.Scene.Settings.SetHidden(!focused)
	}

	if !a.autoplay.IsZero() && now.After(a.autoplay) {
		a.autoplay = time.Time{}
		a.Player.Play()
	}
	if a.splash && now.Sub(a.startedAt) >= splashTimeout {
		a.splash = false
	}
	if !a.alertAt.IsZero() && now.After(a.alertAt) {
		a.alertAt = time.Time{}
		a.alert = true
	}

	if !a.handleKeys(now) {
		return false
	}

	a.Scene.Tick(now)
	a.Scene.DrawParticles(a.fxRaster, now)
	return true
}

func pressed(keys ...int32) bool {
	for _, k := range keys {
		if rl.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyKey() bool { return rl.GetKeyPressed() != 0 }

func (a *App) handleKeys(now time.Time) bool {
	if a.splash {
		if anyKey() {
			a.splash = false
		}
		return true
	}
	if a.alert {
		if anyKey() {
			a.alert = false
		}
		return true
	}

	st := a.Scene.Settings
	switch {
	case pressed(rl.KeyQ):
		return false
	case pressed(rl.KeyEscape) && a.Nav.MenuOpen():
		a.Nav.CloseMenu()
	case pressed(rl.KeyEscape):
		a.Nav.NavigateTo(page.Home)
	case pressed(rl.KeyTab):
		a.Nav.Next()
	case pressed(rl.KeyO):
		a.Nav.ToggleMenu()
	case pressed(rl.KeyT):
		st.CycleTheme()
	case pressed(rl.KeyR):
		a.Scene.SetRain(!st.RainToggle())
	case pressed(rl.KeyP):
		a.Scene.Particles.Toggle(!st.ParticlesEnabled())
	case pressed(rl.KeyM):
		if a.Player != nil {
			a.Player.Toggle()
		}
	case pressed(rl.KeyEqual, rl.KeyKpAdd):
		if a.Player != nil {
			a.Player.SetVolume(a.Player.Volume() + volumeStep)
		}
	case pressed(rl.KeyMinus, rl.KeyKpSubtract):
		if a.Player != nil {
			a.Player.SetVolume(a.Player.Volume() - volumeStep)
		}
	case pressed(rl.KeyLeft, rl.KeyH):
		a.moveTool(-1)
	case pressed(rl.KeyRight, rl.KeyL):
		a.moveTool(1)
	case pressed(rl.KeyEnter):
		if a.Nav.IsActive(page.HackerLab) {
			a.lines = page.RunTool(page.Tools()[a.tool].ID)
		}
	case pressed(rl.KeyX):
		a.flashAt = now
		a.alertAt = now.Add(alertDelay)
	case pressed(rl.KeyG):
		rl.TakeScreenshot(ScreenshotPath)
		a.logger.Printf("gui: screenshot saved to %s", ScreenshotPath)
	case pressed(rl.KeySlash):
		a.showHelp = !a.showHelp
	default:
		for i, k := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix} {
			if rl.IsKeyPressed(k) {
				a.Nav.NavigateTo(page.Sections()[i].ID)
			}
		}
	}
	return true
}

func (a *App) moveTool(dir int) {
	if !a.Nav.IsActive(page.HackerLab) {
		return
	}
	n := len(page.Tools())
	a.tool = (a.tool + dir + n) % n
}

func (a *App) flashOpacity(now time.Time) float64 {
	if a.flashAt.IsZero() {
		return 0
	}
	d := now.Sub(a.flashAt)
	if d < 0 || d >= flashDuration {
		return 0
	}
	return 0.5 * (1 - float64(d)/float64(flashDuration))
}

// Close releases GPU textures and stops the scene.
func (a *App) Close() {
	a.rainLayer.unload()
	a.sunLayer.unload()
	a.fxLayer.unload()
	a.Scene.Stop()
}
