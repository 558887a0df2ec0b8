package viz

import (
	"math"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cyberjinn/internal/audio"
	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/page"
)

type silentOutput struct {
	plays int
}

func (s *silentOutput) Play() error {
	s.plays++
	return nil
}
func (s *silentOutput) Pause()                   {}
func (s *silentOutput) SetVolume(float64)        {}
func (s *silentOutput) Samples(int) [][2]float64 { return nil }
func (s *silentOutput) Close() error             { return nil }

func newModel(t *testing.T, player *audio.Player) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	m := NewModel(Options{Config: cfg, Player: player})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 60})
	return update(t, m, splashDoneMsg{})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSplash(t *testing.T) {
	m := NewModel(Options{})
	if !m.splash {
		t.Fatal("expected splash on start")
	}
	if !strings.Contains(m.compose().String(), "INITIALIZING SYSTEM") {
		t.Error("splash text missing")
	}

	m = update(t, m, runes("2"))
	if m.splash {
		t.Error("any key should dismiss the splash")
	}
	if !m.nav.IsActive(page.Home) {
		t.Error("dismissing key should not navigate")
	}

	m = NewModel(Options{})
	m = update(t, m, splashDoneMsg{})
	if m.splash {
		t.Error("splash should time out")
	}
}

func TestNavigationKeys(t *testing.T) {
	m := newModel(t, nil)

	tests := []struct {
		msg  tea.KeyMsg
		want page.SectionID
	}{
		{runes("2"), page.HackerLab},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4"), Alt: true}, page.Lore},
		{tea.KeyMsg{Type: tea.KeyTab}, page.Config},
		{tea.KeyMsg{Type: tea.KeyEsc}, page.Home},
		{runes("6"), page.SoulKid},
		{tea.KeyMsg{Type: tea.KeyTab}, page.Home},
	}
	for _, tt := range tests {
		m = update(t, m, tt.msg)
		if got := m.nav.Active(); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.msg, tt.want, got)
		}
	}
}

func TestSectionPanel(t *testing.T) {
	m := newModel(t, nil)
	m = update(t, m, runes("3"))
	sec, _ := page.Lookup(page.Anime)
	out := m.compose().String()
	if !strings.Contains(out, sec.Title) {
		t.Errorf("expected %q in view", sec.Title)
	}
	if !strings.Contains(out, "#anime") {
		t.Error("status bar should show the fragment")
	}
}

func TestStartSection(t *testing.T) {
	for _, start := range []string{"#lore", "lore", "hacker-lab"} {
		cfg := config.DefaultConfig()
		cfg.Start = start
		if err := cfg.Validate(); err != nil {
			t.Fatalf("%q: %v", start, err)
		}
		want, _ := page.ParseFragment(start)
		m := NewModel(Options{Config: cfg, NoSplash: true})
		if !m.Navigator().IsActive(want) {
			t.Errorf("%q: expected %s active, got %s", start, want, m.Navigator().Active())
		}
	}
}

func TestMenu(t *testing.T) {
	m := newModel(t, nil)
	m = update(t, m, runes("o"))
	if !m.nav.MenuOpen() {
		t.Fatal("expected menu open")
	}
	if !strings.Contains(m.compose().String(), "MENU") {
		t.Error("menu not drawn")
	}
	m = update(t, m, runes("5"))
	if m.nav.MenuOpen() || !m.nav.IsActive(page.Config) {
		t.Error("navigating should close the menu")
	}

	m = update(t, m, runes("o"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.nav.MenuOpen() || !m.nav.IsActive(page.Config) {
		t.Error("esc should dismiss the menu and keep the section")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.nav.IsActive(page.Home) {
		t.Error("esc without a menu should go home")
	}
}

func TestFocusSuspendsRain(t *testing.T) {
	m := newModel(t, nil)
	st := m.scene.Settings

	m = update(t, m, tea.BlurMsg{})
	if !st.Hidden() || st.RainEnabled() {
		t.Error("blur should suspend rain")
	}
	m = update(t, m, tea.FocusMsg{})
	if st.Hidden() || !st.RainEnabled() {
		t.Error("focus should resume rain")
	}

	m = update(t, m, runes("r"))
	m = update(t, m, tea.BlurMsg{})
	update(t, m, tea.FocusMsg{})
	if st.RainEnabled() {
		t.Error("focus should not resume rain the user switched off")
	}
}

func TestToggles(t *testing.T) {
	m := newModel(t, nil)
	st := m.scene.Settings
	theme := st.Theme().Name

	m = update(t, m, runes("t"))
	if st.Theme().Name == theme {
		t.Error("t should cycle the theme")
	}
	m = update(t, m, runes("r"))
	if st.RainToggle() {
		t.Error("r should switch rain off")
	}
	update(t, m, runes("p"))
	if st.ParticlesEnabled() || len(m.scene.Particles.Particles()) != 0 {
		t.Error("p should switch particles off")
	}
}

func TestToolCards(t *testing.T) {
	m := newModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.tool != 0 {
		t.Error("tool selection only moves in the hacker lab")
	}

	m = update(t, m, runes("2"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if want := len(page.Tools()) - 1; m.tool != want {
		t.Errorf("left should wrap to %d, got %d", want, m.tool)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	tool := page.Tools()[1]
	if m.transcript[0] != page.Prompt+" "+tool.Command {
		t.Errorf("unexpected transcript head %q", m.transcript[0])
	}
	if !strings.Contains(m.compose().String(), tool.Command) {
		t.Error("transcript not drawn")
	}
}

func TestExecute(t *testing.T) {
	m := newModel(t, nil)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.clock = func() time.Time { return at }

	next, cmd := m.Update(runes("x"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected alert to be scheduled")
	}
	m.now = at.Add(flashDuration / 2)
	if got := m.flashOpacity(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("expected flash 0.25 half way, got %f", got)
	}
	m.now = at.Add(flashDuration)
	if m.flashOpacity() != 0 {
		t.Error("flash should be gone after its duration")
	}

	m = update(t, m, alertMsg{})
	if !strings.Contains(m.compose().String(), "press any key") {
		t.Error("alert not shown")
	}
	m = update(t, m, runes("2"))
	if m.alert || !m.nav.IsActive(page.Home) {
		t.Error("key should only dismiss the alert")
	}
}

func TestMusicKeys(t *testing.T) {
	out := &silentOutput{}
	m := newModel(t, audio.NewPlayer(out, nil))

	m = update(t, m, runes("m"))
	if !m.player.Playing() {
		t.Error("m should start the music")
	}
	m = update(t, m, runes("+"))
	if math.Abs(m.player.Volume()-0.6) > 1e-9 {
		t.Errorf("expected 0.6, got %f", m.player.Volume())
	}
	m = update(t, m, runes("-"))
	update(t, m, runes("-"))
	if math.Abs(m.player.Volume()-0.4) > 1e-9 {
		t.Errorf("expected 0.4, got %f", m.player.Volume())
	}

	m = update(t, m, autoplayMsg{})
	if out.plays != 2 {
		t.Errorf("expected autoplay to call play, got %d plays", out.plays)
	}
}

func TestInitSchedulesAutoplay(t *testing.T) {
	m := NewModel(Options{Player: audio.NewPlayer(&silentOutput{}, nil)})
	if m.Init() == nil {
		t.Error("expected init commands")
	}
}

func TestResize(t *testing.T) {
	m := newModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	w, h := m.scene.Size()
	if w != 100*m.glyph || h != 30*2*m.glyph {
		t.Errorf("unexpected scene size %dx%d", w, h)
	}
	if m.rainGrid.Cols() != 100 || m.rainGrid.Rows() != 30 {
		t.Errorf("rain grid should match the terminal, got %dx%d", m.rainGrid.Cols(), m.rainGrid.Rows())
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines != 30 {
		t.Errorf("expected 30 lines, got %d", lines)
	}
}

func TestTick(t *testing.T) {
	m := newModel(t, nil)
	now := time.Now()
	next, cmd := m.Update(TickMsg(now))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should reschedule")
	}
	m = update(t, m, TickMsg(now.Add(16*time.Millisecond)))
	if m.frames != 2 || m.fps <= 0 {
		t.Errorf("unexpected frame stats: frames=%d fps=%f", m.frames, m.fps)
	}
	if m.scene.Sunburst.Rotation() == 0 {
		t.Error("sunburst should rotate")
	}
}

func TestRecording(t *testing.T) {
	t.Chdir(t.TempDir())
	m := newModel(t, nil)
	now := time.Now()

	m = update(t, m, runes("g"))
	m = update(t, m, TickMsg(now))
	m = update(t, m, TickMsg(now.Add(time.Second/60)))
	if m.recorder.Len() != 2 {
		t.Fatalf("expected 2 captured frames, got %d", m.recorder.Len())
	}
	update(t, m, runes("g"))
	if _, err := os.Stat(GIFPath); err != nil {
		t.Errorf("expected recording saved: %v", err)
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, nil)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
