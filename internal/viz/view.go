package viz

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/page"
	"github.com/san-kum/cyberjinn/internal/surface"
	"github.com/san-kum/cyberjinn/internal/theme"
)

const (
	panelTop      = 2
	maxPanelWidth = 64
)

var helpLines = []string{
	"1-6      jump to section",
	"tab      next section",
	"esc      home",
	"o        section menu",
	"t        cycle theme",
	"r        matrix rain",
	"p        particles",
	"m        music on/off",
	"+ / -    volume",
	"← → ⏎    hacker-lab tools",
	"x        execute",
	"g        record gif",
	"?        close help",
	"q        quit",
}

// palette is the theme resolved to grid colors for one frame.
type palette struct {
	primary, text, muted, accent colorful.Color
}

func paletteOf(th theme.Theme) palette {
	return palette{
		primary: th.PrimaryColor(),
		text:    th.TextColor(),
		muted:   th.MutedColor(),
		accent:  th.AccentColor(),
	}
}

// compose layers every element onto a fresh screen grid of cols x rows.
func (m Model) compose() *surface.Grid {
	screen := surface.NewGrid(1, 1)
	screen.Resize(m.cols, m.rows)
	pal := paletteOf(m.scene.Settings.Theme())

	screen.Blit(m.rainGrid, 0, 0)
	screen.Blit(m.fxGrid, 0, 0)
	if m.nav.IsActive(page.Home) {
		screen.Blit(m.sunGrid, (m.cols-m.sunGrid.Cols())/2, (m.rows-m.sunGrid.Rows())/2)
	}

	if m.splash {
		m.drawSplash(screen, pal)
		return screen
	}

	m.drawSection(screen, pal)
	if m.nav.MenuOpen() {
		m.drawMenu(screen, pal)
	}
	if m.showHelp {
		drawDialog(screen, pal, "HELP", helpLines)
	}
	if m.alert {
		lines := strings.Split(page.ExecuteMessage, "\n")
		drawDialog(screen, pal, "ALERT", append(lines, "", "[ press any key ]"))
	}
	m.drawStatus(screen, pal)

	if o := m.flashOpacity(); o > 0 {
		for r := 0; r < screen.Rows(); r++ {
			for c := 0; c < screen.Cols(); c++ {
				if cell := screen.Cell(c, r); cell.Rune == 0 || cell.Rune == ' ' || cell.Alpha <= 0 {
					screen.Set(c, r, surface.Cell{Rune: '█', Color: pal.primary, Alpha: o})
				}
			}
		}
	}
	return screen
}

func (m Model) drawSplash(screen *surface.Grid, pal palette) {
	progress := float64(m.scene.Elapsed(m.now)) / float64(SplashTimeout)
	lines := []string{
		"C Y B E R   J I N N",
		"",
		AnimatedSpinner(m.frames) + " INITIALIZING SYSTEM",
		ProgressBar(progress, 24),
		"",
		"[ press any key ]",
	}
	row := (m.rows - len(lines)) / 2
	for i, l := range lines {
		c := pal.primary
		if i > 1 {
			c = pal.text
		}
		putCentered(screen, row+i, l, c)
	}
}

func (m Model) drawSection(screen *surface.Grid, pal palette) {
	sec, ok := page.Lookup(m.nav.Active())
	if !ok {
		return
	}
	lines := append([]string{}, sec.Body...)
	if sec.ID == page.HackerLab {
		lines = append(lines, "", m.toolRow())
		lines = append(lines, "")
		lines = append(lines, m.transcript...)
	}

	w := maxPanelWidth
	if w > m.cols-4 {
		w = m.cols - 4
	}
	h := len(lines) + 4
	if w < 10 || m.rows < h+panelTop+1 {
		return
	}
	col := (m.cols - w) / 2
	drawBox(screen, col, panelTop, w, h, sec.Title, pal)
	for i, l := range lines {
		c := pal.text
		if sec.ID == page.HackerLab && strings.HasPrefix(l, page.Prompt) {
			c = pal.primary
		}
		screen.PutText(col+2, panelTop+2+i, clip(l, w-4), c)
	}
	if sec.ID == page.HackerLab {
		m.highlightTool(screen, col+2, panelTop+2+len(sec.Body)+1, pal)
	}
}

func (m Model) toolRow() string {
	var b strings.Builder
	for i, t := range page.Tools() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("[" + t.ID + "]")
	}
	return b.String()
}

// highlightTool recolors the selected card on the tool row.
func (m Model) highlightTool(screen *surface.Grid, col, row int, pal palette) {
	for i, t := range page.Tools() {
		label := "[" + t.ID + "]"
		if i == m.tool {
			screen.PutText(col, row, label, pal.accent)
			return
		}
		col += utf8.RuneCountInString(label) + 1
	}
}

func (m Model) drawMenu(screen *surface.Grid, pal palette) {
	var lines []string
	for i, s := range page.Sections() {
		marker := "  "
		if m.nav.IsActive(s.ID) {
			marker = "▶ "
		}
		lines = append(lines, fmt.Sprintf("%s%d  %s", marker, i+1, s.ID))
	}
	drawDialog(screen, pal, "MENU", lines)
}

func (m Model) drawStatus(screen *surface.Grid, pal palette) {
	row := m.rows - 1
	if row < 0 {
		return
	}
	st := m.scene.Settings
	screen.PutText(0, row, strings.Repeat(" ", m.cols), pal.muted)

	parts := []string{
		"CYBER JINN",
		strings.ToUpper(st.Theme().Name),
		"rain " + onOff(st.RainToggle()),
		"fx " + onOff(st.ParticlesEnabled()),
	}
	if m.player != nil {
		state := "♪"
		if !m.player.Playing() {
			state = "♪ paused"
		}
		parts = append(parts, fmt.Sprintf("%s %s %d%%", state, Meter(m.levels), int(m.player.Volume()*100+0.5)))
	}
	parts = append(parts, fmt.Sprintf("%.0f fps", m.fps), page.Fragment(m.nav.Active()))
	if m.recording {
		parts = append(parts, fmt.Sprintf("● REC %d", m.recorder.Len()))
	}
	screen.PutText(1, row, clip(strings.Join(parts, " │ "), m.cols-2), pal.primary)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// drawDialog centers a titled box around lines.
func drawDialog(screen *surface.Grid, pal palette, title string, lines []string) {
	w := utf8.RuneCountInString(title) + 6
	for _, l := range lines {
		if n := utf8.RuneCountInString(l) + 4; n > w {
			w = n
		}
	}
	if w > screen.Cols() {
		w = screen.Cols()
	}
	h := len(lines) + 2
	col, row := (screen.Cols()-w)/2, (screen.Rows()-h)/2
	if w < 4 || row < 0 {
		return
	}
	drawBox(screen, col, row, w, h, title, pal)
	for i, l := range lines {
		screen.PutText(col+2, row+1+i, clip(l, w-4), pal.text)
	}
}

// drawBox draws a rounded border with a title and blanks the interior.
func drawBox(screen *surface.Grid, col, row, w, h int, title string, pal palette) {
	inner := strings.Repeat(" ", w-2)
	screen.PutText(col, row, "╭"+strings.Repeat("─", w-2)+"╮", pal.primary)
	for r := 1; r < h-1; r++ {
		screen.PutText(col, row+r, "│"+inner+"│", pal.primary)
	}
	screen.PutText(col, row+h-1, "╰"+strings.Repeat("─", w-2)+"╯", pal.primary)
	if title != "" && w > 6 {
		screen.PutText(col+2, row, " "+clip(title, w-6)+" ", pal.accent)
	}
}

func putCentered(screen *surface.Grid, row int, s string, c colorful.Color) {
	col := (screen.Cols() - utf8.RuneCountInString(s)) / 2
	if col < 0 {
		col = 0
	}
	screen.PutText(col, row, s, c)
}

func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
