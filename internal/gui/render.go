package gui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/page"
)

const (
	fontSize   = 18
	lineHeight = 24
	panelWidth = 720
)

// layer is a GPU texture mirroring one raster.
type layer struct {
	tex    rl.Texture2D
	pixels []color.RGBA
	w, h   int
}

// upload copies img into the texture, recreating it when the size changed.
// image.RGBA is premultiplied; raylib blends straight alpha.
func (l *layer) upload(img *image.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	if w != l.w || h != l.h || l.tex.ID == 0 {
		l.unload()
		blank := rl.GenImageColor(w, h, rl.Blank)
		l.tex = rl.LoadTextureFromImage(blank)
		rl.UnloadImage(blank)
		l.w, l.h = w, h
		l.pixels = make([]color.RGBA, w*h)
	}
	for i := range l.pixels {
		p := img.Pix[i*4 : i*4+4]
		a := p[3]
		if a == 0 {
			l.pixels[i] = color.RGBA{}
			continue
		}
		l.pixels[i] = color.RGBA{
			R: uint8(int(p[0]) * 255 / int(a)),
			G: uint8(int(p[1]) * 255 / int(a)),
			B: uint8(int(p[2]) * 255 / int(a)),
			A: a,
		}
	}
	rl.UpdateTexture(l.tex, l.pixels)
}

func (l *layer) draw(x, y int) {
	if l.tex.ID != 0 {
		rl.DrawTexture(l.tex, int32(x), int32(y), rl.White)
	}
}

func (l *layer) unload() {
	if l.tex.ID != 0 {
		rl.UnloadTexture(l.tex)
		l.tex = rl.Texture2D{}
	}
}

func rlColor(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return rl.NewColor(r, g, b, uint8(alpha*255))
}

func (a *App) Draw() {
	now := time.Now()
	th := a.Scene.Settings.Theme()
	primary := th.PrimaryColor()

	a.rainLayer.upload(a.rainRaster.Image())
	a.sunLayer.upload(a.sunRaster.Image())
	a.fxLayer.upload(a.fxRaster.Image())

	rl.BeginDrawing()
	rl.ClearBackground(rlColor(th.BackgroundColor(), 1))

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	a.rainLayer.draw(0, 0)
	if a.Nav.IsActive(page.Home) {
		cx, cy := a.Scene.Sunburst.Center()
		a.sunLayer.draw(w/2-int(cx), h/2-int(cy))
	}
	a.fxLayer.draw(0, 0)

	if a.splash {
		a.drawSplash(now, w, h)
	} else {
		a.drawSection(w)
		if a.Nav.MenuOpen() {
			var lines []string
			for i, s := range page.Sections() {
				lines = append(lines, fmt.Sprintf("%d  %s", i+1, s.Title))
			}
			a.drawDialog("MENU", lines, w, h)
		}
		if a.showHelp {
			a.drawDialog("HELP", helpLines, w, h)
		}
		if a.alert {
			a.drawDialog("ALERT", append(strings.Split(page.ExecuteMessage, "\n"), "", "[ press any key ]"), w, h)
		}
		a.drawStatus(w, h)
	}

	if o := a.flashOpacity(now); o > 0 {
		rl.DrawRectangle(0, 0, int32(w), int32(h), rlColor(primary, o))
	}
	rl.EndDrawing()
}

var helpLines = []string{
	"1-6      jump to section",
	"TAB      next section",
	"ESC      home",
	"O        section menu",
	"T        cycle theme",
	"R        matrix rain",
	"P        particles",
	"M        music on/off",
	"+ / -    volume",
	"<- ->    hacker-lab tools",
	"ENTER    run tool",
	"X        execute",
	"G        screenshot",
	"/        close help",
	"Q        quit",
}

func (a *App) drawText(text string, x, y int, size int, c rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
}

func (a *App) textWidth(text string, size int) int {
	return int(rl.MeasureTextEx(a.Font, text, float32(size), 1).X)
}

func (a *App) drawSplash(now time.Time, w, h int) {
	th := a.Scene.Settings.Theme()
	title := "CYBER JINN"
	a.drawText(title, (w-a.textWidth(title, 48))/2, h/2-80, 48, rlColor(th.PrimaryColor(), 1))
	msg := "INITIALIZING SYSTEM..."
	a.drawText(msg, (w-a.textWidth(msg, fontSize))/2, h/2, fontSize, rlColor(th.TextColor(), 1))

	progress := float64(now.Sub(a.startedAt)) / float64(splashTimeout)
	if progress > 1 {
		progress = 1
	}
	bw := 320
	x, y := (w-bw)/2, h/2+40
	rl.DrawRectangleLines(int32(x), int32(y), int32(bw), 8, rlColor(th.MutedColor(), 1))
	rl.DrawRectangle(int32(x), int32(y), int32(float64(bw)*progress), 8, rlColor(th.PrimaryColor(), 1))
}

func (a *App) panel(x, y, w, h int, title string) {
	th := a.Scene.Settings.Theme()
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), rlColor(th.BackgroundColor(), 0.85))
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), rlColor(th.PrimaryColor(), 1))
	if title != "" {
		a.drawText(title, x+16, y+12, fontSize+6, rlColor(th.AccentColor(), 1))
	}
}

func (a *App) drawSection(w int) {
	sec, ok := page.Lookup(a.Nav.Active())
	if !ok {
		return
	}
	th := a.Scene.Settings.Theme()
	lines := sec.Body
	if sec.ID == page.HackerLab {
		lines = append(append(append([]string{}, sec.Body...), "", ""), a.lines...)
	}

	pw := panelWidth
	if pw > w-40 {
		pw = w - 40
	}
	x, y := (w-pw)/2, 60
	a.panel(x, y, pw, 56+len(lines)*lineHeight, sec.Title)

	for i, l := range lines {
		c := rlColor(th.TextColor(), 1)
		if strings.HasPrefix(l, page.Prompt) {
			c = rlColor(th.PrimaryColor(), 1)
		}
		a.drawText(l, x+16, y+48+i*lineHeight, fontSize, c)
	}

	if sec.ID == page.HackerLab {
		cx, cy := x+16, y+48+(len(sec.Body)+1)*lineHeight
		for i, t := range page.Tools() {
			label := "[" + t.ID + "]"
			c := rlColor(th.MutedColor(), 1)
			if i == a.tool {
				c = rlColor(th.AccentColor(), 1)
			}
			a.drawText(label, cx, cy, fontSize, c)
			cx += a.textWidth(label, fontSize) + 12
		}
	}
}

func (a *App) drawDialog(title string, lines []string, w, h int) {
	th := a.Scene.Settings.Theme()
	dw := a.textWidth(title, fontSize+6) + 48
	for _, l := range lines {
		if lw := a.textWidth(l, fontSize) + 32; lw > dw {
			dw = lw
		}
	}
	dh := 56 + len(lines)*lineHeight
	x, y := (w-dw)/2, (h-dh)/2
	a.panel(x, y, dw, dh, title)
	for i, l := range lines {
		a.drawText(l, x+16, y+48+i*lineHeight, fontSize, rlColor(th.TextColor(), 1))
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func (a *App) drawStatus(w, h int) {
	st := a.Scene.Settings
	th := st.Theme()
	parts := []string{
		strings.ToUpper(th.Name),
		"RAIN " + onOff(st.RainToggle()),
		"FX " + onOff(st.ParticlesEnabled()),
	}
	if a.Player != nil {
		lv := a.Player.Levels()
		state := "PLAYING"
		if !a.Player.Playing() {
			state = "PAUSED"
		}
		parts = append(parts, fmt.Sprintf("MUSIC %s %d%%", state, int(a.Player.Volume()*100+0.5)))

		// level bars
		for i, v := range []float64{lv.Bass, lv.Mid, lv.High} {
			bh := int(v * 24)
			rl.DrawRectangle(int32(w-60+i*14), int32(h-8-bh), 10, int32(bh), rlColor(th.PrimaryColor(), 0.8))
		}
	}
	parts = append(parts, fmt.Sprintf("%d FPS", rl.GetFPS()), page.Fragment(a.Nav.Active()))
	a.drawText(strings.Join(parts, "  |  "), 20, h-32, 14, rlColor(th.MutedColor(), 1))
}
