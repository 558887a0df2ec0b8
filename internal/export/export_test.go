package export

import (
	"errors"
	"image"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/surface"
)

var (
	green = colorful.Color{G: 1}
	black = colorful.Color{}
)

func strokedGrid() *surface.Grid {
	g := surface.NewGrid(2, 4)
	g.Resize(20, 8)
	g.StrokeLine(0, 0, 19, 0, 1, surface.Solid(green))
	g.PutText(0, 1, "A<", green)
	return g
}

func TestGridToSVG(t *testing.T) {
	svg := GridToSVG(strokedGrid(), black, 2)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if !strings.Contains(svg, `width="40" height="16"`) {
		t.Errorf("unexpected dimensions in %q", svg[:200])
	}
	if n := strings.Count(svg, "<circle"); n < 10 {
		t.Errorf("expected braille dots, got %d circles", n)
	}
	if !strings.Contains(svg, `fill="rgb(0, 255, 0)"`) {
		t.Error("expected cell color in output")
	}
	if !strings.Contains(svg, `<rect width="100%" height="100%" fill="rgb(0, 0, 0)"/>`) {
		t.Error("expected background rect")
	}
	if !strings.Contains(svg, ">&lt;</text>") {
		t.Error("glyphs should be escaped")
	}
	if GridToSVG(nil, black, 1) != "" {
		t.Error("nil grid should produce nothing")
	}
}

func TestGridToSVGTranslucent(t *testing.T) {
	g := surface.NewGrid(2, 4)
	g.Resize(4, 4)
	g.Set(0, 0, surface.Cell{Rune: 'x', Color: green, Alpha: 0.5})
	g.Set(1, 0, surface.Cell{Rune: 'y', Color: green, Alpha: 1})

	svg := GridToSVG(g, black, 1)
	if !strings.Contains(svg, `fill="rgba(0, 255, 0, 0.5)">x</text>`) {
		t.Errorf("translucent glyph should keep its alpha:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="rgb(0, 255, 0)">y</text>`) {
		t.Errorf("opaque glyph should be plain rgb:\n%s", svg)
	}
}

func TestGridImage(t *testing.T) {
	img := GridImage(strokedGrid(), black, 8, 16)
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 32 {
		t.Fatalf("expected 80x32, got %v", b)
	}
	if px := img.RGBAAt(1, 1); px.G != 255 {
		t.Errorf("expected a green dot at the top left, got %+v", px)
	}
	if px := img.RGBAAt(79, 15); px.G != 0 || px.A != 255 {
		t.Errorf("expected opaque background, got %+v", px)
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(60)
	if rec.Delay != 2 {
		t.Errorf("expected minimum delay 2, got %d", rec.Delay)
	}
	if NewRecorder(10).Delay != 10 {
		t.Errorf("expected delay 10 at 10 fps")
	}

	path := filepath.Join(t.TempDir(), "out.gif")
	if err := rec.Save(path); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}

	rec.MaxFrames = 3
	for i := 0; i < 5; i++ {
		rec.Capture(image.NewRGBA(image.Rect(0, 0, 8, 4)))
	}
	if rec.Len() != 3 {
		t.Errorf("expected recording capped at 3 frames, got %d", rec.Len())
	}

	if err := rec.Save(path); err != nil {
		t.Fatal(err)
	}
	if rec.Len() != 0 {
		t.Error("save should reset the recorder")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("expected 3 frames in file, got %d", len(anim.Image))
	}
}

func TestSavePNG(t *testing.T) {
	r := surface.NewRaster(6, 3)
	r.Fill(green, 1)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(path, r.Image()); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestSaveResult(t *testing.T) {
	dir := t.TempDir()
	g := strokedGrid()

	rec := NewRecorder(30)
	observe := CaptureObserver(rec, 4, 8)
	observe(0, g, black)
	observe(1, g, black)

	for _, name := range []string{"a.gif", "a.png", "a.svg"} {
		path := filepath.Join(dir, name)
		if err := SaveResult(path, g, black, rec, 4, 8); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	if err := SaveResult(filepath.Join(dir, "a.bmp"), g, black, rec, 4, 8); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if err := SaveResult(filepath.Join(dir, "b.gif"), g, black, nil, 4, 8); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}
