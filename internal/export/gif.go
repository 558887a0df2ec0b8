package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/gif"
	"os"

	"golang.org/x/image/draw"
)

// DefaultMaxFrames caps a recording at 30 s of 60 fps video.
const DefaultMaxFrames = 1800

var ErrNoFrames = errors.New("export: no frames recorded")

// Recorder collects paletted frames for an animated GIF.
type Recorder struct {
	// Delay between frames in 100ths of a second.
	Delay     int
	MaxFrames int
	frames    []*image.Paletted
}

func NewRecorder(fps int) *Recorder {
	delay := 2
	if fps > 0 {
		delay = 100 / fps
		if delay < 2 {
			delay = 2
		}
	}
	return &Recorder{Delay: delay, MaxFrames: DefaultMaxFrames}
}

// Capture quantises img onto the web-safe palette. Frames past MaxFrames are
// dropped.
func (r *Recorder) Capture(img image.Image) {
	if r.MaxFrames > 0 && len(r.frames) >= r.MaxFrames {
		return
	}
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.WebSafe)
	draw.Draw(p, p.Bounds(), img, b.Min, draw.Src)
	r.frames = append(r.frames, p)
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() { r.frames = nil }

func (r *Recorder) GIF() *gif.GIF {
	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return anim
}

// Save encodes the recording to path and resets the recorder.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, r.GIF()); err != nil {
		f.Close()
		return err
	}
	r.Reset()
	return f.Close()
}
