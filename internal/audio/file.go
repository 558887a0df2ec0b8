package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

var (
	ErrUnsupportedFormat = errors.New("audio: unsupported file type")
	ErrNoFile            = errors.New("audio: no music file configured")
)

// FileOutput loops a decoded mp3 or wav file through the speaker.
type FileOutput struct {
	mu       sync.Mutex
	path     string
	volume   float64
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	gain     *effects.Volume
	tap      *tap
}

func NewFileOutput(path string) *FileOutput {
	return &FileOutput{path: path, volume: DefaultVolume}
}

// Play decodes and starts the file on first use and resumes it afterwards.
func (o *FileOutput) Play() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctrl != nil {
		speaker.Lock()
		o.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}
	return o.open()
}

func (o *FileOutput) open() error {
	if o.path == "" {
		return ErrNoFile
	}
	streamer, format, err := decodeFile(o.path)
	if err != nil {
		return err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/20)); err != nil {
		_ = streamer.Close()
		return err
	}

	// file -> loop -> tap -> volume -> ctrl
	o.tap = newTap(beep.Loop(-1, streamer), int(format.SampleRate.N(time.Second/4)))
	o.gain = &effects.Volume{Streamer: o.tap, Base: 2}
	applyVolume(o.gain, o.volume)
	o.ctrl = &beep.Ctrl{Streamer: o.gain}
	o.streamer = streamer

	speaker.Play(o.ctrl)
	return nil
}

// decodeFile opens and decodes an mp3 or wav file. Closing the returned
// streamer closes the file.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, err
	}
	return streamer, format, nil
}

func (o *FileOutput) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctrl == nil {
		return
	}
	speaker.Lock()
	o.ctrl.Paused = true
	speaker.Unlock()
}

func (o *FileOutput) SetVolume(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.volume = v
	if o.gain == nil {
		return
	}
	speaker.Lock()
	applyVolume(o.gain, v)
	speaker.Unlock()
}

// applyVolume maps a linear volume onto the effect's log2 scale.
func applyVolume(g *effects.Volume, v float64) {
	if v <= 0 {
		g.Silent = true
		g.Volume = 0
		return
	}
	g.Silent = false
	g.Volume = math.Log2(v)
}

func (o *FileOutput) Samples(n int) [][2]float64 {
	o.mu.Lock()
	t := o.tap
	o.mu.Unlock()
	if t == nil {
		return nil
	}
	return t.ring.snapshot(n)
}

func (o *FileOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctrl == nil {
		return nil
	}
	speaker.Clear()
	err := o.streamer.Close()
	o.ctrl, o.gain, o.tap, o.streamer = nil, nil, nil, nil
	return err
}
