package audio

import (
	"bytes"
	"errors"
	"log"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

type fakeOutput struct {
	playErr error
	plays   int
	pauses  int
	volume  float64
	samples [][2]float64
}

func (f *fakeOutput) Play() error {
	f.plays++
	return f.playErr
}
func (f *fakeOutput) Pause()                     { f.pauses++ }
func (f *fakeOutput) SetVolume(v float64)        { f.volume = v }
func (f *fakeOutput) Samples(n int) [][2]float64 { return f.samples }
func (f *fakeOutput) Close() error               { return nil }

func TestPlayerInitialVolume(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(out, nil)
	if p.Volume() != DefaultVolume || out.volume != DefaultVolume {
		t.Errorf("expected volume %f, got player %f output %f", DefaultVolume, p.Volume(), out.volume)
	}
	if p.Playing() {
		t.Error("player should start paused")
	}
}

func TestPlayerToggle(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(out, nil)

	p.Toggle()
	if !p.Playing() || out.plays != 1 {
		t.Fatalf("expected playing after toggle, plays=%d", out.plays)
	}
	p.Toggle()
	if p.Playing() || out.pauses != 1 {
		t.Fatalf("expected paused after second toggle, pauses=%d", out.pauses)
	}
}

func TestPlayFailureIsLoggedOnly(t *testing.T) {
	var buf bytes.Buffer
	out := &fakeOutput{playErr: errors.New("device busy")}
	p := NewPlayer(out, log.New(&buf, "", 0))

	p.Play()
	if p.Playing() {
		t.Error("failed play must leave the player paused")
	}
	if out.plays != 1 {
		t.Errorf("expected a single attempt, got %d", out.plays)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "device busy") {
		t.Errorf("expected one diagnostic line, got %q", buf.String())
	}
}

func TestSetVolumeClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.3, 0.3},
		{-1, 0},
		{1.5, 1},
		{1, 1},
		{0, 0},
	}
	out := &fakeOutput{}
	p := NewPlayer(out, nil)
	for _, tt := range tests {
		p.SetVolume(tt.in)
		if p.Volume() != tt.want || out.volume != tt.want {
			t.Errorf("SetVolume(%f): expected %f, got %f", tt.in, tt.want, p.Volume())
		}
	}
}

func sine(freq float64, n int) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		v := math.Sin(2 * math.Pi * freq * float64(i) / SampleRate)
		out[i] = [2]float64{v, v}
	}
	return out
}

func TestAnalyzerBands(t *testing.T) {
	a := NewAnalyzer()
	bass := sine(60, BufferSize)
	var lv Levels
	for i := 0; i < 40; i++ {
		lv = a.Update(bass)
	}
	if lv.Bass <= lv.High || lv.Bass <= lv.Mid {
		t.Errorf("expected bass to dominate, got %+v", lv)
	}

	b := NewAnalyzer()
	high := sine(8000, BufferSize)
	for i := 0; i < 40; i++ {
		lv = b.Update(high)
	}
	if lv.High <= lv.Bass {
		t.Errorf("expected high to dominate, got %+v", lv)
	}
}

func TestLevelsDecayWhenPaused(t *testing.T) {
	out := &fakeOutput{samples: sine(60, BufferSize)}
	p := NewPlayer(out, nil)
	p.Play()
	for i := 0; i < 20; i++ {
		p.Levels()
	}
	peak := p.Levels().Bass

	p.Pause()
	var lv Levels
	for i := 0; i < 20; i++ {
		lv = p.Levels()
	}
	if lv.Bass >= peak {
		t.Errorf("levels should decay while paused: %f >= %f", lv.Bass, peak)
	}
}

func TestRingSnapshot(t *testing.T) {
	r := newRing(4)
	if got := r.snapshot(3); len(got) != 0 {
		t.Errorf("empty ring should return nothing, got %v", got)
	}
	for i := 1; i <= 6; i++ {
		r.record([][2]float64{{float64(i), 0}})
	}
	got := r.snapshot(10)
	want := []float64{3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i][0] != want[i] {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], got[i][0])
		}
	}
	if last := r.snapshot(2); last[0][0] != 5 || last[1][0] != 6 {
		t.Errorf("expected the two most recent samples, got %v", last)
	}
}

func TestPadSynth(t *testing.T) {
	s := newPadSynth()
	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
	s.render(out, 1)

	nonZero := false
	for ch := range out {
		for _, v := range out[ch] {
			if v != 0 {
				nonZero = true
			}
			if v > 1 || v < -1 {
				t.Fatalf("sample out of range: %f", v)
			}
		}
	}
	if !nonZero {
		t.Error("pad should produce sound")
	}
	if len(s.last) != BufferSize {
		t.Errorf("expected the rendered block to be kept, got %d", len(s.last))
	}

	s.render(out, 0)
	for _, v := range out[0] {
		if v != 0 {
			t.Fatalf("zero volume should be silent, got %f", v)
		}
	}
}

func TestFileOutputErrors(t *testing.T) {
	if err := NewFileOutput("").Play(); !errors.Is(err, ErrNoFile) {
		t.Errorf("expected ErrNoFile, got %v", err)
	}

	path := t.TempDir() + "/track.ogg"
	if err := writeFile(path); err != nil {
		t.Fatal(err)
	}
	if err := NewFileOutput(path).Play(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if got := NewFileOutput(path).Samples(10); got != nil {
		t.Errorf("unstarted output should have no samples, got %v", got)
	}
}

func writeWAV(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(800, generators.Silence(-1)), format); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFileOutputCloseAfterDecode(t *testing.T) {
	path := t.TempDir() + "/track.wav"
	writeWAV(t, path)

	streamer, format, err := decodeFile(path)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if format.SampleRate != 8000 || streamer.Len() != 800 {
		t.Errorf("unexpected stream: rate %d len %d", format.SampleRate, streamer.Len())
	}
	buf := make([][2]float64, 100)
	if n, ok := streamer.Stream(buf); n != 100 || !ok {
		t.Errorf("expected 100 samples, got %d %v", n, ok)
	}

	out := NewFileOutput(path)
	out.streamer = streamer
	out.ctrl = &beep.Ctrl{Streamer: streamer}
	if err := out.Close(); err != nil {
		t.Errorf("close after playback should succeed, got %v", err)
	}
	if err := out.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}

func writeFile(path string) error {
	return os.WriteFile(path, []byte("OggS"), 0o644)
}
