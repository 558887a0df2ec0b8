package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PadOutput synthesises a slow ambient pad through portaudio. It is used
// when no music file is configured.
type PadOutput struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	synth  *padSynth
	ring   *ring

	// the stream callback only takes vmu; Stop waits for the callback
	vmu    sync.Mutex
	volume float64
}

func NewPadOutput() *PadOutput {
	return &PadOutput{
		volume: DefaultVolume,
		synth:  newPadSynth(),
		ring:   newRing(BufferSize * 4),
	}
}

func (p *PadOutput) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		if err := portaudio.Initialize(); err != nil {
			return err
		}
		// output only; duplex streams often fail on Linux when devices differ
		stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.process)
		if err != nil {
			portaudio.Terminate()
			return err
		}
		p.stream = stream
	}
	return p.stream.Start()
}

func (p *PadOutput) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream != nil {
		p.stream.Stop()
	}
}

func (p *PadOutput) SetVolume(v float64) {
	p.vmu.Lock()
	p.volume = v
	p.vmu.Unlock()
}

func (p *PadOutput) Samples(n int) [][2]float64 { return p.ring.snapshot(n) }

func (p *PadOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return nil
	}
	p.stream.Stop()
	err := p.stream.Close()
	p.stream = nil
	portaudio.Terminate()
	return err
}

func (p *PadOutput) process(out [][]float32) {
	p.vmu.Lock()
	vol := p.volume
	p.vmu.Unlock()
	p.synth.render(out, vol)
	p.ring.record(p.synth.last)
}

// padChord is Gm7 add9: G2, Bb2, D3, F3, A3.
var padChord = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

// padSynth is a detuned triangle stack through a one-pole low pass and a
// ping-pong delay.
type padSynth struct {
	t           float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int
	cutoff      float64
	last        [][2]float64
}

func newPadSynth() *padSynth {
	delayLen := int(float64(SampleRate) * 0.6)
	return &padSynth{
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		cutoff:    600,
	}
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one-pole low pass filter.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// render fills a stereo buffer at the given master volume.
func (s *padSynth) render(out [][]float32, volume float64) {
	dt := 1.0 / float64(SampleRate)
	gain := 0.5 * volume
	n := len(out[0])
	if cap(s.last) < n {
		s.last = make([][2]float64, n)
	}
	s.last = s.last[:n]

	for i := 0; i < n; i++ {
		sampleL, sampleR := 0.0, 0.0
		for j, f := range padChord {
			g := 1.0 / float64(len(padChord))
			lfo := math.Sin(s.t*0.2 + float64(j))
			sampleL += triangle(s.t*f*0.999) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(s.t*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		s.filterState[0] = lpf(sampleL, s.cutoff, dt, s.filterState[0])
		s.filterState[1] = lpf(sampleR, s.cutoff, dt, s.filterState[1])

		delayL := s.delayLine[0][s.delayHead]
		delayR := s.delayLine[1][s.delayHead]
		mixL := s.filterState[0] + delayL*0.3 + delayR*0.1
		mixR := s.filterState[1] + delayR*0.3 + delayL*0.1
		s.delayLine[0][s.delayHead] = mixL * 0.7
		s.delayLine[1][s.delayHead] = mixR * 0.7
		s.delayHead = (s.delayHead + 1) % len(s.delayLine[0])

		l, r := mixL*gain, mixR*gain
		out[0][i] = float32(l)
		out[1][i] = float32(r)
		s.last[i] = [2]float64{l, r}

		s.t += dt
	}
}
