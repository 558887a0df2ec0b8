package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Levels are smoothed band energies in [0,1].
type Levels struct {
	Bass, Mid, High float64
}

// Analyzer turns sample windows into Levels with automatic gain control.
type Analyzer struct {
	buf      []complex128
	maxLevel float64
	levels   Levels
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		buf:      make([]complex128, BufferSize),
		maxLevel: 0.1,
	}
}

// Update analyses the most recent BufferSize samples (zero padded) and
// returns the smoothed levels.
func (a *Analyzer) Update(samples [][2]float64) Levels {
	if len(samples) > BufferSize {
		samples = samples[len(samples)-BufferSize:]
	}
	for i := range a.buf {
		v := 0.0
		if i < len(samples) {
			v = (samples[i][0] + samples[i][1]) / 2
		}
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(BufferSize-1)))
		a.buf[i] = complex(v*window, 0)
	}
	spectrum := fft.FFT(a.buf)

	// bins are SampleRate/BufferSize (~43 Hz) wide
	bassSum, midSum, highSum := 0.0, 0.0, 0.0
	for i := 0; i < BufferSize/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch {
		case i < 5:
			bassSum += mag
		case i < 46:
			midSum += mag
		case i < 460:
			highSum += mag
		}
	}

	peak := math.Max(bassSum/100.0, math.Max(midSum/500.0, highSum/1000.0))
	if peak > a.maxLevel {
		a.maxLevel = peak
	} else {
		a.maxLevel *= 0.999
	}
	gain := 1.0
	if a.maxLevel > 0.001 {
		gain = 1.0 / a.maxLevel
	}
	if gain > 50.0 {
		gain = 50.0
	}

	a.levels.Bass = a.levels.Bass*0.9 + math.Min(bassSum/100.0*gain, 1.0)*0.1
	a.levels.Mid = a.levels.Mid*0.9 + math.Min(midSum/500.0*gain, 1.0)*0.1
	a.levels.High = a.levels.High*0.9 + math.Min(highSum/1000.0*gain, 1.0)*0.1
	return a.levels
}

func (a *Analyzer) Levels() Levels { return a.levels }
