package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/san-kum/cyberjinn/internal/surface"
)

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// FrameTime is the mean draw time in milliseconds.
type FrameTime struct {
	name    string
	total   time.Duration
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{name: "mean_ms"}
}

func (f *FrameTime) Name() string {
	return f.name
}

func (f *FrameTime) Observe(_ *surface.Grid, draw time.Duration) {
	f.total += draw
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return millis(f.total) / float64(f.samples)
}

func (f *FrameTime) Reset() {
	f.total = 0
	f.samples = 0
}

// PeakFrameTime is the slowest frame in milliseconds.
type PeakFrameTime struct {
	name string
	peak time.Duration
}

func NewPeakFrameTime() *PeakFrameTime {
	return &PeakFrameTime{name: "max_ms"}
}

func (p *PeakFrameTime) Name() string { return p.name }

func (p *PeakFrameTime) Observe(_ *surface.Grid, draw time.Duration) {
	if draw > p.peak {
		p.peak = draw
	}
}

func (p *PeakFrameTime) Value() float64 { return millis(p.peak) }
func (p *PeakFrameTime) Reset()         { p.peak = 0 }

// Percentile keeps every sample and reports the nearest-rank percentile.
type Percentile struct {
	name    string
	p       float64
	samples []time.Duration
}

// NewPercentile returns the p-th percentile metric, p in (0, 100].
func NewPercentile(p float64) *Percentile {
	return &Percentile{name: fmt.Sprintf("p%.0f_ms", p), p: p}
}

func (p *Percentile) Name() string {
	return p.name
}

func (p *Percentile) Observe(_ *surface.Grid, draw time.Duration) {
	p.samples = append(p.samples, draw)
}

func (p *Percentile) Value() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(p.samples))
	copy(sorted, p.samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rank := int(math.Ceil(p.p/100*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return millis(sorted[rank])
}

func (p *Percentile) Reset() {
	p.samples = p.samples[:0]
}
