// Package metrics summarises headless runs one frame at a time.
package metrics

import (
	"time"

	"github.com/san-kum/cyberjinn/internal/surface"
)

// Metric observes every composed frame and reduces it to one number.
type Metric interface {
	Name() string
	Observe(screen *surface.Grid, draw time.Duration)
	Value() float64
	Reset()
}

// Default is the set recorded for every render and bench run.
func Default() []Metric {
	return []Metric{
		NewFrameTime(),
		NewPeakFrameTime(),
		NewPercentile(95),
		NewCoverage(),
	}
}

// Collect returns the current value of every metric keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
