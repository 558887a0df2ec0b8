package metrics

import (
	"time"

	"github.com/san-kum/cyberjinn/internal/surface"
)

// Coverage is the mean fraction of visible cells per frame, a measure of how
// dense the rain and overlays are.
type Coverage struct {
	name    string
	sum     float64
	samples int
}

func NewCoverage() *Coverage {
	return &Coverage{name: "coverage"}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) Observe(screen *surface.Grid, _ time.Duration) {
	if screen == nil {
		return
	}
	c.sum += screen.Coverage()
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.sum = 0
	c.samples = 0
}
