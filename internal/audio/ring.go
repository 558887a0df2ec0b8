package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// ring keeps the most recent stereo samples for level analysis.
type ring struct {
	mu        sync.RWMutex
	buffer    [][2]float64
	nextIndex int
	filled    int
}

func newRing(size int) *ring {
	return &ring{buffer: make([][2]float64, size)}
}

func (r *ring) record(samples [][2]float64) {
	r.mu.Lock()
	for _, s := range samples {
		r.buffer[r.nextIndex] = s
		r.nextIndex++
		if r.nextIndex >= len(r.buffer) {
			r.nextIndex = 0
		}
		if r.filled < len(r.buffer) {
			r.filled++
		}
	}
	r.mu.Unlock()
}

// snapshot returns up to the last n samples, oldest first.
func (r *ring) snapshot(n int) [][2]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n > r.filled {
		n = r.filled
	}
	out := make([][2]float64, n)
	idx := r.nextIndex - n
	if idx < 0 {
		idx += len(r.buffer)
	}
	for i := range out {
		out[i] = r.buffer[idx]
		idx++
		if idx >= len(r.buffer) {
			idx = 0
		}
	}
	return out
}

// tap wraps a beep.Streamer and records everything it plays.
type tap struct {
	Source beep.Streamer
	ring   *ring
}

func newTap(src beep.Streamer, size int) *tap {
	return &tap{Source: src, ring: newRing(size)}
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.ring.record(samples[:n])
	}
	return n, ok
}

func (t *tap) Err() error { return t.Source.Err() }
