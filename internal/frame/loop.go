package frame

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInvalidInterval is returned by Run for a non-positive interval.
var ErrInvalidInterval = errors.New("frame: interval must be positive")

// Callback is invoked once per dispatched frame.
type Callback func(now time.Time)

// Handle identifies a registered callback. The zero Handle is never issued.
type Handle uint64

// Scheduler registers repeating per-frame work.
type Scheduler interface {
	Start(cb Callback) Handle
	Cancel(h Handle)
}

type entry struct {
	handle Handle
	cb     Callback
}

// Loop is a Scheduler whose frames are produced by the host.
type Loop struct {
	mu      sync.Mutex
	next    Handle
	entries []entry
	frames  uint64
}

func NewLoop() *Loop {
	return &Loop{entries: make([]entry, 0, 4)}
}

// Start registers cb to run on every subsequent dispatch.
func (l *Loop) Start(cb Callback) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.entries = append(l.entries, entry{handle: l.next, cb: cb})
	return l.next
}

// Cancel removes the callback. Once Cancel returns the callback is not
// invoked again; an invocation already running completes normally.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.handle == h {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// Len reports the number of registered callbacks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Frames reports how many dispatches have happened.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Dispatch runs every registered callback once on the calling goroutine and
// returns how many ran.
func (l *Loop) Dispatch(now time.Time) int {
	l.mu.Lock()
	l.frames++
	snapshot := make([]entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	ran := 0
	for _, e := range snapshot {
		if !l.registered(e.handle) {
			continue
		}
		e.cb(now)
		ran++
	}
	return ran
}

func (l *Loop) registered(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.handle == h {
			return true
		}
	}
	return false
}

// Run dispatches on every tick of a ticker with the given interval until ctx
// is done. time.Ticker drops ticks for slow receivers, so frames never queue.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Dispatch(now)
		}
	}
}

// DefaultFPS matches a typical display refresh.
const DefaultFPS = 60

// Interval converts a frame rate into a tick interval, defaulting to
// DefaultFPS.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
