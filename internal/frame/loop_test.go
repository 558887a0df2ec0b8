package frame

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopDispatchOrder(t *testing.T) {
	l := NewLoop()
	var order []int
	l.Start(func(time.Time) { order = append(order, 1) })
	l.Start(func(time.Time) { order = append(order, 2) })

	if n := l.Dispatch(time.Now()); n != 2 {
		t.Fatalf("expected 2 callbacks, got %d", n)
	}
	l.Dispatch(time.Now())

	want := []int{1, 2, 1, 2}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("call %d: expected %d, got %d", i, want[i], order[i])
		}
	}
	if l.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", l.Frames())
	}
}

func TestLoopCancel(t *testing.T) {
	l := NewLoop()
	calls := 0
	h := l.Start(func(time.Time) { calls++ })

	l.Dispatch(time.Now())
	l.Cancel(h)
	l.Dispatch(time.Now())
	l.Dispatch(time.Now())

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty loop, got %d", l.Len())
	}
	if l.Frames() != 3 {
		t.Errorf("loop should keep ticking after cancel, got %d frames", l.Frames())
	}

	// unknown handle is ignored
	l.Cancel(Handle(42))
}

func TestLoopCancelDuringDispatch(t *testing.T) {
	l := NewLoop()
	var second Handle
	secondCalls := 0
	selfCalls := 0

	var self Handle
	self = l.Start(func(time.Time) {
		selfCalls++
		l.Cancel(second)
		l.Cancel(self)
	})
	second = l.Start(func(time.Time) { secondCalls++ })

	if n := l.Dispatch(time.Now()); n != 1 {
		t.Errorf("expected 1 callback to run, got %d", n)
	}
	l.Dispatch(time.Now())

	if selfCalls != 1 {
		t.Errorf("in-flight callback should complete once, got %d", selfCalls)
	}
	if secondCalls != 0 {
		t.Errorf("callback cancelled earlier in the frame ran %d times", secondCalls)
	}
}

func TestLoopRun(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	l.Start(func(time.Time) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})

	err := l.Run(ctx, time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ticks < 3 {
		t.Errorf("expected at least 3 ticks, got %d", ticks)
	}
}

func TestLoopRunInvalidInterval(t *testing.T) {
	l := NewLoop()
	if err := l.Run(context.Background(), 0); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}
	for _, tt := range tests {
		if got := Interval(tt.fps); got != tt.want {
			t.Errorf("fps %d: expected %v, got %v", tt.fps, tt.want, got)
		}
	}
}
