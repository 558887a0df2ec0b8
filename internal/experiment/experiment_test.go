package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/metrics"
	"github.com/san-kum/cyberjinn/internal/surface"
)

func seeded() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 99
	return cfg
}

func TestRun(t *testing.T) {
	exp := New(seeded(), Config{Cols: 60, Rows: 20, Frames: 5})
	for _, m := range metrics.Default() {
		exp.AddMetric(m)
	}
	seen := 0
	exp.AddObserver(func(i int, screen *surface.Grid, _ colorful.Color) {
		if i != seen {
			t.Errorf("expected frame %d, got %d", seen, i)
		}
		if screen.Cols() != 60 || screen.Rows() != 20 {
			t.Errorf("unexpected screen %dx%d", screen.Cols(), screen.Rows())
		}
		seen++
	})

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if seen != 5 || len(res.Frames) != 5 {
		t.Errorf("expected 5 frames, observed %d recorded %d", seen, len(res.Frames))
	}
	if res.Final == nil {
		t.Fatal("expected final screen")
	}
	if res.Frames[4].At <= res.Frames[0].At {
		t.Error("frame offsets should advance")
	}
	if res.Metrics["coverage"] <= 0 {
		t.Errorf("expected visible cells, got %f", res.Metrics["coverage"])
	}
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() []uint64 {
		res, err := New(seeded(), Config{Cols: 40, Rows: 16, Frames: 4}).Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		hashes := make([]uint64, len(res.Frames))
		for i, f := range res.Frames {
			hashes[i] = f.Hash
		}
		return hashes
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("frame %d differs between seeded runs", i)
		}
	}
	if a[0] == a[3] {
		t.Error("animation should change the screen")
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := New(seeded(), Config{}).Run(context.Background()); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(seeded(), Config{Frames: 3}).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEnsemble(t *testing.T) {
	ens := NewEnsemble(seeded(), Config{Cols: 40, Rows: 16, Frames: 3}, 3, 7, nil)
	results, err := ens.Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	app := seeded()
	app.Seed = 8
	single, err := New(app, Config{Cols: 40, Rows: 16, Frames: 3}).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if results[1].Frames[2].Hash != single.Frames[2].Hash {
		t.Error("ensemble run 1 should match a single run seeded 8")
	}

	mean := Mean(results)
	if mean["coverage"] <= 0 {
		t.Errorf("expected averaged coverage, got %f", mean["coverage"])
	}
	if len(Mean(nil)) != 0 {
		t.Error("mean of no results should be empty")
	}
}
