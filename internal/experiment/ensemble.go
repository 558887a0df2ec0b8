package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/metrics"
)

// Ensemble renders the same config under consecutive seeds in parallel.
type Ensemble struct {
	app       *config.Config
	cfg       Config
	numRuns   int
	seedStart uint64
	metrics   func() []metrics.Metric
}

// NewEnsemble returns an ensemble of numRuns renders seeded from seedStart.
// newMetrics is called once per run so each run gets its own accumulators.
func NewEnsemble(app *config.Config, cfg Config, numRuns int, seedStart uint64, newMetrics func() []metrics.Metric) *Ensemble {
	if newMetrics == nil {
		newMetrics = metrics.Default
	}
	return &Ensemble{app: app, cfg: cfg, numRuns: numRuns, seedStart: seedStart, metrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			app := *e.app
			app.Seed = e.seedStart + uint64(idx)

			exp := New(&app, e.cfg)
			for _, m := range e.metrics() {
				exp.AddMetric(m)
			}

			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Mean averages each metric across results.
func Mean(results []*Result) map[string]float64 {
	out := make(map[string]float64)
	if len(results) == 0 {
		return out
	}
	for _, r := range results {
		for k, v := range r.Metrics {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(len(results))
	}
	return out
}
