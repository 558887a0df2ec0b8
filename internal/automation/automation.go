// Package automation runs scripted headless renders: YAML scenarios of
// config steps, and sweeps of one numeric setting.
package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/experiment"
	"github.com/san-kum/cyberjinn/internal/export"
	"github.com/san-kum/cyberjinn/internal/metrics"
	"github.com/san-kum/cyberjinn/internal/page"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownParam = errors.New("automation: unknown sweep parameter")
	ErrBadSweep     = errors.New("automation: sweep needs at least two steps")
)

// Scenario defines a scripted render sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Cols        int            `yaml:"cols"`
	Rows        int            `yaml:"rows"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single render in a scenario. Unset fields keep the base
// config's values.
type ScenarioStep struct {
	Preset    string `yaml:"preset"`
	Theme     string `yaml:"theme"`
	Section   string `yaml:"section"`
	Rain      *bool  `yaml:"rain"`
	Particles *bool  `yaml:"particles"`
	Frames    int    `yaml:"frames"`
	SaveAs    string `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// apply returns a copy of base with the step's overrides.
func (s ScenarioStep) apply(base *config.Config) (*config.Config, error) {
	cfg := *base
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, fmt.Errorf("%w: preset %q", config.ErrInvalid, s.Preset)
		}
		p.Seed, p.Render = base.Seed, base.Render
		cfg = *p
	}
	if s.Theme != "" {
		cfg.Theme = s.Theme
	}
	if s.Section != "" {
		id, err := page.ParseFragment(s.Section)
		if err != nil {
			return nil, err
		}
		cfg.Start = string(id)
	}
	if s.Rain != nil {
		cfg.Rain.Enabled = *s.Rain
	}
	if s.Particles != nil {
		cfg.Particles.Enabled = *s.Particles
	}
	if s.Frames > 0 {
		cfg.Render.Frames = s.Frames
	}
	return &cfg, cfg.Validate()
}

// RunScenario executes all steps in a scenario, saving each step that names
// an output file.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, logger *log.Logger) ([]experiment.Result, error) {
	logger = orDiscard(logger)
	results := make([]experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Printf("Running step %d/%d: %s", i+1, len(scenario.Steps), describe(step))

		cfg, err := step.apply(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		cols, rows := scenario.Cols, scenario.Rows
		if cols <= 0 || rows <= 0 {
			cols, rows = cfg.Render.Cols, cfg.Render.Rows
		}
		exp := experiment.New(cfg, experiment.Config{Cols: cols, Rows: rows, Frames: cfg.Render.Frames})
		for _, m := range metrics.Default() {
			exp.AddMetric(m)
		}
		var rec *export.Recorder
		if strings.EqualFold(filepath.Ext(step.SaveAs), ".gif") {
			rec = export.NewRecorder(cfg.FPS)
			exp.AddObserver(export.CaptureObserver(rec, cfg.Render.CharWidth, cfg.Render.CharHeight))
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		if step.SaveAs != "" {
			if err := export.SaveResult(step.SaveAs, result.Final, result.Background, rec, cfg.Render.CharWidth, cfg.Render.CharHeight); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, *result)
	}

	return results, nil
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard, "", 0)
	}
	return l
}

func describe(s ScenarioStep) string {
	parts := []string{}
	for _, kv := range [][2]string{{"preset", s.Preset}, {"theme", s.Theme}, {"section", s.Section}, {"save", s.SaveAs}} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	if len(parts) == 0 {
		return "defaults"
	}
	return strings.Join(parts, " ")
}

// ParameterSweep renders once per value of one numeric setting
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
	Cols      int
	Rows      int
}

// SweepResult holds the metrics of one sweep step
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

// SweepParams lists the settings RunSweep can vary.
func SweepParams() []string {
	return []string{"rays", "increment", "reset_chance", "fade", "glyph_size", "fps"}
}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "rays":
		cfg.Sunburst.Rays = int(v + 0.5)
	case "increment":
		cfg.Sunburst.Increment = v
	case "reset_chance":
		cfg.Rain.ResetChance = v
	case "fade":
		cfg.Rain.Fade = v
	case "glyph_size":
		cfg.Rain.GlyphSize = int(v + 0.5)
	case "fps":
		cfg.FPS = int(v + 0.5)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config, logger *log.Logger) ([]SweepResult, error) {
	logger = orDiscard(logger)
	if sweep.NumSteps < 2 {
		return nil, ErrBadSweep
	}
	if err := setParam(&config.Config{}, sweep.ParamName, 0); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := *base
		setParam(&cfg, sweep.ParamName, paramVal)
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("sweep %s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		exp := experiment.New(&cfg, experiment.Config{Cols: sweep.Cols, Rows: sweep.Rows, Frames: sweep.Frames})
		for _, m := range metrics.Default() {
			exp.AddMetric(m)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{ParamValue: paramVal, Metrics: result.Metrics})
		logger.Printf("Sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
