package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cyberjinn/internal/automation"
	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/experiment"
	"github.com/san-kum/cyberjinn/internal/export"
	"github.com/san-kum/cyberjinn/internal/metrics"
	"github.com/san-kum/cyberjinn/internal/storage"
	"github.com/san-kum/cyberjinn/internal/theme"
	"github.com/san-kum/cyberjinn/internal/tui"
	"github.com/san-kum/cyberjinn/internal/viz"
	"github.com/spf13/cobra"
)

func joinParams() string { return strings.Join(automation.SweepParams(), ", ") }

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := tui.NewLiveRenderer(os.Stdout, cfg, tui.Options{Cols: cols, Rows: rows, Frames: frames, Plain: plain})
	defer r.Scene().Stop()
	return r.Run(ctx, cfg.FPS)
}

// newExperiment sets up a headless run with the default metrics.
func newExperiment(cfg *config.Config) *experiment.Experiment {
	exp := experiment.New(cfg, experiment.Config{Cols: cfg.Render.Cols, Rows: cfg.Render.Rows, Frames: cfg.Render.Frames})
	for _, m := range metrics.Default() {
		exp.AddMetric(m)
	}
	return exp
}

func saveRun(kind string, cfg *config.Config, res *experiment.Result, outputs ...string) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	meta := storage.RunMetadata{
		Kind:    kind,
		Seed:    cfg.Seed,
		Theme:   cfg.Theme,
		FPS:     cfg.FPS,
		Cols:    cfg.Render.Cols,
		Rows:    cfg.Render.Rows,
		Outputs: outputs,
		Metrics: res.Metrics,
	}
	return st.Save(meta, res.Frames)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cfg.Render.Output
	if len(args) > 0 {
		out = args[0]
	}
	ext := strings.ToLower(filepath.Ext(out))

	exp := newExperiment(cfg)
	var rec *export.Recorder
	if ext == ".gif" {
		rec = export.NewRecorder(cfg.FPS)
		rec.MaxFrames = cfg.Render.Frames
		exp.AddObserver(export.CaptureObserver(rec, cfg.Render.CharWidth, cfg.Render.CharHeight))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	fmt.Printf("rendering %d frames at %dx%d...\n", cfg.Render.Frames, cfg.Render.Cols, cfg.Render.Rows)
	res, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	if err := export.SaveResult(out, res.Final, res.Background, rec, cfg.Render.CharWidth, cfg.Render.CharHeight); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}

	runID, err := saveRun("render", cfg, res, out)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (run %s)\n", out, runID)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sweepParam != "" {
		return runSweep(ctx, cfg)
	}
	if runs > 1 {
		return runEnsemble(ctx, cfg)
	}

	fmt.Printf("benchmarking %d frames at %dx%d\n\n", cfg.Render.Frames, cfg.Render.Cols, cfg.Render.Rows)
	res, err := newExperiment(cfg).Run(ctx)
	if err != nil {
		return err
	}

	plotFrames(res.Frames, "draw time (ms) per frame")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range []string{"mean_ms", "p95_ms", "max_ms", "coverage"} {
		fmt.Fprintf(w, "%s\t%.3f\n", name, res.Metrics[name])
	}
	if mean := res.Metrics["mean_ms"]; mean > 0 {
		fmt.Fprintf(w, "max fps\t%.0f\n", 1000/mean)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	runID, err := saveRun("bench", cfg, res)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run %s\n", runID)
	return nil
}

func runSweep(ctx context.Context, cfg *config.Config) error {
	sweep := &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Frames:    cfg.Render.Frames,
		Cols:      cfg.Render.Cols,
		Rows:      cfg.Render.Rows,
	}
	results, err := automation.RunSweep(ctx, sweep, cfg, log.New(os.Stderr, "", 0))
	if err != nil {
		return err
	}

	means := make([]float64, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN_MS\tP95_MS\tCOVERAGE\n", strings.ToUpper(sweepParam))
	for i, r := range results {
		means[i] = r.Metrics["mean_ms"]
		fmt.Fprintf(w, "%.4f\t%.3f\t%.3f\t%.3f\n", r.ParamValue, r.Metrics["mean_ms"], r.Metrics["p95_ms"], r.Metrics["coverage"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(means) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(means, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("mean draw ms by "+sweepParam)))
	}
	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config) error {
	ec := experiment.Config{Cols: cfg.Render.Cols, Rows: cfg.Render.Rows, Frames: cfg.Render.Frames}
	results, err := experiment.NewEnsemble(cfg, ec, runs, cfg.Seed, nil).Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMEAN_MS\tP95_MS\tMAX_MS\tCOVERAGE")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%.3f\n", cfg.Seed+uint64(i), r.Metrics["mean_ms"], r.Metrics["p95_ms"], r.Metrics["max_ms"], r.Metrics["coverage"])
	}
	mean := experiment.Mean(results)
	fmt.Fprintf(w, "mean\t%.3f\t%.3f\t%.3f\t%.3f\n", mean["mean_ms"], mean["p95_ms"], mean["max_ms"], mean["coverage"])
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, cfg, log.New(os.Stdout, "  ", 0))
	if err != nil {
		return err
	}
	for i, res := range results {
		var outputs []string
		if out := sc.Steps[i].SaveAs; out != "" {
			outputs = append(outputs, out)
		}
		if _, err := saveRun("scenario", cfg, &res, outputs...); err != nil {
			return err
		}
	}
	fmt.Printf("%d steps complete\n", len(results))
	return nil
}

func plotFrames(frames []storage.Frame, caption string) {
	if len(frames) == 0 {
		return
	}
	data := make([]float64, len(frames))
	for i, f := range frames {
		data[i] = float64(f.Duration.Microseconds()) / 1000
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tTHEME\tSIZE\tMEAN\tOUTPUT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d\t%.2fms\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Theme,
			run.Cols, run.Rows,
			run.Metrics["mean_ms"],
			strings.Join(run.Outputs, ","),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("frames: %d\n\n", len(frames))
	plotFrames(frames, "draw time (ms) per frame")
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).WriteJSON(os.Stdout, args[0])
}

func listThemes(cmd *cobra.Command, args []string) {
	for _, name := range theme.Names() {
		th, _ := theme.Get(name)
		fmt.Println(viz.Swatch(th))
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "cyberjinn.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
