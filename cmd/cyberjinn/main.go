package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cyberjinn/internal/audio"
	"github.com/san-kum/cyberjinn/internal/config"
	"github.com/san-kum/cyberjinn/internal/gui"
	"github.com/san-kum/cyberjinn/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	themeName  string
	section    string
	fps        int
	seed       uint64
	noRain     bool
	noFX       bool
	musicFile  string
	volume     float64
	noAutoplay bool
	mute       bool
	debugLog   string
	// headless rendering
	frames int
	cols   int
	rows   int
	plain  bool
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	runs       int
)

// main registers the commands and runs the terminal app when no subcommand
// is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "cyberjinn",
		Short:        "cyberpunk matrix rain, sunburst and hacker lab in your terminal",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".cyberjinn", "data directory for recorded runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&themeName, "theme", "green", "color theme")
	pf.StringVar(&section, "section", "home", "start section")
	pf.IntVar(&fps, "fps", 60, "frame rate")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.BoolVar(&noRain, "no-rain", false, "start with matrix rain off")
	pf.BoolVar(&noFX, "no-particles", false, "start with particles off")

	rootCmd.Flags().StringVar(&musicFile, "music", "", "mp3 or wav file to loop (default: ambient pad)")
	rootCmd.Flags().Float64Var(&volume, "volume", 0.5, "music volume in [0,1]")
	rootCmd.Flags().BoolVar(&noAutoplay, "no-autoplay", false, "do not start music automatically")
	rootCmd.Flags().BoolVar(&mute, "mute", false, "disable audio entirely")
	rootCmd.Flags().StringVar(&debugLog, "debug", "", "write logs to this file")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run in a native window",
		RunE:  runWindow,
	}
	windowCmd.Flags().AddFlagSet(rootCmd.Flags())

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "stream the animation to stdout without taking over the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frames, "frames", 0, "stop after this many frames (0 = until interrupted)")
	liveCmd.Flags().IntVar(&cols, "cols", 80, "columns")
	liveCmd.Flags().IntVar(&rows, "rows", 24, "rows")
	liveCmd.Flags().BoolVar(&plain, "plain", false, "no colors")

	renderCmd := &cobra.Command{
		Use:   "render [output.gif|png|svg]",
		Short: "render frames headlessly to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	addRenderFlags(renderCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frame times",
		RunE:  runBench,
	}
	addRenderFlags(benchCmd)
	benchCmd.Flags().StringVar(&sweepParam, "sweep", "", "sweep a setting: "+joinParams())
	benchCmd.Flags().Float64Var(&sweepMin, "min", 0, "sweep start value")
	benchCmd.Flags().Float64Var(&sweepMax, "max", 0, "sweep end value")
	benchCmd.Flags().IntVar(&sweepSteps, "steps", 5, "sweep steps")
	benchCmd.Flags().IntVar(&runs, "runs", 1, "render this many seeds in parallel and average")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted render scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot frame times of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Run:   listThemes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(windowCmd, liveCmd, renderCmd, benchCmd, scenarioCmd, runsCmd, plotCmd, exportJSONCmd, themesCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", 180, "frames to render")
	cmd.Flags().IntVar(&cols, "cols", 100, "columns")
	cmd.Flags().IntVar(&rows, "rows", 30, "rows")
}

// loadConfig builds the effective config: preset or file (file wins), then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("section") {
		cfg.Start = section
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("no-rain") {
		cfg.Rain.Enabled = !noRain
	}
	if flags.Changed("no-particles") {
		cfg.Particles.Enabled = !noFX
	}
	if flags.Lookup("music") != nil && flags.Changed("music") {
		cfg.Music.File = musicFile
	}
	if flags.Lookup("volume") != nil && flags.Changed("volume") {
		cfg.Music.Volume = volume
	}
	if flags.Lookup("no-autoplay") != nil && flags.Changed("no-autoplay") {
		cfg.Music.Autoplay = !noAutoplay
	}
	if flags.Lookup("frames") != nil && flags.Changed("frames") {
		cfg.Render.Frames = frames
	}
	if flags.Lookup("cols") != nil && flags.Changed("cols") {
		cfg.Render.Cols = cols
	}
	if flags.Lookup("rows") != nil && flags.Changed("rows") {
		cfg.Render.Rows = rows
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPlayer picks the configured music file, falling back to the ambient
// pad. Audio problems never stop the app.
func newPlayer(cfg *config.Config, logger *log.Logger) *audio.Player {
	if mute {
		return nil
	}
	var out audio.Output = audio.NewPadOutput()
	if cfg.Music.File != "" {
		out = audio.NewFileOutput(cfg.Music.File)
	}
	p := audio.NewPlayer(out, logger)
	p.SetVolume(cfg.Music.Volume)
	return p
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if debugLog != "" {
		f, err := tea.LogToFile(debugLog, "cyberjinn")
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log.Default()
	}

	player := newPlayer(cfg, logger)
	if player != nil {
		defer player.Close()
	}

	m := viz.NewModel(viz.Options{Config: cfg, Player: player, Logger: logger})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok {
		fm.Close()
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)
	player := newPlayer(cfg, logger)
	if player != nil {
		defer player.Close()
	}
	gui.Run(cfg, player, logger)
	return nil
}
