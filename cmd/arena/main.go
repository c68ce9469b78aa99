package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/arena/internal/analysis"
	"github.com/san-kum/arena/internal/automation"
	"github.com/san-kum/arena/internal/config"
	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/experiment"
	"github.com/san-kum/arena/internal/export"
	"github.com/san-kum/arena/internal/gui"
	"github.com/san-kum/arena/internal/logging"
	"github.com/san-kum/arena/internal/palette"
	"github.com/san-kum/arena/internal/storage"
	"github.com/san-kum/arena/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	// Arena overrides
	numBodies    int
	radius       float64
	gap          float64
	impulseScale float64
	frameRate    int
	frames       int
	realtime     bool
	paletteMode  string
	// Analysis selection
	bodyIndex int
	field     string
	nudge     float64
	// Sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Snapshot
	frameIndex int
	outFile    string
	trail      bool
)

// main registers commands and flags, launches the terminal host when no
// subcommand is given, and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "arena",
		Short:        "elastic discs in a box, flung with the mouse",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".arena", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.IntVar(&numBodies, "bodies", 0, "number of discs")
	pf.Float64Var(&radius, "radius", 0, "disc radius")
	pf.Float64Var(&gap, "gap", 0, "grid gap")
	pf.Float64Var(&impulseScale, "impulse-scale", 0, "drag length per unit of velocity")
	pf.IntVar(&frameRate, "fps", 0, "frame rate")
	pf.StringVar(&paletteMode, "palette", "", "solid or speed")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the arena in the terminal",
		RunE:  runTUI,
	}
	rootCmd.Flags().StringVar(&logFile, "log-file", "arena.log", "log file for terminal mode")
	tuiCmd.Flags().StringVar(&logFile, "log-file", "arena.log", "log file for terminal mode")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the arena in a window",
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless with the scripted gestures and store the run",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 0, "frames to simulate")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames at --fps instead of running flat out")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one body coordinate over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")
	plotCmd.Flags().StringVar(&field, "field", "x", "one of "+strings.Join(analysis.Fields, ", "))

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and sensitivity analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")
	analyzeCmd.Flags().StringVar(&field, "field", "x", "one of "+strings.Join(analysis.Fields, ", "))
	analyzeCmd.Flags().Float64Var(&nudge, "nudge", 1e-6, "initial offset for the sensitivity run")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "trace a body's path through the arena",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render a frame as SVG (the initial layout without a run)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&frameIndex, "frame", -1, "frame to render, -1 for the last")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (stdout when empty)")
	snapshotCmd.Flags().BoolVar(&trail, "trail", false, "overlay the path of --body")
	snapshotCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index for --trail")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of headless steps",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and compare run metrics",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "radius", "one of "+strings.Join(automation.SweepParams, ", "))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 20, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 60, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&frames, "frames", 0, "frames per run")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame throughput",
		RunE:  bench,
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

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "arena.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, exportCmd, snapshotCmd, scenarioCmd, sweepCmd, benchCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig starts from the preset (or defaults), applies the config file
// on top, then any flag the user set explicitly.
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
	if flags.Changed("bodies") {
		cfg.Bodies.Count = numBodies
	}
	if flags.Changed("radius") {
		cfg.Bodies.Radius = radius
	}
	if flags.Changed("gap") {
		cfg.Bodies.Gap = gap
	}
	if flags.Changed("impulse-scale") {
		cfg.ImpulseScale = impulseScale
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("palette") {
		cfg.Palette.Mode = paletteMode
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runName() string {
	switch {
	case configFile != "":
		return "config"
	case preset != "":
		return preset
	default:
		return "default"
	}
}

func stderrLogger() *log.Logger { return logging.New(os.Stderr, logLevel) }

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.OpenFile(logFile, logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	surface := viz.NewSurface(viz.NewCanvas(120, 30), cfg.Bounds())
	exp, err := experiment.New(cfg, surface, logger, experiment.Live())
	if err != nil {
		return err
	}
	m, err := viz.NewModel(exp.Scheduler(), surface,
		viz.WithLogger(logger),
		viz.WithFPS(cfg.FPS),
		viz.WithRelayout(func() ([]dynamo.Body, error) { return experiment.Layout(cfg, logger) }),
	)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := stderrLogger()

	exp, err := experiment.New(cfg, gui.NewSurface(), logger, experiment.Live())
	if err != nil {
		return err
	}
	app, err := gui.NewApp(exp.Scheduler(), cfg.FPS)
	if err != nil {
		return err
	}
	app.Log = logger
	app.Relayout = func() ([]dynamo.Body, error) { return experiment.Layout(cfg, logger) }
	app.Run()
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := stderrLogger()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts []experiment.Option
	if realtime {
		opts = append(opts, experiment.Paced(cfg.FPS))
	}
	exp, err := experiment.New(cfg, dynamo.NopSurface{}, logger, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%d frames)...\n", runName(), cfg.Frames)
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.NewMetadata(runName(), cfg, result.Frames, result.Metrics), cfg, result.Frames)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tBODIES\tCONTACTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Bodies,
			run.Metrics["contacts"],
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, [][]dynamo.Body, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	data, err := analysis.Series(frames, bodyIndex, field)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d %s vs frame", bodyIndex, field)),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, frames, err := loadRun(runID)
	if err != nil {
		return err
	}
	data, err := analysis.Series(frames, bodyIndex, field)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%d frames, %d bodies)\n\n", meta.ID, meta.Frames, meta.Bodies)
	if period, ok := analysis.DominantPeriod(data); ok {
		fmt.Printf("dominant period of body %d %s: %.1f frames\n", bodyIndex, field, period)
	} else {
		fmt.Printf("body %d %s shows no oscillation\n", bodyIndex, field)
	}

	cfg, err := storage.New(dataDir).LoadConfig(runID)
	if err != nil {
		return err
	}
	cfg.Frames = meta.Frames
	runs, err := experiment.Nudged(context.Background(), cfg, []float64{0, nudge})
	if err != nil {
		return err
	}
	sep := analysis.Separation(runs[0], runs[1])
	fmt.Printf("lyapunov estimate (nudge %g): %.4f per frame\n", nudge, analysis.LyapunovExponent(sep))
	if len(sep) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(sep, asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption("separation")))
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path, err := analysis.Path(frames, bodyIndex)
	if err != nil {
		return err
	}
	fmt.Printf("body %d path, %d frames\n", bodyIndex, len(path))
	fmt.Print(analysis.PathToASCII(path, dynamo.Bounds{Width: meta.Width, Height: meta.Height}, 80, 24))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func snapshot(cmd *cobra.Command, args []string) error {
	var (
		bounds  dynamo.Bounds
		bodies  []dynamo.Body
		painter dynamo.Painter = palette.Default()
		history [][]dynamo.Body
	)
	if len(args) == 0 {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if bodies, err = experiment.Layout(cfg, stderrLogger()); err != nil {
			return err
		}
		if painter, err = cfg.Painter(); err != nil {
			return err
		}
		bounds = cfg.Bounds()
	} else {
		meta, frames, err := loadRun(args[0])
		if err != nil {
			return err
		}
		i := frameIndex
		if i < 0 || i >= len(frames) {
			i = len(frames) - 1
		}
		bounds = dynamo.Bounds{Width: meta.Width, Height: meta.Height}
		bodies, history = frames[i], frames[:i+1]
	}

	var path []analysis.Point
	if trail && len(history) > 0 {
		var err error
		if path, err = analysis.Path(history, bodyIndex); err != nil {
			return err
		}
	}
	svg := export.Snapshot(bounds, bodies, painter, path)

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Println("benchmarking frame throughput")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tFRAMES\tTIME\tFRAMES/SEC")

	for _, n := range []int{2, 15, 50} {
		cfg := *base
		cfg.Bodies = config.BodiesConfig{Count: n, Radius: 50, Gap: 10}
		cfg.Frames = 5000
		exp, err := experiment.New(&cfg, dynamo.NopSurface{}, nil)
		if err != nil {
			return err
		}
		start := time.Now()
		if _, err := exp.Run(context.Background()); err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, cfg.Frames, elapsed.Round(time.Microsecond), float64(cfg.Frames)/elapsed.Seconds())
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario %s: %s\n", sc.Name, sc.Description)
	results, err := automation.RunScenario(context.Background(), sc, stderrLogger())
	for i, res := range results {
		step := sc.Steps[i]
		fmt.Printf("  step %d: %d frames, contacts %.0f, energy %.4f\n", i+1, len(res.Frames), res.Metrics["contacts"], res.Metrics["kinetic_energy"])
		if step.SaveAs == "" {
			continue
		}
		cfg, cerr := step.Config()
		if cerr != nil {
			return cerr
		}
		runID, serr := st.Save(storage.NewMetadata(step.SaveAs, cfg, res.Frames, res.Metrics), cfg, res.Frames)
		if serr != nil {
			return serr
		}
		fmt.Printf("          saved as %s\n", runID)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tBODIES\tCONTACTS\tWALL HITS\tENERGY\tDRIFT\n", strings.ToUpper(sweepParam))
	contacts := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%d\t%.0f\t%.0f\t%.4f\t%.2e\n", r.ParamValue, r.Bodies, r.Contacts, r.WallHits, r.Energy, r.Drift)
		contacts = append(contacts, r.Contacts)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(contacts) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(contacts, asciigraph.Height(6), asciigraph.Caption("contacts per "+sweepParam+" step")))
	}
	return nil
}
