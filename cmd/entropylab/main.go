package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/san-kum/entropylab/internal/analysis"
	"github.com/san-kum/entropylab/internal/automation"
	"github.com/san-kum/entropylab/internal/config"
	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/experiment"
	"github.com/san-kum/entropylab/internal/export"
	"github.com/san-kum/entropylab/internal/gui"
	"github.com/san-kum/entropylab/internal/metrics"
	"github.com/san-kum/entropylab/internal/optim"
	"github.com/san-kum/entropylab/internal/sim"
	"github.com/san-kum/entropylab/internal/storage"
	"github.com/san-kum/entropylab/internal/store"
	"github.com/san-kum/entropylab/internal/timeline"
	"github.com/san-kum/entropylab/internal/tui"
	"github.com/san-kum/entropylab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	debug   bool

	// simulation parameters
	temperature float64
	noise       float64
	particles   int
	grid        int
	width       float64
	height      float64
	frames      int
	seed        int64
	fps         int
	theme       string

	configFile string
	preset     string

	watch       bool
	label       string
	metricNames []string
	withAudio   bool
	output      string
	svgKind     string

	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	trials     int

	profileMode string

	searchMetric string
	searchTarget float64
	searchTemps  []float64
	searchNoises []float64
	searchCounts []float64
)

const (
	snapshotCols = 120
	snapshotRows = 40
)

// main registers every command and runs the live view when no subcommand is
// given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "entropylab",
		Short: "particle gas entropy lab",
		Long: "Particles bounce in a box; their spread over a grid is measured as normalized\n" +
			"Shannon entropy while temperature, noise and particle count are tuned live.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f := setupLogging(debug); f != nil {
				cobra.OnFinalize(func() { f.Close() })
			}
		},
		RunE: runLive,
	}
	addSimFlags(rootCmd)

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".entropylab", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to logs/entropylab.log")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify entropy and temperature")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw throttled frames to the terminal")
	runCmd.Flags().StringVar(&label, "label", "", "run label")
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to collect (default all)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot entropy and temperature of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run-id]",
		Short: "entropy statistics and power spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run-id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run-id]",
		Short: "export a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [run-id]",
		Short: "render a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <run-id>.svg)")
	svgCmd.Flags().StringVar(&svgKind, "kind", "ts", "chart kind: ts or entropy")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run headless and write the final particle frame as SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshotFrame,
	}
	addSimFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default snapshot.svg)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "entropy across a temperature range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 100, "first temperature (K)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1500, "last temperature (K)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of temperatures")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "play a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&watch, "watch", false, "draw throttled frames to the terminal")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "repeat one setting with different seeds",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addSimFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search for settings that hit a metric target",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}
	addSimFlags(searchCmd)
	searchCmd.Flags().StringVar(&searchMetric, "metric", "mean_entropy", "metric to optimize")
	searchCmd.Flags().Float64Var(&searchTarget, "target", 0.8, "target metric value")
	searchCmd.Flags().Float64SliceVar(&searchTemps, "temps", []float64{150, 300, 700, 1500}, "temperatures to try")
	searchCmd.Flags().Float64SliceVar(&searchNoises, "noises", nil, "noise levels to try")
	searchCmd.Flags().Float64SliceVar(&searchCounts, "counts", nil, "particle counts to try")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "list available run metrics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListMetrics() {
				fmt.Println(name)
			}
		},
	}

	timelineCmd := &cobra.Command{
		Use:   "timeline [year]",
		Short: "history of thermodynamics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showTimeline,
	}
	timelineCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file with a timeline path")

	initCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frame throughput",
		Args:  cobra.NoArgs,
		RunE:  benchFrames,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().StringVar(&profileMode, "profile", "", "write a cpu or mem profile to the data directory")

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, listCmd, plotCmd, analyzeCmd,
		exportJSONCmd, exportCSVCmd, svgCmd, snapshotCmd, sweepCmd, scenarioCmd, monteCarloCmd,
		searchCmd, presetsCmd, metricsCmd, timelineCmd, initCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&temperature, "temp", config.DefaultTemperature, "temperature (K)")
	f.Float64Var(&noise, "noise", config.DefaultNoise, "random kick strength")
	f.IntVarP(&particles, "particles", "n", config.DefaultParticles, "particle count")
	f.IntVar(&grid, "grid", config.DefaultGrid, "histogram columns")
	f.Float64Var(&width, "width", dynamo.DefaultWidth, "region width")
	f.Float64Var(&height, "height", dynamo.DefaultHeight, "region height")
	f.IntVarP(&frames, "frames", "f", config.DefaultFrames, "frames to run")
	f.Int64Var(&seed, "seed", 0, "random seed (0 = time)")
	f.IntVar(&fps, "fps", config.DefaultFPS, "frames per second for live views")
	f.StringVar(&theme, "theme", config.DefaultTheme, "colour theme: "+strings.Join(viz.ThemeNames(), ", "))
	f.StringVarP(&configFile, "config", "c", "", "config file")
	f.StringVarP(&preset, "preset", "p", "", "parameter preset")
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if err := cfg.Apply(preset); err != nil {
			return nil, err
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
	if flags.Changed("temp") {
		cfg.Params.Temperature = temperature
	}
	if flags.Changed("noise") {
		cfg.Params.Noise = noise
	}
	if flags.Changed("particles") {
		cfg.Params.Count = particles
	}
	if flags.Changed("grid") {
		cfg.Grid = grid
	}
	if flags.Changed("width") {
		cfg.Bounds.Width = width
	}
	if flags.Changed("height") {
		cfg.Bounds.Height = height
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Bounds:   cfg.Bounds,
		GridCols: cfg.Grid,
		Seed:     cfg.Seed,
		Throttle: cfg.Throttle(),
	}
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	s, err := sim.New(simConfig(cfg))
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	return s, nil
}

// loadEvents returns nil for the built-in timeline.
func loadEvents(cfg *config.Config) ([]timeline.Event, error) {
	if cfg.Timeline == "" {
		return nil, nil
	}
	return timeline.Load(cfg.Timeline)
}

// pacedClock blocks each reading until the next frame slot so headless runs
// can be watched at a steady rate.
func pacedClock(fps int) sim.Clock {
	interval := time.Second / time.Duration(max(fps, 1))
	next := time.Now()
	return func() time.Time {
		next = next.Add(interval)
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		}
		return time.Now()
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	events, err := loadEvents(cfg)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(s, cfg.Params, viz.Options{FPS: cfg.FPS, Theme: cfg.Theme, Events: events})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("live view: %w", err)
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	events, err := loadEvents(cfg)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	gui.Run(s, cfg.Params, gui.Options{Audio: withAudio, Events: events})
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive", dynamo.ErrParameterBounds)
	}

	registry := experiment.NewRegistry()
	ms, err := registry.Metrics(metricNames)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Label:    label,
		Bounds:   cfg.Bounds,
		Grid:     cfg.Grid,
		Seed:     cfg.Seed,
		Throttle: cfg.Throttle(),
		Params:   cfg.Params,
		Frames:   cfg.Frames,
	})

	var renderer *tui.LiveRenderer
	var presenters []dynamo.Presenter
	if watch {
		renderer = tui.NewLiveRenderer(label)
		presenters = append(presenters, renderer)
	}
	if err := exp.Setup(ms, presenters); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	var result *dynamo.Result
	if renderer != nil {
		renderer.Start()
		result, err = exp.GetSimulator().Run(ctx, cfg.Params, cfg.Frames, pacedClock(cfg.FPS))
		renderer.Stop()
	} else {
		result, err = exp.Run(ctx)
	}
	if result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted after %d frames\n", result.FramesRun)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Seed:   cfg.Seed,
		Bounds: cfg.Bounds,
		Grid:   cfg.Grid,
		Params: cfg.Params,
		Label:  label,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("run saved: %s\n", runID)
	fmt.Printf("frames: %d (presented %d) in %s\n", result.FramesRun, result.Presented, time.Since(start).Round(time.Millisecond))
	printSnapshot(result.Final)
	printMetrics(result.Metrics)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	return nil
}

func printSnapshot(s dynamo.Snapshot) {
	fmt.Printf("T: %.0f K  dT: %.0f K  S: %.3f  N: %d", s.Sample.Temperature, s.DeltaT, s.Sample.Entropy, s.Sample.Count)
	if metrics.HasEfficiency(s.Sample.Temperature) {
		fmt.Printf("  eff: %.1f%%", s.Efficiency)
	}
	fmt.Println()
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.4f\n", name, m[name])
	}
	w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tT\tNOISE\tN\tGRID\tFRAMES\tLABEL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.2f\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Temperature,
			run.Params.Noise,
			run.Params.Count,
			run.Grid,
			run.Frames,
			run.Label,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s: %w", runID, dynamo.ErrEmptyRun)
	}
	return meta, samples, nil
}

func series(samples []dynamo.Sample, field func(dynamo.Sample) float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = field(s)
	}
	return out
}

func entropyOf(s dynamo.Sample) float64     { return s.Entropy }
func temperatureOf(s dynamo.Sample) float64 { return s.Temperature }

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	fmt.Println(asciigraph.Plot(series(samples, entropyOf),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("normalized entropy vs frame"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(series(samples, temperatureOf),
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("temperature (K) vs frame"),
	))
	fmt.Println()
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	data := series(samples, entropyOf)
	sum := analysis.Summarize(data)

	fmt.Printf("entropy analysis: %s\n\n", meta.ID)
	fmt.Printf("samples: %d\n", sum.N)
	fmt.Printf("min: %.4f  max: %.4f\n", sum.Min, sum.Max)
	fmt.Printf("mean: %.4f  std: %.4f\n\n", sum.Mean, sum.StdDev)

	ps := analysis.PowerSpectrum(data)
	if len(ps) < 4 {
		fmt.Println("too few samples for a spectrum")
		return nil
	}
	fmt.Println(asciigraph.Plot(ps[:len(ps)/2],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (entropy)"),
	))
	fmt.Println()

	if period := analysis.DominantPeriod(data); period > 0 {
		fmt.Printf("dominant period: %.1f frames\n", period)
	} else {
		fmt.Println("no dominant period")
	}
	return nil
}

func exportData(runID string) (store.ExportData, error) {
	meta, samples, err := loadRun(runID)
	if err != nil {
		return store.ExportData{}, err
	}
	return store.NewExportData(meta.ID, meta.Bounds, meta.Grid, meta.Seed, meta.Params, samples, meta.Metrics), nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	data, err := exportData(args[0])
	if err != nil {
		return err
	}
	if output == "" {
		return store.ExportJSONStdout(data)
	}
	if err := store.ExportJSON(output, data); err != nil {
		return err
	}
	fmt.Printf("exported %s\n", output)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	data, err := exportData(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return store.WriteCSV(w, data)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	switch svgKind {
	case "ts":
		svg = export.TSChartToSVG(samples, 800, 500)
	case "entropy":
		svg = export.SeriesToSVG(series(samples, entropyOf), 800, 300, "#00bfff")
	default:
		return fmt.Errorf("unknown svg kind %q (ts, entropy)", svgKind)
	}

	path := output
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func snapshotFrame(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	result, err := s.Run(context.Background(), cfg.Params, max(cfg.Frames, 1), nil)
	if err != nil {
		return err
	}

	snap := result.Final
	canvas := viz.NewCanvas(snapshotCols, snapshotRows)
	viz.DrawParticles(canvas, snap.Bounds, snap.Particles)
	path := output
	if path == "" {
		path = "snapshot.svg"
	}
	if err := os.WriteFile(path, []byte(export.CanvasToSVG(canvas, 4)), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s (frame %d)\n", path, snap.Frame)
	printSnapshot(snap)
	fmt.Printf("mean speed: %.3f  kinetic energy: %.1f\n", snap.Particles.MeanSpeed(), s.Gas().KineticEnergy(snap.Particles))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	points, err := automation.RunSweep(ctx, &automation.TemperatureSweep{
		From:   sweepFrom,
		To:     sweepTo,
		Steps:  sweepSteps,
		Frames: cfg.Frames,
		Noise:  cfg.Params.Noise,
		Count:  cfg.Params.Count,
		Bounds: cfg.Bounds,
		Grid:   cfg.Grid,
		Seed:   cfg.Seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tMEAN S\tFINAL S\tRANGE\tEFF %")
	means := make([]float64, len(points))
	for i, p := range points {
		fmt.Fprintf(w, "%.0f\t%.4f\t%.4f\t%.4f\t%.1f\n", p.Temperature, p.MeanEntropy, p.FinalEntropy, p.EntropyRange, p.Efficiency)
		means[i] = p.MeanEntropy
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(means) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(means,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("mean entropy, %.0f K to %.0f K", sweepFrom, sweepTo)),
		))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var presenters []dynamo.Presenter
	var renderer *tui.LiveRenderer
	if watch {
		renderer = tui.NewLiveRenderer(sc.Name)
		presenters = append(presenters, renderer)
		renderer.Start()
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := automation.RunScenario(ctx, sc, presenters...)
	if renderer != nil {
		renderer.Stop()
	}
	if res == nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tT\tNOISE\tN\tFRAMES\tMEAN S\tFINAL S")
	for _, step := range res.Steps {
		fmt.Fprintf(w, "%s\t%.0f\t%.2f\t%d\t%d\t%.4f\t%.4f\n",
			step.Label, step.Params.Temperature, step.Params.Noise, step.Params.Count,
			step.Frames, step.MeanEntropy, step.FinalEntropy)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	last := sc.Steps[len(sc.Steps)-1]
	runID, saveErr := st.Save(storage.RunMetadata{
		Seed:   sc.Seed,
		Bounds: sc.Bounds,
		Grid:   sc.Grid,
		Params: last.Params(),
		Label:  sc.Name,
	}, res.Result)
	if saveErr != nil {
		return saveErr
	}
	fmt.Printf("\nrun saved: %s\n", runID)
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Params:    cfg.Params,
		Frames:    cfg.Frames,
		NumTrials: trials,
		Seed:      cfg.Seed,
		Bounds:    cfg.Bounds,
		Grid:      cfg.Grid,
	})
	if err != nil {
		return err
	}

	stable, unstable, mean, std := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d (stable %d, unstable %d)\n", len(results), stable, unstable)
	fmt.Printf("final entropy: %.4f +/- %.4f\n", mean, std)

	finals := make([]float64, len(results))
	for i, r := range results {
		finals[i] = r.FinalEntropy
	}
	if len(finals) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(finals,
			asciigraph.Height(6),
			asciigraph.Width(60),
			asciigraph.Caption("final entropy per trial"),
		))
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	if _, err := registry.GetMetric(searchMetric); err != nil {
		return err
	}

	var names []string
	var ranges [][]float64
	for _, axis := range []struct {
		name   string
		values []float64
	}{
		{"temperature", searchTemps},
		{"noise", searchNoises},
		{"count", searchCounts},
	} {
		if len(axis.values) > 0 {
			names = append(names, axis.name)
			ranges = append(ranges, axis.values)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("nothing to search: give --temps, --noises or --counts")
	}

	build := optim.Builder(experiment.Config{
		Bounds: cfg.Bounds,
		Grid:   cfg.Grid,
		Seed:   cfg.Seed,
		Params: cfg.Params,
		Frames: cfg.Frames,
	}, func() []dynamo.Metric {
		ms, _ := registry.Metrics([]string{searchMetric})
		return ms
	})

	ctx, cancel := signalContext()
	defer cancel()

	best, score, err := optim.NewGridSearch(names, ranges).Search(ctx, build, optim.TargetObjective(searchMetric, searchTarget))
	if err != nil {
		return err
	}

	fmt.Printf("best settings for %s = %.3f:\n", searchMetric, searchTarget)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%g\n", name, best[name])
	}
	fmt.Fprintf(w, "  distance\t%.4f\n", score)
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tT\tNOISE\tN")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0f\t%.2f\t%d\n", name, p.Temperature, p.Noise, p.Count)
	}
	return w.Flush()
}

func showTimeline(cmd *cobra.Command, args []string) error {
	events := timeline.Events()
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		loaded, err := loadEvents(cfg)
		if err != nil {
			return err
		}
		if loaded != nil {
			events = loaded
		}
	}

	if len(args) == 0 {
		for _, ev := range events {
			fmt.Println(timeline.Heading(ev))
		}
		return nil
	}

	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[0])
	}
	ev, ok := timeline.Find(events, year)
	if !ok {
		return fmt.Errorf("no event in %d", year)
	}
	fmt.Println(timeline.Describe(ev))
	return nil
}

func benchFrames(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dataDir), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(dataDir), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q (cpu, mem)", profileMode)
	}

	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := s.Run(context.Background(), cfg.Params, cfg.Frames, nil)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "particles\t%d\n", cfg.Params.Count)
	fmt.Fprintf(w, "grid\t%dx%d\n", s.Grid().Cols, s.Grid().Rows)
	fmt.Fprintf(w, "frames\t%d\n", result.FramesRun)
	fmt.Fprintf(w, "elapsed\t%s\n", elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "per frame\t%s\n", (elapsed / time.Duration(max(result.FramesRun, 1))).Round(time.Nanosecond))
	fmt.Fprintf(w, "frames/s\t%.0f\n", float64(result.FramesRun)/elapsed.Seconds())
	return w.Flush()
}
