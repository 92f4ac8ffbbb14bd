package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
)

var (
	dataDir string
	verbose bool

	configFile    string
	preset        string
	frames        int
	gridWidth     int
	gridHeight    int
	spacing       float64
	pin           string
	tear          float64
	accuracy      int
	elasticity    float64
	damping       float64
	dt            float64
	gravity       float64
	validateEvery int

	instances int
	parallel  int

	metricName    string
	analyzeMetric string
	projection    string
	theme         string
	plotWidth     int
	plotHeight    int
	outFile       string
	side          bool
	benchFrames   int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	noSave     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "verlet cloth simulation with pointer grab and cut",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&validateEvery, "validate-every", 0, "check topology every n frames (0 = off)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive view: drag to grab, M to switch to cut",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independent instances concurrently",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVarP(&instances, "instances", "n", 4, "number of instances")
	ensembleCmd.Flags().IntVar(&parallel, "parallel", 0, "max concurrent instances (0 = all)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot metric series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "plot only this metric")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and settling analysis of a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeMetric, "metric", "sag", "metric to analyse")

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "draw the final particle positions of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&projection, "projection", "top", "top, side or orbit")
	showCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "colour theme")
	showCmd.Flags().IntVar(&plotWidth, "width", 80, "canvas width in cells")
	showCmd.Flags().IntVar(&plotHeight, "height", 30, "canvas height in cells")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export final positions (or one metric with --metric) as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().BoolVar(&side, "side", false, "plot x against z")
	exportSVGCmd.Flags().StringVar(&metricName, "metric", "", "plot this metric series instead")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a setting across a range of values",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "tear", fmt.Sprintf("setting to sweep %v", config.Tunables))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 10, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 100, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().IntVar(&parallel, "parallel", 0, "max concurrent instances (0 = all)")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the solver over grid sizes and accuracies",
		Args:  cobra.NoArgs,
		RunE:  benchSolver,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 100, "frames per case")

	rootCmd.AddCommand(runCmd, liveCmd, ensembleCmd, listCmd, plotCmd, analyzeCmd, showCmd, exportCmd, exportJSONCmd, exportSVGCmd,
		scenarioCmd, sweepCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	f.IntVar(&gridWidth, "width", config.DefaultWidth, "particles per row")
	f.IntVar(&gridHeight, "height", config.DefaultHeight, "rows")
	f.Float64Var(&spacing, "spacing", config.DefaultSpacing, "rest spacing between neighbours")
	f.StringVar(&pin, "pin", cloth.PinTopBottom.String(), "pinned rows: top-bottom, top or none")
	f.Float64Var(&tear, "tear", cloth.DefaultTearDistance, "tear distance")
	f.IntVar(&accuracy, "accuracy", cloth.DefaultAccuracy, "relaxation passes per frame")
	f.Float64Var(&elasticity, "elasticity", cloth.DefaultElasticity, "constraint correction factor")
	f.Float64Var(&damping, "damping", cloth.DefaultDamping, "velocity damping")
	f.Float64Var(&dt, "dt", cloth.DefaultDt, "timestep")
	f.Float64Var(&gravity, "gravity", cloth.DefaultGravity[2], "gravity along z")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("width") {
		cfg.Grid.Width = gridWidth
	}
	if flags.Changed("height") {
		cfg.Grid.Height = gridHeight
	}
	if flags.Changed("spacing") {
		cfg.Grid.DX, cfg.Grid.DY = spacing, spacing
	}
	if flags.Changed("pin") {
		cfg.Grid.Pin = pin
	}
	if flags.Changed("tear") {
		cfg.Grid.TearDistance = tear
	}
	if flags.Changed("accuracy") {
		cfg.Physics.Accuracy = accuracy
	}
	if flags.Changed("elasticity") {
		cfg.Physics.Elasticity = elasticity
	}
	if flags.Changed("damping") {
		cfg.Physics.Damping = damping
	}
	if flags.Changed("dt") {
		cfg.Physics.Dt = dt
	}
	if flags.Changed("gravity") {
		cfg.Physics.GravityZ = gravity
	}
	if flags.Changed("instances") {
		cfg.Instances = instances
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	s, err := sim.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Defaults(cfg.Physics.Dt) {
		s.AddMetric(m)
	}
	return s, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%dx%d, %d frames)...\n", cfg.Name, cfg.Grid.Width, cfg.Grid.Height, cfg.Frames)
	result, err := s.Run(ctx, sim.Config{Frames: cfg.Frames, ValidateEvery: validateEvery})
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted after %d frames\n", result.Frames)
	}

	runID, err := st.Save(cfg, 0, result)
	if err != nil {
		return err
	}

	printResult(runID, result)
	for _, e := range result.Errors {
		fmt.Printf("  error: %v\n", e)
	}
	return nil
}

func printResult(runID string, result *sim.Result) {
	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("live particles: %d\n", len(result.Final))
	t := result.Totals
	fmt.Printf("torn: %d  cut: %d  pruned: %d  degenerate: %d  anomalies: %d\n",
		t.Torn, t.Cut, t.Pruned, t.Degenerate, t.Anomalies)

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg.Name, func() (*sim.Simulator, error) { return sim.FromConfig(cfg) })
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	n := cfg.Instances
	if !cmd.Flags().Changed("instances") && n <= 1 {
		n = instances
	}
	if n <= 0 {
		return fmt.Errorf("instances must be positive, got %d", n)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := sim.NewEnsemble(func(int) (*sim.Simulator, error) { return newSimulator(cfg) }, n)
	ens.SetParallelism(parallel)
	ens.SetLogger(slog.Default())

	fmt.Printf("running %d instances of %s...\n", n, cfg.Name)
	start := time.Now()
	results, err := ens.Run(ctx, sim.Config{Frames: cfg.Frames})
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INSTANCE\tRUN\tFRAMES\tLIVE\tTORN\tCUT\tTIME")
	for i, res := range results {
		if res == nil {
			fmt.Fprintf(w, "%d\t-\t-\t-\t-\t-\t-\n", i+1)
			continue
		}
		runID, serr := st.Save(cfg, i+1, res)
		if serr != nil {
			return serr
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%v\n",
			i+1, runID, res.Frames, len(res.Final), res.Totals.Torn, res.Totals.Cut, res.Elapsed.Round(time.Millisecond))
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	fmt.Printf("\ntotal: %v\n", elapsed)
	return err
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tGRID\tFRAMES\tLIVE\tTORN\tCUT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.Live,
			run.Totals.Torn,
			run.Totals.Cut,
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

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	names := meta.Series
	if metricName != "" {
		if _, ok := series[metricName]; !ok {
			return fmt.Errorf("unknown metric %q (available: %v)", metricName, meta.Series)
		}
		names = []string{metricName}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", meta.Frames)

	for _, name := range names {
		data := series[name]
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	data, ok := series[analyzeMetric]
	if !ok || len(data) < 4 {
		return fmt.Errorf("no %q data in run %s", analyzeMetric, runID)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("metric: %s\n\n", analyzeMetric)

	ps := analysis.PowerSpectrum(data)
	plotData := ps
	if len(ps) > 8 {
		plotData = ps[:len(ps)/2]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+analyzeMetric+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, _ := analysis.Dominant(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	settle := analysis.SettleFrame(data, 0.02)
	fmt.Printf("settled (2%%) from frame %d (%.3f s)\n", settle, float64(settle)*meta.Dt)
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	proj, err := viz.ParseProjection(projection)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	rows, err := st.LoadSnapshot(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("run %s has no live particles", runID)
	}

	styles := viz.NewStyles(viz.GetTheme(theme))
	all := make([]cloth.Sample, len(rows))
	byGroup := make(map[string][]cloth.Sample)
	pinned := make([]cloth.Sample, 0)
	for i, r := range rows {
		all[i] = r.Sample
		byGroup[r.Group] = append(byGroup[r.Group], r.Sample)
		if r.Pinned {
			pinned = append(pinned, r.Sample)
		}
	}

	layers := []viz.Layer{{Name: "cloth", Samples: all, Style: styles.Cloth}}
	if ring, ok := byGroup["ring"]; ok {
		layers = append(layers, viz.Layer{Name: "ring", Samples: ring, Style: styles.Ring})
	}
	layers = append(layers, viz.Layer{Name: "pinned", Samples: pinned, Style: styles.Pinned})

	v := viz.Fit(proj, viz.NewCamera(), all)
	fmt.Printf("run: %s (%d particles, %s view)\n\n", runID, len(rows), proj)
	fmt.Println(viz.Plot(layers, v, plotWidth, plotHeight))

	fmt.Println()
	for _, l := range layers {
		fmt.Printf("%s %s (%d)  ", l.Style.Render("⣿"), l.Name, len(l.Samples))
	}
	fmt.Println()
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.ExportJSONStdout(data)
	}
	if err := storage.ExportJSON(outFile, data); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if metricName != "" {
		series, err := st.LoadSeries(runID)
		if err != nil {
			return err
		}
		values, ok := series[metricName]
		if !ok {
			return fmt.Errorf("unknown metric %q", metricName)
		}
		if err := export.SeriesSVG(f, values, 800, 300, string(viz.Themes[0].Success)); err != nil {
			return err
		}
		fmt.Printf("exported %s of %s to %s\n", metricName, runID, path)
		return nil
	}

	rows, err := st.LoadSnapshot(runID)
	if err != nil {
		return err
	}

	th := viz.Themes[0]
	normal := export.Series{Name: "cloth", Color: string(th.Secondary)}
	ring := export.Series{Name: "ring", Color: string(th.Primary)}
	pinned := export.Series{Name: "pinned", Color: string(th.Accent)}
	for _, r := range rows {
		switch {
		case r.Pinned:
			pinned.Samples = append(pinned.Samples, r.Sample)
		case r.Group == "ring":
			ring.Samples = append(ring.Samples, r.Sample)
		default:
			normal.Samples = append(normal.Samples, r.Sample)
		}
	}

	opts := export.DefaultOptions()
	opts.Side = side
	if err := export.SnapshotSVG(f, []export.Series{normal, ring, pinned}, opts); err != nil {
		return err
	}
	fmt.Printf("exported %d particles of %s to %s\n", len(rows), runID, path)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	results, err := automation.RunScenario(ctx, sc, st, slog.Default())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN\tFRAMES\tLIVE\tTORN\tCUT\tTIME")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%v\n", r.Step, runID, r.Result.Frames, len(r.Result.Final),
			r.Result.Totals.Torn, r.Result.Totals.Cut, r.Result.Elapsed.Round(time.Millisecond))
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s from %g to %g (%d values, %d frames each)\n\n", sweepParam, sweepMin, sweepMax, sweepSteps, cfg.Frames)
	results, err := automation.RunSweep(ctx, &automation.Sweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		Steps:    sweepSteps,
		Parallel: parallel,
	}, slog.Default())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFRAMES\tLIVE\tTORN\tCUT\tPRUNED\tMAX_STRETCH\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%d\t%d\t%d\t%.3f\n", r.Value, r.Frames, r.Live, r.Torn, r.Cut, r.Pruned, r.MaxStretch)
	}
	return w.Flush()
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("presets:")
		for _, p := range config.ListPresets() {
			fmt.Printf("  %s\n", p)
		}
		return nil
	}

	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func benchSolver(cmd *cobra.Command, args []string) error {
	sizes := []int{20, 50, 100}
	accuracies := []int{1, 5, 10}

	fmt.Printf("benchmarking solver (%d frames per case)\n\n", benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tACCURACY\tLINKS\tTIME\tFRAMES/SEC")

	for _, n := range sizes {
		for _, acc := range accuracies {
			cfg := config.DefaultConfig()
			cfg.Grid.Width, cfg.Grid.Height = n, n
			cfg.Grid.DX, cfg.Grid.DY = 5, 5
			cfg.Physics.Accuracy = acc

			s, err := sim.FromConfig(cfg)
			if err != nil {
				return err
			}
			links := s.Cloth().NumConstraints()

			result, err := s.Run(context.Background(), sim.Config{Frames: benchFrames})
			if err != nil {
				return err
			}

			fps := float64(result.Frames) / result.Elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n", n, n, acc, links, result.Elapsed.Round(time.Microsecond), fps)
		}
	}

	return w.Flush()
}
