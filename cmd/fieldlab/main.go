package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fieldlab/internal/analysis"
	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/export"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/gui"
	"github.com/san-kum/fieldlab/internal/scene"
	"github.com/san-kum/fieldlab/internal/storage"
	"github.com/san-kum/fieldlab/internal/trace"
	"github.com/san-kum/fieldlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	stepper    string
	seed       int64
	frameRate  int
	svgOut     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldlab",
		Short: "interactive electrostatic field visualizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sc, err := buildScene(cfg)
			if err != nil {
				return err
			}
			return viz.Run(sc, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&stepper, "stepper", "euler", "line stepper (euler|midpoint|rk4)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	traceCmd := &cobra.Command{
		Use:   "trace [experiment]",
		Short: "trace field lines headless and print a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceLines,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample [experiment]",
		Short: "sample the field grid and store a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sampleRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot field profiles from a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "field statistics for a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export full run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets and experiments",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("experiments:")
			for _, k := range scene.Experiments() {
				fmt.Printf("  %-12s %s\n", k, k.Description())
			}
			return nil
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui [experiment]",
		Short: "windowed visualizer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			kind, err := experimentArg(args, cfg)
			if err != nil {
				return err
			}
			sc, err := buildScene(cfg)
			if err != nil {
				return err
			}
			gui.Run(sc, cfg, kind)
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [experiment]",
		Short: "terminal visualizer, skipping the menu",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			kind, err := experimentArg(args, cfg)
			if err != nil {
				return err
			}
			sc, err := buildScene(cfg)
			if err != nil {
				return err
			}
			return viz.RunLive(sc, cfg, kind)
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [experiment]",
		Short: "evaluator and tracer throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchSteppers,
	}

	rootCmd.AddCommand(traceCmd, sampleCmd, plotCmd, analyzeCmd, listCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd,
		guiCmd, tuiCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, config file and flag overrides, in that
// order of increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	if cmd.Flags().Changed("stepper") {
		cfg.Stepper = stepper
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("fps") {
		cfg.FrameRate = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildScene(cfg *config.Config) (*scene.Scene, error) {
	eval := field.NewEvaluator(cfg.Physics.Coulomb, cfg.Physics.Softening)
	step, err := trace.StepperByName(cfg.Stepper)
	if err != nil {
		return nil, err
	}
	tracer := trace.New(eval, cfg.Trace, step)
	return scene.New(eval, tracer, scene.Config{
		Bounds:           cfg.Bounds(),
		GridSpacing:      cfg.Canvas.GridSpacing,
		DefaultMagnitude: cfg.Physics.DefaultMagnitude,
		MaxCharges:       cfg.Physics.MaxCharges,
		Seed:             cfg.Seed,
	}), nil
}

func experimentArg(args []string, cfg *config.Config) (scene.ExperimentKind, error) {
	name := cfg.Experiment
	if len(args) > 0 {
		name = args[0]
	}
	return scene.ExperimentByName(name)
}

func traceLines(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kind, err := experimentArg(args, cfg)
	if err != nil {
		return err
	}
	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	sc.Apply(kind)
	elapsed := time.Since(start)

	stats := analysis.Summarize(sc.Charges(), sc.Vectors(), sc.Lines())
	fmt.Printf("experiment: %s (%s stepper)\n", kind, cfg.Stepper)
	fmt.Printf("traced %d lines from %d charges in %v\n", stats.LineCount, stats.ChargeCount, elapsed)
	fmt.Printf("mean line length: %.1f points\n", stats.MeanLineLen)
	fmt.Println("terminations:")
	for reason, n := range stats.Terminations {
		fmt.Printf("  %-14s %d\n", reason, n)
	}
	return nil
}

func sampleRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kind, err := experimentArg(args, cfg)
	if err != nil {
		return err
	}
	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("sampling %s field...\n", kind)
	start := time.Now()
	sc.Apply(kind)
	stats := analysis.Summarize(sc.Charges(), sc.Vectors(), sc.Lines())
	elapsed := time.Since(start)

	runID, err := st.Save(kind.String(), cfg.Stepper, cfg.Seed, sc.Bounds(),
		cfg.Canvas.GridSpacing, sc.Charges(), sc.Vectors(), statsMap(stats))
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(sc.Vectors()))
	fmt.Printf("lines: %d\n", stats.LineCount)
	return nil
}

func statsMap(s analysis.Stats) map[string]float64 {
	return map[string]float64{
		"charge_count":   float64(s.ChargeCount),
		"net_charge":     s.NetCharge,
		"dipole_x":       s.DipoleMoment.X,
		"dipole_y":       s.DipoleMoment.Y,
		"line_count":     float64(s.LineCount),
		"mean_line_len":  s.MeanLineLen,
		"max_field_mag":  s.MaxFieldMag,
		"mean_field_mag": s.MeanFieldMag,
	}
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	charges, err := st.LoadScene(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("experiment: %s\n", meta.Experiment)
	fmt.Printf("charges: %d\n\n", len(charges))

	eval := field.NewEvaluator(cfg.Physics.Coulomb, cfg.Physics.Softening)
	a := field.Vec2{X: 0, Y: meta.Height / 2}
	b := field.Vec2{X: meta.Width, Y: meta.Height / 2}
	mags, pots := analysis.Profile(eval, charges, a, b, 80)

	fmt.Println(asciigraph.Plot(mags,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("|E| along horizontal midline")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(pots,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("potential along horizontal midline")))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	charges, err := st.LoadScene(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	// retrace with the run's stepper so line stats match the stored scene
	eval := field.NewEvaluator(cfg.Physics.Coulomb, cfg.Physics.Softening)
	step, err := trace.StepperByName(meta.Stepper)
	if err != nil {
		return err
	}
	tracer := trace.New(eval, cfg.Trace, step)
	bounds := field.Bounds{Width: meta.Width, Height: meta.Height}
	lines := tracer.TraceAll(charges, bounds)

	stats := analysis.Summarize(charges, samples, lines)
	fmt.Printf("run: %s (%s)\n\n", meta.ID, meta.Experiment)
	fmt.Printf("charges:       %d (net %+.2f)\n", stats.ChargeCount, stats.NetCharge)
	fmt.Printf("dipole moment: (%.1f, %.1f)\n", stats.DipoleMoment.X, stats.DipoleMoment.Y)
	fmt.Printf("field lines:   %d (mean %.1f points)\n", stats.LineCount, stats.MeanLineLen)
	fmt.Printf("field |E|:     mean %.4f, max %.4f\n", stats.MeanFieldMag, stats.MaxFieldMag)
	fmt.Println("terminations:")
	for reason, n := range stats.Terminations {
		fmt.Printf("  %-14s %d\n", reason, n)
	}

	if hist := analysis.LineLengthHistogram(lines, 10); len(hist) > 0 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(hist,
			asciigraph.Height(6),
			asciigraph.Width(40),
			asciigraph.Caption("line length distribution")))
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
	fmt.Fprintln(w, "ID\tEXPERIMENT\tTIME\tSTEPPER\tGRID\tBOUNDS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%.0fx%.0f\n",
			run.ID,
			run.Experiment,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stepper,
			run.GridSpacing,
			run.Width, run.Height,
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSVStdout(samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	charges, err := st.LoadScene(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, charges, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	charges, err := st.LoadScene(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	eval := field.NewEvaluator(cfg.Physics.Coulomb, cfg.Physics.Softening)
	step, err := trace.StepperByName(meta.Stepper)
	if err != nil {
		return err
	}
	tracer := trace.New(eval, cfg.Trace, step)
	bounds := field.Bounds{Width: meta.Width, Height: meta.Height}
	lines := tracer.TraceAll(charges, bounds)

	svg := export.SceneToSVG(bounds, charges, samples, lines)
	out := svgOut
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d lines, %d charges)\n", out, len(lines), len(charges))
	return nil
}

func benchSteppers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kind, err := experimentArg(args, cfg)
	if err != nil {
		return err
	}

	eval := field.NewEvaluator(cfg.Physics.Coulomb, cfg.Physics.Softening)
	bounds := cfg.Bounds()

	// one throwaway scene just to realize the experiment's charge layout
	base, err := buildScene(cfg)
	if err != nil {
		return err
	}
	base.Apply(kind)
	charges := base.Charges()

	gridStart := time.Now()
	samples, err := eval.SampleGrid(context.Background(), bounds, cfg.Canvas.GridSpacing, charges)
	if err != nil {
		return err
	}
	gridElapsed := time.Since(gridStart)
	fmt.Printf("experiment: %s, %d charges\n", kind, len(charges))
	fmt.Printf("grid: %d samples in %v\n\n", len(samples), gridElapsed)

	const iters = 20
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tLINES\tPOINTS\tTIME/TRACE")
	for _, name := range []string{"euler", "midpoint", "rk4"} {
		step, err := trace.StepperByName(name)
		if err != nil {
			return err
		}
		tracer := trace.New(eval, cfg.Trace, step)

		var lines int
		var points int
		start := time.Now()
		for i := 0; i < iters; i++ {
			traced := tracer.TraceAll(charges, bounds)
			lines = len(traced)
			points = 0
			for _, l := range traced {
				points += len(l.Points)
			}
		}
		perOp := time.Since(start) / iters
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\n", name, lines, points, perOp)
	}
	return w.Flush()
}
