package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/splashsim/internal/analysis"
	"github.com/san-kum/splashsim/internal/automation"
	"github.com/san-kum/splashsim/internal/config"
	"github.com/san-kum/splashsim/internal/export"
	"github.com/san-kum/splashsim/internal/integrators"
	"github.com/san-kum/splashsim/internal/metrics"
	"github.com/san-kum/splashsim/internal/sim"
	"github.com/san-kum/splashsim/internal/storage"
	"github.com/san-kum/splashsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	altitude   float64
	velocity   float64
	duration   float64
	samples    int
	integrator string
	immersion  string
	frameRate  int
	liveDt     float64
	noSave     bool
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "splashsim",
		Short: "water-entry impact simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".splashsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a drop simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().Float64Var(&altitude, "altitude", config.DefaultAltitude, "initial altitude z0 (negative = above surface)")
	runCmd.Flags().Float64Var(&velocity, "velocity", 0.0, "initial downward velocity")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated horizon (s)")
	runCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "output grid samples")
	runCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, rk4, rk45)")
	runCmd.Flags().StringVar(&immersion, "immersion", "", "immersion mode (abrupt, progressive)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list object presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a drop live in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&altitude, "altitude", config.DefaultAltitude, "initial altitude z0")
	liveCmd.Flags().Float64Var(&velocity, "velocity", 0.0, "initial downward velocity")
	liveCmd.Flags().Float64Var(&liveDt, "dt", 0.001, "timestep for the live loop")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated horizon (s)")
	compareCmd.Flags().IntVar(&samples, "samples", 50_001, "output grid samples")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a stored run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "extract the post-impact bobbing oscillation of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [campaign.yaml]",
		Short: "run a scripted drop campaign",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep the release altitude and tabulate impact severity",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -1.0, "first release altitude")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", -10.0, "last release altitude")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of altitudes")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated horizon (s)")
	sweepCmd.Flags().IntVar(&samples, "samples", 50_001, "output grid samples")
	sweepCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, rk4, rk45)")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, analyzeCmd, batchCmd, sweepCmd, liveCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset name, config file and flag overrides, in
// that order of increasing precedence.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if f := cmd.Flags(); f != nil {
		if f.Changed("altitude") {
			cfg.Initial.Altitude = altitude
		}
		if f.Changed("velocity") {
			cfg.Initial.Velocity = velocity
		}
		if f.Changed("time") {
			cfg.Run.Duration = duration
		}
		if f.Changed("samples") {
			cfg.Run.Samples = samples
		}
		if f.Changed("integrator") {
			cfg.Run.Integrator = integrator
		}
		if f.Changed("immersion") {
			cfg.Immersion = immersion
		}
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	dyn, err := cfg.Build()
	if err != nil {
		return err
	}

	integ, err := integrators.ByName(cfg.Run.Integrator)
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%s, %s immersion)...\n", cfg.Object.Name, cfg.Object.Shape, cfg.Immersion)
	start := time.Now()

	result, err := sim.New(dyn, integ).Run(context.Background(), cfg.InitState(), cfg.SimConfig())
	if err != nil {
		return fmt.Errorf("integration failed: %w", err)
	}

	elapsed := time.Since(start)

	accel := metrics.Accelerations(dyn, result)
	impact, err := metrics.Extract(dyn, result)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(cfg.Object.Name, cfg.Object.Shape, cfg.Immersion, impact))
	fmt.Printf("completed in %v (%d solver steps, %d rejected)\n", elapsed, result.StepsTaken, result.Rejected)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Object:     cfg.Object.Name,
		Shape:      cfg.Object.Shape,
		Immersion:  cfg.Immersion,
		Duration:   cfg.Run.Duration,
		Integrator: cfg.Run.Integrator,
		Impact:     impact,
	}, result, accel)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSHAPE\tMASS\tRADIUS\tHEIGHT\tCD")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.2f\n",
			name,
			p.Object.Shape,
			p.Object.Mass,
			p.Object.Radius,
			p.Object.Height,
			p.Object.DragCoeff,
		)
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tOBJECT\tSHAPE\tTIME\tDURATION\tCONTACT\tMAX DEPTH")

	for _, run := range runs {
		contact := "-"
		if run.Impact.ContactFound {
			contact = fmt.Sprintf("%.3fs", run.Impact.ContactTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%s\t%.3fm\n",
			run.ID,
			run.Object,
			run.Shape,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			contact,
			run.Impact.MaxDepth,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	if len(traj.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nobject: %s (%s)\nsamples: %d\n\n", meta.ID, meta.Object, meta.Shape, len(traj.Times))
	fmt.Println(viz.RenderTrajectory(traj, meta.Impact))

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	if len(traj.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "z", "v", "a"}); err != nil {
		return err
	}

	for i := range traj.Times {
		row := []string{
			strconv.FormatFloat(traj.Times[i], 'f', 6, 64),
			strconv.FormatFloat(traj.Z[i], 'f', 6, 64),
			strconv.FormatFloat(traj.V[i], 'f', 6, 64),
			strconv.FormatFloat(traj.A[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, traj)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	dyn, err := cfg.Build()
	if err != nil {
		return err
	}

	m := viz.NewLive(dyn, integrators.NewRK4(), cfg.InitState(), liveDt, frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	cfg.Run.Duration = duration
	cfg.Run.Samples = samples

	dyn, err := cfg.Build()
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators for %s (T=%.1fs, %d samples)\n\n", cfg.Object.Name, duration, samples)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tCONTACT\tPEAK G\tMAX DEPTH\tSTEPS\tTIME")

	for _, name := range args[1:] {
		integ, err := integrators.ByName(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := sim.New(dyn, integ).Run(context.Background(), cfg.InitState(), cfg.SimConfig())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		impact, err := metrics.Extract(dyn, result)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		contact := "-"
		if impact.ContactFound {
			contact = fmt.Sprintf("%.4fs", impact.ContactTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.3fm\t%d\t%v\n",
			name, contact, impact.PeakAccelG, impact.MaxDepth, result.StepsTaken, elapsed)
	}

	return w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectorySVG(traj, meta.Impact)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	_, err = fmt.Print(svg)
	return err
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if !meta.Impact.ContactFound {
		return fmt.Errorf("run %s never reached the water; nothing to analyze", args[0])
	}

	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	bob, err := analysis.AnalyzeBobbing(traj, meta.Impact.ContactTime)
	if err != nil {
		return err
	}

	fmt.Printf("post-impact oscillation for %s (%s)\n\n", meta.Object, meta.ID)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "flotation depth\t%.3f m\n", bob.MeanDepth)
	fmt.Fprintf(w, "bobbing frequency\t%.3f Hz\n", bob.Frequency)
	fmt.Fprintf(w, "period\t%.3f s\n", bob.Period)
	fmt.Fprintf(w, "amplitude\t%.3f m\n", bob.Amplitude)
	fmt.Fprintf(w, "samples analysed\t%d\n", bob.Samples)
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	c, err := automation.LoadCampaign(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("campaign: %s (%d drops)\n", c.Name, len(c.Drops))
	if c.Description != "" {
		fmt.Println(c.Description)
	}
	fmt.Println()

	outcomes, runErr := automation.RunCampaign(context.Background(), c)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tOBJECT\tCONTACT\tPEAK G\tMAX DEPTH\tSTEPS\tTIME")
	for _, out := range outcomes {
		contact := "-"
		if out.Impact.ContactFound {
			contact = fmt.Sprintf("%.4fs", out.Impact.ContactTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.3fm\t%d\t%v\n",
			out.Preset, out.Object, contact, out.Impact.PeakAccelG, out.Impact.MaxDepth, out.Steps, out.Elapsed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	points, err := automation.RunAltitudeSweep(context.Background(), &automation.AltitudeSweep{
		Preset:     args[0],
		From:       sweepFrom,
		To:         sweepTo,
		Steps:      sweepSteps,
		Integrator: integrator,
		Duration:   duration,
		Samples:    samples,
	})
	if err != nil {
		return err
	}

	fmt.Printf("altitude sweep for %s (%d points)\n\n", args[0], len(points))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALTITUDE\tCONTACT\tPEAK G\tMAX DEPTH\tMAX VEL\t% TERMINAL")
	for _, p := range points {
		contact := "-"
		if p.Impact.ContactFound {
			contact = fmt.Sprintf("%.4fs", p.Impact.ContactTime)
		}
		fmt.Fprintf(w, "%.2fm\t%s\t%.2f\t%.3fm\t%.3fm/s\t%.1f%%\n",
			p.Altitude, contact, p.Impact.PeakAccelG, p.Impact.MaxDepth, p.Impact.MaxVelocity, p.Impact.PercentTerminal)
	}
	return w.Flush()
}
