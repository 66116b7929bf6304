package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cnwave/internal/analysis"
	"github.com/san-kum/cnwave/internal/config"
	"github.com/san-kum/cnwave/internal/export"
	"github.com/san-kum/cnwave/internal/grid"
	"github.com/san-kum/cnwave/internal/metrics"
	"github.com/san-kum/cnwave/internal/sim"
	"github.com/san-kum/cnwave/internal/storage"
	"github.com/san-kum/cnwave/internal/viz"
	"github.com/san-kum/cnwave/internal/wave"
)

var (
	dataDir string
	// Grid
	nx         int
	xmin, xmax float64
	// Time
	dt        float64
	finalTime float64
	// Pulse
	amp    float64
	xc     float64
	xwid   float64
	signum int
	// Solver
	tolerance float64
	maxSweeps int
	// Config file / preset
	configFile string
	preset     string
	// Live view
	frameRate int
	perFrame  int
	// Analysis / export targets
	probeIndex int
	svgOut     string
	waterfall  bool
	jsonOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cnwave",
		Short: "implicit 1-D wave equation solver",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cnwave", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run snapshots to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonOut, "out", "", "write to a file instead of stdout")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&perFrame, "steps-per-frame", 2, "time steps per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s nx=%d dt=%g idsignum=%+d final=%g\n",
					name, p.Grid.Nx, p.Time.Dt, p.Pulse.Signum, p.Time.FinalTime)
			}
			return nil
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a probe point",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&probeIndex, "probe", -1, "grid index to probe (default: center)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "wave.svg", "output file")
	exportSVGCmd.Flags().BoolVar(&waterfall, "waterfall", false, "stack all snapshots instead of the final profile")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd,
		liveCmd, presetsCmd, analyzeCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&nx, "nx", config.DefaultNx, "grid points")
	cmd.Flags().Float64Var(&xmin, "xmin", config.DefaultXmin, "domain lower bound")
	cmd.Flags().Float64Var(&xmax, "xmax", config.DefaultXmax, "domain upper bound")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
	cmd.Flags().Float64Var(&finalTime, "time", config.DefaultFinalTime, "final time")
	cmd.Flags().Float64Var(&amp, "amp", config.DefaultAmp, "pulse amplitude")
	cmd.Flags().Float64Var(&xc, "xc", config.DefaultCenter, "pulse center")
	cmd.Flags().Float64Var(&xwid, "xwid", config.DefaultWidth, "pulse width")
	cmd.Flags().IntVar(&signum, "idsignum", 0, "characteristic selector (-1, 0, +1)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "relaxation tolerance")
	cmd.Flags().IntVar(&maxSweeps, "max-iterations", config.DefaultMaxSweeps, "relaxation sweep budget")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers preset, config file and explicit flags, in increasing
// precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	if cmd.Flags().Changed("nx") {
		cfg.Grid.Nx = nx
	}
	if cmd.Flags().Changed("xmin") {
		cfg.Grid.Xmin = xmin
	}
	if cmd.Flags().Changed("xmax") {
		cfg.Grid.Xmax = xmax
	}
	if cmd.Flags().Changed("dt") {
		cfg.Time.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Time.FinalTime = finalTime
	}
	if cmd.Flags().Changed("amp") {
		cfg.Pulse.Amp = amp
	}
	if cmd.Flags().Changed("xc") {
		cfg.Pulse.Center = xc
	}
	if cmd.Flags().Changed("xwid") {
		cfg.Pulse.Width = xwid
	}
	if cmd.Flags().Changed("idsignum") {
		cfg.Pulse.Signum = signum
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.Solver.MaxSweeps = maxSweeps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSimulation(cfg *config.Config) (*sim.Simulation, error) {
	g, err := grid.New(cfg.Grid.Nx, cfg.Grid.Xmin, cfg.Grid.Xmax)
	if err != nil {
		return nil, err
	}

	pulse := wave.Pulse{
		Amp:    cfg.Pulse.Amp,
		Center: cfg.Pulse.Center,
		Width:  cfg.Pulse.Width,
		Signum: cfg.Pulse.Signum,
	}
	simCfg := sim.Config{
		Dt:        cfg.Time.Dt,
		FinalTime: cfg.Time.FinalTime,
		Tolerance: cfg.Solver.Tolerance,
		MaxSweeps: cfg.Solver.MaxSweeps,
	}

	s, err := sim.New(g, pulse, simCfg)
	if err != nil {
		return nil, err
	}

	s.AddMetric(metrics.NewEnergy(g.Dx))
	s.AddMetric(metrics.NewEnergyDrift(g.Dx))
	s.AddMetric(metrics.NewBoundaryAmplitude(metrics.Left))
	s.AddMetric(metrics.NewBoundaryAmplitude(metrics.Right))
	s.AddMetric(metrics.NewMeanSweeps())
	return s, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := buildSimulation(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d steps on %d points...\n", s.PlannedSteps(), cfg.Grid.Nx)
	start := time.Now()

	result, err := s.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (%d relaxation sweeps)\n", result.StepsTaken, result.TotalSweeps)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := buildSimulation(cfg)
	if err != nil {
		return err
	}

	return viz.Run(s, perFrame, frameRate)
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
	fmt.Fprintln(w, "ID\tTIME\tNX\tDT\tFINAL\tSIGNUM\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.5g\t%.4g\t%+d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nx,
			run.Dt,
			run.FinalTime,
			run.Signum,
			run.Steps,
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

	snaps, err := st.LoadSnapshots(runID)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("snapshots: %d\n\n", len(snaps))

	final := snaps[len(snaps)-1]
	fmt.Println(asciigraph.Plot(final.PP,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("pp profile at t=%.4f", final.T)),
	))
	fmt.Println()

	// Probe at the pulse center over time.
	probe := meta.Nx / 2
	series := make([]float64, len(snaps))
	for i, snap := range snaps {
		series[i] = snap.PP[probe]
	}
	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("pp at x=%.4f vs time", meta.Xmin+float64(probe)*(meta.Xmax-meta.Xmin)/float64(meta.Nx-1))),
	))

	return nil
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
	snaps, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	n := len(snaps[0].PP)
	header := []string{"time"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("pp%d", i))
	}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("pi%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, snap := range snaps {
		row := make([]string, 0, 1+2*n)
		row = append(row, strconv.FormatFloat(snap.T, 'g', -1, 64))
		for _, v := range snap.PP {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		for _, v := range snap.Pi {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	snaps, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	if len(snaps) < 4 {
		return fmt.Errorf("run too short to analyze")
	}

	probe := probeIndex
	if probe < 0 || probe >= meta.Nx {
		probe = meta.Nx / 2
	}

	series := analysis.ProbeSeries(snaps, probe)
	ps := analysis.PowerSpectrum(series)
	freq := analysis.DominantFrequency(series, meta.Dt)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("probe: point %d\n", probe)
	fmt.Printf("dominant frequency: %.4f cycles per unit time\n\n", freq)

	fmt.Println(asciigraph.Plot(ps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no data to export")
	}

	var svg string
	if waterfall {
		svg = export.WaterfallSVG(snaps, 800, 600, "#00ff00")
	} else {
		svg = export.ProfileSVG(snaps[len(snaps)-1], 800, 400, "#00ff00")
	}
	if svg == "" {
		return fmt.Errorf("nothing to draw")
	}

	if err := export.WriteFile(svgOut, svg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	snaps, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}

	if jsonOut != "" {
		if err := storage.ExportJSONFile(jsonOut, *meta, snaps); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
		return nil
	}
	return storage.ExportJSON(os.Stdout, *meta, snaps)
}
