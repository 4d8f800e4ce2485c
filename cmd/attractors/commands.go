package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/automation"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/export"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/storage"
	"github.com/spf13/cobra"
)

var (
	frames          int
	sampleEvery     int
	recordParticles int
	initial         string

	particle int
	phase    bool
	xAxis    int
	yAxis    int

	lyapunovTime float64

	sweepParam     string
	sweepMin       float64
	sweepMax       float64
	sweepSteps     int
	sweepAxis      int
	sweepTransient float64
	sweepRecord    float64
	sweepX0        string
	integratorName string

	svgOut    string
	svgStroke string
)

var axisNames = [3]string{"x", "y", "z"}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [system]",
		Short: "run a headless simulation and save the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	cmd.Flags().IntVar(&frames, "frames", 5000, "frames to simulate")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "record every n-th frame")
	cmd.Flags().IntVar(&recordParticles, "record-particles", 1, "particles to record (0 = all)")
	cmd.Flags().StringVar(&initial, "x0", "", "initial state x,y,z of particle 0")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, e, err := newEngine(cmd, args)
	if err != nil {
		return err
	}
	if initial != "" {
		x0, err := parseVec3(initial)
		if err != nil {
			return fmt.Errorf("x0: %w", err)
		}
		e.Place(0, x0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rec := storage.NewRecorder(sampleEvery, recordParticles)
	fmt.Printf("running %s: %d particles, %d frames...\n", cfg.System, e.ParticleCount(), frames)
	start := time.Now()

	runID, result, err := recordRun(ctx, storage.New(dataDir), cfg, e, frames, rec)
	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}
	elapsed := time.Since(start)

	if interrupted {
		fmt.Printf("interrupted after %d frames\n", result.Frames)
	} else {
		fmt.Printf("completed in %v\n", elapsed)
	}
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (t = %.2f)\n", result.Frames, result.Time)
	fmt.Printf("samples: %d\n", len(rec.Samples()))
	if result.Diverged > 0 {
		fmt.Printf("diverged: %d particles\n", result.Diverged)
	}
	return nil
}

// recordRun runs e for frames frames and saves whatever rec captured. A
// cancelled run is still saved with the frames it completed, and the
// cancellation is returned alongside the run id.
func recordRun(ctx context.Context, st *storage.Store, cfg *config.Config, e *sim.Engine, frames int, rec *storage.Recorder) (string, *sim.Result, error) {
	result, runErr := e.Run(ctx, sim.RunConfig{Dt: cfg.Dt, Frames: frames}, rec)
	if result == nil {
		return "", nil, fmt.Errorf("run: %w", runErr)
	}

	runID, err := st.Save(storage.RunMetadata{
		System:      cfg.System,
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		TimeScale:   e.TimeScale(),
		Frames:      result.Frames,
		Particles:   e.ParticleCount(),
		SampleEvery: rec.Every,
		Parameters:  e.Parameters().Map(),
		Diverged:    result.Diverged,
	}, rec.Samples())
	if err != nil {
		return "", result, fmt.Errorf("save run: %w", err)
	}
	if runErr != nil {
		slog.Warn("run interrupted", "id", runID, "frames", result.Frames)
	}
	return runID, result, runErr
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tFRAMES\tPARTICLES\tDT\tSCALE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%.1fx\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Particles,
			run.Dt,
			run.TimeScale,
		)
	}
	return w.Flush()
}

// loadRun returns a run's metadata and the trajectory of one particle.
func loadRun(id string, particle int) (*storage.RunMetadata, []float64, []dynamo.Vec3, error) {
	meta, samples, err := loadSamples(id)
	if err != nil {
		return nil, nil, nil, err
	}
	times, states := storage.Trajectory(samples, particle)
	if len(states) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s has no samples for particle %d", meta.ID, particle)
	}
	return meta, times, states, nil
}

func runParameters(meta *storage.RunMetadata) (physics.ParameterSet, error) {
	kind, err := dynamo.ParseSystemKind(meta.System)
	if err != nil {
		return physics.ParameterSet{}, err
	}
	p := physics.Defaults(kind)
	if err := p.Apply(meta.Parameters); err != nil {
		return physics.ParameterSet{}, err
	}
	return p, nil
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id|latest]",
		Short: "plot a saved trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().IntVar(&particle, "particle", 0, "particle index")
	cmd.Flags().BoolVar(&phase, "phase", false, "draw a phase portrait instead of time series")
	cmd.Flags().IntVar(&xAxis, "x-axis", 0, "phase portrait horizontal axis (0-2)")
	cmd.Flags().IntVar(&yAxis, "y-axis", 2, "phase portrait vertical axis (0-2)")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, _, states, err := loadRun(args[0], particle)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("samples: %d\n", len(states))
	valid := analysis.FinitePrefix(states)
	if len(valid) < len(states) {
		fmt.Printf("diverged after %d samples\n", len(valid))
	}
	fmt.Println()
	if len(valid) == 0 {
		return fmt.Errorf("run %s has no finite samples for particle %d", meta.ID, particle)
	}

	if phase {
		portrait := analysis.NewPhasePortrait(valid, xAxis, yAxis)
		if portrait == nil {
			return fmt.Errorf("axes must be 0-2, got %d and %d", xAxis, yAxis)
		}
		fmt.Printf("%s vs %s\n", axisNames[yAxis], axisNames[xAxis])
		fmt.Print(analysis.PhasePortraitToASCII(portrait, 80, 30))
		return nil
	}

	for axis, name := range axisNames {
		fmt.Println(plotSeries(analysis.Axis(valid, axis), name+"(t)", 10))
		fmt.Println()
	}
	return nil
}

// plotSeries draws data with asciigraph, skipping non-finite values.
// It returns "" when nothing finite remains.
func plotSeries(data []float64, caption string, height int) string {
	finite := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return ""
	}
	return asciigraph.Plot(finite,
		asciigraph.Height(height),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [run_id|latest]",
		Short: "statistics, spectrum and Lyapunov estimate of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	cmd.Flags().IntVar(&particle, "particle", 0, "particle index")
	cmd.Flags().Float64Var(&lyapunovTime, "lyapunov-time", 50, "integration time for the Lyapunov estimate")
	return cmd
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, times, states, err := loadRun(args[0], particle)
	if err != nil {
		return err
	}
	params, err := runParameters(meta)
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("system: %s\n", params)
	fmt.Println()

	sum := analysis.Summarize(states)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AXIS\tMEAN\tSTD\tMIN\tMAX")
	for i, a := range []analysis.AxisStats{sum.X, sum.Y, sum.Z} {
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.3f\n", axisNames[i], a.Mean, a.Std, a.Min, a.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if sum.Diverged > 0 {
		fmt.Printf("diverged samples: %d\n", sum.Diverged)
	}
	fmt.Println()

	valid := analysis.FinitePrefix(states)
	if len(valid) == 0 {
		fmt.Println("no finite samples: spectrum and lyapunov estimate skipped")
		return nil
	}

	if len(valid) > 1 {
		spacing := times[1] - times[0]
		x := analysis.Axis(valid, 0)
		if ps := analysis.PowerSpectrum(x); len(ps) > 2 {
			if graph := plotSeries(ps[1:len(ps)/4+2], "power spectrum of x", 12); graph != "" {
				fmt.Println(graph)
				fmt.Println()
			}
		}
		if freq := analysis.DominantFrequency(x, spacing); freq > 0 {
			fmt.Printf("dominant frequency: %.4f\n", freq)
			fmt.Printf("period: %.3f\n", 1/freq)
		}
	}

	lyap := analysis.LyapunovExponent(params.Kind(), params, valid[0], meta.Dt, lyapunovTime, 1e-8)
	fmt.Printf("largest lyapunov exponent: %.4f", lyap)
	if lyap > 0 {
		fmt.Print(" (chaotic)")
	}
	fmt.Println()
	return nil
}

func newBifurcateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bifurcate [system]",
		Short: "sweep one coefficient and plot the peaks of a coordinate",
		Args:  cobra.ExactArgs(1),
		RunE:  bifurcate,
	}
	cmd.Flags().StringVar(&sweepParam, "param", "", "coefficient to sweep (default: first)")
	cmd.Flags().Float64Var(&sweepMin, "min", 0, "sweep start (default: half the default value)")
	cmd.Flags().Float64Var(&sweepMax, "max", 0, "sweep end (default: 1.5x the default value)")
	cmd.Flags().IntVar(&sweepSteps, "steps", 80, "sweep steps")
	cmd.Flags().IntVar(&sweepAxis, "axis", 0, "coordinate whose peaks are recorded (0-2)")
	cmd.Flags().Float64Var(&sweepTransient, "transient", 100, "time discarded per step")
	cmd.Flags().Float64Var(&sweepRecord, "record", 100, "time recorded per step")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "integration step")
	cmd.Flags().StringVar(&integratorName, "integrator", "euler", "integrator (euler, rk4)")
	cmd.Flags().StringVar(&sweepX0, "x0", "1,1,1", "initial state x,y,z")
	cmd.Flags().StringVar(&preset, "preset", "", "coefficient preset for the fixed coefficients")
	return cmd
}

func bifurcate(cmd *cobra.Command, args []string) error {
	kind, err := dynamo.ParseSystemKind(args[0])
	if err != nil {
		return err
	}
	base := physics.Defaults(kind)
	if preset != "" {
		p := config.GetPreset(kind.String(), preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind.String()))
		}
		if err := base.Apply(p.Parameters); err != nil {
			return err
		}
	}
	x0, err := parseVec3(sweepX0)
	if err != nil {
		return fmt.Errorf("x0: %w", err)
	}
	integ, err := integrators.Get(integratorName)
	if err != nil {
		return err
	}

	param := sweepParam
	if param == "" {
		param = base.Names()[0]
	}
	def, err := base.Get(param)
	if err != nil {
		return err
	}
	lo, hi := sweepMin, sweepMax
	if !cmd.Flags().Changed("min") {
		lo = min(def*0.5, def*1.5)
	}
	if !cmd.Flags().Changed("max") {
		hi = max(def*0.5, def*1.5)
	}

	slog.Debug("bifurcation sweep", "system", kind, "param", param, "min", lo, "max", hi, "steps", sweepSteps)
	data, err := analysis.BifurcationDiagram(kind, base, x0, analysis.BifurcationSweep{
		Param:      param,
		Min:        lo,
		Max:        hi,
		Steps:      sweepSteps,
		Axis:       sweepAxis,
		Dt:         dt,
		Transient:  sweepTransient,
		Record:     sweepRecord,
		Integrator: integ,
	})
	if err != nil {
		return err
	}

	axis := max(0, min(sweepAxis, 2))
	fmt.Printf("%s: peaks of %s for %s in [%g, %g]\n\n", physics.Describe(kind).Label, axisNames[axis], param, lo, hi)
	fmt.Print(analysis.BifurcationToASCII(data, 80, 30))
	return nil
}

func newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id|latest]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id|latest]",
		Short: "export a run's samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
}

// loadSamples resolves a run id, with "latest" naming the newest run.
func loadSamples(id string) (*storage.RunMetadata, []storage.Sample, error) {
	st := storage.New(dataDir)
	var meta *storage.RunMetadata
	var err error
	if id == "latest" {
		meta, err = st.Latest()
	} else {
		meta, err = st.Load(id)
	}
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		return nil, nil, err
	}
	return meta, samples, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(os.Stdout, samples)
}

func newExportSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-svg [run_id|latest]",
		Short: "export a phase portrait of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	cmd.Flags().IntVar(&particle, "particle", 0, "particle index")
	cmd.Flags().IntVar(&xAxis, "x-axis", 0, "horizontal axis (0-2)")
	cmd.Flags().IntVar(&yAxis, "y-axis", 2, "vertical axis (0-2)")
	cmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")
	cmd.Flags().StringVar(&svgStroke, "stroke", "#00ff88", "stroke colour")
	return cmd
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, _, states, err := loadRun(args[0], particle)
	if err != nil {
		return err
	}
	portrait := analysis.NewPhasePortrait(states, xAxis, yAxis)
	if portrait == nil {
		return fmt.Errorf("axes must be 0-2, got %d and %d", xAxis, yAxis)
	}
	svg := export.PortraitToSVG(portrait, 800, 600, svgStroke)
	if svg == "" {
		return fmt.Errorf("not enough finite samples to draw")
	}
	if svgOut == "" {
		_, err := fmt.Print(svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func newScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a scripted sequence of headless simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	results, err := automation.RunScenario(ctx, sc, storage.New(dataDir), slog.Default())
	for _, r := range results {
		line := fmt.Sprintf("  step %d  %-8s %d frames  t = %.2f", r.Step, r.System, r.Result.Frames, r.Result.Time)
		if r.RunID != "" {
			line += "  saved " + r.RunID
		}
		if r.Result.Diverged > 0 {
			line += fmt.Sprintf("  diverged %d", r.Result.Diverged)
		}
		fmt.Println(line)
	}
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for system: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, name := range presets {
		p := config.GetPreset(args[0], name)
		fmt.Printf("  %-10s %s\n", name, p.Description)
	}
	return nil
}

func listSystems(cmd *cobra.Command, args []string) error {
	for i, kind := range dynamo.Systems() {
		d := physics.Describe(kind)
		fmt.Printf("%d  %s (%s)\n", i+1, d.Label, kind)
		for _, eq := range d.Equations {
			fmt.Printf("     %s\n", eq)
		}
		for _, c := range d.Coefficients {
			fmt.Printf("     %s = %g\n", c.Symbol, c.Default)
		}
		fmt.Println()
	}
	return nil
}
