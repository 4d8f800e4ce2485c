package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/gui"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string

	// simulation flags shared by gui, tui and run
	preset    string
	particles int
	trail     int
	timeScale float64
	dt        float64
	seed      uint64
	realtime  bool

	theme string
)

// main registers the commands and launches the window driver when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "attractors",
		Short:         "interactive chaotic attractor particle simulation",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(os.Stderr, logLevel, logFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".attractors", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	addSimFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [system]",
		Short: "run the simulation in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui [system]",
		Short: "run the simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	addSimFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "terminal colour theme (cyberpunk, retro, ocean)")

	runCmd := newRunCmd()
	addSimFlags(runCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list coefficient presets for a system",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	systemsCmd := &cobra.Command{
		Use:   "systems",
		Short: "list the available systems and their coefficients",
		RunE:  listSystems,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, newListCmd(), newPlotCmd(), newAnalyzeCmd(),
		newBifurcateCmd(), newExportJSONCmd(), newExportCSVCmd(), newExportSVGCmd(), newScriptCmd(), presetsCmd, systemsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "coefficient preset")
	f.IntVar(&particles, "particles", sim.DefaultParticles, "initial particle count")
	f.IntVar(&trail, "trail", sim.DefaultTrailLength, "trail length in frames")
	f.Float64Var(&timeScale, "time-scale", sim.DefaultTimeScale, "initial time scale")
	f.Float64Var(&dt, "dt", config.DefaultDt, "frame step")
	f.Uint64Var(&seed, "seed", 1, "random seed")
	f.BoolVar(&realtime, "realtime", false, "step by wall-clock frame time")
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format: %s", format)
}

// loadConfig layers defaults, the config file, the system argument, the
// preset and explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		kind, err := dynamo.ParseSystemKind(args[0])
		if err != nil {
			return nil, err
		}
		if current, err := cfg.Kind(); err != nil || current != kind {
			cfg.Parameters = nil
		}
		cfg.System = kind.String()
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("particles") {
		cfg.Particles = particles
		cfg.MaxParticles = max(cfg.MaxParticles, particles)
	}
	if f.Changed("trail") {
		cfg.TrailLength = trail
	}
	if f.Changed("time-scale") {
		cfg.TimeScale = timeScale
	}
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("realtime") {
		cfg.Realtime = realtime
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEngine(cmd *cobra.Command, args []string) (*config.Config, *sim.Engine, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.EngineOptions(slog.Default())
	if err != nil {
		return nil, nil, err
	}
	e, err := sim.NewEngine(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("create engine: %w", err)
	}
	return cfg, e, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, e, err := newEngine(cmd, args)
	if err != nil {
		return err
	}
	slog.Info("starting window", "system", cfg.System, "particles", cfg.Particles)
	gui.Run(e, gui.Options{
		Width:    int32(cfg.Window.Width),
		Height:   int32(cfg.Window.Height),
		FPS:      int32(cfg.Window.FPS),
		Dt:       cfg.Dt,
		Realtime: cfg.Realtime,
	})
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, e, err := newEngine(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(e, viz.Options{
		Dt:       cfg.Dt,
		Realtime: cfg.Realtime,
		FPS:      cfg.Window.FPS,
		Theme:    theme,
	})
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (dynamo.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return dynamo.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var c [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return dynamo.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		c[i] = v
	}
	return dynamo.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}
