package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pushcart/internal/automation"
	"github.com/san-kum/pushcart/internal/config"
	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/experiment"
	"github.com/san-kum/pushcart/internal/export"
	"github.com/san-kum/pushcart/internal/gui"
	"github.com/san-kum/pushcart/internal/logging"
	"github.com/san-kum/pushcart/internal/optim"
	"github.com/san-kum/pushcart/internal/sim"
	"github.com/san-kum/pushcart/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	preset     string
	logFile    string
	debug      bool

	mass       float64
	maxForce   float64
	ratio      float64
	pos        float64
	vel        float64
	dt         float64
	duration   float64
	integrator string
	source     string
	frameRate  int

	outPath string
	format  string

	seekTarget float64
	theme      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pushcart",
		Short: "push a cart along a track and watch the force histogram",
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file (headless commands default to stderr)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	rootCmd.PersistentFlags().Float64Var(&mass, "mass", config.DefaultMass, "cart mass (kg)")
	rootCmd.PersistentFlags().Float64Var(&maxForce, "max-force", config.DefaultMaxForce, "push force at full depth (N)")
	rootCmd.PersistentFlags().Float64Var(&ratio, "ratio", config.DefaultHitboxRatio, "push zone width as a fraction of the cart")
	rootCmd.PersistentFlags().Float64Var(&pos, "pos", config.DefaultTrackWidth/2, "initial position (track units)")
	rootCmd.PersistentFlags().Float64Var(&vel, "vel", 0, "initial velocity (m/s)")
	rootCmd.PersistentFlags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	rootCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")
	rootCmd.Flags().StringVar(&theme, "theme", "classic", fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scripted session headlessly",
		RunE:  runHeadless,
	}
	addHeadlessFlags(runCmd)
	addSourceFlag(runCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "run headlessly and write the trace",
		RunE:  runExport,
	}
	addHeadlessFlags(exportCmd)
	addSourceFlag(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "run", "output format: run, csv or svg")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (run dir base, or file; default runs/ or stdout)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, logger, err := interactiveSession(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			gui.Run(session, logger)
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets and integrators",
		Long:  "list available presets and integrators; with --out, write the resolved config (--preset, --config and flags) as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return listPresets(cmd.OutOrStdout())
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(outPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", outPath)
			return nil
		},
	}
	presetsCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the resolved config to this YAML file")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same session",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addHeadlessFlags(compareCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search seek gains that park the cart at a target",
		RunE:  tuneSeek,
	}
	addHeadlessFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&seekTarget, "target", config.DefaultTrackWidth*0.75, "target position (track units)")

	rootCmd.AddCommand(runCmd, exportCmd, guiCmd, presetsCmd, scenarioCmd, compareCmd, tuneCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addHeadlessFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
}

func addSourceFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&source, "source", "", "pointer source: idle, script or seek (default from config)")
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("max-force") {
		cfg.MaxForce = maxForce
	}
	if flags.Changed("ratio") {
		cfg.HitboxRatio = ratio
	}
	if flags.Changed("pos") {
		p := pos
		cfg.InitialPosition = &p
	}
	if flags.Changed("vel") {
		cfg.InitialVelocity = vel
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Lookup("dt") != nil && flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Lookup("time") != nil && flags.Changed("time") {
		cfg.Duration = duration
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger logs to stderr for headless commands. Interactive commands own
// the terminal, so they only log when --log names a file.
func newLogger(interactive bool) (*zap.Logger, error) {
	if interactive && logFile == "" {
		return zap.NewNop(), nil
	}
	return logging.New(logFile, debug)
}

func interactiveSession(cmd *cobra.Command) (*sim.Session, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(true)
	if err != nil {
		return nil, nil, err
	}
	integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("session starting",
		zap.String("integrator", cfg.Integrator),
		zap.Float64("mass", cfg.Mass),
		zap.Float64("max_force", cfg.MaxForce))
	return sim.NewSession(cfg, integ, logger), logger, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	session, logger, err := interactiveSession(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()
	return viz.Run(session, frameRate, theme, logger)
}

func headless(cmd *cobra.Command) (*config.Config, *experiment.Experiment, *dynamo.Result, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(false)
	if err != nil {
		return nil, nil, nil, err
	}
	defer logger.Sync()

	exp := experiment.New(cfg, logger)
	if err := exp.Setup(experiment.NewRegistry(), source); err != nil {
		return nil, nil, nil, err
	}

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, exp, result, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	start := time.Now()
	cfg, exp, result, err := headless(cmd)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "samples: %d\n", len(result.Samples))
	final := exp.GetSimulator().Session().Kinematics()
	fmt.Fprintf(out, "final position: %.2f m, velocity: %.3f m/s\n",
		(final.Position-cfg.TrackWidth/2)/cfg.DistanceScale(), final.Velocity)

	printMetrics(out, result.Metrics)

	velocities := make([]float64, len(result.States))
	for i, k := range result.States {
		velocities[i] = k.Velocity
	}
	if len(velocities) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(velocities,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("velocity (m/s) over time")))
	}

	values := make([]float64, len(result.Samples))
	for i, s := range result.Samples {
		values[i] = s.Value
	}
	if len(values) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(values,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("|F|cos(θ) (N) per histogram sample")))
	}
	return nil
}

func printMetrics(out io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "\nmetrics:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, m[name])
	}
	w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, exp, result, err := headless(cmd)
	if err != nil {
		return err
	}
	log := exp.GetSimulator().Session().Log()

	switch strings.ToLower(format) {
	case "run":
		base := outPath
		if base == "" {
			base = "runs"
		}
		dir, err := export.WriteRun(base, export.RunMetadata{
			Preset:     preset,
			Dt:         cfg.Dt,
			Duration:   cfg.Duration,
			Integrator: cfg.Integrator,
			Source:     experiment.SourceName(source, cfg),
		}, result, log, cfg.MaxForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "run written to %s\n", dir)
		return nil
	case "csv":
		return writeOutput(cmd, func(w io.Writer) error {
			return export.WriteSamples(w, log.Samples())
		})
	case "svg":
		return writeOutput(cmd, func(w io.Writer) error {
			_, err := io.WriteString(w, export.TraceToSVG(log, cfg.MaxForce, 800, 400))
			return err
		})
	default:
		return fmt.Errorf("unknown format %q (want run, csv or svg)", format)
	}
}

func writeOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	if outPath == "" || outPath == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func listPresets(out io.Writer) error {
	fmt.Fprintln(out, "presets:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "  %s\t%.1fs\t%d keyframes\n", name, p.Duration, len(p.Script))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nintegrators:")
	for _, name := range experiment.NewRegistry().ListIntegrators() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}

func printOutcomes(out io.Writer, outcomes []automation.Outcome) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\tintegrator\tsteps\tx (m)\tv (m/s)\twork\tpeak KE")
	for _, o := range outcomes {
		k := o.Final()
		cfg := o.Config
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.3f\t%.3f\t%.3f\n",
			o.Name, cfg.Integrator, o.Result.StepsTaken,
			(k.Position-cfg.TrackWidth/2)/cfg.DistanceScale(), k.Velocity,
			o.Result.Metrics["work"], o.Result.Metrics["peak_kinetic_energy"])
	}
	w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	logger, err := newLogger(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	outcomes, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), logger)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scenario %s: %d/%d steps\n", sc.Name, len(outcomes), len(sc.Steps))
	if len(outcomes) > 0 {
		printOutcomes(out, outcomes)
	}
	return err
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	outcomes, err := automation.Compare(cmd.Context(), cfg, args, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printOutcomes(out, outcomes)

	series := make([][]float64, len(outcomes))
	for i, o := range outcomes {
		series[i] = make([]float64, len(o.Result.States))
		for j, k := range o.Result.States {
			series[i][j] = k.Position
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.PlotMany(series,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("position (track units): "+strings.Join(args, ", "))))
	return nil
}

func tuneSeek(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if seekTarget < 0 || seekTarget > cfg.TrackWidth {
		return dynamo.OutOfBounds("target", seekTarget)
	}
	logger, err := newLogger(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	kps := []float64{0.02, 0.05, 0.1, 0.2, 0.5}
	kds := []float64{0.1, 0.25, 0.5, 1, 2}
	best, val, err := optim.TuneSeek(cmd.Context(), cfg, seekTarget, kps, kds, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "best gains for target %.1f:\n", best.Target)
	fmt.Fprintf(out, "  kp: %g\n  ki: %g\n  kd: %g\n", best.Kp, best.Ki, best.Kd)
	fmt.Fprintf(out, "  tracking_error: %.3f\n", val)
	return nil
}
