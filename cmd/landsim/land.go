package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/landsim/internal/config"
	"github.com/san-kum/landsim/internal/experiment"
	"github.com/san-kum/landsim/internal/physics"
	"github.com/san-kum/landsim/internal/storage"
	"github.com/san-kum/landsim/internal/viz"
)

var (
	configFile  string
	preset      string
	dt          float64
	eps         float64
	tolerance   float64
	integrator  string
	altitude    float64
	fuelMass    float64
	dryMass     float64
	thrust      float64
	consumption float64
	maxIter     int
	printFlight bool
	noSave      bool
	runName     string
	showPlot    bool
)

// addScenarioFlags registers the flags that describe a vehicle and a run.
// Their defaults are only placeholders: a flag applies when it is set.
func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	f.Float64Var(&eps, "eps", config.DefaultEps, "ignition search precision (s)")
	f.Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "twiddle stopping tolerance")
	f.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, midpoint, rk4)")
	f.Float64Var(&altitude, "altitude", 1000, "release altitude (m)")
	f.Float64Var(&fuelMass, "fuel", 150, "fuel mass (kg)")
	f.Float64Var(&dryMass, "dry-mass", 1000, "dry mass (kg)")
	f.Float64Var(&thrust, "thrust", 20000, "engine thrust (N)")
	f.Float64Var(&consumption, "consumption", 5, "fuel consumption at full throttle (kg/s)")
	f.IntVar(&maxIter, "max-iter", config.DefaultMaxIterations, "search iteration budget (0 = unlimited)")
}

// loadConfig resolves the run configuration: a file beats a preset, which
// beats the defaults, and changed flags beat all of them.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Simulation.Dt = dt
	}
	if f.Changed("eps") {
		cfg.Simulation.Eps = eps
	}
	if f.Changed("tolerance") {
		cfg.Simulation.Tolerance = tolerance
	}
	if f.Changed("integrator") {
		cfg.Simulation.Integrator = integrator
	}
	if f.Changed("max-iter") {
		cfg.Simulation.MaxIterations = maxIter
	}
	if f.Changed("altitude") {
		cfg.Rocket.Altitude = altitude
	}
	if f.Changed("fuel") {
		cfg.Rocket.FuelMass = fuelMass
	}
	if f.Changed("dry-mass") {
		cfg.Rocket.DryMass = dryMass
	}
	if f.Changed("thrust") {
		cfg.Engine.Thrust = thrust
	}
	if f.Changed("consumption") {
		cfg.Engine.Consumption = consumption
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func landCommand(strategy, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   strategy,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanding(cmd, strategy)
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().BoolVar(&printFlight, "print", false, "log flight snapshots (needs --log-level debug)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().StringVar(&runName, "name", "", "run name (default: preset or strategy)")
	cmd.Flags().BoolVar(&showPlot, "plot", false, "plot the flight after landing")
	return cmd
}

func runLanding(cmd *cobra.Command, strategy string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	name := runName
	if name == "" {
		name = strategy
		if preset != "" {
			name = preset + "-" + strategy
		}
	}

	exp := experiment.New(name, strategy, cfg, logger)
	if err := exp.Setup(experiment.NewRegistry(), printFlight); err != nil {
		return err
	}
	out, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(viz.ReportSummary(out.Report))
	if showPlot {
		fmt.Println(viz.FlightPlots(storage.SnapshotsOf(out.Snapshots), 60, 12))
	}
	if noSave {
		return nil
	}

	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Save(name, exp.Config(), out.Report, out.Snapshots)
	if err != nil {
		return err
	}
	logger.Info("run saved", zap.String("id", id), zap.String("data", dataDir))
	fmt.Printf("run id: %s\n", id)
	return nil
}

func deltavCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deltav",
		Short: "check whether the vehicle can arrest its fall",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r := cfg.BuildRocket()
			avail, req, ok := physics.Feasible(r)
			fmt.Printf("gravity at release:  %.4f m/s^2\n", r.Gravity())
			fmt.Printf("exhaust velocity:    %.2f m/s\n", cfg.Engine.ExhaustVelocity())
			fmt.Printf("available delta-v:   %.2f m/s\n", avail)
			fmt.Printf("required delta-v:    %.2f m/s\n", req)
			if ok {
				fmt.Printf("feasible, margin %.2f m/s\n", avail-req)
				return nil
			}
			return physics.CheckFeasible(r)
		},
	}
	addScenarioFlags(cmd)
	return cmd
}

func presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Available presets:")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-6s g=%.3f m/s^2  thrust=%g N  fuel=%g kg  altitude=%g m\n",
					name, cfg.Planet.Gravity(0), cfg.Engine.Thrust, cfg.Rocket.FuelMass, cfg.Rocket.Altitude)
			}
			return nil
		},
	}
}

func initConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file to edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("config written to %s\n", args[0])
			return nil
		},
	}
	addScenarioFlags(cmd)
	return cmd
}

func compareCommand() *cobra.Command {
	var dts []float64
	cmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators against the closed-form free fall",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reg := experiment.NewRegistry()
			names := args
			if len(names) == 0 {
				names = []string{"euler", "midpoint", "rk4"}
			}
			rows, err := experiment.CompareIntegrators(cmd.Context(), reg, cfg.BuildRocket(), names, dts)
			if err != nil {
				return err
			}
			fmt.Println(viz.ComparisonTable(rows))
			return nil
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().Float64SliceVar(&dts, "dts", []float64{0.1, 0.01, 0.001}, "timesteps to compare")
	return cmd
}
