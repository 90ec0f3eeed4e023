package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/landsim/internal/control"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/sim"
)

const (
	DefaultDt            = 0.002
	DefaultEps           = 1e-4
	DefaultTolerance     = 1e-4
	DefaultIntegrator    = "rk4"
	DefaultUnstableAfter = 1.0
	DefaultMaxIterations = 10000
	DefaultMaxSteps      = 5_000_000
	DefaultLogInterval   = 1.0
)

type Config struct {
	Planet          dynamo.Planet    `yaml:"planet"`
	Engine          dynamo.Engine    `yaml:"engine"`
	Rocket          RocketConfig     `yaml:"rocket"`
	PIDWeights      control.Weights  `yaml:"pid_weights"`
	PIDStartValues  Gains            `yaml:"pid_start_values"`
	PIDInitialGains Gains            `yaml:"pid_initial_gains"`
	Simulation      SimulationConfig `yaml:"simulation"`
}

type RocketConfig struct {
	DryMass  float64 `yaml:"dry_mass"`
	FuelMass float64 `yaml:"fuel_mass"`
	Altitude float64 `yaml:"altitude"`
}

// Gains is a [Kp, Ki, Kd] triple. It holds either controller gains or the
// Twiddle step seeds for them.
type Gains struct {
	Kp float64 `yaml:"K_p"`
	Ki float64 `yaml:"K_i"`
	Kd float64 `yaml:"K_d"`
}

func (g Gains) Slice() []float64 { return []float64{g.Kp, g.Ki, g.Kd} }

func (g Gains) IsZero() bool { return g == Gains{} }

type SimulationConfig struct {
	Dt            float64 `yaml:"dt"`
	Eps           float64 `yaml:"eps"`
	Tolerance     float64 `yaml:"tolerance"`
	Integrator    string  `yaml:"integrator"`
	UnstableAfter float64 `yaml:"unstable_after"`
	MaxIterations int     `yaml:"max_iterations"`
	MaxSteps      int     `yaml:"max_steps"`
	LogInterval   float64 `yaml:"log_interval"`
}

func DefaultConfig() *Config {
	steps := control.DefaultStepSeeds()
	return &Config{
		Planet: dynamo.Planet{Mass: 5.972, Radius: 6371},
		Engine: dynamo.Engine{Thrust: 20000, Consumption: 5},
		Rocket: RocketConfig{
			DryMass:  1000,
			FuelMass: 150,
			Altitude: 1000,
		},
		PIDWeights:     control.DefaultWeights(),
		PIDStartValues: Gains{Kp: steps[0], Ki: steps[1], Kd: steps[2]},
		Simulation: SimulationConfig{
			Dt:            DefaultDt,
			Eps:           DefaultEps,
			Tolerance:     DefaultTolerance,
			Integrator:    DefaultIntegrator,
			UnstableAfter: DefaultUnstableAfter,
			MaxIterations: DefaultMaxIterations,
			MaxSteps:      DefaultMaxSteps,
			LogInterval:   DefaultLogInterval,
		},
	}
}

// Load reads a yaml file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every out-of-range field at once.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("planet.mass", c.Planet.Mass)
	positive("planet.radius", c.Planet.Radius)
	positive("engine.thrust", c.Engine.Thrust)
	positive("engine.consumption", c.Engine.Consumption)
	positive("rocket.dry_mass", c.Rocket.DryMass)
	positive("rocket.altitude", c.Rocket.Altitude)
	if c.Rocket.FuelMass < 0 {
		errs = append(errs, fmt.Errorf("rocket.fuel_mass must not be negative, got %v", c.Rocket.FuelMass))
	}

	s := c.Simulation
	positive("simulation.dt", s.Dt)
	positive("simulation.eps", s.Eps)
	positive("simulation.tolerance", s.Tolerance)
	positive("simulation.unstable_after", s.UnstableAfter)
	positive("simulation.log_interval", s.LogInterval)
	if s.Integrator == "" {
		errs = append(errs, errors.New("simulation.integrator must be set"))
	}
	if s.MaxIterations < 0 || s.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("simulation budgets must not be negative, got %d/%d", s.MaxIterations, s.MaxSteps))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", dynamo.ErrInvalidConfig, errors.Join(errs...))
}

// ApplyFallbacks replaces all-zero weight and step-seed triples with their
// defaults and returns the names of the sections it changed.
func (c *Config) ApplyFallbacks() []string {
	var changed []string
	if c.PIDWeights.IsZero() {
		c.PIDWeights = control.DefaultWeights()
		changed = append(changed, "pid_weights")
	}
	if c.PIDStartValues.IsZero() {
		steps := control.DefaultStepSeeds()
		c.PIDStartValues = Gains{Kp: steps[0], Ki: steps[1], Kd: steps[2]}
		changed = append(changed, "pid_start_values")
	}
	return changed
}

// BuildRocket builds the initial vehicle state: at rest at the configured altitude.
func (c *Config) BuildRocket() dynamo.Rocket {
	return dynamo.NewRocket(c.Rocket.DryMass, c.Rocket.FuelMass, c.Rocket.Altitude, c.Engine, c.Planet)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Simulation.Dt, MaxSteps: c.Simulation.MaxSteps}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
