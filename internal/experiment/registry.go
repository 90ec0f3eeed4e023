package experiment

import (
	"fmt"
	"slices"

	"github.com/san-kum/landsim/internal/config"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/integrators"
	"github.com/san-kum/landsim/internal/landing"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	strategies  map[string]func(*config.Config, landing.Setup) landing.Lander
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		strategies:  make(map[string]func(*config.Config, landing.Setup) landing.Lander),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk1"] = r.integrators["euler"]
	r.integrators["midpoint"] = func() dynamo.Integrator { return integrators.NewMidpoint() }
	r.integrators["rk2"] = r.integrators["midpoint"]
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	r.strategies[landing.StrategyHoverslam] = func(cfg *config.Config, setup landing.Setup) landing.Lander {
		return landing.NewHoverslam(setup, cfg.Simulation.Eps, cfg.Simulation.MaxIterations)
	}
	r.strategies[landing.StrategyPID] = func(cfg *config.Config, setup landing.Setup) landing.Lander {
		return landing.NewPIDLanding(setup,
			cfg.PIDWeights,
			cfg.PIDStartValues.Slice(),
			cfg.PIDInitialGains.Slice(),
			cfg.Simulation.Tolerance,
			cfg.Simulation.MaxIterations,
		)
	}

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetStrategy(name string, cfg *config.Config, setup landing.Setup) (landing.Lander, error) {
	fn, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
	return fn(cfg, setup), nil
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) ListStrategies() []string {
	return sortedKeys(r.strategies)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
