package automation

import (
	"fmt"
	"slices"

	"github.com/san-kum/landsim/internal/config"
)

// setters name the scalar configuration values a batch may override.
var setters = map[string]func(*config.Config, float64){
	"altitude":       func(c *config.Config, v float64) { c.Rocket.Altitude = v },
	"fuel_mass":      func(c *config.Config, v float64) { c.Rocket.FuelMass = v },
	"dry_mass":       func(c *config.Config, v float64) { c.Rocket.DryMass = v },
	"thrust":         func(c *config.Config, v float64) { c.Engine.Thrust = v },
	"consumption":    func(c *config.Config, v float64) { c.Engine.Consumption = v },
	"planet_mass":    func(c *config.Config, v float64) { c.Planet.Mass = v },
	"planet_radius":  func(c *config.Config, v float64) { c.Planet.Radius = v },
	"dt":             func(c *config.Config, v float64) { c.Simulation.Dt = v },
	"eps":            func(c *config.Config, v float64) { c.Simulation.Eps = v },
	"tolerance":      func(c *config.Config, v float64) { c.Simulation.Tolerance = v },
	"unstable_after": func(c *config.Config, v float64) { c.Simulation.UnstableAfter = v },
}

func SetParam(cfg *config.Config, name string, value float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	set(cfg, value)
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
