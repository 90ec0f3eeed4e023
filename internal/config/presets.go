package config

import (
	"slices"

	"github.com/san-kum/landsim/internal/dynamo"
)

var (
	Earth = dynamo.Planet{Mass: 5.972, Radius: 6371}
	Moon  = dynamo.Planet{Mass: 0.07342, Radius: 1737.4}
	Mars  = dynamo.Planet{Mass: 0.64171, Radius: 3389.5}
)

var Presets = map[string]func() *Config{
	"earth": DefaultConfig,
	"moon": func() *Config {
		cfg := DefaultConfig()
		cfg.Planet = Moon
		cfg.Engine = dynamo.Engine{Thrust: 5000, Consumption: 2}
		return cfg
	},
	"mars": func() *Config {
		cfg := DefaultConfig()
		cfg.Planet = Mars
		cfg.Engine = dynamo.Engine{Thrust: 12000, Consumption: 4}
		cfg.Rocket.Altitude = 1500
		return cfg
	},
	"heavy": func() *Config {
		cfg := DefaultConfig()
		cfg.Engine = dynamo.Engine{Thrust: 400000, Consumption: 120}
		cfg.Rocket = RocketConfig{DryMass: 20000, FuelMass: 4000, Altitude: 3000}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
