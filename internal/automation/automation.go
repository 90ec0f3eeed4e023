// Package automation runs landings in bulk: yaml batch scenarios, parameter
// sweeps and dispersion trials.
package automation

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/landsim/internal/config"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/experiment"
	"github.com/san-kum/landsim/internal/landing"
)

// Scenario is a batch of landings read from yaml.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Save        bool   `yaml:"save"`
	Cases       []Case `yaml:"cases"`
}

// Case is one landing. The configuration starts from Config (a yaml file)
// or Preset, falling back to the defaults, and then applies the overrides.
type Case struct {
	Name       string             `yaml:"name"`
	Preset     string             `yaml:"preset"`
	Config     string             `yaml:"config"`
	Strategy   string             `yaml:"strategy"`
	Integrator string             `yaml:"integrator"`
	Params     map[string]float64 `yaml:"params"`
}

type CaseResult struct {
	Case   string
	RunID  string
	Report *landing.Report
	Err    error
}

// Saver persists a finished landing.
type Saver interface {
	Save(name string, cfg *config.Config, report *landing.Report, snaps []dynamo.Rocket) (string, error)
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Cases) == 0 {
		return nil, fmt.Errorf("%s: scenario has no cases", path)
	}
	return &scenario, nil
}

// Resolve builds the configuration of c.
func (c Case) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case c.Config != "":
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case c.Preset != "":
		cfg = config.GetPreset(c.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", c.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if c.Integrator != "" {
		cfg.Simulation.Integrator = c.Integrator
	}
	for name, v := range c.Params {
		if err := SetParam(cfg, name, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario flies every case in order. A failing case is recorded in its
// result and the batch moves on; only cancellation stops it early. With
// scenario.Save set and a non-nil saver, each landing is stored.
func RunScenario(ctx context.Context, scenario *Scenario, reg *experiment.Registry, saver Saver, logger *zap.Logger) ([]CaseResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]CaseResult, 0, len(scenario.Cases))

	for i, c := range scenario.Cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", scenario.Name, i+1)
		}
		logger.Info("running case", zap.Int("case", i+1), zap.Int("of", len(scenario.Cases)), zap.String("name", name))

		res := CaseResult{Case: name}
		res.RunID, res.Report, res.Err = runCase(ctx, name, c, reg, saverFor(scenario, saver), logger)
		if res.Err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			logger.Warn("case failed", zap.String("name", name), zap.Error(res.Err))
		}
		results = append(results, res)
	}

	return results, nil
}

func saverFor(s *Scenario, saver Saver) Saver {
	if !s.Save {
		return nil
	}
	return saver
}

func runCase(ctx context.Context, name string, c Case, reg *experiment.Registry, saver Saver, logger *zap.Logger) (string, *landing.Report, error) {
	cfg, err := c.Resolve()
	if err != nil {
		return "", nil, err
	}
	strategy := c.Strategy
	if strategy == "" {
		strategy = landing.StrategyHoverslam
	}

	exp := experiment.New(name, strategy, cfg, logger)
	if err := exp.Setup(reg, false); err != nil {
		return "", nil, err
	}
	out, err := exp.Run(ctx)
	if err != nil {
		return "", nil, err
	}
	if saver == nil {
		return "", out.Report, nil
	}

	id, err := saver.Save(name, cfg, out.Report, out.Snapshots)
	if err != nil {
		return "", out.Report, fmt.Errorf("save %s: %w", name, err)
	}
	return id, out.Report, nil
}
