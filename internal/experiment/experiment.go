package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/landsim/internal/config"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/landing"
	"github.com/san-kum/landsim/internal/sim"
)

// Experiment is one configured landing: a scenario, a strategy and the
// observers that watch the final flight.
type Experiment struct {
	Name     string
	Strategy string
	cfg      *config.Config
	logger   *zap.Logger

	lander   landing.Lander
	recorder *sim.Recorder
	extra    []dynamo.Observer
}

type Outcome struct {
	Report    *landing.Report
	Snapshots []dynamo.Rocket
}

func New(name, strategy string, cfg *config.Config, logger *zap.Logger) *Experiment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experiment{
		Name:     name,
		Strategy: strategy,
		cfg:      cfg,
		logger:   logger,
	}
}

// Setup resolves the integrator and strategy. With printFlight set, flight
// snapshots are also written to the debug log.
func (e *Experiment) Setup(reg *Registry, printFlight bool) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	for _, section := range e.cfg.ApplyFallbacks() {
		e.logger.Warn("all values zero, using defaults", zap.String("section", section))
	}

	integ, err := reg.GetIntegrator(e.cfg.Simulation.Integrator)
	if err != nil {
		return err
	}
	s := e.cfg.Simulation
	setup := landing.NewSetup(integ, s.UnstableAfter, e.cfg.SimConfig(), e.logger.With(zap.String("run", e.Name)))

	e.lander, err = reg.GetStrategy(e.Strategy, e.cfg, setup)
	if err != nil {
		return err
	}

	e.recorder = sim.NewRecorder(s.LogInterval)
	e.extra = nil
	if printFlight {
		e.extra = append(e.extra, sim.NewLogObserver(e.logger.Named("flight"), s.LogInterval))
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.lander == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	observers := append([]dynamo.Observer{e.recorder}, e.extra...)
	report, err := e.lander.Land(ctx, e.cfg.BuildRocket(), observers...)
	if err != nil {
		return nil, err
	}

	snaps := append([]dynamo.Rocket(nil), e.recorder.Snapshots...)
	return &Outcome{Report: report, Snapshots: snaps}, nil
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}
