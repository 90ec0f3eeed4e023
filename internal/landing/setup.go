package landing

import (
	"context"

	"go.uber.org/zap"

	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/events"
	"github.com/san-kum/landsim/internal/metrics"
	"github.com/san-kum/landsim/internal/physics"
	"github.com/san-kum/landsim/internal/sim"
)

// Lander is a complete landing strategy.
type Lander interface {
	Name() string
	Land(ctx context.Context, r0 dynamo.Rocket, observers ...dynamo.Observer) (*Report, error)
}

// Setup is the flight environment shared by the strategies. Probe is used
// for search evaluations; the final flight adds metrics, observers and
// logging on top of it.
type Setup struct {
	Probe  *sim.Simulator
	Run    sim.Config
	Logger *zap.Logger
}

// NewSetup wires the gravity force law, the event detector and the linear
// ground-contact interpolator around integ. A non-positive unstableAfter
// keeps the detector default.
func NewSetup(integ dynamo.Integrator, unstableAfter float64, run sim.Config, logger *zap.Logger) Setup {
	if logger == nil {
		logger = zap.NewNop()
	}
	det := events.NewDetector()
	if unstableAfter > 0 {
		det.UnstableAfter = unstableAfter
	}
	probe := sim.New(physics.Gravity{}, integ,
		sim.WithDetector(det),
		sim.WithInterpolator(events.NewLinear()),
	)
	return Setup{Probe: probe, Run: run, Logger: logger}
}

func (s Setup) withLogger() Setup {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	return s
}

// fresh returns the initial state for one evaluation: clock at zero, engine off.
func fresh(r0 dynamo.Rocket) dynamo.Rocket {
	r := r0.Restart()
	r.Throttle = 0
	return r
}

func (s Setup) fly(ctx context.Context, r0 dynamo.Rocket, policy dynamo.Policy, observers []dynamo.Observer) (*sim.Result, error) {
	flight := s.Probe.With(
		sim.WithLogger(s.Logger.Named("sim")),
		sim.WithMetrics(metrics.Default()...),
		sim.WithObservers(observers...),
	)
	return flight.Run(ctx, fresh(r0), policy, s.Run)
}

func preflight(r0 dynamo.Rocket, logger *zap.Logger) error {
	avail, req, _ := physics.Feasible(r0)
	if err := physics.CheckFeasible(r0); err != nil {
		logger.Warn("preflight check failed",
			zap.Float64("available_dv", avail),
			zap.Float64("required_dv", req),
			zap.Error(err),
		)
		return err
	}
	logger.Info("preflight check passed",
		zap.Float64("available_dv", avail),
		zap.Float64("required_dv", req),
	)
	return nil
}
