package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/landsim/internal/config"
	"github.com/san-kum/landsim/internal/control"
	"github.com/san-kum/landsim/internal/experiment"
	"github.com/san-kum/landsim/internal/landing"
	"github.com/san-kum/landsim/internal/sim"
)

// Dispersion plans a hoverslam on the nominal vehicle and then flies that
// ignition time on vehicles whose altitude and masses are drawn from normal
// distributions around the nominal values.
type Dispersion struct {
	Base   *config.Config
	Trials int
	Seed   uint64

	AltitudeSigma float64 // m
	FuelSigma     float64 // kg
	DryMassSigma  float64 // kg
}

type DispersionResult struct {
	Ignition float64
	// Speeds holds the touchdown speed of every trial; trials that did not
	// land carry +Inf.
	Speeds []float64
	Landed int

	// Statistics over the landed trials.
	Mean, StdDev, Max float64
}

func RunDispersion(ctx context.Context, d *Dispersion, reg *experiment.Registry, logger *zap.Logger) (*DispersionResult, error) {
	if d.Base == nil || d.Trials < 1 {
		return nil, fmt.Errorf("%w: need a base configuration and at least one trial", ErrInvalidSweep)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := d.Base.Clone()
	if err := base.Validate(); err != nil {
		return nil, err
	}

	integ, err := reg.GetIntegrator(base.Simulation.Integrator)
	if err != nil {
		return nil, err
	}
	setup := landing.NewSetup(integ, base.Simulation.UnstableAfter, base.SimConfig(), logger)
	h := landing.NewHoverslam(setup, base.Simulation.Eps, base.Simulation.MaxIterations)

	plan, err := h.Plan(ctx, base.BuildRocket())
	if err != nil {
		return nil, fmt.Errorf("nominal plan: %w", err)
	}
	policy := control.Ignition{At: plan.Ignition}
	logger.Info("nominal plan", zap.Float64("ignition", plan.Ignition), zap.Float64("speed", plan.ImpactSpeed))

	rng := rand.New(rand.NewPCG(d.Seed, d.Seed^0x9e3779b97f4a7c15))
	out := &DispersionResult{Ignition: plan.Ignition, Speeds: make([]float64, d.Trials)}
	landed := make([]float64, 0, d.Trials)

	for i := range d.Trials {
		cfg := base.Clone()
		cfg.Rocket.Altitude = math.Max(1, cfg.Rocket.Altitude+rng.NormFloat64()*d.AltitudeSigma)
		cfg.Rocket.FuelMass = math.Max(0, cfg.Rocket.FuelMass+rng.NormFloat64()*d.FuelSigma)
		cfg.Rocket.DryMass = math.Max(1, cfg.Rocket.DryMass+rng.NormFloat64()*d.DryMassSigma)

		res, err := h.Probe.Run(ctx, cfg.BuildRocket(), policy, h.Run)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		speed := math.Inf(1)
		if err == nil && res.Status == sim.StatusLanded {
			speed = res.Speed()
			landed = append(landed, speed)
		}
		out.Speeds[i] = speed
	}

	out.Landed = len(landed)
	if len(landed) > 0 {
		out.Mean = stat.Mean(landed, nil)
		out.Max = floats.Max(landed)
	}
	if len(landed) > 1 {
		out.StdDev = stat.StdDev(landed, nil)
	}
	logger.Info("dispersion finished",
		zap.Int("trials", d.Trials),
		zap.Int("landed", out.Landed),
		zap.Float64("mean_speed", out.Mean),
		zap.Float64("max_speed", out.Max),
	)
	return out, nil
}
