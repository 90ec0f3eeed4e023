package landing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/landsim/internal/control"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/optim"
)

const DefaultTolerance = 1e-4

type PIDLanding struct {
	Setup
	Weights   control.Weights
	Seeds     []float64
	Initial   []float64
	Tolerance float64
	MaxIter   int
}

// NewPIDLanding substitutes the default weights or step seeds when the given
// ones are all zero. Missing initial gains start from zero.
func NewPIDLanding(setup Setup, weights control.Weights, seeds, initial []float64, tolerance float64, maxIter int) *PIDLanding {
	setup = setup.withLogger()
	if weights.IsZero() {
		weights = control.DefaultWeights()
		setup.Logger.Warn("all cost weights are zero, using defaults", zap.Float64s("weights", weights.Slice()))
	}
	if allZero(seeds) {
		seeds = control.DefaultStepSeeds()
		setup.Logger.Warn("all twiddle step seeds are zero, using defaults", zap.Float64s("seeds", seeds))
	}
	if len(initial) == 0 {
		initial = make([]float64, len(seeds))
	}
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}
	return &PIDLanding{
		Setup:     setup,
		Weights:   weights,
		Seeds:     append([]float64(nil), seeds...),
		Initial:   append([]float64(nil), initial...),
		Tolerance: tolerance,
		MaxIter:   maxIter,
	}
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func (p *PIDLanding) Name() string { return StrategyPID }

// Cost flies r0 under a fresh PID with the given gains and scores the
// touchdown. Unstable or aborted flights cost +Inf.
func (p *PIDLanding) Cost(ctx context.Context, r0 dynamo.Rocket, gains []float64) float64 {
	pid, err := control.NewPIDFromGains(gains)
	if err != nil {
		return math.Inf(1)
	}
	res, err := p.Probe.Run(ctx, fresh(r0), control.NewLanding(pid), p.Run)
	if err != nil {
		return math.Inf(1)
	}
	return p.Weights.Cost(res.Final, res.FuelUsed())
}

// Tune runs Twiddle from the initial gains. When the iteration budget runs out
// the best gains found are returned together with optim.ErrNotConverged.
func (p *PIDLanding) Tune(ctx context.Context, r0 dynamo.Rocket) (optim.TwiddleResult, error) {
	tw := optim.Twiddle{Tolerance: p.Tolerance, MaxIter: p.MaxIter, Logger: p.Logger.Named("twiddle")}
	res, err := tw.Minimize(ctx, func(gains []float64) float64 {
		return p.Cost(ctx, r0, gains)
	}, p.Initial, p.Seeds)

	fields := []zap.Field{
		zap.Float64s("gains", res.Params),
		zap.Float64("cost", res.Cost),
		zap.Int("iterations", res.Iterations),
		zap.Int("evaluations", res.Evaluations),
	}
	switch {
	case errors.Is(err, optim.ErrNotConverged):
		p.Logger.Warn("twiddle budget exhausted", append(fields, zap.Error(err))...)
	case err != nil:
		return res, fmt.Errorf("tune pid: %w", err)
	default:
		p.Logger.Info("pid tuned", fields...)
	}
	return res, err
}

func (p *PIDLanding) Land(ctx context.Context, r0 dynamo.Rocket, observers ...dynamo.Observer) (*Report, error) {
	if err := preflight(r0, p.Logger); err != nil {
		return nil, err
	}

	tuned, err := p.Tune(ctx, r0)
	converged := err == nil
	if err != nil && !errors.Is(err, optim.ErrNotConverged) {
		return nil, err
	}

	pid, err := control.NewPIDFromGains(tuned.Params)
	if err != nil {
		return nil, err
	}
	policy := control.NewLanding(pid)
	policy.Reset()

	res, err := p.fly(ctx, r0, policy, observers)
	if err != nil {
		return nil, fmt.Errorf("pid flight: %w", err)
	}
	cost := p.Weights.Cost(res.Final, res.FuelUsed())

	p.Logger.Info("pid landing complete",
		zap.Stringer("status", res.Status),
		zap.Float64("touchdown_speed", res.Speed()),
		zap.Float64("fuel_used", res.FuelUsed()),
		zap.Float64("cost", cost),
		zap.Stringer("pid", pid),
	)

	return &Report{
		Strategy:    StrategyPID,
		Result:      res,
		Gains:       pid.Gains(),
		PID:         pid,
		Cost:        cost,
		Iterations:  tuned.Iterations,
		Evaluations: tuned.Evaluations,
		Converged:   converged,
	}, nil
}
