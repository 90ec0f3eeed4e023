package landing

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/landsim/internal/control"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/optim"
	"github.com/san-kum/landsim/internal/physics"
	"github.com/san-kum/landsim/internal/sim"
)

const DefaultEps = 1e-4

type Hoverslam struct {
	Setup
	Eps     float64
	MaxIter int
}

func NewHoverslam(setup Setup, eps float64, maxIter int) *Hoverslam {
	if !(eps > 0) {
		eps = DefaultEps
	}
	return &Hoverslam{Setup: setup.withLogger(), Eps: eps, MaxIter: maxIter}
}

func (h *Hoverslam) Name() string { return StrategyHoverslam }

// Plan is the outcome of the ignition search.
type Plan struct {
	Ignition    float64
	ImpactSpeed float64
	// Snapped is set when the bracket midpoint fell on the unstable side and
	// the later bracket end was used instead.
	Snapped bool
	Search  optim.GoldenResult
}

// ImpactSpeed flies r0 with ignition at the given time and returns the
// touchdown speed. Unstable or aborted flights cost +Inf.
func (h *Hoverslam) ImpactSpeed(ctx context.Context, r0 dynamo.Rocket, ignition float64) float64 {
	res, err := h.Probe.Run(ctx, fresh(r0), control.Ignition{At: ignition}, h.Run)
	if err != nil || res.Status != sim.StatusLanded {
		return math.Inf(1)
	}
	return res.Speed()
}

// Plan searches [0, free-fall time] for the ignition time with the softest
// touchdown.
func (h *Hoverslam) Plan(ctx context.Context, r0 dynamo.Rocket) (Plan, error) {
	height := r0.Position.Z
	if !(height > 0) {
		return Plan{}, fmt.Errorf("%w: altitude must be positive, got %v", dynamo.ErrInvalidConfig, height)
	}
	upper := physics.FreeFallTime(height, r0.Gravity())

	gs := optim.GoldenSection{Eps: h.Eps, MaxIter: h.MaxIter, Logger: h.Logger.Named("golden")}
	search, err := gs.Minimize(ctx, func(t float64) float64 {
		return h.ImpactSpeed(ctx, r0, t)
	}, 0, upper)
	if err != nil {
		return Plan{Search: search}, fmt.Errorf("plan ignition: %w", err)
	}

	plan := Plan{Ignition: search.X, Search: search}
	plan.ImpactSpeed = h.ImpactSpeed(ctx, r0, plan.Ignition)
	if math.IsInf(plan.ImpactSpeed, 1) {
		plan.Ignition = search.Hi
		plan.ImpactSpeed = h.ImpactSpeed(ctx, r0, plan.Ignition)
		plan.Snapped = true
	}

	h.Logger.Info("ignition planned",
		zap.Float64("ignition", plan.Ignition),
		zap.Float64("free_fall_time", upper),
		zap.Float64("impact_speed", plan.ImpactSpeed),
		zap.Int("iterations", search.Iterations),
		zap.Bool("snapped", plan.Snapped),
	)
	return plan, nil
}

func (h *Hoverslam) Land(ctx context.Context, r0 dynamo.Rocket, observers ...dynamo.Observer) (*Report, error) {
	if err := preflight(r0, h.Logger); err != nil {
		return nil, err
	}

	plan, err := h.Plan(ctx, r0)
	if err != nil {
		return nil, err
	}

	res, err := h.fly(ctx, r0, control.Ignition{At: plan.Ignition}, observers)
	if err != nil {
		return nil, fmt.Errorf("hoverslam flight: %w", err)
	}

	h.Logger.Info("hoverslam complete",
		zap.Stringer("status", res.Status),
		zap.Float64("touchdown_speed", res.Speed()),
		zap.Float64("fuel_used", res.FuelUsed()),
		zap.Int("steps", res.Steps),
	)

	return &Report{
		Strategy:    StrategyHoverslam,
		Result:      res,
		Ignition:    plan.Ignition,
		Snapped:     plan.Snapped,
		Iterations:  plan.Search.Iterations,
		Evaluations: plan.Search.Evaluations,
		Converged:   true,
	}, nil
}
