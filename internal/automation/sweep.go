package automation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/landsim/internal/config"
	"github.com/san-kum/landsim/internal/experiment"
	"github.com/san-kum/landsim/internal/landing"
)

var ErrInvalidSweep = errors.New("automation: invalid sweep")

// Sweep flies one strategy across evenly spaced values of a parameter.
type Sweep struct {
	Base     *config.Config
	Strategy string
	Param    string
	Min, Max float64
	Steps    int
}

type SweepPoint struct {
	Value  float64
	Report *landing.Report
	Err    error
}

func (s *Sweep) validate() error {
	if s.Base == nil {
		return fmt.Errorf("%w: no base configuration", ErrInvalidSweep)
	}
	if s.Steps < 2 {
		return fmt.Errorf("%w: need at least 2 steps, got %d", ErrInvalidSweep, s.Steps)
	}
	if _, ok := setters[s.Param]; !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidSweep, s.Param)
	}
	return nil
}

// RunSweep flies every point. Points that cannot land (an infeasible vehicle,
// a search that ran out of budget) carry their error; the sweep continues.
func RunSweep(ctx context.Context, sw *Sweep, reg *experiment.Registry, logger *zap.Logger) ([]SweepPoint, error) {
	if err := sw.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	strategy := sw.Strategy
	if strategy == "" {
		strategy = landing.StrategyHoverslam
	}

	step := (sw.Max - sw.Min) / float64(sw.Steps-1)
	points := make([]SweepPoint, 0, sw.Steps)

	for i := 0; i < sw.Steps; i++ {
		v := sw.Min + float64(i)*step
		cfg := sw.Base.Clone()
		setters[sw.Param](cfg, v)

		p := SweepPoint{Value: v}
		exp := experiment.New(fmt.Sprintf("%s=%g", sw.Param, v), strategy, cfg, logger)
		if p.Err = exp.Setup(reg, false); p.Err == nil {
			var out *experiment.Outcome
			if out, p.Err = exp.Run(ctx); p.Err == nil {
				p.Report = out.Report
			}
		}
		if ctx.Err() != nil {
			return points, ctx.Err()
		}

		logger.Info("sweep point",
			zap.Int("point", i+1),
			zap.Int("of", sw.Steps),
			zap.String("param", sw.Param),
			zap.Float64("value", v),
			zap.NamedError("error", p.Err),
		)
		points = append(points, p)
	}

	return points, nil
}
