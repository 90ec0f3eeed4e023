package optim

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

const (
	twiddleGrow   = 1.1
	twiddleShrink = 0.9
)

// Twiddle is coordinate descent with adaptive step sizes.
type Twiddle struct {
	// Tolerance stops the search once the sum of steps falls to it.
	Tolerance float64
	MaxIter   int
	Logger    *zap.Logger
}

type TwiddleResult struct {
	Params      []float64
	Steps       []float64
	Cost        float64
	Iterations  int
	Evaluations int
}

// Minimize searches from p0 with initial steps dp0. f receives a private copy
// of the candidate. The returned cost is the best seen over the whole search.
func (tw *Twiddle) Minimize(ctx context.Context, f func([]float64) float64, p0, dp0 []float64) (TwiddleResult, error) {
	log := loggerOrNop(tw.Logger)

	if len(p0) == 0 || len(p0) != len(dp0) {
		return TwiddleResult{}, fmt.Errorf("%w: %d params with %d steps", ErrInvalidArgument, len(p0), len(dp0))
	}
	if !(tw.Tolerance > 0) {
		return TwiddleResult{}, fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidArgument, tw.Tolerance)
	}

	p := append([]float64(nil), p0...)
	dp := append([]float64(nil), dp0...)
	res := TwiddleResult{}

	eval := func() float64 {
		res.Evaluations++
		return f(append([]float64(nil), p...))
	}
	finish := func() TwiddleResult {
		res.Params = append([]float64(nil), p...)
		res.Steps = append([]float64(nil), dp...)
		return res
	}

	res.Cost = eval()

	for floats.Sum(dp) > tw.Tolerance {
		if err := ctx.Err(); err != nil {
			return finish(), err
		}
		if tw.MaxIter > 0 && res.Iterations >= tw.MaxIter {
			return finish(), fmt.Errorf("%w: step sum %.3g after %d iterations", ErrNotConverged, floats.Sum(dp), res.Iterations)
		}

		for i := range p {
			p[i] += dp[i]
			if c := eval(); c < res.Cost {
				res.Cost = c
				dp[i] *= twiddleGrow
				continue
			}

			p[i] -= 2 * dp[i]
			if c := eval(); c < res.Cost {
				res.Cost = c
				dp[i] *= twiddleGrow
				continue
			}

			p[i] += dp[i]
			dp[i] *= twiddleShrink
		}
		res.Iterations++

		log.Debug("twiddle",
			zap.Int("iter", res.Iterations),
			zap.Float64s("params", p),
			zap.Float64("step_sum", floats.Sum(dp)),
			zap.Float64("best", res.Cost),
		)
	}

	return finish(), nil
}
