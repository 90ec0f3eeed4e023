package optim

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// invPhi is 1/φ with φ = (1+√5)/2.
var invPhi = (math.Sqrt(5) - 1) / 2

type Bracket struct {
	Lo, Hi float64
}

func (b Bracket) Width() float64 { return b.Hi - b.Lo }
func (b Bracket) Mid() float64   { return (b.Lo + b.Hi) / 2 }

type GoldenSection struct {
	// Eps is the final bracket width.
	Eps     float64
	MaxIter int
	Logger  *zap.Logger
}

type GoldenResult struct {
	Bracket
	// X is the midpoint of the final bracket.
	X           float64
	Iterations  int
	Evaluations int
	// Trace holds the bracket after every iteration.
	Trace []Bracket
}

// Minimize narrows [lo, hi] around a minimum of f. The function is expected
// to be unimodal on the interval; +Inf values are treated as ordinary large
// costs, so a minimum sitting on the edge of an infinite region is still
// bracketed.
func (g *GoldenSection) Minimize(ctx context.Context, f func(float64) float64, lo, hi float64) (GoldenResult, error) {
	log := loggerOrNop(g.Logger)

	if !(g.Eps > 0) {
		return GoldenResult{}, fmt.Errorf("%w: eps must be positive, got %v", ErrInvalidArgument, g.Eps)
	}
	if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return GoldenResult{}, fmt.Errorf("%w: empty or unbounded interval [%v, %v]", ErrInvalidArgument, lo, hi)
	}

	res := GoldenResult{Bracket: Bracket{lo, hi}}
	finish := func() GoldenResult {
		res.X = res.Mid()
		return res
	}

	a, b := lo, hi
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)
	res.Evaluations = 2

	for b-a > g.Eps {
		if err := ctx.Err(); err != nil {
			return finish(), err
		}
		if g.MaxIter > 0 && res.Iterations >= g.MaxIter {
			return finish(), fmt.Errorf("%w: bracket width %.3g after %d iterations", ErrNotConverged, b-a, res.Iterations)
		}

		width := b - a
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
		res.Evaluations++
		res.Iterations++
		res.Bracket = Bracket{a, b}
		res.Trace = append(res.Trace, res.Bracket)

		log.Debug("golden section",
			zap.Int("iter", res.Iterations),
			zap.Float64("lo", a),
			zap.Float64("hi", b),
			zap.Float64("f_lo", fc),
			zap.Float64("f_hi", fd),
		)

		if b-a >= width {
			return finish(), fmt.Errorf("%w: bracket stalled at width %.3g", ErrNotConverged, b-a)
		}
	}

	return finish(), nil
}
