package optim

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestGoldenSection_Quadratic(t *testing.T) {
	g := NewWithT(t)

	gs := &GoldenSection{Eps: 1e-6}
	res, err := gs.Minimize(context.Background(), func(x float64) float64 { return (x - 2) * (x - 2) }, 0, 5)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.X).To(BeNumerically("~", 2, 1e-5))
	g.Expect(res.Width()).To(BeNumerically("<=", 1e-6))
}

func TestGoldenSection_OneEvaluationPerIteration(t *testing.T) {
	g := NewWithT(t)

	calls := 0
	f := func(x float64) float64 {
		calls++
		return math.Abs(x - 0.7)
	}
	res, err := (&GoldenSection{Eps: 1e-4}).Minimize(context.Background(), f, 0, 1)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Evaluations).To(Equal(res.Iterations + 2))
	g.Expect(calls).To(Equal(res.Evaluations))
}

func TestGoldenSection_BracketShrinksByInversePhi(t *testing.T) {
	g := NewWithT(t)

	res, err := (&GoldenSection{Eps: 1e-3}).Minimize(context.Background(), math.Sin, 3, 6)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Trace).NotTo(BeEmpty())

	prev := Bracket{3, 6}
	for _, b := range res.Trace {
		g.Expect(b.Width() / prev.Width()).To(BeNumerically("~", invPhi, 1e-6))
		g.Expect(b.Lo).To(BeNumerically(">=", prev.Lo))
		g.Expect(b.Hi).To(BeNumerically("<=", prev.Hi))
		prev = b
	}
	g.Expect(res.X).To(BeNumerically("~", 3*math.Pi/2, 1e-3))
}

func TestGoldenSection_InfiniteRegionBoundary(t *testing.T) {
	g := NewWithT(t)

	// Left of the edge the cost is infinite; right of it, it grows with x.
	const edge = 1.3
	f := func(x float64) float64 {
		if x < edge {
			return math.Inf(1)
		}
		return x
	}
	res, err := (&GoldenSection{Eps: 1e-5}).Minimize(context.Background(), f, 0, 4)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.Lo).To(BeNumerically("<=", edge))
	g.Expect(res.Hi).To(BeNumerically(">=", edge))
	g.Expect(f(res.Hi)).To(BeNumerically("<", math.Inf(1)))
}

func TestGoldenSection_IterationBudget(t *testing.T) {
	g := NewWithT(t)

	res, err := (&GoldenSection{Eps: 1e-9, MaxIter: 5}).Minimize(context.Background(), math.Abs, -1, 1)

	g.Expect(err).To(MatchError(ErrNotConverged))
	g.Expect(res.Iterations).To(Equal(5))
	g.Expect(res.Width()).To(BeNumerically("<", 2))
	g.Expect(res.X).To(Equal(res.Mid()))
}

func TestGoldenSection_InvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		eps    float64
		lo, hi float64
	}{
		{"zero eps", 0, 0, 1},
		{"nan eps", math.NaN(), 0, 1},
		{"empty interval", 1e-3, 1, 1},
		{"reversed interval", 1e-3, 2, 1},
		{"unbounded", 1e-3, 0, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			_, err := (&GoldenSection{Eps: tt.eps}).Minimize(context.Background(), math.Abs, tt.lo, tt.hi)
			g.Expect(err).To(MatchError(ErrInvalidArgument))
		})
	}
}

func TestGoldenSection_Cancelled(t *testing.T) {
	g := NewWithT(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&GoldenSection{Eps: 1e-6}).Minimize(ctx, math.Abs, -1, 1)

	g.Expect(err).To(MatchError(context.Canceled))
}
