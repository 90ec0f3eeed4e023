package landing_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/landsim/internal/control"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/integrators"
	"github.com/san-kum/landsim/internal/landing"
	"github.com/san-kum/landsim/internal/optim"
	"github.com/san-kum/landsim/internal/physics"
	"github.com/san-kum/landsim/internal/sim"
)

var _ = Describe("PIDLanding", func() {
	var (
		ctx context.Context
		r0  dynamo.Rocket
	)

	newPID := func(maxIter int) *landing.PIDLanding {
		return landing.NewPIDLanding(newSetup(0.01), control.DefaultWeights(), control.DefaultStepSeeds(), nil, 1e-4, maxIter)
	}

	BeforeEach(func() {
		ctx = context.Background()
		r0 = earthLander()
	})

	Describe("Cost", func() {
		It("scores zero gains as an unpowered crash", func() {
			p := newPID(1)
			want := physics.FreeFallSpeed(r0.Position.Z, r0.Gravity())
			Expect(p.Cost(ctx, r0, []float64{0, 0, 0})).To(BeNumerically("~", want, 0.5))
		})

		It("gives the same cost for the same gains", func() {
			p := newPID(1)
			gains := []float64{300, 5, 10}
			dirty := r0
			dirty.Time = 7
			dirty.Throttle = 1

			first := p.Cost(ctx, r0, gains)
			Expect(p.Cost(ctx, r0, gains)).To(Equal(first))
			Expect(p.Cost(ctx, dirty, gains)).To(Equal(first))
			Expect(gains).To(Equal([]float64{300, 5, 10}))
		})

		It("is infinite for malformed gains", func() {
			Expect(newPID(1).Cost(ctx, r0, []float64{1, 2})).To(BeNumerically("==", math.Inf(1)))
		})
	})

	Describe("Tune", func() {
		It("returns the best gains when the budget runs out", func() {
			p := newPID(2)
			res, err := p.Tune(ctx, r0)

			Expect(err).To(MatchError(optim.ErrNotConverged))
			Expect(res.Iterations).To(Equal(2))
			Expect(res.Params).To(HaveLen(3))
			Expect(res.Cost).To(BeNumerically("<=", p.Cost(ctx, r0, []float64{0, 0, 0})))
		})
	})

	Describe("Land", func() {
		It("flies the tuned controller to the ground", func() {
			p := newPID(4)
			rec := sim.NewRecorder(1)

			report, err := p.Land(ctx, r0, rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Strategy).To(Equal(landing.StrategyPID))
			Expect(report.Converged).To(BeFalse())
			Expect(report.Result.Status).To(Equal(sim.StatusLanded))
			Expect(report.Gains).To(HaveLen(3))
			Expect(report.PID).NotTo(BeNil())
			Expect(report.Cost).To(BeNumerically("<", math.Inf(1)))
			Expect(report.Cost).To(BeNumerically("<=", p.Cost(ctx, r0, []float64{0, 0, 0})+1e-6))
			Expect(report.Result.Final.FuelMass).To(BeNumerically(">=", 0))
			Expect(rec.Snapshots).NotTo(BeEmpty())
		})

		It("refuses an infeasible mission", func() {
			r0.FuelMass = 1
			report, err := newPID(1).Land(ctx, r0)
			Expect(report).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrInfeasible))
		})
	})

	Describe("NewPIDLanding", func() {
		It("falls back to the default triples and warns", func() {
			core, logs := observer.New(zap.WarnLevel)
			setup := landing.NewSetup(integrators.NewEuler(), 0, sim.Config{Dt: 0.01}, zap.New(core))

			p := landing.NewPIDLanding(setup, control.Weights{}, []float64{0, 0, 0}, nil, 0, 0)
			Expect(p.Weights).To(Equal(control.DefaultWeights()))
			Expect(p.Seeds).To(Equal(control.DefaultStepSeeds()))
			Expect(p.Initial).To(Equal([]float64{0, 0, 0}))
			Expect(p.Tolerance).To(Equal(landing.DefaultTolerance))
			Expect(logs.Len()).To(Equal(2))
		})

		It("keeps caller-supplied values", func() {
			w := control.Weights{Velocity: 2, Altitude: 0, Fuel: 0}
			p := landing.NewPIDLanding(newSetup(0.01), w, []float64{1, 0, 0}, []float64{5, 6, 7}, 1e-2, 0)
			Expect(p.Weights).To(Equal(w))
			Expect(p.Seeds).To(Equal([]float64{1, 0, 0}))
			Expect(p.Initial).To(Equal([]float64{5, 6, 7}))
		})
	})
})
