package landing_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/landing"
	"github.com/san-kum/landsim/internal/optim"
	"github.com/san-kum/landsim/internal/physics"
	"github.com/san-kum/landsim/internal/sim"
)

var _ = Describe("Hoverslam", func() {
	var (
		ctx context.Context
		r0  dynamo.Rocket
		h   *landing.Hoverslam
	)

	BeforeEach(func() {
		ctx = context.Background()
		r0 = earthLander()
		h = landing.NewHoverslam(newSetup(0.002), 1e-4, 0)
	})

	Describe("ImpactSpeed", func() {
		It("is infinite when the engine lights at release", func() {
			Expect(h.ImpactSpeed(ctx, r0, 0)).To(BeNumerically("==", math.Inf(1)))
		})

		It("matches free fall when ignition comes too late", func() {
			g := r0.Gravity()
			late := physics.FreeFallTime(r0.Position.Z, g)
			Expect(h.ImpactSpeed(ctx, r0, late)).To(BeNumerically("~", physics.FreeFallSpeed(r0.Position.Z, g), 0.5))
		})

		It("starts every probe from a clean copy", func() {
			dirty := r0
			dirty.Time = 3
			dirty.Throttle = 1

			first := h.ImpactSpeed(ctx, r0, 10)
			Expect(h.ImpactSpeed(ctx, r0, 10)).To(Equal(first))
			Expect(h.ImpactSpeed(ctx, dirty, 10)).To(Equal(first))
			Expect(r0).To(Equal(earthLander()))
		})
	})

	Describe("Plan", func() {
		It("finds an ignition time inside the free-fall window", func() {
			plan, err := h.Plan(ctx, r0)
			Expect(err).NotTo(HaveOccurred())

			upper := physics.FreeFallTime(r0.Position.Z, r0.Gravity())
			Expect(plan.Ignition).To(BeNumerically(">", 0))
			Expect(plan.Ignition).To(BeNumerically("<", upper))
			Expect(plan.Search.Width()).To(BeNumerically("<=", 1e-4))
			Expect(plan.Search.Evaluations).To(Equal(plan.Search.Iterations + 2))
			Expect(plan.ImpactSpeed).To(BeNumerically("<", 1))
		})

		It("never gets worse as eps shrinks", func() {
			var prev *landing.Plan
			prevBound := math.Inf(1)
			for _, eps := range []float64{1e-1, 1e-2, 1e-3, 1e-4} {
				plan, err := landing.NewHoverslam(newSetup(0.002), eps, 0).Plan(ctx, r0)
				Expect(err).NotTo(HaveOccurred())

				// The brackets are nested and the late end always lands, so
				// its touchdown speed bounds the plan from above.
				bound := h.ImpactSpeed(ctx, r0, plan.Search.Hi)
				Expect(bound).To(BeNumerically("<", math.Inf(1)))
				Expect(bound).To(BeNumerically("<=", prevBound+1e-9))
				Expect(plan.ImpactSpeed).To(BeNumerically("<=", bound+1e-9))
				if prev != nil {
					Expect(plan.Search.Lo).To(BeNumerically(">=", prev.Search.Lo))
					Expect(plan.Search.Hi).To(BeNumerically("<=", prev.Search.Hi))
				}
				prevBound = bound
				p := plan
				prev = &p
			}
			Expect(prevBound).To(BeNumerically("<", 1))
		})

		It("rejects a rocket on the ground", func() {
			r0.Position.Z = 0
			_, err := h.Plan(ctx, r0)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})

		It("stops on cancellation", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := h.Plan(cctx, r0)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})

		It("reports a search that runs out of iterations", func() {
			_, err := landing.NewHoverslam(newSetup(0.002), 1e-4, 3).Plan(ctx, r0)
			Expect(err).To(MatchError(optim.ErrNotConverged))
		})
	})

	Describe("Land", func() {
		It("touches down softly in the Earth scenario", func() {
			rec := sim.NewRecorder(1)
			report, err := h.Land(ctx, r0, rec)
			Expect(err).NotTo(HaveOccurred())

			res := report.Result
			Expect(report.Strategy).To(Equal(landing.StrategyHoverslam))
			Expect(res.Status).To(Equal(sim.StatusLanded))
			Expect(res.Event).To(Equal(dynamo.EventGroundContact))
			Expect(res.Final.Position.Z).To(BeZero())
			Expect(res.Speed()).To(BeNumerically("<", 1))
			Expect(res.Final.FuelMass).To(BeNumerically(">=", 0))
			Expect(res.FuelUsed()).To(BeNumerically(">", 0))
			Expect(report.Ignition).To(BeNumerically(">", 0))
			Expect(report.Iterations).To(BeNumerically(">", 0))
			Expect(res.Metrics).To(HaveKey("burn_time"))

			Expect(rec.Snapshots).NotTo(BeEmpty())
			Expect(rec.Snapshots[0].Time).To(BeZero())
			Expect(rec.Snapshots[len(rec.Snapshots)-1]).To(Equal(res.Final))
			Expect(len(rec.Snapshots)).To(BeNumerically("~", math.Floor(res.Final.Time)+2, 1))
		})

		It("refuses an infeasible mission without flying", func() {
			r0.FuelMass = 1
			rec := sim.NewRecorder(1)

			report, err := h.Land(ctx, r0, rec)
			Expect(report).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrInfeasible))

			var infeasible *physics.InfeasibleError
			Expect(errors.As(err, &infeasible)).To(BeTrue())
			Expect(infeasible.Shortfall()).To(BeNumerically(">", 0))
			Expect(rec.Snapshots).To(BeEmpty())
		})
	})
})
