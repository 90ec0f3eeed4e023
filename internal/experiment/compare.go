package experiment

import (
	"context"
	"math"

	"github.com/san-kum/landsim/internal/control"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/events"
	"github.com/san-kum/landsim/internal/physics"
	"github.com/san-kum/landsim/internal/sim"
)

// Comparison is the error of one integrator against the closed-form
// constant-gravity fall.
type Comparison struct {
	Integrator    string
	Dt            float64
	Steps         int
	TouchdownTime float64
	Speed         float64
	TimeError     float64
	SpeedError    float64
}

// CompareIntegrators drops the configured rocket, engine off, under constant
// gravity and measures each integrator against the analytic touchdown.
func CompareIntegrators(ctx context.Context, reg *Registry, r0 dynamo.Rocket, names []string, dts []float64) ([]Comparison, error) {
	g := r0.Gravity()
	h := r0.Position.Z
	wantT := physics.FreeFallTime(h, g)
	wantV := physics.FreeFallSpeed(h, g)

	var out []Comparison
	for _, name := range names {
		integ, err := reg.GetIntegrator(name)
		if err != nil {
			return nil, err
		}
		s := sim.New(physics.Uniform{G: g}, integ,
			sim.WithDetector(events.NewDetector()),
			sim.WithInterpolator(events.NewLinear()),
		)
		for _, dt := range dts {
			res, err := s.Run(ctx, r0.Restart(), control.NewNone(), sim.Config{Dt: dt})
			if err != nil {
				return nil, err
			}
			out = append(out, Comparison{
				Integrator:    name,
				Dt:            dt,
				Steps:         res.Steps,
				TouchdownTime: res.Final.Time,
				Speed:         res.Speed(),
				TimeError:     math.Abs(res.Final.Time - wantT),
				SpeedError:    math.Abs(res.Speed() - wantV),
			})
		}
	}
	return out, nil
}
