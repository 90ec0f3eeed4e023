package integrators

import "github.com/san-kum/landsim/internal/dynamo"

// stage returns a copy of r advanced by h using the given derivatives. The
// copy burns propellant at the start-of-step throttle, which is constant over
// the step.
func stage(r dynamo.Rocket, v, a dynamo.Vec3, h float64) dynamo.Rocket {
	r.Position = r.Position.Add(v.Scale(h))
	r.Velocity = r.Velocity.Add(a.Scale(h))
	r.Time += h
	r.Burn(h)
	return r
}
