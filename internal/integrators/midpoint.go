package integrators

import "github.com/san-kum/landsim/internal/dynamo"

// Midpoint is the explicit second-order Runge-Kutta scheme.
type Midpoint struct{}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) Order() int { return 2 }

func (m *Midpoint) Step(law dynamo.ForceLaw, r dynamo.Rocket, dt float64) dynamo.Rocket {
	a1 := law.Acceleration(r)
	mid := stage(r, r.Velocity, a1, dt*0.5)
	a2 := law.Acceleration(mid)

	r.Acceleration = a2
	r.Position = r.Position.Add(mid.Velocity.Scale(dt))
	r.Velocity = r.Velocity.Add(a2.Scale(dt))
	r.Time += dt
	r.Burn(dt)
	return r
}
