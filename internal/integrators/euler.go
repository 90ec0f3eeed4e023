package integrators

import "github.com/san-kum/landsim/internal/dynamo"

// Euler is the first-order semi-implicit scheme. Velocity is updated first and the new
// velocity carries the position.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Order() int { return 1 }

func (e *Euler) Step(law dynamo.ForceLaw, r dynamo.Rocket, dt float64) dynamo.Rocket {
	a := law.Acceleration(r)

	r.Acceleration = a
	r.Velocity = r.Velocity.Add(a.Scale(dt))
	r.Position = r.Position.Add(r.Velocity.Scale(dt))
	r.Time += dt
	r.Burn(dt)
	return r
}
