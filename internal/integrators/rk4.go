package integrators

import "github.com/san-kum/landsim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta scheme.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (rk *RK4) Order() int { return 4 }

func (rk *RK4) Step(law dynamo.ForceLaw, r dynamo.Rocket, dt float64) dynamo.Rocket {
	half := dt * 0.5

	v1 := r.Velocity
	a1 := law.Acceleration(r)

	s2 := stage(r, v1, a1, half)
	v2 := s2.Velocity
	a2 := law.Acceleration(s2)

	s3 := stage(r, v2, a2, half)
	v3 := s3.Velocity
	a3 := law.Acceleration(s3)

	s4 := stage(r, v3, a3, dt)
	v4 := s4.Velocity
	a4 := law.Acceleration(s4)

	dt6 := dt / 6.0
	r.Position = r.Position.Add(weighted(v1, v2, v3, v4).Scale(dt6))
	r.Velocity = r.Velocity.Add(weighted(a1, a2, a3, a4).Scale(dt6))
	r.Acceleration = weighted(a1, a2, a3, a4).Scale(1.0 / 6.0)
	r.Time += dt

	// Only the combined state is clamped; the stage copies above clamp their
	// own tank for their own force evaluation and are then discarded.
	r.Burn(dt)
	return r
}

func weighted(k1, k2, k3, k4 dynamo.Vec3) dynamo.Vec3 {
	return k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
}
