package physics

import (
	"math"

	"github.com/san-kum/landsim/internal/dynamo"
)

// Gravity is the nominal force law: thrust along +Z against the planet's
// gravity evaluated at the current altitude.
type Gravity struct{}

func (Gravity) Acceleration(r dynamo.Rocket) dynamo.Vec3 {
	m := r.Mass()
	return dynamo.Vec3{Z: (r.Thrust() - m*r.Gravity()) / m}
}

// Uniform replaces the inverse-square field with a constant one. Closed-form
// trajectories exist for it, which makes it the reference for accuracy checks.
type Uniform struct {
	G float64
}

func (u Uniform) Acceleration(r dynamo.Rocket) dynamo.Vec3 {
	m := r.Mass()
	return dynamo.Vec3{Z: (r.Thrust() - m*u.G) / m}
}

// FreeFallTime returns the time to fall height h from rest in a uniform field g.
func FreeFallTime(h, g float64) float64 {
	return math.Sqrt(2 * h / g)
}

// FreeFallAltitude returns the altitude after t seconds of unpowered fall from rest at h.
func FreeFallAltitude(h, g, t float64) float64 {
	return h - 0.5*g*t*t
}

// FreeFallSpeed returns the speed reached after falling height h from rest.
func FreeFallSpeed(h, g float64) float64 {
	return math.Sqrt(2 * g * h)
}
