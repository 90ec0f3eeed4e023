package control

import (
	"math"

	"github.com/san-kum/landsim/internal/dynamo"
)

// TargetVelocity is the ideal descent rate at the rocket's altitude:
// -sqrt(2 g(z) z), zero on or below the ground.
func TargetVelocity(r dynamo.Rocket) float64 {
	z := math.Max(r.Position.Z, 0)
	return -math.Sqrt(2 * r.Gravity() * z)
}

// Landing drives the vertical velocity onto the TargetVelocity profile with a
// PID acting on thrust in newtons.
type Landing struct {
	PID *PID
}

func NewLanding(pid *PID) *Landing {
	return &Landing{PID: pid}
}

func (l *Landing) Throttle(r dynamo.Rocket, dt float64) float64 {
	err := TargetVelocity(r) - r.Velocity.Z
	cmd := l.PID.Update(err, dt)

	maxThrust := r.Engine.Thrust
	if r.FuelMass <= 0 || maxThrust <= 0 || cmd <= 0 || math.IsNaN(cmd) {
		return 0
	}
	if cmd > maxThrust {
		cmd = maxThrust
	}
	return cmd / maxThrust
}

// Reset prepares the policy for a new flight.
func (l *Landing) Reset() {
	l.PID.Reset()
}
