package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/landsim/internal/dynamo"
)

// DeltaV is the Tsiolkovsky delta-v of a burn to depletion, minus the gravity
// loss accumulated over the full-throttle burn time:
//
//	dv = u*ln(wet/dry) - g*fuel/consumption
func DeltaV(engine dynamo.Engine, dryMass, fuelMass, g float64) float64 {
	u := engine.ExhaustVelocity()
	wet := dryMass + fuelMass
	return u*math.Log(wet/dryMass) - g*(fuelMass/engine.Consumption)
}

// RequiredDeltaV is the speed that has to be cancelled after falling height h.
func RequiredDeltaV(h, g float64) float64 {
	return FreeFallSpeed(h, g)
}

// AvailableDeltaV evaluates DeltaV with the gravity at the rocket's altitude.
func AvailableDeltaV(r dynamo.Rocket) float64 {
	return DeltaV(r.Engine, r.DryMass, r.FuelMass, r.Gravity())
}

// InfeasibleError reports a delta-v shortfall.
type InfeasibleError struct {
	Available float64
	Required  float64
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("available delta-v %.2f m/s, required %.2f m/s", e.Available, e.Required)
}

func (e *InfeasibleError) Unwrap() error { return dynamo.ErrInfeasible }

// Shortfall returns how much delta-v is missing.
func (e *InfeasibleError) Shortfall() float64 { return e.Required - e.Available }

// Feasible compares available and required delta-v for a rocket at apex.
func Feasible(r dynamo.Rocket) (available, required float64, ok bool) {
	g := r.Gravity()
	available = AvailableDeltaV(r)
	required = RequiredDeltaV(r.Position.Z, g)
	return available, required, available > required
}

// CheckFeasible returns an *InfeasibleError when the rocket cannot arrest its fall.
func CheckFeasible(r dynamo.Rocket) error {
	if r.DryMass <= 0 || r.Engine.Consumption <= 0 || r.Engine.Thrust <= 0 {
		return fmt.Errorf("%w: dry mass, thrust and consumption must be positive", dynamo.ErrInvalidConfig)
	}
	available, required, ok := Feasible(r)
	if !ok {
		return &InfeasibleError{Available: available, Required: required}
	}
	return nil
}
