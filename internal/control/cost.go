package control

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/events"
)

// Weights scale the terms of a landing cost.
type Weights struct {
	Velocity float64 `json:"velocity" yaml:"velocity"`
	Altitude float64 `json:"altitude" yaml:"altitude"`
	Fuel     float64 `json:"fuel" yaml:"fuel"`
}

func DefaultWeights() Weights {
	return Weights{Velocity: 1.0, Altitude: 1.0, Fuel: 0.1}
}

// DefaultStepSeeds are the initial Twiddle steps for [Kp, Ki, Kd].
func DefaultStepSeeds() []float64 {
	return []float64{10.0, 5.0, 1.0}
}

func (w Weights) IsZero() bool {
	return w == Weights{}
}

func (w Weights) Slice() []float64 {
	return []float64{w.Velocity, w.Altitude, w.Fuel}
}

// Cost scores a finished flight. A run that carries the instability sentinel
// costs +Inf.
func (w Weights) Cost(final dynamo.Rocket, fuelUsed float64) float64 {
	if events.Failed(final) {
		return math.Inf(1)
	}
	terms := []float64{
		math.Abs(final.Velocity.Z),
		math.Abs(final.Position.Z),
		fuelUsed,
	}
	return floats.Dot(w.Slice(), terms)
}
