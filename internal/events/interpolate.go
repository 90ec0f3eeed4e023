package events

import "github.com/san-kum/landsim/internal/dynamo"

// Linear back-interpolates a ground contact to the zero-altitude crossing.
type Linear struct{}

func NewLinear() *Linear {
	return &Linear{}
}

// Interpolate only acts on ground contact; other events are left as detected.
func (l *Linear) Interpolate(curr *dynamo.Rocket, prev dynamo.Rocket, ev dynamo.Event) {
	if ev != dynamo.EventGroundContact {
		return
	}

	// fraction of the step flown before the crossing
	alpha := prev.Position.Z / (prev.Position.Z - curr.Position.Z)

	curr.Time = prev.Time + alpha*(curr.Time-prev.Time)
	curr.Position.X = prev.Position.X + alpha*(curr.Position.X-prev.Position.X)
	curr.Position.Y = prev.Position.Y + alpha*(curr.Position.Y-prev.Position.Y)
	curr.Velocity = prev.Velocity.Lerp(curr.Velocity, alpha)
	curr.FuelMass = prev.FuelMass - alpha*(prev.FuelMass-curr.FuelMass)
	curr.Position.Z = 0
}
