// Package events detects terminal conditions after each integration step and
// corrects the final state to the exact event boundary.
package events

import (
	"math"

	"github.com/san-kum/landsim/internal/dynamo"
)

// DefaultUnstableAfter is the release time after which upward motion is
// treated as divergence.
const DefaultUnstableAfter = 1.0

// Detector flags ground contact, instability and fuel exhaustion.
type Detector struct {
	// UnstableAfter is the elapsed time (s) after which a climbing vehicle is
	// considered unstable.
	UnstableAfter float64
}

func NewDetector() *Detector {
	return &Detector{UnstableAfter: DefaultUnstableAfter}
}

// Detect classifies the step from prev to curr. On instability the vertical
// velocity of curr is overwritten with +Inf so downstream cost functions can
// recognise the failure without an error path.
func (d *Detector) Detect(curr *dynamo.Rocket, prev dynamo.Rocket) dynamo.Event {
	if curr.Position.Z <= 0 && prev.Position.Z > 0 {
		return dynamo.EventGroundContact
	}

	if curr.Velocity.Z > 0 && curr.Time > d.UnstableAfter {
		curr.Velocity.Z = math.Inf(1)
		return dynamo.EventUnstable
	}

	if curr.FuelMass == 0 && prev.FuelMass > 0 {
		return dynamo.EventOutOfFuel
	}

	return dynamo.EventNone
}

// Failed reports whether a state carries the instability sentinel.
func Failed(r dynamo.Rocket) bool {
	return math.IsInf(r.Velocity.Z, 1)
}
