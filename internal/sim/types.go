package sim

import (
	"math"

	"github.com/san-kum/landsim/internal/dynamo"
)

// Status is the driver state machine: Running -> {Running, Landed, Failed}.
type Status int

const (
	StatusRunning Status = iota
	StatusLanded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusLanded:
		return "landed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Config struct {
	Dt float64
	// MaxSteps caps a run; zero disables the cap.
	MaxSteps int
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.002,
		MaxSteps: 5_000_000,
	}
}

type Result struct {
	Initial dynamo.Rocket
	Final   dynamo.Rocket
	Status  Status
	Event   dynamo.Event
	Steps   int

	FuelExhausted   bool
	FuelExhaustedAt float64

	Metrics map[string]float64
}

// Speed returns the absolute vertical speed of the final state. A failed run
// carries +Inf.
func (r *Result) Speed() float64 {
	return math.Abs(r.Final.Velocity.Z)
}

func (r *Result) FuelUsed() float64 {
	return r.Initial.FuelMass - r.Final.FuelMass
}
