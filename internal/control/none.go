package control

import "github.com/san-kum/landsim/internal/dynamo"

// None keeps the engine off for the whole flight.
type None struct{}

func NewNone() None { return None{} }

func (None) Throttle(dynamo.Rocket, float64) float64 { return 0 }
