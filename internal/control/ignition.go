package control

import "github.com/san-kum/landsim/internal/dynamo"

// Ignition is the hoverslam policy: coast until At, then burn at full
// throttle until touchdown or an empty tank. The step that straddles At burns
// at the fraction of the step that lies after it, so the flight depends
// continuously on At rather than on the step grid.
type Ignition struct {
	At float64
}

func (p Ignition) Throttle(r dynamo.Rocket, dt float64) float64 {
	switch {
	case r.Time >= p.At:
		return 1
	case dt > 0 && r.Time+dt > p.At:
		return (r.Time + dt - p.At) / dt
	default:
		return 0
	}
}
