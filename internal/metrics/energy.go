package metrics

import (
	"math"

	"github.com/san-kum/landsim/internal/dynamo"
)

// Energy reports the kinetic energy (J) of the last observed state, which at
// the end of a run is the energy dissipated on touchdown.
type Energy struct {
	name string
	last float64
}

func NewEnergy() *Energy {
	return &Energy{name: "impact_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(r dynamo.Rocket, _ float64) {
	v := r.Velocity.Norm()
	if math.IsInf(v, 0) {
		e.last = math.Inf(1)
		return
	}
	e.last = 0.5 * r.Mass() * v * v
}

func (e *Energy) Value() float64 { return e.last }

func (e *Energy) Reset() { e.last = 0 }
