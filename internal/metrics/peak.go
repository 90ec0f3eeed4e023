package metrics

import (
	"math"

	"github.com/san-kum/landsim/internal/dynamo"
)

// standardGravity converts accelerations to g-load.
const standardGravity = 9.80665

// PeakLoad tracks the largest upward acceleration in units of g.
type PeakLoad struct {
	peak float64
}

func NewPeakLoad() *PeakLoad { return &PeakLoad{} }

func (p *PeakLoad) Name() string { return "peak_load_g" }

func (p *PeakLoad) Observe(r dynamo.Rocket, _ float64) {
	p.peak = math.Max(p.peak, r.Acceleration.Z/standardGravity)
}

func (p *PeakLoad) Value() float64 { return p.peak }
func (p *PeakLoad) Reset()         { p.peak = 0 }

// Default returns the metrics attached to every landing run.
func Default() []dynamo.Metric {
	return []dynamo.Metric{
		NewControlEffort(),
		NewBurnTime(),
		NewEnergy(),
		NewPeakLoad(),
	}
}
