package landing

import (
	"github.com/san-kum/landsim/internal/control"
	"github.com/san-kum/landsim/internal/sim"
)

const (
	StrategyHoverslam = "hoverslam"
	StrategyPID       = "pid"
)

// Report summarises one landing.
type Report struct {
	Strategy string
	Result   *sim.Result

	// Hoverslam
	Ignition float64
	Snapped  bool

	// PID
	Gains []float64
	PID   *control.PID
	Cost  float64

	// Iterations and Evaluations count the search that picked the plan.
	Iterations  int
	Evaluations int
	Converged   bool
}
