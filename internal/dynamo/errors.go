package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInfeasible indicates the vehicle cannot arrest its fall with the fuel on board.
	ErrInfeasible = errors.New("dynamo: mission infeasible (insufficient delta-v)")

	// ErrUnstable indicates the vehicle climbed long after release.
	ErrUnstable = errors.New("dynamo: simulation unstable (vehicle moving upward)")

	// ErrStepBudget indicates a run exceeded its step cap before a terminal event.
	ErrStepBudget = errors.New("dynamo: step budget exhausted before touchdown")

	// ErrInvalidConfig indicates run parameters outside their valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   Rocket
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
