// Package physics provides the force laws and closed-form references for a
// vertical powered descent.
//
// The force laws implement [dynamo.ForceLaw]:
//
//   - [Gravity]: engine thrust against inverse-square gravity at the current altitude
//   - [Uniform]: engine thrust against a constant gravitational field
//
// The package also hosts the pre-flight feasibility gate ([CheckFeasible]),
// built on the Tsiolkovsky rocket equation with a constant gravity-loss term.
//
// # Example
//
//	if err := physics.CheckFeasible(r0); err != nil {
//	    var inf *physics.InfeasibleError
//	    if errors.As(err, &inf) {
//	        fmt.Printf("short by %.2f m/s\n", inf.Shortfall())
//	    }
//	}
package physics
