// Package dynamo provides the core primitives of a vertical powered descent.
//
// The package defines the state and the strategy contracts used by the
// simulation driver:
//
//   - [Rocket]: value-semantics vehicle state (position, velocity, mass split, throttle)
//   - [Planet], [Engine]: immutable per-run parameters
//   - [ForceLaw]: pure acceleration law evaluated at arbitrary sub-step states
//   - [Integrator]: fixed-step stepper advancing a [Rocket] by dt
//   - [Detector], [Interpolator]: event detection and boundary correction
//   - [Policy]: per-step throttle decision
//
// # Example
//
//	r0 := dynamo.NewRocket(1000, 150, 1000, engine, planet)
//	s := sim.New(physics.Gravity{}, integrators.NewRK4(), sim.WithDetector(events.NewDetector()))
//	res, _ := s.Run(ctx, r0, control.Ignition{At: 9.4}, sim.Config{Dt: 0.002})
//
// # Value Semantics
//
// A [Rocket] holds no pointers. Copying it is enough to isolate independent
// evaluations, which is what the planners rely on.
package dynamo
