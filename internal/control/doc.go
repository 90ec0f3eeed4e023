// Package control provides throttle policies for a vertical descent.
//
// Policies implement [dynamo.Policy] and are consulted by the simulation
// driver before each integration step:
//
//   - [Ignition]: engine off until a fixed time, full thrust afterwards
//   - [Landing]: PID tracking of the ideal descent velocity profile
//   - [None]: engine always off
//
// # Usage
//
//	pid := control.NewPID(kp, ki, kd)
//	policy := control.NewLanding(pid)
//	res, err := sim.Run(ctx, r0, policy, cfg)
//
// [PID] implements GetParams/SetParam for live tuning.
package control
