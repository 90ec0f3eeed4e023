// Package landing flies a rocket from apex to touchdown with one of two
// strategies.
//
//   - [Hoverslam]: coast, then burn at full throttle from an ignition time
//     found by golden-section search on the touchdown speed.
//   - [PIDLanding]: track the ideal descent velocity with a PID whose gains
//     are tuned by Twiddle against a weighted landing cost.
//
// Every probe and trial starts from a copy of the caller's initial rocket with
// the clock reset, so searches never leak state between evaluations. Both
// strategies refuse infeasible missions before simulating anything.
package landing
