// Package viz renders landings in the terminal.
//
//   - [ReportSummary], [RunSummary], [RunTable]: lipgloss panels and tables
//   - [FlightPlots]: asciigraph altitude, velocity and throttle plots
//   - [Replay]: a Bubble Tea model that plays a recorded flight back
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from apex
//	[ ]   - Step backward/forward
//	+ -   - Playback speed
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
