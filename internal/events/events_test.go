package events

import (
	"math"
	"testing"

	"github.com/san-kum/landsim/internal/dynamo"
)

func TestDetector(t *testing.T) {
	tests := []struct {
		name string
		prev dynamo.Rocket
		curr dynamo.Rocket
		want dynamo.Event
	}{
		{
			"descending",
			dynamo.Rocket{Position: dynamo.Vec3{Z: 10}, Velocity: dynamo.Vec3{Z: -5}, Time: 2, FuelMass: 5},
			dynamo.Rocket{Position: dynamo.Vec3{Z: 9.9}, Velocity: dynamo.Vec3{Z: -5}, Time: 2.02, FuelMass: 5},
			dynamo.EventNone,
		},
		{
			"crossing",
			dynamo.Rocket{Position: dynamo.Vec3{Z: 0.05}, Velocity: dynamo.Vec3{Z: -5}, Time: 2},
			dynamo.Rocket{Position: dynamo.Vec3{Z: -0.05}, Velocity: dynamo.Vec3{Z: -5}, Time: 2.02},
			dynamo.EventGroundContact,
		},
		{
			"already below ground",
			dynamo.Rocket{Position: dynamo.Vec3{Z: 0}, Velocity: dynamo.Vec3{Z: -5}, Time: 0.5},
			dynamo.Rocket{Position: dynamo.Vec3{Z: -0.1}, Velocity: dynamo.Vec3{Z: -5}, Time: 0.52},
			dynamo.EventNone,
		},
		{
			"climbing early",
			dynamo.Rocket{Position: dynamo.Vec3{Z: 10}, Time: 0.5},
			dynamo.Rocket{Position: dynamo.Vec3{Z: 10.1}, Velocity: dynamo.Vec3{Z: 1}, Time: 0.52},
			dynamo.EventNone,
		},
		{
			"climbing late",
			dynamo.Rocket{Position: dynamo.Vec3{Z: 10}, Time: 3},
			dynamo.Rocket{Position: dynamo.Vec3{Z: 10.1}, Velocity: dynamo.Vec3{Z: 1}, Time: 3.02},
			dynamo.EventUnstable,
		},
		{
			"tank emptied",
			dynamo.Rocket{Position: dynamo.Vec3{Z: 10}, Velocity: dynamo.Vec3{Z: -1}, Time: 3, FuelMass: 0.01},
			dynamo.Rocket{Position: dynamo.Vec3{Z: 9.98}, Velocity: dynamo.Vec3{Z: -1}, Time: 3.02},
			dynamo.EventOutOfFuel,
		},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curr := tt.curr
			if got := d.Detect(&curr, tt.prev); got != tt.want {
				t.Errorf("Detect() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetector_UnstableSentinel(t *testing.T) {
	d := NewDetector()
	prev := dynamo.Rocket{Position: dynamo.Vec3{Z: 10}, Time: 4}
	curr := dynamo.Rocket{Position: dynamo.Vec3{Z: 10.2}, Velocity: dynamo.Vec3{Z: 2}, Time: 4.02}

	d.Detect(&curr, prev)
	if !Failed(curr) {
		t.Errorf("velocity = %v, want +Inf sentinel", curr.Velocity.Z)
	}
}

func TestDetector_ConfigurableThreshold(t *testing.T) {
	d := &Detector{UnstableAfter: 5}
	prev := dynamo.Rocket{Position: dynamo.Vec3{Z: 10}, Time: 3}
	curr := dynamo.Rocket{Position: dynamo.Vec3{Z: 10.2}, Velocity: dynamo.Vec3{Z: 2}, Time: 3.02}

	if got := d.Detect(&curr, prev); got != dynamo.EventNone {
		t.Errorf("Detect() = %s before threshold, want none", got)
	}
}

func TestLinear_Exactness(t *testing.T) {
	prev := dynamo.Rocket{
		Position: dynamo.Vec3{X: 1, Y: 2, Z: 0.3},
		Velocity: dynamo.Vec3{X: 0.5, Z: -4},
		Time:     7.0,
		FuelMass: 20,
	}
	curr := dynamo.Rocket{
		Position: dynamo.Vec3{X: 1.1, Y: 2, Z: -0.1},
		Velocity: dynamo.Vec3{X: 0.7, Z: -3.6},
		Time:     7.1,
		FuelMass: 19,
	}

	NewLinear().Interpolate(&curr, prev, dynamo.EventGroundContact)

	if curr.Position.Z != 0 {
		t.Errorf("altitude = %v, want exactly 0", curr.Position.Z)
	}
	if !(curr.Time > 7.0 && curr.Time < 7.1) {
		t.Errorf("time = %v, want strictly inside (7.0, 7.1)", curr.Time)
	}

	const alpha = 0.75
	checks := []struct {
		name      string
		got, want float64
	}{
		{"time", curr.Time, 7.0 + alpha*0.1},
		{"x", curr.Position.X, 1 + alpha*0.1},
		{"y", curr.Position.Y, 2},
		{"vx", curr.Velocity.X, 0.5 + alpha*0.2},
		{"vz", curr.Velocity.Z, -4 + alpha*0.4},
		{"fuel", curr.FuelMass, 20 - alpha},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s = %.12f, want %.12f", c.name, c.got, c.want)
		}
	}
}

func TestLinear_IgnoresOtherEvents(t *testing.T) {
	prev := dynamo.Rocket{Position: dynamo.Vec3{Z: 10}, Time: 4}
	curr := dynamo.Rocket{Position: dynamo.Vec3{Z: 10.2}, Velocity: dynamo.Vec3{Z: math.Inf(1)}, Time: 4.02}
	before := curr

	NewLinear().Interpolate(&curr, prev, dynamo.EventUnstable)
	if curr != before {
		t.Error("unstable state should be left uninterpolated")
	}
}
