package dynamo

import (
	"errors"
	"math"
	"testing"
)

var earth = Planet{Mass: 5.972, Radius: 6371}

func TestPlanet_Gravity(t *testing.T) {
	g0 := earth.Gravity(0)
	if math.Abs(g0-9.82) > 0.01 {
		t.Errorf("surface gravity = %.4f, want ~9.82", g0)
	}

	if g1 := earth.Gravity(10000); g1 >= g0 {
		t.Errorf("gravity should decrease with altitude: g(0)=%.6f g(10km)=%.6f", g0, g1)
	}
}

func TestEngine_ExhaustVelocity(t *testing.T) {
	e := Engine{Thrust: 10000, Consumption: 5}
	if got := e.ExhaustVelocity(); got != 2000 {
		t.Errorf("ExhaustVelocity() = %v, want 2000", got)
	}
}

func TestNewRocket(t *testing.T) {
	r := NewRocket(1000, 150, 1000, Engine{Thrust: 20000, Consumption: 5}, earth)

	if r.Position.Z != 1000 {
		t.Errorf("altitude = %v, want 1000", r.Position.Z)
	}
	if r.Velocity != (Vec3{}) {
		t.Errorf("velocity = %v, want zero", r.Velocity)
	}
	if r.Throttle != 0 || r.Time != 0 {
		t.Errorf("throttle/time = %v/%v, want 0/0", r.Throttle, r.Time)
	}
	if r.Mass() != 1150 {
		t.Errorf("Mass() = %v, want 1150", r.Mass())
	}
}

func TestRocket_SetThrottle(t *testing.T) {
	tests := []struct {
		name string
		fuel float64
		in   float64
		want float64
	}{
		{"nominal", 10, 0.4, 0.4},
		{"above one", 10, 1.7, 1},
		{"negative", 10, -0.2, 0},
		{"nan", 10, math.NaN(), 0},
		{"empty tank", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rocket{FuelMass: tt.fuel}
			r.SetThrottle(tt.in)
			if r.Throttle != tt.want {
				t.Errorf("SetThrottle(%v) -> %v, want %v", tt.in, r.Throttle, tt.want)
			}
		})
	}
}

func TestRocket_BurnClampsAndShutsDown(t *testing.T) {
	r := Rocket{Engine: Engine{Thrust: 1000, Consumption: 10}, FuelMass: 1}
	r.SetThrottle(1)

	r.Burn(0.05)
	if math.Abs(r.FuelMass-0.5) > 1e-12 || r.Throttle != 1 {
		t.Fatalf("after partial burn: fuel=%v throttle=%v", r.FuelMass, r.Throttle)
	}

	r.Burn(1)
	if r.FuelMass != 0 {
		t.Errorf("fuel = %v, want 0", r.FuelMass)
	}
	if r.Throttle != 0 {
		t.Errorf("throttle = %v, want 0 after exhaustion", r.Throttle)
	}
}

func TestRocket_CopyIsIndependent(t *testing.T) {
	a := NewRocket(1000, 150, 1000, Engine{Thrust: 20000, Consumption: 5}, earth)
	b := a
	b.Position.Z = 0
	b.FuelMass = 0

	if a.Position.Z != 1000 || a.FuelMass != 150 {
		t.Error("mutating a copy leaked into the original")
	}
}

func TestRocket_Restart(t *testing.T) {
	r := Rocket{Time: 12.5}
	if got := r.Restart().Time; got != 0 {
		t.Errorf("Restart().Time = %v, want 0", got)
	}
	if r.Time != 12.5 {
		t.Error("Restart mutated the receiver")
	}
}

func TestVec3_Lerp(t *testing.T) {
	a := Vec3{0, 2, 10}
	b := Vec3{4, 2, 0}
	got := a.Lerp(b, 0.25)
	want := Vec3{1, 2, 7.5}
	if got != want {
		t.Errorf("Lerp = %v, want %v", got, want)
	}
}

func TestEvent_Terminal(t *testing.T) {
	tests := []struct {
		ev       Event
		terminal bool
	}{
		{EventNone, false},
		{EventGroundContact, true},
		{EventUnstable, true},
		{EventOutOfFuel, false},
		{EventCustom, false},
	}

	for _, tt := range tests {
		if got := tt.ev.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tt.ev, got, tt.terminal)
		}
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 150, Time: 1.5, Wrapped: ErrStepBudget}
	expected := "step 150 (t=1.5000): dynamo: step budget exhausted before touchdown"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrStepBudget) {
		t.Error("SimulationError should unwrap to ErrStepBudget")
	}
}
