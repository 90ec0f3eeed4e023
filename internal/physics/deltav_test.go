package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/landsim/internal/dynamo"
)

func TestDeltaV_HandComputed(t *testing.T) {
	eng := dynamo.Engine{Thrust: 10000, Consumption: 5} // u = 2000 m/s
	dry, fuel, g, h := 1000.0, 200.0, 9.8, 500.0

	got := DeltaV(eng, dry, fuel, g)
	want := 2000*math.Log(1200.0/1000.0) - 9.8*(200.0/5.0)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("DeltaV = %.6f, want %.6f", got, want)
	}

	required := RequiredDeltaV(h, g)
	if math.Abs(required-98.9949) > 1e-3 {
		t.Errorf("RequiredDeltaV = %.4f, want ~98.99", required)
	}

	// 364.64 - 392 < 98.99: the gravity loss alone eats the whole budget.
	if got > required {
		t.Errorf("expected infeasible: available %.2f, required %.2f", got, required)
	}
}

func TestCheckFeasible(t *testing.T) {
	earth := dynamo.Planet{Mass: 5.972, Radius: 6371}

	tests := []struct {
		name     string
		rocket   dynamo.Rocket
		feasible bool
	}{
		{
			"earth lander",
			dynamo.NewRocket(1000, 150, 1000, dynamo.Engine{Thrust: 20000, Consumption: 5}, earth),
			true,
		},
		{
			"weak engine",
			dynamo.NewRocket(1000, 200, 500, dynamo.Engine{Thrust: 10000, Consumption: 5}, earth),
			false,
		},
		{
			"dry tank",
			dynamo.NewRocket(1000, 0, 500, dynamo.Engine{Thrust: 20000, Consumption: 5}, earth),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFeasible(tt.rocket)
			if tt.feasible && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.feasible {
				var inf *InfeasibleError
				if !errors.As(err, &inf) {
					t.Fatalf("expected *InfeasibleError, got %v", err)
				}
				if !errors.Is(err, dynamo.ErrInfeasible) {
					t.Error("error should wrap dynamo.ErrInfeasible")
				}
				if inf.Shortfall() <= 0 {
					t.Errorf("shortfall = %v, want positive", inf.Shortfall())
				}
			}
		})
	}
}

func TestCheckFeasible_InvalidParameters(t *testing.T) {
	r := dynamo.NewRocket(0, 100, 100, dynamo.Engine{Thrust: 1000, Consumption: 1}, dynamo.Planet{Mass: 5.972, Radius: 6371})
	if err := CheckFeasible(r); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
