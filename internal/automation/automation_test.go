package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/landsim/internal/config"
	"github.com/san-kum/landsim/internal/dynamo"
	"github.com/san-kum/landsim/internal/experiment"
	"github.com/san-kum/landsim/internal/landing"
	"github.com/san-kum/landsim/internal/sim"
)

type memSaver struct {
	names []string
	snaps int
}

func (m *memSaver) Save(name string, _ *config.Config, _ *landing.Report, snaps []dynamo.Rocket) (string, error) {
	m.names = append(m.names, name)
	m.snaps += len(snaps)
	return "id-" + name, nil
}

// quick keeps searches short: coarse steps and a loose ignition tolerance.
var quick = map[string]float64{"dt": 0.01, "eps": 1e-2}

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: descent
save: true
cases:
  - name: moon
    preset: moon
    strategy: hoverslam
    params:
      altitude: 800
      dt: 0.01
  - preset: earth
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}
	if sc.Name != "descent" || !sc.Save || len(sc.Cases) != 2 {
		t.Fatalf("scenario = %+v", sc)
	}

	cfg, err := sc.Cases[0].Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Planet != config.Moon || cfg.Rocket.Altitude != 800 || cfg.Simulation.Dt != 0.01 {
		t.Errorf("resolved config = %+v", cfg)
	}
}

func TestLoadScenario_Errors(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: error = nil")
	}
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("no cases: error = nil")
	}
	if _, err := LoadScenario(writeScenario(t, "cases: [\n")); err == nil {
		t.Error("bad yaml: error = nil")
	}
}

func TestCase_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		c       Case
		wantErr bool
	}{
		{"defaults", Case{}, false},
		{"preset", Case{Preset: "mars"}, false},
		{"unknown preset", Case{Preset: "venus"}, true},
		{"unknown param", Case{Params: map[string]float64{"drag": 1}}, true},
		{"missing file", Case{Config: "/nonexistent/landsim.yaml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.c.Resolve()
			if (err != nil) != tt.wantErr {
				t.Errorf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunScenario(t *testing.T) {
	sc := &Scenario{
		Name: "batch",
		Save: true,
		Cases: []Case{
			{Name: "earth", Preset: "earth", Params: quick},
			{Strategy: "parachute", Params: quick},
			{Name: "tiny tank", Params: map[string]float64{"dt": 0.01, "fuel_mass": 1}},
		},
	}
	saver := &memSaver{}
	core, logs := observer.New(zap.InfoLevel)

	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), saver, zap.New(core))
	if err != nil {
		t.Fatalf("RunScenario() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if r := results[0]; r.Err != nil || r.RunID != "id-earth" || r.Report.Result.Status != sim.StatusLanded {
		t.Errorf("earth case = %+v", r)
	}
	if r := results[1]; r.Case != "batch-2" || r.Err == nil {
		t.Errorf("unknown strategy case = %+v", r)
	}
	if r := results[2]; !errors.Is(r.Err, dynamo.ErrInfeasible) {
		t.Errorf("tiny tank error = %v, want ErrInfeasible", r.Err)
	}

	if len(saver.names) != 1 || saver.snaps == 0 {
		t.Errorf("saved %v (%d snapshots), want only earth", saver.names, saver.snaps)
	}
	if n := logs.FilterMessage("case failed").Len(); n != 2 {
		t.Errorf("%d case failures logged, want 2", n)
	}
}

func TestRunScenario_NoSaveFlag(t *testing.T) {
	sc := &Scenario{Name: "dry", Cases: []Case{{Params: quick}}}
	saver := &memSaver{}
	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), saver, nil)
	if err != nil || results[0].Err != nil {
		t.Fatalf("RunScenario() = %v, %v", err, results[0].Err)
	}
	if len(saver.names) != 0 || results[0].RunID != "" {
		t.Error("landing saved although save is off")
	}
}

func TestRunScenario_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc := &Scenario{Cases: []Case{{Params: quick}}}
	if _, err := RunScenario(ctx, sc, experiment.NewRegistry(), nil, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Simulation.Dt = 0.01
	base.Simulation.Eps = 1e-2

	points, err := RunSweep(context.Background(), &Sweep{
		Base:  base,
		Param: "altitude",
		Min:   500,
		Max:   1000,
		Steps: 3,
	}, experiment.NewRegistry(), nil)
	if err != nil {
		t.Fatalf("RunSweep() error = %v", err)
	}
	if len(points) != 3 || points[1].Value != 750 {
		t.Fatalf("points = %+v", points)
	}
	prev := 0.0
	for _, p := range points {
		if p.Err != nil {
			t.Fatalf("point %v: %v", p.Value, p.Err)
		}
		if p.Report.Ignition <= prev {
			t.Errorf("ignition %v at altitude %v not later than %v", p.Report.Ignition, p.Value, prev)
		}
		prev = p.Report.Ignition
	}
	if base.Rocket.Altitude != config.DefaultConfig().Rocket.Altitude {
		t.Error("sweep modified its base configuration")
	}
}

func TestRunSweep_Invalid(t *testing.T) {
	tests := []struct {
		name string
		sw   Sweep
	}{
		{"no base", Sweep{Param: "altitude", Steps: 3}},
		{"one step", Sweep{Base: config.DefaultConfig(), Param: "altitude", Steps: 1}},
		{"unknown param", Sweep{Base: config.DefaultConfig(), Param: "drag", Steps: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RunSweep(context.Background(), &tt.sw, experiment.NewRegistry(), nil); !errors.Is(err, ErrInvalidSweep) {
				t.Errorf("error = %v, want ErrInvalidSweep", err)
			}
		})
	}
}

func TestRunDispersion(t *testing.T) {
	base := config.DefaultConfig()
	base.Simulation.Dt = 0.01
	base.Simulation.Eps = 1e-2
	reg := experiment.NewRegistry()

	t.Run("nominal", func(t *testing.T) {
		res, err := RunDispersion(context.Background(), &Dispersion{Base: base, Trials: 3}, reg, nil)
		if err != nil {
			t.Fatalf("RunDispersion() error = %v", err)
		}
		if res.Landed != 3 || res.StdDev > 1e-9 {
			t.Errorf("landed=%d stddev=%v, want 3 identical trials", res.Landed, res.StdDev)
		}
		if math.Abs(res.Mean-res.Speeds[0]) > 1e-9 || res.Max != res.Speeds[0] {
			t.Errorf("mean=%v max=%v speeds=%v", res.Mean, res.Max, res.Speeds)
		}
	})

	t.Run("seeded", func(t *testing.T) {
		d := &Dispersion{Base: base, Trials: 4, Seed: 7, AltitudeSigma: 20, FuelSigma: 5}
		a, err := RunDispersion(context.Background(), d, reg, nil)
		if err != nil {
			t.Fatal(err)
		}
		b, err := RunDispersion(context.Background(), d, reg, nil)
		if err != nil {
			t.Fatal(err)
		}
		for i := range a.Speeds {
			if a.Speeds[i] != b.Speeds[i] && !(math.IsInf(a.Speeds[i], 1) && math.IsInf(b.Speeds[i], 1)) {
				t.Errorf("trial %d: %v != %v", i, a.Speeds[i], b.Speeds[i])
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := RunDispersion(context.Background(), &Dispersion{Base: base}, reg, nil); !errors.Is(err, ErrInvalidSweep) {
			t.Errorf("error = %v, want ErrInvalidSweep", err)
		}
	})
}

func TestSetParam(t *testing.T) {
	cfg := config.DefaultConfig()
	for _, name := range ParamNames() {
		if err := SetParam(cfg, name, 42); err != nil {
			t.Errorf("SetParam(%q) error = %v", name, err)
		}
	}
	if cfg.Engine.Thrust != 42 || cfg.Simulation.UnstableAfter != 42 {
		t.Error("SetParam did not write through")
	}
	if err := SetParam(cfg, "drag", 1); err == nil {
		t.Error("SetParam(drag) error = nil")
	}
}
