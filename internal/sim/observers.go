package sim

import (
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/landsim/internal/dynamo"
)

// ticker fires once per interval of simulated time.
type ticker struct {
	interval float64
	next     float64
	started  bool
}

func (t *ticker) due(now float64) bool {
	if !t.started {
		t.started = true
		t.next = t.after(now)
		return true
	}
	if now < t.next {
		return false
	}
	t.next = t.after(now)
	return true
}

func (t *ticker) after(now float64) float64 {
	return (math.Floor(now/t.interval) + 1) * t.interval
}

// Recorder keeps the initial state, one snapshot per interval of simulated
// time and the terminal state.
type Recorder struct {
	Snapshots []dynamo.Rocket
	tick      ticker
}

func NewRecorder(interval float64) *Recorder {
	if interval <= 0 {
		interval = 1
	}
	return &Recorder{tick: ticker{interval: interval}}
}

func (r *Recorder) OnStep(x dynamo.Rocket, step int) {
	if step == 0 {
		r.Snapshots = r.Snapshots[:0]
		r.tick = ticker{interval: r.tick.interval}
	}
	if r.tick.due(x.Time) {
		r.Snapshots = append(r.Snapshots, x)
	}
}

func (r *Recorder) OnFinish(res *Result) {
	if n := len(r.Snapshots); n > 0 && r.Snapshots[n-1] == res.Final {
		return
	}
	r.Snapshots = append(r.Snapshots, res.Final)
}

// LogObserver writes a flight snapshot at debug level once per interval.
type LogObserver struct {
	logger *zap.Logger
	tick   ticker
}

func NewLogObserver(logger *zap.Logger, interval float64) *LogObserver {
	if interval <= 0 {
		interval = 1
	}
	return &LogObserver{logger: logger, tick: ticker{interval: interval}}
}

func (l *LogObserver) OnStep(x dynamo.Rocket, step int) {
	if step == 0 {
		l.tick = ticker{interval: l.tick.interval}
	}
	if !l.tick.due(x.Time) {
		return
	}
	l.logger.Debug("flight",
		zap.Float64("t", x.Time),
		zap.Float64("z", x.Position.Z),
		zap.Float64("vz", x.Velocity.Z),
		zap.Float64("az", x.Acceleration.Z),
		zap.Float64("fuel", x.FuelMass),
		zap.Float64("throttle_pct", x.Throttle*100),
	)
}
