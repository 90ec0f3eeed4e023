package sim

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/landsim/internal/dynamo"
)

// Finisher is implemented by observers that want the terminal result.
type Finisher interface {
	OnFinish(res *Result)
}

type Simulator struct {
	law          dynamo.ForceLaw
	integrator   dynamo.Integrator
	detector     dynamo.Detector
	interpolator dynamo.Interpolator
	metrics      []dynamo.Metric
	observers    []dynamo.Observer
	logger       *zap.Logger
}

type Option func(*Simulator)

func WithDetector(d dynamo.Detector) Option {
	return func(s *Simulator) { s.detector = d }
}

func WithInterpolator(i dynamo.Interpolator) Option {
	return func(s *Simulator) { s.interpolator = i }
}

func WithMetrics(m ...dynamo.Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m...) }
}

func WithObservers(o ...dynamo.Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o...) }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(law dynamo.ForceLaw, integrator dynamo.Integrator, opts ...Option) *Simulator {
	s := &Simulator{
		law:        law,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// With returns a copy of the simulator with extra options applied. The
// receiver is left untouched, so a bare probe simulator can be specialised
// for a final, observed run.
func (s *Simulator) With(opts ...Option) *Simulator {
	c := *s
	c.metrics = append([]dynamo.Metric(nil), s.metrics...)
	c.observers = append([]dynamo.Observer(nil), s.observers...)
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Run flies r0 under policy until a terminal event. r0 is taken by value and
// never shared with another run.
func (s *Simulator) Run(ctx context.Context, r0 dynamo.Rocket, policy dynamo.Policy, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	res := &Result{
		Initial: r0,
		Status:  StatusRunning,
		Metrics: make(map[string]float64),
	}

	r := r0
	s.notify(r, 0)

	for res.Status == StatusRunning {
		select {
		case <-ctx.Done():
			res.Final = r
			return res, ctx.Err()
		default:
		}

		if cfg.MaxSteps > 0 && res.Steps >= cfg.MaxSteps {
			res.Final = r
			s.collect(res)
			return res, &dynamo.SimulationError{Step: res.Steps, Time: r.Time, State: r, Wrapped: dynamo.ErrStepBudget}
		}

		prev := r
		r.SetThrottle(policy.Throttle(r, cfg.Dt))
		if r.Throttle > 0 && prev.Throttle == 0 {
			s.logger.Debug("engine on", zap.Float64("t", r.Time), zap.Float64("z", r.Position.Z), zap.Float64("throttle", r.Throttle))
		}

		r = s.integrator.Step(s.law, r, cfg.Dt)
		res.Steps++

		ev := s.detect(&r, prev)
		switch ev {
		case dynamo.EventGroundContact:
			if s.interpolator != nil {
				s.interpolator.Interpolate(&r, prev, ev)
			}
			res.Status = StatusLanded
		case dynamo.EventUnstable:
			res.Status = StatusFailed
		case dynamo.EventOutOfFuel:
			res.FuelExhausted = true
			res.FuelExhaustedAt = r.Time
			s.logger.Debug("fuel exhausted", zap.Float64("t", r.Time), zap.Float64("z", r.Position.Z))
		case dynamo.EventNone:
			if s.detector == nil && r.Position.Z <= 0 {
				res.Status = StatusLanded
			}
		}
		if ev.Terminal() {
			res.Event = ev
		}

		for _, m := range s.metrics {
			m.Observe(r, cfg.Dt)
		}
		s.notify(r, res.Steps)
	}

	res.Final = r
	s.collect(res)

	s.logger.Debug("run finished",
		zap.Stringer("status", res.Status),
		zap.Stringer("event", res.Event),
		zap.Int("steps", res.Steps),
		zap.Float64("t", r.Time),
		zap.Float64("vz", r.Velocity.Z),
	)

	return res, nil
}

func (s *Simulator) detect(r *dynamo.Rocket, prev dynamo.Rocket) dynamo.Event {
	if s.detector == nil {
		return dynamo.EventNone
	}
	return s.detector.Detect(r, prev)
}

func (s *Simulator) notify(r dynamo.Rocket, step int) {
	for _, obs := range s.observers {
		obs.OnStep(r, step)
	}
}

func (s *Simulator) collect(res *Result) {
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	for _, obs := range s.observers {
		if f, ok := obs.(Finisher); ok {
			f.OnFinish(res)
		}
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps must not be negative, got %d", dynamo.ErrInvalidConfig, cfg.MaxSteps)
	}
	if s.law == nil || s.integrator == nil {
		return fmt.Errorf("%w: force law and integrator are required", dynamo.ErrInvalidConfig)
	}
	return nil
}
