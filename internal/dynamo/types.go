package dynamo

import "math"

// G is the gravitational constant in N·m²/kg².
const G = 6.67430e-11

// Vec3 is a cartesian triple. Only Z carries physics in a vertical descent.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

// Lerp returns v + alpha*(o - v).
func (v Vec3) Lerp(o Vec3, alpha float64) Vec3 {
	return Vec3{
		v.X + alpha*(o.X-v.X),
		v.Y + alpha*(o.Y-v.Y),
		v.Z + alpha*(o.Z-v.Z),
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Planet describes the attracting body.
type Planet struct {
	Mass   float64 `json:"mass" yaml:"mass"`     // 10^24 kg
	Radius float64 `json:"radius" yaml:"radius"` // km
}

// Gravity returns the local gravitational acceleration at the given altitude (m).
func (p Planet) Gravity(altitude float64) float64 {
	r := p.Radius*1e3 + altitude
	return G * p.Mass * 1e24 / (r * r)
}

// Engine is a single throttleable engine.
type Engine struct {
	Thrust      float64 `json:"thrust" yaml:"thrust"`           // N
	Consumption float64 `json:"consumption" yaml:"consumption"` // kg/s at full throttle
}

// ExhaustVelocity returns the effective exhaust velocity u = F / mdot.
func (e Engine) ExhaustVelocity() float64 {
	return e.Thrust / e.Consumption
}

// Rocket is the full vehicle state. It is a plain value: assigning it copies it.
type Rocket struct {
	Engine Engine
	Planet Planet

	Position     Vec3 // m
	Velocity     Vec3 // m/s
	Acceleration Vec3 // m/s², cached from the last step
	Orientation  Vec3 // rad

	Time     float64 // s
	DryMass  float64 // kg
	FuelMass float64 // kg
	Throttle float64 // 0..1
}

// NewRocket places a vehicle at apex: at rest, engine off, clock at zero.
func NewRocket(dryMass, fuelMass, height float64, engine Engine, planet Planet) Rocket {
	return Rocket{
		Engine:      engine,
		Planet:      planet,
		Position:    Vec3{Z: height},
		Orientation: Vec3{Z: math.Pi / 2},
		DryMass:     dryMass,
		FuelMass:    fuelMass,
	}
}

func (r Rocket) Mass() float64 { return r.DryMass + r.FuelMass }

func (r Rocket) Altitude() float64 { return r.Position.Z }

// Thrust returns the current engine force in N.
func (r Rocket) Thrust() float64 { return r.Engine.Thrust * r.Throttle }

// Gravity returns the local gravitational acceleration at the current altitude.
func (r Rocket) Gravity() float64 { return r.Planet.Gravity(r.Position.Z) }

// BurnRate returns the propellant mass flow at the current throttle.
func (r Rocket) BurnRate() float64 { return r.Engine.Consumption * r.Throttle }

// SetThrottle clamps f into [0, 1]. An empty tank always forces the engine off.
func (r *Rocket) SetThrottle(f float64) {
	switch {
	case r.FuelMass <= 0 || math.IsNaN(f) || f <= 0:
		r.Throttle = 0
	case f >= 1:
		r.Throttle = 1
	default:
		r.Throttle = f
	}
}

// Burn removes propellant for h seconds at the current throttle. Once the tank
// is empty the fuel mass is clamped to zero and the engine is shut down.
func (r *Rocket) Burn(h float64) {
	r.FuelMass -= r.BurnRate() * h
	if r.FuelMass <= 0 {
		r.FuelMass = 0
		r.Throttle = 0
	}
}

// Restart returns a copy of r with the clock reset to zero.
func (r Rocket) Restart() Rocket {
	r.Time = 0
	return r
}

// Event classifies the outcome of one integration step.
type Event int

const (
	EventNone Event = iota
	EventGroundContact
	EventUnstable
	EventOutOfFuel
	EventCustom
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventGroundContact:
		return "ground_contact"
	case EventUnstable:
		return "unstable"
	case EventOutOfFuel:
		return "out_of_fuel"
	case EventCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Terminal reports whether the event ends a run.
func (e Event) Terminal() bool {
	return e == EventGroundContact || e == EventUnstable
}

// ForceLaw computes the specific force acting on a state. Implementations must
// not mutate their argument: integrators evaluate them at sub-step copies.
type ForceLaw interface {
	Acceleration(r Rocket) Vec3
}

// ForceFunc adapts an ordinary function to a ForceLaw.
type ForceFunc func(r Rocket) Vec3

func (f ForceFunc) Acceleration(r Rocket) Vec3 { return f(r) }

// Integrator advances a state by one fixed step.
type Integrator interface {
	Step(law ForceLaw, r Rocket, dt float64) Rocket
}

// Detector inspects the state after a step. It may annotate curr (for example
// with a failure sentinel) and reports what happened.
type Detector interface {
	Detect(curr *Rocket, prev Rocket) Event
}

// Interpolator corrects curr to the exact boundary of a terminal event.
type Interpolator interface {
	Interpolate(curr *Rocket, prev Rocket, ev Event)
}

// Policy decides the throttle before each step.
type Policy interface {
	Throttle(r Rocket, dt float64) float64
}

// PolicyFunc adapts an ordinary function to a Policy.
type PolicyFunc func(r Rocket, dt float64) float64

func (f PolicyFunc) Throttle(r Rocket, dt float64) float64 { return f(r, dt) }

type Metric interface {
	Name() string
	Observe(r Rocket, dt float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(r Rocket, step int)
}
