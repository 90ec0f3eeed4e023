package metrics

import "github.com/san-kum/landsim/internal/dynamo"

// ControlEffort is the time-weighted mean throttle over a flight.
type ControlEffort struct {
	name     string
	weighted float64
	elapsed  float64
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "mean_throttle",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(r dynamo.Rocket, dt float64) {
	c.weighted += r.Throttle * dt
	c.elapsed += dt
}

func (c *ControlEffort) Value() float64 {
	if c.elapsed == 0 {
		return 0
	}
	return c.weighted / c.elapsed
}

func (c *ControlEffort) Reset() {
	c.weighted = 0
	c.elapsed = 0
}

// BurnTime accumulates the seconds the engine was lit.
type BurnTime struct {
	seconds float64
}

func NewBurnTime() *BurnTime { return &BurnTime{} }

func (b *BurnTime) Name() string { return "burn_time" }

func (b *BurnTime) Observe(r dynamo.Rocket, dt float64) {
	if r.Throttle > 0 {
		b.seconds += dt
	}
}

func (b *BurnTime) Value() float64 { return b.seconds }
func (b *BurnTime) Reset()         { b.seconds = 0 }
