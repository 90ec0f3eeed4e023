package control

import "fmt"

type PID struct {
	Kp float64
	Ki float64
	Kd float64

	// Terms of the most recent update.
	P float64
	I float64
	D float64

	integral float64
	prevErr  float64
}

func NewPID(kp, ki, kd float64) *PID {
	return &PID{
		Kp: kp,
		Ki: ki,
		Kd: kd,
	}
}

// NewPIDFromGains builds a controller from a [Kp, Ki, Kd] slice.
func NewPIDFromGains(gains []float64) (*PID, error) {
	if len(gains) != 3 {
		return nil, fmt.Errorf("control: want 3 gains, got %d", len(gains))
	}
	return NewPID(gains[0], gains[1], gains[2]), nil
}

// Update advances the controller by dt for the given error and returns the
// raw command P+I+D. The derivative uses the error of the previous update,
// which starts at zero after Reset.
func (p *PID) Update(err, dt float64) float64 {
	p.integral += err * dt
	p.P = p.Kp * err
	p.I = p.Ki * p.integral
	if dt > 0 {
		p.D = p.Kd * (err - p.prevErr) / dt
	} else {
		p.D = 0
	}
	p.prevErr = err
	return p.P + p.I + p.D
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.P, p.I, p.D = 0, 0, 0
}

func (p *PID) Gains() []float64 {
	return []float64{p.Kp, p.Ki, p.Kd}
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp": p.Kp,
		"Ki": p.Ki,
		"Kd": p.Kd,
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	default:
		return fmt.Errorf("control: unknown PID parameter %q", name)
	}
	return nil
}

func (p *PID) String() string {
	return fmt.Sprintf("PID(Kp=%.4f, Ki=%.4f, Kd=%.4f; P=%.2f, I=%.2f, D=%.2f)", p.Kp, p.Ki, p.Kd, p.P, p.I, p.D)
}
