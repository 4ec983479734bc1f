package dynamo

import (
	"math"
)

const (
	// DefaultStep is the sampling interval in seconds.
	DefaultStep = 0.01

	// LiteralPeriod is the fixed window period. It is not scaled by the
	// natural frequency; see NaturalWindow for the scaled variant.
	LiteralPeriod = 2 * math.Pi

	// MaxSamples bounds the number of samples a single window may hold.
	MaxSamples = 1 << 20
)

// SystemParameters describes the oscillator and the constant load applied at t=0.
type SystemParameters struct {
	Mass      float64 `json:"mass" yaml:"mass"`           // kg
	Damping   float64 `json:"damping" yaml:"damping"`     // N·s/m
	Stiffness float64 `json:"stiffness" yaml:"stiffness"` // N/m
	Load      float64 `json:"load" yaml:"load"`           // N
}

// Validate reports the first parameter outside its physical domain.
func (p SystemParameters) Validate() error {
	if !finite(p.Mass) || p.Mass <= 0 {
		return invalid("mass", p.Mass)
	}
	if !finite(p.Stiffness) || p.Stiffness <= 0 {
		return invalid("stiffness", p.Stiffness)
	}
	if !finite(p.Damping) || p.Damping < 0 {
		return invalid("damping", p.Damping)
	}
	if !finite(p.Load) {
		return invalid("load", p.Load)
	}
	return nil
}

// StaticDisplacement is the particular solution p0/k.
func (p SystemParameters) StaticDisplacement() float64 {
	return p.Load / p.Stiffness
}

type ModalProperties struct {
	NaturalFrequency float64 `json:"natural_frequency"` // rad/s
	CriticalDamping  float64 `json:"critical_damping"`
	DampingRatio     float64 `json:"damping_ratio"`
	DampedFrequency  float64 `json:"damped_frequency"` // rad/s
}

func (m ModalProperties) NaturalPeriod() float64 {
	return 2 * math.Pi / m.NaturalFrequency
}

// DampedPeriod is +Inf when the damped frequency is zero.
func (m ModalProperties) DampedPeriod() float64 {
	if m.DampedFrequency == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / m.DampedFrequency
}

// Window is the half-open time range [0, Stop) sampled every Step seconds.
type Window struct {
	Stop float64 `json:"stop" yaml:"stop"`
	Step float64 `json:"step" yaml:"step"`
}

// DefaultWindow covers half of LiteralPeriod at DefaultStep.
func DefaultWindow() Window {
	return Window{Stop: 0.5 * LiteralPeriod, Step: DefaultStep}
}

// NaturalWindow covers half of the true natural period 2π/ωn.
func NaturalWindow(m ModalProperties, step float64) Window {
	return Window{Stop: 0.5 * m.NaturalPeriod(), Step: step}
}

// Validate rejects empty or non-finite bounds and windows holding more
// than MaxSamples samples.
func (w Window) Validate() error {
	if !finite(w.Stop) || w.Stop <= 0 {
		return invalid("window.stop", w.Stop)
	}
	if !finite(w.Step) || w.Step <= 0 {
		return invalid("window.step", w.Step)
	}
	if n := math.Ceil(w.Stop / w.Step); !finite(n) || n > MaxSamples {
		return invalid("window.step", w.Step)
	}
	return nil
}

// Len is the number of samples, ceil(Stop/Step). It returns 0 for a window
// that fails Validate.
func (w Window) Len() int {
	if !finite(w.Stop) || !finite(w.Step) || w.Stop <= 0 || w.Step <= 0 {
		return 0
	}
	n := math.Ceil(w.Stop / w.Step)
	if !finite(n) || n > MaxSamples {
		return 0
	}
	return int(n)
}

// Time returns the i-th sample time. Times are computed as i*Step rather
// than accumulated so that rounding error does not grow along the window.
func (w Window) Time(i int) float64 {
	return float64(i) * w.Step
}

type Sample struct {
	T float64 `json:"t"`
	U float64 `json:"u"`
}

// Response is one evaluation of the closed-form displacement.
type Response struct {
	Params  SystemParameters `json:"params"`
	Modal   ModalProperties  `json:"modal"`
	Window  Window           `json:"window"`
	Static  float64          `json:"static"`
	A       float64          `json:"a"`
	B       float64          `json:"b"`
	Samples []Sample         `json:"samples"`
}

func (r *Response) Times() []float64 {
	times := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		times[i] = s.T
	}
	return times
}

func (r *Response) Displacements() []float64 {
	u := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		u[i] = s.U
	}
	return u
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Metric accumulates a scalar summary over a sample sequence.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}
