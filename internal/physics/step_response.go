package physics

import (
	"math"

	"github.com/san-kum/dynresp/internal/dynamo"
)

// Modal derives the modal properties of p. It fails with
// dynamo.ErrInvalidParameter for non-physical inputs and with
// dynamo.ErrOverdamped when the damping ratio reaches 1.
func Modal(p dynamo.SystemParameters) (dynamo.ModalProperties, error) {
	if err := p.Validate(); err != nil {
		return dynamo.ModalProperties{}, err
	}

	wn := math.Sqrt(p.Stiffness / p.Mass)
	ccr := 2 * p.Mass * wn
	zeta := p.Damping / ccr
	if zeta >= 1 {
		return dynamo.ModalProperties{}, &dynamo.ParameterError{
			Name:    "zeta",
			Value:   zeta,
			Wrapped: dynamo.ErrOverdamped,
		}
	}

	return dynamo.ModalProperties{
		NaturalFrequency: wn,
		CriticalDamping:  ccr,
		DampingRatio:     zeta,
		DampedFrequency:  wn * math.Sqrt(1-zeta*zeta),
	}, nil
}

// underdamped rejects modal properties that were not produced by Modal for
// an underdamped system, where B would divide by a zero damped frequency.
func underdamped(m dynamo.ModalProperties) error {
	if m.DampingRatio >= 1 {
		return &dynamo.ParameterError{Name: "zeta", Value: m.DampingRatio, Wrapped: dynamo.ErrOverdamped}
	}
	if !(m.DampedFrequency > 0) {
		return &dynamo.ParameterError{Name: "damped_frequency", Value: m.DampedFrequency, Wrapped: dynamo.ErrOverdamped}
	}
	return nil
}

// Coefficients returns the particular solution and the homogeneous
// coefficients A and B of the step response.
func Coefficients(p dynamo.SystemParameters, m dynamo.ModalProperties) (static, a, b float64) {
	static = p.Load / p.Stiffness
	a = static
	b = m.NaturalFrequency * m.DampingRatio * a / m.DampedFrequency
	return static, a, b
}

// Evaluate samples the response over dynamo.DefaultWindow.
func Evaluate(p dynamo.SystemParameters, m dynamo.ModalProperties) ([]dynamo.Sample, error) {
	return EvaluateWindow(p, m, dynamo.DefaultWindow())
}

func EvaluateWindow(p dynamo.SystemParameters, m dynamo.ModalProperties, w dynamo.Window) ([]dynamo.Sample, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := underdamped(m); err != nil {
		return nil, err
	}

	osc := &Oscillator{Params: p, Modal: m}
	osc.static, osc.a, osc.b = Coefficients(p, m)

	n := w.Len()
	samples := make([]dynamo.Sample, n)
	for i := 0; i < n; i++ {
		t := w.Time(i)
		samples[i] = dynamo.Sample{T: t, U: osc.Displacement(t)}
	}
	return samples, nil
}

// TotalResponse evaluates the step response of p over the default window.
func TotalResponse(p dynamo.SystemParameters) (*dynamo.Response, error) {
	osc, err := NewOscillator(p)
	if err != nil {
		return nil, err
	}
	return osc.Response(dynamo.DefaultWindow())
}

// Oscillator is an underdamped system with its closed-form coefficients.
//
// The cosine term oscillates at the natural frequency and the sine term at
// the damped frequency. For zeta=0 both coincide.
type Oscillator struct {
	Params dynamo.SystemParameters
	Modal  dynamo.ModalProperties

	static, a, b float64
}

func NewOscillator(p dynamo.SystemParameters) (*Oscillator, error) {
	m, err := Modal(p)
	if err != nil {
		return nil, err
	}
	osc := &Oscillator{Params: p, Modal: m}
	osc.static, osc.a, osc.b = Coefficients(p, m)
	return osc, nil
}

func (o *Oscillator) Static() float64 { return o.static }

func (o *Oscillator) Displacement(t float64) float64 {
	wn, wd, zeta := o.Modal.NaturalFrequency, o.Modal.DampedFrequency, o.Modal.DampingRatio
	return math.Exp(-zeta*wn*t)*(o.a*math.Cos(wn*t)+o.b*math.Sin(wd*t)) + o.static
}

// Velocity is the time derivative of Displacement.
func (o *Oscillator) Velocity(t float64) float64 {
	wn, wd, zeta := o.Modal.NaturalFrequency, o.Modal.DampedFrequency, o.Modal.DampingRatio
	decay := math.Exp(-zeta * wn * t)
	h := o.a*math.Cos(wn*t) + o.b*math.Sin(wd*t)
	dh := -o.a*wn*math.Sin(wn*t) + o.b*wd*math.Cos(wd*t)
	return decay * (dh - zeta*wn*h)
}

// Energy is the mechanical energy of the oscillation about the static offset.
func (o *Oscillator) Energy(u, v float64) float64 {
	d := u - o.static
	return 0.5*o.Params.Stiffness*d*d + 0.5*o.Params.Mass*v*v
}

func (o *Oscillator) Response(w dynamo.Window) (*dynamo.Response, error) {
	samples, err := EvaluateWindow(o.Params, o.Modal, w)
	if err != nil {
		return nil, err
	}
	return &dynamo.Response{
		Params:  o.Params,
		Modal:   o.Modal,
		Window:  w,
		Static:  o.static,
		A:       o.a,
		B:       o.b,
		Samples: samples,
	}, nil
}
