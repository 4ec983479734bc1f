package metrics

import (
	"github.com/san-kum/dynresp/internal/dynamo"
)

// Energetic is a system whose mechanical energy can be evaluated along a
// sampled trajectory.
type Energetic interface {
	Velocity(t float64) float64
	Energy(u, v float64) float64
}

// EnergyDecay is the ratio of the last observed energy to the first.
// A value of 1 means no dissipation over the window.
type EnergyDecay struct {
	name    string
	sys     Energetic
	initial float64
	current float64
	samples int
}

func NewEnergyDecay(sys Energetic) *EnergyDecay {
	return &EnergyDecay{
		name: "energy_decay",
		sys:  sys,
	}
}

func (e *EnergyDecay) Name() string { return e.name }

func (e *EnergyDecay) Observe(s dynamo.Sample) {
	energy := e.sys.Energy(s.U, e.sys.Velocity(s.T))
	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++
}

func (e *EnergyDecay) Value() float64 {
	if e.samples == 0 || e.initial == 0 {
		return 0
	}
	return e.current / e.initial
}

func (e *EnergyDecay) Reset() {
	e.initial = 0
	e.current = 0
	e.samples = 0
}
