package metrics

import (
	"math"

	"github.com/san-kum/dynresp/internal/dynamo"
)

// Peak tracks the largest absolute displacement.
type Peak struct {
	name string
	peak float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak_displacement"}
}

func (p *Peak) Name() string {
	return p.name
}

func (p *Peak) Observe(s dynamo.Sample) {
	p.peak = math.Max(p.peak, math.Abs(s.U))
}

func (p *Peak) Value() float64 {
	return p.peak
}

func (p *Peak) Reset() {
	p.peak = 0
}

// Amplification is the dynamic amplification factor: peak displacement
// over the static displacement p0/k. It is zero when the load is zero.
type Amplification struct {
	name   string
	static float64
	peak   Peak
}

func NewAmplification(static float64) *Amplification {
	return &Amplification{name: "amplification", static: static}
}

func (a *Amplification) Name() string { return a.name }

func (a *Amplification) Observe(s dynamo.Sample) {
	a.peak.Observe(s)
}

func (a *Amplification) Value() float64 {
	if a.static == 0 {
		return 0
	}
	return a.peak.Value() / math.Abs(a.static)
}

func (a *Amplification) Reset() {
	a.peak.Reset()
}
