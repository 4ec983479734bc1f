package analysis

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/dynresp/internal/dynamo"
)

// ExactTrajectory samples the exact damped-spring motion that starts at rest
// from twice the static displacement and settles toward it. Every step is an
// analytic spring update, so no integration error builds up beyond rounding.
//
// For zeta=0 it coincides with the closed-form curve; for damped systems the
// difference measures the effect of the cosine term oscillating at the
// natural rather than the damped frequency.
func ExactTrajectory(p dynamo.SystemParameters, m dynamo.ModalProperties, w dynamo.Window) ([]dynamo.Sample, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	static := p.StaticDisplacement()
	spring := harmonica.NewSpring(w.Step, m.NaturalFrequency, m.DampingRatio)

	n := w.Len()
	samples := make([]dynamo.Sample, n)
	pos, vel := 2*static, 0.0
	for i := 0; i < n; i++ {
		samples[i] = dynamo.Sample{T: w.Time(i), U: pos}
		pos, vel = spring.Update(pos, vel, static)
	}
	return samples, nil
}

// Deviation summarizes the pointwise difference between two trajectories
// sampled on the same grid.
type Deviation struct {
	Max    float64 `json:"max"`
	MaxAt  float64 `json:"max_at"`
	RMS    float64 `json:"rms"`
	Points int     `json:"points"`
}

func Compare(a, b []dynamo.Sample) Deviation {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var d Deviation
	sum := 0.0
	for i := 0; i < n; i++ {
		diff := math.Abs(a[i].U - b[i].U)
		if diff > d.Max {
			d.Max = diff
			d.MaxAt = a[i].T
		}
		sum += diff * diff
	}
	d.Points = n
	if n > 0 {
		d.RMS = math.Sqrt(sum / float64(n))
	}
	return d
}
