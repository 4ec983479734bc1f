package metrics

import (
	"github.com/san-kum/dynresp/internal/dynamo"
	"github.com/san-kum/dynresp/internal/physics"
)

// Defaults returns the metrics reported for every run of osc.
func Defaults(osc *physics.Oscillator) []dynamo.Metric {
	return []dynamo.Metric{
		NewPeak(),
		NewAmplification(osc.Static()),
		NewMean(),
		NewEnergyDecay(osc),
	}
}

// Collect resets each metric, feeds it every sample and returns the values by name.
func Collect(samples []dynamo.Sample, ms ...dynamo.Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, s := range samples {
			m.Observe(s)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
