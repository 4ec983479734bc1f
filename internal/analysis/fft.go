package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/dynresp/internal/dynamo"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data with its mean removed, zero-padded to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	padded := make([]float64, nextPow2(len(data)))
	for i, v := range data {
		padded[i] = v - mean
	}

	spec := fft.FFTReal(padded)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency estimates the strongest oscillation in samples, in rad/s.
// Samples must be evenly spaced. It returns 0 when fewer than two samples are
// given or the signal is constant.
func DominantFrequency(samples []dynamo.Sample) float64 {
	if len(samples) < 2 {
		return 0
	}
	dt := samples[1].T - samples[0].T
	if dt <= 0 {
		return 0
	}

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.U
	}
	ps := PowerSpectrum(data)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	n := float64(2 * len(ps))
	hz := float64(maxIdx) / (n * dt)
	return 2 * math.Pi * hz
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
