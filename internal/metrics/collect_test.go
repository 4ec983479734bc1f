package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/dynresp/internal/dynamo"
	"github.com/san-kum/dynresp/internal/physics"
)

func TestCollect_Textbook(t *testing.T) {
	osc, err := physics.NewOscillator(dynamo.SystemParameters{Mass: 1, Damping: 0.1, Stiffness: 1, Load: 1})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := osc.Response(dynamo.DefaultWindow())
	if err != nil {
		t.Fatal(err)
	}

	got := Collect(resp.Samples, Defaults(osc)...)

	tests := []struct {
		name string
		want float64
		tol  float64
	}{
		{"peak_displacement", 2.0, 1e-12},
		{"amplification", 2.0, 1e-12},
	}
	for _, tt := range tests {
		if v, ok := got[tt.name]; !ok || math.Abs(v-tt.want) > tt.tol {
			t.Errorf("%s = %v, want %v", tt.name, v, tt.want)
		}
	}

	if len(got) != 4 {
		t.Errorf("expected 4 metrics, got %d", len(got))
	}
}

func TestCollect_ResetsBetweenRuns(t *testing.T) {
	m := NewMean()
	samples := []dynamo.Sample{{T: 0, U: 1}, {T: 0.01, U: 3}}

	first := Collect(samples, m)
	second := Collect(samples, m)

	if first["mean_displacement"] != 2 || second["mean_displacement"] != 2 {
		t.Errorf("expected mean 2 on both runs, got %v and %v", first, second)
	}
}

func TestAmplification_ZeroLoad(t *testing.T) {
	a := NewAmplification(0)
	a.Observe(dynamo.Sample{T: 0, U: 0})
	if a.Value() != 0 {
		t.Errorf("expected 0 for zero load, got %f", a.Value())
	}
}

func TestPeak_Negative(t *testing.T) {
	p := NewPeak()
	for _, u := range []float64{0.5, -1.5, 1.0} {
		p.Observe(dynamo.Sample{U: u})
	}
	if p.Value() != 1.5 {
		t.Errorf("expected peak 1.5, got %f", p.Value())
	}
}

func TestPeak_Reset(t *testing.T) {
	p := NewPeak()
	p.Observe(dynamo.Sample{U: -3})
	p.Reset()
	p.Observe(dynamo.Sample{U: 0.25})
	if p.Value() != 0.25 {
		t.Errorf("expected peak 0.25 after reset, got %f", p.Value())
	}
}
