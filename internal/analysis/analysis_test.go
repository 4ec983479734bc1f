package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/dynresp/internal/dynamo"
	"github.com/san-kum/dynresp/internal/physics"
)

func TestPowerSpectrum_Length(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 315))
	if len(ps) != 256 {
		t.Errorf("expected 256 bins, got %d", len(ps))
	}
	if PowerSpectrum(nil) != nil {
		t.Error("expected nil spectrum for empty input")
	}
}

func TestDominantFrequency(t *testing.T) {
	wn := 2 * math.Pi * 5
	p := dynamo.SystemParameters{Mass: 1, Damping: 0, Stiffness: wn * wn, Load: 1}
	m, err := physics.Modal(p)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := physics.EvaluateWindow(p, m, dynamo.Window{Stop: 10, Step: 0.01})
	if err != nil {
		t.Fatal(err)
	}

	got := DominantFrequency(samples)
	if math.Abs(got-wn) > 2*math.Pi*0.1 {
		t.Errorf("expected dominant frequency near %.3f rad/s, got %.3f", wn, got)
	}
}

func TestDominantFrequency_Degenerate(t *testing.T) {
	if got := DominantFrequency([]dynamo.Sample{{T: 0, U: 1}}); got != 0 {
		t.Errorf("expected 0 for single sample, got %f", got)
	}
	flat := []dynamo.Sample{{T: 0, U: 1}, {T: 0.1, U: 1}, {T: 0.2, U: 1}}
	if got := DominantFrequency(flat); got != 0 {
		t.Errorf("expected 0 for constant signal, got %f", got)
	}
}

func TestExactTrajectory_UndampedMatchesClosedForm(t *testing.T) {
	p := dynamo.SystemParameters{Mass: 1, Damping: 0, Stiffness: 1, Load: 1}
	m, err := physics.Modal(p)
	if err != nil {
		t.Fatal(err)
	}
	w := dynamo.DefaultWindow()

	closed, err := physics.EvaluateWindow(p, m, w)
	if err != nil {
		t.Fatal(err)
	}
	exact, err := ExactTrajectory(p, m, w)
	if err != nil {
		t.Fatal(err)
	}

	dev := Compare(closed, exact)
	if dev.Points != len(closed) {
		t.Errorf("expected %d points, got %d", len(closed), dev.Points)
	}
	if dev.Max > 1e-9 {
		t.Errorf("expected trajectories to agree, max deviation %g at t=%f", dev.Max, dev.MaxAt)
	}
}

func TestExactTrajectory_DampedDeparts(t *testing.T) {
	p := dynamo.SystemParameters{Mass: 1, Damping: 0.8, Stiffness: 1, Load: 1}
	m, err := physics.Modal(p)
	if err != nil {
		t.Fatal(err)
	}
	w := dynamo.DefaultWindow()

	closed, _ := physics.EvaluateWindow(p, m, w)
	exact, err := ExactTrajectory(p, m, w)
	if err != nil {
		t.Fatal(err)
	}

	if exact[0].U != closed[0].U {
		t.Errorf("expected both curves to start at %f, exact starts at %f", closed[0].U, exact[0].U)
	}
	if dev := Compare(closed, exact); dev.Max < 1e-3 {
		t.Errorf("expected visible deviation for zeta=0.4, got %g", dev.Max)
	}
}

func TestCompare_UnequalLengths(t *testing.T) {
	a := []dynamo.Sample{{T: 0, U: 1}, {T: 1, U: 2}, {T: 2, U: 3}}
	b := []dynamo.Sample{{T: 0, U: 1}, {T: 1, U: 4}}

	dev := Compare(a, b)
	if dev.Points != 2 {
		t.Errorf("expected 2 points, got %d", dev.Points)
	}
	if dev.Max != 2 || dev.MaxAt != 1 {
		t.Errorf("expected max 2 at t=1, got %f at %f", dev.Max, dev.MaxAt)
	}
}
