package optim

import (
	"fmt"
	"math"

	"github.com/san-kum/dynresp/internal/dynamo"
	"github.com/san-kum/dynresp/internal/metrics"
	"github.com/san-kum/dynresp/internal/physics"
)

// Parameter names accepted by GridSearch.
const (
	Mass      = "mass"
	Damping   = "damping"
	Stiffness = "stiffness"
	Load      = "load"
)

// Point is one evaluated grid node. Err is set when the node could not be
// evaluated, e.g. because it is overdamped.
type Point struct {
	Params  dynamo.SystemParameters
	Metrics map[string]float64
	Err     error
}

// GridSearch evaluates every combination of parameter values on top of a
// base system and ranks the nodes by one metric.
type GridSearch struct {
	base       dynamo.SystemParameters
	window     dynamo.Window
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(base dynamo.SystemParameters, window dynamo.Window, params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	for _, name := range params {
		if _, err := set(base, name, 0); err != nil {
			return nil, err
		}
	}
	return &GridSearch{base: base, window: window, paramNames: params, ranges: ranges}, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// Search evaluates the grid and returns every node in grid order together
// with the index of the node minimizing metricName, or -1 when no node
// could be evaluated.
func (g *GridSearch) Search(metricName string) ([]Point, int) {
	var points []Point
	g.searchRecursive(0, g.base, &points)

	bestIdx := -1
	best := math.Inf(1)
	for i, p := range points {
		if p.Err != nil {
			continue
		}
		val, ok := p.Metrics[metricName]
		if !ok {
			continue
		}
		if val < best {
			best = val
			bestIdx = i
		}
	}
	return points, bestIdx
}

func (g *GridSearch) searchRecursive(depth int, current dynamo.SystemParameters, points *[]Point) {
	if depth == len(g.paramNames) {
		*points = append(*points, g.evaluate(current))
		return
	}

	for _, val := range g.ranges[depth] {
		next, _ := set(current, g.paramNames[depth], val)
		g.searchRecursive(depth+1, next, points)
	}
}

func (g *GridSearch) evaluate(p dynamo.SystemParameters) Point {
	osc, err := physics.NewOscillator(p)
	if err != nil {
		return Point{Params: p, Err: err}
	}
	resp, err := osc.Response(g.window)
	if err != nil {
		return Point{Params: p, Err: err}
	}
	return Point{
		Params:  p,
		Metrics: metrics.Collect(resp.Samples, metrics.Defaults(osc)...),
	}
}

func set(p dynamo.SystemParameters, name string, val float64) (dynamo.SystemParameters, error) {
	switch name {
	case Mass:
		p.Mass = val
	case Damping:
		p.Damping = val
	case Stiffness:
		p.Stiffness = val
	case Load:
		p.Load = val
	default:
		return p, fmt.Errorf("optim: unknown parameter %q", name)
	}
	return p, nil
}
