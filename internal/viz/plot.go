package viz

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dynresp/internal/dynamo"
)

const (
	DefaultTitle  = "Total Response"
	DefaultXLabel = "Time"
	DefaultYLabel = "Displacement"
)

var ErrNoSamples = errors.New("viz: no samples to plot")

// Chart is a displacement-time line chart.
type Chart struct {
	Title   string
	XLabel  string
	YLabel  string
	Grid    bool
	Samples []dynamo.Sample
}

// NewChart returns a gridded chart with the default labels.
func NewChart(title string, samples []dynamo.Sample) Chart {
	if title == "" {
		title = DefaultTitle
	}
	return Chart{
		Title:   title,
		XLabel:  DefaultXLabel,
		YLabel:  DefaultYLabel,
		Grid:    true,
		Samples: samples,
	}
}

// Bounds returns the time and displacement ranges of the chart.
func (c Chart) Bounds() (tMin, tMax, uMin, uMax float64) {
	if len(c.Samples) == 0 {
		return 0, 0, 0, 0
	}
	tMin, tMax = c.Samples[0].T, c.Samples[0].T
	uMin, uMax = c.Samples[0].U, c.Samples[0].U
	for _, s := range c.Samples[1:] {
		tMin = math.Min(tMin, s.T)
		tMax = math.Max(tMax, s.T)
		uMin = math.Min(uMin, s.U)
		uMax = math.Max(uMax, s.U)
	}
	return tMin, tMax, uMin, uMax
}

// Plotter draws a chart to some output.
type Plotter interface {
	Plot(c Chart) error
}

// Terminal draws charts with asciigraph.
type Terminal struct {
	w      io.Writer
	width  int
	height int
}

func NewTerminal(w io.Writer, width, height int) *Terminal {
	return &Terminal{w: w, width: width, height: height}
}

func (t *Terminal) Plot(c Chart) error {
	if len(c.Samples) == 0 {
		return ErrNoSamples
	}

	data := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		data[i] = s.U
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(t.height),
		asciigraph.Width(t.width),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("%s vs %s", c.YLabel, c.XLabel)),
	)

	tMin, tMax, _, _ := c.Bounds()
	var b strings.Builder
	b.WriteString(TitleStyle.Render(c.Title) + "\n")
	b.WriteString(Subtle.Render(c.YLabel) + "\n")
	b.WriteString(graph + "\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("%s: %.2f .. %.2f (%d samples)", c.XLabel, tMin, tMax, len(c.Samples))) + "\n")

	_, err := io.WriteString(t.w, b.String())
	return err
}

// Braille draws charts on a Braille canvas, with a dot grid when the chart asks for one.
type Braille struct {
	w      io.Writer
	width  int
	height int
}

func NewBraille(w io.Writer, width, height int) *Braille {
	return &Braille{w: w, width: width, height: height}
}

func (p *Braille) Render(c Chart) (*Canvas, error) {
	if len(c.Samples) == 0 {
		return nil, ErrNoSamples
	}

	canvas := NewCanvas(p.width, p.height)
	if c.Grid {
		canvas.DrawGrid(p.width/8, p.height/4)
	}

	tMin, tMax, uMin, uMax := c.Bounds()
	tRange := tMax - tMin
	if tRange == 0 {
		tRange = 1
	}
	uRange := uMax - uMin
	if uRange == 0 {
		uRange = 1
	}

	maxX := canvas.DotsX() - 1
	maxY := canvas.DotsY() - 1
	prevX, prevY := -1, -1
	for _, s := range c.Samples {
		x := int(math.Round((s.T - tMin) / tRange * float64(maxX)))
		y := maxY - int(math.Round((s.U-uMin)/uRange*float64(maxY)))
		if prevX >= 0 {
			canvas.DrawLine(prevX, prevY, x, y)
		} else {
			canvas.Set(x, y)
		}
		prevX, prevY = x, y
	}
	return canvas, nil
}

func (p *Braille) Plot(c Chart) error {
	canvas, err := p.Render(c)
	if err != nil {
		return err
	}

	tMin, tMax, uMin, uMax := c.Bounds()
	var b strings.Builder
	b.WriteString(TitleStyle.Render(c.Title) + "\n")
	b.WriteString(Subtle.Render(c.YLabel) + "\n")
	for i, line := range canvas.Lines() {
		label := strings.Repeat(" ", 10)
		switch i {
		case 0:
			label = fmt.Sprintf("%9.3f ", uMax)
		case len(canvas.Grid) - 1:
			label = fmt.Sprintf("%9.3f ", uMin)
		}
		b.WriteString(label + "│" + line + "\n")
	}
	b.WriteString(strings.Repeat(" ", 10) + "└" + strings.Repeat("─", canvas.Width) + "\n")
	b.WriteString(fmt.Sprintf("%10.2f%*.2f\n", tMin, canvas.Width+1, tMax))
	b.WriteString(Subtle.Render(c.XLabel) + "\n")

	_, err = io.WriteString(p.w, b.String())
	return err
}
