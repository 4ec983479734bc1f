package export

import (
	"fmt"
	"html"
	"math"
	"os"
	"strings"

	"github.com/san-kum/dynresp/internal/viz"
)

const (
	marginLeft   = 70.0
	marginRight  = 20.0
	marginTop    = 40.0
	marginBottom = 50.0
	gridLines    = 10
)

// ChartToSVG renders a chart as a standalone SVG line plot with title, axis
// labels and, when requested, a grid. An empty chart yields "".
func ChartToSVG(c viz.Chart, width, height int) string {
	if len(c.Samples) == 0 {
		return ""
	}

	tMin, tMax, uMin, uMax := c.Bounds()

	// Add padding
	rangeT := tMax - tMin
	if rangeT == 0 {
		rangeT = 1
	}
	rangeU := uMax - uMin
	if rangeU == 0 {
		rangeU = 1
	}
	uMin -= rangeU * 0.05
	uMax += rangeU * 0.05
	rangeU = uMax - uMin

	plotW := float64(width) - marginLeft - marginRight
	plotH := float64(height) - marginTop - marginBottom
	px := func(t float64) float64 { return marginLeft + (t-tMin)/rangeT*plotW }
	py := func(u float64) float64 { return marginTop + plotH - (u-uMin)/rangeU*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="12">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	if c.Grid {
		sb.WriteString(`<g stroke="#dddddd" stroke-width="1">` + "\n")
		for i := 0; i <= gridLines; i++ {
			x := marginLeft + float64(i)*plotW/gridLines
			y := marginTop + float64(i)*plotH/gridLines
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x, marginTop, x, marginTop+plotH))
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", marginLeft, y, marginLeft+plotW, y))
		}
		sb.WriteString("</g>\n")
	}

	// Axes
	sb.WriteString(fmt.Sprintf(`<g stroke="#333333" stroke-width="1.5"><line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/><line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/></g>`+"\n",
		marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH,
		marginLeft, marginTop, marginLeft, marginTop+plotH))

	// Tick labels at the ends of each axis
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n", px(tMin), marginTop+plotH+16, formatTick(tMin)))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n", px(tMax), marginTop+plotH+16, formatTick(tMax)))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="end">%s</text>`+"\n", marginLeft-6, py(uMin)+4, formatTick(uMin)))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="end">%s</text>`+"\n", marginLeft-6, py(uMax)+4, formatTick(uMax)))

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="16" font-weight="bold">%s</text>`+"\n",
		float64(width)/2, marginTop/2+6, html.EscapeString(c.Title)))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n",
		marginLeft+plotW/2, float64(height)-12, html.EscapeString(c.XLabel)))
	sb.WriteString(fmt.Sprintf(`<text x="16" y="%.1f" text-anchor="middle" transform="rotate(-90 16 %.1f)">%s</text>`+"\n",
		marginTop+plotH/2, marginTop+plotH/2, html.EscapeString(c.YLabel)))

	sb.WriteString(`<path fill="none" stroke="#008080" stroke-width="1.5" d="M`)
	for i, s := range c.Samples {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(s.T), py(s.U)))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(s.T), py(s.U)))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func formatTick(v float64) string {
	if math.Abs(v) < 1e-12 {
		v = 0
	}
	return fmt.Sprintf("%.3g", v)
}

var _ viz.Plotter = (*SVG)(nil)

// SVG is a viz.Plotter that writes each chart to a file.
type SVG struct {
	Path   string
	Width  int
	Height int
}

func NewSVG(path string, width, height int) *SVG {
	return &SVG{Path: path, Width: width, Height: height}
}

func (s *SVG) Plot(c viz.Chart) error {
	if len(c.Samples) == 0 {
		return viz.ErrNoSamples
	}
	return os.WriteFile(s.Path, []byte(ChartToSVG(c, s.Width, s.Height)), 0644)
}
