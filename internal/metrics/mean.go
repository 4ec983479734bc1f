package metrics

import (
	"github.com/san-kum/dynresp/internal/dynamo"
)

type Mean struct {
	name    string
	sum     float64
	samples int
}

func NewMean() *Mean {
	return &Mean{
		name: "mean_displacement",
	}
}

func (m *Mean) Name() string {
	return m.name
}

func (m *Mean) Observe(s dynamo.Sample) {
	m.sum += s.U
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}
