package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/dynresp/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Times         []float64 `json:"times"`
	Displacements []float64 `json:"displacements"`
}

// ExportJSON writes a run's metadata and samples as one indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []dynamo.Sample) error {
	data := ExportData{
		RunMetadata:   *meta,
		Times:         make([]float64, len(samples)),
		Displacements: make([]float64, len(samples)),
	}
	for i, s := range samples {
		data.Times[i] = s.T
		data.Displacements[i] = s.U
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
