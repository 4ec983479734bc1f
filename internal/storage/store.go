package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/dynresp/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string                  `json:"id"`
	Timestamp time.Time               `json:"timestamp"`
	Params    dynamo.SystemParameters `json:"params"`
	Modal     dynamo.ModalProperties  `json:"modal"`
	Window    dynamo.Window           `json:"window"`
	Static    float64                 `json:"static"`
	A         float64                 `json:"a"`
	B         float64                 `json:"b"`
	Samples   int                     `json:"samples"`
	Metrics   map[string]float64      `json:"metrics"`
}

// Save archives resp and its metrics under a new run directory and returns the run id.
func (s *Store) Save(resp *dynamo.Response, metrics map[string]float64) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("run_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Params:    resp.Params,
		Modal:     resp.Modal,
		Window:    resp.Window,
		Static:    resp.Static,
		A:         resp.A,
		B:         resp.B,
		Samples:   len(resp.Samples),
		Metrics:   metrics,
	}

	if err := writeRun(runDir, meta, resp.Samples); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, samples []dynamo.Sample) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, samples); err != nil {
		return err
	}
	return csvFile.Close()
}

// WriteCSV writes samples as a time,displacement table with a header row.
func WriteCSV(out io.Writer, samples []dynamo.Sample) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"time", "displacement"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.T, 'g', -1, 64),
			strconv.FormatFloat(s.U, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns archived runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]dynamo.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []dynamo.Sample{}, nil
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("%s line %d: expected 2 fields, got %d", samplesFile, i+2, len(record))
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", samplesFile, i+2, err)
		}
		u, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", samplesFile, i+2, err)
		}
		samples = append(samples, dynamo.Sample{T: t, U: u})
	}

	return samples, nil
}
