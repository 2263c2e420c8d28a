package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var samplesHeader = []string{"frame", "temperature", "entropy", "count", "delta_t", "efficiency"}

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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Bounds    dynamo.Bounds      `json:"bounds"`
	Grid      int                `json:"grid"`
	Params    dynamo.Params      `json:"params"`
	Frames    int                `json:"frames"`
	Label     string             `json:"label,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and samples.csv into a new run directory and
// returns the run id. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("T%.0f_%d", meta.Params.Temperature, now.UnixMilli())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = result.FramesRun
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(samplesHeader); err != nil {
		return "", err
	}
	for i, smp := range result.Samples {
		if err := w.Write(sampleRow(i, smp)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func sampleRow(frame int, smp dynamo.Sample) []string {
	return []string{
		strconv.Itoa(frame),
		strconv.FormatFloat(smp.Temperature, 'f', 3, 64),
		strconv.FormatFloat(smp.Entropy, 'f', 6, 64),
		strconv.Itoa(smp.Count),
		strconv.FormatFloat(metrics.DeltaT(smp.Temperature), 'f', 3, 64),
		strconv.FormatFloat(metrics.Efficiency(smp.Temperature), 'f', 3, 64),
	}
}

// List returns all readable runs, oldest first. Directories without valid
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadSamples reads samples.csv back. Malformed rows are skipped.
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
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		temp, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		entropy, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		count, err := strconv.Atoi(record[3])
		if err != nil {
			continue
		}
		samples = append(samples, dynamo.Sample{Temperature: temp, Entropy: entropy, Count: count})
	}

	return samples, nil
}

// Path returns the directory of a run.
func (s *Store) Path(runID string) string {
	return filepath.Join(s.baseDir, runID)
}
