package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
)

type ExportData struct {
	RunID   string             `json:"run_id,omitempty"`
	Bounds  dynamo.Bounds      `json:"bounds"`
	Grid    int                `json:"grid"`
	Seed    int64              `json:"seed"`
	Params  dynamo.Params      `json:"params"`
	Frames  int                `json:"frames"`
	Samples []ExportSample     `json:"samples"`
	Metrics map[string]float64 `json:"metrics"`
}

type ExportSample struct {
	Frame int `json:"frame"`
	dynamo.Sample
	DeltaT     float64 `json:"delta_t"`
	Efficiency float64 `json:"efficiency"`
}

func NewExportData(runID string, b dynamo.Bounds, grid int, seed int64, p dynamo.Params, samples []dynamo.Sample, m map[string]float64) ExportData {
	data := ExportData{
		RunID:   runID,
		Bounds:  b,
		Grid:    grid,
		Seed:    seed,
		Params:  p,
		Frames:  len(samples),
		Samples: make([]ExportSample, len(samples)),
		Metrics: m,
	}
	for i, s := range samples {
		data.Samples[i] = ExportSample{
			Frame:      i,
			Sample:     s,
			DeltaT:     metrics.DeltaT(s.Temperature),
			Efficiency: metrics.Efficiency(s.Temperature),
		}
	}
	return data
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func ExportJSONStdout(data ExportData) error {
	return WriteJSON(os.Stdout, data)
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes the samples as frame,temperature,entropy,count,delta_t,efficiency.
func WriteCSV(w io.Writer, data ExportData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frame", "temperature", "entropy", "count", "delta_t", "efficiency"}); err != nil {
		return err
	}
	for _, s := range data.Samples {
		row := []string{
			strconv.Itoa(s.Frame),
			strconv.FormatFloat(s.Temperature, 'f', 3, 64),
			strconv.FormatFloat(s.Entropy, 'f', 6, 64),
			strconv.Itoa(s.Count),
			strconv.FormatFloat(s.DeltaT, 'f', 3, 64),
			strconv.FormatFloat(s.Efficiency, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
