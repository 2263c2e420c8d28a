package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/entropylab/internal/dynamo"
)

func sampleData() ExportData {
	samples := []dynamo.Sample{
		{Temperature: 290, Entropy: 0.5, Count: 10},
		{Temperature: 580, Entropy: 0.75, Count: 10},
	}
	return NewExportData("run1", dynamo.DefaultBounds(), 20, 3, dynamo.Params{Temperature: 580, Noise: 1, Count: 10}, samples, map[string]float64{"mean_entropy": 0.625})
}

func TestNewExportDataDerivesMetrics(t *testing.T) {
	data := sampleData()

	if data.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", data.Frames)
	}
	if data.Samples[0].Efficiency != 0 {
		t.Errorf("expected 0%% efficiency at 290K, got %f", data.Samples[0].Efficiency)
	}
	if data.Samples[1].Efficiency != 50 {
		t.Errorf("expected 50%% efficiency at 580K, got %f", data.Samples[1].Efficiency)
	}
	if data.Samples[1].DeltaT != 280 {
		t.Errorf("expected delta T 280, got %f", data.Samples[1].DeltaT)
	}
	if data.Samples[1].Frame != 1 {
		t.Errorf("expected frame 1, got %d", data.Samples[1].Frame)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleData()); err != nil {
		t.Fatalf("write: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	samples, ok := decoded["samples"].([]any)
	if !ok || len(samples) != 2 {
		t.Fatalf("unexpected samples: %v", decoded["samples"])
	}
	first := samples[0].(map[string]any)
	if first["entropy"] != 0.5 {
		t.Errorf("embedded sample fields should be flattened, got %v", first)
	}
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(path, sampleData()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty file, err=%v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleData()); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "frame,temperature,entropy,count,delta_t,efficiency" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "1,580.000,0.750000,10,280.000,50.000" {
		t.Errorf("unexpected row %q", lines[2])
	}
}
