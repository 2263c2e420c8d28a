package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/entropylab/internal/dynamo"
)

func testResult() *dynamo.Result {
	return &dynamo.Result{
		Samples: []dynamo.Sample{
			{Temperature: 300, Entropy: 0.81, Count: 220},
			{Temperature: 580, Entropy: 0.83, Count: 220},
		},
		FramesRun: 2,
		Metrics: map[string]float64{
			"mean_entropy": 0.82,
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Seed:   42,
		Bounds: dynamo.DefaultBounds(),
		Grid:   20,
		Params: dynamo.Params{Temperature: 300, Noise: 1, Count: 220},
	}
	runID, err := st.Save(meta, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.ID != runID {
		t.Errorf("expected id %s, got %s", runID, loaded.ID)
	}
	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if loaded.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", loaded.Frames)
	}
	if loaded.Metrics["mean_entropy"] != 0.82 {
		t.Errorf("expected mean_entropy 0.82, got %f", loaded.Metrics["mean_entropy"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[1].Temperature != 580 || samples[1].Entropy != 0.83 || samples[1].Count != 220 {
		t.Errorf("sample mismatch: %+v", samples[1])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Save(RunMetadata{Params: dynamo.Params{Temperature: 300}}, testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{}, &dynamo.Result{Metrics: map[string]float64{}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := st.Path(runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "samples.csv")); os.IsNotExist(err) {
		t.Error("samples.csv not created")
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("expected no samples, got %d", len(samples))
	}
}
