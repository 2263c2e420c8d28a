package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/entropylab/internal/dynamo"
)

func snapshot(temp float64) dynamo.Snapshot {
	return dynamo.Snapshot{
		Sample: dynamo.Sample{Temperature: temp, Entropy: 0.5, Count: 3},
		Frame:  12,
		Bounds: dynamo.Bounds{Width: 700, Height: 200},
		Particles: dynamo.Ensemble{
			{X: 0, Y: 0},
			{X: 350, Y: 100, VX: 1},
			{X: 699, Y: 199, VX: 3},
		},
		DeltaT:     temp - 300,
		Efficiency: 42,
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		speed float64
		want  rune
	}{
		{0, '.'},
		{0.49, '.'},
		{1, 'o'},
		{1.5, 'O'},
		{9, 'O'},
	}
	for _, tt := range tests {
		if got := glyph(tt.speed); got != tt.want {
			t.Errorf("glyph(%v) = %q, want %q", tt.speed, got, tt.want)
		}
	}
}

func TestLiveRendererPresent(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRendererTo(&buf, "room")
	r.Present(snapshot(500))

	if r.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", r.Frames())
	}
	if r.canvas[0][0] != '.' || r.canvas[10][35] != 'o' || r.canvas[19][69] != 'O' {
		t.Error("particles not placed where expected")
	}

	out := buf.String()
	for _, want := range []string{clearScreen, "room  frame=12", "T=500K", "S=0.500", "N=3", "η=42.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestLiveRendererHidesEfficiencyWhenCold(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRendererTo(&buf, "cold")
	r.Present(snapshot(250))
	if strings.Contains(buf.String(), "η") {
		t.Error("efficiency must not be shown at or below 290 K")
	}
}

func TestLiveRendererKeepsFastestMarker(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRendererTo(&buf, "x")
	s := snapshot(300)
	s.Particles = dynamo.Ensemble{{X: 5, Y: 5, VX: 3}, {X: 5, Y: 5}}
	r.Present(s)
	if r.canvas[0][0] != 'O' {
		t.Errorf("expected 'O' to win the cell, got %q", r.canvas[0][0])
	}
}
