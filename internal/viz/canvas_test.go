package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/entropylab/internal/dynamo"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 set, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8 set, got %U", c.Grid[0][1])
	}
	if c.Dots() != 2 {
		t.Errorf("expected 2 dots, got %d", c.Dots())
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Error("IsSet disagrees with Set")
	}

	c.Clear()
	if c.Dots() != 0 {
		t.Errorf("expected empty canvas after Clear, got %d dots", c.Dots())
	}
}

func TestCanvasProject(t *testing.T) {
	c := NewCanvas(60, 18)
	b := dynamo.DefaultBounds()

	tests := []struct {
		name   string
		x, y   float64
		px, py int
	}{
		{"origin", 0, 0, 0, 0},
		{"center", 420, 260, 60, 36},
		{"far edge clamps", 840, 520, 119, 71},
		{"outside clamps", -5, 9999, 0, 71},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, py := c.Project(b, tt.x, tt.y)
			if px != tt.px || py != tt.py {
				t.Errorf("Project(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, px, py, tt.px, tt.py)
			}
		})
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 1)
	c.DrawLine(0, 0, 19, 0)
	if c.Dots() != 20 {
		t.Errorf("expected 20 dots on a horizontal line, got %d", c.Dots())
	}
	if lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n"); len(lines) != 1 {
		t.Errorf("expected 1 row, got %d", len(lines))
	}
}

func TestRecorder(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(1, 1)

	r := NewRecorder()
	r.Capture(c)
	r.Capture(c)
	if r.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", r.Len())
	}

	var sb strings.Builder
	if err := r.Encode(&sb); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(sb.String(), "GIF89a") {
		t.Error("expected a GIF89a header")
	}
}
