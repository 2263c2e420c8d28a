package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/timeline"
)

func TestParticleSize(t *testing.T) {
	tests := []struct {
		speed, want float64
	}{
		{0, 3},
		{1, 5},
		{2.5, 8},
		{10, 8},
	}
	for _, tt := range tests {
		if got := ParticleSize(tt.speed); got != tt.want {
			t.Errorf("ParticleSize(%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestSpeedHeat(t *testing.T) {
	if got := SpeedHeat(0.25, 1); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
	if got := SpeedHeat(5, 1); got != 1 {
		t.Errorf("expected saturation at 1, got %v", got)
	}
}

func TestShadeRune(t *testing.T) {
	tests := []struct {
		t    float64
		want rune
	}{
		{-1, ' '},
		{0, ' '},
		{0.5, '▒'},
		{1, '█'},
		{3, '█'},
	}
	for _, tt := range tests {
		if got := ShadeRune(tt.t); got != tt.want {
			t.Errorf("ShadeRune(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestDrawParticles(t *testing.T) {
	c := NewCanvas(60, 18)
	ens := dynamo.Ensemble{
		{X: 100, Y: 100},
		{X: 700, Y: 400, VX: 3},
	}
	DrawParticles(c, dynamo.DefaultBounds(), ens)

	if c.Dots() != 1+9 {
		t.Errorf("expected a single dot and a 3x3 blob, got %d dots", c.Dots())
	}
}

func TestDrawTS(t *testing.T) {
	c := NewCanvas(30, 8)
	DrawTS(c, 0.9, 150)

	// the curve runs from (0.05, 150 K) at the bottom left to (0.9, 1500 K)
	// near the top right
	if !c.IsSet(3, 28) || !c.IsSet(53, 3) {
		t.Error("reference curve endpoints not drawn")
	}
	// current state sits far below the curve's hot end
	if !c.IsSet(53, 28) {
		t.Error("current state not marked")
	}
	if c.IsSet(0, 31) {
		t.Error("unexpected dot in the empty corner")
	}

	// redrawing clears the previous marker
	DrawTS(c, 0.05, 1500)
	if c.IsSet(53, 28) {
		t.Error("stale marker left on the chart")
	}
}

func TestDrawTSGrowsAxisForHotStates(t *testing.T) {
	c := NewCanvas(30, 8)
	DrawTS(c, 0.5, 3000)

	// the axis tops out at 3300 K, pushing the curve's 1500 K end down to
	// mid-height
	if !c.IsSet(30, 3) {
		t.Error("hot state should sit near the top")
	}
	if !c.IsSet(53, 17) || c.IsSet(53, 3) {
		t.Error("reference curve not rescaled to the hotter axis")
	}
}

func TestHeatmap(t *testing.T) {
	occ := []int{4, 0, 0, 0}
	out := Heatmap(occ, 2, 2, 4)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
	if !strings.Contains(out, "██") {
		t.Errorf("expected a saturated cell, got %q", out)
	}

	if Heatmap(occ, 3, 3, 4) != "" {
		t.Error("expected empty output for a short occupancy slice")
	}
}

func TestBlend(t *testing.T) {
	if got := Blend("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("t=0: got %s", got)
	}
	if got := Blend("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("t=1: got %s", got)
	}
	if got := Blend("#000000", "#ffffff", 2); got != "#ffffff" {
		t.Errorf("t is clamped: got %s", got)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("ocean")

	if GetTheme("nope").Name != "ocean" {
		t.Error("unknown theme should fall back to ocean")
	}
	SetTheme("ocean")
	NextTheme()
	if CurrentTheme.Name != "cyberpunk" {
		t.Errorf("expected cyberpunk after ocean, got %s", CurrentTheme.Name)
	}
}

func TestBrowser(t *testing.T) {
	b := NewBrowser(timeline.Events())
	if b.Active() {
		t.Fatal("browser starts inactive")
	}
	b.Expand()
	if b.Expanded() || b.Popup() != "" {
		t.Error("an inactive browser does not expand")
	}

	b.Toggle()
	b.Prev()
	ev, _ := b.Selected()
	if ev.Year != 2000 {
		t.Errorf("Prev from the first event should wrap to 2000, got %d", ev.Year)
	}
	b.Next()
	b.Next()
	ev, _ = b.Selected()
	if ev.Year != 1850 {
		t.Errorf("expected 1850, got %d", ev.Year)
	}

	if !strings.Contains(b.View(), "Rudolf Clausius") {
		t.Error("focused strip should show the selected heading")
	}

	b = NewBrowser(timeline.Events())
	b.Toggle()
	b.Expand()
	if !strings.Contains(b.Popup(), "Carnot") {
		t.Errorf("popup should describe the selected event: %q", b.Popup())
	}
	b.Toggle()
	if b.Expanded() || b.Popup() != "" {
		t.Error("closing the strip closes the popup")
	}
}

func TestBrowserEmpty(t *testing.T) {
	b := NewBrowser(nil)
	b.Next()
	b.Prev()
	b.Expand()
	if _, ok := b.Selected(); ok {
		t.Error("empty browser has no selection")
	}
	if b.View() != "" || b.Popup() != "" {
		t.Error("empty browser renders nothing")
	}
}

func TestParticleRGB(t *testing.T) {
	r, g, b := ParticleRGB(0)
	if r != 30 || g != 80 || b != 220 {
		t.Errorf("slow particle: got %d,%d,%d", r, g, b)
	}
	r, g, b = ParticleRGB(1)
	if r != 200 || g != 0 || b != 0 {
		t.Errorf("fast particle: got %d,%d,%d", r, g, b)
	}
}

func TestCellRGB(t *testing.T) {
	r, g, b := CellRGB(0)
	if r != 30 || g != 120 || b != 30 {
		t.Errorf("empty cell: got %d,%d,%d", r, g, b)
	}
	r, g, b = CellRGB(1)
	if r != 255 || g != 60 || b != 100 {
		t.Errorf("full cell: got %d,%d,%d", r, g, b)
	}
}
