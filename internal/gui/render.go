package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/entropylab/internal/analysis"
	"github.com/san-kum/entropylab/internal/metrics"
	"github.com/san-kum/entropylab/internal/timeline"
	"github.com/san-kum/entropylab/internal/viz"
)

func (a *App) drawRegion() {
	b := a.Sim.Config().Bounds
	w, h := int32(b.Width), int32(b.Height)
	rl.DrawRectangleGradientV(originX, originY, w, h, ColTop, ColBottom)

	if a.ShowGrid {
		a.drawCells()
	}

	scale := a.Sim.Gas().SpeedScale(a.Params.Temperature)
	for _, p := range a.Sim.Ensemble() {
		speed := p.Speed()
		r, g, bl := viz.ParticleRGB(viz.SpeedHeat(speed, scale))
		pos := rl.NewVector2(float32(originX+p.X), float32(originY+p.Y))
		rl.DrawCircleV(pos, float32(viz.ParticleSize(speed)/2), rl.NewColor(r, g, bl, 255))
	}

	rl.DrawRectangleLines(originX, originY, w, h, ColTextDim)
}

// drawCells tints every grid cell by occupancy at low alpha.
func (a *App) drawCells() {
	grid := a.Sim.Grid()
	occ := a.Sim.Occupancy()
	if len(occ) < grid.Size() {
		return
	}
	total := a.Sim.Particles()
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			t := analysis.Shade(occ[col+row*grid.Cols], total, grid.Cols)
			r, g, b := viz.CellRGB(t)
			x := originX + int32(float64(col)*grid.CellW)
			y := originY + int32(float64(row)*grid.CellH)
			rl.DrawRectangle(x, y, int32(grid.CellW)+1, int32(grid.CellH)+1, rl.NewColor(r, g, b, 40))
		}
	}
}

func (a *App) panelX() int {
	return originX + int(a.Sim.Config().Bounds.Width) + 30
}

func (a *App) DrawHUD() {
	a.drawText("ENTROPY LAB", originX, 20, 24, ColSelect)

	x, y := a.panelX(), originY
	s := a.Snap
	line := func(label, value string) {
		a.drawText(label, x, y, 16, ColText)
		a.drawText(value, x+110, y, 16, ColSelect)
		y += 26
	}
	line("T", fmt.Sprintf("%.0f K", s.Sample.Temperature))
	line("dT", fmt.Sprintf("%.0f K", s.DeltaT))
	if metrics.HasEfficiency(s.Sample.Temperature) {
		line("eff", fmt.Sprintf("%.1f %%", s.Efficiency))
	}
	line("S", fmt.Sprintf("%.3f", s.Sample.Entropy))
	line("N", fmt.Sprintf("%d", s.Sample.Count))
	line("noise", fmt.Sprintf("%.1f", a.Params.Noise))

	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	if a.Audio != nil {
		status += "  AUDIO"
	}
	a.drawText(status, x, y+10, 14, ColAccent)

	help := []string{
		"UP/DOWN  T +/-10",
		"LEFT/RIGHT noise +/-0.1",
		"= / -    particles +/-20",
		"SPACE pause  R reset",
		"G grid  TAB year  ENTER info",
	}
	for i, h := range help {
		a.drawText(h, x, screenH-150+i*20, 14, ColTextDim)
	}
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), x, screenH-40, 14, ColTextDim)
}

// DrawTelemetry plots the entropy history under the stats.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	x0, y0 := float32(a.panelX()), float32(originY+240)
	w, h := float32(300), float32(100)

	rl.DrawRectangleLines(int32(x0), int32(y0), int32(w), int32(h), ColTextDim)
	a.drawText("S history", int(x0), int(y0)-18, 12, ColText)

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := x0 + float32(i)/float32(maxTelemetry-1)*w
		py := y0 + h - float32(v)*h
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
}

// DrawTSPlot marks the current (S, T) state over the reference curve.
func (a *App) DrawTSPlot() {
	x0, y0 := float32(a.panelX()), float32(originY+380)
	w, h := float32(300), float32(150)

	rl.DrawRectangleLines(int32(x0), int32(y0), int32(w), int32(h), ColTextDim)
	a.drawText("T-S", int(x0), int(y0)-18, 12, ColText)

	temp := a.Snap.Sample.Temperature
	maxT := metrics.ChartMaxT(temp)
	at := func(s, t float64) rl.Vector2 {
		s = min(max(s, 0), 1)
		t = min(max(t/maxT, 0), 1)
		return rl.NewVector2(x0+float32(s)*w, y0+h-float32(t)*h)
	}

	curve := make([]rl.Vector2, len(metrics.ReferenceCurve))
	for i, p := range metrics.ReferenceCurve {
		curve[i] = at(p.S, p.T)
	}
	rl.DrawLineStrip(curve, ColAccent)
	rl.DrawCircleV(at(a.Snap.Sample.Entropy, temp), 5, ColSelect)
}

func (a *App) drawTimeline() {
	if len(a.Events) == 0 {
		return
	}
	y := originY + int(a.Sim.Config().Bounds.Height) + 20
	labels := make([]string, len(a.Events))
	for i, ev := range a.Events {
		labels[i] = fmt.Sprintf("%d", ev.Year)
		color := ColTextDim
		if i == a.EventSel {
			color = ColSelect
		}
		a.drawText(labels[i], originX+i*80, y, 16, color)
	}

	if !a.ShowInfo {
		return
	}
	ev := a.Events[a.EventSel]
	bx, by, bw, bh := int32(screenW/2-300), int32(screenH/2-120), int32(600), int32(240)
	rl.DrawRectangle(bx, by, bw, bh, rl.NewColor(8, 16, 24, 235))
	rl.DrawRectangleLines(bx, by, bw, bh, ColAccent)

	ty := int(by) + 20
	for _, l := range strings.Split(timeline.Describe(ev), "\n") {
		for _, wrapped := range wrap(l, 70) {
			a.drawText(wrapped, int(bx)+20, ty, 16, ColSelect)
			ty += 20
		}
	}
}

// wrap splits s into lines of at most n bytes on word boundaries.
func wrap(s string, n int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0)
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > n {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	return append(lines, cur)
}
