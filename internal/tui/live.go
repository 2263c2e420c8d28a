package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a plain ANSI presenter for headless runs. It redraws the
// whole screen on every snapshot it is handed.
type LiveRenderer struct {
	out    io.Writer
	label  string
	canvas [][]rune
	frames int
}

func NewLiveRenderer(label string) *LiveRenderer {
	return NewLiveRendererTo(os.Stdout, label)
}

func NewLiveRendererTo(out io.Writer, label string) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:    out,
		label:  label,
		canvas: canvas,
	}
}

func (r *LiveRenderer) Present(s dynamo.Snapshot) {
	r.clear()
	r.drawParticles(s)
	r.render(s)
	r.frames++
}

// Frames is the number of snapshots drawn.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// glyph picks a marker by speed: slow '.', medium 'o', fast 'O'.
func glyph(speed float64) rune {
	switch {
	case speed < 0.5:
		return '.'
	case speed < 1.5:
		return 'o'
	default:
		return 'O'
	}
}

func (r *LiveRenderer) drawParticles(s dynamo.Snapshot) {
	if s.Bounds.Width <= 0 || s.Bounds.Height <= 0 {
		return
	}
	for _, p := range s.Particles {
		x := int(p.X / s.Bounds.Width * width)
		y := int(p.Y / s.Bounds.Height * height)
		c := glyph(p.Speed())
		// Keep the fastest marker when particles share a character cell.
		if cur := r.canvas[min(max(y, 0), height-1)][min(max(x, 0), width-1)]; cur == 'O' || (cur == 'o' && c == '.') {
			continue
		}
		r.set(x, y, c)
	}
}

func (r *LiveRenderer) render(s dynamo.Snapshot) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  frame=%d\n", r.label, s.Frame))
	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")

	for _, row := range r.canvas {
		b.WriteString("  |")
		b.WriteString(string(row))
		b.WriteString("|\n")
	}

	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")

	line := fmt.Sprintf("  T=%.0fK  ΔT=%.0fK  S=%.3f  N=%d", s.Sample.Temperature, s.DeltaT, s.Sample.Entropy, s.Sample.Count)
	if metrics.HasEfficiency(s.Sample.Temperature) {
		line += fmt.Sprintf("  η=%.1f%%", s.Efficiency)
	}
	b.WriteString(line + "\n")

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
