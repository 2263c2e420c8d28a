package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/entropylab/internal/analysis"
	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
)

var shadeRunes = []rune{' ', '░', '▒', '▓', '█'}

// ParticleSize is the drawn radius in screen pixels for a particle of the
// given speed.
func ParticleSize(speed float64) float64 {
	return math.Min(3+2*speed, 8)
}

// SpeedHeat maps a speed to [0, 1] for the colour ramp; scale is the speed
// scale of the current temperature.
func SpeedHeat(speed, scale float64) float64 {
	return math.Min(1, 2*speed*scale)
}

// ShadeRune picks a block character for an intensity in [0, 1].
func ShadeRune(t float64) rune {
	i := int(math.Round(min(max(t, 0), 1) * float64(len(shadeRunes)-1)))
	return shadeRunes[i]
}

// DrawParticles plots every particle, fast ones as a 3x3 blob.
func DrawParticles(c *Canvas, b dynamo.Bounds, ens dynamo.Ensemble) {
	for _, p := range ens {
		x, y := c.Project(b, p.X, p.Y)
		if ParticleSize(p.Speed()) >= 6 {
			c.Blob(x, y, 1)
		} else {
			c.Set(x, y)
		}
	}
}

// TSProject maps an (entropy, temperature) pair onto dot coordinates of a
// T-S chart whose temperature axis tops out at maxT. Hotter is higher.
func TSProject(c *Canvas, s, t, maxT float64) (int, int) {
	cw, ch := c.SubSize()
	px := int(math.Round(min(max(s, 0), 1) * float64(cw-1)))
	py := ch - 1 - int(math.Round(min(max(t/maxT, 0), 1)*float64(ch-1)))
	return px, py
}

// DrawTS clears c and draws the reference curve with the current state
// marked on top.
func DrawTS(c *Canvas, s, t float64) {
	c.Clear()
	maxT := metrics.ChartMaxT(t)
	for i := 1; i < len(metrics.ReferenceCurve); i++ {
		a, b := metrics.ReferenceCurve[i-1], metrics.ReferenceCurve[i]
		x0, y0 := TSProject(c, a.S, a.T, maxT)
		x1, y1 := TSProject(c, b.S, b.T, maxT)
		c.DrawLine(x0, y0, x1, y1)
	}
	x, y := TSProject(c, s, t, maxT)
	c.Blob(x, y, 1)
}

// Heatmap renders occupancy as rows of shaded cells, two characters per cell.
// Intensity follows analysis.Shade.
func Heatmap(occupancy []int, cols, rows, total int) string {
	if cols <= 0 || rows <= 0 || len(occupancy) < cols*rows {
		return ""
	}
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := analysis.Shade(occupancy[c+r*cols], total, cols)
			cell := strings.Repeat(string(ShadeRune(t)), 2)
			b.WriteString(lipgloss.NewStyle().Foreground(Ramp(t)).Render(cell))
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ParticleRGB is the particle fill for a heat in [0, 1]: blue-violet when
// slow, red when fast.
func ParticleRGB(t float64) (r, g, b uint8) {
	t = min(max(t, 0), 1)
	return uint8(200*t + 30*(1-t)), uint8(80 * (1 - t)), uint8(220 * (1 - t))
}

// CellRGB is the occupancy tint for a shade in [0, 1], from green (sparse) to
// red (crowded). It is drawn at low alpha over the region.
func CellRGB(t float64) (r, g, b uint8) {
	t = min(max(t, 0), 1)
	lerp := func(from, to, t float64) uint8 { return uint8(from + (to-from)*t) }
	return lerp(30, 255, t), lerp(60, 120, 1-t), lerp(100, 30, 1-t)
}
