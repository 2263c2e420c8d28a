package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
	"github.com/san-kum/entropylab/internal/viz"
)

const chartPad = 40.0

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	cw, ch := canvas.SubSize()
	var sb strings.Builder
	header(&sb, float64(cw)*scale, float64(ch)*scale)
	sb.WriteString("<g fill=\"#00bfff\">\n")

	dotRadius := scale * 0.4
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TSChartToSVG plots samples as (entropy, temperature) points over the
// reference curve. Entropy spans [0, 1]; the temperature axis grows to fit
// the hottest sample.
func TSChartToSVG(samples []dynamo.Sample, width, height int) string {
	w, h := float64(width), float64(height)
	hottest := 0.0
	for _, s := range samples {
		hottest = max(hottest, s.Temperature)
	}
	maxT := metrics.ChartMaxT(hottest)

	toX := func(s float64) float64 { return chartPad + s*(w-2*chartPad) }
	toY := func(t float64) float64 { return h - chartPad - t/maxT*(h-2*chartPad) }

	var sb strings.Builder
	header(&sb, w, h)

	sb.WriteString(fmt.Sprintf(`<g stroke="#444466" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, chartPad, h-chartPad, w-chartPad, h-chartPad, chartPad, chartPad, chartPad, h-chartPad))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#888899" font-size="12">S</text>
<text x="%.1f" y="%.1f" fill="#888899" font-size="12">T (K)</text>
`, w-chartPad+8, h-chartPad+4, 4.0, chartPad-8))

	sb.WriteString(`<path fill="none" stroke="#ff6464" stroke-width="2" d="`)
	for i, p := range metrics.ReferenceCurve {
		cmd := " L"
		if i == 0 {
			cmd = "M"
		}
		sb.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, toX(p.S), toY(p.T)))
	}
	sb.WriteString("\"/>\n")

	sb.WriteString("<g fill=\"#00bfff\">\n")
	for _, s := range samples {
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"2.0\"/>\n", toX(s.Entropy), toY(s.Temperature)))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG draws values against their index as a single polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rangeY := hi - lo
	if rangeY == 0 {
		rangeY = 1
	}
	lo -= rangeY * 0.1
	hi += rangeY * 0.1
	rangeY = hi - lo
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-lo)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
