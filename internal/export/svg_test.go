package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
	"github.com/san-kum/entropylab/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	assert.Empty(t, CanvasToSVG(nil, 2))

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(5, 6)

	svg := CanvasToSVG(c, 2)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `width="16" height="16"`)
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `cx="1.0" cy="1.0"`)
	assert.Contains(t, svg, `cx="11.0" cy="13.0"`)
}

func TestTSChartToSVG(t *testing.T) {
	samples := []dynamo.Sample{
		{Temperature: 300, Entropy: 0.8, Count: 220},
		{Temperature: 2000, Entropy: 0.95, Count: 220},
	}
	svg := TSChartToSVG(samples, 400, 300)

	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Equal(t, len(metrics.ReferenceCurve)-1, strings.Count(svg, " L"))
	// The hottest sample sets the axis: 2000 * 1.1 maps to the top margin,
	// so 2000 K sits just below it.
	assert.Contains(t, svg, `cy="60.0"`)
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestTSChartToSVGWithoutSamples(t *testing.T) {
	svg := TSChartToSVG(nil, 400, 300)
	assert.NotContains(t, svg, "<circle")
	assert.Contains(t, svg, `stroke="#ff6464"`)
}

func TestSeriesToSVG(t *testing.T) {
	assert.Empty(t, SeriesToSVG([]float64{1}, 100, 100, "#fff"))

	svg := SeriesToSVG([]float64{0, 1, 0.5}, 100, 100, "#00ff00")
	assert.Contains(t, svg, `stroke="#00ff00"`)
	assert.Equal(t, 2, strings.Count(svg, " L"))

	flat := SeriesToSVG([]float64{2, 2}, 100, 100, "#fff")
	assert.Contains(t, flat, "M0.0,50.0 L100.0,50.0")
}
