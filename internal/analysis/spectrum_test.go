package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDominantPeriod(t *testing.T) {
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = 0.5 + 0.1*math.Sin(2*math.Pi*float64(i)/32)
	}

	assert.InDelta(t, 32.0, DominantPeriod(data), 1e-9)
}

func TestDominantPeriodFlat(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = 0.7
	}
	assert.Equal(t, 0.0, DominantPeriod(data))
	assert.Equal(t, 0.0, DominantPeriod([]float64{1}))
}

func TestPowerSpectrumLength(t *testing.T) {
	assert.Len(t, PowerSpectrum(make([]float64, 100)), 50)
	assert.Nil(t, PowerSpectrum(nil))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4})
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.Equal(t, 2.5, s.Mean)
	assert.InDelta(t, math.Sqrt(1.25), s.StdDev, 1e-12)
	assert.Equal(t, 4, s.N)

	assert.Equal(t, Summary{}, Summarize(nil))
}
