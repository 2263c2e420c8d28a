package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X_k| for the first half of the real FFT of the
// mean-removed series. Any length works; go-dsp falls back to Bluestein for
// non powers of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantPeriod is the period, in frames, of the strongest non-DC bin.
// It returns 0 when the series is flat or too short.
func DominantPeriod(data []float64) float64 {
	ps := PowerSpectrum(data)
	best, bestK := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestK = ps[k], k
		}
	}
	if bestK == 0 || best < 1e-12 {
		return 0
	}
	return float64(len(data)) / float64(bestK)
}

type Summary struct {
	Min, Max, Mean, StdDev float64
	N                      int
}

func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{Min: data[0], Max: data[0], N: len(data)}
	sum := 0.0
	for _, v := range data {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(data))
	varSum := 0.0
	for _, v := range data {
		d := v - s.Mean
		varSum += d * d
	}
	s.StdDev = math.Sqrt(varSum / float64(len(data)))
	return s
}
