package metrics

import (
	"math"

	"github.com/san-kum/entropylab/internal/dynamo"
)

type MeanEntropy struct {
	name    string
	samples int
	total   float64
}

func NewMeanEntropy() *MeanEntropy {
	return &MeanEntropy{name: "mean_entropy"}
}

func (m *MeanEntropy) Name() string { return m.name }

func (m *MeanEntropy) Observe(s dynamo.Sample) {
	m.total += s.Entropy
	m.samples++
}

func (m *MeanEntropy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEntropy) Reset() {
	m.total = 0
	m.samples = 0
}

// EntropyRange tracks max - min entropy seen, a rough measure of how far the
// gas wandered from its starting spread.
type EntropyRange struct {
	name     string
	min, max float64
	samples  int
}

func NewEntropyRange() *EntropyRange {
	return &EntropyRange{name: "entropy_range"}
}

func (e *EntropyRange) Name() string { return e.name }

func (e *EntropyRange) Observe(s dynamo.Sample) {
	if e.samples == 0 {
		e.min, e.max = s.Entropy, s.Entropy
	}
	e.min = math.Min(e.min, s.Entropy)
	e.max = math.Max(e.max, s.Entropy)
	e.samples++
}

func (e *EntropyRange) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.max - e.min
}

func (e *EntropyRange) Reset() {
	e.min, e.max = 0, 0
	e.samples = 0
}

type MeanEfficiency struct {
	name    string
	samples int
	total   float64
}

func NewMeanEfficiency() *MeanEfficiency {
	return &MeanEfficiency{name: "mean_efficiency"}
}

func (m *MeanEfficiency) Name() string { return m.name }

func (m *MeanEfficiency) Observe(s dynamo.Sample) {
	m.total += Efficiency(s.Temperature)
	m.samples++
}

func (m *MeanEfficiency) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEfficiency) Reset() {
	m.total = 0
	m.samples = 0
}

// FinalEntropy reports the last observed entropy.
type FinalEntropy struct {
	name string
	last float64
}

func NewFinalEntropy() *FinalEntropy {
	return &FinalEntropy{name: "final_entropy"}
}

func (f *FinalEntropy) Name() string            { return f.name }
func (f *FinalEntropy) Observe(s dynamo.Sample) { f.last = s.Entropy }
func (f *FinalEntropy) Value() float64          { return f.last }
func (f *FinalEntropy) Reset()                  { f.last = 0 }

// Default is the metric set attached to every run.
func Default() []dynamo.Metric {
	return []dynamo.Metric{
		NewMeanEntropy(),
		NewEntropyRange(),
		NewMeanEfficiency(),
		NewFinalEntropy(),
	}
}
