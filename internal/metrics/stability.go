package metrics

import (
	"math"

	"github.com/san-kum/entropylab/internal/dynamo"
)

// Stability is the fraction of frame-to-frame entropy changes that stay
// within threshold. A gas that has spread out evenly scores close to 1.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
	last       float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "entropy_stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(smp dynamo.Sample) {
	if s.samples > 0 && math.Abs(smp.Entropy-s.last) > s.threshold {
		s.violations++
	}
	s.last = smp.Entropy
	s.samples++
}

func (s *Stability) Value() float64 {
	if s.samples < 2 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples-1)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.last = 0
}
