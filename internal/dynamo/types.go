package dynamo

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultWidth  = 840.0
	DefaultHeight = 520.0
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	Mass   float64
}

func (p Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

func (p Particle) IsValid() bool {
	for _, v := range [4]float64{p.X, p.Y, p.VX, p.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Ensemble is the ordered particle set of one frame. It is mutated in place by
// the kinetics stage and rebuilt from scratch whenever the particle count changes.
type Ensemble []Particle

func (e Ensemble) Clone() Ensemble {
	c := make(Ensemble, len(e))
	copy(c, e)
	return c
}

func (e Ensemble) IsValid() bool {
	for _, p := range e {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// MeanSpeed is the average |v| over the ensemble, 0 when empty.
func (e Ensemble) MeanSpeed() float64 {
	if len(e) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range e {
		sum += p.Speed()
	}
	return sum / float64(len(e))
}

type Bounds struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultBounds() Bounds {
	return Bounds{Width: DefaultWidth, Height: DefaultHeight}
}

func (b Bounds) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %.1fx%.1f", ErrInvalidBounds, b.Width, b.Height)
	}
	return nil
}

func (b Bounds) Aspect() float64 {
	if b.Width == 0 {
		return 0
	}
	return b.Height / b.Width
}

// Params are the external inputs read once per frame.
type Params struct {
	Temperature float64 `yaml:"temperature"`
	Noise       float64 `yaml:"noise"`
	Count       int     `yaml:"particles"`
}

func (p Params) Validate() error {
	if p.Temperature < 0 {
		return fmt.Errorf("%w: temperature %.2f", ErrParameterBounds, p.Temperature)
	}
	if p.Noise < 0 {
		return fmt.Errorf("%w: noise %.2f", ErrParameterBounds, p.Noise)
	}
	if p.Count < 0 {
		return fmt.Errorf("%w: particle count %d", ErrParameterBounds, p.Count)
	}
	return nil
}

// Sample is the per-frame (temperature, normalized entropy, count) tuple.
type Sample struct {
	Temperature float64 `json:"temperature"`
	Entropy     float64 `json:"entropy"`
	Count       int     `json:"count"`
}

// Snapshot is the read-only view handed to presenters. Slices are copies and
// may be retained by the receiver.
type Snapshot struct {
	Sample     Sample
	Frame      int
	At         time.Time
	Bounds     Bounds
	Cols, Rows int
	Particles  Ensemble
	Occupancy  []int
	DeltaT     float64
	Efficiency float64
	Noise      float64
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Presenter receives throttled snapshots from the frame loop.
type Presenter interface {
	Present(s Snapshot)
}

type PresenterFunc func(s Snapshot)

func (f PresenterFunc) Present(s Snapshot) { f(s) }

type Result struct {
	Samples   []Sample
	Metrics   map[string]float64
	FramesRun int
	Presented int
	Final     Snapshot
	Errors    []error
}

// Configurable exposes tunable model constants by name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
