package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/entropylab/internal/analysis"
	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
	"github.com/san-kum/entropylab/internal/physics"
)

type Simulator struct {
	cfg        Config
	gas        *physics.Gas
	grid       analysis.Grid
	rng        *rand.Rand
	state      State
	throttle   *Throttle
	metrics    []dynamo.Metric
	presenters []dynamo.Presenter
}

func New(cfg Config) (*Simulator, error) {
	if err := cfg.Bounds.Validate(); err != nil {
		return nil, err
	}
	if cfg.GridCols <= 0 {
		return nil, fmt.Errorf("%w: grid columns %d", dynamo.ErrParameterBounds, cfg.GridCols)
	}
	if cfg.Throttle < 0 {
		return nil, fmt.Errorf("%w: throttle %s", dynamo.ErrParameterBounds, cfg.Throttle)
	}
	return &Simulator{
		cfg:        cfg,
		gas:        physics.NewGas(cfg.Bounds),
		grid:       analysis.NewGrid(cfg.Bounds, cfg.GridCols),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		throttle:   NewThrottle(cfg.Throttle),
		metrics:    make([]dynamo.Metric, 0),
		presenters: make([]dynamo.Presenter, 0),
	}, nil
}

func (s *Simulator) AddMetric(m dynamo.Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddPresenter(p dynamo.Presenter) { s.presenters = append(s.presenters, p) }

func (s *Simulator) Gas() *physics.Gas         { return s.gas }
func (s *Simulator) Grid() analysis.Grid       { return s.grid }
func (s *Simulator) Config() Config            { return s.cfg }
func (s *Simulator) Sample() dynamo.Sample     { return s.state.Sample }
func (s *Simulator) Frames() int               { return s.state.Frame }
func (s *Simulator) Particles() int            { return len(s.state.Ensemble) }
func (s *Simulator) Occupancy() []int          { return s.state.Occupancy }
func (s *Simulator) Ensemble() dynamo.Ensemble { return s.state.Ensemble }

// Reinit discards the ensemble and spawns n fresh particles.
func (s *Simulator) Reinit(n int) {
	s.state.Ensemble = s.gas.Spawn(n, s.rng)
	s.state.initialized = true
}

// Reset spawns a fresh ensemble of the current size and clears metrics and
// the throttle. The frame counter restarts at zero.
func (s *Simulator) Reset() {
	s.Reinit(len(s.state.Ensemble))
	s.state.Frame = 0
	s.state.Sample = dynamo.Sample{}
	s.state.Occupancy = nil
	s.state.At = time.Time{}
	s.throttle.Reset()
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Frame runs one kinetics step and one entropy measurement. A change in
// p.Count rebuilds the ensemble before stepping. Presenters are notified at
// most once per throttle interval measured against now.
func (s *Simulator) Frame(p dynamo.Params, now time.Time) dynamo.Sample {
	if !s.state.initialized || len(s.state.Ensemble) != max(p.Count, 0) {
		s.Reinit(p.Count)
	}

	s.gas.Step(s.state.Ensemble, p, s.rng)
	sample, bins := analysis.Measure(s.grid, s.state.Ensemble, p.Temperature)

	s.state.Sample = sample
	s.state.Occupancy = bins
	s.state.Params = p
	s.state.Frame++
	s.state.At = now

	for _, m := range s.metrics {
		m.Observe(sample)
	}

	if len(s.presenters) > 0 && s.throttle.Allow(now) {
		snap := s.snapshotAt(now)
		for _, pr := range s.presenters {
			pr.Present(snap)
		}
	}
	return sample
}

// Snapshot returns a deep copy of the current frame for read-only use.
func (s *Simulator) Snapshot() dynamo.Snapshot {
	return s.snapshotAt(s.state.At)
}

func (s *Simulator) snapshotAt(at time.Time) dynamo.Snapshot {
	occ := make([]int, len(s.state.Occupancy))
	copy(occ, s.state.Occupancy)
	t := s.state.Sample.Temperature
	return dynamo.Snapshot{
		Sample:     s.state.Sample,
		Frame:      s.state.Frame,
		At:         at,
		Bounds:     s.cfg.Bounds,
		Cols:       s.grid.Cols,
		Rows:       s.grid.Rows,
		Particles:  s.state.Ensemble.Clone(),
		Occupancy:  occ,
		DeltaT:     metrics.DeltaT(t),
		Efficiency: metrics.Efficiency(t),
		Noise:      s.state.Params.Noise,
	}
}

// Run drives the simulator for a fixed number of frames with constant inputs.
func (s *Simulator) Run(ctx context.Context, p dynamo.Params, frames int, clock Clock) (*dynamo.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.Drive(ctx, Constant(p), frames, clock)
}

// Drive runs frames with inputs supplied per frame by src. Cancellation is
// checked between frames; the partial result is returned with ctx.Err().
func (s *Simulator) Drive(ctx context.Context, src ParamSource, frames int, clock Clock) (*dynamo.Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, frames)
	}
	if clock == nil {
		clock = time.Now
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	counter := &presentCounter{}
	s.presenters = append(s.presenters, counter)
	defer func() { s.presenters = s.presenters[:len(s.presenters)-1] }()

	result := &dynamo.Result{
		Samples: make([]dynamo.Sample, 0, frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, counter)
			return result, ctx.Err()
		default:
		}

		p := src(i)
		if err := p.Validate(); err != nil {
			result.Errors = append(result.Errors, &dynamo.FrameError{Frame: i, Wrapped: err})
			break
		}

		sample := s.Frame(p, clock())
		result.Samples = append(result.Samples, sample)
		result.FramesRun++

		if !s.state.Ensemble.IsValid() {
			result.Errors = append(result.Errors, &dynamo.FrameError{Frame: i, Sample: sample, Wrapped: dynamo.ErrInvalidState})
			break
		}
	}

	s.finish(result, counter)
	return result, nil
}

func (s *Simulator) finish(result *dynamo.Result, counter *presentCounter) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Presented = counter.n
	result.Final = s.Snapshot()
}

type presentCounter struct{ n int }

func (c *presentCounter) Present(dynamo.Snapshot) { c.n++ }
