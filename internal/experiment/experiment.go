package experiment

import (
	"context"
	"time"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/sim"
)

type Config struct {
	Label    string
	Bounds   dynamo.Bounds
	Grid     int
	Seed     int64
	Throttle time.Duration
	Params   dynamo.Params
	Frames   int
}

func (c Config) SimConfig() sim.Config {
	return sim.Config{
		Bounds:   c.Bounds,
		GridCols: c.Grid,
		Seed:     c.Seed,
		Throttle: c.Throttle,
	}
}

// Experiment is one configured headless run.
type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Config() Config { return e.cfg }

func (e *Experiment) Setup(metrics []dynamo.Metric, presenters []dynamo.Presenter) error {
	s, err := sim.New(e.cfg.SimConfig())
	if err != nil {
		return err
	}
	for _, m := range metrics {
		s.AddMetric(m)
	}
	for _, p := range presenters {
		s.AddPresenter(p)
	}
	e.simulator = s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, dynamo.ErrNotSetup
	}
	return e.simulator.Run(ctx, e.cfg.Params, e.cfg.Frames, nil)
}

// GetSimulator returns the underlying simulator for adding presenters.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
