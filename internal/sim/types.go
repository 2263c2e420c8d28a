package sim

import (
	"time"

	"github.com/san-kum/entropylab/internal/analysis"
	"github.com/san-kum/entropylab/internal/dynamo"
)

const DefaultThrottle = 300 * time.Millisecond

type Config struct {
	Bounds   dynamo.Bounds
	GridCols int
	Seed     int64
	Throttle time.Duration
}

func DefaultConfig() Config {
	return Config{
		Bounds:   dynamo.DefaultBounds(),
		GridCols: analysis.DefaultGridCols,
		Seed:     time.Now().UnixNano(),
		Throttle: DefaultThrottle,
	}
}

// State is everything that changes from frame to frame. It is owned by a
// single Simulator and never shared; presenters get Snapshot copies.
type State struct {
	Ensemble  dynamo.Ensemble
	Occupancy []int
	Sample    dynamo.Sample
	Params    dynamo.Params
	Frame     int
	At        time.Time // clock reading of the latest frame

	initialized bool
}

// Clock supplies the wall-clock reading used by the throttle.
type Clock func() time.Time

// ParamSource yields the external inputs for a given frame.
type ParamSource func(frame int) dynamo.Params

func Constant(p dynamo.Params) ParamSource {
	return func(int) dynamo.Params { return p }
}
