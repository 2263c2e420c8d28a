package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidBounds indicates a region with a non-positive width or height.
	ErrInvalidBounds = errors.New("dynamo: invalid region bounds")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidState indicates a particle with NaN or Inf coordinates.
	ErrInvalidState = errors.New("dynamo: invalid particle state (NaN or Inf detected)")

	// ErrEmptyRun indicates a run or series with no samples.
	ErrEmptyRun = errors.New("dynamo: no samples recorded")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownMetric indicates a metric name that is not registered.
	ErrUnknownMetric = errors.New("dynamo: unknown metric")

	// ErrNotSetup indicates an experiment that was run before Setup.
	ErrNotSetup = errors.New("dynamo: experiment not set up")
)

// FrameError wraps an error with frame context.
type FrameError struct {
	Frame   int
	Sample  Sample
	Wrapped error
}

func (e *FrameError) Error() string {
	return e.Wrapped.Error()
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
