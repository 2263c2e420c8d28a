package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/experiment"
)

// Objective scores a finished run; lower is better.
type Objective func(result *dynamo.Result) float64

// MetricObjective minimizes a named run metric.
func MetricObjective(name string) Objective {
	return func(r *dynamo.Result) float64 { return r.Metrics[name] }
}

// TargetObjective minimizes the distance of a metric from target, e.g. the
// settings whose mean entropy lands closest to 0.8.
func TargetObjective(name string, target float64) Objective {
	return func(r *dynamo.Result) float64 { return math.Abs(r.Metrics[name] - target) }
}

// GridSearch tries every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs one experiment per combination and returns the best settings
// with their score. Combinations whose experiment fails to build or run are
// skipped; it is an error when none succeed.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	objective Objective,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid search: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, objective, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("grid search: %w", dynamo.ErrEmptyRun)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx)
		if err != nil || len(result.Errors) > 0 {
			return
		}

		val := objective(result)
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, buildExperiment, objective, best, bestParams)
	}
}

// ApplyParams overlays named values onto base. Known names are temperature,
// noise and count.
func ApplyParams(base dynamo.Params, values map[string]float64) (dynamo.Params, error) {
	for name, v := range values {
		switch name {
		case "temperature":
			base.Temperature = v
		case "noise":
			base.Noise = v
		case "count":
			base.Count = int(math.Round(v))
		default:
			return base, fmt.Errorf("%w: unknown parameter %q", dynamo.ErrParameterBounds, name)
		}
	}
	return base, base.Validate()
}

// Builder returns an experiment factory for Search that starts from cfg and
// overrides its params per combination.
func Builder(cfg experiment.Config, metrics func() []dynamo.Metric) func(map[string]float64) (*experiment.Experiment, error) {
	return func(values map[string]float64) (*experiment.Experiment, error) {
		p, err := ApplyParams(cfg.Params, values)
		if err != nil {
			return nil, err
		}
		c := cfg
		c.Params = p
		exp := experiment.New(c)
		if err := exp.Setup(metrics(), nil); err != nil {
			return nil, err
		}
		return exp, nil
	}
}
