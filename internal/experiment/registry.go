package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
)

// DefaultStabilityThreshold is the largest per-frame entropy change counted
// as steady.
const DefaultStabilityThreshold = 0.01

// Registry maps metric names to constructors so runs can pick metrics from
// the command line or a config file.
type Registry struct {
	metrics map[string]func() dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() dynamo.Metric),
	}

	r.metrics["mean_entropy"] = func() dynamo.Metric { return metrics.NewMeanEntropy() }
	r.metrics["entropy_range"] = func() dynamo.Metric { return metrics.NewEntropyRange() }
	r.metrics["mean_efficiency"] = func() dynamo.Metric { return metrics.NewMeanEfficiency() }
	r.metrics["final_entropy"] = func() dynamo.Metric { return metrics.NewFinalEntropy() }
	r.metrics["entropy_stability"] = func() dynamo.Metric { return metrics.NewStability(DefaultStabilityThreshold) }

	return r
}

func (r *Registry) Register(name string, fn func() dynamo.Metric) {
	r.metrics[name] = fn
}

func (r *Registry) GetMetric(name string) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownMetric, name)
	}
	return fn(), nil
}

// Metrics builds fresh instances for names, or every registered metric when
// names is empty.
func (r *Registry) Metrics(names []string) ([]dynamo.Metric, error) {
	if len(names) == 0 {
		names = r.ListMetrics()
	}
	out := make([]dynamo.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
