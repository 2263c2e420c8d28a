package sim

import (
	"context"
	"sync"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
)

type Job struct {
	Config Config
	Params dynamo.Params
	Frames int
}

// Batch runs independent simulators concurrently, one goroutine per job.
// Each simulator keeps its own state and random source.
type Batch struct {
	jobs    []Job
	metrics func() []dynamo.Metric
}

func NewBatch(jobs []Job) *Batch {
	return &Batch{jobs: jobs, metrics: metrics.Default}
}

// WithMetrics overrides the per-job metric set factory.
func (b *Batch) WithMetrics(fn func() []dynamo.Metric) *Batch {
	b.metrics = fn
	return b
}

func (b *Batch) Run(ctx context.Context) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(b.jobs))
	errs := make([]error, len(b.jobs))

	var wg sync.WaitGroup
	for i, job := range b.jobs {
		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()

			s, err := New(job.Config)
			if err != nil {
				errs[idx] = err
				return
			}
			for _, m := range b.metrics() {
				s.AddMetric(m)
			}

			results[idx], errs[idx] = s.Run(ctx, job.Params, job.Frames, nil)
		}(i, job)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
