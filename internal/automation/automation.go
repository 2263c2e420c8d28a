package automation

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/experiment"
	"github.com/san-kum/entropylab/internal/metrics"
	"github.com/san-kum/entropylab/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of control settings played on a single
// simulator. A step that changes the particle count respawns the ensemble.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Seed        int64          `yaml:"seed"`
	Grid        int            `yaml:"grid"`
	Bounds      dynamo.Bounds  `yaml:"bounds"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Label       string  `yaml:"label"`
	Temperature float64 `yaml:"temperature"`
	Noise       float64 `yaml:"noise"`
	Particles   int     `yaml:"particles"`
	Frames      int     `yaml:"frames"`
}

func (s ScenarioStep) Params() dynamo.Params {
	return dynamo.Params{Temperature: s.Temperature, Noise: s.Noise, Count: s.Particles}
}

type StepSummary struct {
	Label        string
	Params       dynamo.Params
	Frames       int
	MeanEntropy  float64
	FinalEntropy float64
}

type ScenarioResult struct {
	Result *dynamo.Result
	Steps  []StepSummary
}

// LoadScenario loads a scenario from a YAML file. Missing bounds and grid
// take the defaults.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if scenario.Bounds == (dynamo.Bounds{}) {
		scenario.Bounds = dynamo.DefaultBounds()
	}
	if scenario.Grid == 0 {
		scenario.Grid = sim.DefaultConfig().GridCols
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: scenario has no steps", dynamo.ErrEmptyRun)
	}
	for i, step := range s.Steps {
		if step.Frames <= 0 {
			return fmt.Errorf("step %d: %w: frames %d", i+1, dynamo.ErrParameterBounds, step.Frames)
		}
		if err := step.Params().Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Scenario) TotalFrames() int {
	n := 0
	for _, step := range s.Steps {
		n += step.Frames
	}
	return n
}

// source maps a global frame index onto the step that owns it.
func (s *Scenario) source() sim.ParamSource {
	return func(frame int) dynamo.Params {
		for _, step := range s.Steps {
			if frame < step.Frames {
				return step.Params()
			}
			frame -= step.Frames
		}
		return s.Steps[len(s.Steps)-1].Params()
	}
}

// RunScenario plays every step back to back on one simulator.
func RunScenario(ctx context.Context, scenario *Scenario, presenters ...dynamo.Presenter) (*ScenarioResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	s, err := sim.New(sim.Config{
		Bounds:   scenario.Bounds,
		GridCols: scenario.Grid,
		Seed:     scenario.Seed,
		Throttle: sim.DefaultThrottle,
	})
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	for _, p := range presenters {
		s.AddPresenter(p)
	}

	result, err := s.Drive(ctx, scenario.source(), scenario.TotalFrames(), nil)
	if result == nil {
		return nil, err
	}

	out := &ScenarioResult{Result: result, Steps: make([]StepSummary, 0, len(scenario.Steps))}
	offset := 0
	for i, step := range scenario.Steps {
		end := min(offset+step.Frames, len(result.Samples))
		summary := StepSummary{Label: step.Label, Params: step.Params()}
		if summary.Label == "" {
			summary.Label = fmt.Sprintf("step %d", i+1)
		}
		if end > offset {
			window := result.Samples[offset:end]
			summary.Frames = len(window)
			summary.MeanEntropy = meanEntropy(window)
			summary.FinalEntropy = window[len(window)-1].Entropy
		}
		out.Steps = append(out.Steps, summary)
		log.Printf("scenario %s: %s frames=%d mean S=%.3f", scenario.Name, summary.Label, summary.Frames, summary.MeanEntropy)
		offset += step.Frames
	}

	return out, err
}

func meanEntropy(samples []dynamo.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s.Entropy
	}
	return sum / float64(len(samples))
}

// TemperatureSweep runs one independent simulator per temperature.
type TemperatureSweep struct {
	From, To float64
	Steps    int
	Frames   int
	Noise    float64
	Count    int
	Bounds   dynamo.Bounds
	Grid     int
	Seed     int64
}

type SweepPoint struct {
	Temperature  float64
	MeanEntropy  float64
	FinalEntropy float64
	EntropyRange float64
	Efficiency   float64
}

func (t *TemperatureSweep) Temperatures() []float64 {
	if t.Steps <= 1 {
		return []float64{t.From}
	}
	step := (t.To - t.From) / float64(t.Steps-1)
	temps := make([]float64, t.Steps)
	for i := range temps {
		temps[i] = t.From + float64(i)*step
	}
	return temps
}

func (t *TemperatureSweep) jobs(temps []float64) []sim.Job {
	cfg := jobConfig(t.Bounds, t.Grid, t.Seed)
	jobs := make([]sim.Job, len(temps))
	for i, temp := range temps {
		jobs[i] = sim.Job{
			Config: cfg,
			Params: dynamo.Params{Temperature: temp, Noise: t.Noise, Count: t.Count},
			Frames: t.Frames,
		}
	}
	return jobs
}

// jobConfig fills zero bounds and grid with the defaults.
func jobConfig(b dynamo.Bounds, grid int, seed int64) sim.Config {
	if b == (dynamo.Bounds{}) {
		b = dynamo.DefaultBounds()
	}
	if grid == 0 {
		grid = sim.DefaultConfig().GridCols
	}
	return sim.Config{Bounds: b, GridCols: grid, Seed: seed}
}

// RunSweep executes a temperature sweep. Every point uses the same seed so
// the starting ensembles match and only the temperature differs.
func RunSweep(ctx context.Context, sweep *TemperatureSweep) ([]SweepPoint, error) {
	if sweep.Frames <= 0 {
		return nil, fmt.Errorf("%w: frames %d", dynamo.ErrParameterBounds, sweep.Frames)
	}
	temps := sweep.Temperatures()
	jobs := sweep.jobs(temps)

	results, err := sim.NewBatch(jobs).Run(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(results))
	for i, r := range results {
		points[i] = SweepPoint{
			Temperature:  temps[i],
			MeanEntropy:  r.Metrics["mean_entropy"],
			FinalEntropy: r.Metrics["final_entropy"],
			EntropyRange: r.Metrics["entropy_range"],
			Efficiency:   metrics.Efficiency(temps[i]),
		}
		log.Printf("sweep %d/%d: T=%.1f mean S=%.4f", i+1, len(results), temps[i], points[i].MeanEntropy)
	}

	return points, nil
}

// MonteCarloConfig repeats one setting with different seeds to show the
// spread of entropy that comes from the random spawn and kicks alone.
type MonteCarloConfig struct {
	Params    dynamo.Params
	Frames    int
	NumTrials int
	Seed      int64
	Bounds    dynamo.Bounds
	Grid      int
}

type MonteCarloResult struct {
	TrialID      int
	Seed         int64
	MeanEntropy  float64
	FinalEntropy float64
	Stable       bool // no invalid particle state during the run
}

func (c *MonteCarloConfig) jobs(base int64) []sim.Job {
	jobs := make([]sim.Job, c.NumTrials)
	for i := range jobs {
		jobs[i] = sim.Job{Config: jobConfig(c.Bounds, c.Grid, base+int64(i)), Params: c.Params, Frames: c.Frames}
	}
	return jobs
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("%w: trials %d", dynamo.ErrParameterBounds, cfg.NumTrials)
	}
	base := cfg.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	jobs := cfg.jobs(base)

	reg := experiment.NewRegistry()
	results, err := sim.NewBatch(jobs).WithMetrics(func() []dynamo.Metric {
		ms, _ := reg.Metrics([]string{"mean_entropy", "final_entropy"})
		return ms
	}).Run(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MonteCarloResult, len(results))
	for i, r := range results {
		out[i] = MonteCarloResult{
			TrialID:      i,
			Seed:         jobs[i].Config.Seed,
			MeanEntropy:  r.Metrics["mean_entropy"],
			FinalEntropy: r.Metrics["final_entropy"],
			Stable:       len(r.Errors) == 0,
		}
		if (i+1)%10 == 0 {
			log.Printf("monte carlo: %d/%d trials complete", i+1, len(results))
		}
	}

	return out, nil
}

// MonteCarloStats returns the stable/unstable split and the mean and standard
// deviation of the final entropy.
func MonteCarloStats(results []MonteCarloResult) (stableCount, unstableCount int, mean, std float64) {
	if len(results) == 0 {
		return 0, 0, 0, 0
	}
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
		mean += r.FinalEntropy
	}
	mean /= float64(len(results))
	for _, r := range results {
		d := r.FinalEntropy - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(len(results)))
	return
}
