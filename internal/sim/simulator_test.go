package sim_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/entropylab/internal/dynamo"
	"github.com/san-kum/entropylab/internal/metrics"
	"github.com/san-kum/entropylab/internal/sim"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) sim.Clock {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func newSim(seed int64) *sim.Simulator {
	cfg := sim.DefaultConfig()
	cfg.Seed = seed
	s, err := sim.New(cfg)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var room = dynamo.Params{Temperature: 300, Noise: 1, Count: 220}

var _ = Describe("Simulator", func() {
	Describe("construction", func() {
		It("rejects degenerate bounds", func() {
			cfg := sim.DefaultConfig()
			cfg.Bounds = dynamo.Bounds{Width: 0, Height: 100}
			_, err := sim.New(cfg)
			Expect(errors.Is(err, dynamo.ErrInvalidBounds)).To(BeTrue())
		})

		It("rejects a non-positive grid", func() {
			cfg := sim.DefaultConfig()
			cfg.GridCols = 0
			_, err := sim.New(cfg)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})
	})

	Describe("Frame", func() {
		var s *sim.Simulator

		BeforeEach(func() {
			s = newSim(1)
		})

		It("spawns the requested ensemble on the first frame", func() {
			sample := s.Frame(room, time.Now())
			Expect(sample.Count).To(Equal(220))
			Expect(s.Particles()).To(Equal(220))
			Expect(sample.Temperature).To(Equal(300.0))
			Expect(sample.Entropy).To(BeNumerically(">", 0))
			Expect(sample.Entropy).To(BeNumerically("<=", 1))
		})

		It("rebuilds the ensemble when the particle count changes", func() {
			s.Frame(room, time.Now())
			Expect(s.Particles()).To(Equal(220))

			p := room
			p.Count = 57
			sample := s.Frame(p, time.Now())
			Expect(sample.Count).To(Equal(57))
			Expect(s.Particles()).To(Equal(57))

			b := s.Config().Bounds
			for _, pt := range s.Ensemble() {
				Expect(pt.X).To(BeNumerically(">=", 10))
				Expect(pt.X).To(BeNumerically("<=", b.Width-10))
				Expect(pt.Y).To(BeNumerically(">=", 10))
				Expect(pt.Y).To(BeNumerically("<=", b.Height-10))
			}
		})

		It("keeps the ensemble when the count is unchanged", func() {
			s.Frame(room, time.Now())
			first := s.Ensemble()
			s.Frame(room, time.Now())
			Expect(&s.Ensemble()[0]).To(BeIdenticalTo(&first[0]))
		})

		It("reports zero entropy for an empty ensemble", func() {
			p := room
			p.Count = 0
			sample := s.Frame(p, time.Now())
			Expect(sample.Count).To(BeZero())
			Expect(sample.Entropy).To(BeZero())
		})

		It("feeds every registered metric", func() {
			mean := metrics.NewMeanEntropy()
			s.AddMetric(mean)
			for i := 0; i < 10; i++ {
				s.Frame(room, time.Now())
			}
			Expect(mean.Value()).To(BeNumerically(">", 0))
		})
	})

	Describe("presentation throttling", func() {
		It("presents at most once per 300ms of wall clock", func() {
			s := newSim(2)
			var frames []int
			s.AddPresenter(dynamo.PresenterFunc(func(snap dynamo.Snapshot) {
				frames = append(frames, snap.Frame)
			}))

			clock := fakeClock(16 * time.Millisecond)
			for i := 0; i < 60; i++ {
				s.Frame(room, clock())
			}

			// 0ms, 304ms, 608ms, 912ms
			Expect(frames).To(Equal([]int{1, 20, 39, 58}))
		})

		It("hands out snapshots that do not alias live state", func() {
			s := newSim(3)
			var snap dynamo.Snapshot
			s.AddPresenter(dynamo.PresenterFunc(func(sn dynamo.Snapshot) { snap = sn }))
			s.Frame(room, time.Now())

			snap.Particles[0].X = -1000
			snap.Occupancy[0] = -1
			Expect(s.Ensemble()[0].X).NotTo(Equal(-1000.0))
			Expect(s.Occupancy()[0]).NotTo(Equal(-1))
			Expect(snap.Cols).To(Equal(20))
			Expect(snap.Rows).To(Equal(12))
		})

		It("derives delta T and efficiency for the snapshot", func() {
			s := newSim(4)
			var snap dynamo.Snapshot
			s.AddPresenter(dynamo.PresenterFunc(func(sn dynamo.Snapshot) { snap = sn }))
			s.Frame(dynamo.Params{Temperature: 580, Noise: 1, Count: 10}, time.Now())

			Expect(snap.DeltaT).To(Equal(280.0))
			Expect(snap.Efficiency).To(BeNumerically("~", 50.0, 1e-9))
		})
	})

	Describe("Run", func() {
		It("records one sample per frame and collects metrics", func() {
			s := newSim(5)
			for _, m := range metrics.Default() {
				s.AddMetric(m)
			}
			result, err := s.Run(context.Background(), room, 120, fakeClock(16*time.Millisecond))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Samples).To(HaveLen(120))
			Expect(result.FramesRun).To(Equal(120))
			Expect(result.Presented).To(Equal(7))
			Expect(result.Metrics).To(HaveKey("mean_entropy"))
			Expect(result.Final.Sample).To(Equal(result.Samples[119]))
			Expect(result.Errors).To(BeEmpty())
		})

		It("stamps the final snapshot with the latest frame time", func() {
			start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			result, err := newSim(5).Run(context.Background(), room, 120, fakeClock(16*time.Millisecond))
			Expect(err).NotTo(HaveOccurred())
			// frame 119 was not presented
			Expect(result.Final.At).To(Equal(start.Add(119 * 16 * time.Millisecond)))
		})

				It("is reproducible for a fixed seed", func() {
			a, err := newSim(9).Run(context.Background(), room, 50, nil)
			Expect(err).NotTo(HaveOccurred())
			b, err := newSim(9).Run(context.Background(), room, 50, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Samples).To(Equal(b.Samples))
		})

		It("rejects invalid inputs", func() {
			s := newSim(6)
			_, err := s.Run(context.Background(), dynamo.Params{Temperature: -3, Count: 5}, 10, nil)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())

			_, err = s.Run(context.Background(), room, 0, nil)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})

		It("stops on cancellation and returns the partial result", func() {
			s := newSim(7)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			result, err := s.Run(ctx, room, 100, nil)
			Expect(err).To(MatchError(context.Canceled))
			Expect(result.FramesRun).To(BeZero())
		})

		It("follows a per-frame parameter source", func() {
			s := newSim(8)
			src := func(frame int) dynamo.Params {
				p := room
				if frame >= 5 {
					p.Count = 40
					p.Temperature = 900
				}
				return p
			}
			result, err := s.Drive(context.Background(), src, 10, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Samples[4].Count).To(Equal(220))
			Expect(result.Samples[5].Count).To(Equal(40))
			Expect(result.Samples[9].Temperature).To(Equal(900.0))
		})
	})

	Describe("Reset", func() {
		It("restarts the frame counter and keeps the size", func() {
			s := newSim(10)
			s.Frame(room, time.Now())
			s.Frame(room, time.Now())
			s.Reset()
			Expect(s.Frames()).To(BeZero())
			Expect(s.Particles()).To(Equal(220))
			Expect(s.Snapshot().At.IsZero()).To(BeTrue())
		})
	})
})

var _ = Describe("Batch", func() {
	It("runs every job and keeps results in order", func() {
		jobs := make([]sim.Job, 0, 4)
		for i, temp := range []float64{100, 300, 600, 1200} {
			cfg := sim.DefaultConfig()
			cfg.Seed = int64(i)
			jobs = append(jobs, sim.Job{Config: cfg, Params: dynamo.Params{Temperature: temp, Noise: 1, Count: 100}, Frames: 30})
		}

		results, err := sim.NewBatch(jobs).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		Expect(results[2].Samples[0].Temperature).To(Equal(600.0))
		Expect(results[3].Metrics).To(HaveKey("mean_efficiency"))
	})

	It("surfaces configuration errors", func() {
		cfg := sim.DefaultConfig()
		cfg.GridCols = -1
		_, err := sim.NewBatch([]sim.Job{{Config: cfg, Params: room, Frames: 5}}).Run(context.Background())
		Expect(err).To(HaveOccurred())
	})
})
