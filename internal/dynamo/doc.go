// Package dynamo provides the core types shared by the gas simulation.
//
// The package defines the data model and the collaborator interfaces:
//
//   - [Particle] and [Ensemble]: the simulated gas
//   - [Bounds]: the walled 2D region
//   - [Params]: external per-frame inputs (temperature, noise, particle count)
//   - [Sample]: per-frame (temperature, normalized entropy, count) tuple
//   - [Snapshot]: read-only copy of a frame handed to a [Presenter]
//   - [Metric]: accumulator observing every Sample
//
// # Example
//
//	s, _ := sim.New(sim.DefaultConfig())
//	s.AddPresenter(dynamo.PresenterFunc(func(snap dynamo.Snapshot) {
//		fmt.Printf("T=%.0f S=%.3f\n", snap.Sample.Temperature, snap.Sample.Entropy)
//	}))
//	result, _ := s.Run(ctx, dynamo.Params{Temperature: 300, Noise: 1, Count: 220}, 600, nil)
//
// # Thread Safety
//
// A Simulator and its Ensemble are owned by a single goroutine. Snapshots are
// deep copies and may be read from anywhere.
package dynamo
