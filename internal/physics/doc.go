// Package physics moves the gas.
//
// [Gas] owns the kinetic rules for a walled region: spawning particles with
// random velocities, advancing positions scaled by sqrt(T/300), bouncing off
// the walls with restitution, and adding random kicks proportional to noise.
// Its constants can be tuned at runtime through [dynamo.Configurable]:
//
//	g := physics.NewGas(dynamo.DefaultBounds())
//	g.SetParam("restitution", 0.9)
//	ens := g.Spawn(220, rng)
//	g.Step(ens, dynamo.Params{Temperature: 450, Noise: 1, Count: 220}, rng)
package physics
