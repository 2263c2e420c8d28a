package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/entropylab/internal/dynamo"
)

const (
	DefaultMargin         = 10.0
	DefaultSpawnMargin    = 40.0
	DefaultRestitution    = 0.7
	DefaultKick           = 0.12
	DefaultRefTemperature = 300.0
	spawnSpeed            = 0.5
)

var _ dynamo.Configurable = (*Gas)(nil)

// Gas is a 2D ideal-ish gas in a walled box. Temperature only rescales the
// random kicks and the advection speed; particles never interact.
type Gas struct {
	Bounds         dynamo.Bounds
	Margin         float64
	SpawnMargin    float64
	Restitution    float64
	Kick           float64
	RefTemperature float64
}

func NewGas(b dynamo.Bounds) *Gas {
	return &Gas{
		Bounds:         b,
		Margin:         DefaultMargin,
		SpawnMargin:    DefaultSpawnMargin,
		Restitution:    DefaultRestitution,
		Kick:           DefaultKick,
		RefTemperature: DefaultRefTemperature,
	}
}

// SpeedScale returns sqrt(T/Tref); non-positive temperatures freeze the gas.
func (g *Gas) SpeedScale(temperature float64) float64 {
	if temperature <= 0 || g.RefTemperature <= 0 {
		return 0
	}
	return math.Sqrt(temperature / g.RefTemperature)
}

// Spawn builds a fresh ensemble of n particles placed uniformly inside the
// spawn margin with velocities uniform in [-0.5, 0.5] per axis.
func (g *Gas) Spawn(n int, rng *rand.Rand) dynamo.Ensemble {
	if n <= 0 {
		return dynamo.Ensemble{}
	}
	ens := make(dynamo.Ensemble, n)
	for i := range ens {
		ens[i] = dynamo.Particle{
			X:    uniform(rng, g.SpawnMargin, g.Bounds.Width-g.SpawnMargin),
			Y:    uniform(rng, g.SpawnMargin, g.Bounds.Height-g.SpawnMargin),
			VX:   uniform(rng, -spawnSpeed, spawnSpeed),
			VY:   uniform(rng, -spawnSpeed, spawnSpeed),
			Mass: 1,
		}
	}
	return ens
}

// Step advances every particle by one explicit Euler step with Gaussian
// velocity kicks, then reflects off the walls with damping.
func (g *Gas) Step(ens dynamo.Ensemble, p dynamo.Params, rng *rand.Rand) {
	s := g.SpeedScale(p.Temperature)
	kick := g.Kick * p.Noise * s

	for i := range ens {
		pt := &ens[i]
		pt.VX += rng.NormFloat64() * kick
		pt.VY += rng.NormFloat64() * kick
		pt.X += pt.VX * s
		pt.Y += pt.VY * s
		pt.X, pt.VX = g.reflect(pt.X, pt.VX, g.Bounds.Width)
		pt.Y, pt.VY = g.reflect(pt.Y, pt.VY, g.Bounds.Height)
	}
}

func (g *Gas) reflect(pos, vel, extent float64) (float64, float64) {
	lo, hi := g.Margin, extent-g.Margin
	if pos < lo {
		return lo, vel * -g.Restitution
	}
	if pos > hi {
		return hi, vel * -g.Restitution
	}
	return pos, vel
}

// KineticEnergy is sum of m|v|^2/2 over the ensemble.
func (g *Gas) KineticEnergy(ens dynamo.Ensemble) float64 {
	e := 0.0
	for _, p := range ens {
		e += 0.5 * p.Mass * (p.VX*p.VX + p.VY*p.VY)
	}
	return e
}

func (g *Gas) GetParams() map[string]float64 {
	return map[string]float64{
		"margin":      g.Margin,
		"restitution": g.Restitution,
		"kick":        g.Kick,
		"t_ref":       g.RefTemperature,
	}
}

func (g *Gas) SetParam(name string, value float64) error {
	switch name {
	case "margin":
		g.Margin = value
	case "restitution":
		g.Restitution = value
	case "kick":
		g.Kick = value
	case "t_ref":
		g.RefTemperature = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + rng.Float64()*(hi-lo)
}
