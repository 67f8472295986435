package tank

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/pkg/math"
)

// Integrator advances creatures by one fixed timestep.
type Integrator struct {
	cfg config.TankConfig
	rng *rand.Rand
}

// NewIntegrator creates an integrator using the tank motion constants.
func NewIntegrator(cfg config.TankConfig, rng *rand.Rand) *Integrator {
	return &Integrator{cfg: cfg, rng: rng}
}

// Step moves c along its heading, advances the wobble phase, reflects off the
// tank walls and occasionally nudges the heading. Horizontal and vertical
// speed are scaled separately so paths trace a flattened ellipse. Does
// nothing while the bounds are unknown.
func (in *Integrator) Step(c *Creature, b Bounds, dt float32) {
	if b.Empty() {
		return
	}

	dir := math.FromAngle(c.Angle)
	c.X += dir.X * c.Speed * in.cfg.SpeedScaleX * dt
	c.Y += dir.Y * c.Speed * in.cfg.SpeedScaleY * dt

	c.WobblePhase += dt * in.cfg.WobbleRate
	b.Reflect(c, in.Wobble(c))

	if in.cfg.TurnChance > 0 && in.rng.Intn(in.cfg.TurnChance) == 0 {
		c.Angle = math.WrapAngle(c.Angle + (in.rng.Float32()*2-1)*in.cfg.TurnJitter)
	}
}

// Wobble returns the cosmetic vertical offset for c's current phase.
func (in *Integrator) Wobble(c *Creature) float32 {
	return math32.Sin(c.WobblePhase) * in.cfg.WobbleAmplitude
}
