package effects

import (
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/aquarium/pkg/math"
)

// ParticleKind selects how a particle looks and how long it lives.
type ParticleKind int

const (
	Grass ParticleKind = iota // Kicked up under the pointer while the cat runs
	Note                      // Floats off the cat as it moves
	Heart                     // Pops out on click
)

// lifetimes in seconds, per kind
var lifetimes = [...]float32{Grass: 1.2, Note: 1.0, Heart: 0.8}

// Particle is a short-lived decorative sprite.
type Particle struct {
	Kind    ParticleKind
	Pos     math.Vec2
	Vel     math.Vec2 // Pixels per second
	Size    float32
	Alpha   float32
	Variant int     // Note glyph index
	seed    float64 // Noise row, so particles drift independently
}

// Spawn rules for the throttled kinds.
const (
	noteThrottle  = 400 * time.Millisecond
	noteMinTravel = 30
	driftScale    = 40 // Pixels per second of noise-driven sideways drift
	offscreen     = 40
)

// Particles owns every live particle and the spawn throttles.
type Particles struct {
	list  []Particle
	rng   *rand.Rand
	noise *perlin.Perlin
	clock float64

	throttle  time.Duration
	lastGrass time.Time
	lastNote  time.Time
	notePos   math.Vec2
	noteIndex int
}

// NewParticles creates an empty set. throttle limits how often grass spawns.
func NewParticles(throttle time.Duration, rng *rand.Rand) *Particles {
	return &Particles{
		rng:      rng,
		noise:    perlin.NewPerlin(2, 2, 3, rng.Int63()),
		throttle: throttle,
	}
}

// List returns the live particles. Callers must not modify it.
func (p *Particles) List() []Particle {
	return p.list
}

// Len returns the number of live particles.
func (p *Particles) Len() int {
	return len(p.list)
}

// SpawnGrass drops a grass speck just below at, at most once per throttle
// interval. Reports whether one was added.
func (p *Particles) SpawnGrass(at math.Vec2, now time.Time) bool {
	if now.Sub(p.lastGrass) < p.throttle {
		return false
	}
	p.lastGrass = now
	p.add(Particle{
		Kind: Grass,
		Pos:  math.Vec2{X: at.X + p.jitter(12), Y: at.Y + 10 + p.rng.Float32()*10},
		Vel:  math.Vec2{X: p.jitter(30), Y: -(20 + p.rng.Float32()*25)},
		Size: 3 + p.rng.Float32()*3,
	})
	return true
}

// SpawnNote emits a music note at the cat, throttled by time and by the
// distance travelled since the previous note.
func (p *Particles) SpawnNote(at math.Vec2, now time.Time) bool {
	if now.Sub(p.lastNote) < noteThrottle {
		return false
	}
	if at.Distance(p.notePos) < noteMinTravel {
		return false
	}
	p.lastNote = now
	p.notePos = at
	p.add(Particle{
		Kind:    Note,
		Pos:     math.Vec2{X: at.X + p.jitter(20), Y: at.Y - 10},
		Vel:     math.Vec2{X: p.jitter(30), Y: -(40 + p.rng.Float32()*20)},
		Size:    9,
		Variant: p.noteIndex % 2,
	})
	p.noteIndex++
	return true
}

// SpawnHeart pops a heart above at.
func (p *Particles) SpawnHeart(at math.Vec2) {
	p.add(Particle{
		Kind: Heart,
		Pos:  math.Vec2{X: at.X, Y: at.Y - 20},
		Vel:  math.Vec2{Y: -37.5},
		Size: 8,
	})
}

func (p *Particles) add(pt Particle) {
	pt.Alpha = 1
	pt.seed = p.rng.Float64() * 100
	p.list = append(p.list, pt)
}

func (p *Particles) jitter(span float32) float32 {
	return (p.rng.Float32() - 0.5) * span
}

// Update moves every particle by its velocity plus noise drift, fades it by
// a fixed step per tick, and drops particles that are fully faded or have
// left the canvas (any side, with a small margin).
func (p *Particles) Update(dt float32, w, h float32) {
	p.clock += float64(dt)
	kept := p.list[:0]
	for _, pt := range p.list {
		drift := float32(p.noise.Noise2D(pt.seed, p.clock*1.5)) * driftScale
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(dt)).Add(math.Vec2{X: drift * dt})
		pt.Alpha -= dt / lifetimes[pt.Kind]
		if pt.Alpha <= 0 {
			continue
		}
		if w > 0 && h > 0 && (pt.Pos.X < -offscreen || pt.Pos.X > w+offscreen || pt.Pos.Y < -offscreen || pt.Pos.Y > h+offscreen) {
			continue
		}
		kept = append(kept, pt)
	}
	p.list = kept
}

// Clear drops every particle.
func (p *Particles) Clear() {
	p.list = p.list[:0]
}
