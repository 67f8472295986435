package effects

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/storage"
	"github.com/Faultbox/aquarium/pkg/math"
)

// Options configures a Cursor.
type Options struct {
	Cursor config.CursorConfig
	TickHz int
	Store  storage.Store // Theme preference, may be nil

	Rand *rand.Rand
	Now  func() time.Time
}

// Cursor owns the pointer effects for one canvas: the follower chain, its
// trail, the particles and the chasing cat. It is driven by input events and
// a fixed-rate Tick, all on one goroutine.
type Cursor struct {
	cfg   config.CursorConfig
	store storage.Store
	now   func() time.Time
	log   *zap.Logger
	dt    float32

	chain     *Chain
	trail     *Trail
	particles *Particles
	cat       *Chaser
	theme     Theme

	pointer  math.Vec2
	inside   bool
	w, h     float32
	toySwing float32
}

// NewCursor creates the effects with the pointer in the middle of a w×h
// canvas and loads the saved theme.
func NewCursor(opts Options, w, h float32) *Cursor {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	hz := opts.TickHz
	if hz <= 0 {
		hz = 60
	}

	mid := math.Vec2{X: w / 2, Y: h / 2}
	c := &Cursor{
		cfg:       opts.Cursor,
		store:     opts.Store,
		now:       now,
		log:       logger.Named("cursor"),
		dt:        1 / float32(hz),
		chain:     NewChain(opts.Cursor.ChainLength, opts.Cursor.Easing, mid),
		trail:     NewTrail(opts.Cursor.TrailLength),
		particles: NewParticles(opts.Cursor.ParticleThrottle, rng),
		cat:       NewChaser(mid),
		pointer:   mid,
		inside:    true,
		w:         w,
		h:         h,
	}

	theme, err := LoadTheme(opts.Store)
	if err != nil {
		c.log.Warn("theme unreadable, using light", zap.Error(err))
	}
	c.theme = theme
	return c
}

// Resize updates the canvas size used to cull particles.
func (c *Cursor) Resize(w, h float32) {
	c.w, c.h = w, h
}

// Move records a new pointer position and lets the cat emit a note.
func (c *Cursor) Move(p math.Vec2) {
	c.pointer = p
	if c.inside {
		c.particles.SpawnNote(c.cat.Pos, c.now())
	}
}

// Enter shows the effects again with the pointer at p.
func (c *Cursor) Enter(p math.Vec2) {
	c.inside = true
	c.pointer = p
}

// Leave hides the effects until the pointer comes back.
func (c *Cursor) Leave() {
	c.inside = false
	c.trail.Clear()
}

// Click makes the cat meow and pop a heart.
func (c *Cursor) Click() {
	c.cat.Meow()
	c.particles.SpawnHeart(c.cat.Pos)
}

// ToggleTheme flips and saves the theme.
func (c *Cursor) ToggleTheme() Theme {
	c.theme = c.theme.Toggle()
	if err := SaveTheme(c.store, c.theme); err != nil {
		c.log.Warn("save theme failed", zap.Error(err))
	}
	return c.theme
}

// Theme returns the active theme.
func (c *Cursor) Theme() Theme {
	return c.theme
}

// Tick advances every effect by one frame.
func (c *Cursor) Tick() {
	now := c.now()

	c.chain.Update(c.pointer)
	if c.inside {
		c.trail.Push(c.pointer, now)
	}
	c.trail.Expire(now, c.cfg.TrailTTL)

	c.cat.Update(c.pointer)
	if c.inside && c.cat.Moving {
		c.particles.SpawnGrass(c.pointer, now)
	}
	c.particles.Update(c.dt, c.w, c.h)
	c.toySwing += 0.05
}

// Chain returns the follower chain.
func (c *Cursor) Chain() *Chain { return c.chain }

// Trail returns the pointer trail.
func (c *Cursor) Trail() *Trail { return c.trail }

// Particles returns the particle set.
func (c *Cursor) Particles() *Particles { return c.particles }

// Cat returns the chasing cat.
func (c *Cursor) Cat() *Chaser { return c.cat }

// Inside reports whether the pointer is over the canvas.
func (c *Cursor) Inside() bool { return c.inside }
