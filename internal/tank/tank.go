package tank

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/storage"
	"github.com/Faultbox/aquarium/pkg/math"
)

// ErrUnknownCreature is returned for an id that is not in the tank.
var ErrUnknownCreature = errors.New("tank: unknown creature")

// Bounce animation: scale target, spring frequency (0.3 s response) and damping.
const (
	bounceScale   = 1.4
	springFreq    = float64(2 * math.Pi / 0.3)
	springDamping = 0.5
)

// Options configures a Tank.
type Options struct {
	Tank    config.TankConfig
	Bubbles config.BubbleConfig

	Store  storage.Store // Full creature list
	Shared storage.Store // Widget snapshot, may be nil

	Rand *rand.Rand       // Defaults to a time-seeded source
	Now  func() time.Time // Defaults to time.Now
}

// Tank owns the creatures, bubbles and ambient mode of one aquarium. All
// methods must be called from the goroutine that drives Tick.
type Tank struct {
	cfg    config.TankConfig
	bubCfg config.BubbleConfig
	store  storage.Store
	shared storage.Store
	rng    *rand.Rand
	now    func() time.Time
	log    *zap.Logger

	integ  *Integrator
	spring harmonica.Spring
	dt     float32
	step   time.Duration
	acc    time.Duration

	bounds    Bounds
	creatures []Creature
	bubbles   []Bubble

	mode      TimeOfDay
	lastCheck time.Time
	elapsed   float32 // Seconds of simulated time, drives seaweed sway
}

// TapResult says what a tap did.
type TapResult int

const (
	TapNone TapResult = iota
	TapBubbles
	TapBounce
)

// New creates an empty tank. Call Load to populate it.
func New(opts Options) *Tank {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	step := opts.Tank.TickInterval()
	hz := float64(time.Second) / float64(step)

	t := &Tank{
		cfg:    opts.Tank,
		bubCfg: opts.Bubbles,
		store:  opts.Store,
		shared: opts.Shared,
		rng:    rng,
		now:    now,
		log:    logger.Named("tank"),
		integ:  NewIntegrator(opts.Tank, rng),
		spring: harmonica.NewSpring(harmonica.FPS(int(hz+0.5)), springFreq, springDamping),
		dt:     float32(step.Seconds()),
		step:   step,
		bounds: Bounds{Surface: opts.Tank.SurfaceRatio, Floor: opts.Tank.FloorRatio},
	}
	t.mode = TimeOfDayAt(now())
	t.lastCheck = now()
	return t
}

// Load reads the saved creatures. Missing or malformed data is replaced by the
// default set, which is written back immediately. Storage errors are logged,
// never returned.
func (t *Tank) Load() {
	list, err := LoadCreatures(t.store)
	if err == nil {
		err = validateCreatures(list)
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		list = nil
	case err != nil:
		t.log.Warn("saved creatures unreadable, using defaults", zap.Error(err))
		list = nil
	}

	if len(list) == 0 {
		t.creatures = DefaultCreatures(t.rng)
		t.log.Info("seeded default creatures", zap.Int("count", len(t.creatures)))
		t.persist()
		return
	}

	t.creatures = list
	t.log.Info("loaded creatures", zap.Int("count", len(list)))
	t.persistShared()
}

// Resize updates the canvas size. A zero size pauses the simulation.
func (t *Tank) Resize(w, h float32) {
	t.bounds.W, t.bounds.H = w, h
}

// Bounds returns the current canvas bounds.
func (t *Tank) Bounds() Bounds {
	return t.bounds
}

// Step returns the fixed timestep.
func (t *Tank) Step() time.Duration {
	return t.step
}

// Tick advances the simulation by one fixed timestep. It never persists.
func (t *Tank) Tick() {
	if t.bounds.Empty() {
		return
	}
	for i := range t.creatures {
		c := &t.creatures[i]
		t.integ.Step(c, t.bounds, t.dt)
		c.settle(t.step, t.cfg.MinSpeed)

		target := 1.0
		if c.Bouncing {
			target = bounceScale
		}
		c.scale, c.scaleVel = t.spring.Update(c.scale, c.scaleVel, target)
	}
	t.bubbles = UpdateBubbles(t.bubbles, t.bubCfg, t.dt)
	t.elapsed += t.dt

	if now := t.now(); t.cfg.TimeCheck > 0 && now.Sub(t.lastCheck) >= t.cfg.TimeCheck {
		t.lastCheck = now
		t.RefreshTimeOfDay()
	}
}

// maxCatchUp bounds how many ticks one Advance may run after a stall.
const maxCatchUp = 5

// Advance runs as many fixed ticks as fit into the elapsed frame time and
// returns how many ran. Leftover time carries into the next call.
func (t *Tank) Advance(frame time.Duration) int {
	t.acc += frame
	n := 0
	for t.acc >= t.step && n < maxCatchUp {
		t.Tick()
		t.acc -= t.step
		n++
	}
	if n == maxCatchUp {
		t.acc = 0
	}
	return n
}

// RefreshTimeOfDay recomputes the ambient mode from the clock.
func (t *Tank) RefreshTimeOfDay() {
	mode := TimeOfDayAt(t.now())
	if mode != t.mode {
		t.log.Info("time of day changed", zap.Stringer("from", t.mode), zap.Stringer("to", mode))
		t.mode = mode
	}
}

// TimeOfDay returns the current ambient mode.
func (t *Tank) TimeOfDay() TimeOfDay {
	return t.mode
}

// Creatures returns the live creature list. Callers must not modify it.
func (t *Tank) Creatures() []Creature {
	return t.creatures
}

// Bubbles returns the live bubble list. Callers must not modify it.
func (t *Tank) Bubbles() []Bubble {
	return t.bubbles
}

// Tap bounces the creature under p, or spawns bubbles if there is none.
func (t *Tank) Tap(p math.Vec2) TapResult {
	if id, ok := t.HitTest(p); ok {
		if t.Bounce(id) == nil {
			return TapBounce
		}
	}
	if t.SpawnBubbles(p) > 0 {
		return TapBubbles
	}
	return TapNone
}

// SpawnBubbles adds a burst of bubbles scattered around p and returns how
// many were added.
func (t *Tank) SpawnBubbles(p math.Vec2) int {
	lo, hi := t.bubCfg.MinBurst, t.bubCfg.MaxBurst
	if hi < lo {
		hi = lo
	}
	n := lo + t.rng.Intn(hi-lo+1)
	for i := 0; i < n; i++ {
		x := p.X + randRange(t.rng, -20, 20)
		y := p.Y + randRange(t.rng, -10, 10)
		t.bubbles = append(t.bubbles, newBubble(x, y, t.rng))
	}
	return n
}

// Bounce sends a creature off in a random direction with one extra unit of
// speed, taken back after the bounce duration.
func (t *Tank) Bounce(id uuid.UUID) error {
	c := t.find(id)
	if c == nil {
		return fmt.Errorf("bounce %s: %w", id, ErrUnknownCreature)
	}
	c.Angle = t.rng.Float32() * math.TwoPi
	c.boost(t.cfg.BounceDuration, t.cfg.MaxSpeed)
	return nil
}

// HitTest returns the topmost creature whose drawn body contains p.
func (t *Tank) HitTest(p math.Vec2) (uuid.UUID, bool) {
	for i := len(t.creatures) - 1; i >= 0; i-- {
		c := &t.creatures[i]
		centre := math.Vec2{X: c.X, Y: c.Y + t.integ.Wobble(c)}
		r := c.Margin() * max(c.Scale(), 1)
		if centre.Distance(p) <= r {
			return c.ID, true
		}
	}
	return uuid.Nil, false
}

// AddCreature adds a creature of the given species at a random spot and
// saves the tank.
func (t *Tank) AddCreature(sp Species) uuid.UUID {
	c := t.spawn()
	c.Species = sp
	return t.add(c)
}

// AddImageCreature adds a creature drawn from an encoded image (PNG, JPEG or
// BMP). Data that is not a decodable image is rejected.
func (t *Tank) AddImageCreature(data []byte) (uuid.UUID, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return uuid.Nil, fmt.Errorf("decode creature image: %w", err)
	}
	c := t.spawn()
	c.ImageData = append(storage.Blob(nil), data...)
	return t.add(c), nil
}

// RandomSpecies picks a species from the catalog.
func (t *Tank) RandomSpecies() Species {
	return Catalog[t.rng.Intn(len(Catalog))]
}

// Remove deletes a creature and saves the tank.
func (t *Tank) Remove(id uuid.UUID) error {
	for i := range t.creatures {
		if t.creatures[i].ID == id {
			t.creatures = append(t.creatures[:i], t.creatures[i+1:]...)
			t.persist()
			return nil
		}
	}
	return fmt.Errorf("remove %s: %w", id, ErrUnknownCreature)
}

func (t *Tank) spawn() Creature {
	w, h := t.bounds.W, t.bounds.H
	return Creature{
		ID:    uuid.New(),
		X:     randRange(t.rng, 50, max(w-50, 100)),
		Y:     randRange(t.rng, h*0.2, h*0.7),
		Size:  randRange(t.rng, 40, 80),
		Speed: randRange(t.rng, 1, 3.5),
		Angle: t.rng.Float32() * math.TwoPi,
	}
}

func (t *Tank) add(c Creature) uuid.UUID {
	t.creatures = append(t.creatures, c)
	t.persist()
	return c.ID
}

func (t *Tank) find(id uuid.UUID) *Creature {
	for i := range t.creatures {
		if t.creatures[i].ID == id {
			return &t.creatures[i]
		}
	}
	return nil
}

// persist writes both the creature list and the widget snapshot. Failures
// are logged and otherwise ignored.
func (t *Tank) persist() {
	if t.store != nil {
		if err := SaveCreatures(t.store, t.creatures); err != nil {
			t.log.Warn("save creatures failed", zap.Error(err))
		}
	}
	t.persistShared()
}

func (t *Tank) persistShared() {
	if t.shared == nil {
		return
	}
	if err := SaveShared(t.shared, t.creatures); err != nil {
		t.log.Warn("save widget snapshot failed", zap.Error(err))
	}
}
