package effects

import "github.com/Faultbox/aquarium/pkg/math"

// Chaser tuning, in frames and pixels.
const (
	chaseOffset   = 25  // The cat aims up and left of the pointer
	moveThreshold = 8   // Closer than this counts as standing still
	turnThreshold = 2   // Horizontal delta needed to change facing
	sleepAfter    = 180 // Idle frames before the cat falls asleep
	meowFrames    = 30
	farDistance   = 100
	nearDistance  = 30
	farEasing     = 0.08
	midEasing     = 0.05
	nearEasing    = 0.03
	pawPhasePerPx = 0.15
)

// Chaser is a cat that trots after the pointer, eases in harder the farther
// it is, and dozes off when left alone.
type Chaser struct {
	Pos        math.Vec2
	FacingLeft bool
	Moving     bool
	PawPhase   float32

	idle int
	meow int
}

// NewChaser places the cat at start.
func NewChaser(start math.Vec2) *Chaser {
	return &Chaser{Pos: start}
}

// Easing returns the follow factor for a given distance to the target.
func Easing(dist float32) float32 {
	switch {
	case dist > farDistance:
		return farEasing
	case dist > nearDistance:
		return midEasing
	default:
		return nearEasing
	}
}

// Update advances one frame toward pointer.
func (c *Chaser) Update(pointer math.Vec2) {
	if c.meow > 0 {
		c.meow--
	}

	target := pointer.Sub(math.Vec2{X: chaseOffset, Y: chaseOffset})
	d := target.Sub(c.Pos)
	dist := d.Length()
	c.Pos = c.Pos.Add(d.Scale(Easing(dist)))

	c.Moving = dist > moveThreshold
	if !c.Moving {
		c.idle++
		return
	}
	c.idle = 0
	c.PawPhase += dist * pawPhasePerPx
	if d.X > turnThreshold || d.X < -turnThreshold {
		c.FacingLeft = d.X < 0
	}
}

// Meow opens the cat's mouth for a short while.
func (c *Chaser) Meow() {
	c.meow = meowFrames
}

// Meowing reports whether the mouth is open.
func (c *Chaser) Meowing() bool {
	return c.meow > 0
}

// Sleeping reports whether the cat has been idle long enough to doze.
func (c *Chaser) Sleeping() bool {
	return c.idle > sleepAfter
}
