package tank

import "github.com/Faultbox/aquarium/pkg/math"

// Bounds is the canvas a tank is drawn into. Creatures swim horizontally
// across the full width but vertically only inside the water band between
// Surface and Floor (fractions of the height).
type Bounds struct {
	W, H    float32
	Surface float32
	Floor   float32
}

// Empty reports whether the canvas size is still unknown.
func (b Bounds) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Band returns the allowed centre range on Y for a creature with the given margin.
func (b Bounds) Band(margin float32) (minY, maxY float32) {
	return b.H*b.Surface + margin, b.H*b.Floor - margin
}

// Reflect keeps c inside the tank. A horizontal overflow mirrors the heading
// (π − angle), clamps X and flips the sprite. A vertical overflow of either
// the body or its wobbled draw position negates the heading and clamps Y into
// the band. A canvas narrower than the creature holds it centred on X
// without flipping. Reports which axes were hit.
func (b Bounds) Reflect(c *Creature, wobble float32) (hitX, hitY bool) {
	margin := c.Margin()

	if b.W-margin < margin {
		// Too narrow to swim: hold the creature in the middle.
		c.X = b.W / 2
	} else if c.X < margin || c.X > b.W-margin {
		c.Angle = math.WrapAngle(math.Pi - c.Angle)
		c.X = math.Clamp(c.X, margin, b.W-margin)
		c.Flipped = !c.Flipped
		hitX = true
	}

	minY, maxY := b.Band(margin)
	y := c.Y + wobble
	if y < minY || y > maxY || c.Y < minY || c.Y > maxY {
		c.Angle = math.WrapAngle(-c.Angle)
		c.Y = math.Clamp(c.Y, minY, maxY)
		hitY = true
	}
	return hitX, hitY
}
