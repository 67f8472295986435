// Package tank simulates the aquarium: creatures swimming inside a bounded
// band of the canvas, bubbles rising from taps and a background that follows
// the time of day.
package tank

import (
	"bytes"
	"image"
	_ "image/jpeg" // user-picked photos
	_ "image/png"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"

	"github.com/Faultbox/aquarium/internal/storage"
	"github.com/Faultbox/aquarium/pkg/math"
)

// Species names a built-in procedurally drawn creature.
type Species string

const (
	Clownfish Species = "clownfish"
	Fish      Species = "fish"
	Squid     Species = "squid"
	Puffer    Species = "puffer"
	Jellyfish Species = "jellyfish"
	Octopus   Species = "octopus"
	Turtle    Species = "turtle"
	Crab      Species = "crab"
)

// Catalog lists every species the add action picks from.
var Catalog = []Species{Clownfish, Fish, Squid, Puffer, Jellyfish, Octopus, Turtle, Crab}

// DefaultSpecies is the starter set seeded into an empty tank.
var DefaultSpecies = []Species{Clownfish, Fish, Squid, Puffer, Jellyfish}

// Creature is one animated tank inhabitant. Only the exported, tagged fields
// are persisted; wobble and bounce state restart on every launch.
type Creature struct {
	ID        uuid.UUID    `yaml:"id"`
	Species   Species      `yaml:"species,omitempty"`
	ImageData storage.Blob `yaml:"image_data,omitempty"`

	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	Size    float32 `yaml:"size"`
	Speed   float32 `yaml:"speed"`
	Angle   float32 `yaml:"angle"` // Heading in radians
	Flipped bool    `yaml:"flipped"`

	WobblePhase float32 `yaml:"-"`
	Bouncing    bool    `yaml:"-"`

	boosts   []time.Duration // Pending speed boosts, time left on each
	scale    float64         // Spring-driven draw scale, grows in from 0
	scaleVel float64

	img      image.Image
	imgTried bool
}

// Pos returns the creature centre without wobble.
func (c *Creature) Pos() math.Vec2 {
	return math.Vec2{X: c.X, Y: c.Y}
}

// Margin is the distance the centre keeps from any wall.
func (c *Creature) Margin() float32 {
	return c.Size / 2
}

// Scale returns the current draw scale (1 at rest, up to ~1.4 while bouncing).
func (c *Creature) Scale() float32 {
	return float32(c.scale)
}

// Image decodes ImageData on first use. Returns nil for built-in species or
// when the data cannot be decoded, in which case the creature is drawn as a
// plain fish.
func (c *Creature) Image() image.Image {
	if len(c.ImageData) == 0 {
		return nil
	}
	if !c.imgTried {
		c.imgTried = true
		img, _, err := image.Decode(bytes.NewReader(c.ImageData))
		if err == nil {
			c.img = img
		}
	}
	return c.img
}

func (c *Creature) boost(d time.Duration, maxSpeed float32) {
	c.Bouncing = true
	c.Speed = min(c.Speed+1, maxSpeed)
	c.boosts = append(c.boosts, d)
}

// settle counts down pending boosts and gives back one unit of speed for
// each that expires.
func (c *Creature) settle(dt time.Duration, minSpeed float32) {
	if len(c.boosts) == 0 {
		return
	}
	kept := c.boosts[:0]
	for _, left := range c.boosts {
		left -= dt
		if left <= 0 {
			c.Speed = max(c.Speed-1, minSpeed)
			continue
		}
		kept = append(kept, left)
	}
	c.boosts = kept
	c.Bouncing = len(c.boosts) > 0
}
