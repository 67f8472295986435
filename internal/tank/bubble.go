package tank

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/aquarium/internal/config"
)

// Bubble is a transient particle spawned by a tap. Never persisted.
type Bubble struct {
	X, Y    float32
	Size    float32
	Opacity float32
	Speed   float32
}

// offscreenY is how far above the canvas a bubble may drift before it is dropped.
const offscreenY = -20

func newBubble(x, y float32, rng *rand.Rand) Bubble {
	return Bubble{
		X:       x,
		Y:       y,
		Size:    randRange(rng, 8, 24),
		Opacity: randRange(rng, 0.4, 0.8),
		Speed:   randRange(rng, 1.5, 4),
	}
}

// UpdateBubbles rises every bubble, sways it sideways, fades it, and drops
// those that left the top of the screen or became fully transparent. The
// slice is filtered in place.
func UpdateBubbles(bubbles []Bubble, cfg config.BubbleConfig, dt float32) []Bubble {
	kept := bubbles[:0]
	for _, b := range bubbles {
		b.Y -= b.Speed * cfg.RiseScale * dt
		b.X += math32.Sin(b.Y*0.05) * 0.3
		b.Opacity -= cfg.Decay
		if b.Y < offscreenY || b.Opacity <= 0 {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

func randRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
