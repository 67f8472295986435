package tank

import (
	"image/color"
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/aquarium/internal/render"
	"github.com/Faultbox/aquarium/pkg/math"
)

// Layout of the static scenery, as fractions of the canvas.
const (
	floorTop    = 0.82 // Sand starts here
	lightHeight = 80   // Pixels of surface light
	starCount   = 12
	starSeed    = 7
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	cyan  = color.NRGBA{R: 64, G: 224, B: 240, A: 255}
)

// DrawStars scatters the night-sky stars across the top of the canvas. The
// layout only depends on the canvas size so it stays put between frames.
func DrawStars(list *render.DrawList, w, h float32) {
	rng := rand.New(rand.NewSource(starSeed))
	for i := 0; i < starCount; i++ {
		x := float32(i)*w/starCount + randRange(rng, 0, 30)
		y := randRange(rng, 10, max(h*0.15, 11))
		r := randRange(rng, 1.5, 3.5) / 2
		list.Circle(x, y, r, render.Fade(white, randRange(rng, 0.3, 0.8)))
	}
}

// Render draws the whole tank, back to front, into list.
func (t *Tank) Render(list *render.DrawList) {
	b := t.bounds
	if b.Empty() {
		return
	}
	pal := t.mode.Palette()

	DrawScenery(list, b.W, b.H, pal, t.elapsed)
	if t.mode.ShowStars() {
		DrawStars(list, b.W, b.H)
	}

	for i := range t.creatures {
		c := &t.creatures[i]
		DrawCreature(list, c, c.X, c.Y+t.integ.Wobble(c), c.Size*c.Scale())
	}

	for _, bb := range t.bubbles {
		drawBubble(list, bb)
	}

	list.Text(10, 20, t.mode.String(), render.Fade(white, 0.85))
}

// DrawScenery draws the water gradient, surface light, sand and seaweed.
// elapsed (seconds) animates the seaweed sway.
func DrawScenery(list *render.DrawList, w, h float32, pal Palette, elapsed float32) {
	list.VGradient(0, 0, w, h, pal.Top, pal.Bottom)
	list.VGradient(0, 0, w, lightHeight, render.Fade(white, pal.Light), render.Fade(white, 0))

	floorY := h * floorTop
	list.VGradient(0, floorY, w, h-floorY, render.Fade(pal.Floor, 0.8), pal.Floor)

	// Coral, rock and a second coral along the sand
	coral := color.NRGBA{R: 240, G: 110, B: 110, A: 255}
	drawCoral(list, w*0.12, floorY+6, 14, coral)
	list.Ellipse(w*0.62, floorY+8, 13, 8, color.NRGBA{R: 110, G: 110, B: 120, A: 255})
	drawCoral(list, w*0.86, floorY+5, 12, color.NRGBA{R: 250, G: 150, B: 90, A: 255})

	weed := color.NRGBA{R: 60, G: 160, B: 80, A: 255}
	for i, x := range [...]float32{0.10, 0.45, 0.80} {
		phase := elapsed*2.2 + float32(i)*1.7
		drawSeaweed(list, w*x, floorY+4, 36+float32(i)*4, phase, weed)
	}
}

func drawCoral(list *render.DrawList, x, y, size float32, c color.NRGBA) {
	for _, dx := range [...]float32{-0.5, 0, 0.5} {
		top := math.Vec2{X: x + dx*size, Y: y - size*(1.2-math32.Abs(dx))}
		list.Triangle(math.Vec2{X: x + dx*size - size*0.25, Y: y}, top, math.Vec2{X: x + dx*size + size*0.25, Y: y}, c)
	}
}

// drawSeaweed stacks leaf ellipses that sway more toward the tip.
func drawSeaweed(list *render.DrawList, x, baseY, height, phase float32, c color.NRGBA) {
	const leaves = 6
	sway := math32.Sin(phase) * 0.14 // ±8 degrees
	for i := 0; i < leaves; i++ {
		f := float32(i) / leaves
		y := baseY - f*height
		dx := sway * f * height
		list.Ellipse(x+dx, y, 4-f*1.5, height/leaves*0.7, render.Mix(c, render.Fade(c, 0.8), f))
	}
}

func drawBubble(list *render.DrawList, b Bubble) {
	r := b.Size / 2
	list.Circle(b.X, b.Y, r, render.Fade(cyan, b.Opacity*0.3))
	list.Circle(b.X-r*0.35, b.Y-r*0.35, r*0.35, render.Fade(white, b.Opacity*0.6))
	list.Ring(b.X, b.Y, r, 0.8, render.Fade(white, b.Opacity*0.5))
}
