package tank

import (
	"image"
	"image/color"

	"github.com/Faultbox/aquarium/internal/render"
	"github.com/Faultbox/aquarium/pkg/math"
)

var black = color.NRGBA{A: 255}

// DrawCreature draws c centred on (x, y) at the given size.
func DrawCreature(list *render.DrawList, c *Creature, x, y, size float32) {
	DrawSprite(list, c.Species, c.Image(), x, y, size, c.Flipped)
}

// DrawSprite draws a species, or img when it is non-nil, centred on (x, y).
// Sprites face left unless flipped. Unknown species fall back to a plain fish.
func DrawSprite(list *render.DrawList, sp Species, img image.Image, x, y, size float32, flipped bool) {
	if size <= 0 {
		return
	}
	if img != nil {
		list.Image(img, x, y, size, flipped, 1)
		return
	}

	f := float32(-1) // facing: -1 left, +1 right
	if flipped {
		f = 1
	}
	r := size / 2

	switch sp {
	case Clownfish:
		drawFish(list, x, y, r, f, color.NRGBA{R: 255, G: 120, B: 30, A: 255})
		for _, off := range [...]float32{0.35, -0.15} {
			list.Ellipse(x+f*off*r, y, r*0.08, r*0.42, white)
		}
	case Puffer:
		body := color.NRGBA{R: 240, G: 205, B: 80, A: 255}
		for i := 0; i < 10; i++ {
			a := float32(i) * math.TwoPi / 10
			d := math.FromAngle(a)
			n := math.FromAngle(a + math.Pi/2)
			tip := math.Vec2{X: x + d.X*r*0.85, Y: y + d.Y*r*0.85}
			baseA := math.Vec2{X: x + d.X*r*0.6 + n.X*r*0.1, Y: y + d.Y*r*0.6 + n.Y*r*0.1}
			baseB := math.Vec2{X: x + d.X*r*0.6 - n.X*r*0.1, Y: y + d.Y*r*0.6 - n.Y*r*0.1}
			list.Triangle(baseA, tip, baseB, render.Mix(body, black, 0.3))
		}
		list.Circle(x, y, r*0.65, body)
		drawEye(list, x+f*r*0.3, y-r*0.15, r*0.14)
	case Squid:
		body := color.NRGBA{R: 235, G: 120, B: 160, A: 255}
		for i := 0; i < 4; i++ {
			dy := (float32(i) - 1.5) * r * 0.14
			list.Ellipse(x+f*r*0.55, y+dy, r*0.35, r*0.05, render.Mix(body, black, 0.15))
		}
		list.Triangle(
			math.Vec2{X: x - f*r*0.9, Y: y},
			math.Vec2{X: x - f*r*0.4, Y: y - r*0.35},
			math.Vec2{X: x - f*r*0.4, Y: y + r*0.35}, body)
		list.Ellipse(x, y, r*0.5, r*0.28, body)
		drawEye(list, x+f*r*0.25, y-r*0.06, r*0.09)
	case Jellyfish:
		body := color.NRGBA{R: 200, G: 150, B: 255, A: 200}
		for i := 0; i < 4; i++ {
			dx := (float32(i) - 1.5) * r * 0.22
			list.Ellipse(x+dx, y+r*0.35, r*0.05, r*0.4, render.Fade(body, 0.7))
		}
		list.Ellipse(x, y-r*0.1, r*0.6, r*0.45, body)
		list.Ellipse(x-r*0.2, y-r*0.3, r*0.15, r*0.08, render.Fade(white, 0.5))
	case Octopus:
		body := color.NRGBA{R: 170, G: 90, B: 200, A: 255}
		for i := 0; i < 4; i++ {
			dx := (float32(i) - 1.5) * r * 0.28
			list.Ellipse(x+dx, y+r*0.45, r*0.1, r*0.35, body)
		}
		list.Circle(x, y-r*0.1, r*0.55, body)
		drawEye(list, x-r*0.2, y-r*0.15, r*0.12)
		drawEye(list, x+r*0.2, y-r*0.15, r*0.12)
	case Turtle:
		shell := color.NRGBA{R: 70, G: 150, B: 80, A: 255}
		skin := color.NRGBA{R: 150, G: 200, B: 120, A: 255}
		list.Ellipse(x+f*r*0.25, y+r*0.35, r*0.22, r*0.1, skin)
		list.Ellipse(x-f*r*0.35, y+r*0.35, r*0.22, r*0.1, skin)
		list.Circle(x+f*r*0.75, y, r*0.2, skin)
		list.Ellipse(x, y, r*0.65, r*0.42, shell)
		list.Ellipse(x, y-r*0.05, r*0.4, r*0.25, render.Mix(shell, white, 0.2))
		drawEye(list, x+f*r*0.82, y-r*0.05, r*0.06)
	case Crab:
		body := color.NRGBA{R: 220, G: 60, B: 50, A: 255}
		for i := 0; i < 3; i++ {
			dx := (float32(i) - 1) * r * 0.3
			list.Ellipse(x+dx, y+r*0.35, r*0.06, r*0.2, body)
		}
		list.Circle(x-r*0.65, y-r*0.3, r*0.2, body)
		list.Circle(x+r*0.65, y-r*0.3, r*0.2, body)
		list.Ellipse(x, y, r*0.55, r*0.35, body)
		drawEye(list, x-r*0.15, y-r*0.3, r*0.09)
		drawEye(list, x+r*0.15, y-r*0.3, r*0.09)
	default:
		drawFish(list, x, y, r, f, color.NRGBA{R: 80, G: 150, B: 230, A: 255})
	}
}

// drawFish draws a tail and oval body with the eye toward the facing side.
func drawFish(list *render.DrawList, x, y, r, f float32, body color.NRGBA) {
	list.Triangle(
		math.Vec2{X: x - f*r*0.55, Y: y},
		math.Vec2{X: x - f*r*0.95, Y: y - r*0.4},
		math.Vec2{X: x - f*r*0.95, Y: y + r*0.4}, render.Mix(body, black, 0.15))
	list.Ellipse(x, y, r*0.7, r*0.45, body)
	drawEye(list, x+f*r*0.38, y-r*0.1, r*0.1)
}

func drawEye(list *render.DrawList, x, y, r float32) {
	list.Circle(x, y, r, white)
	list.Circle(x, y, r*0.55, black)
}
