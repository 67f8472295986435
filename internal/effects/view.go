package effects

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/Faultbox/aquarium/internal/render"
	"github.com/Faultbox/aquarium/pkg/math"
)

type palette struct {
	ink, trail, cat, grass, note, stalk, fluff color.NRGBA
}

var (
	lightPalette = palette{
		ink:   color.NRGBA{R: 40, G: 40, B: 40, A: 255},
		trail: color.NRGBA{R: 90, G: 126, B: 58, A: 255},
		cat:   color.NRGBA{R: 51, G: 51, B: 51, A: 255},
		grass: color.NRGBA{R: 100, G: 170, B: 60, A: 255},
		note:  color.NRGBA{A: 64},
		stalk: color.NRGBA{R: 90, G: 126, B: 58, A: 255},
		fluff: color.NRGBA{R: 122, G: 170, B: 80, A: 255},
	}
	darkPalette = palette{
		ink:   color.NRGBA{R: 220, G: 220, B: 220, A: 255},
		trail: color.NRGBA{R: 160, G: 200, B: 120, A: 255},
		cat:   color.NRGBA{R: 136, G: 136, B: 136, A: 255},
		grass: color.NRGBA{R: 160, G: 200, B: 120, A: 255},
		note:  color.NRGBA{R: 255, G: 255, B: 255, A: 90},
		stalk: color.NRGBA{R: 122, G: 158, B: 90, A: 255},
		fluff: color.NRGBA{R: 160, G: 200, B: 120, A: 255},
	}

	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	pupil = color.NRGBA{R: 34, G: 34, B: 34, A: 255}
	nose  = color.NRGBA{R: 255, G: 136, B: 136, A: 255}
	heart = color.NRGBA{R: 231, G: 76, B: 60, A: 255}
)

func (t Theme) palette() palette {
	if t == Dark {
		return darkPalette
	}
	return lightPalette
}

// Render draws the page background, trail, chain, particles, cat and toy.
// Pointer-bound effects are skipped while the pointer is outside.
func (c *Cursor) Render(list *render.DrawList) {
	pal := c.theme.palette()
	list.Rect(0, 0, c.w, c.h, c.theme.Background())

	now := c.now()
	for i := 0; i < c.trail.Len(); i++ {
		p := c.trail.At(i)
		age := float32(now.Sub(p.Born)) / float32(c.cfg.TrailTTL)
		a := math.Clamp(1-age, 0, 1) * 0.5
		list.Circle(p.Pos.X, p.Pos.Y, 2+3*a, render.Fade(pal.trail, a))
	}

	links := c.chain.Links()
	for i := len(links) - 1; i >= 1; i-- {
		f := 1 - float32(i)/float32(len(links))
		list.Circle(links[i].X, links[i].Y, 1.5+4*f, render.Fade(pal.trail, 0.15+0.6*f))
	}

	for _, p := range c.particles.List() {
		drawParticle(list, p, pal)
	}

	if !c.inside {
		return
	}
	drawCat(list, c.cat, pal)
	drawToy(list, c.pointer, math32.Sin(c.toySwing)*8, pal)
}

func drawParticle(list *render.DrawList, p Particle, pal palette) {
	switch p.Kind {
	case Grass:
		list.Circle(p.Pos.X, p.Pos.Y, p.Size/2*(0.3+0.7*p.Alpha), render.Fade(pal.grass, p.Alpha*0.6))
	case Note:
		col := render.Fade(pal.note, p.Alpha)
		list.Ellipse(p.Pos.X, p.Pos.Y, 3, 2, col)
		list.Rect(p.Pos.X+2, p.Pos.Y-p.Size, 1.5, p.Size, col)
		if p.Variant == 1 {
			list.Ellipse(p.Pos.X+10, p.Pos.Y-2, 3, 2, col)
			list.Rect(p.Pos.X+12, p.Pos.Y-p.Size-2, 1.5, p.Size, col)
			list.Rect(p.Pos.X+2, p.Pos.Y-p.Size-2, 11.5, 2, col)
		}
	case Heart:
		s := p.Size * (1.3 - 0.3*p.Alpha)
		col := render.Fade(heart, p.Alpha)
		list.Circle(p.Pos.X-s*0.3, p.Pos.Y-s*0.15, s*0.35, col)
		list.Circle(p.Pos.X+s*0.3, p.Pos.Y-s*0.15, s*0.35, col)
		list.Triangle(
			math.Vec2{X: p.Pos.X - s*0.62, Y: p.Pos.Y},
			math.Vec2{X: p.Pos.X + s*0.62, Y: p.Pos.Y},
			math.Vec2{X: p.Pos.X, Y: p.Pos.Y + s*0.6}, col)
	}
}

// drawCat draws the cat centred on its position, facing right unless
// FacingLeft. A sleeping cat curls up with closed eyes.
func drawCat(list *render.DrawList, c *Chaser, pal palette) {
	x, y := c.Pos.X, c.Pos.Y
	f := float32(1)
	if c.FacingLeft {
		f = -1
	}

	if c.Sleeping() {
		list.Ellipse(x, y+4, 13, 7, pal.cat)
		list.Circle(x+f*9, y, 6, pal.cat)
		list.Rect(x+f*9-3, y, 2, 1, pupil)
		list.Rect(x+f*9+1, y, 2, 1, pupil)
		list.Text(x+f*10, y-10, "z", pal.ink)
		return
	}

	var bob, paw, tail float32
	if c.Moving {
		bob = math32.Sin(c.PawPhase*0.6) * 2
		paw = math32.Sin(c.PawPhase*0.6) * 3
		tail = math32.Sin(c.PawPhase*0.3) * 0.45
	}
	y += bob

	// Tail, legs, body, head, ears
	tailBase := math.Vec2{X: x - f*10, Y: y - 2}
	tip := tailBase.Add(math.FromAngle(-math.Pi/2 - f*(0.6+tail)).Scale(12))
	list.Triangle(tailBase, tip, tailBase.Add(math.Vec2{X: -f * 3, Y: 3}), pal.cat)
	list.Rect(x-8+paw*0.5, y+5, 3, 6, pal.cat)
	list.Rect(x+5-paw*0.5, y+5, 3, 6, pal.cat)
	list.Ellipse(x, y+1, 11, 6, pal.cat)

	hx, hy := x+f*9, y-6
	list.Circle(hx, hy, 6.5, pal.cat)
	list.Triangle(math.Vec2{X: hx - 6, Y: hy - 3}, math.Vec2{X: hx - 4, Y: hy - 11}, math.Vec2{X: hx - 1, Y: hy - 5}, pal.cat)
	list.Triangle(math.Vec2{X: hx + 1, Y: hy - 5}, math.Vec2{X: hx + 4, Y: hy - 11}, math.Vec2{X: hx + 6, Y: hy - 3}, pal.cat)

	list.Circle(hx-2.2+f, hy-1, 1.6, white)
	list.Circle(hx+2.2+f, hy-1, 1.6, white)
	list.Circle(hx-2.2+f*1.5, hy-1, 0.8, pupil)
	list.Circle(hx+2.2+f*1.5, hy-1, 0.8, pupil)
	list.Circle(hx+f*1.2, hy+1.5, 0.8, nose)
	if c.Meowing() {
		list.Ellipse(hx+f*1.2, hy+3.5, 1.4, 1.2, pupil)
	}
}

// drawToy draws the swinging grass stalk the cat is chasing.
func drawToy(list *render.DrawList, at math.Vec2, swing float32, pal palette) {
	top := math.Vec2{X: at.X - 20, Y: at.Y - 20}
	tip := top.Add(math.FromAngle(math.Pi/2 + swing*math.Pi/180).Scale(22))
	list.Triangle(math.Vec2{X: top.X - 1, Y: top.Y}, math.Vec2{X: top.X + 1, Y: top.Y}, tip, pal.stalk)
	list.Ellipse(tip.X, tip.Y, 4, 6, pal.fluff)
}
