package render

import (
	"image"
	"image/color"
	stdmath "math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/Faultbox/aquarium/pkg/math"
)

// Rasterizer draws a DrawList into an RGBA image. Scale maps list
// coordinates to pixels, so the terminal backend can draw the same list at
// cell resolution.
type Rasterizer struct {
	Scale float32

	z *vector.Rasterizer
}

// NewRasterizer creates a rasterizer at 1:1 scale.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{Scale: 1}
}

// Draw renders every command in order on top of dst.
func (r *Rasterizer) Draw(dst *image.RGBA, list *DrawList) {
	if r.Scale <= 0 {
		r.Scale = 1
	}
	if dst.Bounds().Empty() {
		return
	}
	for i := range list.Cmds {
		r.drawCmd(dst, &list.Cmds[i])
	}
}

// Frame allocates an image of the given size, clears it to black and draws list.
func (r *Rasterizer) Frame(width, height int, list *DrawList) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	r.Draw(img, list)
	return img
}

func (r *Rasterizer) drawCmd(dst *image.RGBA, c *Cmd) {
	s := r.Scale
	switch c.Kind {
	case KindRect:
		rect := image.Rect(round(c.X*s), round(c.Y*s), round((c.X+c.W)*s), round((c.Y+c.H)*s))
		draw.Draw(dst, rect.Intersect(dst.Bounds()), image.NewUniform(c.Color), image.Point{}, draw.Over)

	case KindVGradient:
		r.gradient(dst, c)

	case KindCircle, KindEllipse:
		cx, cy := c.X*s, c.Y*s
		rx, ry := c.R*s, c.R*s
		if c.Kind == KindEllipse {
			ry = c.R2 * s
		}
		r.fillShape(dst, cx-rx, cy-ry, cx+rx, cy+ry, c.Color, func(ox, oy float32) {
			r.ellipse(cx-ox, cy-oy, rx, ry, false)
		})

	case KindRing:
		cx, cy := c.X*s, c.Y*s
		outer := c.R * s
		inner := (c.R - c.R2) * s
		r.fillShape(dst, cx-outer, cy-outer, cx+outer, cy+outer, c.Color, func(ox, oy float32) {
			r.ellipse(cx-ox, cy-oy, outer, outer, false)
			if inner > 0 {
				// Opposite winding cancels coverage inside the inner edge
				r.ellipse(cx-ox, cy-oy, inner, inner, true)
			}
		})

	case KindTriangle:
		p := c.Points
		minX, minY := p[0].X, p[0].Y
		maxX, maxY := minX, minY
		for _, q := range p[1:] {
			minX, maxX = min(minX, q.X), max(maxX, q.X)
			minY, maxY = min(minY, q.Y), max(maxY, q.Y)
		}
		r.fillShape(dst, minX*s, minY*s, maxX*s, maxY*s, c.Color, func(ox, oy float32) {
			r.z.MoveTo(p[0].X*s-ox, p[0].Y*s-oy)
			r.z.LineTo(p[1].X*s-ox, p[1].Y*s-oy)
			r.z.LineTo(p[2].X*s-ox, p[2].Y*s-oy)
			r.z.ClosePath()
		})

	case KindImage:
		r.image(dst, c)

	case KindText:
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(c.Color),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(round(c.X*s), round(c.Y*s)),
		}
		d.DrawString(c.Text)
	}
}

// fillShape rasterizes a path into a coverage mask sized to the shape's
// bounding box, then composites the colour through that mask. path receives
// the box origin and must emit coordinates relative to it.
func (r *Rasterizer) fillShape(dst *image.RGBA, minX, minY, maxX, maxY float32, c color.NRGBA, path func(ox, oy float32)) {
	box := image.Rect(floor(minX)-1, floor(minY)-1, ceil(maxX)+1, ceil(maxY)+1)
	clip := box.Intersect(dst.Bounds())
	if clip.Empty() || c.A == 0 {
		return
	}
	w, h := box.Dx(), box.Dy()
	if r.z == nil {
		r.z = vector.NewRasterizer(w, h)
	} else {
		r.z.Reset(w, h)
	}
	path(float32(box.Min.X), float32(box.Min.Y))

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.z.DrawOp = draw.Src
	r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, clip, image.NewUniform(c), image.Point{}, mask, clip.Min.Sub(box.Min), draw.Over)
}

// ellipse appends a closed polygon approximating the ellipse.
func (r *Rasterizer) ellipse(cx, cy, rx, ry float32, reverse bool) {
	n := int(math.Clamp(max(rx, ry), 12, 96))
	step := math.TwoPi / float32(n)
	if reverse {
		step = -step
	}
	for i := 0; i < n; i++ {
		p := math.FromAngle(float32(i) * step)
		x, y := cx+p.X*rx, cy+p.Y*ry
		if i == 0 {
			r.z.MoveTo(x, y)
		} else {
			r.z.LineTo(x, y)
		}
	}
	r.z.ClosePath()
}

func (r *Rasterizer) gradient(dst *image.RGBA, c *Cmd) {
	s := r.Scale
	y0, y1 := round(c.Y*s), round((c.Y+c.H)*s)
	x0, x1 := round(c.X*s), round((c.X+c.W)*s)
	h := y1 - y0
	if h <= 0 {
		return
	}
	bounds := dst.Bounds()
	for y := y0; y < y1; y++ {
		t := float32(y-y0) / float32(h)
		row := image.Rect(x0, y, x1, y+1).Intersect(bounds)
		if row.Empty() {
			continue
		}
		draw.Draw(dst, row, image.NewUniform(Mix(c.Color, c.Color2, t)), image.Point{}, draw.Over)
	}
}

func (r *Rasterizer) image(dst *image.RGBA, c *Cmd) {
	if c.Image == nil || c.Alpha <= 0 {
		return
	}
	sb := c.Image.Bounds()
	if sb.Empty() {
		return
	}
	size := float64(c.W * r.Scale)
	k := size / stdmath.Max(float64(sb.Dx()), float64(sb.Dy()))
	w, h := float64(sb.Dx())*k, float64(sb.Dy())*k
	cx, cy := float64(c.X*r.Scale), float64(c.Y*r.Scale)

	a, tx := k, cx-w/2
	if c.FlipX {
		a, tx = -k, cx+w/2
	}
	s2d := f64.Aff3{
		a, 0, tx - a*float64(sb.Min.X),
		0, k, cy - h/2 - k*float64(sb.Min.Y),
	}

	var opts *draw.Options
	if c.Alpha < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: unit8(c.Alpha)})}
	}
	draw.CatmullRom.Transform(dst, s2d, c.Image, sb, draw.Over, opts)
}

func round(v float32) int {
	return int(stdmath.Floor(float64(v) + 0.5))
}

func floor(v float32) int {
	return int(stdmath.Floor(float64(v)))
}

func ceil(v float32) int {
	return int(stdmath.Ceil(float64(v)))
}
