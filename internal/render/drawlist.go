// Package render turns simulation state into a flat list of draw calls and
// rasterizes that list into an RGBA image. Every backend (SDL window,
// terminal, widget PNGs) presents the same rasterized frame.
package render

import (
	"image"
	"image/color"

	"github.com/Faultbox/aquarium/pkg/math"
)

// Kind identifies a draw call.
type Kind int

const (
	KindRect Kind = iota
	KindVGradient
	KindCircle
	KindRing
	KindEllipse
	KindTriangle
	KindImage
	KindText
)

// Cmd is a single draw call. Which fields are read depends on Kind.
type Cmd struct {
	Kind Kind

	// Rect, VGradient: top-left + size. Circle, Ring, Ellipse, Image, Text: X/Y is the anchor.
	X, Y, W, H float32
	R          float32 // Circle/Ring radius, Ellipse X radius
	R2         float32 // Ellipse Y radius, Ring stroke width
	Points     [3]math.Vec2

	Color  color.NRGBA
	Color2 color.NRGBA // VGradient bottom colour

	Image image.Image
	FlipX bool
	Alpha float32 // Image opacity
	Text  string
}

// DrawList accumulates draw calls for one frame, back to front.
type DrawList struct {
	Cmds []Cmd
}

// Reset empties the list while keeping its capacity.
func (l *DrawList) Reset() {
	l.Cmds = l.Cmds[:0]
}

// Len returns the number of queued calls.
func (l *DrawList) Len() int {
	return len(l.Cmds)
}

// Count returns how many calls of the given kind are queued.
func (l *DrawList) Count(k Kind) int {
	n := 0
	for i := range l.Cmds {
		if l.Cmds[i].Kind == k {
			n++
		}
	}
	return n
}

// Rect queues a filled rectangle.
func (l *DrawList) Rect(x, y, w, h float32, c color.NRGBA) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindRect, X: x, Y: y, W: w, H: h, Color: c})
}

// VGradient queues a rectangle blending from top to bottom.
func (l *DrawList) VGradient(x, y, w, h float32, top, bottom color.NRGBA) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindVGradient, X: x, Y: y, W: w, H: h, Color: top, Color2: bottom})
}

// Circle queues a filled circle.
func (l *DrawList) Circle(cx, cy, r float32, c color.NRGBA) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindCircle, X: cx, Y: cy, R: r, Color: c})
}

// Ring queues a circle outline of the given stroke width.
func (l *DrawList) Ring(cx, cy, r, width float32, c color.NRGBA) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindRing, X: cx, Y: cy, R: r, R2: width, Color: c})
}

// Ellipse queues a filled axis-aligned ellipse.
func (l *DrawList) Ellipse(cx, cy, rx, ry float32, c color.NRGBA) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindEllipse, X: cx, Y: cy, R: rx, R2: ry, Color: c})
}

// Triangle queues a filled triangle.
func (l *DrawList) Triangle(a, b, c math.Vec2, col color.NRGBA) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindTriangle, Points: [3]math.Vec2{a, b, c}, Color: col})
}

// Image queues img scaled into a size×size box centred on (cx, cy).
func (l *DrawList) Image(img image.Image, cx, cy, size float32, flipX bool, alpha float32) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindImage, Image: img, X: cx, Y: cy, W: size, H: size, FlipX: flipX, Alpha: alpha})
}

// Text queues a label with its baseline starting at (x, y).
func (l *DrawList) Text(x, y float32, s string, c color.NRGBA) {
	l.Cmds = append(l.Cmds, Cmd{Kind: KindText, X: x, Y: y, Text: s, Color: c})
}

// RGB builds an opaque colour from 0..1 components.
func RGB(r, g, b float32) color.NRGBA {
	return color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: 255}
}

// Fade returns c with its alpha multiplied by a (0..1).
func Fade(c color.NRGBA, a float32) color.NRGBA {
	c.A = unit8(float32(c.A) / 255 * a)
	return c
}

// Mix linearly blends two colours; t=0 gives a, t=1 gives b.
func Mix(a, b color.NRGBA, t float32) color.NRGBA {
	t = math.Clamp(t, 0, 1)
	lerp := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

func unit8(v float32) uint8 {
	return uint8(math.Clamp(v, 0, 1)*255 + 0.5)
}
