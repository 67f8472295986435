package material

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// HSVToRGB converts a hue in degrees and saturation/value percentages
// into an RGB triple in the 0-1 range.
func HSVToRGB(h, s, v float32) mgl32.Vec3 {
	h = math32.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = mgl32.Clamp(s, 0, 100) / 100
	v = mgl32.Clamp(v, 0, 100) / 100

	c := v * s
	x := c * (1 - math32.Abs(math32.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float32
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return mgl32.Vec3{r + m, g + m, b + m}
}

// RGBToHSV is the inverse of HSVToRGB. Greys report a hue of 0.
func RGBToHSV(c mgl32.Vec3) (h, s, v float32) {
	r, g, b := c[0], c[1], c[2]
	hi := math32.Max(r, math32.Max(g, b))
	lo := math32.Min(r, math32.Min(g, b))
	delta := hi - lo

	if delta != 0 {
		switch hi {
		case r:
			h = 60 * math32.Mod((g-b)/delta, 6)
		case g:
			h = 60 * ((b-r)/delta + 2)
		default:
			h = 60 * ((r-g)/delta + 4)
		}
	}
	if h < 0 {
		h += 360
	}
	if hi != 0 {
		s = delta / hi * 100
	}
	return h, s, hi * 100
}
