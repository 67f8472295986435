package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/Faultbox/aquarium/pkg/math"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func at(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestCircleCoverage(t *testing.T) {
	var l DrawList
	l.Circle(50, 50, 20, red)

	img := NewRasterizer().Frame(100, 100, &l)

	if c := at(img, 50, 50); c.R != 255 || c.G != 0 {
		t.Errorf("centre pixel = %v, want red", c)
	}
	if c := at(img, 5, 5); c.R != 0 {
		t.Errorf("corner pixel = %v, want black", c)
	}
	if c := at(img, 50, 75); c.R != 0 {
		t.Errorf("pixel outside radius = %v, want black", c)
	}
}

func TestRingLeavesHole(t *testing.T) {
	var l DrawList
	l.Ring(50, 50, 30, 4, white)

	img := NewRasterizer().Frame(100, 100, &l)

	if c := at(img, 50, 50); c.R != 0 {
		t.Errorf("ring centre = %v, want empty", c)
	}
	if c := at(img, 50, 22); c.R < 200 {
		t.Errorf("ring stroke = %v, want white", c)
	}
}

func TestOffscreenShapesAreClipped(t *testing.T) {
	var l DrawList
	l.Circle(-10, 50, 30, red)
	l.Circle(500, 500, 30, red)
	l.Triangle(math.Vec2{X: -50, Y: -50}, math.Vec2{X: 60, Y: -10}, math.Vec2{X: 20, Y: 40}, blue)
	l.Ellipse(95, 95, 40, 10, white)

	img := NewRasterizer().Frame(100, 100, &l)

	if c := at(img, 5, 50); c.R != 255 {
		t.Errorf("visible part of clipped circle = %v, want red", c)
	}
	if c := at(img, 20, 20); c.B != 255 {
		t.Errorf("inside triangle = %v, want blue", c)
	}
}

func TestVGradient(t *testing.T) {
	var l DrawList
	l.VGradient(0, 0, 10, 100, red, blue)

	img := NewRasterizer().Frame(10, 100, &l)

	top, bottom := at(img, 5, 0), at(img, 5, 99)
	if top.R < 250 || top.B > 5 {
		t.Errorf("gradient top = %v, want red", top)
	}
	if bottom.B < 245 || bottom.R > 10 {
		t.Errorf("gradient bottom = %v, want blue", bottom)
	}
	mid := at(img, 5, 50)
	if mid.R < 100 || mid.B < 100 {
		t.Errorf("gradient middle = %v, want a blend", mid)
	}
}

func TestScale(t *testing.T) {
	var l DrawList
	l.Rect(10, 10, 10, 10, red)

	r := NewRasterizer()
	r.Scale = 0.5
	img := r.Frame(20, 20, &l)

	if c := at(img, 7, 7); c.R != 255 {
		t.Errorf("scaled rect pixel = %v, want red", c)
	}
	if c := at(img, 12, 12); c.R != 0 {
		t.Errorf("pixel past scaled rect = %v, want black", c)
	}
}

func TestImageFlip(t *testing.T) {
	// Left half red, right half blue
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				src.Set(x, y, red)
			} else {
				src.Set(x, y, blue)
			}
		}
	}

	var plain, flipped DrawList
	plain.Image(src, 40, 40, 64, false, 1)
	flipped.Image(src, 40, 40, 64, true, 1)

	a := NewRasterizer().Frame(80, 80, &plain)
	b := NewRasterizer().Frame(80, 80, &flipped)

	if c := at(a, 20, 40); c.R < 200 {
		t.Errorf("unflipped left = %v, want red", c)
	}
	if c := at(b, 20, 40); c.B < 200 {
		t.Errorf("flipped left = %v, want blue", c)
	}
}

func TestImageSkipsEmptyOrInvisible(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	var l DrawList
	l.Image(&image.RGBA{}, 10, 10, 10, false, 1)
	l.Image(src, 10, 10, 8, false, 0)

	img := NewRasterizer().Frame(20, 20, &l)
	if c := at(img, 10, 10); c.R != 0 {
		t.Errorf("skipped image drew %v", c)
	}
}

func TestTextDrawsPixels(t *testing.T) {
	var l DrawList
	l.Text(2, 14, "Night", white)

	img := NewRasterizer().Frame(60, 20, &l)

	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			if at(img, x, y).R > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("text produced no pixels")
	}
}

func TestDrawListCounts(t *testing.T) {
	var l DrawList
	l.Circle(0, 0, 1, red)
	l.Circle(0, 0, 1, red)
	l.Rect(0, 0, 1, 1, red)
	if l.Len() != 3 || l.Count(KindCircle) != 2 {
		t.Errorf("Len=%d Count(circle)=%d", l.Len(), l.Count(KindCircle))
	}
	l.Reset()
	if l.Len() != 0 {
		t.Errorf("Reset left %d commands", l.Len())
	}
}

func TestFadeAndMix(t *testing.T) {
	if got := Fade(red, 0.5).A; got != 128 {
		t.Errorf("Fade alpha = %d, want 128", got)
	}
	if got := Mix(red, blue, 0); got != red {
		t.Errorf("Mix t=0 = %v", got)
	}
	if got := Mix(red, blue, 1); got != blue {
		t.Errorf("Mix t=1 = %v", got)
	}
	if got := RGB(1, 0.5, 0); got.G != 128 || got.A != 255 {
		t.Errorf("RGB = %v", got)
	}
}
