package widget

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Faultbox/aquarium/internal/render"
	"github.com/Faultbox/aquarium/internal/tank"
)

// Family is a widget size class.
type Family int

const (
	Small Family = iota
	Medium
	Large
)

// Families lists every supported size.
var Families = []Family{Small, Medium, Large}

// Size returns the frame size in points.
func (f Family) Size() (w, h int) {
	switch f {
	case Medium:
		return 364, 170
	case Large:
		return 364, 382
	default:
		return 170, 170
	}
}

func (f Family) String() string {
	switch f {
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "small"
	}
}

// ParseFamily maps a family name back to its value.
func ParseFamily(s string) (Family, error) {
	for _, f := range Families {
		if f.String() == s {
			return f, nil
		}
	}
	return Small, fmt.Errorf("unknown widget family %q", s)
}

var labelColor = color.NRGBA{R: 255, G: 255, B: 255, A: 230}

// Draw queues the draw calls for one entry at the family's size.
func Draw(list *render.DrawList, e Entry, f Family) {
	iw, ih := f.Size()
	w, h := float32(iw), float32(ih)
	pal := e.Mode.Palette()

	tank.DrawScenery(list, w, h, pal, 0)
	if e.Mode.ShowStars() {
		tank.DrawStars(list, w, h)
	}
	for _, c := range e.Creatures {
		tank.DrawSprite(list, c.Species, c.Image, c.XRatio*w, c.YRatio*h, c.Size, c.Flipped)
	}
	list.Text(10, 18, e.Mode.String(), labelColor)
}

// Render rasterizes one entry into a new image.
func Render(e Entry, f Family) *image.RGBA {
	var list render.DrawList
	Draw(&list, e, f)
	w, h := f.Size()
	return render.NewRasterizer().Frame(w, h, &list)
}
