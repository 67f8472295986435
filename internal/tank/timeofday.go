package tank

import (
	"image/color"
	"time"

	"github.com/Faultbox/aquarium/internal/render"
)

// TimeOfDay is the ambient mode of the tank, derived from the wall-clock hour.
type TimeOfDay int

const (
	Dawn      TimeOfDay = iota // 05-07
	Morning                    // 07-12
	Afternoon                  // 12-17
	Evening                    // 17-20
	Night                      // 20-05
)

// transitionHours are the hours at which the ambient mode changes.
var transitionHours = [...]int{5, 7, 12, 17, 20}

// Palette is the set of colours used to draw one ambient mode.
type Palette struct {
	Top, Bottom color.NRGBA // Water gradient
	Floor       color.NRGBA
	Light       float32 // Opacity of the surface light band
}

var palettes = [...]Palette{
	Dawn:      {render.RGB(0.98, 0.65, 0.45), render.RGB(0.30, 0.55, 0.85), render.RGB(0.85, 0.70, 0.50), 0.25},
	Morning:   {render.RGB(0.55, 0.82, 0.95), render.RGB(0.15, 0.40, 0.75), render.RGB(0.76, 0.65, 0.45), 0.35},
	Afternoon: {render.RGB(0.30, 0.70, 0.95), render.RGB(0.05, 0.25, 0.65), render.RGB(0.70, 0.58, 0.38), 0.40},
	Evening:   {render.RGB(0.75, 0.40, 0.55), render.RGB(0.10, 0.15, 0.45), render.RGB(0.45, 0.35, 0.28), 0.15},
	Night:     {render.RGB(0.05, 0.08, 0.20), render.RGB(0.02, 0.05, 0.15), render.RGB(0.15, 0.12, 0.10), 0.05},
}

// TimeOfDayAt returns the ambient mode for the local hour of t.
func TimeOfDayAt(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 5 && h < 7:
		return Dawn
	case h >= 7 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 20:
		return Evening
	default:
		return Night
	}
}

// Palette returns the colours for d.
func (d TimeOfDay) Palette() Palette {
	if d < Dawn || d > Night {
		return palettes[Night]
	}
	return palettes[d]
}

// ShowStars reports whether stars are drawn above the water.
func (d TimeOfDay) ShowStars() bool {
	return d == Evening || d == Night
}

func (d TimeOfDay) String() string {
	switch d {
	case Dawn:
		return "Dawn"
	case Morning:
		return "Morning"
	case Afternoon:
		return "Afternoon"
	case Evening:
		return "Evening"
	default:
		return "Night"
	}
}

// Icon returns a symbolic icon name for the mode.
func (d TimeOfDay) Icon() string {
	switch d {
	case Dawn:
		return "sunrise"
	case Morning:
		return "sun.max"
	case Afternoon:
		return "sun.max.fill"
	case Evening:
		return "sunset"
	default:
		return "moon.stars"
	}
}

// NextTransition returns the first mode boundary strictly after now, in
// now's location. After 20:00 that is 05:00 the following day.
func NextTransition(now time.Time) time.Time {
	y, m, d := now.Date()
	for _, h := range transitionHours {
		t := time.Date(y, m, d, h, 0, 0, 0, now.Location())
		if t.After(now) {
			return t
		}
	}
	return time.Date(y, m, d+1, transitionHours[0], 0, 0, 0, now.Location())
}
