package effects

import (
	"errors"
	"image/color"

	"github.com/Faultbox/aquarium/internal/storage"
)

// ThemeKey is the app store key holding the theme preference.
const ThemeKey = "theme"

// Theme is the light/dark colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Background returns the page colour.
func (t Theme) Background() color.NRGBA {
	if t == Dark {
		return color.NRGBA{R: 26, G: 27, B: 31, A: 255}
	}
	return color.NRGBA{R: 248, G: 246, B: 241, A: 255}
}

// LoadTheme reads the saved theme. Anything missing or unrecognised is Light.
func LoadTheme(s storage.Store) (Theme, error) {
	if s == nil {
		return Light, nil
	}
	var t Theme
	err := storage.Load(s, ThemeKey, &t)
	if errors.Is(err, storage.ErrNotFound) {
		return Light, nil
	}
	if err != nil {
		return Light, err
	}
	if t != Dark {
		t = Light
	}
	return t, nil
}

// SaveTheme stores t.
func SaveTheme(s storage.Store, t Theme) error {
	if s == nil {
		return nil
	}
	return storage.Save(s, ThemeKey, t)
}
