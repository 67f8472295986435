// Package material implements the BRDF preview panel: a set of optional
// slider bindings copied onto a physically based material, a table of named
// presets, a small CPU shader for the swatch preview, and the texture
// comparison state used to put realistic and stylized maps side by side.
package material

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Material mirrors the properties of a physical material.
type Material struct {
	Color              mgl32.Vec3 `yaml:"color"`
	Metalness          float32    `yaml:"metalness"`
	Roughness          float32    `yaml:"roughness"`
	Reflectivity       float32    `yaml:"reflectivity"`
	Clearcoat          float32    `yaml:"clearcoat"`
	ClearcoatRoughness float32    `yaml:"clearcoat_roughness"`
	Sheen              float32    `yaml:"sheen"`
	Iridescence        float32    `yaml:"iridescence"`
	IridescenceIOR     float32    `yaml:"iridescence_ior"`
	Transmission       float32    `yaml:"transmission"`
	IOR                float32    `yaml:"ior"`
}

// Default returns the material shown before any control is touched.
func Default() Material {
	return Material{
		Color:          mgl32.Vec3{0.5, 0.5, 0.5},
		Roughness:      0.5,
		Reflectivity:   0.5,
		IridescenceIOR: DefaultIridescenceIOR,
		IOR:            1.5,
	}
}

// DefaultIridescenceIOR is used when a preset does not name one.
const DefaultIridescenceIOR = 1.3

// Geometry selects the preview shape.
type Geometry int

const (
	Sphere Geometry = iota
	Cube
	Cylinder
)

var geometryNames = [...]string{"sphere", "cube", "cylinder"}

func (g Geometry) String() string {
	if g < 0 || int(g) >= len(geometryNames) {
		return fmt.Sprintf("Geometry(%d)", int(g))
	}
	return geometryNames[g]
}

// Geometries lists every preview shape in display order.
func Geometries() []Geometry {
	return []Geometry{Sphere, Cube, Cylinder}
}

// ParseGeometry resolves a geometry by name.
func ParseGeometry(s string) (Geometry, error) {
	for i, n := range geometryNames {
		if strings.EqualFold(s, n) {
			return Geometry(i), nil
		}
	}
	return Sphere, fmt.Errorf("unknown geometry %q", s)
}

// Environment is an image based lighting setup, approximated by a
// sky/ground hemisphere and a tint for the reflected horizon.
type Environment struct {
	Name    string
	Sky     mgl32.Vec3
	Horizon mgl32.Vec3
	Ground  mgl32.Vec3
}

// Environments available to the preview, in display order.
var Environments = []Environment{
	{Name: "outdoor", Sky: mgl32.Vec3{0.55, 0.70, 0.95}, Horizon: mgl32.Vec3{0.90, 0.88, 0.80}, Ground: mgl32.Vec3{0.35, 0.30, 0.25}},
	{Name: "sunset", Sky: mgl32.Vec3{0.45, 0.35, 0.60}, Horizon: mgl32.Vec3{1.00, 0.55, 0.25}, Ground: mgl32.Vec3{0.20, 0.12, 0.10}},
	{Name: "forest", Sky: mgl32.Vec3{0.50, 0.65, 0.55}, Horizon: mgl32.Vec3{0.45, 0.60, 0.35}, Ground: mgl32.Vec3{0.15, 0.20, 0.10}},
	{Name: "night", Sky: mgl32.Vec3{0.05, 0.06, 0.12}, Horizon: mgl32.Vec3{0.12, 0.12, 0.20}, Ground: mgl32.Vec3{0.02, 0.02, 0.03}},
	{Name: "overpass", Sky: mgl32.Vec3{0.70, 0.75, 0.80}, Horizon: mgl32.Vec3{0.60, 0.60, 0.58}, Ground: mgl32.Vec3{0.30, 0.30, 0.30}},
	{Name: "quarry", Sky: mgl32.Vec3{0.60, 0.72, 0.90}, Horizon: mgl32.Vec3{0.80, 0.72, 0.60}, Ground: mgl32.Vec3{0.45, 0.38, 0.30}},
	{Name: "warehouse", Sky: mgl32.Vec3{0.80, 0.78, 0.70}, Horizon: mgl32.Vec3{0.55, 0.50, 0.45}, Ground: mgl32.Vec3{0.20, 0.18, 0.16}},
	{Name: "beach", Sky: mgl32.Vec3{0.50, 0.75, 1.00}, Horizon: mgl32.Vec3{0.95, 0.90, 0.75}, Ground: mgl32.Vec3{0.80, 0.72, 0.55}},

	// Texture comparison setups.
	{Name: "indoor", Sky: mgl32.Vec3{0.60, 0.55, 0.50}, Horizon: mgl32.Vec3{0.50, 0.45, 0.40}, Ground: mgl32.Vec3{0.25, 0.22, 0.20}},
	{Name: "studio", Sky: mgl32.Vec3{0.90, 0.90, 0.90}, Horizon: mgl32.Vec3{0.70, 0.70, 0.70}, Ground: mgl32.Vec3{0.20, 0.20, 0.20}},
}

// LookupEnvironment finds an environment by name.
func LookupEnvironment(name string) (Environment, bool) {
	for _, e := range Environments {
		if e.Name == name {
			return e, true
		}
	}
	return Environment{}, false
}

// Light is a directional light used by the preview shader.
type Light struct {
	Dir       mgl32.Vec3 // Points from the surface toward the light
	Color     mgl32.Vec3
	Intensity float32
}

// StudioLights is the three point rig of the preview: a white key light,
// a cool fill and a warm rim.
func StudioLights() []Light {
	return []Light{
		{Dir: mgl32.Vec3{5, 5, 5}.Normalize(), Color: mgl32.Vec3{1, 1, 1}, Intensity: 1.0},
		{Dir: mgl32.Vec3{-5, -3, 3}.Normalize(), Color: mgl32.Vec3{0.6, 0.7, 1}, Intensity: 0.6},
		{Dir: mgl32.Vec3{0, -5, -3}.Normalize(), Color: mgl32.Vec3{1, 0.8, 0.6}, Intensity: 0.4},
	}
}

// Ambient is the constant fill added on top of the lights.
var Ambient = mgl32.Vec3{0.25, 0.25, 0.25}.Mul(0.3)

// neutralAmbient lights the texture comparison views.
var neutralAmbient = mgl32.Vec3{0.5, 0.5, 0.5}
