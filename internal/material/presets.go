package material

import (
	"errors"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownPreset is returned for preset or state names not in the table.
var ErrUnknownPreset = errors.New("material: unknown preset")

// StateKind names a surface condition of a pure metal.
type StateKind string

const (
	Normal    StateKind = "normal"
	Weathered StateKind = "weathered"
)

// State is a reference appearance of a metal in one condition.
type State struct {
	Color     mgl32.Vec3
	Metalness float32
	Roughness float32
}

// Preset is a named material. Zero Sheen, Iridescence and Transmission mean
// the effect is off; a zero IridescenceIOR means DefaultIridescenceIOR.
type Preset struct {
	Name               string
	Label              string
	Color              mgl32.Vec3
	Metalness          float32
	Roughness          float32
	Clearcoat          float32
	ClearcoatRoughness float32
	Sheen              float32
	Iridescence        float32
	IridescenceIOR     float32
	Transmission       float32
	States             map[StateKind]State
}

// Apply overwrites the preset's properties on m. Reflectivity and IOR are
// not part of a preset and are left alone.
func (p Preset) Apply(m *Material) {
	m.Color = p.Color
	m.Metalness = p.Metalness
	m.Roughness = p.Roughness
	m.Clearcoat = p.Clearcoat
	m.ClearcoatRoughness = p.ClearcoatRoughness
	m.Sheen = p.Sheen
	m.Iridescence = p.Iridescence
	m.IridescenceIOR = p.IridescenceIOR
	if m.IridescenceIOR == 0 {
		m.IridescenceIOR = DefaultIridescenceIOR
	}
	m.Transmission = p.Transmission
}

// State returns the reference appearance for kind, if the preset has one.
func (p Preset) State(kind StateKind) (State, bool) {
	s, ok := p.States[kind]
	return s, ok
}

func hex(v uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}
}

func metal(label string, color mgl32.Vec3, roughness float32, normal uint32, worn uint32, wornMetal, wornRough float32) Preset {
	return Preset{
		Label:     label,
		Color:     color,
		Metalness: 1,
		Roughness: roughness,
		States: map[StateKind]State{
			Normal:    {Color: hex(normal), Metalness: 1, Roughness: roughness},
			Weathered: {Color: hex(worn), Metalness: wornMetal, Roughness: wornRough},
		},
	}
}

var presets = map[string]Preset{
	// Pure metals
	"iron":     metal("Iron", mgl32.Vec3{0.776, 0.776, 0.776}, 0.45, 0xC6C6C6, 0x8C5A3C, 0.1, 0.85),
	"aluminum": metal("Aluminum", mgl32.Vec3{0.961, 0.965, 0.965}, 0.2, 0xF5F6F6, 0xC8CDCD, 0.4, 0.75),
	"copper":   metal("Copper", mgl32.Vec3{0.980, 0.816, 0.753}, 0.15, 0xFAD0C0, 0x78B4A5, 0.05, 0.7),
	"gold":     metal("Gold", mgl32.Vec3{1.0, 0.886, 0.608}, 0.15, 0xFFE29B, 0xC8AA6E, 0.8, 0.45),
	"silver":   metal("Silver", mgl32.Vec3{0.988, 0.980, 0.961}, 0.075, 0xFCFAF5, 0x504B46, 0.6, 0.6),
	"bronze":   metal("Bronze", mgl32.Vec3{0.804, 0.498, 0.196}, 0.25, 0xCD7F32, 0x6B8E7F, 0.05, 0.8),
	"brass":    metal("Brass", mgl32.Vec3{0.882, 0.757, 0.431}, 0.2, 0xE1C16E, 0x8B7355, 0.5, 0.6),
	"titanium": metal("Titanium", mgl32.Vec3{0.753, 0.753, 0.784}, 0.35, 0xC0C0C8, 0xB8B8C0, 0.7, 0.7),

	// Oxidized
	"iron_rust":         {Label: "Rust", Color: mgl32.Vec3{0.549, 0.353, 0.235}, Metalness: 0.1, Roughness: 0.85},
	"aluminum_oxidized": {Label: "Oxidized Aluminum", Color: mgl32.Vec3{0.784, 0.804, 0.804}, Metalness: 0.4, Roughness: 0.75},
	"copper_patina":     {Label: "Copper Patina", Color: mgl32.Vec3{0.471, 0.706, 0.647}, Metalness: 0.05, Roughness: 0.7},
	"gold_tarnished":    {Label: "Tarnished Gold", Color: mgl32.Vec3{0.784, 0.667, 0.431}, Metalness: 0.8, Roughness: 0.45},
	"silver_tarnished":  {Label: "Tarnished Silver", Color: mgl32.Vec3{0.314, 0.294, 0.275}, Metalness: 0.6, Roughness: 0.6},
	"bronze_patina":     {Label: "Bronze Patina", Color: mgl32.Vec3{0.420, 0.557, 0.498}, Metalness: 0.05, Roughness: 0.8},
	"brass_tarnished":   {Label: "Tarnished Brass", Color: mgl32.Vec3{0.545, 0.451, 0.333}, Metalness: 0.5, Roughness: 0.6},
	"titanium_oxidized": {Label: "Oxidized Titanium", Color: mgl32.Vec3{0.722, 0.722, 0.753}, Metalness: 0.7, Roughness: 0.7},

	// Sheen
	"velvet":      {Label: "Velvet", Color: mgl32.Vec3{0.6, 0.1, 0.2}, Roughness: 0.8, Sheen: 1},
	"peach":       {Label: "Peach", Color: mgl32.Vec3{1.0, 0.8, 0.6}, Roughness: 0.4, Sheen: 0.7},
	"satin":       {Label: "Satin", Color: mgl32.Vec3{0.02, 0.27, 0.4}, Roughness: 0.3, Sheen: 0.6},
	"dusty_metal": {Label: "Dusty Metal", Color: mgl32.Vec3{0.5, 0.5, 0.5}, Metalness: 1, Roughness: 0.6, Sheen: 0.5},

	// Iridescence
	"soap_bubble":       {Label: "Soap Bubble", Color: mgl32.Vec3{0.95, 0.95, 0.95}, Iridescence: 1, IridescenceIOR: 1.3, Transmission: 0.9},
	"titanium_anodized": {Label: "Anodized Titanium", Color: mgl32.Vec3{0.75, 0.75, 0.78}, Metalness: 1, Roughness: 0.2, Iridescence: 0.8, IridescenceIOR: 1.5},
	"oil_slick":         {Label: "Oil Slick", Color: mgl32.Vec3{0.1, 0.1, 0.1}, Metalness: 0.3, Roughness: 0.1, Iridescence: 0.9, IridescenceIOR: 1.4},
	"cd_surface":        {Label: "CD Surface", Color: mgl32.Vec3{0.9, 0.9, 0.9}, Metalness: 0.5, Roughness: 0.05, Iridescence: 1, IridescenceIOR: 1.6},

	"chrome":       {Label: "Chrome", Color: mgl32.Vec3{0.88, 0.88, 0.88}, Metalness: 1, Roughness: 0.05},
	"plastic":      {Label: "Plastic", Color: mgl32.Vec3{0.8, 0.2, 0.2}, Roughness: 0.3, Clearcoat: 0.5, ClearcoatRoughness: 0.1},
	"rubber":       {Label: "Rubber", Color: mgl32.Vec3{0.15, 0.15, 0.15}, Roughness: 0.9},
	"wood":         {Label: "Wood", Color: mgl32.Vec3{0.42, 0.2, 0.06}, Roughness: 0.7, Clearcoat: 0.1, ClearcoatRoughness: 0.3},
	"carpaint":     {Label: "Car Paint", Color: mgl32.Vec3{0.8, 0, 0}, Roughness: 0.1, Clearcoat: 1},
	"brushedmetal": {Label: "Brushed Metal", Color: mgl32.Vec3{0.7, 0.7, 0.7}, Metalness: 1, Roughness: 0.3},
}

func init() {
	for name, p := range presets {
		p.Name = name
		presets[name] = p
	}
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names returns all preset names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metals returns the names of presets that carry normal/weathered states.
func Metals() []string {
	var names []string
	for _, name := range Names() {
		if presets[name].States != nil {
			names = append(names, name)
		}
	}
	return names
}
