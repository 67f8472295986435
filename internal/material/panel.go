package material

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Control identifies one slider of the panel.
type Control int

const (
	ColorH Control = iota
	ColorS
	ColorV
	Metallic
	Roughness
	Specular
	Clearcoat
	ClearcoatRoughness
	Sheen
	Iridescence
	IridescenceIOR
	Transmission

	numControls
)

// Range describes a slider's limits.
type Range struct {
	Min, Max, Step float32
}

var controlInfo = [numControls]struct {
	name string
	rng  Range
}{
	ColorH:             {"Hue", Range{0, 360, 1}},
	ColorS:             {"Saturation", Range{0, 100, 1}},
	ColorV:             {"Value", Range{0, 100, 1}},
	Metallic:           {"Metallic", Range{0, 1, 0.01}},
	Roughness:          {"Roughness", Range{0, 1, 0.01}},
	Specular:           {"Specular", Range{0, 1, 0.01}},
	Clearcoat:          {"Clearcoat", Range{0, 1, 0.01}},
	ClearcoatRoughness: {"Clearcoat Roughness", Range{0, 1, 0.01}},
	Sheen:              {"Sheen", Range{0, 1, 0.01}},
	Iridescence:        {"Iridescence", Range{0, 1, 0.01}},
	IridescenceIOR:     {"Iridescence IOR", Range{1, 2.333, 0.01}},
	Transmission:       {"Transmission", Range{0, 1, 0.01}},
}

// Controls lists every control in panel order.
func Controls() []Control {
	cs := make([]Control, numControls)
	for i := range cs {
		cs[i] = Control(i)
	}
	return cs
}

func (c Control) String() string {
	if c < 0 || c >= numControls {
		return fmt.Sprintf("Control(%d)", int(c))
	}
	return controlInfo[c].name
}

// Range returns the slider limits of c.
func (c Control) Range() Range {
	if c < 0 || c >= numControls {
		return Range{}
	}
	return controlInfo[c].rng
}

// Binding is one optional slider. A binding that is not Present is skipped
// by every panel operation.
type Binding struct {
	Present bool
	Value   float32
	Display string
}

// Panel holds the slider state and the material it drives.
type Panel struct {
	Material    Material
	ColorText   string
	ColorSwatch color.NRGBA
	Geometry    Geometry
	Environment string
	NormalMap   image.Image
	Rotation    float32

	bindings [numControls]Binding
	ibl      bool
}

// NewPanel creates a panel with the given bindings present. With no
// arguments every control is bound.
func NewPanel(present ...Control) *Panel {
	p := &Panel{
		Material:    Default(),
		Environment: Environments[0].Name,
		ibl:         true,
	}
	if len(present) == 0 {
		present = Controls()
	}
	for _, c := range present {
		if c >= 0 && c < numControls {
			p.bindings[c].Present = true
		}
	}
	p.sync()
	p.Update()
	return p
}

// Binding returns the binding for c.
func (p *Panel) Binding(c Control) Binding {
	if c < 0 || c >= numControls {
		return Binding{}
	}
	return p.bindings[c]
}

// Set moves a slider, clamped to its range. It reports false when the
// control is not bound.
func (p *Panel) Set(c Control, v float32) bool {
	if c < 0 || c >= numControls || !p.bindings[c].Present {
		return false
	}
	r := controlInfo[c].rng
	p.bindings[c].Value = mgl32.Clamp(v, r.Min, r.Max)
	return true
}

// Value returns the slider value of c when bound.
func (p *Panel) Value(c Control) (float32, bool) {
	b := p.Binding(c)
	return b.Value, b.Present
}

// Update copies bound slider values into the material and refreshes the
// value displays.
func (p *Panel) Update() {
	m := &p.Material

	h, s, v := RGBToHSV(m.Color)
	if val, ok := p.Value(ColorH); ok {
		h = val
	}
	if val, ok := p.Value(ColorS); ok {
		s = val
	}
	if val, ok := p.Value(ColorV); ok {
		v = val
	}
	if p.bindings[ColorH].Present || p.bindings[ColorS].Present || p.bindings[ColorV].Present {
		m.Color = HSVToRGB(h, s, v)
	}

	fields := map[Control]*float32{
		Metallic:           &m.Metalness,
		Roughness:          &m.Roughness,
		Specular:           &m.Reflectivity,
		Clearcoat:          &m.Clearcoat,
		ClearcoatRoughness: &m.ClearcoatRoughness,
		Sheen:              &m.Sheen,
		Iridescence:        &m.Iridescence,
		IridescenceIOR:     &m.IridescenceIOR,
		Transmission:       &m.Transmission,
	}
	for c, dst := range fields {
		b := &p.bindings[c]
		if !b.Present {
			continue
		}
		*dst = b.Value
		b.Display = fmt.Sprintf("%.2f", *dst)
	}
	for _, c := range []Control{ColorH, ColorS, ColorV} {
		if b := &p.bindings[c]; b.Present {
			b.Display = fmt.Sprintf("%.0f", b.Value)
		}
	}

	p.ColorSwatch = color.NRGBA{R: to8(m.Color[0]), G: to8(m.Color[1]), B: to8(m.Color[2]), A: 255}
	p.ColorText = fmt.Sprintf("HSV(%.0f°, %.0f%%, %.0f%%)", h, s, v)
}

// ApplyPreset loads a named preset into the sliders and the material.
func (p *Panel) ApplyPreset(name string) error {
	preset, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	preset.Apply(&p.Material)
	p.sync()
	p.Update()
	return nil
}

// ApplyState loads the normal or weathered appearance of a metal preset.
func (p *Panel) ApplyState(name string, kind StateKind) error {
	preset, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	st, ok := preset.State(kind)
	if !ok {
		return fmt.Errorf("%w: %q has no %s state", ErrUnknownPreset, name, kind)
	}
	preset.Apply(&p.Material)
	p.Material.Color = st.Color
	p.Material.Metalness = st.Metalness
	p.Material.Roughness = st.Roughness
	p.sync()
	p.Update()
	return nil
}

// Load replaces the material, moving the sliders to match. A zero
// iridescence IOR is reset to the default.
func (p *Panel) Load(m Material) {
	if m.IridescenceIOR == 0 {
		m.IridescenceIOR = DefaultIridescenceIOR
	}
	p.Material = m
	p.sync()
	p.Update()
}

// LoadNormalMap decodes an encoded image as the preview normal map. Nil
// data clears it.
func (p *Panel) LoadNormalMap(data []byte) error {
	if data == nil {
		p.NormalMap = nil
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode normal map: %w", err)
	}
	p.NormalMap = img
	return nil
}

// ToggleIBL flips environment lighting and returns the new state.
func (p *Panel) ToggleIBL() bool {
	p.ibl = !p.ibl
	return p.ibl
}

// IBL reports whether environment lighting is on.
func (p *Panel) IBL() bool {
	return p.ibl
}

// IBLLabel is the caption of the environment toggle.
func (p *Panel) IBLLabel() string {
	if p.ibl {
		return "IBL Environment: ON"
	}
	return "IBL Environment: OFF"
}

// SetEnvironment selects a lighting environment by name.
func (p *Panel) SetEnvironment(name string) error {
	if _, ok := LookupEnvironment(name); !ok {
		return fmt.Errorf("unknown environment %q", name)
	}
	p.Environment = name
	return nil
}

// ShadeOptions returns the preview settings for the current panel state.
func (p *Panel) ShadeOptions(size int) ShadeOptions {
	env, _ := LookupEnvironment(p.Environment)
	return ShadeOptions{
		Size:        size,
		Geometry:    p.Geometry,
		Lights:      StudioLights(),
		Ambient:     Ambient,
		IBL:         p.ibl,
		Environment: env,
		NormalMap:   p.NormalMap,
		Background:  color.NRGBA{R: 0x0f, G: 0x0f, B: 0x1e, A: 0xff},
		Rotation:    p.Rotation,
	}
}

// sync moves the sliders to match the material.
func (p *Panel) sync() {
	m := p.Material
	h, s, v := RGBToHSV(m.Color)
	values := [numControls]float32{
		ColorH:             h,
		ColorS:             s,
		ColorV:             v,
		Metallic:           m.Metalness,
		Roughness:          m.Roughness,
		Specular:           m.Reflectivity,
		Clearcoat:          m.Clearcoat,
		ClearcoatRoughness: m.ClearcoatRoughness,
		Sheen:              m.Sheen,
		Iridescence:        m.Iridescence,
		IridescenceIOR:     m.IridescenceIOR,
		Transmission:       m.Transmission,
	}
	for c, v := range values {
		p.Set(Control(c), v)
	}
}

func to8(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
