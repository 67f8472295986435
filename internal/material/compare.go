package material

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/logger"
)

// ErrUnknownSurface is returned for surface names outside SurfaceNames.
var ErrUnknownSurface = errors.New("material: unknown surface")

// ViewMode is the layout of the texture comparison viewer.
type ViewMode int

const (
	// Quad shows every surface with the active texture set.
	Quad ViewMode = iota
	// Single shows the selected surface.
	Single
	// SideBySide shows the realistic and stylized sets of the selected surface.
	SideBySide
)

var viewNames = [...]string{"quad", "single", "compare"}

func (v ViewMode) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("ViewMode(%d)", int(v))
	}
	return viewNames[v]
}

// ParseViewMode resolves a view mode by name.
func ParseViewMode(s string) (ViewMode, error) {
	for i, n := range viewNames {
		if s == n {
			return ViewMode(i), nil
		}
	}
	return Quad, fmt.Errorf("unknown view mode %q", s)
}

// Style picks one of the two texture sets of a surface.
type Style int

const (
	Realistic Style = iota
	Stylized
)

func (s Style) String() string {
	if s == Stylized {
		return "stylized"
	}
	return "realistic"
}

// Slot is a texture channel of a set.
type Slot int

const (
	SlotAlbedo Slot = iota
	SlotNormal
	SlotRoughness
	SlotMetallic
	SlotAO
	SlotHeight

	numSlots
)

var slotNames = [...]string{"albedo", "normal", "roughness", "metallic", "ao", "height"}

func (s Slot) String() string {
	if s < 0 || s >= numSlots {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// Slots lists every texture slot.
func Slots() []Slot {
	return []Slot{SlotAlbedo, SlotNormal, SlotRoughness, SlotMetallic, SlotAO, SlotHeight}
}

// TextureSet holds one image per slot; unset slots are nil.
type TextureSet [numSlots]image.Image

// Surface is one of the compared materials.
type Surface struct {
	Name string
	Base Material
	Sets [2]TextureSet
}

// SurfaceNames lists the compared surfaces in quad order.
var SurfaceNames = []string{"wood", "stone", "metal", "cloth"}

// View is one viewport of the current layout.
type View struct {
	Surface string
	Style   Style
}

// Compare is the state of the realistic/stylized texture viewer.
type Compare struct {
	StyleBlend        float32 // 0 realistic .. 100 stylized
	Mode              ViewMode
	Current           string
	Environment       string
	DisplacementScale float32
	AutoRotate        bool
	Rotation          float32 // Yaw of every viewport in radians

	ibl      bool
	surfaces map[string]*Surface
	log      *zap.Logger
}

// NewCompare creates the viewer with untextured surfaces.
func NewCompare() *Compare {
	c := &Compare{
		Mode:              Quad,
		Current:           "wood",
		Environment:       "indoor",
		DisplacementScale: 0.5,
		ibl:               true,
		surfaces:          make(map[string]*Surface, len(SurfaceNames)),
		log:               logger.Named("compare"),
	}
	colors := map[string]uint32{
		"wood":  0x8b4513,
		"stone": 0x808080,
		"metal": 0xc0c0c0,
		"cloth": 0x4682b4,
	}
	for _, name := range SurfaceNames {
		base := Default()
		base.Color = hex(colors[name])
		base.Roughness = 0.7
		if name == "metal" {
			base.Metalness = 0.9
		}
		c.surfaces[name] = &Surface{Name: name, Base: base}
	}
	return c
}

// Surface returns the named surface.
func (c *Compare) Surface(name string) (*Surface, bool) {
	s, ok := c.surfaces[name]
	return s, ok
}

// SetStyleBlend moves the realistic/stylized slider, clamped to 0..100.
func (c *Compare) SetStyleBlend(v float32) {
	c.StyleBlend = mgl32.Clamp(v, 0, 100)
}

// Blend returns the slider position in 0..1.
func (c *Compare) Blend() float32 {
	return c.StyleBlend / 100
}

// Active returns the texture set shown for the current blend.
func (c *Compare) Active() Style {
	if c.Blend() > 0.5 {
		return Stylized
	}
	return Realistic
}

// Select makes name the current surface for the single and compare views.
func (c *Compare) Select(name string) error {
	if _, ok := c.surfaces[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSurface, name)
	}
	c.Current = name
	return nil
}

// SetEnvironment switches the lighting environment.
func (c *Compare) SetEnvironment(name string) error {
	if _, ok := LookupEnvironment(name); !ok {
		return fmt.Errorf("unknown environment %q", name)
	}
	c.Environment = name
	return nil
}

// ToggleIBL flips environment lighting and returns the new state.
func (c *Compare) ToggleIBL() bool {
	c.ibl = !c.ibl
	return c.ibl
}

// IBL reports whether environment lighting is on.
func (c *Compare) IBL() bool {
	return c.ibl
}

// SetTexture stores img in a slot of one of a surface's sets.
func (c *Compare) SetTexture(name string, style Style, slot Slot, img image.Image) error {
	s, ok := c.surfaces[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSurface, name)
	}
	if slot < 0 || slot >= numSlots {
		return fmt.Errorf("unknown texture slot %d", int(slot))
	}
	if style != Realistic && style != Stylized {
		return fmt.Errorf("unknown style %d", int(style))
	}
	s.Sets[style][slot] = img
	return nil
}

// LoadTexture decodes an encoded image and stores it like SetTexture.
func (c *Compare) LoadTexture(name string, style Style, slot Slot, data []byte) error {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode %s %s texture: %w", style, slot, err)
	}
	if err := c.SetTexture(name, style, slot, img); err != nil {
		return err
	}
	c.log.Debug("texture loaded",
		zap.String("surface", name),
		zap.Stringer("style", style),
		zap.Stringer("slot", slot),
		zap.String("format", format),
		zap.Stringer("bounds", img.Bounds()))
	return nil
}

// Maps returns the texture inputs for a surface in the given style. The
// metallic map only applies to the metal surface.
func (c *Compare) Maps(name string, style Style) Maps {
	s, ok := c.surfaces[name]
	if !ok {
		return Maps{}
	}
	set := s.Sets[style]
	m := Maps{
		Albedo:    set[SlotAlbedo],
		Normal:    set[SlotNormal],
		Roughness: set[SlotRoughness],
		AO:        set[SlotAO],
		Height:    set[SlotHeight],
	}
	if name == "metal" {
		m.Metallic = set[SlotMetallic]
	}
	if m.Height != nil {
		m.DisplacementScale = c.DisplacementScale
	}
	return m
}

// Views returns the viewports of the current layout.
func (c *Compare) Views() []View {
	switch c.Mode {
	case Single:
		return []View{{Surface: c.Current, Style: c.Active()}}
	case SideBySide:
		return []View{
			{Surface: c.Current, Style: Realistic},
			{Surface: c.Current, Style: Stylized},
		}
	default:
		views := make([]View, len(SurfaceNames))
		for i, name := range SurfaceNames {
			views[i] = View{Surface: name, Style: c.Active()}
		}
		return views
	}
}

// Render shades one viewport as a sphere.
func (c *Compare) Render(v View, size int) *image.RGBA {
	s, ok := c.surfaces[v.Surface]
	if !ok {
		return image.NewRGBA(image.Rect(0, 0, size, size))
	}
	env, _ := LookupEnvironment(c.Environment)
	return Shade(s.Base, ShadeOptions{
		Size:        size,
		Geometry:    Sphere,
		Lights:      []Light{{Dir: mgl32.Vec3{5, 5, 5}.Normalize(), Color: mgl32.Vec3{1, 1, 1}, Intensity: 1}},
		Ambient:     neutralAmbient,
		IBL:         c.ibl,
		Environment: env,
		Maps:        c.Maps(v.Surface, v.Style),
		Background:  color.NRGBA{R: 0x0a, G: 0x0a, B: 0x1e, A: 0xff},
		Exposure:    1,
		Rotation:    c.Rotation,
	})
}

// spinRate is the auto-rotate speed in radians per second.
const spinRate = 0.5

// Spin advances a yaw angle by dt at the auto-rotate speed, wrapped to
// [0, 2π).
func Spin(angle float32, dt time.Duration) float32 {
	return math32.Mod(angle+spinRate*float32(dt.Seconds()), 2*math32.Pi)
}

// Advance turns the viewports when AutoRotate is on and reports whether
// they need rendering again.
func (c *Compare) Advance(dt time.Duration) bool {
	if !c.AutoRotate || dt <= 0 {
		return false
	}
	c.Rotation = Spin(c.Rotation, dt)
	return true
}
