package material

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sort"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/aquarium/internal/storage"
)

const tol = 1e-3

func nearVec(a, b mgl32.Vec3) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h, s, v float32
		want    mgl32.Vec3
	}{
		{0, 100, 100, mgl32.Vec3{1, 0, 0}},
		{120, 100, 100, mgl32.Vec3{0, 1, 0}},
		{240, 100, 50, mgl32.Vec3{0, 0, 0.5}},
		{60, 50, 100, mgl32.Vec3{1, 1, 0.5}},
		{300, 100, 100, mgl32.Vec3{1, 0, 1}},
		{0, 0, 50, mgl32.Vec3{0.5, 0.5, 0.5}},
		{360, 100, 100, mgl32.Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		if got := HSVToRGB(tt.h, tt.s, tt.v); !nearVec(got, tt.want) {
			t.Errorf("HSVToRGB(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
		}
	}
}

func TestRGBToHSVRoundTrip(t *testing.T) {
	for _, name := range Names() {
		p, _ := Lookup(name)
		h, s, v := RGBToHSV(p.Color)
		if h < 0 || h >= 360 || s < 0 || s > 100 || v < 0 || v > 100 {
			t.Errorf("%s: hsv out of range (%v, %v, %v)", name, h, s, v)
		}
		if got := HSVToRGB(h, s, v); !nearVec(got, p.Color) {
			t.Errorf("%s: round trip %v, want %v", name, got, p.Color)
		}
	}

	h, s, v := RGBToHSV(mgl32.Vec3{0.5, 0.5, 0.5})
	if h != 0 || s != 0 || math32.Abs(v-50) > tol {
		t.Errorf("grey = (%v, %v, %v), want (0, 0, 50)", h, s, v)
	}
}

func TestPresetTable(t *testing.T) {
	names := Names()
	if len(names) != 30 {
		t.Errorf("got %d presets, want 30", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Error("Names not sorted")
	}
	if got := len(Metals()); got != 8 {
		t.Errorf("got %d metals with states, want 8", got)
	}
	for _, name := range names {
		p, ok := Lookup(name)
		if !ok || p.Name != name {
			t.Errorf("Lookup(%q) = %q, %v", name, p.Name, ok)
		}
	}
	if _, ok := Lookup("unobtainium"); ok {
		t.Error("Lookup of unknown preset succeeded")
	}
}

func TestPresetOptionalDefaults(t *testing.T) {
	tests := []struct {
		name         string
		sheen        float32
		iridescence  float32
		iridIOR      float32
		transmission float32
	}{
		{"velvet", 1, 0, DefaultIridescenceIOR, 0},
		{"chrome", 0, 0, DefaultIridescenceIOR, 0},
		{"soap_bubble", 0, 1, 1.3, 0.9},
		{"cd_surface", 0, 1, 1.6, 0},
	}
	for _, tt := range tests {
		p, _ := Lookup(tt.name)
		m := Default()
		m.Sheen, m.Transmission = 0.5, 0.5
		p.Apply(&m)
		if m.Sheen != tt.sheen || m.Iridescence != tt.iridescence ||
			m.IridescenceIOR != tt.iridIOR || m.Transmission != tt.transmission {
			t.Errorf("%s: got sheen=%v irid=%v ior=%v trans=%v", tt.name,
				m.Sheen, m.Iridescence, m.IridescenceIOR, m.Transmission)
		}
	}
}

func TestPanelApplyPreset(t *testing.T) {
	p := NewPanel()
	if err := p.ApplyPreset("gold"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if !nearVec(p.Material.Color, mgl32.Vec3{1, 0.886, 0.608}) {
		t.Errorf("color = %v", p.Material.Color)
	}
	if p.Material.Metalness != 1 || math32.Abs(p.Material.Roughness-0.15) > tol {
		t.Errorf("metal=%v rough=%v", p.Material.Metalness, p.Material.Roughness)
	}
	if got := p.Binding(Roughness).Display; got != "0.15" {
		t.Errorf("roughness display = %q", got)
	}
	if got := p.Binding(IridescenceIOR).Display; got != "1.30" {
		t.Errorf("iridescence IOR display = %q", got)
	}
	if want := "HSV(43°, 39%, 100%)"; p.ColorText != want {
		t.Errorf("ColorText = %q, want %q", p.ColorText, want)
	}

	err := p.ApplyPreset("unobtainium")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("unknown preset err = %v", err)
	}
}

func TestPanelApplyState(t *testing.T) {
	p := NewPanel()
	if err := p.ApplyState("iron", Weathered); err != nil {
		t.Fatalf("ApplyState: %v", err)
	}
	if !nearVec(p.Material.Color, hex(0x8C5A3C)) {
		t.Errorf("color = %v", p.Material.Color)
	}
	if math32.Abs(p.Material.Metalness-0.1) > tol || math32.Abs(p.Material.Roughness-0.85) > tol {
		t.Errorf("metal=%v rough=%v", p.Material.Metalness, p.Material.Roughness)
	}

	if err := p.ApplyState("chrome", Normal); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("state of plain preset err = %v", err)
	}
}

func TestPanelMissingBindings(t *testing.T) {
	p := NewPanel(ColorH, ColorS, ColorV, Roughness)
	before := p.Material.Metalness

	if p.Set(Metallic, 0.3) {
		t.Error("Set on unbound control reported success")
	}
	if !p.Set(Roughness, 0.9) {
		t.Fatal("Set on bound control failed")
	}
	p.Update()

	if p.Material.Metalness != before {
		t.Errorf("unbound metalness changed to %v", p.Material.Metalness)
	}
	if p.Material.Roughness != 0.9 {
		t.Errorf("roughness = %v", p.Material.Roughness)
	}
	if b := p.Binding(Metallic); b.Present || b.Display != "" {
		t.Errorf("unbound binding = %+v", b)
	}
	if _, ok := p.Value(Sheen); ok {
		t.Error("Value reported an unbound control")
	}
}

func TestPanelSetClamps(t *testing.T) {
	p := NewPanel()
	p.Set(IridescenceIOR, 5)
	p.Set(Roughness, -1)
	p.Set(ColorH, 400)
	p.Update()

	if v, _ := p.Value(IridescenceIOR); v != 2.333 {
		t.Errorf("IOR = %v", v)
	}
	if p.Material.Roughness != 0 {
		t.Errorf("roughness = %v", p.Material.Roughness)
	}
	if v, _ := p.Value(ColorH); v != 360 {
		t.Errorf("hue = %v", v)
	}
}

func TestPanelToggleIBL(t *testing.T) {
	p := NewPanel()
	if !p.IBL() || p.IBLLabel() != "IBL Environment: ON" {
		t.Fatalf("initial IBL = %v %q", p.IBL(), p.IBLLabel())
	}
	if p.ToggleIBL() {
		t.Error("toggle did not turn IBL off")
	}
	if p.IBLLabel() != "IBL Environment: OFF" {
		t.Errorf("label = %q", p.IBLLabel())
	}
	if err := p.SetEnvironment("moon"); err == nil {
		t.Error("unknown environment accepted")
	}
	if err := p.SetEnvironment("night"); err != nil || p.Environment != "night" {
		t.Errorf("SetEnvironment = %v, %q", err, p.Environment)
	}
}

func TestParseGeometry(t *testing.T) {
	for _, g := range Geometries() {
		got, err := ParseGeometry(g.String())
		if err != nil || got != g {
			t.Errorf("ParseGeometry(%q) = %v, %v", g, got, err)
		}
	}
	if _, err := ParseGeometry("torus"); err == nil {
		t.Error("torus accepted")
	}
}

func luma(c color.RGBA) int {
	return int(c.R) + int(c.G) + int(c.B)
}

func TestShadeGeometries(t *testing.T) {
	const size = 32
	p := NewPanel()
	for _, g := range Geometries() {
		p.Geometry = g
		opts := p.ShadeOptions(size)
		img := Shade(p.Material, opts)
		if img.Bounds().Dx() != size || img.Bounds().Dy() != size {
			t.Fatalf("%s: bounds %v", g, img.Bounds())
		}
		bg := color.RGBA{R: opts.Background.R, G: opts.Background.G, B: opts.Background.B, A: 255}
		if got := img.RGBAAt(0, 0); got != bg {
			t.Errorf("%s: corner = %v, want background", g, got)
		}
		if got := img.RGBAAt(size/2, size/2); got == bg {
			t.Errorf("%s: centre not shaded", g)
		}
	}
}

func TestShadeIBLBrightens(t *testing.T) {
	m := Default()
	m.Color = mgl32.Vec3{1, 1, 1}
	opts := ShadeOptions{Size: 16, Ambient: Ambient, Environment: Environments[0]}

	dark := Shade(m, opts)
	opts.IBL = true
	lit := Shade(m, opts)

	if luma(lit.RGBAAt(8, 8)) <= luma(dark.RGBAAt(8, 8)) {
		t.Errorf("IBL %v not brighter than %v", lit.RGBAAt(8, 8), dark.RGBAAt(8, 8))
	}
}

func TestShadeNormalMap(t *testing.T) {
	tiltMap := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			tiltMap.SetRGBA(x, y, color.RGBA{R: 255, G: 128, B: 128, A: 255})
		}
	}

	p := NewPanel()
	plain := Shade(p.Material, p.ShadeOptions(24))
	p.NormalMap = tiltMap
	bumped := Shade(p.Material, p.ShadeOptions(24))

	if bytes.Equal(plain.Pix, bumped.Pix) {
		t.Error("normal map had no effect")
	}
}

func TestCompareActiveSet(t *testing.T) {
	tests := []struct {
		blend float32
		want  Style
	}{
		{0, Realistic},
		{50, Realistic},
		{51, Stylized},
		{100, Stylized},
		{250, Stylized},
		{-10, Realistic},
	}
	c := NewCompare()
	for _, tt := range tests {
		c.SetStyleBlend(tt.blend)
		if got := c.Active(); got != tt.want {
			t.Errorf("blend %v: Active = %v, want %v", tt.blend, got, tt.want)
		}
	}
	if c.StyleBlend != 0 {
		t.Errorf("blend not clamped: %v", c.StyleBlend)
	}
}

func TestCompareMetallicOnlyForMetal(t *testing.T) {
	c := NewCompare()
	tex := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for _, name := range SurfaceNames {
		if err := c.SetTexture(name, Realistic, SlotMetallic, tex); err != nil {
			t.Fatalf("SetTexture(%s): %v", name, err)
		}
	}
	for _, name := range SurfaceNames {
		m := c.Maps(name, Realistic)
		if got := m.Metallic != nil; got != (name == "metal") {
			t.Errorf("%s: metallic map present = %v", name, got)
		}
	}
	if m := c.Maps("metal", Stylized); m.Metallic != nil {
		t.Error("stylized set picked up realistic texture")
	}
}

func TestCompareViews(t *testing.T) {
	c := NewCompare()
	if got := len(c.Views()); got != 4 {
		t.Errorf("quad views = %d", got)
	}

	if err := c.Select("stone"); err != nil {
		t.Fatal(err)
	}
	c.Mode = SideBySide
	views := c.Views()
	if len(views) != 2 || views[0] != (View{"stone", Realistic}) || views[1] != (View{"stone", Stylized}) {
		t.Errorf("compare views = %v", views)
	}

	c.Mode = Single
	c.SetStyleBlend(80)
	if views := c.Views(); len(views) != 1 || views[0] != (View{"stone", Stylized}) {
		t.Errorf("single views = %v", views)
	}

	if err := c.Select("lava"); !errors.Is(err, ErrUnknownSurface) {
		t.Errorf("Select(lava) = %v", err)
	}
	if mode, err := ParseViewMode("compare"); err != nil || mode != SideBySide {
		t.Errorf("ParseViewMode = %v, %v", mode, err)
	}
}

func TestCompareLoadTexture(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	c := NewCompare()
	if err := c.LoadTexture("wood", Stylized, SlotHeight, buf.Bytes()); err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	m := c.Maps("wood", Stylized)
	if m.Height == nil || m.DisplacementScale != 0.5 {
		t.Errorf("height map = %v, scale %v", m.Height, m.DisplacementScale)
	}
	if err := c.LoadTexture("wood", Stylized, SlotAlbedo, []byte("not an image")); err == nil {
		t.Error("garbage decoded")
	}

	img := c.Render(View{"wood", Stylized}, 16)
	if img.Bounds().Dx() != 16 {
		t.Errorf("render bounds %v", img.Bounds())
	}
}

func TestShadeRotation(t *testing.T) {
	opts := NewPanel().ShadeOptions(32)
	opts.Geometry = Cube
	a := Shade(Default(), opts)
	opts.Rotation = 0.7
	b := Shade(Default(), opts)
	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("rotating the cube left the image unchanged")
	}
}

func TestCompareAdvance(t *testing.T) {
	c := NewCompare()
	if c.Advance(time.Second) {
		t.Error("Advance turned with AutoRotate off")
	}
	c.AutoRotate = true
	if !c.Advance(time.Second) {
		t.Fatal("Advance did not turn with AutoRotate on")
	}
	if c.Rotation != spinRate {
		t.Errorf("Rotation = %v, want %v", c.Rotation, spinRate)
	}
	for i := 0; i < 20; i++ {
		c.Advance(time.Second)
	}
	if c.Rotation < 0 || c.Rotation >= 2*math32.Pi {
		t.Errorf("Rotation %v not wrapped", c.Rotation)
	}
}

func TestPanelLoadSaved(t *testing.T) {
	saved := Default()
	saved.Color = mgl32.Vec3{0.2, 0.4, 0.8}
	saved.Metalness = 0.9
	saved.Roughness = 0.3
	saved.IridescenceIOR = 0

	store := storage.NewMemStore()
	if err := storage.Save(store, "material", saved); err != nil {
		t.Fatalf("Save: %v", err)
	}
	var m Material
	if err := storage.Load(store, "material", &m); err != nil {
		t.Fatalf("Load: %v", err)
	}

	p := NewPanel()
	p.Load(m)
	if !nearVec(p.Material.Color, saved.Color) {
		t.Errorf("color = %v, want %v", p.Material.Color, saved.Color)
	}
	if got := p.Binding(Metallic).Display; got != "0.90" {
		t.Errorf("metallic display = %q", got)
	}
	if p.Material.IridescenceIOR != DefaultIridescenceIOR {
		t.Errorf("iridescence IOR = %v", p.Material.IridescenceIOR)
	}
}

func TestPanelLoadNormalMap(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	p := NewPanel()
	if err := p.LoadNormalMap(buf.Bytes()); err != nil {
		t.Fatalf("LoadNormalMap: %v", err)
	}
	if p.NormalMap == nil {
		t.Fatal("normal map not set")
	}
	if err := p.LoadNormalMap([]byte("nope")); err == nil {
		t.Error("garbage decoded")
	}
	if p.NormalMap == nil {
		t.Error("failed load dropped the previous map")
	}
	if err := p.LoadNormalMap(nil); err != nil || p.NormalMap != nil {
		t.Errorf("clear: err=%v map=%v", err, p.NormalMap)
	}
}
