package material

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Maps are optional texture inputs sampled over the surface UVs. Nil maps
// fall back to the material's constant values.
type Maps struct {
	Albedo    image.Image
	Normal    image.Image
	Roughness image.Image
	Metallic  image.Image
	AO        image.Image
	Height    image.Image

	DisplacementScale float32
}

// ShadeOptions configures a swatch render.
type ShadeOptions struct {
	Size        int
	Geometry    Geometry
	Lights      []Light
	Ambient     mgl32.Vec3
	IBL         bool
	Environment Environment
	NormalMap   image.Image
	Maps        Maps
	Background  color.NRGBA
	Exposure    float32 // Zero means 1.2
	Rotation    float32 // Extra yaw in radians
}

const (
	minRoughness = 0.04
	boxHalf      = 0.72
	cylRadius    = 0.8
	cylHalf      = 0.8
)

var viewDir = mgl32.Vec3{0, 0, 1}

// pose orients the object: m maps object space to view space.
type pose struct {
	m, inv mgl32.Mat3
}

// poseFor tilts the object toward the camera so three faces of the cube
// show, then turns it by yaw.
func poseFor(yaw float32) pose {
	m := mgl32.Rotate3DX(0.45).Mul3(mgl32.Rotate3DY(0.6 + yaw))
	return pose{m: m, inv: m.Transpose()}
}

// hit is a ray/object intersection in object space.
type hit struct {
	n       mgl32.Vec3
	u, v    float32
	tangent mgl32.Vec3
}

// Shade renders m on the selected geometry into a square image.
func Shade(m Material, opts ShadeOptions) *image.RGBA {
	size := opts.Size
	if size <= 0 {
		size = 256
	}
	exposure := opts.Exposure
	if exposure == 0 {
		exposure = 1.2
	}
	maps := opts.Maps
	if maps.Normal == nil {
		maps.Normal = opts.NormalMap
	}

	ps := poseFor(opts.Rotation)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	bg := color.RGBA{R: opts.Background.R, G: opts.Background.G, B: opts.Background.B, A: 255}
	half := float32(size) / 2
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x := (float32(px) + 0.5 - half) / half * 1.25
			y := (half - float32(py) - 0.5) / half * 1.25
			h, ok := intersect(ps, opts.Geometry, x, y)
			if !ok {
				img.SetRGBA(px, py, bg)
				continue
			}
			c := shadePoint(m, opts, maps, h)
			img.SetRGBA(px, py, color.RGBA{
				R: to8(encode(c[0], exposure)),
				G: to8(encode(c[1], exposure)),
				B: to8(encode(c[2], exposure)),
				A: 255,
			})
		}
	}
	return img
}

// intersect casts an orthographic ray through (x, y) toward -Z.
func intersect(ps pose, g Geometry, x, y float32) (hit, bool) {
	switch g {
	case Cube:
		return intersectBox(ps, x, y)
	case Cylinder:
		return intersectCylinder(ps, x, y)
	default:
		return intersectSphere(ps, x, y)
	}
}

func intersectSphere(ps pose, x, y float32) (hit, bool) {
	r2 := x*x + y*y
	if r2 > 1 {
		return hit{}, false
	}
	n := mgl32.Vec3{x, y, math32.Sqrt(1 - r2)}
	o := ps.inv.Mul3x1(n)
	u := 0.5 + math32.Atan2(o[2], o[0])/(2*math32.Pi)
	v := 0.5 - math32.Asin(mgl32.Clamp(o[1], -1, 1))/math32.Pi
	t := ps.m.Mul3x1(mgl32.Vec3{-o[2], 0, o[0]})
	return hit{n: n, u: u, v: v, tangent: t}, true
}

func intersectBox(ps pose, x, y float32) (hit, bool) {
	origin := ps.inv.Mul3x1(mgl32.Vec3{x, y, 4})
	dir := ps.inv.Mul3x1(mgl32.Vec3{0, 0, -1})

	tmin, tmax := float32(-math32.MaxFloat32), float32(math32.MaxFloat32)
	axis := -1
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < -boxHalf || origin[i] > boxHalf {
				return hit{}, false
			}
			continue
		}
		t1 := (-boxHalf - origin[i]) / dir[i]
		t2 := (boxHalf - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		if t2 < tmax {
			tmax = t2
		}
	}
	if tmax < tmin || tmax < 0 || axis < 0 {
		return hit{}, false
	}

	p := origin.Add(dir.Mul(tmin))
	var n, t mgl32.Vec3
	n[axis] = math32.Copysign(1, p[axis])
	a, b := (axis+1)%3, (axis+2)%3
	t[a] = 1
	return hit{
		n:       ps.m.Mul3x1(n),
		u:       (p[a]/boxHalf + 1) / 2,
		v:       (p[b]/boxHalf + 1) / 2,
		tangent: ps.m.Mul3x1(t),
	}, true
}

func intersectCylinder(ps pose, x, y float32) (hit, bool) {
	origin := ps.inv.Mul3x1(mgl32.Vec3{x, y, 4})
	dir := ps.inv.Mul3x1(mgl32.Vec3{0, 0, -1})

	best := float32(math32.MaxFloat32)
	var res hit
	found := false

	// Side
	a := dir[0]*dir[0] + dir[2]*dir[2]
	if a > 1e-6 {
		b := 2 * (origin[0]*dir[0] + origin[2]*dir[2])
		c := origin[0]*origin[0] + origin[2]*origin[2] - cylRadius*cylRadius
		disc := b*b - 4*a*c
		if disc >= 0 {
			t := (-b - math32.Sqrt(disc)) / (2 * a)
			p := origin.Add(dir.Mul(t))
			if t > 0 && math32.Abs(p[1]) <= cylHalf {
				best = t
				n := mgl32.Vec3{p[0], 0, p[2]}.Normalize()
				res = hit{
					n:       ps.m.Mul3x1(n),
					u:       0.5 + math32.Atan2(p[2], p[0])/(2*math32.Pi),
					v:       0.5 - p[1]/(2*cylHalf),
					tangent: ps.m.Mul3x1(mgl32.Vec3{-n[2], 0, n[0]}),
				}
				found = true
			}
		}
	}

	// Caps
	if dir[1] != 0 {
		for _, cy := range []float32{cylHalf, -cylHalf} {
			t := (cy - origin[1]) / dir[1]
			if t <= 0 || t >= best {
				continue
			}
			p := origin.Add(dir.Mul(t))
			if p[0]*p[0]+p[2]*p[2] > cylRadius*cylRadius {
				continue
			}
			best = t
			res = hit{
				n:       ps.m.Mul3x1(mgl32.Vec3{0, math32.Copysign(1, cy), 0}),
				u:       (p[0]/cylRadius + 1) / 2,
				v:       (p[2]/cylRadius + 1) / 2,
				tangent: ps.m.Mul3x1(mgl32.Vec3{1, 0, 0}),
			}
			found = true
		}
	}
	return res, found
}

func shadePoint(m Material, opts ShadeOptions, maps Maps, h hit) mgl32.Vec3 {
	albedo := m.Color
	if maps.Albedo != nil {
		albedo = mulv(albedo, linearize(sample(maps.Albedo, h.u, h.v)))
	}
	rough := m.Roughness
	if maps.Roughness != nil {
		rough *= sample(maps.Roughness, h.u, h.v)[1]
	}
	metal := m.Metalness
	if maps.Metallic != nil {
		metal *= sample(maps.Metallic, h.u, h.v)[2]
	}
	ao := float32(1)
	if maps.AO != nil {
		ao = sample(maps.AO, h.u, h.v)[0]
	}
	rough = mgl32.Clamp(rough, minRoughness, 1)
	metal = mgl32.Clamp(metal, 0, 1)

	n := perturb(h, maps)
	v := viewDir
	nv := math32.Max(n.Dot(v), 1e-4)

	f0 := lerpv(splat(0.16*m.Reflectivity*m.Reflectivity), albedo, metal)
	if m.Iridescence > 0 {
		f0 = lerpv(f0, thinFilm(nv, m.IridescenceIOR), m.Iridescence)
	}
	diffuse := albedo.Mul(1 - metal)

	var out mgl32.Vec3
	for _, l := range opts.Lights {
		nl := n.Dot(l.Dir)
		if nl <= 0 {
			continue
		}
		radiance := l.Color.Mul(l.Intensity * nl)

		hv := l.Dir.Add(v).Normalize()
		nh := math32.Max(n.Dot(hv), 0)
		vh := math32.Max(v.Dot(hv), 0)

		f := fresnel(f0, vh)
		spec := f.Mul(ggx(nh, rough) * smith(nv, nl, rough) / (4*nv*nl + 1e-4))
		kd := mulv(splat(1).Sub(f), diffuse)
		c := kd.Add(spec.Mul(math32.Pi))

		if m.Sheen > 0 {
			rim := math32.Pow(1-nv, 3) * m.Sheen
			c = c.Add(lerpv(albedo, splat(1), 0.5).Mul(rim))
		}
		if m.Clearcoat > 0 {
			cr := mgl32.Clamp(m.ClearcoatRoughness, minRoughness, 1)
			fc := fresnel(splat(0.04), vh)[0] * m.Clearcoat
			coat := fc * ggx(nh, cr) * smith(nv, nl, cr) / (4*nv*nl + 1e-4)
			c = c.Mul(1 - fc).Add(splat(coat * math32.Pi))
		}
		out = out.Add(mulv(c, radiance))
	}

	var ambient mgl32.Vec3
	if opts.IBL {
		env := opts.Environment
		irradiance := hemisphere(env, n)
		r := reflect(v.Mul(-1), n)
		prefiltered := lerpv(envColor(env, r), irradiance, rough)
		fa := fresnelRoughness(f0, nv, rough)
		ambient = mulv(mulv(splat(1).Sub(fa), diffuse), irradiance).Add(mulv(fa, prefiltered))
		if m.Clearcoat > 0 {
			fc := fresnel(splat(0.04), nv)[0] * m.Clearcoat
			ambient = ambient.Mul(1 - fc).Add(envColor(env, r).Mul(fc))
		}
	} else {
		ambient = mulv(opts.Ambient, albedo)
	}
	out = out.Add(ambient.Mul(ao))

	if m.Transmission > 0 {
		var behind mgl32.Vec3
		if opts.IBL {
			behind = envColor(opts.Environment, v.Mul(-1))
		} else {
			bg := opts.Background
			behind = linearize(mgl32.Vec3{float32(bg.R) / 255, float32(bg.G) / 255, float32(bg.B) / 255})
		}
		t := m.Transmission * (1 - metal)
		out = lerpv(out, mulv(behind, albedo).Add(out.Mul(0.25)), t)
	}
	return out
}

// perturb applies the normal and height maps in tangent space.
func perturb(h hit, maps Maps) mgl32.Vec3 {
	n := h.n
	t := h.tangent.Sub(n.Mul(n.Dot(h.tangent)))
	if t.Len() < 1e-5 {
		return n
	}
	t = t.Normalize()
	b := n.Cross(t)

	if maps.Normal != nil {
		s := sample(maps.Normal, h.u, h.v)
		ts := mgl32.Vec3{s[0]*2 - 1, s[1]*2 - 1, s[2]*2 - 1}
		n = t.Mul(ts[0]).Add(b.Mul(ts[1])).Add(n.Mul(ts[2])).Normalize()
	}
	if maps.Height != nil && maps.DisplacementScale != 0 {
		const eps = 1.0 / 256
		h0 := sample(maps.Height, h.u, h.v)[0]
		du := sample(maps.Height, h.u+eps, h.v)[0] - h0
		dv := sample(maps.Height, h.u, h.v+eps)[0] - h0
		k := maps.DisplacementScale * 4
		n = n.Sub(t.Mul(du * k)).Sub(b.Mul(dv * k)).Normalize()
	}
	return n
}

func ggx(nh, rough float32) float32 {
	a := rough * rough
	a2 := a * a
	d := nh*nh*(a2-1) + 1
	return a2 / (math32.Pi * d * d)
}

func smith(nv, nl, rough float32) float32 {
	k := (rough + 1) * (rough + 1) / 8
	g1 := func(x float32) float32 { return x / (x*(1-k) + k) }
	return g1(nv) * g1(nl)
}

func fresnel(f0 mgl32.Vec3, cos float32) mgl32.Vec3 {
	w := math32.Pow(1-mgl32.Clamp(cos, 0, 1), 5)
	return f0.Add(splat(1).Sub(f0).Mul(w))
}

func fresnelRoughness(f0 mgl32.Vec3, cos, rough float32) mgl32.Vec3 {
	w := math32.Pow(1-mgl32.Clamp(cos, 0, 1), 5)
	var out mgl32.Vec3
	for i := range out {
		out[i] = f0[i] + (math32.Max(1-rough, f0[i])-f0[i])*w
	}
	return out
}

// thinFilm approximates the view dependent tint of a thin coating.
func thinFilm(nv, ior float32) mgl32.Vec3 {
	phase := 2 * ior * nv
	var out mgl32.Vec3
	for i := range out {
		out[i] = 0.5 + 0.5*math32.Cos(2*math32.Pi*(phase+float32(i)/3))
	}
	return out
}

func hemisphere(env Environment, n mgl32.Vec3) mgl32.Vec3 {
	return lerpv(env.Ground, env.Sky, 0.5+0.5*n[1])
}

func envColor(env Environment, d mgl32.Vec3) mgl32.Vec3 {
	if d[1] >= 0 {
		return lerpv(env.Horizon, env.Sky, math32.Sqrt(d[1]))
	}
	return lerpv(env.Horizon, env.Ground, math32.Sqrt(-d[1]))
}

func reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

// sample reads a texture with wrapping UVs.
func sample(img image.Image, u, v float32) mgl32.Vec3 {
	b := img.Bounds()
	if b.Empty() {
		return splat(1)
	}
	u -= math32.Floor(u)
	v -= math32.Floor(v)
	x := b.Min.X + int(u*float32(b.Dx()))%b.Dx()
	y := b.Min.Y + int(v*float32(b.Dy()))%b.Dy()
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// encode applies exposure, ACES filmic tone mapping and sRGB gamma.
func encode(x, exposure float32) float32 {
	x *= exposure
	x = (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
	return math32.Pow(mgl32.Clamp(x, 0, 1), 1/2.2)
}

func linearize(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Pow(c[0], 2.2), math32.Pow(c[1], 2.2), math32.Pow(c[2], 2.2)}
}

func splat(v float32) mgl32.Vec3 { return mgl32.Vec3{v, v, v} }

func mulv(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func lerpv(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
