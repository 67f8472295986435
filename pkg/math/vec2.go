// Package math provides the small 2D vector toolkit shared by the tank and cursor effects.
package math

import "github.com/chewxy/math32"

// Pi is math32.Pi, re-exported so callers don't need both packages.
const Pi = math32.Pi

// TwoPi is a full turn in radians.
const TwoPi = 2 * math32.Pi

// Vec2 is a 2D vector in screen space (Y grows downward).
type Vec2 struct {
	X, Y float32
}

// FromAngle returns the unit vector pointing at angle (radians).
func FromAngle(angle float32) Vec2 {
	return Vec2{math32.Cos(angle), math32.Sin(angle)}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector, or the zero vector for a zero input.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// Lerp moves v toward target by fraction t: v + (target-v)*t.
func (v Vec2) Lerp(target Vec2, t float32) Vec2 {
	return v.Add(target.Sub(v).Scale(t))
}

// Clamp limits x to [lo, hi]. When lo > hi the lower bound wins.
func Clamp(x, lo, hi float32) float32 {
	if x > hi {
		x = hi
	}
	if x < lo {
		x = lo
	}
	return x
}

// WrapAngle maps any angle into [0, 2π).
func WrapAngle(a float32) float32 {
	a = math32.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// A tiny negative angle rounds up to a full turn.
	if a >= TwoPi {
		a = 0
	}
	return a
}

// AngleDiff returns the smallest signed difference a-b in (-π, π].
func AngleDiff(a, b float32) float32 {
	d := WrapAngle(a - b)
	if d > Pi {
		d -= TwoPi
	}
	return d
}
