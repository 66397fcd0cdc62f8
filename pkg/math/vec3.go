// Package math provides the float32 vector types and geometric primitives
// used by the mesh kernel.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Madd returns v + other*s.
func (v Vec3) Madd(other Vec3, s float32) Vec3 {
	return Vec3{v.X + other.X*s, v.Y + other.Y*s, v.Z + other.Z*s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return sqrtf(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude.
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	n, _ := v.NormalizeLen()
	return n
}

// NormalizeLen returns the unit vector and the length v had before
// normalizing. Vectors too short to normalize come back as zero with
// length 0, so callers can pick their own fallback.
func (v Vec3) NormalizeLen() (Vec3, float32) {
	d := v.LengthSquared()
	// Same cutoff as the C math library the kernel mirrors.
	if d > 1.0e-35 {
		d = sqrtf(d)
		return v.Scale(1.0 / d), d
	}
	return Vec3{}, 0
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// At returns the component at index i (0=X, 1=Y, 2=Z).
func (v Vec3) At(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// XY returns the XY components as Vec2.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// Mid2 returns the midpoint of a and b.
func Mid2(a, b Vec3) Vec3 {
	return Vec3{(a.X + b.X) * 0.5, (a.Y + b.Y) * 0.5, (a.Z + b.Z) * 0.5}
}

// Mid3 returns the mean of three points.
func Mid3(a, b, c Vec3) Vec3 {
	return Vec3{
		(a.X + b.X + c.X) / 3.0,
		(a.Y + b.Y + c.Y) / 3.0,
		(a.Z + b.Z + c.Z) / 3.0,
	}
}

// Mid4 returns the mean of four points.
func Mid4(a, b, c, d Vec3) Vec3 {
	return Vec3{
		(a.X + b.X + c.X + d.X) / 4.0,
		(a.Y + b.Y + c.Y + d.Y) / 4.0,
		(a.Z + b.Z + c.Z + d.Z) / 4.0,
	}
}

// Interp3 returns a*w[0] + b*w[1] + c*w[2].
func Interp3(a, b, c Vec3, w [3]float32) Vec3 {
	return Vec3{
		a.X*w[0] + b.X*w[1] + c.X*w[2],
		a.Y*w[0] + b.Y*w[1] + c.Y*w[2],
		a.Z*w[0] + b.Z*w[1] + c.Z*w[2],
	}
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func isFinite(x float32) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
