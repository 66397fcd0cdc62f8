package math

// Vec2 is a 2D vector, used for UV coordinates and projected points.
type Vec2 struct {
	X, Y float32
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
	return sqrtf(v.X*v.X + v.Y*v.Y)
}

// CrossTri2 returns twice the signed area of the triangle (a, b, c).
func CrossTri2(a, b, c Vec2) float32 {
	return (a.X-b.X)*(b.Y-c.Y) + (a.Y-b.Y)*(c.X-b.X)
}

// AreaTri2 returns the unsigned area of a 2D triangle.
func AreaTri2(a, b, c Vec2) float32 {
	return absf(0.5 * CrossTri2(a, b, c))
}

// AreaPoly2 returns the unsigned area of a 2D polygon using the trapezium rule.
func AreaPoly2(verts []Vec2) float32 {
	if len(verts) < 3 {
		return 0
	}
	var cross float32
	prev := verts[len(verts)-1]
	for _, curr := range verts {
		cross += (curr.X - prev.X) * (curr.Y + prev.Y)
		prev = curr
	}
	return absf(0.5 * cross)
}

// BarycentricWeights2 returns the weights of p relative to triangle (a, b, c).
// A degenerate triangle yields equal weights.
func BarycentricWeights2(a, b, c, p Vec2) [3]float32 {
	w := [3]float32{
		CrossTri2(b, c, p),
		CrossTri2(c, a, p),
		CrossTri2(a, b, p),
	}
	wtot := w[0] + w[1] + w[2]
	if wtot != 0 {
		inv := 1.0 / wtot
		return [3]float32{w[0] * inv, w[1] * inv, w[2] * inv}
	}
	return [3]float32{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
