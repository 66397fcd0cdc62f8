package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NormalTri returns the unit normal of triangle (a, b, c) and the length of
// the unnormalized cross product. A degenerate triangle returns a zero vector.
func NormalTri(a, b, c Vec3) (Vec3, float32) {
	n1 := a.Sub(b)
	n2 := b.Sub(c)
	return n1.Cross(n2).NormalizeLen()
}

// NormalQuad returns the unit normal of quad (a, b, c, d) computed from its
// diagonals, and the length of the unnormalized cross product.
func NormalQuad(a, b, c, d Vec3) (Vec3, float32) {
	n1 := a.Sub(c)
	n2 := b.Sub(d)
	return n1.Cross(n2).NormalizeLen()
}

// CrossTri returns the cross product (a-b) x (b-c).
func CrossTri(a, b, c Vec3) Vec3 {
	return a.Sub(b).Cross(b.Sub(c))
}

// AreaTri returns the unsigned area of triangle (a, b, c).
func AreaTri(a, b, c Vec3) float32 {
	return CrossTri(a, b, c).Length() * 0.5
}

// AreaTriSigned returns the area of triangle (a, b, c), negative when its
// winding opposes normal.
func AreaTriSigned(a, b, c, normal Vec3) float32 {
	n := CrossTri(a, b, c)
	area := n.Length() * 0.5
	if n.Dot(normal) < 0 {
		return -area
	}
	return area
}

// AddNewellCross accumulates one edge (prev -> curr) of Newell's method into n.
func AddNewellCross(n Vec3, prev, curr Vec3) Vec3 {
	n.X += (prev.Y - curr.Y) * (prev.Z + curr.Z)
	n.Y += (prev.Z - curr.Z) * (prev.X + curr.X)
	n.Z += (prev.X - curr.X) * (prev.Y + curr.Y)
	return n
}

// CrossPoly returns the Newell normal of a polygon, scaled by twice its area.
func CrossPoly(verts []Vec3) Vec3 {
	var n Vec3
	if len(verts) == 0 {
		return n
	}
	prev := verts[len(verts)-1]
	for _, curr := range verts {
		n = AddNewellCross(n, prev, curr)
		prev = curr
	}
	return n
}

// AreaPoly3 returns the area of a (roughly planar) 3D polygon.
// Non-planar input gives an approximation.
func AreaPoly3(verts []Vec3) float32 {
	return CrossPoly(verts).Length() * 0.5
}

// VolumeTetraSigned returns the signed volume of the tetrahedron (a, b, c, d).
func VolumeTetraSigned(a, b, c, d Vec3) float32 {
	m0 := a.Sub(b)
	m1 := b.Sub(c)
	m2 := c.Sub(d)
	return m0.Dot(m1.Cross(m2)) / 6.0
}

// VolumeTriTetraSigned6x returns six times the signed volume of the
// tetrahedron formed by triangle (a, b, c) and the origin.
func VolumeTriTetraSigned6x(a, b, c Vec3) float32 {
	return a.Cross(b).Dot(c)
}

// AngleNormalized returns the angle between two unit vectors in radians.
// Uses the chord length rather than acos of the dot product so small and
// near-straight angles keep their precision.
func AngleNormalized(a, b Vec3) float32 {
	if a.Dot(b) >= 0 {
		return 2.0 * saasin(a.Distance(b)/2.0)
	}
	return float32(math.Pi) - 2.0*saasin(a.Distance(b.Neg())/2.0)
}

// OrthoBasis returns two unit vectors perpendicular to n and to each other.
func OrthoBasis(n Vec3) (Vec3, Vec3) {
	const eps = 1.1920929e-07
	f := n.X*n.X + n.Y*n.Y
	if f > eps {
		d := 1.0 / sqrtf(f)
		n1 := Vec3{n.Y * d, -n.X * d, 0}
		n2 := Vec3{-n.Z * n1.Y, n.Z * n1.X, n.X*n1.Y - n.Y*n1.X}
		return n1, n2
	}
	x := float32(1)
	if n.Z < 0 {
		x = -1
	}
	return Vec3{x, 0, 0}, Vec3{0, 1, 0}
}

// AxisDominantFrame returns the rotation taking normal onto +Z, as rows
// (tangent, bitangent, normal).
func AxisDominantFrame(normal Vec3) mgl32.Mat3 {
	n1, n2 := OrthoBasis(normal)
	return mgl32.Mat3FromRows(toMgl(n1), toMgl(n2), toMgl(normal))
}

// TransformPointByTri maps p from the space of the source triangle onto the
// target triangle. The in-plane part follows barycentric weights and the
// offset along the source normal is rescaled by the ratio of triangle sizes.
func TransformPointByTri(p Vec3, tar, src [3]Vec3) Vec3 {
	noTar, _ := NormalTri(tar[0], tar[1], tar[2])
	noSrc, _ := NormalTri(src[0], src[1], src[2])

	frame := AxisDominantFrame(noSrc)
	ptXY := fromMgl(frame.Mul3x1(toMgl(p)))
	var triXY [3]Vec3
	for i := range src {
		triXY[i] = fromMgl(frame.Mul3x1(toMgl(src[i])))
	}

	w := BarycentricWeights2(triXY[0].XY(), triXY[1].XY(), triXY[2].XY(), ptXY.XY())
	out := Interp3(tar[0], tar[1], tar[2], w)

	areaTar := sqrtf(AreaTri(tar[0], tar[1], tar[2]))
	areaSrc := sqrtf(AreaTri2(triXY[0].XY(), triXY[1].XY(), triXY[2].XY()))
	if areaSrc == 0 {
		return out
	}

	zOfs := ptXY.Z - triXY[0].Z
	return out.Madd(noTar, (zOfs/areaSrc)*areaTar)
}

// saasin is asin with the argument clamped to [-1, 1].
func saasin(x float32) float32 {
	if x <= -1 {
		return float32(-math.Pi / 2)
	}
	if x >= 1 {
		return float32(math.Pi / 2)
	}
	return float32(math.Asin(float64(x)))
}

func toMgl(v Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
