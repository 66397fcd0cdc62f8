package mesh

import (
	gomath "math"

	"github.com/Faultbox/polymesh/pkg/math"
)

// FanLoopTris triangulates every polygon as a fan around its first corner.
// It is a stand-in for a real tessellation cache and is only exact for
// convex polygons.
func FanLoopTris(polys []Polygon) []LoopTri {
	n := 0
	for i := range polys {
		if polys[i].TotLoop >= 3 {
			n += polys[i].TotLoop - 2
		}
	}

	tris := make([]LoopTri, 0, n)
	for i := range polys {
		p := &polys[i]
		first := uint32(p.LoopStart)
		for j := p.LoopStart + 1; j+1 < p.LoopEnd(); j++ {
			tris = append(tris, LoopTri{
				Tri:  [3]uint32{first, uint32(j), uint32(j + 1)},
				Poly: uint32(i),
			})
		}
	}
	return tris
}

// triCentroid returns the area-weighted mean of the triangle corners.
func triCentroid(cos []math.Vec3, loops []Loop, tris []LoopTri) (math.Vec3, bool) {
	var cent math.Vec3
	if len(tris) == 0 {
		return cent, false
	}

	var totWeight float32
	for i := range tris {
		v1 := cos[loops[tris[i].Tri[0]].V]
		v2 := cos[loops[tris[i].Tri[1]].V]
		v3 := cos[loops[tris[i].Tri[2]].V]
		area := math.AreaTri(v1, v2, v3)
		cent = cent.Madd(v1, area).Madd(v2, area).Madd(v3, area)
		totWeight += area
	}
	if totWeight == 0 {
		return math.Vec3{}, false
	}
	return cent.Scale(1.0 / (3.0 * totWeight)), true
}

// CalcVolume returns the volume enclosed by a triangulated surface and its
// volume-weighted centroid. Tetrahedra are built against the surface
// centroid, so the accumulated signed volume may come out negative even for
// a valid mesh; the returned volume is its absolute value. ok is false when
// there are no triangles or they have no area, with both outputs zero.
func CalcVolume(cos []math.Vec3, loops []Loop, tris []LoopTri) (volume float32, center math.Vec3, ok bool) {
	ref, ok := triCentroid(cos, loops, tris)
	if !ok {
		return 0, math.Vec3{}, false
	}

	var totVol float32
	for i := range tris {
		v1 := cos[loops[tris[i].Tri[0]].V]
		v2 := cos[loops[tris[i].Tri[1]].V]
		v3 := cos[loops[tris[i].Tri[2]].V]

		vol := math.VolumeTetraSigned(ref, v1, v2, v3)
		totVol += vol
		// The 1/3 averaging factor is applied once at the end.
		center = center.Madd(v1, vol).Madd(v2, vol).Madd(v3, vol)
	}

	// Dividing by the signed total also flips the centroid back when the
	// sum came out negative.
	if totVol != 0 {
		center = center.Scale((1.0 / 3.0) / totVol)
	}
	return float32(gomath.Abs(float64(totVol))), center, true
}

// CalcVolume returns the enclosed volume and centroid of the mesh using a
// fan triangulation of its polygons.
func (m *Mesh) CalcVolume() (float32, math.Vec3, bool) {
	return CalcVolume(m.Coords(), m.Loops, FanLoopTris(m.Polys))
}
