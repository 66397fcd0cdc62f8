package mesh

import (
	"github.com/Faultbox/polymesh/pkg/math"
)

// MinMax returns the axis-aligned bounds of all vertices. ok is false for a
// mesh without vertices.
func (m *Mesh) MinMax() (lo, hi math.Vec3, ok bool) {
	if len(m.Verts) == 0 {
		return lo, hi, false
	}
	lo, hi = m.Verts[0].Co, m.Verts[0].Co
	for i := 1; i < len(m.Verts); i++ {
		lo = lo.Min(m.Verts[i].Co)
		hi = hi.Max(m.Verts[i].Co)
	}
	return lo, hi, true
}

// CenterMedian returns the unweighted mean of all vertex positions.
func (m *Mesh) CenterMedian() (math.Vec3, bool) {
	var cent math.Vec3
	for i := range m.Verts {
		cent = cent.Add(m.Verts[i].Co)
	}
	// Skip the division for an empty mesh so the result stays zero, not NaN.
	if len(m.Verts) != 0 {
		cent = cent.Scale(1.0 / float32(len(m.Verts)))
	}
	return cent, len(m.Verts) != 0
}

// CenterMedianFromPolys returns the mean over every polygon corner's vertex
// position, so polygons count by corner number rather than by area.
func (m *Mesh) CenterMedianFromPolys() (math.Vec3, bool) {
	var cent math.Vec3
	tot := 0
	for i := range m.Polys {
		p := &m.Polys[i]
		for j := p.LoopStart; j < p.LoopEnd(); j++ {
			cent = cent.Add(m.Verts[m.Loops[j].V].Co)
		}
		tot += p.TotLoop
	}
	if len(m.Polys) != 0 && tot != 0 {
		cent = cent.Scale(1.0 / float32(tot))
	}
	return cent, len(m.Polys) != 0
}

// CenterBounds returns the center of the bounding box.
func (m *Mesh) CenterBounds() (math.Vec3, bool) {
	lo, hi, ok := m.MinMax()
	if !ok {
		return math.Vec3{}, false
	}
	return math.Mid2(lo, hi), true
}

// CenterOfSurface returns the area-weighted centroid of the surface. When
// zero-area polygons make the result non-finite it falls back to
// CenterMedian.
func (m *Mesh) CenterOfSurface() (math.Vec3, bool) {
	var cent math.Vec3
	var totalArea float32
	for i := range m.Polys {
		polyCent, area := polyAreaCentroid(&m.Polys[i], m.Loops, m.Verts)
		cent = cent.Madd(polyCent, area)
		totalArea += area
	}
	if len(m.Polys) != 0 {
		cent = cent.Scale(1.0 / totalArea)
	}

	if !cent.IsFinite() {
		return m.CenterMedian()
	}
	return cent, len(m.Polys) != 0
}

// CenterOfVolume returns the centroid of the solid bounded by the polygons.
// Accumulation happens relative to CenterMedianFromPolys, since the
// tetrahedron volumes lose precision far from the origin. Falls back to
// that reference center when the volume is zero or the result non-finite,
// which happens for non-manifold input.
func (m *Mesh) CenterOfVolume() (math.Vec3, bool) {
	ref, refOK := m.CenterMedianFromPolys()

	var cent math.Vec3
	var totalVolume float32
	for i := range m.Polys {
		polyCent, vol := polyVolumeCentroid(&m.Polys[i], m.Loops, m.Verts, ref)
		// polyCent is already volume weighted.
		cent = cent.Add(polyCent)
		totalVolume += vol
	}
	if totalVolume != 0 {
		// Weights are 6x the volume and sums are 4x the centroid; the
		// factors cancel to 1/4.
		cent = cent.Scale(0.25 / totalVolume)
	}

	if totalVolume == 0 || !cent.IsFinite() {
		return ref, refOK
	}
	return cent.Add(ref), len(m.Polys) != 0
}

// polyAreaCentroid fan-triangulates p from its first corner and returns the
// area-weighted centroid and the signed total area relative to the polygon
// normal. Results are wrong for non-planar polygons.
func polyAreaCentroid(p *Polygon, loops []Loop, verts []Vertex) (math.Vec3, float32) {
	var cent math.Vec3
	if p.TotLoop < 3 {
		return cent, 0
	}

	ls := loops[p.LoopStart:p.LoopEnd()]
	normal := PolyNormal(p, loops, verts)
	v1 := verts[ls[0].V].Co
	v2 := verts[ls[1].V].Co

	var totalArea float32
	for i := 2; i < len(ls); i++ {
		v3 := verts[ls[i].V].Co
		triArea := math.AreaTriSigned(v1, v2, v3, normal)
		totalArea += triArea
		cent = cent.Madd(math.Mid3(v1, v2, v3), triArea)
		v2 = v3
	}
	return cent.Scale(1.0 / totalArea), totalArea
}

// polyVolumeCentroid fan-triangulates p relative to ref and returns the sum
// of 6x-volume weighted corner sums, together with the summed 6x signed
// tetrahedron volumes.
func polyVolumeCentroid(p *Polygon, loops []Loop, verts []Vertex, ref math.Vec3) (math.Vec3, float32) {
	var cent math.Vec3
	if p.TotLoop < 3 {
		return cent, 0
	}

	ls := loops[p.LoopStart:p.LoopEnd()]
	pivot := verts[ls[0].V].Co.Sub(ref)
	step1 := verts[ls[1].V].Co.Sub(ref)

	var totalVolume float32
	for i := 2; i < len(ls); i++ {
		step2 := verts[ls[i].V].Co.Sub(ref)
		vol := math.VolumeTriTetraSigned6x(pivot, step1, step2)
		totalVolume += vol
		// The tetrahedron centroid is the mean of its four corners, one of
		// them the origin; the 1/4 is applied once by the caller.
		cent = cent.Madd(pivot.Add(step1).Add(step2), vol)
		step1 = step2
	}
	return cent, totalVolume
}
