package mesh

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/Faultbox/polymesh/pkg/math"
)

// coordFn returns the position of a vertex index.
type coordFn func(v uint32) math.Vec3

func vertCoords(verts []Vertex) coordFn {
	return func(v uint32) math.Vec3 { return verts[v].Co }
}

func arrayCoords(cos []math.Vec3) coordFn {
	return func(v uint32) math.Vec3 { return cos[v] }
}

// PolyNormal returns the unit normal of p. Triangles and quads use direct
// formulas, larger polygons use Newell's method. Degenerate polygons get
// (0, 0, 1).
func PolyNormal(p *Polygon, loops []Loop, verts []Vertex) math.Vec3 {
	return polyNormal(p, loops, vertCoords(verts))
}

// PolyNormalCoords is PolyNormal evaluated against a separate position
// table indexed by vertex, such as deformed coordinates.
func PolyNormalCoords(p *Polygon, loops []Loop, cos []math.Vec3) math.Vec3 {
	return polyNormal(p, loops, arrayCoords(cos))
}

func polyNormal(p *Polygon, loops []Loop, co coordFn) math.Vec3 {
	ls := loops[p.LoopStart:p.LoopEnd()]

	var n math.Vec3
	var l float32
	switch {
	case p.TotLoop > 4:
		// Newell's method, starting from the last corner.
		prev := co(ls[len(ls)-1].V)
		for i := range ls {
			curr := co(ls[i].V)
			n = math.AddNewellCross(n, prev, curr)
			prev = curr
		}
		n, l = n.NormalizeLen()
	case p.TotLoop == 4:
		n, l = math.NormalQuad(co(ls[0].V), co(ls[1].V), co(ls[2].V), co(ls[3].V))
	case p.TotLoop == 3:
		n, l = math.NormalTri(co(ls[0].V), co(ls[1].V), co(ls[2].V))
	}
	if l == 0 {
		return math.Vec3{X: 0, Y: 0, Z: 1}
	}
	return n
}

// PolyCenter returns the mean of the polygon's corner positions.
func PolyCenter(p *Polygon, loops []Loop, verts []Vertex) math.Vec3 {
	return polyCenter(p, loops, vertCoords(verts))
}

// PolyCenterCoords is PolyCenter against a separate position table.
func PolyCenterCoords(p *Polygon, loops []Loop, cos []math.Vec3) math.Vec3 {
	return polyCenter(p, loops, arrayCoords(cos))
}

func polyCenter(p *Polygon, loops []Loop, co coordFn) math.Vec3 {
	ls := loops[p.LoopStart:p.LoopEnd()]
	switch p.TotLoop {
	case 0:
		return math.Vec3{}
	case 3:
		return math.Mid3(co(ls[0].V), co(ls[1].V), co(ls[2].V))
	case 4:
		return math.Mid4(co(ls[0].V), co(ls[1].V), co(ls[2].V), co(ls[3].V))
	}

	w := 1.0 / float32(p.TotLoop)
	var cent math.Vec3
	for i := range ls {
		cent = cent.Madd(co(ls[i].V), w)
	}
	return cent
}

// PolyArea returns the area of p. Anything but a triangle goes through the
// general polygon routine, which assumes the polygon is close to planar.
func PolyArea(p *Polygon, loops []Loop, verts []Vertex) float32 {
	ls := loops[p.LoopStart:p.LoopEnd()]
	if p.TotLoop == 3 {
		return math.AreaTri(verts[ls[0].V].Co, verts[ls[1].V].Co, verts[ls[2].V].Co)
	}

	cos := make([]math.Vec3, len(ls))
	for i := range ls {
		cos[i] = verts[ls[i].V].Co
	}
	return math.AreaPoly3(cos)
}

// PolyUVArea returns the area of p in UV space. uvs is indexed by loop.
func PolyUVArea(p *Polygon, uvs []math.Vec2) float32 {
	return math.AreaPoly2(uvs[p.LoopStart:p.LoopEnd()])
}

// PolyAngles fills angles[i] with the angle at corner i, measured between
// the normalized edge directions entering and leaving the corner. The loop
// run wraps around at both ends. angles must hold p.TotLoop values.
func PolyAngles(p *Polygon, loops []Loop, verts []Vertex, angles []float32) {
	ls := loops[p.LoopStart:p.LoopEnd()]
	n := len(ls)
	if n < 2 {
		return
	}

	co := func(i int) math.Vec3 { return verts[ls[i].V].Co }

	iThis := n - 1
	norPrev := co(iThis - 1).Sub(co(iThis)).Normalize()
	for iNext := 0; iNext < n; iNext++ {
		norNext := co(iThis).Sub(co(iNext)).Normalize()
		angles[iThis] = math.AngleNormalized(norPrev, norNext)

		norPrev = norNext
		iThis = iNext
	}
}

// Area returns the total surface area of all polygons.
func (m *Mesh) Area() float32 {
	var total float32
	for i := range m.Polys {
		total += PolyArea(&m.Polys[i], m.Loops, m.Verts)
	}
	return total
}

// InsertPolygonEdges adds every edge of p to eh, keyed by vertex pair.
// Existing entries are overwritten with the zero value.
func InsertPolygonEdges[V any](eh *EdgeHash[V], p *Polygon, loops []Loop) {
	ls := loops[p.LoopStart:p.LoopEnd()]
	if len(ls) == 0 {
		return
	}
	var zero V
	prev := ls[len(ls)-1].V
	for i := range ls {
		eh.Reinsert(prev, ls[i].V, zero)
		prev = ls[i].V
	}
}

// InsertPolygonEdgeBits sets the bit of every edge index used by p.
func InsertPolygonEdgeBits(bits *bitset.BitSet, p *Polygon, loops []Loop) {
	for _, l := range loops[p.LoopStart:p.LoopEnd()] {
		bits.Set(uint(l.E))
	}
}
