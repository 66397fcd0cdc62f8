// Package mesh is a polygon mesh evaluation kernel.
//
// A Mesh is stored as flat parallel arrays: vertices, edges, loops (polygon
// corners) and polygons. All relationships are integer indices into those
// arrays. The kernel derives geometry from them (normals, areas, centers,
// volume), converts legacy triangle/quad face lists into polygons and loops,
// flips polygon winding and propagates hide/select state.
//
// Nothing here is safe for concurrent use; callers own the arrays and must
// hold exclusive access for the duration of a call.
package mesh

import (
	"fmt"

	"github.com/Faultbox/polymesh/pkg/math"
)

// Flag holds vertex and edge state bits.
type Flag uint16

// Vertex and edge flags.
const (
	FlagSelect Flag = 1 << 0
	// FlagLegacyNgon marked edges of old fake n-gons. Conversion clears it
	// so the bit can be given a new meaning.
	FlagLegacyNgon Flag = 1 << 3
	FlagHide       Flag = 1 << 4
)

// PolyFlag holds polygon (and legacy face) state bits.
type PolyFlag uint8

// Polygon flags.
const (
	PolySmooth PolyFlag = 1 << 0
	PolySelect PolyFlag = 1 << 1
	PolyHide   PolyFlag = 1 << 4
)

// Vertex is a mesh point.
type Vertex struct {
	Co   math.Vec3
	Flag Flag
}

// Hidden reports whether the vertex is hidden.
func (v *Vertex) Hidden() bool { return v.Flag&FlagHide != 0 }

// Selected reports whether the vertex is selected.
func (v *Vertex) Selected() bool { return v.Flag&FlagSelect != 0 }

// Edge connects two vertices.
type Edge struct {
	V1, V2 uint32
	Flag   Flag
}

// Hidden reports whether the edge is hidden.
func (e *Edge) Hidden() bool { return e.Flag&FlagHide != 0 }

// Selected reports whether the edge is selected.
func (e *Edge) Selected() bool { return e.Flag&FlagSelect != 0 }

// Loop is one polygon corner: its vertex and the edge leading to the next
// corner in winding order.
type Loop struct {
	V uint32
	E uint32
}

// Polygon is a contiguous run of loops.
type Polygon struct {
	LoopStart int
	TotLoop   int
	MatNr     int16
	Flag      PolyFlag
}

// LoopEnd returns one past the polygon's last loop index.
func (p *Polygon) LoopEnd() int { return p.LoopStart + p.TotLoop }

// Hidden reports whether the polygon is hidden.
func (p *Polygon) Hidden() bool { return p.Flag&PolyHide != 0 }

// Selected reports whether the polygon is selected.
func (p *Polygon) Selected() bool { return p.Flag&PolySelect != 0 }

// LegacyFace is a pre-polygon triangle or quad. V4 == 0 marks a triangle;
// legacy quads never store vertex 0 in the fourth slot.
type LegacyFace struct {
	V1, V2, V3, V4 uint32
	MatNr          int16
	Flag           PolyFlag
}

// IsQuad reports whether the face has four corners.
func (f *LegacyFace) IsQuad() bool { return f.V4 != 0 }

// Corners returns the number of corners (3 or 4).
func (f *LegacyFace) Corners() int {
	if f.V4 != 0 {
		return 4
	}
	return 3
}

// LoopTri is one triangle of a triangulated surface, as three loop indices.
type LoopTri struct {
	Tri  [3]uint32
	Poly uint32
}

// Mesh owns the element arrays and their attribute data.
type Mesh struct {
	Verts []Vertex
	Edges []Edge
	Loops []Loop
	Polys []Polygon

	// LegacyFaces and FaceData are only populated for meshes that have not
	// been converted to polygons yet.
	LegacyFaces []LegacyFace

	VertData CustomData
	EdgeData CustomData
	FaceData CustomData
	LoopData CustomData
	PolyData CustomData
}

// String returns a short element count summary.
func (m *Mesh) String() string {
	return fmt.Sprintf("mesh(verts=%d edges=%d loops=%d polys=%d)",
		len(m.Verts), len(m.Edges), len(m.Loops), len(m.Polys))
}

// Coords returns a copy of all vertex positions.
func (m *Mesh) Coords() []math.Vec3 {
	cos := make([]math.Vec3, len(m.Verts))
	for i := range m.Verts {
		cos[i] = m.Verts[i].Co
	}
	return cos
}

// PolyLoops returns the loop run of polygon i.
func (m *Mesh) PolyLoops(i int) []Loop {
	p := &m.Polys[i]
	return m.Loops[p.LoopStart:p.LoopEnd()]
}
