package mesh

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/polymesh/pkg/math"
)

func v3(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func vecNear(a, b math.Vec3, eps float32) bool {
	return near(a.X, b.X, eps) && near(a.Y, b.Y, eps) && near(a.Z, b.Z, eps)
}

// buildMesh creates a mesh from positions and polygon corner lists. Edges
// are derived in first-seen order.
func buildMesh(cos []math.Vec3, polys [][]uint32) *Mesh {
	m := &Mesh{}
	for _, co := range cos {
		m.Verts = append(m.Verts, Vertex{Co: co})
	}

	eh := NewEdgeHash[uint32](0)
	for _, p := range polys {
		start := len(m.Loops)
		for i, v := range p {
			next := p[(i+1)%len(p)]
			if eh.Insert(v, next, uint32(len(m.Edges))) {
				m.Edges = append(m.Edges, Edge{V1: v, V2: next})
			}
			e, _ := eh.Lookup(v, next)
			m.Loops = append(m.Loops, Loop{V: v, E: e})
		}
		m.Polys = append(m.Polys, Polygon{LoopStart: start, TotLoop: len(p)})
	}
	return m
}

// unitCube returns the [0,1]^3 cube with outward facing quads.
func unitCube() *Mesh {
	return buildMesh([]math.Vec3{
		v3(0, 0, 0), v3(1, 0, 0), v3(1, 1, 0), v3(0, 1, 0),
		v3(0, 0, 1), v3(1, 0, 1), v3(1, 1, 1), v3(0, 1, 1),
	}, [][]uint32{
		{0, 3, 2, 1},
		{4, 5, 6, 7},
		{0, 1, 5, 4},
		{2, 3, 7, 6},
		{0, 4, 7, 3},
		{1, 2, 6, 5},
	})
}

// checkLoopEdges verifies that every loop's edge joins its vertex and the
// next corner's vertex.
func checkLoopEdges(t *testing.T, m *Mesh) {
	t.Helper()
	for pi := range m.Polys {
		ls := m.PolyLoops(pi)
		for i, l := range ls {
			next := ls[(i+1)%len(ls)].V
			e := m.Edges[l.E]
			if MakeEdgeKey(e.V1, e.V2) != MakeEdgeKey(l.V, next) {
				t.Errorf("poly %d loop %d: edge %d = (%d, %d), want (%d, %d)",
					pi, i, l.E, e.V1, e.V2, l.V, next)
			}
		}
	}
}

func TestMeshString(t *testing.T) {
	m := unitCube()
	want := "mesh(verts=8 edges=12 loops=24 polys=6)"
	if got := m.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	checkLoopEdges(t, m)
}
