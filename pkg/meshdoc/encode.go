package meshdoc

import (
	"github.com/Faultbox/polymesh/pkg/math"
	"github.com/Faultbox/polymesh/pkg/mesh"
)

// FromMesh returns the document form of m. Loop UV and color layers are
// written by name; legacy faces are not written.
func FromMesh(m *mesh.Mesh) *Document {
	d := &Document{
		Vertices: make([][]float32, len(m.Verts)),
		Edges:    make([][]uint32, len(m.Edges)),
		Polygons: make([]Polygon, len(m.Polys)),
	}

	for i := range m.Verts {
		v := &m.Verts[i]
		d.Vertices[i] = []float32{v.Co.X, v.Co.Y, v.Co.Z}
		if v.Hidden() {
			d.HiddenVertices = append(d.HiddenVertices, uint32(i))
		}
		if v.Selected() {
			d.SelectedVertices = append(d.SelectedVertices, uint32(i))
		}
	}

	for i := range m.Edges {
		d.Edges[i] = []uint32{m.Edges[i].V1, m.Edges[i].V2}
	}

	for i := range m.Polys {
		p := &m.Polys[i]
		verts := make([]uint32, 0, p.TotLoop)
		for _, l := range m.PolyLoops(i) {
			verts = append(verts, l.V)
		}
		d.Polygons[i] = Polygon{
			Verts:    verts,
			Material: p.MatNr,
			Smooth:   p.Flag&mesh.PolySmooth != 0,
		}
		if p.Hidden() {
			d.HiddenPolygons = append(d.HiddenPolygons, i)
		}
		if p.Selected() {
			d.SelectedPolygons = append(d.SelectedPolygons, i)
		}
	}

	for k := 0; k < m.LoopData.Count(mesh.LayerUV); k++ {
		uvs := mesh.LayerData[math.Vec2](&m.LoopData, mesh.LayerUV, k)
		l := UVLayer{Name: m.LoopData.Layer(mesh.LayerUV, k).Name(), UVs: make([][]float32, len(uvs))}
		for i, uv := range uvs {
			l.UVs[i] = []float32{uv.X, uv.Y}
		}
		d.UVLayers = append(d.UVLayers, l)
	}

	for k := 0; k < m.LoopData.Count(mesh.LayerColor); k++ {
		cols := mesh.LayerData[mesh.LoopColor](&m.LoopData, mesh.LayerColor, k)
		l := ColorLayer{Name: m.LoopData.Layer(mesh.LayerColor, k).Name(), Colors: make([][]int, len(cols))}
		for i, c := range cols {
			l.Colors[i] = []int{int(c.R), int(c.G), int(c.B), int(c.A)}
		}
		d.ColorLayers = append(d.ColorLayers, l)
	}

	return d
}

// Save writes m to path as a YAML document.
func Save(path string, m *mesh.Mesh) error {
	return FromMesh(m).WriteFile(path)
}
