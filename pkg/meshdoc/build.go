package meshdoc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/polymesh/pkg/math"
	"github.com/Faultbox/polymesh/pkg/mesh"
)

// defaultUVName names the UV layer built from legacy face UVs.
const defaultUVName = "UVMap"

// defaultColorName names the color layer built from legacy face colors.
const defaultColorName = "Col"

// Load reads the document at path and builds its mesh.
func Load(path string, log *zap.Logger) (*mesh.Mesh, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Build(log)
}

// Build creates a mesh from the document. Polygon edges missing from the
// edge list are added; legacy faces are converted to polygons, deriving the
// edge list first when the document has none.
func (d *Document) Build(log *zap.Logger) (*mesh.Mesh, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(d.Vertices) == 0 {
		return nil, ErrEmptyDocument
	}
	if len(d.Polygons) > 0 && len(d.Faces) > 0 {
		return nil, ErrMixedTopology
	}

	m := &mesh.Mesh{Verts: make([]mesh.Vertex, len(d.Vertices))}
	for i, co := range d.Vertices {
		if len(co) != 3 {
			return nil, fmt.Errorf("%w: vertex %d has %d", ErrComponentCount, i, len(co))
		}
		m.Verts[i].Co = math.Vec3{X: co[0], Y: co[1], Z: co[2]}
	}

	for i, e := range d.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("%w: edge %d has %d", ErrComponentCount, i, len(e))
		}
		if err := checkVerts(e, len(m.Verts)); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		m.Edges = append(m.Edges, mesh.Edge{V1: e[0], V2: e[1]})
	}

	var err error
	if len(d.Faces) > 0 {
		err = d.buildFaces(m, log)
	} else {
		err = d.buildPolygons(m)
	}
	if err != nil {
		return nil, err
	}

	if err := d.buildLoopLayers(m); err != nil {
		return nil, err
	}
	if err := d.applyFlags(m); err != nil {
		return nil, err
	}

	log.Debug("built mesh from document", zap.Stringer("mesh", m))
	return m, nil
}

func checkVerts(verts []uint32, totvert int) error {
	for _, v := range verts {
		if int(v) >= totvert {
			return fmt.Errorf("%w: vertex %d of %d", ErrInvalidIndex, v, totvert)
		}
	}
	return nil
}

func (d *Document) buildPolygons(m *mesh.Mesh) error {
	eh := mesh.EdgeHashFromEdges(m.Edges)
	for i, p := range d.Polygons {
		if len(p.Verts) < 3 {
			return fmt.Errorf("%w: polygon %d", ErrPolygonTooSmall, i)
		}
		if err := checkVerts(p.Verts, len(m.Verts)); err != nil {
			return fmt.Errorf("polygon %d: %w", i, err)
		}

		mp := mesh.Polygon{LoopStart: len(m.Loops), TotLoop: len(p.Verts), MatNr: p.Material}
		if p.Smooth {
			mp.Flag |= mesh.PolySmooth
		}
		for j, v := range p.Verts {
			next := p.Verts[(j+1)%len(p.Verts)]
			e, ok := eh.Lookup(v, next)
			if !ok {
				e = uint32(len(m.Edges))
				eh.Insert(v, next, e)
				m.Edges = append(m.Edges, mesh.Edge{V1: v, V2: next})
			}
			m.Loops = append(m.Loops, mesh.Loop{V: v, E: e})
		}
		m.Polys = append(m.Polys, mp)
	}
	return nil
}

func (d *Document) buildFaces(m *mesh.Mesh, log *zap.Logger) error {
	faces := make([]mesh.LegacyFace, len(d.Faces))
	var uvs []mesh.FaceUV
	var cols []mesh.FaceColor
	for _, f := range d.Faces {
		if f.UV != nil && uvs == nil {
			uvs = make([]mesh.FaceUV, len(d.Faces))
		}
		if f.Colors != nil && cols == nil {
			cols = make([]mesh.FaceColor, len(d.Faces))
		}
	}

	for i, f := range d.Faces {
		n := len(f.Verts)
		if n < 3 {
			return fmt.Errorf("%w: face %d", ErrPolygonTooSmall, i)
		}
		if n > 4 {
			return fmt.Errorf("%w: face %d has %d", ErrFaceCorners, i, n)
		}
		if err := checkVerts(f.Verts, len(m.Verts)); err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
		if f.UV != nil && len(f.UV) != n {
			return fmt.Errorf("%w: face %d has %d UVs for %d corners", ErrComponentCount, i, len(f.UV), n)
		}
		if f.Colors != nil && len(f.Colors) != n {
			return fmt.Errorf("%w: face %d has %d colors for %d corners", ErrComponentCount, i, len(f.Colors), n)
		}

		// A zero fourth vertex would read as a triangle; rotate the quad so
		// it is stored elsewhere.
		order := [4]int{0, 1, 2, 3}
		if n == 4 && f.Verts[3] == 0 {
			order = [4]int{2, 3, 0, 1}
		}

		var vs [4]uint32
		for c := 0; c < n; c++ {
			src := order[c]
			vs[c] = f.Verts[src]
			if f.UV != nil {
				uv := f.UV[src]
				if len(uv) != 2 {
					return fmt.Errorf("%w: face %d UV %d has %d", ErrComponentCount, i, src, len(uv))
				}
				uvs[i][c] = math.Vec2{X: uv[0], Y: uv[1]}
			}
			if f.Colors != nil {
				col := f.Colors[src]
				if len(col) != 4 {
					return fmt.Errorf("%w: face %d color %d has %d", ErrComponentCount, i, src, len(col))
				}
				// Legacy colors keep red and blue swapped.
				cols[i][c] = mesh.LegacyColor{
					R: toByte(col[2]), G: toByte(col[1]), B: toByte(col[0]), A: toByte(col[3]),
				}
			}
		}

		faces[i] = mesh.LegacyFace{V1: vs[0], V2: vs[1], V3: vs[2], V4: vs[3], MatNr: f.Material}
		if f.Smooth {
			faces[i].Flag |= mesh.PolySmooth
		}
	}

	if len(m.Edges) == 0 {
		m.Edges = faceEdges(faces)
	}

	m.LegacyFaces = faces
	if uvs != nil {
		m.FaceData.Add(mesh.NewLayer(mesh.LayerFaceUV, defaultUVName, uvs))
	}
	if cols != nil {
		m.FaceData.Add(mesh.NewLayer(mesh.LayerFaceColor, defaultColorName, cols))
	}

	if err := m.UpgradeLegacyFaces(nil, log); err != nil {
		return err
	}
	m.LegacyFaces = nil
	m.FaceData.Free()
	return nil
}

// faceEdges derives the edge list of legacy faces in first-seen order.
func faceEdges(faces []mesh.LegacyFace) []mesh.Edge {
	var edges []mesh.Edge
	eh := mesh.NewEdgeHash[struct{}](len(faces) * 2)
	for i := range faces {
		f := &faces[i]
		vs := [4]uint32{f.V1, f.V2, f.V3, f.V4}
		n := f.Corners()
		for c := 0; c < n; c++ {
			a, b := vs[c], vs[(c+1)%n]
			if eh.Insert(a, b, struct{}{}) {
				edges = append(edges, mesh.Edge{V1: a, V2: b})
			}
		}
	}
	return edges
}

func (d *Document) buildLoopLayers(m *mesh.Mesh) error {
	for _, l := range d.UVLayers {
		if len(l.UVs) != len(m.Loops) {
			return fmt.Errorf("%w: uv layer %q has %d of %d", ErrLayerSize, l.Name, len(l.UVs), len(m.Loops))
		}
		uvs := make([]math.Vec2, len(l.UVs))
		for i, uv := range l.UVs {
			if len(uv) != 2 {
				return fmt.Errorf("%w: uv layer %q entry %d has %d", ErrComponentCount, l.Name, i, len(uv))
			}
			uvs[i] = math.Vec2{X: uv[0], Y: uv[1]}
		}
		m.LoopData.Add(mesh.NewLayer(mesh.LayerUV, l.Name, uvs))
	}

	for _, l := range d.ColorLayers {
		if len(l.Colors) != len(m.Loops) {
			return fmt.Errorf("%w: color layer %q has %d of %d", ErrLayerSize, l.Name, len(l.Colors), len(m.Loops))
		}
		cols := make([]mesh.LoopColor, len(l.Colors))
		for i, c := range l.Colors {
			if len(c) != 4 {
				return fmt.Errorf("%w: color layer %q entry %d has %d", ErrComponentCount, l.Name, i, len(c))
			}
			cols[i] = mesh.LoopColor{R: toByte(c[0]), G: toByte(c[1]), B: toByte(c[2]), A: toByte(c[3])}
		}
		m.LoopData.Add(mesh.NewLayer(mesh.LayerColor, l.Name, cols))
	}
	return nil
}

func (d *Document) applyFlags(m *mesh.Mesh) error {
	setVerts := func(idx []uint32, flag mesh.Flag) error {
		if err := checkVerts(idx, len(m.Verts)); err != nil {
			return err
		}
		for _, v := range idx {
			m.Verts[v].Flag |= flag
		}
		return nil
	}
	setPolys := func(idx []int, flag mesh.PolyFlag) error {
		for _, p := range idx {
			if p < 0 || p >= len(m.Polys) {
				return fmt.Errorf("%w: polygon %d of %d", ErrInvalidIndex, p, len(m.Polys))
			}
			m.Polys[p].Flag |= flag
		}
		return nil
	}

	if err := setVerts(d.HiddenVertices, mesh.FlagHide); err != nil {
		return fmt.Errorf("hidden vertices: %w", err)
	}
	if err := setVerts(d.SelectedVertices, mesh.FlagSelect); err != nil {
		return fmt.Errorf("selected vertices: %w", err)
	}
	if err := setPolys(d.HiddenPolygons, mesh.PolyHide); err != nil {
		return fmt.Errorf("hidden polygons: %w", err)
	}
	if err := setPolys(d.SelectedPolygons, mesh.PolySelect); err != nil {
		return fmt.Errorf("selected polygons: %w", err)
	}
	return nil
}

func toByte(v int) uint8 {
	return uint8(max(0, min(255, v)))
}
