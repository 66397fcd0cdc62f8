// Package inspect builds summary reports of meshes and applies named
// kernel edits to them.
package inspect

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"github.com/Faultbox/polymesh/internal/config"
	"github.com/Faultbox/polymesh/internal/logger"
	"github.com/Faultbox/polymesh/pkg/math"
	"github.com/Faultbox/polymesh/pkg/mesh"
)

// ErrUnknownCenter is returned for a center estimator name Build does not
// know.
var ErrUnknownCenter = errors.New("unknown center estimator")

// Vec is a vector as written in reports.
type Vec [3]float32

func vec(v math.Vec3) Vec { return Vec{v.X, v.Y, v.Z} }

// Options controls what Build computes.
type Options struct {
	Center     string // one of the config.Center* names
	PerPolygon bool
	Log        *zap.Logger // nil uses the global logger
}

// Report summarizes a mesh.
type Report struct {
	Verts       int `yaml:"verts"`
	Edges       int `yaml:"edges"`
	Loops       int `yaml:"loops"`
	Polys       int `yaml:"polys"`
	LegacyFaces int `yaml:"legacy_faces,omitempty"`

	Triangles int `yaml:"triangles"`
	Quads     int `yaml:"quads"`
	Ngons     int `yaml:"ngons"`

	// LooseEdges counts edges no polygon uses, BoundaryEdges those used by
	// one polygon and NonManifoldEdges those used by more than two.
	LooseEdges       int `yaml:"loose_edges"`
	BoundaryEdges    int `yaml:"boundary_edges"`
	NonManifoldEdges int `yaml:"non_manifold_edges"`
	DuplicateEdges   int `yaml:"duplicate_edges"`

	// EdgePairs counts distinct vertex pairs joined by polygon sides.
	EdgePairs int `yaml:"edge_pairs"`

	HiddenVerts   int `yaml:"hidden_verts"`
	SelectedVerts int `yaml:"selected_verts"`
	HiddenPolys   int `yaml:"hidden_polys"`
	SelectedPolys int `yaml:"selected_polys"`

	Area      float32 `yaml:"area"`
	BoundsMin Vec     `yaml:"bounds_min,flow"`
	BoundsMax Vec     `yaml:"bounds_max,flow"`

	CenterMode string          `yaml:"center_mode"`
	Center     Vec             `yaml:"center,flow"`
	Centers    map[string]Vec  `yaml:"centers,flow"`
	Volume     *VolumeReport   `yaml:"volume,omitempty"`
	Polygons   []PolygonReport `yaml:"polygons,omitempty"`
}

// VolumeReport holds the enclosed volume of a closed mesh.
type VolumeReport struct {
	Volume   float32 `yaml:"volume"`
	Centroid Vec     `yaml:"centroid,flow"`
}

// PolygonReport holds per-polygon geometry.
type PolygonReport struct {
	Index   int       `yaml:"index"`
	Corners int       `yaml:"corners"`
	Normal  Vec       `yaml:"normal,flow"`
	Center  Vec       `yaml:"center,flow"`
	Area    float32   `yaml:"area"`
	UVArea  *float32  `yaml:"uv_area,omitempty"`
	Angles  []float32 `yaml:"angles,flow"` // degrees
}

type centerFunc func(m *mesh.Mesh) (math.Vec3, bool)

var centers = map[string]centerFunc{
	config.CenterMedian:      (*mesh.Mesh).CenterMedian,
	config.CenterMedianPolys: (*mesh.Mesh).CenterMedianFromPolys,
	config.CenterBounds:      (*mesh.Mesh).CenterBounds,
	config.CenterSurface:     (*mesh.Mesh).CenterOfSurface,
	config.CenterVolume:      (*mesh.Mesh).CenterOfVolume,
}

// Build computes a report for m. Centers that do not apply to the mesh
// (for example polygon based ones on a mesh without polygons) are left out
// of Centers.
func Build(m *mesh.Mesh, opts Options) (*Report, error) {
	log := opts.Log
	if log == nil {
		log = logger.Named("inspect")
	}
	mode := opts.Center
	if mode == "" {
		mode = config.CenterMedian
	}
	primary, ok := centers[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCenter, mode)
	}

	r := &Report{
		Verts:       len(m.Verts),
		Edges:       len(m.Edges),
		Loops:       len(m.Loops),
		Polys:       len(m.Polys),
		LegacyFaces: len(m.LegacyFaces),
		Area:        m.Area(),
		CenterMode:  mode,
		Centers:     make(map[string]Vec, len(centers)),
	}

	for i := range m.Verts {
		if m.Verts[i].Hidden() {
			r.HiddenVerts++
		}
		if m.Verts[i].Selected() {
			r.SelectedVerts++
		}
	}

	used := bitset.New(uint(len(m.Edges)))
	pairs := mesh.NewEdgeHash[struct{}](len(m.Edges))
	edgeUse := make([]int, len(m.Edges))
	for i := range m.Polys {
		p := &m.Polys[i]
		switch {
		case p.TotLoop == 3:
			r.Triangles++
		case p.TotLoop == 4:
			r.Quads++
		default:
			r.Ngons++
		}
		if p.Hidden() {
			r.HiddenPolys++
		}
		if p.Selected() {
			r.SelectedPolys++
		}
		mesh.InsertPolygonEdgeBits(used, p, m.Loops)
		mesh.InsertPolygonEdges(pairs, p, m.Loops)
		for _, l := range m.PolyLoops(i) {
			edgeUse[l.E]++
		}
	}
	r.LooseEdges = len(m.Edges) - int(used.Count())
	r.EdgePairs = pairs.Len()
	for _, n := range edgeUse {
		switch {
		case n == 1:
			r.BoundaryEdges++
		case n > 2:
			r.NonManifoldEdges++
		}
	}

	seen := mesh.NewEdgeHash[struct{}](len(m.Edges))
	for _, e := range m.Edges {
		if !seen.Insert(e.V1, e.V2, struct{}{}) {
			r.DuplicateEdges++
		}
	}

	if lo, hi, ok := m.MinMax(); ok {
		r.BoundsMin, r.BoundsMax = vec(lo), vec(hi)
	}

	for name, fn := range centers {
		if c, ok := fn(m); ok {
			r.Centers[name] = vec(c)
		}
	}
	c, ok := primary(m)
	if !ok {
		log.Debug("center not available", zap.String("mode", mode))
	}
	r.Center = vec(c)

	// Volume is only meaningful for a closed surface.
	if vol, cent, ok := m.CalcVolume(); ok && r.BoundaryEdges == 0 && r.NonManifoldEdges == 0 {
		r.Volume = &VolumeReport{Volume: vol, Centroid: vec(cent)}
	}

	if opts.PerPolygon {
		r.Polygons = polygonReports(m)
	}

	log.Debug("built report",
		zap.Int("polys", r.Polys),
		zap.Float32("area", r.Area),
		zap.String("center_mode", mode))
	return r, nil
}

func polygonReports(m *mesh.Mesh) []PolygonReport {
	uvs := mesh.LayerData[math.Vec2](&m.LoopData, mesh.LayerUV, m.LoopData.Active(mesh.LayerUV))

	out := make([]PolygonReport, len(m.Polys))
	for i := range m.Polys {
		p := &m.Polys[i]
		pr := PolygonReport{
			Index:   i,
			Corners: p.TotLoop,
			Normal:  vec(mesh.PolyNormal(p, m.Loops, m.Verts)),
			Center:  vec(mesh.PolyCenter(p, m.Loops, m.Verts)),
			Area:    mesh.PolyArea(p, m.Loops, m.Verts),
			Angles:  make([]float32, p.TotLoop),
		}
		mesh.PolyAngles(p, m.Loops, m.Verts, pr.Angles)
		for j := range pr.Angles {
			pr.Angles[j] *= 180 / gomath.Pi
		}
		if uvs != nil {
			a := mesh.PolyUVArea(p, uvs)
			pr.UVArea = &a
		}
		out[i] = pr
	}
	return out
}
