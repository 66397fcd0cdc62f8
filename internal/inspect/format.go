package inspect

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the report as a YAML document.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText writes the report as aligned text with prec decimal places.
func WriteText(w io.Writer, r *Report, prec int) error {
	ew := &errWriter{w: w}
	v := func(x Vec) string {
		return fmt.Sprintf("(%.*f, %.*f, %.*f)", prec, x[0], prec, x[1], prec, x[2])
	}

	ew.printf("Vertices:  %d (%d hidden, %d selected)\n", r.Verts, r.HiddenVerts, r.SelectedVerts)
	ew.printf("Edges:     %d (%d loose, %d boundary, %d non-manifold, %d duplicate)\n",
		r.Edges, r.LooseEdges, r.BoundaryEdges, r.NonManifoldEdges, r.DuplicateEdges)
	ew.printf("Loops:     %d\n", r.Loops)
	ew.printf("Polygons:  %d (%d tris, %d quads, %d n-gons; %d hidden, %d selected)\n",
		r.Polys, r.Triangles, r.Quads, r.Ngons, r.HiddenPolys, r.SelectedPolys)
	if r.LegacyFaces > 0 {
		ew.printf("Legacy:    %d faces not converted\n", r.LegacyFaces)
	}
	ew.printf("Area:      %.*f\n", prec, r.Area)
	ew.printf("Bounds:    %s - %s\n", v(r.BoundsMin), v(r.BoundsMax))
	ew.printf("Center:    %s [%s]\n", v(r.Center), r.CenterMode)
	if r.Volume != nil {
		ew.printf("Volume:    %.*f, centroid %s\n", prec, r.Volume.Volume, v(r.Volume.Centroid))
	}

	names := make([]string, 0, len(r.Centers))
	for name := range r.Centers {
		names = append(names, name)
	}
	sort.Strings(names)
	ew.printf("\nCenters:\n")
	for _, name := range names {
		ew.printf("  %-13s %s\n", name, v(r.Centers[name]))
	}

	if len(r.Polygons) > 0 {
		ew.printf("\nPolygons:\n")
		for _, p := range r.Polygons {
			ew.printf("  #%-5d n=%d area=%.*f normal=%s center=%s",
				p.Index, p.Corners, prec, p.Area, v(p.Normal), v(p.Center))
			if p.UVArea != nil {
				ew.printf(" uv_area=%.*f", prec, *p.UVArea)
			}
			ew.printf("\n")
		}
	}
	return ew.err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
