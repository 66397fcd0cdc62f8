package mesh

// FlushHiddenFromVerts propagates vertex hide state: an edge is hidden iff
// either end is hidden, a polygon iff any corner vertex is hidden. Both are
// also unhidden when none is.
func FlushHiddenFromVerts(verts []Vertex, loops []Loop, edges []Edge, polys []Polygon) {
	for i := range edges {
		e := &edges[i]
		if verts[e.V1].Hidden() || verts[e.V2].Hidden() {
			e.Flag |= FlagHide
		} else {
			e.Flag &^= FlagHide
		}
	}
	for i := range polys {
		p := &polys[i]
		p.Flag &^= PolyHide
		for _, l := range loops[p.LoopStart:p.LoopEnd()] {
			if verts[l.V].Hidden() {
				p.Flag |= PolyHide
				break
			}
		}
	}
}

// FlushHiddenFromPolys propagates polygon hide state down: vertices and
// edges used by a visible polygon end up visible, those used only by hidden
// polygons end up hidden. Elements used by no polygon are left alone.
func FlushHiddenFromPolys(verts []Vertex, loops []Loop, edges []Edge, polys []Polygon) {
	for i := range polys {
		p := &polys[i]
		if !p.Hidden() {
			continue
		}
		for _, l := range loops[p.LoopStart:p.LoopEnd()] {
			verts[l.V].Flag |= FlagHide
			edges[l.E].Flag |= FlagHide
		}
	}
	// Visible polygons win over hidden neighbors.
	for i := range polys {
		p := &polys[i]
		if p.Hidden() {
			continue
		}
		for _, l := range loops[p.LoopStart:p.LoopEnd()] {
			verts[l.V].Flag &^= FlagHide
			edges[l.E].Flag &^= FlagHide
		}
	}
}

// FlushSelectFromPolys replaces vertex and edge selection with the union of
// the corners and edges of selected polygons. Hidden polygons count only
// when they are selected.
func FlushSelectFromPolys(verts []Vertex, loops []Loop, edges []Edge, polys []Polygon) {
	for i := range verts {
		verts[i].Flag &^= FlagSelect
	}
	for i := range edges {
		edges[i].Flag &^= FlagSelect
	}
	for i := range polys {
		p := &polys[i]
		if !p.Selected() {
			continue
		}
		for _, l := range loops[p.LoopStart:p.LoopEnd()] {
			verts[l.V].Flag |= FlagSelect
			edges[l.E].Flag |= FlagSelect
		}
	}
}

// FlushSelectFromVerts derives edge and polygon selection from vertices:
// an element is selected iff all its vertices are. Hidden edges and
// polygons keep their state.
func FlushSelectFromVerts(verts []Vertex, loops []Loop, edges []Edge, polys []Polygon) {
	for i := range edges {
		e := &edges[i]
		if e.Hidden() {
			continue
		}
		if verts[e.V1].Selected() && verts[e.V2].Selected() {
			e.Flag |= FlagSelect
		} else {
			e.Flag &^= FlagSelect
		}
	}
	for i := range polys {
		p := &polys[i]
		if p.Hidden() {
			continue
		}
		all := true
		for _, l := range loops[p.LoopStart:p.LoopEnd()] {
			if !verts[l.V].Selected() {
				all = false
				break
			}
		}
		if all {
			p.Flag |= PolySelect
		} else {
			p.Flag &^= PolySelect
		}
	}
}

// FlushHiddenFromVerts applies FlushHiddenFromVerts to the mesh arrays.
func (m *Mesh) FlushHiddenFromVerts() {
	FlushHiddenFromVerts(m.Verts, m.Loops, m.Edges, m.Polys)
}

// FlushHiddenFromPolys applies FlushHiddenFromPolys to the mesh arrays.
func (m *Mesh) FlushHiddenFromPolys() {
	FlushHiddenFromPolys(m.Verts, m.Loops, m.Edges, m.Polys)
}

// FlushSelectFromPolys applies FlushSelectFromPolys to the mesh arrays.
func (m *Mesh) FlushSelectFromPolys() {
	FlushSelectFromPolys(m.Verts, m.Loops, m.Edges, m.Polys)
}

// FlushSelectFromVerts applies FlushSelectFromVerts to the mesh arrays.
func (m *Mesh) FlushSelectFromVerts() {
	FlushSelectFromVerts(m.Verts, m.Loops, m.Edges, m.Polys)
}
