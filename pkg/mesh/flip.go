package mesh

import (
	"github.com/Faultbox/polymesh/pkg/math"
)

// FlipPolygon reverses the winding of p in place.
//
// Corner vertices and every per-loop layer in ldata are reversed along the
// run while the first corner stays put; edge indices are rotated so each
// loop still names the edge to its new successor. lnors (custom split
// normals, indexed by loop) follows the same permutation when non-nil.
// Displacement grids in mdisps are mirrored first; mdisps may be nil.
//
// Applying FlipPolygon twice restores the original data exactly.
func FlipPolygon(p *Polygon, loops []Loop, ldata *CustomData, lnors []math.Vec3, mdisps []Displacement, negateZ bool) {
	start := p.LoopStart
	end := p.LoopEnd() - 1
	if start >= end {
		return
	}

	if mdisps != nil {
		for i := start; i <= end; i++ {
			FlipDisplacement(&mdisps[i], negateZ)
		}
	}

	// Loop start stays the same, its edge becomes the one of the last loop.
	prevEdge := loops[start].E
	loops[start].E = loops[end].E

	swapRecords := !ldata.LoopsBacked()
	for start++; end > start; start, end = start+1, end-1 {
		loops[end].E = loops[end-1].E
		loops[start].E, prevEdge = prevEdge, loops[start].E

		if swapRecords {
			loops[start], loops[end] = loops[end], loops[start]
		}
		if lnors != nil {
			lnors[start], lnors[end] = lnors[end], lnors[start]
		}
		ldata.Swap(start, end)
	}
	// Odd corner count: the middle loop keeps its place and gets the
	// remaining edge.
	if start == end {
		loops[start].E = prevEdge
	}
}

// FlipPolygon reverses the winding of polygon i, with its displacement
// grids mirrored and their normal component negated.
func (m *Mesh) FlipPolygon(i int) {
	mdisps := LayerData[Displacement](&m.LoopData, LayerDisplacement, 0)
	FlipPolygon(&m.Polys[i], m.Loops, &m.LoopData, nil, mdisps, true)
}

// FlipPolygons reverses the winding of every polygon.
func (m *Mesh) FlipPolygons() {
	mdisps := LayerData[Displacement](&m.LoopData, LayerDisplacement, 0)
	for i := range m.Polys {
		FlipPolygon(&m.Polys[i], m.Loops, &m.LoopData, nil, mdisps, true)
	}
}
