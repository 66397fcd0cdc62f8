package mesh

import (
	"github.com/Faultbox/polymesh/pkg/math"
)

// CalcRelativeDeform applies the deformation that takes srcCos to dstCos
// onto orgCos, locally per corner. Each corner's destination position is
// mapped from the (prev, curr, next) triangle in source space onto the same
// triangle in original space, and the results are averaged per vertex.
// Vertices no polygon uses keep their original position.
//
// All three coordinate tables are indexed by vertex and hold totvert
// entries.
func CalcRelativeDeform(polys []Polygon, loops []Loop, totvert int, srcCos, dstCos, orgCos []math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, totvert)
	accum := make([]int, totvert)

	for i := range polys {
		ls := loops[polys[i].LoopStart:polys[i].LoopEnd()]
		n := len(ls)
		for j := range ls {
			vPrev := ls[(n+j-1)%n].V
			vCurr := ls[j].V
			vNext := ls[(j+1)%n].V

			tvec := math.TransformPointByTri(dstCos[vCurr],
				[3]math.Vec3{orgCos[vPrev], orgCos[vCurr], orgCos[vNext]},
				[3]math.Vec3{srcCos[vPrev], srcCos[vCurr], srcCos[vNext]})

			out[vCurr] = out[vCurr].Add(tvec)
			accum[vCurr]++
		}
	}

	for i := range out {
		if accum[i] != 0 {
			out[i] = out[i].Scale(1.0 / float32(accum[i]))
		} else {
			out[i] = orgCos[i]
		}
	}
	return out
}
