package mesh

import (
	gomath "math"
	"math/bits"

	"github.com/Faultbox/polymesh/pkg/math"
)

// maxDisplacementLevel is the highest multires grid level a block can hold.
const maxDisplacementLevel = 13

// Displacement is a multires displacement block: one or more square grids
// of offset vectors stored back to back. Disps may be nil while TotDisp is
// set, when the samples live in an external file that was not read.
type Displacement struct {
	TotDisp int
	Disps   []math.Vec3
	Level   int
}

// NewDisplacement returns a single zeroed grid with the given side length.
func NewDisplacement(side int) Displacement {
	return Displacement{
		TotDisp: side * side,
		Disps:   make([]math.Vec3, side*side),
		Level:   GridLevel(side),
	}
}

// Side returns the grid side length of a single-grid block.
func (d *Displacement) Side() int {
	return isqrt(d.TotDisp)
}

// DisplacementCorners returns how many grids the block holds, found by
// trying grid sizes from the largest level down. Zero means the sample
// count fits no grid size (or the block is empty).
func DisplacementCorners(d *Displacement) int {
	if d.TotDisp == 0 {
		return 0
	}
	for lvl := maxDisplacementLevel; lvl > 0; lvl-- {
		side := (1 << (lvl - 1)) + 1
		if d.TotDisp%(side*side) == 0 {
			return d.TotDisp / (side * side)
		}
	}
	return 0
}

// GridLevel returns the subdivision level of a grid with the given side
// length, floor(log2(side-1)) + 1.
func GridLevel(side int) int {
	if side < 2 {
		return 0
	}
	return bits.Len(uint(side - 1))
}

// FlipDisplacement mirrors a single-grid block across its diagonal so it
// matches a polygon with reversed winding: samples (row, col) and
// (col, row) trade places and each sample's X and Y components swap. With
// negateZ the normal-aligned Z component is negated as well.
func FlipDisplacement(d *Displacement, negateZ bool) {
	if d.TotDisp == 0 || d.Disps == nil {
		return
	}

	sides := isqrt(d.TotDisp)
	co := d.Disps
	for x := 0; x < sides; x++ {
		for y := 0; y < x; y++ {
			a := &co[y*sides+x]
			b := &co[x*sides+y]

			*a, *b = *b, *a
			a.X, a.Y = a.Y, a.X
			b.X, b.Y = b.Y, b.X
			if negateZ {
				a.Z = -a.Z
				b.Z = -b.Z
			}
		}

		a := &co[x*sides+x]
		a.X, a.Y = a.Y, a.X
		if negateZ {
			a.Z = -a.Z
		}
	}
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(gomath.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
