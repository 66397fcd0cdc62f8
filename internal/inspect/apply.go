package inspect

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/polymesh/internal/logger"
	"github.com/Faultbox/polymesh/pkg/math"
	"github.com/Faultbox/polymesh/pkg/mesh"
)

// Edits accepted by Apply.
const (
	OpFlip             = "flip"
	OpFlushHiddenVerts = "hidden-verts"
	OpFlushHiddenPolys = "hidden-polys"
	OpFlushSelectVerts = "select-verts"
	OpFlushSelectPolys = "select-polys"
)

// Edit errors.
var (
	ErrUnknownOp   = errors.New("unknown edit")
	ErrVertexCount = errors.New("vertex count mismatch")
)

var ops = map[string]func(*mesh.Mesh){
	OpFlip:             (*mesh.Mesh).FlipPolygons,
	OpFlushHiddenVerts: (*mesh.Mesh).FlushHiddenFromVerts,
	OpFlushHiddenPolys: (*mesh.Mesh).FlushHiddenFromPolys,
	OpFlushSelectVerts: (*mesh.Mesh).FlushSelectFromVerts,
	OpFlushSelectPolys: (*mesh.Mesh).FlushSelectFromPolys,
}

// FlushModes lists the flag propagation edits in a stable order.
var FlushModes = []string{OpFlushHiddenVerts, OpFlushHiddenPolys, OpFlushSelectVerts, OpFlushSelectPolys}

// Apply runs the named edit on m in place.
func Apply(m *mesh.Mesh, op string) error {
	fn, ok := ops[op]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	fn(m)
	logger.Debug("applied edit", zap.String("op", op), zap.Stringer("mesh", m))
	return nil
}

// Deform moves the vertices of m by the deformation that takes src to
// dst, applied locally around each polygon corner of m. All three meshes
// must have the same number of vertices; only m's topology is used.
func Deform(m, src, dst *mesh.Mesh) error {
	n := len(m.Verts)
	if len(src.Verts) != n || len(dst.Verts) != n {
		return fmt.Errorf("%w: mesh %d, source %d, target %d",
			ErrVertexCount, n, len(src.Verts), len(dst.Verts))
	}

	cos := mesh.CalcRelativeDeform(m.Polys, m.Loops, n, src.Coords(), dst.Coords(), m.Coords())
	for i := range m.Verts {
		m.Verts[i].Co = cos[i]
	}
	logger.Debug("deformed mesh", zap.Int("verts", n))
	return nil
}

// Transform applies an affine matrix to every vertex of m.
func Transform(m *mesh.Mesh, mat math.Mat4) {
	cos := mat.TransformCoords(m.Coords())
	for i := range m.Verts {
		m.Verts[i].Co = cos[i]
	}
}
