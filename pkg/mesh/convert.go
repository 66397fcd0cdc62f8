package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/polymesh/pkg/math"
)

// Conversion errors. Both mean the input arrays contradict each other; the
// conversion cannot be retried with the same data.
var (
	ErrMissingEdge           = errors.New("no edge for legacy face corner")
	ErrMalformedDisplacement = errors.New("malformed displacement block")
)

// shortNormalScale maps packed short normals to unit floats.
const shortNormalScale = 1.0 / 32767.0

// DisplacementSource reads displacement blocks kept outside the mesh,
// one block per legacy face.
type DisplacementSource interface {
	ReadDisplacements(path string, faces int) ([]Displacement, error)
}

// ConvertParams holds the inputs of ConvertLegacyFaces.
type ConvertParams struct {
	// Source, when set, is used to read externally stored displacement
	// data before converting. Nil skips external data entirely.
	Source DisplacementSource

	FaceData *CustomData
	LoopData *CustomData
	PolyData *CustomData

	Edges []Edge
	Faces []LegacyFace

	// Log receives conversion diagnostics. Nil discards them.
	Log *zap.Logger
}

// ConvertResult holds the arrays built by ConvertLegacyFaces. The caller
// owns them and must release whatever they replace.
type ConvertResult struct {
	Loops []Loop
	Polys []Polygon
}

// ConvertLegacyFaces turns legacy triangle/quad faces into polygons and
// loops, moving every per-face-corner layer of FaceData onto matching
// per-loop layers in LoopData.
//
// LoopData and PolyData are cleared first and receive the new loop and
// polygon arrays as layers of their own. The legacy n-gon bit is cleared on
// every edge. An original-index layer in FaceData is carried over to
// PolyData one to one.
//
// Legacy fake n-gons carry their own per-corner data outside this scheme
// and are not converted.
//
// A face corner whose vertex pair has no edge yields ErrMissingEdge; a
// displacement block whose size fits no grid yields
// ErrMalformedDisplacement. On error LoopData and PolyData are left
// cleared.
func ConvertLegacyFaces(p ConvertParams) (res *ConvertResult, err error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	fdata, ldata, pdata := p.FaceData, p.LoopData, p.PolyData

	// Either block may hold leftovers from an earlier, partial conversion.
	ldata.Free()
	pdata.Free()
	defer func() {
		if err != nil {
			ldata.Free()
			pdata.Free()
		}
	}()

	polys := make([]Polygon, len(p.Faces))
	pdata.Add(NewLayer(LayerPoly, "", polys))

	totLoop := 0
	for i := range p.Faces {
		totLoop += p.Faces[i].Corners()
	}
	loops := make([]Loop, totLoop)
	ldata.Add(NewLayer(LayerLoop, "", loops))

	addLoopLayers(fdata, ldata, totLoop)

	if p.Source != nil && fdata.External != "" && fdata.HasLayer(LayerDisplacement) {
		if err := readExternalDisplacements(p.Source, fdata, len(p.Faces)); err != nil {
			return nil, err
		}
		ldata.External = fdata.External
	}

	eh := NewEdgeHash[uint32](len(p.Edges))
	for i := range p.Edges {
		eh.Insert(p.Edges[i].V1, p.Edges[i].V2, uint32(i))
		// One-time migration: the bit is free for reuse after this.
		p.Edges[i].Flag &^= FlagLegacyNgon
	}

	var polyIndex []int
	faceIndex := LayerData[int](fdata, LayerOrigIndex, 0)
	if faceIndex != nil {
		polyIndex = make([]int, len(polys))
		pdata.Add(NewLayer(LayerOrigIndex, "", polyIndex))
	}

	log.Debug("converting legacy faces",
		zap.Int("faces", len(p.Faces)),
		zap.Int("edges", len(p.Edges)),
		zap.Int("loops", totLoop))

	j := 0
	for i := range p.Faces {
		f := &p.Faces[i]
		mp := &polys[i]
		mp.LoopStart = j
		mp.TotLoop = f.Corners()
		mp.MatNr = f.MatNr
		mp.Flag = f.Flag

		vs := [4]uint32{f.V1, f.V2, f.V3, f.V4}
		for c := 0; c < mp.TotLoop; c++ {
			a, b := vs[c], vs[(c+1)%mp.TotLoop]
			e, ok := eh.Lookup(a, b)
			if !ok {
				return nil, fmt.Errorf("%w: face %d corner %d (%d, %d)", ErrMissingEdge, i, c, a, b)
			}
			loops[j] = Loop{V: a, E: e}
			j++
		}

		if err := cornersToLoops(fdata, ldata, i, mp.LoopStart, mp.TotLoop, log); err != nil {
			return nil, err
		}

		if polyIndex != nil && i < len(faceIndex) {
			polyIndex[i] = faceIndex[i]
		}
	}

	return &ConvertResult{Loops: loops, Polys: polys}, nil
}

// addLoopLayers creates one per-loop layer for every per-face-corner layer,
// keeping names and order.
func addLoopLayers(fdata, ldata *CustomData, totLoop int) {
	for _, l := range fdata.Layers {
		switch l.Type() {
		case LayerFaceUV:
			ldata.Add(NewLayer(LayerUV, l.Name(), make([]math.Vec2, totLoop)))
		case LayerFaceColor:
			ldata.Add(NewLayer(LayerColor, l.Name(), make([]LoopColor, totLoop)))
		case LayerFaceNormal:
			ldata.Add(NewLayer(LayerNormal, l.Name(), make([]math.Vec3, totLoop)))
		case LayerDisplacement:
			ldata.Add(NewLayer(LayerDisplacement, l.Name(), make([]Displacement, totLoop)))
		}
	}
}

func readExternalDisplacements(src DisplacementSource, fdata *CustomData, faces int) error {
	l, ok := fdata.Layer(LayerDisplacement, fdata.Active(LayerDisplacement)).(*SliceLayer[Displacement])
	if !ok {
		return nil
	}
	disps, err := src.ReadDisplacements(fdata.External, faces)
	if err != nil {
		return fmt.Errorf("reading external displacement %s: %w", fdata.External, err)
	}
	if len(disps) != faces {
		return fmt.Errorf("%w: external file has %d blocks for %d faces",
			ErrMalformedDisplacement, len(disps), faces)
	}
	l.Data = disps
	return nil
}

// cornersToLoops copies the corner data of legacy face fi onto the n loops
// starting at loopStart.
func cornersToLoops(fdata, ldata *CustomData, fi, loopStart, n int, log *zap.Logger) error {
	for k := 0; k < fdata.Count(LayerFaceUV); k++ {
		src := LayerData[FaceUV](fdata, LayerFaceUV, k)
		dst := LayerData[math.Vec2](ldata, LayerUV, k)
		for c := 0; c < n; c++ {
			dst[loopStart+c] = src[fi][c]
		}
	}

	for k := 0; k < fdata.Count(LayerFaceColor); k++ {
		src := LayerData[FaceColor](fdata, LayerFaceColor, k)
		dst := LayerData[LoopColor](ldata, LayerColor, k)
		for c := 0; c < n; c++ {
			mc := src[fi][c]
			dst[loopStart+c] = LoopColor{R: mc.B, G: mc.G, B: mc.R, A: mc.A}
		}
	}

	if fdata.HasLayer(LayerFaceNormal) {
		src := LayerData[FaceNormal](fdata, LayerFaceNormal, fdata.Active(LayerFaceNormal))
		dst := LayerData[math.Vec3](ldata, LayerNormal, ldata.Active(LayerNormal))
		for c := 0; c < n; c++ {
			s := src[fi][c]
			dst[loopStart+c] = math.Vec3{
				X: float32(s[0]) * shortNormalScale,
				Y: float32(s[1]) * shortNormalScale,
				Z: float32(s[2]) * shortNormalScale,
			}
		}
	}

	if fdata.HasLayer(LayerDisplacement) {
		src := LayerData[Displacement](fdata, LayerDisplacement, fdata.Active(LayerDisplacement))
		dst := LayerData[Displacement](ldata, LayerDisplacement, ldata.Active(LayerDisplacement))
		if err := displacementToLoops(&src[fi], dst[loopStart:loopStart+n], fi, log); err != nil {
			return err
		}
	}
	return nil
}

// displacementToLoops splits a per-face block into one grid per corner.
func displacementToLoops(fd *Displacement, dst []Displacement, fi int, log *zap.Logger) error {
	corners := DisplacementCorners(fd)
	if corners == 0 {
		if fd.TotDisp != 0 {
			return fmt.Errorf("%w: face %d has %d samples", ErrMalformedDisplacement, fi, fd.TotDisp)
		}
		// Empty blocks show up in real files; there is nothing to move.
		log.Debug("skipping empty displacement block", zap.Int("face", fi))
		return nil
	}

	side := isqrt(fd.TotDisp / corners)
	sideSq := side * side
	if fd.Disps != nil && len(fd.Disps) < len(dst)*sideSq {
		return fmt.Errorf("%w: face %d has %d samples for %d corners of %d",
			ErrMalformedDisplacement, fi, len(fd.Disps), len(dst), sideSq)
	}

	for c := range dst {
		ld := &dst[c]
		ld.TotDisp = sideSq
		ld.Level = GridLevel(side)
		ld.Disps = make([]math.Vec3, sideSq)
		if fd.Disps != nil {
			copy(ld.Disps, fd.Disps[c*sideSq:(c+1)*sideSq])
		}
	}
	return nil
}

// ConvertLegacyFaces converts m.LegacyFaces into m.Polys and m.Loops. See
// the package-level ConvertLegacyFaces.
func (m *Mesh) ConvertLegacyFaces(src DisplacementSource, log *zap.Logger) error {
	res, err := ConvertLegacyFaces(ConvertParams{
		Source:   src,
		FaceData: &m.FaceData,
		LoopData: &m.LoopData,
		PolyData: &m.PolyData,
		Edges:    m.Edges,
		Faces:    m.LegacyFaces,
		Log:      log,
	})
	if err != nil {
		return err
	}
	m.Loops = res.Loops
	m.Polys = res.Polys
	return nil
}

// UpgradeLegacyFaces is ConvertLegacyFaces for files written before
// polygons existed: it also carries the active and render layer choice of
// UV and color layers over to the new loop layers.
func (m *Mesh) UpgradeLegacyFaces(src DisplacementSource, log *zap.Logger) error {
	if err := m.ConvertLegacyFaces(src, log); err != nil {
		return err
	}
	pairs := [][2]LayerType{
		{LayerFaceUV, LayerUV},
		{LayerFaceColor, LayerColor},
	}
	for _, pr := range pairs {
		if !m.FaceData.HasLayer(pr[0]) {
			continue
		}
		m.LoopData.SetActive(pr[1], m.FaceData.Active(pr[0]))
		m.LoopData.SetRender(pr[1], m.FaceData.Render(pr[0]))
	}
	return nil
}
