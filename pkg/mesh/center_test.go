package mesh

import (
	"testing"

	"github.com/Faultbox/polymesh/pkg/math"
)

func TestCentersUnitCube(t *testing.T) {
	m := unitCube()
	want := v3(0.5, 0.5, 0.5)

	tests := []struct {
		name string
		fn   func() (math.Vec3, bool)
	}{
		{"CenterMedian", m.CenterMedian},
		{"CenterMedianFromPolys", m.CenterMedianFromPolys},
		{"CenterBounds", m.CenterBounds},
		{"CenterOfSurface", m.CenterOfSurface},
		{"CenterOfVolume", m.CenterOfVolume},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn()
			if !ok {
				t.Fatalf("%s() ok = false, want true", tt.name)
			}
			if !vecNear(got, want, 1e-5) {
				t.Errorf("%s() = %v, want %v", tt.name, got, want)
			}
		})
	}
}

func TestCentersEmptyMesh(t *testing.T) {
	m := &Mesh{}
	tests := []struct {
		name string
		fn   func() (math.Vec3, bool)
	}{
		{"CenterMedian", m.CenterMedian},
		{"CenterMedianFromPolys", m.CenterMedianFromPolys},
		{"CenterBounds", m.CenterBounds},
		{"CenterOfSurface", m.CenterOfSurface},
		{"CenterOfVolume", m.CenterOfVolume},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn()
			if ok {
				t.Errorf("%s() ok = true, want false", tt.name)
			}
			if got != (math.Vec3{}) {
				t.Errorf("%s() = %v, want zero vector", tt.name, got)
			}
		})
	}
}

func TestCenterMedianFromPolysWeightsCorners(t *testing.T) {
	// Vertex 4 is unused; vertex 0 is shared by both triangles.
	m := buildMesh([]math.Vec3{
		v3(0, 0, 0), v3(3, 0, 0), v3(0, 3, 0), v3(-3, 0, 0), v3(100, 100, 100),
	}, [][]uint32{{0, 1, 2}, {0, 2, 3}})

	got, ok := m.CenterMedianFromPolys()
	want := v3(0, 1, 0)
	if !ok || !vecNear(got, want, 1e-6) {
		t.Errorf("CenterMedianFromPolys() = %v, %v, want %v, true", got, ok, want)
	}
}

func TestCenterOfSurfaceWeightsArea(t *testing.T) {
	// A large square and a small one far away: the surface center sits
	// close to the large one.
	m := buildMesh([]math.Vec3{
		v3(0, 0, 0), v3(3, 0, 0), v3(3, 3, 0), v3(0, 3, 0),
		v3(10, 0, 0), v3(11, 0, 0), v3(11, 1, 0), v3(10, 1, 0),
	}, [][]uint32{{0, 1, 2, 3}, {4, 5, 6, 7}})

	got, ok := m.CenterOfSurface()
	// (9 * (1.5, 1.5) + 1 * (10.5, 0.5)) / 10
	want := v3(2.4, 1.4, 0)
	if !ok || !vecNear(got, want, 1e-5) {
		t.Errorf("CenterOfSurface() = %v, %v, want %v, true", got, ok, want)
	}
}

func TestCenterOfSurfaceDegenerateFallsBack(t *testing.T) {
	// A triangle collapsed to a point has no area, so the weighted sum is
	// 0/0. The result must come from the vertex median instead, which
	// also counts the vertex no polygon uses.
	m := buildMesh([]math.Vec3{
		v3(2, 2, 2), v3(2, 2, 2), v3(2, 2, 2), v3(5, 2, 2),
	}, [][]uint32{{0, 1, 2}})

	got, ok := m.CenterOfSurface()
	want := v3(2.75, 2, 2)
	if !ok || !got.IsFinite() || !vecNear(got, want, 1e-6) {
		t.Errorf("CenterOfSurface() = %v, %v, want %v, true", got, ok, want)
	}
	if median, _ := m.CenterMedian(); got != median {
		t.Errorf("CenterOfSurface() = %v, want CenterMedian() = %v", got, median)
	}
}

func TestCenterOfVolumeFlatFallsBack(t *testing.T) {
	// A single quad encloses no volume.
	m := buildMesh([]math.Vec3{
		v3(0, 0, 0), v3(2, 0, 0), v3(2, 2, 0), v3(0, 2, 0),
	}, [][]uint32{{0, 1, 2, 3}})

	got, ok := m.CenterOfVolume()
	want, wantOK := m.CenterMedianFromPolys()
	if got != want || ok != wantOK {
		t.Errorf("CenterOfVolume() = %v, %v, want %v, %v", got, ok, want, wantOK)
	}
}

func TestCenterOfVolumeTranslated(t *testing.T) {
	m := unitCube()
	offset := v3(1000, -2000, 500)
	for i := range m.Verts {
		m.Verts[i].Co = m.Verts[i].Co.Add(offset)
	}

	got, ok := m.CenterOfVolume()
	want := offset.Add(v3(0.5, 0.5, 0.5))
	if !ok || !vecNear(got, want, 1e-3) {
		t.Errorf("CenterOfVolume() = %v, %v, want %v, true", got, ok, want)
	}
}

func TestMinMax(t *testing.T) {
	m := buildMesh([]math.Vec3{v3(1, -2, 3), v3(-4, 5, 0), v3(2, 2, -6)}, [][]uint32{{0, 1, 2}})
	lo, hi, ok := m.MinMax()
	if !ok {
		t.Fatal("MinMax() ok = false, want true")
	}
	if lo != v3(-4, -2, -6) || hi != v3(2, 5, 3) {
		t.Errorf("MinMax() = %v, %v, want (-4,-2,-6), (2,5,3)", lo, hi)
	}
}

func TestCalcVolumeUnitCube(t *testing.T) {
	m := unitCube()
	vol, cent, ok := m.CalcVolume()
	if !ok {
		t.Fatal("CalcVolume() ok = false, want true")
	}
	if !near(vol, 1, 1e-5) {
		t.Errorf("CalcVolume() volume = %v, want 1", vol)
	}
	if !vecNear(cent, v3(0.5, 0.5, 0.5), 1e-5) {
		t.Errorf("CalcVolume() center = %v, want (0.5, 0.5, 0.5)", cent)
	}

	// Reversed winding gives the same magnitude.
	m.FlipPolygons()
	vol2, cent2, _ := m.CalcVolume()
	if !near(vol2, 1, 1e-5) || !vecNear(cent2, cent, 1e-5) {
		t.Errorf("CalcVolume() after flip = %v, %v, want 1, %v", vol2, cent2, cent)
	}
}

func TestCalcVolumeEmpty(t *testing.T) {
	vol, cent, ok := CalcVolume(nil, nil, nil)
	if ok || vol != 0 || cent != (math.Vec3{}) {
		t.Errorf("CalcVolume(nil) = %v, %v, %v, want 0, zero, false", vol, cent, ok)
	}
}

func TestFanLoopTris(t *testing.T) {
	m := buildMesh([]math.Vec3{
		v3(0, 0, 0), v3(1, 0, 0), v3(1, 1, 0), v3(0, 1, 0), v3(-1, 0.5, 0),
	}, [][]uint32{{0, 1, 2}, {0, 1, 2, 3, 4}})

	tris := FanLoopTris(m.Polys)
	if len(tris) != 4 {
		t.Fatalf("len(FanLoopTris()) = %d, want 4", len(tris))
	}
	want := LoopTri{Tri: [3]uint32{3, 6, 7}, Poly: 1}
	if tris[3] != want {
		t.Errorf("FanLoopTris()[3] = %v, want %v", tris[3], want)
	}
}
