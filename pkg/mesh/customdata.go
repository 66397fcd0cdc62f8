package mesh

import (
	"github.com/Faultbox/polymesh/pkg/math"
)

// LayerType identifies what a custom data layer stores.
type LayerType uint8

// Layer types.
const (
	// LayerLoop is the loop array itself registered as a layer.
	LayerLoop LayerType = iota
	// LayerPoly is the polygon array itself registered as a layer.
	LayerPoly
	LayerUV           // per loop, math.Vec2
	LayerColor        // per loop, LoopColor
	LayerNormal       // per loop, math.Vec3
	LayerDisplacement // per loop or legacy face, Displacement
	LayerFaceUV       // per legacy face, FaceUV
	LayerFaceColor    // per legacy face, FaceColor
	LayerFaceNormal   // per legacy face, FaceNormal
	LayerOrigIndex    // per face or polygon, int

	numLayerTypes
)

var layerTypeNames = [numLayerTypes]string{
	"loop", "poly", "uv", "color", "normal", "displacement",
	"face_uv", "face_color", "face_normal", "orig_index",
}

// String returns the layer type name.
func (t LayerType) String() string {
	if t < numLayerTypes {
		return layerTypeNames[t]
	}
	return "unknown"
}

// LoopColor is a per-corner byte color.
type LoopColor struct {
	R, G, B, A uint8
}

// LegacyColor is a legacy face-corner color. Its red and blue channels are
// stored swapped relative to LoopColor.
type LegacyColor struct {
	A, R, G, B uint8
}

// FaceUV holds the four corner UVs of a legacy face.
type FaceUV [4]math.Vec2

// FaceColor holds the four corner colors of a legacy face.
type FaceColor [4]LegacyColor

// FaceNormal holds the four corner normals of a legacy face, packed as
// shorts in [-32767, 32767].
type FaceNormal [4][3]int16

// Layer is one attribute array in a CustomData block.
type Layer interface {
	Type() LayerType
	Name() string
	Len() int
	Swap(i, j int)
}

// SliceLayer is a slice-backed Layer.
type SliceLayer[T any] struct {
	Kind      LayerType
	LayerName string
	Data      []T
}

// NewLayer returns a layer holding data.
func NewLayer[T any](kind LayerType, name string, data []T) *SliceLayer[T] {
	return &SliceLayer[T]{Kind: kind, LayerName: name, Data: data}
}

func (l *SliceLayer[T]) Type() LayerType { return l.Kind }
func (l *SliceLayer[T]) Name() string    { return l.LayerName }
func (l *SliceLayer[T]) Len() int        { return len(l.Data) }

func (l *SliceLayer[T]) Swap(i, j int) {
	l.Data[i], l.Data[j] = l.Data[j], l.Data[i]
}

// CustomData is an ordered set of attribute layers for one element domain.
// It is the minimal storage contract the kernel reads and writes through.
type CustomData struct {
	Layers []Layer

	// External is the path of externally stored displacement data, empty
	// when everything is in memory.
	External string

	active [numLayerTypes]int
	render [numLayerTypes]int
}

// Add appends a layer. The first layer of a type becomes active.
func (cd *CustomData) Add(l Layer) {
	cd.Layers = append(cd.Layers, l)
}

// Count returns the number of layers of type t.
func (cd *CustomData) Count(t LayerType) int {
	n := 0
	for _, l := range cd.Layers {
		if l.Type() == t {
			n++
		}
	}
	return n
}

// HasLayer reports whether at least one layer of type t exists.
func (cd *CustomData) HasLayer(t LayerType) bool {
	return cd.Layer(t, 0) != nil
}

// Layer returns the n-th layer of type t, or nil.
func (cd *CustomData) Layer(t LayerType, n int) Layer {
	for _, l := range cd.Layers {
		if l.Type() != t {
			continue
		}
		if n == 0 {
			return l
		}
		n--
	}
	return nil
}

// Swap exchanges elements i and j in every layer.
func (cd *CustomData) Swap(i, j int) {
	for _, l := range cd.Layers {
		l.Swap(i, j)
	}
}

// Free drops all layers and resets active selections.
func (cd *CustomData) Free() {
	cd.Layers = nil
	cd.External = ""
	cd.active = [numLayerTypes]int{}
	cd.render = [numLayerTypes]int{}
}

// LoopsBacked reports whether the loop array is itself registered as a
// layer here. Swapping this block then already moves loop records, so
// callers must not swap them a second time.
func (cd *CustomData) LoopsBacked() bool {
	return cd.HasLayer(LayerLoop)
}

// Active returns the index of the active layer among layers of type t.
func (cd *CustomData) Active(t LayerType) int { return cd.active[t] }

// SetActive marks the n-th layer of type t as active.
func (cd *CustomData) SetActive(t LayerType, n int) { cd.active[t] = n }

// Render returns the index of the render layer among layers of type t.
func (cd *CustomData) Render(t LayerType) int { return cd.render[t] }

// SetRender marks the n-th layer of type t as the render layer.
func (cd *CustomData) SetRender(t LayerType, n int) { cd.render[t] = n }

// LayerData returns the backing slice of the n-th layer of type t, or nil
// when there is no such layer or it does not hold T.
func LayerData[T any](cd *CustomData, t LayerType, n int) []T {
	l, ok := cd.Layer(t, n).(*SliceLayer[T])
	if !ok {
		return nil
	}
	return l.Data
}
