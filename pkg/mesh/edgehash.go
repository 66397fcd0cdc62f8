package mesh

// EdgeKey is an unordered vertex pair, stored with V1 <= V2.
type EdgeKey struct {
	V1, V2 uint32
}

// MakeEdgeKey returns the key for the edge between a and b in either order.
func MakeEdgeKey(a, b uint32) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{a, b}
}

// EdgeHash maps unordered vertex pairs to a value.
type EdgeHash[V any] struct {
	m map[EdgeKey]V
}

// NewEdgeHash returns an empty hash sized for reserve edges.
func NewEdgeHash[V any](reserve int) *EdgeHash[V] {
	return &EdgeHash[V]{m: make(map[EdgeKey]V, reserve)}
}

// Insert adds the pair (a, b) unless it is already present, and reports
// whether it was added.
func (h *EdgeHash[V]) Insert(a, b uint32, val V) bool {
	k := MakeEdgeKey(a, b)
	if _, ok := h.m[k]; ok {
		return false
	}
	h.m[k] = val
	return true
}

// Reinsert adds the pair (a, b) or overwrites its value.
func (h *EdgeHash[V]) Reinsert(a, b uint32, val V) {
	h.m[MakeEdgeKey(a, b)] = val
}

// Lookup returns the value stored for (a, b).
func (h *EdgeHash[V]) Lookup(a, b uint32) (V, bool) {
	v, ok := h.m[MakeEdgeKey(a, b)]
	return v, ok
}

// Has reports whether (a, b) is present.
func (h *EdgeHash[V]) Has(a, b uint32) bool {
	_, ok := h.m[MakeEdgeKey(a, b)]
	return ok
}

// Len returns the number of stored pairs.
func (h *EdgeHash[V]) Len() int {
	return len(h.m)
}

// EdgeHashFromEdges indexes edges by their vertex pair.
func EdgeHashFromEdges(edges []Edge) *EdgeHash[uint32] {
	eh := NewEdgeHash[uint32](len(edges))
	for i := range edges {
		eh.Insert(edges[i].V1, edges[i].V2, uint32(i))
	}
	return eh
}
