package views

import (
	"iter"

	"github.com/matzehuels/graphkit/pkg/graph"
)

// Mask reports whether an element is hidden.
type Mask[T comparable] func(T) bool

// Masked is the read-only subgraph of its base left visible by two masks.
// A vertex is visible when it exists in the base and its mask is false. An
// edge is visible when it exists, its mask is false and both endpoints are
// visible. Masks are evaluated on every query.
type Masked[T comparable] struct {
	base       graph.Graph[T]
	vertexMask Mask[T]
	edgeMask   Mask[T]
}

// AsMaskedSubgraph returns the subgraph of g hiding the vertices and edges
// for which the masks return true. A nil mask hides nothing.
func AsMaskedSubgraph[T comparable](g graph.Graph[T], vertexMask, edgeMask Mask[T]) *Masked[T] {
	if vertexMask == nil {
		vertexMask = func(T) bool { return false }
	}
	if edgeMask == nil {
		edgeMask = func(T) bool { return false }
	}
	return &Masked[T]{base: g, vertexMask: vertexMask, edgeMask: edgeMask}
}

const maskedView = "masked subgraph"

func filter[T any](seq iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range seq {
			if keep(x) && !yield(x) {
				return
			}
		}
	}
}

func count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

func nonEmpty[T any](seq iter.Seq[T]) bool {
	next, stop := iter.Pull(seq)
	defer stop()
	_, ok := next()
	return ok
}

func (m *Masked[T]) Type() graph.Type { return m.base.Type().AsUnmodifiable() }

func (m *Masked[T]) ContainsVertex(v T) bool {
	return !m.vertexMask(v) && m.base.ContainsVertex(v)
}

func (m *Masked[T]) ContainsEdge(e T) bool {
	if m.edgeMask(e) || !m.base.ContainsEdge(e) {
		return false
	}
	t, err := m.base.EdgeTuple(e)
	return err == nil && !m.vertexMask(t.Source) && !m.vertexMask(t.Target)
}

func (m *Masked[T]) ContainsEdgeBetween(u, v T) bool {
	seq, err := m.EdgesBetween(u, v)
	if err != nil {
		return false
	}
	return nonEmpty(seq)
}

func (m *Masked[T]) AddVertex() (T, error) {
	var zero T
	return zero, readOnly(maskedView)
}

func (m *Masked[T]) AddVertexWithID(T) (T, error) {
	var zero T
	return zero, readOnly(maskedView)
}

func (m *Masked[T]) RemoveVertex(T) (bool, error) { return false, readOnly(maskedView) }

func (m *Masked[T]) AddEdge(T, T, ...graph.EdgeOption[T]) (T, error) {
	var zero T
	return zero, readOnly(maskedView)
}

func (m *Masked[T]) RemoveEdge(T) (bool, error)     { return false, readOnly(maskedView) }
func (m *Masked[T]) SetEdgeWeight(T, float64) error { return readOnly(maskedView) }

func (m *Masked[T]) EdgeSource(e T) (T, error) {
	t, err := m.EdgeTuple(e)
	return t.Source, err
}

func (m *Masked[T]) EdgeTarget(e T) (T, error) {
	t, err := m.EdgeTuple(e)
	return t.Target, err
}

func (m *Masked[T]) EdgeTuple(e T) (graph.Triple[T], error) {
	if !m.ContainsEdge(e) {
		return graph.Triple[T]{}, missingEdge(e)
	}
	return m.base.EdgeTuple(e)
}

func (m *Masked[T]) EdgeWeight(e T) (float64, error) {
	if !m.ContainsEdge(e) {
		return 0, missingEdge(e)
	}
	return m.base.EdgeWeight(e)
}

// DegreeOf counts visible incident edges, self-loops twice.
func (m *Masked[T]) DegreeOf(v T) (int, error) {
	seq, err := m.EdgesOf(v)
	if err != nil {
		return 0, err
	}
	n := 0
	for e := range seq {
		n++
		if t, _ := m.base.EdgeTuple(e); t.Source == t.Target {
			n++
		}
	}
	return n, nil
}

func (m *Masked[T]) InDegreeOf(v T) (int, error) {
	if m.base.Type().Undirected() {
		return m.DegreeOf(v)
	}
	seq, err := m.InEdgesOf(v)
	if err != nil {
		return 0, err
	}
	return count(seq), nil
}

func (m *Masked[T]) OutDegreeOf(v T) (int, error) {
	if m.base.Type().Undirected() {
		return m.DegreeOf(v)
	}
	seq, err := m.OutEdgesOf(v)
	if err != nil {
		return 0, err
	}
	return count(seq), nil
}

func (m *Masked[T]) incident(v T, of func(T) (iter.Seq[T], error)) (iter.Seq[T], error) {
	if !m.ContainsVertex(v) {
		return nil, missingVertex(v)
	}
	seq, err := of(v)
	if err != nil {
		return nil, err
	}
	return filter(seq, m.ContainsEdge), nil
}

func (m *Masked[T]) EdgesOf(v T) (iter.Seq[T], error)    { return m.incident(v, m.base.EdgesOf) }
func (m *Masked[T]) InEdgesOf(v T) (iter.Seq[T], error)  { return m.incident(v, m.base.InEdgesOf) }
func (m *Masked[T]) OutEdgesOf(v T) (iter.Seq[T], error) { return m.incident(v, m.base.OutEdgesOf) }

func (m *Masked[T]) EdgesBetween(u, v T) (iter.Seq[T], error) {
	if !m.ContainsVertex(u) {
		return nil, missingVertex(u)
	}
	if !m.ContainsVertex(v) {
		return nil, missingVertex(v)
	}
	seq, err := m.base.EdgesBetween(u, v)
	if err != nil {
		return nil, err
	}
	return filter(seq, func(e T) bool { return !m.edgeMask(e) }), nil
}

func (m *Masked[T]) Vertices() iter.Seq[T] {
	return filter(m.base.Vertices(), func(v T) bool { return !m.vertexMask(v) })
}

func (m *Masked[T]) Edges() iter.Seq[T] { return filter(m.base.Edges(), m.ContainsEdge) }

// VertexCount is linear in the base's vertex count.
func (m *Masked[T]) VertexCount() int { return count(m.Vertices()) }

// EdgeCount is linear in the base's edge count.
func (m *Masked[T]) EdgeCount() int { return count(m.Edges()) }

func (m *Masked[T]) Emits() bool { return emits(m.base) }

// Observe relays the base events of visible elements. An edge event is
// dropped when the edge or one of its endpoints is masked.
func (m *Masked[T]) Observe(fn graph.Listener[T]) func() {
	return relay(m.base, fn, func(ev graph.Event[T]) (graph.Event[T], bool) {
		if ev.Kind.IsVertex() {
			return ev, !m.vertexMask(ev.Element)
		}
		return ev, !m.edgeMask(ev.Element) && !m.vertexMask(ev.Source) && !m.vertexMask(ev.Target)
	})
}

func (m *Masked[T]) GraphAttrs() graph.AttrMap {
	if a, ok := attributes(m.base); ok {
		return readOnlyAttrs(a.GraphAttrs(), maskedView)
	}
	return nil
}

func (m *Masked[T]) VertexAttrs(v T) (graph.AttrMap, error) {
	a, ok := attributes(m.base)
	if !ok {
		return nil, noAttributes()
	}
	if !m.ContainsVertex(v) {
		return nil, missingVertex(v)
	}
	attrs, err := a.VertexAttrs(v)
	if err != nil {
		return nil, err
	}
	return readOnlyAttrs(attrs, maskedView), nil
}

func (m *Masked[T]) EdgeAttrs(e T) (graph.AttrMap, error) {
	a, ok := attributes(m.base)
	if !ok {
		return nil, noAttributes()
	}
	if !m.ContainsEdge(e) {
		return nil, missingEdge(e)
	}
	attrs, err := a.EdgeAttrs(e)
	if err != nil {
		return nil, err
	}
	return readOnlyAttrs(attrs, maskedView), nil
}
