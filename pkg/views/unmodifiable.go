package views

import (
	"github.com/matzehuels/graphkit/pkg/graph"
)

// Unmodifiable rejects every mutation with UNSUPPORTED. Reads pass
// through, and changes made to the base remain visible.
type Unmodifiable[T comparable] struct {
	graph.Graph[T]
}

// AsUnmodifiable returns a read-only view of g.
func AsUnmodifiable[T comparable](g graph.Graph[T]) *Unmodifiable[T] {
	return &Unmodifiable[T]{Graph: g}
}

const unmodifiableView = "unmodifiable"

func (u *Unmodifiable[T]) Type() graph.Type { return u.Graph.Type().AsUnmodifiable() }

func (u *Unmodifiable[T]) AddVertex() (T, error) {
	var zero T
	return zero, readOnly(unmodifiableView)
}

func (u *Unmodifiable[T]) AddVertexWithID(T) (T, error) {
	var zero T
	return zero, readOnly(unmodifiableView)
}

func (u *Unmodifiable[T]) RemoveVertex(T) (bool, error) {
	return false, readOnly(unmodifiableView)
}

func (u *Unmodifiable[T]) AddEdge(T, T, ...graph.EdgeOption[T]) (T, error) {
	var zero T
	return zero, readOnly(unmodifiableView)
}

func (u *Unmodifiable[T]) RemoveEdge(T) (bool, error) {
	return false, readOnly(unmodifiableView)
}

func (u *Unmodifiable[T]) SetEdgeWeight(T, float64) error {
	return readOnly(unmodifiableView)
}

func (u *Unmodifiable[T]) Emits() bool { return emits(u.Graph) }

func (u *Unmodifiable[T]) Observe(fn graph.Listener[T]) func() {
	return relay(u.Graph, fn, passThrough[T])
}

// GraphAttrs returns the base's graph attributes, read-only.
func (u *Unmodifiable[T]) GraphAttrs() graph.AttrMap {
	if a, ok := attributes(u.Graph); ok {
		return readOnlyAttrs(a.GraphAttrs(), unmodifiableView)
	}
	return nil
}

func (u *Unmodifiable[T]) VertexAttrs(v T) (graph.AttrMap, error) {
	a, ok := attributes(u.Graph)
	if !ok {
		return nil, noAttributes()
	}
	m, err := a.VertexAttrs(v)
	if err != nil {
		return nil, err
	}
	return readOnlyAttrs(m, unmodifiableView), nil
}

func (u *Unmodifiable[T]) EdgeAttrs(e T) (graph.AttrMap, error) {
	a, ok := attributes(u.Graph)
	if !ok {
		return nil, noAttributes()
	}
	m, err := a.EdgeAttrs(e)
	if err != nil {
		return nil, err
	}
	return readOnlyAttrs(m, unmodifiableView), nil
}
