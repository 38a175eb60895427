package views

import (
	"iter"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// Undirected presents a directed base without direction. In- and
// out-neighborhoods merge; a vertex's degree counts every incident edge.
//
// Vertices and edges may be removed through the view. Adding edges is
// rejected since the direction of the new base edge would be arbitrary.
type Undirected[T comparable] struct {
	graph.Graph[T]
	passAttrs[T]
}

// AsUndirected returns an undirected view of g. An undirected g is wrapped
// as well so that the result type is uniform.
func AsUndirected[T comparable](g graph.Graph[T]) *Undirected[T] {
	return &Undirected[T]{Graph: g, passAttrs: passAttrs[T]{g}}
}

func (u *Undirected[T]) Type() graph.Type { return u.Graph.Type().AsUndirected() }

func (u *Undirected[T]) AddEdge(T, T, ...graph.EdgeOption[T]) (T, error) {
	var zero T
	return zero, errors.Unsupported("cannot add edges through an undirected view")
}

func (u *Undirected[T]) ContainsEdgeBetween(a, b T) bool {
	return u.Graph.ContainsEdgeBetween(a, b) || u.Graph.ContainsEdgeBetween(b, a)
}

func (u *Undirected[T]) InDegreeOf(v T) (int, error)  { return u.Graph.DegreeOf(v) }
func (u *Undirected[T]) OutDegreeOf(v T) (int, error) { return u.Graph.DegreeOf(v) }

func (u *Undirected[T]) InEdgesOf(v T) (iter.Seq[T], error)  { return u.Graph.EdgesOf(v) }
func (u *Undirected[T]) OutEdgesOf(v T) (iter.Seq[T], error) { return u.Graph.EdgesOf(v) }

// EdgesBetween yields the edges from a to b followed by those from b to a.
func (u *Undirected[T]) EdgesBetween(a, b T) (iter.Seq[T], error) {
	fwd, err := u.Graph.EdgesBetween(a, b)
	if err != nil {
		return nil, err
	}
	if a == b || u.Graph.Type().Undirected() {
		return fwd, nil
	}
	back, err := u.Graph.EdgesBetween(b, a)
	if err != nil {
		return nil, err
	}
	return func(yield func(T) bool) {
		for e := range fwd {
			if !yield(e) {
				return
			}
		}
		for e := range back {
			if !yield(e) {
				return
			}
		}
	}, nil
}

func (u *Undirected[T]) Emits() bool { return emits(u.Graph) }

func (u *Undirected[T]) Observe(fn graph.Listener[T]) func() {
	return relay(u.Graph, fn, passThrough[T])
}
