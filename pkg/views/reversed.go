package views

import (
	"iter"

	"github.com/matzehuels/graphkit/pkg/graph"
)

// EdgeReversed presents its base with every edge pointing the other way.
// Mutations pass through; an edge added from u to v is stored in the base
// from v to u.
type EdgeReversed[T comparable] struct {
	graph.Graph[T]
	passAttrs[T]
}

// AsEdgeReversed returns an edge-reversed view of g.
func AsEdgeReversed[T comparable](g graph.Graph[T]) *EdgeReversed[T] {
	return &EdgeReversed[T]{Graph: g, passAttrs: passAttrs[T]{g}}
}

func (r *EdgeReversed[T]) AddEdge(u, v T, opts ...graph.EdgeOption[T]) (T, error) {
	return r.Graph.AddEdge(v, u, opts...)
}

func (r *EdgeReversed[T]) ContainsEdgeBetween(u, v T) bool { return r.Graph.ContainsEdgeBetween(v, u) }

func (r *EdgeReversed[T]) EdgeSource(e T) (T, error) { return r.Graph.EdgeTarget(e) }
func (r *EdgeReversed[T]) EdgeTarget(e T) (T, error) { return r.Graph.EdgeSource(e) }

func (r *EdgeReversed[T]) EdgeTuple(e T) (graph.Triple[T], error) {
	t, err := r.Graph.EdgeTuple(e)
	t.Source, t.Target = t.Target, t.Source
	return t, err
}

func (r *EdgeReversed[T]) InDegreeOf(v T) (int, error)  { return r.Graph.OutDegreeOf(v) }
func (r *EdgeReversed[T]) OutDegreeOf(v T) (int, error) { return r.Graph.InDegreeOf(v) }

func (r *EdgeReversed[T]) InEdgesOf(v T) (iter.Seq[T], error)  { return r.Graph.OutEdgesOf(v) }
func (r *EdgeReversed[T]) OutEdgesOf(v T) (iter.Seq[T], error) { return r.Graph.InEdgesOf(v) }

func (r *EdgeReversed[T]) EdgesBetween(u, v T) (iter.Seq[T], error) {
	return r.Graph.EdgesBetween(v, u)
}

func (r *EdgeReversed[T]) Emits() bool { return emits(r.Graph) }

// Observe relays base events with edge endpoints swapped.
func (r *EdgeReversed[T]) Observe(fn graph.Listener[T]) func() {
	return relay(r.Graph, fn, func(ev graph.Event[T]) (graph.Event[T], bool) {
		if !ev.Kind.IsVertex() {
			ev.Source, ev.Target = ev.Target, ev.Source
		}
		return ev, true
	})
}
