package views

import (
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// Unweighted presents its base with every weight equal to 1.0.
type Unweighted[T comparable] struct {
	graph.Graph[T]
	passAttrs[T]
}

// AsUnweighted returns an unweighted view of g.
func AsUnweighted[T comparable](g graph.Graph[T]) *Unweighted[T] {
	return &Unweighted[T]{Graph: g, passAttrs: passAttrs[T]{g}}
}

func (u *Unweighted[T]) Type() graph.Type { return u.Graph.Type().AsUnweighted() }

// AddEdge delegates to the base. An explicit weight is rejected.
func (u *Unweighted[T]) AddEdge(s, t T, opts ...graph.EdgeOption[T]) (T, error) {
	if graph.ResolveEdgeOptions(opts).HasWeight {
		var zero T
		return zero, errors.Unsupported("graph is not weighted")
	}
	return u.Graph.AddEdge(s, t, opts...)
}

func (u *Unweighted[T]) EdgeWeight(e T) (float64, error) {
	if !u.Graph.ContainsEdge(e) {
		return 0, missingEdge(e)
	}
	return 1.0, nil
}

func (u *Unweighted[T]) SetEdgeWeight(T, float64) error {
	return errors.Unsupported("graph is not weighted")
}

func (u *Unweighted[T]) EdgeTuple(e T) (graph.Triple[T], error) {
	t, err := u.Graph.EdgeTuple(e)
	t.Weight = 1.0
	return t, err
}

func (u *Unweighted[T]) Emits() bool { return emits(u.Graph) }

// Observe relays base events with weights normalized to 1.0; weight
// updates are invisible.
func (u *Unweighted[T]) Observe(fn graph.Listener[T]) func() {
	return relay(u.Graph, fn, func(ev graph.Event[T]) (graph.Event[T], bool) {
		if ev.Kind == graph.EdgeWeightUpdated {
			return ev, false
		}
		if !ev.Kind.IsVertex() {
			ev.Weight = 1.0
		}
		return ev, true
	})
}
