package views

import (
	"iter"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// Combiner merges the weights of an edge present in both operands of a
// union.
type Combiner func(a, b float64) float64

// Sum adds both weights.
func Sum(a, b float64) float64 { return a + b }

// Union is the read-only union of two graphs. Vertex and edge sets unite;
// an edge present in both keeps the endpoints of the first graph and the
// combined weight. The union may contain multi-edges even when neither
// operand does.
type Union[T comparable] struct {
	g1, g2  graph.Graph[T]
	combine Combiner
}

// AsGraphUnion returns the union of g1 and g2, which must agree on
// direction. A nil combiner sums weights.
func AsGraphUnion[T comparable](g1, g2 graph.Graph[T], combine Combiner) (*Union[T], error) {
	if g1 == nil || g2 == nil {
		return nil, errors.New(errors.ErrCodeNullPointer, "union operand is nil")
	}
	if g1.Type().Directed() != g2.Type().Directed() {
		return nil, errors.InvalidArgument("cannot unite a directed and an undirected graph")
	}
	if combine == nil {
		combine = Sum
	}
	return &Union[T]{g1: g1, g2: g2, combine: combine}, nil
}

const unionView = "union"

func (u *Union[T]) Type() graph.Type {
	t := u.g1.Type().WithMultiEdges().AsUnmodifiable()
	if u.g2.Type().Weighted() {
		t = t.AsWeighted()
	}
	return t
}

func (u *Union[T]) AddVertex() (T, error) {
	var zero T
	return zero, readOnly(unionView)
}

func (u *Union[T]) AddVertexWithID(T) (T, error) {
	var zero T
	return zero, readOnly(unionView)
}

func (u *Union[T]) AddEdge(T, T, ...graph.EdgeOption[T]) (T, error) {
	var zero T
	return zero, readOnly(unionView)
}

func (u *Union[T]) RemoveVertex(T) (bool, error)    { return false, readOnly(unionView) }
func (u *Union[T]) RemoveEdge(T) (bool, error)      { return false, readOnly(unionView) }
func (u *Union[T]) SetEdgeWeight(T, float64) error  { return readOnly(unionView) }
func (u *Union[T]) ContainsVertex(v T) bool         { return u.g1.ContainsVertex(v) || u.g2.ContainsVertex(v) }
func (u *Union[T]) ContainsEdge(e T) bool           { return u.g1.ContainsEdge(e) || u.g2.ContainsEdge(e) }
func (u *Union[T]) onlySecond(e T) bool             { return !u.g1.ContainsEdge(e) }
func (u *Union[T]) onlySecondVertex(v T) bool       { return !u.g1.ContainsVertex(v) }
func (u *Union[T]) ContainsEdgeBetween(a, b T) bool { return u.between(a, b) }
func (u *Union[T]) EdgeSource(e T) (T, error)       { return u.owner(e).EdgeSource(e) }
func (u *Union[T]) EdgeTarget(e T) (T, error)       { return u.owner(e).EdgeTarget(e) }

// owner is the operand whose endpoints define e.
func (u *Union[T]) owner(e T) graph.Graph[T] {
	if u.g1.ContainsEdge(e) {
		return u.g1
	}
	return u.g2
}

func (u *Union[T]) between(a, b T) bool {
	seq, err := u.EdgesBetween(a, b)
	return err == nil && nonEmpty(seq)
}

func (u *Union[T]) EdgeTuple(e T) (graph.Triple[T], error) {
	t, err := u.owner(e).EdgeTuple(e)
	if err != nil {
		return t, err
	}
	t.Weight, err = u.EdgeWeight(e)
	return t, err
}

func (u *Union[T]) EdgeWeight(e T) (float64, error) {
	in1, in2 := u.g1.ContainsEdge(e), u.g2.ContainsEdge(e)
	switch {
	case in1 && in2:
		w1, err := u.g1.EdgeWeight(e)
		if err != nil {
			return 0, err
		}
		w2, err := u.g2.EdgeWeight(e)
		if err != nil {
			return 0, err
		}
		return u.combine(w1, w2), nil
	case in1:
		return u.g1.EdgeWeight(e)
	case in2:
		return u.g2.EdgeWeight(e)
	}
	return 0, missingEdge(e)
}

func concat[T any](a, b iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range a {
			if !yield(x) {
				return
			}
		}
		for x := range b {
			if !yield(x) {
				return
			}
		}
	}
}

func none[T any](func(T) bool) {}

// unite yields the edges of v in g1 followed by those only g2 has.
func (u *Union[T]) unite(v T, of1, of2 func(T) (iter.Seq[T], error)) (iter.Seq[T], error) {
	if !u.ContainsVertex(v) {
		return nil, missingVertex(v)
	}
	first, second := iter.Seq[T](none[T]), iter.Seq[T](none[T])
	if u.g1.ContainsVertex(v) {
		seq, err := of1(v)
		if err != nil {
			return nil, err
		}
		first = seq
	}
	if u.g2.ContainsVertex(v) {
		seq, err := of2(v)
		if err != nil {
			return nil, err
		}
		second = filter(seq, u.onlySecond)
	}
	return concat(first, second), nil
}

func (u *Union[T]) EdgesOf(v T) (iter.Seq[T], error) {
	return u.unite(v, u.g1.EdgesOf, u.g2.EdgesOf)
}

func (u *Union[T]) InEdgesOf(v T) (iter.Seq[T], error) {
	return u.unite(v, u.g1.InEdgesOf, u.g2.InEdgesOf)
}

func (u *Union[T]) OutEdgesOf(v T) (iter.Seq[T], error) {
	return u.unite(v, u.g1.OutEdgesOf, u.g2.OutEdgesOf)
}

func (u *Union[T]) EdgesBetween(a, b T) (iter.Seq[T], error) {
	if !u.ContainsVertex(a) {
		return nil, missingVertex(a)
	}
	if !u.ContainsVertex(b) {
		return nil, missingVertex(b)
	}
	first, second := iter.Seq[T](none[T]), iter.Seq[T](none[T])
	if u.g1.ContainsVertex(a) && u.g1.ContainsVertex(b) {
		seq, err := u.g1.EdgesBetween(a, b)
		if err != nil {
			return nil, err
		}
		first = seq
	}
	if u.g2.ContainsVertex(a) && u.g2.ContainsVertex(b) {
		seq, err := u.g2.EdgesBetween(a, b)
		if err != nil {
			return nil, err
		}
		second = filter(seq, u.onlySecond)
	}
	return concat(first, second), nil
}

// DegreeOf counts united incident edges, self-loops twice.
func (u *Union[T]) DegreeOf(v T) (int, error) {
	seq, err := u.EdgesOf(v)
	if err != nil {
		return 0, err
	}
	n := 0
	for e := range seq {
		n++
		if t, _ := u.owner(e).EdgeTuple(e); t.Source == t.Target {
			n++
		}
	}
	return n, nil
}

func (u *Union[T]) InDegreeOf(v T) (int, error) {
	if u.g1.Type().Undirected() {
		return u.DegreeOf(v)
	}
	seq, err := u.InEdgesOf(v)
	if err != nil {
		return 0, err
	}
	return count(seq), nil
}

func (u *Union[T]) OutDegreeOf(v T) (int, error) {
	if u.g1.Type().Undirected() {
		return u.DegreeOf(v)
	}
	seq, err := u.OutEdgesOf(v)
	if err != nil {
		return 0, err
	}
	return count(seq), nil
}

func (u *Union[T]) Vertices() iter.Seq[T] {
	return concat(u.g1.Vertices(), filter(u.g2.Vertices(), u.onlySecondVertex))
}

func (u *Union[T]) Edges() iter.Seq[T] {
	return concat(u.g1.Edges(), filter(u.g2.Edges(), u.onlySecond))
}

func (u *Union[T]) VertexCount() int {
	return u.g1.VertexCount() + count(filter(u.g2.Vertices(), u.onlySecondVertex))
}

func (u *Union[T]) EdgeCount() int {
	return u.g1.EdgeCount() + count(filter(u.g2.Edges(), u.onlySecond))
}

func (u *Union[T]) Emits() bool { return emits(u.g1) || emits(u.g2) }

// Observe relays the events of both operands. A structural event is
// dropped while the other operand still holds the element, since the union
// does not change. Weight updates carry the combined weight.
func (u *Union[T]) Observe(fn graph.Listener[T]) func() {
	tr := func(other graph.Graph[T]) func(graph.Event[T]) (graph.Event[T], bool) {
		return func(ev graph.Event[T]) (graph.Event[T], bool) {
			switch {
			case ev.Kind == graph.EdgeWeightUpdated:
				t, err := u.EdgeTuple(ev.Element)
				if err != nil {
					return ev, false
				}
				ev.Source, ev.Target, ev.Weight = t.Source, t.Target, t.Weight
				return ev, true
			case ev.Kind.IsVertex():
				return ev, !other.ContainsVertex(ev.Element)
			default:
				return ev, !other.ContainsEdge(ev.Element)
			}
		}
	}
	c1 := relay(u.g1, fn, tr(u.g2))
	c2 := relay(u.g2, fn, tr(u.g1))
	return func() {
		c1()
		c2()
	}
}
