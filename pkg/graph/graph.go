package graph

import (
	"iter"

	"github.com/matzehuels/graphkit/pkg/attr"
	"github.com/matzehuels/graphkit/pkg/identity"
)

// Graph is the uniform contract shared by graphs and views. T is the
// external identity type of vertices and edges.
//
// Sequences returned by the *Of and EdgesBetween methods are lazy and
// single-use. Structurally modifying the graph while consuming one makes
// the sequence panic with an INVALID_STATE error.
type Graph[T comparable] interface {
	Type() Type

	// AddVertex creates a vertex whose id comes from the vertex supplier.
	AddVertex() (T, error)
	// AddVertexWithID installs v. Adding an existing vertex is a no-op that
	// returns v.
	AddVertexWithID(v T) (T, error)
	// RemoveVertex removes v and its incident edges. It returns false when
	// v is absent.
	RemoveVertex(v T) (bool, error)
	ContainsVertex(v T) bool

	// AddEdge connects u to v. Without WithEdgeID the id comes from the
	// edge supplier; an explicit id that already exists is returned
	// unchanged.
	AddEdge(u, v T, opts ...EdgeOption[T]) (T, error)
	// RemoveEdge removes e. It returns false when e is absent.
	RemoveEdge(e T) (bool, error)
	ContainsEdge(e T) bool
	ContainsEdgeBetween(u, v T) bool

	EdgeSource(e T) (T, error)
	EdgeTarget(e T) (T, error)
	EdgeTuple(e T) (Triple[T], error)

	DegreeOf(v T) (int, error)
	InDegreeOf(v T) (int, error)
	OutDegreeOf(v T) (int, error)

	EdgesOf(v T) (iter.Seq[T], error)
	InEdgesOf(v T) (iter.Seq[T], error)
	OutEdgesOf(v T) (iter.Seq[T], error)
	EdgesBetween(u, v T) (iter.Seq[T], error)

	EdgeWeight(e T) (float64, error)
	SetEdgeWeight(e T, w float64) error

	Vertices() iter.Seq[T]
	Edges() iter.Seq[T]
	VertexCount() int
	EdgeCount() int
}

// Triple is an edge's endpoints and weight.
type Triple[T comparable] struct {
	Source T
	Target T
	Weight float64
}

// Observable is implemented by graphs that can report structural changes.
// Views implement it by relaying their base's events.
type Observable[T comparable] interface {
	// Emits reports whether Observe delivers events.
	Emits() bool
	// Observe subscribes fn and returns a function that cancels the
	// subscription.
	Observe(fn Listener[T]) (cancel func())
}

// Listenable is a graph with a public listener registry.
type Listenable[T comparable] interface {
	Graph[T]
	AddListener(fn Listener[T]) ListenerID
	RemoveListener(id ListenerID) bool
}

// Attributed is implemented by graphs that carry attributes.
type Attributed[T comparable] interface {
	GraphAttrs() AttrMap
	VertexAttrs(v T) (AttrMap, error)
	EdgeAttrs(e T) (AttrMap, error)
}

// Regimed is implemented by graphs backed by an identity registry. The
// importer uses it to pick an id shape.
type Regimed interface {
	Regime() identity.Regime
}

// AttrMap is the attribute table of one element. Keys are strings; values
// are typed but always have a textual form.
type AttrMap interface {
	Get(key string) (attr.Value, bool)
	Set(key string, v attr.Value) error
	// SetString writes a textual value. On edges the reserved key
	// "weight" is parsed and routed to the edge weight.
	SetString(key, value string) error
	Delete(key string) (bool, error)
	Keys() []string
	Len() int
}

// WeightKey is the reserved edge attribute mirroring the edge weight.
const WeightKey = "weight"

// EdgeSpec collects the optional arguments of AddEdge.
type EdgeSpec[T comparable] struct {
	ID        T
	HasID     bool
	Weight    float64
	HasWeight bool
}

// EdgeOption configures AddEdge.
type EdgeOption[T comparable] func(*EdgeSpec[T])

// WithEdgeID installs the edge under an explicit id.
func WithEdgeID[T comparable](id T) EdgeOption[T] {
	return func(s *EdgeSpec[T]) { s.ID, s.HasID = id, true }
}

// WithWeight sets the initial weight. The graph must be weighted.
func WithWeight[T comparable](w float64) EdgeOption[T] {
	return func(s *EdgeSpec[T]) { s.Weight, s.HasWeight = w, true }
}

// ResolveEdgeOptions applies opts to an empty EdgeSpec.
func ResolveEdgeOptions[T comparable](opts []EdgeOption[T]) EdgeSpec[T] {
	var s EdgeSpec[T]
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Collect drains seq into a slice. A nil seq yields nil.
func Collect[T any](seq iter.Seq[T]) []T {
	if seq == nil {
		return nil
	}
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}
