// Package views provides lazy graphs derived from a base graph.
//
// A view holds a reference to its base and computes its answers on demand;
// nothing is copied. Mutations of the base are visible through the view
// immediately. Views must not outlive their base.
//
// # View Kinds
//
//   - [AsUnweighted]: every weight reads 1.0; weight writes are rejected
//   - [AsUndirected]: a directed base seen without direction
//   - [AsEdgeReversed]: sources and targets swapped
//   - [AsUnmodifiable]: reads pass through, mutations are rejected
//   - [AsWeighted]: weights computed by a function, optionally cached
//   - [AsMaskedSubgraph]: vertices and edges hidden by predicates
//   - [AsGraphUnion]: the union of two graphs, read-only
//   - [AsListenable]: a graph with a listener registry
//
// # Events
//
// Every view implements [graph.Observable]. Listeners observing a view see
// the base's event stream translated into the view's terms: masked elements
// are filtered out, reversed edges carry swapped endpoints, and so on.
package views

import (
	"github.com/matzehuels/graphkit/pkg/attr"
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// emits reports whether g delivers structural events.
func emits[T comparable](g graph.Graph[T]) bool {
	o, ok := g.(graph.Observable[T])
	return ok && o.Emits()
}

// relay subscribes fn to the events of g, passing each through tr. tr may
// rewrite an event or drop it by returning false.
func relay[T comparable](g graph.Graph[T], fn graph.Listener[T], tr func(graph.Event[T]) (graph.Event[T], bool)) func() {
	o, ok := g.(graph.Observable[T])
	if !ok || !o.Emits() {
		return func() {}
	}
	return o.Observe(func(ev graph.Event[T]) {
		if out, keep := tr(ev); keep {
			fn(out)
		}
	})
}

func readOnly(view string) error {
	return errors.Unsupported("%s view is unmodifiable", view)
}

func noAttributes() error {
	return errors.Unsupported("base graph does not carry attributes")
}

func passThrough[T comparable](ev graph.Event[T]) (graph.Event[T], bool) { return ev, true }

// attributes returns the attribute surface of g, if any.
func attributes[T comparable](g graph.Graph[T]) (graph.Attributed[T], bool) {
	a, ok := g.(graph.Attributed[T])
	return a, ok
}

// missingEdge is returned by views for edges they do not present.
func missingEdge[T comparable](e T) error {
	return errors.NoSuchElement("edge %v not in graph", e)
}

func missingVertex[T comparable](v T) error {
	return errors.NoSuchElement("vertex %v not in graph", v)
}

// passAttrs forwards the attribute surface of a base graph.
type passAttrs[T comparable] struct {
	base graph.Graph[T]
}

func (p passAttrs[T]) GraphAttrs() graph.AttrMap {
	if a, ok := attributes(p.base); ok {
		return a.GraphAttrs()
	}
	return nil
}

func (p passAttrs[T]) VertexAttrs(v T) (graph.AttrMap, error) {
	if a, ok := attributes(p.base); ok {
		return a.VertexAttrs(v)
	}
	return nil, noAttributes()
}

func (p passAttrs[T]) EdgeAttrs(e T) (graph.AttrMap, error) {
	if a, ok := attributes(p.base); ok {
		return a.EdgeAttrs(e)
	}
	return nil, noAttributes()
}

// readOnlyMap rejects writes to an attribute table.
type readOnlyMap struct {
	graph.AttrMap
	view string
}

func (m readOnlyMap) Set(string, attr.Value) error   { return readOnly(m.view) }
func (m readOnlyMap) SetString(string, string) error { return readOnly(m.view) }
func (m readOnlyMap) Delete(string) (bool, error)    { return false, readOnly(m.view) }

func readOnlyAttrs(m graph.AttrMap, view string) graph.AttrMap {
	if m == nil {
		return nil
	}
	return readOnlyMap{AttrMap: m, view: view}
}
