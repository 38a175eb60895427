// Package graph defines the uniform graph contract and its standard
// implementation.
//
// Every graph and every view implements [Graph] over an identity type T:
// int32 for the INT regime, int64 for LONG, and any comparable handle for
// REF. Vertices and edges are addressed by those external ids; the dense
// internal indices never leak.
//
// # Constructing Graphs
//
//	g := graph.NewInt(graph.NewType(graph.Directed(), graph.Weighted()))
//	a, _ := g.AddVertex()             // 0
//	b, _ := g.AddVertex()             // 1
//	e, _ := g.AddEdge(a, b)           // 0
//	_ = g.SetEdgeWeight(e, 2.5)
//
// [NewInt] and [NewLong] supply ids from 0 upwards. [NewRef] has no default
// suppliers; [NewString] installs the conventional "v0", "e0" suppliers.
//
// # Events
//
// [Default] emits a structural [Event] for every mutation before the
// mutating call returns. Listeners registered with AddListener run in
// registration order; a listener that mutates the graph has its events
// queued behind the current one.
//
//	g.AddListener(func(e graph.Event[int32]) {
//	    fmt.Println(e.Kind, e.Element)
//	})
//
// # Attributes
//
// GraphAttrs, VertexAttrs and EdgeAttrs expose string-keyed [AttrMap]
// tables. On edges, the reserved key "weight" is not stored: writes are
// coerced to a number and routed to SetEdgeWeight.
//
// # Errors
//
// Failures carry a code from pkg/errors: INVALID_ARGUMENT for policy
// violations and missing endpoints, NO_SUCH_ELEMENT for queries on absent
// elements, UNSUPPORTED for weight writes on unweighted graphs.
package graph
