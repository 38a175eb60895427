// Package dag keeps a directed graph acyclic and answers reachability
// questions on it.
//
// # Overview
//
// [DAG] wraps any directed [graph.Graph]. It forwards every operation to the
// wrapped graph, except that [DAG.AddEdge] refuses an edge that would close a
// directed cycle. The check runs before the base is touched, so a rejected
// edge leaves no trace and emits no event.
//
// # Basic Usage
//
//	g := graph.NewString(graph.NewType(graph.Directed()))
//	d, _ := dag.New[string](g)
//	app, _ := d.AddVertexWithID("app")
//	lib, _ := d.AddVertexWithID("lib")
//	d.AddEdge(app, lib)
//	_, err := d.AddEdge(lib, app) // INVALID_ARGUMENT
//
// Query the structure with [DAG.Descendants], [DAG.Ancestors] and
// [DAG.TopologicalOrder]. All three are deterministic for a given insertion
// history. Use [DAG.Validate] after mutating the base directly.
//
// # Concurrency
//
// A DAG is exactly as safe for concurrent use as the graph it wraps, which
// for the default facade means not at all.
//
// # Related Packages
//
// The [transform] subpackage removes cycles from arbitrary directed graphs
// and assigns vertices to layers.
//
// [transform]: github.com/matzehuels/graphkit/pkg/dag/transform
package dag
