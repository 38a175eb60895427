// Package pkg provides the core libraries of graphkit, an in-memory graph
// engine with importers for the common graph interchange formats.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. Engine - the graph contract, its storage and identity regimes
//  2. Views - lazy graphs derived from a base graph, plus the event bus
//  3. Import - format parsers and the dispatcher that feeds graphs
//  4. Tooling - algorithms, drawings and the load pipeline used by the CLI
//     and the HTTP server
//
// # Architecture
//
// The typical data flow through graphkit:
//
//	DIMACS / GML / JSON / CSV / GEXF / DOT / graph6 / GraphML
//	         ↓
//	    [io/stream] parsers (records in file order)
//	         ↓
//	    [io] dispatcher (id mapping, attributes, weights)
//	         ↓
//	    [graph] facade over the dense store and an [identity] regime
//	         ↓
//	    [views], [sparse], [dag] and [render/nodelink]
//
// # Quick Start
//
//	g := graph.NewString(graph.NewType(graph.Directed(), graph.Weighted()))
//	stats, err := io.Import[string](ctx, g, io.GML, io.File("karate.gml"))
//	if err != nil {
//	    return err
//	}
//	rev := views.AsEdgeReversed[string](g)
//
// # Main Packages
//
// ## Engine
//
// [graph] - The uniform [graph.Graph] contract, graph types and the
// standard implementation. NewInt, NewLong, NewString and NewRef select
// the identity regime.
//
// [identity] - Dense INT and LONG regimes and the REF regime that maps
// arbitrary ids onto internal slots.
//
// [supplier] - Deterministic integer and string id generators, plus UUIDs.
//
// [attr] - Typed attribute storage for graphs, vertices and edges.
//
// [errors] - The coded error taxonomy shared by every package.
//
// ## Views and events
//
// [views] - Reversed, undirected, masked, union, unmodifiable, weighted,
// unweighted and listenable views.
//
// [event] - The synchronous dispatcher behind listenable graphs.
//
// ## Import
//
// [io] - Import and Export dispatch by [io.Format]; one subpackage per
// format parser.
//
// ## Tooling
//
// [sparse] - Immutable compressed sparse row graphs.
//
// [dag] and [dag/transform] - Acyclic graphs, cycle removal, layering and
// transitive reduction.
//
// [render/nodelink] - Node-link drawings through Graphviz.
//
// [pipeline] - Loading a file under any regime and summarizing it.
//
// [observability] - Hooks for metrics and the context logger.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/graph
// [identity]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/identity
// [supplier]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/supplier
// [attr]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/attr
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/errors
// [views]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/views
// [event]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/event
// [io]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/io
// [io/stream]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/io/stream
// [sparse]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/sparse
// [dag]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/dag/transform
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphkit/pkg/observability
package pkg
