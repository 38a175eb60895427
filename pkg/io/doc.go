// Package io moves graphs between files and the in-memory graph engine.
//
// # Overview
//
// Every supported format has a streaming parser in its own subpackage. A
// parser reads the input once and pushes vertices, edges and attributes into
// a [stream.Sink]. [Import] connects such a parser to a target graph through
// a bridge that maps file ids to graph identities, buffers attributes until
// an element is complete and reports them to the caller's observers.
//
// # Formats
//
//   - dimacs: "p" problem line with "e"/"a" edge lines, ids 1..n
//   - gml: Graph Modelling Language lists with integer node ids
//   - json: {"nodes": [{"id": ...}], "edges": [{"source": ..., "target": ...}]}
//   - csv: adjacency lists, edge lists and matrices (see [csvgraph.Options])
//   - gexf: GEXF 1.2 and 1.3 XML
//   - dot: Graphviz DOT, parsed with cgraph
//   - graph6: graph6 and sparse6 strings
//   - graphml: GraphML XML, in a simple and a full variant
//
// # Import
//
// The target decides how file ids become identities. INT and LONG graphs
// draw fresh ids from their vertex supplier in order of first appearance,
// unless an import-id function is given. String-keyed REF graphs use the
// file id itself:
//
//	g := graph.NewString(graph.NewType(graph.Directed()))
//	stats, err := io.Import[string](ctx, g, io.JSON, io.File("deps.json"))
//	if errors.Is(err, errors.ErrCodeImport) {
//	    // parse failure; the message carries the format and position
//	}
//
// Attribute observers receive every attribute the parser reports, including
// the synthetic "ID" attribute some formats attach to vertices:
//
//	io.Import[int32](ctx, g, io.GML, io.String(doc),
//	    io.WithVertexAttributes(func(_ context.Context, v int32, key, value string) {
//	        labels[v] = value
//	    }))
//
// Callbacks receive a context marked as belonging to the running import.
// Starting another import with it, or importing into a graph that is
// already the target of a running import, fails with INVALID_STATE.
//
// [ReadEdgeList] skips the graph entirely and returns the edges as
// (source, target, weight) triples.
//
// # Registry
//
// Parsers are looked up by format, identity regime and [SourceKind]. All
// built-in formats are registered for every combination; [Register]
// replaces an entry.
//
// # Export
//
// [Export] writes JSON, DIMACS, GML, CSV and DOT. Output written by Export
// imports back into a structurally equal graph.
//
// [stream.Sink]: github.com/matzehuels/graphkit/pkg/io/stream.Sink
// [csvgraph.Options]: github.com/matzehuels/graphkit/pkg/io/csvgraph.Options
package io
