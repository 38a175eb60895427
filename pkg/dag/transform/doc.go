// Package transform reshapes directed graphs in place.
//
// # Cycle Removal
//
// [BreakCycles] deletes the back edges of a depth-first search, leaving an
// acyclic graph that [dag.New] accepts.
//
// # Transitive Reduction
//
// [TransitiveReduction] removes redundant edges that can be inferred through
// other paths. If A→B and B→C exist, then A→C is redundant and removed.
//
// # Layer Assignment
//
// [AssignLayers] computes longest-path depths, the usual first step of a
// layered drawing.
//
// All functions work on any [graph.Graph]; mutations go through the graph's
// own methods, so listeners observe every removed edge.
//
// [dag.New]: github.com/matzehuels/graphkit/pkg/dag.New
package transform
