package graph

import "strings"

// Type describes the structural rules of a graph. It is immutable; the
// With* and As* methods return modified copies.
type Type struct {
	directed   bool
	selfLoops  bool
	multiEdges bool
	weighted   bool
	modifiable bool
}

// TypeOption configures a Type.
type TypeOption func(*Type)

// Directed selects a directed graph.
func Directed() TypeOption { return func(t *Type) { t.directed = true } }

// SelfLoops allows edges whose endpoints coincide.
func SelfLoops() TypeOption { return func(t *Type) { t.selfLoops = true } }

// MultiEdges allows several edges between the same endpoints.
func MultiEdges() TypeOption { return func(t *Type) { t.multiEdges = true } }

// Weighted stores a per-edge weight.
func Weighted() TypeOption { return func(t *Type) { t.weighted = true } }

// NewType returns a modifiable Type. Without options the type is
// undirected, simple and unweighted.
func NewType(opts ...TypeOption) Type {
	t := Type{modifiable: true}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Pseudograph returns the type allowing self-loops and multi-edges.
func Pseudograph(directed, weighted bool) Type {
	return Type{directed: directed, selfLoops: true, multiEdges: true, weighted: weighted, modifiable: true}
}

// SimpleGraph returns the type forbidding self-loops and multi-edges.
func SimpleGraph(directed, weighted bool) Type {
	return Type{directed: directed, weighted: weighted, modifiable: true}
}

func (t Type) Directed() bool         { return t.directed }
func (t Type) Undirected() bool       { return !t.directed }
func (t Type) AllowsSelfLoops() bool  { return t.selfLoops }
func (t Type) AllowsMultiEdges() bool { return t.multiEdges }
func (t Type) Weighted() bool         { return t.weighted }
func (t Type) Modifiable() bool       { return t.modifiable }
func (t Type) Simple() bool           { return !t.selfLoops && !t.multiEdges }
func (t Type) Pseudograph() bool      { return t.selfLoops && t.multiEdges }
func (t Type) AsDirected() Type       { t.directed = true; return t }
func (t Type) AsUndirected() Type     { t.directed = false; return t }
func (t Type) AsWeighted() Type       { t.weighted = true; return t }
func (t Type) AsUnweighted() Type     { t.weighted = false; return t }
func (t Type) AsUnmodifiable() Type   { t.modifiable = false; return t }
func (t Type) WithMultiEdges() Type   { t.multiEdges = true; return t }

// String returns a compact description such as
// "directed, self-loops, weighted".
func (t Type) String() string {
	parts := []string{"undirected"}
	if t.directed {
		parts[0] = "directed"
	}
	if t.selfLoops {
		parts = append(parts, "self-loops")
	}
	if t.multiEdges {
		parts = append(parts, "multi-edges")
	}
	if t.weighted {
		parts = append(parts, "weighted")
	}
	if !t.modifiable {
		parts = append(parts, "unmodifiable")
	}
	return strings.Join(parts, ", ")
}
