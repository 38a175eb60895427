package attr

import (
	"maps"
	"slices"
)

// Table is the attribute table of a single element.
type Table map[string]Value

// Keys returns the keys of t in sorted order.
func (t Table) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// Store holds the graph-level table and one table per vertex and edge.
// Element tables are created on first write and dropped with the element.
type Store struct {
	graph    Table
	vertices map[int]Table
	edges    map[int]Table
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		graph:    make(Table),
		vertices: make(map[int]Table),
		edges:    make(map[int]Table),
	}
}

// Graph returns the graph-level table.
func (s *Store) Graph() Table { return s.graph }

// Vertex returns the table of vertex index v, or nil when it has none.
func (s *Store) Vertex(v int) Table { return s.vertices[v] }

// Edge returns the table of edge index e, or nil when it has none.
func (s *Store) Edge(e int) Table { return s.edges[e] }

// SetVertex writes key on vertex v.
func (s *Store) SetVertex(v int, key string, val Value) {
	set(s.vertices, v, key, val)
}

// SetEdge writes key on edge e.
func (s *Store) SetEdge(e int, key string, val Value) {
	set(s.edges, e, key, val)
}

// DeleteVertex removes key from vertex v and reports whether it existed.
func (s *Store) DeleteVertex(v int, key string) bool {
	return del(s.vertices, v, key)
}

// DeleteEdge removes key from edge e and reports whether it existed.
func (s *Store) DeleteEdge(e int, key string) bool {
	return del(s.edges, e, key)
}

// DropVertex discards every attribute of vertex v.
func (s *Store) DropVertex(v int) { delete(s.vertices, v) }

// DropEdge discards every attribute of edge e.
func (s *Store) DropEdge(e int) { delete(s.edges, e) }

// VertexCount returns the number of vertices that carry attributes.
func (s *Store) VertexCount() int { return len(s.vertices) }

// EdgeCount returns the number of edges that carry attributes.
func (s *Store) EdgeCount() int { return len(s.edges) }

func set(m map[int]Table, idx int, key string, val Value) {
	t := m[idx]
	if t == nil {
		t = make(Table)
		m[idx] = t
	}
	t[key] = val
}

func del(m map[int]Table, idx int, key string) bool {
	t := m[idx]
	if t == nil {
		return false
	}
	if _, ok := t[key]; !ok {
		return false
	}
	delete(t, key)
	if len(t) == 0 {
		delete(m, idx)
	}
	return true
}
