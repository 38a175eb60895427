package graph

import (
	"slices"

	"github.com/matzehuels/graphkit/pkg/attr"
	"github.com/matzehuels/graphkit/pkg/errors"
)

// GraphAttrs implements Attributed.
func (g *Default[T]) GraphAttrs() AttrMap {
	return graphAttrs{table: g.attrs.Graph()}
}

// VertexAttrs implements Attributed. It fails with NO_SUCH_ELEMENT when v
// is absent. The returned map is bound to v and fails once v is removed.
func (g *Default[T]) VertexAttrs(v T) (AttrMap, error) {
	if _, err := g.vertexIndex(v); err != nil {
		return nil, err
	}
	return &vertexAttrs[T]{g: g, v: v}, nil
}

// EdgeAttrs implements Attributed. Besides the stored keys, weighted graphs
// expose the edge weight under WeightKey.
func (g *Default[T]) EdgeAttrs(e T) (AttrMap, error) {
	if _, err := g.edgeIndex(e); err != nil {
		return nil, err
	}
	return &edgeAttrs[T]{g: g, e: e}, nil
}

type graphAttrs struct {
	table attr.Table
}

func (m graphAttrs) Get(key string) (attr.Value, bool) {
	v, ok := m.table[key]
	return v, ok
}

func (m graphAttrs) Set(key string, v attr.Value) error {
	if err := errors.ValidateAttributeKey(key); err != nil {
		return err
	}
	m.table[key] = v
	return nil
}

func (m graphAttrs) SetString(key, value string) error {
	return m.Set(key, attr.Text(value))
}

func (m graphAttrs) Delete(key string) (bool, error) {
	_, ok := m.table[key]
	delete(m.table, key)
	return ok, nil
}

func (m graphAttrs) Keys() []string { return m.table.Keys() }
func (m graphAttrs) Len() int       { return len(m.table) }

type vertexAttrs[T comparable] struct {
	g *Default[T]
	v T
}

func (m *vertexAttrs[T]) Get(key string) (attr.Value, bool) {
	idx, err := m.g.vertexIndex(m.v)
	if err != nil {
		return attr.Value{}, false
	}
	val, ok := m.g.attrs.Vertex(idx)[key]
	return val, ok
}

func (m *vertexAttrs[T]) Set(key string, val attr.Value) error {
	idx, err := m.g.vertexIndex(m.v)
	if err != nil {
		return err
	}
	if err := errors.ValidateAttributeKey(key); err != nil {
		return err
	}
	m.g.attrs.SetVertex(idx, key, val)
	return nil
}

func (m *vertexAttrs[T]) SetString(key, value string) error {
	return m.Set(key, attr.Text(value))
}

func (m *vertexAttrs[T]) Delete(key string) (bool, error) {
	idx, err := m.g.vertexIndex(m.v)
	if err != nil {
		return false, err
	}
	return m.g.attrs.DeleteVertex(idx, key), nil
}

func (m *vertexAttrs[T]) Keys() []string {
	idx, err := m.g.vertexIndex(m.v)
	if err != nil {
		return nil
	}
	return m.g.attrs.Vertex(idx).Keys()
}

func (m *vertexAttrs[T]) Len() int {
	idx, err := m.g.vertexIndex(m.v)
	if err != nil {
		return 0
	}
	return len(m.g.attrs.Vertex(idx))
}

type edgeAttrs[T comparable] struct {
	g *Default[T]
	e T
}

func (m *edgeAttrs[T]) Get(key string) (attr.Value, bool) {
	idx, err := m.g.edgeIndex(m.e)
	if err != nil {
		return attr.Value{}, false
	}
	if key == WeightKey && m.g.typ.weighted {
		w, _ := m.g.store.Weight(idx)
		return attr.Float(w), true
	}
	val, ok := m.g.attrs.Edge(idx)[key]
	return val, ok
}

// Set writes key. The weight key is never stored: its value is coerced to
// a number and written through SetEdgeWeight, so the write either updates
// the weight or fails without touching the table.
func (m *edgeAttrs[T]) Set(key string, val attr.Value) error {
	idx, err := m.g.edgeIndex(m.e)
	if err != nil {
		return err
	}
	if key == WeightKey {
		w, err := val.AsFloat()
		if err != nil {
			return err
		}
		return m.g.SetEdgeWeight(m.e, w)
	}
	if err := errors.ValidateAttributeKey(key); err != nil {
		return err
	}
	m.g.attrs.SetEdge(idx, key, val)
	return nil
}

func (m *edgeAttrs[T]) SetString(key, value string) error {
	return m.Set(key, attr.Text(value))
}

func (m *edgeAttrs[T]) Delete(key string) (bool, error) {
	idx, err := m.g.edgeIndex(m.e)
	if err != nil {
		return false, err
	}
	if key == WeightKey {
		return false, errors.Unsupported("the %s attribute cannot be deleted", WeightKey)
	}
	return m.g.attrs.DeleteEdge(idx, key), nil
}

// Keys lists the stored keys plus WeightKey on weighted graphs, sorted.
func (m *edgeAttrs[T]) Keys() []string {
	idx, err := m.g.edgeIndex(m.e)
	if err != nil {
		return nil
	}
	keys := m.g.attrs.Edge(idx).Keys()
	if m.g.typ.weighted {
		i, _ := slices.BinarySearch(keys, WeightKey)
		keys = slices.Insert(keys, i, WeightKey)
	}
	return keys
}

func (m *edgeAttrs[T]) Len() int {
	idx, err := m.g.edgeIndex(m.e)
	if err != nil {
		return 0
	}
	n := len(m.g.attrs.Edge(idx))
	if m.g.typ.weighted {
		n++
	}
	return n
}
