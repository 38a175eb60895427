package io

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/identity"
	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Target is a graph the importer can write into.
type Target[T comparable] interface {
	graph.Graph[T]
	graph.Attributed[T]
}

// retainer is implemented by graphs that pin REF handles.
type retainer[T comparable] interface {
	RetainVertex(v T)
	ReleaseVertex(v T)
}

type pending struct {
	key, value string
}

// bridge adapts a parser's sink calls to graph mutations. File ids are
// decoded and resolved once; attributes are held back until the parser
// confirms their element.
type bridge[T comparable, K stream.ID] struct {
	// ctx is handed to callbacks
	ctx      context.Context
	g        Target[T]
	regime   identity.Regime
	cfg      *config[T]
	weighted bool

	vertices map[string]T
	edges    map[int]T
	vattrs   map[string][]pending
	eattrs   map[int][]pending
	// keys of vattrs in arrival order, for a deterministic Finish
	vorder []string

	retained []T
	stats    Stats
}

func newBridge[T comparable, K stream.ID](ctx context.Context, g Target[T], regime identity.Regime, cfg *config[T]) *bridge[T, K] {
	return &bridge[T, K]{
		ctx:      inCallback(ctx),
		g:        g,
		regime:   regime,
		cfg:      cfg,
		weighted: g.Type().Weighted(),
		vertices: make(map[string]T),
		edges:    make(map[int]T),
		vattrs:   make(map[string][]pending),
		eattrs:   make(map[int][]pending),
	}
}

var _ stream.Sink[int64] = (*bridge[int32, int64])(nil)
var _ stream.Sink[[]byte] = (*bridge[string, []byte])(nil)

// text decodes a file id.
func text[K stream.ID](id K) (string, error) {
	switch v := any(id).(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case []byte:
		return decode("id", v)
	}
	return "", nil
}

func decode(what string, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errors.New(errors.ErrCodeClassCast, "%s %q is not valid UTF-8", what, b)
	}
	return string(b), nil
}

// resolve returns the vertex for a file id, installing it on first sight.
func (b *bridge[T, K]) resolve(id K) (T, string, error) {
	key, err := text(id)
	if err != nil {
		var zero T
		return zero, "", err
	}
	if v, ok := b.vertices[key]; ok {
		return v, key, nil
	}
	v, err := b.install(id, key)
	if err != nil {
		return v, key, err
	}
	b.vertices[key] = v
	b.stats.Vertices++
	if r, ok := b.g.(retainer[T]); ok && b.regime == identity.REF {
		r.RetainVertex(v)
		b.retained = append(b.retained, v)
	}
	return v, key, nil
}

func (b *bridge[T, K]) install(id K, key string) (T, error) {
	if n, ok := any(id).(int64); ok && b.cfg.integerImportID != nil {
		v, err := b.cfg.integerImportID(b.ctx, n)
		if err != nil {
			return v, err
		}
		return b.g.AddVertexWithID(v)
	}
	if b.cfg.importID != nil {
		v, err := b.cfg.importID(b.ctx, key)
		if err != nil {
			return v, err
		}
		return b.g.AddVertexWithID(v)
	}
	if _, isText := any(id).([]byte); isText && b.regime == identity.REF {
		if v, ok := any(key).(T); ok {
			return b.g.AddVertexWithID(v)
		}
	}
	return b.g.AddVertex()
}

// Vertex implements stream.Sink.
func (b *bridge[T, K]) Vertex(id K) error {
	_, _, err := b.resolve(id)
	return err
}

// VertexAttribute implements stream.Sink.
func (b *bridge[T, K]) VertexAttribute(id K, key, value []byte) error {
	fid, err := text(id)
	if err != nil {
		return err
	}
	p, err := decodePair(key, value)
	if err != nil {
		return err
	}
	if _, ok := b.vattrs[fid]; !ok {
		b.vorder = append(b.vorder, fid)
	}
	b.vattrs[fid] = append(b.vattrs[fid], p)
	return nil
}

// VertexDone implements stream.Sink.
func (b *bridge[T, K]) VertexDone(id K) error {
	v, key, err := b.resolve(id)
	if err != nil {
		return err
	}
	return b.flushVertex(v, key)
}

func (b *bridge[T, K]) flushVertex(v T, key string) error {
	attrs := b.vattrs[key]
	if len(attrs) == 0 {
		return nil
	}
	delete(b.vattrs, key)
	m, err := b.g.VertexAttrs(v)
	if err != nil {
		return err
	}
	for _, p := range attrs {
		if err := m.SetString(p.key, p.value); err != nil {
			return err
		}
		if fn := b.cfg.vertexAttribute; fn != nil {
			fn(b.ctx, v, p.key, p.value)
		}
	}
	return nil
}

// Edge implements stream.Sink.
func (b *bridge[T, K]) Edge(rank int, source, target K) error {
	if _, dup := b.edges[rank]; dup {
		return errors.New(errors.ErrCodeInvalidState, "edge rank %d reported twice", rank)
	}
	u, _, err := b.resolve(source)
	if err != nil {
		return err
	}
	v, _, err := b.resolve(target)
	if err != nil {
		return err
	}
	e, err := b.g.AddEdge(u, v)
	if err != nil {
		return err
	}
	b.edges[rank] = e
	b.stats.Edges++
	return nil
}

// EdgeAttribute implements stream.Sink.
func (b *bridge[T, K]) EdgeAttribute(rank int, key, value []byte) error {
	p, err := decodePair(key, value)
	if err != nil {
		return err
	}
	b.eattrs[rank] = append(b.eattrs[rank], p)
	return nil
}

// EdgeDone implements stream.Sink.
func (b *bridge[T, K]) EdgeDone(rank int) error {
	e, ok := b.edges[rank]
	if !ok {
		return errors.New(errors.ErrCodeInvalidState, "edge rank %d confirmed before it was reported", rank)
	}
	return b.flushEdge(rank, e)
}

func (b *bridge[T, K]) flushEdge(rank int, e T) error {
	attrs := b.eattrs[rank]
	if len(attrs) == 0 {
		return nil
	}
	delete(b.eattrs, rank)
	m, err := b.g.EdgeAttrs(e)
	if err != nil {
		return err
	}
	for _, p := range attrs {
		if p.key == graph.WeightKey {
			if err := b.weight(e, p.value); err != nil {
				return err
			}
		} else if err := m.SetString(p.key, p.value); err != nil {
			return err
		}
		if fn := b.cfg.edgeAttribute; fn != nil {
			fn(b.ctx, e, p.key, p.value)
		}
	}
	return nil
}

// weight applies a weight attribute. Unweighted graphs ignore it.
func (b *bridge[T, K]) weight(e T, value string) error {
	if !b.weighted {
		return nil
	}
	w, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return errors.New(errors.ErrCodeClassCast, "edge weight %q is not a number", value)
	}
	return b.g.SetEdgeWeight(e, w)
}

// GraphAttribute implements stream.Sink.
func (b *bridge[T, K]) GraphAttribute(key, value []byte) error {
	p, err := decodePair(key, value)
	if err != nil {
		return err
	}
	return b.g.GraphAttrs().SetString(p.key, p.value)
}

// Finish flushes attributes whose element was never confirmed and releases
// the handles pinned during the import. An aborted import drops them.
func (b *bridge[T, K]) Finish(aborted bool) error {
	defer b.release()
	if aborted {
		return nil
	}
	for _, key := range b.vorder {
		if _, ok := b.vattrs[key]; !ok {
			continue
		}
		v, ok := b.vertices[key]
		if !ok {
			var err error
			if v, err = b.install(b.fileID(key), key); err != nil {
				return err
			}
			b.vertices[key] = v
			b.stats.Vertices++
		}
		if err := b.flushVertex(v, key); err != nil {
			return err
		}
	}
	for _, rank := range slices.Sorted(maps.Keys(b.eattrs)) {
		e, ok := b.edges[rank]
		if !ok {
			return errors.New(errors.ErrCodeInvalidState, "attributes for unknown edge rank %d", rank)
		}
		if err := b.flushEdge(rank, e); err != nil {
			return err
		}
	}
	return nil
}

func (b *bridge[T, K]) release() {
	r, ok := b.g.(retainer[T])
	if !ok {
		return
	}
	for _, v := range b.retained {
		r.ReleaseVertex(v)
	}
	b.retained = nil
}

// fileID rebuilds a file id from its decoded key.
func (b *bridge[T, K]) fileID(key string) K {
	var id K
	switch p := any(&id).(type) {
	case *int64:
		*p, _ = strconv.ParseInt(key, 10, 64)
	case *[]byte:
		*p = []byte(key)
	}
	return id
}

func decodePair(key, value []byte) (pending, error) {
	k, err := decode("attribute key", key)
	if err != nil {
		return pending{}, err
	}
	v, err := decode("attribute value", value)
	if err != nil {
		return pending{}, err
	}
	return pending{key: k, value: v}, nil
}
