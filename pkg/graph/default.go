package graph

import (
	"iter"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphkit/internal/store"
	"github.com/matzehuels/graphkit/pkg/attr"
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/event"
	"github.com/matzehuels/graphkit/pkg/identity"
	"github.com/matzehuels/graphkit/pkg/supplier"
)

// Default is the standard graph: a dense-index store, an identity registry
// per element kind, an attribute store and an event bus. It implements
// Graph, Listenable, Observable and Attributed.
//
// A Default is not safe for concurrent use.
type Default[T comparable] struct {
	typ      Type
	store    *store.Store
	vertices identity.Registry[T]
	edges    identity.Registry[T]
	attrs    *attr.Store
	bus      *event.Bus[Event[T]]

	vertexSupplier supplier.Supplier[T]
	edgeSupplier   supplier.Supplier[T]
	logger         *log.Logger
}

// Option configures a Default graph.
type Option[T comparable] func(*config[T])

type config[T comparable] struct {
	vertexSupplier supplier.Supplier[T]
	edgeSupplier   supplier.Supplier[T]
	logger         *log.Logger
	maxDepth       int
	vertexCap      int
	edgeCap        int
}

// WithVertexSupplier sets the supplier used by AddVertex.
func WithVertexSupplier[T comparable](s supplier.Supplier[T]) Option[T] {
	return func(c *config[T]) { c.vertexSupplier = s }
}

// WithEdgeSupplier sets the supplier used by AddEdge without an explicit id.
func WithEdgeSupplier[T comparable](s supplier.Supplier[T]) Option[T] {
	return func(c *config[T]) { c.edgeSupplier = s }
}

// WithLogger sets the logger used to report recovered listener panics.
func WithLogger[T comparable](l *log.Logger) Option[T] {
	return func(c *config[T]) { c.logger = l }
}

// WithMaxEventDepth bounds re-entrant event emission.
func WithMaxEventDepth[T comparable](n int) Option[T] {
	return func(c *config[T]) { c.maxDepth = n }
}

// WithCapacity preallocates room for n vertices and m edges.
func WithCapacity[T comparable](n, m int) Option[T] {
	return func(c *config[T]) { c.vertexCap, c.edgeCap = n, m }
}

// NewInt returns an empty graph with int32 identities. Vertex and edge ids
// are supplied from 0 upwards unless other suppliers are configured.
func NewInt(t Type, opts ...Option[int32]) *Default[int32] {
	defaults := []Option[int32]{
		WithVertexSupplier[int32](supplier.NewInt[int32](0)),
		WithEdgeSupplier[int32](supplier.NewInt[int32](0)),
	}
	return newDefault[int32](t, identity.NewInt(), identity.NewInt(), append(defaults, opts...))
}

// NewLong returns an empty graph with int64 identities. Vertex and edge ids
// are supplied from 0 upwards unless other suppliers are configured.
func NewLong(t Type, opts ...Option[int64]) *Default[int64] {
	defaults := []Option[int64]{
		WithVertexSupplier[int64](supplier.NewInt[int64](0)),
		WithEdgeSupplier[int64](supplier.NewInt[int64](0)),
	}
	return newDefault[int64](t, identity.NewLong(), identity.NewLong(), append(defaults, opts...))
}

// NewRef returns an empty graph whose identities are arbitrary comparable
// handles. There are no default suppliers: AddVertex and AddEdge without an
// explicit id fail with NULL_POINTER until suppliers are configured.
func NewRef[T comparable](t Type, opts ...Option[T]) *Default[T] {
	return newDefault[T](t, identity.NewRef[T](), identity.NewRef[T](), opts)
}

// NewString returns a REF graph keyed by strings with the conventional
// "v0, v1, ..." and "e0, e1, ..." suppliers.
func NewString(t Type, opts ...Option[string]) *Default[string] {
	defaults := []Option[string]{
		WithVertexSupplier[string](supplier.NewString("v", 0)),
		WithEdgeSupplier[string](supplier.NewString("e", 0)),
	}
	return NewRef(t, append(defaults, opts...)...)
}

func newDefault[T comparable](t Type, vr, er identity.Registry[T], opts []Option[T]) *Default[T] {
	c := config[T]{maxDepth: event.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	t.modifiable = true
	s := store.New(store.Policy{
		Directed:   t.directed,
		SelfLoops:  t.selfLoops,
		MultiEdges: t.multiEdges,
	})
	s.Grow(c.vertexCap, c.edgeCap)
	return &Default[T]{
		typ:            t,
		store:          s,
		vertices:       vr,
		edges:          er,
		attrs:          attr.NewStore(),
		bus:            event.NewBus[Event[T]](event.WithMaxDepth(c.maxDepth), event.WithLogger(c.logger)),
		vertexSupplier: c.vertexSupplier,
		edgeSupplier:   c.edgeSupplier,
		logger:         c.logger,
	}
}

// Type implements Graph.
func (g *Default[T]) Type() Type { return g.typ }

// Regime reports the identity regime of the graph.
func (g *Default[T]) Regime() identity.Regime { return g.vertices.Regime() }

// Grow preallocates room for n more vertices and m more edges.
func (g *Default[T]) Grow(n, m int) { g.store.Grow(n, m) }

// =============================================================================
// Vertices
// =============================================================================

// AddVertex implements Graph.
func (g *Default[T]) AddVertex() (T, error) {
	var zero T
	if g.vertexSupplier == nil {
		return zero, errors.New(errors.ErrCodeNullPointer, "graph has no vertex supplier")
	}
	v := g.vertexSupplier.Next()
	if g.vertices.Contains(v) {
		return zero, errors.InvalidArgument("vertex supplier returned existing vertex %v", v)
	}
	return g.installVertex(v)
}

// AddVertexWithID implements Graph.
func (g *Default[T]) AddVertexWithID(v T) (T, error) {
	if isNil(v) {
		return v, errors.New(errors.ErrCodeNullPointer, "vertex cannot be nil")
	}
	if g.vertices.Contains(v) {
		return v, nil
	}
	return g.installVertex(v)
}

func (g *Default[T]) installVertex(v T) (T, error) {
	if err := g.bus.Admit(); err != nil {
		return v, err
	}
	idx := g.store.AddVertex()
	if err := g.vertices.Inject(v, idx); err != nil {
		_ = g.store.RemoveVertex(idx, nil)
		return v, err
	}
	g.publish(Event[T]{Kind: VertexAdded, Element: v})
	return v, nil
}

// RemoveVertex implements Graph. Incident edges are removed first, each
// with its own EdgeRemoved event published while v is still present; the
// VertexRemoved event comes last.
func (g *Default[T]) RemoveVertex(v T) (bool, error) {
	idx, ok := g.vertices.Lookup(v)
	if !ok {
		return false, nil
	}
	if err := g.bus.Admit(); err != nil {
		return false, err
	}
	incident, err := g.store.EdgesOf(idx)
	if err != nil {
		return false, err
	}
	var handles []T
	for e := range incident {
		handles = append(handles, g.edges.TranslateOut(e))
	}
	for _, e := range handles {
		// a listener may have removed it already
		if ei, ok := g.edges.Lookup(e); ok {
			if err := g.removeEdgeAt(ei, e); err != nil {
				return false, err
			}
		}
	}

	// edges added by listeners in the meantime go with the vertex
	var late []Event[T]
	err = g.store.RemoveVertex(idx, func(e, u, w int, weight float64) {
		late = append(late, Event[T]{
			Kind:    EdgeRemoved,
			Element: g.edges.TranslateOut(e),
			Source:  g.vertices.TranslateOut(u),
			Target:  g.vertices.TranslateOut(w),
			Weight:  weight,
		})
		g.edges.Release(e)
		g.attrs.DropEdge(e)
	})
	if err != nil {
		return false, err
	}
	g.vertices.Release(idx)
	g.attrs.DropVertex(idx)
	for _, ev := range late {
		g.publish(ev)
	}
	g.publish(Event[T]{Kind: VertexRemoved, Element: v})
	return true, nil
}

// ContainsVertex implements Graph.
func (g *Default[T]) ContainsVertex(v T) bool { return g.vertices.Contains(v) }

// VertexCount implements Graph.
func (g *Default[T]) VertexCount() int { return g.store.VertexCount() }

// Vertices implements Graph. Vertices are enumerated in slot order, which is
// insertion order until removed slots are reused.
func (g *Default[T]) Vertices() iter.Seq[T] {
	return g.translate(g.store.Vertices(), g.vertices)
}

// =============================================================================
// Edges
// =============================================================================

// AddEdge implements Graph.
func (g *Default[T]) AddEdge(u, v T, opts ...EdgeOption[T]) (T, error) {
	spec := ResolveEdgeOptions(opts)
	var zero T
	if spec.HasWeight && !g.typ.weighted {
		return zero, errors.Unsupported("graph is not weighted")
	}
	if spec.HasID {
		if isNil(spec.ID) {
			return zero, errors.New(errors.ErrCodeNullPointer, "edge cannot be nil")
		}
		if g.edges.Contains(spec.ID) {
			return spec.ID, nil
		}
	}
	ui, ok := g.vertices.Lookup(u)
	if !ok {
		return zero, errors.InvalidArgument("source vertex %v not in graph", u)
	}
	vi, ok := g.vertices.Lookup(v)
	if !ok {
		return zero, errors.InvalidArgument("target vertex %v not in graph", v)
	}
	if err := g.store.CheckEdge(ui, vi); err != nil {
		return zero, errors.InvalidArgument("edge (%v, %v): %s", u, v, errors.UserMessage(err))
	}

	id := spec.ID
	if !spec.HasID {
		if g.edgeSupplier == nil {
			return zero, errors.New(errors.ErrCodeNullPointer, "graph has no edge supplier")
		}
		id = g.edgeSupplier.Next()
		if g.edges.Contains(id) {
			return zero, errors.InvalidArgument("edge supplier returned existing edge %v", id)
		}
	}
	if err := g.bus.Admit(); err != nil {
		return zero, err
	}

	e, err := g.store.AddEdge(ui, vi)
	if err != nil {
		return zero, err
	}
	if err := g.edges.Inject(id, e); err != nil {
		_ = g.store.RemoveEdge(e)
		return zero, err
	}
	weight := store.DefaultWeight
	if spec.HasWeight {
		weight = spec.Weight
		_ = g.store.SetWeight(e, weight)
	}
	g.publish(Event[T]{Kind: EdgeAdded, Element: id, Source: u, Target: v, Weight: weight})
	return id, nil
}

// RemoveEdge implements Graph.
func (g *Default[T]) RemoveEdge(e T) (bool, error) {
	idx, ok := g.edges.Lookup(e)
	if !ok {
		return false, nil
	}
	if err := g.bus.Admit(); err != nil {
		return false, err
	}
	if err := g.removeEdgeAt(idx, e); err != nil {
		return false, err
	}
	return true, nil
}

func (g *Default[T]) removeEdgeAt(idx int, e T) error {
	u, v, _ := g.store.Endpoints(idx)
	w, _ := g.store.Weight(idx)
	if err := g.store.RemoveEdge(idx); err != nil {
		return err
	}
	g.edges.Release(idx)
	g.attrs.DropEdge(idx)
	g.publish(Event[T]{
		Kind:    EdgeRemoved,
		Element: e,
		Source:  g.vertices.TranslateOut(u),
		Target:  g.vertices.TranslateOut(v),
		Weight:  w,
	})
	return nil
}

// ContainsEdge implements Graph.
func (g *Default[T]) ContainsEdge(e T) bool { return g.edges.Contains(e) }

// ContainsEdgeBetween implements Graph.
func (g *Default[T]) ContainsEdgeBetween(u, v T) bool {
	ui, ok := g.vertices.Lookup(u)
	if !ok {
		return false
	}
	vi, ok := g.vertices.Lookup(v)
	if !ok {
		return false
	}
	return g.store.ContainsEdgeBetween(ui, vi)
}

// EdgeCount implements Graph.
func (g *Default[T]) EdgeCount() int { return g.store.EdgeCount() }

// Edges implements Graph.
func (g *Default[T]) Edges() iter.Seq[T] {
	return g.translate(g.store.Edges(), g.edges)
}

// EdgeSource implements Graph.
func (g *Default[T]) EdgeSource(e T) (T, error) {
	t, err := g.EdgeTuple(e)
	return t.Source, err
}

// EdgeTarget implements Graph.
func (g *Default[T]) EdgeTarget(e T) (T, error) {
	t, err := g.EdgeTuple(e)
	return t.Target, err
}

// EdgeTuple implements Graph.
func (g *Default[T]) EdgeTuple(e T) (Triple[T], error) {
	idx, err := g.edgeIndex(e)
	if err != nil {
		return Triple[T]{}, err
	}
	u, v, _ := g.store.Endpoints(idx)
	w, _ := g.store.Weight(idx)
	return Triple[T]{
		Source: g.vertices.TranslateOut(u),
		Target: g.vertices.TranslateOut(v),
		Weight: w,
	}, nil
}

// EdgeWeight implements Graph. Unweighted graphs report 1.0.
func (g *Default[T]) EdgeWeight(e T) (float64, error) {
	idx, err := g.edgeIndex(e)
	if err != nil {
		return 0, err
	}
	if !g.typ.weighted {
		return store.DefaultWeight, nil
	}
	return g.store.Weight(idx)
}

// SetEdgeWeight implements Graph. It fails with UNSUPPORTED on unweighted
// graphs.
func (g *Default[T]) SetEdgeWeight(e T, w float64) error {
	if !g.typ.weighted {
		return errors.Unsupported("graph is not weighted")
	}
	idx, err := g.edgeIndex(e)
	if err != nil {
		return err
	}
	if err := g.bus.Admit(); err != nil {
		return err
	}
	_ = g.store.SetWeight(idx, w)
	u, v, _ := g.store.Endpoints(idx)
	g.publish(Event[T]{
		Kind:    EdgeWeightUpdated,
		Element: e,
		Source:  g.vertices.TranslateOut(u),
		Target:  g.vertices.TranslateOut(v),
		Weight:  w,
	})
	return nil
}

// =============================================================================
// Degrees and incidence
// =============================================================================

// DegreeOf implements Graph.
func (g *Default[T]) DegreeOf(v T) (int, error) {
	idx, err := g.vertexIndex(v)
	if err != nil {
		return 0, err
	}
	return g.store.Degree(idx)
}

// InDegreeOf implements Graph.
func (g *Default[T]) InDegreeOf(v T) (int, error) {
	idx, err := g.vertexIndex(v)
	if err != nil {
		return 0, err
	}
	return g.store.InDegree(idx)
}

// OutDegreeOf implements Graph.
func (g *Default[T]) OutDegreeOf(v T) (int, error) {
	idx, err := g.vertexIndex(v)
	if err != nil {
		return 0, err
	}
	return g.store.OutDegree(idx)
}

// EdgesOf implements Graph.
func (g *Default[T]) EdgesOf(v T) (iter.Seq[T], error) {
	return g.incidence(v, g.store.EdgesOf)
}

// InEdgesOf implements Graph.
func (g *Default[T]) InEdgesOf(v T) (iter.Seq[T], error) {
	return g.incidence(v, g.store.InEdgesOf)
}

// OutEdgesOf implements Graph.
func (g *Default[T]) OutEdgesOf(v T) (iter.Seq[T], error) {
	return g.incidence(v, g.store.OutEdgesOf)
}

// EdgesBetween implements Graph.
func (g *Default[T]) EdgesBetween(u, v T) (iter.Seq[T], error) {
	ui, err := g.vertexIndex(u)
	if err != nil {
		return nil, err
	}
	vi, err := g.vertexIndex(v)
	if err != nil {
		return nil, err
	}
	seq, err := g.store.EdgesBetween(ui, vi)
	if err != nil {
		return nil, err
	}
	return g.translate(seq, g.edges), nil
}

func (g *Default[T]) incidence(v T, fn func(int) (iter.Seq[int], error)) (iter.Seq[T], error) {
	idx, err := g.vertexIndex(v)
	if err != nil {
		return nil, err
	}
	seq, err := fn(idx)
	if err != nil {
		return nil, err
	}
	return g.translate(seq, g.edges), nil
}

// =============================================================================
// Events
// =============================================================================

// AddListener implements Listenable.
func (g *Default[T]) AddListener(fn Listener[T]) ListenerID {
	return g.bus.Subscribe(fn)
}

// RemoveListener implements Listenable.
func (g *Default[T]) RemoveListener(id ListenerID) bool {
	return g.bus.Unsubscribe(id)
}

// Emits implements Observable.
func (g *Default[T]) Emits() bool { return true }

// Observe implements Observable.
func (g *Default[T]) Observe(fn Listener[T]) func() {
	h := g.bus.Subscribe(fn)
	return func() { g.bus.Unsubscribe(h) }
}

func (g *Default[T]) publish(ev Event[T]) {
	if err := g.bus.Publish(ev); err != nil {
		g.logger.Error("event dropped", "event", ev.String(), "err", err)
	}
}

// =============================================================================
// Reference pinning
// =============================================================================

// RetainVertex pins the handle v in REF graphs so that it survives the
// removal of its vertex until ReleaseVertex is called. It is a no-op for
// the integer regimes.
func (g *Default[T]) RetainVertex(v T) {
	if r, ok := g.vertices.(*identity.Ref[T]); ok {
		r.IncRef(v)
	}
}

// ReleaseVertex drops a pin taken with RetainVertex.
func (g *Default[T]) ReleaseVertex(v T) {
	if r, ok := g.vertices.(*identity.Ref[T]); ok {
		r.DecRef(v)
	}
}

// VertexRefCount reports the reference count of v in REF graphs, 0 for the
// integer regimes.
func (g *Default[T]) VertexRefCount(v T) int {
	if r, ok := g.vertices.(*identity.Ref[T]); ok {
		return r.RefCount(v)
	}
	return 0
}

// =============================================================================
// Internal helpers
// =============================================================================

func (g *Default[T]) vertexIndex(v T) (int, error) {
	idx, ok := g.vertices.Lookup(v)
	if !ok {
		return 0, errors.NoSuchElement("vertex %v not in graph", v)
	}
	return idx, nil
}

func (g *Default[T]) edgeIndex(e T) (int, error) {
	idx, ok := g.edges.Lookup(e)
	if !ok {
		return 0, errors.NoSuchElement("edge %v not in graph", e)
	}
	return idx, nil
}

func (g *Default[T]) translate(seq iter.Seq[int], reg identity.Registry[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for idx := range seq {
			if !yield(reg.TranslateOut(idx)) {
				return
			}
		}
	}
}

func isNil[T comparable](v T) bool {
	return any(v) == nil
}
