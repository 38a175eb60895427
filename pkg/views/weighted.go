package views

import (
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/event"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// WeightFunc computes the weight of an edge.
type WeightFunc[T comparable] func(e T) float64

// Weighted overlays computed weights on a base graph.
//
// With caching enabled each edge starts uncached; the first read or write
// caches its weight and later reads return the cached value. With caching
// disabled every read calls the weight function and writes are rejected.
// Write-through additionally stores written weights in the base.
type Weighted[T comparable] struct {
	graph.Graph[T]
	passAttrs[T]

	fn           WeightFunc[T]
	cache        map[T]float64
	cacheWeights bool
	writeThrough bool

	bus   *event.Bus[graph.Event[T]]
	evict func()
}

// AsWeighted returns a weighted view of g whose weights come from fn.
// Write-through requires a weighted base.
func AsWeighted[T comparable](g graph.Graph[T], fn WeightFunc[T], cacheWeights, writeThrough bool) (*Weighted[T], error) {
	if fn == nil {
		return nil, errors.New(errors.ErrCodeNullPointer, "weight function is nil")
	}
	if writeThrough && !g.Type().Weighted() {
		return nil, errors.Unsupported("write-through requires a weighted base graph")
	}
	w := &Weighted[T]{
		Graph:        g,
		passAttrs:    passAttrs[T]{g},
		fn:           fn,
		cacheWeights: cacheWeights,
		writeThrough: writeThrough,
		bus:          event.NewBus[graph.Event[T]](),
		evict:        func() {},
	}
	if cacheWeights {
		w.cache = make(map[T]float64)
		w.evict = relay(g, func(ev graph.Event[T]) { delete(w.cache, ev.Element) },
			func(ev graph.Event[T]) (graph.Event[T], bool) { return ev, ev.Kind == graph.EdgeRemoved })
	}
	return w, nil
}

// Close stops tracking edge removals in the base. Without it a cached
// weight would survive the removal of its edge.
func (w *Weighted[T]) Close() { w.evict() }

func (w *Weighted[T]) Type() graph.Type { return w.Graph.Type().AsWeighted() }

// Cached reports whether e's weight is cached.
func (w *Weighted[T]) Cached(e T) bool {
	_, ok := w.cache[e]
	return ok
}

func (w *Weighted[T]) EdgeWeight(e T) (float64, error) {
	if !w.Graph.ContainsEdge(e) {
		return 0, missingEdge(e)
	}
	if !w.cacheWeights {
		return w.fn(e), nil
	}
	if x, ok := w.cache[e]; ok {
		return x, nil
	}
	x := w.fn(e)
	w.cache[e] = x
	return x, nil
}

// peek returns e's weight without caching it.
func (w *Weighted[T]) peek(e T) float64 {
	if x, ok := w.cache[e]; ok {
		return x
	}
	return w.fn(e)
}

func (w *Weighted[T]) SetEdgeWeight(e T, x float64) error {
	if !w.cacheWeights {
		return errors.Unsupported("weight caching is disabled")
	}
	if !w.Graph.ContainsEdge(e) {
		return missingEdge(e)
	}
	if err := w.bus.Admit(); err != nil {
		return err
	}
	if w.writeThrough {
		if err := w.Graph.SetEdgeWeight(e, x); err != nil {
			return err
		}
	}
	w.cache[e] = x
	s, _ := w.Graph.EdgeSource(e)
	t, _ := w.Graph.EdgeTarget(e)
	_ = w.bus.Publish(graph.Event[T]{Kind: graph.EdgeWeightUpdated, Element: e, Source: s, Target: t, Weight: x})
	return nil
}

func (w *Weighted[T]) EdgeTuple(e T) (graph.Triple[T], error) {
	t, err := w.Graph.EdgeTuple(e)
	if err != nil {
		return t, err
	}
	t.Weight, err = w.EdgeWeight(e)
	return t, err
}

// AddEdge adds the edge to the base. An explicit weight is stored in the
// base when it is weighted and cached otherwise.
func (w *Weighted[T]) AddEdge(u, v T, opts ...graph.EdgeOption[T]) (T, error) {
	spec := graph.ResolveEdgeOptions(opts)
	if !spec.HasWeight || w.Graph.Type().Weighted() {
		e, err := w.Graph.AddEdge(u, v, opts...)
		if err == nil && spec.HasWeight && w.cacheWeights {
			w.cache[e] = spec.Weight
		}
		return e, err
	}
	if !w.cacheWeights {
		var zero T
		return zero, errors.Unsupported("weight caching is disabled")
	}
	var base []graph.EdgeOption[T]
	if spec.HasID {
		base = append(base, graph.WithEdgeID(spec.ID))
	}
	e, err := w.Graph.AddEdge(u, v, base...)
	if err != nil {
		return e, err
	}
	w.cache[e] = spec.Weight
	return e, nil
}

func (w *Weighted[T]) Emits() bool { return emits(w.Graph) }

// Observe relays structural events of the base and the weight updates
// made through this view. Weight updates of the base are not relayed.
func (w *Weighted[T]) Observe(fn graph.Listener[T]) func() {
	cancel := relay(w.Graph, fn, func(ev graph.Event[T]) (graph.Event[T], bool) {
		if ev.Kind == graph.EdgeWeightUpdated {
			return ev, false
		}
		if !ev.Kind.IsVertex() && ev.Kind != graph.EdgeRemoved {
			ev.Weight = w.peek(ev.Element)
		}
		return ev, true
	})
	h := w.bus.Subscribe(fn)
	return func() {
		cancel()
		w.bus.Unsubscribe(h)
	}
}
