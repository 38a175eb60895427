package views

import (
	"github.com/matzehuels/graphkit/pkg/event"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// Listening adds a listener registry to a graph.
//
// Over a base that emits events, the base's events are forwarded. Over a
// silent base, Listening emits events for the mutations made through it;
// mutations applied to the base directly go unnoticed.
type Listening[T comparable] struct {
	graph.Graph[T]
	passAttrs[T]

	bus    *event.Bus[graph.Event[T]]
	silent bool
	detach func()
}

// AsListenable returns g itself when it already has a listener registry.
// Otherwise it wraps g in a [Listening] view.
func AsListenable[T comparable](g graph.Graph[T]) graph.Listenable[T] {
	if l, ok := g.(graph.Listenable[T]); ok {
		return l
	}
	return NewListening(g)
}

// NewListening wraps g unconditionally.
func NewListening[T comparable](g graph.Graph[T]) *Listening[T] {
	l := &Listening[T]{
		Graph:     g,
		passAttrs: passAttrs[T]{g},
		bus:       event.NewBus[graph.Event[T]](),
		silent:    !emits(g),
	}
	l.detach = relay(g, l.forward, passThrough[T])
	return l
}

func (l *Listening[T]) forward(ev graph.Event[T]) { _ = l.bus.Publish(ev) }

// Close stops forwarding the base's events.
func (l *Listening[T]) Close() { l.detach() }

func (l *Listening[T]) AddListener(fn graph.Listener[T]) graph.ListenerID {
	return l.bus.Subscribe(fn)
}

func (l *Listening[T]) RemoveListener(id graph.ListenerID) bool {
	return l.bus.Unsubscribe(id)
}

func (l *Listening[T]) Emits() bool { return true }

func (l *Listening[T]) Observe(fn graph.Listener[T]) func() {
	h := l.bus.Subscribe(fn)
	return func() { l.bus.Unsubscribe(h) }
}

func (l *Listening[T]) admit() error {
	if !l.silent {
		return nil
	}
	return l.bus.Admit()
}

func (l *Listening[T]) emit(ev graph.Event[T]) {
	if l.silent {
		l.forward(ev)
	}
}

func (l *Listening[T]) AddVertex() (T, error) {
	if err := l.admit(); err != nil {
		var zero T
		return zero, err
	}
	v, err := l.Graph.AddVertex()
	if err == nil {
		l.emit(graph.Event[T]{Kind: graph.VertexAdded, Element: v})
	}
	return v, err
}

func (l *Listening[T]) AddVertexWithID(v T) (T, error) {
	if l.Graph.ContainsVertex(v) {
		return v, nil
	}
	if err := l.admit(); err != nil {
		return v, err
	}
	v, err := l.Graph.AddVertexWithID(v)
	if err == nil {
		l.emit(graph.Event[T]{Kind: graph.VertexAdded, Element: v})
	}
	return v, err
}

func (l *Listening[T]) RemoveVertex(v T) (bool, error) {
	if !l.Graph.ContainsVertex(v) {
		return false, nil
	}
	if err := l.admit(); err != nil {
		return false, err
	}
	var incident []graph.Event[T]
	if l.silent {
		seq, err := l.Graph.EdgesOf(v)
		if err != nil {
			return false, err
		}
		for _, e := range graph.Collect(seq) {
			t, _ := l.Graph.EdgeTuple(e)
			incident = append(incident, graph.Event[T]{
				Kind: graph.EdgeRemoved, Element: e, Source: t.Source, Target: t.Target, Weight: t.Weight,
			})
		}
	}
	ok, err := l.Graph.RemoveVertex(v)
	if err != nil || !ok {
		return ok, err
	}
	for _, ev := range incident {
		l.emit(ev)
	}
	l.emit(graph.Event[T]{Kind: graph.VertexRemoved, Element: v})
	return true, nil
}

func (l *Listening[T]) AddEdge(u, v T, opts ...graph.EdgeOption[T]) (T, error) {
	spec := graph.ResolveEdgeOptions(opts)
	if spec.HasID && l.Graph.ContainsEdge(spec.ID) {
		return spec.ID, nil
	}
	if err := l.admit(); err != nil {
		var zero T
		return zero, err
	}
	e, err := l.Graph.AddEdge(u, v, opts...)
	if err != nil {
		return e, err
	}
	if l.silent {
		t, _ := l.Graph.EdgeTuple(e)
		l.emit(graph.Event[T]{Kind: graph.EdgeAdded, Element: e, Source: t.Source, Target: t.Target, Weight: t.Weight})
	}
	return e, nil
}

func (l *Listening[T]) RemoveEdge(e T) (bool, error) {
	t, err := l.Graph.EdgeTuple(e)
	if err != nil {
		return false, nil
	}
	if err := l.admit(); err != nil {
		return false, err
	}
	ok, err := l.Graph.RemoveEdge(e)
	if err == nil && ok {
		l.emit(graph.Event[T]{Kind: graph.EdgeRemoved, Element: e, Source: t.Source, Target: t.Target, Weight: t.Weight})
	}
	return ok, err
}

func (l *Listening[T]) SetEdgeWeight(e T, w float64) error {
	if err := l.admit(); err != nil {
		return err
	}
	if err := l.Graph.SetEdgeWeight(e, w); err != nil {
		return err
	}
	if l.silent {
		t, _ := l.Graph.EdgeTuple(e)
		l.emit(graph.Event[T]{Kind: graph.EdgeWeightUpdated, Element: e, Source: t.Source, Target: t.Target, Weight: w})
	}
	return nil
}
