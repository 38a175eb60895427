package graph

import (
	"fmt"

	"github.com/matzehuels/graphkit/pkg/event"
)

// EventKind is the kind of a structural change.
type EventKind int

const (
	VertexAdded EventKind = iota
	VertexRemoved
	EdgeAdded
	EdgeRemoved
	EdgeWeightUpdated
)

var eventKindNames = [...]string{
	VertexAdded:       "VERTEX_ADDED",
	VertexRemoved:     "VERTEX_REMOVED",
	EdgeAdded:         "EDGE_ADDED",
	EdgeRemoved:       "EDGE_REMOVED",
	EdgeWeightUpdated: "EDGE_WEIGHT_UPDATED",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// IsVertex reports whether k concerns a vertex.
func (k EventKind) IsVertex() bool { return k == VertexAdded || k == VertexRemoved }

// Event describes one structural change. For edge events Source, Target
// and Weight describe the edge at the time of the change.
type Event[T comparable] struct {
	Kind    EventKind
	Element T
	Source  T
	Target  T
	Weight  float64
}

// KindName returns the kind as a string; the event bus uses it for logs and
// metrics.
func (e Event[T]) KindName() string { return e.Kind.String() }

func (e Event[T]) String() string {
	if e.Kind.IsVertex() {
		return fmt.Sprintf("%s(%v)", e.Kind, e.Element)
	}
	return fmt.Sprintf("%s(%v: %v -> %v)", e.Kind, e.Element, e.Source, e.Target)
}

// Listener receives structural events.
type Listener[T comparable] func(Event[T])

// ListenerID identifies a registered listener.
type ListenerID = event.Handle
