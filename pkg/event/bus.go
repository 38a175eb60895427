// Package event implements the synchronous dispatcher behind listenable
// graphs and views.
//
// A [Bus] delivers each published event to its listeners in registration
// order before Publish returns. A listener may publish again (typically by
// mutating a graph); such events are queued and delivered once the current
// event has reached every listener, so all listeners observe the same
// order. Each queued event is one level deeper than the event whose
// dispatch produced it, and publishing beyond [DefaultMaxDepth] fails with
// INVALID_STATE.
//
// A panicking listener is recovered, logged and skipped; the remaining
// listeners still run.
package event

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/observability"
)

// DefaultMaxDepth bounds nested re-entrant emission.
const DefaultMaxDepth = 16

// Handle identifies a subscription.
type Handle uint64

type subscription[E any] struct {
	handle  Handle
	fn      func(E)
	removed bool
}

type pending[E any] struct {
	ev    E
	depth int
}

// Bus is a synchronous, single-threaded event dispatcher.
type Bus[E any] struct {
	subs     []*subscription[E]
	next     Handle
	queue    []pending[E]
	active   bool
	depth    int
	maxDepth int
	logger   *log.Logger
}

// Option configures a Bus.
type Option func(*options)

type options struct {
	maxDepth int
	logger   *log.Logger
}

// WithMaxDepth sets the re-entrancy bound.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithLogger sets the logger that reports recovered listener panics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewBus returns an empty bus.
func NewBus[E any](opts ...Option) *Bus[E] {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	return &Bus[E]{maxDepth: o.maxDepth, logger: o.logger}
}

// Subscribe registers fn and returns its handle.
func (b *Bus[E]) Subscribe(fn func(E)) Handle {
	b.next++
	b.subs = append(b.subs, &subscription[E]{handle: b.next, fn: fn})
	return b.next
}

// Unsubscribe removes the subscription h and reports whether it existed.
// A listener removed during dispatch is not called again, even for the
// event currently being delivered.
func (b *Bus[E]) Unsubscribe(h Handle) bool {
	for i, s := range b.subs {
		if s.handle == h {
			s.removed = true
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of subscriptions.
func (b *Bus[E]) Len() int { return len(b.subs) }

// Admit reports whether an event published now would be accepted.
// Graphs call it before mutating so that a rejected emission leaves the
// structure untouched.
func (b *Bus[E]) Admit() error {
	if b.active && b.depth+1 > b.maxDepth {
		observability.Events().OnDepthExceeded(b.depth + 1)
		return errors.New(errors.ErrCodeInvalidState,
			"re-entrant event emission exceeds depth %d", b.maxDepth)
	}
	return nil
}

// Publish delivers ev to every listener. Called from inside a listener, it
// queues ev behind the event being dispatched.
func (b *Bus[E]) Publish(ev E) error {
	if b.active {
		if err := b.Admit(); err != nil {
			return err
		}
		b.queue = append(b.queue, pending[E]{ev: ev, depth: b.depth + 1})
		return nil
	}
	if len(b.subs) == 0 {
		return nil
	}

	b.active = true
	defer func() {
		b.active = false
		b.depth = 0
		b.queue = b.queue[:0]
	}()

	b.dispatch(ev, 0)
	for len(b.queue) > 0 {
		p := b.queue[0]
		b.queue = b.queue[1:]
		b.dispatch(p.ev, p.depth)
	}
	return nil
}

func (b *Bus[E]) dispatch(ev E, depth int) {
	b.depth = depth
	subs := append([]*subscription[E](nil), b.subs...)
	for _, s := range subs {
		if s.removed {
			continue
		}
		b.call(s, ev)
	}
	observability.Events().OnDispatch(kindOf(ev), len(subs))
}

func (b *Bus[E]) call(s *subscription[E], ev E) {
	defer func() {
		if r := recover(); r != nil {
			kind := kindOf(ev)
			b.logger.Error("listener panicked", "event", kind, "listener", s.handle, "panic", r)
			observability.Events().OnListenerPanic(kind, r)
		}
	}()
	s.fn(ev)
}

func kindOf(ev any) string {
	if k, ok := ev.(interface{ KindName() string }); ok {
		return k.KindName()
	}
	return fmt.Sprintf("%T", ev)
}
