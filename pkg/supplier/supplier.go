// Package supplier provides generators of fresh vertex and edge identities.
//
// Integer and string suppliers are strictly deterministic given their start
// value, which keeps graph construction reproducible. The UUID supplier is
// the exception and exists for REF graphs whose identities must be globally
// unique.
package supplier

import (
	"strconv"

	"github.com/google/uuid"
)

// Supplier produces the next identity on each call.
type Supplier[T any] interface {
	Next() T
}

// Func adapts a plain function to the Supplier interface.
type Func[T any] func() T

// Next implements Supplier.
func (f Func[T]) Next() T { return f() }

// Integer is the constraint for integer suppliers.
type Integer interface {
	~int | ~int32 | ~int64
}

// Int yields start, start+1, start+2, ...
type Int[T Integer] struct {
	next T
}

// NewInt returns an integer supplier starting at start.
func NewInt[T Integer](start T) *Int[T] {
	return &Int[T]{next: start}
}

// Next implements Supplier.
func (s *Int[T]) Next() T {
	v := s.next
	s.next++
	return v
}

// Peek returns the value the next call to Next will return.
func (s *Int[T]) Peek() T { return s.next }

// String yields prefix+start, prefix+(start+1), ...
type String struct {
	prefix string
	next   int
}

// NewString returns a string supplier. The conventional prefixes are "v"
// for vertices and "e" for edges.
func NewString(prefix string, start int) *String {
	return &String{prefix: prefix, next: start}
}

// Next implements Supplier.
func (s *String) Next() string {
	v := s.prefix + strconv.Itoa(s.next)
	s.next++
	return v
}

// UUID yields random version 4 UUID strings. It is not deterministic.
type UUID struct{}

// NewUUID returns a UUID supplier.
func NewUUID() UUID { return UUID{} }

// Next implements Supplier.
func (UUID) Next() string { return uuid.NewString() }

// Any lifts a supplier of concrete values into a supplier of any, for REF
// graphs keyed by interface values.
func Any[T any](s Supplier[T]) Supplier[any] {
	return Func[any](func() any { return s.Next() })
}
