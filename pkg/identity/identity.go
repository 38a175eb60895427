// Package identity maps external vertex and edge identifiers onto the dense
// internal slots used by the graph store.
//
// Three identity regimes are supported:
//
//   - [INT]: external ids are int32 values ([NewInt])
//   - [LONG]: external ids are int64 values ([NewLong])
//   - [REF]: external ids are arbitrary comparable handles ([NewRef])
//
// Every [Registry] is a bijection between the bound external ids and the
// live internal indices. Internal indices are owned by the caller (the
// graph store allocates and recycles them); the registry only records the
// binding.
package identity

import (
	"fmt"
	"strings"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// Regime identifies how external ids are represented.
type Regime int

const (
	INT Regime = iota
	LONG
	REF
)

// String returns the regime name.
func (r Regime) String() string {
	switch r {
	case INT:
		return "INT"
	case LONG:
		return "LONG"
	case REF:
		return "REF"
	default:
		return fmt.Sprintf("Regime(%d)", int(r))
	}
}

// ParseRegime accepts a regime name, case-insensitively.
func ParseRegime(s string) (Regime, error) {
	for _, r := range []Regime{INT, LONG, REF} {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}
	return 0, errors.InvalidArgument("unknown identity regime %q", s)
}

// Registry is the bidirectional mapping between external ids and internal
// indices.
type Registry[T comparable] interface {
	// Regime reports the identity regime of the registry.
	Regime() Regime
	// TranslateIn returns the internal index bound to id.
	// It fails with NO_SUCH_ELEMENT when id is not bound.
	TranslateIn(id T) (int, error)
	// Lookup is the non-failing form of TranslateIn.
	Lookup(id T) (int, bool)
	// TranslateOut returns the external id bound to a live index.
	TranslateOut(index int) T
	// Inject binds id to index. It fails with INVALID_ARGUMENT when id is
	// already bound or index is negative.
	Inject(id T, index int) error
	// Release drops the binding held by index.
	Release(index int)
	// Contains reports whether id is bound.
	Contains(id T) bool
	// Len returns the number of bound ids.
	Len() int
}

func noSuchID[T comparable](id T) error {
	return errors.NoSuchElement("no element with id %v", id)
}

func duplicateID[T comparable](id T) error {
	return errors.InvalidArgument("id %v is already bound", id)
}

func badIndex(index int) error {
	return errors.New(errors.ErrCodeIndexOutOfBounds, "internal index %d out of bounds", index)
}
