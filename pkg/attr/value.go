// Package attr stores the attributes attached to a graph, its vertices and
// its edges.
//
// Values are typed ([String], [Number], [Bool]) but every value has a
// canonical textual form, which is what input formats deliver and what the
// facade exposes. Vertex and edge tables are keyed by internal index so that
// lookups next to adjacency reads stay constant time.
package attr

import (
	"strconv"
	"strings"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// Kind is the type of an attribute value.
type Kind int

const (
	Undefined Kind = iota
	String
	Number
	Bool
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	default:
		return "undefined"
	}
}

// ParseKind maps a type name used by GraphML and GEXF attribute
// declarations onto a Kind. Unknown names map to String.
func ParseKind(name string) Kind {
	switch strings.ToLower(name) {
	case "int", "integer", "long", "float", "double", "number":
		return Number
	case "boolean", "bool":
		return Bool
	default:
		return String
	}
}

// Value is an attribute value. The zero Value is undefined.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
}

// Text returns a string value.
func Text(s string) Value { return Value{kind: String, s: s} }

// Float returns a numeric value.
func Float(f float64) Value { return Value{kind: Number, n: f} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{kind: Bool, b: b} }

// Parse converts text into a value of the given kind.
// It fails with CLASS_CAST when text does not represent such a value.
func Parse(kind Kind, text string) (Value, error) {
	switch kind {
	case Number:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Value{}, errors.New(errors.ErrCodeClassCast, "%q is not a number", text)
		}
		return Float(f), nil
	case Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return Value{}, errors.New(errors.ErrCodeClassCast, "%q is not a boolean", text)
		}
		return Boolean(b), nil
	default:
		return Text(text), nil
	}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Defined reports whether v holds a value.
func (v Value) Defined() bool { return v.kind != Undefined }

// String returns the canonical textual form of v.
func (v Value) String() string {
	switch v.kind {
	case String:
		return v.s
	case Number:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// AsFloat coerces v to a float64. Strings are parsed; booleans map to 0/1.
// It fails with CLASS_CAST when no numeric reading exists.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case Number:
		return v.n, nil
	case Bool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, errors.New(errors.ErrCodeClassCast, "attribute value %q is not numeric", v.s)
		}
		return f, nil
	default:
		return 0, errors.New(errors.ErrCodeClassCast, "undefined attribute value")
	}
}

// Equal reports whether a and b have the same kind and value.
func Equal(a, b Value) bool {
	return a == b
}
