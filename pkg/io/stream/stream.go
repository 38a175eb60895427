// Package stream defines the contract between graph-format parsers and the
// importer that consumes them.
//
// A parser reads a textual format and reports what it finds to a [Sink] in
// document order. It never touches a graph. Identifiers are delivered in
// one of two shapes, chosen per format: integers ([int64]) for formats whose
// ids are numeric by definition, raw bytes ([]byte) for everything else.
// Decoding and validation of byte payloads is the sink's business.
//
// Edges are identified by rank, the zero-based position in which the parser
// reported them. Attribute callbacks for an element may arrive before or
// after the element itself; the sink reconciles them.
package stream

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// ID is the shape of a file identifier.
type ID interface {
	int64 | []byte
}

// Shape names an identifier shape at runtime.
type Shape int

const (
	Integer Shape = iota
	String
)

func (s Shape) String() string {
	if s == Integer {
		return "integer"
	}
	return "string"
}

// Sink receives the elements of one document.
type Sink[K ID] interface {
	// Vertex reports a vertex by its file id. Reporting the same id twice
	// refers to the same vertex.
	Vertex(id K) error
	// VertexAttribute reports one attribute of the vertex with file id id.
	VertexAttribute(id K, key, value []byte) error
	// VertexDone confirms that all attributes of id have been reported.
	VertexDone(id K) error

	// Edge reports an edge. Unknown endpoints are created implicitly.
	Edge(rank int, source, target K) error
	// EdgeAttribute reports one attribute of the edge with the given rank.
	// The key "weight" carries the edge weight.
	EdgeAttribute(rank int, key, value []byte) error
	// EdgeDone confirms that all attributes of the edge have been reported.
	EdgeDone(rank int) error

	// GraphAttribute reports a graph-level attribute.
	GraphAttribute(key, value []byte) error
}

// Parser reads one document from r into sink. Parse must return promptly
// once ctx is done.
type Parser[K ID] interface {
	Parse(ctx context.Context, r io.Reader, sink Sink[K]) error
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc[K ID] func(ctx context.Context, r io.Reader, sink Sink[K]) error

// Parse calls f.
func (f ParserFunc[K]) Parse(ctx context.Context, r io.Reader, sink Sink[K]) error {
	return f(ctx, r, sink)
}

// SyntaxError locates a failure inside the input.
type SyntaxError = errors.PositionError

// Errorf returns a SyntaxError at the given line.
func Errorf(format string, line int, msg string, args ...any) *SyntaxError {
	return &SyntaxError{Format: format, Offset: -1, Line: line, Err: fmt.Errorf(msg, args...)}
}

// AtOffset wraps err with a byte offset.
func AtOffset(format string, offset int64, err error) *SyntaxError {
	return &SyntaxError{Format: format, Offset: offset, Err: err}
}

// Wrap attaches the format to err without a position.
func Wrap(format string, err error) *SyntaxError {
	return &SyntaxError{Format: format, Offset: -1, Err: err}
}

// Decode returns a reader that drops a leading byte-order mark. UTF-16
// input announced by its BOM is transcoded to UTF-8; anything else passes
// through unchanged.
func Decode(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}
