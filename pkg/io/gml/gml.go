// Package gml reads the Graph Modelling Language.
//
// Only the first top-level "graph" list is read. Inside it, "node" lists
// must carry an integer "id" and "edge" lists integer "source" and "target"
// keys; every other key of a node or edge is reported as an attribute, with
// nested lists returned as their raw text:
//
//	edge [ source 1 target 2 points [ x 1.0 y 2.0 ] ]
//
// reports the attribute points="[ x 1.0 y 2.0 ]". Scalar keys of the graph
// list itself become graph attributes.
package gml

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Format is the tag used in errors.
const Format = "gml"

// Parser reads GML input. Vertex ids are the integer node ids.
type Parser struct{}

var _ stream.Parser[int64] = Parser{}

type pair struct {
	key   string
	value string
	kind  kind
	line  int
}

type parser struct {
	ctx  context.Context
	lx   *lexer
	sink stream.Sink[int64]
	rank int
}

// Parse implements stream.Parser.
func (Parser) Parse(ctx context.Context, r io.Reader, sink stream.Sink[int64]) error {
	p := &parser{ctx: ctx, lx: newLexer(r), sink: sink}
	seen := false
	for {
		k, err := p.lx.next()
		if err != nil {
			return err
		}
		if k.kind == eof {
			if !seen {
				return stream.Errorf(Format, k.line, "no graph list")
			}
			return nil
		}
		if k.kind != key {
			return stream.Errorf(Format, k.line, "expected key, found %s", k.kind)
		}
		v, err := p.lx.next()
		if err != nil {
			return err
		}
		if k.text == "graph" && v.kind == open && !seen {
			seen = true
			if err := p.graph(); err != nil {
				return err
			}
			continue
		}
		if _, err := p.value(v); err != nil {
			return err
		}
	}
}

func (p *parser) graph() error {
	for {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		k, err := p.lx.next()
		if err != nil {
			return err
		}
		switch k.kind {
		case closing:
			return nil
		case key:
		default:
			return stream.Errorf(Format, k.line, "expected key, found %s", k.kind)
		}
		v, err := p.lx.next()
		if err != nil {
			return err
		}
		switch {
		case k.text == "node" && v.kind == open:
			err = p.node(k.line)
		case k.text == "edge" && v.kind == open:
			err = p.edge(k.line)
		default:
			var text string
			if text, err = p.value(v); err == nil {
				err = p.sink.GraphAttribute([]byte(k.text), []byte(text))
			}
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) node(line int) error {
	pairs, err := p.block()
	if err != nil {
		return err
	}
	id, err := requireID(pairs, "id", line)
	if err != nil {
		return err
	}
	if err := p.sink.Vertex(id); err != nil {
		return err
	}
	for _, kv := range pairs {
		if kv.key == "id" {
			continue
		}
		if err := p.sink.VertexAttribute(id, []byte(kv.key), []byte(kv.value)); err != nil {
			return err
		}
	}
	return p.sink.VertexDone(id)
}

func (p *parser) edge(line int) error {
	pairs, err := p.block()
	if err != nil {
		return err
	}
	source, err := requireID(pairs, "source", line)
	if err != nil {
		return err
	}
	target, err := requireID(pairs, "target", line)
	if err != nil {
		return err
	}
	rank := p.rank
	p.rank++
	if err := p.sink.Edge(rank, source, target); err != nil {
		return err
	}
	for _, kv := range pairs {
		if kv.key == "source" || kv.key == "target" {
			continue
		}
		if err := p.sink.EdgeAttribute(rank, []byte(kv.key), []byte(kv.value)); err != nil {
			return err
		}
	}
	return p.sink.EdgeDone(rank)
}

// block reads key-value pairs up to the closing bracket of the current
// list.
func (p *parser) block() ([]pair, error) {
	var pairs []pair
	for {
		k, err := p.lx.next()
		if err != nil {
			return nil, err
		}
		switch k.kind {
		case closing:
			return pairs, nil
		case key:
		default:
			return nil, stream.Errorf(Format, k.line, "expected key, found %s", k.kind)
		}
		v, err := p.lx.next()
		if err != nil {
			return nil, err
		}
		text, err := p.value(v)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{key: k.text, value: text, kind: v.kind, line: k.line})
	}
}

// value returns the text of a scalar, or the raw text of a list whose
// opening bracket is v.
func (p *parser) value(v token) (string, error) {
	switch v.kind {
	case integer, floating, str:
		return v.text, nil
	case open:
		var sb strings.Builder
		if err := p.list(&sb); err != nil {
			return "", err
		}
		return sb.String(), nil
	}
	return "", stream.Errorf(Format, v.line, "expected value, found %s", v.kind)
}

func (p *parser) list(sb *strings.Builder) error {
	sb.WriteString("[")
	for {
		t, err := p.lx.next()
		if err != nil {
			return err
		}
		switch t.kind {
		case eof:
			return stream.Errorf(Format, t.line, "unterminated list")
		case closing:
			sb.WriteString(" ]")
			return nil
		case open:
			sb.WriteString(" ")
			if err := p.list(sb); err != nil {
				return err
			}
		case str:
			sb.WriteString(" ")
			sb.WriteString(strconv.Quote(t.text))
		default:
			sb.WriteString(" ")
			sb.WriteString(t.text)
		}
	}
}

func requireID(pairs []pair, name string, line int) (int64, error) {
	for _, kv := range pairs {
		if kv.key != name {
			continue
		}
		if kv.kind != integer {
			return 0, stream.Errorf(Format, kv.line, "%s must be an integer, found %s", name, kv.kind)
		}
		return strconv.ParseInt(kv.value, 10, 64)
	}
	return 0, stream.Errorf(Format, line, "missing %s", name)
}
