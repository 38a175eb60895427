// Package jsongraph reads graphs from a JSON object with "nodes" and
// "edges" arrays.
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b", "label": "B"}],
//	  "edges": [{"source": "a", "target": "b", "weight": 2.0}]
//	}
//
// Ids may be strings or numbers; numbers are reported by their literal
// text. Every other member of a node or edge is an attribute. Strings are
// reported unquoted, scalars by their literal text and nested objects or
// arrays as compact JSON. Top-level members other than "nodes" and "edges"
// are skipped.
package jsongraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Format is the tag used in errors.
const Format = "json"

// Parser reads JSON graphs. Vertex ids are the node "id" values.
type Parser struct{}

var _ stream.Parser[[]byte] = Parser{}

type member struct {
	key   string
	value []byte
}

type parser struct {
	ctx  context.Context
	dec  *json.Decoder
	sink stream.Sink[[]byte]
	rank int
}

// Parse implements stream.Parser.
func (Parser) Parse(ctx context.Context, r io.Reader, sink stream.Sink[[]byte]) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	p := &parser{ctx: ctx, dec: dec, sink: sink}
	if err := p.delim('{'); err != nil {
		return err
	}
	for p.dec.More() {
		name, err := p.key()
		if err != nil {
			return err
		}
		switch name {
		case "nodes":
			err = p.array(p.node)
		case "edges":
			err = p.array(p.edge)
		default:
			var skip json.RawMessage
			err = p.wrap(p.dec.Decode(&skip))
		}
		if err != nil {
			return err
		}
	}
	return p.delim('}')
}

func (p *parser) errorf(msg string, args ...any) error {
	return stream.AtOffset(Format, p.dec.InputOffset(), fmt.Errorf(msg, args...))
}

func (p *parser) wrap(err error) error {
	if err == nil {
		return nil
	}
	var offset int64 = -1
	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	default:
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		offset = p.dec.InputOffset()
	}
	return stream.AtOffset(Format, offset, err)
}

func (p *parser) delim(want json.Delim) error {
	tok, err := p.dec.Token()
	if err != nil {
		return p.wrap(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return p.errorf("expected %q, found %v", want, tok)
	}
	return nil
}

func (p *parser) key() (string, error) {
	tok, err := p.dec.Token()
	if err != nil {
		return "", p.wrap(err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", p.errorf("expected member name, found %v", tok)
	}
	return s, nil
}

func (p *parser) array(each func([]member) error) error {
	if err := p.delim('['); err != nil {
		return err
	}
	for p.dec.More() {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		members, err := p.object()
		if err != nil {
			return err
		}
		if err := each(members); err != nil {
			return err
		}
	}
	return p.delim(']')
}

// object reads one JSON object, keeping its members in document order.
func (p *parser) object() ([]member, error) {
	if err := p.delim('{'); err != nil {
		return nil, err
	}
	var members []member
	for p.dec.More() {
		name, err := p.key()
		if err != nil {
			return nil, err
		}
		var raw json.RawMessage
		if err := p.dec.Decode(&raw); err != nil {
			return nil, p.wrap(err)
		}
		text, err := scalar(raw)
		if err != nil {
			return nil, p.wrap(err)
		}
		members = append(members, member{key: name, value: text})
	}
	return members, p.delim('}')
}

func (p *parser) node(members []member) error {
	id, err := p.require(members, "id", "node")
	if err != nil {
		return err
	}
	if err := p.sink.Vertex(id); err != nil {
		return err
	}
	for _, m := range members {
		if m.key == "id" {
			continue
		}
		if err := p.sink.VertexAttribute(id, []byte(m.key), m.value); err != nil {
			return err
		}
	}
	return p.sink.VertexDone(id)
}

func (p *parser) edge(members []member) error {
	source, err := p.require(members, "source", "edge")
	if err != nil {
		return err
	}
	target, err := p.require(members, "target", "edge")
	if err != nil {
		return err
	}
	rank := p.rank
	p.rank++
	if err := p.sink.Edge(rank, source, target); err != nil {
		return err
	}
	for _, m := range members {
		if m.key == "source" || m.key == "target" {
			continue
		}
		if err := p.sink.EdgeAttribute(rank, []byte(m.key), m.value); err != nil {
			return err
		}
	}
	return p.sink.EdgeDone(rank)
}

func (p *parser) require(members []member, name, element string) ([]byte, error) {
	for _, m := range members {
		if m.key == name {
			return m.value, nil
		}
	}
	return nil, p.errorf("%s without %q", element, name)
}

// scalar returns the attribute text of a raw JSON value.
func scalar(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return []byte(s), nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return raw, nil
}
