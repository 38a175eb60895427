// Package graphml reads GraphML documents.
//
// Two parsers share this package. The simple parser is tuned for speed: it
// reports each <data> element under the attr.name of its <key> and ignores
// key defaults. The full parser additionally applies <default> values to
// elements that lack the data, checks values against their declared
// attr.type and reports data with nested markup as raw XML.
//
// Both report a node's id as the vertex attribute "ID". Edge XML
// attributes other than source and target (usually just "id") are
// reported as edge attributes next to the data values, and graph-level
// data becomes graph attributes. Nested graphs and ports are skipped.
//
// With validation on, the root must be in the GraphML namespace and schema
// problems are collected with go-multierror and returned together once the
// document ends.
package graphml

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Format is the tag used in errors.
const Format = "graphml"

// Namespace is the GraphML XML namespace.
const Namespace = "http://graphml.graphdrawing.org/xmlns"

// Parser reads GraphML. Vertex ids are the node "id" values.
type Parser struct {
	// Simple selects the fast parser.
	Simple   bool
	Validate bool
}

var _ stream.Parser[[]byte] = Parser{}

type key struct {
	ID      string `xml:"id,attr"`
	For     string `xml:"for,attr"`
	Name    string `xml:"attr.name,attr"`
	Type    string `xml:"attr.type,attr"`
	Default *struct {
		Text string `xml:",chardata"`
	} `xml:"default"`
}

func (k key) name() string {
	if k.Name == "" {
		return k.ID
	}
	return k.Name
}

func (k key) appliesTo(domain string) bool {
	return k.For == "" || k.For == "all" || k.For == domain
}

type data struct {
	Key   string `xml:"key,attr"`
	Text  string `xml:",chardata"`
	Inner string `xml:",innerxml"`
}

type element struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Data  []data     `xml:"data"`
}

type parser struct {
	Parser
	ctx      context.Context
	dec      *xml.Decoder
	sink     stream.Sink[[]byte]
	rank     int
	keys     map[string]key
	order    []string
	problems *multierror.Error
}

type attribute struct {
	key, value string
}

// Parse implements stream.Parser.
func (p Parser) Parse(ctx context.Context, r io.Reader, sink stream.Sink[[]byte]) error {
	ps := &parser{Parser: p, ctx: ctx, dec: xml.NewDecoder(r), sink: sink, keys: map[string]key{}}
	if err := ps.run(); err != nil {
		return err
	}
	if err := ps.problems.ErrorOrNil(); err != nil {
		return stream.Wrap(Format, err)
	}
	return nil
}

func (p *parser) line() int {
	line, _ := p.dec.InputPos()
	return line
}

func (p *parser) problem(msg string, args ...any) {
	if p.Validate {
		p.problems = multierror.Append(p.problems, fmt.Errorf("line %d: "+msg, append([]any{p.line()}, args...)...))
	}
}

func (p *parser) syntax(err error) error {
	if se, ok := err.(*xml.SyntaxError); ok {
		return stream.Errorf(Format, se.Line, "%s", se.Msg)
	}
	return stream.Errorf(Format, p.line(), "%v", err)
}

func (p *parser) run() error {
	root := true
	depth := 0 // open <graph> elements
	for {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		tok, err := p.dec.Token()
		if err == io.EOF {
			if root {
				return stream.Errorf(Format, p.line(), "no graphml element")
			}
			return nil
		}
		if err != nil {
			return p.syntax(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root {
				if t.Name.Local != "graphml" {
					return stream.Errorf(Format, p.line(), "root element is <%s>, want <graphml>", t.Name.Local)
				}
				if p.Validate && t.Name.Space != Namespace {
					return stream.Errorf(Format, p.line(), "unsupported namespace %q", t.Name.Space)
				}
				root = false
				continue
			}
			switch t.Name.Local {
			case "key":
				err = p.key(t)
			case "graph":
				depth++
				if depth == 1 {
					for _, a := range t.Attr {
						if err = p.sink.GraphAttribute([]byte(a.Name.Local), []byte(a.Value)); err != nil {
							break
						}
					}
				}
			case "data":
				err = p.graphData(t)
			case "node":
				err = p.node(t)
			case "edge":
				err = p.edge(t)
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "graph" {
				depth--
			}
		}
	}
}

func (p *parser) key(t xml.StartElement) error {
	var k key
	if err := p.dec.DecodeElement(&k, &t); err != nil {
		return p.syntax(err)
	}
	if k.ID == "" {
		p.problem("key without id")
		return nil
	}
	if _, dup := p.keys[k.ID]; dup {
		p.problem("key %q declared twice", k.ID)
	} else {
		p.order = append(p.order, k.ID)
	}
	if !p.Simple && k.Type != "" && !types[k.Type] {
		p.problem("key %q has unknown attr.type %q", k.ID, k.Type)
	}
	p.keys[k.ID] = k
	return nil
}

func (p *parser) graphData(t xml.StartElement) error {
	var d data
	if err := p.dec.DecodeElement(&d, &t); err != nil {
		return p.syntax(err)
	}
	attrs := p.resolve("graph", []data{d}, false)
	for _, a := range attrs {
		if err := p.sink.GraphAttribute([]byte(a.key), []byte(a.value)); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) node(t xml.StartElement) error {
	line := p.line()
	var e element
	if err := p.dec.DecodeElement(&e, &t); err != nil {
		return p.syntax(err)
	}
	id, ok := lookup(e.Attrs, "id")
	if !ok {
		return stream.Errorf(Format, line, "node without id")
	}
	if err := p.sink.Vertex(id); err != nil {
		return err
	}
	if err := p.sink.VertexAttribute(id, []byte("ID"), id); err != nil {
		return err
	}
	for _, a := range p.resolve("node", e.Data, true) {
		if err := p.sink.VertexAttribute(id, []byte(a.key), []byte(a.value)); err != nil {
			return err
		}
	}
	return p.sink.VertexDone(id)
}

func (p *parser) edge(t xml.StartElement) error {
	line := p.line()
	var e element
	if err := p.dec.DecodeElement(&e, &t); err != nil {
		return p.syntax(err)
	}
	source, ok := lookup(e.Attrs, "source")
	if !ok {
		return stream.Errorf(Format, line, "edge without source")
	}
	target, ok := lookup(e.Attrs, "target")
	if !ok {
		return stream.Errorf(Format, line, "edge without target")
	}
	rank := p.rank
	p.rank++
	if err := p.sink.Edge(rank, source, target); err != nil {
		return err
	}
	for _, a := range e.Attrs {
		switch a.Name.Local {
		case "source", "target", "sourceport", "targetport":
			continue
		}
		if err := p.sink.EdgeAttribute(rank, []byte(a.Name.Local), []byte(a.Value)); err != nil {
			return err
		}
	}
	for _, a := range p.resolve("edge", e.Data, true) {
		if err := p.sink.EdgeAttribute(rank, []byte(a.key), []byte(a.value)); err != nil {
			return err
		}
	}
	return p.sink.EdgeDone(rank)
}

// resolve turns the data children of an element of the given domain into
// named attributes. With defaults set, the full parser appends the
// defaults of keys the element does not mention.
func (p *parser) resolve(domain string, ds []data, defaults bool) []attribute {
	attrs := make([]attribute, 0, len(ds))
	var seen map[string]bool
	if !p.Simple {
		seen = make(map[string]bool, len(ds))
	}
	for _, d := range ds {
		k, ok := p.keys[d.Key]
		if !ok {
			p.problem("%s data refers to undeclared key %q", domain, d.Key)
			attrs = append(attrs, attribute{d.Key, strings.TrimSpace(d.Text)})
			continue
		}
		if !k.appliesTo(domain) {
			p.problem("key %q is declared for %s, used on %s", k.ID, k.For, domain)
		}
		if p.Simple {
			attrs = append(attrs, attribute{k.name(), strings.TrimSpace(d.Text)})
			continue
		}
		seen[k.ID] = true
		value := strings.TrimSpace(d.Text)
		if strings.Contains(d.Inner, "<") {
			value = strings.TrimSpace(d.Inner)
		} else if !validValue(k.Type, value) {
			p.problem("key %q: %q is not a valid %s", k.name(), value, k.Type)
		}
		attrs = append(attrs, attribute{k.name(), value})
	}
	if p.Simple || !defaults {
		return attrs
	}
	for _, id := range p.order {
		k := p.keys[id]
		if seen[id] || k.Default == nil || !k.appliesTo(domain) {
			continue
		}
		attrs = append(attrs, attribute{k.name(), strings.TrimSpace(k.Default.Text)})
	}
	return attrs
}

func lookup(attrs []xml.Attr, name string) ([]byte, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return []byte(a.Value), true
		}
	}
	return nil, false
}

var types = map[string]bool{
	"boolean": true, "int": true, "long": true, "float": true, "double": true, "string": true,
}

func validValue(typ, value string) bool {
	var err error
	switch typ {
	case "int":
		_, err = strconv.ParseInt(value, 10, 32)
	case "long":
		_, err = strconv.ParseInt(value, 10, 64)
	case "float", "double":
		_, err = strconv.ParseFloat(value, 64)
	case "boolean":
		_, err = strconv.ParseBool(value)
	}
	return err == nil
}
