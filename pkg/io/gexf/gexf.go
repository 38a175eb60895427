// Package gexf reads the Graph Exchange XML Format used by Gephi.
//
// Nodes and edges are reported in document order. Every XML attribute of a
// node other than "id" becomes a vertex attribute, and the node id itself
// is reported as the attribute "ID". Edge XML attributes other than
// "source" and "target" become edge attributes, so a "weight" attribute
// carries the edge weight. Values inside <attvalues> are reported under the
// title declared for them in <attributes>. Default values and visual
// extensions are ignored.
//
// With validation on, the root element must be in the GEXF 1.2draft or 1.3
// namespace, and every schema problem found on the way (undeclared
// attvalues, values not matching their declared type, unknown attribute
// types) is collected and returned together once the document ends.
package gexf

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Format is the tag used in errors.
const Format = "gexf"

// Namespaces accepted by the validating parser.
var Namespaces = []string{
	"http://www.gexf.net/1.2draft",
	"http://gexf.net/1.2draft",
	"http://www.gexf.net/1.3",
	"http://gexf.net/1.3",
}

// Parser reads GEXF. Vertex ids are the node "id" values.
type Parser struct {
	Validate bool
}

var _ stream.Parser[[]byte] = Parser{}

type declaration struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type declarations struct {
	Class string        `xml:"class,attr"`
	Attrs []declaration `xml:"attribute"`
}

type attvalue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type element struct {
	Attrs  []xml.Attr `xml:",any,attr"`
	Values []attvalue `xml:"attvalues>attvalue"`
}

type parser struct {
	ctx      context.Context
	dec      *xml.Decoder
	sink     stream.Sink[[]byte]
	validate bool
	rank     int
	// declared attributes per class ("node", "edge")
	declared map[string]map[string]declaration
	problems *multierror.Error
}

// Parse implements stream.Parser.
func (p Parser) Parse(ctx context.Context, r io.Reader, sink stream.Sink[[]byte]) error {
	ps := &parser{
		ctx:      ctx,
		dec:      xml.NewDecoder(r),
		sink:     sink,
		validate: p.Validate,
		declared: map[string]map[string]declaration{"node": {}, "edge": {}},
	}
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
	if p.validate {
		p.problems = multierror.Append(p.problems, fmt.Errorf("line %d: "+msg, append([]any{p.line()}, args...)...))
	}
}

func (p *parser) run() error {
	root := true
	inMeta := false
	for {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		tok, err := p.dec.Token()
		if err == io.EOF {
			if root {
				return stream.Errorf(Format, p.line(), "no gexf element")
			}
			return nil
		}
		if err != nil {
			return p.syntax(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root {
				if err := p.root(t); err != nil {
					return err
				}
				root = false
				continue
			}
			switch t.Name.Local {
			case "meta":
				inMeta = true
			case "graph":
				for _, a := range t.Attr {
					if err := p.sink.GraphAttribute([]byte(a.Name.Local), []byte(a.Value)); err != nil {
						return err
					}
				}
			case "attributes":
				err = p.attributes(t)
			case "node":
				err = p.node(t)
			case "edge":
				err = p.edge(t)
			default:
				if inMeta {
					err = p.meta(t)
				}
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "meta" {
				inMeta = false
			}
		}
	}
}

func (p *parser) syntax(err error) error {
	if se, ok := err.(*xml.SyntaxError); ok {
		return stream.Errorf(Format, se.Line, "%s", se.Msg)
	}
	return stream.Errorf(Format, p.line(), "%v", err)
}

func (p *parser) root(t xml.StartElement) error {
	if t.Name.Local != "gexf" {
		return stream.Errorf(Format, p.line(), "root element is <%s>, want <gexf>", t.Name.Local)
	}
	if !p.validate {
		return nil
	}
	for _, ns := range Namespaces {
		if t.Name.Space == ns {
			return nil
		}
	}
	return stream.Errorf(Format, p.line(), "unsupported namespace %q", t.Name.Space)
}

func (p *parser) meta(t xml.StartElement) error {
	var text string
	if err := p.dec.DecodeElement(&text, &t); err != nil {
		return p.syntax(err)
	}
	return p.sink.GraphAttribute([]byte(t.Name.Local), []byte(text))
}

func (p *parser) attributes(t xml.StartElement) error {
	var d declarations
	if err := p.dec.DecodeElement(&d, &t); err != nil {
		return p.syntax(err)
	}
	class, ok := p.declared[d.Class]
	if !ok {
		p.problem("unknown attribute class %q", d.Class)
		return nil
	}
	for _, a := range d.Attrs {
		if _, dup := class[a.ID]; dup {
			p.problem("%s attribute %q declared twice", d.Class, a.ID)
		}
		if !types[a.Type] {
			p.problem("%s attribute %q has unknown type %q", d.Class, a.ID, a.Type)
		}
		class[a.ID] = a
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
	for _, a := range e.Attrs {
		if a.Name.Local == "id" {
			continue
		}
		if err := p.sink.VertexAttribute(id, []byte(a.Name.Local), []byte(a.Value)); err != nil {
			return err
		}
	}
	for _, v := range e.Values {
		key := p.resolve("node", v)
		if err := p.sink.VertexAttribute(id, []byte(key), []byte(v.Value)); err != nil {
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
		case "source", "target":
			continue
		case "weight":
			if _, err := strconv.ParseFloat(a.Value, 64); err != nil {
				p.problem("edge weight %q is not a number", a.Value)
			}
		}
		if err := p.sink.EdgeAttribute(rank, []byte(a.Name.Local), []byte(a.Value)); err != nil {
			return err
		}
	}
	for _, v := range e.Values {
		key := p.resolve("edge", v)
		if err := p.sink.EdgeAttribute(rank, []byte(key), []byte(v.Value)); err != nil {
			return err
		}
	}
	return p.sink.EdgeDone(rank)
}

// resolve maps an attvalue to the title of its declaration. Undeclared
// values keep their "for" reference as key.
func (p *parser) resolve(class string, v attvalue) string {
	d, ok := p.declared[class][v.For]
	if !ok {
		p.problem("%s attvalue refers to undeclared attribute %q", class, v.For)
		return v.For
	}
	if !validValue(d.Type, v.Value) {
		p.problem("%s attribute %q: %q is not a valid %s", class, d.Title, v.Value, d.Type)
	}
	if d.Title == "" {
		return d.ID
	}
	return d.Title
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
	"integer": true, "long": true, "double": true, "float": true, "boolean": true,
	"string": true, "liststring": true, "anyURI": true,
	"byte": true, "short": true, "char": true, "bigdecimal": true, "biginteger": true,
	"listboolean": true, "listbyte": true, "listshort": true, "listinteger": true,
	"listlong": true, "listfloat": true, "listdouble": true, "listchar": true,
	"listbigdecimal": true, "listbiginteger": true,
}

func validValue(typ, value string) bool {
	var err error
	switch typ {
	case "integer", "long", "short", "byte", "biginteger":
		_, err = strconv.ParseInt(value, 10, 64)
	case "double", "float", "bigdecimal":
		_, err = strconv.ParseFloat(value, 64)
	case "boolean":
		_, err = strconv.ParseBool(value)
	}
	return err == nil
}
