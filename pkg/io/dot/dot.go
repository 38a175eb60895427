// Package dot reads Graphviz DOT through the cgraph library.
//
// The whole document is handed to cgraph, so every construct Graphviz
// accepts (subgraphs, edge chains, attribute statements, HTML labels) is
// supported. Vertices are reported in cgraph's creation order, then edges
// grouped by tail vertex. Attributes with an empty value and attributes
// that only describe rendering (see [Visual]) are not reported.
package dot

import (
	"context"
	"io"

	"github.com/goccy/go-graphviz/cgraph"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

// Format is the tag used in errors.
const Format = "dot"

// defaultLabel is the label cgraph installs on nodes without one.
const defaultLabel = `\N`

// Visual lists the attributes that are dropped on import.
var Visual = map[string]bool{
	"arrowhead": true, "arrowsize": true, "arrowtail": true,
	"bb": true, "color": true, "fillcolor": true,
	"fixedsize": true, "fontcolor": true, "fontname": true, "fontsize": true,
	"height": true, "lp": true, "penwidth": true, "pos": true,
	"shape": true, "style": true, "width": true, "xlp": true,
}

// Parser reads DOT. Vertex ids are the node names.
type Parser struct{}

var _ stream.Parser[[]byte] = Parser{}

// Parse implements stream.Parser.
func (Parser) Parse(ctx context.Context, r io.Reader, sink stream.Sink[[]byte]) (err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g, err := cgraph.ParseBytes(data)
	if err != nil {
		return stream.Wrap(Format, err)
	}
	defer func() {
		if cerr := g.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	graphAttrs, err := symbols(g, cgraph.GRAPH)
	if err != nil {
		return stream.Wrap(Format, err)
	}
	for _, name := range graphAttrs {
		if v := g.GetStr(name); v != "" && !Visual[name] {
			if err := sink.GraphAttribute([]byte(name), []byte(v)); err != nil {
				return err
			}
		}
	}

	nodeAttrs, err := symbols(g, cgraph.NODE)
	if err != nil {
		return stream.Wrap(Format, err)
	}
	nodes, err := collectNodes(g)
	if err != nil {
		return stream.Wrap(Format, err)
	}
	ids := make([][]byte, len(nodes))
	for i, n := range nodes {
		id, err := nodeName(n)
		if err != nil {
			return stream.Wrap(Format, err)
		}
		ids[i] = id
		if err := sink.Vertex(id); err != nil {
			return err
		}
		for _, key := range nodeAttrs {
			v := n.GetStr(key)
			if v == "" || Visual[key] || key == "label" && v == defaultLabel {
				continue
			}
			if err := sink.VertexAttribute(id, []byte(key), []byte(v)); err != nil {
				return err
			}
		}
		if err := sink.VertexDone(id); err != nil {
			return err
		}
	}

	edgeAttrs, err := symbols(g, cgraph.EDGE)
	if err != nil {
		return stream.Wrap(Format, err)
	}
	rank := 0
	for i, n := range nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := g.FirstOut(n)
		for ; err == nil && e != nil; e, err = g.NextOut(e) {
			head, herr := e.Head()
			if herr != nil {
				return stream.Wrap(Format, herr)
			}
			target, herr := nodeName(head)
			if herr != nil {
				return stream.Wrap(Format, herr)
			}
			if err := sink.Edge(rank, ids[i], target); err != nil {
				return err
			}
			for _, key := range edgeAttrs {
				v := e.GetStr(key)
				if v == "" || Visual[key] {
					continue
				}
				if err := sink.EdgeAttribute(rank, []byte(key), []byte(v)); err != nil {
					return err
				}
			}
			if err := sink.EdgeDone(rank); err != nil {
				return err
			}
			rank++
		}
		if err != nil {
			return stream.Wrap(Format, err)
		}
	}
	return nil
}

func collectNodes(g *cgraph.Graph) ([]*cgraph.Node, error) {
	var nodes []*cgraph.Node
	n, err := g.FirstNode()
	for ; err == nil && n != nil; n, err = g.NextNode(n) {
		nodes = append(nodes, n)
	}
	return nodes, err
}

func nodeName(n *cgraph.Node) ([]byte, error) {
	name, err := n.Name()
	return []byte(name), err
}

// symbols lists the attribute names declared for kind.
func symbols(g *cgraph.Graph, kind cgraph.ObjectTag) ([]string, error) {
	var names []string
	sym, err := g.NextAttr(int(kind), nil)
	for ; err == nil && sym != nil; sym, err = g.NextAttr(int(kind), sym) {
		names = append(names, sym.Name())
	}
	return names, err
}
