package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/render"
)

// LabelKey is the vertex attribute shown instead of the vertex id.
const LabelKey = "label"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds every vertex attribute to the node label.
	Detailed bool
	// EdgeWeights prints weights on the edges of weighted graphs.
	EdgeWeights bool
}

// ToDOT converts g to styled Graphviz DOT source for node-link
// visualization. Directed graphs are laid out top to bottom.
func ToDOT[T comparable](g graph.Graph[T], opts Options) string {
	attributed, _ := g.(graph.Attributed[T])
	directed := g.Type().Directed()

	var buf bytes.Buffer
	kind, arrow := "graph", "--"
	if directed {
		kind, arrow = "digraph", "->"
	}
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	names := make(map[T]string, g.VertexCount())
	for v := range g.Vertices() {
		name := fmt.Sprint(v)
		names[v] = name
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, fmtLabel(name, vertexAttrs(attributed, v), opts.Detailed))
	}

	buf.WriteString("\n")
	weighted := g.Type().Weighted() && opts.EdgeWeights
	for e := range g.Edges() {
		t, err := g.EdgeTuple(e)
		if err != nil {
			continue
		}
		fmt.Fprintf(&buf, "  %q %s %q", names[t.Source], arrow, names[t.Target])
		if weighted {
			fmt.Fprintf(&buf, " [label=%q]", strconv.FormatFloat(t.Weight, 'g', -1, 64))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexAttrs[T comparable](a graph.Attributed[T], v T) graph.AttrMap {
	if a == nil {
		return nil
	}
	m, err := a.VertexAttrs(v)
	if err != nil {
		return nil
	}
	return m
}

func fmtLabel(id string, attrs graph.AttrMap, detailed bool) string {
	label := id
	if attrs == nil {
		return label
	}
	if v, ok := attrs.Get(LabelKey); ok && v.String() != "" {
		label = v.String()
	}
	if !detailed {
		return label
	}

	var parts []string
	for _, k := range attrs.Keys() {
		if k == LabelKey {
			continue
		}
		v, _ := attrs.Get(k)
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from a
// zero origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
