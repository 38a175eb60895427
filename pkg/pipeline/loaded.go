package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/matzehuels/graphkit/pkg/dag"
	"github.com/matzehuels/graphkit/pkg/dag/transform"
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/identity"
	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/render"
	"github.com/matzehuels/graphkit/pkg/render/nodelink"
	"github.com/matzehuels/graphkit/pkg/sparse"
)

// Loaded is an imported graph whose vertex type has been erased.
type Loaded struct {
	Regime identity.Regime
	Format graphio.Format
	Stats  graphio.Stats
	Took   time.Duration

	h handle
}

// Summary describes the shape of a loaded graph.
type Summary struct {
	Type      string  `json:"type"`
	Vertices  int     `json:"vertices"`
	Edges     int     `json:"edges"`
	Isolated  int     `json:"isolated"`
	SelfLoops int     `json:"self_loops"`
	MaxDegree int     `json:"max_degree"`
	Density   float64 `json:"density"`
	Weight    float64 `json:"total_weight,omitempty"`

	// Directed graphs only.
	Sources int   `json:"sources,omitempty"`
	Sinks   int   `json:"sinks,omitempty"`
	Acyclic *bool `json:"acyclic,omitempty"`
	Depth   int   `json:"depth,omitempty"`
}

// VertexInfo is one vertex with its neighbourhood, in display form.
type VertexInfo struct {
	ID        string            `json:"id"`
	In        int               `json:"in"`
	Out       int               `json:"out"`
	Degree    int               `json:"degree"`
	Neighbors []string          `json:"neighbors,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

type handle interface {
	summary() (Summary, error)
	export(format graphio.Format, w io.Writer) error
	dot(opts nodelink.Options) string
	vertices() ([]VertexInfo, error)
}

// Summary computes vertex, edge and degree statistics. Directed graphs
// are also checked for cycles; acyclic ones report their depth.
func (l *Loaded) Summary() (Summary, error) { return l.h.summary() }

// Vertices lists every vertex in enumeration order.
func (l *Loaded) Vertices() ([]VertexInfo, error) { return l.h.vertices() }

// DOT returns Graphviz source for a node-link drawing of the graph.
func (l *Loaded) DOT(opts nodelink.Options) string { return l.h.dot(opts) }

// Write serializes the graph to w in format, which is either an
// exportable import format or one of svg, png and pdf.
func (l *Loaded) Write(ctx context.Context, format string, w io.Writer, opts nodelink.Options) error {
	if err := ValidateOutput(format); err != nil {
		return err
	}
	if !IsDrawing(format) {
		f, _ := graphio.ParseFormat(format)
		return l.h.export(f, w)
	}

	svg, err := nodelink.RenderSVG(ctx, l.h.dot(opts))
	if err != nil {
		return err
	}
	out := svg
	switch format {
	case FormatPNG:
		out, err = render.ToPNG(svg, 2.0)
	case FormatPDF:
		out, err = render.ToPDF(svg)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

type typed[T comparable] struct {
	g *graph.Default[T]
}

func (t *typed[T]) export(format graphio.Format, w io.Writer) error {
	return graphio.Export[T](t.g, format, w)
}

func (t *typed[T]) dot(opts nodelink.Options) string {
	return nodelink.ToDOT[T](t.g, opts)
}

// frozen copies the graph into a sparse snapshot numbered by enumeration
// position.
func (t *typed[T]) frozen() (*sparse.Graph, []graph.Triple[int32], error) {
	pos := make(map[T]int32, t.g.VertexCount())
	for v := range t.g.Vertices() {
		pos[v] = int32(len(pos))
	}
	edges := make([]graph.Triple[int32], 0, t.g.EdgeCount())
	for e := range t.g.Edges() {
		tr, err := t.g.EdgeTuple(e)
		if err != nil {
			return nil, nil, err
		}
		edges = append(edges, graph.Triple[int32]{Source: pos[tr.Source], Target: pos[tr.Target], Weight: tr.Weight})
	}
	typ := t.g.Type()
	s, err := sparse.FromEdgeList(len(pos), edges, typ.Directed(), typ.Weighted())
	return s, edges, err
}

func (t *typed[T]) summary() (Summary, error) {
	s, edges, err := t.frozen()
	if err != nil {
		return Summary{}, err
	}
	typ := s.Type()
	sum := Summary{
		Type:     t.g.Type().String(),
		Vertices: s.VertexCount(),
		Edges:    s.EdgeCount(),
	}
	for _, e := range edges {
		if e.Source == e.Target {
			sum.SelfLoops++
		}
		if typ.Weighted() {
			sum.Weight += e.Weight
		}
	}
	for v := range s.Vertices() {
		d, err := s.DegreeOf(v)
		if err != nil {
			return Summary{}, err
		}
		sum.MaxDegree = max(sum.MaxDegree, d)
		if d == 0 {
			sum.Isolated++
		}
		if !typ.Directed() {
			continue
		}
		in, _ := s.InDegreeOf(v)
		out, _ := s.OutDegreeOf(v)
		if in == 0 && out > 0 {
			sum.Sources++
		}
		if out == 0 && in > 0 {
			sum.Sinks++
		}
	}
	if n := float64(sum.Vertices); n > 1 {
		pairs := n * (n - 1)
		if !typ.Directed() {
			pairs /= 2
		}
		sum.Density = float64(sum.Edges) / pairs
	}

	if !typ.Directed() {
		return sum, nil
	}
	acyclic := true
	if _, err := dag.New[int32](s); err != nil {
		if !errors.Is(err, errors.ErrCodeInvalidState) {
			return Summary{}, err
		}
		acyclic = false
	}
	sum.Acyclic = &acyclic
	if acyclic {
		layers, err := transform.AssignLayers[int32](s)
		if err != nil {
			return Summary{}, err
		}
		for _, l := range layers {
			sum.Depth = max(sum.Depth, l)
		}
	}
	return sum, nil
}

func (t *typed[T]) vertices() ([]VertexInfo, error) {
	out := make([]VertexInfo, 0, t.g.VertexCount())
	for v := range t.g.Vertices() {
		info := VertexInfo{ID: fmt.Sprint(v)}
		var err error
		if info.Degree, err = t.g.DegreeOf(v); err != nil {
			return nil, err
		}
		info.In, _ = t.g.InDegreeOf(v)
		info.Out, _ = t.g.OutDegreeOf(v)

		seq, err := t.g.OutEdgesOf(v)
		if err != nil {
			return nil, err
		}
		for e := range seq {
			tr, err := t.g.EdgeTuple(e)
			if err != nil {
				return nil, err
			}
			other := tr.Target
			if other == v {
				other = tr.Source
			}
			info.Neighbors = append(info.Neighbors, fmt.Sprint(other))
		}

		attrs, err := t.g.VertexAttrs(v)
		if err != nil {
			return nil, err
		}
		if attrs.Len() > 0 {
			info.Attrs = make(map[string]string, attrs.Len())
			for _, k := range attrs.Keys() {
				val, _ := attrs.Get(k)
				info.Attrs[k] = val.String()
			}
		}
		out = append(out, info)
	}
	return out, nil
}
