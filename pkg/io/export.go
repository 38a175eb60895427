package io

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// Exportable lists the formats [Export] can write.
var Exportable = []Format{JSON, DIMACS, GML, CSV, DOT}

type field struct {
	key, value string
}

type exportVertex struct {
	id    string
	attrs []field
}

type exportEdge struct {
	source, target int
	weight         float64
	attrs          []field
}

// snapshot is a format-neutral copy of a graph. Edge endpoints index into
// vertices, which keeps the graph's enumeration order.
type snapshot struct {
	directed bool
	weighted bool
	attrs    []field
	vertices []exportVertex
	edges    []exportEdge
}

func fields(m graph.AttrMap, skip ...string) []field {
	if m == nil {
		return nil
	}
	var out []field
	for _, k := range m.Keys() {
		if k == graph.WeightKey || slices.Contains(skip, k) {
			continue
		}
		if v, ok := m.Get(k); ok {
			out = append(out, field{k, v.String()})
		}
	}
	return out
}

func take[T comparable](g graph.Graph[T]) (*snapshot, error) {
	t := g.Type()
	s := &snapshot{directed: t.Directed(), weighted: t.Weighted()}
	attributed, _ := g.(graph.Attributed[T])
	if attributed != nil {
		s.attrs = fields(attributed.GraphAttrs())
	}

	index := make(map[T]int, g.VertexCount())
	for v := range g.Vertices() {
		xv := exportVertex{id: fmt.Sprint(v)}
		if attributed != nil {
			m, err := attributed.VertexAttrs(v)
			if err != nil {
				return nil, err
			}
			xv.attrs = fields(m, "id")
		}
		index[v] = len(s.vertices)
		s.vertices = append(s.vertices, xv)
	}
	for e := range g.Edges() {
		tr, err := g.EdgeTuple(e)
		if err != nil {
			return nil, err
		}
		xe := exportEdge{source: index[tr.Source], target: index[tr.Target], weight: tr.Weight}
		if attributed != nil {
			m, err := attributed.EdgeAttrs(e)
			if err != nil {
				return nil, err
			}
			xe.attrs = fields(m, "id", "source", "target")
		}
		s.edges = append(s.edges, xe)
	}
	return s, nil
}

// Export writes g to w. Vertex ids are written as fmt.Sprint of the
// identity; edge weights are written when the graph is weighted.
//
// JSON, GML and DOT carry vertex and edge attributes. DIMACS and GML number
// vertices by enumeration order (from 1 and 0 respectively). CSV is written
// as an adjacency list, with "id:weight" neighbors on weighted graphs.
func Export[T comparable](g graph.Graph[T], format Format, w io.Writer) error {
	if g == nil {
		return errors.New(errors.ErrCodeNullPointer, "export: graph is nil")
	}
	var write func(*snapshot, *bufio.Writer) error
	switch format {
	case JSON:
		write = writeJSON
	case DIMACS:
		write = writeDIMACS
	case GML:
		write = writeGML
	case CSV:
		write = writeCSV
	case DOT:
		write = writeDOT
	default:
		return errors.Unsupported("export: format %s cannot be written", format)
	}

	s, err := take(g)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if err := write(s, bw); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func writeJSON(s *snapshot, w *bufio.Writer) error {
	w.WriteString("{\n  \"directed\": ")
	w.WriteString(strconv.FormatBool(s.directed))
	w.WriteString(",\n  \"nodes\": [")
	for i, v := range s.vertices {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteString("\n    {\"id\": ")
		w.WriteString(jsonString(v.id))
		for _, f := range v.attrs {
			fmt.Fprintf(w, ", %s: %s", jsonString(f.key), jsonString(f.value))
		}
		w.WriteByte('}')
	}
	w.WriteString("\n  ],\n  \"edges\": [")
	for i, e := range s.edges {
		if i > 0 {
			w.WriteByte(',')
		}
		fmt.Fprintf(w, "\n    {\"source\": %s, \"target\": %s",
			jsonString(s.vertices[e.source].id), jsonString(s.vertices[e.target].id))
		if s.weighted {
			fmt.Fprintf(w, ", %q: %s", graph.WeightKey, formatFloat(e.weight))
		}
		for _, f := range e.attrs {
			fmt.Fprintf(w, ", %s: %s", jsonString(f.key), jsonString(f.value))
		}
		w.WriteByte('}')
	}
	_, err := w.WriteString("\n  ]\n}\n")
	return err
}

func writeDIMACS(s *snapshot, w *bufio.Writer) error {
	problem, tag := "edge", "e"
	if s.directed {
		problem, tag = "sp", "a"
	}
	fmt.Fprintf(w, "p %s %d %d\n", problem, len(s.vertices), len(s.edges))
	for _, e := range s.edges {
		if s.weighted {
			fmt.Fprintf(w, "%s %d %d %s\n", tag, e.source+1, e.target+1, formatFloat(e.weight))
			continue
		}
		fmt.Fprintf(w, "%s %d %d\n", tag, e.source+1, e.target+1)
	}
	return nil
}

// gmlKey reports whether k can be written as a GML key.
func gmlKey(k string) bool {
	if k == "" {
		return false
	}
	for i, r := range k {
		letter := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		if !letter && (i == 0 || r != '_' && (r < '0' || r > '9')) {
			return false
		}
	}
	return true
}

func writeGMLAttrs(w *bufio.Writer, indent string, attrs []field) {
	for _, f := range attrs {
		if gmlKey(f.key) {
			fmt.Fprintf(w, "%s%s %s\n", indent, f.key, strconv.Quote(f.value))
		}
	}
}

func writeGML(s *snapshot, w *bufio.Writer) error {
	w.WriteString("graph [\n")
	directed := 0
	if s.directed {
		directed = 1
	}
	fmt.Fprintf(w, "  directed %d\n", directed)
	var graphAttrs []field
	for _, f := range s.attrs {
		if f.key != "directed" {
			graphAttrs = append(graphAttrs, f)
		}
	}
	writeGMLAttrs(w, "  ", graphAttrs)
	for i, v := range s.vertices {
		fmt.Fprintf(w, "  node [\n    id %d\n", i)
		writeGMLAttrs(w, "    ", v.attrs)
		w.WriteString("  ]\n")
	}
	for _, e := range s.edges {
		fmt.Fprintf(w, "  edge [\n    source %d\n    target %d\n", e.source, e.target)
		if s.weighted {
			fmt.Fprintf(w, "    %s %s\n", graph.WeightKey, formatFloat(e.weight))
		}
		writeGMLAttrs(w, "    ", e.attrs)
		w.WriteString("  ]\n")
	}
	_, err := w.WriteString("]\n")
	return err
}

func writeCSV(s *snapshot, w *bufio.Writer) error {
	out := make([][]string, len(s.vertices))
	for i, v := range s.vertices {
		out[i] = []string{v.id}
	}
	for _, e := range s.edges {
		neighbor := s.vertices[e.target].id
		if s.weighted {
			neighbor += ":" + formatFloat(e.weight)
		}
		out[e.source] = append(out[e.source], neighbor)
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(out); err != nil {
		return err
	}
	return cw.Error()
}

func dotString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func dotAttrs(attrs []field) string {
	parts := make([]string, len(attrs))
	for i, f := range attrs {
		parts[i] = dotString(f.key) + "=" + dotString(f.value)
	}
	return strings.Join(parts, ", ")
}

func writeDOT(s *snapshot, w *bufio.Writer) error {
	kind, arrow := "graph", "--"
	if s.directed {
		kind, arrow = "digraph", "->"
	}
	fmt.Fprintf(w, "%s G {\n", kind)
	for _, f := range s.attrs {
		fmt.Fprintf(w, "  %s=%s;\n", dotString(f.key), dotString(f.value))
	}
	for _, v := range s.vertices {
		if len(v.attrs) == 0 {
			fmt.Fprintf(w, "  %s;\n", dotString(v.id))
			continue
		}
		fmt.Fprintf(w, "  %s [%s];\n", dotString(v.id), dotAttrs(v.attrs))
	}
	for _, e := range s.edges {
		attrs := e.attrs
		if s.weighted {
			attrs = append([]field{{graph.WeightKey, formatFloat(e.weight)}}, attrs...)
		}
		fmt.Fprintf(w, "  %s %s %s", dotString(s.vertices[e.source].id), arrow, dotString(s.vertices[e.target].id))
		if len(attrs) > 0 {
			fmt.Fprintf(w, " [%s]", dotAttrs(attrs))
		}
		w.WriteString(";\n")
	}
	_, err := w.WriteString("}\n")
	return err
}
