// Package nodelink renders graphs as node-link diagrams.
//
// # Overview
//
// Vertices appear as rounded boxes joined by arrows (directed graphs) or
// plain lines (undirected graphs). Layout and drawing are done in-process
// by Graphviz.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT[string](g, nodelink.Options{EdgeWeights: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG go through SVG:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Labels
//
// A vertex is labelled with its "label" attribute when the graph carries
// one, and with its id otherwise. With [Options].Detailed every other
// vertex attribute is appended as a "key: value" line.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for SVG rendering. PDF
// and PNG conversion requires librsvg (rsvg-convert).
package nodelink
