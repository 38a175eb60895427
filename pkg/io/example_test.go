package io_test

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/graphkit/pkg/graph"
	graphio "github.com/matzehuels/graphkit/pkg/io"
)

func ExampleImport() {
	g := graph.NewString(graph.NewType(graph.Directed(), graph.Weighted()))
	doc := `{
  "nodes": [{"id": "app"}, {"id": "lib", "license": "MIT"}],
  "edges": [{"source": "app", "target": "lib", "weight": 3}]
}`
	stats, err := graphio.Import[string](context.Background(), g, graphio.JSON, graphio.String(doc),
		graphio.WithVertexAttributes(func(_ context.Context, v, key, value string) {
			fmt.Printf("%s: %s=%s\n", v, key, value)
		}))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(stats.Vertices, "vertices,", stats.Edges, "edge")
	for e := range g.Edges() {
		t, _ := g.EdgeTuple(e)
		fmt.Printf("%s -> %s (%g)\n", t.Source, t.Target, t.Weight)
	}
	// Output:
	// lib: license=MIT
	// 2 vertices, 1 edge
	// app -> lib (3)
}

func ExampleExport() {
	g := graph.NewInt(graph.NewType(graph.Directed(), graph.Weighted()))
	for range 3 {
		_, _ = g.AddVertex()
	}
	_, _ = g.AddEdge(0, 1, graph.WithWeight[int32](4))
	_, _ = g.AddEdge(1, 2, graph.WithWeight[int32](0.5))

	_ = graphio.Export[int32](g, graphio.DIMACS, os.Stdout)
	// Output:
	// p sp 3 2
	// a 1 2 4
	// a 2 3 0.5
}

func ExampleReadEdgeList() {
	edges, _ := graphio.ReadEdgeList(context.Background(), graphio.CSV, graphio.String("x,y,z\ny,z\n"))
	for _, e := range edges {
		fmt.Println(e.Source, e.Target)
	}
	// Output:
	// x y
	// x z
	// y z
}
