package transform

import (
	"github.com/matzehuels/graphkit/pkg/graph"
)

// BreakCycles removes the back edges found by a depth-first search so that
// g becomes acyclic, and returns how many edges it removed.
//
// The search starts from vertices without incoming edges, then from any
// vertex still unvisited, both in enumeration order. Self-loops count as
// back edges.
func BreakCycles[T comparable](g graph.Graph[T]) (int, error) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[T]int, g.VertexCount())
	var backEdges []T
	var failure error

	var dfs func(v T)
	dfs = func(v T) {
		color[v] = gray
		seq, err := g.OutEdgesOf(v)
		if err != nil {
			failure = err
			return
		}
		for _, e := range graph.Collect(seq) {
			child, _ := g.EdgeTarget(e)
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, e)
			}
		}
		color[v] = black
	}

	vertices := graph.Collect(g.Vertices())
	for _, v := range vertices {
		if n, _ := g.InDegreeOf(v); n == 0 && color[v] == white {
			dfs(v)
		}
	}
	for _, v := range vertices {
		if color[v] == white {
			dfs(v)
		}
	}
	if failure != nil {
		return 0, failure
	}

	for _, e := range backEdges {
		if _, err := g.RemoveEdge(e); err != nil {
			return 0, err
		}
	}
	return len(backEdges), nil
}
