package transform

import "github.com/matzehuels/graphkit/pkg/graph"

// AssignLayers maps every vertex to its depth: sources are at layer 0 and
// every other vertex sits one below its deepest predecessor.
//
// AssignLayers uses a longest-path algorithm via topological sort (Kahn's
// algorithm). It assumes g is acyclic; vertices on a cycle never reach zero
// in-degree and keep layer 0. Run [BreakCycles] first on untrusted input.
//
// Time complexity is O(V + E).
func AssignLayers[T comparable](g graph.Graph[T]) (map[T]int, error) {
	inDegree := make(map[T]int, g.VertexCount())
	layers := make(map[T]int, g.VertexCount())
	var queue []T

	for v := range g.Vertices() {
		n, err := g.InDegreeOf(v)
		if err != nil {
			return nil, err
		}
		inDegree[v] = n
		layers[v] = 0
		if n == 0 {
			queue = append(queue, v)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		seq, err := g.OutEdgesOf(curr)
		if err != nil {
			return nil, err
		}
		for e := range seq {
			child, _ := g.EdgeTarget(e)
			if layer := layers[curr] + 1; layer > layers[child] {
				layers[child] = layer
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return layers, nil
}
