package transform

import "github.com/matzehuels/graphkit/pkg/graph"

// TransitiveReduction removes every edge u->v for which v is also reachable
// from u through an intermediate vertex, and returns how many edges it
// removed. g must be acyclic.
//
// Reachability is computed once by depth-first search from every vertex,
// so the cost is O(V·E) time and O(V²) space.
func TransitiveReduction[T comparable](g graph.Graph[T]) (int, error) {
	vertices := graph.Collect(g.Vertices())
	index := make(map[T]int, len(vertices))
	for i, v := range vertices {
		index[v] = i
	}

	adjacency := make([][]int, len(vertices))
	for i, v := range vertices {
		seq, err := g.OutEdgesOf(v)
		if err != nil {
			return 0, err
		}
		for e := range seq {
			w, _ := g.EdgeTarget(e)
			adjacency[i] = append(adjacency[i], index[w])
		}
	}
	reachable := computeReachability(adjacency)

	var redundant []T
	for e := range g.Edges() {
		t, err := g.EdgeTuple(e)
		if err != nil {
			return 0, err
		}
		src, dst := index[t.Source], index[t.Target]
		for _, mid := range adjacency[src] {
			if mid != dst && mid != src && reachable[mid][dst] {
				redundant = append(redundant, e)
				break
			}
		}
	}
	for _, e := range redundant {
		if _, err := g.RemoveEdge(e); err != nil {
			return 0, err
		}
	}
	return len(redundant), nil
}

func computeReachability(adjacency [][]int) [][]bool {
	n := len(adjacency)
	reachable := make([][]bool, n)
	for i := range reachable {
		reachable[i] = make([]bool, n)
	}

	var dfs func(source, current int)
	dfs = func(source, current int) {
		for _, next := range adjacency[current] {
			if !reachable[source][next] {
				reachable[source][next] = true
				dfs(source, next)
			}
		}
	}
	for i := range n {
		dfs(i, i)
	}
	return reachable
}
