package dag

import (
	"iter"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// DAG guards a directed graph against cycles. Every method of the wrapped
// graph is available; AddEdge additionally refuses edges that would close
// a cycle.
//
// The zero value is not usable - use New.
type DAG[T comparable] struct {
	graph.Graph[T]
}

// New wraps g, which must be directed and currently acyclic.
// Returns INVALID_ARGUMENT for an undirected graph and INVALID_STATE when g
// already contains a cycle.
func New[T comparable](g graph.Graph[T]) (*DAG[T], error) {
	if !g.Type().Directed() {
		return nil, errors.InvalidArgument("dag requires a directed graph")
	}
	d := &DAG[T]{Graph: g}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// AddEdge adds the edge u->v unless it would create a cycle, in which case
// it returns INVALID_ARGUMENT and the graph is unchanged. Self-loops are
// cycles.
//
// The check walks the descendants of v, so its cost is linear in the size
// of the reachable subgraph.
func (d *DAG[T]) AddEdge(u, v T, opts ...graph.EdgeOption[T]) (T, error) {
	if d.Graph.ContainsVertex(u) && d.Graph.ContainsVertex(v) {
		if u == v || d.reaches(v, u) {
			var zero T
			return zero, errors.InvalidArgument("edge %v -> %v would create a cycle", u, v)
		}
	}
	return d.Graph.AddEdge(u, v, opts...)
}

// reaches reports whether to is reachable from from.
func (d *DAG[T]) reaches(from, to T) bool {
	found := false
	_ = d.walk(from, d.Graph.OutEdgesOf, d.Graph.EdgeTarget, func(v T) bool {
		found = v == to
		return !found
	})
	return found
}

// walk visits every vertex reachable from start in breadth-first order,
// start excluded, until visit returns false.
func (d *DAG[T]) walk(start T, edges func(T) (iter.Seq[T], error), next func(T) (T, error), visit func(T) bool) error {
	seen := map[T]bool{start: true}
	queue := []T{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		seq, err := edges(curr)
		if err != nil {
			return err
		}
		for _, e := range graph.Collect(seq) {
			w, err := next(e)
			if err != nil {
				return err
			}
			if seen[w] {
				continue
			}
			seen[w] = true
			if !visit(w) {
				return nil
			}
			queue = append(queue, w)
		}
	}
	return nil
}

// Descendants returns the vertices reachable from v in breadth-first
// order. Returns NO_SUCH_ELEMENT if v is absent.
func (d *DAG[T]) Descendants(v T) ([]T, error) {
	return d.collect(v, d.Graph.OutEdgesOf, d.Graph.EdgeTarget)
}

// Ancestors returns the vertices that reach v in breadth-first order.
// Returns NO_SUCH_ELEMENT if v is absent.
func (d *DAG[T]) Ancestors(v T) ([]T, error) {
	return d.collect(v, d.Graph.InEdgesOf, d.Graph.EdgeSource)
}

func (d *DAG[T]) collect(v T, edges func(T) (iter.Seq[T], error), next func(T) (T, error)) ([]T, error) {
	if !d.Graph.ContainsVertex(v) {
		return nil, errors.NoSuchElement("vertex %v not in graph", v)
	}
	var out []T
	err := d.walk(v, edges, next, func(w T) bool {
		out = append(out, w)
		return true
	})
	return out, err
}

// TopologicalOrder returns the vertices so that every edge points forward.
//
// It runs Kahn's algorithm seeded in vertex enumeration order and follows
// out-edges in adjacency order, so equal graphs yield equal orders. Returns
// INVALID_STATE if the graph contains a cycle, which can only happen when
// the base was modified around the DAG.
func (d *DAG[T]) TopologicalOrder() ([]T, error) {
	inDegree := make(map[T]int, d.Graph.VertexCount())
	var queue []T
	for v := range d.Graph.Vertices() {
		n, err := d.Graph.InDegreeOf(v)
		if err != nil {
			return nil, err
		}
		inDegree[v] = n
		if n == 0 {
			queue = append(queue, v)
		}
	}

	order := make([]T, 0, len(inDegree))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		seq, err := d.Graph.OutEdgesOf(curr)
		if err != nil {
			return nil, err
		}
		for _, e := range graph.Collect(seq) {
			child, err := d.Graph.EdgeTarget(e)
			if err != nil {
				return nil, err
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(order) != len(inDegree) {
		return nil, errCycle()
	}
	return order, nil
}

// Validate returns INVALID_STATE if the graph contains a directed cycle.
// Cycles are detected using depth-first search with white/gray/black
// coloring in O(V+E).
func (d *DAG[T]) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[T]int, d.Graph.VertexCount())
	var hasCycle bool
	var failure error

	var dfs func(v T)
	dfs = func(v T) {
		color[v] = gray
		seq, err := d.Graph.OutEdgesOf(v)
		if err != nil {
			failure = err
			return
		}
		for _, e := range graph.Collect(seq) {
			child, _ := d.Graph.EdgeTarget(e)
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle || failure != nil {
				return
			}
		}
		color[v] = black
	}

	for v := range d.Graph.Vertices() {
		if color[v] == white {
			dfs(v)
			if failure != nil {
				return failure
			}
			if hasCycle {
				return errCycle()
			}
		}
	}
	return nil
}

func errCycle() error {
	return errors.New(errors.ErrCodeInvalidState, "graph contains a cycle")
}
