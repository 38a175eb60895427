// Package sparse builds immutable graphs in compressed sparse row form.
//
// A sparse [Graph] is built once from an edge list and never changes shape:
// every structural mutation fails with UNSUPPORTED. Vertices are the dense
// integers [0, n) and edges are numbered by their position in the input.
// Weights stay writable when the graph is built weighted.
//
//	b := sparse.NewBuilder(true, false)
//	b.Add(0, 1)
//	b.Add(1, 2)
//	g, err := b.Build(-1) // infer n = 3
//
// Adjacency is packed into two parallel arrays per direction: starts[v]
// indexes the first incident edge of v, and the edges of v are sorted by
// their opposite endpoint. Lookups between two vertices are therefore
// logarithmic in the degree.
package sparse

import (
	"cmp"
	"iter"
	"slices"
	"sort"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// Graph is an immutable CSR graph. It implements graph.Graph[int32].
type Graph struct {
	directed bool
	weighted bool
	n        int

	src, tgt []int32
	weight   []float64
	loops    []int32

	// out holds the outgoing edges in directed graphs and the incident
	// edges in undirected graphs.
	out csr
	in  csr
}

// csr is one packed adjacency.
type csr struct {
	starts []int32 // len n+1
	edges  []int32
	others []int32 // opposite endpoint, parallel to edges
}

type entry struct{ owner, other, edge int32 }

func pack(n int, entries []entry) csr {
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Or(cmp.Compare(a.owner, b.owner), cmp.Compare(a.other, b.other), cmp.Compare(a.edge, b.edge))
	})
	c := csr{
		starts: make([]int32, n+1),
		edges:  make([]int32, len(entries)),
		others: make([]int32, len(entries)),
	}
	for i, x := range entries {
		c.starts[x.owner+1]++
		c.edges[i], c.others[i] = x.edge, x.other
	}
	for v := range n {
		c.starts[v+1] += c.starts[v]
	}
	return c
}

func (c csr) of(v int32) (edges, others []int32) {
	lo, hi := c.starts[v], c.starts[v+1]
	return c.edges[lo:hi], c.others[lo:hi]
}

// between returns the edges of v whose opposite endpoint is u.
func (c csr) between(v, u int32) []int32 {
	edges, others := c.of(v)
	lo := sort.Search(len(others), func(i int) bool { return others[i] >= u })
	hi := lo
	for hi < len(others) && others[hi] == u {
		hi++
	}
	return edges[lo:hi]
}

func newGraph(n int, directed, weighted bool, src, tgt []int32, weight []float64) *Graph {
	g := &Graph{
		directed: directed,
		weighted: weighted,
		n:        n,
		src:      src,
		tgt:      tgt,
		weight:   weight,
		loops:    make([]int32, n),
	}
	out := make([]entry, 0, len(src))
	var in []entry
	for i := range src {
		e, u, v := int32(i), src[i], tgt[i]
		out = append(out, entry{u, v, e})
		switch {
		case directed:
			in = append(in, entry{v, u, e})
		case u != v:
			out = append(out, entry{v, u, e})
		}
		if u == v {
			g.loops[u]++
		}
	}
	g.out = pack(n, out)
	if directed {
		g.in = pack(n, in)
	}
	return g
}

func (g *Graph) Type() graph.Type {
	opts := []graph.TypeOption{graph.SelfLoops(), graph.MultiEdges()}
	if g.directed {
		opts = append(opts, graph.Directed())
	}
	if g.weighted {
		opts = append(opts, graph.Weighted())
	}
	return graph.NewType(opts...).AsUnmodifiable()
}

func frozen() error { return errors.Unsupported("sparse graph is immutable") }

func (g *Graph) AddVertex() (int32, error)                                       { return 0, frozen() }
func (g *Graph) AddVertexWithID(int32) (int32, error)                            { return 0, frozen() }
func (g *Graph) RemoveVertex(int32) (bool, error)                                { return false, frozen() }
func (g *Graph) AddEdge(int32, int32, ...graph.EdgeOption[int32]) (int32, error) { return 0, frozen() }
func (g *Graph) RemoveEdge(int32) (bool, error)                                  { return false, frozen() }

func (g *Graph) ContainsVertex(v int32) bool { return v >= 0 && int(v) < g.n }
func (g *Graph) ContainsEdge(e int32) bool   { return e >= 0 && int(e) < len(g.src) }
func (g *Graph) VertexCount() int            { return g.n }
func (g *Graph) EdgeCount() int              { return len(g.src) }

func (g *Graph) ContainsEdgeBetween(u, v int32) bool {
	if !g.ContainsVertex(u) || !g.ContainsVertex(v) {
		return false
	}
	return len(g.out.between(u, v)) > 0
}

func (g *Graph) checkVertex(v int32) error {
	if !g.ContainsVertex(v) {
		return errors.NoSuchElement("vertex %d not in graph", v)
	}
	return nil
}

func (g *Graph) checkEdge(e int32) error {
	if !g.ContainsEdge(e) {
		return errors.NoSuchElement("edge %d not in graph", e)
	}
	return nil
}

func (g *Graph) EdgeSource(e int32) (int32, error) {
	if err := g.checkEdge(e); err != nil {
		return 0, err
	}
	return g.src[e], nil
}

func (g *Graph) EdgeTarget(e int32) (int32, error) {
	if err := g.checkEdge(e); err != nil {
		return 0, err
	}
	return g.tgt[e], nil
}

func (g *Graph) EdgeTuple(e int32) (graph.Triple[int32], error) {
	w, err := g.EdgeWeight(e)
	if err != nil {
		return graph.Triple[int32]{}, err
	}
	return graph.Triple[int32]{Source: g.src[e], Target: g.tgt[e], Weight: w}, nil
}

func (g *Graph) EdgeWeight(e int32) (float64, error) {
	if err := g.checkEdge(e); err != nil {
		return 0, err
	}
	if !g.weighted {
		return 1.0, nil
	}
	return g.weight[e], nil
}

// SetEdgeWeight updates a weight in place. Only weighted graphs accept it.
func (g *Graph) SetEdgeWeight(e int32, w float64) error {
	if !g.weighted {
		return errors.Unsupported("graph is not weighted")
	}
	if err := g.checkEdge(e); err != nil {
		return err
	}
	g.weight[e] = w
	return nil
}

// DegreeOf counts self-loops twice.
func (g *Graph) DegreeOf(v int32) (int, error) {
	if err := g.checkVertex(v); err != nil {
		return 0, err
	}
	d := int(g.out.starts[v+1] - g.out.starts[v])
	if g.directed {
		return d + int(g.in.starts[v+1]-g.in.starts[v]), nil
	}
	return d + int(g.loops[v]), nil
}

func (g *Graph) InDegreeOf(v int32) (int, error) {
	if !g.directed {
		return g.DegreeOf(v)
	}
	if err := g.checkVertex(v); err != nil {
		return 0, err
	}
	return int(g.in.starts[v+1] - g.in.starts[v]), nil
}

func (g *Graph) OutDegreeOf(v int32) (int, error) {
	if !g.directed {
		return g.DegreeOf(v)
	}
	if err := g.checkVertex(v); err != nil {
		return 0, err
	}
	return int(g.out.starts[v+1] - g.out.starts[v]), nil
}

// EdgesOf yields outgoing edges, then incoming edges that are not
// self-loops.
func (g *Graph) EdgesOf(v int32) (iter.Seq[int32], error) {
	if err := g.checkVertex(v); err != nil {
		return nil, err
	}
	out, _ := g.out.of(v)
	if !g.directed {
		return slices.Values(out), nil
	}
	in, others := g.in.of(v)
	return func(yield func(int32) bool) {
		for _, e := range out {
			if !yield(e) {
				return
			}
		}
		for i, e := range in {
			if others[i] != v && !yield(e) {
				return
			}
		}
	}, nil
}

func (g *Graph) InEdgesOf(v int32) (iter.Seq[int32], error) {
	if !g.directed {
		return g.EdgesOf(v)
	}
	if err := g.checkVertex(v); err != nil {
		return nil, err
	}
	in, _ := g.in.of(v)
	return slices.Values(in), nil
}

func (g *Graph) OutEdgesOf(v int32) (iter.Seq[int32], error) {
	if !g.directed {
		return g.EdgesOf(v)
	}
	if err := g.checkVertex(v); err != nil {
		return nil, err
	}
	out, _ := g.out.of(v)
	return slices.Values(out), nil
}

func (g *Graph) EdgesBetween(u, v int32) (iter.Seq[int32], error) {
	if err := g.checkVertex(u); err != nil {
		return nil, err
	}
	if err := g.checkVertex(v); err != nil {
		return nil, err
	}
	return slices.Values(g.out.between(u, v)), nil
}

func (g *Graph) Vertices() iter.Seq[int32] { return count(g.n) }
func (g *Graph) Edges() iter.Seq[int32]    { return count(len(g.src)) }

func count(n int) iter.Seq[int32] {
	return func(yield func(int32) bool) {
		for i := range int32(n) {
			if !yield(i) {
				return
			}
		}
	}
}
