package sparse

import (
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// Builder accumulates an edge list for a sparse Graph. The zero value is
// not usable; call NewBuilder.
type Builder struct {
	directed bool
	weighted bool
	src, tgt []int32
	weight   []float64
	maxID    int32
	built    bool
}

// NewBuilder returns an empty builder.
func NewBuilder(directed, weighted bool) *Builder {
	return &Builder{directed: directed, weighted: weighted, maxID: -1}
}

// Add appends the edge u-v with weight 1.0.
func (b *Builder) Add(u, v int32) error {
	return b.add(u, v, 1.0)
}

// AddWeighted appends the edge u-v with weight w. The builder must be
// weighted.
func (b *Builder) AddWeighted(u, v int32, w float64) error {
	if !b.weighted {
		return errors.Unsupported("builder is not weighted")
	}
	return b.add(u, v, w)
}

func (b *Builder) add(u, v int32, w float64) error {
	if b.built {
		return errors.New(errors.ErrCodeInvalidState, "builder already used")
	}
	if u < 0 || v < 0 {
		return errors.InvalidArgument("negative vertex in edge (%d, %d)", u, v)
	}
	b.src = append(b.src, u)
	b.tgt = append(b.tgt, v)
	if b.weighted {
		b.weight = append(b.weight, w)
	}
	b.maxID = max(b.maxID, u, v)
	return nil
}

// Len returns the number of edges added so far.
func (b *Builder) Len() int { return len(b.src) }

// Build packs the edges into a Graph with n vertices. A negative n infers
// the vertex count from the largest endpoint. A builder builds once.
func (b *Builder) Build(n int) (*Graph, error) {
	if b.built {
		return nil, errors.New(errors.ErrCodeInvalidState, "builder already used")
	}
	if n < 0 {
		n = int(b.maxID) + 1
	}
	if int(b.maxID) >= n {
		return nil, errors.InvalidArgument("vertex %d out of range for %d vertices", b.maxID, n)
	}
	b.built = true
	return newGraph(n, b.directed, b.weighted, b.src, b.tgt, b.weight), nil
}

// FromEdgeList builds a Graph from triples. Weights are kept only when
// weighted is set.
func FromEdgeList(n int, edges []graph.Triple[int32], directed, weighted bool) (*Graph, error) {
	b := NewBuilder(directed, weighted)
	for _, e := range edges {
		if err := b.add(e.Source, e.Target, e.Weight); err != nil {
			return nil, err
		}
	}
	return b.Build(n)
}

// Copy freezes g into a sparse Graph. The vertices of g must be exactly
// [0, g.VertexCount()); edges are renumbered in enumeration order.
func Copy(g graph.Graph[int32]) (*Graph, error) {
	n := g.VertexCount()
	for v := range g.Vertices() {
		if v < 0 || int(v) >= n {
			return nil, errors.InvalidArgument("vertex %d breaks the dense range [0, %d)", v, n)
		}
	}
	t := g.Type()
	b := NewBuilder(t.Directed(), t.Weighted())
	for e := range g.Edges() {
		tr, err := g.EdgeTuple(e)
		if err != nil {
			return nil, err
		}
		if err := b.add(tr.Source, tr.Target, tr.Weight); err != nil {
			return nil, err
		}
	}
	return b.Build(n)
}
