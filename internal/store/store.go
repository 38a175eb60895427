// Package store implements the dense-index adjacency core shared by every
// graph facade.
//
// Vertices and edges are addressed by internal indices. Slots freed by a
// removal are recycled. Each vertex keeps intrusive adjacency lists of edge
// indices and every edge remembers its position inside them, so removing an
// edge is a constant-time swap-remove.
//
// Directed graphs keep an out-list and an in-list per vertex. Undirected
// graphs keep a single list in the out slot; a self-loop is listed once and
// counted twice by Degree.
package store

import (
	"iter"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// DefaultWeight is the weight of an edge that was never assigned one.
const DefaultWeight = 1.0

// Policy holds the structural rules enforced on edge insertion.
type Policy struct {
	Directed   bool
	SelfLoops  bool
	MultiEdges bool
}

type pair struct{ a, b int }

// Store is the adjacency core. It is not safe for concurrent use.
type Store struct {
	policy Policy

	vertLive []bool
	out      [][]int
	in       [][]int
	loops    []int

	edgeLive []bool
	src      []int
	tgt      []int
	posSrc   []int // position of the edge in out[src]
	posTgt   []int // position of the edge in in[tgt] (out[tgt] when undirected)
	weight   []float64

	pairs map[pair]int

	freeV []int
	freeE []int
	nv    int
	ne    int

	mods uint64
}

// New returns an empty store enforcing p.
func New(p Policy) *Store {
	return &Store{policy: p, pairs: make(map[pair]int)}
}

// Policy returns the rules enforced by the store.
func (s *Store) Policy() Policy { return s.policy }

// Grow preallocates room for n more vertices and m more edges.
func (s *Store) Grow(n, m int) {
	if n > 0 {
		s.vertLive = grow(s.vertLive, n)
		s.out = grow(s.out, n)
		s.loops = grow(s.loops, n)
		if s.policy.Directed {
			s.in = grow(s.in, n)
		}
	}
	if m > 0 {
		s.edgeLive = grow(s.edgeLive, m)
		s.src = grow(s.src, m)
		s.tgt = grow(s.tgt, m)
		s.posSrc = grow(s.posSrc, m)
		s.posTgt = grow(s.posTgt, m)
		s.weight = grow(s.weight, m)
	}
}

func grow[E any](s []E, n int) []E {
	if cap(s)-len(s) >= n {
		return s
	}
	g := make([]E, len(s), len(s)+n)
	copy(g, s)
	return g
}

// Mods returns the modification counter. It changes on every structural
// mutation and is used by lazy sequences to detect concurrent modification.
func (s *Store) Mods() uint64 { return s.mods }

// VertexCount returns the number of live vertices.
func (s *Store) VertexCount() int { return s.nv }

// EdgeCount returns the number of live edges.
func (s *Store) EdgeCount() int { return s.ne }

// VertexCap returns one past the highest vertex index ever allocated.
func (s *Store) VertexCap() int { return len(s.vertLive) }

// EdgeCap returns one past the highest edge index ever allocated.
func (s *Store) EdgeCap() int { return len(s.edgeLive) }

// ContainsVertex reports whether v is a live vertex index.
func (s *Store) ContainsVertex(v int) bool {
	return v >= 0 && v < len(s.vertLive) && s.vertLive[v]
}

// ContainsEdge reports whether e is a live edge index.
func (s *Store) ContainsEdge(e int) bool {
	return e >= 0 && e < len(s.edgeLive) && s.edgeLive[e]
}

// PeekVertex returns the index the next AddVertex will use.
func (s *Store) PeekVertex() int {
	if n := len(s.freeV); n > 0 {
		return s.freeV[n-1]
	}
	return len(s.vertLive)
}

// PeekEdge returns the index the next AddEdge will use.
func (s *Store) PeekEdge() int {
	if n := len(s.freeE); n > 0 {
		return s.freeE[n-1]
	}
	return len(s.edgeLive)
}

// AddVertex allocates a vertex and returns its index.
func (s *Store) AddVertex() int {
	var v int
	if n := len(s.freeV); n > 0 {
		v = s.freeV[n-1]
		s.freeV = s.freeV[:n-1]
		s.vertLive[v] = true
	} else {
		v = len(s.vertLive)
		s.vertLive = append(s.vertLive, true)
		s.out = append(s.out, nil)
		s.loops = append(s.loops, 0)
		if s.policy.Directed {
			s.in = append(s.in, nil)
		}
	}
	s.nv++
	s.mods++
	return v
}

// RemoveVertex removes v and every incident edge. onEdgeRemoved, when not
// nil, is called after each edge removal with the removed edge index, its
// endpoints and its last weight.
func (s *Store) RemoveVertex(v int, onEdgeRemoved func(e, u, w int, weight float64)) error {
	if !s.ContainsVertex(v) {
		return s.missingVertex(v)
	}
	for {
		e, ok := s.anyIncident(v)
		if !ok {
			break
		}
		u, w, weight := s.src[e], s.tgt[e], s.weight[e]
		s.detach(e)
		if onEdgeRemoved != nil {
			onEdgeRemoved(e, u, w, weight)
		}
	}
	s.vertLive[v] = false
	s.out[v] = s.out[v][:0]
	if s.policy.Directed {
		s.in[v] = s.in[v][:0]
	}
	s.loops[v] = 0
	s.freeV = append(s.freeV, v)
	s.nv--
	s.mods++
	return nil
}

func (s *Store) anyIncident(v int) (int, bool) {
	if l := s.out[v]; len(l) > 0 {
		return l[len(l)-1], true
	}
	if s.policy.Directed {
		if l := s.in[v]; len(l) > 0 {
			return l[len(l)-1], true
		}
	}
	return 0, false
}

func (s *Store) key(u, v int) pair {
	if !s.policy.Directed && v < u {
		u, v = v, u
	}
	return pair{u, v}
}

// CheckEdge validates an insertion of (u, v) against the policy without
// mutating the store.
func (s *Store) CheckEdge(u, v int) error {
	if !s.ContainsVertex(u) {
		return errors.InvalidArgument("edge source index %d is not a vertex", u)
	}
	if !s.ContainsVertex(v) {
		return errors.InvalidArgument("edge target index %d is not a vertex", v)
	}
	if u == v && !s.policy.SelfLoops {
		return errors.InvalidArgument("self-loops are not allowed (vertex index %d)", u)
	}
	if !s.policy.MultiEdges && s.pairs[s.key(u, v)] > 0 {
		return errors.InvalidArgument("multiple edges are not allowed (vertex indices %d, %d)", u, v)
	}
	return nil
}

// AddEdge inserts an edge from u to v with the default weight and returns
// its index.
func (s *Store) AddEdge(u, v int) (int, error) {
	if err := s.CheckEdge(u, v); err != nil {
		return 0, err
	}
	var e int
	if n := len(s.freeE); n > 0 {
		e = s.freeE[n-1]
		s.freeE = s.freeE[:n-1]
	} else {
		e = len(s.edgeLive)
		s.edgeLive = append(s.edgeLive, false)
		s.src = append(s.src, 0)
		s.tgt = append(s.tgt, 0)
		s.posSrc = append(s.posSrc, 0)
		s.posTgt = append(s.posTgt, 0)
		s.weight = append(s.weight, 0)
	}
	s.edgeLive[e] = true
	s.src[e], s.tgt[e] = u, v
	s.weight[e] = DefaultWeight

	s.posSrc[e] = len(s.out[u])
	s.out[u] = append(s.out[u], e)
	switch {
	case s.policy.Directed:
		s.posTgt[e] = len(s.in[v])
		s.in[v] = append(s.in[v], e)
	case u != v:
		s.posTgt[e] = len(s.out[v])
		s.out[v] = append(s.out[v], e)
	default:
		s.posTgt[e] = -1
	}
	if u == v {
		s.loops[u]++
	}
	s.pairs[s.key(u, v)]++
	s.ne++
	s.mods++
	return e, nil
}

// RemoveEdge removes e.
func (s *Store) RemoveEdge(e int) error {
	if !s.ContainsEdge(e) {
		return s.missingEdge(e)
	}
	s.detach(e)
	return nil
}

func (s *Store) detach(e int) {
	u, v := s.src[e], s.tgt[e]
	s.unlink(&s.out[u], s.posSrc[e], u, false)
	switch {
	case s.policy.Directed:
		s.unlink(&s.in[v], s.posTgt[e], v, true)
	case u != v:
		s.unlink(&s.out[v], s.posTgt[e], v, false)
	}
	if u == v {
		s.loops[u]--
	}
	k := s.key(u, v)
	if s.pairs[k] <= 1 {
		delete(s.pairs, k)
	} else {
		s.pairs[k]--
	}
	s.edgeLive[e] = false
	s.freeE = append(s.freeE, e)
	s.ne--
	s.mods++
}

// unlink swap-removes the entry at pos from an adjacency list of owner and
// fixes the position of the edge that moved into its place.
func (s *Store) unlink(list *[]int, pos, owner int, incoming bool) {
	l := *list
	last := len(l) - 1
	if pos != last {
		moved := l[last]
		l[pos] = moved
		switch {
		case incoming:
			s.posTgt[moved] = pos
		case s.policy.Directed || s.src[moved] == owner:
			s.posSrc[moved] = pos
		default:
			s.posTgt[moved] = pos
		}
	}
	*list = l[:last]
}

// Source returns the source vertex of e.
func (s *Store) Source(e int) (int, error) {
	if !s.ContainsEdge(e) {
		return 0, s.missingEdge(e)
	}
	return s.src[e], nil
}

// Target returns the target vertex of e.
func (s *Store) Target(e int) (int, error) {
	if !s.ContainsEdge(e) {
		return 0, s.missingEdge(e)
	}
	return s.tgt[e], nil
}

// Endpoints returns both endpoints of e.
func (s *Store) Endpoints(e int) (int, int, error) {
	if !s.ContainsEdge(e) {
		return 0, 0, s.missingEdge(e)
	}
	return s.src[e], s.tgt[e], nil
}

// Weight returns the stored weight of e.
func (s *Store) Weight(e int) (float64, error) {
	if !s.ContainsEdge(e) {
		return 0, s.missingEdge(e)
	}
	return s.weight[e], nil
}

// SetWeight stores w as the weight of e. Weight writes are not structural
// and leave the modification counter untouched.
func (s *Store) SetWeight(e int, w float64) error {
	if !s.ContainsEdge(e) {
		return s.missingEdge(e)
	}
	s.weight[e] = w
	return nil
}

// Degree returns the number of edge endpoints at v. Self-loops count twice.
func (s *Store) Degree(v int) (int, error) {
	if !s.ContainsVertex(v) {
		return 0, s.missingVertex(v)
	}
	if s.policy.Directed {
		return len(s.out[v]) + len(s.in[v]), nil
	}
	return len(s.out[v]) + s.loops[v], nil
}

// InDegree returns the number of edges entering v. For undirected graphs it
// equals Degree.
func (s *Store) InDegree(v int) (int, error) {
	if !s.policy.Directed {
		return s.Degree(v)
	}
	if !s.ContainsVertex(v) {
		return 0, s.missingVertex(v)
	}
	return len(s.in[v]), nil
}

// OutDegree returns the number of edges leaving v. For undirected graphs it
// equals Degree.
func (s *Store) OutDegree(v int) (int, error) {
	if !s.policy.Directed {
		return s.Degree(v)
	}
	if !s.ContainsVertex(v) {
		return 0, s.missingVertex(v)
	}
	return len(s.out[v]), nil
}

// EdgesOf returns the edges incident to v, each listed once.
func (s *Store) EdgesOf(v int) (iter.Seq[int], error) {
	if !s.ContainsVertex(v) {
		return nil, s.missingVertex(v)
	}
	if !s.policy.Directed {
		return s.list(v, false, -1), nil
	}
	outs, ins := s.list(v, false, -1), s.list(v, true, v)
	return func(yield func(int) bool) {
		for e := range outs {
			if !yield(e) {
				return
			}
		}
		for e := range ins {
			if !yield(e) {
				return
			}
		}
	}, nil
}

// OutEdgesOf returns the edges leaving v (all incident edges when
// undirected).
func (s *Store) OutEdgesOf(v int) (iter.Seq[int], error) {
	if !s.ContainsVertex(v) {
		return nil, s.missingVertex(v)
	}
	return s.list(v, false, -1), nil
}

// InEdgesOf returns the edges entering v (all incident edges when
// undirected).
func (s *Store) InEdgesOf(v int) (iter.Seq[int], error) {
	if !s.ContainsVertex(v) {
		return nil, s.missingVertex(v)
	}
	return s.list(v, s.policy.Directed, -1), nil
}

// list walks an adjacency list lazily. Edges whose source equals skipSrc
// are filtered out; EdgesOf uses it so directed self-loops are not listed
// twice.
func (s *Store) list(v int, incoming bool, skipSrc int) iter.Seq[int] {
	return func(yield func(int) bool) {
		start := s.mods
		for i := 0; ; i++ {
			if s.mods != start {
				panic(ErrConcurrentModification)
			}
			var l []int
			if incoming {
				l = s.in[v]
			} else {
				l = s.out[v]
			}
			if i >= len(l) {
				return
			}
			e := l[i]
			if skipSrc >= 0 && s.src[e] == skipSrc {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// ContainsEdgeBetween reports whether an edge connects u to v (in either
// direction when undirected).
func (s *Store) ContainsEdgeBetween(u, v int) bool {
	if !s.ContainsVertex(u) || !s.ContainsVertex(v) {
		return false
	}
	return s.pairs[s.key(u, v)] > 0
}

// EdgesBetween returns the edges connecting u to v, respecting direction
// for directed graphs.
func (s *Store) EdgesBetween(u, v int) (iter.Seq[int], error) {
	if !s.ContainsVertex(u) {
		return nil, s.missingVertex(u)
	}
	if !s.ContainsVertex(v) {
		return nil, s.missingVertex(v)
	}
	if s.pairs[s.key(u, v)] == 0 {
		return func(func(int) bool) {}, nil
	}
	scan := u
	if !s.policy.Directed && len(s.out[v]) < len(s.out[u]) {
		scan = v
	}
	all := s.list(scan, false, -1)
	return func(yield func(int) bool) {
		for e := range all {
			a, b := s.src[e], s.tgt[e]
			match := a == u && b == v
			if !s.policy.Directed {
				match = match || (a == v && b == u)
			}
			if match && !yield(e) {
				return
			}
		}
	}, nil
}

// Vertices returns the live vertex indices in slot order.
func (s *Store) Vertices() iter.Seq[int] {
	return live(s, func() []bool { return s.vertLive })
}

// Edges returns the live edge indices in slot order.
func (s *Store) Edges() iter.Seq[int] {
	return live(s, func() []bool { return s.edgeLive })
}

// live yields the set indices of the slice returned by flags, read when
// iteration starts.
func live(s *Store, flags func() []bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		start := s.mods
		set := flags()
		for i := range set {
			if s.mods != start {
				panic(ErrConcurrentModification)
			}
			if set[i] && !yield(i) {
				return
			}
		}
	}
}

// ErrConcurrentModification is the panic value raised by a lazy sequence
// whose store was structurally modified while it was being consumed.
var ErrConcurrentModification = errors.New(errors.ErrCodeInvalidState, "graph modified during iteration")

func (s *Store) missingVertex(v int) error {
	return errors.New(errors.ErrCodeIndexOutOfBounds, "no vertex at index %d", v)
}

func (s *Store) missingEdge(e int) error {
	return errors.New(errors.ErrCodeIndexOutOfBounds, "no edge at index %d", e)
}
