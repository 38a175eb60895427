package graph

import (
	"iter"
	"slices"
	"testing"

	"github.com/matzehuels/graphkit/pkg/attr"
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/identity"
	"github.com/matzehuels/graphkit/pkg/supplier"
)

func sorted[T int32 | int64 | string](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// star builds the directed weighted multigraph 0->1, 0->2, 0->3, 0->4, 4->0.
func star(t *testing.T) *Default[int32] {
	t.Helper()
	g := NewInt(NewType(Directed(), Weighted(), MultiEdges()))
	for range 5 {
		must(g.AddVertex())
	}
	for _, e := range [][2]int32{{0, 1}, {0, 2}, {0, 3}, {0, 4}, {4, 0}} {
		must(g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestDirectedWeightedScenario(t *testing.T) {
	g := star(t)
	if err := g.SetEdgeWeight(4, 2.5); err != nil {
		t.Fatal(err)
	}

	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount() = %d, want 5", g.EdgeCount())
	}
	if w, _ := g.EdgeWeight(4); w != 2.5 {
		t.Errorf("EdgeWeight(4) = %v, want 2.5", w)
	}
	in := sorted(must(g.InEdgesOf(0)))
	if !slices.Equal(in, []int32{4}) {
		t.Errorf("InEdgesOf(0) = %v, want [4]", in)
	}
	out := sorted(must(g.OutEdgesOf(0)))
	if !slices.Equal(out, []int32{0, 1, 2, 3}) {
		t.Errorf("OutEdgesOf(0) = %v, want [0 1 2 3]", out)
	}
	tuple := must(g.EdgeTuple(4))
	if tuple != (Triple[int32]{Source: 4, Target: 0, Weight: 2.5}) {
		t.Errorf("EdgeTuple(4) = %+v", tuple)
	}
	if deg := must(g.DegreeOf(0)); deg != 5 {
		t.Errorf("DegreeOf(0) = %d, want 5", deg)
	}
}

func TestIdempotence(t *testing.T) {
	g := NewInt(NewType())
	var events []Event[int32]
	g.AddListener(func(e Event[int32]) { events = append(events, e) })

	must(g.AddVertexWithID(7))
	if v := must(g.AddVertexWithID(7)); v != 7 {
		t.Errorf("AddVertexWithID(7) = %d, want 7", v)
	}
	if g.VertexCount() != 1 {
		t.Errorf("VertexCount() = %d, want 1", g.VertexCount())
	}
	if ok := must(g.RemoveVertex(99)); ok {
		t.Error("RemoveVertex(absent) = true")
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1: %v", len(events), events)
	}
}

func TestExplicitEdgeIDIsIdempotent(t *testing.T) {
	g := NewString(NewType(MultiEdges()))
	must(g.AddVertexWithID("a"))
	must(g.AddVertexWithID("b"))
	must(g.AddEdge("a", "b", WithEdgeID("ab")))
	if e := must(g.AddEdge("b", "a", WithEdgeID("ab"))); e != "ab" {
		t.Errorf("AddEdge with existing id = %q", e)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestRemoveVertexEvents(t *testing.T) {
	g := star(t)
	var kinds []string
	g.AddListener(func(e Event[int32]) { kinds = append(kinds, e.Kind.String()) })

	if ok := must(g.RemoveVertex(0)); !ok {
		t.Fatal("RemoveVertex(0) = false")
	}
	want := []string{"EDGE_REMOVED", "EDGE_REMOVED", "EDGE_REMOVED", "EDGE_REMOVED", "EDGE_REMOVED", "VERTEX_REMOVED"}
	if !slices.Equal(kinds, want) {
		t.Errorf("events = %v, want %v", kinds, want)
	}
	if g.EdgeCount() != 0 || g.VertexCount() != 4 {
		t.Errorf("counts = %d vertices, %d edges", g.VertexCount(), g.EdgeCount())
	}
}

func TestRemoveVertexEdgeEventsSeeVertex(t *testing.T) {
	g := star(t)
	var removed []int32
	g.AddListener(func(e Event[int32]) {
		switch e.Kind {
		case EdgeRemoved:
			if !g.ContainsVertex(0) {
				t.Errorf("%s: vertex 0 already gone", e)
			}
			if g.ContainsEdge(e.Element) {
				t.Errorf("%s: edge still present", e)
			}
			removed = append(removed, e.Element)
		case VertexRemoved:
			if g.ContainsVertex(0) {
				t.Errorf("%s: vertex 0 still present", e)
			}
		}
	})

	must(g.RemoveVertex(0))
	slices.Sort(removed)
	if !slices.Equal(removed, []int32{0, 1, 2, 3, 4}) {
		t.Errorf("removed edges = %v", removed)
	}
}

func TestCountsMatchEnumeration(t *testing.T) {
	g := NewLong(Pseudograph(false, true))
	ops := []func(){
		func() { must(g.AddVertex()) },
		func() { must(g.AddVertex()) },
		func() { must(g.AddVertex()) },
		func() { must(g.AddEdge(0, 1)) },
		func() { must(g.AddEdge(1, 1)) },
		func() { must(g.AddEdge(1, 2)) },
		func() { must(g.RemoveEdge(0)) },
		func() { must(g.RemoveVertex(2)) },
		func() { must(g.AddVertex()) },
	}
	for i, op := range ops {
		op()
		if n := len(Collect(g.Vertices())); n != g.VertexCount() {
			t.Errorf("step %d: |vertices| = %d, VertexCount() = %d", i, n, g.VertexCount())
		}
		if n := len(Collect(g.Edges())); n != g.EdgeCount() {
			t.Errorf("step %d: |edges| = %d, EdgeCount() = %d", i, n, g.EdgeCount())
		}
		for e := range g.Edges() {
			tr := must(g.EdgeTuple(e))
			if !slices.Contains(Collect(must(g.EdgesOf(tr.Source))), e) ||
				!slices.Contains(Collect(must(g.EdgesOf(tr.Target))), e) {
				t.Errorf("step %d: edge %d missing from its endpoints", i, e)
			}
		}
	}
}

func TestErrors(t *testing.T) {
	g := NewInt(NewType())
	must(g.AddVertex())
	must(g.AddVertex())

	tests := []struct {
		name string
		err  error
		code errors.Code
	}{
		{"missing endpoint", second(g.AddEdge(0, 5)), errors.ErrCodeInvalidArgument},
		{"self-loop", second(g.AddEdge(1, 1)), errors.ErrCodeInvalidArgument},
		{"weight on unweighted", g.SetEdgeWeight(0, 2), errors.ErrCodeUnsupported},
		{"weighted add on unweighted", second(g.AddEdge(0, 1, WithWeight[int32](3))), errors.ErrCodeUnsupported},
		{"degree of absent", second(g.DegreeOf(9)), errors.ErrCodeNoSuchElement},
		{"source of absent", second(g.EdgeSource(9)), errors.ErrCodeNoSuchElement},
		{"attrs of absent", second(g.VertexAttrs(9)), errors.ErrCodeNoSuchElement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.code) {
				t.Errorf("error = %v, want %s", tt.err, tt.code)
			}
		})
	}

	must(g.AddEdge(0, 1))
	if _, err := g.AddEdge(1, 0); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("multi-edge error = %v, want INVALID_ARGUMENT", err)
	}
	if w := must(g.EdgeWeight(0)); w != 1.0 {
		t.Errorf("EdgeWeight on unweighted = %v, want 1", w)
	}
}

func second[A any](_ A, err error) error { return err }

func TestRefGraphSuppliers(t *testing.T) {
	g := NewRef[string](NewType())
	if _, err := g.AddVertex(); !errors.Is(err, errors.ErrCodeNullPointer) {
		t.Errorf("AddVertex without supplier error = %v, want NULL_POINTER", err)
	}

	constant := supplier.Func[string](func() string { return "v0" })
	g = NewRef(NewType(), WithVertexSupplier[string](constant))
	must(g.AddVertex())
	if _, err := g.AddVertex(); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("duplicate supplier id error = %v, want INVALID_ARGUMENT", err)
	}
	if g.Regime() != identity.REF {
		t.Errorf("Regime() = %v, want REF", g.Regime())
	}

	anyGraph := NewRef[any](NewType())
	if _, err := anyGraph.AddVertexWithID(nil); !errors.Is(err, errors.ErrCodeNullPointer) {
		t.Errorf("AddVertexWithID(nil) error = %v, want NULL_POINTER", err)
	}
}

func TestRetainVertex(t *testing.T) {
	g := NewString(NewType())
	must(g.AddVertexWithID("x"))
	g.RetainVertex("x")
	must(g.RemoveVertex("x"))

	if g.VertexRefCount("x") != 1 {
		t.Errorf("VertexRefCount(x) = %d, want 1", g.VertexRefCount("x"))
	}
	g.ReleaseVertex("x")
	if g.VertexRefCount("x") != 0 {
		t.Errorf("VertexRefCount(x) = %d, want 0", g.VertexRefCount("x"))
	}
}

func TestEdgeWeightAttribute(t *testing.T) {
	g := NewString(NewType(Weighted()))
	must(g.AddVertexWithID("a"))
	must(g.AddVertexWithID("b"))
	e := must(g.AddEdge("a", "b"))
	attrs := must(g.EdgeAttrs(e))

	if err := attrs.SetString("weight", "4.5"); err != nil {
		t.Fatal(err)
	}
	if w := must(g.EdgeWeight(e)); w != 4.5 {
		t.Errorf("EdgeWeight = %v, want 4.5", w)
	}
	if err := attrs.SetString("weight", "heavy"); !errors.Is(err, errors.ErrCodeClassCast) {
		t.Errorf("non-numeric weight error = %v, want CLASS_CAST", err)
	}
	if w := must(g.EdgeWeight(e)); w != 4.5 {
		t.Errorf("EdgeWeight after failed write = %v, want 4.5", w)
	}
	if v, ok := attrs.Get("weight"); !ok || v.String() != "4.5" {
		t.Errorf("Get(weight) = %v, %v", v, ok)
	}
	if got := attrs.Keys(); !slices.Equal(got, []string{"weight"}) || attrs.Len() != 1 {
		t.Errorf("Keys() = %v, Len() = %d, want [weight], 1", got, attrs.Len())
	}

	_ = attrs.Set("color", attr.Text("red"))
	_ = attrs.Set("alpha", attr.Text("0.5"))
	if got := attrs.Keys(); !slices.Equal(got, []string{"alpha", "color", "weight"}) || attrs.Len() != 3 {
		t.Errorf("Keys() = %v, Len() = %d, want [alpha color weight], 3", got, attrs.Len())
	}
	for _, k := range attrs.Keys() {
		if _, ok := attrs.Get(k); !ok {
			t.Errorf("Get(%q) undefined for a listed key", k)
		}
	}

	must(g.RemoveEdge(e))
	e2 := must(g.AddEdge("a", "b"))
	if got := must(g.EdgeAttrs(e2)).Keys(); !slices.Equal(got, []string{"weight"}) {
		t.Errorf("new edge Keys() = %v, attributes of a removed edge leaked", got)
	}
}

func TestUnweightedEdgeWeightAttribute(t *testing.T) {
	g := NewInt(NewType())
	must(g.AddVertex())
	must(g.AddVertex())
	e := must(g.AddEdge(0, 1))
	attrs := must(g.EdgeAttrs(e))

	if err := attrs.SetString("weight", "2"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("weight write on unweighted graph error = %v, want UNSUPPORTED", err)
	}
	if _, ok := attrs.Get("weight"); ok {
		t.Error("Get(weight) defined on an unweighted graph")
	}
	if attrs.Len() != 0 || len(attrs.Keys()) != 0 {
		t.Errorf("Keys() = %v on an unweighted graph, want none", attrs.Keys())
	}
}

func TestVertexAttrsFollowVertex(t *testing.T) {
	g := NewString(NewType())
	must(g.AddVertexWithID("a"))
	attrs := must(g.VertexAttrs("a"))
	_ = attrs.SetString("label", "first")

	if v, _ := attrs.Get("label"); v.String() != "first" {
		t.Errorf("Get(label) = %q", v)
	}
	if _, ok := attrs.Get("missing"); ok {
		t.Error("Get(missing) reported a value")
	}
	must(g.RemoveVertex("a"))
	if err := attrs.SetString("label", "x"); !errors.Is(err, errors.ErrCodeNoSuchElement) {
		t.Errorf("write after removal error = %v, want NO_SUCH_ELEMENT", err)
	}

	must(g.AddVertexWithID("a"))
	if must(g.VertexAttrs("a")).Len() != 0 {
		t.Error("re-added vertex inherited attributes")
	}

	if err := g.GraphAttrs().SetString("", "x"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("empty key error = %v", err)
	}
}

func TestListenerMutationIsQueued(t *testing.T) {
	g := NewInt(NewType())
	var seen []string
	g.AddListener(func(e Event[int32]) {
		seen = append(seen, e.String())
		if e.Kind == VertexAdded && e.Element == 0 {
			must(g.AddVertex())
		}
	})
	must(g.AddVertex())

	want := []string{"VERTEX_ADDED(0)", "VERTEX_ADDED(1)"}
	if !slices.Equal(seen, want) {
		t.Errorf("events = %v, want %v", seen, want)
	}
}

func TestRunawayListenerIsBounded(t *testing.T) {
	g := NewInt(NewType(), WithMaxEventDepth[int32](4))
	var failure error
	g.AddListener(func(e Event[int32]) {
		if _, err := g.AddVertex(); err != nil && failure == nil {
			failure = err
		}
	})
	must(g.AddVertex())

	if !errors.Is(failure, errors.ErrCodeInvalidState) {
		t.Errorf("runaway error = %v, want INVALID_STATE", failure)
	}
	if g.VertexCount() != 5 {
		t.Errorf("VertexCount() = %d, want 5", g.VertexCount())
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{NewType(), "undirected"},
		{NewType(Directed(), Weighted()), "directed, weighted"},
		{Pseudograph(false, false).AsUnmodifiable(), "undirected, self-loops, multi-edges, unmodifiable"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
