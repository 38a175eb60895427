package transform

import (
	"testing"

	"github.com/matzehuels/graphkit/pkg/graph"
)

func build(t *testing.T, vertices []string, edges [][2]string) *graph.Default[string] {
	t.Helper()
	g := graph.NewString(graph.NewType(graph.Directed(), graph.SelfLoops(), graph.MultiEdges()))
	for _, v := range vertices {
		if _, err := g.AddVertexWithID(v); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name        string
		vertices    []string
		edges       [][2]string
		wantRemoved int
	}{
		{"no cycles", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, 0},
		{"simple cycle", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, 1},
		{"triangle", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, 1},
		{"two cycles", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}}, 2},
		{"self-loop", []string{"a"}, [][2]string{{"a", "a"}}, 1},
		{"diamond", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.vertices, tt.edges)
			removed, err := BreakCycles[string](g)
			if err != nil {
				t.Fatal(err)
			}
			if removed != tt.wantRemoved {
				t.Errorf("BreakCycles() removed %d edges, want %d", removed, tt.wantRemoved)
			}
			if want := len(tt.edges) - tt.wantRemoved; g.EdgeCount() != want {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), want)
			}
			if again, _ := BreakCycles[string](g); again != 0 {
				t.Errorf("graph still has cycles after BreakCycles()")
			}
		})
	}
}

func TestTransitiveReduction(t *testing.T) {
	g := build(t, []string{"app", "auth", "cache", "db"}, [][2]string{
		{"app", "auth"}, {"app", "cache"}, {"app", "db"}, {"auth", "db"}, {"cache", "db"},
	})

	removed, err := TransitiveReduction[string](g)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 || g.ContainsEdgeBetween("app", "db") {
		t.Errorf("removed = %d, app->db still present = %v", removed, g.ContainsEdgeBetween("app", "db"))
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}
}

func TestAssignLayers(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d", "e"}, [][2]string{
		{"a", "b"}, {"b", "c"}, {"a", "c"}, {"d", "c"},
	})

	layers, err := AssignLayers[string](g)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 0, "e": 0}
	for v, layer := range want {
		if layers[v] != layer {
			t.Errorf("layer[%s] = %d, want %d", v, layers[v], layer)
		}
	}
}
