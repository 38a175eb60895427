package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/graphkit/pkg/graph"
)

func TestToDOT(t *testing.T) {
	g := graph.NewString(graph.NewType(graph.Directed(), graph.Weighted()))
	_, _ = g.AddVertexWithID("app")
	_, _ = g.AddVertexWithID("lib")
	_, _ = g.AddEdge("app", "lib", graph.WithWeight[string](2.5))
	va, _ := g.VertexAttrs("app")
	_ = va.SetString(LabelKey, "Application")
	_ = va.SetString("team", "core")

	tests := []struct {
		name    string
		opts    Options
		want    []string
		notWant []string
	}{
		{
			name:    "plain",
			want:    []string{"digraph G {", `"app" [label="Application"];`, `"lib" [label="lib"];`, `"app" -> "lib";`},
			notWant: []string{"team", `label="2.5"`},
		},
		{
			name: "detailed",
			opts: Options{Detailed: true, EdgeWeights: true},
			want: []string{`label="Application\nteam: core"`, `"app" -> "lib" [label="2.5"];`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT[string](g, tt.opts)
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("missing %q in\n%s", w, dot)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(dot, w) {
					t.Errorf("unexpected %q in\n%s", w, dot)
				}
			}
		})
	}
}

func TestToDOTUndirected(t *testing.T) {
	g := graph.NewInt(graph.NewType())
	_, _ = g.AddVertex()
	_, _ = g.AddVertex()
	_, _ = g.AddEdge(0, 1)

	dot := ToDOT[int32](g, Options{EdgeWeights: true})
	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("header = %q", strings.SplitN(dot, "\n", 2)[0])
	}
	if !strings.Contains(dot, `"0" -- "1";`) {
		t.Errorf("edge missing in\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rewrites",
			in:   `<svg width="10pt" viewBox="0.00 0.00 120.50 80.00"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120.50 80.00" width="120" height="80"><g/></svg>`,
		},
		{name: "no viewBox", in: `<svg><g/></svg>`, want: `<svg><g/></svg>`},
		{name: "empty box", in: `<svg viewBox="0 0 0 10"></svg>`, want: `<svg viewBox="0 0 0 10"></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("got %s\nwant %s", got, tt.want)
			}
		})
	}
}
