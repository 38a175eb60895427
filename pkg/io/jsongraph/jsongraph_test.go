package jsongraph

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/io/stream/streamtest"
)

func TestParse(t *testing.T) {
	input := `{
		"creator": {"name": "graphkit"},
		"nodes": [
			{"id": "a"},
			{"id": 2, "label": "Node 2", "size": 1.5, "hidden": false},
			{"id": "c"}
		],
		"edges": [
			{"source": "a", "target": 2, "weight": 2.0, "points": { "x": 1.0, "y": [1, 2] }},
			{"target": "a", "source": "c"}
		]
	}`
	var rec streamtest.Recorder[[]byte]
	if err := (Parser{}).Parse(context.Background(), strings.NewReader(input), &rec); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"V a", "VD a",
		"V 2", "VA 2 label=Node 2", "VA 2 size=1.5", "VA 2 hidden=false", "VD 2",
		"V c", "VD c",
		"E 0 a 2", "EA 0 weight=2.0", `EA 0 points={"x":1.0,"y":[1,2]}`, "ED 0",
		"E 1 c a", "ED 1",
	}
	if got := rec.String(); got != strings.Join(want, "\n") {
		t.Errorf("calls:\n%s\nwant:\n%s", got, strings.Join(want, "\n"))
	}
}

func TestParseEdgesBeforeNodes(t *testing.T) {
	input := `{"edges": [{"source": "x", "target": "y"}], "nodes": [{"id": "x"}]}`
	var rec streamtest.Recorder[[]byte]
	if err := (Parser{}).Parse(context.Background(), strings.NewReader(input), &rec); err != nil {
		t.Fatal(err)
	}
	if got := rec.String(); got != "E 0 x y\nED 0\nV x\nVD x" {
		t.Errorf("calls = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not an object", `[1, 2]`},
		{"node without id", `{"nodes": [{"label": "x"}]}`},
		{"edge without source", `{"edges": [{"target": "x"}]}`},
		{"truncated", `{"nodes": [{"id": "a"}`},
		{"syntax", `{"nodes": [{"id": "a",}]}`},
		{"nodes not an array", `{"nodes": {"id": "a"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec streamtest.Recorder[[]byte]
			err := (Parser{}).Parse(context.Background(), strings.NewReader(tt.input), &rec)
			pe, ok := err.(*errors.PositionError)
			if !ok {
				t.Fatalf("Parse() error = %v, want *PositionError", err)
			}
			if pe.Format != Format || pe.Offset < 0 {
				t.Errorf("error = %+v, want a json position", pe)
			}
		})
	}
}
