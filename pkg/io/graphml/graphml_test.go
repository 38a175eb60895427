package graphml

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/io/stream/streamtest"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <key id="d0" for="node" attr.name="color" attr.type="string">
    <default>yellow</default>
  </key>
  <key id="d1" for="edge" attr.name="weight" attr.type="double"/>
  <key id="d2" for="node" attr.name="shape" attr.type="string"/>
  <key id="g0" for="graph" attr.name="title" attr.type="string"/>
  <graph id="G" edgedefault="directed">
    <data key="g0">deps</data>
    <node id="n0">
      <data key="d0">green</data>
    </node>
    <node id="n1">
      <data key="d2"><svg><circle r="1"/></svg></data>
    </node>
    <edge id="e0" source="n0" target="n1">
      <data key="d1">2.5</data>
    </edge>
  </graph>
</graphml>`

func TestParseFull(t *testing.T) {
	var rec streamtest.Recorder[[]byte]
	if err := (Parser{Validate: true}).Parse(context.Background(), strings.NewReader(sample), &rec); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"GA id=G", "GA edgedefault=directed", "GA title=deps",
		"V n0", "VA n0 ID=n0", "VA n0 color=green", "VD n0",
		`V n1`, `VA n1 ID=n1`, `VA n1 shape=<svg><circle r="1"/></svg>`, "VA n1 color=yellow", "VD n1",
		"E 0 n0 n1", "EA 0 id=e0", "EA 0 weight=2.5", "ED 0",
	}
	if got := rec.String(); got != strings.Join(want, "\n") {
		t.Errorf("calls:\n%s\nwant:\n%s", got, strings.Join(want, "\n"))
	}
}

func TestParseSimple(t *testing.T) {
	var rec streamtest.Recorder[[]byte]
	if err := (Parser{Simple: true}).Parse(context.Background(), strings.NewReader(sample), &rec); err != nil {
		t.Fatal(err)
	}
	got := rec.Filter("VA")
	want := []string{"VA n0 ID=n0", "VA n0 color=green", "VA n1 ID=n1", "VA n1 shape="}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("vertex attributes = %q, want %q", got, want)
	}
}

func TestParseCollectsProblems(t *testing.T) {
	input := `<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
<key id="k" for="node" attr.name="n" attr.type="int"/>
<key id="c" for="edge" attr.name="c" attr.type="color"/>
<graph>
<node id="a"><data key="k">ten</data><data key="zz">?</data></node>
<edge source="a" target="a"><data key="k">1</data></edge>
</graph>
</graphml>`
	var rec streamtest.Recorder[[]byte]
	err := (Parser{Validate: true}).Parse(context.Background(), strings.NewReader(input), &rec)
	var merr *multierror.Error
	if !stderrors.As(err, &merr) {
		t.Fatalf("Parse() error = %v, want a multierror", err)
	}
	// unknown type, invalid int, undeclared key, node key used on an edge
	if len(merr.Errors) != 4 {
		t.Errorf("problems = %d, want 4: %v", len(merr.Errors), merr)
	}
	rec = streamtest.Recorder[[]byte]{}
	if err := (Parser{}).Parse(context.Background(), strings.NewReader(input), &rec); err != nil {
		t.Errorf("non-validating Parse() error = %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		validate bool
		input    string
		line     int
	}{
		{"wrong root", false, "<gexf/>", 1},
		{"namespace", true, "<graphml xmlns=\"urn:x\"/>", 1},
		{"node without id", false, "<graphml><graph>\n<node/></graph></graphml>", 2},
		{"edge without source", false, "<graphml><graph>\n\n<edge target=\"a\"/></graph></graphml>", 3},
		{"mismatched tag", false, "<graphml>\n<graph></node></graphml>", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec streamtest.Recorder[[]byte]
			err := (Parser{Validate: tt.validate}).Parse(context.Background(), strings.NewReader(tt.input), &rec)
			pe, ok := err.(*errors.PositionError)
			if !ok {
				t.Fatalf("Parse() error = %v, want *PositionError", err)
			}
			if pe.Line != tt.line {
				t.Errorf("error at line %d, want %d: %v", pe.Line, tt.line, pe)
			}
		})
	}
}
