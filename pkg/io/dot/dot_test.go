package dot

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/io/stream/streamtest"
)

func TestParse(t *testing.T) {
	input := `digraph deps {
		label="deps";
		a [kind="app", color=red];
		b [kind="lib"];
		a -> b [weight=2.5];
		b -> c;
		a -> c;
	}`
	var rec streamtest.Recorder[[]byte]
	if err := (Parser{}).Parse(context.Background(), strings.NewReader(input), &rec); err != nil {
		t.Fatal(err)
	}
	if got := rec.Filter("V"); !slices.Equal(got, []string{"V a", "V b", "V c"}) {
		t.Errorf("vertices = %q", got)
	}
	if got := rec.Filter("E"); !slices.Equal(got, []string{"E 0 a b", "E 1 a c", "E 2 b c"}) {
		t.Errorf("edges = %q", got)
	}
	attrs := rec.Filter("VA")
	for _, want := range []string{"VA a kind=app", "VA b kind=lib"} {
		if !slices.Contains(attrs, want) {
			t.Errorf("missing %q in %q", want, attrs)
		}
	}
	for _, a := range attrs {
		if strings.Contains(a, "color=") || strings.Contains(a, `label=\N`) {
			t.Errorf("visual attribute reported: %q", a)
		}
	}
	if got := rec.Filter("EA"); !slices.Contains(got, "EA 0 weight=2.5") {
		t.Errorf("edge attributes = %q", got)
	}
	if !slices.Contains(rec.Filter("GA"), "GA label=deps") {
		t.Errorf("graph attributes = %q", rec.Filter("GA"))
	}
}

func TestParseSyntaxError(t *testing.T) {
	var rec streamtest.Recorder[[]byte]
	err := (Parser{}).Parse(context.Background(), strings.NewReader("digraph { a -> }"), &rec)
	pe, ok := err.(*errors.PositionError)
	if !ok || pe.Format != Format {
		t.Fatalf("Parse() error = %v, want a dot *PositionError", err)
	}
	if len(rec.Calls) != 0 {
		t.Errorf("calls after a syntax error: %v", rec.Calls)
	}
}
