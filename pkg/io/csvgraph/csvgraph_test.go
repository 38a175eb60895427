package csvgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/io/stream/streamtest"
)

func parse(t *testing.T, opts Options, input string) (*streamtest.Recorder[[]byte], error) {
	t.Helper()
	var rec streamtest.Recorder[[]byte]
	err := Parser{Options: opts}.Parse(context.Background(), strings.NewReader(input), &rec)
	return &rec, err
}

func TestAdjacencyList(t *testing.T) {
	rec, err := parse(t, DefaultOptions(), "1,2\n2,3\n3,4\n4,1\n5\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"V 1", "VD 1", "E 0 1 2", "ED 0",
		"V 2", "VD 2", "E 1 2 3", "ED 1",
		"V 3", "VD 3", "E 2 3 4", "ED 2",
		"V 4", "VD 4", "E 3 4 1", "ED 3",
		"V 5", "VD 5",
	}
	if got := rec.String(); got != strings.Join(want, "\n") {
		t.Errorf("calls:\n%s\nwant:\n%s", got, strings.Join(want, "\n"))
	}
}

func TestAdjacencyListWeights(t *testing.T) {
	opts := DefaultOptions()
	opts.ImportEdgeWeights = true
	rec, err := parse(t, opts, "a,b:2.5,c:1\n\"x:y\",a:3\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"EA 0 weight=2.5", "EA 1 weight=1", "EA 2 weight=3"}
	if got := rec.Filter("EA"); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("weights = %q, want %q", got, want)
	}
	if got := rec.Filter("E"); got[2] != "E 2 x:y a" {
		t.Errorf("third edge = %q", got[2])
	}
}

func TestEdgeList(t *testing.T) {
	opts := Options{Format: EdgeList, Delimiter: ';', ImportEdgeWeights: true}
	rec, err := parse(t, opts, "a;b;2\nb;c;0.5\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"E 0 a b", "EA 0 weight=2", "ED 0", "E 1 b c", "EA 1 weight=0.5", "ED 1"}
	if got := rec.String(); got != strings.Join(want, "\n") {
		t.Errorf("calls:\n%s\nwant:\n%s", got, strings.Join(want, "\n"))
	}
}

func TestMatrixWithNodeIDs(t *testing.T) {
	opts := Options{Format: Matrix, MatrixNodeIDs: true, MatrixZeroWhenNoEdge: true, ImportEdgeWeights: true}
	rec, err := parse(t, opts, ",a,b\na,0,1.5\nb,2,0\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"V a", "VD a", "V b", "VD b",
		"E 0 a b", "EA 0 weight=1.5", "ED 0",
		"E 1 b a", "EA 1 weight=2", "ED 1",
	}
	if got := rec.String(); got != strings.Join(want, "\n") {
		t.Errorf("calls:\n%s\nwant:\n%s", got, strings.Join(want, "\n"))
	}
}

func TestMatrixParserIntegerIDs(t *testing.T) {
	var rec streamtest.Recorder[int64]
	opts := Options{MatrixZeroWhenNoEdge: true}
	err := MatrixParser{Options: opts}.Parse(context.Background(), strings.NewReader("0,1,1\n0,0,1\n0,0,0\n"), &rec)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"E 0 1 2", "E 1 1 3", "E 2 2 3"}
	if got := rec.Filter("E"); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("edges = %q, want %q", got, want)
	}
	if got := len(rec.Filter("V")); got != 3 {
		t.Errorf("vertices reported = %d, want 3", got)
	}
}

func TestMatrixZeroPolicy(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		input   string
		edges   int
		wantErr bool
	}{
		{"zero means no edge", Options{MatrixZeroWhenNoEdge: true}, "0,1\n1,0\n", 2, false},
		{"empty means no edge", Options{}, ",1\n1,\n", 2, false},
		{"explicit zero rejected", Options{}, "0,1\n1,\n", 0, true},
		{"explicit zero accepted", Options{MatrixZeroWeightEdges: true, ImportEdgeWeights: true}, "0,\n,\n", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec streamtest.Recorder[int64]
			err := MatrixParser{Options: tt.opts}.Parse(context.Background(), strings.NewReader(tt.input), &rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(rec.Filter("E")) != tt.edges {
				t.Errorf("edges = %v, want %d", rec.Filter("E"), tt.edges)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		input string
		line  int
	}{
		{"missing weight", Options{ImportEdgeWeights: true}, "a,b:1\nb,c\n", 2},
		{"bad weight", Options{Format: EdgeList, ImportEdgeWeights: true}, "a,b,x\n", 1},
		{"short edge", Options{Format: EdgeList}, "a,b\nc\n", 2},
		{"ragged matrix", Options{Format: Matrix, MatrixZeroWhenNoEdge: true}, "0,1\n1\n", 2},
		{"bare quote", Options{}, "a,b\"c\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.opts, tt.input)
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

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"ADJACENCY_LIST": AdjacencyList, "edgelist": EdgeList, "Matrix": Matrix} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("tsv"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("ParseMode(tsv) error = %v", err)
	}
}
