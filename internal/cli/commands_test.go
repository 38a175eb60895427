package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/io/csvgraph"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		to, output string
		want       string
		code       errors.Code
	}{
		{to: "dimacs", want: "dimacs"},
		{to: "SVG", want: "svg"},
		{output: "out/graph.GML", want: "gml"},
		{to: "dot", output: "graph.json", want: "dot"},
		{output: "graph", code: errors.ErrCodeInvalidArgument},
		{to: "gexf", code: errors.ErrCodeUnsupported},
		{output: "graph.g6", code: errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.to+"|"+tt.output, func(t *testing.T) {
			got, err := outputFormat(tt.to, tt.output)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("err = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("outputFormat(%q, %q) = %q, want %q", tt.to, tt.output, got, tt.want)
			}
		})
	}
}

func TestOptionsLayering(t *testing.T) {
	yes := true
	c := New(io.Discard, log.WarnLevel)
	c.config = &Config{
		Graph: GraphConfig{Regime: "int", Directed: true, Weighted: true},
		CSV:   CSVConfig{Mode: "matrix", MatrixZeroWhenNoEdge: &yes},
	}

	tests := []struct {
		name  string
		args  []string
		path  string
		check func(t *testing.T, o pipeline.Options)
	}{
		{
			name: "config only",
			path: "g.csv",
			check: func(t *testing.T, o pipeline.Options) {
				if o.Regime != "int" || !o.Directed || !o.Weighted || o.Path != "g.csv" {
					t.Errorf("options = %+v", o)
				}
				if o.Settings.CSV.Format != csvgraph.Matrix {
					t.Errorf("csv mode = %v", o.Settings.CSV.Format)
				}
			},
		},
		{
			name: "flags win",
			args: []string{"--regime", "ref", "--directed=false", "--csv-mode", "edge_list", "--csv-delimiter", ";", "--csv-weights"},
			path: "g.csv",
			check: func(t *testing.T, o pipeline.Options) {
				if o.Regime != "ref" || o.Directed || !o.Weighted {
					t.Errorf("options = %+v", o)
				}
				csv := o.Settings.CSV
				if csv.Format != csvgraph.EdgeList || csv.Delimiter != ';' || !csv.ImportEdgeWeights {
					t.Errorf("csv = %+v", csv)
				}
			},
		},
		{
			name: "stdin",
			args: []string{"-f", "dimacs"},
			path: stdinPath,
			check: func(t *testing.T, o pipeline.Options) {
				if o.Path != "" || o.Format != "dimacs" {
					t.Errorf("options = %+v", o)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags loadFlags
			cmd := &cobra.Command{Use: "test"}
			flags.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			opts, err := c.options(cmd, &flags, tt.path)
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, opts)
		})
	}
}

func TestOptionsBadDelimiter(t *testing.T) {
	c := New(io.Discard, log.WarnLevel)
	var flags loadFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	if err := cmd.ParseFlags([]string{"--csv-delimiter", "ab"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.options(cmd, &flags, "g.csv"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "graphkit.toml")
	if err := os.WriteFile(cfg, []byte("[csv]\nmode = \"edge_list\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "pairs.csv")
	if err := os.WriteFile(in, []byte("a,b\nb,c\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "pairs.dimacs")

	root := New(io.Discard, log.WarnLevel).RootCommand()
	root.SetArgs([]string{"--config", cfg, "convert", in, "-o", out})
	root.SetOut(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("convert: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := "p edge 3 2\ne 1 2\ne 2 3\n"; string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(in, []byte(`{"nodes": [`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "graphkit.toml")
	if err := os.WriteFile(cfg, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"import error", []string{"import", in}, errors.ErrCodeImport},
		{"unknown output", []string{"convert", in, "--to", "gexf"}, errors.ErrCodeUnsupported},
		{"bad config", []string{"--config", filepath.Join(dir, "nope.ini"), "import", in}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := New(io.Discard, log.WarnLevel).RootCommand()
			args := tt.args
			if tt.code != errors.ErrCodeInvalidConfig {
				args = append([]string{"--config", cfg}, args...)
			}
			root.SetArgs(args)
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			err := root.ExecuteContext(context.Background())
			if errors.GetCode(err) != tt.code {
				t.Errorf("code = %q (%v), want %s", errors.GetCode(err), err, tt.code)
			}
		})
	}
}

func TestRenderStats(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "chain.gml")
	if err := os.WriteFile(in, []byte("graph [ directed 1 node [ id 0 ] node [ id 1 ] edge [ source 0 target 1 ] ]"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{Path: in, Directed: true}
	loaded, err := pipeline.NewRunner(log.New(io.Discard)).Load(context.Background(), opts, source(in))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := loaded.Summary()
	if err != nil {
		t.Fatal(err)
	}

	out := renderStats([]statsRow{{path: in, loaded: loaded, summary: sum}})
	for _, want := range []string{"Vertices", "chain.gml", "gml", "yes (1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
