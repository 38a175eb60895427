package cli

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

// complete runs the hidden completion request and returns the offered
// values and the directive line.
func complete(t *testing.T, args ...string) ([]string, string) {
	t.Helper()
	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, args...))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	var values []string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if strings.HasPrefix(line, ":") {
			return values, line
		}
		values = append(values, line)
	}
	t.Fatalf("no directive in %q", out.String())
	return nil, ""
}

func TestCompletion(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	noFiles := ":4"
	filterExt := ":8"
	tests := []struct {
		name      string
		args      []string
		want      []string
		directive string
	}{
		{"input format", []string{"import", "g.gml", "--format", ""}, inputFormatNames(), noFiles},
		{"regime", []string{"convert", "g.gml", "--regime", ""}, []string{"int", "long", "ref"}, noFiles},
		{"csv mode", []string{"stats", "a.csv", "--csv-mode", ""}, []string{"adjacency_list", "edge_list", "matrix"}, noFiles},
		{"output format", []string{"convert", "g.gml", "--to", ""}, pipeline.OutputFormats(), noFiles},
		{"input file", []string{"import", ""}, graphio.Extensions(), filterExt},
		{"second input", []string{"browse", "g.gml", ""}, nil, noFiles},
		{"more stats inputs", []string{"stats", "a.gml", ""}, graphio.Extensions(), filterExt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, directive := complete(t, tt.args...)
			if !slices.Equal(got, tt.want) {
				t.Errorf("completions = %v, want %v", got, tt.want)
			}
			if directive != tt.directive {
				t.Errorf("directive = %s, want %s", directive, tt.directive)
			}
		})
	}
}

func TestExtensionsCoverFormats(t *testing.T) {
	exts := graphio.Extensions()
	for _, name := range append(inputFormatNames(), "gr", "g6", "gv") {
		if !slices.Contains(exts, name) {
			t.Errorf("Extensions() = %v, missing %q", exts, name)
		}
	}
	for _, ext := range exts {
		if _, ok := graphio.FormatFromPath("graph." + ext); !ok {
			t.Errorf("FormatFromPath(graph.%s) failed for a listed extension", ext)
		}
	}
}

func TestCompletionScripts(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&out)
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}
}
