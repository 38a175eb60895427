package cli

import (
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/errors"
	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/io/csvgraph"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

// stdinPath reads the input from standard input.
const stdinPath = "-"

// loadFlags are the input flags shared by every command that imports.
type loadFlags struct {
	format     string
	regime     string
	directed   bool
	weighted   bool
	selfLoops  bool
	multiEdges bool

	csvMode      string
	csvDelimiter string
	edgeWeights  bool
}

func (f *loadFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.format, "format", "f", "", "input format (default: from the file extension)")
	fl.StringVar(&f.regime, "regime", "", "vertex identity: int, long or ref (default ref)")
	fl.BoolVarP(&f.directed, "directed", "d", false, "build a directed graph")
	fl.BoolVarP(&f.weighted, "weighted", "w", false, "keep edge weights")
	fl.BoolVar(&f.selfLoops, "self-loops", false, "allow self-loops")
	fl.BoolVar(&f.multiEdges, "multi-edges", false, "allow parallel edges")
	fl.StringVar(&f.csvMode, "csv-mode", "", "CSV layout: adjacency_list, edge_list or matrix")
	fl.StringVar(&f.csvDelimiter, "csv-delimiter", "", "CSV field delimiter")
	fl.BoolVar(&f.edgeWeights, "csv-weights", false, "read edge weights from CSV input")
	registerLoadCompletions(cmd)
}

// options layers the changed flags over the config file defaults.
func (c *CLI) options(cmd *cobra.Command, f *loadFlags, path string) (pipeline.Options, error) {
	opts, err := c.config.loadOptions()
	if err != nil {
		return opts, err
	}
	opts.Format = f.format
	if path != stdinPath {
		opts.Path = path
	}
	fl := cmd.Flags()
	if fl.Changed("regime") {
		opts.Regime = f.regime
	}
	if fl.Changed("directed") {
		opts.Directed = f.directed
	}
	if fl.Changed("weighted") {
		opts.Weighted = f.weighted
	}
	if fl.Changed("self-loops") {
		opts.SelfLoops = f.selfLoops
	}
	if fl.Changed("multi-edges") {
		opts.MultiEdges = f.multiEdges
	}
	if fl.Changed("csv-mode") {
		m, err := csvgraph.ParseMode(f.csvMode)
		if err != nil {
			return opts, err
		}
		opts.Settings.CSV.Format = m
	}
	if fl.Changed("csv-delimiter") {
		if utf8.RuneCountInString(f.csvDelimiter) != 1 {
			return opts, errors.InvalidArgument("--csv-delimiter must be a single character")
		}
		opts.Settings.CSV.Delimiter, _ = utf8.DecodeRuneInString(f.csvDelimiter)
	}
	if fl.Changed("csv-weights") {
		opts.Settings.CSV.ImportEdgeWeights = f.edgeWeights
	}
	opts.Logger = c.Logger
	return opts, nil
}

func source(path string) graphio.Source {
	if path == stdinPath {
		return graphio.Reader(os.Stdin)
	}
	return graphio.File(path)
}
