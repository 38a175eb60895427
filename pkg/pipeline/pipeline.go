// Package pipeline provides the load → analyze → export pipeline shared by
// the graphkit CLI and HTTP server.
//
// A [Runner] imports one input into a graph of the requested identity
// regime and returns a [Loaded] value that hides the vertex type. The
// loaded graph can then be summarized, browsed, exported to any
// exportable format or drawn as a node-link diagram.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	loaded, err := runner.Load(ctx, pipeline.Options{
//	    Format:   "dimacs",
//	    Regime:   "int",
//	    Directed: true,
//	}, graphio.File("road.gr"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sum, _ := loaded.Summary()
//	err = loaded.Write(ctx, pipeline.FormatSVG, os.Stdout, nodelink.Options{})
//
// Entry points decide the regime: "int" and "long" number vertices with
// the graph's supplier in file order, while "ref" keeps the file's ids as
// strings.
package pipeline

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/identity"
	graphio "github.com/matzehuels/graphkit/pkg/io"
)

// DefaultRegime keeps file ids as vertex identities.
const DefaultRegime = "ref"

// Drawing formats produced through Graphviz.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

var drawings = []string{FormatSVG, FormatPNG, FormatPDF}

// OutputFormats lists every format [Loaded.Write] accepts.
func OutputFormats() []string {
	out := make([]string, 0, len(graphio.Exportable)+len(drawings))
	for _, f := range graphio.Exportable {
		out = append(out, string(f))
	}
	return append(out, drawings...)
}

// IsDrawing reports whether format is rendered rather than serialized.
func IsDrawing(format string) bool { return slices.Contains(drawings, format) }

// ValidateOutput checks that format is an output format.
func ValidateOutput(format string) error {
	if IsDrawing(format) {
		return nil
	}
	f, err := graphio.ParseFormat(format)
	if err != nil || !slices.Contains(graphio.Exportable, f) {
		return errors.Unsupported("cannot write %q (must be one of: %v)", format, OutputFormats())
	}
	return nil
}

// Options configures how an input is loaded.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Format names the input format. Empty means infer it from Path.
	Format string `json:"format,omitempty"`
	// Path is only used to infer the format.
	Path string `json:"path,omitempty"`
	// Regime is "int", "long" or "ref".
	Regime string `json:"regime,omitempty"`

	Directed   bool `json:"directed,omitempty"`
	Weighted   bool `json:"weighted,omitempty"`
	SelfLoops  bool `json:"self_loops,omitempty"`
	MultiEdges bool `json:"multi_edges,omitempty"`

	// Settings overrides the format settings; nil means the defaults.
	Settings *graphio.Settings `json:"-"`
	Logger   *log.Logger       `json:"-"`

	format    graphio.Format
	regime    identity.Regime
	validated bool
}

// ValidateAndSetDefaults resolves the format and regime and applies
// defaults. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	switch {
	case o.Format != "":
		f, err := graphio.ParseFormat(o.Format)
		if err != nil {
			return err
		}
		o.format = f
	case o.Path != "":
		f, ok := graphio.FormatFromPath(o.Path)
		if !ok {
			return errors.InvalidArgument("cannot infer the format of %s; set it explicitly", o.Path)
		}
		o.format = f
	default:
		return errors.InvalidArgument("format is required")
	}
	o.Format = string(o.format)

	if o.Regime == "" {
		o.Regime = DefaultRegime
	}
	r, err := identity.ParseRegime(o.Regime)
	if err != nil {
		return err
	}
	o.regime = r

	if o.Settings == nil {
		s := graphio.DefaultSettings()
		o.Settings = &s
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Type returns the structural type of the graph to build.
func (o *Options) Type() graph.Type {
	var opts []graph.TypeOption
	if o.Directed {
		opts = append(opts, graph.Directed())
	}
	if o.Weighted {
		opts = append(opts, graph.Weighted())
	}
	if o.SelfLoops {
		opts = append(opts, graph.SelfLoops())
	}
	if o.MultiEdges {
		opts = append(opts, graph.MultiEdges())
	}
	return graph.NewType(opts...)
}
