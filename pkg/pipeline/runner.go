package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/identity"
	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/observability"
)

// Runner loads graphs for the CLI and the API.
//
// The Runner is stateless apart from its logger, so multiple goroutines
// can share one Runner.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger means [log.Default].
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Load imports src into a new graph built from opts.
//
// On failure the returned error carries the import's error code. Partial
// graphs are discarded.
func (r *Runner) Load(ctx context.Context, opts Options, src graphio.Source) (*Loaded, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	ctx = observability.WithLogger(ctx, opts.Logger)

	start := time.Now()
	var (
		h     handle
		stats graphio.Stats
		err   error
	)
	t := opts.Type()
	switch opts.regime {
	case identity.INT:
		h, stats, err = load(ctx, graph.NewInt(t, graph.WithLogger[int32](opts.Logger)), opts, src)
	case identity.LONG:
		h, stats, err = load(ctx, graph.NewLong(t, graph.WithLogger[int64](opts.Logger)), opts, src)
	default:
		h, stats, err = load(ctx, graph.NewString(t, graph.WithLogger[string](opts.Logger)), opts, src)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}

	loaded := &Loaded{
		Regime: opts.regime,
		Format: opts.format,
		Stats:  stats,
		Took:   time.Since(start),
		h:      h,
	}
	opts.Logger.Info("loaded graph",
		"format", loaded.Format,
		"regime", loaded.Regime,
		"vertices", stats.Vertices,
		"edges", stats.Edges,
		"duration", loaded.Took)
	return loaded, nil
}

func load[T comparable](ctx context.Context, g *graph.Default[T], opts Options, src graphio.Source) (handle, graphio.Stats, error) {
	stats, err := graphio.Import[T](ctx, g, opts.format, src, graphio.WithSettings[T](*opts.Settings))
	if err != nil {
		return nil, stats, err
	}
	return &typed[T]{g: g}, stats, nil
}
