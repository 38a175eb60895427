package io

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/identity"
	"github.com/matzehuels/graphkit/pkg/io/csvgraph"
	"github.com/matzehuels/graphkit/pkg/io/dimacs"
	"github.com/matzehuels/graphkit/pkg/io/dot"
	"github.com/matzehuels/graphkit/pkg/io/g6"
	"github.com/matzehuels/graphkit/pkg/io/gexf"
	"github.com/matzehuels/graphkit/pkg/io/gml"
	"github.com/matzehuels/graphkit/pkg/io/graphml"
	"github.com/matzehuels/graphkit/pkg/io/jsongraph"
	"github.com/matzehuels/graphkit/pkg/io/stream"
	"github.com/matzehuels/graphkit/pkg/observability"
)

// Format names a supported input format.
type Format string

const (
	DIMACS  Format = "dimacs"
	GML     Format = "gml"
	JSON    Format = "json"
	CSV     Format = "csv"
	GEXF    Format = "gexf"
	DOT     Format = "dot"
	Graph6  Format = "graph6"
	GraphML Format = "graphml"
)

var formats = []Format{DIMACS, GML, JSON, CSV, GEXF, DOT, Graph6, GraphML}

var aliases = map[string]Format{
	"g6": Graph6, "s6": Graph6, "sparse6": Graph6, "graph6sparse6": Graph6, "graph6_sparse6": Graph6,
	"gv": DOT, "col": DIMACS, "gr": DIMACS,
}

// Formats lists the built-in formats.
func Formats() []Format { return slices.Clone(formats) }

// ParseFormat resolves a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(s, "."))
	if slices.Contains(formats, Format(name)) {
		return Format(name), nil
	}
	if f, ok := aliases[name]; ok {
		return f, nil
	}
	return "", errors.InvalidArgument("unknown format %q", s)
}

// Extensions lists the file extensions FormatFromPath recognizes, without
// the leading dot.
func Extensions() []string {
	out := make([]string, 0, len(formats)+len(aliases))
	for _, f := range formats {
		out = append(out, string(f))
	}
	for alias := range aliases {
		out = append(out, alias)
	}
	slices.Sort(out)
	return out
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	f, err := ParseFormat(filepath.Ext(path))
	return f, err == nil
}

// SourceKind distinguishes the ways input reaches the importer.
type SourceKind int

const (
	FileSource SourceKind = iota
	StringSource
	ReaderSource
)

func (k SourceKind) String() string {
	return [...]string{"file", "string", "reader"}[k]
}

// Source is the input of an import.
type Source struct {
	kind    SourceKind
	path    string
	payload string
	r       io.Reader
}

// File reads the file at path. The file is closed when the import returns.
func File(path string) Source { return Source{kind: FileSource, path: path} }

// String reads an in-memory payload.
func String(payload string) Source { return Source{kind: StringSource, payload: payload} }

// Reader reads r. The importer does not close r.
func Reader(r io.Reader) Source { return Source{kind: ReaderSource, r: r} }

// Kind reports how the source is read.
func (s Source) Kind() SourceKind { return s.kind }

func (s Source) String() string {
	if s.kind == FileSource {
		return s.path
	}
	return s.kind.String()
}

// Settings are the format-specific parameters of an import.
type Settings struct {
	CSV             csvgraph.Options
	GEXFValidate    bool
	GraphMLValidate bool
	GraphMLSimple   bool
}

// DefaultSettings returns the settings used when no option overrides them.
func DefaultSettings() Settings {
	return Settings{
		CSV:             csvgraph.DefaultOptions(),
		GEXFValidate:    true,
		GraphMLValidate: true,
		GraphMLSimple:   true,
	}
}

// Parser is a format parser of either id shape. Exactly one field is set.
type Parser struct {
	Integer stream.Parser[int64]
	String  stream.Parser[[]byte]
}

// Shape reports the id shape of p.
func (p Parser) Shape() stream.Shape {
	if p.Integer != nil {
		return stream.Integer
	}
	return stream.String
}

// Factory builds the parser for one import.
type Factory func(s Settings) (Parser, error)

type registryKey struct {
	format Format
	regime identity.Regime
	source SourceKind
}

var (
	registryMu sync.RWMutex
	registry   = map[registryKey]Factory{}
)

// Register installs f for the given format, identity regime and source
// kind, replacing any previous registration.
func Register(format Format, regime identity.Regime, source SourceKind, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[registryKey{format, regime, source}] = f
}

func lookup(format Format, regime identity.Regime, source SourceKind) (Factory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[registryKey{format, regime, source}]
	if !ok {
		return nil, errors.Unsupported("no %s parser for %s graphs from a %s", format, regime, source)
	}
	return f, nil
}

var builtin = map[Format]Factory{
	DIMACS: func(Settings) (Parser, error) { return Parser{Integer: dimacs.Parser{}}, nil },
	GML:    func(Settings) (Parser, error) { return Parser{Integer: gml.Parser{}}, nil },
	JSON:   func(Settings) (Parser, error) { return Parser{String: jsongraph.Parser{}}, nil },
	CSV: func(s Settings) (Parser, error) {
		if err := s.CSV.Validate(); err != nil {
			return Parser{}, err
		}
		if s.CSV.IntegerShaped() {
			return Parser{Integer: csvgraph.MatrixParser{Options: s.CSV}}, nil
		}
		return Parser{String: csvgraph.Parser{Options: s.CSV}}, nil
	},
	GEXF:   func(s Settings) (Parser, error) { return Parser{String: gexf.Parser{Validate: s.GEXFValidate}}, nil },
	DOT:    func(Settings) (Parser, error) { return Parser{String: dot.Parser{}}, nil },
	Graph6: func(Settings) (Parser, error) { return Parser{String: g6.Parser{}}, nil },
	GraphML: func(s Settings) (Parser, error) {
		return Parser{String: graphml.Parser{Simple: s.GraphMLSimple, Validate: s.GraphMLValidate}}, nil
	},
}

// DefaultParser builds the built-in parser for format, ignoring the
// registry.
func DefaultParser(format Format, s Settings) (Parser, error) {
	f, ok := builtin[format]
	if !ok {
		return Parser{}, errors.Unsupported("no built-in parser for %s", format)
	}
	return f(s)
}

func init() {
	for _, format := range formats {
		for _, regime := range []identity.Regime{identity.INT, identity.LONG, identity.REF} {
			for _, source := range []SourceKind{FileSource, StringSource, ReaderSource} {
				Register(format, regime, source, builtin[format])
			}
		}
	}
}

// Stats reports what an import installed. Vertices counts distinct file
// vertex ids.
type Stats = observability.ImportStats

type config[T comparable] struct {
	settings        Settings
	importID        func(ctx context.Context, id string) (T, error)
	integerImportID func(ctx context.Context, id int64) (T, error)
	vertexAttribute func(ctx context.Context, v T, key, value string)
	edgeAttribute   func(ctx context.Context, e T, key, value string)
}

// Option configures Import.
type Option[T comparable] func(*config[T])

// WithImportID maps file ids to vertices. Integer file ids are passed as
// decimal text unless WithIntegerImportID is also given. Returning an
// existing vertex merges the file ids.
//
// Every callback receives the import's context marked as running inside a
// callback; an Import started with it fails with INVALID_STATE.
func WithImportID[T comparable](fn func(ctx context.Context, id string) (T, error)) Option[T] {
	return func(c *config[T]) { c.importID = fn }
}

// WithIntegerImportID maps integer file ids of DIMACS, GML and id-less CSV
// matrices to vertices.
func WithIntegerImportID[T comparable](fn func(ctx context.Context, id int64) (T, error)) Option[T] {
	return func(c *config[T]) { c.integerImportID = fn }
}

// WithVertexAttributes observes every vertex attribute after it is
// stored.
func WithVertexAttributes[T comparable](fn func(ctx context.Context, v T, key, value string)) Option[T] {
	return func(c *config[T]) { c.vertexAttribute = fn }
}

// WithEdgeAttributes observes every edge attribute, including the weight,
// after it is applied.
func WithEdgeAttributes[T comparable](fn func(ctx context.Context, e T, key, value string)) Option[T] {
	return func(c *config[T]) { c.edgeAttribute = fn }
}

// WithSettings replaces all format-specific settings.
func WithSettings[T comparable](s Settings) Option[T] {
	return func(c *config[T]) { c.settings = s }
}

// WithCSV sets the CSV options.
func WithCSV[T comparable](o csvgraph.Options) Option[T] {
	return func(c *config[T]) { c.settings.CSV = o }
}

// WithGEXF turns GEXF schema validation on or off.
func WithGEXF[T comparable](validate bool) Option[T] {
	return func(c *config[T]) { c.settings.GEXFValidate = validate }
}

// WithGraphML selects the GraphML parser and validation.
func WithGraphML[T comparable](validate, simple bool) Option[T] {
	return func(c *config[T]) { c.settings.GraphMLValidate, c.settings.GraphMLSimple = validate, simple }
}

// busy holds the targets with an import in progress.
var busy sync.Map

type callbackKey struct{}

// inCallback marks ctx as belonging to an import callback.
func inCallback(ctx context.Context) context.Context {
	return context.WithValue(ctx, callbackKey{}, true)
}

func isCallback(ctx context.Context) bool {
	v, _ := ctx.Value(callbackKey{}).(bool)
	return v
}

// Import parses src in the given format into g. Elements are added to
// whatever g already holds.
//
// Parse failures are returned as IMPORT_ERROR wrapping the parser's error,
// which carries the format and position. Failures raised by the graph or
// by id decoding keep their own code. Either way, elements installed
// before the failure remain; attributes still buffered when the parser
// fails are dropped.
//
// An import started from inside an import callback fails with
// INVALID_STATE. Nesting is detected through the context handed to the
// callback, and an import into a graph that is already the target of a
// running import is rejected whatever context it carries.
func Import[T comparable](ctx context.Context, g Target[T], format Format, src Source, opts ...Option[T]) (stats Stats, err error) {
	if g == nil {
		return stats, errors.New(errors.ErrCodeNullPointer, "import target is nil")
	}
	if isCallback(ctx) {
		return stats, errors.New(errors.ErrCodeInvalidState, "import started from inside an import callback")
	}
	cfg := &config[T]{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(cfg)
	}
	regime := regimeOf(g)
	factory, err := lookup(format, regime, src.kind)
	if err != nil {
		return stats, err
	}
	p, err := factory(cfg.settings)
	if err != nil {
		return stats, err
	}

	if _, loaded := busy.LoadOrStore(g, struct{}{}); loaded {
		return stats, errors.New(errors.ErrCodeInvalidState, "re-entrant import into the same graph")
	}
	defer busy.Delete(g)

	r, closer, err := open(src)
	if err != nil {
		return stats, err
	}
	defer closer()

	logger := observability.LoggerFromContext(ctx)
	hooks := observability.Import()
	start := time.Now()
	hooks.OnImportStart(ctx, string(format), regime.String())
	logger.Debug("import", "format", format, "regime", regime, "source", src, "shape", p.Shape())
	defer func() {
		d := time.Since(start)
		hooks.OnImportComplete(ctx, string(format), regime.String(), stats, d, err)
		if err != nil {
			logger.Debug("import failed", "format", format, "err", err)
			return
		}
		logger.Debug("imported", "format", format, "vertices", stats.Vertices, "edges", stats.Edges, "took", d)
	}()

	in := stream.Decode(r)
	if p.Integer != nil {
		b := newBridge[T, int64](ctx, g, regime, cfg)
		err = finish(format, p.Integer.Parse(ctx, in, b), b.Finish)
		return b.stats, err
	}
	b := newBridge[T, []byte](ctx, g, regime, cfg)
	err = finish(format, p.String.Parse(ctx, in, b), b.Finish)
	return b.stats, err
}

// finish runs the bridge's final flush and classifies the failure.
func finish(format Format, parseErr error, flush func(aborted bool) error) error {
	flushErr := flush(parseErr != nil)
	if parseErr == nil {
		return flushErr
	}
	if _, coded := parseErr.(*errors.Error); coded {
		return parseErr
	}
	return errors.Wrap(errors.ErrCodeImport, parseErr, "%s import failed", format)
}

func open(src Source) (io.Reader, func(), error) {
	switch src.kind {
	case FileSource:
		f, err := os.Open(src.path)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeImport, err, "open %s", src.path)
		}
		return f, func() { f.Close() }, nil
	case StringSource:
		return strings.NewReader(src.payload), func() {}, nil
	}
	if src.r == nil {
		return nil, nil, errors.New(errors.ErrCodeNullPointer, "reader source is nil")
	}
	return src.r, func() {}, nil
}

// regimeOf asks g for its identity regime and otherwise infers it from T.
func regimeOf[T comparable](g Target[T]) identity.Regime {
	if r, ok := g.(interface{ Regime() identity.Regime }); ok {
		return r.Regime()
	}
	var zero T
	switch any(zero).(type) {
	case int32:
		return identity.INT
	case int64:
		return identity.LONG
	}
	return identity.REF
}
