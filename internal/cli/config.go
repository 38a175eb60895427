package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphkit/internal/server"
	"github.com/matzehuels/graphkit/pkg/errors"
	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/io/csvgraph"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

// configNames are looked up in the working directory, in order.
var configNames = []string{"graphkit.toml", "graphkit.yaml", "graphkit.yml"}

// Config holds the defaults read from a graphkit config file. Command-line
// flags override every value.
type Config struct {
	Graph   GraphConfig   `toml:"graph" yaml:"graph"`
	CSV     CSVConfig     `toml:"csv" yaml:"csv"`
	Formats FormatsConfig `toml:"formats" yaml:"formats"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// GraphConfig is the default graph type and identity regime.
type GraphConfig struct {
	Regime     string `toml:"regime" yaml:"regime" validate:"omitempty,oneof=int long ref INT LONG REF"`
	Directed   bool   `toml:"directed" yaml:"directed"`
	Weighted   bool   `toml:"weighted" yaml:"weighted"`
	SelfLoops  bool   `toml:"self_loops" yaml:"self_loops"`
	MultiEdges bool   `toml:"multi_edges" yaml:"multi_edges"`
}

// CSVConfig mirrors [csvgraph.Options].
type CSVConfig struct {
	Mode                  string `toml:"mode" yaml:"mode" validate:"omitempty,oneof=adjacency_list edge_list matrix adjacencylist edgelist"`
	Delimiter             string `toml:"delimiter" yaml:"delimiter" validate:"omitempty,len=1"`
	EdgeWeights           bool   `toml:"edge_weights" yaml:"edge_weights"`
	MatrixNodeIDs         bool   `toml:"matrix_node_ids" yaml:"matrix_node_ids"`
	MatrixZeroWhenNoEdge  *bool  `toml:"matrix_zero_when_no_edge" yaml:"matrix_zero_when_no_edge"`
	MatrixZeroWeightEdges bool   `toml:"matrix_zero_weight_edges" yaml:"matrix_zero_weight_edges"`
}

// FormatsConfig holds the XML format switches. Unset values keep the
// importer defaults.
type FormatsConfig struct {
	GEXFValidate    *bool `toml:"gexf_validate" yaml:"gexf_validate"`
	GraphMLValidate *bool `toml:"graphml_validate" yaml:"graphml_validate"`
	GraphMLSimple   *bool `toml:"graphml_simple" yaml:"graphml_simple"`
}

// ServerConfig configures graphkit serve.
type ServerConfig struct {
	Addr           string   `toml:"addr" yaml:"addr"`
	MaxBodyMB      int      `toml:"max_body_mb" yaml:"max_body_mb" validate:"gte=0,lte=4096"`
	Timeout        string   `toml:"timeout" yaml:"timeout"`
	AllowedOrigins []string `toml:"allowed_origins" yaml:"allowed_origins" validate:"dive,required"`
}

// configDir returns the config directory using the XDG standard
// (~/.config/graphkit/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// findConfig returns the first existing config file, or "" if none.
func findConfig() string {
	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	dir, err := configDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfig reads and validates the config at path. An empty path
// searches the default locations; finding nothing yields the zero Config.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		path = findConfig()
		if path == "" {
			return cfg, nil
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			var merr *multierror.Error
			for _, key := range undecoded {
				merr = multierror.Append(merr, fmt.Errorf("unknown key %q", key.String()))
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, merr, "%s", path)
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config file %s (want .toml, .yaml or .yml)", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var merr *multierror.Error
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			merr = multierror.Append(merr, fmt.Errorf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	if c.Server.Timeout != "" {
		if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("Config.Server.Timeout: %w", err))
		}
	}
	if c.CSV.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
		if err := errors.ValidateDelimiter(r); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("Config.CSV.Delimiter: %w", err))
		}
	}
	return merr.ErrorOrNil()
}

// settings turns the file values into import settings.
func (c *Config) settings() (graphio.Settings, error) {
	s := graphio.DefaultSettings()
	if c.CSV.Mode != "" {
		m, err := csvgraph.ParseMode(c.CSV.Mode)
		if err != nil {
			return s, err
		}
		s.CSV.Format = m
	}
	if c.CSV.Delimiter != "" {
		s.CSV.Delimiter, _ = utf8.DecodeRuneInString(c.CSV.Delimiter)
	}
	s.CSV.ImportEdgeWeights = c.CSV.EdgeWeights
	s.CSV.MatrixNodeIDs = c.CSV.MatrixNodeIDs
	if c.CSV.MatrixZeroWhenNoEdge != nil {
		s.CSV.MatrixZeroWhenNoEdge = *c.CSV.MatrixZeroWhenNoEdge
	}
	s.CSV.MatrixZeroWeightEdges = c.CSV.MatrixZeroWeightEdges

	if v := c.Formats.GEXFValidate; v != nil {
		s.GEXFValidate = *v
	}
	if v := c.Formats.GraphMLValidate; v != nil {
		s.GraphMLValidate = *v
	}
	if v := c.Formats.GraphMLSimple; v != nil {
		s.GraphMLSimple = *v
	}
	return s, nil
}

// loadOptions builds pipeline options from the file defaults.
func (c *Config) loadOptions() (pipeline.Options, error) {
	s, err := c.settings()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Regime:     c.Graph.Regime,
		Directed:   c.Graph.Directed,
		Weighted:   c.Graph.Weighted,
		SelfLoops:  c.Graph.SelfLoops,
		MultiEdges: c.Graph.MultiEdges,
		Settings:   &s,
	}, nil
}

// serverConfig converts the file values for the server package.
func (c *Config) serverConfig() server.Config {
	cfg := server.Config{
		Addr:           c.Server.Addr,
		MaxBodyBytes:   int64(c.Server.MaxBodyMB) << 20,
		AllowedOrigins: c.Server.AllowedOrigins,
	}
	if d, err := time.ParseDuration(c.Server.Timeout); err == nil {
		cfg.Timeout = d
	}
	return cfg
}
