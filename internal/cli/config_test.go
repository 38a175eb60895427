package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/io/csvgraph"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "graphkit.toml",
			content: `
[graph]
regime = "int"
directed = true

[csv]
mode = "edge_list"
delimiter = ";"
matrix_zero_when_no_edge = false

[formats]
graphml_simple = false

[server]
addr = ":9090"
max_body_mb = 8
timeout = "5s"
`,
		},
		{
			name: "yaml",
			file: "graphkit.yaml",
			content: `
graph:
  regime: int
  directed: true
csv:
  mode: edge_list
  delimiter: ";"
  matrix_zero_when_no_edge: false
formats:
  graphml_simple: false
server:
  addr: ":9090"
  max_body_mb: 8
  timeout: 5s
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			opts, err := cfg.loadOptions()
			if err != nil {
				t.Fatal(err)
			}
			if opts.Regime != "int" || !opts.Directed || opts.Weighted {
				t.Errorf("options = %+v", opts)
			}
			s := opts.Settings
			if s.CSV.Format != csvgraph.EdgeList || s.CSV.Delimiter != ';' || s.CSV.MatrixZeroWhenNoEdge {
				t.Errorf("csv = %+v", s.CSV)
			}
			if s.GraphMLSimple || !s.GraphMLValidate || !s.GEXFValidate {
				t.Errorf("settings = %+v", s)
			}

			srv := cfg.serverConfig()
			if srv.Addr != ":9090" || srv.MaxBodyBytes != 8<<20 || srv.Timeout != 5*time.Second {
				t.Errorf("server = %+v", srv)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    []string
	}{
		{"unknown toml key", "c.toml", "[graph]\ncolour = \"red\"\n", []string{"graph.colour"}},
		{"unknown yaml key", "c.yaml", "graph:\n  colour: red\n", []string{"colour"}},
		{"bad values", "c.toml", "[graph]\nregime = \"uuid\"\n[csv]\ndelimiter = \"ab\"\n[server]\ntimeout = \"soon\"\n", []string{"Regime", "Delimiter", "Timeout"}},
		{"bad delimiter", "c.toml", "[csv]\ndelimiter = \"\\\"\"\n", []string{"Delimiter"}},
		{"extension", "c.ini", "", []string{"unsupported config file"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("err = %v, want INVALID_CONFIG", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %q", err, w)
				}
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.loadOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Regime != "" || opts.Directed || opts.Settings.CSV != csvgraph.DefaultOptions() {
		t.Errorf("options = %+v", opts)
	}
}
