package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/buildinfo"
	"github.com/matzehuels/graphkit/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The --config flag names a TOML or YAML file; without it graphkit.toml,
// graphkit.yaml or graphkit.yml in the working directory is used, then
// config.toml (or .yaml/.yml) under the XDG config directory.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "graphkit imports, inspects and converts graphs",
		Long:         `graphkit reads graphs in DIMACS, GML, JSON, CSV, GEXF, DOT, graph6/sparse6 and GraphML, summarizes them, converts between formats, draws them and serves the same operations over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(observability.WithLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml or .yml)")

	// Register all subcommands
	root.AddCommand(c.importCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(buildinfo.String())
		},
	}
}
