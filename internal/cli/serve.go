package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/internal/metrics"
	"github.com/matzehuels/graphkit/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve graph import and conversion over HTTP",
		Long: `Start the HTTP API. Routes:

  POST /import?format=gml&regime=int&directed=true   import the body, return a summary
  POST /convert?from=csv&to=svg                      import the body, return it converted
  GET  /formats                                      supported formats
  GET  /metrics                                      Prometheus metrics
  GET  /healthz                                      liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config.serverConfig()
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}

			collector := metrics.New()
			collector.Install()
			srv := server.New(cfg, c.newRunner(), collector, c.Logger)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	return cmd
}

func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported input and output formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printFormats()
		},
	}
}
