package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/pipeline"
	"github.com/matzehuels/graphkit/pkg/render/nodelink"
)

func (c *CLI) convertCommand() *cobra.Command {
	var (
		flags    loadFlags
		output   string
		to       string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a graph to another format or draw it",
		Long: `Import a graph and write it in another format.

Output formats are json, dimacs, gml, csv and dot, plus svg, png and pdf
for node-link drawings. PNG and PDF need rsvg-convert (librsvg).`,
		Example: `  graphkit convert karate.gml -o karate.json
  graphkit convert deps.json -d -o deps.svg --detailed
  graphkit convert roads.gr -w --to dot > roads.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(to, output)
			if err != nil {
				return err
			}
			opts, err := c.options(cmd, &flags, args[0])
			if err != nil {
				return err
			}
			loaded, err := c.newRunner().Load(cmd.Context(), opts, source(args[0]))
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			draw := nodelink.Options{Detailed: detailed, EdgeWeights: opts.Weighted}
			if pipeline.IsDrawing(format) && output != "" {
				spinner := newSpinnerWithContext(cmd.Context(), "Rendering "+format+"...")
				spinner.Start()
				err = loaded.Write(cmd.Context(), format, &buf, draw)
				spinner.Stop()
			} else {
				err = loaded.Write(cmd.Context(), format, &buf, draw)
			}
			if err != nil {
				return err
			}

			if output == "" || output == stdinPath {
				_, err := os.Stdout.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Converted %s to %s", args[0], format)
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "output format (default: from the output extension)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show vertex attributes in drawings")
	registerOutputCompletion(cmd)
	return cmd
}

// outputFormat resolves the --to flag, falling back to the extension of
// the output file.
func outputFormat(to, output string) (string, error) {
	format := strings.ToLower(to)
	if format == "" {
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(output), "."))
	}
	if format == "" {
		return "", errors.InvalidArgument("cannot tell the output format; pass --to or an output file with an extension")
	}
	if err := pipeline.ValidateOutput(format); err != nil {
		return "", err
	}
	return format, nil
}
