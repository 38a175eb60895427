package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/pipeline"
)

func (c *CLI) importCommand() *cobra.Command {
	var (
		flags  loadFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a graph and print a summary",
		Long: `Import a graph file and print its size, degree statistics and, for
directed graphs, whether it is acyclic and how deep it is.

Use "-" to read standard input; --format is then required.`,
		Example: `  graphkit import roads.gr --directed --weighted
  graphkit import deps.json -d --regime ref --json
  cat social.csv | graphkit import - --format csv --csv-mode edge_list`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags, args[0])
			if err != nil {
				return err
			}
			prog := newProgress(c.Logger)
			loaded, err := c.newRunner().Load(cmd.Context(), opts, source(args[0]))
			if err != nil {
				return err
			}
			sum, err := loaded.Summary()
			if err != nil {
				return err
			}
			prog.done("Imported "+args[0], "vertices", sum.Vertices, "edges", sum.Edges)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			printSummary(args[0], loaded, sum)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(name string, l *pipeline.Loaded, s pipeline.Summary) {
	fmt.Println(StyleTitle.Render(name))
	printKeyValue("format", string(l.Format))
	printKeyValue("regime", l.Regime.String())
	printKeyValue("type", s.Type)
	printKeyValue("vertices", StyleNumber.Render(fmt.Sprint(s.Vertices)))
	printKeyValue("edges", StyleNumber.Render(fmt.Sprint(s.Edges)))
	printKeyValue("isolated", fmt.Sprint(s.Isolated))
	printKeyValue("self-loops", fmt.Sprint(s.SelfLoops))
	printKeyValue("max degree", fmt.Sprint(s.MaxDegree))
	printKeyValue("density", fmt.Sprintf("%.4g", s.Density))
	if s.Weight != 0 {
		printKeyValue("weight", fmt.Sprintf("%g", s.Weight))
	}
	if s.Acyclic == nil {
		return
	}
	printKeyValue("sources", fmt.Sprint(s.Sources))
	printKeyValue("sinks", fmt.Sprint(s.Sinks))
	if *s.Acyclic {
		printKeyValue("acyclic", StyleSuccess.Render("yes")+StyleDim.Render(fmt.Sprintf(" (depth %d)", s.Depth)))
	} else {
		printKeyValue("acyclic", StyleWarning.Render("no"))
	}
}
