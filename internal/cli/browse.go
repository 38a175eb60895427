package cli

import (
	"fmt"
	"maps"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (c *CLI) browseCommand() *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse the vertices of a graph interactively",
		Example: `  graphkit browse deps.json -d
  graphkit browse les-miserables.gexf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == stdinPath {
				return fmt.Errorf("browse needs a file; standard input is used by the terminal")
			}
			opts, err := c.options(cmd, &flags, args[0])
			if err != nil {
				return err
			}
			loaded, err := c.newRunner().Load(cmd.Context(), opts, source(args[0]))
			if err != nil {
				return err
			}
			vertices, err := loaded.Vertices()
			if err != nil {
				return err
			}
			if len(vertices) == 0 {
				printWarning("%s has no vertices", args[0])
				return nil
			}

			title := fmt.Sprintf("%s · %d vertices · %d edges", args[0], loaded.Stats.Vertices, loaded.Stats.Edges)
			_, err = tea.NewProgram(NewVertexListModel(title, vertices), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
