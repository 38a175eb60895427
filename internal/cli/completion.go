package cli

import (
	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

var (
	regimeNames  = []string{"int", "long", "ref"}
	csvModeNames = []string{"adjacency_list", "edge_list", "matrix"}
)

// inputFormatNames lists the values --format accepts.
func inputFormatNames() []string {
	var out []string
	for _, f := range graphio.Formats() {
		out = append(out, string(f))
	}
	return out
}

// completeGraphFiles offers files whose extension some importer
// recognizes, for the first positional argument only unless many is set.
func completeGraphFiles(many bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 && !many {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return graphio.Extensions(), cobra.ShellCompDirectiveFilterFileExt
	}
}

// registerLoadCompletions wires value completion for the flags added by
// loadFlags.register.
func registerLoadCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(inputFormatNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("regime", cobra.FixedCompletions(regimeNames, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("csv-mode", cobra.FixedCompletions(csvModeNames, cobra.ShellCompDirectiveNoFileComp))
	if cmd.ValidArgsFunction == nil {
		cmd.ValidArgsFunction = completeGraphFiles(false)
	}
}

// registerOutputCompletion completes --to with every writable format.
func registerOutputCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("to", cobra.FixedCompletions(pipeline.OutputFormats(), cobra.ShellCompDirectiveNoFileComp))
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell. Besides commands and
flags, the scripts complete input format names, output formats, identity
regimes and CSV modes, and offer only files with a known graph extension.`,
		Example: `  source <(graphkit completion bash)
  graphkit completion zsh > "${fpath[1]}/_graphkit"
  graphkit completion fish > ~/.config/fish/completions/graphkit.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}
