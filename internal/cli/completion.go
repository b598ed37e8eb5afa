package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/riverplot/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for riverplot.

Besides commands and flags, the scripts complete river names for
"render --select" (from --data or the embedded table) and output formats
for "render --format".

Bash:
  $ source <(riverplot completion bash)

Zsh:
  $ riverplot completion zsh > "${fpath[1]}/_riverplot"

Fish:
  $ riverplot completion fish > ~/.config/fish/completions/riverplot.fish

PowerShell:
  PS> riverplot completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// registerRenderCompletions adds dynamic completion for the render flags
// whose values come from the dataset or the format list.
func (c *CLI) registerRenderCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("select", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names, err := c.riverNames(toComplete)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formatCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	})
}

// riverNames lists the plottable rivers whose name starts with prefix,
// ignoring case. Incomplete records cannot be selected and are left out.
func (c *CLI) riverNames(prefix string) ([]string, error) {
	ds, err := c.loadDataset()
	if err != nil {
		return nil, err
	}
	prefix = strings.ToLower(prefix)
	var names []string
	for _, r := range ds.Records {
		if r.Incomplete || !strings.HasPrefix(strings.ToLower(r.Name), prefix) {
			continue
		}
		names = append(names, r.Name)
	}
	return names, nil
}

// formatCompletions completes the last entry of a comma-separated format
// list, skipping formats already given.
func formatCompletions(toComplete string) []string {
	head, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		head, last = toComplete[:i+1], toComplete[i+1:]
	}
	given := parseFormats(head)

	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON} {
		if strings.HasPrefix(f, last) && (head == "" || !slices.Contains(given, f)) {
			out = append(out, head+f)
		}
	}
	return out
}
