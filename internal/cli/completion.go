package cli

import (
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/maxclique/pkg/order"
	"github.com/matzehuels/maxclique/pkg/render"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for maxclique.

To load completions:

Bash:
  $ source <(maxclique completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ maxclique completion bash > /etc/bash_completion.d/maxclique
  # macOS:
  $ maxclique completion bash > $(brew --prefix)/etc/bash_completion.d/maxclique

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ maxclique completion zsh > "${fpath[1]}/_maxclique"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ maxclique completion fish | source

  # To load completions for each session, execute once:
  $ maxclique completion fish > ~/.config/fish/completions/maxclique.fish

PowerShell:
  PS> maxclique completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> maxclique completion powershell > maxclique.ps1
  # and source this file from your PowerShell profile.
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

// registerFlagCompletions adds value completions for enum flags wherever
// a command defines them.
func registerFlagCompletions(root *cobra.Command) {
	qualities := make([]string, 0, len(solver.ValidQualities))
	for q := range solver.ValidQualities {
		qualities = append(qualities, string(q))
	}
	slices.Sort(qualities)

	strategies := make([]string, 0, len(order.Strategies()))
	for _, s := range order.Strategies() {
		strategies = append(strategies, s.String())
	}

	layouts := make([]string, 0, len(render.ValidLayouts))
	for l := range render.ValidLayouts {
		layouts = append(layouts, string(l))
	}
	slices.Sort(layouts)

	values := map[string][]string{
		"quality": qualities,
		"order":   strategies,
		"layout":  layouts,
		"format":  {string(render.FormatSVG), string(render.FormatPNG), string(render.FormatDOT)},
	}

	var walk func(*cobra.Command)
	walk = func(cmd *cobra.Command) {
		for name, vals := range values {
			if cmd.Flags().Lookup(name) == nil {
				continue
			}
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
		}
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(root)
}
