package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand writes a shell completion script. Flag values are
// completed by the functions registered below.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion SHELL",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bash, zsh, fish or powershell.

  $ source <(skelstore completion bash)
  $ skelstore completion zsh > "${fpath[1]}/_skelstore"
  $ skelstore completion fish > ~/.config/fish/completions/skelstore.fish
  PS> skelstore completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// completeValues completes a flag with a fixed set of values.
func completeValues(values ...string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func completeSnapshot(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

func completeDir(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// registerHistoryCompletion completes --history on cmd with directories.
func registerHistoryCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("history", completeDir)
}

// registerSelectionCompletion completes the flags shared by commands that
// run a highlight.
func registerSelectionCompletion(cmd *cobra.Command, modeFlag string) {
	if modeFlag != "" {
		_ = cmd.RegisterFlagCompletionFunc(modeFlag, completeValues(skeleton.HighlightModes...))
	}
	_ = cmd.RegisterFlagCompletionFunc("dir", completeValues("-1", "0", "1"))
	_ = cmd.RegisterFlagCompletionFunc("edge", cobra.NoFileCompletions)
}
