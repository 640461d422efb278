package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Aishwarya3011/gapr-sub000/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "skelstore replays and inspects versioned neuron skeletons",
		Long: `skelstore keeps a neuron reconstruction as a history of commits. It replays
the history into a consistent skeleton graph, runs spatial and topological
selections on it, exports it and serves it over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return c.loadConfig()
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/skelstore/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the snapshot and export cache")

	root.AddCommand(c.commitCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.highlightCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.upgradeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
