package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/Aishwarya3011/gapr-sub000/internal/server"
	"github.com/Aishwarya3011/gapr-sub000/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		src  sourceFlags
		addr string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the skeleton over HTTP",
		Long: `Serve replays the history (or loads --snapshot) and exposes the store on a
read-mostly HTTP API under /api, with Prometheus metrics on /metrics.
Filter and highlight requests change the visible sets for every client.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics := observability.NewPrometheus(reg)
			observability.SetCommitHooks(metrics)
			observability.SetCacheHooks(metrics)
			observability.SetHTTPHooks(metrics)
			defer observability.Reset()

			s, _, err := c.openStore(ctx, src)
			if err != nil {
				return err
			}
			cc, err := c.openCache(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(s,
				server.WithLogger(logger),
				server.WithGatherer(reg),
				server.WithCache(cc, c.keyer(), c.Config.Cache.TTL),
			)
			printInfo("Listening on %s", StyleLink.Render("http://"+addr))
			return srv.ListenAndServe(ctx, addr, c.Config.Server.ReadTimeout, c.Config.Server.WriteTimeout)
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
