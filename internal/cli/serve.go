package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/maxclique/internal/server"
)

// serveCommand creates the command that starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve the solver over HTTP.

  POST /v1/solve      solve a DIMACS graph sent as the request body
  POST /v1/color      greedily color a DIMACS graph
  GET  /v1/runs       list stored benchmark runs
  GET  /healthz       liveness probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			store, err := c.newStore(ctx)
			if err != nil {
				c.Logger.Warn("Run store unavailable, /v1/runs disabled", "err", err)
			}
			if store != nil {
				defer store.Close(context.WithoutCancel(ctx))
			}

			srv := server.New(server.Config{
				Addr:         addr,
				MaxTimeLimit: c.cfg.Server.MaxTimeLimit,
				MaxVertices:  c.cfg.Server.MaxVertices,
			}, runner, store, c.Logger)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}
