package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinchbench/pinchboard/internal/webapi"
	"github.com/pinchbench/pinchboard/internal/webserver"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		host    string
		port    int
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the leaderboard as a JSON API",
		Long: `Serve the ranked leaderboard, runs, submissions and chart data as a JSON
API under /api.

The server binds to loopback by default. CORS headers are only sent for
origins listed with --allowed-origin or server.allowed_origins.

Routes:
  GET /api/health
  GET /api/versions
  GET /api/leaderboard           version, view, score, provider
  GET /api/runs                  version, limit, offset
  GET /api/submissions/{id}
  GET /api/graphs/scatter        axis, hide
  GET /api/graphs/heatmap        sort
  GET /api/graphs/distribution   sort
  GET /api/graphs/radar          model (repeatable)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == 0 {
				port = a.cfg.Server.Port
			}
			if len(origins) == 0 {
				origins = a.cfg.Server.AllowedOrigins
			}
			if host != "127.0.0.1" && host != "localhost" && host != "::1" {
				a.logger.Warn("HTTP server binding to a non-loopback address, no authentication is provided", "host", host)
			}

			svc, closeStore, err := a.openService()
			if err != nil {
				return err
			}
			defer closeStore()

			webapi.Version = version
			srv, err := webserver.New(webserver.Config{
				Host:           host,
				Port:           port,
				AllowedOrigins: origins,
				Service:        svc,
				Logger:         a.logger,
			})
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", srv.Addr())
			if err != nil {
				return fmt.Errorf("failed to start HTTP server: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Pinchboard API listening on http://%s/api\n", ln.Addr()) //nolint:errcheck
			return srv.Serve(cmd.Context(), ln)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Address to bind")
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config, 3000)")
	cmd.Flags().StringSliceVar(&origins, "allowed-origin", nil, "Origin allowed by CORS (repeatable)")

	return cmd
}
