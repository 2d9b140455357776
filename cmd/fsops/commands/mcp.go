package commands

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fsops/internal/mcp"
	"fsops/internal/metrics"

	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the file operations as MCP tools over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout. The move, copy, swap,
lock and naming operations are exposed as tools, using the same conflict policies
and config as the command line.

When metrics are enabled in the config (or --metrics-addr is given), Prometheus
metrics are served on /metrics at the configured address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.cfg.Metrics.Address
			enabled := a.cfg.Metrics.Enabled
			if metricsAddr != "" {
				addr, enabled = metricsAddr, true
			}

			if enabled {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				go func() {
					a.logger.Info("Metrics enabled", "address", addr)
					if err := metrics.Serve(ctx, addr, a.registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.logger.Error("Metrics server failed", "address", addr, "error", err)
					}
				}()
			}

			return mcp.NewServer(a.manager, a.logger, Version).Start()
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides config)")
	return cmd
}
