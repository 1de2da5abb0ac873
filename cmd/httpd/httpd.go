// Package httpd implements the serve command running the HTTP API.
package httpd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verge88/api-npa3/cmd/common"
	"github.com/verge88/api-npa3/infrastructure/logger"
	"github.com/verge88/api-npa3/infrastructure/metrics"
	"github.com/verge88/api-npa3/internal/api"
	"github.com/verge88/api-npa3/internal/telemetry"
)

// Command returns the serve command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the JSON API until SIGINT or SIGTERM. Routes are served under both
/api and /api/v1; /health and /metrics are served at the root.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps("")
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			return Run(cmd, deps)
		},
	}
}

// Run serves the API with deps until the command context ends or a
// shutdown signal arrives.
func Run(cmd *cobra.Command, deps *common.CommandDeps) error {
	cfg := deps.Config

	handler := api.NewHandler(deps.Catalog, api.HandlerConfig{
		ServiceName:     cfg.Service.Name,
		Version:         cfg.Service.Version,
		DefaultPageSize: cfg.Service.DefaultPageSize,
		MaxPageSize:     cfg.Service.MaxPageSize,
	}, deps.Logger)

	httpMetrics := metrics.NewHTTPMetrics(telemetry.MetricsNamespace, deps.Registry)
	server := api.NewServer(handler, cfg, deps.Logger, httpMetrics)

	deps.Logger.Info("Serving document catalog",
		logger.String("source", cfg.Source.BaseURL),
		logger.String("fetch_backend", deps.Fetcher.Name()),
		logger.Int("port", cfg.Service.Port),
	)

	return server.Run(cmd.Context())
}
