package api

import (
	"time"

	"github.com/gin-gonic/gin"

	infragin "github.com/verge88/api-npa3/infrastructure/gin"
	"github.com/verge88/api-npa3/infrastructure/logger"
	"github.com/verge88/api-npa3/infrastructure/metrics"
	"github.com/verge88/api-npa3/internal/config"
)

// Listing and search requests may wait on several upstream fetches, each
// with retries, so writes get a generous timeout.
const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 5 * time.Minute
	defaultIdleTimeout  = 120 * time.Second
)

// healthPaths keeps /api/health for clients of the unversioned paths.
var healthPaths = []string{"/health", "/api/health"}

// NewServer creates the HTTP server using the infrastructure gin package.
func NewServer(handler *Handler, cfg *config.Config, log logger.Logger, httpMetrics *metrics.HTTPMetrics) *infragin.Server {
	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithCORS(cfg.CORS).
		WithHealthPaths(healthPaths...).
		WithRoutes(func(router *gin.Engine) {
			SetupServiceRoutes(router, handler, httpMetrics)
		})

	if httpMetrics != nil {
		builder = builder.WithMiddleware(httpMetrics.Middleware())
	}

	return builder.Build()
}
