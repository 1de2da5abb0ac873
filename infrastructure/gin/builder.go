package gin

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verge88/api-npa3/infrastructure/logger"
)

// ServerBuilder provides a fluent API for building HTTP servers.
type ServerBuilder struct {
	config      *Config
	logger      logger.Logger
	middleware  []gin.HandlerFunc
	setupRoutes func(*gin.Engine)
}

// NewServerBuilder creates a new server builder.
func NewServerBuilder(serviceName string, port int) *ServerBuilder {
	return &ServerBuilder{config: NewConfig(serviceName, port)}
}

// WithLogger sets the logger.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.logger = log
	return b
}

// WithDebug enables or disables Gin debug mode.
func (b *ServerBuilder) WithDebug(debug bool) *ServerBuilder {
	b.config.Debug = debug
	return b
}

// WithVersion sets the service version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.config.ServiceVersion = version
	return b
}

// WithCORS configures CORS settings.
func (b *ServerBuilder) WithCORS(cfg CORSConfig) *ServerBuilder {
	b.config.CORS = cfg
	b.config.CORS.SetDefaults()
	return b
}

// WithHealthPaths mounts the health handler at paths instead of /health.
func (b *ServerBuilder) WithHealthPaths(paths ...string) *ServerBuilder {
	if len(paths) > 0 {
		b.config.HealthPaths = paths
	}
	return b
}

// WithTimeouts sets read, write and idle timeouts. Zero values keep defaults.
func (b *ServerBuilder) WithTimeouts(read, write, idle time.Duration) *ServerBuilder {
	if read > 0 {
		b.config.ReadTimeout = read
	}
	if write > 0 {
		b.config.WriteTimeout = write
	}
	if idle > 0 {
		b.config.IdleTimeout = idle
	}
	return b
}

// WithMiddleware appends middleware that runs after the standard chain.
func (b *ServerBuilder) WithMiddleware(mw ...gin.HandlerFunc) *ServerBuilder {
	b.middleware = append(b.middleware, mw...)
	return b
}

// WithRoutes sets the route setup function.
func (b *ServerBuilder) WithRoutes(setupRoutes func(*gin.Engine)) *ServerBuilder {
	b.setupRoutes = setupRoutes
	return b
}

// Build creates the server. Health routes are always registered.
func (b *ServerBuilder) Build() *Server {
	if b.logger == nil {
		b.logger = logger.Must(logger.Config{Development: b.config.Debug})
	}

	setup := func(router *gin.Engine) {
		router.Use(b.middleware...)
		RegisterHealthRoutes(router, b.config.ServiceName, b.config.ServiceVersion, b.config.HealthPaths...)
		if b.setupRoutes != nil {
			b.setupRoutes(router)
		}
	}

	return NewServer(b.config, b.logger, setup)
}
