package api

import (
	"github.com/gin-gonic/gin"

	"github.com/verge88/api-npa3/infrastructure/metrics"
)

// apiPrefixes mounts the same routes twice: /api keeps the paths existing
// clients use, /api/v1 is the versioned surface.
var apiPrefixes = []string{"/api", "/api/v1"}

// SetupServiceRoutes configures service-specific routes. Health routes are
// registered by the infrastructure gin package. httpMetrics may be nil.
func SetupServiceRoutes(router *gin.Engine, handler *Handler, httpMetrics *metrics.HTTPMetrics) {
	router.GET("/", handler.Index)
	if httpMetrics != nil {
		router.GET("/metrics", gin.WrapH(httpMetrics.Handler()))
	}

	for _, prefix := range apiPrefixes {
		group := router.Group(prefix)
		group.GET("/types", handler.Types)
		group.GET("/documents/:type", handler.ListDocuments)
		group.GET("/document", handler.GetDocument)
		group.GET("/search", handler.Search)
	}

	router.NoRoute(handler.NotFound)
}
