package gin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// RegisterHealthRoutes adds GET and HEAD handlers at each path, /health when
// none are given. The service holds no external connections, so liveness is
// the only check.
func RegisterHealthRoutes(router *gin.Engine, serviceName, version string, paths ...string) {
	if len(paths) == 0 {
		paths = []string{DefaultHealthPath}
	}
	started := time.Now()

	get := func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Service:   serviceName,
			Version:   version,
			Uptime:    formatUptime(time.Since(started)),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
	head := func(c *gin.Context) {
		c.Status(http.StatusOK)
	}

	for _, path := range paths {
		router.GET(path, get)
		router.HEAD(path, head)
	}
}

func formatUptime(d time.Duration) string {
	const hoursPerDay = 24

	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
