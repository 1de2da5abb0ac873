package gin_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ginpkg "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infragin "github.com/verge88/api-npa3/infrastructure/gin"
	"github.com/verge88/api-npa3/infrastructure/logger"
)

func init() {
	ginpkg.SetMode(ginpkg.TestMode)
}

func TestRequestIDLoggerMiddleware_GeneratesID(t *testing.T) {
	t.Parallel()

	w := serve(newTestRouter(), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	reqID := w.Header().Get(infragin.RequestIDHeader)
	assert.Len(t, reqID, 32)
	assert.NotContains(t, reqID, "-")
}

func TestRequestIDLoggerMiddleware_PreservesExistingID(t *testing.T) {
	t.Parallel()

	const inboundID = "trace-from-upstream-abc123"

	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))

	var gotCtxID string
	var gotLogger logger.Logger
	router.GET("/test", func(c *ginpkg.Context) {
		gotCtxID = c.GetString(infragin.RequestIDKey)
		gotLogger = logger.FromContext(c.Request.Context())
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, inboundID)
	w := serve(router, req)

	assert.Equal(t, inboundID, w.Header().Get(infragin.RequestIDHeader))
	assert.Equal(t, inboundID, gotCtxID)
	assert.NotNil(t, gotLogger)
}

func TestRequestIDLoggerMiddleware_RejectsOversizedID(t *testing.T) {
	t.Parallel()

	oversized := strings.Repeat("x", 200)
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, oversized)

	got := serve(newTestRouter(), req).Header().Get(infragin.RequestIDHeader)
	assert.NotEqual(t, oversized, got)
	assert.NotEmpty(t, got)
}

func TestRequestIDLoggerMiddleware_UniqueIDs(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	seen := make(map[string]bool)
	for range 100 {
		id := serve(router, httptest.NewRequest(http.MethodGet, "/test", http.NoBody)).Header().Get(infragin.RequestIDHeader)
		require.False(t, seen[id], "duplicate request ID %s", id)
		seen[id] = true
	}
}

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware(infragin.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://allowed.example"},
	}))
	router.GET("/test", func(c *ginpkg.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/test", http.NoBody)
	req.Header.Set("Origin", "https://allowed.example")
	w := serve(router, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://allowed.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Origin", "https://other.example")
	w = serve(router, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.RecoveryMiddleware(logger.NewNop()))
	router.GET("/panic", func(*ginpkg.Context) { panic("kaboom") })

	w := serve(router, httptest.NewRequest(http.MethodGet, "/panic", http.NoBody))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}

func TestServerBuilder_RegistersHealthAndRoutes(t *testing.T) {
	t.Parallel()

	var middlewareRan bool
	srv := infragin.NewServerBuilder("npa-api", 0).
		WithLogger(logger.NewNop()).
		WithVersion("1.2.3").
		WithMiddleware(func(c *ginpkg.Context) { middlewareRan = true; c.Next() }).
		WithRoutes(func(r *ginpkg.Engine) {
			r.GET("/ping", func(c *ginpkg.Context) { c.String(http.StatusOK, "pong") })
		}).
		Build()

	w := serve(srv.Router(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var health infragin.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "npa-api", health.Service)
	assert.Equal(t, "1.2.3", health.Version)

	w = serve(srv.Router(), httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
	assert.Equal(t, "pong", w.Body.String())
	assert.True(t, middlewareRan)

	w = serve(srv.Router(), httptest.NewRequest(http.MethodHead, "/health", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServerBuilder_HealthPaths(t *testing.T) {
	t.Parallel()

	srv := infragin.NewServerBuilder("npa-api", 0).
		WithLogger(logger.NewNop()).
		WithHealthPaths("/health", "/api/health").
		Build()

	for _, path := range []string{"/health", "/api/health"} {
		w := serve(srv.Router(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code, path)
		w = serve(srv.Router(), httptest.NewRequest(http.MethodHead, path, http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func newTestRouter() *ginpkg.Engine {
	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))
	router.GET("/test", func(c *ginpkg.Context) { c.String(http.StatusOK, "ok") })
	return router
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
