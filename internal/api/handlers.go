// Package api serves the document catalog over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verge88/api-npa3/infrastructure/logger"
	"github.com/verge88/api-npa3/internal/domain"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeUnsupportedCategory = "UNSUPPORTED_CATEGORY"
	CodeInvalidQuery        = "INVALID_QUERY"
	CodeInvalidOrigin       = "INVALID_ORIGIN"
	CodeMissingParameter    = "MISSING_PARAMETER"
	CodeNotFound            = "NOT_FOUND"
	CodeInternal            = "INTERNAL_ERROR"
)

// Catalog is the subset of catalog.Service used by the handlers.
type Catalog interface {
	ListCategories() []domain.Category
	CategoryKeys() []string
	ListDocuments(ctx context.Context, category string) ([]domain.DocumentSummary, error)
	GetDocumentDetail(ctx context.Context, url string) (*domain.DocumentDetail, error)
	SearchDocuments(ctx context.Context, query, category string) (*domain.SearchResult, error)
}

// HandlerConfig holds presentation settings of the handlers.
type HandlerConfig struct {
	ServiceName     string
	Version         string
	DefaultPageSize int
	MaxPageSize     int
}

// Handler holds HTTP request handlers
type Handler struct {
	catalog Catalog
	config  HandlerConfig
	logger  logger.Logger
}

// NewHandler creates a new handler instance
func NewHandler(catalog Catalog, cfg HandlerConfig, log logger.Logger) *Handler {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = DefaultPerPage
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = MaxPerPage
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{catalog: catalog, config: cfg, logger: log}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error          string   `json:"error"`
	Code           string   `json:"code"`
	Status         string   `json:"status"`
	AvailableTypes []string `json:"available_types,omitempty"`
}

// TypesResponse lists the supported categories by key.
type TypesResponse struct {
	Types  map[string]string `json:"types"`
	Status string            `json:"status"`
}

// ListResponse is one page of a category listing.
type ListResponse struct {
	Documents []domain.DocumentSummary `json:"documents"`
	Total     int                      `json:"total"`
	Page      int                      `json:"page"`
	PerPage   int                      `json:"per_page"`
	Pages     int                      `json:"pages"`
	Status    string                   `json:"status"`
}

// SearchResponse is a ranked search result.
type SearchResponse struct {
	Documents []domain.RankedSummary `json:"documents"`
	Query     string                 `json:"query"`
	Total     int                    `json:"total"`
	Showing   int                    `json:"showing"`
	Status    string                 `json:"status"`
}

// IndexResponse describes the service.
type IndexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Status    string            `json:"status"`
}

// Index handles GET /
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, IndexResponse{
		Message: h.config.ServiceName,
		Version: h.config.Version,
		Endpoints: map[string]string{
			"/health":                    "Service health",
			"/metrics":                   "Prometheus metrics",
			"/api/v1/types":              "Supported document types",
			"/api/v1/documents/<type>":   "Documents of a type, paginated",
			"/api/v1/document?url=<url>": "Document details",
			"/api/v1/search?q=<query>":   "Search documents by title",
		},
		Status: "running",
	})
}

// Types handles GET /types
func (h *Handler) Types(c *gin.Context) {
	categories := h.catalog.ListCategories()
	types := make(map[string]string, len(categories))
	for _, cat := range categories {
		types[cat.Key] = cat.Label
	}

	c.JSON(http.StatusOK, TypesResponse{Types: types, Status: statusSuccess})
}

// ListDocuments handles GET /documents/:type
func (h *Handler) ListDocuments(c *gin.Context) {
	category := c.Param("type")

	docs, err := h.catalog.ListDocuments(c.Request.Context(), category)
	if err != nil {
		h.respondError(c, err, h.catalog.CategoryKeys())
		return
	}

	page, perPage := parsePagination(c, h.config.DefaultPageSize, h.config.MaxPageSize)
	items, pages := Paginate(docs, page, perPage)

	c.JSON(http.StatusOK, ListResponse{
		Documents: items,
		Total:     len(docs),
		Page:      page,
		PerPage:   perPage,
		Pages:     pages,
		Status:    statusSuccess,
	})
}

// GetDocument handles GET /document?url=
func (h *Handler) GetDocument(c *gin.Context) {
	docURL := c.Query("url")
	if docURL == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "url parameter is required",
			Code:   CodeMissingParameter,
			Status: statusError,
		})
		return
	}

	detail, err := h.catalog.GetDocumentDetail(c.Request.Context(), docURL)
	if err != nil {
		h.respondError(c, err, nil)
		return
	}

	if detail.Failed() {
		c.JSON(http.StatusInternalServerError, detail)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Search handles GET /search?q=&type=
func (h *Handler) Search(c *gin.Context) {
	category := c.DefaultQuery("type", domain.CategoryAll)

	result, err := h.catalog.SearchDocuments(c.Request.Context(), c.Query("q"), category)
	if err != nil {
		h.respondError(c, err, append(h.catalog.CategoryKeys(), domain.CategoryAll))
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Documents: result.Documents,
		Query:     result.Query,
		Total:     result.Total,
		Showing:   result.Showing,
		Status:    statusSuccess,
	})
}

// NotFound handles unknown routes.
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:  "endpoint not found",
		Code:   CodeNotFound,
		Status: statusError,
	})
}

// respondError maps err to a status code and error body. availableTypes is
// attached to unsupported category errors.
func (h *Handler) respondError(c *gin.Context, err error, availableTypes []string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		resp := ErrorResponse{Error: vErr.Message, Status: statusError}
		switch {
		case errors.Is(err, domain.ErrUnsupportedCategory):
			resp.Code = CodeUnsupportedCategory
			resp.AvailableTypes = availableTypes
		case errors.Is(err, domain.ErrInvalidQuery):
			resp.Code = CodeInvalidQuery
		case errors.Is(err, domain.ErrInvalidOrigin):
			resp.Code = CodeInvalidOrigin
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	logger.FromContext(c.Request.Context()).Error("Request failed",
		logger.String("path", c.FullPath()),
		logger.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:  err.Error(),
		Code:   CodeInternal,
		Status: statusError,
	})
}
