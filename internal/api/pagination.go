package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination defaults.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 50
)

// parsePagination reads page and per_page. Non-numeric values fall back to
// the defaults; page is at least 1 and per_page is clamped to [1, maxPerPage].
func parsePagination(c *gin.Context, defaultPerPage, maxPerPage int) (page, perPage int) {
	page = queryInt(c, "page", DefaultPage)
	perPage = queryInt(c, "per_page", defaultPerPage)

	page = max(page, 1)
	perPage = min(max(perPage, 1), maxPerPage)
	return page, perPage
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// Paginate returns the page-th slice of items (1-based) and the page count.
// Pages past the end are empty, never nil.
func Paginate[T any](items []T, page, perPage int) (out []T, pages int) {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}
	pages = (len(items) + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}, pages
	}
	end := min(start+perPage, len(items))
	return items[start:end], pages
}
