package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	infraerrors "github.com/verge88/api-npa3/infrastructure/errors"
)

var errNoResponse = errors.New("colly: no response received")

// CollyFetcher fetches pages with a colly collector. Each fetch runs on a
// clone, so callbacks never leak between requests while the HTTP backend
// and cookie jar stay shared.
type CollyFetcher struct {
	base *colly.Collector
}

// NewCollyFetcher builds the base collector.
func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
		colly.MaxBodySize(maxResponseBodyBytes),
	)
	c.SetRequestTimeout(timeout)

	return &CollyFetcher{base: c}
}

// Fetch visits url once.
func (f *CollyFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	c := f.base.Clone()
	colly.StdlibContext(ctx)(c)

	var (
		page     *Page
		fetchErr error
	)

	c.OnResponse(func(r *colly.Response) {
		page = &Page{URL: url, StatusCode: r.StatusCode, Body: r.Body}
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode >= infraerrors.MinErrorStatusCode {
			fetchErr = &infraerrors.HTTPError{
				StatusCode: r.StatusCode,
				Status:     http.StatusText(r.StatusCode),
				URL:        url,
			}
			return
		}
		fetchErr = fmt.Errorf("colly fetch: %w", err)
	})

	if err := c.Visit(url); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("colly visit: %w", err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if page == nil {
		return nil, errNoResponse
	}
	return page, nil
}
