// Package errors provides shared error types and wrapping helpers.
package errors

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// MinErrorStatusCode is the minimum HTTP status code considered an error.
	MinErrorStatusCode = 400

	maxErrorBodyBytes = 512
)

// HTTPError describes an upstream response that was not successful.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("HTTP error %d %s from %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
	}
	return fmt.Sprintf("HTTP error %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// CheckResponse returns an *HTTPError when resp carries an error status
// (4xx or 5xx). A short prefix of the body is kept for diagnostics.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode < MinErrorStatusCode {
		return nil
	}

	httpErr := &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	if resp.Request != nil && resp.Request.URL != nil {
		httpErr.URL = resp.Request.URL.String()
	}
	if body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)); err == nil {
		httpErr.Body = strings.TrimSpace(string(body))
	}

	return httpErr
}

// GetHTTPStatusCode extracts the status code of a wrapped *HTTPError.
func GetHTTPStatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}
