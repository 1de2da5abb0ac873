package domain

import (
	"errors"
	"fmt"
)

// Sentinel validation failures. They are always wrapped in *ValidationError.
var (
	ErrUnsupportedCategory = errors.New("unsupported document category")
	ErrInvalidQuery        = errors.New("invalid search query")
	ErrInvalidOrigin       = errors.New("url is outside the document source")
)

// ValidationError rejects caller input before any fetch happens.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError wrapping sentinel.
func NewValidationError(field, message string, sentinel error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: sentinel}
}

// FetchError reports that a page could not be retrieved after all attempts.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports markup or a link that could not be interpreted.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("parse: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is caller-input rejection.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
