package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

const maxPort = 65535

// ValidationError names the offending config field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateRequired rejects an empty or blank value.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidatePort accepts 1..65535.
func ValidatePort(field string, port int) error {
	if port < 1 || port > maxPort {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be between 1 and %d", maxPort)}
	}
	return nil
}

// ValidateAbsoluteURL checks that value parses as an absolute http(s) URL.
func ValidateAbsoluteURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ValidationError{Field: field, Message: "must be an absolute http(s) URL"}
	}
	return nil
}

// ValidateOneOf accepts value only if it is listed in allowed.
func ValidateOneOf(field, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &ValidationError{Field: field, Message: "must be one of: " + strings.Join(allowed, ", ")}
}
