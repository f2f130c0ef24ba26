// Package connectors holds the shared plumbing for all external data source
// connectors: the error taxonomy and the retry policy. Each concrete connector
// (geoportal, overpass) lives in its own subpackage.
package connectors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Shared connector errors.
var (
	// ErrServiceUnavailable indicates the remote service failed or timed out.
	ErrServiceUnavailable = errors.New("connector: service unavailable")

	// ErrInvalidParameter indicates the request was rejected as malformed.
	ErrInvalidParameter = errors.New("connector: invalid request parameter")

	// ErrRateLimited indicates the remote service throttled the request.
	ErrRateLimited = errors.New("connector: rate limited by remote service")
)

// HTTPError represents an error response from a remote geodata service.
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("connector: HTTP %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap maps the status code onto the shared sentinels so callers can use
// errors.Is without inspecting codes themselves.
func (e *HTTPError) Unwrap() error {
	switch {
	case e.StatusCode == 429:
		return ErrRateLimited
	case e.StatusCode >= 500:
		return ErrServiceUnavailable
	case e.StatusCode >= 400:
		return ErrInvalidParameter
	}
	return nil
}

// NewHTTPError builds an HTTPError from a response status.
func NewHTTPError(statusCode int, message, url string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message, URL: url}
}

// IsRetryable reports whether a request that failed with err is worth
// retrying. Server faults and timeouts are transient; client errors such as a
// bad CQL filter will fail identically every time and must not be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServiceUnavailable) {
		return true
	}
	return false
}

// IsInvalidParameter checks if the error indicates a malformed request.
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}
