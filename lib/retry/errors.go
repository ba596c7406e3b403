// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError records a transient HTTP status that was not retried
// away. The response body is kept for diagnostics.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d", err.Method, err.URL, err.StatusCode)
}

// ExhaustedError is returned when every attempt failed transiently.
// Err is the failure of the final attempt: a *StatusError or the
// transport error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (err *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", err.Attempts, err.Err)
}

func (err *ExhaustedError) Unwrap() error { return err.Err }

// IsTransientStatus reports whether an HTTP status is worth retrying.
func IsTransientStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsExhausted reports whether err came from running out of attempts.
func IsExhausted(err error) bool {
	var exhausted *ExhaustedError
	return errors.As(err, &exhausted)
}
