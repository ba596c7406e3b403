// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notion

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/astra/lib/netutil"
)

// maxErrorBody is how much of a non-JSON error body is kept for
// diagnostics.
const maxErrorBody = 400

// APIError represents a non-2xx response from the Notion API. Notion
// error bodies look like
// {"object":"error","status":404,"code":"object_not_found","message":"..."}.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	// Body holds up to 400 bytes of the raw response body.
	Body []byte
}

func (err *APIError) Error() string {
	if err.Code != "" {
		return fmt.Sprintf("notion: HTTP %d %s: %s", err.StatusCode, err.Code, err.Message)
	}
	return fmt.Sprintf("notion: HTTP %d: %s", err.StatusCode, err.Message)
}

func parseAPIError(statusCode int, body []byte) *APIError {
	snippet := netutil.Snippet(body, maxErrorBody)
	apiError := &APIError{StatusCode: statusCode, Body: []byte(snippet)}

	var wireError struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &wireError) == nil && (wireError.Code != "" || wireError.Message != "") {
		apiError.Code = wireError.Code
		apiError.Message = wireError.Message
	} else {
		apiError.Message = snippet
	}
	return apiError
}

// IsNotFound reports whether err is a Notion 404, which Notion also
// returns for objects not shared with the integration.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) &&
		(apiError.StatusCode == http.StatusNotFound || apiError.Code == "object_not_found")
}

// IsValidationFailed reports whether err is a 400 rejecting the
// request body, typically a schema mismatch.
func IsValidationFailed(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) &&
		(apiError.Code == "validation_error" || (apiError.StatusCode == http.StatusBadRequest && apiError.Code == ""))
}

// IsRateLimited reports whether err is a Notion rate limit response.
func IsRateLimited(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) &&
		(apiError.StatusCode == http.StatusTooManyRequests || apiError.Code == "rate_limited")
}

// IsUnauthorized reports whether the token was rejected.
func IsUnauthorized(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) &&
		(apiError.StatusCode == http.StatusUnauthorized || apiError.Code == "unauthorized")
}
