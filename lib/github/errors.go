// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bureau-foundation/astra/lib/netutil"
)

// maxErrorSnippet bounds how much of a non-JSON error body is kept.
const maxErrorSnippet = 400

// APIError is a non-2xx GitHub response. GitHub error bodies look like
// {"message":"Validation Failed","documentation_url":"...","errors":[...]}.
// When the body is not JSON, Message holds its first 400 bytes.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string

	// Errors lists field-level failures, for example a 422 from a
	// secret upload whose key_id no longer matches the repository key.
	Errors []ValidationError
}

// ValidationError is one entry of a 422 response's errors array.
type ValidationError struct {
	Resource string `json:"resource"`
	Code     string `json:"code"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (v ValidationError) String() string {
	detail := v.Message
	if detail == "" {
		detail = v.Code
	}
	return v.Resource + "." + v.Field + ": " + detail
}

func (err *APIError) Error() string {
	parts := make([]string, 0, 1+len(err.Errors))
	parts = append(parts, fmt.Sprintf("github: HTTP %d: %s", err.StatusCode, err.Message))
	for _, validationError := range err.Errors {
		parts = append(parts, validationError.String())
	}
	return strings.Join(parts, "; ")
}

// parseAPIError builds an *APIError from a response status and body.
func parseAPIError(statusCode int, body []byte) *APIError {
	var wire struct {
		Message          string            `json:"message"`
		DocumentationURL string            `json:"documentation_url"`
		Errors           []ValidationError `json:"errors"`
	}
	if json.Unmarshal(body, &wire) != nil || wire.Message == "" {
		return &APIError{StatusCode: statusCode, Message: netutil.Snippet(body, maxErrorSnippet)}
	}
	return &APIError{
		StatusCode:       statusCode,
		Message:          wire.Message,
		DocumentationURL: wire.DocumentationURL,
		Errors:           wire.Errors,
	}
}

// asAPIError returns the *APIError in err's chain, or nil.
func asAPIError(err error) *APIError {
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError
	}
	return nil
}

// rateLimited reports whether the response is a primary or secondary
// rate limit. GitHub signals both with 429 or with a 403 whose message
// says so.
func (err *APIError) rateLimited() bool {
	if err.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if err.StatusCode != http.StatusForbidden {
		return false
	}
	message := strings.ToLower(err.Message)
	return strings.Contains(message, "rate limit") || strings.Contains(message, "abuse detection")
}

// IsNotFound reports whether err is a 404. GitHub also answers 404 for
// repositories the token cannot see.
func IsNotFound(err error) bool {
	apiError := asAPIError(err)
	return apiError != nil && apiError.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is a rate limit response.
func IsRateLimited(err error) bool {
	apiError := asAPIError(err)
	return apiError != nil && apiError.rateLimited()
}

// IsValidationFailed reports whether err is a 422.
func IsValidationFailed(err error) bool {
	apiError := asAPIError(err)
	return apiError != nil && apiError.StatusCode == http.StatusUnprocessableEntity
}

// IsUnauthorized reports whether the token was rejected (401) or lacks
// permission (a 403 that is not a rate limit).
func IsUnauthorized(err error) bool {
	apiError := asAPIError(err)
	if apiError == nil {
		return false
	}
	return apiError.StatusCode == http.StatusUnauthorized ||
		(apiError.StatusCode == http.StatusForbidden && !apiError.rateLimited())
}
