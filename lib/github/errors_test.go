// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantError   string
	}{
		{
			name:        "not found",
			status:      404,
			body:        `{"message":"Not Found","documentation_url":"https://docs.github.com/rest/actions/secrets"}`,
			wantMessage: "Not Found",
			wantError:   "github: HTTP 404: Not Found",
		},
		{
			name:        "stale key id",
			status:      422,
			body:        `{"message":"Validation Failed","errors":[{"resource":"Secret","field":"key_id","code":"invalid"}]}`,
			wantMessage: "Validation Failed",
			wantError:   "github: HTTP 422: Validation Failed; Secret.key_id: invalid",
		},
		{
			name:   "field messages win over codes",
			status: 422,
			body: `{"message":"Validation Failed","errors":[` +
				`{"resource":"Secret","field":"key_id","code":"missing_field"},` +
				`{"resource":"Secret","field":"encrypted_value","code":"invalid","message":"is too long"}]}`,
			wantMessage: "Validation Failed",
			wantError:   "github: HTTP 422: Validation Failed; Secret.key_id: missing_field; Secret.encrypted_value: is too long",
		},
		{
			name:        "html gateway page",
			status:      502,
			body:        "<html>Bad Gateway</html>",
			wantMessage: "<html>Bad Gateway</html>",
			wantError:   "github: HTTP 502: <html>Bad Gateway</html>",
		},
		{
			name:        "json without message",
			status:      500,
			body:        `{"error":"boom"}`,
			wantMessage: `{"error":"boom"}`,
			wantError:   `github: HTTP 500: {"error":"boom"}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			apiError := parseAPIError(test.status, []byte(test.body))
			if apiError.StatusCode != test.status {
				t.Errorf("StatusCode = %d, want %d", apiError.StatusCode, test.status)
			}
			if apiError.Message != test.wantMessage {
				t.Errorf("Message = %q, want %q", apiError.Message, test.wantMessage)
			}
			if got := apiError.Error(); got != test.wantError {
				t.Errorf("Error() = %q, want %q", got, test.wantError)
			}
		})
	}
}

func TestParseAPIError_TruncatesRawBody(t *testing.T) {
	apiError := parseAPIError(503, []byte(strings.Repeat("z", 1000)))
	if len(apiError.Message) != 400 {
		t.Errorf("message length = %d, want 400", len(apiError.Message))
	}
}

func TestPredicates(t *testing.T) {
	type verdict struct{ notFound, rateLimited, validation, unauthorized bool }
	tests := []struct {
		name string
		err  error
		want verdict
	}{
		{"404", &APIError{StatusCode: 404, Message: "Not Found"}, verdict{notFound: true}},
		{"401", &APIError{StatusCode: 401, Message: "Bad credentials"}, verdict{unauthorized: true}},
		{"403 permission", &APIError{StatusCode: 403, Message: "Resource not accessible by personal access token"}, verdict{unauthorized: true}},
		{"403 rate limit", &APIError{StatusCode: 403, Message: "API rate limit exceeded for user ID 1"}, verdict{rateLimited: true}},
		{"403 secondary limit", &APIError{StatusCode: 403, Message: "You have triggered an abuse detection mechanism"}, verdict{rateLimited: true}},
		{"429", &APIError{StatusCode: 429, Message: "Too Many Requests"}, verdict{rateLimited: true}},
		{"422", &APIError{StatusCode: 422, Message: "Validation Failed"}, verdict{validation: true}},
		{"400", &APIError{StatusCode: 400, Message: "Problems parsing JSON"}, verdict{}},
		{"wrapped 404", fmt.Errorf("getting secret NOTION_TOKEN: %w", &APIError{StatusCode: 404}), verdict{notFound: true}},
		{"transport error", errors.New("connection reset by peer"), verdict{}},
		{"nil", nil, verdict{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := verdict{
				notFound:     IsNotFound(test.err),
				rateLimited:  IsRateLimited(test.err),
				validation:   IsValidationFailed(test.err),
				unauthorized: IsUnauthorized(test.err),
			}
			if got != test.want {
				t.Errorf("predicates = %+v, want %+v", got, test.want)
			}
		})
	}
}
