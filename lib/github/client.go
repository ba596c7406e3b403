// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bureau-foundation/astra/lib/clock"
	"github.com/bureau-foundation/astra/lib/netutil"
	"github.com/bureau-foundation/astra/lib/retry"
)

// githubAPIVersion is the GitHub REST API version header. Pinning the
// version keeps behavior stable as GitHub evolves the API.
const githubAPIVersion = "2022-11-28"

// DefaultBaseURL is the base URL for the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

// DefaultUserAgent identifies astra automation to GitHub.
const DefaultUserAgent = "astra-link-validator-automation"

// DefaultRequestTimeout bounds each individual HTTP attempt.
const DefaultRequestTimeout = 30 * time.Second

// Config holds configuration for creating a GitHub API Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// "https://api.github.com". Must use HTTPS.
	BaseURL string

	// Token is a personal access token or fine-grained token with
	// Actions secrets and workflow permissions. Required.
	Token string

	// UserAgent defaults to DefaultUserAgent.
	UserAgent string

	// HTTPClient is used for all HTTP requests. Defaults to a client
	// whose Timeout is RequestTimeout.
	HTTPClient *http.Client

	// RequestTimeout applies to the default HTTPClient only. Defaults
	// to DefaultRequestTimeout.
	RequestTimeout time.Duration

	// Policy controls retries of transient failures. The zero value
	// selects retry.DefaultPolicy().
	Policy retry.Policy

	// Clock provides time operations. Defaults to clock.Real().
	// Inject clock.Fake() in tests for deterministic backoff.
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed GitHub REST API client with token authentication,
// retrying transport, and structured error handling.
type Client struct {
	baseURL       string
	authorization string
	userAgent     string
	retrier       *retry.Retrier
	logger        *slog.Logger
}

// NewClient creates a GitHub API client from the given configuration.
// Returns an error if the configuration is invalid (missing token,
// non-HTTPS URL).
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("github: API client requires HTTPS (got %q)", baseURL)
	}
	if config.Token == "" {
		return nil, fmt.Errorf("github: no authentication configured (set Token)")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.RequestTimeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	policy := config.Policy
	if policy == (retry.Policy{}) {
		policy = retry.DefaultPolicy()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:       baseURL,
		authorization: "Bearer " + config.Token,
		userAgent:     userAgent,
		retrier: retry.New(retry.Config{
			HTTPClient: httpClient,
			Policy:     policy,
			Clock:      config.Clock,
			Logger:     logger,
		}),
		logger: logger,
	}, nil
}

// do executes an authenticated GitHub API request. The path is
// relative to the base URL (e.g., "/repos/owner/repo/actions/secrets").
// requestBody is JSON-encoded when non-nil.
//
// Returns the response body and status code. On non-2xx responses,
// including transient failures that exhausted their retries, returns
// an error wrapping *APIError.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, int, error) {
	header := http.Header{}
	header.Set("Authorization", client.authorization)
	header.Set("Accept", "application/vnd.github+json")
	header.Set("X-GitHub-Api-Version", githubAPIVersion)
	header.Set("User-Agent", client.userAgent)

	var encoded []byte
	if requestBody != nil {
		var err error
		encoded, err = json.Marshal(requestBody)
		if err != nil {
			return nil, 0, fmt.Errorf("github: encoding request body: %w", err)
		}
		header.Set("Content-Type", "application/json")
	}

	response, err := client.retrier.Do(ctx, retry.Request{
		Method: method,
		URL:    client.baseURL + path,
		Header: header,
		Body:   encoded,
	})
	if err != nil {
		var statusError *retry.StatusError
		var exhausted *retry.ExhaustedError
		if errors.As(err, &statusError) && errors.As(err, &exhausted) {
			return nil, 0, fmt.Errorf("github: %s %s: gave up after %d attempts: %w",
				method, path, exhausted.Attempts, parseAPIError(statusError.StatusCode, statusError.Body))
		}
		return nil, 0, fmt.Errorf("github: %w", err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("github: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, response.StatusCode, parseAPIError(response.StatusCode, body)
	}
	return body, response.StatusCode, nil
}

// get is a convenience method for GET requests that return a single
// JSON object. Decodes the response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, _, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("github: decoding %s: %w", path, err)
	}
	return nil
}
