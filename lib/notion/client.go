// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bureau-foundation/astra/lib/clock"
	"github.com/bureau-foundation/astra/lib/netutil"
	"github.com/bureau-foundation/astra/lib/retry"
)

// DefaultBaseURL is the root of the public Notion API.
const DefaultBaseURL = "https://api.notion.com/v1"

// DefaultVersion is the Notion-Version sent when Config.Version is
// empty.
const DefaultVersion = "2025-09-03"

// DefaultRequestTimeout bounds each individual HTTP attempt.
const DefaultRequestTimeout = 15 * time.Second

// Config holds configuration for creating a Notion API Client.
type Config struct {
	// BaseURL defaults to DefaultBaseURL. Must use HTTPS.
	BaseURL string

	// Token is the integration token. Required.
	Token string

	// Version is sent as the Notion-Version header. Defaults to
	// DefaultVersion.
	Version string

	// UserAgent is sent when non-empty.
	UserAgent string

	// HTTPClient is used for all HTTP requests. Defaults to a client
	// whose Timeout is RequestTimeout.
	HTTPClient *http.Client

	// RequestTimeout applies to the default HTTPClient only. Defaults
	// to DefaultRequestTimeout.
	RequestTimeout time.Duration

	// Policy controls retries of transient failures. The zero value
	// selects retry.DefaultPolicy(); pass retry.NoRetry() for a single
	// attempt.
	Policy retry.Policy

	// Clock is used for backoff waits. Defaults to clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a Notion REST API client.
type Client struct {
	baseURL       string
	authorization string
	version       string
	userAgent     string
	retrier       *retry.Retrier
	logger        *slog.Logger
}

// NewClient creates a Notion API client from config.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("notion: API client requires HTTPS (got %q)", baseURL)
	}
	if config.Token == "" {
		return nil, fmt.Errorf("notion: no integration token configured")
	}

	version := config.Version
	if version == "" {
		version = DefaultVersion
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.RequestTimeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
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
		version:       version,
		userAgent:     config.UserAgent,
		retrier: retry.New(retry.Config{
			HTTPClient: httpClient,
			Policy:     policy,
			Clock:      config.Clock,
			Logger:     logger,
		}),
		logger: logger,
	}, nil
}

// Version returns the Notion-Version header value in use.
func (client *Client) Version() string { return client.version }

func (client *Client) do(ctx context.Context, method, path string, requestBody, result any) error {
	_, err := client.send(ctx, method, path, requestBody, result)
	return err
}

// send issues an authenticated request and decodes a 2xx JSON response
// into result (skipped when result is nil), returning the HTTP status.
// Other statuses return *APIError, wrapped with the attempt count when
// transient retries ran out.
func (client *Client) send(ctx context.Context, method, path string, requestBody, result any) (int, error) {
	header := http.Header{}
	header.Set("Authorization", client.authorization)
	header.Set("Notion-Version", client.version)
	if client.userAgent != "" {
		header.Set("User-Agent", client.userAgent)
	}

	var encoded []byte
	if requestBody != nil {
		var err error
		encoded, err = json.Marshal(requestBody)
		if err != nil {
			return 0, fmt.Errorf("notion: encoding request body: %w", err)
		}
		header.Set("Content-Type", "application/json")
	}

	client.logger.Debug("notion request", "method", method, "path", path)

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
			return 0, fmt.Errorf("notion: %s %s: gave up after %d attempts: %w",
				method, path, exhausted.Attempts, parseAPIError(statusError.StatusCode, statusError.Body))
		}
		return 0, fmt.Errorf("notion: %w", err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return response.StatusCode, fmt.Errorf("notion: reading response body: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return response.StatusCode, parseAPIError(response.StatusCode, body)
	}
	if result == nil {
		return response.StatusCode, nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return response.StatusCode, fmt.Errorf("notion: decoding %s %s response: %w", method, path, err)
	}
	return response.StatusCode, nil
}

// Search runs one page of POST /search.
func (client *Client) Search(ctx context.Context, request SearchRequest) (*SearchResponse, error) {
	var response SearchResponse
	if err := client.do(ctx, http.MethodPost, "/search", request, &response); err != nil {
		return nil, fmt.Errorf("searching for %q: %w", request.Query, err)
	}
	return &response, nil
}

// CreateDatabase creates a database under a parent page.
func (client *Client) CreateDatabase(ctx context.Context, request CreateDatabaseRequest) (*Database, error) {
	var database Database
	if err := client.do(ctx, http.MethodPost, "/databases", request, &database); err != nil {
		return nil, fmt.Errorf("creating database %q: %w", PlainText(request.Title), err)
	}
	return &database, nil
}

// GetDatabase retrieves a database and its property schema.
func (client *Client) GetDatabase(ctx context.Context, databaseID string) (*Database, error) {
	var database Database
	if err := client.do(ctx, http.MethodGet, "/databases/"+url.PathEscape(databaseID), nil, &database); err != nil {
		return nil, fmt.Errorf("getting database %s: %w", databaseID, err)
	}
	return &database, nil
}

// UpdateDatabase patches a database. Properties named in the request
// are added or replaced; others are left alone.
func (client *Client) UpdateDatabase(ctx context.Context, databaseID string, request UpdateDatabaseRequest) (*Database, error) {
	var database Database
	if err := client.do(ctx, http.MethodPatch, "/databases/"+url.PathEscape(databaseID), request, &database); err != nil {
		return nil, fmt.Errorf("updating database %s: %w", databaseID, err)
	}
	return &database, nil
}

// CreatePage inserts a page (a database row) under request.Parent.
func (client *Client) CreatePage(ctx context.Context, request CreatePageRequest) (*Page, error) {
	var page Page
	if err := client.do(ctx, http.MethodPost, "/pages", request, &page); err != nil {
		return nil, fmt.Errorf("creating page in %s: %w", request.Parent.DatabaseID, err)
	}
	return &page, nil
}

// QueryDatabase runs one page of POST /databases/{id}/query.
func (client *Client) QueryDatabase(ctx context.Context, databaseID string, request QueryDatabaseRequest) (*QueryDatabaseResponse, error) {
	var response QueryDatabaseResponse
	path := "/databases/" + url.PathEscape(databaseID) + "/query"
	status, err := client.send(ctx, http.MethodPost, path, request, &response)
	if err != nil {
		return nil, fmt.Errorf("querying database %s: %w", databaseID, err)
	}
	response.StatusCode = status
	return &response, nil
}
