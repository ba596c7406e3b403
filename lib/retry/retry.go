// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bureau-foundation/astra/lib/clock"
	"github.com/bureau-foundation/astra/lib/netutil"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(request *http.Request) (*http.Response, error)
}

// Request describes one logical call. It is rebuilt into a fresh
// *http.Request for every attempt so the body can be replayed.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Config holds the dependencies of a Retrier.
type Config struct {
	// HTTPClient sends each attempt. Defaults to http.DefaultClient.
	HTTPClient Doer

	// Policy bounds the attempts. The zero value sends once.
	Policy Policy

	// Clock is used for waits between attempts. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives one warning per retried attempt. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Retrier sends requests under a Policy.
type Retrier struct {
	httpClient Doer
	policy     Policy
	clock      clock.Clock
	logger     *slog.Logger
}

// New creates a Retrier from config, filling in defaults.
func New(config Config) *Retrier {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrier{
		httpClient: httpClient,
		policy:     config.Policy.normalized(),
		clock:      clk,
		logger:     logger,
	}
}

// Policy returns the effective policy.
func (r *Retrier) Policy() Policy { return r.policy }

// Do sends request, retrying transient failures. A non-transient
// response is returned as-is (including 4xx) and the caller must close
// its body. On exhaustion the returned error is an *ExhaustedError.
// Cancellation of ctx stops both in-flight requests and pending waits.
func (r *Retrier) Do(ctx context.Context, request Request) (*http.Response, error) {
	schedule := r.policy.schedule()

	for attempt := 1; ; attempt++ {
		delay := schedule.NextBackOff()

		httpRequest, err := newHTTPRequest(ctx, request)
		if err != nil {
			return nil, err
		}

		response, err := r.httpClient.Do(httpRequest)
		var failure error
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failure = fmt.Errorf("%s %s: %w", request.Method, request.URL, err)
		case IsTransientStatus(response.StatusCode):
			body, _ := netutil.ReadResponse(response.Body)
			response.Body.Close()
			failure = &StatusError{
				Method:     request.Method,
				URL:        request.URL,
				StatusCode: response.StatusCode,
				Header:     response.Header,
				Body:       body,
			}
			if serverDelay, ok := RetryAfter(response.Header, r.clock.Now()); ok {
				delay = serverDelay
			}
		default:
			return response, nil
		}

		if attempt >= r.policy.MaxAttempts {
			return nil, &ExhaustedError{Attempts: attempt, Err: failure}
		}

		r.logger.Warn("transient failure, retrying",
			"method", request.Method,
			"url", request.URL,
			"attempt", attempt,
			"max_attempts", r.policy.MaxAttempts,
			"delay", delay,
			"error", failure,
		)

		select {
		case <-r.clock.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// newHTTPRequest builds the attempt's *http.Request with a fresh body
// reader.
func newHTTPRequest(ctx context.Context, request Request) (*http.Request, error) {
	var body io.Reader
	if request.Body != nil {
		body = bytes.NewReader(request.Body)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, request.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for name, values := range request.Header {
		for _, value := range values {
			httpRequest.Header.Add(name, value)
		}
	}
	return httpRequest, nil
}
