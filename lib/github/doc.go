// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package github provides a typed Go client for the parts of the
// GitHub REST API that astra uses: repository Actions secrets and
// workflow dispatch.
//
// The client authenticates with a personal access or fine-grained
// token. Every request goes through [retry.Retrier], so rate limit
// responses (429 with Retry-After) and transient server errors are
// retried with backoff before surfacing as an [*APIError].
//
// All requests are made over HTTPS. The client refuses non-HTTPS base
// URLs.
package github
