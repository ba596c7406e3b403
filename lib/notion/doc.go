// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package notion provides a typed Go client for the subset of the
// Notion REST API that astra uses: search, databases, pages, and
// database queries.
//
// Request and response bodies follow Notion's JSON schemas verbatim.
// Property schemas and property values are kept as JSON objects keyed
// by property type ({"select": {...}}) and built with helpers such as
// [SelectSchema] and [SelectValue], so new property types need no
// client changes.
//
// Every request carries the configured Notion-Version header and goes
// through [retry.Retrier]. Non-2xx responses surface as [*APIError],
// classified by [IsNotFound], [IsValidationFailed], [IsRateLimited],
// and [IsUnauthorized].
package notion
