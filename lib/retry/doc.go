// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package retry sends HTTP requests with bounded retry on transient
// failures. It is the one retry implementation shared by the Notion and
// GitHub clients.
//
// A failure is transient when the transport fails (connection refused,
// reset, timeout) or the server answers 429, 500, 502, 503 or 504.
// Everything else, including every 2xx and every other 4xx, is handed
// back to the caller untouched on the first attempt.
//
// Between attempts the [Retrier] waits for the server's Retry-After
// value when one is present, and otherwise for an exponential delay
// (BaseDelay, 2*BaseDelay, 4*BaseDelay, ...) capped at MaxDelay. When
// the attempt ceiling is reached the last failure is returned wrapped
// in an [ExhaustedError].
//
// Waiting goes through [clock.Clock], so tests drive the schedule with a
// fake clock instead of sleeping.
package retry
