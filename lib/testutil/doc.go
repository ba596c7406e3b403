// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] and [RequireClosed] bound how long a test waits on a
// goroutine, typically one blocked in a fake-clock backoff. They are
// the only place in the test suite where real wall-clock timeouts are
// used.
//
// All helpers call t.Fatalf on failure rather than returning errors.
//
// This package has no astra-internal dependencies.
package testutil
