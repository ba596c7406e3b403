// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"testing"
	"time"
)

// RequireReceive returns the next value from ch, failing the test if
// none arrives within timeout or ch is closed. format and args describe
// what was being waited for.
//
//	got := testutil.RequireReceive(t, done, 10*time.Second, "waiting for upload")
func RequireReceive[T any](t testing.TB, ch <-chan T, timeout time.Duration, format string, args ...any) T {
	t.Helper()
	timer := time.NewTimer(timeout) //nolint:realclock test hang prevention
	defer timer.Stop()

	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while %s", fmt.Sprintf(format, args...))
		}
		return value
	case <-timer.C:
		t.Fatalf("no value after %v: %s", timeout, fmt.Sprintf(format, args...))
	}
	panic("unreachable")
}

// RequireClosed waits up to timeout for ch to be closed or to deliver a
// value.
func RequireClosed(t testing.TB, ch <-chan struct{}, timeout time.Duration, format string, args ...any) {
	t.Helper()
	timer := time.NewTimer(timeout) //nolint:realclock test hang prevention
	defer timer.Stop()

	select {
	case <-ch:
	case <-timer.C:
		t.Fatalf("channel not closed after %v: %s", timeout, fmt.Sprintf(format, args...))
	}
}
