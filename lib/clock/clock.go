// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source for backoff waits.
type Clock interface {
	// Now returns the current time. Retry-After dates are measured
	// against it.
	Now() time.Time

	// After returns a channel that receives once d has elapsed. A
	// non-positive d is delivered immediately.
	After(d time.Duration) <-chan time.Time
}

// Real returns the wall clock.
func Real() Clock { return wallClock{} }

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) After(d time.Duration) <-chan time.Time {
	return time.After(d) //nolint:realclock wall clock implementation
}
