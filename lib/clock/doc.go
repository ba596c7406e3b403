// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for code that waits.
//
// The retry helper sleeps between attempts through a [Clock] rather than
// calling time.After directly. Production binaries pass [Real]; tests
// pass [Fake] and drive time forward explicitly:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go func() { result <- retrier.Do(ctx, request) }()
//	c.WaitForTimers(1)          // the retrier is now sleeping
//	c.Advance(2 * time.Second)  // wake it deterministically
//
// WaitForTimers closes the race between a goroutine registering a wait
// and the test advancing the clock.
package clock
