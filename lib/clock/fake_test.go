// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"

	"github.com/bureau-foundation/astra/lib/testutil"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	want := epoch.Add(5 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockAfterPartialAdvance(t *testing.T) {
	clock := Fake(epoch)
	channel := clock.After(2 * time.Second)

	clock.Advance(1999 * time.Millisecond)
	select {
	case <-channel:
		t.Fatal("After fired before deadline")
	default:
	}
	if clock.PendingCount() != 1 {
		t.Fatalf("PendingCount = %d, want 1", clock.PendingCount())
	}

	clock.Advance(time.Millisecond)
	select {
	case <-channel:
	default:
		t.Fatal("After did not fire at deadline")
	}
	if clock.PendingCount() != 0 {
		t.Fatalf("PendingCount = %d, want 0", clock.PendingCount())
	}
}

func TestFakeClockAfterNonPositive(t *testing.T) {
	clock := Fake(epoch)
	for _, d := range []time.Duration{0, -time.Second} {
		select {
		case <-clock.After(d):
		default:
			t.Fatalf("After(%v) should fire immediately", d)
		}
	}
	if len(clock.Requested()) != 0 {
		t.Fatalf("non-positive waits should not be recorded, got %v", clock.Requested())
	}
}

func TestFakeClockWakesBlockedGoroutine(t *testing.T) {
	clock := Fake(epoch)
	done := make(chan struct{})
	go func() {
		<-clock.After(3 * time.Second)
		close(done)
	}()

	clock.WaitForTimers(1)
	clock.Advance(3 * time.Second)

	testutil.RequireClosed(t, done, 5*time.Second, "After did not fire on Advance")
	if pending := clock.PendingCount(); pending != 0 {
		t.Fatalf("PendingCount() = %d after firing, want 0", pending)
	}
}
