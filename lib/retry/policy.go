// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds how often and how patiently a request is retried.
type Policy struct {
	// MaxAttempts is the total number of requests sent, including the
	// first. Values below 1 are treated as 1.
	MaxAttempts int `yaml:"max_attempts"`

	// BaseDelay is the wait after the first transient failure. Each
	// further failure doubles it.
	BaseDelay time.Duration `yaml:"base_delay"`

	// MaxDelay caps the computed delay. A server-supplied Retry-After
	// is not capped.
	MaxDelay time.Duration `yaml:"max_delay"`
}

// DefaultPolicy is six attempts with delays 1s, 2s, 4s, 8s, 10s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 6,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// NoRetry sends each request exactly once.
func NoRetry() Policy {
	return Policy{MaxAttempts: 1}
}

// normalized fills in unusable fields.
func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	return p
}

// schedule returns a fresh delay generator for one request.
func (p Policy) schedule() backoff.BackOff {
	schedule := &backoff.ExponentialBackOff{
		InitialInterval:     p.BaseDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         p.MaxDelay,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	schedule.Reset()
	return schedule
}

// Delays returns the computed waits after each of the first n
// transient failures, ignoring any Retry-After.
func (p Policy) Delays(n int) []time.Duration {
	p = p.normalized()
	schedule := p.schedule()
	delays := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		delays = append(delays, schedule.NextBackOff())
	}
	return delays
}
