// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds a secret in its own anonymous mapping. The mapping is
// excluded from core dumps, locked against swap when RLIMIT_MEMLOCK
// allows it, and zeroed on Close.
//
// A Buffer must not be copied. Reading a closed Buffer panics.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	locked bool
	closed bool
}

// New maps a zero-filled buffer of size bytes. The caller must Close
// it.
//
// Hosted CI runners often have a memlock limit of zero, so a refused
// mlock leaves the buffer unlocked rather than failing; see
// [Buffer.Locked].
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}
	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP): %w", err)
	}

	buffer := &Buffer{data: data}
	switch err := unix.Mlock(data); {
	case err == nil:
		buffer.locked = true
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.ENOMEM):
	default:
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: mlock: %w", err)
	}
	return buffer, nil
}

// NewFromBytes moves source into a new Buffer, zeroing source.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}
	buffer, err := New(len(source))
	if err != nil {
		return nil, err
	}
	copy(buffer.data, source)
	Zero(source)
	return buffer, nil
}

// Zero overwrites data with zeros.
func Zero(data []byte) {
	clear(data)
}

// view returns the live mapping. Callers hold b.mu.
func (b *Buffer) view() []byte {
	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.data
}

// Bytes returns the secret. The slice aliases the mapping and is
// invalid after Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view()
}

// String returns a heap copy of the secret, for APIs that only take
// strings.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.view())
}

// Len returns the secret's length in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Locked reports whether the mapping is locked in RAM.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Close zeros and unmaps the buffer. Closing twice is a no-op.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	Zero(b.data)

	var errs []error
	if b.locked {
		if err := unix.Munlock(b.data); err != nil {
			errs = append(errs, fmt.Errorf("secret: munlock: %w", err))
		}
	}
	if err := unix.Munmap(b.data); err != nil {
		errs = append(errs, fmt.Errorf("secret: munmap: %w", err))
	}
	b.data = nil
	return errors.Join(errs...)
}
