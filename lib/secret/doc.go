// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds sensitive values such as API tokens in memory
// that is kept off the Go heap.
//
// [Buffer] allocates memory via mmap(MAP_ANONYMOUS), locks it into
// physical RAM via mlock (preventing swap), and marks it excluded from
// core dumps via madvise(MADV_DONTDUMP). On Close, the memory is
// zeroed, unlocked, and unmapped. The garbage collector never sees the
// region, so it cannot leave copies of the secret behind.
//
// Constructors:
//
//   - [New] -- allocates a zero-filled buffer of a given size
//   - [NewFromBytes] -- copies into protected memory, zeros the source
//   - [FromEnv] -- reads a named environment variable
//
// [Set] gathers the optional named values a tool uploads, preserving
// the order in which names were requested and closing every buffer
// together.
//
// Depends on golang.org/x/sys/unix.
package secret
