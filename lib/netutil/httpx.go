// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP response helpers shared by the REST
// clients.
//
// Response bodies are read through a bound (MaxResponseSize) so that a
// misbehaving server cannot exhaust memory. The Notion and GitHub
// endpoints used here answer with small JSON documents; the bound is
// far above anything legitimate.
package netutil

import (
	"io"
	"unicode/utf8"
)

// MaxResponseSize bounds JSON API response body reads: 16 MB.
const MaxResponseSize int64 = 16 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes. Use
// instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// Snippet returns at most limit bytes of data as a string for
// diagnostics, cutting on a rune boundary.
func Snippet(data []byte, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(data) <= limit {
		return string(data)
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return string(data[:cut])
}
