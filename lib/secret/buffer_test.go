// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"testing"
)

func TestNewIsZeroFilled(t *testing.T) {
	buffer, err := New(64)
	if err != nil {
		t.Fatalf("New(64): %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 64 {
		t.Errorf("Len() = %d, want 64", buffer.Len())
	}
	if !bytes.Equal(buffer.Bytes(), make([]byte, 64)) {
		t.Error("new buffer is not zero-filled")
	}
	// Locking depends on RLIMIT_MEMLOCK; only its reporting is checked.
	t.Logf("buffer locked: %v", buffer.Locked())
}

func TestInvalidSources(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d) succeeded", size)
		}
	}
	if _, err := NewFromBytes(nil); err == nil {
		t.Error("NewFromBytes(nil) succeeded")
	}
	if _, err := NewFromBytes([]byte{}); err == nil {
		t.Error("NewFromBytes(empty) succeeded")
	}
}

func TestNewFromBytesMovesSource(t *testing.T) {
	source := []byte("secret_notion_integration_token")
	want := string(source)

	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !bytes.Equal(source, make([]byte, len(source))) {
		t.Errorf("source not zeroed: %q", source)
	}
}

func TestCloseReleasesMapping(t *testing.T) {
	buffer, err := NewFromBytes([]byte("ghp_exampletoken"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}

	if err := buffer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buffer.data != nil || buffer.Len() != 0 {
		t.Error("mapping still referenced after Close")
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestReadAfterClosePanics(t *testing.T) {
	for name, read := range map[string]func(*Buffer){
		"Bytes":  func(b *Buffer) { b.Bytes() },
		"String": func(b *Buffer) { _ = b.String() },
	} {
		t.Run(name, func(t *testing.T) {
			buffer, err := New(16)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			buffer.Close()

			defer func() {
				if recover() == nil {
					t.Fatalf("%s() after Close did not panic", name)
				}
			}()
			read(buffer)
		})
	}
}
