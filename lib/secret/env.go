// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
	"strings"
)

// LookupFunc has the signature of os.LookupEnv. Commands take one so
// tests can supply an environment without touching the process's own.
type LookupFunc func(name string) (string, bool)

// FromEnv reads the named variable into a protected buffer. Surrounding
// whitespace is trimmed. The second result is false, with a nil buffer,
// when the variable is unset or blank.
func FromEnv(lookup LookupFunc, name string) (*Buffer, bool, error) {
	value, ok := lookup(name)
	if !ok {
		return nil, false, nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false, nil
	}
	buffer, err := NewFromBytes([]byte(value))
	if err != nil {
		return nil, false, fmt.Errorf("protecting %s: %w", name, err)
	}
	return buffer, true, nil
}

// Entry is a named secret value.
type Entry struct {
	Name  string
	Value *Buffer
}

// Set is an ordered collection of named secrets.
type Set struct {
	entries []Entry
}

// CollectEnv reads each of names from the environment and returns the
// ones that are set, in the order given. Unset or blank names are
// reported in missing.
func CollectEnv(lookup LookupFunc, names []string) (set *Set, missing []string, err error) {
	set = &Set{}
	for _, name := range names {
		buffer, ok, err := FromEnv(lookup, name)
		if err != nil {
			set.Close()
			return nil, nil, err
		}
		if !ok {
			missing = append(missing, name)
			continue
		}
		set.entries = append(set.entries, Entry{Name: name, Value: buffer})
	}
	return set, missing, nil
}

// Entries returns the collected secrets in request order.
func (s *Set) Entries() []Entry {
	return s.entries
}

// Names returns the names of the collected secrets.
func (s *Set) Names() []string {
	names := make([]string, len(s.entries))
	for index, entry := range s.entries {
		names[index] = entry.Name
	}
	return names
}

// Len returns the number of collected secrets.
func (s *Set) Len() int {
	return len(s.entries)
}

// Close releases every buffer in the set.
func (s *Set) Close() error {
	var errs []error
	for _, entry := range s.entries {
		if err := entry.Value.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name, err))
		}
	}
	s.entries = nil
	return errors.Join(errs...)
}
