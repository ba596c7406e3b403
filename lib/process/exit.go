// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitError requests a specific process exit status. Err may be nil
// when the command has already reported the failure on its own output
// and only the status remains to be propagated.
type ExitError struct {
	Code int
	Err  error
}

// Exitf returns an ExitError with a formatted message.
func Exitf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the requested process exit status.
func (e *ExitError) ExitCode() int { return e.Code }

// Silent reports whether the error carries no message of its own.
func (e *ExitError) Silent() bool { return e.Err == nil }

// Code maps an error returned from run() to an exit status: 0 for nil,
// the ExitCode() of any error in the chain that has one, and 1
// otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return 1
}

// Report writes "error: err" to w unless err is nil or a silent
// ExitError, and returns the exit status for err.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitError *ExitError
	if !errors.As(err, &exitError) || !exitError.Silent() {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	return Code(err)
}

// Exit reports err on stderr and terminates the process with the
// status [Code] assigns to it. A nil error exits 0.
func Exit(err error) {
	os.Exit(Report(os.Stderr, err))
}
