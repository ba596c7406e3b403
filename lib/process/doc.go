// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for the astra
// command-line tools. It centralizes the raw I/O that happens outside
// the structured logger:
//
//   - Reporting errors returned from run() on stderr.
//   - Mapping those errors to process exit codes.
//
// Commands return an [*ExitError] from run() to request a specific
// exit status. [Exit] honors any error implementing ExitCode() int and
// falls back to status 1 for everything else.
package process
