// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for --version.
//
// [GitCommit], [GitDirty], and [BuildTime] are stamped with -ldflags
// -X in release builds. A plain "go build" inside a checkout leaves them
// unset and the commit is read from the VCS settings recorded in the
// binary instead.
package version
