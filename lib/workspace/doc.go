// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspace bootstraps the Astra databases in a Notion
// workspace and proves they accept writes.
//
// Bootstrapping is idempotent. [EnsureDatabase] searches for a
// database by exact title and creates it only when none exists.
// [EnsureProperty] adds a property to an existing database only when
// no property of that name is present, and never rewrites one that is.
// Running [Bootstrap] twice therefore creates nothing the second time
// and returns the same ids.
//
// The set of databases, their schemas, and the relations between them
// come from a [Layout], authored as JSONC. [DefaultLayout] returns the
// embedded Astra layout (Chronicle, LinkChecks, RunLog).
//
// [RunSmokeTest] is deliberately not idempotent: every call inserts a
// fresh parent page and a related child row, titled with a random
// suffix from [NewSmokeSuffix].
//
// All remote calls go through the [API] interface, which
// *notion.Client satisfies.
package workspace
