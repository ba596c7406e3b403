// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Astra-notion-init bootstraps the Astra workspace under a Notion
// parent page: the Chronicle, LinkChecks, and RunLog databases and the
// LinkChecks.Chronicle relation. It is safe to re-run. Databases are
// found by exact title and reused, and the relation is added only when
// missing.
//
// After bootstrapping it inserts a linked Chronicle page and LinkChecks
// row as a smoke test (disable with --skip-smoke).
//
// NOTION_TOKEN and PARENT_PAGE_ID are required (exit 2 when absent).
// Any failing step exits 1 and names the step.
package main
