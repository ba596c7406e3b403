// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Astra-quiet-validator is the dry-run safeguard run by the link
// validator workflow. It reports which Notion secrets are present and,
// when the token and link-check database id are both set, sends one
// bounded query to confirm connectivity.
//
// The exit status is always 0: an unconfigured repository or an
// unreachable API must not turn the workflow red.
package main
