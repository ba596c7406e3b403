// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Astra-secrets-dispatch copies the link validator's Notion settings
// from the environment into GitHub Actions repository secrets and then
// triggers the validator workflow.
//
// Each value is sealed to the repository's public key (a libsodium
// sealed box), uploaded, and verified by reading the secret back. The
// public key is fetched once per run. Set NO_DISPATCH to upload
// without starting the workflow.
//
// Exit status is 0 on success and 1 when GITHUB_TOKEN or every secret
// is missing, or when any API call or verification fails.
package main
