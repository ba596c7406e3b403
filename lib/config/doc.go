// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the astra tools.
//
// The environment is the primary source. An optional YAML file, named
// by the --config flag or the ASTRA_CONFIG environment variable, can
// supply non-secret defaults: API base URLs, Notion versions, the
// GitHub repository and workflow, and the retry policy. There is no
// automatic file discovery.
//
// Precedence, lowest first: [Default], the file, then the environment
// variables listed in [Load]. ${VAR} and ${VAR:-default} patterns in
// file values are expanded after loading.
//
// Credentials (NOTION_TOKEN, GITHUB_TOKEN, and the uploaded secret
// values) are never read from the file; commands take them from the
// environment directly.
package config
