// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/astra/lib/retry"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// Config is the non-secret configuration shared by the astra tools.
type Config struct {
	// Notion configures the workspace API.
	Notion NotionConfig `yaml:"notion"`

	// GitHub configures secret upload and workflow dispatch.
	GitHub GitHubConfig `yaml:"github"`

	// Retry bounds retries of transient API failures.
	Retry retry.Policy `yaml:"retry"`

	// Layout is a JSONC workspace layout file for astra-notion-init.
	// Empty selects the built-in layout.
	Layout string `yaml:"layout"`
}

// NotionConfig configures the Notion API client.
type NotionConfig struct {
	// BaseURL defaults to https://api.notion.com/v1.
	BaseURL string `yaml:"base_url"`

	// Version is the Notion-Version used by astra-notion-init.
	Version string `yaml:"version"`

	// ValidatorVersion is the Notion-Version used by the dry-run
	// validator.
	ValidatorVersion string `yaml:"validator_version"`
}

// GitHubConfig configures the GitHub API client.
type GitHubConfig struct {
	// BaseURL defaults to https://api.github.com.
	BaseURL string `yaml:"base_url"`

	// Repository is the owner/name receiving secrets.
	Repository string `yaml:"repository"`

	// Workflow is the workflow file name or id to dispatch.
	Workflow string `yaml:"workflow"`

	// Ref is the branch, tag, or SHA the workflow runs on.
	Ref string `yaml:"ref"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Notion: NotionConfig{
			BaseURL:          "https://api.notion.com/v1",
			Version:          "2025-09-03",
			ValidatorVersion: "2022-06-28",
		},
		GitHub: GitHubConfig{
			BaseURL:    "https://api.github.com",
			Repository: "neuromagic888-cloud/astra-link-validator",
			Workflow:   "quiet-link-validator.yml",
			Ref:        "main",
		},
		Retry: retry.DefaultPolicy(),
	}
}

// envOverrides maps environment variables to the field they replace.
var envOverrides = []struct {
	name  string
	field func(*Config) *string
}{
	{"NOTION_API_URL", func(c *Config) *string { return &c.Notion.BaseURL }},
	{"NOTION_VERSION", func(c *Config) *string { return &c.Notion.Version }},
	{"GITHUB_API_URL", func(c *Config) *string { return &c.GitHub.BaseURL }},
	{"GITHUB_REPOSITORY", func(c *Config) *string { return &c.GitHub.Repository }},
	{"WORKFLOW_ID", func(c *Config) *string { return &c.GitHub.Workflow }},
	{"WORKFLOW_REF", func(c *Config) *string { return &c.GitHub.Ref }},
}

// Load builds the configuration. path names the YAML file; when empty,
// ASTRA_CONFIG is consulted, and when that is unset too no file is
// read. Non-empty values of NOTION_API_URL, NOTION_VERSION,
// GITHUB_API_URL, GITHUB_REPOSITORY, WORKFLOW_ID, and WORKFLOW_REF
// then override the corresponding fields.
func Load(lookup LookupFunc, path string) (*Config, error) {
	if path == "" {
		path, _ = lookup("ASTRA_CONFIG")
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
		cfg.expandVariables(lookup)
	}

	for _, override := range envOverrides {
		if value, ok := lookup(override.name); ok && strings.TrimSpace(value) != "" {
			*override.field(cfg) = strings.TrimSpace(value)
		}
	}

	if err := cfg.Validate(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a YAML file into the current config. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in every string
// field.
func (c *Config) expandVariables(lookup LookupFunc) {
	for _, field := range []*string{
		&c.Notion.BaseURL,
		&c.Notion.Version,
		&c.Notion.ValidatorVersion,
		&c.GitHub.BaseURL,
		&c.GitHub.Repository,
		&c.GitHub.Workflow,
		&c.GitHub.Ref,
		&c.Layout,
	} {
		*field = expandVars(*field, lookup)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. An unset or
// empty variable yields the default, or the empty string.
func expandVars(s string, lookup LookupFunc) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := lookup(name); ok && value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	for _, url := range []struct{ name, value string }{
		{"notion.base_url", c.Notion.BaseURL},
		{"github.base_url", c.GitHub.BaseURL},
	} {
		if !strings.HasPrefix(url.value, "https://") {
			errs = append(errs, fmt.Errorf("%s must be an https:// URL (got %q)", url.name, url.value))
		}
	}

	if c.Notion.Version == "" {
		errs = append(errs, fmt.Errorf("notion.version is required"))
	}
	if c.Notion.ValidatorVersion == "" {
		errs = append(errs, fmt.Errorf("notion.validator_version is required"))
	}

	if owner, name, ok := strings.Cut(c.GitHub.Repository, "/"); !ok || owner == "" || name == "" {
		errs = append(errs, fmt.Errorf("github.repository must be owner/name (got %q)", c.GitHub.Repository))
	}
	if c.GitHub.Workflow == "" {
		errs = append(errs, fmt.Errorf("github.workflow is required"))
	}
	if c.GitHub.Ref == "" {
		errs = append(errs, fmt.Errorf("github.ref is required"))
	}

	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts must be at least 1 (got %d)", c.Retry.MaxAttempts))
	}
	if c.Retry.BaseDelay < 0 || c.Retry.MaxDelay < 0 {
		errs = append(errs, fmt.Errorf("retry delays must not be negative"))
	}
	if c.Retry.MaxDelay < c.Retry.BaseDelay {
		errs = append(errs, fmt.Errorf("retry.max_delay (%s) is shorter than retry.base_delay (%s)", c.Retry.MaxDelay, c.Retry.BaseDelay))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
