// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/astra/lib/clock"
	"github.com/bureau-foundation/astra/lib/config"
	"github.com/bureau-foundation/astra/lib/notion"
	"github.com/bureau-foundation/astra/lib/process"
	"github.com/bureau-foundation/astra/lib/version"
	"github.com/bureau-foundation/astra/lib/workspace"
)

// runTimeout bounds the whole bootstrap, retries included.
const runTimeout = 2 * time.Minute

type environment struct {
	lookup     config.LookupFunc
	stdout     io.Writer
	stderr     io.Writer
	httpClient *http.Client
	clock      clock.Clock
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], environment{
		lookup: os.LookupEnv,
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  clock.Real(),
	})
	stop()
	process.Exit(err)
}

func run(ctx context.Context, args []string, env environment) error {
	var (
		verbose     bool
		logFile     string
		layoutPath  string
		configPath  string
		skipSmoke   bool
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("astra-notion-init", pflag.ContinueOnError)
	flagSet.SetOutput(env.stderr)
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flagSet.StringVar(&logFile, "log-file", "", "also append JSON log records to this file")
	flagSet.StringVar(&layoutPath, "layout", "", "JSONC workspace layout (default: built-in Astra layout)")
	flagSet.StringVar(&configPath, "config", "", "YAML configuration file (default: $ASTRA_CONFIG)")
	flagSet.BoolVar(&skipSmoke, "skip-smoke", false, "do not insert smoke-test records")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &process.ExitError{Code: 2, Err: err}
	}
	if showVersion {
		version.Print(env.stdout, "astra-notion-init")
		return nil
	}

	logger, closeLog, err := newLogger(env.stdout, verbose, logFile)
	if err != nil {
		return &process.ExitError{Code: 2, Err: err}
	}
	defer closeLog()

	token := lookupTrimmed(env.lookup, "NOTION_TOKEN")
	parentPageID := lookupTrimmed(env.lookup, "PARENT_PAGE_ID")
	if token == "" || parentPageID == "" {
		logger.Error("NOTION_TOKEN and PARENT_PAGE_ID must be set in environment")
		return &process.ExitError{Code: 2}
	}

	cfg, err := config.Load(env.lookup, configPath)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return &process.ExitError{Code: 2}
	}

	if layoutPath == "" {
		layoutPath = cfg.Layout
	}
	layout := workspace.DefaultLayout()
	if layoutPath != "" {
		layout, err = workspace.ReadLayout(layoutPath)
		if err != nil {
			logger.Error("invalid layout", "path", layoutPath, "error", err)
			return &process.ExitError{Code: 2}
		}
	}

	client, err := notion.NewClient(notion.Config{
		BaseURL:    cfg.Notion.BaseURL,
		Token:      token,
		Version:    cfg.Notion.Version,
		HTTPClient: env.httpClient,
		Policy:     cfg.Retry,
		Clock:      env.clock,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("creating Notion client", "error", err)
		return &process.ExitError{Code: 2}
	}

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	logger.Info("starting Astra Notion init",
		"parent_page", parentPageID,
		"notion_version", client.Version(),
		"databases", len(layout.Databases),
	)

	ids, err := workspace.Bootstrap(ctx, client, parentPageID, layout, logger)
	if err != nil {
		var stepError *workspace.StepError
		if errors.As(err, &stepError) {
			logger.Error("step failed", "step", stepError.Step, "error", stepError.Err)
		} else {
			logger.Error("bootstrap failed", "error", err)
		}
		return &process.ExitError{Code: 1}
	}

	if skipSmoke || layout.Smoke == nil {
		logger.Info("smoke test skipped")
	} else {
		result, err := workspace.RunSmokeTest(ctx, client, ids, layout, workspace.NewSmokeSuffix(), env.clock.Now())
		if err != nil {
			logger.Error("step failed", "step", "smoke test", "error", err)
			return &process.ExitError{Code: 1}
		}
		logger.Info("smoke page inserted",
			"database", result.ParentDatabase,
			"title", result.Title,
			"page_id", result.ParentPageID,
		)
		logger.Info("smoke row inserted and linked",
			"database", result.ChildDatabase,
			"page_id", result.ChildPageID,
			"linked_to", result.ParentPageID,
		)
	}

	attrs := make([]any, 0, 2*len(layout.Databases))
	for _, database := range layout.Databases {
		attrs = append(attrs, database.Title, ids[database.Title])
	}
	logger.Info("setup complete", attrs...)
	return nil
}

func lookupTrimmed(lookup config.LookupFunc, name string) string {
	value, _ := lookup(name)
	return strings.TrimSpace(value)
}
