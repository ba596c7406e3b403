// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/astra/lib/clock"
	"github.com/bureau-foundation/astra/lib/config"
	"github.com/bureau-foundation/astra/lib/github"
	"github.com/bureau-foundation/astra/lib/process"
	"github.com/bureau-foundation/astra/lib/sealed"
	"github.com/bureau-foundation/astra/lib/secret"
	"github.com/bureau-foundation/astra/lib/version"
)

// secretNames are the repository secrets the validator workflow reads,
// in upload order.
var secretNames = []string{
	"NOTION_TOKEN",
	"LINKCHECK_DB_ID",
	"RADAR_DB_ID",
	"PROJECT_TRACKER_DB_ID",
}

// runTimeout bounds the whole run, retries included.
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
	})
	stop()
	process.Exit(err)
}

func run(ctx context.Context, args []string, env environment) error {
	var (
		configPath  string
		verbose     bool
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("astra-secrets-dispatch", pflag.ContinueOnError)
	flagSet.SetOutput(env.stderr)
	flagSet.StringVar(&configPath, "config", "", "YAML configuration file (default: $ASTRA_CONFIG)")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every API request")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &process.ExitError{Code: 2, Err: err}
	}
	if showVersion {
		version.Print(env.stdout, "astra-secrets-dispatch")
		return nil
	}

	token, _ := env.lookup("GITHUB_TOKEN")
	token = strings.TrimSpace(token)
	if token == "" {
		return process.Exitf(1, "GITHUB_TOKEN environment variable is required")
	}

	cfg, err := config.Load(env.lookup, configPath)
	if err != nil {
		return process.Exitf(1, "loading configuration: %w", err)
	}
	repo, err := github.ParseRepository(cfg.GitHub.Repository)
	if err != nil {
		return process.Exitf(1, "%w", err)
	}

	secrets, missing, err := secret.CollectEnv(secret.LookupFunc(env.lookup), secretNames)
	if err != nil {
		return fmt.Errorf("reading secrets from the environment: %w", err)
	}
	defer secrets.Close()

	if secrets.Len() == 0 {
		fmt.Fprintln(env.stderr, "Warning: no secrets provided via environment variables")
		fmt.Fprintf(env.stdout, "Expected: %s\n", strings.Join(secretNames, ", "))
		return &process.ExitError{Code: 1}
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(env.stderr, &slog.HandlerOptions{Level: level}))

	client, err := github.NewClient(github.Config{
		BaseURL:    cfg.GitHub.BaseURL,
		Token:      token,
		HTTPClient: env.httpClient,
		Policy:     cfg.Retry,
		Clock:      env.clock,
		Logger:     logger,
	})
	if err != nil {
		return process.Exitf(1, "%w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	fmt.Fprintf(env.stdout, "Upserting %d secret(s) to %s\n", secrets.Len(), repo)
	if len(missing) > 0 {
		fmt.Fprintf(env.stdout, "Not set, skipping: %s\n", strings.Join(missing, ", "))
	}

	names := secrets.Names()
	if err := upload(ctx, client, repo, secrets, env.stdout); err != nil {
		return err
	}

	if !verify(ctx, client, repo, names, env.stdout, env.stderr) {
		fmt.Fprintln(env.stderr, "\nSome secrets could not be verified")
		return &process.ExitError{Code: 1}
	}

	if value, _ := env.lookup("NO_DISPATCH"); value != "" {
		fmt.Fprintln(env.stdout, "\nSkipping workflow dispatch (NO_DISPATCH is set)")
	} else {
		fmt.Fprintln(env.stdout, "\nDispatching Quiet Link Validator workflow...")
		err := client.DispatchWorkflow(ctx, repo, cfg.GitHub.Workflow, github.DispatchWorkflowRequest{Ref: cfg.GitHub.Ref})
		if err != nil {
			return err
		}
		fmt.Fprintf(env.stdout, "✓ Workflow '%s' dispatched on ref '%s'\n", cfg.GitHub.Workflow, cfg.GitHub.Ref)
	}

	fmt.Fprintln(env.stdout, "\nAll operations completed successfully.")
	return nil
}

// upload seals every secret to the repository key and stores it. The
// plaintext buffers are released once all uploads are done.
func upload(ctx context.Context, client *github.Client, repo github.Repository, secrets *secret.Set, stdout io.Writer) error {
	fmt.Fprintln(stdout, "\nFetching repository public key...")
	key, err := client.GetRepoPublicKey(ctx, repo)
	if err != nil {
		return err
	}
	publicKey, err := sealed.ParsePublicKey(key.Key)
	if err != nil {
		return fmt.Errorf("repository public key %s: %w", key.KeyID, err)
	}
	fmt.Fprintf(stdout, "✓ Public key retrieved (ID: %s)\n", key.KeyID)

	fmt.Fprintln(stdout, "\nEncrypting and upserting secrets...")
	for _, entry := range secrets.Entries() {
		ciphertext, err := publicKey.Seal(entry.Value.Bytes())
		if err != nil {
			return fmt.Errorf("encrypting %s: %w", entry.Name, err)
		}
		created, err := client.CreateOrUpdateRepoSecret(ctx, repo, entry.Name, github.EncryptedSecret{
			EncryptedValue: ciphertext,
			KeyID:          key.KeyID,
		})
		if err != nil {
			return err
		}
		action := "updated"
		if created {
			action = "created"
		}
		fmt.Fprintf(stdout, "✓ Secret '%s' %s\n", entry.Name, action)
	}
	return secrets.Close()
}

// verify reads every named secret back. It checks all of them before
// reporting, and returns false if any is missing.
func verify(ctx context.Context, client *github.Client, repo github.Repository, names []string, stdout, stderr io.Writer) bool {
	fmt.Fprintln(stdout, "\nVerifying secrets...")
	verified := true
	for _, name := range names {
		if _, err := client.GetRepoSecret(ctx, repo, name); err != nil {
			if github.IsNotFound(err) {
				fmt.Fprintf(stderr, "✗ Secret '%s' not found\n", name)
			} else {
				fmt.Fprintf(stderr, "✗ Secret '%s' could not be verified: %v\n", name, err)
			}
			verified = false
			continue
		}
		fmt.Fprintf(stdout, "✓ Secret '%s' verified\n", name)
	}
	return verified
}
