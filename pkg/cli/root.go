/*
Copyright © 2025 Kata Containers community
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/kata-containers/kataci/pkg/logging"
)

const (
	name           = "kataci"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	logLevel string
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "CI verifier for kata-deploy installations",
		Description: `kataci verifies that a kata-deploy installation left the cluster in a
usable state: the installer DaemonSet rolled out, the expected
RuntimeClasses exist, and a pod actually runs under one of them.

check - verify cluster health, installer rollout and runtime classes
smoke - run a test pod under a runtime class and verify its placement
run   - the full scenario: check followed by smoke

Each command emits a tests_passed=true|false key to the CI status
channel (GITHUB_OUTPUT or --status-file) and exits non-zero on failure.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("LOG_LEVEL"),
				Value:       "info",
				Destination: &logLevel,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogger()
			return ctx, nil
		},
		Commands: []*cli.Command{
			checkCmd(),
			smokeCmd(),
			runCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main.main() exactly once.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger() {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
}
