// Package cli implements the command-line interface for the kataci CI verifier.
//
// # Overview
//
// The kataci CLI verifies that a kata-deploy installation left the cluster in
// a usable state. It is designed to run as a CI job step after the kata-deploy
// Helm chart installs: the commands exit non-zero on failure and emit a
// tests_passed=true|false key to the CI status channel.
//
// # Commands
//
// check - verify cluster readiness:
//
//	kataci check [--daemonset NAME] [--expect-runtime-class CLASS ...]
//
// Verifies every node reports Ready, the installer DaemonSet rollout
// completed, and the expected RuntimeClasses are installed.
//
// smoke - run a test pod under a runtime class:
//
//	kataci smoke [--runtime-class CLASS] [--timeout 5m] [--interval 10s] [--attempts 5]
//
// Creates a uniquely named pod requesting the RuntimeClass, polls until it
// reaches Running or Succeeded, then verifies the pod actually runs under the
// class on a real node. A pod that reports Failed aborts the wait and the
// whole create-wait-delete cycle is retried. The pod is always deleted.
//
// run - the full scenario:
//
//	kataci run [--config FILE]
//
// Runs check's steps followed by smoke's steps as one scenario with a single
// verdict.
//
// # Configuration
//
// Scenario parameters come from an optional YAML config file (--config)
// overlaid with flags; flags win. Most flags also read KATACI_* environment
// variables.
//
// # CI Status Channel
//
// Each command appends key=value lines to $GITHUB_OUTPUT (or --status-file):
//
//	scenario=smoke
//	tests_passed=true
//
// When neither is set the keys go to stdout.
//
// # Exit Codes
//
//	0  All verification steps passed
//	1  A step failed, or invalid arguments
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/scenario - step sequencing and config
//   - pkg/lifecycle - pod create-wait-delete polling
//   - pkg/kubectl - pod management through the kubectl binary
//   - pkg/kube - direct API checks (nodes, DaemonSets, RuntimeClasses)
//   - pkg/ci - the CI status side-channel
//   - pkg/logging - structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/kata-containers/kataci/pkg/cli.version=1.0.0'"
package cli
