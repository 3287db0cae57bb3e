/*
Copyright © 2025 Kata Containers community
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"github.com/urfave/cli/v3"

	"github.com/kata-containers/kataci/pkg/scenario"
)

// Flags shared across commands. Every value can also come from the
// scenario config file; flags win when set.
var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Scenario config file (YAML)",
		Sources: cli.EnvVars("KATACI_CONFIG"),
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to kubeconfig (default: $KUBECONFIG, ~/.kube/config, in-cluster)",
		Sources: cli.EnvVars("KATACI_KUBECONFIG"),
	}

	namespaceFlag = &cli.StringFlag{
		Name:    "namespace",
		Aliases: []string{"n"},
		Usage:   "Namespace for the test pod",
		Sources: cli.EnvVars("KATACI_NAMESPACE"),
	}

	runtimeClassFlag = &cli.StringFlag{
		Name:    "runtime-class",
		Usage:   "RuntimeClass the test pod requests",
		Sources: cli.EnvVars("KATACI_RUNTIME_CLASS"),
	}

	runtimeClassesFlag = &cli.StringSliceFlag{
		Name:  "expect-runtime-class",
		Usage: "RuntimeClass expected to be installed (can be repeated)",
	}

	imageFlag = &cli.StringFlag{
		Name:    "image",
		Usage:   "Container image for the test pod",
		Sources: cli.EnvVars("KATACI_IMAGE"),
	}

	daemonSetFlag = &cli.StringFlag{
		Name:  "daemonset",
		Usage: "Name of the installer DaemonSet to wait for",
	}

	daemonSetNamespaceFlag = &cli.StringFlag{
		Name:  "daemonset-namespace",
		Usage: "Namespace of the installer DaemonSet",
	}

	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Wait budget for the test pod per attempt",
	}

	intervalFlag = &cli.DurationFlag{
		Name:  "interval",
		Usage: "Delay between pod state queries",
	}

	attemptsFlag = &cli.IntFlag{
		Name:  "attempts",
		Usage: "Create-wait-delete cycles before giving up",
	}

	statusFileFlag = &cli.StringFlag{
		Name:    "status-file",
		Usage:   "File receiving CI status keys (default: $GITHUB_OUTPUT, stdout)",
		Sources: cli.EnvVars("KATACI_STATUS_FILE"),
	}
)

// scenarioConfig loads the optional config file and overlays any flags
// the user set on this command.
func scenarioConfig(cmd *cli.Command) (*scenario.Config, error) {
	cfg, err := scenario.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("namespace") {
		cfg.Namespace = cmd.String("namespace")
	}
	if cmd.IsSet("runtime-class") {
		cfg.RuntimeClass = cmd.String("runtime-class")
	}
	if cmd.IsSet("expect-runtime-class") {
		cfg.RuntimeClasses = cmd.StringSlice("expect-runtime-class")
	}
	if cmd.IsSet("image") {
		cfg.Image = cmd.String("image")
	}
	if cmd.IsSet("daemonset") {
		cfg.DaemonSetName = cmd.String("daemonset")
	}
	if cmd.IsSet("daemonset-namespace") {
		cfg.DaemonSetNamespace = cmd.String("daemonset-namespace")
	}
	if cmd.IsSet("timeout") {
		cfg.PodTimeout = scenario.Duration(cmd.Duration("timeout"))
	}
	if cmd.IsSet("interval") {
		cfg.PollInterval = scenario.Duration(cmd.Duration("interval"))
	}
	if cmd.IsSet("attempts") {
		cfg.Attempts = cmd.Int("attempts")
	}
	if cmd.IsSet("status-file") {
		cfg.StatusFile = cmd.String("status-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
