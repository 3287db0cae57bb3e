/*
Copyright © 2025 Kata Containers community
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/kata-containers/kataci/pkg/ci"
	"github.com/kata-containers/kataci/pkg/defaults"
	"github.com/kata-containers/kataci/pkg/kube"
	"github.com/kata-containers/kataci/pkg/retry"
	"github.com/kata-containers/kataci/pkg/scenario"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Verify cluster health, installer rollout and runtime classes",
		Description: `Verify the cluster is ready for kata workloads:
  - every node reports Ready
  - the kata-deploy DaemonSet rollout completed
  - the expected RuntimeClasses are installed

# Examples

Check with defaults (kata-deploy in kube-system, kata-qemu class):
  kataci check

Check a different installer DaemonSet and extra runtime classes:
  kataci check --daemonset kata-deploy --daemonset-namespace kata-system \
    --expect-runtime-class kata-qemu \
    --expect-runtime-class kata-qemu-snp`,
		Flags: []cli.Flag{
			configFlag,
			kubeconfigFlag,
			runtimeClassFlag,
			runtimeClassesFlag,
			daemonSetFlag,
			daemonSetNamespaceFlag,
			statusFileFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := scenarioConfig(cmd)
			if err != nil {
				return err
			}

			client, err := kube.BuildClient(cmd.String("kubeconfig"))
			if err != nil {
				return err
			}

			d := &scenario.Driver{
				Name:   "check",
				Steps:  checkSteps(client, cfg),
				Signal: ci.NewWriter(cfg.StatusFile),
			}
			return d.Run(ctx)
		},
	}
}

// checkSteps builds the cluster verification steps shared by check and
// run.
func checkSteps(client kube.Interface, cfg *scenario.Config) []scenario.Step {
	return []scenario.Step{
		&scenario.HealthStep{
			Clientset: client,
			Policy: retry.Policy{
				MaxAttempts: defaults.HealthAttempts,
				Strategy:    retry.Exponential,
				BaseDelay:   defaults.HealthBaseDelay,
			},
		},
		&scenario.DaemonSetStep{
			Clientset: client,
			Namespace: cfg.DaemonSetNamespace,
			DaemonSet: cfg.DaemonSetName,
			Interval:  defaults.DaemonSetInterval,
			Timeout:   defaults.DaemonSetTimeout,
		},
		&scenario.RuntimeClassStep{
			Clientset: client,
			Names:     cfg.RuntimeClasses,
		},
	}
}
