/*
Copyright © 2025 Kata Containers community
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/kata-containers/kataci/pkg/ci"
	"github.com/kata-containers/kataci/pkg/kube"
	"github.com/kata-containers/kataci/pkg/scenario"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:                  "run",
		EnableShellCompletion: true,
		Usage:                 "Run the full verification scenario: check followed by smoke",
		Description: `Run every verification step in order:
  1. cluster-health   - every node reports Ready
  2. daemonset-ready  - the kata-deploy DaemonSet rollout completed
  3. runtime-classes  - the expected RuntimeClasses are installed
  4. pod-lifecycle    - a test pod reaches Running under the class
  5. verify-runtime   - the pod actually runs under the class

Steps run strictly sequentially and the first failure stops the
scenario. A single tests_passed key is emitted for the whole run.

# Examples

Full scenario with a config file:
  kataci run --config ci/kata-scenario.yaml

Full scenario against an SNP-capable cluster:
  kataci run --runtime-class kata-qemu-snp --namespace kata-test`,
		Flags: []cli.Flag{
			configFlag,
			kubeconfigFlag,
			namespaceFlag,
			runtimeClassFlag,
			runtimeClassesFlag,
			imageFlag,
			daemonSetFlag,
			daemonSetNamespaceFlag,
			timeoutFlag,
			intervalFlag,
			attemptsFlag,
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

			pod := newSmokePod(cfg)
			steps := append(checkSteps(client, cfg), smokeSteps(pod, cfg)...)

			d := &scenario.Driver{
				Name:        "kata-deploy-ci",
				Steps:       steps,
				Finally:     []scenario.Step{&scenario.CleanupStep{Pod: pod}},
				Signal:      ci.NewWriter(cfg.StatusFile),
				Diagnostics: pod.Diagnostics,
			}
			return d.Run(ctx)
		},
	}
}
