/*
Copyright © 2025 Kata Containers community
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/kata-containers/kataci/pkg/ci"
	"github.com/kata-containers/kataci/pkg/defaults"
	"github.com/kata-containers/kataci/pkg/executor"
	"github.com/kata-containers/kataci/pkg/kubectl"
	"github.com/kata-containers/kataci/pkg/lifecycle"
	"github.com/kata-containers/kataci/pkg/retry"
	"github.com/kata-containers/kataci/pkg/scenario"
)

func smokeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "smoke",
		EnableShellCompletion: true,
		Usage:                 "Run a test pod under a runtime class and verify its placement",
		Description: `Run a uniquely named test pod under the configured RuntimeClass and
wait for it to reach Running or Succeeded. The wait loop polls the pod
state at a fixed interval; a pod that reports Failed aborts the wait
immediately and the whole create-wait-delete cycle is retried, up to
--attempts times. On success the pod is read back and its runtime class
and node placement are verified before cleanup.

On failure the pod description, namespace events and recent logs are
dumped for triage. The pod is always deleted, pass or fail.

# Examples

Smoke test with defaults (kata-qemu, pause image, default namespace):
  kataci smoke

Smoke test a confidential runtime class with a tighter budget:
  kataci smoke --runtime-class kata-qemu-snp --timeout 2m --interval 5s`,
		Flags: []cli.Flag{
			configFlag,
			namespaceFlag,
			runtimeClassFlag,
			imageFlag,
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

			pod := newSmokePod(cfg)
			d := &scenario.Driver{
				Name:        "smoke",
				Steps:       smokeSteps(pod, cfg),
				Finally:     []scenario.Step{&scenario.CleanupStep{Pod: pod}},
				Signal:      ci.NewWriter(cfg.StatusFile),
				Diagnostics: pod.Diagnostics,
			}
			return d.Run(ctx)
		},
	}
}

// newSmokePod builds a kubectl client for a uniquely named test pod.
// The unique name makes retried applies safe and keeps concurrent CI
// jobs from colliding.
func newSmokePod(cfg *scenario.Config) *kubectl.PodClient {
	return kubectl.NewPodClient(executor.NewCLI(), kubectl.PodSpec{
		Name:         fmt.Sprintf("kataci-smoke-%s", uuid.NewString()[:8]),
		Namespace:    cfg.Namespace,
		RuntimeClass: cfg.RuntimeClass,
		Image:        cfg.Image,
	})
}

// smokeSteps builds the pod lifecycle and verification steps shared by
// smoke and run. The poller keeps the pod on success so the verify step
// can read it back; the caller's Finally cleanup removes it.
func smokeSteps(pod *kubectl.PodClient, cfg *scenario.Config) []scenario.Step {
	poller := lifecycle.New(pod, lifecycle.Config{
		Timeout:    cfg.PodTimeout.Std(),
		Interval:   cfg.PollInterval.Std(),
		Attempts:   cfg.Attempts,
		CycleDelay: defaults.LifecycleRetryDelay,
		CreateRetry: retry.Policy{
			MaxAttempts: defaults.CreateAttempts,
			Strategy:    retry.Fixed,
			BaseDelay:   defaults.CreateRetryDelay,
		},
		KeepOnSuccess: true,
	})

	return []scenario.Step{
		&scenario.PodLifecycleStep{Poller: poller},
		&scenario.VerifyStep{Pod: pod, RuntimeClass: cfg.RuntimeClass},
	}
}
