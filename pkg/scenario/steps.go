// Copyright (c) 2025, Kata Containers community. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kata-containers/kataci/pkg/defaults"
	apperrors "github.com/kata-containers/kataci/pkg/errors"
	"github.com/kata-containers/kataci/pkg/kube"
	"github.com/kata-containers/kataci/pkg/kubectl"
	"github.com/kata-containers/kataci/pkg/lifecycle"
	"github.com/kata-containers/kataci/pkg/retry"
)

// Step is one verification unit of a scenario. Steps run strictly
// sequentially; a later step may assume the postconditions of every
// earlier one.
type Step interface {
	Name() string
	Run(ctx context.Context) error
}

// PodResource is the subset of the kubectl pod client used by the
// verification and cleanup steps.
type PodResource interface {
	Info(ctx context.Context) (kubectl.PodInfo, error)
	Delete(ctx context.Context) error
}

// HealthStep verifies every cluster node reports Ready, with
// exponential backoff for freshly provisioned clusters.
type HealthStep struct {
	Clientset kube.Interface
	Policy    retry.Policy
}

// Name implements Step.
func (s *HealthStep) Name() string { return "cluster-health" }

// Run implements Step.
func (s *HealthStep) Run(ctx context.Context) error {
	return kube.WaitForHealthy(ctx, s.Clientset, s.Policy)
}

// DaemonSetStep verifies the installer DaemonSet rollout completed.
type DaemonSetStep struct {
	Clientset kube.Interface
	Namespace string
	DaemonSet string
	Interval  time.Duration
	Timeout   time.Duration
}

// Name implements Step.
func (s *DaemonSetStep) Name() string { return "daemonset-ready" }

// Run implements Step.
func (s *DaemonSetStep) Run(ctx context.Context) error {
	return kube.WaitForDaemonSetReady(ctx, s.Clientset, s.Namespace, s.DaemonSet, s.Interval, s.Timeout)
}

// RuntimeClassStep verifies the expected RuntimeClasses are installed.
type RuntimeClassStep struct {
	Clientset kube.Interface
	Names     []string
}

// Name implements Step.
func (s *RuntimeClassStep) Name() string { return "runtime-classes" }

// Run implements Step.
func (s *RuntimeClassStep) Run(ctx context.Context) error {
	return kube.VerifyRuntimeClasses(ctx, s.Clientset, s.Names)
}

// PodLifecycleStep drives the smoke-test pod through the lifecycle
// poller until it is Ready or the retry budget is exhausted.
type PodLifecycleStep struct {
	Poller *lifecycle.Poller
}

// Name implements Step.
func (s *PodLifecycleStep) Name() string { return "pod-lifecycle" }

// Run implements Step.
func (s *PodLifecycleStep) Run(ctx context.Context) error {
	outcome, err := s.Poller.Run(ctx)
	slog.Info("pod lifecycle finished",
		slog.String("state", string(outcome.State)),
		slog.Int("cycles", outcome.Cycles),
		slog.Int("polls", outcome.Polls),
		slog.Duration("elapsed", outcome.Elapsed))
	return err
}

// VerifyStep compares the running pod's runtime class and placement
// against expectations. A mismatch is fatal to the scenario; it is
// never retried.
type VerifyStep struct {
	Pod          PodResource
	RuntimeClass string
}

// Name implements Step.
func (s *VerifyStep) Name() string { return "verify-runtime" }

// Run implements Step.
func (s *VerifyStep) Run(ctx context.Context) error {
	info, err := s.Pod.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pod back: %w", err)
	}

	if info.RuntimeClass != s.RuntimeClass {
		return apperrors.NewWithContext(apperrors.ErrCodeVerificationMismatch,
			fmt.Sprintf("pod runs under runtime class %q, expected %q", info.RuntimeClass, s.RuntimeClass),
			map[string]any{"expected": s.RuntimeClass, "actual": info.RuntimeClass})
	}
	if info.Node == "" {
		return apperrors.New(apperrors.ErrCodeVerificationMismatch,
			"pod is not scheduled to any node")
	}

	slog.Info("runtime verification passed",
		slog.String("runtimeClass", info.RuntimeClass),
		slog.String("node", info.Node),
		slog.String("phase", info.Phase))
	return nil
}

// CleanupStep deletes the smoke-test pod. Cleanup is best effort and
// never fails the scenario.
type CleanupStep struct {
	Pod PodResource
}

// Name implements Step.
func (s *CleanupStep) Name() string { return "cleanup" }

// Run implements Step.
func (s *CleanupStep) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.CleanupTimeout)
	defer cancel()

	if err := s.Pod.Delete(ctx); err != nil {
		slog.Debug("cleanup delete failed", slog.Any("error", err))
	}
	return nil
}
