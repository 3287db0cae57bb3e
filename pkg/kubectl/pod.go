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

package kubectl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"

	apperrors "github.com/kata-containers/kataci/pkg/errors"
	"github.com/kata-containers/kataci/pkg/executor"
	"github.com/kata-containers/kataci/pkg/lifecycle"
)

// defaultBinary is the cluster-management command invoked by PodClient.
const defaultBinary = "kubectl"

// PodClient manages the test pod through kubectl. It implements
// lifecycle.ResourceClient; all cluster I/O goes through the injected
// Executor.
type PodClient struct {
	exec   executor.Executor
	binary string
	spec   PodSpec
}

// NewPodClient creates a PodClient for the given pod spec.
func NewPodClient(exec executor.Executor, spec PodSpec) *PodClient {
	return &PodClient{
		exec:   exec,
		binary: defaultBinary,
		spec:   spec,
	}
}

// Spec returns the pod spec this client manages.
func (c *PodClient) Spec() PodSpec {
	return c.spec
}

// Create submits the pod manifest via kubectl apply. Repeating the call
// is safe: apply is declarative and the pod name is unique per run.
func (c *PodClient) Create(ctx context.Context) error {
	raw, err := encodeManifest(manifest(c.spec))
	if err != nil {
		return err
	}

	res, err := c.exec.RunInput(ctx, bytes.NewReader(raw), c.binary, "apply", "-f", "-")
	if err != nil {
		return fmt.Errorf("failed to invoke %s apply: %w", c.binary, err)
	}
	if !res.Success() {
		return apperrors.New(apperrors.ErrCodeCreationFailed,
			fmt.Sprintf("%s apply failed: %s", c.binary, res.TrimmedOutput()))
	}
	return nil
}

// State queries the pod phase and maps it to an ObservedState. A pod
// that does not exist yields NotFound with no error; query failures are
// returned so the poller can treat them as Unknown.
func (c *PodClient) State(ctx context.Context) (lifecycle.ObservedState, error) {
	res, err := c.exec.Run(ctx, c.binary,
		"get", "pod", c.spec.Name,
		"-n", c.spec.Namespace,
		"-o", "jsonpath={.status.phase}")
	if err != nil {
		return lifecycle.StateUnknown, err
	}
	if !res.Success() {
		if isNotFoundOutput(res.Output) {
			return lifecycle.StateNotFound, nil
		}
		return lifecycle.StateUnknown, fmt.Errorf("%s get pod failed: %s", c.binary, res.TrimmedOutput())
	}
	return parsePhase(res.Output), nil
}

// Delete removes the pod, tolerating it being already gone.
func (c *PodClient) Delete(ctx context.Context) error {
	res, err := c.exec.Run(ctx, c.binary,
		"delete", "pod", c.spec.Name,
		"-n", c.spec.Namespace,
		"--ignore-not-found")
	if err != nil {
		return fmt.Errorf("failed to invoke %s delete: %w", c.binary, err)
	}
	if !res.Success() {
		return fmt.Errorf("%s delete failed: %s", c.binary, res.TrimmedOutput())
	}
	return nil
}

// PodInfo reports where the pod landed and under which runtime class.
type PodInfo struct {
	Phase        string
	Node         string
	RuntimeClass string
}

// Info reads the pod back and extracts the fields the verification step
// compares: phase, node and runtime class.
func (c *PodClient) Info(ctx context.Context) (PodInfo, error) {
	res, err := c.exec.Run(ctx, c.binary,
		"get", "pod", c.spec.Name,
		"-n", c.spec.Namespace,
		"-o", "json")
	if err != nil {
		return PodInfo{}, fmt.Errorf("failed to invoke %s get: %w", c.binary, err)
	}
	if !res.Success() {
		return PodInfo{}, fmt.Errorf("%s get pod failed: %s", c.binary, res.TrimmedOutput())
	}

	var pod corev1.Pod
	if err := json.Unmarshal([]byte(res.Output), &pod); err != nil {
		return PodInfo{}, fmt.Errorf("failed to decode pod %s/%s: %w", c.spec.Namespace, c.spec.Name, err)
	}

	info := PodInfo{
		Phase: string(pod.Status.Phase),
		Node:  pod.Spec.NodeName,
	}
	if pod.Spec.RuntimeClassName != nil {
		info.RuntimeClass = *pod.Spec.RuntimeClassName
	}
	return info, nil
}

// Describe returns the human-readable pod description for triage.
func (c *PodClient) Describe(ctx context.Context) (string, error) {
	res, err := c.exec.Run(ctx, c.binary,
		"describe", "pod", c.spec.Name,
		"-n", c.spec.Namespace)
	if err != nil {
		return "", fmt.Errorf("failed to invoke %s describe: %w", c.binary, err)
	}
	return res.Output, nil
}

// parsePhase maps the textual pod phase to an ObservedState. All phase
// text parsing lives here; nothing else interprets kubectl output.
func parsePhase(output string) lifecycle.ObservedState {
	switch strings.TrimSpace(output) {
	case "Pending":
		return lifecycle.StatePending
	case "Running":
		return lifecycle.StateRunning
	case "Succeeded":
		return lifecycle.StateSucceeded
	case "Failed":
		return lifecycle.StateFailed
	case "":
		return lifecycle.StateNotFound
	default:
		return lifecycle.StateUnknown
	}
}

// isNotFoundOutput detects kubectl's not-found error text.
func isNotFoundOutput(output string) bool {
	return strings.Contains(output, "NotFound") || strings.Contains(output, "not found")
}
