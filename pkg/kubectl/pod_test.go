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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kata-containers/kataci/pkg/executor"
	"github.com/kata-containers/kataci/pkg/lifecycle"
)

func testSpec() PodSpec {
	return PodSpec{
		Name:         "kataci-smoke-abc123",
		Namespace:    "default",
		RuntimeClass: "kata-qemu",
		Image:        "registry.k8s.io/pause:3.10",
	}
}

func TestPodClient_Create(t *testing.T) {
	ctx := context.Background()
	script := executor.NewScript(executor.Result{Output: "pod/kataci-smoke-abc123 created"})
	client := NewPodClient(script, testSpec())

	require.NoError(t, client.Create(ctx))

	calls := script.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "kubectl apply -f -", calls[0])
	assert.Contains(t, script.Stdin(0), `"runtimeClassName":"kata-qemu"`)
	assert.Contains(t, script.Stdin(0), `"name":"kataci-smoke-abc123"`)
}

func TestPodClient_CreateFailure(t *testing.T) {
	ctx := context.Background()
	script := executor.NewScript(executor.Result{
		Output:   "Error from server (Forbidden): pods is forbidden",
		ExitCode: 1,
	})
	client := NewPodClient(script, testSpec())

	err := client.Create(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Forbidden")
}

func TestPodClient_State(t *testing.T) {
	tests := []struct {
		name   string
		result executor.Result
		want   lifecycle.ObservedState
	}{
		{"running", executor.Result{Output: "Running"}, lifecycle.StateRunning},
		{"pending", executor.Result{Output: "Pending\n"}, lifecycle.StatePending},
		{"succeeded", executor.Result{Output: "Succeeded"}, lifecycle.StateSucceeded},
		{"failed", executor.Result{Output: "Failed"}, lifecycle.StateFailed},
		{"empty phase", executor.Result{Output: ""}, lifecycle.StateNotFound},
		{
			"not found",
			executor.Result{Output: `Error from server (NotFound): pods "kataci-smoke-abc123" not found`, ExitCode: 1},
			lifecycle.StateNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			script := executor.NewScript(tc.result)
			client := NewPodClient(script, testSpec())

			state, err := client.State(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, state)
		})
	}
}

func TestPodClient_StateQueryError(t *testing.T) {
	script := executor.NewScript(executor.Result{
		Output:   "Unable to connect to the server: dial tcp: i/o timeout",
		ExitCode: 1,
	})
	client := NewPodClient(script, testSpec())

	state, err := client.State(context.Background())
	require.Error(t, err)
	assert.Equal(t, lifecycle.StateUnknown, state)
}

func TestPodClient_StateIdempotent(t *testing.T) {
	// Repeated polls with no intervening mutation return the same state.
	script := executor.NewScript(executor.Result{Output: "Running"})
	client := NewPodClient(script, testSpec())

	for i := 0; i < 3; i++ {
		state, err := client.State(context.Background())
		require.NoError(t, err)
		assert.Equal(t, lifecycle.StateRunning, state)
	}
	assert.Equal(t, 3, script.CallCount())
}

func TestPodClient_Delete(t *testing.T) {
	script := executor.NewScript(executor.Result{Output: ""})
	client := NewPodClient(script, testSpec())

	require.NoError(t, client.Delete(context.Background()))

	calls := script.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "kubectl delete pod kataci-smoke-abc123 -n default --ignore-not-found", calls[0])
}

func TestPodClient_Info(t *testing.T) {
	podJSON := `{
		"apiVersion": "v1",
		"kind": "Pod",
		"metadata": {"name": "kataci-smoke-abc123", "namespace": "default"},
		"spec": {
			"nodeName": "worker-1",
			"runtimeClassName": "kata-qemu-snp",
			"containers": [{"name": "workload", "image": "registry.k8s.io/pause:3.10"}]
		},
		"status": {"phase": "Running"}
	}`
	script := executor.NewScript(executor.Result{Output: podJSON})
	client := NewPodClient(script, testSpec())

	info, err := client.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Running", info.Phase)
	assert.Equal(t, "worker-1", info.Node)
	assert.Equal(t, "kata-qemu-snp", info.RuntimeClass)
}

func TestPodClient_InfoDecodeError(t *testing.T) {
	script := executor.NewScript(executor.Result{Output: "not json"})
	client := NewPodClient(script, testSpec())

	_, err := client.Info(context.Background())
	assert.Error(t, err)
}

func TestPodClient_Diagnostics(t *testing.T) {
	script := executor.NewScript(
		executor.Result{Output: "Name: kataci-smoke-abc123"},
		executor.Result{Output: "Name: kataci-smoke-abc123"},
		executor.Result{Output: "Name: kataci-smoke-abc123"},
	)
	client := NewPodClient(script, testSpec())

	out := client.Diagnostics(context.Background())
	assert.Contains(t, out, "describe pod default/kataci-smoke-abc123")
	assert.Contains(t, out, "=== events ===")
	assert.Contains(t, out, "=== logs (last 50 lines) ===")
	assert.Equal(t, 3, script.CallCount())
}
