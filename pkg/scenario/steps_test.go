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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	apperrors "github.com/kata-containers/kataci/pkg/errors"
	"github.com/kata-containers/kataci/pkg/kubectl"
	"github.com/kata-containers/kataci/pkg/lifecycle"
	"github.com/kata-containers/kataci/pkg/retry"
)

// fakePod is a scripted PodResource.
type fakePod struct {
	info    kubectl.PodInfo
	infoErr error
	delErr  error
	deletes int
}

func (f *fakePod) Info(context.Context) (kubectl.PodInfo, error) {
	return f.info, f.infoErr
}

func (f *fakePod) Delete(context.Context) error {
	f.deletes++
	return f.delErr
}

func TestVerifyStep_Passes(t *testing.T) {
	step := &VerifyStep{
		Pod: &fakePod{info: kubectl.PodInfo{
			Phase:        "Running",
			Node:         "worker-1",
			RuntimeClass: "kata-qemu-snp",
		}},
		RuntimeClass: "kata-qemu-snp",
	}

	assert.NoError(t, step.Run(context.Background()))
	assert.Equal(t, "verify-runtime", step.Name())
}

func TestVerifyStep_ClassMismatchIsFatal(t *testing.T) {
	step := &VerifyStep{
		Pod: &fakePod{info: kubectl.PodInfo{
			Phase:        "Running",
			Node:         "worker-1",
			RuntimeClass: "kata-qemu-tdx",
		}},
		RuntimeClass: "kata-qemu-snp",
	}

	err := step.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeVerificationMismatch))
	assert.Contains(t, err.Error(), "kata-qemu-tdx")
	assert.Contains(t, err.Error(), "kata-qemu-snp")
}

func TestVerifyStep_UnscheduledPod(t *testing.T) {
	step := &VerifyStep{
		Pod:          &fakePod{info: kubectl.PodInfo{RuntimeClass: "kata-qemu"}},
		RuntimeClass: "kata-qemu",
	}

	err := step.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeVerificationMismatch))
}

func TestVerifyStep_ReadbackError(t *testing.T) {
	step := &VerifyStep{
		Pod:          &fakePod{infoErr: errors.New("get failed")},
		RuntimeClass: "kata-qemu",
	}

	err := step.Run(context.Background())
	require.Error(t, err)
	assert.False(t, apperrors.IsCode(err, apperrors.ErrCodeVerificationMismatch))
}

func TestCleanupStep_SwallowsErrors(t *testing.T) {
	pod := &fakePod{delErr: errors.New("delete refused")}
	step := &CleanupStep{Pod: pod}

	assert.NoError(t, step.Run(context.Background()))
	assert.Equal(t, 1, pod.deletes)
}

func TestHealthStep_AgainstFakeCluster(t *testing.T) {
	clientset := fake.NewClientset(&corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "worker-1"},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
			},
		},
	})

	step := &HealthStep{
		Clientset: clientset,
		Policy:    retry.Policy{MaxAttempts: 2, Strategy: retry.Exponential},
	}
	assert.NoError(t, step.Run(context.Background()))
	assert.Equal(t, "cluster-health", step.Name())
}

func TestPodLifecycleStep_PropagatesOutcomeError(t *testing.T) {
	// A client that always reports Failed exhausts the lifecycle budget.
	step := &PodLifecycleStep{
		Poller: lifecycle.New(alwaysFailed{}, lifecycle.Config{
			Timeout:     20 * time.Millisecond,
			Interval:    10 * time.Millisecond,
			Attempts:    2,
			CreateRetry: retry.Policy{MaxAttempts: 1, Strategy: retry.Fixed},
		}),
	}

	err := step.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTerminalFailure))
}

type alwaysFailed struct{}

func (alwaysFailed) Create(context.Context) error { return nil }

func (alwaysFailed) State(context.Context) (lifecycle.ObservedState, error) {
	return lifecycle.StateFailed, nil
}

func (alwaysFailed) Delete(context.Context) error { return nil }
