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
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

// appLabel marks pods created by kataci so stray test pods are easy to
// find and sweep.
const appLabel = "kataci"

// PodSpec identifies the test pod and how it should be scheduled.
type PodSpec struct {
	Name         string
	Namespace    string
	RuntimeClass string
	Image        string
}

// manifest builds the typed pod object submitted to the cluster. The
// pod is a minimal long-running workload: a single container with no
// restarts and immediate termination on delete.
func manifest(spec PodSpec) *corev1.Pod {
	return &corev1.Pod{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Pod",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.Name,
			Namespace: spec.Namespace,
			Labels: map[string]string{
				"app.kubernetes.io/name":       appLabel,
				"app.kubernetes.io/managed-by": appLabel,
			},
		},
		Spec: corev1.PodSpec{
			RuntimeClassName:              ptr.To(spec.RuntimeClass),
			RestartPolicy:                 corev1.RestartPolicyNever,
			TerminationGracePeriodSeconds: ptr.To[int64](0),
			Containers: []corev1.Container{
				{
					Name:  "workload",
					Image: spec.Image,
				},
			},
		},
	}
}

// encodeManifest serializes the pod as JSON, which kubectl apply
// accepts on stdin.
func encodeManifest(pod *corev1.Pod) ([]byte, error) {
	raw, err := json.Marshal(pod)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pod manifest: %w", err)
	}
	return raw, nil
}
