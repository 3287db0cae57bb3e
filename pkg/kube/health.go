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

package kube

import (
	"context"
	"fmt"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apperrors "github.com/kata-containers/kataci/pkg/errors"
	"github.com/kata-containers/kataci/pkg/retry"
)

// NodesReady checks that the cluster has at least one node and every
// node reports the Ready condition true.
func NodesReady(ctx context.Context, clientset Interface) error {
	nodes, err := clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list nodes: %w", err)
	}
	if len(nodes.Items) == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "cluster reports no nodes")
	}

	for i := range nodes.Items {
		node := &nodes.Items[i]
		if !nodeReady(node) {
			return apperrors.NewWithContext(apperrors.ErrCodeTimeout,
				fmt.Sprintf("node %s is not ready", node.Name),
				map[string]any{"node": node.Name})
		}
	}

	slog.Debug("all nodes ready", slog.Int("count", len(nodes.Items)))
	return nil
}

func nodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

// WaitForHealthy retries NodesReady under the given policy. Cluster
// health checks use the exponential backoff variant: a freshly created
// cluster often needs increasingly long grace periods.
func WaitForHealthy(ctx context.Context, clientset Interface, policy retry.Policy) error {
	return retry.Do(ctx, policy, func(ctx context.Context) error {
		return NodesReady(ctx, clientset)
	})
}
