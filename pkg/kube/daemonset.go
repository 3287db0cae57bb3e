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
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"

	apperrors "github.com/kata-containers/kataci/pkg/errors"
)

// WaitForDaemonSetReady polls until the DaemonSet reports every
// scheduled pod ready, or the timeout expires. A DaemonSet that does
// not exist yet is treated as non-terminal: the installer may still be
// creating it.
func WaitForDaemonSetReady(ctx context.Context, clientset Interface, namespace, name string, interval, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true,
		func(ctx context.Context) (bool, error) {
			ds, err := clientset.AppsV1().DaemonSets(namespace).Get(ctx, name, metav1.GetOptions{})
			if apierrors.IsNotFound(err) {
				return false, nil
			}
			if err != nil {
				// Transient API failure: keep polling.
				slog.Debug("daemonset query failed", slog.Any("error", err))
				return false, nil
			}

			desired := ds.Status.DesiredNumberScheduled
			ready := ds.Status.NumberReady
			slog.Debug("daemonset rollout",
				slog.String("daemonset", namespace+"/"+name),
				slog.Int64("desired", int64(desired)),
				slog.Int64("ready", int64(ready)))

			if desired == 0 {
				// Not scheduled anywhere yet (or no eligible nodes).
				return false, nil
			}
			return ready == desired, nil
		})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodePollTimeout,
			fmt.Sprintf("daemonset %s/%s did not become ready within %v", namespace, name, timeout), err)
	}
	return nil
}
