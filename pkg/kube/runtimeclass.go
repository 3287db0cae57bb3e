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
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	apperrors "github.com/kata-containers/kataci/pkg/errors"
)

// VerifyRuntimeClasses checks that every expected RuntimeClass exists
// in the cluster. Missing classes are reported together so the operator
// sees the full gap in one pass.
func VerifyRuntimeClasses(ctx context.Context, clientset Interface, names []string) error {
	var missing []string

	for _, name := range names {
		rc, err := clientset.NodeV1().RuntimeClasses().Get(ctx, name, metav1.GetOptions{})
		if apierrors.IsNotFound(err) {
			missing = append(missing, name)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to get runtime class %q: %w", name, err)
		}
		slog.Debug("runtime class present",
			slog.String("name", rc.Name),
			slog.String("handler", rc.Handler))
	}

	if len(missing) > 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			fmt.Sprintf("runtime classes not installed: %s", strings.Join(missing, ", ")),
			map[string]any{"missing": missing})
	}
	return nil
}
