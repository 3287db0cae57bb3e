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

package defaults

import "time"

// Pod lifecycle polling budgets.
const (
	// PollInterval is the delay between pod state queries.
	PollInterval = 10 * time.Second

	// PodTimeout is the wait budget for a pod to reach a terminal state
	// within a single lifecycle cycle (30 polls at PollInterval).
	PodTimeout = 5 * time.Minute

	// LifecycleAttempts is the number of full create+poll+delete cycles
	// attempted before the lifecycle is reported failed.
	LifecycleAttempts = 5

	// LifecycleRetryDelay is the fixed delay between lifecycle cycles.
	LifecycleRetryDelay = 10 * time.Second
)

// Transient retry policies for individual external operations.
const (
	// CreateAttempts is the retry budget for the pod create call.
	CreateAttempts = 3

	// CreateRetryDelay is the fixed delay between create attempts.
	CreateRetryDelay = 5 * time.Second

	// HealthAttempts is the retry budget for cluster health checks.
	HealthAttempts = 5

	// HealthBaseDelay is the initial delay for the exponential backoff
	// used by cluster health checks.
	HealthBaseDelay = 2 * time.Second
)

// DaemonSet rollout verification budgets.
const (
	// DaemonSetTimeout is the wait budget for the kata-deploy DaemonSet
	// to report all scheduled pods ready.
	DaemonSetTimeout = 10 * time.Minute

	// DaemonSetInterval is the delay between DaemonSet status queries.
	DaemonSetInterval = 10 * time.Second
)

// Cleanup budgets.
const (
	// CleanupTimeout bounds best-effort delete calls so a wedged cluster
	// cannot hang scenario teardown.
	CleanupTimeout = 30 * time.Second
)
