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

package lifecycle

// ObservedState is the remotely observed state of the resource under
// test. Each poll is an independent query of ground truth; states are
// never cached between polls.
type ObservedState string

const (
	// StatePending means the resource exists but is not yet scheduled or
	// started.
	StatePending ObservedState = "Pending"
	// StateRunning means the resource reached its running phase.
	StateRunning ObservedState = "Running"
	// StateSucceeded means the resource ran to successful completion.
	StateSucceeded ObservedState = "Succeeded"
	// StateFailed means the resource reached a durable failed phase.
	// Once observed, no further transition is expected without a fresh
	// create.
	StateFailed ObservedState = "Failed"
	// StateNotFound means the query found no such resource. This is
	// non-terminal: a flaky create may not have landed yet.
	StateNotFound ObservedState = "NotFound"
	// StateUnknown means the state could not be classified.
	StateUnknown ObservedState = "Unknown"
)

// Reached reports whether the state counts as the resource having come
// up: Running or Succeeded.
func (s ObservedState) Reached() bool {
	return s == StateRunning || s == StateSucceeded
}

// Phase is a state of the lifecycle machine itself, as opposed to the
// remotely observed resource state.
type Phase string

const (
	// PhaseUncreated is the initial phase before any create call.
	PhaseUncreated Phase = "Uncreated"
	// PhaseCreating means the create call is in flight (with retries).
	PhaseCreating Phase = "Creating"
	// PhaseAwaitingState means the poll loop is waiting for a terminal
	// observation.
	PhaseAwaitingState Phase = "AwaitingState"
	// PhaseReady is terminal success: the resource came up.
	PhaseReady Phase = "Ready"
	// PhaseFailed is terminal failure: creation failed after retries or
	// the resource was observed Failed.
	PhaseFailed Phase = "Failed"
	// PhaseTimedOut means the wait budget ran out without a terminal
	// observation.
	PhaseTimedOut Phase = "TimedOut"
	// PhaseCleanedUp means the resource was deleted (best effort).
	PhaseCleanedUp Phase = "CleanedUp"
)

// Terminal reports whether the phase ends a lifecycle cycle.
func (p Phase) Terminal() bool {
	return p == PhaseReady || p == PhaseFailed || p == PhaseTimedOut
}
