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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObservedState_Reached(t *testing.T) {
	assert.True(t, StateRunning.Reached())
	assert.True(t, StateSucceeded.Reached())
	assert.False(t, StatePending.Reached())
	assert.False(t, StateFailed.Reached())
	assert.False(t, StateNotFound.Reached())
	assert.False(t, StateUnknown.Reached())
}

func TestPhase_Terminal(t *testing.T) {
	terminal := []Phase{PhaseReady, PhaseFailed, PhaseTimedOut}
	for _, p := range terminal {
		assert.True(t, p.Terminal(), string(p))
	}

	nonTerminal := []Phase{PhaseUncreated, PhaseCreating, PhaseAwaitingState, PhaseCleanedUp}
	for _, p := range nonTerminal {
		assert.False(t, p.Terminal(), string(p))
	}
}
