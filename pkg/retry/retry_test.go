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

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kata-containers/kataci/pkg/errors"
)

func TestDo_AlwaysFailingUsesExactlyMaxAttempts(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("apply failed")

	for _, n := range []int{1, 2, 5} {
		calls := 0
		err := Do(ctx, Policy{MaxAttempts: n, Strategy: Fixed}, func(context.Context) error {
			calls++
			return boom
		})

		require.Error(t, err)
		assert.Equal(t, n, calls)

		var exhausted *ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, n, exhausted.Attempts)
		assert.ErrorIs(t, err, boom)
	}
}

func TestDo_SucceedsOnAttemptK(t *testing.T) {
	ctx := context.Background()

	for _, k := range []int{1, 3, 5} {
		calls := 0
		err := Do(ctx, Policy{MaxAttempts: 5, Strategy: Fixed}, func(context.Context) error {
			calls++
			if calls < k {
				return errors.New("not yet")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, k, calls, "no attempts after the first success")
	}
}

func TestDo_InvalidPolicy(t *testing.T) {
	ctx := context.Background()

	err := Do(ctx, Policy{MaxAttempts: 0}, func(context.Context) error { return nil })
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))

	err = Do(ctx, Policy{MaxAttempts: 1, BaseDelay: -time.Second}, func(context.Context) error { return nil })
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestDo_ContextCanceledBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Do(ctx, Policy{MaxAttempts: 10, Strategy: Fixed, BaseDelay: time.Hour}, func(context.Context) error {
		calls++
		cancel()
		return errors.New("flaky")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPolicy_BackoffDelays(t *testing.T) {
	fixed := Policy{MaxAttempts: 4, Strategy: Fixed, BaseDelay: 10 * time.Millisecond}.backoff()
	for i := 0; i < 3; i++ {
		assert.Equal(t, 10*time.Millisecond, fixed.Step())
	}

	exp := Policy{MaxAttempts: 4, Strategy: Exponential, BaseDelay: 10 * time.Millisecond}.backoff()
	assert.Equal(t, 10*time.Millisecond, exp.Step())
	assert.Equal(t, 20*time.Millisecond, exp.Step())
	assert.Equal(t, 40*time.Millisecond, exp.Step())
}

func TestSleep(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Sleep(ctx, 0))
	require.NoError(t, Sleep(ctx, time.Millisecond))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, Sleep(canceled, time.Hour), context.Canceled)
}
