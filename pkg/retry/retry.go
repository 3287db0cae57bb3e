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
	"fmt"
	"log/slog"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	apperrors "github.com/kata-containers/kataci/pkg/errors"
)

// Strategy selects how the delay between attempts grows.
type Strategy string

const (
	// Fixed keeps the same delay between every attempt.
	Fixed Strategy = "fixed"
	// Exponential doubles the delay after each attempt.
	Exponential Strategy = "exponential"
)

// Policy configures bounded retry for a single external operation.
// Backoff is deterministic: no jitter is applied, so attempt timing is
// reproducible in CI runs.
type Policy struct {
	MaxAttempts int
	Strategy    Strategy
	BaseDelay   time.Duration
}

// Validate reports whether the policy is usable.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("retry policy requires at least 1 attempt, got %d", p.MaxAttempts))
	}
	if p.BaseDelay < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("retry policy requires a non-negative delay, got %v", p.BaseDelay))
	}
	return nil
}

func (p Policy) backoff() wait.Backoff {
	factor := 1.0
	if p.Strategy == Exponential {
		factor = 2.0
	}
	return wait.Backoff{
		Duration: p.BaseDelay,
		Factor:   factor,
		Steps:    p.MaxAttempts,
	}
}

// Operation is a single retryable unit of work against the cluster.
type Operation func(ctx context.Context) error

// ExhaustedError reports that an operation kept failing after all
// attempts were used. It unwraps to the last failure.
type ExhaustedError struct {
	Attempts int
	Cause    error
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("[%s] operation failed after %d attempts: %v",
		apperrors.ErrCodeRetryExhausted, e.Attempts, e.Cause)
}

// Unwrap returns the last attempt's error.
func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}

// Do invokes op until it succeeds or the policy's attempt budget is used
// up, sleeping between attempts per the policy's delay strategy. The
// first success returns nil immediately with no further attempts.
// Exhaustion returns an *ExhaustedError carrying the last failure.
// Context cancellation aborts between attempts and during delays.
func Do(ctx context.Context, policy Policy, op Operation) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	back := policy.backoff()
	var last error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		last = op(ctx)
		if last == nil {
			return nil
		}

		slog.Debug("operation failed",
			slog.Int("attempt", attempt),
			slog.Int("maxAttempts", policy.MaxAttempts),
			slog.Any("error", last))

		if attempt < policy.MaxAttempts {
			if err := Sleep(ctx, back.Step()); err != nil {
				return err
			}
		}
	}

	return &ExhaustedError{Attempts: policy.MaxAttempts, Cause: last}
}

// Sleep blocks for d or until the context is canceled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
