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
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/kata-containers/kataci/pkg/errors"
	"github.com/kata-containers/kataci/pkg/retry"
)

// ResourceClient manipulates the remote resource under test. The
// production implementation is kubectl-backed (pkg/kubectl); tests use
// scripted fakes.
type ResourceClient interface {
	// Create issues the resource creation call.
	Create(ctx context.Context) error
	// State queries the current observed state. Query errors (as opposed
	// to a clean NotFound observation) should be returned so the poller
	// can classify them as Unknown and keep polling.
	State(ctx context.Context) (ObservedState, error)
	// Delete removes the resource. Implementations should tolerate the
	// resource being already gone.
	Delete(ctx context.Context) error
}

// Config holds the polling and retry budgets for one resource lifecycle.
type Config struct {
	// Timeout is the wait budget per cycle; Interval the delay between
	// state queries. The iteration budget is Timeout/Interval.
	Timeout  time.Duration
	Interval time.Duration

	// Attempts is how many full create+poll+delete cycles to run before
	// giving up; CycleDelay the fixed delay between cycles.
	Attempts   int
	CycleDelay time.Duration

	// CreateRetry bounds transient retry of the create call itself.
	CreateRetry retry.Policy

	// KeepOnSuccess skips the delete after a Ready cycle so callers can
	// inspect the live resource (a later cleanup step still removes it).
	KeepOnSuccess bool
}

// Outcome summarizes a finished lifecycle run.
type Outcome struct {
	// State is the terminal phase: Ready, Failed or TimedOut.
	State Phase
	// Cycles is how many create+poll cycles ran.
	Cycles int
	// Polls is the total number of state queries issued.
	Polls int
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Poller drives the create → await-state → classify → cleanup machine
// for a single remote resource, with outer retry of whole cycles.
type Poller struct {
	client ResourceClient
	cfg    Config
}

// New creates a Poller for the given resource.
func New(client ResourceClient, cfg Config) *Poller {
	return &Poller{client: client, cfg: cfg}
}

// iterationBudget derives the poll loop bound from the wall-clock
// budget. At least one poll is always issued.
func iterationBudget(timeout, interval time.Duration) int {
	if interval <= 0 {
		return 1
	}
	n := int(timeout / interval)
	if n < 1 {
		return 1
	}
	return n
}

// Run executes up to cfg.Attempts lifecycle cycles and returns the
// outcome. A Ready cycle short-circuits with a nil error. Exhausting
// all cycles returns the outcome plus a TERMINAL_FAILURE or
// POLL_TIMEOUT error matching the last cycle's phase. Context
// cancellation aborts immediately with the context error.
func (p *Poller) Run(ctx context.Context) (Outcome, error) {
	start := time.Now()
	budget := iterationBudget(p.cfg.Timeout, p.cfg.Interval)
	attempts := p.cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var out Outcome
	for cycle := 1; cycle <= attempts; cycle++ {
		out.Cycles = cycle

		phase, err := p.runCycle(ctx, budget, &out.Polls)
		if err != nil {
			out.State = phase
			out.Elapsed = time.Since(start)
			return out, err
		}
		out.State = phase

		if phase == PhaseReady {
			if !p.cfg.KeepOnSuccess {
				p.cleanup(ctx)
			}
			out.Elapsed = time.Since(start)
			slog.Info("resource ready",
				slog.Int("cycle", cycle),
				slog.Int("polls", out.Polls),
				slog.Duration("elapsed", out.Elapsed))
			return out, nil
		}

		// Failed and timed-out cycles always delete before a fresh
		// create is attempted.
		p.cleanup(ctx)

		slog.Warn("lifecycle cycle did not converge",
			slog.String("phase", string(phase)),
			slog.Int("cycle", cycle),
			slog.Int("maxCycles", attempts))

		if cycle < attempts {
			if err := retry.Sleep(ctx, p.cfg.CycleDelay); err != nil {
				out.Elapsed = time.Since(start)
				return out, err
			}
		}
	}

	out.Elapsed = time.Since(start)
	return out, p.terminalError(out)
}

// runCycle performs one create → await-state pass. The returned error
// is non-nil only for context cancellation; lifecycle failures are
// reported through the phase.
func (p *Poller) runCycle(ctx context.Context, budget int, polls *int) (Phase, error) {
	// Uncreated → Creating
	err := retry.Do(ctx, p.cfg.CreateRetry, p.client.Create)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return PhaseCreating, ctxErr
		}
		// Creation failed after retries: terminal for this cycle, no
		// point polling a resource that was never created.
		slog.Warn("resource creation failed", slog.Any("error", err))
		return PhaseFailed, nil
	}

	// Creating → AwaitingState
	for i := 0; i < budget; i++ {
		if i > 0 {
			if err := retry.Sleep(ctx, p.cfg.Interval); err != nil {
				return PhaseAwaitingState, err
			}
		}

		*polls++
		state, err := p.client.State(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return PhaseAwaitingState, ctxErr
			}
			// Query flakiness is not a resource failure; keep polling.
			slog.Debug("state query failed", slog.Any("error", err))
			state = StateUnknown
		}

		switch {
		case state.Reached():
			return PhaseReady, nil
		case state == StateFailed:
			// Failure is durable: abandon the remaining poll budget.
			return PhaseFailed, nil
		}
		// Pending, NotFound and Unknown are non-terminal.
	}

	return PhaseTimedOut, nil
}

// cleanup deletes the resource, best effort. Failures never escalate
// the lifecycle outcome.
func (p *Poller) cleanup(ctx context.Context) {
	if err := p.client.Delete(ctx); err != nil {
		slog.Debug("cleanup delete failed", slog.Any("error", err))
	}
}

func (p *Poller) terminalError(out Outcome) error {
	msg := fmt.Sprintf("resource did not become ready after %d cycles (%d polls)", out.Cycles, out.Polls)
	if out.State == PhaseTimedOut {
		return apperrors.New(apperrors.ErrCodePollTimeout, msg)
	}
	return apperrors.New(apperrors.ErrCodeTerminalFailure, msg)
}
